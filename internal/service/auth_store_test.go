package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gig-market/internal/domain"
	apperrors "github.com/spec-kit/gig-market/pkg/util/errorutil"
)

func TestAuthStore_LoginDemoWorker(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.auth.Login(ctx, "slot", "isci@test.com", "test123")
	require.NoError(t, err)
	require.True(t, ok)

	user, err := f.auth.Current(ctx, "slot")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, domain.RoleWorker, user.Role)
	assert.Equal(t, "Əli Məmmədov", user.FullName())
	require.NotNil(t, user.Worker)
	assert.Nil(t, user.Employer)
	assert.Equal(t, 150, user.Worker.Points)
	assert.Equal(t, domain.StreakGold, user.Worker.StreakTier())
}

func TestAuthStore_LoginDemoEmployer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.auth.Login(ctx, "slot", "isveren@test.com", "test123")
	require.NoError(t, err)
	require.True(t, ok)

	user, _ := f.auth.Current(ctx, "slot")
	require.NotNil(t, user.Employer)
	assert.Equal(t, "Event Pro MMC", user.Employer.CompanyName)
	assert.Len(t, user.Employer.PreviousWorkers, 2)
}

func TestAuthStore_LoginMismatchLeavesSlotUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.auth.Login(ctx, "slot", "isci@test.com", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
	user, err := f.auth.Current(ctx, "slot")
	require.NoError(t, err)
	assert.Nil(t, user)

	ok, _ = f.auth.Login(ctx, "slot", "isveren@test.com", "test123")
	require.True(t, ok)
	for _, creds := range [][2]string{{"nobody@test.com", "test123"}, {"isci@test.com", ""}, {"ISCI@test.com", "test123"}} {
		ok, err = f.auth.Login(ctx, "slot", creds[0], creds[1])
		require.NoError(t, err)
		assert.False(t, ok, creds[0])
	}
	user, _ = f.auth.Current(ctx, "slot")
	assert.Equal(t, "2", user.ID)
}

func TestAuthStore_SlotsAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.auth.Login(ctx, "a", "isci@test.com", "test123")
	_, _ = f.auth.Login(ctx, "b", "isveren@test.com", "test123")

	a, _ := f.auth.Current(ctx, "a")
	b, _ := f.auth.Current(ctx, "b")
	assert.Equal(t, domain.RoleWorker, a.Role)
	assert.Equal(t, domain.RoleEmployer, b.Role)

	require.NoError(t, f.auth.Logout(ctx, "a"))
	a, _ = f.auth.Current(ctx, "a")
	assert.Nil(t, a)
	b, _ = f.auth.Current(ctx, "b")
	assert.NotNil(t, b)
}

func TestAuthStore_RegisterWorkerAutoLogsIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jobsBefore := f.jobStore.List()

	user, err := f.auth.Register(ctx, "slot", RegisterInput{
		Email: "new@test.com", Password: "secret1", ConfirmPassword: "secret1", Name: "Rəşad", Surname: "Kərimov", Role: domain.RoleWorker,
	})
	require.NoError(t, err)
	require.NotNil(t, user.Worker)
	assert.Nil(t, user.Employer)
	assert.Zero(t, user.Worker.Points)
	assert.Zero(t, user.Worker.StreakDays)
	assert.Equal(t, domain.StreakBronze, user.Worker.StreakTier())
	assert.NotEmpty(t, user.ID)

	current, _ := f.auth.Current(ctx, "slot")
	assert.Equal(t, user.ID, current.ID)
	assert.Equal(t, jobsBefore, f.jobStore.List())

	require.NoError(t, f.auth.Logout(ctx, "slot"))
	ok, err := f.auth.Login(ctx, "slot", "new@test.com", "secret1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthStore_RegisterEmployer(t *testing.T) {
	f := newFixture(t)

	user, err := f.auth.Register(context.Background(), "slot", RegisterInput{
		Email: "boss@test.com", Password: "secret1", ConfirmPassword: "secret1", Name: "Nərmin", Surname: "Əliyeva",
		Role: domain.RoleEmployer, CompanyName: "  Dadlı MMC ",
	})
	require.NoError(t, err)
	require.NotNil(t, user.Employer)
	assert.Nil(t, user.Worker)
	assert.Equal(t, "Dadlı MMC", user.DisplayName())
	assert.Empty(t, user.Employer.PostedJobs)
	assert.Empty(t, user.Employer.PreviousWorkers)
}

func TestAuthStore_RegisterValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Register(context.Background(), "slot", RegisterInput{Email: "not-an-email", Password: "1", Role: "admin"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	user, _ := f.auth.Current(context.Background(), "slot")
	assert.Nil(t, user)
}

func TestAuthStore_RegisterPasswordRules(t *testing.T) {
	valid := RegisterInput{Email: "new@test.com", Name: "Rəşad", Surname: "Kərimov", Role: domain.RoleWorker}

	cases := []struct {
		name     string
		password string
		confirm  string
		field    string
	}{
		{"mismatch", "secret1", "secret2", "confirm_password"},
		{"missing confirmation", "secret1", "", "confirm_password"},
		{"too short", "12345", "12345", "password"},
		{"longer than bcrypt accepts", strings.Repeat("p", 80), strings.Repeat("p", 80), "password"},
		{"multibyte over 72 bytes", strings.Repeat("ə", 40), strings.Repeat("ə", 40), "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			in := valid
			in.Password, in.ConfirmPassword = tc.password, tc.confirm

			_, err := f.auth.Register(context.Background(), "slot", in)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation), err.Error())
			var de *apperrors.DomainError
			require.ErrorAs(t, err, &de)
			assert.Contains(t, de.Details, tc.field)

			user, _ := f.auth.Current(context.Background(), "slot")
			assert.Nil(t, user)
		})
	}
}

func TestAuthStore_RegisterExistingEmailConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "slot", RegisterInput{
		Email: "isci@test.com", Password: "hijack1", ConfirmPassword: "hijack1",
		Name: "X", Surname: "Y", Role: domain.RoleEmployer,
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
	user, _ := f.auth.Current(ctx, "slot")
	assert.Nil(t, user)

	ok, err := f.auth.Login(ctx, "slot", "isci@test.com", "hijack1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.auth.Login(ctx, "slot", "isci@test.com", "test123")
	require.NoError(t, err)
	assert.True(t, ok)
	user, _ = f.auth.Current(ctx, "slot")
	assert.Equal(t, domain.RoleWorker, user.Role)
}

func TestAuthStore_CancelledLoginMutatesNothing(t *testing.T) {
	f := newFixtureWith(t, fixtureOptions{loginLatency: time.Hour})

	ok, err := f.auth.Login(cancelledContext(), "slot", "isci@test.com", "test123")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)

	user, _ := f.auth.Current(context.Background(), "slot")
	assert.Nil(t, user)
}
