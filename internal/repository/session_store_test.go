package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gig-market/internal/domain"
)

func TestMemorySessionStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	user := &domain.User{ID: "1", Role: domain.RoleWorker, Worker: &domain.WorkerProfile{Points: 150}}

	require.NoError(t, store.Put(ctx, "s1", user, 0))
	user.Worker.Points = 0

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 150, got.Worker.Points)

	_, err = store.Get(ctx, "s2")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := &memorySessionStore{sessions: map[string]memorySession{}, now: func() time.Time { return now }}

	require.NoError(t, store.Put(ctx, "s1", &domain.User{ID: "1"}, time.Minute))
	_, err := store.Get(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
