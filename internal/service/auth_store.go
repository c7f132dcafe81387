package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/gig-market/internal/auth"
	"github.com/spec-kit/gig-market/internal/domain"
	"github.com/spec-kit/gig-market/internal/latency"
	"github.com/spec-kit/gig-market/internal/repository"
	"github.com/spec-kit/gig-market/internal/validation"
)

// AuthStore tracks at most one authenticated user per session slot.
type AuthStore struct {
	verifier        auth.CredentialVerifier
	sessions        repository.SessionStore
	loginLatency    latency.Simulator
	registerLatency latency.Simulator
	sessionTTL      time.Duration
	newID           func() string
	now             func() time.Time
}

// AuthDependencies bundles collaborators of the auth store.
type AuthDependencies struct {
	Verifier        auth.CredentialVerifier
	Sessions        repository.SessionStore
	LoginLatency    latency.Simulator
	RegisterLatency latency.Simulator
	SessionTTL      time.Duration
	NewID           func() string
	Now             func() time.Time
}

// RegisterInput describes a new account.
type RegisterInput struct {
	Email           string      `json:"email" validate:"required,email"`
	Phone           string      `json:"phone"`
	Password        string      `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string      `json:"confirm_password" validate:"required,eqfield=Password"`
	Name            string      `json:"name" validate:"required"`
	Surname         string      `json:"surname" validate:"required"`
	Role            domain.Role `json:"role" validate:"required,role"`
	CompanyName     string      `json:"company_name"`
}

// NewAuthStore builds the store.
func NewAuthStore(deps AuthDependencies) *AuthStore {
	s := &AuthStore{
		verifier:        deps.Verifier,
		sessions:        deps.Sessions,
		loginLatency:    deps.LoginLatency,
		registerLatency: deps.RegisterLatency,
		sessionTTL:      deps.SessionTTL,
		newID:           deps.NewID,
		now:             deps.Now,
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Login replaces the slot's user when the credentials match. A mismatch returns
// false and leaves the slot untouched; the error is reserved for cancellation
// and backend failures.
func (s *AuthStore) Login(ctx context.Context, slot, email, password string) (bool, error) {
	if err := s.loginLatency.Wait(ctx); err != nil {
		return false, err
	}
	user, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return false, nil
		}
		return false, err
	}
	if err := s.sessions.Put(ctx, slot, user, s.sessionTTL); err != nil {
		return false, err
	}
	return true, nil
}

// Register builds a profile shaped by the role and logs it into the slot.
func (s *AuthStore) Register(ctx context.Context, slot string, in RegisterInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := s.registerLatency.Wait(ctx); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        s.newID(),
		Email:     in.Email,
		Phone:     in.Phone,
		Name:      in.Name,
		Surname:   in.Surname,
		Role:      in.Role,
		CreatedAt: s.now(),
	}
	switch in.Role {
	case domain.RoleWorker:
		user.Worker = &domain.WorkerProfile{CompletedJobs: []string{}}
	case domain.RoleEmployer:
		user.Employer = &domain.EmployerProfile{
			CompanyName:     strings.TrimSpace(in.CompanyName),
			PostedJobs:      []string{},
			PreviousWorkers: []domain.WorkerSummary{},
		}
	}

	if enroller, ok := s.verifier.(auth.Enroller); ok {
		if err := enroller.Enroll(ctx, user, in.Password); err != nil {
			return nil, err
		}
	}
	if err := s.sessions.Put(ctx, slot, user, s.sessionTTL); err != nil {
		return nil, err
	}
	return user.Clone(), nil
}

// Logout clears the slot.
func (s *AuthStore) Logout(ctx context.Context, slot string) error {
	return s.sessions.Delete(ctx, slot)
}

// Current returns the slot's user, or nil when nobody is logged in.
func (s *AuthStore) Current(ctx context.Context, slot string) (*domain.User, error) {
	user, err := s.sessions.Get(ctx, slot)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
