package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/gig-market/internal/domain"
	"github.com/spec-kit/gig-market/internal/repository"
	apperrors "github.com/spec-kit/gig-market/pkg/util/errorutil"
)

// ErrInvalidCredentials covers both unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialVerifier resolves an email/password pair into a user.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}

// Enroller is implemented by verifiers that accept new accounts.
type Enroller interface {
	Enroll(ctx context.Context, user *domain.User, password string) error
}

// StaticAccount is one entry of the built-in credential table.
type StaticAccount struct {
	Email    string
	Password string
	User     *domain.User
}

type staticEntry struct {
	hash string
	user *domain.User
}

// StaticCredentials is an in-memory credential table.
type StaticCredentials struct {
	mu      sync.RWMutex
	hasher  *hasher
	entries map[string]staticEntry
}

// NewStaticCredentials hashes the given accounts into a table.
func NewStaticCredentials(cost int, accounts ...StaticAccount) (*StaticCredentials, error) {
	s := &StaticCredentials{hasher: newHasher(cost), entries: make(map[string]staticEntry, len(accounts))}
	for _, acc := range accounts {
		if err := s.add(acc.Email, acc.Password, acc.User); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Verify matches email exactly and compares the password hash.
func (s *StaticCredentials) Verify(_ context.Context, email, password string) (*domain.User, error) {
	s.mu.RLock()
	entry, ok := s.entries[email]
	s.mu.RUnlock()
	if !ok {
		return nil, s.hasher.reject(password)
	}
	if err := ComparePassword(entry.hash, password); err != nil {
		return nil, err
	}
	return entry.user.Clone(), nil
}

// Enroll adds a registered account. An email already in the table is a conflict.
func (s *StaticCredentials) Enroll(_ context.Context, user *domain.User, password string) error {
	return s.add(user.Email, password, user)
}

// Knows reports whether email is in the table.
func (s *StaticCredentials) Knows(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[email]
	return ok
}

func (s *StaticCredentials) add(email, password string, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	hash, err := s.hasher.hash(password)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.entries[email]; taken {
		return apperrors.NewConflict("email already registered", map[string]any{"email": email})
	}
	s.entries[email] = staticEntry{hash: hash, user: user.Clone()}
	return nil
}

// DirectoryCredentials verifies against the accounts table.
type DirectoryCredentials struct {
	accounts repository.AccountRepository
	hasher   *hasher
}

// NewDirectoryCredentials builds a Postgres-backed verifier.
func NewDirectoryCredentials(accounts repository.AccountRepository, cost int) *DirectoryCredentials {
	return &DirectoryCredentials{accounts: accounts, hasher: newHasher(cost)}
}

func (d *DirectoryCredentials) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	account, err := d.accounts.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, d.hasher.reject(password)
		}
		return nil, err
	}
	if err := ComparePassword(account.PasswordHash, password); err != nil {
		return nil, err
	}
	return userFromAccount(account), nil
}

func (d *DirectoryCredentials) Enroll(ctx context.Context, user *domain.User, password string) error {
	hash, err := d.hasher.hash(password)
	if err != nil {
		return err
	}
	account := &repository.Account{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: hash,
		Role:         user.Role,
		Name:         user.Name,
		Surname:      user.Surname,
		Phone:        user.Phone,
	}
	if user.Employer != nil {
		account.CompanyName = user.Employer.CompanyName
	}
	if err := d.accounts.Create(ctx, account); err != nil {
		if repository.IsDuplicate(err) {
			return apperrors.NewConflict("email already registered", map[string]any{"email": user.Email})
		}
		return err
	}
	return nil
}

func userFromAccount(account *repository.Account) *domain.User {
	user := &domain.User{
		ID:        account.ID,
		Email:     account.Email,
		Phone:     account.Phone,
		Name:      account.Name,
		Surname:   account.Surname,
		Role:      account.Role,
		CreatedAt: account.CreatedAt,
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	switch account.Role {
	case domain.RoleEmployer:
		user.Employer = &domain.EmployerProfile{CompanyName: account.CompanyName}
	default:
		user.Role = domain.RoleWorker
		user.Worker = &domain.WorkerProfile{}
	}
	return user
}

// ChainCredentials tries each verifier in order and enrolls through the last
// one that supports enrollment.
type ChainCredentials struct {
	verifiers []CredentialVerifier
}

// NewChainCredentials builds a chain.
func NewChainCredentials(verifiers ...CredentialVerifier) *ChainCredentials {
	return &ChainCredentials{verifiers: verifiers}
}

func (c *ChainCredentials) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	for _, v := range c.verifiers {
		user, err := v.Verify(ctx, email, password)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, ErrInvalidCredentials) {
			return nil, err
		}
	}
	return nil, ErrInvalidCredentials
}

// Enroll refuses emails held by a built-in table anywhere in the chain.
func (c *ChainCredentials) Enroll(ctx context.Context, user *domain.User, password string) error {
	for _, v := range c.verifiers {
		if static, ok := v.(*StaticCredentials); ok && static.Knows(user.Email) {
			return apperrors.NewConflict("email already registered", map[string]any{"email": user.Email})
		}
	}
	for i := len(c.verifiers) - 1; i >= 0; i-- {
		if enroller, ok := c.verifiers[i].(Enroller); ok {
			return enroller.Enroll(ctx, user, password)
		}
	}
	return nil
}
