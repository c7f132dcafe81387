package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/spec-kit/gig-market/pkg/util/errorutil"
)

// hasher produces bcrypt hashes at one cost. Logins for unknown emails are
// compared against a decoy hash so every failed login pays one bcrypt round.
type hasher struct {
	cost  int
	once  sync.Once
	decoy []byte
}

func newHasher(cost int) *hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &hasher{cost: cost}
}

// HashPassword hashes a plaintext password. Costs outside bcrypt's range use
// the default cost.
func HashPassword(password string, cost int) (string, error) {
	return newHasher(cost).hash(password)
}

// ComparePassword returns ErrInvalidCredentials on any mismatch.
func ComparePassword(hashed, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (h *hasher) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.NewValidationError("validation failed", map[string]any{
			"password": "must be at most 72 bytes long",
		})
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// reject always fails, after one comparison against the decoy.
func (h *hasher) reject(plain string) error {
	h.once.Do(func() {
		h.decoy, _ = bcrypt.GenerateFromPassword([]byte("gig-market-decoy"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.decoy, []byte(plain))
	return ErrInvalidCredentials
}
