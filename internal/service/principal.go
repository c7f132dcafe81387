package service

import (
	"github.com/spec-kit/gig-market/internal/domain"
	"github.com/spec-kit/gig-market/internal/events"
	apperrors "github.com/spec-kit/gig-market/pkg/util/errorutil"
)

func requireUser(user *domain.User) error {
	if user == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return nil
}

func requireRole(user *domain.User, role domain.Role) error {
	if err := requireUser(user); err != nil {
		return err
	}
	if user.Role != role {
		return apperrors.NewForbidden("only " + string(role) + " accounts can do this")
	}
	return nil
}

func actorOf(user *domain.User) events.Actor {
	if user == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: user.ID, Name: user.DisplayName(), Role: user.Role}
}
