package auth

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gig-market/internal/domain"
	apperrors "github.com/spec-kit/gig-market/pkg/util/errorutil"
)

// RequireRole lets the request through when the caller is signed in with one
// of the allowed roles. With no roles given any signed-in caller passes.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowed = slices.Clone(allowed)
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("sign in required")
		}
		if len(allowed) > 0 && !slices.Contains(allowed, principal.User.Role) {
			return apperrors.NewDomainError(apperrors.CodeForbidden, "not available for "+string(principal.User.Role)+" accounts",
				fiber.StatusForbidden, map[string]any{"allowed_roles": allowed})
		}
		return c.Next()
	}
}

// RequireAnyRole ensures caller is authenticated.
func RequireAnyRole() fiber.Handler {
	return RequireRole()
}
