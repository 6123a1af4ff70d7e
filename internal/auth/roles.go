package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/guest-service/internal/domain"
	apperrors "github.com/spec-kit/guest-service/pkg/util"
)

// RequireEmployee ensures the authenticated caller has the employee role.
// Role checks are static guards; no permission objects are seeded at startup.
func RequireEmployee() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != domain.RoleEmployee {
			return apperrors.NewForbidden("employee role required")
		}
		return c.Next()
	}
}
