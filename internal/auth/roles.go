package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/blood-donation-service/pkg/util"
)

// RequireAdmin ensures the authenticated principal carries the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.IsAdmin() {
			return apperrors.NewForbidden("admin privileges required")
		}
		return c.Next()
	}
}
