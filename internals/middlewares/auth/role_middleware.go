package auth

import (
	"github.com/gofiber/fiber/v2"

	"sindiplus_backend/internals/constants"
	helper "sindiplus_backend/internals/helpers"
)

// AdminOnly rejects callers without the admin role. Must run after
// AuthMiddleware.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helper.GetRole(c) != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Admin role required")
		}
		return c.Next()
	}
}
