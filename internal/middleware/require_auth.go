package middleware

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
)

// RequireAuth rejects requests JWTAuth did not authenticate.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := UIDObjectID(c); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		return c.Next()
	}
}

// RequireRole admits authenticated callers holding one of roles.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := UIDObjectID(c); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		if !slices.Contains(roles, RoleFromLocals(c)) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
