package middleware

import (
	"slices"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// RequireRoles must run after JWTProtected.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := identity.FromCtx(c)
		if err != nil {
			return unauthorized(c)
		}
		if !slices.Contains(roles, id.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Forbidden: insufficient role",
			})
		}
		return c.Next()
	}
}
