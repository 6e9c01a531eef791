package identity

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const localsKey = "identity"

var ErrNoIdentity = errors.New("no authenticated identity in context")

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID uuid.UUID
	Role   models.Role
}

func (i Identity) Is(role models.Role) bool {
	return i.Role == role
}

// Set attaches the caller to the request for downstream handlers.
func Set(c *fiber.Ctx, id Identity) {
	c.Locals(localsKey, id)
}

// FromCtx returns the identity stored by the auth middleware.
func FromCtx(c *fiber.Ctx) (Identity, error) {
	id, ok := c.Locals(localsKey).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}
