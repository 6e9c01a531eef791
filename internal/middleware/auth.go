package middleware

import (
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const tokenLocalsKey = "jwt"

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized: invalid or expired token",
	})
}

// JWTProtected verifies the bearer token and stores the caller's identity.
// Every failure, including a missing header, is a 401.
func JWTProtected(tokens *services.TokenService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:    tokens.Keyfunc,
		Claims:     &services.Claims{},
		ContextKey: tokenLocalsKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			tok, _ := c.Locals(tokenLocalsKey).(*jwt.Token)
			id, err := tokens.IdentityFromToken(tok)
			if err != nil {
				return unauthorized(c)
			}
			identity.Set(c, id)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}
