package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(tokens *services.TokenService) *fiber.App {
	app := fiber.New()
	echo := func(c *fiber.Ctx) error {
		id, err := identity.FromCtx(c)
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"userId": id.UserID, "role": id.Role})
	}
	app.Get("/any", JWTProtected(tokens), echo)
	app.Get("/patients", JWTProtected(tokens), RequireRoles(models.RolePatient), echo)
	app.Get("/practitioners", JWTProtected(tokens), RequireRoles(models.RolePractitioner), echo)
	app.Get("/unguarded-role", RequireRoles(models.RolePatient), echo)
	return app
}

func TestGuard(t *testing.T) {
	tokens := services.NewTokenService("middleware-secret")
	app := newTestApp(tokens)

	patientToken, err := tokens.Issue(uuid.New(), models.RolePatient)
	require.NoError(t, err)
	practitionerToken, err := tokens.Issue(uuid.New(), models.RolePractitioner)
	require.NoError(t, err)
	foreignToken, err := services.NewTokenService("someone-else").Issue(uuid.New(), models.RolePatient)
	require.NoError(t, err)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		Role: models.RolePatient,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte("middleware-secret"))
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, services.Claims{
		Role: models.RolePatient,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("middleware-secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no header", "/any", "", fiber.StatusUnauthorized},
		{"malformed header", "/any", "Token abc", fiber.StatusUnauthorized},
		{"garbage token", "/any", "Bearer abc.def.ghi", fiber.StatusUnauthorized},
		{"wrong secret", "/any", "Bearer " + foreignToken, fiber.StatusUnauthorized},
		{"expired", "/any", "Bearer " + expired, fiber.StatusUnauthorized},
		{"hs512 with the right secret", "/any", "Bearer " + hs512, fiber.StatusUnauthorized},
		{"authenticated", "/any", "Bearer " + patientToken, fiber.StatusOK},
		{"patient route as patient", "/patients", "Bearer " + patientToken, fiber.StatusOK},
		{"patient route as practitioner", "/patients", "Bearer " + practitionerToken, fiber.StatusForbidden},
		{"practitioner route as patient", "/practitioners", "Bearer " + patientToken, fiber.StatusForbidden},
		{"practitioner route as practitioner", "/practitioners", "Bearer " + practitionerToken, fiber.StatusOK},
		{"role gate without guard", "/unguarded-role", "Bearer " + patientToken, fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeaders())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}
