package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func rateLimit(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: true, Message: "Too many requests",
			})
		},
	})
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	tokens *services.TokenService,
	authHandler *handlers.AuthHandler,
	appointmentHandler *handlers.AppointmentHandler,
	practitionerHandler *handlers.PractitionerHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")
	if cfg.RateLimit > 0 {
		api.Use(rateLimit(cfg.RateLimit))
	}

	protected := middleware.JWTProtected(tokens)
	patientOnly := middleware.RequireRoles(models.RolePatient)
	practitionerOnly := middleware.RequireRoles(models.RolePractitioner)

	// Auth: signup and login are public and share a stricter limit, /me does not
	credentialLimit := func(c *fiber.Ctx) error { return c.Next() }
	if cfg.AuthRateLimit > 0 {
		credentialLimit = rateLimit(cfg.AuthRateLimit)
	}
	auth := api.Group("/auth")
	auth.Post("/signup", credentialLimit, authHandler.Signup)
	auth.Post("/login", credentialLimit, authHandler.Login)
	auth.Get("/me", protected, authHandler.Me)

	appointments := api.Group("/appointments", protected)
	appointments.Post("/", patientOnly, appointmentHandler.Create)
	appointments.Get("/", appointmentHandler.List)
	appointments.Get("/mine", appointmentHandler.List)
	appointments.Get("/:id", appointmentHandler.Get)
	appointments.Put("/:id", practitionerOnly, appointmentHandler.Update)
	appointments.Delete("/:id", practitionerOnly, appointmentHandler.Delete)

	practitioners := api.Group("/practitioners", protected)
	practitioners.Get("/", practitionerHandler.List)
	practitioners.Get("/:id", practitionerHandler.Get)
	practitioners.Get("/:id/time-slots", practitionerHandler.TimeSlots)

	users := api.Group("/users", protected, patientOnly)
	users.Put("/me", userHandler.UpdateMe)
	users.Delete("/me", userHandler.DeleteMe)
}
