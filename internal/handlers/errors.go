package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/services"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

const internalMessage = "Internal server error"

// statusFor maps service errors onto HTTP statuses. Unknown errors are 500.
func statusFor(err error) (int, string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, verr.Message
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, services.ErrInvalidToken):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrPatientCannotMutate):
		return fiber.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPractitionerNotFound),
		errors.Is(err, services.ErrAppointmentNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrSlotTaken):
		return fiber.StatusConflict, err.Error()
	}
	return fiber.StatusInternalServerError, internalMessage
}

func respondError(c *fiber.Ctx, err error) error {
	status, message := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		reportServerError(c, err)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func respondUnauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func reportServerError(c *fiber.Ctx, err error) {
	attrs := []any{
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		"error", err.Error(),
	}
	if id, idErr := identity.FromCtx(c); idErr == nil {
		attrs = append(attrs, "user_id", id.UserID.String(), "role", string(id.Role))
	}
	slog.Error("request failed", attrs...)

	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}

// ErrorHandler is the last line of defense for errors no handler mapped.
// Details of 5xx errors never reach the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := internalMessage

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		reportServerError(c, err)
		message = internalMessage
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}
