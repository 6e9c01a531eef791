package handlers

import (
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	resp, err := h.authService.Signup(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	who, err := identity.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	profile, err := h.authService.Me(c.UserContext(), who.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(profile)
}
