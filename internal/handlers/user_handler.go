package handlers

import (
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	who, err := identity.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.UpdateMeRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	summary, err := h.userService.UpdateMe(c.UserContext(), who, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	who, err := identity.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	if err := h.userService.DeleteMe(c.UserContext(), who); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
