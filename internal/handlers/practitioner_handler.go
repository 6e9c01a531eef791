package handlers

import (
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PractitionerHandler struct {
	directory *services.PractitionerDirectory
}

func NewPractitionerHandler(directory *services.PractitionerDirectory) *PractitionerHandler {
	return &PractitionerHandler{directory: directory}
}

func (h *PractitionerHandler) List(c *fiber.Ctx) error {
	list, err := h.directory.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

func (h *PractitionerHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, services.ErrPractitionerNotFound)
	}

	p, err := h.directory.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// TimeSlots serves GET /practitioners/:id/time-slots?date=YYYY-MM-DD.
func (h *PractitionerHandler) TimeSlots(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, services.ErrPractitionerNotFound)
	}

	slots, err := h.directory.AvailableSlots(c.UserContext(), id, c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(slots)
}
