package handlers

import (
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	ledger *services.AppointmentLedger
}

func NewAppointmentHandler(ledger *services.AppointmentLedger) *AppointmentHandler {
	return &AppointmentHandler{ledger: ledger}
}

func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	who, err := identity.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.CreateAppointmentRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	practitionerID, err := uuid.Parse(req.Practitioner)
	if err != nil {
		return badRequest(c, "practitioner must be a valid id")
	}

	appt, err := h.ledger.Create(c.UserContext(), who, services.NewAppointment{
		PractitionerID: practitionerID,
		Date:           req.Date,
		Time:           req.Time,
		Kind:           models.AppointmentKind(req.AppointmentType),
		Notes:          req.Notes,
		PatientInfo:    req.PatientInfo(),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewAppointmentResponse(appt))
}

func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	who, err := identity.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	list, err := h.ledger.ListFor(c.UserContext(), who)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.NewAppointmentList(list))
}

func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	who, err := identity.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	appt, err := h.ledger.GetByID(c.UserContext(), id, who)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.NewAppointmentResponse(appt))
}

func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	who, err := identity.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	var req dto.UpdateAppointmentRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	appt, err := h.ledger.Update(c.UserContext(), id, who, appointmentChanges(&req))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.NewAppointmentResponse(appt))
}

func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	who, err := identity.FromCtx(c)
	if err != nil {
		return respondUnauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	if err := h.ledger.Delete(c.UserContext(), id, who); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func appointmentChanges(req *dto.UpdateAppointmentRequest) services.AppointmentChanges {
	ch := services.AppointmentChanges{
		Date:  req.Date,
		Time:  req.Time,
		Notes: req.Notes,
	}
	if req.AppointmentType != nil {
		kind := models.AppointmentKind(*req.AppointmentType)
		ch.Kind = &kind
	}
	if req.Status != nil {
		status := models.AppointmentStatus(*req.Status)
		ch.Status = &status
	}
	if p := req.PatientInfo; p != nil {
		ch.PatientInfo = &services.PatientInfoChanges{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			DateOfBirth:    p.DateOfBirth,
			PlaceOfBirth:   p.PlaceOfBirth,
			Email:          p.Email,
			Phone:          p.Phone,
			Concern:        p.Concern,
			MedicalHistory: p.MedicalHistory,
		}
	}
	return ch
}
