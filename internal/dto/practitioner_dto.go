package dto

import (
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/google/uuid"
)

type PractitionerResponse struct {
	ID              uuid.UUID         `json:"id"`
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	Email           string            `json:"email"`
	Concern         string            `json:"concern,omitempty"`
	Specializations []string          `json:"specializations"`
	TimeSlots       []models.TimeSlot `json:"timeSlots"`
}

func NewPractitionerResponse(u *models.User) PractitionerResponse {
	p := PractitionerResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Concern:         u.Concern,
		Specializations: []string(u.Specializations),
		TimeSlots:       []models.TimeSlot(u.TimeSlots),
	}
	if p.Specializations == nil {
		p.Specializations = []string{}
	}
	if p.TimeSlots == nil {
		p.TimeSlots = []models.TimeSlot{}
	}
	return p
}

type TimeSlotsResponse struct {
	PractitionerID uuid.UUID         `json:"practitionerId"`
	Date           string            `json:"date"`
	TimeSlots      []models.TimeSlot `json:"timeSlots"`
}
