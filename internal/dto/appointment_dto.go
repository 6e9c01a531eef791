package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/google/uuid"
)

// CreateAppointmentRequest carries the intake snapshot as flat fields. Any
// empty snapshot field is filled from the patient's own profile.
type CreateAppointmentRequest struct {
	Practitioner    string `json:"practitioner" validate:"required,uuid"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string `json:"time" validate:"required,datetime=15:04"`
	AppointmentType string `json:"appointmentType" validate:"required,oneof=initial followup"`
	Notes           string `json:"notes"`

	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DateOfBirth    string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	PlaceOfBirth   string `json:"placeOfBirth"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	Concern        string `json:"concern"`
	MedicalHistory string `json:"medicalHistory"`
}

func (r *CreateAppointmentRequest) PatientInfo() models.PatientInfo {
	return models.PatientInfo{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		DateOfBirth:    r.DateOfBirth,
		PlaceOfBirth:   r.PlaceOfBirth,
		Email:          r.Email,
		Phone:          r.Phone,
		Concern:        r.Concern,
		MedicalHistory: r.MedicalHistory,
	}
}

type PatientInfoPatch struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	DateOfBirth    *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	PlaceOfBirth   *string `json:"placeOfBirth"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone"`
	Concern        *string `json:"concern"`
	MedicalHistory *string `json:"medicalHistory"`
}

type UpdateAppointmentRequest struct {
	Date            *string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time            *string           `json:"time" validate:"omitempty,datetime=15:04"`
	AppointmentType *string           `json:"appointmentType" validate:"omitempty,oneof=initial followup"`
	Notes           *string           `json:"notes"`
	Status          *string           `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	PatientInfo     *PatientInfoPatch `json:"patientInfo"`
}

type Participant struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email,omitempty"`
}

func newParticipant(id uuid.UUID, u *models.User) Participant {
	p := Participant{ID: id}
	if u != nil {
		p.FirstName, p.LastName, p.Email = u.FirstName, u.LastName, u.Email
	}
	return p
}

type AppointmentResponse struct {
	ID              uuid.UUID                `json:"id"`
	Patient         Participant              `json:"patient"`
	Practitioner    Participant              `json:"practitioner"`
	Date            string                   `json:"date"`
	Time            string                   `json:"time"`
	AppointmentType models.AppointmentKind   `json:"appointmentType"`
	Status          models.AppointmentStatus `json:"status"`
	Notes           string                   `json:"notes,omitempty"`
	PatientInfo     models.PatientInfo       `json:"patientInfo"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

func NewAppointmentResponse(a *models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		Patient:         newParticipant(a.PatientID, a.Patient),
		Practitioner:    newParticipant(a.PractitionerID, a.Practitioner),
		Date:            a.Date,
		Time:            a.Time,
		AppointmentType: a.Kind,
		Status:          a.Status,
		Notes:           a.Notes,
		PatientInfo:     a.PatientInfo,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func NewAppointmentList(list []models.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, len(list))
	for i := range list {
		out[i] = NewAppointmentResponse(&list[i])
	}
	return out
}
