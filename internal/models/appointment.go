package models

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type AppointmentKind string

const (
	KindInitial  AppointmentKind = "initial"
	KindFollowup AppointmentKind = "followup"
)

func (k AppointmentKind) Valid() bool {
	return k == KindInitial || k == KindFollowup
}

// PatientInfo is the intake snapshot taken at booking time. It is not kept
// in sync with the patient's User record.
type PatientInfo struct {
	FirstName      string `gorm:"size:100" json:"firstName"`
	LastName       string `gorm:"size:100" json:"lastName"`
	DateOfBirth    string `gorm:"size:10" json:"dateOfBirth"`
	PlaceOfBirth   string `gorm:"size:255" json:"placeOfBirth,omitempty"`
	Email          string `gorm:"size:255" json:"email"`
	Phone          string `gorm:"size:50" json:"phone"`
	Concern        string `gorm:"type:text" json:"concern"`
	MedicalHistory string `gorm:"type:text" json:"medicalHistory,omitempty"`
}

// Appointment binds one patient to one practitioner slot. Date is YYYY-MM-DD
// and Time is HH:MM so that lexical order equals chronological order.
// (practitioner_id, date, time) is unique across all rows, cancelled included.
type Appointment struct {
	ID             uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"patientId"`
	PractitionerID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_appointments_slot,priority:1" json:"practitionerId"`
	Date           string            `gorm:"size:10;not null;uniqueIndex:idx_appointments_slot,priority:2" json:"date"`
	Time           string            `gorm:"size:5;not null;uniqueIndex:idx_appointments_slot,priority:3" json:"time"`
	Kind           AppointmentKind   `gorm:"size:20;not null" json:"appointmentType"`
	Status         AppointmentStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Notes          string            `gorm:"type:text" json:"notes,omitempty"`
	PatientInfo    PatientInfo       `gorm:"embedded;embeddedPrefix:patient_" json:"patientInfo"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`

	Patient      *User `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Practitioner *User `gorm:"foreignKey:PractitionerID;constraint:OnDelete:CASCADE" json:"-"`
}

// Involves reports whether userID is the patient or the practitioner on the record.
func (a *Appointment) Involves(userID uuid.UUID) bool {
	return a.PatientID == userID || a.PractitionerID == userID
}
