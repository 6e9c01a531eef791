package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Role string

const (
	RolePatient      Role = "patient"
	RolePractitioner Role = "practitioner"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RolePractitioner
}

// TimeSlot is one bookable time-of-day label on a practitioner's schedule.
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// User holds both patients and practitioners. Practitioner-only fields stay
// empty for patients. Email is stored lowercased.
type User struct {
	ID              uuid.UUID                     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName       string                        `gorm:"size:100;not null" json:"firstName"`
	LastName        string                        `gorm:"size:100;not null" json:"lastName"`
	Email           string                        `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash    string                        `gorm:"not null" json:"-"`
	DateOfBirth     time.Time                     `gorm:"type:date" json:"dateOfBirth"`
	PlaceOfBirth    string                        `gorm:"size:255" json:"placeOfBirth,omitempty"`
	Phone           string                        `gorm:"size:50" json:"phone"`
	Concern         string                        `gorm:"type:text" json:"concern"`
	AgreeToTerms    bool                          `gorm:"not null;default:false" json:"agreeToTerms"`
	AgreeToPrivacy  bool                          `gorm:"not null;default:false" json:"agreeToPrivacy"`
	Role            Role                          `gorm:"size:20;not null;default:'patient';index" json:"role"`
	Specializations datatypes.JSONSlice[string]   `gorm:"type:jsonb" json:"specializations,omitempty"`
	TimeSlots       datatypes.JSONSlice[TimeSlot] `gorm:"type:jsonb" json:"timeSlots,omitempty"`
	CreatedAt       time.Time                     `json:"createdAt"`
	UpdatedAt       time.Time                     `json:"updatedAt"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
