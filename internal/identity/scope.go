package identity

import (
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"gorm.io/gorm"
)

// ForParticipant restricts appointment queries to rows the caller takes part in.
// Unknown roles match nothing.
func ForParticipant(id Identity) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch id.Role {
		case models.RolePatient:
			return db.Where("patient_id = ?", id.UserID)
		case models.RolePractitioner:
			return db.Where("practitioner_id = ?", id.UserID)
		default:
			return db.Where("1 = 0")
		}
	}
}

// CanSee is the in-memory counterpart of ForParticipant.
func CanSee(id Identity, a *models.Appointment) bool {
	switch id.Role {
	case models.RolePatient:
		return a.PatientID == id.UserID
	case models.RolePractitioner:
		return a.PractitionerID == id.UserID
	default:
		return false
	}
}
