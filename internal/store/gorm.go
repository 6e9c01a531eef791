package store

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gorm is the PostgreSQL-backed store. Slot and email uniqueness are enforced
// by the indexes declared on the models.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Gorm) CreateUser(ctx context.Context, u *models.User) error {
	u.Email = models.NormalizeEmail(u.Email)
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Gorm) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Gorm) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Gorm) SaveUser(ctx context.Context, u *models.User) error {
	u.Email = models.NormalizeEmail(u.Email)
	res := s.db.WithContext(ctx).Model(u).Select("*").Omit("id", "created_at").Updates(u)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePatient removes the patient's appointments and then the user inside
// one transaction.
func (s *Gorm) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		res := tx.Where("role = ?", models.RolePatient).Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *Gorm) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("role = ?", role).
		Order("first_name ASC, last_name ASC").
		Find(&users).Error
	return users, translate(err)
}

func participantColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name", "email", "role")
}

func withParticipants(db *gorm.DB) *gorm.DB {
	return db.Preload("Patient", participantColumns).Preload("Practitioner", participantColumns)
}

func (s *Gorm) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error)
}

func (s *Gorm) AppointmentByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var a models.Appointment
	if err := s.db.WithContext(ctx).Scopes(withParticipants).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Gorm) ListAppointments(ctx context.Context, who identity.Identity) ([]models.Appointment, error) {
	var list []models.Appointment
	err := s.db.WithContext(ctx).
		Scopes(identity.ForParticipant(who), withParticipants).
		Order("date ASC, time ASC").
		Find(&list).Error
	return list, translate(err)
}

// SaveAppointment updates an existing row only. A row deleted in the meantime
// yields ErrNotFound instead of being inserted again.
func (s *Gorm) SaveAppointment(ctx context.Context, a *models.Appointment) error {
	res := s.db.WithContext(ctx).
		Model(a).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(a)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) BookedTimes(ctx context.Context, practitionerID uuid.UUID, date string) ([]string, error) {
	var times []string
	err := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("practitioner_id = ? AND date = ?", practitionerID, date).
		Pluck("time", &times).Error
	return times, translate(err)
}
