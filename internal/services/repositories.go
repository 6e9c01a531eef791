package services

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/google/uuid"
)

// UserRepository is implemented by store.Gorm and store.Memory. Lookup
// misses return store.ErrNotFound, unique violations store.ErrDuplicate.
type UserRepository interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
	DeletePatient(ctx context.Context, id uuid.UUID) error
	ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error)
}

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, a *models.Appointment) error
	AppointmentByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	ListAppointments(ctx context.Context, who identity.Identity) ([]models.Appointment, error)
	SaveAppointment(ctx context.Context, a *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
	BookedTimes(ctx context.Context, practitionerID uuid.UUID, date string) ([]string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
