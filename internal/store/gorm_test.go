package store

import (
	"context"
	"os"
	"testing"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGormStore connects to TEST_DATABASE_URL and skips when it is unset. Rows
// created through the returned helper are removed when the test ends.
func newGormStore(t *testing.T) (*Gorm, func(role models.Role, first string) *models.User) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.Connect(&config.Config{DatabaseURL: url})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	s := NewGorm(db)
	var created []uuid.UUID
	t.Cleanup(func() {
		if len(created) == 0 {
			return
		}
		db.Where("patient_id IN ? OR practitioner_id IN ?", created, created).Delete(&models.Appointment{})
		db.Where("id IN ?", created).Delete(&models.User{})
	})

	user := func(role models.Role, first string) *models.User {
		t.Helper()
		u := &models.User{
			ID:           uuid.New(),
			FirstName:    first,
			LastName:     "Test",
			Email:        uuid.NewString() + "@example.com",
			PasswordHash: "x",
			Role:         role,
		}
		require.NoError(t, s.CreateUser(context.Background(), u))
		created = append(created, u.ID)
		return u
	}
	return s, user
}

func booking(patient, doc *models.User, date, tm string) *models.Appointment {
	return &models.Appointment{
		ID:             uuid.New(),
		PatientID:      patient.ID,
		PractitionerID: doc.ID,
		Date:           date,
		Time:           tm,
		Kind:           models.KindInitial,
		Status:         models.StatusPending,
	}
}

func TestGormUserConstraints(t *testing.T) {
	s, user := newGormStore(t)
	ctx := context.Background()

	u := user(models.RolePatient, "Jane")
	err := s.CreateUser(ctx, &models.User{ID: uuid.New(), Email: u.Email, Role: models.RolePatient})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = s.UserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormAppointmentLifecycle(t *testing.T) {
	s, user := newGormStore(t)
	ctx := context.Background()
	doc := user(models.RolePractitioner, "Doc")
	a := user(models.RolePatient, "A")
	b := user(models.RolePatient, "B")

	late := booking(a, doc, "2024-01-02", "09:00")
	early := booking(a, doc, "2024-01-01", "10:30")
	require.NoError(t, s.CreateAppointment(ctx, late))
	require.NoError(t, s.CreateAppointment(ctx, early))
	assert.ErrorIs(t, s.CreateAppointment(ctx, booking(b, doc, "2024-01-01", "10:30")), ErrDuplicate)
	assert.ErrorIs(t, s.CreateAppointment(ctx, booking(b, &models.User{ID: uuid.New()}, "2024-01-01", "10:30")), ErrInvalidReference)

	list, err := s.ListAppointments(ctx, identity.Identity{UserID: a.ID, Role: models.RolePatient})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, early.ID, list[0].ID)
	assert.Equal(t, late.ID, list[1].ID)
	require.NotNil(t, list[0].Practitioner)
	assert.Equal(t, "Doc", list[0].Practitioner.FirstName)

	times, err := s.BookedTimes(ctx, doc.ID, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30"}, times)

	early.Status = models.StatusConfirmed
	early.Time = "11:00"
	require.NoError(t, s.SaveAppointment(ctx, early))
	got, err := s.AppointmentByID(ctx, early.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Equal(t, "11:00", got.Time)

	late.Time = "11:00"
	late.Date = "2024-01-01"
	assert.ErrorIs(t, s.SaveAppointment(ctx, late), ErrDuplicate)
}

func TestGormSaveAfterDeleteDoesNotResurrect(t *testing.T) {
	s, user := newGormStore(t)
	ctx := context.Background()
	doc := user(models.RolePractitioner, "Doc")
	a := user(models.RolePatient, "A")

	appt := booking(a, doc, "2024-01-01", "10:00")
	require.NoError(t, s.CreateAppointment(ctx, appt))
	require.NoError(t, s.DeleteAppointment(ctx, appt.ID))

	appt.Status = models.StatusConfirmed
	assert.ErrorIs(t, s.SaveAppointment(ctx, appt), ErrNotFound)

	_, err := s.AppointmentByID(ctx, appt.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormDeletePatientRemovesBookings(t *testing.T) {
	s, user := newGormStore(t)
	ctx := context.Background()
	doc := user(models.RolePractitioner, "Doc")
	a := user(models.RolePatient, "A")

	require.NoError(t, s.CreateAppointment(ctx, booking(a, doc, "2024-01-01", "10:00")))
	assert.ErrorIs(t, s.DeletePatient(ctx, doc.ID), ErrNotFound)
	require.NoError(t, s.DeletePatient(ctx, a.ID))

	_, err := s.UserByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	times, err := s.BookedTimes(ctx, doc.ID, "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, times)
}
