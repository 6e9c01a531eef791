package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/store"
	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type NewAppointment struct {
	PractitionerID uuid.UUID
	Date           string
	Time           string
	Kind           models.AppointmentKind
	Notes          string
	PatientInfo    models.PatientInfo
}

type PatientInfoChanges struct {
	FirstName      *string
	LastName       *string
	DateOfBirth    *string
	PlaceOfBirth   *string
	Email          *string
	Phone          *string
	Concern        *string
	MedicalHistory *string
}

type AppointmentChanges struct {
	Date        *string
	Time        *string
	Kind        *models.AppointmentKind
	Notes       *string
	Status      *models.AppointmentStatus
	PatientInfo *PatientInfoChanges
}

// AppointmentLedger applies the ownership rules: patients book and read their
// own appointments, the practitioner on a record reads and mutates it, and
// every other caller is denied.
type AppointmentLedger struct {
	appts AppointmentRepository
	users UserRepository
}

func NewAppointmentLedger(appts AppointmentRepository, users UserRepository) *AppointmentLedger {
	return &AppointmentLedger{appts: appts, users: users}
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func validTime(s string) bool {
	_, err := time.Parse(timeLayout, s)
	return err == nil && len(s) == len(timeLayout)
}

func participant(u *models.User) *models.User {
	return &models.User{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Role: u.Role}
}

func (l *AppointmentLedger) Create(ctx context.Context, who identity.Identity, in NewAppointment) (*models.Appointment, error) {
	if !who.Is(models.RolePatient) {
		return nil, ErrForbidden
	}
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	if in.PractitionerID == uuid.Nil || in.Date == "" || in.Time == "" || in.Kind == "" {
		return nil, ErrMissingFields
	}
	if !validDate(in.Date) {
		return nil, invalid("date must be formatted as YYYY-MM-DD")
	}
	if !validTime(in.Time) {
		return nil, invalid("time must be formatted as HH:MM")
	}
	if !in.Kind.Valid() {
		return nil, invalid("appointmentType must be one of: initial, followup")
	}

	practitioner, err := l.users.UserByID(ctx, in.PractitionerID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && practitioner.Role != models.RolePractitioner) {
		return nil, invalid("practitioner does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load practitioner: %w", err)
	}

	patient, err := l.users.UserByID(ctx, who.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}

	appt := &models.Appointment{
		ID:             uuid.New(),
		PatientID:      patient.ID,
		PractitionerID: practitioner.ID,
		Date:           in.Date,
		Time:           in.Time,
		Kind:           in.Kind,
		Status:         models.StatusPending,
		Notes:          strings.TrimSpace(in.Notes),
		PatientInfo:    snapshot(in.PatientInfo, patient),
	}

	if err := l.appts.CreateAppointment(ctx, appt); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, ErrSlotTaken
		case errors.Is(err, store.ErrInvalidReference):
			return nil, invalid("practitioner does not exist")
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	appt.Patient = participant(patient)
	appt.Practitioner = participant(practitioner)
	return appt, nil
}

// snapshot fills every empty intake field from the live patient record.
func snapshot(info models.PatientInfo, patient *models.User) models.PatientInfo {
	fill := func(dst *string, fallback string) {
		*dst = strings.TrimSpace(*dst)
		if *dst == "" {
			*dst = fallback
		}
	}
	dob := ""
	if !patient.DateOfBirth.IsZero() {
		dob = patient.DateOfBirth.Format(dateLayout)
	}
	fill(&info.FirstName, patient.FirstName)
	fill(&info.LastName, patient.LastName)
	fill(&info.DateOfBirth, dob)
	fill(&info.PlaceOfBirth, patient.PlaceOfBirth)
	fill(&info.Email, patient.Email)
	fill(&info.Phone, patient.Phone)
	fill(&info.Concern, patient.Concern)
	info.MedicalHistory = strings.TrimSpace(info.MedicalHistory)
	return info
}

func (l *AppointmentLedger) ListFor(ctx context.Context, who identity.Identity) ([]models.Appointment, error) {
	if !who.Role.Valid() {
		return nil, ErrForbidden
	}
	list, err := l.appts.ListAppointments(ctx, who)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return list, nil
}

func (l *AppointmentLedger) load(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	appt, err := l.appts.AppointmentByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	return appt, nil
}

func (l *AppointmentLedger) GetByID(ctx context.Context, id uuid.UUID, who identity.Identity) (*models.Appointment, error) {
	appt, err := l.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanSee(who, appt) {
		return nil, ErrForbidden
	}
	return appt, nil
}

// loadForMutation checks the role before the lookup so a patient learns
// nothing about appointment ids.
func (l *AppointmentLedger) loadForMutation(ctx context.Context, id uuid.UUID, who identity.Identity) (*models.Appointment, error) {
	if who.Is(models.RolePatient) {
		return nil, ErrPatientCannotMutate
	}
	if !who.Is(models.RolePractitioner) {
		return nil, ErrForbidden
	}
	appt, err := l.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.PractitionerID != who.UserID {
		return nil, ErrForbidden
	}
	return appt, nil
}

func (l *AppointmentLedger) Update(ctx context.Context, id uuid.UUID, who identity.Identity, ch AppointmentChanges) (*models.Appointment, error) {
	appt, err := l.loadForMutation(ctx, id, who)
	if err != nil {
		return nil, err
	}

	if ch.Date != nil {
		d := strings.TrimSpace(*ch.Date)
		if !validDate(d) {
			return nil, invalid("date must be formatted as YYYY-MM-DD")
		}
		appt.Date = d
	}
	if ch.Time != nil {
		t := strings.TrimSpace(*ch.Time)
		if !validTime(t) {
			return nil, invalid("time must be formatted as HH:MM")
		}
		appt.Time = t
	}
	if ch.Kind != nil {
		if !ch.Kind.Valid() {
			return nil, invalid("appointmentType must be one of: initial, followup")
		}
		appt.Kind = *ch.Kind
	}
	if ch.Status != nil {
		if !ch.Status.Valid() {
			return nil, invalid("status must be one of: pending, confirmed, completed, cancelled")
		}
		appt.Status = *ch.Status
	}
	if ch.Notes != nil {
		appt.Notes = strings.TrimSpace(*ch.Notes)
	}
	if ch.PatientInfo != nil {
		mergePatientInfo(&appt.PatientInfo, ch.PatientInfo)
	}

	if err := l.appts.SaveAppointment(ctx, appt); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, ErrSlotTaken
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appt, nil
}

func mergePatientInfo(dst *models.PatientInfo, ch *PatientInfoChanges) {
	set := func(field *string, v *string) {
		if v != nil {
			*field = strings.TrimSpace(*v)
		}
	}
	set(&dst.FirstName, ch.FirstName)
	set(&dst.LastName, ch.LastName)
	set(&dst.DateOfBirth, ch.DateOfBirth)
	set(&dst.PlaceOfBirth, ch.PlaceOfBirth)
	set(&dst.Email, ch.Email)
	set(&dst.Phone, ch.Phone)
	set(&dst.Concern, ch.Concern)
	set(&dst.MedicalHistory, ch.MedicalHistory)
}

func (l *AppointmentLedger) Delete(ctx context.Context, id uuid.UUID, who identity.Identity) error {
	if _, err := l.loadForMutation(ctx, id, who); err != nil {
		return err
	}
	if err := l.appts.DeleteAppointment(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}
