package store

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/google/uuid"
)

type slotKey struct {
	practitionerID uuid.UUID
	date           string
	time           string
}

func slotOf(a *models.Appointment) slotKey {
	return slotKey{practitionerID: a.PractitionerID, date: a.Date, time: a.Time}
}

// Memory is an in-process store with the same uniqueness and reference rules
// as the PostgreSQL schema. Records are copied in and out.
type Memory struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]models.User
	emails       map[string]uuid.UUID
	appointments map[uuid.UUID]models.Appointment
	slots        map[slotKey]uuid.UUID
	now          func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:        make(map[uuid.UUID]models.User),
		emails:       make(map[string]uuid.UUID),
		appointments: make(map[uuid.UUID]models.Appointment),
		slots:        make(map[slotKey]uuid.UUID),
		now:          time.Now,
	}
}

func (m *Memory) Ping(context.Context) error { return nil }

func cloneUser(u models.User) models.User {
	u.Specializations = slices.Clone(u.Specializations)
	u.TimeSlots = slices.Clone(u.TimeSlots)
	return u
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.Email = models.NormalizeEmail(u.Email)
	if _, taken := m.emails[u.Email]; taken {
		return ErrDuplicate
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if _, exists := m.users[u.ID]; exists {
		return ErrDuplicate
	}
	now := m.now()
	u.CreatedAt, u.UpdatedAt = now, now

	m.users[u.ID] = cloneUser(*u)
	m.emails[u.Email] = u.ID
	return nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emails[models.NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	u := cloneUser(m.users[id])
	return &u, nil
}

func (m *Memory) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (m *Memory) SaveUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.users[u.ID]
	if !ok {
		return ErrNotFound
	}
	u.Email = models.NormalizeEmail(u.Email)
	if u.Email != current.Email {
		if _, taken := m.emails[u.Email]; taken {
			return ErrDuplicate
		}
		delete(m.emails, current.Email)
		m.emails[u.Email] = u.ID
	}
	u.CreatedAt = current.CreatedAt
	u.UpdatedAt = m.now()
	m.users[u.ID] = cloneUser(*u)
	return nil
}

func (m *Memory) DeletePatient(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok || u.Role != models.RolePatient {
		return ErrNotFound
	}
	for apptID, a := range m.appointments {
		if a.PatientID == id {
			delete(m.slots, slotOf(&a))
			delete(m.appointments, apptID)
		}
	}
	delete(m.emails, u.Email)
	delete(m.users, id)
	return nil
}

func (m *Memory) ListUsersByRole(_ context.Context, role models.Role) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]models.User, 0)
	for _, u := range m.users {
		if u.Role == role {
			list = append(list, cloneUser(u))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].FirstName != list[j].FirstName {
			return list[i].FirstName < list[j].FirstName
		}
		return list[i].LastName < list[j].LastName
	})
	return list, nil
}

func participant(u models.User) *models.User {
	return &models.User{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Role: u.Role}
}

// withParticipants must be called with m.mu held.
func (m *Memory) withParticipants(a models.Appointment) models.Appointment {
	a.Patient, a.Practitioner = nil, nil
	if u, ok := m.users[a.PatientID]; ok {
		a.Patient = participant(u)
	}
	if u, ok := m.users[a.PractitionerID]; ok {
		a.Practitioner = participant(u)
	}
	return a
}

func (m *Memory) CreateAppointment(_ context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[a.PatientID]; !ok {
		return ErrInvalidReference
	}
	if _, ok := m.users[a.PractitionerID]; !ok {
		return ErrInvalidReference
	}
	key := slotOf(a)
	if _, taken := m.slots[key]; taken {
		return ErrDuplicate
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	now := m.now()
	a.CreatedAt, a.UpdatedAt = now, now

	stored := *a
	stored.Patient, stored.Practitioner = nil, nil
	m.appointments[a.ID] = stored
	m.slots[key] = a.ID
	return nil
}

func (m *Memory) AppointmentByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	a = m.withParticipants(a)
	return &a, nil
}

func (m *Memory) ListAppointments(_ context.Context, who identity.Identity) ([]models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]models.Appointment, 0)
	for _, a := range m.appointments {
		if identity.CanSee(who, &a) {
			list = append(list, m.withParticipants(a))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date < list[j].Date
		}
		return list[i].Time < list[j].Time
	})
	return list, nil
}

func (m *Memory) SaveAppointment(_ context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.appointments[a.ID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := m.users[a.PractitionerID]; !ok {
		return ErrInvalidReference
	}
	oldKey, newKey := slotOf(&current), slotOf(a)
	if oldKey != newKey {
		if _, taken := m.slots[newKey]; taken {
			return ErrDuplicate
		}
		delete(m.slots, oldKey)
		m.slots[newKey] = a.ID
	}
	a.CreatedAt = current.CreatedAt
	a.UpdatedAt = m.now()

	stored := *a
	stored.Patient, stored.Practitioner = nil, nil
	m.appointments[a.ID] = stored
	return nil
}

func (m *Memory) DeleteAppointment(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.appointments[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.slots, slotOf(&a))
	delete(m.appointments, id)
	return nil
}

func (m *Memory) BookedTimes(_ context.Context, practitionerID uuid.UUID, date string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var times []string
	for key := range m.slots {
		if key.practitionerID == practitionerID && key.date == date {
			times = append(times, key.time)
		}
	}
	sort.Strings(times)
	return times, nil
}
