package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type fixture struct {
	mem    *store.Memory
	cache  *mapCache
	creds  *CredentialStore
	tokens *TokenService
	auth   *AuthService
	users  *UserService
	ledger *AppointmentLedger
	dir    *PractitionerDirectory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := store.NewMemory()
	cache := newMapCache()
	creds := NewCredentialStore(mem, bcrypt.MinCost)
	tokens := NewTokenService(testSecret)
	return &fixture{
		mem:    mem,
		cache:  cache,
		creds:  creds,
		tokens: tokens,
		auth:   NewAuthService(creds, tokens),
		users:  NewUserService(creds),
		ledger: NewAppointmentLedger(mem, mem),
		dir:    NewPractitionerDirectory(mem, mem, cache, time.Minute),
	}
}

func (f *fixture) patient(t *testing.T, email, first string) identity.Identity {
	t.Helper()
	u, err := f.creds.Create(context.Background(), NewUser{
		FirstName:   first,
		LastName:    "Patient",
		Email:       email,
		DateOfBirth: time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
		Phone:       "555-0100",
		Concern:     "Sleep",
		Role:        models.RolePatient,
	}, "password123")
	require.NoError(t, err)
	return identity.Identity{UserID: u.ID, Role: u.Role}
}

func (f *fixture) practitioner(t *testing.T, email, first string, slots ...models.TimeSlot) identity.Identity {
	t.Helper()
	u, err := f.creds.Create(context.Background(), NewUser{
		FirstName:       first,
		LastName:        "Doctor",
		Email:           email,
		Concern:         "General",
		Role:            models.RolePractitioner,
		Specializations: []string{"General"},
		TimeSlots:       slots,
	}, "password123")
	require.NoError(t, err)
	return identity.Identity{UserID: u.ID, Role: u.Role}
}

func (f *fixture) book(t *testing.T, patient, practitioner identity.Identity, date, tm string) *models.Appointment {
	t.Helper()
	appt, err := f.ledger.Create(context.Background(), patient, NewAppointment{
		PractitionerID: practitioner.UserID,
		Date:           date,
		Time:           tm,
		Kind:           models.KindInitial,
	})
	require.NoError(t, err)
	return appt
}

// mapCache round-trips values through JSON like the Redis cache does.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	c.sets++
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}
