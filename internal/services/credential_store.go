package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type NewUser struct {
	FirstName       string
	LastName        string
	Email           string
	DateOfBirth     time.Time
	PlaceOfBirth    string
	Phone           string
	Concern         string
	AgreeToTerms    bool
	AgreeToPrivacy  bool
	Role            models.Role
	Specializations []string
	TimeSlots       []models.TimeSlot
}

// UserChanges lists the only fields an account owner may change.
type UserChanges struct {
	FirstName *string
	LastName  *string
	Password  *string
}

// CredentialStore owns user records and password hashing. Plaintext
// passwords never leave this type.
type CredentialStore struct {
	users     UserRepository
	cost      int
	dummyHash []byte
}

func NewCredentialStore(users UserRepository, cost int) *CredentialStore {
	// Compared against on unknown emails so both login failures cost one bcrypt run.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return &CredentialStore{users: users, cost: cost, dummyHash: dummy}
}

func (s *CredentialStore) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", invalid("password must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

func (s *CredentialStore) Create(ctx context.Context, in NewUser, rawPassword string) (*models.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = models.NormalizeEmail(in.Email)
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || rawPassword == "" {
		return nil, ErrMissingFields
	}
	if !in.Role.Valid() {
		return nil, invalid("unknown role %q", in.Role)
	}

	hash, err := s.hash(rawPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:              uuid.New(),
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		PasswordHash:    hash,
		DateOfBirth:     in.DateOfBirth,
		PlaceOfBirth:    strings.TrimSpace(in.PlaceOfBirth),
		Phone:           strings.TrimSpace(in.Phone),
		Concern:         strings.TrimSpace(in.Concern),
		AgreeToTerms:    in.AgreeToTerms,
		AgreeToPrivacy:  in.AgreeToPrivacy,
		Role:            in.Role,
		Specializations: in.Specializations,
		TimeSlots:       in.TimeSlots,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.users.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *CredentialStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.users.UserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// Authenticate returns ErrInvalidCredentials for both an unknown email and a
// wrong password.
func (s *CredentialStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *CredentialStore) Update(ctx context.Context, id uuid.UUID, ch UserChanges) (*models.User, error) {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if ch.FirstName != nil {
		if v := strings.TrimSpace(*ch.FirstName); v != "" {
			u.FirstName = v
		}
	}
	if ch.LastName != nil {
		if v := strings.TrimSpace(*ch.LastName); v != "" {
			u.LastName = v
		}
	}
	if ch.Password != nil && *ch.Password != "" {
		hash, err := s.hash(*ch.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.users.SaveUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

// Delete removes a patient account together with its appointments.
func (s *CredentialStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.DeletePatient(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
