package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/store"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const practitionerListKey = "directory:practitioners"

// PractitionerDirectory is the read side of practitioner records. Slot
// availability combines the stored schedule with the ledger's bookings.
type PractitionerDirectory struct {
	users    UserRepository
	appts    AppointmentRepository
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewPractitionerDirectory(users UserRepository, appts AppointmentRepository, cache Cache, cacheTTL time.Duration) *PractitionerDirectory {
	return &PractitionerDirectory{
		users:    users,
		appts:    appts,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// ListAll returns practitioners sorted by first then last name.
func (d *PractitionerDirectory) ListAll(ctx context.Context) ([]dto.PractitionerResponse, error) {
	var cached []dto.PractitionerResponse
	hit, err := d.cache.Get(ctx, practitionerListKey, &cached)
	if err != nil {
		slog.Warn("directory cache read failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	users, err := d.users.ListUsersByRole(ctx, models.RolePractitioner)
	if err != nil {
		return nil, fmt.Errorf("failed to list practitioners: %w", err)
	}

	list := make([]dto.PractitionerResponse, len(users))
	for i := range users {
		list[i] = dto.NewPractitionerResponse(&users[i])
	}

	if err := d.cache.Set(ctx, practitionerListKey, list, d.cacheTTL); err != nil {
		slog.Warn("directory cache write failed", "error", err)
	}
	return list, nil
}

// Invalidate drops the cached listing after practitioner records change.
func (d *PractitionerDirectory) Invalidate(ctx context.Context) error {
	return d.cache.Delete(ctx, practitionerListKey)
}

func (d *PractitionerDirectory) practitioner(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := d.users.UserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && u.Role != models.RolePractitioner) {
		return nil, ErrPractitionerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load practitioner: %w", err)
	}
	return u, nil
}

func (d *PractitionerDirectory) GetByID(ctx context.Context, id uuid.UUID) (*dto.PractitionerResponse, error) {
	u, err := d.practitioner(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPractitionerResponse(u)
	return &resp, nil
}

// AvailableSlots lists the slots on date that are open on the practitioner's
// schedule and not yet booked. An empty date means today (UTC).
func (d *PractitionerDirectory) AvailableSlots(ctx context.Context, id uuid.UUID, date string) (*dto.TimeSlotsResponse, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = d.now().UTC().Format(dateLayout)
	}
	if !validDate(date) {
		return nil, invalid("date must be formatted as YYYY-MM-DD")
	}

	var (
		u      *models.User
		booked []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		u, err = d.practitioner(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		booked, err = d.appts.BookedTimes(gctx, id, date)
		if err != nil {
			return fmt.Errorf("failed to load bookings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	slots := make([]models.TimeSlot, 0, len(u.TimeSlots))
	for _, s := range u.TimeSlots {
		if !s.Available {
			continue
		}
		if _, ok := taken[s.Time]; ok {
			continue
		}
		slots = append(slots, s)
	}

	return &dto.TimeSlotsResponse{PractitionerID: u.ID, Date: date, TimeSlots: slots}, nil
}
