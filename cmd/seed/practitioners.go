package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/services"
	"github.com/brianvoe/gofakeit/v7"
)

const defaultPassword = "password123"

type practitioner struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Concern         string
	Specializations []string
}

var defaultPractitioners = []practitioner{
	{"Dr. Sarah", "Johnson", "sarah.johnson@hmbpro.com", "555-0101", "Anxiety & Stress Management", []string{"Anxiety", "Stress", "Mindfulness"}},
	{"Dr. Michael", "Chen", "michael.chen@hmbpro.com", "555-0102", "Neurofeedback & Brain Training", []string{"Neurofeedback", "ADHD", "Cognitive Training"}},
	{"Dr. Emily", "Rodriguez", "emily.rodriguez@hmbpro.com", "555-0103", "Chronic Pain & Physical Therapy", []string{"Chronic Pain", "Physical Therapy", "Biofeedback"}},
	{"Dr. James", "Wilson", "james.wilson@hmbpro.com", "555-0104", "Trauma & PTSD Treatment", []string{"PTSD", "Trauma", "EMDR"}},
	{"Dr. Lisa", "Thompson", "lisa.thompson@hmbpro.com", "555-0105", "Pediatric ADHD & Learning Disorders", []string{"Pediatric ADHD", "Learning Disorders", "Child Psychology"}},
	{"Dr. Robert", "Kumar", "robert.kumar@hmbpro.com", "555-0106", "Cardiovascular Health & Heart Rate Variability", []string{"Cardiovascular Health", "HRV", "Stress Management"}},
}

var fakeSpecialties = []string{
	"Anxiety", "Biofeedback", "Cardiology", "Chronic Pain", "Dermatology",
	"General Practice", "Neurology", "Pediatrics", "Psychiatry", "Sleep Medicine",
}

// timeSlots builds half-hour slots from 09:00 to 16:30, each open with a 70%
// chance.
func timeSlots(f *gofakeit.Faker) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, 16)
	for hour := 9; hour < 17; hour++ {
		for minute := 0; minute < 60; minute += 30 {
			slots = append(slots, models.TimeSlot{
				Time:      fmt.Sprintf("%02d:%02d", hour, minute),
				Available: f.Float64() > 0.3,
			})
		}
	}
	return slots
}

func fakePractitioners(f *gofakeit.Faker, n int) []practitioner {
	out := make([]practitioner, 0, n)
	for i := 0; i < n; i++ {
		first, last := f.FirstName(), f.LastName()
		specs := make([]string, 0, 2)
		for len(specs) < 2 {
			s := f.RandomString(fakeSpecialties)
			if len(specs) == 0 || specs[0] != s {
				specs = append(specs, s)
			}
		}
		out = append(out, practitioner{
			FirstName:       "Dr. " + first,
			LastName:        last,
			Email:           strings.ToLower(fmt.Sprintf("%s.%s.%d@hmbpro.com", first, last, f.Number(100, 999))),
			Phone:           f.Phone(),
			Concern:         specs[0],
			Specializations: specs,
		})
	}
	return out
}

// seed creates each practitioner and skips emails that already exist. It
// returns how many records were created.
func seed(ctx context.Context, creds *services.CredentialStore, f *gofakeit.Faker, list []practitioner, password string) (int, error) {
	dob := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	created := 0
	for _, p := range list {
		u, err := creds.Create(ctx, services.NewUser{
			FirstName:       p.FirstName,
			LastName:        p.LastName,
			Email:           p.Email,
			DateOfBirth:     dob,
			Phone:           p.Phone,
			Concern:         p.Concern,
			AgreeToTerms:    true,
			AgreeToPrivacy:  true,
			Role:            models.RolePractitioner,
			Specializations: p.Specializations,
			TimeSlots:       timeSlots(f),
		}, password)
		if errors.Is(err, services.ErrEmailTaken) {
			slog.Warn("practitioner already exists, skipping", "email", p.Email)
			continue
		}
		if err != nil {
			return created, fmt.Errorf("create %s: %w", p.Email, err)
		}
		created++
		slog.Info("practitioner created", "id", u.ID, "name", u.FullName(), "email", u.Email)
	}
	return created, nil
}

// single builds the one practitioner requested with -email and -name. The
// name is split on its first space.
func single(email, name string) (practitioner, error) {
	email = strings.TrimSpace(email)
	first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if email == "" || first == "" {
		return practitioner{}, errors.New("-email, -password and -name are required together")
	}
	if last == "" {
		return practitioner{}, errors.New("-name must contain a first and a last name")
	}
	return practitioner{FirstName: first, LastName: last, Email: email}, nil
}
