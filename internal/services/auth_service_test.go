package services

import (
	"context"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupRequest(email string) *dto.SignupRequest {
	return &dto.SignupRequest{
		FirstName:      "Jane",
		LastName:       "Doe",
		Email:          email,
		Password:       "password123",
		DateOfBirth:    "1990-05-17",
		PlaceOfBirth:   "Lisbon",
		Phone:          "555-0199",
		Concern:        "Migraines",
		AgreeToTerms:   true,
		AgreeToPrivacy: true,
	}
}

func TestSignupTokenResolvesToCreatedUser(t *testing.T) {
	f := newFixture(t)

	resp, err := f.auth.Signup(context.Background(), signupRequest("Jane@Example.com"))
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, models.RolePatient, resp.User.Role)

	id, err := f.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id.UserID)
	assert.Equal(t, models.RolePatient, id.Role)

	stored, err := f.creds.FindByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.Equal(t, "1990-05-17", stored.DateOfBirth.Format(dto.DateLayout))
}

func TestSignupDuplicateEmailCreatesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.auth.Signup(ctx, signupRequest("jane@example.com"))
	require.NoError(t, err)

	req := signupRequest("JANE@example.com")
	req.FirstName = "Impostor"
	_, err = f.auth.Signup(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)

	stored, err := f.creds.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, stored.ID)
	assert.Equal(t, "Jane", stored.FirstName)
}

func TestSignupValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(r *dto.SignupRequest)
	}{
		{"missing first name", func(r *dto.SignupRequest) { r.FirstName = " " }},
		{"missing phone", func(r *dto.SignupRequest) { r.Phone = "" }},
		{"missing concern", func(r *dto.SignupRequest) { r.Concern = "" }},
		{"terms not accepted", func(r *dto.SignupRequest) { r.AgreeToTerms = false }},
		{"privacy not accepted", func(r *dto.SignupRequest) { r.AgreeToPrivacy = false }},
		{"bad birth date", func(r *dto.SignupRequest) { r.DateOfBirth = "17/05/1990" }},
		{"future birth date", func(r *dto.SignupRequest) { r.DateOfBirth = "2999-01-01" }},
		{"password too long", func(r *dto.SignupRequest) { r.Password = strings.Repeat("x", 80) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := signupRequest("v@example.com")
			tt.mutate(req)
			_, err := f.auth.Signup(context.Background(), req)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.auth.Signup(ctx, signupRequest("jane@example.com"))
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		resp, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "JANE@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, created.User.ID, resp.User.ID)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, resp)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "jane@example.com"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestMeRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Signup(ctx, signupRequest("jane@example.com"))
	require.NoError(t, err)

	login, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)

	id, err := f.tokens.Verify(login.Token)
	require.NoError(t, err)

	me, err := f.auth.Me(ctx, id.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", me.FirstName)
	assert.Equal(t, "Doe", me.LastName)
	assert.Equal(t, "jane@example.com", me.Email)
	assert.Equal(t, models.RolePatient, me.Role)
	assert.Equal(t, "1990-05-17", me.DateOfBirth)
}
