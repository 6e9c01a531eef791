package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/google/uuid"
)

type AuthService struct {
	creds  *CredentialStore
	tokens *TokenService
	now    func() time.Time
}

func NewAuthService(creds *CredentialStore, tokens *TokenService) *AuthService {
	return &AuthService{creds: creds, tokens: tokens, now: time.Now}
}

// Signup always creates a patient. Practitioners are provisioned by cmd/seed.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(req.Phone) == "" || strings.TrimSpace(req.Concern) == "" || strings.TrimSpace(req.DateOfBirth) == "" {
		return nil, ErrMissingFields
	}
	if !req.AgreeToTerms || !req.AgreeToPrivacy {
		return nil, invalid("You must agree to the terms of service and privacy policy")
	}

	dob, err := time.Parse(dto.DateLayout, strings.TrimSpace(req.DateOfBirth))
	if err != nil {
		return nil, invalid("dateOfBirth must be formatted as YYYY-MM-DD")
	}
	if dob.After(s.now()) {
		return nil, invalid("dateOfBirth cannot be in the future")
	}

	user, err := s.creds.Create(ctx, NewUser{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		DateOfBirth:    dob,
		PlaceOfBirth:   req.PlaceOfBirth,
		Phone:          req.Phone,
		Concern:        req.Concern,
		AgreeToTerms:   true,
		AgreeToPrivacy: true,
		Role:           models.RolePatient,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	return s.respond(user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.creds.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return s.respond(user)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.creds.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := dto.NewProfileResponse(user)
	return &profile, nil
}

func (s *AuthService) respond(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserSummary(user)}, nil
}
