package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/hmbpro-backend/internal/models"
	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

// FlexBool accepts both a JSON boolean and the string "true"/"false", which
// browser form serializers commonly send for checkboxes.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = FlexBool(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = FlexBool(v)
	return nil
}

type SignupRequest struct {
	FirstName      string   `json:"firstName" validate:"required"`
	LastName       string   `json:"lastName" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=8"`
	DateOfBirth    string   `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	PlaceOfBirth   string   `json:"placeOfBirth"`
	Phone          string   `json:"phone" validate:"required"`
	Concern        string   `json:"concern" validate:"required"`
	AgreeToTerms   FlexBool `json:"agreeToTerms"`
	AgreeToPrivacy FlexBool `json:"agreeToPrivacy"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserSummary struct {
	ID        uuid.UUID   `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
}

func NewUserSummary(u *models.User) UserSummary {
	return UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type ProfileResponse struct {
	UserSummary
	DateOfBirth     string            `json:"dateOfBirth,omitempty"`
	PlaceOfBirth    string            `json:"placeOfBirth,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	Concern         string            `json:"concern,omitempty"`
	Specializations []string          `json:"specializations,omitempty"`
	TimeSlots       []models.TimeSlot `json:"timeSlots,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

func NewProfileResponse(u *models.User) ProfileResponse {
	p := ProfileResponse{
		UserSummary:     NewUserSummary(u),
		PlaceOfBirth:    u.PlaceOfBirth,
		Phone:           u.Phone,
		Concern:         u.Concern,
		Specializations: u.Specializations,
		TimeSlots:       u.TimeSlots,
		CreatedAt:       u.CreatedAt,
	}
	if !u.DateOfBirth.IsZero() {
		p.DateOfBirth = u.DateOfBirth.Format(DateLayout)
	}
	return p
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
