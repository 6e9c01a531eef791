package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrUserNotFound         = errors.New("user not found")
	ErrPractitionerNotFound = errors.New("practitioner not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrSlotTaken            = errors.New("this time slot is already booked")
	ErrForbidden            = errors.New("forbidden")
	ErrPatientCannotMutate  = errors.New("patients cannot modify appointments")
)

// ValidationError is a client input problem. Its message is safe to return.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrMissingFields is returned when a required field is absent.
var ErrMissingFields error = &ValidationError{Message: "Missing required fields"}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
