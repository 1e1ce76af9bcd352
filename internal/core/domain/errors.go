package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrSubmissionFailed   = errors.New("submission failed")
	ErrPaymentFailed      = errors.New("payment failed")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Entity-specific not-found errors. Each matches ErrNotFound with errors.Is.
var (
	ErrAccountNotFound   = fmt.Errorf("account: %w", ErrNotFound)
	ErrRequestNotFound   = fmt.Errorf("certificate request: %w", ErrNotFound)
	ErrGrievanceNotFound = fmt.Errorf("grievance: %w", ErrNotFound)
	ErrPaymentNotFound   = fmt.Errorf("payment: %w", ErrNotFound)
	ErrSessionNotFound   = fmt.Errorf("session: %w", ErrNotFound)
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// TransitionError describes a rejected status change.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move from %q to %q", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
