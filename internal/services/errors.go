package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalid     = errors.New("invalid input")
	ErrUnavailable = errors.New("integration unavailable")
	ErrBadCreds    = errors.New("invalid email or password")
)

// FieldError names the form field that failed validation.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string { return fmt.Sprintf("invalid %s", e.Field) }
func (e *FieldError) Unwrap() error { return ErrInvalid }

func invalid(field string) error { return &FieldError{Field: field} }

func unavailable(reason string) error { return fmt.Errorf("%w: %s", ErrUnavailable, reason) }
