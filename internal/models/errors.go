package models

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application
var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrEventNotFound           = errors.New("event not found")
	ErrNoActiveSession         = errors.New("no active session")
	ErrInvalidOrder            = errors.New("order requires at least one line item and a positive total")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrEmptyCart               = errors.New("cart is empty")
)

// ValidationError reports malformed or missing input. Operations that
// return one leave all prior state unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
