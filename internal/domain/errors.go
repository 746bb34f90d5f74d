package domain

import (
	"errors"
	"fmt"
)

// ValidationError signals missing or malformed required input. The core
// never silently defaults required text fields; callers reject these
// before any state changes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a required field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError signals that a referenced record does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrVersionConflict is returned by storage when an optimistic progress
// update lost a concurrent write. Callers may reload and retry.
var ErrVersionConflict = errors.New("progress version conflict")
