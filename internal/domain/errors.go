package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrLookup        = errors.New("lookup failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
// Messages are user-facing and end up in the rendered error block.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// LookupError is returned when the dictionary lookup cannot produce a result:
// transport failure, non-success status, or an empty/malformed payload.
// Message is what the user sees; Cause keeps the underlying error for logs.
type LookupError struct {
	Word    string
	Status  int
	Message string
	Cause   error
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("lookup %q: %s", e.Word, e.Message)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Is reports ErrLookup so callers can match on the category.
func (e *LookupError) Is(target error) bool { return target == ErrLookup }

func (e *LookupError) Unwrap() error { return e.Cause }

// DisplayMessage extracts the user-facing message carried by err.
// Errors that carry none yield fallback.
func DisplayMessage(err error, fallback string) string {
	var verr *ValidationError
	if errors.As(err, &verr) && len(verr.Errors) > 0 {
		return verr.Errors[0].Message
	}
	var lerr *LookupError
	if errors.As(err, &lerr) && lerr.Message != "" {
		return lerr.Message
	}
	return fallback
}
