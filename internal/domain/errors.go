package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by the workflow, services and
// repositories wraps exactly one of these so callers can use errors.Is.
var (
	// ErrValidation covers malformed input: empty notes, empty line items on
	// finalize, unknown factor options and similar.
	ErrValidation = errors.New("validation failed")

	// ErrGuardViolation is returned when an operation is not legal for the
	// submission's current status.
	ErrGuardViolation = errors.New("transition not allowed")

	ErrNotFound = errors.New("not found")

	// ErrUpstream wraps failures of collaborators: persistence, mail, the
	// suggestion catalog or the data warehouse.
	ErrUpstream = errors.New("upstream failure")

	// ErrForbidden is a role mismatch. It matches ErrGuardViolation too.
	ErrForbidden error = forbiddenError{}
)

type forbiddenError struct{}

func (forbiddenError) Error() string { return "role not permitted" }

func (forbiddenError) Is(target error) bool { return target == ErrGuardViolation }

// Validationf returns an ErrValidation with a formatted message
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Guardf returns an ErrGuardViolation with a formatted message
func Guardf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGuardViolation, fmt.Sprintf(format, args...))
}

// Forbiddenf returns an ErrForbidden with a formatted message
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// NotFoundf returns an ErrNotFound with a formatted message
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Upstream wraps a collaborator failure, keeping the original error in the chain
func Upstream(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstream, op, err)
}

// APIError represents a standardized API error with HTTP status code
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// ValidationMessages maps validator tags to user-friendly messages
var ValidationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Must be a valid email address",
	"max":      "Exceeds maximum length",
	"min":      "Below minimum length",
	"gte":      "Must be greater than or equal to minimum value",
	"gt":       "Must be greater than minimum value",
	"lte":      "Must be less than or equal to maximum value",
	"lt":       "Must be less than maximum value",
	"uuid":     "Must be a valid UUID",
	"oneof":    "Must be one of the allowed values",
	"len":      "Must be exactly the specified length",
	"dive":     "Contains an invalid entry",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

// Common error types for RFC 7807 Problem Details
const (
	ErrorTypeValidation   = "validation_error"
	ErrorTypeNotFound     = "not_found"
	ErrorTypeBadRequest   = "bad_request"
	ErrorTypeConflict     = "conflict"
	ErrorTypeUnauthorized = "unauthorized"
	ErrorTypeForbidden    = "forbidden"
	ErrorTypeUpstream     = "upstream_error"
	ErrorTypeInternal     = "internal_error"
)
