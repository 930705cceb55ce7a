package apperrors

import (
	"fmt"
	"net/http"
	"strings"
)

// Stable machine-readable error codes. Clients branch on these, so they are
// part of the API contract and must not change.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNoUpdates  = "NO_UPDATES"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeInternal   = "INTERNAL_SERVER_ERROR"
)

// HTTPStatuser is implemented by errors that carry their own HTTP mapping.
// The handler boundary matches on this interface instead of inspecting
// error strings.
type HTTPStatuser interface {
	HTTPStatus() int
	Code() string
}

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violation found in one validation pass.
type ValidationError struct {
	Violations []Violation
}

// NewValidationError creates a validation error from the collected violations.
func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		messages[i] = fmt.Sprintf("%s %s", v.Field, v.Message)
	}
	return "validation failed: " + strings.Join(messages, ", ")
}

// HTTPStatus returns the HTTP status for this error.
func (e *ValidationError) HTTPStatus() int { return http.StatusBadRequest }

// Code returns the machine-readable code for this error.
func (e *ValidationError) Code() string { return CodeValidation }

// NoUpdatesError is raised when an update request supplies no mutable
// fields. The validator accepts an empty update body; the operation layer
// rejects it before touching the store.
type NoUpdatesError struct {
	Message string
}

// NewNoUpdatesError creates a new no-updates error.
func NewNoUpdatesError(message string) *NoUpdatesError {
	return &NoUpdatesError{Message: message}
}

// Error implements the error interface.
func (e *NoUpdatesError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "no fields to update"
}

// HTTPStatus returns the HTTP status for this error.
func (e *NoUpdatesError) HTTPStatus() int { return http.StatusBadRequest }

// Code returns the machine-readable code for this error.
func (e *NoUpdatesError) Code() string { return CodeNoUpdates }

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{Resource: resource, Message: message}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error.
func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }

// Code returns the machine-readable code for this error.
func (e *NotFoundError) Code() string { return CodeNotFound }

// ConflictError represents a uniqueness conflict, raised when the email
// pre-check finds an existing record.
type ConflictError struct {
	Resource string
	Message  string
}

// NewConflictError creates a new conflict error.
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{Resource: resource, Message: message}
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus returns the HTTP status for this error.
func (e *ConflictError) HTTPStatus() int { return http.StatusConflict }

// Code returns the machine-readable code for this error.
func (e *ConflictError) Code() string { return CodeConflict }

// InternalError represents an unclassified failure, e.g. store unreachable.
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{Message: message, Err: err}
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error.
func (e *InternalError) HTTPStatus() int { return http.StatusInternalServerError }

// Code returns the machine-readable code for this error.
func (e *InternalError) Code() string { return CodeInternal }
