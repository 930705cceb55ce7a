package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomyStatusAndCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", NewValidationError(Violation{Field: "email", Message: "must be a valid email"}), http.StatusBadRequest, CodeValidation},
		{"no updates", NewNoUpdatesError(""), http.StatusBadRequest, CodeNoUpdates},
		{"not found", NewNotFoundError("user", ""), http.StatusNotFound, CodeNotFound},
		{"conflict", NewConflictError("email", ""), http.StatusConflict, CodeConflict},
		{"internal", NewInternalError("database unreachable", nil), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hs HTTPStatuser
			ok := errors.As(tt.err, &hs)
			assert.True(t, ok)
			assert.Equal(t, tt.status, hs.HTTPStatus())
			assert.Equal(t, tt.code, hs.Code())
		})
	}
}

func TestValidationError_AggregatesAllViolations(t *testing.T) {
	err := NewValidationError(
		Violation{Field: "name", Message: "must be at least 2 characters"},
		Violation{Field: "email", Message: "must be a valid email"},
	)

	assert.Contains(t, err.Error(), "name must be at least 2 characters")
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Len(t, err.Violations, 2)
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("failed to query users", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")

	wrapped := fmt.Errorf("pipeline: %w", err)
	var internal *InternalError
	assert.True(t, errors.As(wrapped, &internal))
}

func TestDefaultMessages(t *testing.T) {
	assert.Equal(t, "user not found", NewNotFoundError("user", "").Error())
	assert.Equal(t, "email already exists", NewConflictError("email", "").Error())
	assert.Equal(t, "no fields to update", NewNoUpdatesError("").Error())
}
