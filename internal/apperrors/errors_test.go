package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatchesSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		status   int
	}{
		{"not found", NewNotFoundError("lead not found"), ErrNotFound, http.StatusNotFound},
		{"validation", NewValidationFailedError("name is required"), ErrValidation, http.StatusBadRequest},
		{"conflict", NewConflictError("unit already sold"), ErrConflict, http.StatusConflict},
		{"duplicate", NewConflictError("email exists"), ErrDuplicate, http.StatusConflict},
		{"unauthorized", NewUnauthorizedError("no tenant"), ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("admins only"), ErrForbidden, http.StatusForbidden},
		{"internal", NewInternalError("query failed", context.DeadlineExceeded), ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service layer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.status, StatusCode(wrapped))
		})
	}
}

func TestAppErrorUnwrapsCause(t *testing.T) {
	err := NewInternalError("failed to load ledger", context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "failed to load ledger: context deadline exceeded", err.Error())
}

func TestStatusCodeDefaultsToInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
	assert.Equal(t, http.StatusOK, StatusCode(nil))
	assert.Equal(t, http.StatusNotFound, StatusCode(fmt.Errorf("wrap: %w", ErrNotFound)))
}
