package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"message-scheduler-backend/internal/api/handlers"
	apperrors "message-scheduler-backend/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	validationErr := validator.New().Var("", "required")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validator errors", fmt.Errorf("validation failed: %w", validationErr), http.StatusBadRequest},
		{"invalid status", apperrors.ErrInvalidStatus, http.StatusBadRequest},
		{"invalid range", apperrors.ErrInvalidTimeRange, http.StatusBadRequest},
		{"invalid date", apperrors.ErrInvalidDateFormat, http.StatusBadRequest},
		{"not found", apperrors.ErrProjectNotFound, http.StatusNotFound},
		{"backend not found", apperrors.NewBackendError(apperrors.KindNotFound, "list", errors.New("missing")), http.StatusNotFound},
		{"already exists", apperrors.ErrProjectMemberExists, http.StatusConflict},
		{"unauthenticated", apperrors.ErrUnauthenticated, http.StatusUnauthorized},
		{"permission denied", apperrors.NewBackendError(apperrors.KindPermissionDenied, "list", errors.New("denied")), http.StatusForbidden},
		{"unavailable", fmt.Errorf("failed: %w", apperrors.NewBackendError(apperrors.KindUnavailable, "list", errors.New("refused"))), http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, handlers.StatusFor(tt.err))
		})
	}
}
