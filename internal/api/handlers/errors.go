package handlers

import (
	"errors"
	"net/http"

	apperrors "message-scheduler-backend/internal/errors"
	"message-scheduler-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error" example:"error message"`
}

// StatusFor maps a service error onto an HTTP status
func StatusFor(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs),
		apperrors.IsValidation(err),
		errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrInvalidTimeRange),
		errors.Is(err, apperrors.ErrInvalidDateFormat):
		return http.StatusBadRequest
	case apperrors.IsNotFound(err), apperrors.IsBackendNotFound(err):
		return http.StatusNotFound
	case apperrors.IsAlreadyExists(err):
		return http.StatusConflict
	case apperrors.IsAuthentication(err):
		return http.StatusUnauthorized
	case apperrors.IsAuthorization(err), apperrors.IsPermissionDenied(err):
		return http.StatusForbidden
	case apperrors.IsUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the mapped status. Server-side failures are
// logged and reported with a generic message.
func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		msg = "Backend temporarily unavailable"
	case http.StatusInternalServerError:
		msg = "Internal server error"
	}
	if status >= http.StatusInternalServerError {
		logger.WithContext(c).WithError(err).WithField("path", c.FullPath()).Error("Request failed")
	}
	c.JSON(status, ErrorResponse{Error: msg})
}

// parseUUIDParam reads a UUID path parameter, writing a 400 when malformed
func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + label + " ID"})
		return uuid.Nil, false
	}
	return id, true
}

// parseUUIDQuery reads an optional UUID query parameter
func parseUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return nil, false
	}
	return &id, true
}
