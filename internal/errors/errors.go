package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "on this project"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// BackendKind classifies a failed call to the backing store.
type BackendKind string

const (
	KindUnavailable      BackendKind = "unavailable"
	KindNotFound         BackendKind = "not_found"
	KindPermissionDenied BackendKind = "permission_denied"
)

// BackendError is the failure half of every read against the backing store.
// Callers get either data or a BackendError, never an empty result standing in for a failure.
type BackendError struct {
	Kind BackendKind
	Op   string
	Err  error
}

func (e *BackendError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("backend %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: backend %s: %v", e.Op, e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is matches any BackendError of the same kind
func (e *BackendError) Is(target error) bool {
	t, ok := target.(*BackendError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Entity Not Found Errors
var (
	ErrTeamMemberNotFound       = &NotFoundError{Entity: "team member"}
	ErrProjectNotFound          = &NotFoundError{Entity: "project"}
	ErrScheduledMessageNotFound = &NotFoundError{Entity: "scheduled message"}
	ErrProjectMemberNotFound    = &NotFoundError{Entity: "project team member"}
)

// Already Exists Errors
var (
	ErrProjectMemberExists = &AlreadyExistsError{Entity: "project team member", Context: "on this project"}
)

// Backend Errors
var (
	ErrBackendUnavailable      = &BackendError{Kind: KindUnavailable}
	ErrBackendNotFound         = &BackendError{Kind: KindNotFound}
	ErrBackendPermissionDenied = &BackendError{Kind: KindPermissionDenied}
)

// Business Logic Errors
var (
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTimeRange  = errors.New("invalid time range")
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

// Authentication Errors
var (
	ErrUnauthenticated = &AuthenticationError{Message: "authentication required"}
	ErrInvalidToken    = &AuthenticationError{Message: "invalid token"}
)

// Configuration Errors
var (
	ErrJWTSecretMissing = &ConfigurationError{Message: "JWT_SECRET must be set in production"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.Is(err, &NotFoundError{}) || errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.Is(err, &AlreadyExistsError{}) || errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.Is(err, &ValidationError{}) || errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.Is(err, &AuthenticationError{}) || errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.Is(err, &AuthorizationError{}) || errors.As(err, &authzErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.Is(err, &ConfigurationError{}) || errors.As(err, &configErr)
}

// KindOf returns the backend kind carried by err, if any
func KindOf(err error) (BackendKind, bool) {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr.Kind, true
	}
	return "", false
}

// IsUnavailable checks if an error is a BackendError of kind unavailable
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}

// IsBackendNotFound checks if an error is a BackendError of kind not_found
func IsBackendNotFound(err error) bool {
	return errors.Is(err, ErrBackendNotFound)
}

// IsPermissionDenied checks if an error is a BackendError of kind permission_denied
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrBackendPermissionDenied)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}

// NewBackendError creates a new BackendError for the given operation
func NewBackendError(kind BackendKind, op string, err error) error {
	return &BackendError{Kind: kind, Op: op, Err: err}
}
