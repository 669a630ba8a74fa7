package repository

import (
	"errors"
	"time"

	apperrors "message-scheduler-backend/internal/errors"
	"message-scheduler-backend/internal/logger"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sony/gobreaker"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes that are not availability problems
const (
	pgUndefinedTable        = "42P01"
	pgInsufficientPrivilege = "42501"
)

// Guard runs store calls through a circuit breaker and turns their failures
// into apperrors.BackendError values
type Guard struct {
	cb *gobreaker.CircuitBreaker
}

// NewGuard creates a guard whose breaker opens after maxFailures consecutive
// unavailable errors and stays open for openTimeout
func NewGuard(name string, maxFailures uint32, openTimeout time.Duration) *Guard {
	if maxFailures == 0 {
		maxFailures = 5
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// only availability problems count against the breaker
			return err == nil || ClassifyKind(err) != apperrors.KindUnavailable
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.New().WithFields(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Backend circuit breaker changed state")
		},
	})
	return &Guard{cb: cb}
}

// Do runs fn through the breaker. A nil error means fn succeeded; anything
// else is a *apperrors.BackendError tagged with op.
func (g *Guard) Do(op string, fn func() error) error {
	_, err := g.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperrors.NewBackendError(apperrors.KindUnavailable, op, err)
	}
	return ClassifyError(op, err)
}

// State reports the breaker state, for health reporting
func (g *Guard) State() string {
	return g.cb.State().String()
}

// ClassifyError wraps err in a BackendError of the matching kind. Errors that
// already carry a kind keep it.
func ClassifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	var backendErr *apperrors.BackendError
	if errors.As(err, &backendErr) {
		return err
	}
	return apperrors.NewBackendError(ClassifyKind(err), op, err)
}

// ClassifyKind decides which backend kind err belongs to
func ClassifyKind(err error) apperrors.BackendKind {
	if kind, ok := apperrors.KindOf(err); ok {
		return kind
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.KindNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedTable:
			return apperrors.KindNotFound
		case pgInsufficientPrivilege:
			return apperrors.KindPermissionDenied
		}
	}
	return apperrors.KindUnavailable
}
