package service

import (
	"context"
	"time"

	"message-scheduler-backend/internal/database/models"
	apperrors "message-scheduler-backend/internal/errors"
	"message-scheduler-backend/internal/logger"
	"message-scheduler-backend/internal/repository"

	"github.com/google/uuid"
)

// EntityFetcher reads raw collections through the backend guard. Every method
// returns either data or a classified *errors.BackendError, so an empty
// result always means "confirmed empty".
type EntityFetcher struct {
	users    repository.UserRepositoryInterface
	projects repository.ProjectRepositoryInterface
	joins    repository.ProjectTeamMemberRepositoryInterface
	messages repository.ScheduledMessageRepositoryInterface
	guard    *repository.Guard
}

// NewEntityFetcher creates a new entity fetcher
func NewEntityFetcher(
	users repository.UserRepositoryInterface,
	projects repository.ProjectRepositoryInterface,
	joins repository.ProjectTeamMemberRepositoryInterface,
	messages repository.ScheduledMessageRepositoryInterface,
	guard *repository.Guard,
) *EntityFetcher {
	return &EntityFetcher{
		users:    users,
		projects: projects,
		joins:    joins,
		messages: messages,
		guard:    guard,
	}
}

// ListTeamMembers returns the roster built from every user row
func (f *EntityFetcher) ListTeamMembers(ctx context.Context) ([]TeamMember, error) {
	var users []models.User
	err := f.read(ctx, "list team members", func() (err error) {
		users, err = f.users.GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return BuildRoster(users), nil
}

// ListProjects returns the projects matching filter
func (f *EntityFetcher) ListProjects(ctx context.Context, filter repository.ProjectFilter) ([]models.Project, error) {
	var projects []models.Project
	err := f.read(ctx, "list projects", func() (err error) {
		projects, err = f.projects.List(ctx, filter)
		return err
	})
	return projects, err
}

// ListProjectsDueBetween returns projects due in [from, to]
func (f *EntityFetcher) ListProjectsDueBetween(ctx context.Context, from, to time.Time) ([]models.Project, error) {
	var projects []models.Project
	err := f.read(ctx, "list projects due", func() (err error) {
		projects, err = f.projects.GetDueBetween(ctx, from, to)
		return err
	})
	return projects, err
}

// ListProjectTeamMembers returns every join row
func (f *EntityFetcher) ListProjectTeamMembers(ctx context.Context) ([]models.ProjectTeamMember, error) {
	var joins []models.ProjectTeamMember
	err := f.read(ctx, "list project team members", func() (err error) {
		joins, err = f.joins.GetAll(ctx)
		return err
	})
	return joins, err
}

// ListScheduledMessages returns the messages matching filter
func (f *EntityFetcher) ListScheduledMessages(ctx context.Context, filter repository.MessageFilter) ([]models.ScheduledMessage, error) {
	var msgs []models.ScheduledMessage
	err := f.read(ctx, "list scheduled messages", func() (err error) {
		msgs, err = f.messages.List(ctx, filter)
		return err
	})
	return msgs, err
}

// ProjectMessageTallies returns per-project message counts by status
func (f *EntityFetcher) ProjectMessageTallies(ctx context.Context) (map[uuid.UUID]MessageTally, error) {
	var stats []repository.ProjectMessageStat
	err := f.read(ctx, "count project messages", func() (err error) {
		stats, err = f.messages.ProjectStats(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return TallyMessages(stats), nil
}

func (f *EntityFetcher) read(ctx context.Context, op string, fn func() error) error {
	if err := f.guard.Do(op, fn); err != nil {
		log := logger.WithContext(ctx).WithError(err).WithField("op", op)
		if apperrors.IsBackendNotFound(err) {
			log.Warn("Backend collection not found")
		} else {
			log.Error("Backend read failed")
		}
		return err
	}
	return nil
}
