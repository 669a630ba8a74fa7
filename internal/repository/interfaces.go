package repository

import (
	"context"
	"time"

	"message-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user (team member) repository operations
type UserRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectRepositoryInterface defines the interface for project repository operations
type ProjectRepositoryInterface interface {
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	GetDueBetween(ctx context.Context, from, to time.Time) ([]models.Project, error)
	Create(ctx context.Context, project *models.Project, memberIDs []uuid.UUID) ([]models.ProjectTeamMember, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ProjectStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectTeamMemberRepositoryInterface defines the interface for the project/member join relation
type ProjectTeamMemberRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.ProjectTeamMember, error)
	Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, member *models.ProjectTeamMember) error
	Delete(ctx context.Context, projectID, userID uuid.UUID) (uuid.UUID, error)
}

// ScheduledMessageRepositoryInterface defines the interface for scheduled message repository operations
type ScheduledMessageRepositoryInterface interface {
	List(ctx context.Context, filter MessageFilter) ([]models.ScheduledMessage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ScheduledMessage, error)
	Create(ctx context.Context, msg *models.ScheduledMessage) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.MessageStatus) error
	InsertIfEmpty(ctx context.Context, msgs []models.ScheduledMessage) (bool, error)
	ProjectStats(ctx context.Context) ([]ProjectMessageStat, error)
}
