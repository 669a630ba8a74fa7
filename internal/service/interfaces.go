package service

import (
	"context"
	"time"

	"message-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// TeamServiceInterface defines the interface for the team service
type TeamServiceInterface interface {
	ListMembers(ctx context.Context, filter MemberFilter) (*TeamListResponse, error)
	GetMemberProjects(ctx context.Context, id uuid.UUID) (*MemberProjectsResponse, error)
	UpdateMember(ctx context.Context, id uuid.UUID, req *UpdateMemberRequest) (*TeamMember, error)
	DeleteMember(ctx context.Context, id uuid.UUID) error
}

// ProjectServiceInterface defines the interface for the project service
type ProjectServiceInterface interface {
	ListWithTeam(ctx context.Context, filter ProjectListFilter) (*ProjectListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProjectResponse, error)
	Create(ctx context.Context, ownerID uuid.UUID, req *CreateProjectRequest) (*ProjectResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ProjectStatus) (*ProjectResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectTeamMember, error)
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error
	Dashboard(ctx context.Context, now time.Time) (*DashboardResponse, error)
}

// MessageServiceInterface defines the interface for the message service
type MessageServiceInterface interface {
	List(ctx context.Context, filter MessageListFilter) (*MessageListResponse, error)
	Schedule(ctx context.Context, req *ScheduleMessageRequest) (*MessageResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.MessageStatus) (*MessageResponse, error)
	MessagesOn(ctx context.Context, day time.Time) (*MessageListResponse, error)
	DaysWithMessages(ctx context.Context, from, to time.Time) (*CalendarDaysResponse, error)
	Seed(ctx context.Context) (*SeedResponse, error)
}

var (
	_ TeamServiceInterface    = (*TeamService)(nil)
	_ ProjectServiceInterface = (*ProjectService)(nil)
	_ MessageServiceInterface = (*MessageService)(nil)
)
