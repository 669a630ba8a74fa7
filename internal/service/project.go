package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"message-scheduler-backend/internal/database/models"
	apperrors "message-scheduler-backend/internal/errors"
	"message-scheduler-backend/internal/logger"
	"message-scheduler-backend/internal/realtime"
	"message-scheduler-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const deadlineWindow = 7 * 24 * time.Hour

// ProjectService handles business logic for projects and their teams
type ProjectService struct {
	repo       repository.ProjectRepositoryInterface
	joins      repository.ProjectTeamMemberRepositoryInterface
	users      repository.UserRepositoryInterface
	reconciler *Reconciler
	publisher  ChangePublisher
	validator  *validator.Validate
}

// NewProjectService creates a new project service
func NewProjectService(
	repo repository.ProjectRepositoryInterface,
	joins repository.ProjectTeamMemberRepositoryInterface,
	users repository.UserRepositoryInterface,
	reconciler *Reconciler,
	publisher ChangePublisher,
	validator *validator.Validate,
) *ProjectService {
	return &ProjectService{
		repo:       repo,
		joins:      joins,
		users:      users,
		reconciler: reconciler,
		publisher:  publisher,
		validator:  validator,
	}
}

// ProjectListFilter narrows the project list. A nil OwnerID lists every project.
type ProjectListFilter struct {
	OwnerID *uuid.UUID
	Status  models.ProjectStatus
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Title         string               `json:"title" validate:"required,min=1,max=200"`
	Description   string               `json:"description,omitempty" validate:"max=2000"`
	Status        models.ProjectStatus `json:"status,omitempty" validate:"omitempty,oneof=active completed draft"`
	DueDate       *time.Time           `json:"due_date,omitempty"`
	TeamMemberIDs []uuid.UUID          `json:"team_member_ids,omitempty"`
}

// UpdateProjectStatusRequest represents a status change
type UpdateProjectStatusRequest struct {
	Status models.ProjectStatus `json:"status" validate:"required,oneof=active completed draft"`
}

// AddProjectMemberRequest represents adding a member to a project team
type AddProjectMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// ProjectResponse represents a project with its resolved team
type ProjectResponse struct {
	ID             uuid.UUID            `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Status         models.ProjectStatus `json:"status"`
	MessageCount   int                  `json:"message_count"`
	ScheduledCount int                  `json:"scheduled_count"`
	UserID         uuid.UUID            `json:"user_id"`
	DueDate        *time.Time           `json:"due_date,omitempty"`
	CreatedAt      string               `json:"created_at"`
	UpdatedAt      string               `json:"updated_at"`
	Team           []TeamMember         `json:"team"`
}

// ProjectListResponse represents a list of projects
type ProjectListResponse struct {
	Projects        []ProjectResponse `json:"projects"`
	Total           int               `json:"total"`
	AssociationMode string            `json:"association_mode"`
}

// DeadlineResponse is a project due inside the dashboard window
type DeadlineResponse struct {
	ID      uuid.UUID            `json:"id"`
	Title   string               `json:"title"`
	Status  models.ProjectStatus `json:"status"`
	DueDate time.Time            `json:"due_date"`
}

// MemberWorkload is a dashboard row: a member and the projects they are on
type MemberWorkload struct {
	Member   TeamMember       `json:"member"`
	Projects []ProjectSummary `json:"projects"`
}

// DashboardResponse represents the dashboard payload
type DashboardResponse struct {
	TotalProjects     int                `json:"total_projects"`
	ActiveProjects    int                `json:"active_projects"`
	UpcomingDeadlines []DeadlineResponse `json:"upcoming_deadlines"`
	Members           []MemberWorkload   `json:"members"`
}

// ListWithTeam lists projects matching filter with their teams, most
// recently updated first
func (s *ProjectService) ListWithTeam(ctx context.Context, filter ProjectListFilter) (*ProjectListResponse, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	reconciled, err := s.reconciler.ProjectsWithTeam(ctx, repository.ProjectFilter{
		OwnerID: filter.OwnerID,
		Status:  filter.Status,
	})
	if err != nil {
		return nil, err
	}

	projects := make([]ProjectResponse, 0, len(reconciled.Projects))
	for _, pt := range reconciled.Projects {
		projects = append(projects, toProjectResponse(pt))
	}
	return &ProjectListResponse{
		Projects:        projects,
		Total:           len(projects),
		AssociationMode: reconciled.Mode,
	}, nil
}

// GetByID retrieves a project with its team
func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", repository.ClassifyError("get project", err))
	}

	reconciled, err := s.reconciler.TeamsFor(ctx, []models.Project{*project})
	if err != nil {
		return nil, err
	}
	resp := toProjectResponse(reconciled.Projects[0])
	return &resp, nil
}

// Create creates a project owned by ownerID. Status defaults to draft. Every
// listed team member must exist; nothing is written otherwise.
func (s *ProjectService) Create(ctx context.Context, ownerID uuid.UUID, req *CreateProjectRequest) (*ProjectResponse, error) {
	if ownerID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.ProjectStatusDraft
	}

	project := &models.Project{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		UserID:      ownerID,
		DueDate:     req.DueDate,
	}
	memberIDs := uniqueIDs(req.TeamMemberIDs)
	for _, memberID := range memberIDs {
		if _, err := s.users.GetByID(ctx, memberID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrTeamMemberNotFound
			}
			return nil, fmt.Errorf("failed to get team member: %w", repository.ClassifyError("get user", err))
		}
	}

	rows, err := s.repo.Create(ctx, project, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", repository.ClassifyError("create project", err))
	}
	publish(s.publisher, realtime.TableProjects, realtime.EventInsert, project.ID)
	for _, row := range rows {
		publish(s.publisher, realtime.TableProjectTeamMembers, realtime.EventInsert, row.ID)
	}

	logger.WithContext(ctx).WithField("project_id", project.ID).Info("Project created")
	return s.GetByID(ctx, project.ID)
}

// UpdateStatus changes a project's status. Any status may follow any other.
func (s *ProjectService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ProjectStatus) (*ProjectResponse, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project status: %w", repository.ClassifyError("update project status", err))
	}
	publish(s.publisher, realtime.TableProjects, realtime.EventUpdate, id)

	return s.GetByID(ctx, id)
}

// Delete removes a project; its messages are kept without a project
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", repository.ClassifyError("delete project", err))
	}

	logger.WithContext(ctx).WithField("project_id", id).Info("Project deleted")
	publish(s.publisher, realtime.TableProjects, realtime.EventDelete, id)
	return nil
}

// AddMember puts a user on a project's team
func (s *ProjectService) AddMember(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectTeamMember, error) {
	if _, err := s.repo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", repository.ClassifyError("get project", err))
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", repository.ClassifyError("get user", err))
	}

	exists, err := s.joins.Exists(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project team: %w", repository.ClassifyError("check project team member", err))
	}
	if exists {
		return nil, apperrors.ErrProjectMemberExists
	}

	row := &models.ProjectTeamMember{ProjectID: projectID, UserID: userID}
	if err := s.joins.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to add project team member: %w", repository.ClassifyError("create project team member", err))
	}

	publish(s.publisher, realtime.TableProjectTeamMembers, realtime.EventInsert, row.ID)
	publish(s.publisher, realtime.TableProjects, realtime.EventUpdate, projectID)
	return row, nil
}

// RemoveMember takes a user off a project's team
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	rowID, err := s.joins.Delete(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectMemberNotFound
		}
		return fmt.Errorf("failed to remove project team member: %w", repository.ClassifyError("delete project team member", err))
	}

	publish(s.publisher, realtime.TableProjectTeamMembers, realtime.EventDelete, rowID)
	publish(s.publisher, realtime.TableProjects, realtime.EventUpdate, projectID)
	return nil
}

// Dashboard summarises all projects, deadlines in the next seven days and
// each member's project list
func (s *ProjectService) Dashboard(ctx context.Context, now time.Time) (*DashboardResponse, error) {
	overview, err := s.reconciler.Overview(ctx)
	if err != nil {
		return nil, err
	}

	due, err := s.reconciler.Fetcher().ListProjectsDueBetween(ctx, now, now.Add(deadlineWindow))
	if err != nil {
		return nil, err
	}

	resp := &DashboardResponse{
		TotalProjects:     len(overview.Projects),
		UpcomingDeadlines: make([]DeadlineResponse, 0, len(due)),
		Members:           make([]MemberWorkload, 0, len(overview.Roster)),
	}
	for _, pt := range overview.Projects {
		if pt.Project.Status == models.ProjectStatusActive {
			resp.ActiveProjects++
		}
	}
	for _, p := range due {
		resp.UpcomingDeadlines = append(resp.UpcomingDeadlines, DeadlineResponse{
			ID:      p.ID,
			Title:   p.Title,
			Status:  p.Status,
			DueDate: *p.DueDate,
		})
	}
	for _, m := range overview.Roster {
		resp.Members = append(resp.Members, MemberWorkload{
			Member:   m,
			Projects: overview.Counts[m.ID].Projects,
		})
	}
	return resp, nil
}

func toProjectResponse(pt ProjectTeam) ProjectResponse {
	p := pt.Project
	team := pt.Team
	if team == nil {
		team = []TeamMember{}
	}
	return ProjectResponse{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Status:         p.Status,
		MessageCount:   p.MessageCount,
		ScheduledCount: p.ScheduledCount,
		UserID:         p.UserID,
		DueDate:        p.DueDate,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
		Team:           team,
	}
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
