package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"message-scheduler-backend/internal/database/models"
	apperrors "message-scheduler-backend/internal/errors"
	"message-scheduler-backend/internal/logger"
	"message-scheduler-backend/internal/realtime"
	"message-scheduler-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamService handles the team page: roster, project counts and member edits
type TeamService struct {
	reconciler *Reconciler
	seeder     *MessageSeeder
	users      repository.UserRepositoryInterface
	publisher  ChangePublisher
	validator  *validator.Validate
	seedOnLoad bool
}

// NewTeamService creates a new team service
func NewTeamService(
	reconciler *Reconciler,
	seeder *MessageSeeder,
	users repository.UserRepositoryInterface,
	publisher ChangePublisher,
	validator *validator.Validate,
	seedOnLoad bool,
) *TeamService {
	return &TeamService{
		reconciler: reconciler,
		seeder:     seeder,
		users:      users,
		publisher:  publisher,
		validator:  validator,
		seedOnLoad: seedOnLoad,
	}
}

// MemberFilter narrows the team list
type MemberFilter struct {
	Search string
	Status models.MemberStatus
}

// TeamListResponse represents the team page payload
type TeamListResponse struct {
	Members []TeamMember `json:"members"`
	Total   int          `json:"total"`
	Seeded  int          `json:"seeded"`
}

// MemberProjectsResponse lists the projects a member works on
type MemberProjectsResponse struct {
	MemberID uuid.UUID        `json:"member_id"`
	Count    int              `json:"count"`
	Projects []ProjectSummary `json:"projects"`
}

// UpdateMemberRequest represents a profile edit
type UpdateMemberRequest struct {
	Name      string              `json:"name" validate:"required,min=2,max=200"`
	Email     string              `json:"email" validate:"required,email,max=255"`
	Phone     string              `json:"phone" validate:"required,min=5,max=50"`
	Role      string              `json:"role" validate:"required,max=100"`
	Status    models.MemberStatus `json:"status" validate:"required,oneof=active inactive"`
	AvatarURL *string             `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// ListMembers loads the roster, applies project counts, then seeds demo
// messages if the store is empty. The steps run one after another.
func (s *TeamService) ListMembers(ctx context.Context, filter MemberFilter) (*TeamListResponse, error) {
	roster, _, err := s.reconciler.MemberProjects(ctx)
	if err != nil {
		return nil, err
	}

	seeded := 0
	if s.seedOnLoad && s.seeder != nil {
		// a failed seed does not fail the page; the seeder has logged it
		if n, err := s.seeder.SeedIfEmpty(ctx, roster); err == nil && n > 0 {
			seeded = n
			publish(s.publisher, realtime.TableScheduledMessages, realtime.EventInsert, uuid.Nil)
		}
	}

	members := filterMembers(roster, filter)
	return &TeamListResponse{
		Members: members,
		Total:   len(members),
		Seeded:  seeded,
	}, nil
}

// GetMemberProjects returns the project list of one member
func (s *TeamService) GetMemberProjects(ctx context.Context, id uuid.UUID) (*MemberProjectsResponse, error) {
	_, counts, err := s.reconciler.MemberProjects(ctx)
	if err != nil {
		return nil, err
	}

	entry, ok := counts[id]
	if !ok {
		return nil, apperrors.ErrTeamMemberNotFound
	}
	return &MemberProjectsResponse{
		MemberID: id,
		Count:    entry.Count,
		Projects: entry.Projects,
	}, nil
}

// UpdateMember applies a profile edit
func (s *TeamService) UpdateMember(ctx context.Context, id uuid.UUID, req *UpdateMemberRequest) (*TeamMember, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamMemberNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", repository.ClassifyError("get user", err))
	}

	status := string(req.Status)
	user.Name = &req.Name
	user.Email = &req.Email
	user.Phone = &req.Phone
	user.Role = &req.Role
	user.Status = &status
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update team member: %w", repository.ClassifyError("update user", err))
	}

	logger.WithContext(ctx).WithField("member_id", id).Info("Team member updated")
	publish(s.publisher, realtime.TableUsers, realtime.EventUpdate, id)

	member := NewTeamMember(*user)
	return &member, nil
}

// DeleteMember removes a member. Its project memberships go with it and its
// messages lose their member reference.
func (s *TeamService) DeleteMember(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTeamMemberNotFound
		}
		return fmt.Errorf("failed to delete team member: %w", repository.ClassifyError("delete user", err))
	}

	logger.WithContext(ctx).WithField("member_id", id).Info("Team member deleted")
	publish(s.publisher, realtime.TableUsers, realtime.EventDelete, id)
	return nil
}

func filterMembers(roster []TeamMember, filter MemberFilter) []TeamMember {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]TeamMember, 0, len(roster))
	for _, m := range roster {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Name), search) &&
			!strings.Contains(strings.ToLower(m.Email), search) {
			continue
		}
		out = append(out, m)
	}
	return out
}
