package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
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

// DateLayout is the calendar day format used in queries and responses
const DateLayout = "2006-01-02"

// MessageService handles scheduled messages and the calendar views
type MessageService struct {
	repo      repository.ScheduledMessageRepositoryInterface
	projects  repository.ProjectRepositoryInterface
	users     repository.UserRepositoryInterface
	fetcher   *EntityFetcher
	seeder    *MessageSeeder
	publisher ChangePublisher
	validator *validator.Validate
}

// NewMessageService creates a new message service
func NewMessageService(
	repo repository.ScheduledMessageRepositoryInterface,
	projects repository.ProjectRepositoryInterface,
	users repository.UserRepositoryInterface,
	fetcher *EntityFetcher,
	seeder *MessageSeeder,
	publisher ChangePublisher,
	validator *validator.Validate,
) *MessageService {
	return &MessageService{
		repo:      repo,
		projects:  projects,
		users:     users,
		fetcher:   fetcher,
		seeder:    seeder,
		publisher: publisher,
		validator: validator,
	}
}

// MessageListFilter narrows the message list
type MessageListFilter struct {
	Status       models.MessageStatus
	TeamMemberID *uuid.UUID
	ProjectID    *uuid.UUID
}

// ScheduleMessageRequest represents the compose/schedule form
type ScheduleMessageRequest struct {
	Title         string     `json:"title" validate:"required,min=1,max=200"`
	Content       string     `json:"content" validate:"required"`
	Recipient     string     `json:"recipient" validate:"required,min=5,max=50"`
	ScheduledDate time.Time  `json:"scheduled_date" validate:"required"`
	TeamMemberID  *uuid.UUID `json:"team_member_id,omitempty"`
	ProjectID     *uuid.UUID `json:"project_id,omitempty"`
}

// UpdateMessageStatusRequest represents a status overwrite
type UpdateMessageStatusRequest struct {
	Status models.MessageStatus `json:"status" validate:"required,oneof=pending sent failed"`
}

// ProjectInfo names the project a message belongs to
type ProjectInfo struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// MessageResponse represents a message with its member resolved for display
type MessageResponse struct {
	ID               uuid.UUID            `json:"id"`
	Title            string               `json:"title"`
	Content          string               `json:"content"`
	Recipient        string               `json:"recipient"`
	ScheduledDate    time.Time            `json:"scheduled_date"`
	Status           models.MessageStatus `json:"status"`
	TeamMemberID     *uuid.UUID           `json:"team_member_id,omitempty"`
	TeamMemberName   string               `json:"team_member_name"`
	TeamMemberAvatar string               `json:"team_member_avatar"`
	Project          *ProjectInfo         `json:"project,omitempty"`
	CreatedAt        string               `json:"created_at"`
}

// MessageListResponse represents a list of messages
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
}

// CalendarDaysResponse lists the days in a range that have messages
type CalendarDaysResponse struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Days []string `json:"days"`
}

// SeedResponse reports how many demo messages were inserted
type SeedResponse struct {
	Inserted int `json:"inserted"`
}

// List returns messages matching filter ordered by scheduled date
func (s *MessageService) List(ctx context.Context, filter MessageListFilter) (*MessageListResponse, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}
	return s.list(ctx, repository.MessageFilter{
		Status:       filter.Status,
		TeamMemberID: filter.TeamMemberID,
		ProjectID:    filter.ProjectID,
	})
}

// Schedule stores a new pending message
func (s *MessageService) Schedule(ctx context.Context, req *ScheduleMessageRequest) (*MessageResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.TeamMemberID != nil {
		if _, err := s.users.GetByID(ctx, *req.TeamMemberID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrTeamMemberNotFound
			}
			return nil, fmt.Errorf("failed to get team member: %w", repository.ClassifyError("get user", err))
		}
	}
	if req.ProjectID != nil {
		if _, err := s.projects.GetByID(ctx, *req.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to get project: %w", repository.ClassifyError("get project", err))
		}
	}

	msg := &models.ScheduledMessage{
		Title:         req.Title,
		Content:       req.Content,
		Recipient:     req.Recipient,
		ScheduledDate: req.ScheduledDate,
		Status:        models.MessageStatusPending,
		TeamMemberID:  req.TeamMemberID,
		ProjectID:     req.ProjectID,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to schedule message: %w", repository.ClassifyError("create scheduled message", err))
	}

	logger.WithContext(ctx).WithField("message_id", msg.ID).Info("Message scheduled")
	publish(s.publisher, realtime.TableScheduledMessages, realtime.EventInsert, msg.ID)
	if msg.ProjectID != nil {
		publish(s.publisher, realtime.TableProjects, realtime.EventUpdate, *msg.ProjectID)
	}
	return s.resolveOne(ctx, msg)
}

// UpdateStatus overwrites a message's status. There are no transition rules.
func (s *MessageService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MessageStatus) (*MessageResponse, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScheduledMessageNotFound
		}
		return nil, fmt.Errorf("failed to update message status: %w", repository.ClassifyError("update message status", err))
	}
	publish(s.publisher, realtime.TableScheduledMessages, realtime.EventUpdate, id)

	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScheduledMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", repository.ClassifyError("get scheduled message", err))
	}
	return s.resolveOne(ctx, msg)
}

// MessagesOn returns the messages scheduled on the calendar day of day
func (s *MessageService) MessagesOn(ctx context.Context, day time.Time) (*MessageListResponse, error) {
	start := startOfDay(day)
	end := start.AddDate(0, 0, 1)
	return s.list(ctx, repository.MessageFilter{From: &start, To: &end})
}

// DaysWithMessages returns the distinct days in [from, to] that have at least
// one message, in ascending order
func (s *MessageService) DaysWithMessages(ctx context.Context, from, to time.Time) (*CalendarDaysResponse, error) {
	start := startOfDay(from)
	end := startOfDay(to).AddDate(0, 0, 1)
	if !start.Before(end) {
		return nil, apperrors.ErrInvalidTimeRange
	}

	msgs, err := s.fetcher.ListScheduledMessages(ctx, repository.MessageFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	days := make([]string, 0)
	for _, m := range msgs {
		d := m.ScheduledDate.In(start.Location()).Format(DateLayout)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Strings(days)

	return &CalendarDaysResponse{
		From: start.Format(DateLayout),
		To:   startOfDay(to).Format(DateLayout),
		Days: days,
	}, nil
}

// Seed runs the demo seeder over the current roster
func (s *MessageService) Seed(ctx context.Context) (*SeedResponse, error) {
	roster, err := s.fetcher.ListTeamMembers(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.seeder.SeedIfEmpty(ctx, roster)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		publish(s.publisher, realtime.TableScheduledMessages, realtime.EventInsert, uuid.Nil)
	}
	return &SeedResponse{Inserted: n}, nil
}

func (s *MessageService) list(ctx context.Context, filter repository.MessageFilter) (*MessageListResponse, error) {
	msgs, err := s.fetcher.ListScheduledMessages(ctx, filter)
	if err != nil {
		return nil, err
	}
	out, err := s.resolve(ctx, msgs)
	if err != nil {
		return nil, err
	}
	return &MessageListResponse{Messages: out, Total: len(out)}, nil
}

func (s *MessageService) resolveOne(ctx context.Context, msg *models.ScheduledMessage) (*MessageResponse, error) {
	out, err := s.resolve(ctx, []models.ScheduledMessage{*msg})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// resolve attaches member names, avatars and project titles. References that
// are nil or point at deleted rows resolve to the unknown placeholders.
func (s *MessageService) resolve(ctx context.Context, msgs []models.ScheduledMessage) ([]MessageResponse, error) {
	out := make([]MessageResponse, 0, len(msgs))
	if len(msgs) == 0 {
		return out, nil
	}

	roster, err := s.fetcher.ListTeamMembers(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.fetcher.ListProjects(ctx, repository.ProjectFilter{})
	if err != nil {
		return nil, err
	}

	members := make(map[uuid.UUID]TeamMember, len(roster))
	for _, m := range roster {
		members[m.ID] = m
	}
	titles := make(map[uuid.UUID]string, len(projects))
	for _, p := range projects {
		titles[p.ID] = p.Title
	}

	for _, m := range msgs {
		resp := MessageResponse{
			ID:               m.ID,
			Title:            m.Title,
			Content:          m.Content,
			Recipient:        m.Recipient,
			ScheduledDate:    m.ScheduledDate,
			Status:           m.Status,
			TeamMemberID:     m.TeamMemberID,
			TeamMemberName:   UnknownName,
			TeamMemberAvatar: AvatarPlaceholder(uuid.Nil),
			CreatedAt:        m.CreatedAt.Format(time.RFC3339),
		}
		if m.TeamMemberID != nil {
			resp.TeamMemberAvatar = AvatarPlaceholder(*m.TeamMemberID)
			if member, ok := members[*m.TeamMemberID]; ok {
				resp.TeamMemberName = member.Name
				resp.TeamMemberAvatar = member.Avatar
			}
		}
		if m.ProjectID != nil {
			if title, ok := titles[*m.ProjectID]; ok {
				resp.Project = &ProjectInfo{ID: *m.ProjectID, Title: title}
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
