package service_test

import (
	"context"
	"testing"
	"time"

	"message-scheduler-backend/internal/database/models"
	apperrors "message-scheduler-backend/internal/errors"
	"message-scheduler-backend/internal/mocks"
	"message-scheduler-backend/internal/realtime"
	"message-scheduler-backend/internal/repository"
	"message-scheduler-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type MessageServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockUsers      *mocks.MockUserRepositoryInterface
	mockProjects   *mocks.MockProjectRepositoryInterface
	mockJoins      *mocks.MockProjectTeamMemberRepositoryInterface
	mockMessages   *mocks.MockScheduledMessageRepositoryInterface
	publisher      *recordingPublisher
	messageService *service.MessageService
	ctx            context.Context
}

func (suite *MessageServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUsers = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockProjects = mocks.NewMockProjectRepositoryInterface(suite.ctrl)
	suite.mockJoins = mocks.NewMockProjectTeamMemberRepositoryInterface(suite.ctrl)
	suite.mockMessages = mocks.NewMockScheduledMessageRepositoryInterface(suite.ctrl)
	suite.publisher = &recordingPublisher{}
	suite.ctx = context.Background()

	guard := newTestGuard()
	fetcher := service.NewEntityFetcher(suite.mockUsers, suite.mockProjects, suite.mockJoins, suite.mockMessages, guard)
	seeder := service.NewMessageSeeder(suite.mockMessages, guard, newSeqRand(0))
	suite.messageService = service.NewMessageService(
		suite.mockMessages, suite.mockProjects, suite.mockUsers, fetcher, seeder, suite.publisher, validator.New(),
	)
}

func (suite *MessageServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *MessageServiceTestSuite) expectResolve(users []models.User, projects []models.Project) {
	suite.mockUsers.EXPECT().GetAll(suite.ctx).Return(users, nil)
	suite.mockProjects.EXPECT().List(suite.ctx, repository.ProjectFilter{}).Return(projects, nil)
}

func message(title string, member, project *uuid.UUID, at time.Time) models.ScheduledMessage {
	return models.ScheduledMessage{
		BaseModel:     models.BaseModel{ID: uuid.New()},
		Title:         title,
		Content:       title + " body",
		Recipient:     "+15550100",
		ScheduledDate: at,
		Status:        models.MessageStatusPending,
		TeamMemberID:  member,
		ProjectID:     project,
	}
}

func (suite *MessageServiceTestSuite) TestList_ResolvesMembersAndProjects() {
	a := newUser("Alice")
	p := newProject("Launch", a.ID)
	gone := uuid.New()
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	msgs := []models.ScheduledMessage{
		message("known", &a.ID, &p.ID, at),
		message("deleted member", &gone, nil, at),
		message("no member", nil, nil, at),
	}
	suite.mockMessages.EXPECT().List(suite.ctx, repository.MessageFilter{}).Return(msgs, nil)
	suite.expectResolve([]models.User{a}, []models.Project{p})

	resp, err := suite.messageService.List(suite.ctx, service.MessageListFilter{})

	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 3, resp.Total)

	assert.Equal(suite.T(), "Alice", resp.Messages[0].TeamMemberName)
	assert.Equal(suite.T(), service.AvatarPlaceholder(a.ID), resp.Messages[0].TeamMemberAvatar)
	require.NotNil(suite.T(), resp.Messages[0].Project)
	assert.Equal(suite.T(), "Launch", resp.Messages[0].Project.Title)

	assert.Equal(suite.T(), service.UnknownName, resp.Messages[1].TeamMemberName)
	assert.Equal(suite.T(), service.AvatarPlaceholder(gone), resp.Messages[1].TeamMemberAvatar)
	assert.Nil(suite.T(), resp.Messages[1].Project)

	assert.Equal(suite.T(), service.UnknownName, resp.Messages[2].TeamMemberName)
	assert.Equal(suite.T(), service.AvatarPlaceholder(uuid.Nil), resp.Messages[2].TeamMemberAvatar)
}

func (suite *MessageServiceTestSuite) TestList_EmptySkipsLookups() {
	sent := models.MessageStatusSent
	suite.mockMessages.EXPECT().List(suite.ctx, repository.MessageFilter{Status: sent}).Return(nil, nil)

	resp, err := suite.messageService.List(suite.ctx, service.MessageListFilter{Status: sent})

	require.NoError(suite.T(), err)
	assert.NotNil(suite.T(), resp.Messages)
	assert.Zero(suite.T(), resp.Total)
}

func (suite *MessageServiceTestSuite) TestList_InvalidStatus() {
	_, err := suite.messageService.List(suite.ctx, service.MessageListFilter{Status: "queued"})
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidStatus)
}

func (suite *MessageServiceTestSuite) TestSchedule_Success() {
	a := newUser("Alice")
	p := newProject("Launch", a.ID)
	req := &service.ScheduleMessageRequest{
		Title:         "Reminder",
		Content:       "Standup at 10",
		Recipient:     "+15550100",
		ScheduledDate: time.Now().Add(time.Hour),
		TeamMemberID:  &a.ID,
		ProjectID:     &p.ID,
	}
	suite.mockUsers.EXPECT().GetByID(suite.ctx, a.ID).Return(&a, nil)
	suite.mockProjects.EXPECT().GetByID(suite.ctx, p.ID).Return(&p, nil)
	suite.mockMessages.EXPECT().Create(suite.ctx, gomock.Any()).DoAndReturn(func(_ context.Context, m *models.ScheduledMessage) error {
		assert.Equal(suite.T(), models.MessageStatusPending, m.Status)
		m.ID = uuid.New()
		return nil
	})
	suite.expectResolve([]models.User{a}, []models.Project{p})

	resp, err := suite.messageService.Schedule(suite.ctx, req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.MessageStatusPending, resp.Status)
	assert.Equal(suite.T(), "Alice", resp.TeamMemberName)

	events := suite.publisher.Events()
	require.Len(suite.T(), events, 2)
	assert.Equal(suite.T(), realtime.TableScheduledMessages, events[0].Table)
	assert.Equal(suite.T(), realtime.EventInsert, events[0].Type)
	assert.Equal(suite.T(), realtime.TableProjects, events[1].Table)
	assert.Equal(suite.T(), p.ID, events[1].RecordID)
}

func (suite *MessageServiceTestSuite) TestSchedule_ValidationError() {
	_, err := suite.messageService.Schedule(suite.ctx, &service.ScheduleMessageRequest{Title: "x", Recipient: "1"})
	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "validation failed")
}

func (suite *MessageServiceTestSuite) TestSchedule_UnknownMember() {
	id := uuid.New()
	suite.mockUsers.EXPECT().GetByID(suite.ctx, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.messageService.Schedule(suite.ctx, &service.ScheduleMessageRequest{
		Title: "x", Content: "y", Recipient: "+15550100", ScheduledDate: time.Now(), TeamMemberID: &id,
	})
	assert.ErrorIs(suite.T(), err, apperrors.ErrTeamMemberNotFound)
}

func (suite *MessageServiceTestSuite) TestUpdateStatus() {
	msg := message("m", nil, nil, time.Now())
	msg.Status = models.MessageStatusFailed
	suite.mockMessages.EXPECT().UpdateStatus(suite.ctx, msg.ID, models.MessageStatusFailed).Return(nil)
	suite.mockMessages.EXPECT().GetByID(suite.ctx, msg.ID).Return(&msg, nil)
	suite.expectResolve(nil, nil)

	resp, err := suite.messageService.UpdateStatus(suite.ctx, msg.ID, models.MessageStatusFailed)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.MessageStatusFailed, resp.Status)
}

func (suite *MessageServiceTestSuite) TestUpdateStatus_Errors() {
	_, err := suite.messageService.UpdateStatus(suite.ctx, uuid.New(), "queued")
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidStatus)

	id := uuid.New()
	suite.mockMessages.EXPECT().UpdateStatus(suite.ctx, id, models.MessageStatusSent).Return(gorm.ErrRecordNotFound)
	_, err = suite.messageService.UpdateStatus(suite.ctx, id, models.MessageStatusSent)
	assert.ErrorIs(suite.T(), err, apperrors.ErrScheduledMessageNotFound)
}

func (suite *MessageServiceTestSuite) TestMessagesOn_CoversOneDay() {
	day := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
	suite.mockMessages.EXPECT().List(suite.ctx, gomock.Any()).DoAndReturn(func(_ context.Context, f repository.MessageFilter) ([]models.ScheduledMessage, error) {
		require.NotNil(suite.T(), f.From)
		require.NotNil(suite.T(), f.To)
		assert.Equal(suite.T(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *f.From)
		assert.Equal(suite.T(), time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), *f.To)
		return nil, nil
	})

	resp, err := suite.messageService.MessagesOn(suite.ctx, day)

	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), resp.Total)
}

func (suite *MessageServiceTestSuite) TestDaysWithMessages() {
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	msgs := []models.ScheduledMessage{
		message("a", nil, nil, time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)),
		message("b", nil, nil, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)),
		message("c", nil, nil, time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC)),
	}
	suite.mockMessages.EXPECT().List(suite.ctx, gomock.Any()).Return(msgs, nil)

	resp, err := suite.messageService.DaysWithMessages(suite.ctx, from, to)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"2024-06-03", "2024-06-12"}, resp.Days)
	assert.Equal(suite.T(), "2024-06-01", resp.From)
	assert.Equal(suite.T(), "2024-06-30", resp.To)
}

func (suite *MessageServiceTestSuite) TestDaysWithMessages_InvalidRange() {
	from := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.messageService.DaysWithMessages(suite.ctx, from, to)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidTimeRange)
}

func (suite *MessageServiceTestSuite) TestSeed() {
	suite.mockUsers.EXPECT().GetAll(suite.ctx).Return([]models.User{newUser("A"), newUser("B")}, nil)
	suite.mockMessages.EXPECT().InsertIfEmpty(suite.ctx, gomock.Len(2)).Return(true, nil)

	resp, err := suite.messageService.Seed(suite.ctx)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, resp.Inserted)
	require.Len(suite.T(), suite.publisher.Events(), 1)
}

func TestMessageServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MessageServiceTestSuite))
}
