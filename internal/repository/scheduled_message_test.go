//go:build integration
// +build integration

package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"message-scheduler-backend/internal/database/models"
	"message-scheduler-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// ScheduledMessageRepositoryTestSuite tests the ScheduledMessageRepository
type ScheduledMessageRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *ScheduledMessageRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

func (suite *ScheduledMessageRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewScheduledMessageRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

func (suite *ScheduledMessageRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

func (suite *ScheduledMessageRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

func (suite *ScheduledMessageRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *ScheduledMessageRepositoryTestSuite) batch(n int) []models.ScheduledMessage {
	msgs := make([]models.ScheduledMessage, 0, n)
	for i := 0; i < n; i++ {
		msg := suite.factories.ScheduledMessage.Create()
		msg.ID = uuid.Nil
		msgs = append(msgs, *msg)
	}
	return msgs
}

func (suite *ScheduledMessageRepositoryTestSuite) TestCreateAndGetByID() {
	msg := suite.factories.ScheduledMessage.Create()
	suite.NoError(suite.repo.Create(suite.ctx, msg))

	stored, err := suite.repo.GetByID(suite.ctx, msg.ID)
	suite.NoError(err)
	suite.Equal(msg.Title, stored.Title)
	suite.Equal(models.MessageStatusPending, stored.Status)
	suite.Nil(stored.TeamMemberID)

	_, err = suite.repo.GetByID(suite.ctx, uuid.New())
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *ScheduledMessageRepositoryTestSuite) TestListFilters() {
	member := suite.factories.User.Create()
	suite.Require().NoError(suite.baseTestSuite.DB.Create(member).Error)

	mine := suite.factories.ScheduledMessage.ForMember(member.ID)
	sent := suite.factories.ScheduledMessage.WithStatus(models.MessageStatusSent)
	farOut := suite.factories.ScheduledMessage.Create()
	farOut.ScheduledDate = time.Now().Add(60 * 24 * time.Hour)
	for _, m := range []*models.ScheduledMessage{mine, sent, farOut} {
		suite.Require().NoError(suite.repo.Create(suite.ctx, m))
	}

	all, err := suite.repo.List(suite.ctx, MessageFilter{})
	suite.NoError(err)
	suite.Len(all, 3)

	byMember, err := suite.repo.List(suite.ctx, MessageFilter{TeamMemberID: &member.ID})
	suite.NoError(err)
	suite.Len(byMember, 1)
	suite.Equal(mine.ID, byMember[0].ID)

	bySent, err := suite.repo.List(suite.ctx, MessageFilter{Status: models.MessageStatusSent})
	suite.NoError(err)
	suite.Len(bySent, 1)

	from := time.Now()
	to := from.Add(7 * 24 * time.Hour)
	inWeek, err := suite.repo.List(suite.ctx, MessageFilter{From: &from, To: &to})
	suite.NoError(err)
	suite.Len(inWeek, 2)
}

func (suite *ScheduledMessageRepositoryTestSuite) TestUpdateStatus() {
	msg := suite.factories.ScheduledMessage.Create()
	suite.Require().NoError(suite.repo.Create(suite.ctx, msg))

	suite.NoError(suite.repo.UpdateStatus(suite.ctx, msg.ID, models.MessageStatusFailed))
	// any status may follow any other
	suite.NoError(suite.repo.UpdateStatus(suite.ctx, msg.ID, models.MessageStatusPending))

	stored, err := suite.repo.GetByID(suite.ctx, msg.ID)
	suite.NoError(err)
	suite.Equal(models.MessageStatusPending, stored.Status)

	suite.ErrorIs(suite.repo.UpdateStatus(suite.ctx, uuid.New(), models.MessageStatusSent), gorm.ErrRecordNotFound)
}

func (suite *ScheduledMessageRepositoryTestSuite) TestInsertIfEmpty() {
	inserted, err := suite.repo.InsertIfEmpty(suite.ctx, suite.batch(3))
	suite.NoError(err)
	suite.True(inserted)

	inserted, err = suite.repo.InsertIfEmpty(suite.ctx, suite.batch(2))
	suite.NoError(err)
	suite.False(inserted)

	var count int64
	suite.NoError(suite.baseTestSuite.DB.Model(&models.ScheduledMessage{}).Count(&count).Error)
	suite.Equal(int64(3), count)
}

func (suite *ScheduledMessageRepositoryTestSuite) TestInsertIfEmptyConcurrent() {
	const callers = 4
	var wg sync.WaitGroup
	results := make([]bool, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = suite.repo.InsertIfEmpty(suite.ctx, suite.batch(2))
		}(i)
	}
	wg.Wait()

	winners := 0
	for i := 0; i < callers; i++ {
		suite.NoError(errs[i])
		if results[i] {
			winners++
		}
	}
	suite.Equal(1, winners)

	var count int64
	suite.NoError(suite.baseTestSuite.DB.Model(&models.ScheduledMessage{}).Count(&count).Error)
	suite.Equal(int64(2), count)
}

func (suite *ScheduledMessageRepositoryTestSuite) TestProjectStats() {
	owner := suite.factories.User.Create()
	suite.Require().NoError(suite.baseTestSuite.DB.Create(owner).Error)
	project := suite.factories.Project.Create(owner.ID)
	suite.Require().NoError(suite.baseTestSuite.DB.Create(project).Error)

	for _, status := range []models.MessageStatus{models.MessageStatusPending, models.MessageStatusPending, models.MessageStatusSent} {
		suite.Require().NoError(suite.repo.Create(suite.ctx, suite.factories.ScheduledMessage.ForProject(project.ID, status)))
	}
	suite.Require().NoError(suite.repo.Create(suite.ctx, suite.factories.ScheduledMessage.Create()))

	stats, err := suite.repo.ProjectStats(suite.ctx)

	suite.NoError(err)
	counts := map[models.MessageStatus]int64{}
	for _, s := range stats {
		suite.Equal(project.ID, s.ProjectID)
		counts[s.Status] = s.Count
	}
	suite.Equal(int64(2), counts[models.MessageStatusPending])
	suite.Equal(int64(1), counts[models.MessageStatusSent])
}

func TestScheduledMessageRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduledMessageRepositoryTestSuite))
}
