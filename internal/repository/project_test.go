//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"
	"time"

	"message-scheduler-backend/internal/database/models"
	"message-scheduler-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// ProjectRepositoryTestSuite tests the ProjectRepository
type ProjectRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *ProjectRepository
	factories     *testutils.FactorySet
	ctx           context.Context
	owner         *models.User
}

// SetupSuite runs before all tests in the suite
func (suite *ProjectRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewProjectRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *ProjectRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *ProjectRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
	suite.owner = suite.factories.User.Create()
	suite.Require().NoError(suite.baseTestSuite.DB.Create(suite.owner).Error)
}

// TearDownTest runs after each test
func (suite *ProjectRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// create inserts a project with no initial team
func (suite *ProjectRepositoryTestSuite) create(project *models.Project) error {
	_, err := suite.repo.Create(suite.ctx, project, nil)
	return err
}

// TestCreate tests creating a new project
func (suite *ProjectRepositoryTestSuite) TestCreate() {
	project := suite.factories.Project.Create(suite.owner.ID)

	rows, err := suite.repo.Create(suite.ctx, project, nil)

	suite.NoError(err)
	suite.Empty(rows)
	suite.NotEqual(uuid.Nil, project.ID)
	suite.NotZero(project.CreatedAt)
	suite.NotZero(project.UpdatedAt)
}

// TestCreateWithTeam tests that the initial team rows are written with the project
func (suite *ProjectRepositoryTestSuite) TestCreateWithTeam() {
	member := suite.factories.User.Create()
	suite.Require().NoError(suite.baseTestSuite.DB.Create(member).Error)
	project := suite.factories.Project.Create(suite.owner.ID)

	rows, err := suite.repo.Create(suite.ctx, project, []uuid.UUID{member.ID})

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.NotEqual(uuid.Nil, rows[0].ID)
	suite.Equal(project.ID, rows[0].ProjectID)
	suite.Equal(member.ID, rows[0].UserID)

	var joins int64
	suite.baseTestSuite.DB.Model(&models.ProjectTeamMember{}).Where("project_id = ?", project.ID).Count(&joins)
	suite.Equal(int64(1), joins)
}

// TestCreateWithUnknownMemberWritesNothing tests that a failing team row rolls back the project
func (suite *ProjectRepositoryTestSuite) TestCreateWithUnknownMemberWritesNothing() {
	project := suite.factories.Project.Create(suite.owner.ID)

	_, err := suite.repo.Create(suite.ctx, project, []uuid.UUID{uuid.New()})

	suite.Error(err)
	var projects int64
	suite.baseTestSuite.DB.Model(&models.Project{}).Count(&projects)
	suite.Equal(int64(0), projects)
}

// TestGetByID tests retrieving a project by ID
func (suite *ProjectRepositoryTestSuite) TestGetByID() {
	project := suite.factories.Project.WithTitle(suite.owner.ID, "Spring Promo")
	suite.Require().NoError(suite.create(project))

	retrieved, err := suite.repo.GetByID(suite.ctx, project.ID)

	suite.NoError(err)
	suite.Equal(project.ID, retrieved.ID)
	suite.Equal("Spring Promo", retrieved.Title)
	suite.Equal(suite.owner.ID, retrieved.UserID)
}

// TestGetByIDNotFound tests retrieving a non-existent project
func (suite *ProjectRepositoryTestSuite) TestGetByIDNotFound() {
	project, err := suite.repo.GetByID(suite.ctx, uuid.New())

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(project)
}

// TestListFiltersByOwnerAndStatus tests the owner and status filters
func (suite *ProjectRepositoryTestSuite) TestListFiltersByOwnerAndStatus() {
	other := suite.factories.User.Create()
	suite.Require().NoError(suite.baseTestSuite.DB.Create(other).Error)

	suite.Require().NoError(suite.create(suite.factories.Project.WithStatus(suite.owner.ID, models.ProjectStatusActive)))
	suite.Require().NoError(suite.create(suite.factories.Project.WithStatus(suite.owner.ID, models.ProjectStatusDraft)))
	suite.Require().NoError(suite.create(suite.factories.Project.WithStatus(other.ID, models.ProjectStatusActive)))

	all, err := suite.repo.List(suite.ctx, ProjectFilter{})
	suite.NoError(err)
	suite.Len(all, 3)

	mine, err := suite.repo.List(suite.ctx, ProjectFilter{OwnerID: &suite.owner.ID})
	suite.NoError(err)
	suite.Len(mine, 2)

	active, err := suite.repo.List(suite.ctx, ProjectFilter{OwnerID: &suite.owner.ID, Status: models.ProjectStatusActive})
	suite.NoError(err)
	suite.Len(active, 1)
	suite.Equal(models.ProjectStatusActive, active[0].Status)
}

// TestUpdateStatus tests changing a project's status
func (suite *ProjectRepositoryTestSuite) TestUpdateStatus() {
	project := suite.factories.Project.Create(suite.owner.ID)
	suite.Require().NoError(suite.create(project))
	before := project.UpdatedAt.Truncate(time.Millisecond)

	suite.NoError(suite.repo.UpdateStatus(suite.ctx, project.ID, models.ProjectStatusCompleted))

	stored, err := suite.repo.GetByID(suite.ctx, project.ID)
	suite.NoError(err)
	suite.Equal(models.ProjectStatusCompleted, stored.Status)
	suite.False(stored.UpdatedAt.Before(before))

	suite.ErrorIs(suite.repo.UpdateStatus(suite.ctx, uuid.New(), models.ProjectStatusDraft), gorm.ErrRecordNotFound)
}

// TestGetDueBetween tests the due-date window query
func (suite *ProjectRepositoryTestSuite) TestGetDueBetween() {
	now := time.Now()
	soon := suite.factories.Project.WithDueDate(suite.owner.ID, now.Add(48*time.Hour))
	later := suite.factories.Project.WithDueDate(suite.owner.ID, now.Add(30*24*time.Hour))
	undated := suite.factories.Project.Create(suite.owner.ID)
	for _, p := range []*models.Project{soon, later, undated} {
		suite.Require().NoError(suite.create(p))
	}

	due, err := suite.repo.GetDueBetween(suite.ctx, now, now.Add(7*24*time.Hour))

	suite.NoError(err)
	suite.Len(due, 1)
	suite.Equal(soon.ID, due[0].ID)
}

// TestDelete tests deleting a project with memberships and messages
func (suite *ProjectRepositoryTestSuite) TestDelete() {
	db := suite.baseTestSuite.DB
	project := suite.factories.Project.Create(suite.owner.ID)
	suite.Require().NoError(suite.create(project))
	suite.Require().NoError(db.Create(suite.factories.ProjectTeamMember.Create(project.ID, suite.owner.ID)).Error)
	msg := suite.factories.ScheduledMessage.ForProject(project.ID, models.MessageStatusPending)
	suite.Require().NoError(db.Create(msg).Error)

	suite.NoError(suite.repo.Delete(suite.ctx, project.ID))

	_, err := suite.repo.GetByID(suite.ctx, project.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	var stored models.ScheduledMessage
	suite.NoError(db.First(&stored, "id = ?", msg.ID).Error)
	suite.Nil(stored.ProjectID)

	suite.ErrorIs(suite.repo.Delete(suite.ctx, project.ID), gorm.ErrRecordNotFound)
}

// TestProjectRepositoryTestSuite runs the test suite
func TestProjectRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectRepositoryTestSuite))
}
