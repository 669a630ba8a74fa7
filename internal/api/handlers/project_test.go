package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"message-scheduler-backend/internal/api/handlers"
	"message-scheduler-backend/internal/auth"
	"message-scheduler-backend/internal/database/models"
	apperrors "message-scheduler-backend/internal/errors"
	"message-scheduler-backend/internal/mocks"
	"message-scheduler-backend/internal/service"
	"message-scheduler-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// ProjectHandlerTestSuite defines the test suite for ProjectHandler
type ProjectHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockProjectServiceInterface
	handler     *handlers.ProjectHandler
	userID      uuid.UUID
}

// SetupTest sets up the test suite
func (suite *ProjectHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockProjectServiceInterface(suite.ctrl)
	suite.handler = handlers.NewProjectHandler(suite.mockService)
	suite.userID = uuid.New()
}

// TearDownTest cleans up after each test
func (suite *ProjectHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// router registers the project routes, optionally behind a signed-in user
func (suite *ProjectHandlerTestSuite) router(userID uuid.UUID) *testutils.HTTPTestSuite {
	httpSuite := testutils.SetupHTTPTest()

	var group *gin.RouterGroup
	if userID != auth.Unauthenticated {
		group = httpSuite.Router.Group("/api/v1", testutils.AsUser(userID))
	} else {
		group = httpSuite.Router.Group("/api/v1")
	}

	projects := group.Group("/projects")
	{
		projects.GET("", suite.handler.ListProjects)
		projects.POST("", suite.handler.CreateProject)
		projects.GET("/:id", suite.handler.GetProject)
		projects.PUT("/:id/status", suite.handler.UpdateProjectStatus)
		projects.DELETE("/:id", suite.handler.DeleteProject)
		projects.POST("/:id/members", suite.handler.AddProjectMember)
		projects.DELETE("/:id/members/:memberId", suite.handler.RemoveProjectMember)
	}
	group.GET("/dashboard", suite.handler.Dashboard)

	return httpSuite
}

func (suite *ProjectHandlerTestSuite) TestListProjects() {
	suite.T().Run("Scoped to the signed-in owner", func(t *testing.T) {
		suite.mockService.EXPECT().ListWithTeam(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, filter service.ProjectListFilter) (*service.ProjectListResponse, error) {
				if assert.NotNil(t, filter.OwnerID) {
					assert.Equal(t, suite.userID, *filter.OwnerID)
				}
				assert.Equal(t, models.ProjectStatusActive, filter.Status)
				return &service.ProjectListResponse{
					Projects:        []service.ProjectResponse{{ID: uuid.New(), Title: "Launch", MessageCount: 3, ScheduledCount: 1}},
					Total:           1,
					AssociationMode: "explicit",
				}, nil
			})

		recorder := suite.router(suite.userID).MakeRequest(http.MethodGet, "/api/v1/projects?status=active", nil)

		var resp service.ProjectListResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusOK, &resp)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, "explicit", resp.AssociationMode)
		assert.Equal(t, 3, resp.Projects[0].MessageCount)
	})

	suite.T().Run("All owners", func(t *testing.T) {
		suite.mockService.EXPECT().ListWithTeam(gomock.Any(), service.ProjectListFilter{}).
			Return(&service.ProjectListResponse{Projects: []service.ProjectResponse{}}, nil)

		recorder := suite.router(suite.userID).MakeRequest(http.MethodGet, "/api/v1/projects?all=true", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	suite.T().Run("Anonymous lists every owner", func(t *testing.T) {
		suite.mockService.EXPECT().ListWithTeam(gomock.Any(), service.ProjectListFilter{}).
			Return(&service.ProjectListResponse{Projects: []service.ProjectResponse{}}, nil)

		recorder := suite.router(auth.Unauthenticated).MakeRequest(http.MethodGet, "/api/v1/projects", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	suite.T().Run("Invalid all parameter", func(t *testing.T) {
		recorder := suite.router(suite.userID).MakeRequest(http.MethodGet, "/api/v1/projects?all=maybe", nil)
		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "Invalid all parameter")
	})

	suite.T().Run("Invalid status", func(t *testing.T) {
		suite.mockService.EXPECT().ListWithTeam(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrInvalidStatus)

		recorder := suite.router(suite.userID).MakeRequest(http.MethodGet, "/api/v1/projects?status=archived", nil)
		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "invalid status")
	})
}

func (suite *ProjectHandlerTestSuite) TestCreateProject() {
	suite.T().Run("Success", func(t *testing.T) {
		memberID := uuid.New()
		body := map[string]interface{}{
			"title":           "Launch",
			"description":     "Spring campaign",
			"team_member_ids": []string{memberID.String()},
		}
		suite.mockService.EXPECT().Create(gomock.Any(), suite.userID, gomock.Any()).
			DoAndReturn(func(_ interface{}, owner uuid.UUID, req *service.CreateProjectRequest) (*service.ProjectResponse, error) {
				assert.Equal(t, "Launch", req.Title)
				assert.Equal(t, []uuid.UUID{memberID}, req.TeamMemberIDs)
				return &service.ProjectResponse{ID: uuid.New(), Title: req.Title, Status: models.ProjectStatusDraft, UserID: owner}, nil
			})

		recorder := suite.router(suite.userID).MakeRequest(http.MethodPost, "/api/v1/projects", body)

		var resp service.ProjectResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusCreated, &resp)
		assert.Equal(t, models.ProjectStatusDraft, resp.Status)
		assert.Equal(t, suite.userID, resp.UserID)
	})

	suite.T().Run("Unauthenticated", func(t *testing.T) {
		suite.mockService.EXPECT().Create(gomock.Any(), auth.Unauthenticated, gomock.Any()).
			Return(nil, apperrors.ErrUnauthenticated)

		recorder := suite.router(auth.Unauthenticated).MakeRequest(http.MethodPost, "/api/v1/projects", map[string]string{"title": "Launch"})
		testutils.AssertErrorResponse(t, recorder, http.StatusUnauthorized, "authentication required")
	})

	suite.T().Run("Invalid JSON", func(t *testing.T) {
		recorder := suite.router(suite.userID).MakeRequest(http.MethodPost, "/api/v1/projects", "invalid json")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	suite.T().Run("Unknown team member", func(t *testing.T) {
		suite.mockService.EXPECT().Create(gomock.Any(), suite.userID, gomock.Any()).
			Return(nil, apperrors.ErrTeamMemberNotFound)

		recorder := suite.router(suite.userID).MakeRequest(http.MethodPost, "/api/v1/projects", map[string]string{"title": "Launch"})
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func (suite *ProjectHandlerTestSuite) TestGetProject() {
	suite.T().Run("Success", func(t *testing.T) {
		id := uuid.New()
		suite.mockService.EXPECT().GetByID(gomock.Any(), id).Return(&service.ProjectResponse{
			ID:    id,
			Title: "Launch",
			Team:  []service.TeamMember{{ID: uuid.New(), Name: "Alice"}},
		}, nil)

		recorder := suite.router(suite.userID).MakeRequest(http.MethodGet, "/api/v1/projects/"+id.String(), nil)

		var resp service.ProjectResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusOK, &resp)
		assert.Len(t, resp.Team, 1)
	})

	suite.T().Run("Invalid ID", func(t *testing.T) {
		recorder := suite.router(suite.userID).MakeRequest(http.MethodGet, "/api/v1/projects/123", nil)
		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "Invalid project ID")
	})

	suite.T().Run("Not found", func(t *testing.T) {
		id := uuid.New()
		suite.mockService.EXPECT().GetByID(gomock.Any(), id).Return(nil, apperrors.ErrProjectNotFound)

		recorder := suite.router(suite.userID).MakeRequest(http.MethodGet, "/api/v1/projects/"+id.String(), nil)
		testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "project not found")
	})
}

func (suite *ProjectHandlerTestSuite) TestUpdateProjectStatus() {
	suite.T().Run("Success", func(t *testing.T) {
		id := uuid.New()
		suite.mockService.EXPECT().UpdateStatus(gomock.Any(), id, models.ProjectStatusCompleted).
			Return(&service.ProjectResponse{ID: id, Status: models.ProjectStatusCompleted}, nil)

		recorder := suite.router(suite.userID).MakeRequest(http.MethodPut, "/api/v1/projects/"+id.String()+"/status",
			map[string]string{"status": "completed"})

		var resp service.ProjectResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusOK, &resp)
		assert.Equal(t, models.ProjectStatusCompleted, resp.Status)
	})

	suite.T().Run("Invalid status", func(t *testing.T) {
		id := uuid.New()
		suite.mockService.EXPECT().UpdateStatus(gomock.Any(), id, models.ProjectStatus("archived")).
			Return(nil, apperrors.ErrInvalidStatus)

		recorder := suite.router(suite.userID).MakeRequest(http.MethodPut, "/api/v1/projects/"+id.String()+"/status",
			map[string]string{"status": "archived"})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func (suite *ProjectHandlerTestSuite) TestDeleteProject() {
	suite.T().Run("Success", func(t *testing.T) {
		id := uuid.New()
		suite.mockService.EXPECT().Delete(gomock.Any(), id).Return(nil)

		recorder := suite.router(suite.userID).MakeRequest(http.MethodDelete, "/api/v1/projects/"+id.String(), nil)
		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	suite.T().Run("Backend unavailable", func(t *testing.T) {
		id := uuid.New()
		suite.mockService.EXPECT().Delete(gomock.Any(), id).
			Return(apperrors.NewBackendError(apperrors.KindUnavailable, "delete project", errors.New("timeout")))

		recorder := suite.router(suite.userID).MakeRequest(http.MethodDelete, "/api/v1/projects/"+id.String(), nil)
		testutils.AssertErrorResponse(t, recorder, http.StatusServiceUnavailable, "Backend temporarily unavailable")
	})
}

func (suite *ProjectHandlerTestSuite) TestProjectMembers() {
	suite.T().Run("Add", func(t *testing.T) {
		projectID, userID := uuid.New(), uuid.New()
		suite.mockService.EXPECT().AddMember(gomock.Any(), projectID, userID).
			Return(&models.ProjectTeamMember{ID: uuid.New(), ProjectID: projectID, UserID: userID}, nil)

		recorder := suite.router(suite.userID).MakeRequest(http.MethodPost, "/api/v1/projects/"+projectID.String()+"/members",
			map[string]string{"user_id": userID.String()})

		var resp models.ProjectTeamMember
		testutils.AssertJSONResponse(t, recorder, http.StatusCreated, &resp)
		assert.Equal(t, userID, resp.UserID)
	})

	suite.T().Run("Add duplicate", func(t *testing.T) {
		projectID, userID := uuid.New(), uuid.New()
		suite.mockService.EXPECT().AddMember(gomock.Any(), projectID, userID).Return(nil, apperrors.ErrProjectMemberExists)

		recorder := suite.router(suite.userID).MakeRequest(http.MethodPost, "/api/v1/projects/"+projectID.String()+"/members",
			map[string]string{"user_id": userID.String()})
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	suite.T().Run("Remove", func(t *testing.T) {
		projectID, userID := uuid.New(), uuid.New()
		suite.mockService.EXPECT().RemoveMember(gomock.Any(), projectID, userID).Return(nil)

		recorder := suite.router(suite.userID).MakeRequest(http.MethodDelete,
			"/api/v1/projects/"+projectID.String()+"/members/"+userID.String(), nil)
		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	suite.T().Run("Remove with invalid member ID", func(t *testing.T) {
		recorder := suite.router(suite.userID).MakeRequest(http.MethodDelete,
			"/api/v1/projects/"+uuid.New().String()+"/members/bad", nil)
		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "Invalid member ID")
	})
}

func (suite *ProjectHandlerTestSuite) TestDashboard() {
	suite.mockService.EXPECT().Dashboard(gomock.Any(), gomock.Any()).Return(&service.DashboardResponse{
		TotalProjects:  4,
		ActiveProjects: 2,
		Members: []service.MemberWorkload{{
			Member:   service.TeamMember{ID: uuid.New(), Name: "Alice"},
			Projects: []service.ProjectSummary{{ID: uuid.New(), Title: "Launch", Progress: 60}},
		}},
	}, nil)

	recorder := suite.router(suite.userID).MakeRequest(http.MethodGet, "/api/v1/dashboard", nil)

	var resp service.DashboardResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &resp)
	suite.Equal(4, resp.TotalProjects)
	suite.Equal(60, resp.Members[0].Projects[0].Progress)
}

// TestProjectHandlerTestSuite runs the test suite
func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
