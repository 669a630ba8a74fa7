package routes_test

import (
	"net/http"
	"testing"

	"message-scheduler-backend/internal/api/handlers"
	"message-scheduler-backend/internal/api/routes"
	"message-scheduler-backend/internal/auth"
	"message-scheduler-backend/internal/mocks"
	"message-scheduler-backend/internal/realtime"
	"message-scheduler-backend/internal/service"
	"message-scheduler-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// RoutesTestSuite checks which v1 routes need a signed-in caller
type RoutesTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockTeam     *mocks.MockTeamServiceInterface
	mockProjects *mocks.MockProjectServiceInterface
	mockMessages *mocks.MockMessageServiceInterface
	tokens       *auth.TokenService
	httpSuite    *testutils.HTTPTestSuite
}

func (suite *RoutesTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockTeam = mocks.NewMockTeamServiceInterface(suite.ctrl)
	suite.mockProjects = mocks.NewMockProjectServiceInterface(suite.ctrl)
	suite.mockMessages = mocks.NewMockMessageServiceInterface(suite.ctrl)

	tokens, err := auth.NewTokenService("routes-test-secret")
	suite.Require().NoError(err)
	suite.tokens = tokens

	suite.httpSuite = testutils.SetupHTTPTest()
	routes.RegisterAPIRoutes(suite.httpSuite.Router.Group("/api/v1"), routes.APIHandlers{
		Team:     handlers.NewTeamHandler(suite.mockTeam),
		Project:  handlers.NewProjectHandler(suite.mockProjects),
		Message:  handlers.NewMessageHandler(suite.mockMessages, nil),
		Realtime: handlers.NewRealtimeHandler(realtime.NewHub(0), nil),
	}, auth.NewAuthMiddleware(tokens))
}

func (suite *RoutesTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *RoutesTestSuite) bearer(userID uuid.UUID) map[string]string {
	token, err := suite.tokens.GenerateToken(userID, "owner@example.com")
	suite.Require().NoError(err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func (suite *RoutesTestSuite) TestWritesWithoutTokenAreRejected() {
	id := uuid.New().String()
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/api/v1/team/members/" + id},
		{http.MethodDelete, "/api/v1/team/members/" + id},
		{http.MethodPost, "/api/v1/projects"},
		{http.MethodPut, "/api/v1/projects/" + id + "/status"},
		{http.MethodDelete, "/api/v1/projects/" + id},
		{http.MethodPost, "/api/v1/projects/" + id + "/members"},
		{http.MethodDelete, "/api/v1/projects/" + id + "/members/" + uuid.New().String()},
		{http.MethodPost, "/api/v1/messages"},
		{http.MethodPost, "/api/v1/messages/seed"},
		{http.MethodPut, "/api/v1/messages/" + id + "/status"},
	}

	for _, tc := range cases {
		suite.Run(tc.method+" "+tc.path, func() {
			recorder := suite.httpSuite.MakeRequest(tc.method, tc.path, nil)
			suite.Equal(http.StatusUnauthorized, recorder.Code)
		})
	}
}

func (suite *RoutesTestSuite) TestDeleteProjectWithInvalidToken() {
	recorder := suite.httpSuite.MakeRequestWithHeaders(http.MethodDelete, "/api/v1/projects/"+uuid.New().String(), nil,
		map[string]string{"Authorization": "Bearer not-a-token"})

	suite.Equal(http.StatusUnauthorized, recorder.Code)
}

func (suite *RoutesTestSuite) TestDeleteProjectWithToken() {
	id := uuid.New()
	suite.mockProjects.EXPECT().Delete(gomock.Any(), id).Return(nil)

	recorder := suite.httpSuite.MakeRequestWithHeaders(http.MethodDelete, "/api/v1/projects/"+id.String(), nil, suite.bearer(uuid.New()))

	suite.Equal(http.StatusNoContent, recorder.Code)
}

func (suite *RoutesTestSuite) TestCreateProjectOwnedByTokenSubject() {
	owner := uuid.New()
	suite.mockProjects.EXPECT().Create(gomock.Any(), owner, gomock.Any()).Return(&service.ProjectResponse{Title: "Launch"}, nil)

	recorder := suite.httpSuite.MakeRequestWithHeaders(http.MethodPost, "/api/v1/projects",
		map[string]interface{}{"title": "Launch"}, suite.bearer(owner))

	suite.Equal(http.StatusCreated, recorder.Code)
}

func (suite *RoutesTestSuite) TestReadsAllowAnonymousCallers() {
	suite.mockProjects.EXPECT().ListWithTeam(gomock.Any(), service.ProjectListFilter{}).Return(&service.ProjectListResponse{}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/projects", nil)

	suite.Equal(http.StatusOK, recorder.Code)
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}
