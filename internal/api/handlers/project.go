package handlers

import (
	"net/http"
	"strconv"
	"time"

	"message-scheduler-backend/internal/auth"
	"message-scheduler-backend/internal/database/models"
	"message-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles HTTP requests for projects and the dashboard
type ProjectHandler struct {
	projectService service.ProjectServiceInterface
	now            func() time.Time
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService service.ProjectServiceInterface) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		now:            time.Now,
	}
}

// ListProjects handles GET /projects
// @Summary List projects with their teams
// @Description List the current user's projects, or every project with all=true, most recently updated first
// @Tags projects
// @Produce json
// @Param status query string false "Project status" Enums(active, completed, draft)
// @Param all query bool false "List projects of every owner"
// @Success 200 {object} service.ProjectListResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 503 {object} ErrorResponse "Backend unavailable"
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	filter := service.ProjectListFilter{Status: models.ProjectStatus(c.Query("status"))}

	all := false
	if raw := c.Query("all"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid all parameter"})
			return
		}
		all = v
	}
	if !all {
		if userID, ok := auth.CurrentUserID(c); ok {
			filter.OwnerID = &userID
		}
	}

	resp, err := h.projectService.ListWithTeam(c, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateProject handles POST /projects
// @Summary Create a new project
// @Description Create a project owned by the signed-in user, optionally with initial team members
// @Tags projects
// @Accept json
// @Produce json
// @Param project body service.CreateProjectRequest true "Project data"
// @Success 201 {object} service.ProjectResponse
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Team member not found"
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ownerID, _ := auth.CurrentUserID(c)
	project, err := h.projectService.Create(c, ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProject handles GET /projects/:id
// @Summary Get project by ID
// @Description Get a project with its team
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} service.ProjectResponse
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProjectStatus handles PUT /projects/:id/status
// @Summary Change a project's status
// @Description Set a project's status; any status may follow any other
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param status body service.UpdateProjectStatusRequest true "New status"
// @Success 200 {object} service.ProjectResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/status [put]
func (h *ProjectHandler) UpdateProjectStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "project")
	if !ok {
		return
	}

	var req service.UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	project, err := h.projectService.UpdateStatus(c, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /projects/:id
// @Summary Delete a project
// @Description Delete a project; its messages are kept without a project
// @Tags projects
// @Param id path string true "Project ID (UUID)"
// @Success 204 "Project deleted"
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "project")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddProjectMember handles POST /projects/:id/members
// @Summary Add a member to a project team
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param member body service.AddProjectMemberRequest true "Member to add"
// @Success 201 {object} models.ProjectTeamMember
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Project or team member not found"
// @Failure 409 {object} ErrorResponse "Member already on the team"
// @Security BearerAuth
// @Router /projects/{id}/members [post]
func (h *ProjectHandler) AddProjectMember(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "id", "project")
	if !ok {
		return
	}

	var req service.AddProjectMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	row, err := h.projectService.AddMember(c, projectID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, row)
}

// RemoveProjectMember handles DELETE /projects/:id/members/:memberId
// @Summary Remove a member from a project team
// @Tags projects
// @Param id path string true "Project ID (UUID)"
// @Param memberId path string true "Member ID (UUID)"
// @Success 204 "Member removed"
// @Failure 400 {object} ErrorResponse "Invalid ID"
// @Failure 404 {object} ErrorResponse "Member not on the team"
// @Security BearerAuth
// @Router /projects/{id}/members/{memberId} [delete]
func (h *ProjectHandler) RemoveProjectMember(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "id", "project")
	if !ok {
		return
	}
	memberID, ok := parseUUIDParam(c, "memberId", "member")
	if !ok {
		return
	}

	if err := h.projectService.RemoveMember(c, projectID, memberID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Dashboard handles GET /dashboard
// @Summary Dashboard overview
// @Description Project totals, deadlines in the next seven days and each member's projects
// @Tags dashboard
// @Produce json
// @Success 200 {object} service.DashboardResponse
// @Failure 503 {object} ErrorResponse "Backend unavailable"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *ProjectHandler) Dashboard(c *gin.Context) {
	resp, err := h.projectService.Dashboard(c, h.now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
