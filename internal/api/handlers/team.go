package handlers

import (
	"net/http"

	"message-scheduler-backend/internal/database/models"
	"message-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles HTTP requests for the team page
type TeamHandler struct {
	teamService service.TeamServiceInterface
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService service.TeamServiceInterface) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// ListMembers handles GET /team/members
// @Summary List team members
// @Description List every team member with project counts. Seeds demo messages when the message store is empty.
// @Tags team
// @Produce json
// @Param search query string false "Case-insensitive match on name or email"
// @Param status query string false "Member status" Enums(active, inactive)
// @Success 200 {object} service.TeamListResponse
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Failure 503 {object} ErrorResponse "Backend unavailable"
// @Security BearerAuth
// @Router /team/members [get]
func (h *TeamHandler) ListMembers(c *gin.Context) {
	filter := service.MemberFilter{
		Search: c.Query("search"),
		Status: models.MemberStatus(c.Query("status")),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid status"})
		return
	}

	resp, err := h.teamService.ListMembers(c, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMemberProjects handles GET /team/members/:id/projects
// @Summary List a member's projects
// @Description Get the projects a team member works on, with illustrative progress
// @Tags team
// @Produce json
// @Param id path string true "Member ID (UUID)"
// @Success 200 {object} service.MemberProjectsResponse
// @Failure 400 {object} ErrorResponse "Invalid member ID"
// @Failure 404 {object} ErrorResponse "Team member not found"
// @Failure 503 {object} ErrorResponse "Backend unavailable"
// @Security BearerAuth
// @Router /team/members/{id}/projects [get]
func (h *TeamHandler) GetMemberProjects(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "member")
	if !ok {
		return
	}

	resp, err := h.teamService.GetMemberProjects(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateMember handles PUT /team/members/:id
// @Summary Update a team member
// @Description Edit a team member's profile
// @Tags team
// @Accept json
// @Produce json
// @Param id path string true "Member ID (UUID)"
// @Param member body service.UpdateMemberRequest true "Member data"
// @Success 200 {object} service.TeamMember
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Team member not found"
// @Security BearerAuth
// @Router /team/members/{id} [put]
func (h *TeamHandler) UpdateMember(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "member")
	if !ok {
		return
	}

	var req service.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	member, err := h.teamService.UpdateMember(c, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// DeleteMember handles DELETE /team/members/:id
// @Summary Delete a team member
// @Description Remove a team member. Their messages are kept without a member.
// @Tags team
// @Param id path string true "Member ID (UUID)"
// @Success 204 "Team member deleted"
// @Failure 400 {object} ErrorResponse "Invalid member ID"
// @Failure 404 {object} ErrorResponse "Team member not found"
// @Security BearerAuth
// @Router /team/members/{id} [delete]
func (h *TeamHandler) DeleteMember(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "member")
	if !ok {
		return
	}

	if err := h.teamService.DeleteMember(c, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
