package handlers

import (
	"net/http"
	"time"

	"message-scheduler-backend/internal/database/models"
	apperrors "message-scheduler-backend/internal/errors"
	"message-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// MessageHandler handles scheduled messages and the calendar
type MessageHandler struct {
	messageService service.MessageServiceInterface
	location       *time.Location
}

// NewMessageHandler creates a new message handler. Calendar dates are read
// in loc; nil means UTC.
func NewMessageHandler(messageService service.MessageServiceInterface, loc *time.Location) *MessageHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &MessageHandler{
		messageService: messageService,
		location:       loc,
	}
}

// UpdateMessageStatusRequest represents a status overwrite
type UpdateMessageStatusRequest = service.UpdateMessageStatusRequest

// ListMessages handles GET /messages
// @Summary List scheduled messages
// @Description List messages ordered by scheduled date, with member and project resolved
// @Tags messages
// @Produce json
// @Param status query string false "Message status" Enums(pending, sent, failed)
// @Param team_member_id query string false "Member ID (UUID)"
// @Param project_id query string false "Project ID (UUID)"
// @Success 200 {object} service.MessageListResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 503 {object} ErrorResponse "Backend unavailable"
// @Security BearerAuth
// @Router /messages [get]
func (h *MessageHandler) ListMessages(c *gin.Context) {
	memberID, ok := parseUUIDQuery(c, "team_member_id")
	if !ok {
		return
	}
	projectID, ok := parseUUIDQuery(c, "project_id")
	if !ok {
		return
	}

	resp, err := h.messageService.List(c, service.MessageListFilter{
		Status:       models.MessageStatus(c.Query("status")),
		TeamMemberID: memberID,
		ProjectID:    projectID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ScheduleMessage handles POST /messages
// @Summary Schedule a message
// @Description Store a new pending message
// @Tags messages
// @Accept json
// @Produce json
// @Param message body service.ScheduleMessageRequest true "Message data"
// @Success 201 {object} service.MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Team member or project not found"
// @Security BearerAuth
// @Router /messages [post]
func (h *MessageHandler) ScheduleMessage(c *gin.Context) {
	var req service.ScheduleMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	msg, err := h.messageService.Schedule(c, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// UpdateMessageStatus handles PUT /messages/:id/status
// @Summary Set a message's status
// @Tags messages
// @Accept json
// @Produce json
// @Param id path string true "Message ID (UUID)"
// @Param status body service.UpdateMessageStatusRequest true "New status"
// @Success 200 {object} service.MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Message not found"
// @Security BearerAuth
// @Router /messages/{id}/status [put]
func (h *MessageHandler) UpdateMessageStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "message")
	if !ok {
		return
	}

	var req UpdateMessageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	msg, err := h.messageService.UpdateStatus(c, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

// SeedMessages handles POST /messages/seed
// @Summary Seed demo messages
// @Description Insert generated messages for every member, only if no message exists
// @Tags messages
// @Produce json
// @Success 200 {object} service.SeedResponse
// @Failure 503 {object} ErrorResponse "Backend unavailable"
// @Security BearerAuth
// @Router /messages/seed [post]
func (h *MessageHandler) SeedMessages(c *gin.Context) {
	resp, err := h.messageService.Seed(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MessagesOn handles GET /calendar
// @Summary Messages on a day
// @Description List the messages scheduled on one calendar day
// @Tags calendar
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} service.MessageListResponse
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Security BearerAuth
// @Router /calendar [get]
func (h *MessageHandler) MessagesOn(c *gin.Context) {
	day, err := h.parseDate(c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.messageService.MessagesOn(c, day)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DaysWithMessages handles GET /calendar/days
// @Summary Days with messages
// @Description List the days in [from, to] that have at least one message
// @Tags calendar
// @Produce json
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day (YYYY-MM-DD)"
// @Success 200 {object} service.CalendarDaysResponse
// @Failure 400 {object} ErrorResponse "Invalid range"
// @Security BearerAuth
// @Router /calendar/days [get]
func (h *MessageHandler) DaysWithMessages(c *gin.Context) {
	from, err := h.parseDate(c.Query("from"))
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := h.parseDate(c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.messageService.DaysWithMessages(c, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MessageHandler) parseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(service.DateLayout, raw, h.location)
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidDateFormat
	}
	return t, nil
}
