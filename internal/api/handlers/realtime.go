package handlers

import (
	"net/http"

	"message-scheduler-backend/internal/logger"
	"message-scheduler-backend/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var realtimeTables = map[string]bool{
	realtime.TableUsers:              true,
	realtime.TableProjects:           true,
	realtime.TableProjectTeamMembers: true,
	realtime.TableScheduledMessages:  true,
}

// RealtimeHandler upgrades requests to a websocket change feed
type RealtimeHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewRealtimeHandler creates a realtime handler accepting browser
// connections from allowedOrigins. An empty list accepts any origin.
func NewRealtimeHandler(hub *realtime.Hub, allowedOrigins []string) *RealtimeHandler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &RealtimeHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(origins) == 0 || origin == "" || origins[origin] || origins["*"]
			},
		},
	}
}

// Subscribe handles GET /realtime
// @Summary Subscribe to change events
// @Description Upgrade to a websocket that streams INSERT, UPDATE and DELETE events for one table
// @Tags realtime
// @Param table query string true "Table" Enums(users, projects, project_team_members, scheduled_messages)
// @Param id query string false "Only events for this record (UUID)"
// @Success 101 "Switching protocols"
// @Failure 400 {object} ErrorResponse "Invalid table or id"
// @Router /realtime [get]
func (h *RealtimeHandler) Subscribe(c *gin.Context) {
	table := c.Query("table")
	if !realtimeTables[table] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown table"})
		return
	}

	var filter realtime.Filter
	if raw := c.Query("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid id"})
			return
		}
		filter.RecordID = id
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written the error response
		logger.WithContext(c).WithError(err).Warn("Websocket upgrade failed")
		return
	}

	realtime.Stream(conn, h.hub.Subscribe(table, filter))
}
