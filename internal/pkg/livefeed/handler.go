package livefeed

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/idil/registrar/internal/app/models"
	"github.com/idil/registrar/internal/app/repositories"
	"github.com/idil/registrar/internal/pkg/apperrors"
)

// Handler upgrades HTTP requests to websocket watchers of a session feed.
type Handler struct {
	hub         *Hub
	sessionRepo *repositories.AttendanceSessionRepository
	logger      zerolog.Logger
}

// NewHandler creates a new feed handler
func NewHandler(
	hub *Hub,
	sessionRepo *repositories.AttendanceSessionRepository,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		hub:         hub,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// HandleConnection godoc
// @Summary Watch an attendance session's check-in feed
// @Description Upgrades the HTTP connection to a WebSocket that streams check-in events for the session
// @Tags attendance, websocket
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance Session ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} gin.H "Invalid session ID"
// @Failure 401 {object} gin.H "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} gin.H "Forbidden: requester does not own the session"
// @Failure 404 {object} gin.H "Session not found"
// @Router /attendance-sessions/{id}/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	sessionIDStr := c.Param("id")
	sessionID, err := strconv.ParseInt(sessionIDStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid session ID",
		})
		return
	}

	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in context",
		})
		return
	}

	userID, ok := userIDInterface.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	roleInterface, _ := c.Get("role")
	role, _ := roleInterface.(string)

	session, err := h.sessionRepo.GetSessionByID(c, sessionID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("sessionID", sessionID).
			Msg("Failed to load session for feed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load session",
		})
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": apperrors.ErrSessionNotFound.Error(),
		})
		return
	}

	// Only the owning lecturer or an admin may watch the feed
	if role != string(models.RoleAdmin) && session.LecturerID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"error": apperrors.NewForbiddenError("Only the session's lecturer may watch its feed").Error(),
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("sessionID", sessionID).
			Int64("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:       h.hub,
		conn:      conn,
		send:      make(chan []byte, 256),
		userID:    userID,
		sessionID: sessionID,
		logger:    h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("sessionID", sessionID).
		Int64("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("Feed connection established")
}
