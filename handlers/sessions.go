package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotify/services/sessionmap"
)

// SessionHandler exposes maintenance operations on the session-thread mapper
// consumed by the upstream agent layer. Kept apart from scheduling; the
// scheduling core never reads this table.
type SessionHandler struct {
	Mapper *sessionmap.Mapper
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(mapper *sessionmap.Mapper) *SessionHandler {
	return &SessionHandler{Mapper: mapper}
}

type sessionRef struct {
	UserID    string `json:"user_id" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
}

// GetThreadIDHandler returns the stable thread ID for a user/session pair,
// creating the mapping on first use.
func (h *SessionHandler) GetThreadIDHandler(c *gin.Context) {
	var ref sessionRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id or session_id"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"thread_id": h.Mapper.GetThreadID(ref.UserID, ref.SessionID)})
}

// GetSessionInfoHandler reverse-looks-up the session behind a thread ID.
func (h *SessionHandler) GetSessionInfoHandler(c *gin.Context) {
	threadID := c.Param("threadID")
	userID, sessionID, ok := h.Mapper.GetSessionInfo(threadID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown thread ID"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "session_id": sessionID})
}

// ClearSessionHandler removes one mapping.
func (h *SessionHandler) ClearSessionHandler(c *gin.Context) {
	var ref sessionRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id or session_id"})
		return
	}
	if !h.Mapper.ClearSession(ref.UserID, ref.SessionID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No mapping for that session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// ClearAllSessionsHandler drops the whole table.
func (h *SessionHandler) ClearAllSessionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cleared": h.Mapper.ClearAll()})
}

// SessionStatsHandler reports mapping counts.
func (h *SessionHandler) SessionStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Mapper.GetStats())
}
