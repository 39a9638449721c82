package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/internal/service"
)

// SessionHandler manages analysis sessions.
type SessionHandler struct {
	sessions *service.SessionStore
	tokens   *service.TokenService
}

// NewSessionHandler creates a new SessionHandler instance.
func NewSessionHandler(sessions *service.SessionStore, tokens *service.TokenService) *SessionHandler {
	return &SessionHandler{sessions: sessions, tokens: tokens}
}

// Create opens a new session and returns its signed token.
func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.sessions.Create(c.Request.Context(), req.UserProfile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	token, err := h.tokens.GenerateToken(state.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": state.ID,
		"token":      token,
	})
}
