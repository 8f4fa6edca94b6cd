package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pgportal/backend/internal/api/middleware"
)

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatMessage routes a free-text message through the rule-based
// assistant. The responder itself never fails; any fault inside it is
// already turned into a user-facing string.
func (h *Handler) ChatMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message is required"})
		return
	}

	text := h.Chat.Respond(req.Message, middleware.UserID(c))
	c.JSON(http.StatusOK, gin.H{"text": text})
}
