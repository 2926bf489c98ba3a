package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"modforge-backend/internal/chat"
	"modforge-backend/internal/models"
)

type ChatHandler struct {
	history *chat.History
}

func NewChatHandler(history *chat.History) *ChatHandler {
	return &ChatHandler{history: history}
}

// ListMessages returns the caller's conversation in order.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": h.history.List(userID)})
}

// PostMessage appends a message to the caller's conversation.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	if req.Type != chat.TypeUser && req.Type != chat.TypeAssistant {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid message type", Message: req.Type})
		return
	}

	var msg chat.Message
	if req.GeneratedCode != nil && req.Type == chat.TypeAssistant {
		msg = h.history.AppendGenerated(userID, req.Content, req.FileContext, req.GeneratedCode)
	} else {
		msg = h.history.Append(userID, req.Type, req.Content, req.FileContext)
	}
	c.JSON(http.StatusCreated, msg)
}

// ClearMessages drops the caller's conversation.
func (h *ChatHandler) ClearMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	removed := h.history.Clear(userID)
	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}
