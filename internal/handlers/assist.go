package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"modforge-backend/internal/assist"
	"modforge-backend/internal/chat"
	"modforge-backend/internal/middleware"
	"modforge-backend/internal/models"
)

type AssistHandler struct {
	service *assist.Service
	history *chat.History
}

func NewAssistHandler(service *assist.Service, history *chat.History) *AssistHandler {
	return &AssistHandler{service: service, history: history}
}

// Generate produces mod code for a prompt. The response is always 200 with
// usable code; when the remote model is unavailable it comes from templates.
func (h *AssistHandler) Generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	resp := h.service.Generate(c.Request.Context(), req)

	if userID, ok := middleware.UserID(c); ok {
		h.history.Append(userID, chat.TypeUser, req.Prompt, fileContextName(req.CurrentFile))
		h.history.AppendGenerated(userID, resp.Explanation, resp.Filename, resp)
	}

	c.JSON(http.StatusOK, resp)
}

// Review analyzes submitted code and returns a markdown review.
func (h *AssistHandler) Review(c *gin.Context) {
	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	resp := h.service.Review(c.Request.Context(), req)

	if userID, ok := middleware.UserID(c); ok {
		h.history.Append(userID, chat.TypeUser, "Please review my "+req.Filename+" file", req.Filename)
		h.history.Append(userID, chat.TypeAssistant, resp.Review, req.Filename)
	}

	c.JSON(http.StatusOK, resp)
}

func fileContextName(fc *models.FileContext) string {
	if fc == nil {
		return ""
	}
	return fc.Name
}
