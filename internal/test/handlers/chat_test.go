package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modforge-backend/internal/chat"
	"modforge-backend/internal/handlers"
	"modforge-backend/internal/middleware"
	"modforge-backend/internal/models"
)

func chatRouter(userID uuid.UUID) (*gin.Engine, *chat.History) {
	gin.SetMode(gin.TestMode)
	history := chat.NewHistory()
	handler := handlers.NewChatHandler(history)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID.String())
	})
	router.GET("/chat", handler.ListMessages)
	router.POST("/chat", handler.PostMessage)
	router.DELETE("/chat", handler.ClearMessages)
	return router, history
}

func TestChatPostAndList(t *testing.T) {
	userID := uuid.New()
	router, _ := chatRouter(userID)

	body, _ := json.Marshal(map[string]string{
		"type":    "user",
		"content": "how do I add a block?",
	})
	req, _ := http.NewRequest("POST", "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req, _ = http.NewRequest("GET", "/chat", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "how do I add a block?")
}

func TestChatPostKeepsGeneratedCode(t *testing.T) {
	userID := uuid.New()
	router, history := chatRouter(userID)

	body, _ := json.Marshal(models.ChatMessageRequest{
		Type:    chat.TypeAssistant,
		Content: "Here is your block.",
		GeneratedCode: &models.GenerateResponse{
			Code:        "public class CustomBlock {}",
			Filename:    "CustomBlock.java",
			FileType:    "java",
			Explanation: "Here is your block.",
		},
	})
	req, _ := http.NewRequest("POST", "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	msgs := history.List(userID)
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].GeneratedCode)
	assert.Equal(t, "CustomBlock.java", msgs[0].GeneratedCode.Filename)

	req, _ = http.NewRequest("GET", "/chat", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `"generated_code"`)
	assert.Contains(t, w.Body.String(), "CustomBlock.java")
}

func TestChatRejectsUnknownType(t *testing.T) {
	router, _ := chatRouter(uuid.New())

	body, _ := json.Marshal(map[string]string{
		"type":    "system",
		"content": "nope",
	})
	req, _ := http.NewRequest("POST", "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatClear(t *testing.T) {
	userID := uuid.New()
	router, history := chatRouter(userID)
	history.Append(userID, chat.TypeUser, "hello", "")

	req, _ := http.NewRequest("DELETE", "/chat", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, history.List(userID))
}
