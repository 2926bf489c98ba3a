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

	"modforge-backend/internal/assist"
	"modforge-backend/internal/chat"
	"modforge-backend/internal/handlers"
	"modforge-backend/internal/middleware"
	"modforge-backend/internal/models"
)

func assistRouter(userID uuid.UUID) (*gin.Engine, *chat.History) {
	gin.SetMode(gin.TestMode)
	history := chat.NewHistory()
	handler := handlers.NewAssistHandler(assist.NewService(nil), history)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID.String())
	})
	router.POST("/assist/generate", handler.Generate)
	router.POST("/assist/review", handler.Review)
	return router, history
}

func TestAssistGenerateTemplateMode(t *testing.T) {
	userID := uuid.New()
	router, history := assistRouter(userID)

	body, _ := json.Marshal(map[string]string{"prompt": "create a custom block"})
	req, _ := http.NewRequest("POST", "/assist/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CustomBlock.java", resp.Filename)
	assert.NotEmpty(t, resp.Code)
	assert.NotEmpty(t, resp.Explanation)

	// Both sides of the exchange land in the conversation, and the
	// assistant turn keeps the full generation result.
	msgs := history.List(userID)
	require.Len(t, msgs, 2)
	require.NotNil(t, msgs[1].GeneratedCode)
	assert.Equal(t, "CustomBlock.java", msgs[1].GeneratedCode.Filename)
	assert.Equal(t, resp.Code, msgs[1].GeneratedCode.Code)
}

func TestAssistGenerateRequiresPrompt(t *testing.T) {
	router, _ := assistRouter(uuid.New())

	req, _ := http.NewRequest("POST", "/assist/generate", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssistReviewTemplateMode(t *testing.T) {
	router, _ := assistRouter(uuid.New())

	body, _ := json.Marshal(map[string]string{
		"code":      "public class A {}",
		"filename":  "A.java",
		"file_type": "java",
	})
	req, _ := http.NewRequest("POST", "/assist/review", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Code Review for A.java")
}
