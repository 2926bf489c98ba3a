package handlers_test

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"modforge-backend/internal/build"
	"modforge-backend/internal/handlers"
	"modforge-backend/internal/middleware"
)

func TestBuildWithoutDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewBuildHandler(nil, build.NewRunner(rand.New(rand.NewSource(1))), nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uuid.New().String())
	})
	router.POST("/projects/:project_id/build", handler.Build)

	req, _ := http.NewRequest("POST", "/projects/"+uuid.New().String()+"/build", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
