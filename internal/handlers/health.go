package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"modforge-backend/internal/models"
	"modforge-backend/internal/supabase"
)

type HealthHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewHealthHandler(dbClient *supabase.DatabaseClient) *HealthHandler {
	return &HealthHandler{dbClient: dbClient}
}

// Health reports liveness. The response always carries 200; database state
// is informational so load balancers do not cycle the process while the
// database is briefly away.
func (h *HealthHandler) Health(c *gin.Context) {
	database := "unavailable"
	if h.dbClient != nil {
		if err := h.dbClient.Ping(); err == nil {
			database = "connected"
		}
	}
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "ok",
		Database: database,
	})
}
