package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"modforge-backend/internal/analysis"
	"modforge-backend/internal/models"
	"modforge-backend/internal/supabase"
	"modforge-backend/internal/workspace"
)

type AnalysisHandler struct {
	dbClient *supabase.DatabaseClient
	manager  *workspace.Manager
}

func NewAnalysisHandler(dbClient *supabase.DatabaseClient, manager *workspace.Manager) *AnalysisHandler {
	return &AnalysisHandler{dbClient: dbClient, manager: manager}
}

// Analyze runs the heuristic static checks over a project's current files.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}
	if _, err := h.dbClient.GetProject(projectID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}

	var req models.AnalyzeRequest
	_ = c.ShouldBindJSON(&req)

	files, err := h.manager.List(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list files", Message: err.Error()})
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "project has no files to analyze"})
		return
	}

	c.JSON(http.StatusOK, analysis.Analyze(files, req.AnalysisType))
}
