package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"modforge-backend/internal/build"
	"modforge-backend/internal/models"
	"modforge-backend/internal/supabase"
)

type BuildHandler struct {
	dbClient       *supabase.DatabaseClient
	runner         *build.Runner
	realtimeClient *supabase.RealtimeClient
}

func NewBuildHandler(dbClient *supabase.DatabaseClient, runner *build.Runner, realtimeClient *supabase.RealtimeClient) *BuildHandler {
	return &BuildHandler{
		dbClient:       dbClient,
		runner:         runner,
		realtimeClient: realtimeClient,
	}
}

// Build runs the simulated build pipeline for a project. The project moves to
// "building" for the duration and back to "active" on success.
func (h *BuildHandler) Build(c *gin.Context) {
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

	project, err := h.dbClient.GetProject(projectID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}

	var req models.BuildRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.dbClient.UpdateProjectStatus(projectID, userID, models.StatusBuilding); err != nil {
		log.Printf("build: status update failed for %s: %v", projectID, err)
	}

	result, err := h.runner.Run(projectID, project.Platform, req.BuildType)
	if err != nil {
		_ = h.dbClient.UpdateProjectStatus(projectID, userID, models.StatusError)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "build failed", Message: err.Error()})
		return
	}

	if err := h.dbClient.UpdateProjectStatus(projectID, userID, models.StatusActive); err != nil {
		log.Printf("build: status update failed for %s: %v", projectID, err)
	}
	if h.realtimeClient != nil {
		if err := h.realtimeClient.PublishProjectEvent(projectID, "build_completed", supabase.BuildCompletedPayload(projectID, result.Success, result.BuildTime)); err != nil {
			log.Printf("build: realtime publish failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, result)
}
