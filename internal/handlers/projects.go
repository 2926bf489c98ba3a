package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"modforge-backend/internal/middleware"
	"modforge-backend/internal/models"
	"modforge-backend/internal/supabase"
	"modforge-backend/internal/workspace"
)

type ProjectsHandler struct {
	dbClient       *supabase.DatabaseClient
	manager        *workspace.Manager
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
}

func NewProjectsHandler(dbClient *supabase.DatabaseClient, manager *workspace.Manager, storageClient *supabase.StorageClient, realtimeClient *supabase.RealtimeClient) *ProjectsHandler {
	return &ProjectsHandler{
		dbClient:       dbClient,
		manager:        manager,
		storageClient:  storageClient,
		realtimeClient: realtimeClient,
	}
}

// CreateProject registers a project and, unless the request opts out,
// scaffolds the full starter file tree in the same call.
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	if !models.ValidPlatform(req.Platform) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unsupported platform", Message: req.Platform})
		return
	}

	modID := workspace.NormalizeModID(req.Name)
	if modID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "project name must contain at least one letter or digit"})
		return
	}

	project, err := h.dbClient.CreateProject(userID, req.Name, req.Description, req.Platform, req.MinecraftVersion, modID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create project", Message: err.Error()})
		return
	}

	resp := gin.H{"project": models.NewProjectResponse(*project)}

	if req.Scaffold == nil || *req.Scaffold {
		plan, created, err := h.manager.Scaffold(project)
		if err != nil {
			// The project row exists; report the partial outcome instead of
			// failing the whole request.
			log.Printf("projects: scaffold failed for %s: %v", project.ID, err)
			resp["scaffold_error"] = err.Error()
		} else {
			resp["scaffold"] = models.ScaffoldResponse{
				Files:            plan.Paths,
				ProjectStructure: plan.Structure,
				NextSteps:        plan.NextSteps,
			}
			if h.realtimeClient != nil {
				if err := h.realtimeClient.PublishProjectEvent(project.ID, "project_scaffolded", supabase.ProjectScaffoldedPayload(project.ID, len(created))); err != nil {
					log.Printf("projects: realtime publish failed: %v", err)
				}
			}
		}
	}

	c.JSON(http.StatusCreated, resp)
}

// ListProjects returns the caller's projects, most recently updated first.
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	projects, err := h.dbClient.ListProjects(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list projects", Message: err.Error()})
		return
	}

	resp := models.ProjectListResponse{Projects: make([]models.ProjectResponse, 0, len(projects))}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, models.NewProjectResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// GetProject returns a single project owned by the caller.
func (h *ProjectsHandler) GetProject(c *gin.Context) {
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
		if errors.Is(err, supabase.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get project", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.NewProjectResponse(*project))
}

// UpdateProjectStatus moves a project between active, building, error, and
// completed.
func (h *ProjectsHandler) UpdateProjectStatus(c *gin.Context) {
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

	var req models.UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid status", Message: req.Status})
		return
	}

	if err := h.dbClient.UpdateProjectStatus(projectID, userID, req.Status); err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update status", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// DeleteProject removes the project row, its files (via FK cascade), any
// exported archives, and the in-memory workspace state.
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
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

	if err := h.dbClient.DeleteProject(projectID, userID); err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete project", Message: err.Error()})
		return
	}

	h.manager.Forget(projectID)
	if h.storageClient != nil {
		if err := h.storageClient.DeleteProjectArchives(userID, projectID); err != nil {
			log.Printf("projects: archive cleanup failed for %s: %v", projectID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"deleted": projectID.String()})
}

// currentUser resolves the authenticated user or writes a 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a UUID path parameter or writes a 400.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
