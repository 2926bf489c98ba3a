package handlers

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"modforge-backend/internal/models"
	"modforge-backend/internal/supabase"
	"modforge-backend/internal/workspace"
)

type ExportHandler struct {
	dbClient       *supabase.DatabaseClient
	manager        *workspace.Manager
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
}

func NewExportHandler(dbClient *supabase.DatabaseClient, manager *workspace.Manager, storageClient *supabase.StorageClient, realtimeClient *supabase.RealtimeClient) *ExportHandler {
	return &ExportHandler{
		dbClient:       dbClient,
		manager:        manager,
		storageClient:  storageClient,
		realtimeClient: realtimeClient,
	}
}

// Export packs the project's files into a jar-style zip archive, uploads it
// to storage, and returns the public URL. The archive contains a manifest
// plus every non-directory record at its workspace path.
func (h *ExportHandler) Export(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}
	if h.storageClient == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "storage not available"})
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

	files, err := h.manager.List(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list files", Message: err.Error()})
		return
	}

	archive, count, err := buildArchive(project, files)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to build archive", Message: err.Error()})
		return
	}
	if count == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "project has no files to export"})
		return
	}

	filename := fmt.Sprintf("%s-1.0.0.jar", project.ModID)
	storagePath, publicURL, err := h.storageClient.UploadArchive(userID, projectID, filename, archive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to upload archive", Message: err.Error()})
		return
	}

	if h.realtimeClient != nil {
		if err := h.realtimeClient.PublishProjectEvent(projectID, "export_ready", supabase.ExportReadyPayload(projectID, publicURL)); err != nil {
			log.Printf("export: realtime publish failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, models.ExportResponse{
		Filename:    filename,
		StoragePath: storagePath,
		StorageURL:  publicURL,
		FileCount:   count,
	})
}

func buildArchive(project *models.Project, files []models.ProjectFile) ([]byte, int, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	manifest := fmt.Sprintf("Manifest-Version: 1.0\nImplementation-Title: %s\nImplementation-Version: 1.0.0\nSpecification-Title: %s\n", project.Name, project.Platform)
	w, err := zw.Create("META-INF/MANIFEST.MF")
	if err != nil {
		return nil, 0, err
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		return nil, 0, err
	}

	count := 0
	for _, f := range files {
		if f.IsDirectory {
			continue
		}
		w, err := zw.Create(f.Path)
		if err != nil {
			return nil, 0, err
		}
		if _, err := w.Write([]byte(f.Content)); err != nil {
			return nil, 0, err
		}
		count++
	}

	if err := zw.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), count, nil
}
