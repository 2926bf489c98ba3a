package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"modforge-backend/internal/filetree"
	"modforge-backend/internal/models"
	"modforge-backend/internal/supabase"
	"modforge-backend/internal/workspace"
)

type FilesHandler struct {
	dbClient       *supabase.DatabaseClient
	manager        *workspace.Manager
	realtimeClient *supabase.RealtimeClient
}

func NewFilesHandler(dbClient *supabase.DatabaseClient, manager *workspace.Manager, realtimeClient *supabase.RealtimeClient) *FilesHandler {
	return &FilesHandler{
		dbClient:       dbClient,
		manager:        manager,
		realtimeClient: realtimeClient,
	}
}

// ListFiles returns a project's flat file records in path order.
func (h *FilesHandler) ListFiles(c *gin.Context) {
	project, ok := h.ownedProject(c)
	if !ok {
		return
	}

	files, err := h.manager.List(project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list files", Message: err.Error()})
		return
	}

	resp := models.FileListResponse{Files: make([]models.FileResponse, 0, len(files))}
	for _, f := range files {
		resp.Files = append(resp.Files, models.NewFileResponse(f))
	}
	c.JSON(http.StatusOK, resp)
}

// treeNode is the JSON shape of one tree entry.
type treeNode struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Type     string     `json:"type"`
	FileID   string     `json:"file_id,omitempty"`
	Children []treeNode `json:"children,omitempty"`
}

// FileTree returns the nested folder view of a project.
func (h *FilesHandler) FileTree(c *gin.Context) {
	project, ok := h.ownedProject(c)
	if !ok {
		return
	}

	tree, err := h.manager.Tree(project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to build file tree", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tree": toTreeNodes(tree)})
}

func toTreeNodes(n *filetree.Node) []treeNode {
	children := n.SortedChildren()
	out := make([]treeNode, 0, len(children))
	for _, child := range children {
		node := treeNode{
			Name:     child.Name,
			Path:     child.Path,
			Type:     string(child.Type),
			Children: toTreeNodes(child),
		}
		if child.File != nil {
			node.FileID = child.File.ID.String()
		}
		out = append(out, node)
	}
	return out
}

// CreateFile creates a file, folder, or template-derived file depending on
// the request's kind.
func (h *FilesHandler) CreateFile(c *gin.Context) {
	project, ok := h.ownedProject(c)
	if !ok {
		return
	}

	var req models.CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	var (
		file *models.ProjectFile
		err  error
	)
	switch req.Kind {
	case "", "file":
		file, err = h.manager.Create(project.ID, req.Name, req.ParentPath, req.Content, req.FileType)
	case "folder":
		file, err = h.manager.CreateFolder(project.ID, req.Name, req.ParentPath)
	case "template":
		file, err = h.manager.CreateFromTemplate(project.ID, req.Template, req.Name, req.ParentPath, project.ModID)
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid kind", Message: req.Kind})
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, workspace.ErrBlankName), errors.Is(err, workspace.ErrUnknownTemplate):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		case errors.Is(err, supabase.ErrDuplicatePath):
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "a file already exists at that path"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create file", Message: err.Error()})
		}
		return
	}

	h.publish(project.ID, "file_created", supabase.FileCreatedPayload(project.ID, file.Path))
	c.JSON(http.StatusCreated, models.NewFileResponse(*file))
}

// UpdateFile changes a file's content, moves it, or both. Directory moves
// relocate the whole subtree.
func (h *FilesHandler) UpdateFile(c *gin.Context) {
	project, ok := h.ownedProject(c)
	if !ok {
		return
	}
	fileID, ok := pathUUID(c, "file_id")
	if !ok {
		return
	}
	before, ok := h.ownedFile(c, project.ID, fileID)
	if !ok {
		return
	}

	var req models.UpdateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}
	if req.NewPath != nil && *req.NewPath == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "new_path cannot be empty"})
		return
	}

	file, err := h.manager.Update(fileID, req.Content, req.NewPath)
	if err != nil {
		switch {
		case errors.Is(err, supabase.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "file not found"})
		case errors.Is(err, supabase.ErrDuplicatePath):
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "a file already exists at that path"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update file", Message: err.Error()})
		}
		return
	}

	if req.Content != nil && !file.IsDirectory {
		// An edit means this file is the one open in the editor.
		h.manager.SetCurrentFile(project.ID, file.ID)
	}
	if req.NewPath != nil {
		h.publish(project.ID, "file_moved", supabase.FileMovedPayload(project.ID, before.Path, file.Path))
	}
	c.JSON(http.StatusOK, models.NewFileResponse(*file))
}

// DeleteFile removes a record and, for directories, its whole subtree.
func (h *FilesHandler) DeleteFile(c *gin.Context) {
	project, ok := h.ownedProject(c)
	if !ok {
		return
	}
	fileID, ok := pathUUID(c, "file_id")
	if !ok {
		return
	}
	file, ok := h.ownedFile(c, project.ID, fileID)
	if !ok {
		return
	}

	removed, err := h.manager.Delete(fileID)
	if err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete file", Message: err.Error()})
		return
	}

	h.publish(project.ID, "file_deleted", supabase.FileDeletedPayload(project.ID, file.Path, removed))
	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}

// ClearFiles wipes every file record in a project.
func (h *FilesHandler) ClearFiles(c *gin.Context) {
	project, ok := h.ownedProject(c)
	if !ok {
		return
	}

	removed, err := h.manager.Clear(project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to clear files", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}

// ScaffoldProject regenerates the starter tree for an existing project. The
// batch is transactional: colliding paths fail the whole scaffold.
func (h *FilesHandler) ScaffoldProject(c *gin.Context) {
	project, ok := h.ownedProject(c)
	if !ok {
		return
	}

	plan, created, err := h.manager.Scaffold(project)
	if err != nil {
		if errors.Is(err, supabase.ErrDuplicatePath) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Error:   "project already has scaffolded files",
				Message: "clear the project before scaffolding again",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to scaffold project", Message: err.Error()})
		return
	}

	h.publish(project.ID, "project_scaffolded", supabase.ProjectScaffoldedPayload(project.ID, len(created)))
	c.JSON(http.StatusCreated, models.ScaffoldResponse{
		Files:            plan.Paths,
		ProjectStructure: plan.Structure,
		NextSteps:        plan.NextSteps,
	})
}

// ownedProject loads the project from the path parameter and checks that the
// caller owns it, writing the error response on failure.
func (h *FilesHandler) ownedProject(c *gin.Context) (*models.Project, bool) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return nil, false
	}
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return nil, false
	}
	project, err := h.dbClient.GetProject(projectID, userID)
	if err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get project", Message: err.Error()})
		return nil, false
	}
	return project, true
}

// ownedFile checks the file exists and belongs to the given project.
func (h *FilesHandler) ownedFile(c *gin.Context, projectID, fileID uuid.UUID) (*models.ProjectFile, bool) {
	file, err := h.dbClient.GetFile(fileID)
	if err != nil {
		if errors.Is(err, supabase.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "file not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get file", Message: err.Error()})
		return nil, false
	}
	if file.ProjectID != projectID {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "file not found"})
		return nil, false
	}
	return file, true
}

func (h *FilesHandler) publish(projectID uuid.UUID, event string, payload map[string]interface{}) {
	if h.realtimeClient == nil {
		return
	}
	if err := h.realtimeClient.PublishProjectEvent(projectID, event, payload); err != nil {
		log.Printf("files: realtime publish failed: %v", err)
	}
}
