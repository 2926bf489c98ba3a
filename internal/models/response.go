package models

import "time"

type ProjectResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Platform         string    `json:"platform"`
	MinecraftVersion string    `json:"minecraft_version"`
	ModID            string    `json:"mod_id"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type FileResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Path        string    `json:"file_path"`
	Name        string    `json:"file_name"`
	Content     string    `json:"file_content"`
	FileType    string    `json:"file_type"`
	IsDirectory bool      `json:"is_directory"`
	ParentPath  string    `json:"parent_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type FileListResponse struct {
	Files []FileResponse `json:"files"`
}

type ScaffoldResponse struct {
	Files            []string          `json:"files"`
	ProjectStructure map[string]string `json:"projectStructure"`
	NextSteps        []string          `json:"nextSteps"`
}

type GenerateResponse struct {
	Code        string `json:"code"`
	Explanation string `json:"explanation"`
	Filename    string `json:"filename"`
	FileType    string `json:"fileType"`
}

type ReviewResponse struct {
	Review string `json:"review"`
}

type ExportResponse struct {
	Filename    string `json:"filename"`
	StoragePath string `json:"storage_path"`
	StorageURL  string `json:"storage_url"`
	FileCount   int    `json:"file_count"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// NewFileResponse maps the canonical internal model onto the wire shape. The
// snake_case field names match the persisted columns so the browser client
// reads rows and API responses identically.
func NewFileResponse(f ProjectFile) FileResponse {
	resp := FileResponse{
		ID:          f.ID.String(),
		ProjectID:   f.ProjectID.String(),
		Path:        f.Path,
		Name:        f.Name,
		Content:     f.Content,
		FileType:    f.FileType,
		IsDirectory: f.IsDirectory,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
	if f.ParentPath.Valid {
		resp.ParentPath = f.ParentPath.String
	}
	return resp
}

func NewProjectResponse(p Project) ProjectResponse {
	resp := ProjectResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		Platform:         p.Platform,
		MinecraftVersion: p.MinecraftVersion,
		ModID:            p.ModID,
		Status:           p.Status,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Description.Valid {
		resp.Description = p.Description.String
	}
	return resp
}
