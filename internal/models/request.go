package models

type CreateProjectRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description,omitempty"`
	Platform         string `json:"platform" binding:"required"`
	MinecraftVersion string `json:"minecraft_version" binding:"required"`
	// Scaffold controls whether the sample mod tree is created alongside the
	// project row. Defaults to true when omitted.
	Scaffold *bool `json:"scaffold,omitempty"`
}

type UpdateProjectStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateFileRequest struct {
	Name       string `json:"name" binding:"required"`
	ParentPath string `json:"parent_path,omitempty"`
	Content    string `json:"content,omitempty"`
	FileType   string `json:"file_type,omitempty"`
	// Kind selects what to create: "file" (default), "folder", or "template".
	Kind     string `json:"kind,omitempty"`
	Template string `json:"template,omitempty"`
}

type UpdateFileRequest struct {
	Content *string `json:"content,omitempty"`
	// NewPath moves the file. For directories the move cascades to every
	// descendant record.
	NewPath *string `json:"new_path,omitempty"`
}

type GenerateRequest struct {
	Prompt         string       `json:"prompt" binding:"required"`
	CurrentFile    *FileContext `json:"current_file,omitempty"`
	ProjectContext string       `json:"project_context,omitempty"`
}

type FileContext struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

type ReviewRequest struct {
	Code     string `json:"code" binding:"required"`
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
}

type BuildRequest struct {
	// BuildType is "compile" or "test"; defaults to "compile".
	BuildType string `json:"build_type,omitempty"`
}

type AnalyzeRequest struct {
	// AnalysisType is informational and echoed back; defaults to "full".
	AnalysisType string `json:"analysis_type,omitempty"`
}

type DependencyRequest struct {
	Action     string      `json:"action" binding:"required"`
	Query      string      `json:"query,omitempty"`
	Dependency *Dependency `json:"dependency,omitempty"`
	Platform   string      `json:"platform,omitempty"`
	BuildFile  string      `json:"build_file,omitempty"`
}

type Dependency struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Group    string `json:"group,omitempty"`
	Artifact string `json:"artifact,omitempty"`
	Version  string `json:"version"`
	// OldVersion is set on update actions to report what was replaced.
	OldVersion string `json:"old_version,omitempty"`
}

type ChatMessageRequest struct {
	Type          string            `json:"type" binding:"required"`
	Content       string            `json:"content" binding:"required"`
	FileContext   string            `json:"file_context,omitempty"`
	GeneratedCode *GenerateResponse `json:"generated_code,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
