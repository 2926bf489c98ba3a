package workspace

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"modforge-backend/internal/filetree"
	"modforge-backend/internal/models"
)

var (
	// ErrBlankName is returned when a file or folder name is empty or
	// whitespace only.
	ErrBlankName = errors.New("file name cannot be blank")
	// ErrUnknownTemplate is returned when a template key has no catalog entry.
	ErrUnknownTemplate = errors.New("unknown file template")
)

// Store is the persistence surface the manager needs. *supabase.DatabaseClient
// satisfies it; tests swap in a fake.
type Store interface {
	CreateFile(projectID uuid.UUID, path, name, content, fileType string, isDirectory bool, parentPath string) (*models.ProjectFile, error)
	GetFile(fileID uuid.UUID) (*models.ProjectFile, error)
	ListFiles(projectID uuid.UUID) ([]models.ProjectFile, error)
	UpdateFileContent(fileID uuid.UUID, content string) (*models.ProjectFile, error)
	MoveFile(fileID uuid.UUID, newPath string, content *string) (*models.ProjectFile, error)
	DeleteFile(fileID uuid.UUID) (int64, error)
	CreateFilesBatch(projectID uuid.UUID, files []models.ProjectFile) ([]models.ProjectFile, error)
	ClearProjectFiles(projectID uuid.UUID) (int64, error)
}

// Manager is the workspace façade: all file CRUD, template creation, and
// scaffolding for a project goes through it. It keeps a per-project in-memory
// mirror of the file list so tree rendering and current-file tracking do not
// hit the database on every read. The database remains the source of truth;
// the mirror is refreshed on every write and on List.
type Manager struct {
	store Store

	mu      sync.Mutex
	mirror  map[uuid.UUID][]models.ProjectFile
	current map[uuid.UUID]uuid.UUID
}

// NewManager creates a workspace manager over a persistence store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:   store,
		mirror:  make(map[uuid.UUID][]models.ProjectFile),
		current: make(map[uuid.UUID]uuid.UUID),
	}
}

// List returns all file records for a project in path order and refreshes the
// mirror.
func (m *Manager) List(projectID uuid.UUID) ([]models.ProjectFile, error) {
	files, err := m.store.ListFiles(projectID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.mirror[projectID] = files
	m.mu.Unlock()
	return files, nil
}

// Tree builds the hierarchical view of a project's files.
func (m *Manager) Tree(projectID uuid.UUID) (*filetree.Node, error) {
	files, err := m.List(projectID)
	if err != nil {
		return nil, err
	}
	return filetree.Build(files), nil
}

// Create persists a new file record. The path is parentPath + "/" + name;
// blank names are rejected before touching the store.
func (m *Manager) Create(projectID uuid.UUID, name, parentPath, content, fileType string) (*models.ProjectFile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}
	if fileType == "" {
		fileType = models.FileTypeFor(name)
	}
	path := models.JoinPath(parentPath, name)
	file, err := m.store.CreateFile(projectID, path, name, content, fileType, false, parentPath)
	if err != nil {
		return nil, err
	}
	m.mirrorAdd(projectID, *file)
	m.setCurrent(projectID, file.ID)
	return file, nil
}

// CreateFolder persists a directory record. Folders carry no content and are
// never set as the current file.
func (m *Manager) CreateFolder(projectID uuid.UUID, name, parentPath string) (*models.ProjectFile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}
	path := models.JoinPath(parentPath, name)
	folder, err := m.store.CreateFile(projectID, path, name, "", "folder", true, parentPath)
	if err != nil {
		return nil, err
	}
	m.mirrorAdd(projectID, *folder)
	return folder, nil
}

// CreateFromTemplate renders a catalog template and persists the result. The
// template's extension is appended when the name lacks it.
func (m *Manager) CreateFromTemplate(projectID uuid.UUID, templateKey, name, parentPath, modID string) (*models.ProjectFile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}
	tpl, ok := TemplateByKey(templateKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, templateKey)
	}
	if !strings.HasSuffix(name, tpl.Extension) {
		name += tpl.Extension
	}
	content := renderTemplate(tpl.Template, name, modID)
	return m.Create(projectID, name, parentPath, content, tpl.Category)
}

// Update applies a content change, a rename/move, or both to an existing
// record. Moving a directory relocates its whole subtree; the mirror is
// re-read afterwards because descendant paths changed server-side.
func (m *Manager) Update(fileID uuid.UUID, content, newPath *string) (*models.ProjectFile, error) {
	if content == nil && newPath == nil {
		return m.store.GetFile(fileID)
	}
	var (
		file *models.ProjectFile
		err  error
	)
	if newPath != nil {
		file, err = m.store.MoveFile(fileID, *newPath, content)
	} else {
		file, err = m.store.UpdateFileContent(fileID, *content)
	}
	if err != nil {
		return nil, err
	}
	m.refreshMirror(file.ProjectID)
	return file, nil
}

// Delete removes a record and, for directories, everything underneath it.
// Returns the number of rows removed. The current-file marker is cleared if
// it pointed into the deleted subtree.
func (m *Manager) Delete(fileID uuid.UUID) (int64, error) {
	file, err := m.store.GetFile(fileID)
	if err != nil {
		return 0, err
	}
	deleted, err := m.store.DeleteFile(fileID)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	prefix := file.Path + "/"
	kept := m.mirror[file.ProjectID][:0]
	for _, f := range m.mirror[file.ProjectID] {
		if f.ID == fileID || (file.IsDirectory && strings.HasPrefix(f.Path, prefix)) {
			if m.current[file.ProjectID] == f.ID {
				delete(m.current, file.ProjectID)
			}
			continue
		}
		kept = append(kept, f)
	}
	m.mirror[file.ProjectID] = kept
	m.mu.Unlock()

	return deleted, nil
}

// Scaffold renders and persists the full starter layout for a project in one
// transaction. Any existing files with colliding paths fail the whole batch.
func (m *Manager) Scaffold(project *models.Project) (*ScaffoldPlan, []models.ProjectFile, error) {
	plan := BuildScaffold(project)
	created, err := m.store.CreateFilesBatch(project.ID, plan.Files)
	if err != nil {
		return nil, nil, err
	}
	m.mu.Lock()
	m.mirror[project.ID] = created
	m.mu.Unlock()
	return plan, created, nil
}

// Clear removes every file record in a project and drops its mirror state.
func (m *Manager) Clear(projectID uuid.UUID) (int64, error) {
	deleted, err := m.store.ClearProjectFiles(projectID)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	delete(m.mirror, projectID)
	delete(m.current, projectID)
	m.mu.Unlock()
	return deleted, nil
}

// Forget drops all cached state for a project. Called when the project itself
// is deleted.
func (m *Manager) Forget(projectID uuid.UUID) {
	m.mu.Lock()
	delete(m.mirror, projectID)
	delete(m.current, projectID)
	m.mu.Unlock()
}

// SetCurrentFile marks a file as the one open in the editor.
func (m *Manager) SetCurrentFile(projectID, fileID uuid.UUID) {
	m.setCurrent(projectID, fileID)
}

// CurrentFile reports the file currently open in the editor, if any.
func (m *Manager) CurrentFile(projectID uuid.UUID) (uuid.UUID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.current[projectID]
	return id, ok
}

// Cached returns the mirrored file list without touching the store. The
// second result reports whether the project has been loaded at all.
func (m *Manager) Cached(projectID uuid.UUID) ([]models.ProjectFile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	files, ok := m.mirror[projectID]
	if !ok {
		return nil, false
	}
	out := make([]models.ProjectFile, len(files))
	copy(out, files)
	return out, true
}

func (m *Manager) mirrorAdd(projectID uuid.UUID, file models.ProjectFile) {
	m.mu.Lock()
	m.mirror[projectID] = append(m.mirror[projectID], file)
	m.mu.Unlock()
}

func (m *Manager) setCurrent(projectID, fileID uuid.UUID) {
	m.mu.Lock()
	m.current[projectID] = fileID
	m.mu.Unlock()
}

func (m *Manager) refreshMirror(projectID uuid.UUID) {
	files, err := m.store.ListFiles(projectID)
	if err != nil {
		return
	}
	m.mu.Lock()
	m.mirror[projectID] = files
	m.mu.Unlock()
}
