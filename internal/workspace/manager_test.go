package workspace_test

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modforge-backend/internal/filetree"
	"modforge-backend/internal/models"
	"modforge-backend/internal/supabase"
	"modforge-backend/internal/workspace"
)

// fakeStore is an in-memory Store with the same semantics the SQL layer
// provides: unique paths per project, cascading directory moves and deletes,
// all-or-nothing batches.
type fakeStore struct {
	files map[uuid.UUID]*models.ProjectFile
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: make(map[uuid.UUID]*models.ProjectFile)}
}

func (s *fakeStore) pathTaken(projectID uuid.UUID, path string) bool {
	for _, f := range s.files {
		if f.ProjectID == projectID && f.Path == path {
			return true
		}
	}
	return false
}

func (s *fakeStore) CreateFile(projectID uuid.UUID, path, name, content, fileType string, isDirectory bool, parentPath string) (*models.ProjectFile, error) {
	if s.pathTaken(projectID, path) {
		return nil, supabase.ErrDuplicatePath
	}
	f := &models.ProjectFile{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Path:        path,
		Name:        name,
		Content:     content,
		FileType:    fileType,
		IsDirectory: isDirectory,
		ParentPath:  models.NullFrom(parentPath),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.files[f.ID] = f
	out := *f
	return &out, nil
}

func (s *fakeStore) GetFile(fileID uuid.UUID) (*models.ProjectFile, error) {
	f, ok := s.files[fileID]
	if !ok {
		return nil, supabase.ErrNotFound
	}
	out := *f
	return &out, nil
}

func (s *fakeStore) ListFiles(projectID uuid.UUID) ([]models.ProjectFile, error) {
	var out []models.ProjectFile
	for _, f := range s.files {
		if f.ProjectID == projectID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (s *fakeStore) UpdateFileContent(fileID uuid.UUID, content string) (*models.ProjectFile, error) {
	f, ok := s.files[fileID]
	if !ok {
		return nil, supabase.ErrNotFound
	}
	f.Content = content
	f.UpdatedAt = time.Now()
	out := *f
	return &out, nil
}

func (s *fakeStore) MoveFile(fileID uuid.UUID, newPath string, content *string) (*models.ProjectFile, error) {
	f, ok := s.files[fileID]
	if !ok {
		return nil, supabase.ErrNotFound
	}
	if f.Path != newPath && s.pathTaken(f.ProjectID, newPath) {
		return nil, supabase.ErrDuplicatePath
	}
	oldPath := f.Path
	if f.IsDirectory {
		prefix := oldPath + "/"
		for _, d := range s.files {
			if d.ProjectID == f.ProjectID && strings.HasPrefix(d.Path, prefix) {
				d.Path = newPath + "/" + strings.TrimPrefix(d.Path, prefix)
				d.ParentPath = models.NullFrom(models.ParentOf(d.Path))
			}
		}
	}
	f.Path = newPath
	f.Name = models.BaseOf(newPath)
	f.ParentPath = models.NullFrom(models.ParentOf(newPath))
	if content != nil {
		f.Content = *content
	}
	out := *f
	return &out, nil
}

func (s *fakeStore) DeleteFile(fileID uuid.UUID) (int64, error) {
	f, ok := s.files[fileID]
	if !ok {
		return 0, supabase.ErrNotFound
	}
	removed := int64(1)
	if f.IsDirectory {
		prefix := f.Path + "/"
		for id, d := range s.files {
			if d.ProjectID == f.ProjectID && strings.HasPrefix(d.Path, prefix) {
				delete(s.files, id)
				removed++
			}
		}
	}
	delete(s.files, fileID)
	return removed, nil
}

func (s *fakeStore) CreateFilesBatch(projectID uuid.UUID, files []models.ProjectFile) ([]models.ProjectFile, error) {
	for _, f := range files {
		if s.pathTaken(projectID, f.Path) {
			return nil, supabase.ErrDuplicatePath
		}
	}
	out := make([]models.ProjectFile, 0, len(files))
	for _, f := range files {
		created, err := s.CreateFile(projectID, f.Path, f.Name, f.Content, f.FileType, f.IsDirectory, f.ParentPath.String)
		if err != nil {
			return nil, err
		}
		out = append(out, *created)
	}
	return out, nil
}

func (s *fakeStore) ClearProjectFiles(projectID uuid.UUID) (int64, error) {
	var removed int64
	for id, f := range s.files {
		if f.ProjectID == projectID {
			delete(s.files, id)
			removed++
		}
	}
	return removed, nil
}

func TestCreateRejectsBlankName(t *testing.T) {
	m := workspace.NewManager(newFakeStore())

	_, err := m.Create(uuid.New(), "   ", "", "", "")
	assert.ErrorIs(t, err, workspace.ErrBlankName)

	_, err = m.CreateFolder(uuid.New(), "", "src")
	assert.ErrorIs(t, err, workspace.ErrBlankName)
}

func TestCreateGuessesFileType(t *testing.T) {
	m := workspace.NewManager(newFakeStore())
	projectID := uuid.New()

	file, err := m.Create(projectID, "Main.java", "src", "class Main {}", "")
	require.NoError(t, err)
	assert.Equal(t, "src/Main.java", file.Path)
	assert.Equal(t, "java", file.FileType)
	assert.False(t, file.IsDirectory)

	current, ok := m.CurrentFile(projectID)
	assert.True(t, ok)
	assert.Equal(t, file.ID, current)
}

func TestCreateDuplicatePath(t *testing.T) {
	m := workspace.NewManager(newFakeStore())
	projectID := uuid.New()

	_, err := m.Create(projectID, "a.txt", "", "", "")
	require.NoError(t, err)

	_, err = m.Create(projectID, "a.txt", "", "", "")
	assert.ErrorIs(t, err, supabase.ErrDuplicatePath)
}

func TestCreateFromTemplateAppendsExtension(t *testing.T) {
	m := workspace.NewManager(newFakeStore())
	projectID := uuid.New()

	file, err := m.CreateFromTemplate(projectID, "block", "RubyBlock", "src", "mymod")
	require.NoError(t, err)
	assert.Equal(t, "RubyBlock.java", file.Name)
	assert.Equal(t, "java", file.FileType)
	assert.Contains(t, file.Content, "class RubyBlock extends Block")
}

func TestCreateFromTemplateUnknownKey(t *testing.T) {
	m := workspace.NewManager(newFakeStore())

	_, err := m.CreateFromTemplate(uuid.New(), "nope", "X", "", "mymod")
	assert.ErrorIs(t, err, workspace.ErrUnknownTemplate)
}

func TestUpdateContentOnly(t *testing.T) {
	m := workspace.NewManager(newFakeStore())
	projectID := uuid.New()

	file, err := m.Create(projectID, "a.txt", "", "old", "")
	require.NoError(t, err)

	content := "new"
	updated, err := m.Update(file.ID, &content, nil)
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Content)
	assert.Equal(t, "a.txt", updated.Path)
}

func TestUpdateMovesDirectorySubtree(t *testing.T) {
	store := newFakeStore()
	m := workspace.NewManager(store)
	projectID := uuid.New()

	dir, err := m.CreateFolder(projectID, "src", "")
	require.NoError(t, err)
	inner, err := m.Create(projectID, "Main.java", "src", "", "")
	require.NoError(t, err)

	newPath := "source"
	moved, err := m.Update(dir.ID, nil, &newPath)
	require.NoError(t, err)
	assert.Equal(t, "source", moved.Path)

	got, err := store.GetFile(inner.ID)
	require.NoError(t, err)
	assert.Equal(t, "source/Main.java", got.Path)
	assert.Equal(t, "source", got.ParentPath.String)
}

func TestDeleteDirectoryCascades(t *testing.T) {
	m := workspace.NewManager(newFakeStore())
	projectID := uuid.New()

	dir, err := m.CreateFolder(projectID, "src", "")
	require.NoError(t, err)
	_, err = m.Create(projectID, "A.java", "src", "", "")
	require.NoError(t, err)
	_, err = m.Create(projectID, "B.java", "src", "", "")
	require.NoError(t, err)

	removed, err := m.Delete(dir.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	files, err := m.List(projectID)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, ok := m.CurrentFile(projectID)
	assert.False(t, ok, "current file pointed into the deleted subtree")
}

func TestClearDropsEverything(t *testing.T) {
	m := workspace.NewManager(newFakeStore())
	projectID := uuid.New()

	_, err := m.Create(projectID, "a.txt", "", "", "")
	require.NoError(t, err)
	_, err = m.Create(projectID, "b.txt", "", "", "")
	require.NoError(t, err)

	removed, err := m.Clear(projectID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, ok := m.Cached(projectID)
	assert.False(t, ok)
}

func TestScaffoldPersistsPlan(t *testing.T) {
	m := workspace.NewManager(newFakeStore())
	project := &models.Project{
		ID:               uuid.New(),
		Name:             "Ruby Tools",
		Platform:         models.PlatformForge,
		MinecraftVersion: "1.20.1",
		ModID:            "rubytools",
	}

	plan, created, err := m.Scaffold(project)
	require.NoError(t, err)
	assert.NotEmpty(t, plan.Paths)
	assert.Greater(t, len(created), len(plan.Paths), "directory records accompany the files")

	files, err := m.List(project.ID)
	require.NoError(t, err)
	assert.Len(t, files, len(created))

	// Scaffolding twice collides on every path.
	_, _, err = m.Scaffold(project)
	assert.ErrorIs(t, err, supabase.ErrDuplicatePath)
}

func TestNestedFoldersFormFolderChain(t *testing.T) {
	m := workspace.NewManager(newFakeStore())
	projectID := uuid.New()

	_, err := m.CreateFolder(projectID, "utils", "src")
	require.NoError(t, err)
	_, err = m.CreateFolder(projectID, "sub", "src/utils")
	require.NoError(t, err)

	tree, err := m.Tree(projectID)
	require.NoError(t, err)

	for _, path := range []string{"src", "src/utils", "src/utils/sub"} {
		node, ok := tree.Lookup(path)
		require.True(t, ok, path)
		assert.Equal(t, filetree.Folder, node.Type, path)
	}
}

func TestTreeReflectsRecords(t *testing.T) {
	m := workspace.NewManager(newFakeStore())
	projectID := uuid.New()

	_, err := m.Create(projectID, "Main.java", "src/main", "", "")
	require.NoError(t, err)

	tree, err := m.Tree(projectID)
	require.NoError(t, err)

	node, ok := tree.Lookup("src/main/Main.java")
	require.True(t, ok)
	assert.NotNil(t, node.File)
}
