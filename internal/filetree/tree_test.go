package filetree_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modforge-backend/internal/filetree"
	"modforge-backend/internal/models"
)

func record(path string, isDir bool) models.ProjectFile {
	f := models.ProjectFile{
		ID:          uuid.New(),
		ProjectID:   uuid.New(),
		Path:        path,
		Name:        models.BaseOf(path),
		IsDirectory: isDir,
		ParentPath:  models.NullFrom(models.ParentOf(path)),
	}
	if !isDir {
		f.FileType = models.FileTypeFor(path)
	} else {
		f.FileType = "folder"
	}
	return f
}

func TestBuildSynthesizesMissingFolders(t *testing.T) {
	files := []models.ProjectFile{
		record("src/main/java/Main.java", false),
	}

	root := filetree.Build(files)

	src, ok := root.Lookup("src")
	require.True(t, ok)
	assert.Equal(t, filetree.Folder, src.Type)
	assert.Nil(t, src.File, "synthesized folder carries no record")

	leaf, ok := root.Lookup("src/main/java/Main.java")
	require.True(t, ok)
	assert.Equal(t, filetree.File, leaf.Type)
	require.NotNil(t, leaf.File)
	assert.Equal(t, "Main.java", leaf.File.Name)
}

func TestBuildAttachesRecordToImpliedFolder(t *testing.T) {
	// The folder record arrives after a child already implied it. The node
	// must keep its children and attach the record.
	files := []models.ProjectFile{
		record("src/Main.java", false),
		record("src", true),
	}

	root := filetree.Build(files)

	src, ok := root.Lookup("src")
	require.True(t, ok)
	assert.Equal(t, filetree.Folder, src.Type)
	require.NotNil(t, src.File)
	assert.True(t, src.File.IsDirectory)
	assert.Len(t, src.Children, 1)
}

func TestBuildFileRecordWithChildrenStaysFolder(t *testing.T) {
	// A non-directory record colliding with a path that has children keeps
	// the folder type so no subtree disappears from the view.
	files := []models.ProjectFile{
		record("config/options.txt", false),
		record("config", false),
	}

	root := filetree.Build(files)

	cfg, ok := root.Lookup("config")
	require.True(t, ok)
	assert.Equal(t, filetree.Folder, cfg.Type)
	assert.Len(t, cfg.Children, 1)
}

func TestBuildFileRecordGainingChildrenBecomesFolder(t *testing.T) {
	// Same collision with the file record processed first: once a
	// descendant arrives the node acts as a folder either way.
	files := []models.ProjectFile{
		record("config", false),
		record("config/options.txt", false),
	}

	root := filetree.Build(files)

	cfg, ok := root.Lookup("config")
	require.True(t, ok)
	assert.Equal(t, filetree.Folder, cfg.Type)
	assert.Len(t, cfg.Children, 1)
}

func TestBuildIsOrderIndependent(t *testing.T) {
	a := []models.ProjectFile{
		record("src", true),
		record("src/main", true),
		record("src/main/Main.java", false),
		record("README.md", false),
	}
	b := []models.ProjectFile{a[3], a[2], a[1], a[0]}

	assert.True(t, filetree.Equal(filetree.Build(a), filetree.Build(b)))
}

func TestFlattenRoundTrip(t *testing.T) {
	files := []models.ProjectFile{
		record("build.gradle", false),
		record("src", true),
		record("src/main", true),
		record("src/main/Main.java", false),
	}

	root := filetree.Build(files)
	flat := root.Flatten()

	require.Len(t, flat, len(files))
	for i := 1; i < len(flat); i++ {
		assert.Less(t, flat[i-1].Path, flat[i].Path)
	}

	rebuilt := filetree.Build(flat)
	assert.True(t, filetree.Equal(root, rebuilt))
}

func TestFlattenOmitsSynthesizedFolders(t *testing.T) {
	files := []models.ProjectFile{
		record("a/b/c.txt", false),
	}

	flat := filetree.Build(files).Flatten()

	require.Len(t, flat, 1)
	assert.Equal(t, "a/b/c.txt", flat[0].Path)
}

func TestSortedChildrenOrder(t *testing.T) {
	files := []models.ProjectFile{
		record("zeta.txt", false),
		record("alpha.txt", false),
		record("mid.txt", false),
	}

	children := filetree.Build(files).SortedChildren()

	require.Len(t, children, 3)
	assert.Equal(t, "alpha.txt", children[0].Name)
	assert.Equal(t, "mid.txt", children[1].Name)
	assert.Equal(t, "zeta.txt", children[2].Name)
}

func TestLookupMissingPath(t *testing.T) {
	root := filetree.Build([]models.ProjectFile{record("a.txt", false)})

	_, ok := root.Lookup("b.txt")
	assert.False(t, ok)

	self, ok := root.Lookup("")
	assert.True(t, ok)
	assert.Equal(t, root, self)
}

func TestBuildEmptyInput(t *testing.T) {
	root := filetree.Build(nil)

	assert.Empty(t, root.Children)
	assert.Empty(t, root.Flatten())
}
