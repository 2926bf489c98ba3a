package workspace_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modforge-backend/internal/models"
	"modforge-backend/internal/workspace"
)

func sampleProject(platform string) *models.Project {
	return &models.Project{
		ID:               uuid.New(),
		Name:             "Ruby Tools",
		Description:      models.NullFrom("Adds ruby gear"),
		Platform:         platform,
		MinecraftVersion: "1.20.1",
		ModID:            "rubytools",
	}
}

func TestNormalizeModID(t *testing.T) {
	assert.Equal(t, "rubytools", workspace.NormalizeModID("Ruby Tools"))
	assert.Equal(t, "mod2", workspace.NormalizeModID("Mod-2!"))
	assert.Equal(t, "", workspace.NormalizeModID("***"))
}

func TestClassNameFor(t *testing.T) {
	assert.Equal(t, "RubyToolsMod", workspace.ClassNameFor("Ruby Tools"))
	assert.Equal(t, "ExampleMod", workspace.ClassNameFor("***"))
}

func TestBuildScaffoldForge(t *testing.T) {
	plan := workspace.BuildScaffold(sampleProject(models.PlatformForge))

	structure := plan.Structure
	require.Contains(t, structure, "build.gradle")
	assert.Contains(t, structure["build.gradle"], "net.minecraftforge.gradle")
	assert.Contains(t, structure["build.gradle"], "1.20.1")

	toml, ok := structure["src/main/resources/META-INF/mods.toml"]
	require.True(t, ok)
	assert.Contains(t, toml, `modId="rubytools"`)
	assert.Contains(t, toml, `displayName="Ruby Tools"`)

	main, ok := structure["src/main/java/com/yourname/rubytools/RubyToolsMod.java"]
	require.True(t, ok)
	assert.Contains(t, main, `@Mod("rubytools")`)
	assert.Contains(t, main, "public class RubyToolsMod")

	assert.NotContains(t, structure, "src/main/resources/fabric.mod.json")
	assert.NotContains(t, structure, "src/main/resources/quilt.mod.json")
}

func TestBuildScaffoldFabric(t *testing.T) {
	plan := workspace.BuildScaffold(sampleProject(models.PlatformFabric))

	modJSON, ok := plan.Structure["src/main/resources/fabric.mod.json"]
	require.True(t, ok)
	assert.Contains(t, modJSON, `"id": "rubytools"`)
	assert.Contains(t, modJSON, "com.yourname.rubytools.RubyToolsMod")
	assert.Contains(t, plan.Structure["build.gradle"], "fabric-loom")
}

func TestBuildScaffoldQuilt(t *testing.T) {
	plan := workspace.BuildScaffold(sampleProject(models.PlatformQuilt))

	_, ok := plan.Structure["src/main/resources/quilt.mod.json"]
	assert.True(t, ok)
	assert.Contains(t, plan.Structure["build.gradle"], "org.quiltmc.loom")
}

func TestBuildScaffoldRecordOrder(t *testing.T) {
	plan := workspace.BuildScaffold(sampleProject(models.PlatformForge))

	// Directories come first so parents exist before children on insert,
	// then files, both in path order.
	seenFile := false
	var lastDir, lastFile string
	for _, f := range plan.Files {
		if f.IsDirectory {
			assert.False(t, seenFile, "directory record after a file record")
			assert.Less(t, lastDir, f.Path)
			lastDir = f.Path
			assert.Equal(t, "folder", f.FileType)
			assert.Empty(t, f.Content)
		} else {
			seenFile = true
			assert.Less(t, lastFile, f.Path)
			lastFile = f.Path
		}
	}

	// Every parent path has a directory record.
	dirs := map[string]bool{}
	for _, f := range plan.Files {
		if f.IsDirectory {
			dirs[f.Path] = true
		}
	}
	for _, f := range plan.Files {
		if parent := models.ParentOf(f.Path); parent != "" {
			assert.True(t, dirs[parent], "missing directory record for %s", parent)
		}
	}
}

func TestBuildScaffoldNextSteps(t *testing.T) {
	plan := workspace.BuildScaffold(sampleProject(models.PlatformForge))

	require.NotEmpty(t, plan.NextSteps)
	assert.Contains(t, strings.Join(plan.NextSteps, "\n"), "gradlew runClient")
}

func TestRenderTemplateCatalog(t *testing.T) {
	for _, tpl := range workspace.FileTemplates {
		got, ok := workspace.TemplateByKey(tpl.Template)
		require.True(t, ok)
		assert.Equal(t, tpl.Name, got.Name)
	}

	_, ok := workspace.TemplateByKey("bogus")
	assert.False(t, ok)
}
