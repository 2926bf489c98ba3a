package dependency_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modforge-backend/internal/dependency"
	"modforge-backend/internal/models"
)

const gradleWithDeps = `plugins {
    id 'eclipse'
}

dependencies {
    minecraft 'net.minecraftforge:forge:1.20.1-47.2.0'
    modImplementation 'mezz.jei:jei-1.20.1:15.2.0.27'
    implementation 'org.apache.commons:commons-lang3:3.12.0'
}`

func TestSearchMatchesNameAndDescription(t *testing.T) {
	byName := dependency.Search("jei")
	require.Len(t, byName, 1)
	assert.Equal(t, "jei", byName[0].ID)

	byDescription := dependency.Search("teleportation")
	require.Len(t, byDescription, 1)
	assert.Equal(t, "waystones", byDescription[0].ID)

	assert.Empty(t, dependency.Search("nonexistent"))

	all := dependency.Search("")
	assert.Len(t, all, 4)
}

func TestAddInsertsIntoDependenciesBlock(t *testing.T) {
	dep := &models.Dependency{Name: "Waystones", Group: "blay09", Artifact: "waystones", Version: "14.1.3"}

	updated := dependency.Add(gradleWithDeps, dep, models.PlatformForge)

	assert.Contains(t, updated, "modImplementation 'blay09:waystones:14.1.3'")
	assert.Equal(t, 1, strings.Count(updated, "dependencies {"))
}

func TestAddCreatesBlockWhenMissing(t *testing.T) {
	dep := &models.Dependency{Name: "JEI", Group: "mezz.jei", Artifact: "jei", Version: "15.2.0.27"}

	updated := dependency.Add("plugins {\n}", dep, models.PlatformFabric)

	assert.Contains(t, updated, "dependencies {")
	assert.Contains(t, updated, "modImplementation 'mezz.jei:jei:15.2.0.27'")
}

func TestAddNeoForgeUsesImplementation(t *testing.T) {
	dep := &models.Dependency{Name: "JEI", Group: "mezz.jei", Artifact: "jei", Version: "15.2.0.27"}

	updated := dependency.Add("dependencies {\n}", dep, models.PlatformNeoForge)

	assert.Contains(t, updated, "implementation 'mezz.jei:jei:15.2.0.27'")
	assert.NotContains(t, updated, "modImplementation")
}

func TestRemoveDropsMatchingLines(t *testing.T) {
	updated := dependency.Remove(gradleWithDeps, "jei")

	assert.NotContains(t, updated, "modImplementation 'mezz.jei")
	assert.Contains(t, updated, "commons-lang3", "unrelated lines survive")
	assert.Contains(t, updated, "minecraft 'net.minecraftforge", "non-dependency lines survive")
}

func TestReplaceSwapsVersion(t *testing.T) {
	dep := &models.Dependency{Name: "jei", Group: "mezz.jei", Artifact: "jei-1.20.1", Version: "15.3.0.4"}

	updated := dependency.Replace(gradleWithDeps, dep, models.PlatformForge)

	assert.NotContains(t, updated, "15.2.0.27")
	assert.Contains(t, updated, "modImplementation 'mezz.jei:jei-1.20.1:15.3.0.4'")
}

func TestListParsesCoordinates(t *testing.T) {
	deps := dependency.List(gradleWithDeps)

	require.Len(t, deps, 2)
	assert.Equal(t, "mezz.jei", deps[0].Group)
	assert.Equal(t, "jei-1.20.1", deps[0].Artifact)
	assert.Equal(t, "15.2.0.27", deps[0].Version)
	assert.Equal(t, "mod", deps[0].Type)
	assert.Equal(t, "library", deps[1].Type)
}

func TestCheckUpdatesBumpsPatch(t *testing.T) {
	updates := dependency.CheckUpdates(gradleWithDeps)

	require.Len(t, updates, 2)
	for _, u := range updates {
		assert.True(t, u.HasUpdate)
	}
	assert.Equal(t, "3.12.0", updates[1].CurrentVersion)
	assert.Equal(t, "3.12.1", updates[1].LatestVersion)
}

func TestListEmptyBuildFile(t *testing.T) {
	assert.Empty(t, dependency.List(""))
	assert.Empty(t, dependency.CheckUpdates(""))
}
