// Package dependency manages mod dependencies as text edits against a
// project's build.gradle. The catalog is a fixed list of popular mods; no
// external registry is consulted.
package dependency

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"modforge-backend/internal/models"
)

// CatalogEntry is one searchable mod in the built-in catalog.
type CatalogEntry struct {
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Versions    []string `json:"versions"`
	Platform    []string `json:"platform"`
	Downloads   int64    `json:"downloads"`
	URL         string   `json:"url"`
}

// Installed is a dependency parsed out of a build file.
type Installed struct {
	Group    string `json:"group"`
	Artifact string `json:"artifact"`
	Version  string `json:"version"`
	Name     string `json:"name"`
	Type     string `json:"type"`
}

// Update pairs an installed dependency with its (simulated) newer version.
type Update struct {
	Installed
	CurrentVersion string `json:"currentVersion"`
	LatestVersion  string `json:"latestVersion"`
	HasUpdate      bool   `json:"hasUpdate"`
}

var catalog = []CatalogEntry{
	{
		Name:        "JEI (Just Enough Items)",
		ID:          "jei",
		Description: "Item and recipe viewing mod",
		Versions:    []string{"11.6.0.1013", "11.5.0.297"},
		Platform:    []string{"forge", "fabric"},
		Downloads:   150000000,
		URL:         "https://www.curseforge.com/minecraft/mc-mods/jei",
	},
	{
		Name:        "Waystones",
		ID:          "waystones",
		Description: "Teleportation stones for easy travel",
		Versions:    []string{"14.1.3", "14.0.2"},
		Platform:    []string{"forge", "fabric"},
		Downloads:   75000000,
		URL:         "https://www.curseforge.com/minecraft/mc-mods/waystones",
	},
	{
		Name:        "Botania",
		ID:          "botania",
		Description: "Magic mod themed around nature",
		Versions:    []string{"443", "442"},
		Platform:    []string{"forge", "fabric"},
		Downloads:   45000000,
		URL:         "https://www.curseforge.com/minecraft/mc-mods/botania",
	},
	{
		Name:        "Applied Energistics 2",
		ID:          "ae2",
		Description: "Storage and automation mod",
		Versions:    []string{"15.0.16", "15.0.15"},
		Platform:    []string{"forge", "fabric"},
		Downloads:   120000000,
		URL:         "https://www.curseforge.com/minecraft/mc-mods/applied-energistics-2",
	},
}

// Search filters the catalog by name or description, case-insensitively.
func Search(query string) []CatalogEntry {
	q := strings.ToLower(query)
	results := []CatalogEntry{}
	for _, entry := range catalog {
		if strings.Contains(strings.ToLower(entry.Name), q) ||
			strings.Contains(strings.ToLower(entry.Description), q) {
			results = append(results, entry)
		}
	}
	return results
}

// Add appends a dependency line inside the dependencies block, creating the
// block when the build file has none.
func Add(buildFile string, dep *models.Dependency, platform string) string {
	line := dependencyLine(dep, platform)

	idx := strings.Index(buildFile, "dependencies {")
	if idx < 0 {
		return buildFile + "\n\ndependencies {\n    " + line + "\n}"
	}
	insert := strings.Index(buildFile[idx:], "}") + idx
	return buildFile[:insert] + "    " + line + "\n" + buildFile[insert:]
}

// Remove drops every implementation line mentioning the dependency name.
func Remove(buildFile, name string) string {
	lower := strings.ToLower(name)
	lines := strings.Split(buildFile, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		isDepLine := strings.HasPrefix(trimmed, "modImplementation") || strings.HasPrefix(trimmed, "implementation")
		if isDepLine && strings.Contains(strings.ToLower(line), lower) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Replace swaps a dependency for its new version: remove then add.
func Replace(buildFile string, dep *models.Dependency, platform string) string {
	return Add(Remove(buildFile, dep.Name), dep, platform)
}

var depLineRe = regexp.MustCompile(`'([^:]+):([^:]+):([^']+)'`)

// List parses the implementation lines of a build file.
func List(buildFile string) []Installed {
	deps := []Installed{}
	for _, line := range strings.Split(buildFile, "\n") {
		trimmed := strings.TrimSpace(line)
		isMod := strings.HasPrefix(trimmed, "modImplementation")
		if !isMod && !strings.HasPrefix(trimmed, "implementation") {
			continue
		}
		m := depLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		kind := "library"
		if isMod {
			kind = "mod"
		}
		deps = append(deps, Installed{
			Group:    m[1],
			Artifact: m[2],
			Version:  m[3],
			Name:     m[2],
			Type:     kind,
		})
	}
	return deps
}

// CheckUpdates reports a simulated newer patch version for every installed
// dependency.
func CheckUpdates(buildFile string) []Update {
	installed := List(buildFile)
	updates := make([]Update, 0, len(installed))
	for _, dep := range installed {
		updates = append(updates, Update{
			Installed:      dep,
			CurrentVersion: dep.Version,
			LatestVersion:  bumpPatch(dep.Version),
			HasUpdate:      true,
		})
	}
	return updates
}

func dependencyLine(dep *models.Dependency, platform string) string {
	coord := fmt.Sprintf("%s:%s:%s", dep.Group, dep.Artifact, dep.Version)
	switch platform {
	case models.PlatformNeoForge:
		return fmt.Sprintf("implementation '%s'", coord)
	default:
		return fmt.Sprintf("modImplementation '%s'", coord)
	}
}

func bumpPatch(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 3 {
		return version
	}
	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return version
	}
	parts[2] = strconv.Itoa(patch + 1)
	return strings.Join(parts[:3], ".")
}
