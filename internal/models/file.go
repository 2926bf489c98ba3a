package models

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProjectFile is one file or directory row in a project workspace. Path is
// slash-delimited and unique within a project; Name is always the final path
// segment. Directories carry no content and exist only as hierarchy nodes.
type ProjectFile struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Path        string
	Name        string
	Content     string
	FileType    string
	IsDirectory bool
	ParentPath  sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NullFrom wraps a string as a sql.NullString, treating "" as NULL.
func NullFrom(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ParentOf returns the parent path of a slash-delimited path, or "" for a
// root-level entry.
func ParentOf(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// BaseOf returns the final segment of a slash-delimited path.
func BaseOf(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// JoinPath joins a parent path and a name, tolerating an empty parent.
func JoinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// FileTypeFor guesses the classification tag from a filename. The tag drives
// editor mode and icon choice only; nothing downstream enforces it.
func FileTypeFor(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return "text"
	}
	switch strings.ToLower(filename[idx+1:]) {
	case "java":
		return "java"
	case "json":
		return "json"
	case "toml":
		return "toml"
	case "gradle":
		return "gradle"
	case "properties":
		return "properties"
	case "mcmeta":
		return "mcmeta"
	case "md":
		return "md"
	case "sh":
		return "sh"
	case "bat":
		return "bat"
	case "gitignore":
		return "gitignore"
	default:
		return "text"
	}
}
