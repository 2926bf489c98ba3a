package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Platform values accepted for a project.
const (
	PlatformForge    = "forge"
	PlatformFabric   = "fabric"
	PlatformQuilt    = "quilt"
	PlatformNeoForge = "neoforge"
)

// Status values a project moves through.
const (
	StatusActive    = "active"
	StatusBuilding  = "building"
	StatusError     = "error"
	StatusCompleted = "completed"
)

type Project struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	Description      sql.NullString
	Platform         string
	MinecraftVersion string
	ModID            string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func ValidPlatform(p string) bool {
	switch p {
	case PlatformForge, PlatformFabric, PlatformQuilt, PlatformNeoForge:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusBuilding, StatusError, StatusCompleted:
		return true
	}
	return false
}
