package domain

import (
	"togglv9/internal/codec"
	"togglv9/internal/optional"
)

// Task is a unit of work inside a project.
type Task struct {
	ID               int64                         `json:"id"`
	WorkspaceID      int64                         `json:"workspace_id"`
	ProjectID        int64                         `json:"project_id"`
	UserID           optional.Value[int64]         `json:"user_id,omitzero"`
	Name             string                        `json:"name"`
	Active           bool                          `json:"active"`
	Recurring        bool                          `json:"recurring"`
	EstimatedSeconds optional.Value[codec.Seconds] `json:"estimated_seconds,omitzero"`

	// The API calls this field tracked_seconds but sends milliseconds.
	TrackedTime codec.Milliseconds `json:"tracked_seconds"`

	At              codec.Timestamp                 `json:"at"`
	ServerDeletedAt optional.Value[codec.Timestamp] `json:"server_deleted_at,omitzero"`
}
