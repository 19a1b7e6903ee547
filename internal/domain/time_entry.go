package domain

import (
	"togglv9/internal/codec"
	"togglv9/internal/optional"
)

// TimeEntry represents a Toggl time entry as returned by the v9 API.
type TimeEntry struct {
	ID          int64                 `json:"id"`
	WorkspaceID int64                 `json:"workspace_id"`
	UserID      int64                 `json:"user_id"`
	ProjectID   optional.Value[int64] `json:"project_id,omitzero"`
	TaskID      optional.Value[int64] `json:"task_id,omitzero"`
	Billable    bool                  `json:"billable"`

	// Null if no description was given at creation or update.
	Description optional.Value[string] `json:"description,omitzero"`

	Start codec.Timestamp                 `json:"start"`
	Stop  optional.Value[codec.Timestamp] `json:"stop,omitzero"`

	// Negative while running: -1 * the Unix start time.
	Duration codec.Seconds `json:"duration"`
	DurOnly  bool          `json:"duronly"`

	// Null if tags were not provided or were later deleted.
	Tags   optional.Value[[]string] `json:"tags,omitzero"`
	TagIDs optional.Value[[]int64]  `json:"tag_ids,omitzero"`

	At              codec.Timestamp                 `json:"at"`
	ServerDeletedAt optional.Value[codec.Timestamp] `json:"server_deleted_at,omitzero"`

	// Legacy aliases still sent by the API.
	WID int64                 `json:"wid"`
	UID int64                 `json:"uid"`
	PID optional.Value[int64] `json:"pid,omitzero"`
	TID optional.Value[int64] `json:"tid,omitzero"`
}

// Running reports whether the entry has no stop time and a negative duration.
func (e TimeEntry) Running() bool {
	return !e.Stop.IsSet() && e.Duration < 0
}
