package domain

import (
	"togglv9/internal/codec"
	"togglv9/internal/optional"
)

type Tag struct {
	ID          int64                           `json:"id"`
	WorkspaceID int64                           `json:"workspace_id"`
	Name        string                          `json:"name"`
	At          codec.Timestamp                 `json:"at"`
	DeletedAt   optional.Value[codec.Timestamp] `json:"deleted_at,omitzero"`
}
