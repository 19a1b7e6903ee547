package domain

import (
	"togglv9/internal/codec"
	"togglv9/internal/optional"
)

// Client is a Toggl client (the customer a project is billed to).
type Client struct {
	ID              int64                           `json:"id"`
	WorkspaceID     int64                           `json:"wid"`
	Name            string                          `json:"name"`
	Archived        bool                            `json:"archived"`
	At              codec.Timestamp                 `json:"at"`
	ServerDeletedAt optional.Value[codec.Timestamp] `json:"server_deleted_at,omitzero"`
}
