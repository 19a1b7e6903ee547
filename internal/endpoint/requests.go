package endpoint

import (
	"strconv"
	"time"

	"togglv9/internal/codec"
	"togglv9/internal/optional"
)

type ClientsQuery struct {
	// Clients modified since this instant.
	Since optional.Value[time.Time]
}

func (r ClientsQuery) EncodeQuery() Query {
	var q Query
	q.Epoch("since", r.Since)
	return q
}

type ProjectsQuery struct {
	IncludeArchived optional.Value[bool]
	// Projects modified since this instant, including deleted ones.
	Since optional.Value[time.Time]
}

func (r ProjectsQuery) EncodeQuery() Query {
	var q Query
	q.Bool("include_archived", r.IncludeArchived)
	q.Epoch("since", r.Since)
	return q
}

type TagsQuery struct {
	Since optional.Value[time.Time]
}

func (r TagsQuery) EncodeQuery() Query {
	var q Query
	q.Epoch("since", r.Since)
	return q
}

type TasksQuery struct {
	Since optional.Value[time.Time]
	// Include tasks marked as done.
	IncludeNotActive optional.Value[bool]
}

func (r TasksQuery) EncodeQuery() Query {
	var q Query
	q.Epoch("since", r.Since)
	q.Bool("include_not_active", r.IncludeNotActive)
	return q
}

type WorkspacesQuery struct {
	Since optional.Value[time.Time]
}

func (r WorkspacesQuery) EncodeQuery() Query {
	var q Query
	q.Epoch("since", r.Since)
	return q
}

// TimeEntriesQuery filters GET /me/time_entries. StartDate and EndDate are
// meant to be used together.
type TimeEntriesQuery struct {
	// Entries modified since this instant, including deleted ones.
	Since optional.Value[time.Time]
	// Entries starting before this instant.
	Before    optional.Value[time.Time]
	StartDate optional.Value[codec.Date]
	EndDate   optional.Value[codec.Date]
}

func (r TimeEntriesQuery) EncodeQuery() Query {
	var q Query
	q.Epoch("since", r.Since)
	q.Epoch("before", r.Before)
	q.Date("start_date", r.StartDate)
	q.Date("end_date", r.EndDate)
	return q
}

// WorkspaceParams binds {workspace_id}. A zero ID leaves the token unbound.
type WorkspaceParams struct {
	WorkspaceID int64
}

func (p WorkspaceParams) PathParams() Params {
	if p.WorkspaceID == 0 {
		return Params{}
	}
	return Params{"workspace_id": strconv.FormatInt(p.WorkspaceID, 10)}
}

// CreateTimeEntryRequest is the body of POST /workspaces/{workspace_id}/time_entries.
// Start, CreatedWith and WorkspaceID are required by the API; the rest are sent only when set.
type CreateTimeEntryRequest struct {
	CreatedWith string          `json:"created_with"`
	WorkspaceID int64           `json:"workspace_id"`
	Start       codec.Timestamp `json:"start"`

	Stop        optional.Value[codec.Timestamp] `json:"stop,omitzero"`
	Duration    optional.Value[codec.Seconds]   `json:"duration,omitzero"`
	DurOnly     optional.Value[bool]            `json:"duronly,omitzero"`
	Description optional.Value[string]          `json:"description,omitzero"`
	Billable    optional.Value[bool]            `json:"billable,omitzero"`
	ProjectID   optional.Value[int64]           `json:"project_id,omitzero"`
	TaskID      optional.Value[int64]           `json:"task_id,omitzero"`
	UserID      optional.Value[int64]           `json:"user_id,omitzero"`
	Tags        optional.Value[[]string]        `json:"tags,omitzero"`
	TagIDs      optional.Value[[]int64]         `json:"tag_ids,omitzero"`
	// "add" or "delete"; how Tags/TagIDs apply.
	TagAction optional.Value[string] `json:"tag_action,omitzero"`
}
