package endpoint

import (
	"togglv9/internal/codec"
	"togglv9/internal/domain"
	"togglv9/internal/optional"
)

// MeQuery is the request shape of GET /me.
type MeQuery struct {
	// Include clients, projects, tags, tasks, time entries and workspaces.
	WithRelatedData optional.Value[bool]
}

func (r MeQuery) EncodeQuery() Query {
	var q Query
	q.Bool("with_related_data", r.WithRelatedData)
	return q
}

// MeResponse is the authenticated user. The related collections are only
// present when requested with WithRelatedData.
type MeResponse struct {
	ID                 int64                  `json:"id"`
	Email              string                 `json:"email"`
	Fullname           string                 `json:"fullname"`
	APIToken           optional.Value[string] `json:"api_token,omitzero"`
	BeginningOfWeek    codec.Weekday          `json:"beginning_of_week"`
	CountryID          optional.Value[int64]  `json:"country_id,omitzero"`
	DefaultWorkspaceID optional.Value[int64]  `json:"default_workspace_id,omitzero"`
	Timezone           string                 `json:"timezone"`
	ImageURL           string                 `json:"image_url"`
	HasPassword        bool                   `json:"has_password"`
	IntercomHash       optional.Value[string] `json:"intercom_hash,omitzero"`

	OAuthProviders optional.Value[[]string] `json:"oauth_providers,omitzero"`
	OpenIDEmail    optional.Value[string]   `json:"openid_email,omitzero"`
	OpenIDEnabled  bool                     `json:"openid_enabled"`

	Clients     optional.Value[[]domain.Client]    `json:"clients,omitzero"`
	Projects    optional.Value[[]domain.Project]   `json:"projects,omitzero"`
	Tags        optional.Value[[]domain.Tag]       `json:"tags,omitzero"`
	Tasks       optional.Value[[]domain.Task]      `json:"tasks,omitzero"`
	TimeEntries optional.Value[[]domain.TimeEntry] `json:"time_entries,omitzero"`
	Workspaces  optional.Value[[]domain.Workspace] `json:"workspaces,omitzero"`

	At        codec.Timestamp `json:"at"`
	CreatedAt codec.Timestamp `json:"created_at"`
	UpdatedAt codec.Timestamp `json:"updated_at"`
}

// UpdateMeRequest is the body of PUT /me. Absent fields are left unchanged
// by the server and are not sent.
type UpdateMeRequest struct {
	BeginningOfWeek    optional.Value[codec.Weekday] `json:"beginning_of_week,omitzero"`
	CountryID          optional.Value[int64]         `json:"country_id,omitzero"`
	DefaultWorkspaceID optional.Value[int64]         `json:"default_workspace_id,omitzero"`
	Email              optional.Value[string]        `json:"email,omitzero"`
	Fullname           optional.Value[string]        `json:"fullname,omitzero"`
	Timezone           optional.Value[string]        `json:"timezone,omitzero"`

	// Changing the password requires the current one.
	CurrentPassword optional.Value[string] `json:"current_password,omitzero"`
	Password        optional.Value[string] `json:"password,omitzero"`
}

// UpdateMeResponse is the complete user record returned after PUT /me.
type UpdateMeResponse struct {
	ID                 int64                  `json:"id"`
	Email              string                 `json:"email"`
	Fullname           string                 `json:"fullname"`
	APIToken           optional.Value[string] `json:"api_token,omitzero"`
	BeginningOfWeek    codec.Weekday          `json:"beginning_of_week"`
	CountryID          int64                  `json:"country_id"`
	DefaultWorkspaceID int64                  `json:"default_workspace_id"`
	Timezone           string                 `json:"timezone"`
	ImageURL           string                 `json:"image_url"`
	HasPassword        bool                   `json:"has_password"`
	OpenIDEmail        string                 `json:"openid_email"`
	OpenIDEnabled      bool                   `json:"openid_enabled"`
	At                 codec.Timestamp        `json:"at"`
	CreatedAt          codec.Timestamp        `json:"created_at"`
	UpdatedAt          codec.Timestamp        `json:"updated_at"`
}
