package domain

import "togglv9/internal/codec"

// User is a member of an organization, as listed by organization endpoints.
// The authenticated account itself is described by endpoint.MeResponse.
type User struct {
	ID             int64       `json:"id"`
	UserID         int64       `json:"user_id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	AvatarURL      string      `json:"avatar_url"`
	Admin          bool        `json:"admin"`
	Owner          bool        `json:"owner"`
	Inactive       bool        `json:"inactive"`
	Joined         bool        `json:"joined"`
	CanEditEmail   bool        `json:"can_edit_email"`
	InvitationCode string      `json:"invitation_code"`
	Groups         []Group     `json:"groups"`
	Workspaces     []Workspace `json:"workspaces"`
}

type Group struct {
	GroupID    int64           `json:"group_id"`
	Name       string          `json:"name"`
	Users      []User          `json:"users"`
	Workspaces []int64         `json:"workspaces"`
	At         codec.Timestamp `json:"at"`
}

// TrackReminder nudges users who tracked less than Threshold hours.
type TrackReminder struct {
	ReminderID  int64           `json:"reminder_id"`
	WorkspaceID int64           `json:"workspace_id"`
	Frequency   int64           `json:"frequency"` // days, 1 or 7
	Threshold   int64           `json:"threshold"` // hours
	GroupIDs    []int64         `json:"group_ids"`
	UserIDs     []int64         `json:"user_ids"`
	CreatedAt   codec.Timestamp `json:"created_at"`
}
