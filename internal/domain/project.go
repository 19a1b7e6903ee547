package domain

import (
	"togglv9/internal/codec"
	"togglv9/internal/optional"
)

// Project represents a Toggl project.
type Project struct {
	ID          int64                 `json:"id"`
	WorkspaceID int64                 `json:"workspace_id"`
	ClientID    optional.Value[int64] `json:"client_id,omitzero"`
	Name        string                `json:"name"`
	Active      bool                  `json:"active"`
	Private     bool                  `json:"is_private"`
	Color       string                `json:"color"`

	Billable      optional.Value[bool]    `json:"billable,omitzero"`
	Template      optional.Value[bool]    `json:"template,omitzero"`
	AutoEstimates optional.Value[bool]    `json:"auto_estimates,omitzero"`
	Currency      optional.Value[string]  `json:"currency,omitzero"`
	Rate          optional.Value[float64] `json:"rate,omitzero"`
	FixedFee      optional.Value[float64] `json:"fixed_fee,omitzero"`

	ActualHours    optional.Value[int64] `json:"actual_hours,omitzero"`
	EstimatedHours optional.Value[int64] `json:"estimated_hours,omitzero"`

	StartDate      codec.Date                      `json:"start_date"`
	EndDate        optional.Value[codec.Date]      `json:"end_date,omitzero"`
	FirstTimeEntry optional.Value[codec.Timestamp] `json:"first_time_entry,omitzero"`

	Recurring           bool                                         `json:"recurring"`
	RecurringParameters optional.Value[[]RecurringProjectParameters] `json:"recurring_parameters,omitzero"`
	CurrentPeriod       optional.Value[RecurringPeriod]              `json:"current_period,omitzero"`

	At              codec.Timestamp                 `json:"at"`
	CreatedAt       codec.Timestamp                 `json:"created_at"`
	RateLastUpdated optional.Value[codec.Timestamp] `json:"rate_last_updated,omitzero"`
	ServerDeletedAt optional.Value[codec.Timestamp] `json:"server_deleted_at,omitzero"`

	// Legacy aliases.
	WID int64                 `json:"wid"`
	CID optional.Value[int64] `json:"cid,omitzero"`
}

// RecurringPeriod is the active period of a recurring project.
type RecurringPeriod struct {
	StartDate codec.Date                 `json:"start_date"`
	EndDate   optional.Value[codec.Date] `json:"end_date,omitzero"`
}

type RecurringProjectParameters struct {
	CustomPeriod       optional.Value[int64]      `json:"custom_period,omitzero"`
	EstimatedSeconds   codec.Seconds              `json:"estimated_seconds"`
	ParameterStartDate codec.Date                 `json:"parameter_start_date"`
	ParameterEndDate   optional.Value[codec.Date] `json:"parameter_end_date,omitzero"`
	Period             string                     `json:"period"`
	ProjectStartDate   codec.Date                 `json:"project_start_date"`
}
