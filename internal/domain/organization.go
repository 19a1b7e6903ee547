package domain

import (
	"togglv9/internal/codec"
	"togglv9/internal/optional"
)

// Organization groups workspaces under one subscription.
type Organization struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Whether the requester is an admin or the owner of the organization.
	Admin bool `json:"admin"`
	Owner bool `json:"owner"`

	IsChargify              bool  `json:"is_chargify"`
	IsMultiWorkspaceEnabled bool  `json:"is_multi_workspace_enabled"`
	IsUnified               bool  `json:"is_unified"`
	MaxWorkspaces           int64 `json:"max_workspaces"`
	UserCount               int64 `json:"user_count"`
	PricingPlanID           int64 `json:"pricing_plan_id"`

	// Omitted by the API when there are none.
	PaymentMethods optional.Value[string] `json:"payment_methods,omitzero"`

	TrialInfo TrialInfo `json:"trial_info"`

	At              codec.Timestamp                 `json:"at"`
	CreatedAt       codec.Timestamp                 `json:"created_at"`
	SuspendedAt     optional.Value[codec.Timestamp] `json:"suspended_at,omitzero"`
	ServerDeletedAt optional.Value[codec.Timestamp] `json:"server_deleted_at,omitzero"`
}

type TrialInfo struct {
	Trial             bool                            `json:"trial"`
	TrialAvailable    bool                            `json:"trial_available"`
	TrialEndDate      optional.Value[codec.Timestamp] `json:"trial_end_date,omitzero"`
	NextPaymentDate   optional.Value[codec.Timestamp] `json:"next_payment_date,omitzero"`
	LastPricingPlanID optional.Value[int64]           `json:"last_pricing_plan_id,omitzero"`
}
