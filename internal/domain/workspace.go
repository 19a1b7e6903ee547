package domain

import (
	"encoding/json"

	"togglv9/internal/codec"
	"togglv9/internal/optional"
)

// Workspace is a Toggl workspace as visible to the current user.
type Workspace struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organization_id"`
	Name           string `json:"name"`
	Admin          bool   `json:"admin"`
	Premium        bool   `json:"premium"`
	BusinessWS     bool   `json:"business_ws"`
	Profile        int64  `json:"profile"`

	APIToken  string                    `json:"api_token"`
	LogoURL   string                    `json:"logo_url"`
	ICalURL   string                    `json:"ical_url"`
	ICalOn    bool                      `json:"ical_enabled"`
	CSVUpload optional.Value[CsvUpload] `json:"csv_upload,omitzero"`

	DefaultCurrency   string  `json:"default_currency"`
	DefaultHourlyRate float64 `json:"default_hourly_rate"`
	Rounding          int64   `json:"rounding"`
	RoundingMinutes   int64   `json:"rounding_minutes"`

	OnlyAdminsMayCreateProjects bool `json:"only_admins_may_create_projects"`
	OnlyAdminsMayCreateTags     bool `json:"only_admins_may_create_tags"`
	OnlyAdminsSeeBillableRates  bool `json:"only_admins_see_billable_rates"`
	OnlyAdminsSeeTeamDashboard  bool `json:"only_admins_see_team_dashboard"`
	ProjectsBillableByDefault   bool `json:"projects_billable_by_default"`

	Subscription  optional.Value[Subscription]  `json:"subscription,omitzero"`
	TeConstraints optional.Value[TeConstraints] `json:"te_constraints,omitzero"`

	At              codec.Timestamp                 `json:"at"`
	SuspendedAt     optional.Value[codec.Timestamp] `json:"suspended_at,omitzero"`
	ServerDeletedAt optional.Value[codec.Timestamp] `json:"server_deleted_at,omitzero"`
}

type CsvUpload struct {
	At    codec.Timestamp `json:"at"`
	LogID int64           `json:"log_id"`
}

// Subscription describes a workspace's paid plan. The API leaves the card,
// contact, payment and period objects undocumented, so they are kept raw.
type Subscription struct {
	SubscriptionID     int64           `json:"subscription_id"`
	WorkspaceID        int64           `json:"workspace_id"`
	OrganizationID     int64           `json:"organization_id"`
	CompanyID          int64           `json:"company_id"`
	CustomerID         int64           `json:"customer_id"`
	PricingPlanID      int64           `json:"pricing_plan_id"`
	LastPricingPlanID  int64           `json:"last_pricing_plan_id"`
	Currency           string          `json:"currency"`
	AutoRenew          bool            `json:"auto_renew"`
	CardDetails        json.RawMessage `json:"card_details,omitempty"`
	ContactDetail      json.RawMessage `json:"contact_detail,omitempty"`
	PaymentDetails     json.RawMessage `json:"payment_details,omitempty"`
	SubscriptionPeriod json.RawMessage `json:"subscription_period,omitempty"`

	CreatedAt codec.Timestamp                 `json:"created_at"`
	RenewalAt codec.Timestamp                 `json:"renewal_at"`
	DeletedAt optional.Value[codec.Timestamp] `json:"deleted_at,omitzero"`
}

// TeConstraints lists which time entry fields a workspace requires.
type TeConstraints struct {
	DescriptionPresent          bool `json:"description_present"`
	ProjectPresent              bool `json:"project_present"`
	TagPresent                  bool `json:"tag_present"`
	TaskPresent                 bool `json:"task_present"`
	TimeEntryConstraintsEnabled bool `json:"time_entry_constraints_enabled"`
}

// Feature is a plan feature toggle.
type Feature struct {
	FeatureID int64  `json:"feature_id"`
	Name      string `json:"name"`
	Enabled   bool   `json:"enabled"`
}

// WorkspaceFeatures groups the features enabled for one workspace.
type WorkspaceFeatures struct {
	WorkspaceID int64     `json:"workspace_id"`
	Features    []Feature `json:"features"`
}
