package domain

import "togglv9/internal/optional"

// Location is the geo lookup of the caller's address.
type Location struct {
	City        optional.Value[string] `json:"city,omitzero"`
	CityLatLong optional.Value[string] `json:"city_lat_long,omitzero"`
	CountryCode optional.Value[string] `json:"country_code,omitzero"`
	CountryName optional.Value[string] `json:"country_name,omitzero"`
	State       optional.Value[string] `json:"state,omitzero"`
}
