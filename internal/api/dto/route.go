package dto

import "route-planner-service/internal/domain"

type OptimizeRequest struct {
	StartRegion string                 `json:"startRegion"`
	Addresses   []domain.AddressRecord `json:"addresses"`
	Driver      string                 `json:"driver,omitempty"`
	EndRegion   string                 `json:"endRegion,omitempty"`
}

// RouteResponse is returned for single-route plans.
type RouteResponse struct {
	Mode                 string                 `json:"mode"`
	Stops                []domain.AddressRecord `json:"stops"`
	TotalDistanceMeters  float64                `json:"totalDistance"`
	TotalDurationSeconds float64                `json:"totalDuration"`
	Unmatched            []domain.UnmatchedStop `json:"unmatched,omitempty"`
	Unresolved           []string               `json:"unresolved,omitempty"`
}

// MultiDayResponse is returned when the addresses carry visit days.
type MultiDayResponse struct {
	Mode string                  `json:"mode"`
	Days []domain.DayRouteResult `json:"days"`
}

type UploadResponse struct {
	Addresses []domain.AddressRecord `json:"addresses"`
	Drivers   []string               `json:"drivers"`
	HasDays   bool                   `json:"hasDays"`
}

type RegionsResponse struct {
	Regions []domain.RegionStartPoint `json:"regions"`
}

type CredentialsResponse struct {
	UsernameSet bool   `json:"usernameSet"`
	PasswordSet bool   `json:"passwordSet"`
	Note        string `json:"note"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
