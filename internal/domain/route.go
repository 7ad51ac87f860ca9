package domain

// UnmatchedStop is a provider stop that could not be mapped back to any
// candidate address.
type UnmatchedStop struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// RouteResult is the computed visiting order for one group.
// Stops begins with the synthesized start record.
type RouteResult struct {
	Stops                []AddressRecord `json:"stops"`
	TotalDistanceMeters  float64         `json:"totalDistance"`
	TotalDurationSeconds float64         `json:"totalDuration"`
	Unmatched            []UnmatchedStop `json:"unmatched,omitempty"`
	Unresolved           []string        `json:"unresolved,omitempty"`
}

// DayRouteResult is the per-day outcome in multi-day mode.
// A degraded day has Optimized=false, zero totals and Error set.
type DayRouteResult struct {
	VisitDay         string          `json:"visitDay"`
	Stops            []AddressRecord `json:"stops"`
	TotalDistanceKm  float64         `json:"totalDistanceKm"`
	TotalDurationMin float64         `json:"totalDurationMin"`
	TotalPlacements  int             `json:"totalPlacements"`
	Optimized        bool            `json:"optimized"`
	Error            string          `json:"error,omitempty"`
	Unmatched        []UnmatchedStop `json:"unmatched,omitempty"`
	Unresolved       []string        `json:"unresolved,omitempty"`
}
