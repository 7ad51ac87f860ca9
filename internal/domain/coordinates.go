package domain

import "math"

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Near reports whether both axes differ from other by less than tolerance degrees.
func (c Coordinates) Near(other Coordinates, tolerance float64) bool {
	return math.Abs(c.Lat-other.Lat) < tolerance && math.Abs(c.Lng-other.Lng) < tolerance
}
