package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// StartLocationName is the name given to the injected origin in every tour request.
const StartLocationName = "Start"

// StopNameEncodingVersion identifies the "Stop <n> - <id>" naming scheme used to
// carry identity through providers that only echo back a free-text name.
const StopNameEncodingVersion = 1

var stopNamePattern = regexp.MustCompile(`^Stop (\d+) - (.+)$`)

// Restrictions is a provider time window, in minutes from departure.
type Restrictions struct {
	Ready int `json:"ready"`
	Due   int `json:"due"`
}

// AlwaysOpen is the fixed window applied to every location.
var AlwaysOpen = Restrictions{Ready: 0, Due: 999}

// TourLocation is one entry of a tour optimization request.
type TourLocation struct {
	Name         string       `json:"name"`
	Lat          float64      `json:"lat"`
	Lng          float64      `json:"lng"`
	Restrictions Restrictions `json:"restrictions"`
}

// TourStop is one provider-reported stop. Distance (km) and Arrival (min) are
// cumulative at this stop.
type TourStop struct {
	Name     string
	Lat      float64
	Lng      float64
	Distance float64
	Arrival  float64
}

// TourResult maps stringified sequence indices to stops. Map iteration order
// carries no meaning; callers sort keys numerically.
type TourResult struct {
	ID    string
	Count int
	Route map[string]TourStop
}

// EncodeStopName renders the version 1 stop name for a 1-based ordinal.
func EncodeStopName(ordinal int, branchID string) string {
	return fmt.Sprintf("Stop %d - %s", ordinal, branchID)
}

// DecodeStopName parses a version 1 stop name. ok is false for any other shape,
// including an empty identifier.
func DecodeStopName(name string) (ordinal int, branchID string, ok bool) {
	m := stopNamePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return n, m[2], true
}
