package domain

import (
	"sort"
	"strings"
)

// RegionStartPoint is a fixed depot used as route origin and, when the endpoint
// policy is active, as mandatory final stop.
type RegionStartPoint struct {
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

func (r RegionStartPoint) Coords() Coordinates {
	return Coordinates{Lat: r.Lat, Lng: r.Lng}
}

var regions = map[string]RegionStartPoint{
	"ARNHEM": {
		Key:     "ARNHEM",
		Name:    "Arnhem",
		Address: "Vlamoven 7, Arnhem",
		Lat:     51.9866,
		Lng:     5.9525,
	},
	"UTRECHT": {
		Key:     "UTRECHT",
		Name:    "Utrecht",
		Address: "Franciscusdreef 68, Utrecht",
		Lat:     52.1260,
		Lng:     5.1054,
	},
}

// LookupRegion finds a configured region by key, case-insensitively.
func LookupRegion(key string) (RegionStartPoint, bool) {
	r, ok := regions[strings.ToUpper(strings.TrimSpace(key))]
	return r, ok
}

// Regions returns all configured regions ordered by key.
func Regions() []RegionStartPoint {
	out := make([]RegionStartPoint, 0, len(regions))
	for _, r := range regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// StartRecord synthesizes the sentinel record placed first in every route.
func (r RegionStartPoint) StartRecord() AddressRecord {
	rec := AddressRecord{
		BranchID:    BranchStart,
		Chain:       ChainStart,
		Street:      r.Address,
		City:        r.Name,
		FullAddress: r.Address,
		Driver:      DriverSystem,
	}
	return rec.WithCoords(r.Coords())
}

// EndpointRecord synthesizes the sentinel record forced to the end of a route.
// Its identifiers are the region key.
func (r RegionStartPoint) EndpointRecord() AddressRecord {
	rec := AddressRecord{
		BranchID:    r.Key,
		Chain:       r.Key,
		Street:      r.Address,
		City:        r.Name,
		FullAddress: r.Address,
		Driver:      DriverSystem,
	}
	return rec.WithCoords(r.Coords())
}
