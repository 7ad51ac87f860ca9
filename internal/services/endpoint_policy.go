package services

import (
	"route-planner-service/internal/domain"
	"strings"
)

// endpointTolerance is the proximity window in degrees on both axes.
const endpointTolerance = 0.0005

// EnforceFixedEndpoint returns stops with every occurrence of endpoint removed
// and exactly one endpoint record appended. An occurrence is a stop carrying
// the region key as branch id, a stop in the endpoint's city, or a stop within
// endpointTolerance of it. The route's start record is always kept.
func EnforceFixedEndpoint(stops []domain.AddressRecord, endpoint domain.RegionStartPoint) []domain.AddressRecord {
	out := make([]domain.AddressRecord, 0, len(stops)+1)
	for _, s := range stops {
		if isStartRecord(s) || !matchesEndpoint(s, endpoint) {
			out = append(out, s)
		}
	}
	return append(out, endpoint.EndpointRecord())
}

func isStartRecord(s domain.AddressRecord) bool {
	return s.BranchID == domain.BranchStart && s.Driver == domain.DriverSystem
}

func matchesEndpoint(s domain.AddressRecord, endpoint domain.RegionStartPoint) bool {
	if s.BranchID == endpoint.Key {
		return true
	}
	if city := strings.TrimSpace(s.City); city != "" && strings.EqualFold(city, endpoint.Name) {
		return true
	}
	c, ok := s.Coords()
	return ok && c.Near(endpoint.Coords(), endpointTolerance)
}
