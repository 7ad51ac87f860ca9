package services

import (
	"route-planner-service/internal/domain"
	"strings"
)

// SingleGroupKey names the only group produced when grouping is not by day.
const SingleGroupKey = "ALL"

// Group is a set of stops optimized together.
type Group struct {
	Key     string
	Records []domain.AddressRecord
}

// PlacementTotal sums the placement counts of the group's records.
func (g Group) PlacementTotal() int {
	n := 0
	for _, r := range g.Records {
		n += r.PlacementCount
	}
	return n
}

type dedupeKey struct {
	fullAddress string
	driver      string
	visitDay    string
}

// HasVisitDays reports whether any record carries a visit day.
func HasVisitDays(addresses []domain.AddressRecord) bool {
	for _, a := range addresses {
		if strings.TrimSpace(a.VisitDay) != "" {
			return true
		}
	}
	return false
}

// Dedupe merges records sharing (fullAddress, driver), plus visitDay when byDay
// is set, summing placement counts. The first occurrence supplies every other
// field and keeps its position. Input records are not modified.
func Dedupe(addresses []domain.AddressRecord, byDay bool) []domain.AddressRecord {
	index := make(map[dedupeKey]int, len(addresses))
	out := make([]domain.AddressRecord, 0, len(addresses))

	for _, a := range addresses {
		k := dedupeKey{fullAddress: a.FullAddress, driver: a.Driver}
		if byDay {
			k.visitDay = a.VisitDay
		}
		if i, ok := index[k]; ok {
			out[i].PlacementCount += a.PlacementCount
			continue
		}
		index[k] = len(out)
		out = append(out, copyRecord(a))
	}
	return out
}

// GroupAddresses partitions addresses for optimization. Without byDay the
// result is one SingleGroupKey group. With byDay there is one group per visit
// day in first-seen order; records without a day go to domain.UnknownDay.
func GroupAddresses(addresses []domain.AddressRecord, byDay bool) []Group {
	if !byDay {
		return []Group{{Key: SingleGroupKey, Records: Dedupe(addresses, false)}}
	}

	var order []string
	parts := map[string][]domain.AddressRecord{}
	for _, a := range addresses {
		day := strings.TrimSpace(a.VisitDay)
		if day == "" {
			day = domain.UnknownDay
		}
		if _, ok := parts[day]; !ok {
			order = append(order, day)
		}
		parts[day] = append(parts[day], a)
	}

	groups := make([]Group, 0, len(order))
	for _, day := range order {
		groups = append(groups, Group{Key: day, Records: Dedupe(parts[day], true)})
	}
	return groups
}

// copyRecord detaches the coordinate pointers so later stages cannot write
// through to the caller's record.
func copyRecord(a domain.AddressRecord) domain.AddressRecord {
	if c, ok := a.Coords(); ok {
		return a.WithCoords(c)
	}
	return a
}
