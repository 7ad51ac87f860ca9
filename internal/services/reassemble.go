package services

import (
	"context"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/logging"
	"route-planner-service/internal/platform/metrics"
	"route-planner-service/internal/platform/obs"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// matchTolerance is the proximity fallback window in degrees on both axes.
const matchTolerance = 0.001

type sequencedStop struct {
	key  string
	seq  int
	ok   bool
	stop domain.TourStop
}

// sortStops orders provider entries by numeric key. Non-numeric keys sort
// last, lexicographically.
func sortStops(route map[string]domain.TourStop) []sequencedStop {
	out := make([]sequencedStop, 0, len(route))
	for k, s := range route {
		n, err := strconv.Atoi(k)
		out = append(out, sequencedStop{key: k, seq: n, ok: err == nil, stop: s})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ok != b.ok {
			return a.ok
		}
		if a.ok {
			return a.seq < b.seq
		}
		return a.key < b.key
	})
	return out
}

// Reassemble maps a provider result back onto candidates in visiting order.
//
// Stops are matched by the encoded identifier first and by coordinate
// proximity second. Stops that match nothing are reported in Unmatched.
// Totals are the last cumulative distance (km) and arrival (min) the provider
// reported, converted to meters and seconds.
func Reassemble(
	ctx context.Context,
	result *domain.TourResult,
	start domain.RegionStartPoint,
	candidates []domain.AddressRecord,
	logger *zap.Logger,
) domain.RouteResult {
	logger = logging.OrNop(logger)
	out := domain.RouteResult{Stops: []domain.AddressRecord{}}
	if result == nil {
		return out
	}

	used := make([]bool, len(candidates))
	var distanceKm, arrivalMin float64

	for _, e := range sortStops(result.Route) {
		s := e.stop

		if s.Name == domain.StartLocationName {
			out.Stops = append(out.Stops, start.StartRecord())
		} else if i := matchCandidate(s, candidates, used); i >= 0 {
			used[i] = true
			out.Stops = append(out.Stops, copyRecord(candidates[i]))
		} else {
			metrics.UnmatchedStops.Inc()
			logger.Warn("provider stop not matched to any address",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.String("key", e.key),
				zap.String("name", s.Name),
				zap.Float64("lat", s.Lat),
				zap.Float64("lng", s.Lng),
			)
			out.Unmatched = append(out.Unmatched, domain.UnmatchedStop{Name: s.Name, Lat: s.Lat, Lng: s.Lng})
		}

		if s.Distance != 0 {
			distanceKm = s.Distance
		}
		if s.Arrival != 0 {
			arrivalMin = s.Arrival
		}
	}

	out.TotalDistanceMeters = distanceKm * 1000
	out.TotalDurationSeconds = arrivalMin * 60
	return out
}

// matchCandidate returns the index of the candidate for s, or -1.
func matchCandidate(s domain.TourStop, candidates []domain.AddressRecord, used []bool) int {
	if ordinal, id, ok := domain.DecodeStopName(s.Name); ok {
		if i := ordinal - 1; i >= 0 && i < len(candidates) && !used[i] && candidates[i].BranchID == id {
			return i
		}
		for i, c := range candidates {
			if !used[i] && c.BranchID == id {
				return i
			}
		}
	}

	reported := domain.Coordinates{Lat: s.Lat, Lng: s.Lng}
	if i := nearest(reported, candidates, used, true); i >= 0 {
		return i
	}
	return nearest(reported, candidates, used, false)
}

func nearest(p domain.Coordinates, candidates []domain.AddressRecord, used []bool, unusedOnly bool) int {
	for i, c := range candidates {
		if unusedOnly && used[i] {
			continue
		}
		if cc, ok := c.Coords(); ok && cc.Near(p, matchTolerance) {
			return i
		}
	}
	return -1
}
