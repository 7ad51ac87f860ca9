package services

import (
	"context"
	"errors"
	"fmt"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/logging"
	"route-planner-service/internal/platform/metrics"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/ports"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	ModeSingle   = "single"
	ModeMultiDay = "multi_day"
)

type PlannerOptions struct {
	// DefaultRegion is used when a request names no start region.
	DefaultRegion string
	// EndpointRegion, when set, forces that region's depot to be the last stop.
	EndpointRegion string
	// EndpointInMultiDay applies EndpointRegion to day groups as well.
	EndpointInMultiDay bool
}

type PlanRequest struct {
	RegionKey string
	Addresses []domain.AddressRecord
	// Driver restricts the plan to one driver when set.
	Driver string
	// EndRegionKey overrides PlannerOptions.EndpointRegion for this request, in
	// both modes.
	EndRegionKey string
}

type PlanResult struct {
	Mode  string                  `json:"mode"`
	Route *domain.RouteResult     `json:"route,omitempty"`
	Days  []domain.DayRouteResult `json:"days,omitempty"`
}

// Planner runs the grouping, geocoding, optimization and reassembly pipeline.
// Groups are processed one after another.
type Planner struct {
	queue     *GeocodeQueue
	optimizer ports.TourOptimizer
	opts      PlannerOptions
	logger    *zap.Logger
}

func NewPlanner(
	queue *GeocodeQueue,
	optimizer ports.TourOptimizer,
	opts PlannerOptions,
	logger *zap.Logger,
) *Planner {
	return &Planner{
		queue:     queue,
		optimizer: optimizer,
		opts:      opts,
		logger:    logging.OrNop(logger),
	}
}

// Plan computes a single route, or one route per visit day when any address
// carries a visit day.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (_ *PlanResult, err error) {
	defer obs.Time(ctx, p.logger, "planner.Plan")(&err)

	regionKey := req.RegionKey
	if strings.TrimSpace(regionKey) == "" {
		regionKey = p.opts.DefaultRegion
	}
	start, ok := domain.LookupRegion(regionKey)
	if !ok {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("Onbekende regio: %s", regionKey),
			fmt.Errorf("plan: unknown start region %q", regionKey),
		)
	}

	addresses := filterDriver(req.Addresses, req.Driver)
	multiDay := HasVisitDays(addresses)

	endpoint, err := p.endpointFor(req.EndRegionKey, multiDay)
	if err != nil {
		return nil, err
	}

	if len(addresses) > 0 {
		if cc, ok := p.optimizer.(ports.CredentialChecker); ok && !cc.HasCredentials() {
			return nil, domain.NewMissingCredentialsError()
		}
	}

	if !multiDay {
		group := GroupAddresses(addresses, false)[0]
		route, err := p.planGroup(ctx, start, endpoint, group.Records)
		if err != nil {
			return nil, fmt.Errorf("plan: %w", err)
		}
		return &PlanResult{Mode: ModeSingle, Route: &route}, nil
	}

	days, err := p.planAllDays(context.WithoutCancel(ctx), start, endpoint, GroupAddresses(addresses, true))
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	return &PlanResult{Mode: ModeMultiDay, Days: days}, nil
}

// endpointFor resolves the endpoint region for this request. nil means the
// endpoint policy is off.
func (p *Planner) endpointFor(override string, multiDay bool) (*domain.RegionStartPoint, error) {
	key := strings.TrimSpace(override)
	if key == "" {
		if multiDay && !p.opts.EndpointInMultiDay {
			return nil, nil
		}
		key = strings.TrimSpace(p.opts.EndpointRegion)
	}
	if key == "" {
		return nil, nil
	}
	r, ok := domain.LookupRegion(key)
	if !ok {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("Onbekende regio: %s", key),
			fmt.Errorf("plan: unknown end region %q", key),
		)
	}
	return &r, nil
}

// planAllDays plans every day group. A provider failure for one day degrades
// that day to its unoptimized input; only missing credentials abort.
func (p *Planner) planAllDays(
	ctx context.Context,
	start domain.RegionStartPoint,
	endpoint *domain.RegionStartPoint,
	groups []Group,
) ([]domain.DayRouteResult, error) {
	days := make([]domain.DayRouteResult, 0, len(groups))

	for _, g := range groups {
		day := domain.DayRouteResult{
			VisitDay:        g.Key,
			TotalPlacements: g.PlacementTotal(),
		}

		route, err := p.planGroup(ctx, start, endpoint, g.Records)
		if err != nil {
			if errors.Is(err, domain.ErrMissingCredentials) {
				return nil, err
			}
			metrics.DegradedDayPlans.Inc()
			p.logger.Warn("day plan degraded to unoptimized stops",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.String("visit_day", g.Key),
				zap.Int("stops", len(g.Records)),
				zap.Error(err),
			)
			day.Stops = g.Records
			day.Error = domain.UserMessage(err)
			days = append(days, day)
			continue
		}

		day.Stops = route.Stops
		day.TotalDistanceKm = route.TotalDistanceMeters / 1000
		day.TotalDurationMin = route.TotalDurationSeconds / 60
		day.Optimized = true
		day.Unmatched = route.Unmatched
		day.Unresolved = route.Unresolved
		days = append(days, day)
	}

	sort.SliceStable(days, func(i, j int) bool {
		return domain.DayRank(days[i].VisitDay) < domain.DayRank(days[j].VisitDay)
	})
	return days, nil
}

// planGroup geocodes, optimizes and reassembles one group. A group without
// resolvable addresses yields a start-only route and never reaches the
// optimizer.
func (p *Planner) planGroup(
	ctx context.Context,
	start domain.RegionStartPoint,
	endpoint *domain.RegionStartPoint,
	records []domain.AddressRecord,
) (domain.RouteResult, error) {
	resolved, unresolved := p.queue.ResolveAll(ctx, records)

	if len(resolved) == 0 {
		return domain.RouteResult{
			Stops:      []domain.AddressRecord{start.StartRecord()},
			Unresolved: unresolved,
		}, nil
	}

	locations, err := BuildTourRequest(start, resolved)
	if err != nil {
		return domain.RouteResult{}, err
	}

	result, err := p.optimizer.Submit(ctx, locations)
	if err != nil {
		return domain.RouteResult{}, err
	}

	route := Reassemble(ctx, result, start, resolved, p.logger)
	if endpoint != nil {
		route.Stops = EnforceFixedEndpoint(route.Stops, *endpoint)
	}
	route.Unresolved = unresolved
	return route, nil
}

func filterDriver(addresses []domain.AddressRecord, driver string) []domain.AddressRecord {
	driver = strings.TrimSpace(driver)
	if driver == "" {
		return addresses
	}
	out := make([]domain.AddressRecord, 0, len(addresses))
	for _, a := range addresses {
		if strings.EqualFold(strings.TrimSpace(a.Driver), driver) {
			out = append(out, a)
		}
	}
	return out
}
