package services

import (
	"context"
	"route-planner-service/internal/config"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/logging"
	"route-planner-service/internal/platform/metrics"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/ports"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// GeocodeQueue resolves missing coordinates one address at a time.
//
// It owns the process-wide spacing state: every provider call, from any group
// or request, starts at least minInterval after the previous one finished.
// Records that already carry coordinates and cache hits never wait.
type GeocodeQueue struct {
	geocoder    ports.Geocoder
	cache       ports.GeocodeCache
	minInterval time.Duration
	logger      *zap.Logger

	mu   sync.Mutex
	last time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewGeocodeQueue returns a queue over geocoder. cache may be nil.
// minInterval is raised to config.MinGeocodeInterval if lower.
func NewGeocodeQueue(
	geocoder ports.Geocoder,
	cache ports.GeocodeCache,
	minInterval time.Duration,
	logger *zap.Logger,
) *GeocodeQueue {
	if minInterval < config.MinGeocodeInterval {
		minInterval = config.MinGeocodeInterval
	}
	return &GeocodeQueue{
		geocoder:    geocoder,
		cache:       cache,
		minInterval: minInterval,
		logger:      logging.OrNop(logger),
		now:         time.Now,
		sleep:       sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// normalizeAddress collapses whitespace so cache keys are stable.
func normalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ResolveAll returns new records carrying coordinates, in input order, plus the
// addresses that could not be resolved. Lookup failures never abort the batch.
func (q *GeocodeQueue) ResolveAll(
	ctx context.Context,
	records []domain.AddressRecord,
) (resolved []domain.AddressRecord, unresolved []string) {
	var err error
	defer obs.Time(ctx, q.logger, "geocode.ResolveAll")(&err)

	var pending []string
	seen := map[string]struct{}{}
	for _, r := range records {
		if r.HasCoords() {
			continue
		}
		addr := normalizeAddress(r.FullAddress)
		if addr == "" {
			continue
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		pending = append(pending, addr)
	}

	found := q.fromCache(ctx, pending)

	fresh := map[string]domain.Coordinates{}
	for _, addr := range pending {
		if _, ok := found[addr]; ok {
			continue
		}
		c, ok := q.lookup(ctx, addr)
		if !ok {
			continue
		}
		found[addr] = c
		fresh[addr] = c
	}

	if len(fresh) > 0 && q.cache != nil {
		if perr := q.cache.PutMany(ctx, fresh); perr != nil {
			q.logger.Warn("geocode cache write failed",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.Int("entries", len(fresh)),
				zap.Error(perr),
			)
		}
	}

	resolved = make([]domain.AddressRecord, 0, len(records))
	for _, r := range records {
		if c, ok := r.Coords(); ok && r.HasCoords() {
			resolved = append(resolved, r.WithCoords(c))
			continue
		}
		addr := normalizeAddress(r.FullAddress)
		if c, ok := found[addr]; ok {
			resolved = append(resolved, r.WithCoords(c))
			continue
		}
		unresolved = append(unresolved, r.FullAddress)
	}
	return resolved, unresolved
}

// fromCache returns cached coordinates for addrs. A failing cache counts as
// all misses.
func (q *GeocodeQueue) fromCache(ctx context.Context, addrs []string) map[string]domain.Coordinates {
	out := make(map[string]domain.Coordinates, len(addrs))
	if q.cache == nil || len(addrs) == 0 {
		return out
	}

	hits, err := q.cache.GetMany(ctx, addrs)
	if err != nil {
		q.logger.Warn("geocode cache read failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.Error(err),
		)
		metrics.GeocodeCache.WithLabelValues("miss").Add(float64(len(addrs)))
		return out
	}

	for _, a := range addrs {
		if c, ok := hits[a]; ok {
			out[a] = c
			metrics.GeocodeCache.WithLabelValues("hit").Inc()
		} else {
			metrics.GeocodeCache.WithLabelValues("miss").Inc()
		}
	}
	return out
}

// lookup performs one spaced provider call.
func (q *GeocodeQueue) lookup(ctx context.Context, addr string) (domain.Coordinates, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.last.IsZero() {
		if wait := q.minInterval - q.now().Sub(q.last); wait > 0 {
			if err := q.sleep(ctx, wait); err != nil {
				q.logger.Warn("geocode wait interrupted",
					zap.String("req_id", obs.RequestID(ctx)),
					zap.String("address", addr),
					zap.Error(err),
				)
				metrics.GeocodeLookups.WithLabelValues("error").Inc()
				return domain.Coordinates{}, false
			}
		}
	}

	c, ok, err := q.geocoder.Geocode(ctx, addr)
	q.last = q.now()

	switch {
	case err != nil:
		metrics.GeocodeLookups.WithLabelValues("error").Inc()
		q.logger.Warn("geocode lookup failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("address", addr),
			zap.Error(err),
		)
		return domain.Coordinates{}, false
	case !ok:
		metrics.GeocodeLookups.WithLabelValues("not_found").Inc()
		q.logger.Warn("address not found",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("address", addr),
		)
		return domain.Coordinates{}, false
	}

	metrics.GeocodeLookups.WithLabelValues("found").Inc()
	return c, true
}
