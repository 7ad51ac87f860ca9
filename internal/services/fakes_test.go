package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"route-planner-service/internal/domain"
	"strings"
	"sync"
	"time"
)

type fakeGeocoder struct {
	mu      sync.Mutex
	coords  map[string]domain.Coordinates
	failing map[string]bool
	calls   []string
	at      []time.Time
	now     func() time.Time
}

func newFakeGeocoder(coords map[string]domain.Coordinates) *fakeGeocoder {
	return &fakeGeocoder{coords: coords, failing: map[string]bool{}, now: time.Now}
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (domain.Coordinates, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, address)
	g.at = append(g.at, g.now())
	if g.failing[address] {
		return domain.Coordinates{}, false, errors.New("connection refused")
	}
	c, ok := g.coords[address]
	return c, ok, nil
}

type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(_ context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
	return nil
}

type fakeCache struct {
	entries map[string]domain.Coordinates
	getErr  error
	putErr  error
	puts    int
}

func (c *fakeCache) GetMany(_ context.Context, addrs []string) (map[string]domain.Coordinates, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	out := map[string]domain.Coordinates{}
	for _, a := range addrs {
		if v, ok := c.entries[a]; ok {
			out[a] = v
		}
	}
	return out, nil
}

func (c *fakeCache) PutMany(_ context.Context, results map[string]domain.Coordinates) error {
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	for k, v := range results {
		c.entries[k] = v
	}
	return nil
}

// fakeOptimizer reverses the stop order, rounds coordinates to four decimals
// and reports 1.5 km and 3 minutes per leg.
type fakeOptimizer struct {
	creds     bool
	submitted [][]domain.TourLocation
	// fail returns a non-nil error to reject a submission.
	fail func(locations []domain.TourLocation) error
}

func (o *fakeOptimizer) HasCredentials() bool { return o.creds }

func (o *fakeOptimizer) Submit(_ context.Context, locations []domain.TourLocation) (*domain.TourResult, error) {
	o.submitted = append(o.submitted, locations)
	if o.fail != nil {
		if err := o.fail(locations); err != nil {
			return nil, err
		}
	}

	order := []domain.TourLocation{locations[0]}
	for i := len(locations) - 1; i >= 1; i-- {
		order = append(order, locations[i])
	}

	route := make(map[string]domain.TourStop, len(order))
	for i, l := range order {
		route[fmt.Sprint(i)] = domain.TourStop{
			Name:     l.Name,
			Lat:      math.Round(l.Lat*1e4) / 1e4,
			Lng:      math.Round(l.Lng*1e4) / 1e4,
			Distance: 1.5 * float64(i),
			Arrival:  3 * float64(i),
		}
	}
	return &domain.TourResult{ID: "fake", Count: len(order), Route: route}, nil
}

func failWhenNamed(fragment string, err error) func([]domain.TourLocation) error {
	return func(locations []domain.TourLocation) error {
		for _, l := range locations {
			if strings.Contains(l.Name, fragment) {
				return err
			}
		}
		return nil
	}
}

func rec(branch, address, driver string, placements int) domain.AddressRecord {
	return domain.AddressRecord{
		BranchID:       branch,
		FullAddress:    address,
		Driver:         driver,
		PlacementCount: placements,
	}
}

func recAt(branch, address, driver string, lat, lng float64) domain.AddressRecord {
	return rec(branch, address, driver, 0).WithCoords(domain.Coordinates{Lat: lat, Lng: lng})
}
