package cache

import (
	"context"
	"fmt"
	"route-planner-service/internal/domain"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryGeocodeCache keeps coordinates in process memory. Entries are lost on restart.
type MemoryGeocodeCache struct {
	store *gocache.Cache
}

// NewMemoryGeocodeCache returns a cache whose entries expire after ttl.
// A non-positive ttl keeps entries until the process exits.
func NewMemoryGeocodeCache(ttl time.Duration) *MemoryGeocodeCache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &MemoryGeocodeCache{store: gocache.New(ttl, 10*time.Minute)}
}

func (m *MemoryGeocodeCache) GetMany(_ context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	uniq := uniqueKeys(addresses)
	out := make(map[string]domain.Coordinates, len(uniq))
	for _, a := range uniq {
		if v, ok := m.store.Get(a); ok {
			if c, ok := v.(domain.Coordinates); ok {
				out[a] = c
			}
		}
	}
	return out, nil
}

func (m *MemoryGeocodeCache) PutMany(_ context.Context, results map[string]domain.Coordinates) error {
	for addr, c := range results {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}
		m.store.SetDefault(addr, c)
	}
	return nil
}

// Len reports the number of unexpired entries.
func (m *MemoryGeocodeCache) Len() int {
	return m.store.ItemCount()
}
