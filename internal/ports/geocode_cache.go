package ports

import (
	"context"
	"route-planner-service/internal/domain"
)

// Port: a persistent or in-process store of previously resolved addresses.
type GeocodeCache interface {
	// Return cached coordinates for the given addresses; misses are absent from the map.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	// Store address -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
