package ports

import (
	"context"
	"route-planner-service/internal/domain"
)

// Contract for resolving a free-text address to coordinates.
//
// Geocode returns found=false (and no error) when the provider has no match.
// Implementations perform exactly one outbound lookup per call and do no
// throttling of their own; callers own the spacing between calls.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (coords domain.Coordinates, found bool, err error)
}
