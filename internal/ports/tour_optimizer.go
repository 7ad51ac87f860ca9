package ports

import (
	"context"
	"route-planner-service/internal/domain"
)

// Contract for submitting a location list to an external tour optimizer.
type TourOptimizer interface {
	// Submit returns the provider's raw result. The first location is the origin.
	Submit(ctx context.Context, locations []domain.TourLocation) (*domain.TourResult, error)
}

// Optional extension of TourOptimizer that can report missing credentials
// before any work is done.
type CredentialChecker interface {
	TourOptimizer
	HasCredentials() bool
}
