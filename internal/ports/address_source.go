package ports

import (
	"io"
	"route-planner-service/internal/domain"
)

// Port: turns an uploaded tabular file into address records and driver names.
type AddressSource interface {
	Parse(r io.Reader) (*domain.Ingestion, error)
}
