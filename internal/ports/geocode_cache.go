package ports

import (
	"context"

	"github.com/divah21/spotter-backend/internal/domain"
)

// Persistent location -> coordinate cache sitting in front of the geocoder.
// A cache failure is never fatal to a planning request.
type GeocodeCache interface {
	// Get reports whether a coordinate is cached for the location.
	Get(ctx context.Context, location string) (domain.Coordinate, bool, error)
	// Put stores or replaces the coordinate for the location.
	Put(ctx context.Context, location string, coord domain.Coordinate) error
}
