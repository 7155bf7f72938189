package ports

import (
	"context"

	"github.com/divah21/spotter-backend/internal/domain"
)

// Contract for resolving a free-text location to coordinates.
type Geocoder interface {
	// Resolve never fails: when the upstream service is unavailable or
	// returns nothing usable, implementations fall back to a static
	// lookup so a usable Coordinate is always returned.
	Resolve(ctx context.Context, location string) domain.Coordinate
}
