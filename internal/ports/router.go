package ports

import (
	"context"

	"github.com/divah21/spotter-backend/internal/domain"
)

// Contract for turning an ordered waypoint list into path geometry and
// distance/duration metrics.
type Router interface {
	// Route never fails: on any upstream error implementations return a
	// great-circle approximation tagged RouteSourceApproximated.
	Route(ctx context.Context, coords []domain.Coordinate) domain.RouteData
}
