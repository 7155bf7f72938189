package ports

import (
	"context"
	"errors"

	"github.com/divah21/spotter-backend/internal/domain"
)

// ErrTripNotFound is returned when a trip id has no stored record.
var ErrTripNotFound = errors.New("trip not found")

// Port: a boundary for persisting planned trips with their stops and duty logs.
type TripRepository interface {
	// CreateTrip stores the trip, its stops, and its logs atomically and
	// sets trip.ID.
	CreateTrip(ctx context.Context, trip *domain.Trip) error
	// GetTrip loads one trip with stops and logs, or ErrTripNotFound.
	GetTrip(ctx context.Context, id int64) (*domain.Trip, error)
	// ListTrips returns trip summaries, most recent first, without stops
	// or logs.
	ListTrips(ctx context.Context) ([]*domain.Trip, error)
}
