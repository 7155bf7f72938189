package services

import (
	"context"
	"fmt"
	"math"

	"github.com/divah21/spotter-backend/internal/domain"
	"github.com/divah21/spotter-backend/internal/ports"
)

// PlanTrip is the planning pipeline entry point: resolve the three trip
// locations, obtain route geometry and metrics (the router degrades to a
// great-circle estimate on its own), and run the HOS stop planner over the
// result.
//
// currentCycleUsed is accepted for the caller's record keeping; the
// single-trip schedule itself does not depend on it.
func PlanTrip(
	ctx context.Context,
	geocoder ports.Geocoder,
	router ports.Router,
	currentLocation string,
	pickupLocation string,
	dropoffLocation string,
	currentCycleUsed float64,
) (*domain.RouteResult, error) {
	currentC := geocoder.Resolve(ctx, currentLocation)
	pickupC := geocoder.Resolve(ctx, pickupLocation)
	dropoffC := geocoder.Resolve(ctx, dropoffLocation)

	route := router.Route(ctx, []domain.Coordinate{currentC, pickupC, dropoffC})

	// Distance to the pickup comes from the first routed leg when present,
	// otherwise from the great-circle estimate.
	distanceToPickup := domain.Haversine(currentC, pickupC)
	if len(route.LegMiles) > 0 && route.LegMiles[0] > 0 {
		distanceToPickup = route.LegMiles[0]
	}

	stops, err := PlanStops(route.DistanceMiles, distanceToPickup, route.DurationHours, currentC, pickupC, dropoffC)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	return &domain.RouteResult{
		Source:             route.Source,
		TotalDistanceMiles: int(math.Round(route.DistanceMiles)),
		TotalDrivingHours:  math.Round(route.DurationHours*10) / 10,
		EstimatedDays:      estimatedDays(route.DurationHours),
		Stops:              stops,
		Coordinates: domain.TripCoordinates{
			Current: currentC,
			Pickup:  pickupC,
			Dropoff: dropoffC,
		},
		Geometry: route.Geometry,
	}, nil
}

// estimatedDays is a conservative day estimate that doubles up for the
// mandatory rest between driving windows. The formula is kept as-is; its
// output is pinned by tests.
func estimatedDays(durationHours float64) int {
	return int(math.Ceil(durationHours/11)) + int(math.Floor(durationHours/11))
}
