package services

import (
	"fmt"
	"math"

	"github.com/divah21/spotter-backend/internal/domain"
)

// Constant planning speed for the HOS simulation, in miles per hour.
const avgSpeedMPH = 50.0

// Upper bound on how far a single shift segment may advance.
const maxShiftMiles = 550.0

// Interval between fuel stops, in miles.
const fuelIntervalMiles = 1000.0

// PlanStops simulates HOS-constrained driving over the whole route and
// returns the ordered stop schedule: a 30-minute break when eight working
// hours come around, a fuel stop at every 1000-mile crossing, the pickup
// when its boundary is crossed, a 10-hour overnight rest when the 11-hour
// driving cap or the 14-hour duty window runs out, and a final dropoff at
// the total distance.
//
// The simulation advances in miles at a constant 50 mph. Each iteration
// drives the lesser of the remaining shift allowance, the remaining
// distance, and the 550-mile shift ceiling. totalDurationHours is only
// used to stamp the dropoff clock label.
func PlanStops(
	totalDistance float64,
	distanceToPickup float64,
	totalDurationHours float64,
	current domain.Coordinate,
	pickup domain.Coordinate,
	dropoff domain.Coordinate,
) ([]domain.Stop, error) {
	stops := make([]domain.Stop, 0, 8)

	// Stop labels are measured from the origin until the pickup boundary,
	// then from the pickup.
	locationAt := func(miles float64) string {
		if miles <= distanceToPickup {
			return fmt.Sprintf("%d mi from %s", int(miles), current.Name)
		}
		return fmt.Sprintf("%d mi from %s", int(miles-distanceToPickup), pickup.Name)
	}

	var milesCovered, hoursWorked float64

	for milesCovered < totalDistance {
		// The tighter of the driving-hours cap and the duty-window cap.
		remainingShift := math.Min(11-math.Mod(hoursWorked, 11), 14-math.Mod(hoursWorked, 14))

		if hoursWorked > 0 && math.Mod(hoursWorked, 8) < 0.5 {
			stops = append(stops, domain.Stop{
				Type:           domain.StopBreak,
				Name:           "Rest Area (30-min break)",
				Location:       locationAt(milesCovered),
				DurationHours:  0.5,
				MilesFromStart: int(milesCovered),
				ClockLabel:     formatClock(hoursWorked),
			})
		}

		driveMiles := math.Min(math.Min(remainingShift*avgSpeedMPH, totalDistance-milesCovered), maxShiftMiles)
		if driveMiles <= 0 {
			return nil, fmt.Errorf(
				"plan stops: no forward progress at mile %.1f after %.1f worked hours",
				milesCovered, hoursWorked,
			)
		}

		prevMiles := milesCovered
		milesCovered += driveMiles
		hoursWorked += driveMiles / avgSpeedMPH

		if math.Floor(milesCovered/fuelIntervalMiles) > math.Floor(prevMiles/fuelIntervalMiles) {
			stops = append(stops, domain.Stop{
				Type:           domain.StopFuel,
				Name:           "Fuel Stop",
				Location:       locationAt(milesCovered),
				DurationHours:  0.5,
				MilesFromStart: int(milesCovered),
				ClockLabel:     formatClock(hoursWorked),
			})
			hoursWorked += 0.5
		}

		if milesCovered >= distanceToPickup && prevMiles < distanceToPickup {
			stops = append(stops, domain.Stop{
				Type:           domain.StopPickup,
				Name:           pickup.Name,
				Location:       pickup.Name,
				DurationHours:  1,
				MilesFromStart: int(distanceToPickup),
				ClockLabel:     formatClock(hoursWorked),
			})
			hoursWorked++
		}

		if hoursWorked >= 11 || math.Mod(hoursWorked, 14) >= 13.5 {
			if milesCovered < totalDistance {
				stops = append(stops, domain.Stop{
					Type:           domain.StopRest,
					Name:           "Overnight Rest (10 hours)",
					Location:       locationAt(milesCovered),
					DurationHours:  10,
					MilesFromStart: int(milesCovered),
					ClockLabel:     formatClock(hoursWorked),
				})
				hoursWorked = 0
			}
		}
	}

	stops = append(stops, domain.Stop{
		Type:           domain.StopDropoff,
		Name:           dropoff.Name,
		Location:       dropoff.Name,
		DurationHours:  1,
		MilesFromStart: int(totalDistance),
		ClockLabel:     formatClock(totalDurationHours),
	})

	return stops, nil
}

// formatClock renders elapsed hours as an HH:MM label.
func formatClock(hours float64) string {
	h := int(math.Floor(hours))
	m := int(math.Round((hours - float64(h)) * 60))
	return fmt.Sprintf("%02d:%02d", h, m)
}
