package services

import (
	"fmt"
	"math"
	"time"

	"github.com/divah21/spotter-backend/internal/domain"
)

// logBook is the mutable state of one duty-log simulation: a virtual
// 24-hour clock, the current day's accumulators, and the closed days.
// All segment insertion goes through addSegment so the clamp-to-24 rule
// is applied uniformly.
type logBook struct {
	startDate   time.Time
	currentHour float64
	dayNumber   int

	segments []domain.DutySegment
	hours    domain.DailyHours
	dayMiles float64
	remarks  []string

	days []domain.DailyLog
}

// addSegment appends one duty-status segment at the current clock position.
// A segment that would run past hour 24 is truncated to fit, and the day is
// considered full from then on.
func (b *logBook) addSegment(status domain.DutyStatus, duration float64, location string) {
	if b.currentHour+duration > 24 {
		actual := 24 - b.currentHour
		if actual > 0 {
			b.segments = append(b.segments, domain.DutySegment{
				Status:        status,
				StartHour:     b.currentHour,
				DurationHours: actual,
				Location:      location,
			})
			b.tally(status, actual)
		}
		b.currentHour = 24
		return
	}

	b.segments = append(b.segments, domain.DutySegment{
		Status:        status,
		StartHour:     b.currentHour,
		DurationHours: duration,
		Location:      location,
	})
	b.tally(status, duration)
	b.currentHour += duration
}

func (b *logBook) tally(status domain.DutyStatus, duration float64) {
	switch status {
	case domain.StatusOffDuty:
		b.hours.OffDuty += duration
	case domain.StatusSleeper:
		b.hours.SleeperBerth += duration
	case domain.StatusDriving:
		b.hours.Driving += duration
	default:
		b.hours.OnDuty += duration
	}
}

// drive inserts a driving segment and returns the miles it covers.
// Mileage is counted in full even when the recorded segment was truncated
// at the day boundary.
func (b *logBook) drive(duration float64, location string) float64 {
	if duration <= 0 {
		return 0
	}
	b.addSegment(domain.StatusDriving, duration, location)
	miles := duration * avgSpeedMPH
	b.dayMiles += miles
	return miles
}

func (b *logBook) remark(text string) {
	b.remarks = append(b.remarks, text)
}

// closeDay snapshots the current day into the output sequence and resets
// the per-day state. Remarks accumulate over the whole trip; each closed
// day records the list to date.
func (b *logBook) closeDay() {
	segments := make([]domain.DutySegment, len(b.segments))
	copy(segments, b.segments)
	remarks := make([]string, len(b.remarks))
	copy(remarks, b.remarks)

	b.days = append(b.days, domain.DailyLog{
		Date:       b.startDate.AddDate(0, 0, b.dayNumber-1),
		DayNumber:  b.dayNumber,
		Hours:      b.hours,
		Segments:   segments,
		Remarks:    remarks,
		TotalMiles: int(math.Round(b.dayMiles)),
	})

	b.dayNumber++
	b.segments = nil
	b.hours = domain.DailyHours{}
	b.dayMiles = 0
	b.currentHour = 0
}

// Simulation iterations are bounded; each one consumes a stop, closes a
// day, or drives down the remaining distance, so hitting the cap means an
// internal logic fault rather than a long trip.
const maxLogIterations = 100000

// GenerateLogs replays the planned stop sequence against a fresh HOS clock
// and returns one duty-status log per simulated calendar day. The first day
// opens at hour 8 with the pre-trip sleeper period; every later day starts
// at hour 0. Dates are assigned from startDate forward.
func GenerateLogs(route *domain.RouteResult, startDate time.Time) ([]domain.DailyLog, error) {
	book := &logBook{
		startDate:   startDate,
		currentHour: 8,
		dayNumber:   1,
	}

	remainingDistance := float64(route.TotalDistanceMiles)

	book.addSegment(domain.StatusSleeper, 8, "Home terminal")
	book.remark("Started trip after 10-hour rest")
	book.addSegment(domain.StatusOnDuty, 0.5, "Pre-trip inspection")

	stops := route.Stops
	stopIndex := 0

	for iter := 0; remainingDistance > 0 || stopIndex < len(stops); iter++ {
		if iter >= maxLogIterations {
			return nil, fmt.Errorf("generate logs: simulation did not terminate after %d steps", maxLogIterations)
		}

		// Daily HOS caps force the day closed regardless of pending stops.
		if book.hours.Driving >= 11 || book.hours.Driving+book.hours.OnDuty >= 14 {
			book.addSegment(domain.StatusOnDuty, 0.5, "Post-trip inspection")
			if book.currentHour < 24 {
				book.addSegment(domain.StatusSleeper, 24-book.currentHour, "Rest area")
			}
			book.closeDay()
			book.addSegment(domain.StatusSleeper, 10, "Rest area")
			book.addSegment(domain.StatusOnDuty, 0.5, "Pre-trip inspection")
			continue
		}

		if stopIndex < len(stops) {
			stop := stops[stopIndex]
			stopIndex++

			switch stop.Type {
			case domain.StopPickup, domain.StopDropoff:
				driveTime := math.Min(
					remainingDistance/avgSpeedMPH,
					math.Min(11-book.hours.Driving, 14-(book.hours.Driving+book.hours.OnDuty)),
				)
				remainingDistance -= book.drive(driveTime, "En route to "+stop.Location)
				if stop.Type == domain.StopPickup {
					book.addSegment(domain.StatusOnDuty, 1, "Pickup at "+stop.Location)
					book.remark("Pickup: " + stop.Location)
				} else {
					book.addSegment(domain.StatusOnDuty, 1, "Delivery at "+stop.Location)
					book.remark("Delivery: " + stop.Location)
				}

			case domain.StopFuel:
				driveTime := math.Min(2, 11-book.hours.Driving)
				remainingDistance -= book.drive(driveTime, "")
				book.addSegment(domain.StatusOnDuty, 0.5, "Fuel stop")
				book.remark("Fueling")

			case domain.StopBreak:
				driveTime := math.Min(
					3,
					math.Min(11-book.hours.Driving, 8-math.Mod(book.hours.Driving, 8)),
				)
				remainingDistance -= book.drive(driveTime, "")
				book.addSegment(domain.StatusOffDuty, 0.5, "30-min break")
				book.remark("30-minute break")

			case domain.StopRest:
				if book.currentHour < 24 {
					book.addSegment(domain.StatusSleeper, 24-book.currentHour, "Rest area")
				}
				book.closeDay()
				book.addSegment(domain.StatusSleeper, 10, "Rest area")
			}
		} else {
			// Stops exhausted: keep driving down the remaining distance,
			// holding back half an hour of the duty window for the
			// post-trip inspection.
			driveTime := math.Min(
				remainingDistance/avgSpeedMPH,
				math.Min(11-book.hours.Driving, 14-(book.hours.Driving+book.hours.OnDuty)-0.5),
			)
			if driveTime <= 0 {
				break
			}
			remainingDistance -= book.drive(driveTime, "")
		}

		if book.currentHour >= 23.5 {
			book.addSegment(domain.StatusOffDuty, 24-book.currentHour, "")
			book.closeDay()
			book.addSegment(domain.StatusSleeper, 10, "Rest area")
		}
	}

	if len(book.segments) > 0 {
		if book.currentHour <= 23.5 {
			book.addSegment(domain.StatusOnDuty, 0.5, "Post-trip inspection")
		}
		if book.currentHour < 24 {
			book.addSegment(domain.StatusOffDuty, 24-book.currentHour, "End of day")
		}
		book.remark("Trip completed")
		book.closeDay()
	}

	return book.days, nil
}
