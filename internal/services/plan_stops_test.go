package services

import (
	"testing"

	"github.com/divah21/spotter-backend/internal/domain"
)

var (
	testCurrent = domain.Coordinate{Lat: 41.8781, Lng: -87.6298, Name: "Chicago, IL"}
	testPickup  = domain.Coordinate{Lat: 39.7684, Lng: -86.1581, Name: "Indianapolis, IN"}
	testDropoff = domain.Coordinate{Lat: 32.7767, Lng: -96.7970, Name: "Dallas, TX"}
)

func TestPlanStopsShortTrip(t *testing.T) {
	stops, err := PlanStops(300, 100, 6, testCurrent, testPickup, testDropoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stops) != 2 {
		t.Fatalf("expected 2 stops, got %d: %+v", len(stops), stops)
	}

	pickup := stops[0]
	if pickup.Type != domain.StopPickup {
		t.Fatalf("first stop type = %q, want %q", pickup.Type, domain.StopPickup)
	}
	if pickup.MilesFromStart != 100 {
		t.Fatalf("pickup miles = %d, want 100", pickup.MilesFromStart)
	}
	if pickup.ClockLabel != "06:00" {
		t.Fatalf("pickup clock = %q, want 06:00", pickup.ClockLabel)
	}
	if pickup.DurationHours != 1 {
		t.Fatalf("pickup duration = %f, want 1", pickup.DurationHours)
	}

	dropoff := stops[1]
	if dropoff.Type != domain.StopDropoff {
		t.Fatalf("last stop type = %q, want %q", dropoff.Type, domain.StopDropoff)
	}
	if dropoff.MilesFromStart != 300 {
		t.Fatalf("dropoff miles = %d, want 300", dropoff.MilesFromStart)
	}
	if dropoff.Name != "Dallas, TX" {
		t.Fatalf("dropoff name = %q, want Dallas, TX", dropoff.Name)
	}
	if dropoff.ClockLabel != "06:00" {
		t.Fatalf("dropoff clock = %q, want 06:00", dropoff.ClockLabel)
	}
}

func TestPlanStopsLongHaulSequence(t *testing.T) {
	stops, err := PlanStops(2400, 500, 48, testCurrent, testPickup, testDropoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		typ   domain.StopType
		miles int
	}{
		{domain.StopPickup, 500},
		{domain.StopRest, 550},
		{domain.StopFuel, 1100},
		{domain.StopRest, 1100},
		{domain.StopRest, 1650},
		{domain.StopFuel, 2200},
		{domain.StopRest, 2200},
		{domain.StopDropoff, 2400},
	}

	if len(stops) != len(want) {
		t.Fatalf("expected %d stops, got %d: %+v", len(want), len(stops), stops)
	}
	for i, w := range want {
		if stops[i].Type != w.typ {
			t.Fatalf("stop %d type = %q, want %q", i, stops[i].Type, w.typ)
		}
		if stops[i].MilesFromStart != w.miles {
			t.Fatalf("stop %d miles = %d, want %d", i, stops[i].MilesFromStart, w.miles)
		}
	}
}

func TestPlanStopsMilesNeverDecrease(t *testing.T) {
	stops, err := PlanStops(3100, 250, 62, testCurrent, testPickup, testDropoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev := 0
	for i, s := range stops {
		if s.MilesFromStart < prev {
			t.Fatalf("stop %d at mile %d before previous mile %d", i, s.MilesFromStart, prev)
		}
		prev = s.MilesFromStart
	}
}

func TestPlanStopsSingleTerminalDropoff(t *testing.T) {
	stops, err := PlanStops(1800, 400, 36, testCurrent, testPickup, testDropoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dropoffs := 0
	for _, s := range stops {
		if s.Type == domain.StopDropoff {
			dropoffs++
		}
	}
	if dropoffs != 1 {
		t.Fatalf("expected exactly one dropoff, got %d", dropoffs)
	}
	last := stops[len(stops)-1]
	if last.Type != domain.StopDropoff {
		t.Fatalf("last stop type = %q, want %q", last.Type, domain.StopDropoff)
	}
	if last.MilesFromStart != 1800 {
		t.Fatalf("dropoff miles = %d, want 1800", last.MilesFromStart)
	}
}

func TestPlanStopsFuelEveryThousandMiles(t *testing.T) {
	stops, err := PlanStops(2500, 300, 50, testCurrent, testPickup, testDropoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fuels := 0
	for _, s := range stops {
		if s.Type == domain.StopFuel {
			fuels++
		}
	}
	if fuels != 2 {
		t.Fatalf("expected 2 fuel stops over 2500 miles, got %d", fuels)
	}
}

func TestPlanStopsZeroDistanceToPickup(t *testing.T) {
	stops, err := PlanStops(1200, 0, 24, testCurrent, testCurrent, testDropoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Pickup is only emitted on a boundary crossing; at distance zero
	// there is no crossing, so the schedule starts with driving stops.
	for _, s := range stops {
		if s.Type == domain.StopPickup {
			t.Fatalf("unexpected pickup stop: %+v", s)
		}
	}
	if stops[len(stops)-1].Type != domain.StopDropoff {
		t.Fatalf("last stop type = %q, want %q", stops[len(stops)-1].Type, domain.StopDropoff)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "00:00"},
		{6, "06:00"},
		{11.5, "11:30"},
		{10.99, "10:59"},
		{14.25, "14:15"},
	}

	for _, tt := range tests {
		if got := formatClock(tt.hours); got != tt.want {
			t.Fatalf("formatClock(%f) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestEstimatedDays(t *testing.T) {
	tests := []struct {
		hours float64
		want  int
	}{
		{6, 1},
		{48, 9},
	}

	for _, tt := range tests {
		if got := estimatedDays(tt.hours); got != tt.want {
			t.Fatalf("estimatedDays(%f) = %d, want %d", tt.hours, got, tt.want)
		}
	}
}
