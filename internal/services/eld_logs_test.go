package services

import (
	"math"
	"testing"
	"time"

	"github.com/divah21/spotter-backend/internal/domain"
)

func routeForLogs(t *testing.T, totalMiles, distanceToPickup, durationHours float64) *domain.RouteResult {
	t.Helper()

	stops, err := PlanStops(totalMiles, distanceToPickup, durationHours, testCurrent, testPickup, testDropoff)
	if err != nil {
		t.Fatalf("planning stops: %v", err)
	}

	return &domain.RouteResult{
		Source:             domain.RouteSourceApproximated,
		TotalDistanceMiles: int(math.Round(totalMiles)),
		TotalDrivingHours:  durationHours,
		EstimatedDays:      estimatedDays(durationHours),
		Stops:              stops,
	}
}

func TestGenerateLogsShortTripSingleDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	route := routeForLogs(t, 150, 50, 3)

	logs, err := GenerateLogs(route, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(logs) != 1 {
		t.Fatalf("expected 1 daily log, got %d", len(logs))
	}

	day := logs[0]
	if day.DayNumber != 1 {
		t.Fatalf("day number = %d, want 1", day.DayNumber)
	}
	if !day.Date.Equal(start) {
		t.Fatalf("date = %v, want %v", day.Date, start)
	}
	if day.TotalMiles != 150 {
		t.Fatalf("total miles = %d, want 150", day.TotalMiles)
	}

	sum := day.Hours.OffDuty + day.Hours.SleeperBerth + day.Hours.Driving + day.Hours.OnDuty
	if math.Abs(sum-24) > 1e-6 {
		t.Fatalf("daily hours sum = %f, want 24", sum)
	}
	if math.Abs(day.Hours.Driving-3) > 1e-6 {
		t.Fatalf("driving hours = %f, want 3", day.Hours.Driving)
	}

	first := day.Segments[0]
	if first.Status != domain.StatusSleeper || first.StartHour != 8 || first.DurationHours != 8 {
		t.Fatalf("first segment = %+v, want 8h sleeper starting at hour 8", first)
	}
	if first.Location != "Home terminal" {
		t.Fatalf("first segment location = %q, want Home terminal", first.Location)
	}

	last := day.Remarks[len(day.Remarks)-1]
	if last != "Trip completed" {
		t.Fatalf("final remark = %q, want Trip completed", last)
	}
}

func TestGenerateLogsLongHaul(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	route := routeForLogs(t, 2400, 500, 48)

	logs, err := GenerateLogs(route, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(logs) != 8 {
		t.Fatalf("expected 8 daily logs, got %d", len(logs))
	}

	totalMiles := 0
	for i, day := range logs {
		if day.DayNumber != i+1 {
			t.Fatalf("day %d number = %d, want %d", i, day.DayNumber, i+1)
		}
		want := start.AddDate(0, 0, i)
		if !day.Date.Equal(want) {
			t.Fatalf("day %d date = %v, want %v", i+1, day.Date, want)
		}

		sum := day.Hours.OffDuty + day.Hours.SleeperBerth + day.Hours.Driving + day.Hours.OnDuty
		if math.Abs(sum-24) > 1e-6 {
			t.Fatalf("day %d hours sum = %f, want 24", i+1, sum)
		}
		if day.Hours.Driving > 11+1e-6 {
			t.Fatalf("day %d driving = %f, exceeds 11h cap", i+1, day.Hours.Driving)
		}

		totalMiles += day.TotalMiles
	}

	if totalMiles != 2400 {
		t.Fatalf("total logged miles = %d, want 2400", totalMiles)
	}

	last := logs[len(logs)-1].Remarks
	if last[len(last)-1] != "Trip completed" {
		t.Fatalf("final remark = %q, want Trip completed", last[len(last)-1])
	}
}

func TestGenerateLogsSegmentsContiguous(t *testing.T) {
	route := routeForLogs(t, 2400, 500, 48)

	logs, err := GenerateLogs(route, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, day := range logs {
		wantStart := 0.0
		if day.DayNumber == 1 {
			wantStart = 8
		}
		for i, seg := range day.Segments {
			if math.Abs(seg.StartHour-wantStart) > 1e-6 {
				t.Fatalf("day %d segment %d starts at %f, want %f", day.DayNumber, i, seg.StartHour, wantStart)
			}
			if seg.StartHour+seg.DurationHours > 24+1e-6 {
				t.Fatalf("day %d segment %d runs past hour 24: %+v", day.DayNumber, i, seg)
			}
			wantStart = seg.StartHour + seg.DurationHours
		}
	}
}

func TestGenerateLogsRestBetweenDrivingDays(t *testing.T) {
	route := routeForLogs(t, 2400, 500, 48)

	logs, err := GenerateLogs(route, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every day after the first opens with the 10-hour overnight sleeper
	// period carried over from closing the previous day.
	for _, day := range logs[1:] {
		first := day.Segments[0]
		if first.Status != domain.StatusSleeper {
			t.Fatalf("day %d opens with %q, want sleeper", day.DayNumber, first.Status)
		}
		if first.DurationHours < 10-1e-6 {
			t.Fatalf("day %d opening sleeper = %fh, want >= 10", day.DayNumber, first.DurationHours)
		}
	}
}

func TestGenerateLogsRemarksAccumulate(t *testing.T) {
	route := routeForLogs(t, 2400, 500, 48)

	logs, err := GenerateLogs(route, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(logs); i++ {
		prev := logs[i-1].Remarks
		cur := logs[i].Remarks
		if len(cur) < len(prev) {
			t.Fatalf("day %d has fewer remarks (%d) than day %d (%d)", i+1, len(cur), i, len(prev))
		}
		for j, r := range prev {
			if cur[j] != r {
				t.Fatalf("day %d remark %d = %q, diverges from day %d's %q", i+1, j, cur[j], i, r)
			}
		}
	}

	first := logs[0].Remarks[0]
	if first != "Started trip after 10-hour rest" {
		t.Fatalf("first remark = %q, want Started trip after 10-hour rest", first)
	}
}
