package domain

import "time"

// DutyStatus is one of the four ELD duty-status classifications.
type DutyStatus string

const (
	StatusOffDuty DutyStatus = "off-duty"
	StatusSleeper DutyStatus = "sleeper"
	StatusDriving DutyStatus = "driving"
	StatusOnDuty  DutyStatus = "on-duty"
)

// One contiguous span of a single duty status within a log day.
// Segments within a day are time-contiguous: each one starts where the
// previous one ended.
type DutySegment struct {
	Status        DutyStatus
	StartHour     float64
	DurationHours float64
	Location      string
}

// Per-status hour totals for one log day.
type DailyHours struct {
	OffDuty      float64
	SleeperBerth float64
	Driving      float64
	OnDuty       float64
}

// One calendar day of the duty-status record. Immutable once appended to
// the trip's log sequence.
type DailyLog struct {
	Date       time.Time
	DayNumber  int
	Hours      DailyHours
	Segments   []DutySegment
	Remarks    []string
	TotalMiles int
}
