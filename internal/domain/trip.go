package domain

import "time"

// Persisted aggregate tying the planning inputs to the computed route
// summary, stop schedule, and duty logs. Route geometry is transient
// response data and is not stored.
type Trip struct {
	ID               int64
	DriverName       string
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64

	TotalDistance    int
	TotalDrivingTime float64
	EstimatedDays    int
	RouteSource      RouteSource

	Stops []Stop
	Logs  []DailyLog

	CreatedAt time.Time
}
