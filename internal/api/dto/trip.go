package dto

import "time"

type PlanTripRequest struct {
	DriverName       string  `json:"driver_name"`
	CurrentLocation  string  `json:"current_location" validate:"required"`
	PickupLocation   string  `json:"pickup_location" validate:"required"`
	DropoffLocation  string  `json:"dropoff_location" validate:"required"`
	CurrentCycleUsed float64 `json:"current_cycle_used" validate:"gte=0,lte=70"`
}

type CoordinateResponse struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

type TripCoordinatesResponse struct {
	Current CoordinateResponse `json:"current"`
	Pickup  CoordinateResponse `json:"pickup"`
	Dropoff CoordinateResponse `json:"dropoff"`
}

type StopResponse struct {
	Type           string  `json:"type"`
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	Duration       float64 `json:"duration"`
	MilesFromStart int     `json:"milesFromStart"`
	Time           string  `json:"time"`
}

type RouteResponse struct {
	TotalDistance    int                     `json:"totalDistance"`
	TotalDrivingTime float64                 `json:"totalDrivingTime"`
	EstimatedDays    int                     `json:"estimatedDays"`
	Source           string                  `json:"source"`
	RestStops        []StopResponse          `json:"restStops"`
	Coordinates      TripCoordinatesResponse `json:"coordinates"`
	RouteGeometry    []CoordinateResponse    `json:"routeGeometry"`
}

type DailyHoursResponse struct {
	OffDuty      float64 `json:"offDuty"`
	SleeperBerth float64 `json:"sleeperBerth"`
	Driving      float64 `json:"driving"`
	OnDuty       float64 `json:"onDuty"`
}

type SegmentResponse struct {
	Status    string  `json:"status"`
	StartHour float64 `json:"startHour"`
	Duration  float64 `json:"duration"`
	Location  string  `json:"location"`
}

type DailyLogResponse struct {
	Date       string             `json:"date"`
	DayNumber  int                `json:"dayNumber"`
	Hours      DailyHoursResponse `json:"hours"`
	Segments   []SegmentResponse  `json:"segments"`
	Remarks    []string           `json:"remarks"`
	TotalMiles int                `json:"totalMiles"`
}

type TripResponse struct {
	TripID           int64              `json:"trip_id"`
	DriverName       string             `json:"driver_name"`
	CurrentLocation  string             `json:"current_location"`
	PickupLocation   string             `json:"pickup_location"`
	DropoffLocation  string             `json:"dropoff_location"`
	CurrentCycleUsed float64            `json:"current_cycle_used"`
	TotalDistance    int                `json:"total_distance"`
	TotalDrivingTime float64            `json:"total_driving_time"`
	EstimatedDays    int                `json:"estimated_days"`
	Route            *RouteResponse     `json:"route,omitempty"`
	Stops            []StopResponse     `json:"stops"`
	EldLogs          []DailyLogResponse `json:"eld_logs"`
	CreatedAt        time.Time          `json:"created_at"`
}

type TripSummaryResponse struct {
	TripID           int64     `json:"trip_id"`
	DriverName       string    `json:"driver_name"`
	CurrentLocation  string    `json:"current_location"`
	PickupLocation   string    `json:"pickup_location"`
	DropoffLocation  string    `json:"dropoff_location"`
	TotalDistance    int       `json:"total_distance"`
	TotalDrivingTime float64   `json:"total_driving_time"`
	EstimatedDays    int       `json:"estimated_days"`
	CreatedAt        time.Time `json:"created_at"`
}

type ListTripsResponse struct {
	Trips []TripSummaryResponse `json:"trips"`
}
