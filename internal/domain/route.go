package domain

// StopType classifies a scheduled stop along the planned route.
type StopType string

const (
	StopBreak   StopType = "30-min break"
	StopFuel    StopType = "fuel"
	StopPickup  StopType = "pickup"
	StopRest    StopType = "rest"
	StopDropoff StopType = "dropoff"
	StopOther   StopType = "other"
)

// Represents one scheduled stop, positioned by miles driven from the origin.
// Stops are ordered by non-decreasing MilesFromStart; the planner always
// terminates the sequence with a single dropoff at the total distance.
type Stop struct {
	Type           StopType
	Name           string
	Location       string
	DurationHours  float64
	MilesFromStart int
	ClockLabel     string
}

// RouteSource records whether route metrics came from the routing service
// or from the offline great-circle approximation.
type RouteSource string

const (
	RouteSourceRouted       RouteSource = "routed"
	RouteSourceApproximated RouteSource = "approximated"
)

// RouteData is the raw Router output: path geometry plus total and per-leg
// metrics. LegMiles holds one entry per waypoint-to-waypoint leg.
type RouteData struct {
	Source        RouteSource
	Geometry      []Coordinate
	DistanceMiles float64
	DurationHours float64
	LegMiles      []float64
}

// TripCoordinates groups the three resolved waypoints of a trip.
type TripCoordinates struct {
	Current Coordinate
	Pickup  Coordinate
	Dropoff Coordinate
}

// Represents the complete plan for one trip: route metrics, the ordered
// HOS stop schedule, and the path geometry. It is immutable planning data
// built once by the planner and read-only afterward.
type RouteResult struct {
	Source             RouteSource
	TotalDistanceMiles int
	TotalDrivingHours  float64
	EstimatedDays      int
	Stops              []Stop
	Coordinates        TripCoordinates
	Geometry           []Coordinate
}
