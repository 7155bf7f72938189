package domain

import "math"

// Mean Earth radius in statute miles, used for great-circle estimates.
const earthRadiusMiles = 3959.0

// Immutable geographic point with the human-readable name it was resolved from.
type Coordinate struct {
	Lat  float64
	Lng  float64
	Name string
}

// Haversine returns the great-circle distance in miles between two points.
func Haversine(a, b Coordinate) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
