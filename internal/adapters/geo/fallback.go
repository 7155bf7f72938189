package geo

import (
	"strings"

	"github.com/divah21/spotter-backend/internal/domain"
)

// cityFallbacks covers major freight hubs for when the geocoding service is
// unreachable. Keys are the lower-cased city part of a "City, ST" input.
var cityFallbacks = map[string][2]float64{
	"new york":    {40.7128, -74.0060},
	"los angeles": {34.0522, -118.2437},
	"chicago":     {41.8781, -87.6298},
	"dallas":      {32.7767, -96.7970},
	"miami":       {25.7617, -80.1918},
	"phoenix":     {33.4484, -112.0740},
	"atlanta":     {33.7490, -84.3880},
	"denver":      {39.7392, -104.9903},
}

// fallbackCoordinate resolves a location against the static city table.
// Unknown locations default to the New York coordinates so the planner
// always has something to work with.
func fallbackCoordinate(location string) domain.Coordinate {
	key := strings.TrimSpace(strings.Split(strings.ToLower(location), ",")[0])

	latlng, ok := cityFallbacks[key]
	if !ok {
		latlng = cityFallbacks["new york"]
	}

	return domain.Coordinate{Lat: latlng[0], Lng: latlng[1], Name: location}
}
