package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/divah21/spotter-backend/internal/domain"
	"github.com/divah21/spotter-backend/internal/platform/obs"
)

const (
	metersPerMile    = 1609.34
	secondsPerHour   = 3600.0
	fallbackSpeedMPH = 50.0
)

type osrmResponse struct {
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []struct {
			Distance float64 `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

// OSRMRouter obtains routed path geometry and metrics from the OSRM driving
// profile. On any failure it approximates instead: the waypoints themselves
// as geometry, summed great-circle distance, duration at 50 mph, and one
// synthetic leg covering the first waypoint pair.
//
// One outbound call per invocation, no retries. Safe for concurrent use.
type OSRMRouter struct {
	client  *http.Client
	baseURL string
	breaker *gobreaker.CircuitBreaker
}

func NewOSRMRouter() *OSRMRouter {
	return &OSRMRouter{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: "https://router.project-osrm.org/route/v1/driving/",
		breaker: newBreaker("osrm"),
	}
}

func (r *OSRMRouter) Route(ctx context.Context, coords []domain.Coordinate) domain.RouteData {
	defer obs.Time(ctx, "geo.Route")(nil)

	data, err := r.lookup(ctx, coords)
	if err != nil {
		log.Printf("route lookup failed waypoints=%d err=%v", len(coords), err)
		return approximateRoute(coords)
	}
	return data
}

func (r *OSRMRouter) lookup(ctx context.Context, coords []domain.Coordinate) (domain.RouteData, error) {
	if len(coords) < 2 {
		return domain.RouteData{}, errors.New("route: need at least two coordinates")
	}

	parts := make([]string, 0, len(coords))
	for _, c := range coords {
		parts = append(parts,
			strconv.FormatFloat(c.Lng, 'f', -1, 64)+","+strconv.FormatFloat(c.Lat, 'f', -1, 64))
	}
	endpoint := r.baseURL + strings.Join(parts, ";") +
		"?overview=full&geometries=geojson&steps=true&continue_straight=true"

	result, err := r.breaker.Execute(func() (interface{}, error) {
		req, err := newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}

		resp, err := do(r.client, req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		var decoded osrmResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, fmt.Errorf("decode route response: %w", err)
		}
		if len(decoded.Routes) == 0 {
			return nil, errors.New("no routes in response")
		}

		return &decoded, nil
	})
	if err != nil {
		return domain.RouteData{}, err
	}

	route := result.(*osrmResponse).Routes[0]

	geometry := make([]domain.Coordinate, 0, len(route.Geometry.Coordinates))
	for _, pair := range route.Geometry.Coordinates {
		if len(pair) < 2 {
			return domain.RouteData{}, fmt.Errorf("invalid geometry point %v", pair)
		}
		// GeoJSON order is [lon, lat].
		geometry = append(geometry, domain.Coordinate{Lat: pair[1], Lng: pair[0]})
	}

	legMiles := make([]float64, 0, len(route.Legs))
	for _, leg := range route.Legs {
		legMiles = append(legMiles, leg.Distance/metersPerMile)
	}

	return domain.RouteData{
		Source:        domain.RouteSourceRouted,
		Geometry:      geometry,
		DistanceMiles: route.Distance / metersPerMile,
		DurationHours: route.Duration / secondsPerHour,
		LegMiles:      legMiles,
	}, nil
}

// approximateRoute is the deterministic offline estimate: straight lines
// between waypoints, great-circle distances, and a constant 50 mph.
func approximateRoute(coords []domain.Coordinate) domain.RouteData {
	var total float64
	for i := 1; i < len(coords); i++ {
		total += domain.Haversine(coords[i-1], coords[i])
	}

	var legMiles []float64
	if len(coords) >= 2 {
		legMiles = []float64{domain.Haversine(coords[0], coords[1])}
	}

	geometry := make([]domain.Coordinate, len(coords))
	copy(geometry, coords)

	return domain.RouteData{
		Source:        domain.RouteSourceApproximated,
		Geometry:      geometry,
		DistanceMiles: total,
		DurationHours: total / fallbackSpeedMPH,
		LegMiles:      legMiles,
	}
}
