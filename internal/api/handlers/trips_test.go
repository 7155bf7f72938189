package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/divah21/spotter-backend/internal/api/dto"
	"github.com/divah21/spotter-backend/internal/domain"
	"github.com/divah21/spotter-backend/internal/ports"
)

type fakeTripRepo struct {
	nextID int64
	trips  map[int64]*domain.Trip
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[int64]*domain.Trip)}
}

func (r *fakeTripRepo) CreateTrip(_ context.Context, trip *domain.Trip) error {
	r.nextID++
	trip.ID = r.nextID
	r.trips[trip.ID] = trip
	return nil
}

func (r *fakeTripRepo) GetTrip(_ context.Context, id int64) (*domain.Trip, error) {
	trip, ok := r.trips[id]
	if !ok {
		return nil, ports.ErrTripNotFound
	}
	return trip, nil
}

func (r *fakeTripRepo) ListTrips(_ context.Context) ([]*domain.Trip, error) {
	trips := make([]*domain.Trip, 0, len(r.trips))
	for id := r.nextID; id >= 1; id-- {
		if trip, ok := r.trips[id]; ok {
			trips = append(trips, trip)
		}
	}
	return trips, nil
}

type fixedGeocoder struct{}

func (fixedGeocoder) Resolve(_ context.Context, location string) domain.Coordinate {
	switch location {
	case "Chicago, IL":
		return domain.Coordinate{Lat: 41.8781, Lng: -87.6298, Name: location}
	case "Indianapolis, IN":
		return domain.Coordinate{Lat: 39.7684, Lng: -86.1581, Name: location}
	default:
		return domain.Coordinate{Lat: 32.7767, Lng: -96.7970, Name: location}
	}
}

type fixedRouter struct{}

func (fixedRouter) Route(_ context.Context, coords []domain.Coordinate) domain.RouteData {
	return domain.RouteData{
		Source:        domain.RouteSourceRouted,
		Geometry:      coords,
		DistanceMiles: 1100,
		DurationHours: 22,
		LegMiles:      []float64{180, 920},
	}
}

func newTestHandler() (*TripHandler, *fakeTripRepo) {
	repo := newFakeTripRepo()
	return NewTripHandler(repo, fixedGeocoder{}, fixedRouter{}), repo
}

func TestPlanCreatesTrip(t *testing.T) {
	h, repo := newTestHandler()

	body := `{
		"driver_name": "J. Doe",
		"current_location": "Chicago, IL",
		"pickup_location": "Indianapolis, IN",
		"dropoff_location": "Dallas, TX",
		"current_cycle_used": 12.5
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/trips", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Plan(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var res dto.TripResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if res.TripID != 1 {
		t.Fatalf("trip id = %d, want 1", res.TripID)
	}
	if res.TotalDistance != 1100 {
		t.Fatalf("total distance = %d, want 1100", res.TotalDistance)
	}
	if res.Route == nil {
		t.Fatal("expected route payload on plan response")
	}
	if res.Route.Source != string(domain.RouteSourceRouted) {
		t.Fatalf("route source = %q", res.Route.Source)
	}
	if len(res.Route.RouteGeometry) != 3 {
		t.Fatalf("geometry length = %d, want 3 waypoints", len(res.Route.RouteGeometry))
	}
	if len(res.Stops) == 0 || res.Stops[len(res.Stops)-1].Type != string(domain.StopDropoff) {
		t.Fatalf("stops = %+v, want terminal dropoff", res.Stops)
	}
	if len(res.EldLogs) == 0 {
		t.Fatal("expected duty logs in response")
	}

	if len(repo.trips) != 1 {
		t.Fatalf("stored trips = %d, want 1", len(repo.trips))
	}
	stored := repo.trips[1]
	if stored.DriverName != "J. Doe" || stored.CurrentCycleUsed != 12.5 {
		t.Fatalf("stored trip = %+v", stored)
	}
}

func TestPlanRejectsInvalidBody(t *testing.T) {
	h, _ := newTestHandler()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"unknown field", `{"current_location":"A","pickup_location":"B","dropoff_location":"C","bogus":1}`},
		{"two objects", `{"current_location":"A","pickup_location":"B","dropoff_location":"C"}{}`},
		{"missing pickup", `{"current_location":"A","dropoff_location":"C"}`},
		{"cycle out of range", `{"current_location":"A","pickup_location":"B","dropoff_location":"C","current_cycle_used":80}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/trips", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.Plan(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetTripNotFound(t *testing.T) {
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/trips/42", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestGetTripReturnsStoredPlan(t *testing.T) {
	h, repo := newTestHandler()

	repo.CreateTrip(context.Background(), &domain.Trip{
		DriverName:      "J. Doe",
		CurrentLocation: "Chicago, IL",
		PickupLocation:  "Indianapolis, IN",
		DropoffLocation: "Dallas, TX",
		TotalDistance:   1100,
		RouteSource:     domain.RouteSourceRouted,
		Stops: []domain.Stop{
			{Type: domain.StopDropoff, Name: "Dallas, TX", Location: "Dallas, TX", DurationHours: 1, MilesFromStart: 1100, ClockLabel: "22:00"},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/trips/1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res dto.TripResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if res.TripID != 1 || res.DropoffLocation != "Dallas, TX" {
		t.Fatalf("response = %+v", res)
	}
	if res.Route != nil {
		t.Fatal("stored trip response should not include transient route geometry")
	}
	if len(res.Stops) != 1 || res.Stops[0].Time != "22:00" {
		t.Fatalf("stops = %+v", res.Stops)
	}
}

func TestListTrips(t *testing.T) {
	h, repo := newTestHandler()

	repo.CreateTrip(context.Background(), &domain.Trip{DriverName: "First"})
	repo.CreateTrip(context.Background(), &domain.Trip{DriverName: "Second"})

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res dto.ListTripsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(res.Trips) != 2 {
		t.Fatalf("trips = %d, want 2", len(res.Trips))
	}
	if res.Trips[0].DriverName != "Second" {
		t.Fatalf("first listed trip = %+v, want newest first", res.Trips[0])
	}
}
