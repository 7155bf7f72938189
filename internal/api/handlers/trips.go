package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/divah21/spotter-backend/internal/api/dto"
	"github.com/divah21/spotter-backend/internal/domain"
	"github.com/divah21/spotter-backend/internal/ports"
	"github.com/divah21/spotter-backend/internal/services"
)

// TripHandler exposes trip planning and retrieval endpoints.
type TripHandler struct {
	Repo     ports.TripRepository
	Geocoder ports.Geocoder
	Router   ports.Router
	Validate *validator.Validate
}

func NewTripHandler(repo ports.TripRepository, geocoder ports.Geocoder, router ports.Router) *TripHandler {
	return &TripHandler{
		Repo:     repo,
		Geocoder: geocoder,
		Router:   router,
		Validate: validator.New(),
	}
}

// Plan runs the whole planning pipeline for one trip: geocode the three
// locations, route them, compute the HOS stop schedule and duty logs, and
// persist the result.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	route, err := services.PlanTrip(
		r.Context(), h.Geocoder, h.Router,
		req.CurrentLocation, req.PickupLocation, req.DropoffLocation,
		req.CurrentCycleUsed,
	)
	if err != nil {
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	logs, err := services.GenerateLogs(route, time.Now().UTC())
	if err != nil {
		log.Printf("generate logs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	trip := &domain.Trip{
		DriverName:       req.DriverName,
		CurrentLocation:  req.CurrentLocation,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		CurrentCycleUsed: req.CurrentCycleUsed,
		TotalDistance:    route.TotalDistanceMiles,
		TotalDrivingTime: route.TotalDrivingHours,
		EstimatedDays:    route.EstimatedDays,
		RouteSource:      route.Source,
		Stops:            route.Stops,
		Logs:             logs,
		CreatedAt:        time.Now().UTC(),
	}

	if err := h.Repo.CreateTrip(r.Context(), trip); err != nil {
		log.Printf("store trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := tripResponse(trip)
	res.Route = routeResponse(route)

	writeJSON(w, r, http.StatusCreated, res)
}

// List returns stored trip summaries, most recent first.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Repo.ListTrips(r.Context())
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripSummaryResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.TripSummaryResponse{
			TripID:           t.ID,
			DriverName:       t.DriverName,
			CurrentLocation:  t.CurrentLocation,
			PickupLocation:   t.PickupLocation,
			DropoffLocation:  t.DropoffLocation,
			TotalDistance:    t.TotalDistance,
			TotalDrivingTime: t.TotalDrivingTime,
			EstimatedDays:    t.EstimatedDays,
			CreatedAt:        t.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one stored trip with its stop schedule and duty logs.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid trip id")
		return
	}

	trip, err := h.Repo.GetTrip(r.Context(), id)
	if errors.Is(err, ports.ErrTripNotFound) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}
	if err != nil {
		log.Printf("get trip failed id=%d: %v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, tripResponse(trip))
}

func tripResponse(trip *domain.Trip) dto.TripResponse {
	stops := make([]dto.StopResponse, 0, len(trip.Stops))
	for _, s := range trip.Stops {
		stops = append(stops, stopResponse(s))
	}

	logs := make([]dto.DailyLogResponse, 0, len(trip.Logs))
	for _, dayLog := range trip.Logs {
		segments := make([]dto.SegmentResponse, 0, len(dayLog.Segments))
		for _, seg := range dayLog.Segments {
			segments = append(segments, dto.SegmentResponse{
				Status:    string(seg.Status),
				StartHour: seg.StartHour,
				Duration:  seg.DurationHours,
				Location:  seg.Location,
			})
		}

		logs = append(logs, dto.DailyLogResponse{
			Date:      dayLog.Date.Format("2006-01-02"),
			DayNumber: dayLog.DayNumber,
			Hours: dto.DailyHoursResponse{
				OffDuty:      dayLog.Hours.OffDuty,
				SleeperBerth: dayLog.Hours.SleeperBerth,
				Driving:      dayLog.Hours.Driving,
				OnDuty:       dayLog.Hours.OnDuty,
			},
			Segments:   segments,
			Remarks:    dayLog.Remarks,
			TotalMiles: dayLog.TotalMiles,
		})
	}

	return dto.TripResponse{
		TripID:           trip.ID,
		DriverName:       trip.DriverName,
		CurrentLocation:  trip.CurrentLocation,
		PickupLocation:   trip.PickupLocation,
		DropoffLocation:  trip.DropoffLocation,
		CurrentCycleUsed: trip.CurrentCycleUsed,
		TotalDistance:    trip.TotalDistance,
		TotalDrivingTime: trip.TotalDrivingTime,
		EstimatedDays:    trip.EstimatedDays,
		Stops:            stops,
		EldLogs:          logs,
		CreatedAt:        trip.CreatedAt,
	}
}

func routeResponse(route *domain.RouteResult) *dto.RouteResponse {
	stops := make([]dto.StopResponse, 0, len(route.Stops))
	for _, s := range route.Stops {
		stops = append(stops, stopResponse(s))
	}

	geometry := make([]dto.CoordinateResponse, 0, len(route.Geometry))
	for _, c := range route.Geometry {
		geometry = append(geometry, coordinateResponse(c))
	}

	return &dto.RouteResponse{
		TotalDistance:    route.TotalDistanceMiles,
		TotalDrivingTime: route.TotalDrivingHours,
		EstimatedDays:    route.EstimatedDays,
		Source:           string(route.Source),
		RestStops:        stops,
		Coordinates: dto.TripCoordinatesResponse{
			Current: coordinateResponse(route.Coordinates.Current),
			Pickup:  coordinateResponse(route.Coordinates.Pickup),
			Dropoff: coordinateResponse(route.Coordinates.Dropoff),
		},
		RouteGeometry: geometry,
	}
}

func stopResponse(s domain.Stop) dto.StopResponse {
	return dto.StopResponse{
		Type:           string(s.Type),
		Name:           s.Name,
		Location:       s.Location,
		Duration:       s.DurationHours,
		MilesFromStart: s.MilesFromStart,
		Time:           s.ClockLabel,
	}
}

func coordinateResponse(c domain.Coordinate) dto.CoordinateResponse {
	return dto.CoordinateResponse{Lat: c.Lat, Lng: c.Lng, Name: c.Name}
}
