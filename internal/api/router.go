package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/divah21/spotter-backend/internal/api/handlers"
	"github.com/divah21/spotter-backend/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(repo ports.TripRepository, geocoder ports.Geocoder, router ports.Router) http.Handler {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	tripHandler := handlers.NewTripHandler(repo, geocoder, router)

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/trips", tripHandler.Plan).Methods(http.MethodPost)
	r.HandleFunc("/api/trips", tripHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/api/trips/{id:[0-9]+}", tripHandler.Get).Methods(http.MethodGet)

	return requestIDMiddleware(loggingMiddleware(r))
}
