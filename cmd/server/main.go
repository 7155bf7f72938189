package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/divah21/spotter-backend/internal/adapters/cache"
	"github.com/divah21/spotter-backend/internal/adapters/geo"
	"github.com/divah21/spotter-backend/internal/adapters/repositories"
	"github.com/divah21/spotter-backend/internal/api"
	"github.com/divah21/spotter-backend/internal/config"
	"github.com/divah21/spotter-backend/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Nominatim, OSRM, optional Redis)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	port := config.Get("PORT", "8080")
	redisAddr := os.Getenv("REDIS_ADDR")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := repositories.InitSchema(db); err != nil {
		log.Fatal(err)
	}

	// Geocode lookups are cached so repeated trips between the same cities
	// don't hammer the public endpoint. Redis is shared across instances;
	// SQLite is the single-instance default.
	var geocodeCache ports.GeocodeCache
	if redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		geocodeCache = cache.NewRedisGeocodeCache(client, 24*time.Hour)
		log.Printf("Using redis geocode cache addr=%s", redisAddr)
	} else {
		geocodeCache = cache.NewSqliteGeocodeCache(db)
	}

	geocoder := geo.NewNominatimGeocoder(geocodeCache)
	osrm := geo.NewOSRMRouter()
	repo := repositories.NewSqliteTripRepository(db)

	router := api.NewRouter(repo, geocoder, osrm)

	// Timeouts are tuned for cold-cache planning (two external calls).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}
