package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id INTEGER PRIMARY KEY AUTOINCREMENT,
		driver_name TEXT NOT NULL DEFAULT '',
		current_location TEXT NOT NULL,
		pickup_location TEXT NOT NULL,
		dropoff_location TEXT NOT NULL,
		current_cycle_used REAL NOT NULL DEFAULT 0,
		total_distance INTEGER NOT NULL DEFAULT 0,
		total_driving_time REAL NOT NULL DEFAULT 0,
		estimated_days INTEGER NOT NULL DEFAULT 1,
		route_source TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		trip_id INTEGER NOT NULL REFERENCES trips(trip_id) ON DELETE CASCADE,
		stop_order INTEGER NOT NULL,
		type TEXT NOT NULL,
		name TEXT NOT NULL,
		location TEXT NOT NULL,
		duration REAL NOT NULL,
		miles_from_start INTEGER NOT NULL,
		time_label TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (trip_id, stop_order)
	);
	`

	createLogsQuery := `
	CREATE TABLE IF NOT EXISTS eld_logs (
		log_id INTEGER PRIMARY KEY AUTOINCREMENT,
		trip_id INTEGER NOT NULL REFERENCES trips(trip_id) ON DELETE CASCADE,
		log_date TEXT NOT NULL,
		day_number INTEGER NOT NULL,
		total_miles INTEGER NOT NULL DEFAULT 0,
		hours_off_duty REAL NOT NULL DEFAULT 0,
		hours_sleeper REAL NOT NULL DEFAULT 0,
		hours_driving REAL NOT NULL DEFAULT 0,
		hours_on_duty REAL NOT NULL DEFAULT 0,
		remarks TEXT NOT NULL DEFAULT '[]'
	);
	`

	createSegmentsQuery := `
	CREATE TABLE IF NOT EXISTS log_segments (
		log_id INTEGER NOT NULL REFERENCES eld_logs(log_id) ON DELETE CASCADE,
		segment_order INTEGER NOT NULL,
		status TEXT NOT NULL,
		start_hour REAL NOT NULL,
		duration REAL NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (log_id, segment_order)
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		location TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		name TEXT NOT NULL DEFAULT ''
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_eld_logs_trip_day
	ON eld_logs(trip_id, day_number);
	`

	statements := []string{
		createTripsQuery,
		createStopsQuery,
		createLogsQuery,
		createSegmentsQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
