package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema used by production deployments. Mirrors
// the SQLite schema with Postgres column types.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS trips (
			trip_id BIGSERIAL PRIMARY KEY,
			driver_name TEXT NOT NULL DEFAULT '',
			current_location TEXT NOT NULL,
			pickup_location TEXT NOT NULL,
			dropoff_location TEXT NOT NULL,
			current_cycle_used DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_distance INTEGER NOT NULL DEFAULT 0,
			total_driving_time DOUBLE PRECISION NOT NULL DEFAULT 0,
			estimated_days INTEGER NOT NULL DEFAULT 1,
			route_source TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS stops (
			trip_id BIGINT NOT NULL REFERENCES trips(trip_id) ON DELETE CASCADE,
			stop_order INTEGER NOT NULL,
			type TEXT NOT NULL,
			name TEXT NOT NULL,
			location TEXT NOT NULL,
			duration DOUBLE PRECISION NOT NULL,
			miles_from_start INTEGER NOT NULL,
			time_label TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (trip_id, stop_order)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS eld_logs (
			log_id BIGSERIAL PRIMARY KEY,
			trip_id BIGINT NOT NULL REFERENCES trips(trip_id) ON DELETE CASCADE,
			log_date DATE NOT NULL,
			day_number INTEGER NOT NULL,
			total_miles INTEGER NOT NULL DEFAULT 0,
			hours_off_duty DOUBLE PRECISION NOT NULL DEFAULT 0,
			hours_sleeper DOUBLE PRECISION NOT NULL DEFAULT 0,
			hours_driving DOUBLE PRECISION NOT NULL DEFAULT 0,
			hours_on_duty DOUBLE PRECISION NOT NULL DEFAULT 0,
			remarks JSONB NOT NULL DEFAULT '[]'
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS log_segments (
			log_id BIGINT NOT NULL REFERENCES eld_logs(log_id) ON DELETE CASCADE,
			segment_order INTEGER NOT NULL,
			status TEXT NOT NULL,
			start_hour DOUBLE PRECISION NOT NULL,
			duration DOUBLE PRECISION NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (log_id, segment_order)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS geocode_cache (
			location TEXT PRIMARY KEY,
			lat DOUBLE PRECISION NOT NULL,
			lng DOUBLE PRECISION NOT NULL,
			name TEXT NOT NULL DEFAULT ''
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_eld_logs_trip_day
		ON eld_logs(trip_id, day_number);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
