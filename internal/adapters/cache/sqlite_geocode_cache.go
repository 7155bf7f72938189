package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/divah21/spotter-backend/internal/domain"
)

// SQLite backed cache mapping location strings to geocoded coordinates.
// Keys are expected to be consistent (e.g., already trimmed) by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch the cached coordinate for a location, if any.
func (s *SqliteGeocodeCache) Get(ctx context.Context, location string) (domain.Coordinate, bool, error) {
	if s.DB == nil {
		return domain.Coordinate{}, false, errors.New("geocode cache: db is nil")
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return domain.Coordinate{}, false, errors.New("get geocode cache: location must not be empty")
	}

	q := `
	SELECT
		lat,
		lng,
		name
	FROM geocode_cache
	WHERE location = ?;
	`

	var c domain.Coordinate
	err := s.DB.QueryRowContext(ctx, q, location).Scan(&c.Lat, &c.Lng, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinate{}, false, nil
	}
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return c, true, nil
}

// Store or replace the coordinate for a location.
func (s *SqliteGeocodeCache) Put(ctx context.Context, location string, coord domain.Coordinate) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return errors.New("insert geocode cache: location must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (
		location,
		lat,
		lng,
		name
	)
	VALUES (?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, location, coord.Lat, coord.Lng, coord.Name); err != nil {
		return fmt.Errorf("insert geocode cache location=%q: %w", location, err)
	}

	return nil
}
