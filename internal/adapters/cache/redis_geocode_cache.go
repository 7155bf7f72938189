package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/divah21/spotter-backend/internal/domain"
)

const geocodeKeyPrefix = "geocode:"

type cachedCoordinate struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

// Redis backed geocode cache for deployments where several instances share
// lookups. Values are JSON-encoded coordinates expiring after TTL; a zero
// TTL keeps entries indefinitely.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

// Fetch the cached coordinate for a location, if any.
func (c *RedisGeocodeCache) Get(ctx context.Context, location string) (domain.Coordinate, bool, error) {
	if c.Client == nil {
		return domain.Coordinate{}, false, errors.New("geocode cache: redis client is nil")
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return domain.Coordinate{}, false, errors.New("get geocode cache: location must not be empty")
	}

	val, err := c.Client.Get(ctx, geocodeKeyPrefix+location).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinate{}, false, nil
	}
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("get geocode cache: redis get: %w", err)
	}

	var cached cachedCoordinate
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("get geocode cache: decode value: %w", err)
	}

	return domain.Coordinate{Lat: cached.Lat, Lng: cached.Lng, Name: cached.Name}, true, nil
}

// Store or replace the coordinate for a location.
func (c *RedisGeocodeCache) Put(ctx context.Context, location string, coord domain.Coordinate) error {
	if c.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return errors.New("insert geocode cache: location must not be empty")
	}

	payload, err := json.Marshal(cachedCoordinate{Lat: coord.Lat, Lng: coord.Lng, Name: coord.Name})
	if err != nil {
		return fmt.Errorf("insert geocode cache: encode value: %w", err)
	}

	if err := c.Client.Set(ctx, geocodeKeyPrefix+location, payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert geocode cache location=%q: %w", location, err)
	}

	return nil
}
