package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/divah21/spotter-backend/internal/domain"
	"github.com/divah21/spotter-backend/internal/platform/obs"
	"github.com/divah21/spotter-backend/internal/ports"
)

// Nominatim returns lat/lon as JSON strings in jsonv2 format.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimGeocoder resolves free-text locations through the OpenStreetMap
// Nominatim search endpoint, with a persistent cache in front and the
// static city table behind. Resolve never fails: any upstream problem
// (network error, empty result, malformed payload, open breaker) degrades
// to the fallback table.
//
// One outbound call per cache miss, no retries. Safe for concurrent use.
type NominatimGeocoder struct {
	client  *http.Client
	baseURL string
	breaker *gobreaker.CircuitBreaker
	cache   ports.GeocodeCache
}

func NewNominatimGeocoder(cache ports.GeocodeCache) *NominatimGeocoder {
	return &NominatimGeocoder{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://nominatim.openstreetmap.org/search",
		breaker: newBreaker("nominatim"),
		cache:   cache,
	}
}

func (g *NominatimGeocoder) Resolve(ctx context.Context, location string) domain.Coordinate {
	defer obs.Time(ctx, "geo.Resolve")(nil)

	if g.cache != nil {
		coord, ok, err := g.cache.Get(ctx, location)
		if err != nil {
			log.Printf("geocode cache read failed: %v", err)
		} else if ok {
			return coord
		}
	}

	coord, err := g.lookup(ctx, location)
	if err != nil {
		log.Printf("geocode lookup failed location=%q err=%v", location, err)
		return fallbackCoordinate(location)
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, location, coord); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coord
}

func (g *NominatimGeocoder) lookup(ctx context.Context, location string) (domain.Coordinate, error) {
	result, err := g.breaker.Execute(func() (interface{}, error) {
		req, err := newRequest(ctx, g.baseURL)
		if err != nil {
			return nil, err
		}

		q := url.Values{}
		q.Set("format", "jsonv2")
		q.Set("limit", "1")
		q.Set("q", location)
		req.URL.RawQuery = q.Encode()

		resp, err := do(g.client, req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		var decoded []nominatimResult
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, fmt.Errorf("decode geocode response: %w", err)
		}
		if len(decoded) == 0 {
			return nil, fmt.Errorf("no geocode results for %q", location)
		}

		return decoded[0], nil
	})
	if err != nil {
		return domain.Coordinate{}, err
	}

	item := result.(nominatimResult)

	lat, err := strconv.ParseFloat(item.Lat, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("parse lat %q: %w", item.Lat, err)
	}
	lng, err := strconv.ParseFloat(item.Lon, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("parse lon %q: %w", item.Lon, err)
	}

	name := item.DisplayName
	if name == "" {
		name = location
	}

	return domain.Coordinate{Lat: lat, Lng: lng, Name: name}, nil
}
