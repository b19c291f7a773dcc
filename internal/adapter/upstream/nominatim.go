package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
)

// geocodeUserAgent identifies this service to the Nominatim usage policy.
const geocodeUserAgent = "crypto-checkout (shipping quote)"

// NominatimGeocoder resolves postal addresses via the OpenStreetMap
// Nominatim search API.
type NominatimGeocoder struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewNominatimGeocoder creates a geocoder against the given base URL.
func NewNominatimGeocoder(baseURL string, client *http.Client, log zerolog.Logger) *NominatimGeocoder {
	return &NominatimGeocoder{baseURL: baseURL, client: client, log: log}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode implements ports.Geocoder. It returns an error when the query
// resolves to no result or to unparseable coordinates.
func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (float64, float64, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", geocodeUserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error().Err(err).Msg("geocode request failed")
		return 0, 0, fmt.Errorf("geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		g.log.Error().Int("status", resp.StatusCode).Msg("geocode request failed")
		return 0, 0, fmt.Errorf("geocode: HTTP %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(results) == 0 || results[0].Lat == "" || results[0].Lon == "" {
		return 0, 0, fmt.Errorf("geocode: no result for query")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse geocode latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse geocode longitude %q: %w", results[0].Lon, err)
	}

	return lat, lon, nil
}
