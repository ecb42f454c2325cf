package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"communitypulse/internal/domain"
)

const nominatimURL = "https://nominatim.openstreetmap.org/search"

type nominatimGeocoder struct {
	client    *http.Client
	userAgent string
}

// NewNominatimGeocoder returns a Geocoder backed by the OpenStreetMap
// Nominatim API. Nominatim requires a descriptive User-Agent.
func NewNominatimGeocoder(client *http.Client, userAgent string) domain.Geocoder {
	if client == nil {
		client = http.DefaultClient
	}
	return &nominatimGeocoder{client: client, userAgent: userAgent}
}

func (g *nominatimGeocoder) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nominatimURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim api returned status: %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}
	return &domain.Coordinates{Latitude: lat, Longitude: lng}, nil
}
