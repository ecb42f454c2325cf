package domain

import "context"

// Coordinates is a geographic point resolved from a free-form location.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a free-form address to coordinates.
// A nil result with a nil error means the address had no match.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}
