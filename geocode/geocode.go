// Package geocode resolves coordinates to human-readable addresses. Lookup
// failures must never block a report write; callers fall back to raw
// coordinates.
package geocode

import (
	"context"
	"fmt"
)

type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// Offline formats raw coordinates without any network call. It is the
// fallback implementation and never fails.
type Offline struct{}

func (Offline) ReverseGeocode(_ context.Context, lat, lng float64) (string, error) {
	return fmt.Sprintf("%.5f, %.5f", lat, lng), nil
}
