// Package tzlookup maps coordinates to IANA time zone identifiers using
// offline polygon data. Importing it grows the binary by the embedded
// boundary dataset.
package tzlookup

import (
	"errors"
	"fmt"

	"github.com/ringsaturn/tzf"

	"github.com/laventura/daylight/internal/location"
)

// ErrNoZone is returned when no zone covers the coordinates, e.g. over open
// ocean. Callers are expected to degrade to UTC rather than abort.
var ErrNoZone = errors.New("no time zone found for coordinates")

// Resolver resolves time zone identifiers from coordinates.
type Resolver struct {
	finder tzf.F
}

// NewResolver loads the default boundary dataset. The load is the expensive
// part; keep one Resolver per process.
func NewResolver() (*Resolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("loading time zone data: %w", err)
	}
	return &Resolver{finder: finder}, nil
}

// Resolve returns the IANA zone identifier covering the location.
func (r *Resolver) Resolve(loc location.Location) (string, error) {
	name := r.finder.GetTimezoneName(loc.Longitude, loc.Latitude)
	if name == "" {
		return "", fmt.Errorf("%w: %.4f, %.4f", ErrNoZone, loc.Latitude, loc.Longitude)
	}
	return name, nil
}
