package location

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the geocoder has no match for the query.
	ErrNotFound = errors.New("no matching location")

	// ErrGeolocationUnavailable is returned when the caller's position cannot be
	// determined from their network address.
	ErrGeolocationUnavailable = errors.New("could not determine location from network address")

	// ErrInvalidCoordinates is returned for coordinates outside the valid ranges.
	ErrInvalidCoordinates = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
)

// Location is a resolved place: coordinates plus a display name.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

// Geocoder abstracts a forward-geocoding service (e.g. Nominatim, Google).
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Location, error)
	GeocodePostal(ctx context.Context, code, country string) (Location, error)
}

// IPLocator abstracts an IP-based geolocation service (e.g. ipinfo.io).
type IPLocator interface {
	Locate(ctx context.Context) (Location, error)
}

// Mode selects how a Query identifies a place.
type Mode int

const (
	ModeAuto Mode = iota
	ModeName
	ModeZip
	ModeCoordinates
)

// Query carries the location input of a single invocation. Exactly the fields
// relevant to Mode are read; the rest are ignored.
type Query struct {
	Mode    Mode
	Name    string
	Zip     string
	Country string // optional hint for ModeZip
	Lat     float64
	Lon     float64
}

// Resolver turns a Query into a Location using the configured collaborators.
type Resolver struct {
	geocoder Geocoder
	ip       IPLocator
}

// NewResolver creates a Resolver.
func NewResolver(geocoder Geocoder, ip IPLocator) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		ip:       ip,
	}
}

// Resolve dispatches on the query mode. ModeAuto asks the IP locator,
// ModeName and ModeZip ask the geocoder, ModeCoordinates only validates.
func (r *Resolver) Resolve(ctx context.Context, q Query) (Location, error) {
	switch q.Mode {
	case ModeName:
		return r.geocoder.Geocode(ctx, q.Name)

	case ModeZip:
		return r.geocoder.GeocodePostal(ctx, q.Zip, q.Country)

	case ModeCoordinates:
		if q.Lat < -90 || q.Lat > 90 || q.Lon < -180 || q.Lon > 180 {
			return Location{}, fmt.Errorf("%w: got %g, %g", ErrInvalidCoordinates, q.Lat, q.Lon)
		}
		return Location{
			Latitude:  q.Lat,
			Longitude: q.Lon,
			Name:      fmt.Sprintf("%.4f, %.4f", q.Lat, q.Lon),
		}, nil

	default:
		loc, err := r.ip.Locate(ctx)
		if err != nil {
			if errors.Is(err, ErrGeolocationUnavailable) {
				return Location{}, err
			}
			return Location{}, fmt.Errorf("%w: %v", ErrGeolocationUnavailable, err)
		}
		return loc, nil
	}
}
