package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/laventura/daylight/internal/location"
)

// GoogleGeocoder implements the location.Geocoder interface on top of the
// Google Geocoding API via kelvins/geocoder. Selected instead of Nominatim
// when a Google API key is configured. The underlying client offers no
// context support, so the ctx arguments are ignored.
type GoogleGeocoder struct {
	name string
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	// kelvins/geocoder holds the key in package state.
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{name: "google"}
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

// Geocode resolves a free-text "City", "City, Country" or
// "City, State, Country" query.
func (g *GoogleGeocoder) Geocode(_ context.Context, query string) (location.Location, error) {
	addr := geocoder.Address{}
	parts := strings.Split(query, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch len(parts) {
	case 1:
		addr.City = parts[0]
	case 2:
		addr.City = parts[0]
		addr.Country = parts[1]
	default:
		addr.City = parts[0]
		addr.State = parts[1]
		addr.Country = parts[2]
	}

	loc, err := geocoder.Geocoding(addr)
	if err != nil {
		return location.Location{}, fmt.Errorf("%w: %q (%v)", location.ErrNotFound, query, err)
	}

	return location.Location{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Name:      strings.TrimSpace(query),
	}, nil
}

// GeocodePostal resolves a postal code, optionally narrowed by a country hint.
func (g *GoogleGeocoder) GeocodePostal(_ context.Context, code, country string) (location.Location, error) {
	addr := geocoder.Address{
		PostalCode: code,
		Country:    country,
	}

	loc, err := geocoder.Geocoding(addr)
	if err != nil {
		return location.Location{}, fmt.Errorf("%w: postal code %q (%v)", location.ErrNotFound, code, err)
	}

	name := code
	if country != "" {
		name = fmt.Sprintf("%s, %s", code, country)
	}

	return location.Location{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Name:      name,
	}, nil
}
