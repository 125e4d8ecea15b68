package location

import (
	"context"
	"errors"
	"testing"
)

type fakeGeocoder struct {
	byName map[string]Location
	byZip  map[string]Location
}

func (f *fakeGeocoder) Geocode(_ context.Context, query string) (Location, error) {
	loc, ok := f.byName[query]
	if !ok {
		return Location{}, ErrNotFound
	}
	return loc, nil
}

func (f *fakeGeocoder) GeocodePostal(_ context.Context, code, _ string) (Location, error) {
	loc, ok := f.byZip[code]
	if !ok {
		return Location{}, ErrNotFound
	}
	return loc, nil
}

type fakeIPLocator struct {
	loc Location
	err error
}

func (f *fakeIPLocator) Locate(_ context.Context) (Location, error) {
	return f.loc, f.err
}

func newTestResolver() *Resolver {
	return NewResolver(
		&fakeGeocoder{
			byName: map[string]Location{
				"Paris, France": {Latitude: 48.8566, Longitude: 2.3522, Name: "Paris"},
			},
			byZip: map[string]Location{
				"94043": {Latitude: 37.4056, Longitude: -122.0775, Name: "Mountain View, 94043"},
			},
		},
		&fakeIPLocator{loc: Location{Latitude: 37.3861, Longitude: -122.0839, Name: "Mountain View, California"}},
	)
}

func TestResolveByName(t *testing.T) {
	loc, err := newTestResolver().Resolve(context.Background(), Query{Mode: ModeName, Name: "Paris, France"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Name != "Paris" {
		t.Errorf("unexpected name %q", loc.Name)
	}
}

func TestResolveNameNotFound(t *testing.T) {
	_, err := newTestResolver().Resolve(context.Background(), Query{Mode: ModeName, Name: "Atlantis"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveByZip(t *testing.T) {
	loc, err := newTestResolver().Resolve(context.Background(), Query{Mode: ModeZip, Zip: "94043"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Longitude != -122.0775 {
		t.Errorf("unexpected longitude %v", loc.Longitude)
	}
}

func TestResolveCoordinates(t *testing.T) {
	loc, err := newTestResolver().Resolve(context.Background(), Query{Mode: ModeCoordinates, Lat: 78.22, Lon: 15.64})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Name != "78.2200, 15.6400" {
		t.Errorf("expected synthesized coordinate name, got %q", loc.Name)
	}
}

func TestResolveCoordinatesOutOfRange(t *testing.T) {
	cases := []Query{
		{Mode: ModeCoordinates, Lat: 91, Lon: 0},
		{Mode: ModeCoordinates, Lat: -90.01, Lon: 0},
		{Mode: ModeCoordinates, Lat: 0, Lon: 180.5},
		{Mode: ModeCoordinates, Lat: 0, Lon: -181},
	}
	for _, q := range cases {
		if _, err := newTestResolver().Resolve(context.Background(), q); !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("coordinates %v, %v: expected ErrInvalidCoordinates, got %v", q.Lat, q.Lon, err)
		}
	}
}

func TestResolveDefaultsToAuto(t *testing.T) {
	loc, err := newTestResolver().Resolve(context.Background(), Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Name != "Mountain View, California" {
		t.Errorf("expected IP locator result, got %q", loc.Name)
	}
}

func TestResolveAutoUnavailable(t *testing.T) {
	r := NewResolver(&fakeGeocoder{}, &fakeIPLocator{err: errors.New("connection refused")})
	_, err := r.Resolve(context.Background(), Query{Mode: ModeAuto})
	if !errors.Is(err, ErrGeolocationUnavailable) {
		t.Fatalf("expected ErrGeolocationUnavailable, got %v", err)
	}
}
