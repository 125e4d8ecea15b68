package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/laventura/daylight/internal/location"
)

func TestNominatimGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Paris, France" {
			t.Errorf("unexpected query %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != nominatimUserAgent {
			t.Errorf("unexpected User-Agent %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"48.8588897","lon":"2.3200410","display_name":"Paris, Ile-de-France, France"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.Client(), srv.URL)
	loc, err := g.Geocode(context.Background(), "Paris, France")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loc.Name != "Paris" {
		t.Errorf("expected name Paris, got %q", loc.Name)
	}
	if loc.Latitude < 48.8 || loc.Latitude > 48.9 {
		t.Errorf("unexpected latitude %v", loc.Latitude)
	}
	if loc.Longitude < 2.3 || loc.Longitude > 2.4 {
		t.Errorf("unexpected longitude %v", loc.Longitude)
	}
}

func TestNominatimGeocodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.Client(), srv.URL)
	_, err := g.Geocode(context.Background(), "Nowhereville Atlantis")
	if !errors.Is(err, location.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNominatimGeocodePostal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("postalcode"); got != "94043" {
			t.Errorf("unexpected postalcode %q", got)
		}
		if got := q.Get("country"); got != "US" {
			t.Errorf("unexpected country %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"37.4056","lon":"-122.0775","display_name":"Mountain View, Santa Clara County, California"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.Client(), srv.URL)
	loc, err := g.GeocodePostal(context.Background(), "94043", "US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loc.Name != "Mountain View, 94043" {
		t.Errorf("expected postal code appended to name, got %q", loc.Name)
	}
}

func TestNominatimServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.Client(), srv.URL)
	if _, err := g.Geocode(context.Background(), "Paris"); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}
