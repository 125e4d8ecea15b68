package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/laventura/daylight/internal/location"
)

const nominatimUserAgent = "daylight-cli/1.0"

// NominatimGeocoder implements the location.Geocoder interface against the
// OpenStreetMap Nominatim search API. No API key is required.
type NominatimGeocoder struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewNominatimGeocoder(client *http.Client, baseURL string) *NominatimGeocoder {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nominatim",
		MaxRequests: 5,
	})

	return &NominatimGeocoder{
		name:    "nominatim",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{Client: client},
		circuit: cb,
	}
}

func (g *NominatimGeocoder) Name() string {
	return g.name
}

// Geocode resolves a free-text place query to its best match.
func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (location.Location, error) {
	values := url.Values{}
	values.Set("q", query)

	loc, err := g.search(ctx, values)
	if err != nil {
		return location.Location{}, err
	}
	if loc == nil {
		return location.Location{}, fmt.Errorf("%w: %q", location.ErrNotFound, query)
	}

	// Very short fragments from display_name are less readable than the input.
	if len(loc.Name) < 3 {
		loc.Name = query
	}
	return *loc, nil
}

// GeocodePostal resolves a postal code, optionally narrowed by a country hint.
func (g *NominatimGeocoder) GeocodePostal(ctx context.Context, code, country string) (location.Location, error) {
	values := url.Values{}
	values.Set("postalcode", code)
	if country != "" {
		values.Set("country", country)
	}

	loc, err := g.search(ctx, values)
	if err != nil {
		return location.Location{}, err
	}
	if loc == nil {
		return location.Location{}, fmt.Errorf("%w: postal code %q", location.ErrNotFound, code)
	}

	loc.Name = fmt.Sprintf("%s, %s", loc.Name, code)
	return *loc, nil
}

// search runs one Nominatim query and returns the first match, or nil when
// the service has none.
func (g *NominatimGeocoder) search(ctx context.Context, values url.Values) (*location.Location, error) {
	buildRequest := func() (*http.Request, error) {
		values.Set("format", "json")
		values.Set("limit", "1")

		u := fmt.Sprintf("%s/search?%s", g.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		// Nominatim's usage policy requires an identifying User-Agent.
		req.Header.Set("User-Agent", nominatimUserAgent)
		return req, nil
	}

	resp, err := doRequest(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("nominatim response: %w", err)
	}

	if len(payload) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(payload[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim latitude %q: %w", payload[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(payload[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim longitude %q: %w", payload[0].Lon, err)
	}

	// display_name is a long comma-joined chain; the leading segment is the
	// place itself.
	name := payload[0].DisplayName
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)

	return &location.Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      name,
	}, nil
}
