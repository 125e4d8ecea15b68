package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/laventura/daylight/internal/location"
)

// IPInfoLocator implements the location.IPLocator interface against the
// ipinfo.io API, which geolocates the caller's own address.
type IPInfoLocator struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewIPInfoLocator(client *http.Client, baseURL string) *IPInfoLocator {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ipinfo",
		MaxRequests: 5,
	})

	return &IPInfoLocator{
		name:    "ipinfo",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{Client: client},
		circuit: cb,
	}
}

func (l *IPInfoLocator) Name() string {
	return l.name
}

// Locate asks ipinfo.io where the caller is.
func (l *IPInfoLocator) Locate(ctx context.Context) (location.Location, error) {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, l.baseURL+"/json", nil)
	}

	resp, err := doRequest(ctx, l.httpCfg, l.circuit, buildRequest)
	if err != nil {
		return location.Location{}, fmt.Errorf("%w: %v", location.ErrGeolocationUnavailable, err)
	}
	defer resp.Body.Close()

	var payload struct {
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
		Loc     string `json:"loc"` // "lat,lon"
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return location.Location{}, fmt.Errorf("%w: %v", location.ErrGeolocationUnavailable, err)
	}

	lat, lon, err := parseLatLon(payload.Loc)
	if err != nil {
		return location.Location{}, fmt.Errorf("%w: %v", location.ErrGeolocationUnavailable, err)
	}

	name := payload.City
	if name == "" {
		name = "Unknown"
	}
	switch {
	case payload.Region != "":
		name = fmt.Sprintf("%s, %s", name, payload.Region)
	case payload.Country != "":
		name = fmt.Sprintf("%s, %s", name, payload.Country)
	}

	return location.Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      name,
	}, nil
}

func parseLatLon(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("response carries no usable coordinates: %q", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("latitude %q: %v", parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("longitude %q: %v", parts[1], err)
	}

	return lat, lon, nil
}
