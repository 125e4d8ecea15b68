// Package report sequences location, zone and solar resolution into one
// daylight result.
package report

import (
	"context"
	"log"

	"github.com/laventura/daylight/internal/dates"
	"github.com/laventura/daylight/internal/location"
	"github.com/laventura/daylight/internal/solar"
)

// ZoneResolver is the contract the time-zone collaborator must satisfy.
type ZoneResolver interface {
	Resolve(loc location.Location) (string, error)
}

// Service builds daylight reports. It is stateless and safe for concurrent
// use as long as its collaborators are.
type Service struct {
	locations *location.Resolver
	zones     ZoneResolver
}

// NewService creates a Service.
func NewService(locations *location.Resolver, zones ZoneResolver) *Service {
	return &Service{
		locations: locations,
		zones:     zones,
	}
}

// Build resolves the location, then the zone, then computes solar events.
// A failed zone lookup is not fatal: the result degrades to UTC with a
// warning on the log.
func (s *Service) Build(ctx context.Context, date dates.Date, q location.Query) (solar.Result, error) {
	loc, err := s.locations.Resolve(ctx, q)
	if err != nil {
		return solar.Result{}, err
	}

	zone, err := s.zones.Resolve(loc)
	if err != nil {
		log.Printf("WARN: time zone lookup failed for %.4f, %.4f (%v); falling back to UTC",
			loc.Latitude, loc.Longitude, err)
		zone = "UTC"
	}

	return solar.Compute(date, loc, zone)
}
