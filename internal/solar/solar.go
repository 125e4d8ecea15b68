// Package solar computes sunrise, sunset and daylight duration via the
// astral library (a port of the Python package of the same name).
package solar

import (
	"errors"
	"fmt"
	"time"

	"github.com/sj14/astral/pkg/astral"

	"github.com/laventura/daylight/internal/dates"
	"github.com/laventura/daylight/internal/location"
)

// ErrComputation is returned when the astronomical collaborator fails for a
// reason other than polar day or night.
var ErrComputation = errors.New("solar computation failed")

// sunHorizon is the apparent-altitude threshold for sunrise/sunset: the sun's
// center at -0.833 degrees (refraction plus solar radius).
const sunHorizon = -0.833

// Marker flags dates without a sunrise/sunset at the location.
type Marker string

const (
	MarkerNone     Marker = ""
	MarkerAllDay   Marker = "all_day"
	MarkerAllNight Marker = "all_night"
)

// Result holds everything one invocation computed. Sunrise and Sunset are
// zero when Marker is set. Dawn, Noon and Dusk are zero when the collaborator
// could not produce them.
type Result struct {
	Date     dates.Date
	Location location.Location
	Zone     string

	Sunrise  time.Time
	Sunset   time.Time
	Daylight time.Duration
	Marker   Marker

	Dawn time.Time // civil dawn
	Noon time.Time // solar noon
	Dusk time.Time // civil dusk
}

// Compute obtains solar events for the date and location, localized to zone.
func Compute(date dates.Date, loc location.Location, zone string) (Result, error) {
	tz, err := time.LoadLocation(zone)
	if err != nil {
		return Result{}, fmt.Errorf("%w: unknown zone %q: %v", ErrComputation, zone, err)
	}

	day := date.In(tz)
	observer := astral.Observer{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}

	res := Result{
		Date:     date,
		Location: loc,
		Zone:     zone,
	}

	sunrise, riseErr := astral.Sunrise(observer, day)
	sunset, setErr := astral.Sunset(observer, day)
	if riseErr != nil || setErr != nil {
		// astral refuses when the sun never crosses the horizon; the
		// elevation at solar noon decides which side of the horizon it
		// stays on.
		noon := astral.Noon(observer, day)
		res.Noon = noon.In(tz)
		if astral.Elevation(observer, noon, true) >= sunHorizon {
			res.Marker = MarkerAllDay
			res.Daylight = 24 * time.Hour
		} else {
			res.Marker = MarkerAllNight
			res.Noon = time.Time{} // the sun is down even at transit
		}
		return res, nil
	}

	res.Sunrise = sunrise.In(tz)
	res.Sunset = sunset.In(tz)
	res.Daylight = sunset.Sub(sunrise)
	if res.Daylight < 0 {
		return Result{}, fmt.Errorf("%w: sunset %v precedes sunrise %v", ErrComputation, sunset, sunrise)
	}

	res.Noon = astral.Noon(observer, day).In(tz)

	// Civil twilight can be absent at high latitudes even when the sun
	// rises and sets; leave the bounds zero rather than fabricate them.
	if dawn, err := astral.Dawn(observer, day, astral.DepressionCivil); err == nil {
		res.Dawn = dawn.In(tz)
	}
	if dusk, err := astral.Dusk(observer, day, astral.DepressionCivil); err == nil {
		res.Dusk = dusk.In(tz)
	}

	return res, nil
}
