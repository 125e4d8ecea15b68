// Package output renders a solar result in the supported presentation modes.
package output

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/laventura/daylight/internal/solar"
)

// Mode selects the presentation of a result.
type Mode int

const (
	ModeHuman Mode = iota
	ModeJSON
	ModeBrief
	ModeVerbose
)

const (
	clockLayout = "03:04 PM"
	dateLayout  = "Monday, January 2, 2006"
)

// Report is the machine-readable shape of a result, shared by the json output
// mode and the HTTP API.
type Report struct {
	Date         string        `json:"date"`
	Location     Place         `json:"location"`
	Sunlight     Sunlight      `json:"sunlight"`
	Astronomical *Astronomical `json:"astronomical,omitempty"`
	Marker       string        `json:"marker,omitempty"`
}

type Place struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

type Sunlight struct {
	Sunrise       string  `json:"sunrise,omitempty"`
	Sunset        string  `json:"sunset,omitempty"`
	SunriseTime   string  `json:"sunrise_time,omitempty"`
	SunsetTime    string  `json:"sunset_time,omitempty"`
	Duration      string  `json:"duration"`
	DurationHours float64 `json:"duration_hours"`
}

type Astronomical struct {
	Dawn string `json:"dawn,omitempty"`
	Noon string `json:"noon,omitempty"`
	Dusk string `json:"dusk,omitempty"`
}

// NewReport converts a result into its serializable form.
func NewReport(r solar.Result) Report {
	rep := Report{
		Date: r.Date.String(),
		Location: Place{
			Name:      r.Location.Name,
			Latitude:  r.Location.Latitude,
			Longitude: r.Location.Longitude,
			Timezone:  r.Zone,
		},
		Sunlight: Sunlight{
			Duration:      FormatDuration(r.Daylight),
			DurationHours: math.Round(r.Daylight.Hours()*100) / 100,
		},
		Marker: string(r.Marker),
	}

	if r.Marker == solar.MarkerNone {
		rep.Sunlight.Sunrise = r.Sunrise.Format(time.RFC3339)
		rep.Sunlight.Sunset = r.Sunset.Format(time.RFC3339)
		rep.Sunlight.SunriseTime = r.Sunrise.Format(clockLayout)
		rep.Sunlight.SunsetTime = r.Sunset.Format(clockLayout)
	}

	if !r.Dawn.IsZero() || !r.Noon.IsZero() || !r.Dusk.IsZero() {
		astro := &Astronomical{}
		if !r.Dawn.IsZero() {
			astro.Dawn = r.Dawn.Format(time.RFC3339)
		}
		if !r.Noon.IsZero() {
			astro.Noon = r.Noon.Format(time.RFC3339)
		}
		if !r.Dusk.IsZero() {
			astro.Dusk = r.Dusk.Format(time.RFC3339)
		}
		rep.Astronomical = astro
	}

	return rep
}

// Render produces the final output string for the requested mode.
func Render(r solar.Result, mode Mode) (string, error) {
	switch mode {
	case ModeJSON:
		raw, err := json.MarshalIndent(NewReport(r), "", "  ")
		if err != nil {
			return "", err
		}
		return string(raw), nil

	case ModeBrief:
		return FormatDuration(r.Daylight), nil

	case ModeVerbose:
		return renderHuman(r, true), nil

	default:
		return renderHuman(r, false), nil
	}
}

func renderHuman(r solar.Result, verbose bool) string {
	var b strings.Builder

	day := r.Date.In(time.UTC)
	fmt.Fprintf(&b, "Daylight for %s on %s\n", r.Location.Name, day.Format(dateLayout))

	switch r.Marker {
	case solar.MarkerAllDay:
		b.WriteString("  The sun stays above the horizon all day.\n")
	case solar.MarkerAllNight:
		b.WriteString("  The sun stays below the horizon all day.\n")
	default:
		fmt.Fprintf(&b, "  Sunrise:  %s\n", r.Sunrise.Format(clockLayout))
		fmt.Fprintf(&b, "  Sunset:   %s\n", r.Sunset.Format(clockLayout))
	}
	fmt.Fprintf(&b, "  Daylight: %s", FormatDuration(r.Daylight))

	if !verbose {
		return b.String()
	}

	fmt.Fprintf(&b, "\n  Lat/Lon:  %.4f, %.4f\n", r.Location.Latitude, r.Location.Longitude)
	fmt.Fprintf(&b, "  Timezone: %s", r.Zone)

	if !r.Dawn.IsZero() || !r.Noon.IsZero() || !r.Dusk.IsZero() {
		b.WriteString("\n\nAstronomical:")
		if !r.Dawn.IsZero() {
			fmt.Fprintf(&b, "\n  Dawn: %s", r.Dawn.Format(clockLayout))
		}
		if !r.Noon.IsZero() {
			fmt.Fprintf(&b, "\n  Noon: %s", r.Noon.Format(clockLayout))
		}
		if !r.Dusk.IsZero() {
			fmt.Fprintf(&b, "\n  Dusk: %s", r.Dusk.Format(clockLayout))
		}
	}

	return b.String()
}

// FormatDuration renders an elapsed time as HH:MM:SS, e.g. "24:00:00" for a
// full polar day.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
