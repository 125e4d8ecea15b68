package solar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laventura/daylight/internal/dates"
	"github.com/laventura/daylight/internal/location"
)

var (
	paris    = location.Location{Latitude: 48.8566, Longitude: 2.3522, Name: "Paris, France"}
	svalbard = location.Location{Latitude: 78.22, Longitude: 15.64, Name: "78.2200, 15.6400"}
	solstice = dates.Date{Year: 2025, Month: time.June, Day: 21}
)

func TestComputeParisSummerSolstice(t *testing.T) {
	res, err := Compute(solstice, paris, "Europe/Paris")
	require.NoError(t, err)

	assert.Equal(t, MarkerNone, res.Marker)
	assert.Equal(t, "Europe/Paris", res.Sunrise.Location().String())

	// Northern-hemisphere summer: early sunrise, late sunset, long day.
	assert.Less(t, res.Sunrise.Hour(), 12, "sunrise should be before noon local")
	assert.GreaterOrEqual(t, res.Sunset.Hour(), 18, "sunset should be after 18:00 local")
	assert.Greater(t, res.Daylight, 14*time.Hour)

	assert.Equal(t, res.Sunset.Sub(res.Sunrise), res.Daylight)
	assert.False(t, res.Noon.IsZero())
	assert.False(t, res.Dawn.IsZero())
	assert.False(t, res.Dusk.IsZero())
	assert.True(t, res.Dawn.Before(res.Sunrise))
	assert.True(t, res.Dusk.After(res.Sunset))
}

func TestComputeSvalbardPolarDay(t *testing.T) {
	res, err := Compute(solstice, svalbard, "Arctic/Longyearbyen")
	require.NoError(t, err)

	assert.Equal(t, MarkerAllDay, res.Marker)
	assert.Equal(t, 24*time.Hour, res.Daylight)
	assert.True(t, res.Sunrise.IsZero())
	assert.True(t, res.Sunset.IsZero())
	assert.False(t, res.Noon.IsZero(), "polar day still has a solar noon")
}

func TestComputeSvalbardPolarNight(t *testing.T) {
	midwinter := dates.Date{Year: 2025, Month: time.December, Day: 21}
	res, err := Compute(midwinter, svalbard, "Arctic/Longyearbyen")
	require.NoError(t, err)

	assert.Equal(t, MarkerAllNight, res.Marker)
	assert.Equal(t, time.Duration(0), res.Daylight)
	assert.True(t, res.Sunrise.IsZero())
	assert.True(t, res.Sunset.IsZero())
}

func TestComputeUnknownZone(t *testing.T) {
	_, err := Compute(solstice, paris, "Nowhere/Invalid")
	require.ErrorIs(t, err, ErrComputation)
}

func TestComputeDaylightNonNegative(t *testing.T) {
	quito := location.Location{Latitude: -0.1807, Longitude: -78.4678, Name: "Quito"}
	for _, d := range []dates.Date{
		{Year: 2025, Month: time.March, Day: 20},
		{Year: 2025, Month: time.June, Day: 21},
		{Year: 2025, Month: time.December, Day: 21},
	} {
		res, err := Compute(d, quito, "America/Guayaquil")
		require.NoError(t, err, "date %s", d)
		assert.GreaterOrEqual(t, res.Daylight, time.Duration(0), "date %s", d)
	}
}
