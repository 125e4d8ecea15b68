package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/laventura/daylight/internal/dates"
	"github.com/laventura/daylight/internal/location"
	"github.com/laventura/daylight/internal/output"
	"github.com/laventura/daylight/internal/report"
	"github.com/laventura/daylight/internal/solar"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *report.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/daylight", func(c *fiber.Ctx) error {
		req, err := parseDaylightQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		date, err := dates.Resolve(req.Date, dates.ShortcutNone, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := service.Build(c.Context(), date, req.toQuery())
		if err != nil {
			switch {
			case errors.Is(err, location.ErrNotFound):
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			case errors.Is(err, location.ErrInvalidCoordinates):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case errors.Is(err, solar.ErrComputation):
				return fiber.NewError(fiber.StatusInternalServerError, "failed to compute solar events")
			default:
				return fiber.NewError(fiber.StatusBadGateway, "failed to resolve location")
			}
		}

		return c.JSON(output.NewReport(res))
	})
}

// daylightQuery holds the query parameters of the daylight endpoint. The
// caller must name a place explicitly; IP auto-detection would geolocate the
// server, not the caller.
type daylightQuery struct {
	Location string   `validate:"omitempty,min=1"`
	Zipcode  string   `validate:"omitempty,min=1"`
	Country  string   `validate:"omitempty,min=2"`
	Lat      *float64 `validate:"omitempty,min=-90,max=90"`
	Lon      *float64 `validate:"omitempty,min=-180,max=180"`
	Date     string
}

func (q daylightQuery) toQuery() location.Query {
	switch {
	case q.Location != "":
		return location.Query{Mode: location.ModeName, Name: q.Location}
	case q.Zipcode != "":
		return location.Query{Mode: location.ModeZip, Zip: q.Zipcode, Country: q.Country}
	default:
		return location.Query{Mode: location.ModeCoordinates, Lat: *q.Lat, Lon: *q.Lon}
	}
}

func parseDaylightQuery(c *fiber.Ctx) (daylightQuery, error) {
	var q daylightQuery

	q.Location = c.Query("location")
	q.Zipcode = c.Query("zipcode")
	q.Country = c.Query("country")
	q.Date = c.Query("date")

	if latStr := c.Query("lat"); latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return q, errors.New("lat must be a number")
		}
		q.Lat = &lat
	}
	if lonStr := c.Query("lon"); lonStr != "" {
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return q, errors.New("lon must be a number")
		}
		q.Lon = &lon
	}

	modes := 0
	if q.Location != "" {
		modes++
	}
	if q.Zipcode != "" {
		modes++
	}
	if q.Lat != nil || q.Lon != nil {
		if q.Lat == nil || q.Lon == nil {
			return q, errors.New("lat and lon must be given together")
		}
		modes++
	}

	if modes == 0 {
		return q, errors.New("one of location, zipcode, or lat+lon is required")
	}
	if modes > 1 {
		return q, errors.New("location, zipcode, and lat+lon are mutually exclusive")
	}

	return q, nil
}
