package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	httpapi "github.com/laventura/daylight/internal/api/http"
	"github.com/laventura/daylight/internal/config"
	"github.com/laventura/daylight/internal/dates"
	"github.com/laventura/daylight/internal/location"
	"github.com/laventura/daylight/internal/location/providers"
	"github.com/laventura/daylight/internal/output"
	"github.com/laventura/daylight/internal/report"
	"github.com/laventura/daylight/internal/tzlookup"
)

func main() {
	log.SetFlags(0)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	date      string
	tomorrow  bool
	yesterday bool
	dayAfter  bool

	location  string
	zipcode   string
	country   string
	latitude  float64
	longitude float64

	jsonOut bool
	brief   bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "daylight",
		Short: "Report sunrise, sunset and daylight duration for a date and location",
		Long: `daylight reports sunrise, sunset and daylight duration for a given date
and location. Without a location flag it geolocates you by IP address;
without a date flag it reports today.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.date, "date", "d", "", "date in YYYY-MM-DD (or today, tomorrow, yesterday, day-after)")
	cmd.Flags().BoolVarP(&flags.tomorrow, "tomorrow", "t", false, "use tomorrow's date")
	cmd.Flags().BoolVarP(&flags.yesterday, "yesterday", "y", false, "use yesterday's date")
	cmd.Flags().BoolVar(&flags.dayAfter, "day-after", false, "use the day after tomorrow")

	cmd.Flags().StringVarP(&flags.location, "location", "l", "", "location as 'City, Country' or 'City, State'")
	cmd.Flags().StringVarP(&flags.zipcode, "zipcode", "z", "", "location by ZIP/postal code")
	cmd.Flags().StringVar(&flags.country, "country", "", "country hint for --zipcode")
	cmd.Flags().Float64Var(&flags.latitude, "latitude", 0, "latitude coordinate")
	cmd.Flags().Float64Var(&flags.longitude, "longitude", 0, "longitude coordinate")

	cmd.Flags().BoolVarP(&flags.jsonOut, "json", "j", false, "output in JSON format")
	cmd.Flags().BoolVarP(&flags.brief, "brief", "b", false, "output only the daylight duration")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "output detailed information")

	cmd.MarkFlagsMutuallyExclusive("date", "tomorrow", "yesterday", "day-after")
	cmd.MarkFlagsMutuallyExclusive("location", "zipcode", "latitude")
	cmd.MarkFlagsMutuallyExclusive("location", "zipcode", "longitude")
	cmd.MarkFlagsRequiredTogether("latitude", "longitude")
	cmd.MarkFlagsMutuallyExclusive("json", "brief", "verbose")

	cmd.AddCommand(newServeCmd())

	return cmd
}

func runReport(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	date, err := dates.Resolve(flags.date, shortcutFrom(flags), time.Now())
	if err != nil {
		return err
	}

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	res, err := svc.Build(cmd.Context(), date, locationQueryFrom(cmd, flags))
	if err != nil {
		return err
	}

	out, err := output.Render(res, outputModeFrom(flags))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// buildService assembles the resolution pipeline shared by the one-shot
// report and serve mode.
func buildService(cfg *config.AppConfig) (*report.Service, error) {
	// Shared HTTP client for outbound collaborator calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var geocoder location.Geocoder
	if cfg.GoogleAPIKey != "" {
		geocoder = providers.NewGoogleGeocoder(cfg.GoogleAPIKey)
	} else {
		geocoder = providers.NewNominatimGeocoder(httpClient, cfg.NominatimBaseURL)
	}

	ip := providers.NewIPInfoLocator(httpClient, cfg.IPInfoBaseURL)

	zones, err := tzlookup.NewResolver()
	if err != nil {
		return nil, err
	}

	return report.NewService(location.NewResolver(geocoder, ip), zones), nil
}

func shortcutFrom(flags rootFlags) dates.Shortcut {
	switch {
	case flags.tomorrow:
		return dates.ShortcutTomorrow
	case flags.yesterday:
		return dates.ShortcutYesterday
	case flags.dayAfter:
		return dates.ShortcutDayAfter
	default:
		return dates.ShortcutNone
	}
}

func locationQueryFrom(cmd *cobra.Command, flags rootFlags) location.Query {
	switch {
	case flags.location != "":
		return location.Query{Mode: location.ModeName, Name: flags.location}
	case flags.zipcode != "":
		return location.Query{Mode: location.ModeZip, Zip: flags.zipcode, Country: flags.country}
	case cmd.Flags().Changed("latitude"):
		return location.Query{Mode: location.ModeCoordinates, Lat: flags.latitude, Lon: flags.longitude}
	default:
		return location.Query{Mode: location.ModeAuto}
	}
}

func outputModeFrom(flags rootFlags) output.Mode {
	switch {
	case flags.jsonOut:
		return output.ModeJSON
	case flags.brief:
		return output.ModeBrief
	case flags.verbose:
		return output.ModeVerbose
	default:
		return output.ModeHuman
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve daylight reports over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			svc, err := buildService(cfg)
			if err != nil {
				return err
			}

			return runServer(cfg, svc)
		},
	}
}

func runServer(cfg *config.AppConfig, svc *report.Service) error {
	app := fiber.New(fiber.Config{
		AppName:               "daylight",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "daylight",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, svc)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}

	return nil
}
