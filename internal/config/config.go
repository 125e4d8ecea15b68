package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Collaborator endpoints. Overridable mainly so tests can point at
	// local servers; defaults are the public services.
	NominatimBaseURL string
	IPInfoBaseURL    string

	// GoogleAPIKey switches geocoding from Nominatim to the Google API.
	GoogleAPIKey string

	// HTTPTimeout bounds each outbound collaborator call.
	HTTPTimeout time.Duration

	// Port for serve mode.
	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.NominatimBaseURL = getenvDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	cfg.IPInfoBaseURL = getenvDefault("IPINFO_BASE_URL", "https://ipinfo.io")
	cfg.GoogleAPIKey = os.Getenv("GEOCODER_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "5s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
