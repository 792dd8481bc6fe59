package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Default endpoints of the external services. Overridable via environment
// so tests and self-hosted instances can point elsewhere.
const (
	defaultLocationIQURL = "https://us1.locationiq.com/v1/search"
	defaultNominatimURL  = "https://nominatim.openstreetmap.org/search"
	defaultMapsCoURL     = "https://geocode.maps.co/search"
	defaultOSRMURL       = "https://router.project-osrm.org"
)

// Config holds all engine settings, populated from environment variables.
// Nothing in the engine reads ambient state; every component receives what
// it needs from here.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// ContactEmail feeds the outbound User-Agent; the public geocoding
	// services ask for a way to reach heavy users.
	ContactEmail string
	UserAgent    string

	AcceptLanguage string
	LocationIQKey  string

	CacheFile string

	RateLimitInterval time.Duration
	GeocodeTimeout    time.Duration
	GeocodeLimit      int

	LocationIQURL string
	NominatimURL  string
	MapsCoURL     string

	OSRMURL         string
	RouteTimeout    time.Duration
	RouteRetries    int
	RouteRetryDelay time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	rateInterval, err := parseDuration("RATE_LIMIT_INTERVAL", time.Second)
	if err != nil {
		return nil, err
	}
	geocodeTimeout, err := parseDuration("GEOCODE_TIMEOUT", 12*time.Second)
	if err != nil {
		return nil, err
	}
	routeTimeout, err := parseDuration("ROUTE_TIMEOUT", 20*time.Second)
	if err != nil {
		return nil, err
	}
	retryDelay, err := parseDuration("ROUTE_RETRY_DELAY", 300*time.Millisecond)
	if err != nil {
		return nil, err
	}

	geocodeLimit, err := parseInt("GEOCODE_LIMIT", 6, 1, 50)
	if err != nil {
		return nil, err
	}
	routeRetries, err := parseInt("ROUTE_RETRIES", 2, 1, 10)
	if err != nil {
		return nil, err
	}

	contactEmail := os.Getenv("CONTACT_EMAIL")

	// Two names for the same credential, kept for compatibility with
	// existing deployments.
	locationIQKey := os.Getenv("LOCATIONIQ_KEY")
	if locationIQKey == "" {
		locationIQKey = os.Getenv("LOCATIONIQ_TOKEN")
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ContactEmail: contactEmail,
		UserAgent:    userAgent(contactEmail),

		AcceptLanguage: envOrDefault("ACCEPT_LANGUAGE", "ro"),
		LocationIQKey:  locationIQKey,

		CacheFile: envOrDefault("CACHE_FILE", defaultCachePath()),

		RateLimitInterval: rateInterval,
		GeocodeTimeout:    geocodeTimeout,
		GeocodeLimit:      geocodeLimit,

		LocationIQURL: envOrDefault("LOCATIONIQ_URL", defaultLocationIQURL),
		NominatimURL:  envOrDefault("NOMINATIM_URL", defaultNominatimURL),
		MapsCoURL:     envOrDefault("MAPSCO_URL", defaultMapsCoURL),

		OSRMURL:         envOrDefault("OSRM_URL", defaultOSRMURL),
		RouteTimeout:    routeTimeout,
		RouteRetries:    routeRetries,
		RouteRetryDelay: retryDelay,
	}

	if cfg.CacheFile == "" {
		return nil, fmt.Errorf("CACHE_FILE must not be empty")
	}

	return cfg, nil
}

func userAgent(contactEmail string) string {
	contact := "no-contact"
	if contactEmail != "" {
		contact = "mailto:" + contactEmail
	}
	return fmt.Sprintf("FoaieParcurs/1.0 (%s)", contact)
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".foaieparcurs_cache.json"
	}
	return filepath.Join(home, ".foaieparcurs_cache.json")
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func parseDuration(name string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return d, nil
}

func parseInt(name string, def, minVal, maxVal int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < minVal || n > maxVal {
		return 0, fmt.Errorf("invalid %s: %q (want %d-%d)", name, s, minVal, maxVal)
	}
	return n, nil
}
