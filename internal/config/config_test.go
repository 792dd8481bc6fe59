package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "ro", cfg.AcceptLanguage)
	assert.Empty(t, cfg.LocationIQKey)
	assert.Contains(t, cfg.CacheFile, ".foaieparcurs_cache.json")
	assert.Equal(t, time.Second, cfg.RateLimitInterval)
	assert.Equal(t, 12*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, 6, cfg.GeocodeLimit)
	assert.Equal(t, 20*time.Second, cfg.RouteTimeout)
	assert.Equal(t, 2, cfg.RouteRetries)
	assert.Equal(t, 300*time.Millisecond, cfg.RouteRetryDelay)
	assert.Equal(t, "https://router.project-osrm.org", cfg.OSRMURL)
	assert.Equal(t, "FoaieParcurs/1.0 (no-contact)", cfg.UserAgent)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CONTACT_EMAIL", "ops@example.com")
	t.Setenv("ACCEPT_LANGUAGE", "en")
	t.Setenv("LOCATIONIQ_KEY", "pk.test")
	t.Setenv("CACHE_FILE", "/tmp/cache.json")
	t.Setenv("RATE_LIMIT_INTERVAL", "2s")
	t.Setenv("GEOCODE_TIMEOUT", "5s")
	t.Setenv("GEOCODE_LIMIT", "3")
	t.Setenv("OSRM_URL", "http://localhost:5000")
	t.Setenv("ROUTE_RETRIES", "4")
	t.Setenv("ROUTE_RETRY_DELAY", "100ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "en", cfg.AcceptLanguage)
	assert.Equal(t, "pk.test", cfg.LocationIQKey)
	assert.Equal(t, "/tmp/cache.json", cfg.CacheFile)
	assert.Equal(t, 2*time.Second, cfg.RateLimitInterval)
	assert.Equal(t, 5*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, 3, cfg.GeocodeLimit)
	assert.Equal(t, "http://localhost:5000", cfg.OSRMURL)
	assert.Equal(t, 4, cfg.RouteRetries)
	assert.Equal(t, 100*time.Millisecond, cfg.RouteRetryDelay)
	assert.Equal(t, "FoaieParcurs/1.0 (mailto:ops@example.com)", cfg.UserAgent)
}

func TestLoad_LocationIQTokenAlias(t *testing.T) {
	t.Setenv("LOCATIONIQ_TOKEN", "pk.alias")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "pk.alias", cfg.LocationIQKey)
}

func TestLoad_KeyWinsOverTokenAlias(t *testing.T) {
	t.Setenv("LOCATIONIQ_KEY", "pk.key")
	t.Setenv("LOCATIONIQ_TOKEN", "pk.alias")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "pk.key", cfg.LocationIQKey)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("RATE_LIMIT_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_INTERVAL")
}

func TestLoad_NegativeTimeout(t *testing.T) {
	t.Setenv("GEOCODE_TIMEOUT", "-5s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOCODE_TIMEOUT")
}

func TestLoad_InvalidGeocodeLimit(t *testing.T) {
	t.Setenv("GEOCODE_LIMIT", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOCODE_LIMIT")
}

func TestLoad_GeocodeLimitTooLarge(t *testing.T) {
	t.Setenv("GEOCODE_LIMIT", "999")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOCODE_LIMIT")
}
