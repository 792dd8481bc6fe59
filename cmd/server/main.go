package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/banciumihaicatalin-design/FoaieParcurs/internal/adapter/http"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/cache"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/config"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/geocode"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/observability"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/ratelimit"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/route"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/trip"
)

func main() {
	// Local development convenience; the file is optional.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store := cache.New(cfg.CacheFile, logger)
	store.Load()
	logger.Info("candidate cache loaded", "path", cfg.CacheFile, "entries", store.Len())

	limiter := ratelimit.New(cfg.RateLimitInterval, nil)

	providers := []geocode.Provider{
		geocode.NewLocationIQ(cfg.LocationIQKey, cfg.LocationIQURL, cfg.UserAgent, cfg.AcceptLanguage, cfg.GeocodeTimeout),
		geocode.NewNominatim(cfg.NominatimURL, cfg.UserAgent, cfg.AcceptLanguage, cfg.GeocodeTimeout),
		geocode.NewMapsCo(cfg.MapsCoURL, cfg.UserAgent, cfg.GeocodeTimeout),
	}
	resolver := geocode.NewResolver(providers, store, limiter, cfg.GeocodeLimit, nil, metrics, logger)

	router := route.NewClient(cfg.OSRMURL, cfg.UserAgent, cfg.RouteTimeout, cfg.RouteRetries, cfg.RouteRetryDelay, limiter, nil, metrics, logger)
	builder := trip.NewBuilder(router, metrics, logger)

	srv := httpadapter.NewServer(cfg.HTTPAddr, resolver, builder, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	store.Flush()

	logger.Info("shutdown complete")
}
