package geocode

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/cache"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/domain"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/observability"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/ratelimit"
)

// geocodeChannel is the rate-limit channel shared by all providers.
const geocodeChannel = "geocode"

// Resolver walks the provider chain, consulting the persistent cache first
// and spacing every outbound call through the rate limiter.
type Resolver struct {
	providers []Provider
	store     *cache.Store
	limiter   *ratelimit.Limiter
	limit     int
	clock     clockwork.Clock
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewResolver creates a Resolver over the given provider chain. limit caps
// the number of candidates requested per query and is part of the cache
// key. A nil clock uses real time.
func NewResolver(providers []Provider, store *cache.Store, limiter *ratelimit.Limiter, limit int, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Resolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{
		providers: providers,
		store:     store,
		limiter:   limiter,
		limit:     limit,
		clock:     clock,
		metrics:   metrics,
		logger:    logger,
	}
}

// Resolve turns a free-text query into coordinate candidates. A returned
// error is informational only: it always accompanies an empty list, its
// text describes why every provider failed, and it is meant for display
// rather than control flow. Resolve never panics and never aborts the
// caller's work.
func (r *Resolver) Resolve(ctx context.Context, query string) ([]domain.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	// A cache hit short-circuits everything, including the rate limiter.
	key := cache.Key(query, r.limit)
	if cands, ok := r.store.Get(key); ok {
		r.metrics.GeocodeCacheLookups.WithLabelValues("hit").Inc()
		return cands, nil
	}
	r.metrics.GeocodeCacheLookups.WithLabelValues("miss").Inc()

	var lastErr error
	for _, p := range r.providers {
		if !p.Available() {
			continue
		}

		cands, err := r.search(ctx, p, query)
		if err != nil {
			lastErr = err
			continue
		}
		if len(cands) == 0 {
			continue
		}

		r.store.Put(key, cands)
		r.store.Flush()
		return cands, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("geocoding is currently unavailable, providers tried: %w", lastErr)
	}
	return nil, nil
}

// search runs one provider's attempt budget. A successful call with zero
// hits ends the budget early; only classified call failures are retried.
func (r *Resolver) search(ctx context.Context, p Provider, query string) ([]domain.Candidate, error) {
	var lastErr error
	for attempt := 0; attempt < p.Attempts(); attempt++ {
		if attempt > 0 {
			if !sleepWithContext(ctx, r.clock, time.Duration(attempt)*p.Backoff()) {
				return nil, ctx.Err()
			}
		}
		if err := r.limiter.Wait(ctx, geocodeChannel); err != nil {
			return nil, err
		}

		start := r.clock.Now()
		cands, err := p.Search(ctx, query, r.limit)
		r.metrics.GeocodeAPIDuration.WithLabelValues(p.Name()).Observe(r.clock.Since(start).Seconds())

		if err != nil {
			r.metrics.GeocodeRequests.WithLabelValues(p.Name(), "error").Inc()
			r.logger.Warn("geocode provider call failed",
				"provider", p.Name(),
				"attempt", attempt+1,
				"error", err,
			)
			lastErr = err
			continue
		}

		if len(cands) == 0 {
			r.metrics.GeocodeRequests.WithLabelValues(p.Name(), "empty").Inc()
			return nil, nil
		}

		r.metrics.GeocodeRequests.WithLabelValues(p.Name(), "success").Inc()
		return cands, nil
	}
	return nil, lastErr
}

func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
