// Package route computes point-to-point driving distances through an
// OSRM-compatible routing service.
package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/domain"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/observability"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/ratelimit"
)

// ErrNoRoute is returned when the routing service answers successfully but
// reports no drivable route between the two points.
var ErrNoRoute = errors.New("no route between points")

// routeChannel is the rate-limit channel for routing calls, independent
// from geocoding.
const routeChannel = "route"

// routeQuery requests the full path as GeoJSON so callers can draw the leg.
const routeQuery = "overview=full&alternatives=false&steps=false&geometries=geojson"

// Client calls the OSRM driving profile for one origin/destination pair per
// request, with a bounded retry wrapper for transient failures.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger
	tries      int
	retryDelay time.Duration
}

// NewClient creates an OSRM routing client. tries is the total attempt
// budget of RetryRoute; retryDelay is the fixed pause between attempts.
// A nil clock uses real time.
func NewClient(baseURL, userAgent string, timeout time.Duration, tries int, retryDelay time.Duration, limiter *ratelimit.Limiter, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if tries < 1 {
		tries = 1
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		clock:      clock,
		metrics:    metrics,
		logger:     logger,
		tries:      tries,
		retryDelay: retryDelay,
	}
}

// osrmResponse is the subset of the OSRM route response the engine reads:
// the first route's distance in meters and its LineString geometry.
type osrmResponse struct {
	Routes []struct {
		Distance float64 `json:"distance"`
		Geometry struct {
			Type        string      `json:"type"`
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route requests the driving route between two points. It returns ErrNoRoute
// when the service reports no route; any other error is a transport or
// protocol failure. Both are retryable through RetryRoute.
func (c *Client) Route(ctx context.Context, from, to domain.Point) (*domain.Route, error) {
	if err := c.limiter.Wait(ctx, routeChannel); err != nil {
		return nil, err
	}

	// OSRM takes coordinates positionally in the path, longitude first.
	u := fmt.Sprintf("%s/route/v1/driving/%s,%s;%s,%s?%s",
		c.baseURL,
		coord(from.Lon), coord(from.Lat),
		coord(to.Lon), coord(to.Lat),
		routeQuery,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create route request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RouteAPIDuration.Observe(c.clock.Since(start).Seconds())
	if err != nil {
		c.metrics.RouteRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("route request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.RouteRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("route request: status %d", resp.StatusCode)
	}

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.metrics.RouteRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode route response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		c.metrics.RouteRequests.WithLabelValues("no_route").Inc()
		return nil, ErrNoRoute
	}

	first := decoded.Routes[0]
	result := &domain.Route{Km: first.Distance / 1000.0}
	if first.Geometry.Type == "LineString" {
		result.Geometry = first.Geometry.Coordinates
	}

	c.metrics.RouteRequests.WithLabelValues("success").Inc()
	return result, nil
}

// RetryRoute calls Route up to the configured number of tries with a fixed
// delay between attempts, returning the first successful result. On an
// exhausted budget the last error is returned for the caller to degrade on.
func (c *Client) RetryRoute(ctx context.Context, from, to domain.Point) (*domain.Route, error) {
	var lastErr error
	for attempt := 0; attempt < c.tries; attempt++ {
		if attempt > 0 {
			if !sleepWithContext(ctx, c.clock, c.retryDelay) {
				return nil, ctx.Err()
			}
		}

		result, err := c.Route(ctx, from, to)
		if err == nil {
			return result, nil
		}
		lastErr = err
		c.logger.Warn("route attempt failed",
			"attempt", attempt+1,
			"from", from.Label,
			"to", to.Label,
			"error", err,
		)
	}
	return nil, lastErr
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
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
