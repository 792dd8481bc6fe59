// Package http exposes the geocoding and trip engine over a small JSON API,
// alongside health, readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/domain"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/trip"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Geocoder resolves a free-form address into coordinate candidates.
type Geocoder interface {
	Resolve(ctx context.Context, query string) ([]domain.Candidate, error)
}

// SegmentBuilder turns an itinerary into routed travel segments.
type SegmentBuilder interface {
	BuildSegments(ctx context.Context, it domain.Itinerary) []domain.Segment
}

// Server exposes the JSON API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	geocoder   Geocoder
	builder    SegmentBuilder
	logger     *slog.Logger
}

// NewServer wires the API handlers onto a mux with sane timeouts.
func NewServer(addr string, geocoder Geocoder, builder SegmentBuilder, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:        addr,
			Handler:     mux,
			ReadTimeout: 10 * time.Second,
			// A multi-leg /api/trip request waits out the rate limiter
			// and retry delays between legs, so the response can take
			// well over 10s to produce.
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		geocoder: geocoder,
		builder:  builder,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/geocode", s.handleGeocode)
	mux.HandleFunc("POST /api/trip", s.handleTrip)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

type geocodeRequest struct {
	Query string `json:"query"`
}

type geocodeResponse struct {
	Candidates []domain.Candidate `json:"candidates"`
	// Error carries the last provider failure when no candidates were found.
	// It is advisory; the request itself still succeeded.
	Error string `json:"error,omitempty"`
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	var req geocodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	candidates, err := s.geocoder.Resolve(r.Context(), req.Query)
	resp := geocodeResponse{Candidates: candidates}
	if resp.Candidates == nil {
		resp.Candidates = []domain.Candidate{}
	}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type tripRequest struct {
	Points    []domain.Point   `json:"points"`
	CloseLoop bool             `json:"close_loop"`
	Legs      []tripLegRequest `json:"legs,omitempty"`
}

type tripLegRequest struct {
	RoundTrip bool `json:"round_trip"`
	Repeats   int  `json:"repeats"`
}

type tripResponse struct {
	Segments []domain.Segment `json:"segments"`
	TotalKm  float64          `json:"total_km"`
}

func (s *Server) handleTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if len(req.Points) < 2 {
		writeError(w, http.StatusBadRequest, "a trip needs at least two points")
		return
	}

	segments := s.builder.BuildSegments(r.Context(), domain.Itinerary{
		Points:    req.Points,
		CloseLoop: req.CloseLoop,
	})

	opts := make([]trip.LegOption, len(req.Legs))
	for i, leg := range req.Legs {
		opts[i] = trip.LegOption{RoundTrip: leg.RoundTrip, Repeats: leg.Repeats}
	}

	writeJSON(w, http.StatusOK, tripResponse{
		Segments: segments,
		TotalKm:  domain.KmRound(trip.Total(segments, opts), 1),
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
