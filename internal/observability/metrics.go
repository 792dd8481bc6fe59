package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the resolution
// and routing engine.
type Metrics struct {
	// Geocoding metrics.
	GeocodeRequests     *prometheus.CounterVec   // labels: provider, outcome={success,error,empty}
	GeocodeCacheLookups *prometheus.CounterVec   // labels: result={hit,miss}
	GeocodeAPIDuration  *prometheus.HistogramVec // labels: provider

	// Routing metrics.
	RouteRequests    *prometheus.CounterVec // labels: outcome={success,no_route,error}
	RouteAPIDuration prometheus.Histogram

	// Segment assembly metrics.
	SegmentsBuilt    prometheus.Counter
	UnroutedSegments prometheus.Counter
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "foaieparcurs",
			Name:      "geocode_requests_total",
			Help:      "Geocoding provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		GeocodeCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "foaieparcurs",
			Name:      "geocode_cache_lookups_total",
			Help:      "Persistent candidate cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "foaieparcurs",
			Name:      "geocode_api_duration_seconds",
			Help:      "Geocoding provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 12},
		}, []string{"provider"}),
		RouteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "foaieparcurs",
			Name:      "route_requests_total",
			Help:      "Routing service requests by outcome.",
		}, []string{"outcome"}),
		RouteAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "foaieparcurs",
			Name:      "route_api_duration_seconds",
			Help:      "Routing service request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
		SegmentsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "foaieparcurs",
			Name:      "segments_built_total",
			Help:      "Total travel segments assembled.",
		}),
		UnroutedSegments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "foaieparcurs",
			Name:      "unrouted_segments_total",
			Help:      "Segments the routing service could not resolve.",
		}),
	}

	prometheus.MustRegister(
		m.GeocodeRequests,
		m.GeocodeCacheLookups,
		m.GeocodeAPIDuration,
		m.RouteRequests,
		m.RouteAPIDuration,
		m.SegmentsBuilt,
		m.UnroutedSegments,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		GeocodeRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "foaieparcurs", Name: "geocode_requests_total"}, []string{"provider", "outcome"}),
		GeocodeCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "foaieparcurs", Name: "geocode_cache_lookups_total"}, []string{"result"}),
		GeocodeAPIDuration:  prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "foaieparcurs", Name: "geocode_api_duration_seconds"}, []string{"provider"}),
		RouteRequests:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "foaieparcurs", Name: "route_requests_total"}, []string{"outcome"}),
		RouteAPIDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "foaieparcurs", Name: "route_api_duration_seconds"}),
		SegmentsBuilt:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "foaieparcurs", Name: "segments_built_total"}),
		UnroutedSegments:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "foaieparcurs", Name: "unrouted_segments_total"}),
	}
}
