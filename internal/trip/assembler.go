// Package trip assembles an ordered itinerary of resolved points into
// consecutive travel segments and sums them into sheet totals.
package trip

import (
	"context"
	"log/slog"

	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/domain"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/observability"
)

// Router produces a driving route between two resolved points, retrying
// transient failures internally.
type Router interface {
	RetryRoute(ctx context.Context, from, to domain.Point) (*domain.Route, error)
}

// Builder turns itineraries into travel segments.
type Builder struct {
	router  Router
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewBuilder creates a Builder backed by the given router.
func NewBuilder(router Router, metrics *observability.Metrics, logger *slog.Logger) *Builder {
	return &Builder{router: router, metrics: metrics, logger: logger}
}

// BuildSegments pairs consecutive itinerary points and computes the one-way
// driving distance for each pair, in itinerary order. When CloseLoop is set
// and there are at least two points, a final segment connects the last
// point back to the first. A leg the routing service cannot resolve still
// yields a placeholder segment with zero distance and Unrouted set, so the
// result stays index-aligned with the itinerary instead of aborting.
func (b *Builder) BuildSegments(ctx context.Context, it domain.Itinerary) []domain.Segment {
	n := len(it.Points)
	if n < 2 {
		return nil
	}

	capacity := n - 1
	if it.CloseLoop {
		capacity = n
	}

	segments := make([]domain.Segment, 0, capacity)
	for i := 0; i < n-1; i++ {
		segments = append(segments, b.buildSegment(ctx, it.Points[i], it.Points[i+1]))
	}
	if it.CloseLoop {
		segments = append(segments, b.buildSegment(ctx, it.Points[n-1], it.Points[0]))
	}
	return segments
}

func (b *Builder) buildSegment(ctx context.Context, from, to domain.Point) domain.Segment {
	seg := domain.Segment{From: from, To: to}
	b.metrics.SegmentsBuilt.Inc()

	result, err := b.router.RetryRoute(ctx, from, to)
	if err != nil {
		b.logger.Warn("segment could not be routed",
			"from", from.Label,
			"to", to.Label,
			"error", err,
		)
		b.metrics.UnroutedSegments.Inc()
		seg.Unrouted = true
		return seg
	}

	seg.KmOneWay = domain.KmRound(result.Km, 1)
	seg.Geometry = result.Geometry
	return seg
}
