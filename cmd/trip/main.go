// Command trip resolves a list of addresses and prints the driving
// distances between consecutive stops, plus the total for the sheet.
//
// Usage:
//
//	go run ./cmd/trip \
//	  -from "Piata Unirii, Bucuresti" \
//	  -stop "Piata Romana, Bucuresti" \
//	  -stop "Aeroportul Otopeni" \
//	  -loop
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/cache"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/config"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/domain"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/geocode"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/observability"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/ratelimit"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/route"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/trip"
)

// stringList collects a repeatable flag value.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint(*s) }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	_ = godotenv.Load()

	var stops stringList
	from := flag.String("from", "", "starting address")
	flag.Var(&stops, "stop", "intermediate or final address (repeatable, in order)")
	loop := flag.Bool("loop", false, "close the loop back to the starting address")
	roundTrip := flag.Bool("round-trip", false, "count every leg both ways")
	flag.Parse()

	if *from == "" || len(stops) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if code := run(ctx, cfg, *from, stops, *loop, *roundTrip); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, cfg *config.Config, from string, stops []string, loop, roundTrip bool) int {
	logger := observability.NewLogger(cfg.LogLevel, "text")
	metrics := observability.NewMetricsForTesting() // nothing scrapes a one-shot run

	store := cache.New(cfg.CacheFile, logger)
	store.Load()
	defer store.Flush()

	limiter := ratelimit.New(cfg.RateLimitInterval, nil)

	providers := []geocode.Provider{
		geocode.NewLocationIQ(cfg.LocationIQKey, cfg.LocationIQURL, cfg.UserAgent, cfg.AcceptLanguage, cfg.GeocodeTimeout),
		geocode.NewNominatim(cfg.NominatimURL, cfg.UserAgent, cfg.AcceptLanguage, cfg.GeocodeTimeout),
		geocode.NewMapsCo(cfg.MapsCoURL, cfg.UserAgent, cfg.GeocodeTimeout),
	}
	resolver := geocode.NewResolver(providers, store, limiter, cfg.GeocodeLimit, nil, metrics, logger)

	addresses := append([]string{from}, stops...)
	points, err := resolveAll(ctx, resolver, addresses)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	router := route.NewClient(cfg.OSRMURL, cfg.UserAgent, cfg.RouteTimeout, cfg.RouteRetries, cfg.RouteRetryDelay, limiter, nil, metrics, logger)
	builder := trip.NewBuilder(router, metrics, logger)

	segments := builder.BuildSegments(ctx, domain.Itinerary{Points: points, CloseLoop: loop})

	opts := make([]trip.LegOption, len(segments))
	for i := range opts {
		opts[i] = trip.LegOption{RoundTrip: roundTrip}
	}
	printSheet(segments, opts)
	return 0
}

// resolveAll geocodes every address to its best candidate, keeping the
// original address as the point label.
func resolveAll(ctx context.Context, resolver *geocode.Resolver, addresses []string) ([]domain.Point, error) {
	points := make([]domain.Point, 0, len(addresses))
	for _, addr := range addresses {
		candidates, err := resolver.Resolve(ctx, addr)
		if len(candidates) == 0 {
			if err != nil {
				return nil, fmt.Errorf("resolve %q: %w", addr, err)
			}
			return nil, fmt.Errorf("resolve %q: no match found", addr)
		}
		best := candidates[0]
		points = append(points, domain.Point{Lat: best.Lat, Lon: best.Lon, Label: addr})
	}
	return points, nil
}

func printSheet(segments []domain.Segment, opts []trip.LegOption) {
	fmt.Println()
	for i, seg := range segments {
		note := ""
		if seg.Unrouted {
			note = "  (no route found)"
		}
		fmt.Printf("  %-30s -> %-30s %8.1f km%s\n",
			truncate(seg.From.Label, 30), truncate(seg.To.Label, 30),
			trip.EffectiveKm(seg, opts[i]), note)
	}
	fmt.Println()
	fmt.Printf("  Total: %.1f km\n", domain.KmRound(trip.Total(segments, opts), 1))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
