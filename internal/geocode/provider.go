package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/domain"
)

// Provider is one geocoding service in the fallback chain.
type Provider interface {
	// Name tags returned candidates and error messages.
	Name() string

	// Available reports whether the provider can be called at all, e.g.
	// whether a required credential is configured.
	Available() bool

	// Attempts is the per-provider retry budget.
	Attempts() int

	// Backoff is the base delay between attempts; attempt i sleeps i×Backoff.
	Backoff() time.Duration

	// Search resolves a free-text query into at most limit candidates.
	Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error)
}

// result is the wire shape shared by all three providers: a JSON array of
// objects carrying string coordinates and a display label.
type result struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
}

// fetchResults issues one GET request and decodes the JSON array response.
// Failures come back as *CallError classified by kind.
func fetchResults(ctx context.Context, hc *http.Client, provider, endpoint, userAgent string, params url.Values) ([]result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &CallError{Provider: provider, Kind: ErrorKindNetwork, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, &CallError{Provider: provider, Kind: ErrorKindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &CallError{
			Provider: provider,
			Kind:     ErrorKindHTTP,
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var results []result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, &CallError{Provider: provider, Kind: ErrorKindParse, Err: err}
	}
	return results, nil
}

// candidatesFrom converts wire results into domain candidates, dropping
// entries without usable coordinates. The label falls back from
// display_name to name to the query itself.
func candidatesFrom(results []result, query, source string) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(results))
	for _, r := range results {
		if r.Lat == "" || r.Lon == "" {
			continue
		}
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lon, errLon := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}

		label := r.DisplayName
		if label == "" {
			label = r.Name
		}
		if label == "" {
			label = query
		}

		out = append(out, domain.Candidate{Lat: lat, Lon: lon, Label: label, Source: source})
	}
	return out
}
