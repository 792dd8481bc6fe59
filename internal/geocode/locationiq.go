package geocode

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/domain"
)

// LocationIQ is the preferred credentialed provider, first in the chain.
type LocationIQ struct {
	key            string
	endpoint       string
	userAgent      string
	acceptLanguage string
	httpClient     *http.Client
}

// NewLocationIQ creates a LocationIQ search client. An empty key leaves the
// provider unavailable, so the chain skips it.
func NewLocationIQ(key, endpoint, userAgent, acceptLanguage string, timeout time.Duration) *LocationIQ {
	return &LocationIQ{
		key:            key,
		endpoint:       endpoint,
		userAgent:      userAgent,
		acceptLanguage: acceptLanguage,
		httpClient:     &http.Client{Timeout: timeout},
	}
}

func (p *LocationIQ) Name() string           { return "LocationIQ" }
func (p *LocationIQ) Available() bool        { return p.key != "" }
func (p *LocationIQ) Attempts() int          { return 1 }
func (p *LocationIQ) Backoff() time.Duration { return 0 }

func (p *LocationIQ) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	params := url.Values{}
	params.Set("key", p.key)
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("normalizecity", "1")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("accept-language", p.acceptLanguage)

	results, err := fetchResults(ctx, p.httpClient, p.Name(), p.endpoint, p.userAgent, params)
	if err != nil {
		return nil, err
	}
	return candidatesFrom(results, query, p.Name()), nil
}
