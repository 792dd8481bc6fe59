package geocode

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/domain"
)

// MapsCo is the final fallback provider. Its responses sometimes include
// entries without coordinates, which candidatesFrom filters out.
type MapsCo struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

// NewMapsCo creates a geocode.maps.co search client.
func NewMapsCo(endpoint, userAgent string, timeout time.Duration) *MapsCo {
	return &MapsCo{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *MapsCo) Name() string           { return "maps.co" }
func (p *MapsCo) Available() bool        { return true }
func (p *MapsCo) Attempts() int          { return 1 }
func (p *MapsCo) Backoff() time.Duration { return 0 }

func (p *MapsCo) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	results, err := fetchResults(ctx, p.httpClient, p.Name(), p.endpoint, p.userAgent, params)
	if err != nil {
		return nil, err
	}
	return candidatesFrom(results, query, p.Name()), nil
}
