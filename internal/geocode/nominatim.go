package geocode

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/domain"
)

// Nominatim is the default open provider. It gets two attempts with linear
// backoff because the public instance sheds load under bursts.
type Nominatim struct {
	endpoint       string
	userAgent      string
	acceptLanguage string
	httpClient     *http.Client
}

// NewNominatim creates a Nominatim search client.
func NewNominatim(endpoint, userAgent, acceptLanguage string, timeout time.Duration) *Nominatim {
	return &Nominatim{
		endpoint:       endpoint,
		userAgent:      userAgent,
		acceptLanguage: acceptLanguage,
		httpClient:     &http.Client{Timeout: timeout},
	}
}

func (p *Nominatim) Name() string           { return "Nominatim" }
func (p *Nominatim) Available() bool        { return true }
func (p *Nominatim) Attempts() int          { return 2 }
func (p *Nominatim) Backoff() time.Duration { return 400 * time.Millisecond }

func (p *Nominatim) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("accept-language", p.acceptLanguage)

	results, err := fetchResults(ctx, p.httpClient, p.Name(), p.endpoint, p.userAgent, params)
	if err != nil {
		return nil, err
	}
	return candidatesFrom(results, query, p.Name()), nil
}
