package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/banciumihaicatalin-design/FoaieParcurs/internal/adapter/http"
	"github.com/banciumihaicatalin-design/FoaieParcurs/internal/domain"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockGeocoder struct {
	candidates []domain.Candidate
	err        error
	lastQuery  string
}

func (m *mockGeocoder) Resolve(_ context.Context, query string) ([]domain.Candidate, error) {
	m.lastQuery = query
	return m.candidates, m.err
}

type mockBuilder struct {
	segments []domain.Segment
	lastIt   domain.Itinerary
}

func (m *mockBuilder) BuildSegments(_ context.Context, it domain.Itinerary) []domain.Segment {
	m.lastIt = it
	return m.segments
}

func newTestServer(geocoder *mockGeocoder, builder *mockBuilder, readyErr error) *httpadapter.Server {
	if geocoder == nil {
		geocoder = &mockGeocoder{}
	}
	if builder == nil {
		builder = &mockBuilder{}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpadapter.NewServer(":0", geocoder, builder, &mockReadiness{err: readyErr}, logger)
}

func doJSON(t *testing.T, srv *httpadapter.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := doJSON(t, newTestServer(nil, nil, nil), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := doJSON(t, newTestServer(nil, nil, nil), http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := doJSON(t, newTestServer(nil, nil, fmt.Errorf("cache not loaded")), http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "cache not loaded", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := doJSON(t, newTestServer(nil, nil, nil), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestGeocodeReturnsCandidates(t *testing.T) {
	geocoder := &mockGeocoder{
		candidates: []domain.Candidate{
			{Lat: 44.4268, Lon: 26.1025, Label: "Piața Unirii, București", Source: "Nominatim"},
		},
	}
	srv := newTestServer(geocoder, nil, nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/geocode", `{"query": "Piata Unirii"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Piata Unirii", geocoder.lastQuery)

	var body struct {
		Candidates []domain.Candidate `json:"candidates"`
		Error      string             `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Candidates, 1)
	assert.Equal(t, 44.4268, body.Candidates[0].Lat)
	assert.Empty(t, body.Error)
}

func TestGeocodeFailureIsAdvisory(t *testing.T) {
	geocoder := &mockGeocoder{err: errors.New("all providers failed")}
	srv := newTestServer(geocoder, nil, nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/geocode", `{"query": "nowhere"}`)
	// Provider failures are reported in the body, not as an HTTP error.
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Candidates []domain.Candidate `json:"candidates"`
		Error      string             `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Candidates)
	assert.Contains(t, body.Error, "all providers failed")
}

func TestGeocodeRejectsBadJSON(t *testing.T) {
	rec := doJSON(t, newTestServer(nil, nil, nil), http.MethodPost, "/api/geocode", `{"query":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTripReturnsSegmentsAndTotal(t *testing.T) {
	builder := &mockBuilder{
		segments: []domain.Segment{
			{KmOneWay: 12.3},
			{KmOneWay: 4.2},
		},
	}
	srv := newTestServer(nil, builder, nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/trip", `{
		"points": [
			{"lat": 44.4268, "lon": 26.1025, "label": "A"},
			{"lat": 44.44, "lon": 26.097, "label": "B"},
			{"lat": 44.45, "lon": 26.1, "label": "C"}
		],
		"close_loop": true
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, builder.lastIt.CloseLoop)
	assert.Len(t, builder.lastIt.Points, 3)

	var body struct {
		Segments []domain.Segment `json:"segments"`
		TotalKm  float64          `json:"total_km"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Segments, 2)
	assert.Equal(t, 16.5, body.TotalKm)
}

func TestTripAppliesLegOptions(t *testing.T) {
	builder := &mockBuilder{
		segments: []domain.Segment{
			{KmOneWay: 10},
			{KmOneWay: 5},
		},
	}
	srv := newTestServer(nil, builder, nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/trip", `{
		"points": [
			{"lat": 44.4268, "lon": 26.1025},
			{"lat": 44.44, "lon": 26.097},
			{"lat": 44.45, "lon": 26.1}
		],
		"legs": [
			{"round_trip": true},
			{"repeats": 3}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalKm float64 `json:"total_km"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 35.0, body.TotalKm)
}

func TestTripRejectsTooFewPoints(t *testing.T) {
	rec := doJSON(t, newTestServer(nil, nil, nil), http.MethodPost, "/api/trip",
		`{"points": [{"lat": 44.4, "lon": 26.1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
