// Package integration provides helpers and integration tests for the flight offer explorer.
// Integration tests run the real token cache, offers client, use cases and
// HTTP layer against a fake upstream served over httptest.
package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flight-search/flight-offer-explorer/internal/adapter/amadeus"
	httpAdapter "github.com/flight-search/flight-offer-explorer/internal/adapter/http"
	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/middleware"
	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/response"
	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/retry"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
	"github.com/flight-search/flight-offer-explorer/test/testutil"
)

// Test credentials understood by the fake upstream.
const (
	testClientID     = "test-client-id"
	testClientSecret = "test-client-secret"
)

// StackConfig tunes the stack built by NewTestServer.
type StackConfig struct {
	// GlobalTimeout bounds each search (default 2s)
	GlobalTimeout time.Duration

	// Location is the display location (default UTC)
	Location *time.Location

	// Log receives middleware and search logs (default discarded)
	Log io.Writer
}

// TestServer wraps the full stack and provides helper methods for integration testing.
type TestServer struct {
	Echo     *echo.Echo
	Upstream *testutil.FakeAmadeus
	Client   *amadeus.Client
	UseCase  usecase.FlightSearchUseCase
	Sessions *usecase.SessionManager
}

// testRetry keeps the single retry of the production policy with a short delay.
func testRetry() retry.Config {
	return retry.UpstreamConfig.WithInitialDelay(10 * time.Millisecond)
}

// NewTestServer starts a fake upstream serving the recorded offers and wires
// the production stack against it.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return NewTestServerWithConfig(t, StackConfig{})
}

// NewTestServerWithConfig is NewTestServer with explicit settings.
func NewTestServerWithConfig(t *testing.T, cfg StackConfig) *TestServer {
	t.Helper()

	if cfg.GlobalTimeout <= 0 {
		cfg.GlobalTimeout = 2 * time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Log == nil {
		cfg.Log = io.Discard
	}

	upstream := testutil.NewFakeAmadeus(t, testutil.LoadTestJSON(t, testutil.OffersFixture))

	tokens := amadeus.NewTokenCache(upstream.AuthBaseURL(), testClientID, testClientSecret,
		amadeus.WithAuthTimeout(time.Second),
		amadeus.WithTokenRetry(testRetry()),
	)
	client := amadeus.NewClient(upstream.SearchURL(), tokens,
		amadeus.WithLocation(cfg.Location),
		amadeus.WithSearchTimeout(time.Second),
		amadeus.WithRetry(testRetry()),
	)

	uc := usecase.NewFlightSearchUseCase(client, &usecase.Config{GlobalTimeout: cfg.GlobalTimeout})
	sessions := usecase.NewSessionManager(client, usecase.SessionConfig{
		TTL:           time.Minute,
		GlobalTimeout: cfg.GlobalTimeout,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	middleware.Setup(e, &logger.Logger{Logger: zerolog.New(cfg.Log)})
	httpAdapter.RegisterRoutes(e, httpAdapter.NewFlightHandler(uc), httpAdapter.NewSessionHandler(sessions))

	return &TestServer{
		Echo:     e,
		Upstream: upstream,
		Client:   client,
		UseCase:  uc,
		Sessions: sessions,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
	Headers     map[string]string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch b := req.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(b)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest posts a one-shot search.
func (ts *TestServer) SearchRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/flights/search",
		Body:   body,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// CreateSession creates a session and returns its ID.
func (ts *TestServer) CreateSession(t *testing.T) string {
	t.Helper()
	resp := ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/sessions"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create session: status %d: %s", resp.Code, resp.Body)
	}
	var s httpAdapter.SessionResponse
	if err := json.Unmarshal(resp.Body, &s); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return s.ID
}

// SessionSearch runs a search in session id.
func (ts *TestServer) SessionSearch(id string, body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/sessions/" + id + "/search",
		Body:   body,
	})
}

// SessionGet fetches a session sub-resource, e.g. "/flights?stops=0".
func (ts *TestServer) SessionGet(id, suffix string) Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/api/v1/sessions/" + id + suffix,
	})
}

// ParseSearchResponse parses the response body as a SearchResponse.
func (r *Response) ParseSearchResponse() (*domain.SearchResponse, error) {
	var resp domain.SearchResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body as an error detail.
func (r *Response) ParseError() (*response.ErrorDetail, error) {
	var detail response.ErrorDetail
	if err := json.Unmarshal(r.Body, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SearchRequestBody is a helper struct for building search request bodies.
type SearchRequestBody struct {
	Origin        string                 `json:"origin"`
	Destination   string                 `json:"destination"`
	DepartureDate string                 `json:"departureDate"`
	ReturnDate    string                 `json:"returnDate,omitempty"`
	Passengers    int                    `json:"passengers,omitempty"`
	Filters       map[string]interface{} `json:"filters,omitempty"`
	SortBy        string                 `json:"sortBy,omitempty"`
}

// DefaultSearchRequest returns the request matching the recorded offers.
func DefaultSearchRequest() SearchRequestBody {
	return SearchRequestBody{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2025-12-15",
		Passengers:    1,
	}
}

// DefaultSearchCriteria returns the criteria matching the recorded offers.
func DefaultSearchCriteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2025-12-15",
		Passengers:    1,
	}
}

// IDs returns the flight IDs of a search response.
func IDs(resp *domain.SearchResponse) []string {
	return testutil.IDs(resp.Flights)
}
