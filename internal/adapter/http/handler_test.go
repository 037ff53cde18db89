package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/response"
	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
	"github.com/flight-search/flight-offer-explorer/test/mock"
)

// mockUseCase is a mock implementation of FlightSearchUseCase for testing.
type mockUseCase struct {
	searchFunc func(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error)
}

func (m *mockUseCase) Search(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, criteria, opts)
	}
	resp := domain.NewSearchResponse(criteria, nil, usecase.DefaultHistogram(), domain.SearchMetadata{SearchTimeMs: 100})
	return &resp, nil
}

// setupTestHandler creates a test Echo instance with every route registered.
func setupTestHandler(uc usecase.FlightSearchUseCase) *echo.Echo {
	e := echo.New()
	sessions := usecase.NewSessionManager(mock.NewProvider("amadeus"), usecase.SessionConfig{})
	RegisterRoutes(e, NewFlightHandler(uc), NewSessionHandler(sessions))
	return e
}

// makeRequest is a helper to make test requests.
func makeRequest(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = []byte(b)
	default:
		reqBody, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var detail response.ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	return detail
}

func validRequest() map[string]interface{} {
	return map[string]interface{}{
		"origin":        "JFK",
		"destination":   "LHR",
		"departureDate": "2025-12-15",
		"passengers":    2,
	}
}

// =====================================================
// Handler Tests
// =====================================================

func TestSearchFlights_Success(t *testing.T) {
	flights := mock.SampleFlights("JFK", "LHR", 3)

	uc := &mockUseCase{
		searchFunc: func(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
			resp := usecase.BuildResponse(criteria, flights, opts, 0)
			return &resp, nil
		},
	}
	e := setupTestHandler(uc)

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", validRequest())

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "JFK", resp.SearchCriteria.Origin)
	assert.Equal(t, "LHR", resp.SearchCriteria.Destination)
	assert.Equal(t, 2, resp.SearchCriteria.Passengers)
	assert.Len(t, resp.Flights, 3)
	assert.Equal(t, 3, resp.Metadata.TotalResults)
	assert.NotEmpty(t, resp.Histogram)
}

func TestSearchFlights_WithFilters(t *testing.T) {
	var captured usecase.SearchOptions
	uc := &mockUseCase{
		searchFunc: func(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
			captured = opts
			resp := domain.NewSearchResponse(criteria, nil, nil, domain.SearchMetadata{})
			return &resp, nil
		},
	}
	e := setupTestHandler(uc)

	body := validRequest()
	body["sortBy"] = "DURATION"
	body["filters"] = map[string]interface{}{
		"minPrice": 100,
		"maxPrice": 500,
		"stops":    []int{0, 2},
		"airlines": []string{" BRITISH AIRWAYS "},
	}

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.SortByDuration, captured.SortBy)
	assert.Equal(t, 100.0, captured.Filters.PriceRange.Min)
	assert.Equal(t, 500.0, captured.Filters.PriceRange.Max)
	assert.Equal(t, []int{0, 2}, captured.Filters.Stops)
	assert.Equal(t, []string{"BRITISH AIRWAYS"}, captured.Filters.Airlines)
}

func TestSearchFlights_NormalizesCriteria(t *testing.T) {
	var captured domain.SearchCriteria
	uc := &mockUseCase{
		searchFunc: func(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
			captured = criteria
			resp := domain.NewSearchResponse(criteria, nil, nil, domain.SearchMetadata{})
			return &resp, nil
		},
	}
	e := setupTestHandler(uc)

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", map[string]interface{}{
		"origin":        "jfk",
		"destination":   " lhr ",
		"departureDate": "2025-12-15",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "JFK", captured.Origin)
	assert.Equal(t, "LHR", captured.Destination)
	assert.Equal(t, 1, captured.Passengers)
}

func TestSearchFlights_InvalidJSON(t *testing.T) {
	called := false
	uc := &mockUseCase{
		searchFunc: func(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
			called = true
			return nil, nil
		},
	}
	e := setupTestHandler(uc)

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", `{"origin": "JFK",`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, response.CodeInvalidRequest, decodeError(t, rec).Code)
	assert.False(t, called)
}

func TestSearchFlights_ValidationErrors(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(body map[string]interface{})
		expectedField string
	}{
		{"missing origin", func(b map[string]interface{}) { delete(b, "origin") }, "origin"},
		{"missing destination", func(b map[string]interface{}) { delete(b, "destination") }, "destination"},
		{"missing departure date", func(b map[string]interface{}) { delete(b, "departureDate") }, "departureDate"},
		{"invalid origin", func(b map[string]interface{}) { b["origin"] = "JF1" }, "origin"},
		{"four letter destination", func(b map[string]interface{}) { b["destination"] = "LHRX" }, "destination"},
		{"same origin and destination", func(b map[string]interface{}) { b["destination"] = "jfk" }, "destination"},
		{"bad date format", func(b map[string]interface{}) { b["departureDate"] = "15/12/2025" }, "departureDate"},
		{"impossible date", func(b map[string]interface{}) { b["departureDate"] = "2025-02-30" }, "departureDate"},
		{"return before departure", func(b map[string]interface{}) { b["returnDate"] = "2025-12-01" }, "returnDate"},
		{"too many passengers", func(b map[string]interface{}) { b["passengers"] = 10 }, "passengers"},
		{"negative passengers", func(b map[string]interface{}) { b["passengers"] = -1 }, "passengers"},
		{"invalid sort", func(b map[string]interface{}) { b["sortBy"] = "rating" }, "sortBy"},
		{"min above max", func(b map[string]interface{}) {
			b["filters"] = map[string]interface{}{"minPrice": 500, "maxPrice": 100}
		}, "filters.maxPrice"},
		{"negative min", func(b map[string]interface{}) {
			b["filters"] = map[string]interface{}{"minPrice": -1}
		}, "filters.minPrice"},
		{"stops out of range", func(b map[string]interface{}) {
			b["filters"] = map[string]interface{}{"stops": []int{0, 3}}
		}, "filters.stops[1]"},
		{"blank airline", func(b map[string]interface{}) {
			b["filters"] = map[string]interface{}{"airlines": []string{"  "}}
		}, "filters.airlines[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setupTestHandler(&mockUseCase{})
			body := validRequest()
			tt.mutate(body)

			rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			detail := decodeError(t, rec)
			assert.Equal(t, response.CodeValidationError, detail.Code)
			assert.Contains(t, detail.Details, tt.expectedField)
		})
	}
}

func TestSearchFlights_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"auth failure", domain.NewAuthError(http.StatusUnauthorized, nil), http.StatusBadGateway, response.CodeUpstreamAuthError},
		{"query failure", domain.NewQueryError(http.StatusInternalServerError, nil), http.StatusBadGateway, response.CodeUpstreamQueryError},
		{"timeout", domain.NewCancelledError(context.DeadlineExceeded), http.StatusGatewayTimeout, response.CodeTimeout},
		{"cancelled", domain.NewCancelledError(context.Canceled), http.StatusConflict, response.CodeSearchSuperseded},
		{"domain validation", domain.WrapInvalidRequest("passengers cannot exceed 9"), http.StatusBadRequest, response.CodeValidationError},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, response.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{
				searchFunc: func(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
					return nil, tt.err
				},
			}
			e := setupTestHandler(uc)

			rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", validRequest())

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedCode, decodeError(t, rec).Code)
		})
	}
}

func TestSearchFlights_UpstreamErrorDoesNotLeakDetails(t *testing.T) {
	uc := &mockUseCase{
		searchFunc: func(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
			return nil, domain.NewAuthError(http.StatusUnauthorized, errors.New("client_secret=hunter2 rejected"))
		},
	}
	e := setupTestHandler(uc)

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", validRequest())

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestSearchFlights_EmptyResults(t *testing.T) {
	uc := &mockUseCase{
		searchFunc: func(ctx context.Context, criteria domain.SearchCriteria, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
			resp := usecase.BuildResponse(criteria, nil, opts, 0)
			return &resp, nil
		},
	}
	e := setupTestHandler(uc)

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", validRequest())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"flights":[]`)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Flights)
	assert.Len(t, resp.Histogram, len(usecase.DefaultHistogram()))
}

func TestHealth_Success(t *testing.T) {
	e := setupTestHandler(&mockUseCase{})

	rec := makeRequest(e, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleError(t *testing.T) {
	verrs := &ValidationErrors{}
	verrs.Add("minPrice", "minPrice must be a number")

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"validation errors", verrs, http.StatusBadRequest, response.CodeValidationError},
		{"invalid request", domain.NewValidationError("stops", "bad"), http.StatusBadRequest, response.CodeValidationError},
		{"session not found", domain.ErrSessionNotFound, http.StatusNotFound, response.CodeSessionNotFound},
		{"wrapped session not found", errors.Join(errors.New("lookup"), domain.ErrSessionNotFound), http.StatusNotFound, response.CodeSessionNotFound},
		{"deadline", domain.NewCancelledError(context.DeadlineExceeded), http.StatusGatewayTimeout, response.CodeTimeout},
		{"superseded", domain.NewCancelledError(nil), http.StatusConflict, response.CodeSearchSuperseded},
		{"auth", domain.NewAuthError(0, errors.New("dial tcp")), http.StatusBadGateway, response.CodeUpstreamAuthError},
		{"query", domain.NewQueryError(http.StatusBadRequest, nil), http.StatusBadGateway, response.CodeUpstreamQueryError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, response.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, handleError(c, tt.err))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedCode, decodeError(t, rec).Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	verrs := &ValidationErrors{}
	verrs.Add("stops", "stops value \"x\" is not a number")

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, handleError(c, verrs))

	detail := decodeError(t, rec)
	assert.Equal(t, map[string]string{"stops": "stops value \"x\" is not a number"}, detail.Details)
}

// =====================================================
// Route Tests
// =====================================================

func TestRegisterRoutes(t *testing.T) {
	e := setupTestHandler(&mockUseCase{})

	expected := []struct{ method, path string }{
		{http.MethodGet, "/health"},
		{http.MethodPost, "/api/v1/flights/search"},
		{http.MethodPost, "/api/v1/sessions"},
		{http.MethodGet, "/api/v1/sessions/:id"},
		{http.MethodDelete, "/api/v1/sessions/:id"},
		{http.MethodPost, "/api/v1/sessions/:id/search"},
		{http.MethodGet, "/api/v1/sessions/:id/flights"},
		{http.MethodGet, "/api/v1/sessions/:id/flights.csv"},
		{http.MethodGet, "/api/v1/sessions/:id/histogram"},
		{http.MethodGet, "/api/v1/sessions/:id/histogram/chart"},
	}

	routes := e.Routes()
	for _, want := range expected {
		found := false
		for _, r := range routes {
			if r.Path == want.path && r.Method == want.method {
				found = true
				break
			}
		}
		assert.True(t, found, "expected route %s %s not found", want.method, want.path)
	}
}

func TestRegisterRoutes_GroupMiddleware(t *testing.T) {
	e := echo.New()
	sessions := usecase.NewSessionManager(mock.NewProvider("amadeus"), usecase.SessionConfig{})

	var seen []string
	mw := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			seen = append(seen, c.Path())
			return next(c)
		}
	}
	RegisterRoutes(e, NewFlightHandler(&mockUseCase{}), NewSessionHandler(sessions), mw)

	makeRequest(e, http.MethodGet, "/health", nil)
	makeRequest(e, http.MethodPost, "/api/v1/sessions", nil)

	require.Len(t, seen, 1)
	assert.True(t, strings.HasPrefix(seen[0], APIPrefix))
}
