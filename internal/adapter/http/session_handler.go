package http

import (
	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-offer-explorer/internal/adapter/chart"
	"github.com/flight-search/flight-offer-explorer/internal/adapter/export"
	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/middleware"
	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/response"
	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
)

// csvFilename is the download name of CSV exports.
const csvFilename = "flights.csv"

// SessionHandler handles the search session endpoints. A session holds one
// result set; views re-filter and re-sort it without querying upstream again.
type SessionHandler struct {
	sessions *usecase.SessionManager
}

// NewSessionHandler creates a SessionHandler backed by sessions.
func NewSessionHandler(sessions *usecase.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// CreateSession handles POST /api/v1/sessions
//
// @Summary Create a search session
// @Tags sessions
// @Produce json
// @Success 201 {object} SessionResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c echo.Context) error {
	s := h.sessions.Create()
	return response.Created(c, ToSessionResponse(s.State()))
}

// GetSession handles GET /api/v1/sessions/:id
//
// @Summary Describe a search session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c echo.Context) error {
	s, err := h.sessions.Get(c.Param(middleware.SessionIDParam))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, ToSessionResponse(s.State()))
}

// DeleteSession handles DELETE /api/v1/sessions/:id
//
// @Summary Discard a search session
// @Description Aborts the session's in-flight search and drops its results
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c echo.Context) error {
	if err := h.sessions.Close(c.Param(middleware.SessionIDParam)); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// Search handles POST /api/v1/sessions/:id/search
//
// @Summary Run a search in a session
// @Description Supersedes the session's in-flight search. A superseded call answers 409.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SearchFlightsRequest true "Search criteria"
// @Success 200 {object} domain.SearchResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Failure 409 {object} response.ErrorDetail "Search superseded"
// @Failure 502 {object} response.ErrorDetail "Upstream failure"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /sessions/{id}/search [post]
func (h *SessionHandler) Search(c echo.Context) error {
	s, err := h.sessions.Get(c.Param(middleware.SessionIDParam))
	if err != nil {
		return handleError(c, err)
	}

	var req SearchFlightsRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	result, err := s.Search(c.Request().Context(), ToDomainCriteria(&req), ToSearchOptions(&req))
	if err != nil {
		return handleError(c, err)
	}
	return response.SearchResults(c, result)
}

// ListFlights handles GET /api/v1/sessions/:id/flights
//
// @Summary Filtered and sorted view of a session's results
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param minPrice query number false "Minimum price, inclusive"
// @Param maxPrice query number false "Maximum price, inclusive"
// @Param stops query string false "Stop counts, comma-separated; 2 means two or more"
// @Param airlines query string false "Airline display names, comma-separated"
// @Param sortBy query string false "price or duration"
// @Success 200 {object} domain.SearchResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Failure 502 {object} response.ErrorDetail "The latest search failed"
// @Router /sessions/{id}/flights [get]
func (h *SessionHandler) ListFlights(c echo.Context) error {
	view, err := h.view(c)
	if err != nil {
		return handleError(c, err)
	}
	return response.SearchResults(c, view)
}

// Histogram handles GET /api/v1/sessions/:id/histogram
//
// @Summary Price histogram of a session view
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param minPrice query number false "Minimum price, inclusive"
// @Param maxPrice query number false "Maximum price, inclusive"
// @Param stops query string false "Stop counts, comma-separated"
// @Param airlines query string false "Airline display names, comma-separated"
// @Success 200 {object} HistogramResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id}/histogram [get]
func (h *SessionHandler) Histogram(c echo.Context) error {
	view, err := h.view(c)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, ToHistogramResponse(view))
}

// HistogramChart handles GET /api/v1/sessions/:id/histogram/chart
//
// @Summary Price histogram of a session view as an HTML bar chart
// @Tags sessions
// @Produce html
// @Param id path string true "Session ID"
// @Success 200 {string} string "HTML page"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id}/histogram/chart [get]
func (h *SessionHandler) HistogramChart(c echo.Context) error {
	view, err := h.view(c)
	if err != nil {
		return handleError(c, err)
	}

	page, err := chart.HistogramPage(view.Histogram, len(view.Flights))
	if err != nil {
		return handleError(c, err)
	}
	return response.HTML(c, page)
}

// ExportCSV handles GET /api/v1/sessions/:id/flights.csv
//
// @Summary Session view as CSV
// @Tags sessions
// @Produce text/csv
// @Param id path string true "Session ID"
// @Success 200 {string} string "CSV document"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /sessions/{id}/flights.csv [get]
func (h *SessionHandler) ExportCSV(c echo.Context) error {
	view, err := h.view(c)
	if err != nil {
		return handleError(c, err)
	}

	body, err := export.FlightsCSV(view.Flights)
	if err != nil {
		return handleError(c, err)
	}
	return response.Attachment(c, csvFilename, export.CSVContentType, body)
}

// view resolves the session and derives the view for the request's query.
func (h *SessionHandler) view(c echo.Context) (*domain.SearchResponse, error) {
	s, err := h.sessions.Get(c.Param(middleware.SessionIDParam))
	if err != nil {
		return nil, err
	}

	q, err := ParseViewQuery(c)
	if err != nil {
		return nil, err
	}

	return s.View(q.ToSearchOptions())
}
