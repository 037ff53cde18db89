package http

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/response"
	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
)

// FlightHandler handles the stateless flight search endpoints.
type FlightHandler struct {
	useCase usecase.FlightSearchUseCase
}

// NewFlightHandler creates a new FlightHandler with the given use case.
func NewFlightHandler(uc usecase.FlightSearchUseCase) *FlightHandler {
	return &FlightHandler{
		useCase: uc,
	}
}

// SearchFlights handles POST /api/v1/flights/search
//
// @Summary Search for flight offers
// @Description Queries the flight offers service once and returns the filtered, sorted view with its price histogram
// @Tags flights
// @Accept json
// @Produce json
// @Param request body SearchFlightsRequest true "Search criteria"
// @Success 200 {object} domain.SearchResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 502 {object} response.ErrorDetail "Upstream failure"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /flights/search [post]
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	var req SearchFlightsRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	criteria := ToDomainCriteria(&req)
	opts := ToSearchOptions(&req)

	result, err := h.useCase.Search(c.Request().Context(), criteria, opts)
	if err != nil {
		return handleError(c, err)
	}

	return response.SearchResults(c, result)
}

// Health handles GET /health
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *FlightHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// handleValidationError handles validation errors and returns a 400 response.
func handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to HTTP responses.
func handleError(c echo.Context, err error) error {
	log := logger.FromContext(c.Request().Context())

	switch {
	case domain.IsInvalidRequest(err), errors.As(err, new(*ValidationErrors)):
		return handleValidationError(c, err)

	case errors.Is(err, domain.ErrSessionNotFound):
		return response.SessionNotFound(c)

	case domain.IsCancelled(err):
		if domain.IsDeadline(err) {
			log.Warn().Err(err).Msg("Search timed out")
			return response.GatewayTimeout(c)
		}
		log.Debug().Err(err).Msg("Search superseded or cancelled")
		return response.SearchSuperseded(c)

	case domain.IsAuthError(err):
		log.Error().Err(err).Msg("Upstream authentication failed")
		return response.UpstreamAuthError(c)

	case domain.IsQueryError(err):
		log.Error().Err(err).Msg("Upstream search failed")
		return response.UpstreamQueryError(c)
	}

	log.Error().Err(err).Msg("Unhandled search error")
	return response.InternalServerError(c)
}
