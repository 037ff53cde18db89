package http

import (
	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/middleware"
)

// APIPrefix is the path prefix of the versioned API.
const APIPrefix = "/api/v1"

// RegisterRoutes registers all flight offer API routes.
// It creates a versioned API group and attaches the handler methods.
// Routes addressing one session run behind middleware.SessionScope.
func RegisterRoutes(e *echo.Echo, h *FlightHandler, s *SessionHandler, mw ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	api := e.Group(APIPrefix, mw...)

	flights := api.Group("/flights")
	flights.POST("/search", h.SearchFlights)

	sessions := api.Group("/sessions")
	sessions.POST("", s.CreateSession)

	session := sessions.Group("/:"+middleware.SessionIDParam, middleware.SessionScope())
	session.GET("", s.GetSession)
	session.DELETE("", s.DeleteSession)
	session.POST("/search", s.Search)
	session.GET("/flights", s.ListFlights)
	session.GET("/flights.csv", s.ExportCSV)
	session.GET("/histogram", s.Histogram)
	session.GET("/histogram/chart", s.HistogramChart)
}
