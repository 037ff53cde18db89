package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
)

// DefaultBodyLimit caps request bodies; search requests are a few hundred bytes.
const DefaultBodyLimit = "64K"

// Setup registers the global middleware on e. Order matters:
//  1. RequestID, so every later log line can be correlated
//  2. RequestLogger, which attaches the request logger used below
//  3. Recover, inside the logger so a recovered panic is logged as a 500
//  4. BodyLimit, before any handler binds a body
//
// SessionScope is attached per route group by the HTTP adapter.
func Setup(e *echo.Echo, log *logger.Logger) {
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(Recover())
	e.Use(echomw.BodyLimit(DefaultBodyLimit))
}
