package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/response"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
)

// Recover returns middleware that turns a handler panic into a 500 with the
// generic internal_error body. The panic is logged with its stack through the
// request logger, tagged with the session ID on session routes.
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				event := logger.FromContext(c.Request().Context()).Error().
					Str("route", c.Path()).
					Str("panic", fmt.Sprint(r)).
					Str("stack", string(debug.Stack()))
				if sessionID := GetSessionID(c); sessionID != "" {
					event = event.Str("session_id", sessionID)
				}
				event.Msg("Panic recovered")

				if !c.Response().Committed {
					err = response.InternalServerError(c)
				}
			}()

			return next(c)
		}
	}
}
