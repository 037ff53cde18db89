package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/response"
)

// SessionIDParam is the route parameter naming a search session.
const SessionIDParam = "id"

const sessionIDKey = "session_id"

// SessionScope returns middleware for routes addressing one search session.
// Session IDs are UUIDs, so any other value answers 404 without reaching the
// handler. A well-formed ID is recorded for the request and panic log lines.
func SessionScope() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Param(SessionIDParam)
			if _, err := uuid.Parse(id); err != nil {
				return response.SessionNotFound(c)
			}

			c.Set(sessionIDKey, id)
			return next(c)
		}
	}
}

// GetSessionID returns the session ID accepted by SessionScope, or "".
func GetSessionID(c echo.Context) string {
	if id, ok := c.Get(sessionIDKey).(string); ok {
		return id
	}
	return ""
}
