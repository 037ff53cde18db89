// Package middleware provides the HTTP middleware of the flight offer API:
// request correlation, request logging, panic recovery and session scoping.
package middleware

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const (
	// RequestIDHeader is the HTTP header carrying the request ID.
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// requestIDPattern bounds caller-supplied IDs to a short token that is safe to
// echo in headers and log lines.
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,64}$`)

// ValidRequestID reports whether id may be propagated as a request ID.
func ValidRequestID(id string) bool {
	return requestIDPattern.MatchString(id)
}

// RequestID returns middleware that propagates a well-formed X-Request-ID or
// replaces it with a new UUID. The ID is stored on the echo context and
// echoed in the response header.
func RequestID() echo.MiddlewareFunc {
	propagate := echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: RequestIDHeader,
		RequestIDHandler: func(c echo.Context, id string) {
			c.Set(requestIDKey, id)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		h := propagate(next)
		return func(c echo.Context) error {
			header := c.Request().Header
			if id := header.Get(RequestIDHeader); id != "" && !ValidRequestID(id) {
				header.Del(RequestIDHeader)
			}
			return h(c)
		}
	}
}

// GetRequestID returns the request ID set by RequestID, or "".
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(requestIDKey).(string); ok {
		return id
	}
	return ""
}
