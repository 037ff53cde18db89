package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
)

// RequestLogger returns middleware that attaches a request-scoped logger to
// the request context and logs one line per request on completion. The line
// carries the matched route and, for session routes, the session ID.
func RequestLogger(base *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := GetRequestID(c)
			reqLog := base
			if reqID != "" {
				reqLog = base.WithRequestID(reqID)
			}
			req := c.Request()
			c.SetRequest(req.WithContext(reqLog.Attach(req.Context())))

			if err := next(c); err != nil {
				c.Error(err)
			}

			res := c.Response()
			event := levelFor(reqLog, res.Status).
				Str("method", req.Method).
				Str("route", c.Path()).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP())
			if sessionID := GetSessionID(c); sessionID != "" {
				event = event.Str("session_id", sessionID)
			}
			event.Msg("HTTP request")

			return nil
		}
	}
}

// levelFor picks the log level for a response status. A superseded search
// (409) is routine for session clients and logs at info.
func levelFor(log *logger.Logger, status int) *zerolog.Event {
	switch {
	case status >= http.StatusInternalServerError:
		return log.Error()
	case status == http.StatusConflict:
		return log.Info()
	case status >= http.StatusBadRequest:
		return log.Warn()
	default:
		return log.Info()
	}
}
