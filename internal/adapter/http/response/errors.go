package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func writeError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, &ErrorDetail{Code: code, Message: message})
}

// BadRequest writes a 400 Bad Request response with the given error message.
func BadRequest(c echo.Context, message string) error {
	return writeError(c, http.StatusBadRequest, CodeInvalidRequest, message)
}

// InvalidRequestBody writes a 400 Bad Request response for malformed request bodies.
func InvalidRequestBody(c echo.Context) error {
	return writeError(c, http.StatusBadRequest, CodeInvalidRequest, MsgInvalidRequestBody)
}

// ValidationError writes a 400 Bad Request response with validation error details.
func ValidationError(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusBadRequest, &ErrorDetail{
		Code:    CodeValidationError,
		Message: MsgValidationFailed,
		Details: details,
	})
}

// ValidationErrorWithMessage writes a 400 Bad Request response with a custom message.
func ValidationErrorWithMessage(c echo.Context, message string) error {
	return writeError(c, http.StatusBadRequest, CodeValidationError, message)
}

// UpstreamAuthError writes a 502 Bad Gateway response for a failed credential exchange.
func UpstreamAuthError(c echo.Context) error {
	return writeError(c, http.StatusBadGateway, CodeUpstreamAuthError, MsgUpstreamAuth)
}

// UpstreamQueryError writes a 502 Bad Gateway response for a failed offers query.
func UpstreamQueryError(c echo.Context) error {
	return writeError(c, http.StatusBadGateway, CodeUpstreamQueryError, MsgUpstreamQuery)
}

// SearchSuperseded writes a 409 Conflict response for a superseded or cancelled search.
func SearchSuperseded(c echo.Context) error {
	return writeError(c, http.StatusConflict, CodeSearchSuperseded, MsgSearchSuperseded)
}

// SessionNotFound writes a 404 Not Found response for an unknown session.
func SessionNotFound(c echo.Context) error {
	return writeError(c, http.StatusNotFound, CodeSessionNotFound, MsgSessionNotFound)
}

// GatewayTimeout writes a 504 Gateway Timeout response.
func GatewayTimeout(c echo.Context) error {
	return writeError(c, http.StatusGatewayTimeout, CodeTimeout, MsgTimeout)
}

// InternalServerError writes a 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return writeError(c, http.StatusInternalServerError, CodeInternalError, MsgInternalError)
}
