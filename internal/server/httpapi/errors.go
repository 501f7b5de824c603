// Package httpapi exposes PlanIT over HTTP with echo. Handlers translate
// between JSON and the services; errors are mapped to status codes in one
// place and internal details never reach the client.
package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/planit/internal/common"
	"github.com/dmitrijs2005/planit/internal/logging"
	"github.com/labstack/echo/v4"
)

// APIError carries an HTTP status and a client-safe message. Internal is
// logged, never returned.
type APIError struct {
	Code     int
	Message  string
	Internal error
}

func (e *APIError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%d: %s (internal: %v)", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Internal
}

func NewBadRequest(message string) *APIError {
	return &APIError{Code: http.StatusBadRequest, Message: message}
}

const internalMessage = "An unexpected error occurred."

// FromError maps a service error to an APIError.
func FromError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var (
		denied   *common.UnauthorizedAccessError
		notFound *common.NotFoundError
		invalid  *common.ValidationError
	)

	switch {
	case errors.As(err, &denied):
		return &APIError{Code: http.StatusForbidden, Message: denied.Error()}
	case errors.Is(err, common.ErrInvalidCredentials):
		return &APIError{Code: http.StatusUnauthorized, Message: "Invalid email or password."}
	case errors.Is(err, common.ErrInvalidToken):
		return &APIError{Code: http.StatusUnauthorized, Message: "Invalid or expired token."}
	case errors.As(err, &notFound):
		return &APIError{Code: http.StatusNotFound, Message: notFound.Error()}
	case errors.Is(err, common.ErrorNotFound):
		return &APIError{Code: http.StatusNotFound, Message: "Not found."}
	case errors.Is(err, common.ErrAlreadyExists):
		return &APIError{Code: http.StatusConflict, Message: "Email is already registered."}
	case errors.As(err, &invalid):
		return &APIError{Code: http.StatusUnprocessableEntity, Message: invalid.Error()}
	}

	return &APIError{Code: http.StatusInternalServerError, Message: internalMessage, Internal: err}
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ErrorHandler renders errors returned by handlers and middleware.
func ErrorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var apiErr *APIError
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			msg, ok := echoErr.Message.(string)
			if !ok {
				msg = http.StatusText(echoErr.Code)
			}
			apiErr = &APIError{Code: echoErr.Code, Message: msg}
		} else {
			apiErr = FromError(err)
		}

		if apiErr.Code >= http.StatusInternalServerError {
			log.Error(c.Request().Context(), "unhandled error",
				"error", err,
				"path", c.Request().URL.Path,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
		}

		_ = c.JSON(apiErr.Code, ErrorResponse{
			Error:   http.StatusText(apiErr.Code),
			Message: apiErr.Message,
		})
	}
}
