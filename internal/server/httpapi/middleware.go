package httpapi

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dmitrijs2005/planit/internal/common"
	"github.com/dmitrijs2005/planit/internal/logging"
	"github.com/dmitrijs2005/planit/internal/server/auth"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const callerKey = "caller_id"

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequestID tags every request and response with an X-Request-Id.
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// RequestLogger logs method, path, status, latency and request id after
// each request. 5xx are logged at Error, 4xx at Warn.
func RequestLogger(log logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			args := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"latency", time.Since(start),
				"remote_ip", c.RealIP(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
			}

			switch {
			case res.Status >= http.StatusInternalServerError:
				log.Error(req.Context(), "request", args...)
			case res.Status >= http.StatusBadRequest:
				log.Warn(req.Context(), "request", args...)
			default:
				log.Info(req.Context(), "request", args...)
			}

			return nil
		}
	}
}

// Recovery turns a panicking handler into a 500.
func Recovery(log logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error(c.Request().Context(), "panic recovered",
						"panic", fmt.Sprint(r),
						"stack", string(debug.Stack()),
						"method", c.Request().Method,
						"path", c.Request().URL.Path,
					)
					returnErr = &APIError{Code: http.StatusInternalServerError, Message: internalMessage, Internal: fmt.Errorf("panic: %v", r)}
				}
			}()

			return next(c)
		}
	}
}

// BearerAuth is the only place tokens are verified. It stores the caller's
// account id for handlers; services receive that id, never the token.
func BearerAuth(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(common.AuthorizationHeaderName)

			scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
			if !ok || !strings.EqualFold(scheme, common.BearerScheme) || strings.TrimSpace(token) == "" {
				return &APIError{Code: http.StatusUnauthorized, Message: "Authorization header must be: Bearer <token>."}
			}

			claims, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil {
				return err
			}

			id, err := claims.AccountID()
			if err != nil {
				return err
			}

			c.Set(callerKey, id)
			return next(c)
		}
	}
}

// CallerID returns the account id stored by BearerAuth.
func CallerID(c echo.Context) int64 {
	id, _ := c.Get(callerKey).(int64)
	return id
}
