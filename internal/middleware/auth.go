// Package middleware carries the echo middleware: identity extraction,
// request logging, and HTTP metrics.
package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bazario/bazario/internal/domain"
)

// Identity headers set by the gateway after it verifies the session with
// the identity provider. This service never sees raw credentials.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

const authContextKey = "authContext"

// Auth builds the request's AuthContext from the gateway identity headers.
// Requests without identity still pass; operations that need identity fail
// with EUNAUTHORIZED in the service layer.
func Auth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := domain.AuthContext{
				UserID: c.Request().Header.Get(HeaderUserID),
				Role:   domain.Role(c.Request().Header.Get(HeaderUserRole)),
			}
			if auth.Role == "" {
				auth.Role = domain.RoleUser
			}
			c.Set(authContextKey, auth)
			return next(c)
		}
	}
}

// AuthFrom returns the request's AuthContext. Zero-valued when the Auth
// middleware did not run.
func AuthFrom(c echo.Context) domain.AuthContext {
	if auth, ok := c.Get(authContextKey).(domain.AuthContext); ok {
		return auth
	}
	return domain.AuthContext{}
}
