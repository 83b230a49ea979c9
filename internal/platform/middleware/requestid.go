// Package middleware holds the echo middleware shared by every route group:
// request id assignment, structured request logging, and panic recovery.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader is the inbound/outbound correlation header.
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the echo context key the other middleware read.
	RequestIDKey = "request_id"
)

// RequestID attaches a correlation id to every request: the inbound header
// value when present, a fresh UUID otherwise. The id is echoed back on the
// response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(RequestIDKey, rid)
			c.Response().Header().Set(RequestIDHeader, rid)
			return next(c)
		}
	}
}
