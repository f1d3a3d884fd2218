package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderRequestID carries the request correlation id
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware propagates the caller's X-Request-ID or assigns a new one
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(HeaderRequestID)
			if requestID == "" || len(requestID) > 128 {
				requestID = uuid.NewString()
				c.Request().Header.Set(HeaderRequestID, requestID)
			}

			c.Response().Header().Set(HeaderRequestID, requestID)
			c.Set("request_id", requestID)

			return next(c)
		}
	}
}

// GetRequestID returns the id assigned by RequestIDMiddleware
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok {
		return id
	}
	return c.Response().Header().Get(HeaderRequestID)
}
