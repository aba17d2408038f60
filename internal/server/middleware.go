package server

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/observer"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
)

// requestIDHeader carries the request id back to the caller.
const requestIDHeader = "X-Request-ID"

// requestContextMiddleware assigns each request an id and stashes a scoped
// logger in the request context so downstream layers log with it.
func requestContextMiddleware(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := c.Request().Context()
			ctx = logger.WithRequestID(ctx, requestID)
			ctx = logger.WithLogger(ctx, base.With(zap.String("request_id", requestID)))
			c.SetRequest(c.Request().WithContext(ctx))

			c.Response().Header().Set(requestIDHeader, requestID)
			return next(c)
		}
	}
}

// metricsMiddleware records request duration per method, route and status.
func metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let echo's error handler set the status before observing.
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			observer.ObserveHTTPRequest(
				c.Request().Method,
				path,
				strconv.Itoa(c.Response().Status),
				time.Since(start),
			)
			return nil
		}
	}
}
