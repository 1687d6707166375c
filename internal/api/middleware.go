package api

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"evalgo.org/vlanreg/internal/metrics"
)

// ValidateContentType middleware rejects request bodies that are not JSON.
// A missing Content-Type counts as non-JSON.
func ValidateContentType(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		method := c.Request().Method

		// Only check POST, PUT, PATCH requests
		if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
			contentType := c.Request().Header.Get(echo.HeaderContentType)

			if !strings.HasPrefix(strings.ToLower(contentType), echo.MIMEApplicationJSON) {
				return UnsupportedMediaTypeError(
					"Invalid request",
					"Content-Type must be 'application/json'. Got: '"+contentType+"'",
				)
			}
		}

		return next(c)
	}
}

var vlanIDParam = regexp.MustCompile(`^[0-9]+$`)

// ValidateVLANIDParam middleware only lets exact non-negative integer :id
// segments through. Anything else is treated as an unknown route.
func ValidateVLANIDParam(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		if !vlanIDParam.MatchString(id) || len(id) > 9 {
			apiErr := NotFoundError("VLAN", id)
			apiErr.Details = "VLAN ID must be an integer"
			return apiErr
		}

		return next(c)
	}
}

// SecurityHeaders middleware adds security headers to responses
func SecurityHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("X-Content-Type-Options", "nosniff")
		c.Response().Header().Set("X-Frame-Options", "DENY")
		c.Response().Header().Set("X-XSS-Protection", "1; mode=block")
		c.Response().Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		return next(c)
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
				zap.String("request_id", v.RequestID),
			}
			switch {
			case v.Status >= http.StatusInternalServerError:
				logger.Error("request", append(fields, zap.Error(v.Error))...)
			case v.Error != nil:
				logger.Info("request", append(fields, zap.String("error", v.Error.Error()))...)
			default:
				logger.Info("request", fields...)
			}
			return nil
		},
	})
}

// RequestMetrics records request counts and latency per route template.
func RequestMetrics(m *metrics.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusOf(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			m.RecordAPIRequest(c.Request().Method, path, status, time.Since(start).Seconds())
			return err
		}
	}
}

// statusOf returns the HTTP status an error will be rendered with.
func statusOf(err error) int {
	switch e := err.(type) {
	case *APIError:
		return e.Code
	case *echo.HTTPError:
		return e.Code
	default:
		return http.StatusInternalServerError
	}
}
