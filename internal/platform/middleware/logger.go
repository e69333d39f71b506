package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Logger attaches a request scoped child of logger to the request context,
// so zerolog.Ctx(ctx) downstream carries the request_id, and writes one
// access line per request. Query strings are not logged because list filters
// carry patient names and phone numbers.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid, _ := c.Get("request_id").(string)

			reqLogger := logger.With().Str("request_id", rid).Logger()
			c.SetRequest(req.WithContext(reqLogger.WithContext(req.Context())))

			// Render here so the status logged below is the one the client
			// sees. Middleware wrapping Logger therefore gets nil back.
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			l := zerolog.Ctx(c.Request().Context())
			evt := l.Info()
			if status := c.Response().Status; status >= 500 {
				evt = l.Error().Err(err)
			} else if status >= 400 {
				evt = l.Warn()
			}

			evt.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("route", c.Path()).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return nil
		}
	}
}
