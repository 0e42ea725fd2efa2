package middleware

import (
	"time"

	"github.com/appnity/prepportal-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// LoggingMiddleware logs every request with its latency and outcome.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		event := logger.Log.Info()
		if status >= 400 {
			event = logger.Log.Warn()
		}
		if status >= 500 {
			event = logger.Log.Error()
		}

		if route := c.FullPath(); route != "" {
			event = event.Str("route", route)
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			event = event.Str("errors", errs.String())
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", rawQuery).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("user_id", c.GetString("userId")).
			Str("role", c.GetString("role")).
			Int("body_size", c.Writer.Size()).
			Msg("request")
	}
}
