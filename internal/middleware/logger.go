package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/pricemachine/internal/logger"
)

// RequestLogger logs one structured line per request: request id, method,
// matched route, raw path, query length, status, latency and client IP.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		rid, _ := c.Get(RequestIDKey)
		status := c.Writer.Status()

		evt := logger.L().Info()
		if status >= 500 {
			evt = logger.L().Error()
		}
		evt.
			Str("request_id", toString(rid)).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Str("path", c.Request.URL.Path).
			Int("query_len", len(c.Request.URL.RawQuery)).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
