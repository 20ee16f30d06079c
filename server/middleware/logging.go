package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/biduedson/reservas-api/logger"
	"github.com/biduedson/reservas-api/observability"
)

var probePaths = map[string]bool{
	"/health":    true,
	"/liveness":  true,
	"/readiness": true,
}

// RequestLogger logs each request at a level chosen by status and records
// HTTP metrics. Probe paths are recorded but not logged.
func RequestLogger(log *logger.Logger, metrics *observability.AuthMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(c.Request.Context(), c.Request.Method, route, status, latency)

		if probePaths[c.Request.URL.Path] {
			return
		}

		fields := map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"route":  route,
			"status": status,
			"client": c.ClientIP(),
		}
		fields[logger.FieldDuration] = latency.Milliseconds()
		if latency > 500*time.Millisecond {
			fields["slow"] = true
		}
		logByStatus(log.WithContext(c.Request.Context()), fields, status)
	}
}

func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
