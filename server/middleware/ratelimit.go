package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/biduedson/reservas-api/errors"
	"github.com/biduedson/reservas-api/observability"
	"github.com/biduedson/reservas-api/resilience"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Limiter holds one token bucket per key.
	Limiter *resilience.KeyedLimiter
	// KeyFunc extracts the rate limit key. Defaults to the client IP.
	KeyFunc func(*gin.Context) string
	Metrics *observability.AuthMetrics
}

// RateLimit rejects requests whose key has no tokens left with RateLimited.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = resilience.NewKeyedLimiter(resilience.RateLimiterConfig{})
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}

	return func(c *gin.Context) {
		if !cfg.Limiter.Allow(cfg.KeyFunc(c)) {
			cfg.Metrics.RecordRateLimited(c.Request.Context(), c.FullPath())
			abortWithError(c, errors.RateLimited())
			return
		}
		c.Next()
	}
}

// IPBasedKey returns the client IP.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}
