// Package resilience holds the two fault-handling patterns the service uses:
//
//   - Retry: bounded exponential backoff, used only for infrastructure
//     (the database connection at startup). Request paths never retry.
//   - KeyedLimiter: one token bucket per client key, used to throttle the
//     login route per IP.
//
//	db, err := resilience.Retry(ctx, cfg, func() (*gorm.DB, error) { return open() })
//
//	limiter := resilience.NewKeyedLimiter(resilience.RateLimiterConfig{Rate: 1, Burst: 5})
//	if !limiter.Allow(clientIP) { ... }
package resilience
