package resilience

import (
	"sync"
	"time"
)

// RateLimiterConfig configures a KeyedLimiter.
type RateLimiterConfig struct {
	// Rate is the number of requests refilled per second for each key.
	Rate float64 `yaml:"rate" mapstructure:"rate"`
	// Burst is the bucket size for each key.
	Burst int `yaml:"burst" mapstructure:"burst"`
	// IdleTTL evicts buckets not touched for this long (default: 10m).
	IdleTTL time.Duration `yaml:"idle_ttl" mapstructure:"idle_ttl"`
	// OnLimit is called with the key of every rejected request.
	OnLimit func(key string) `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields.
func (c *RateLimiterConfig) ApplyDefaults() {
	if c.Rate <= 0 {
		c.Rate = 1.0
	}
	if c.Burst <= 0 {
		c.Burst = 5
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 10 * time.Minute
	}
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// KeyedLimiter keeps one token bucket per key. Safe for concurrent use.
type KeyedLimiter struct {
	cfg RateLimiterConfig
	now func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// NewKeyedLimiter creates a limiter with every bucket starting full.
func NewKeyedLimiter(cfg RateLimiterConfig) *KeyedLimiter {
	return newKeyedLimiter(cfg, time.Now)
}

func newKeyedLimiter(cfg RateLimiterConfig, now func() time.Time) *KeyedLimiter {
	cfg.ApplyDefaults()
	return &KeyedLimiter{
		cfg:       cfg,
		now:       now,
		buckets:   make(map[string]*bucket),
		lastSweep: now(),
	}
}

// Allow takes one token from key's bucket and reports whether one was available.
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(l.cfg.Burst), lastSeen: now}
		l.buckets[key] = b
	}

	b.tokens += now.Sub(b.lastSeen).Seconds() * l.cfg.Rate
	if b.tokens > float64(l.cfg.Burst) {
		b.tokens = float64(l.cfg.Burst)
	}
	b.lastSeen = now

	allowed := b.tokens >= 1
	if allowed {
		b.tokens--
	}
	l.mu.Unlock()

	if !allowed && l.cfg.OnLimit != nil {
		l.cfg.OnLimit(key)
	}
	return allowed
}

// Len returns the number of tracked keys.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep drops idle buckets at most once per IdleTTL. Callers hold mu.
func (l *KeyedLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.cfg.IdleTTL {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.cfg.IdleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
