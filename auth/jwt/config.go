package jwt

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/biduedson/reservas-api/errors"
)

// Algorithm is a supported HMAC signing algorithm.
type Algorithm string

const (
	HS256 Algorithm = "HS256"
	HS384 Algorithm = "HS384"
	HS512 Algorithm = "HS512"
)

// Config is the signing context shared by Codec and Validator.
// It is built once at startup and passed by value.
type Config struct {
	// Secret is the HMAC key. Its length must be at least the digest size
	// of Algorithm (32, 48 or 64 bytes).
	Secret string `yaml:"secret" mapstructure:"secret"`

	// Issuer is the "iss" claim written and required (default: reservas-api).
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// Audience is the "aud" claim written and required (default: reservas-api-clients).
	Audience string `yaml:"audience" mapstructure:"audience"`

	// Lifetime is the validity window of issued tokens (default: 1h).
	Lifetime time.Duration `yaml:"lifetime" mapstructure:"lifetime"`

	// Algorithm is the signing algorithm (default: HS256).
	Algorithm Algorithm `yaml:"algorithm" mapstructure:"algorithm"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = HS256
	}
	if c.Lifetime == 0 {
		c.Lifetime = time.Hour
	}
	if c.Issuer == "" {
		c.Issuer = "reservas-api"
	}
	if c.Audience == "" {
		c.Audience = "reservas-api-clients"
	}
}

// Validate checks the signing context. Failures are Configuration errors.
func (c *Config) Validate() error {
	minLen := c.minKeyLength()
	if minLen == 0 {
		return errors.Configuration("auth.jwt.algorithm",
			fmt.Sprintf("unsupported algorithm %q", c.Algorithm))
	}
	if len(c.Secret) < minLen {
		return errors.Configuration("auth.jwt.secret",
			fmt.Sprintf("must be at least %d bytes for %s (got: %d)", minLen, c.Algorithm, len(c.Secret)))
	}
	if c.Lifetime <= 0 {
		return errors.Configuration("auth.jwt.lifetime", "must be positive")
	}
	// exp is carried in whole seconds.
	if c.Lifetime%time.Second != 0 {
		return errors.Configuration("auth.jwt.lifetime",
			fmt.Sprintf("must be a whole number of seconds (got: %s)", c.Lifetime))
	}
	if c.Issuer == "" {
		return errors.Configuration("auth.jwt.issuer", "is required")
	}
	if c.Audience == "" {
		return errors.Configuration("auth.jwt.audience", "is required")
	}
	return nil
}

func (c *Config) minKeyLength() int {
	switch c.Algorithm {
	case HS256:
		return 32
	case HS384:
		return 48
	case HS512:
		return 64
	default:
		return 0
	}
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Algorithm {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}

// prepare applies defaults and validates a copy of cfg.
func prepare(cfg Config) (Config, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Option customizes a Codec or Validator.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
