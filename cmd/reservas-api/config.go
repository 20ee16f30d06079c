package main

import (
	"github.com/biduedson/reservas-api/auth"
	"github.com/biduedson/reservas-api/config"
	"github.com/biduedson/reservas-api/database"
	"github.com/biduedson/reservas-api/observability"
	"github.com/biduedson/reservas-api/resilience"
	"github.com/biduedson/reservas-api/server"
)

const serviceName = "reservas-api"

// AppConfig is the complete service configuration.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Database      database.Config      `yaml:"database" mapstructure:"database"`
	Auth          auth.Config          `yaml:"auth" mapstructure:"auth"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	RateLimit     RateLimitConfig      `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RateLimitConfig holds the per-route limiters.
type RateLimitConfig struct {
	// Login throttles authentication attempts per client IP.
	Login resilience.RateLimiterConfig `yaml:"login" mapstructure:"login"`
}

// ApplyDefaults fills every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Observability.ApplyDefaults()
	c.RateLimit.Login.ApplyDefaults()
}

// Validate checks every section, stopping at the first error.
func (c *AppConfig) Validate() error {
	for _, validate := range []func() error{
		c.ServiceConfig.Validate,
		c.Server.Validate,
		c.Database.Validate,
		c.Auth.Validate,
		c.Observability.Validate,
	} {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}
