package auth

import (
	"fmt"

	"github.com/biduedson/reservas-api/auth/jwt"
	"github.com/biduedson/reservas-api/auth/password"
	"github.com/biduedson/reservas-api/errors"
)

// Config holds all authentication configuration.
// It composes subpackage configs for loading from YAML/env via mapstructure.
type Config struct {
	// JWT configures token issuing and validation.
	JWT jwt.Config `yaml:"jwt" mapstructure:"jwt"`

	// Password configures password digests.
	Password password.Config `yaml:"password" mapstructure:"password"`

	// SeedAdmin creates an administrator at startup when set and absent.
	SeedAdmin *SeedAdminConfig `yaml:"seed_admin" mapstructure:"seed_admin"`
}

// SeedAdminConfig describes the administrator created at startup.
type SeedAdminConfig struct {
	Name     string `yaml:"name" mapstructure:"name"`
	Email    string `yaml:"email" mapstructure:"email"`
	Password string `yaml:"password" mapstructure:"password"`
}

// Enabled reports whether seeding was configured.
func (s *SeedAdminConfig) Enabled() bool {
	return s != nil && s.Email != ""
}

// ApplyDefaults sets defaults on the sub-configurations.
func (c *Config) ApplyDefaults() {
	c.JWT.ApplyDefaults()
	c.Password.ApplyDefaults()
	if c.SeedAdmin.Enabled() && c.SeedAdmin.Name == "" {
		c.SeedAdmin.Name = "Administrador"
	}
}

// Validate checks every sub-configuration. Failures are Configuration errors.
func (c *Config) Validate() error {
	if err := c.JWT.Validate(); err != nil {
		return err
	}
	if err := c.Password.Validate(); err != nil {
		return err
	}
	if c.SeedAdmin.Enabled() && len(c.SeedAdmin.Password) < 6 {
		return errors.Configuration("auth.seed_admin.password", "must be at least 6 characters")
	}
	return nil
}

// Describe returns a one-liner for the startup summary. Secrets are omitted.
// Example: "JWT(HS256) lifetime=1h0m0s password=sha512-salted"
func (c *Config) Describe() string {
	line := fmt.Sprintf("JWT(%s) lifetime=%s password=%s",
		c.JWT.Algorithm, c.JWT.Lifetime, c.Password.Algorithm)
	if c.SeedAdmin.Enabled() {
		line += " seed_admin=on"
	}
	return line
}
