package database

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/biduedson/reservas-api/errors"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const redacted = "xxxxx"

// Config holds database connection configuration.
type Config struct {
	// Enabled selects the database-backed account store. When false the
	// service keeps accounts in memory.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Driver is "sqlite" or "postgres" (default: sqlite).
	Driver string `yaml:"driver" mapstructure:"driver"`

	// DSN is the driver connection string.
	DSN string `yaml:"dsn" mapstructure:"dsn"`

	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" mapstructure:"conn_max_idle_time"`

	// MaxRetries is the number of connection attempts before giving up.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`

	// AutoMigrate runs gorm auto-migration on start (sqlite).
	AutoMigrate bool `yaml:"auto_migrate" mapstructure:"auto_migrate"`

	// SlowQueryThreshold logs queries slower than this as warnings.
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold" mapstructure:"slow_query_threshold"`

	// LogLevel is the gorm log level: silent, error, warn, info (default: warn).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Driver == "" {
		c.Driver = DriverSQLite
	}
	c.Driver = strings.ToLower(c.Driver)
	if c.Driver == DriverSQLite && c.DSN == "" {
		c.DSN = "file::memory:?cache=shared"
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 25
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = time.Hour
	}
	if c.ConnMaxIdleTime <= 0 {
		c.ConnMaxIdleTime = 5 * time.Minute
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 5
	}
	if c.SlowQueryThreshold <= 0 {
		c.SlowQueryThreshold = 200 * time.Millisecond
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate checks the configuration. Failures are Configuration errors.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch c.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return errors.Configuration("database.driver", fmt.Sprintf("unsupported driver %q", c.Driver))
	}
	if c.DSN == "" {
		return errors.Configuration("database.dsn", "is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.Configuration("database.max_idle_conns",
			fmt.Sprintf("must be <= max_open_conns (%d > %d)", c.MaxIdleConns, c.MaxOpenConns))
	}
	switch strings.ToLower(c.LogLevel) {
	case "silent", "error", "warn", "info":
	default:
		return errors.Configuration("database.log_level", fmt.Sprintf("unknown level %q", c.LogLevel))
	}
	return nil
}

// Describe returns a one-liner for the startup summary without credentials.
func (c *Config) Describe() string {
	details := fmt.Sprintf("%s dsn=%s pool=%d/%d", c.Driver, redactDSN(c.DSN), c.MaxOpenConns, c.MaxIdleConns)
	if c.AutoMigrate {
		details += " auto-migrate=on"
	}
	return details
}

// redactDSN hides the password of a URL DSN ("postgres://u:p@host/db")
// or a keyword DSN ("host=db password=p"). Anything else is returned as is.
func redactDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Host != "" {
		if q := u.Query(); q.Has("password") {
			q.Set("password", redacted)
			u.RawQuery = q.Encode()
		}
		return u.Redacted()
	}
	fields := strings.Fields(dsn)
	for i, f := range fields {
		if k, _, ok := strings.Cut(f, "="); ok && strings.EqualFold(k, "password") {
			fields[i] = k + "=" + redacted
		}
	}
	return strings.Join(fields, " ")
}
