package bootstrap

import (
	"github.com/biduedson/reservas-api/config"
)

// Config is the constraint for application configuration types.
// Any struct embedding config.ServiceConfig satisfies GetServiceConfig
// through the promoted method; ApplyDefaults and Validate are usually
// redefined to cover the service's own sections.
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Database database.Config `yaml:"database" mapstructure:"database"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
