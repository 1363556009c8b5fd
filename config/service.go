package config

import (
	"github.com/kbukum/scenariokit/logger"
	"github.com/kbukum/scenariokit/validation"
)

// Environments accepted by ServiceConfig.
var Environments = []string{"development", "staging", "production"}

// ServiceConfig contains the fields every scenariokit program carries.
// Program configs embed it:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to the base configuration.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	// Loggers built from Logging carry the service name.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	v := validation.New()
	c.check(v)
	return v.Error()
}

func (c *ServiceConfig) check(v *validation.Validator) {
	v.Required("name", c.Name)
	v.OneOf("environment", c.Environment, Environments)
	if err := c.Logging.Validate(); err != nil {
		v.AddError("logging", err.Error())
	}
}
