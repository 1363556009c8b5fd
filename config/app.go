package config

import (
	"time"

	"github.com/kbukum/scenariokit/observability"
	"github.com/kbukum/scenariokit/scenario"
	"github.com/kbukum/scenariokit/validation"
	"github.com/kbukum/scenariokit/version"
)

// AppConfig is the scenarioctl configuration.
type AppConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`
	// Definitions lists YAML definition documents loaded at start.
	Definitions []string `yaml:"definitions" mapstructure:"definitions"`
	// PipelineDirs are searched for pipelines no document declares.
	PipelineDirs []string      `yaml:"pipeline_dirs" mapstructure:"pipeline_dirs"`
	Metrics      MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// RegistryConfig configures the scenario registry.
type RegistryConfig struct {
	// DuplicatePolicy is overwrite, reject or versioned.
	DuplicatePolicy string `yaml:"duplicate_policy" mapstructure:"duplicate_policy"`
}

// Policy parses DuplicatePolicy.
func (c RegistryConfig) Policy() (scenario.DuplicatePolicy, error) {
	return scenario.ParseDuplicatePolicy(c.DuplicatePolicy)
}

// MetricsConfig configures OTLP metric export.
type MetricsConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults fills unset fields.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "scenarioctl"
	}
	if c.Version == "" {
		c.Version = version.Get().Version
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Registry.DuplicatePolicy == "" {
		c.Registry.DuplicatePolicy = scenario.Overwrite.String()
	}
	defaults := observability.DefaultMeterConfig(c.Name)
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = defaults.Endpoint
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = defaults.Interval
	}
}

// Validate checks every section and reports all problems at once.
func (c *AppConfig) Validate() error {
	v := validation.New()
	c.ServiceConfig.check(v)
	if _, err := c.Registry.Policy(); err != nil {
		v.AddError("registry.duplicate_policy", "must be one of: overwrite, reject, versioned")
	}
	for _, path := range c.Definitions {
		v.Required("definitions", path)
	}
	if c.Metrics.Enabled {
		v.Required("metrics.endpoint", c.Metrics.Endpoint)
		v.Custom(c.Metrics.Interval > 0, "metrics.interval", "must be positive")
	}
	return v.Error()
}

// MeterConfig converts the metrics section for observability.InitMeter.
func (c *AppConfig) MeterConfig() *observability.MeterConfig {
	return &observability.MeterConfig{
		ServiceName:    c.Name,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		Endpoint:       c.Metrics.Endpoint,
		Insecure:       c.Metrics.Insecure,
		Interval:       c.Metrics.Interval,
	}
}

// Load reads the configuration for serviceName, applies defaults and
// validates it.
func Load(serviceName string, opts ...LoaderOption) (*AppConfig, error) {
	var cfg AppConfig
	if err := LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
