// Package config loads scenariokit application configuration.
//
// Values come from a YAML file, a .env file and the process environment, in
// increasing order of precedence. Environment variables are read only when
// they carry the service prefix, so for the service "scenarioctl":
//
//	SCENARIOCTL_REGISTRY_DUPLICATE_POLICY=reject
//	SCENARIOCTL_METRICS_ENABLED=true
//
// set registry.duplicate_policy and metrics.enabled.
//
// # Usage
//
//	cfg, err := config.Load("scenarioctl", config.WithConfigFile(path))
package config
