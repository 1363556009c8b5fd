// Package pipeline declares pipeline configurations: named, ordered lists of
// task references that scenarios point at. Executing pipelines is not this
// package's concern.
package pipeline

import (
	"fmt"
	"maps"
	"slices"

	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/naming"
)

// Config is a declared pipeline configuration. It is immutable once built.
type Config struct {
	name       string
	tasks      []string
	properties map[string]any
}

// New creates a pipeline configuration with a protected name.
func New(name string, tasks []string, properties map[string]any) (*Config, error) {
	protected := naming.Protect(name)
	if protected == "" {
		return nil, errors.InvalidInput("name", fmt.Sprintf("pipeline name %q has no usable characters", name))
	}
	return &Config{
		name:       protected,
		tasks:      slices.Clone(tasks),
		properties: maps.Clone(properties),
	}, nil
}

// Name returns the protected pipeline name.
func (c *Config) Name() string { return c.name }

// Tasks returns the ordered task references.
func (c *Config) Tasks() []string { return slices.Clone(c.tasks) }

// Properties returns a copy of the free-form properties.
func (c *Config) Properties() map[string]any { return maps.Clone(c.properties) }

// Names returns the names of pipelines in order.
func Names(pipelines []*Config) []string {
	names := make([]string, len(pipelines))
	for i, p := range pipelines {
		names[i] = p.Name()
	}
	return names
}
