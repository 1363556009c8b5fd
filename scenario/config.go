package scenario

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/scenariokit/comparator"
	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/frequency"
	"github.com/kbukum/scenariokit/naming"
	"github.com/kbukum/scenariokit/pipeline"
)

// ErrComparatorNotFound matches, via errors.Is, the error returned when
// removing comparators from a data entity that has none.
var ErrComparatorNotFound = &errors.AppError{Code: errors.ErrCodeComparatorNotFound}

// Config is a scenario configuration.
//
// The name, pipelines, frequency and properties are fixed at construction.
// The comparator table changes only through SetComparator and
// RemoveComparator. A Config is safe for concurrent use.
type Config struct {
	name       string
	revision   uuid.UUID
	pipelines  []*pipeline.Config
	frequency  frequency.Frequency
	properties map[string]any

	mu          sync.RWMutex
	comparators comparator.Table // nil means absent
}

// New builds a scenario configuration. The name is protected with
// naming.Protect and pipelines keep their order.
func New(name string, pipelines []*pipeline.Config, opts ...Option) (*Config, error) {
	protected := naming.Protect(name)
	if protected == "" {
		return nil, errors.InvalidInput("name", fmt.Sprintf("scenario name %q has no usable characters", name))
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.frequency != frequency.None && !s.frequency.IsValid() {
		return nil, errors.InvalidInput("frequency", s.frequency.String())
	}
	for i, p := range pipelines {
		if p == nil {
			return nil, errors.InvalidInput("pipelines", fmt.Sprintf("pipeline at index %d is nil", i))
		}
	}
	if s.hasComparators {
		if err := s.comparators.Validate(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		name:       protected,
		revision:   uuid.New(),
		pipelines:  slices.Clone(pipelines),
		frequency:  s.frequency,
		properties: s.properties,
	}
	if cfg.properties == nil {
		cfg.properties = make(map[string]any)
	}
	if s.hasComparators {
		cfg.comparators = s.comparators
	}
	return cfg, nil
}

// Name returns the protected name.
func (c *Config) Name() string { return c.name }

// Revision identifies this instance; a replacement created under the same
// name gets a different revision.
func (c *Config) Revision() uuid.UUID { return c.revision }

// Pipelines returns the pipeline configurations in declaration order.
func (c *Config) Pipelines() []*pipeline.Config { return slices.Clone(c.pipelines) }

// Frequency returns the recurrence frequency and whether one is set.
func (c *Config) Frequency() (frequency.Frequency, bool) {
	return c.frequency, c.frequency != frequency.None
}

// Properties returns a copy of the free-form properties.
func (c *Config) Properties() map[string]any { return maps.Clone(c.properties) }

// Property returns a single property value.
func (c *Config) Property(key string) (any, bool) {
	v, ok := c.properties[key]
	return v, ok
}

// Comparators returns a copy of the comparator table and whether the table
// is present. A present table may be empty.
func (c *Config) Comparators() (comparator.Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.comparators == nil {
		return nil, false
	}
	return c.comparators.Clone(), true
}

// Comparator returns the comparators registered for entityID, in order.
func (c *Config) Comparator(entityID string) ([]comparator.Func, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.comparators.Get(entityID)
}

// SetComparator appends fn to entityID's comparators, creating the
// comparator table or the entity's list as needed. Duplicates are kept.
// It fails only when fn is nil.
func (c *Config) SetComparator(entityID string, fn comparator.Func) error {
	if fn == nil {
		return errors.InvalidInput("comparator", "comparator must not be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.comparators == nil {
		c.comparators = comparator.Table{}
	}
	c.comparators.Append(entityID, fn)
	return nil
}

// RemoveComparator drops every comparator registered for entityID. When the
// comparator table is absent or has no entry for entityID it returns an error
// matching ErrComparatorNotFound and changes nothing.
func (c *Config) RemoveComparator(entityID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.comparators == nil {
		return errors.ComparatorNotFound(entityID).WithDetail("scenario", c.name)
	}
	if err := c.comparators.Remove(entityID); err != nil {
		return errors.ComparatorNotFound(entityID).WithDetail("scenario", c.name)
	}
	return nil
}
