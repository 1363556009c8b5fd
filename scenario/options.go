package scenario

import (
	"maps"

	"github.com/kbukum/scenariokit/comparator"
	"github.com/kbukum/scenariokit/frequency"
)

// ComparatorKey is the reserved property key whose value, when passed through
// WithProperties, becomes the initial comparator table.
const ComparatorKey = "comparators"

type settings struct {
	frequency      frequency.Frequency
	comparators    comparator.Table
	hasComparators bool
	properties     map[string]any
	err            error
}

// Option configures a scenario configuration at construction.
type Option func(*settings)

// WithFrequency sets the recurrence frequency. frequency.None leaves the
// scenario non-recurring.
func WithFrequency(f frequency.Frequency) Option {
	return func(s *settings) { s.frequency = f }
}

// WithComparators sets the initial comparator table. A nil table leaves the
// comparators absent; an empty non-nil table makes them present but empty.
// The table is copied.
func WithComparators(t comparator.Table) Option {
	return func(s *settings) {
		if t == nil {
			s.comparators, s.hasComparators = nil, false
			return
		}
		s.comparators, s.hasComparators = t.Clone(), true
	}
}

// WithProperties merges free-form properties. The map is copied. A value
// under ComparatorKey is removed from the properties and becomes the
// comparator table; it must be a comparator.Table, a
// map[string][]comparator.Func or a map[string]comparator.Func.
func WithProperties(props map[string]any) Option {
	return func(s *settings) {
		if len(props) == 0 {
			return
		}
		if s.properties == nil {
			s.properties = make(map[string]any, len(props))
		}
		maps.Copy(s.properties, props)

		raw, ok := s.properties[ComparatorKey]
		if !ok {
			return
		}
		delete(s.properties, ComparatorKey)
		t, err := comparator.FromMap(raw)
		if err != nil {
			if s.err == nil {
				s.err = err
			}
			return
		}
		s.comparators, s.hasComparators = t, true
	}
}

// WithProperty sets a single free-form property.
func WithProperty(key string, value any) Option {
	return WithProperties(map[string]any{key: value})
}
