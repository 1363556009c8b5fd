// Package frequency defines the recurrence tags a scenario can carry.
// Scheduling itself happens elsewhere; this package only names the values
// and converts them to and from text.
package frequency

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/scenariokit/errors"
)

// Frequency is a scenario recurrence tag. The zero value means "not recurring".
type Frequency int

const (
	None Frequency = iota
	Daily
	Weekly
	Monthly
	Quarterly
	Yearly
)

var names = map[Frequency]string{
	Daily:     "daily",
	Weekly:    "weekly",
	Monthly:   "monthly",
	Quarterly: "quarterly",
	Yearly:    "yearly",
}

// All returns every recurring frequency in ascending period order.
func All() []Frequency {
	return []Frequency{Daily, Weekly, Monthly, Quarterly, Yearly}
}

// String returns the lowercase name, or "" for None.
func (f Frequency) String() string {
	if name, ok := names[f]; ok {
		return name
	}
	if f == None {
		return ""
	}
	return fmt.Sprintf("frequency(%d)", int(f))
}

// IsValid reports whether f is one of the recurring values.
func (f Frequency) IsValid() bool {
	_, ok := names[f]
	return ok
}

// Parse converts a name such as "Daily" or "weekly" to a Frequency.
// The empty string parses to None.
func Parse(s string) (Frequency, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, nil
	}
	for f, name := range names {
		if name == s {
			return f, nil
		}
	}
	return None, errors.InvalidInput("frequency", fmt.Sprintf("unknown frequency %q", s))
}

// MarshalText implements encoding.TextMarshaler.
func (f Frequency) MarshalText() ([]byte, error) {
	if f != None && !f.IsValid() {
		return nil, errors.InvalidInput("frequency", f.String())
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Frequency) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Frequency) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.InvalidInput("frequency", fmt.Sprintf("expected a scalar at line %d", node.Line))
	}
	return f.UnmarshalText([]byte(node.Value))
}
