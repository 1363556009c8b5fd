package comparator

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/naming"
)

// Built-in comparator names.
const (
	Equal    = "equal"
	Diff     = "diff"
	TextDiff = "text_diff"
)

// Catalog provides named comparator lookup for declarative configuration.
// Names are protected with naming.Protect.
type Catalog struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{funcs: make(map[string]Func)}
}

// DefaultCatalog creates a Catalog holding the built-in comparators.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.funcs[Equal] = EqualFunc
	c.funcs[Diff] = DiffFunc
	c.funcs[TextDiff] = TextDiffFunc
	return c
}

// Register adds fn under name, replacing any previous registration.
func (c *Catalog) Register(name string, fn Func) error {
	if fn == nil {
		return errors.InvalidInput("comparator", "comparator must not be nil")
	}
	key := naming.Protect(name)
	if key == "" {
		return errors.InvalidInput("name", fmt.Sprintf("comparator name %q has no usable characters", name))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs[key] = fn
	return nil
}

// Get retrieves a comparator by name.
func (c *Catalog) Get(name string) (Func, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn, ok := c.funcs[naming.Protect(name)]
	return fn, ok
}

// Lookup is like Get but returns a NOT_FOUND error for unknown names.
func (c *Catalog) Lookup(name string) (Func, error) {
	fn, ok := c.Get(name)
	if !ok {
		return nil, errors.NotFound("comparator", name)
	}
	return fn, nil
}

// List returns sorted names of all registered comparators.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.funcs))
	for name := range c.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// compareOptions lets the go-cmp built-ins look into unexported struct
// fields of domain values.
var compareOptions = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// EqualFunc reports whether all values are deeply equal.
func EqualFunc(values ...any) (result any, err error) {
	defer recoverCompare(Equal, &err)
	for i := 1; i < len(values); i++ {
		if !cmp.Equal(values[0], values[i], compareOptions...) {
			return false, nil
		}
	}
	return true, nil
}

// DiffFunc returns a human-readable diff between the first two values.
// The result is empty when they are equal.
func DiffFunc(values ...any) (result any, err error) {
	if len(values) < 2 {
		return nil, errors.InvalidInput("values", "diff needs at least two values")
	}
	defer recoverCompare(Diff, &err)
	return cmp.Diff(values[0], values[1], compareOptions...), nil
}

// recoverCompare turns a go-cmp panic into an INVALID_INPUT error.
func recoverCompare(name string, err *error) {
	if r := recover(); r != nil {
		*err = errors.InvalidInput("values", fmt.Sprintf("%s cannot compare values: %v", name, r))
	}
}

// TextDiffFunc returns a line-oriented diff of two strings in
// diff-match-patch delta notation, or "" when they are equal.
func TextDiffFunc(values ...any) (any, error) {
	if len(values) < 2 {
		return nil, errors.InvalidInput("values", "text_diff needs at least two values")
	}
	before, ok1 := values[0].(string)
	after, ok2 := values[1].(string)
	if !ok1 || !ok2 {
		return nil, errors.InvalidInput("values", "text_diff compares strings")
	}
	if before == after {
		return "", nil
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	return dmp.DiffToDelta(diffs), nil
}
