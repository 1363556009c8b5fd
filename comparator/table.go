package comparator

import (
	"slices"
	"sort"

	"github.com/kbukum/scenariokit/errors"
)

// Func compares values of one data entity taken from several runs and
// returns a comparison result.
type Func func(values ...any) (any, error)

// Table maps data-entity identifiers to ordered comparator lists.
// Every list in a Table is non-empty.
type Table map[string][]Func

// Append adds fn to the end of entityID's list, creating the list when the
// entity has none. Duplicates are kept.
func (t Table) Append(entityID string, fn Func) {
	t[entityID] = append(t[entityID], fn)
}

// Remove deletes every comparator registered for entityID.
// It returns a COMPARATOR_NOT_FOUND error when the entity has none.
func (t Table) Remove(entityID string) error {
	if _, ok := t[entityID]; !ok {
		return errors.ComparatorNotFound(entityID)
	}
	delete(t, entityID)
	return nil
}

// Get returns a copy of the comparators registered for entityID.
func (t Table) Get(entityID string) ([]Func, bool) {
	fns, ok := t[entityID]
	if !ok {
		return nil, false
	}
	return slices.Clone(fns), true
}

// Has reports whether entityID has comparators.
func (t Table) Has(entityID string) bool {
	_, ok := t[entityID]
	return ok
}

// EntityIDs returns the sorted data-entity identifiers in the table.
func (t Table) EntityIDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a copy whose lists can be mutated independently.
// Cloning a nil Table returns nil.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for id, fns := range t {
		out[id] = slices.Clone(fns)
	}
	return out
}

// Validate checks that no list is empty and no comparator is nil.
func (t Table) Validate() error {
	for _, id := range t.EntityIDs() {
		fns := t[id]
		if len(fns) == 0 {
			return errors.InvalidInput("comparators", "empty comparator list for data entity "+id)
		}
		for _, fn := range fns {
			if fn == nil {
				return errors.InvalidInput("comparators", "nil comparator for data entity "+id)
			}
		}
	}
	return nil
}

// FromMap converts a raw property value into a Table. It accepts a Table, a
// map[string][]Func, or a map[string]Func and rejects every other shape.
func FromMap(v any) (Table, error) {
	var t Table
	switch m := v.(type) {
	case Table:
		t = m.Clone()
	case map[string][]Func:
		t = Table(m).Clone()
	case map[string]Func:
		t = make(Table, len(m))
		for id, fn := range m {
			t[id] = []Func{fn}
		}
	default:
		return nil, errors.InvalidInput("comparators", "expected a mapping of data entity to comparator list")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
