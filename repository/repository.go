// Package repository provides the keyed store behind every configuration
// registry: entries live under protected names and can be looked up by any
// spelling that protects to the same key.
package repository

import (
	"sort"
	"sync"

	"github.com/kbukum/scenariokit/naming"
)

// Repository is a concurrency-safe map from protected name to T.
type Repository[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// New creates an empty Repository.
func New[T any]() *Repository[T] {
	return &Repository[T]{entries: make(map[string]T)}
}

// Put stores value under the protected form of name and returns the key used
// together with the entry it replaced, if any.
func (r *Repository[T]) Put(name string, value T) (key string, prev T, replaced bool) {
	key = naming.Protect(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, replaced = r.entries[key]
	r.entries[key] = value
	return key, prev, replaced
}

// PutIfAbsent stores value only when no entry exists under name's protected
// form. It reports whether the value was stored.
func (r *Repository[T]) PutIfAbsent(name string, value T) (key string, stored bool) {
	key = naming.Protect(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; exists {
		return key, false
	}
	r.entries[key] = value
	return key, true
}

// Get retrieves an entry by name.
func (r *Repository[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[naming.Protect(name)]
	return v, ok
}

// Has reports whether an entry exists under name's protected form.
func (r *Repository[T]) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns sorted keys of all entries.
func (r *Repository[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedKeys()
}

// All returns every entry ordered by key.
func (r *Repository[T]) All() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := r.sortedKeys()
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.entries[k])
	}
	return out
}

// Len returns the number of entries.
func (r *Repository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Repository[T]) sortedKeys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
