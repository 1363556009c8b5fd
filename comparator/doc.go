// Package comparator holds the functions used to reconcile data produced by
// repeated scenario runs.
//
// A Table maps data-entity identifiers to the ordered list of comparators
// registered against them. Appending never deduplicates; removal always drops
// the whole entry for an entity. A Catalog names comparators so declarative
// documents can reference them.
package comparator
