// Package scenario declares scenario configurations and the registry that
// keeps one canonical instance per protected name.
//
// A scenario configuration bundles an ordered list of pipeline
// configurations, an optional recurrence frequency, the comparators used to
// reconcile data across runs, and free-form properties.
//
//	reg := scenario.NewRegistry()
//	cfg, err := reg.Create("Daily Sync", []*pipeline.Config{ingest, report},
//	    scenario.WithFrequency(frequency.Daily),
//	    scenario.WithComparators(comparator.Table{"orders": {comparator.EqualFunc}}),
//	)
//
// The comparator table is either absent or present. SetComparator creates it
// on first use; RemoveComparator fails with COMPARATOR_NOT_FOUND when the
// table or the entity is missing.
package scenario
