package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Registry create outcomes.
const (
	OutcomeCreated     = "created"
	OutcomeOverwritten = "overwritten"
	OutcomeVersioned   = "versioned"
	OutcomeRejected    = "rejected"
	OutcomeInvalid     = "invalid"
)

// Metric instrument names.
const (
	MetricRegistryCreates = "scenariokit.registry.creates"
	MetricRegistryEntries = "scenariokit.registry.entries"
)

// RegistryMetrics holds the instruments registries report to.
type RegistryMetrics struct {
	creates metric.Int64Counter
	entries metric.Int64UpDownCounter
}

// NewRegistryMetrics creates registry instruments on the given meter.
func NewRegistryMetrics(meter metric.Meter) (*RegistryMetrics, error) {
	creates, err := meter.Int64Counter(MetricRegistryCreates,
		metric.WithDescription("Create calls by registry and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRegistryCreates, err)
	}

	entries, err := meter.Int64UpDownCounter(MetricRegistryEntries,
		metric.WithDescription("Number of entries held by each registry"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRegistryEntries, err)
	}

	return &RegistryMetrics{creates: creates, entries: entries}, nil
}

// RecordCreate records one create call. A new key also grows the entry count.
func (m *RegistryMetrics) RecordCreate(ctx context.Context, registry, outcome string) {
	if m == nil {
		return
	}
	m.creates.Add(ctx, 1, metric.WithAttributes(
		attribute.String("registry", registry),
		attribute.String("outcome", outcome),
	))
	if outcome == OutcomeCreated {
		m.entries.Add(ctx, 1, metric.WithAttributes(attribute.String("registry", registry)))
	}
}
