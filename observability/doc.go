// Package observability wires OpenTelemetry metrics into scenariokit
// registries.
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("scenarioctl"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewRegistryMetrics(observability.Meter("scenariokit"))
//	reg := scenario.NewRegistry(scenario.WithMetrics(metrics))
//
// A nil *RegistryMetrics records nothing, so registries work without it.
package observability
