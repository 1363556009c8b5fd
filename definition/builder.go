package definition

import (
	"fmt"
	"slices"
	"sort"

	"github.com/kbukum/scenariokit/comparator"
	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/frequency"
	"github.com/kbukum/scenariokit/logger"
	"github.com/kbukum/scenariokit/naming"
	"github.com/kbukum/scenariokit/pipeline"
	"github.com/kbukum/scenariokit/scenario"
	"github.com/kbukum/scenariokit/validation"
)

// Builder turns documents into pipeline and scenario registries.
type Builder struct {
	catalog   *comparator.Catalog
	loader    pipeline.Loader
	pipelines *pipeline.Registry
	scenarios *scenario.Registry
	log       *logger.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithCatalog sets the catalog comparator names are resolved against.
// The default is comparator.DefaultCatalog.
func WithCatalog(c *comparator.Catalog) Option {
	return func(b *Builder) { b.catalog = c }
}

// WithLoader resolves pipelines that no document declares.
func WithLoader(l pipeline.Loader) Option {
	return func(b *Builder) { b.loader = l }
}

// WithPipelineRegistry builds into an existing pipeline registry.
func WithPipelineRegistry(r *pipeline.Registry) Option {
	return func(b *Builder) { b.pipelines = r }
}

// WithScenarioRegistry builds into an existing scenario registry, which
// also decides the duplicate policy.
func WithScenarioRegistry(r *scenario.Registry) Option {
	return func(b *Builder) { b.scenarios = r }
}

// WithLogger sets the builder's logger.
func WithLogger(l *logger.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.Get("definition")
	}
	if b.catalog == nil {
		b.catalog = comparator.DefaultCatalog()
	}
	if b.pipelines == nil {
		b.pipelines = pipeline.NewRegistry(b.log.WithComponent("pipeline.registry"))
	}
	if b.scenarios == nil {
		b.scenarios = scenario.NewRegistry(scenario.WithLogger(b.log.WithComponent("scenario.registry")))
	}
	return b
}

// Pipelines returns the pipeline registry being built into.
func (b *Builder) Pipelines() *pipeline.Registry { return b.pipelines }

// Scenarios returns the scenario registry being built into.
func (b *Builder) Scenarios() *scenario.Registry { return b.scenarios }

type resolved struct {
	name      string
	pipelines []*pipeline.Config
	opts      []scenario.Option
}

// Build validates doc, resolves every reference and registers the result.
// Nothing is registered unless the whole document resolves, including
// name collisions under the Reject policy; the returned error then lists
// every problem found.
func (b *Builder) Build(doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	declared := make(map[string]*pipeline.Config, len(doc.Pipelines))
	order := make([]*pipeline.Config, 0, len(doc.Pipelines))
	v := validation.New()
	for i, def := range doc.Pipelines {
		cfg, err := def.Build()
		if err != nil {
			v.Merge(fmt.Sprintf("pipelines[%d]", i), err)
			continue
		}
		declared[cfg.Name()] = cfg
		order = append(order, cfg)
	}

	scenarios := make([]*scenario.Config, 0, len(doc.Scenarios))
	for i, s := range doc.Scenarios {
		field := fmt.Sprintf("scenarios[%d]", i)
		r, err := b.resolve(s, declared, &order)
		if err != nil {
			v.Merge(field, err)
			continue
		}
		cfg, err := scenario.New(r.name, r.pipelines, r.opts...)
		if err != nil {
			v.Merge(field, err)
			continue
		}
		scenarios = append(scenarios, cfg)
	}
	if err := v.Error(); err != nil {
		return err
	}
	if err := b.checkTaken(scenarios); err != nil {
		return err
	}

	for _, cfg := range order {
		if existing, ok := b.pipelines.Get(cfg.Name()); ok && existing == cfg {
			continue
		}
		b.pipelines.Add(cfg)
	}
	for _, cfg := range scenarios {
		if _, err := b.scenarios.Add(cfg); err != nil {
			return err
		}
	}

	b.log.Info("definitions built", logger.Fields(
		"pipelines", len(order),
		"scenarios", len(scenarios),
	))
	return nil
}

// checkTaken fails with ALREADY_EXISTS when the scenario registry rejects
// duplicates and already holds one of the names.
func (b *Builder) checkTaken(scenarios []*scenario.Config) error {
	if b.scenarios.Policy() != scenario.Reject {
		return nil
	}
	var taken []string
	for _, cfg := range scenarios {
		if _, ok := b.scenarios.Get(cfg.Name()); ok {
			taken = append(taken, cfg.Name())
		}
	}
	if len(taken) == 0 {
		return nil
	}
	return errors.AlreadyExists("scenario", taken[0]).WithDetail("names", taken)
}

// resolve looks up the scenario's pipelines and comparators. Pipelines found
// through the loader are appended to order so they are registered too.
func (b *Builder) resolve(s Scenario, declared map[string]*pipeline.Config, order *[]*pipeline.Config) (resolved, error) {
	v := validation.New()

	pipes := make([]*pipeline.Config, 0, len(s.Pipelines))
	for i, ref := range s.Pipelines {
		cfg, err := b.pipeline(ref, declared)
		if err != nil {
			v.Merge(fmt.Sprintf("pipelines[%d]", i), err)
			continue
		}
		if !slices.Contains(*order, cfg) {
			*order = append(*order, cfg)
		}
		pipes = append(pipes, cfg)
	}

	var opts []scenario.Option
	f, err := frequency.Parse(s.Frequency)
	if err != nil {
		v.Merge("frequency", err)
	}
	opts = append(opts, scenario.WithFrequency(f))

	if s.Comparators != nil {
		table := comparator.Table{}
		for _, id := range sortedKeys(s.Comparators) {
			for j, name := range s.Comparators[id] {
				fn, err := b.catalog.Lookup(name)
				if err != nil {
					v.AddError(fmt.Sprintf("comparators.%s[%d]", id, j), fmt.Sprintf("unknown comparator %q", name))
					continue
				}
				table.Append(id, fn)
			}
		}
		opts = append(opts, scenario.WithComparators(table))
	}
	if len(s.Properties) > 0 {
		opts = append(opts, scenario.WithProperties(s.Properties))
	}

	if err := v.Error(); err != nil {
		return resolved{}, err
	}
	return resolved{name: s.Name, pipelines: pipes, opts: opts}, nil
}

func (b *Builder) pipeline(ref string, declared map[string]*pipeline.Config) (*pipeline.Config, error) {
	key := naming.Protect(ref)
	if cfg, ok := declared[key]; ok {
		return cfg, nil
	}
	if cfg, ok := b.pipelines.Get(ref); ok {
		return cfg, nil
	}
	if b.loader == nil {
		return nil, errors.NotFound("pipeline", ref)
	}
	def, err := b.loader.Load(ref)
	if err != nil {
		return nil, err
	}
	cfg, err := def.Build()
	if err != nil {
		return nil, err
	}
	if cfg.Name() != key {
		return nil, errors.InvalidInput("", fmt.Sprintf("pipeline %q is defined as %q", ref, def.Name))
	}
	declared[key] = cfg
	b.log.Debug("pipeline loaded", logger.Fields(logger.FieldPipeline, cfg.Name()))
	return cfg, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
