package scenario

import (
	"context"
	"slices"
	"sync"

	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/logger"
	"github.com/kbukum/scenariokit/naming"
	"github.com/kbukum/scenariokit/observability"
	"github.com/kbukum/scenariokit/pipeline"
	"github.com/kbukum/scenariokit/repository"
)

const registryName = "scenario"

// Registry stores scenario configurations by protected name.
//
// Create returns the same instance it stores; callers that mutate its
// comparators are mutating the registered configuration.
type Registry struct {
	mu      sync.Mutex
	store   *repository.Repository[*Config]
	history map[string][]*Config
	policy  DuplicatePolicy
	log     *logger.Logger
	metrics *observability.RegistryMetrics
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDuplicatePolicy sets how Create treats names that are already taken.
func WithDuplicatePolicy(p DuplicatePolicy) RegistryOption {
	return func(r *Registry) { r.policy = p }
}

// WithLogger sets the registry's logger.
func WithLogger(l *logger.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics makes the registry report create outcomes.
func WithMetrics(m *observability.RegistryMetrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry creates an empty Registry using the Overwrite policy.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		store:   repository.New[*Config](),
		history: make(map[string][]*Config),
		policy:  Overwrite,
		log:     logger.Get("scenario.registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the registry's duplicate policy.
func (r *Registry) Policy() DuplicatePolicy { return r.policy }

// Create builds a scenario configuration with New and stores it under its
// protected name according to the registry's duplicate policy.
func (r *Registry) Create(name string, pipelines []*pipeline.Config, opts ...Option) (*Config, error) {
	cfg, err := New(name, pipelines, opts...)
	if err != nil {
		r.metrics.RecordCreate(context.Background(), registryName, observability.OutcomeInvalid)
		return nil, err
	}
	return r.Add(cfg)
}

// Add stores an already built configuration according to the duplicate
// policy and returns it.
func (r *Registry) Add(cfg *Config) (*Config, error) {
	ctx := context.Background()
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cfg.Name()
	if r.policy == Reject {
		if _, stored := r.store.PutIfAbsent(key, cfg); !stored {
			r.metrics.RecordCreate(ctx, registryName, observability.OutcomeRejected)
			return nil, errors.AlreadyExists("scenario", key)
		}
		r.registered(ctx, cfg)
		return cfg, nil
	}

	_, prev, replaced := r.store.Put(key, cfg)
	if !replaced {
		r.registered(ctx, cfg)
		return cfg, nil
	}

	fields := logger.Fields(
		logger.FieldScenario, key,
		logger.FieldPolicy, r.policy.String(),
		logger.FieldRevision, cfg.Revision().String(),
		"previous_revision", prev.Revision().String(),
	)
	if r.policy == Versioned {
		r.history[key] = append(r.history[key], prev)
		fields["versions"] = len(r.history[key]) + 1
		r.log.Info("scenario replaced by new version", fields)
		r.metrics.RecordCreate(ctx, registryName, observability.OutcomeVersioned)
		return cfg, nil
	}
	r.log.Warn("scenario overwritten", fields)
	r.metrics.RecordCreate(ctx, registryName, observability.OutcomeOverwritten)
	return cfg, nil
}

func (r *Registry) registered(ctx context.Context, cfg *Config) {
	r.log.Debug("scenario registered", logger.Fields(
		logger.FieldScenario, cfg.Name(),
		logger.FieldRevision, cfg.Revision().String(),
		"pipelines", len(cfg.pipelines),
	))
	r.metrics.RecordCreate(ctx, registryName, observability.OutcomeCreated)
}

// Get retrieves a scenario configuration by name; the name is protected
// before lookup.
func (r *Registry) Get(name string) (*Config, bool) { return r.store.Get(name) }

// Lookup is like Get but returns a NOT_FOUND error for unknown names.
func (r *Registry) Lookup(name string) (*Config, error) {
	cfg, ok := r.store.Get(name)
	if !ok {
		return nil, errors.NotFound("scenario", name)
	}
	return cfg, nil
}

// List returns sorted names of all scenario configurations.
func (r *Registry) List() []string { return r.store.List() }

// All returns every scenario configuration ordered by name.
func (r *Registry) All() []*Config { return r.store.All() }

// Len returns the number of scenario configurations.
func (r *Registry) Len() int { return r.store.Len() }

// History returns the configurations replaced under name, oldest first.
// It is only populated by the Versioned policy.
func (r *Registry) History(name string) []*Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.history[naming.Protect(name)])
}
