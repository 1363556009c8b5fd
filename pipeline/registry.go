package pipeline

import (
	"github.com/kbukum/scenariokit/logger"
	"github.com/kbukum/scenariokit/repository"
)

// Registry stores pipeline configurations by protected name.
// Creating a pipeline under an existing name replaces the old entry.
type Registry struct {
	store *repository.Repository[*Config]
	log   *logger.Logger
}

// NewRegistry creates an empty Registry logging through log.
// A nil log uses the "pipeline.registry" component logger.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Get("pipeline.registry")
	}
	return &Registry{store: repository.New[*Config](), log: log}
}

// Create builds a pipeline configuration and stores it.
func (r *Registry) Create(name string, tasks []string, properties map[string]any) (*Config, error) {
	cfg, err := New(name, tasks, properties)
	if err != nil {
		return nil, err
	}
	return r.Add(cfg), nil
}

// Add stores an already built configuration and returns it.
func (r *Registry) Add(cfg *Config) *Config {
	_, _, replaced := r.store.Put(cfg.Name(), cfg)
	if replaced {
		r.log.Warn("pipeline overwritten", logger.Fields(logger.FieldPipeline, cfg.Name()))
	} else {
		r.log.Debug("pipeline registered", logger.Fields(logger.FieldPipeline, cfg.Name(), "tasks", len(cfg.tasks)))
	}
	return cfg
}

// Get retrieves a pipeline by name.
func (r *Registry) Get(name string) (*Config, bool) { return r.store.Get(name) }

// List returns sorted names of all pipelines.
func (r *Registry) List() []string { return r.store.List() }

// All returns every pipeline ordered by name.
func (r *Registry) All() []*Config { return r.store.All() }

// Len returns the number of pipelines.
func (r *Registry) Len() int { return r.store.Len() }
