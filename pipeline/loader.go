package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/naming"
)

// Definition is the YAML form of a pipeline configuration.
type Definition struct {
	// Name is the pipeline identifier.
	Name string `yaml:"name" validate:"required,name"`
	// Tasks lists task references in execution order.
	Tasks []string `yaml:"tasks,omitempty" validate:"dive,required"`
	// Properties holds free-form settings.
	Properties map[string]any `yaml:"properties,omitempty"`
}

// Build converts the definition into a Config.
func (d Definition) Build() (*Config, error) {
	return New(d.Name, d.Tasks, d.Properties)
}

// Loader loads pipeline definitions by name.
type Loader interface {
	Load(name string) (*Definition, error)
}

// FileLoader loads pipeline definitions from YAML files on disk.
type FileLoader struct {
	dirs []string
}

// NewFileLoader creates a loader that searches the given directories for pipeline YAML files.
func NewFileLoader(dirs ...string) *FileLoader {
	return &FileLoader{dirs: dirs}
}

// Load searches for {name}.yaml or {name}.yml in each directory and one
// level of subdirectories, trying the name as given and then its protected
// form. A file that fails to parse, or that defines a pipeline under a
// different protected name, is an error.
func (l *FileLoader) Load(name string) (*Definition, error) {
	want := naming.Protect(name)
	stems := []string{name}
	if want != name {
		stems = append(stems, want)
	}
	for _, dir := range l.dirs {
		for _, stem := range stems {
			for _, ext := range []string{".yaml", ".yml"} {
				paths := []string{filepath.Join(dir, stem+ext)}
				matches, _ := filepath.Glob(filepath.Join(dir, "*", stem+ext))
				for _, path := range append(paths, matches...) {
					d, err := load(path, want)
					if os.IsNotExist(err) {
						continue
					}
					return d, err
				}
			}
		}
	}
	return nil, errors.NotFound("pipeline", name).WithDetail("dirs", l.dirs)
}

func load(path, want string) (*Definition, error) {
	d, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if got := naming.Protect(d.Name); got != want {
		return nil, errors.InvalidInput("name", fmt.Sprintf("%s defines pipeline %q, want %q", path, got, want)).
			WithDetail("path", path)
	}
	return d, nil
}

// LoadFile reads a single pipeline definition. A definition without a name
// takes the file's base name.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.InvalidInput("pipeline", fmt.Sprintf("parsing %s", path)).WithCause(err)
	}
	if d.Name == "" {
		base := filepath.Base(path)
		d.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	return &d, nil
}
