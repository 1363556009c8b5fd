package definition

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/pipeline"
	"github.com/kbukum/scenariokit/scenario"
	"github.com/kbukum/scenariokit/validation"
)

// Document is a set of pipeline and scenario definitions.
type Document struct {
	Pipelines []pipeline.Definition `yaml:"pipelines,omitempty"`
	Scenarios []Scenario            `yaml:"scenarios,omitempty"`
}

// Scenario is the YAML form of a scenario configuration.
type Scenario struct {
	// Name is the scenario identifier; it is protected when built.
	Name string `yaml:"name" validate:"required,name"`
	// Pipelines references pipelines by name, in order.
	Pipelines []string `yaml:"pipelines,omitempty" validate:"dive,required"`
	// Frequency is one of daily, weekly, monthly, quarterly or yearly.
	Frequency string `yaml:"frequency,omitempty" validate:"omitempty,frequency"`
	// Comparators maps data-entity identifiers to catalog comparator
	// names. Omitting the key leaves the comparators absent; an empty
	// mapping makes them present but empty.
	Comparators map[string][]string `yaml:"comparators,omitempty"`
	// Properties holds free-form settings.
	Properties map[string]any `yaml:"properties,omitempty"`
}

// Parse decodes a document. Unknown keys are rejected. An empty input
// yields an empty document.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.InvalidInput("document", "malformed YAML").WithCause(err)
	}
	return &doc, nil
}

// Load reads and parses a document file. Files ending in .hcl are parsed
// with ParseHCL, everything else as YAML.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("definition file", path).WithCause(err)
		}
		return nil, errors.Internal(err).WithDetail("path", path)
	}
	parse := Parse
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		parse = func(data []byte) (*Document, error) { return ParseHCL(data, path) }
	}
	doc, err := parse(data)
	if err != nil {
		return nil, errors.Wrap(err).WithDetail("path", path)
	}
	return doc, nil
}

// LoadAll loads every file and merges them in order.
func LoadAll(paths ...string) (*Document, error) {
	docs := make([]*Document, 0, len(paths))
	for _, path := range paths {
		doc, err := Load(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return Merge(docs...), nil
}

// Merge concatenates documents. Later definitions of the same name are
// kept; Validate reports them as duplicates.
func Merge(docs ...*Document) *Document {
	out := &Document{}
	for _, d := range docs {
		if d == nil {
			continue
		}
		out.Pipelines = append(out.Pipelines, d.Pipelines...)
		out.Scenarios = append(out.Scenarios, d.Scenarios...)
	}
	return out
}

// Validate checks the document on its own: required fields, usable names,
// known frequencies, names that collide once protected, non-empty
// comparator lists and misuse of the reserved comparators property.
// References to pipelines and comparators are resolved by Builder.
func (d *Document) Validate() error {
	v := validation.New()

	names := make([]string, len(d.Pipelines))
	for i, p := range d.Pipelines {
		names[i] = p.Name
		v.Merge(fmt.Sprintf("pipelines[%d]", i), validation.Validate(p))
	}
	v.Unique("pipelines", names)

	names = make([]string, len(d.Scenarios))
	for i, s := range d.Scenarios {
		prefix := fmt.Sprintf("scenarios[%d]", i)
		names[i] = s.Name
		v.Merge(prefix, validation.Validate(s))
		for _, id := range sortedKeys(s.Comparators) {
			v.Custom(len(s.Comparators[id]) > 0, prefix+".comparators."+id, "must list at least one comparator")
		}
		_, reserved := s.Properties[scenario.ComparatorKey]
		v.Custom(!reserved, prefix+".properties."+scenario.ComparatorKey, "is reserved; use the comparators key")
	}
	v.Unique("scenarios", names)

	return v.Error()
}
