package definition

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/pipeline"
)

// hclFile is the HCL form of a Document:
//
//	pipeline "ingest" {
//	  tasks = ["extract", "load"]
//	}
//
//	scenario "Daily Sync" {
//	  pipelines   = ["ingest"]
//	  frequency   = "daily"
//	  comparators = { ds1 = ["equal"] }
//	}
type hclFile struct {
	Pipelines []hclPipeline `hcl:"pipeline,block"`
	Scenarios []hclScenario `hcl:"scenario,block"`
}

type hclPipeline struct {
	Name       string            `hcl:"name,label"`
	Tasks      []string          `hcl:"tasks,optional"`
	Properties map[string]string `hcl:"properties,optional"`
}

type hclScenario struct {
	Name        string              `hcl:"name,label"`
	Pipelines   []string            `hcl:"pipelines,optional"`
	Frequency   string              `hcl:"frequency,optional"`
	Comparators map[string][]string `hcl:"comparators,optional"`
	Properties  map[string]string   `hcl:"properties,optional"`
}

// ParseHCL decodes a document written in HCL. filename is only used in
// diagnostics. Unknown blocks and attributes are rejected.
func ParseHCL(data []byte, filename string) (*Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.InvalidInput("document", "malformed HCL").WithCause(diags)
	}

	var root hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, errors.InvalidInput("document", "undecodable HCL").WithCause(diags)
	}

	doc := &Document{}
	for _, p := range root.Pipelines {
		doc.Pipelines = append(doc.Pipelines, pipeline.Definition{
			Name:       p.Name,
			Tasks:      p.Tasks,
			Properties: anyMap(p.Properties),
		})
	}
	for _, s := range root.Scenarios {
		doc.Scenarios = append(doc.Scenarios, Scenario{
			Name:        s.Name,
			Pipelines:   s.Pipelines,
			Frequency:   s.Frequency,
			Comparators: s.Comparators,
			Properties:  anyMap(s.Properties),
		})
	}
	return doc, nil
}

func anyMap(m map[string]string) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
