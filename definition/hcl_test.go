package definition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/frequency"
)

const dailySyncHCL = `
pipeline "Ingest" {
  tasks = ["extract", "load"]
}

pipeline "report" {}

scenario "Daily Sync" {
  pipelines   = ["ingest", "report"]
  frequency   = "daily"
  comparators = {
    ds1 = ["equal", "text_diff"]
  }
  properties = {
    owner = "data-team"
  }
}

scenario "adhoc" {
  comparators = {}
}
`

func TestParseHCL(t *testing.T) {
	doc, err := ParseHCL([]byte(dailySyncHCL), "defs.hcl")
	require.NoError(t, err)
	require.Len(t, doc.Pipelines, 2)
	require.Len(t, doc.Scenarios, 2)

	assert.Equal(t, "Ingest", doc.Pipelines[0].Name)
	assert.Equal(t, []string{"extract", "load"}, doc.Pipelines[0].Tasks)

	s := doc.Scenarios[0]
	assert.Equal(t, "Daily Sync", s.Name)
	assert.Equal(t, map[string][]string{"ds1": {"equal", "text_diff"}}, s.Comparators)
	assert.Equal(t, map[string]any{"owner": "data-team"}, s.Properties)
	assert.NotNil(t, doc.Scenarios[1].Comparators)
	assert.Empty(t, doc.Scenarios[1].Comparators)
}

func TestParseHCLErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":          `scenario "a" {`,
		"unknown block":   `schedule "a" {}`,
		"unknown field":   `scenario "a" { every = "day" }`,
		"top level value": `name = "a"`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseHCL([]byte(src), "bad.hcl")
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
		})
	}
}

func TestLoadHCLAndBuild(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "defs.hcl", dailySyncHCL)

	doc, err := Load(path)
	require.NoError(t, err)

	b := newBuilder()
	require.NoError(t, b.Build(doc))

	cfg, ok := b.Scenarios().Get("daily_sync")
	require.True(t, ok)
	f, _ := cfg.Frequency()
	assert.Equal(t, frequency.Daily, f)

	adhoc, _ := b.Scenarios().Get("adhoc")
	table, present := adhoc.Comparators()
	assert.True(t, present)
	assert.Empty(t, table)
}
