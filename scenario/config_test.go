package scenario

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/kbukum/scenariokit/comparator"
	"github.com/kbukum/scenariokit/errors"
	"github.com/kbukum/scenariokit/frequency"
	"github.com/kbukum/scenariokit/naming"
	"github.com/kbukum/scenariokit/pipeline"
)

func marker(label string) comparator.Func {
	return func(values ...any) (any, error) { return label, nil }
}

func labelsOf(t *testing.T, fns []comparator.Func) []string {
	t.Helper()
	out := make([]string, 0, len(fns))
	for _, fn := range fns {
		v, err := fn()
		if err != nil {
			t.Fatalf("comparator failed: %v", err)
		}
		out = append(out, v.(string))
	}
	return out
}

func assertLabels(t *testing.T, cfg *Config, entityID string, want ...string) {
	t.Helper()
	fns, ok := cfg.Comparator(entityID)
	if !ok {
		t.Fatalf("expected comparators for %q", entityID)
	}
	got := labelsOf(t, fns)
	if len(got) != len(want) {
		t.Fatalf("expected %v for %q, got %v", want, entityID, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v for %q, got %v", want, entityID, got)
		}
	}
}

func mustPipeline(t *testing.T, name string) *pipeline.Config {
	t.Helper()
	p, err := pipeline.New(name, nil, nil)
	if err != nil {
		t.Fatalf("pipeline.New(%q): %v", name, err)
	}
	return p
}

func TestNewProtectsName(t *testing.T) {
	cfg, err := New("  Sales Report ", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name() != "sales_report" {
		t.Errorf("expected protected name, got %q", cfg.Name())
	}
	if cfg.Name() != naming.Protect(cfg.Name()) {
		t.Error("name is not in protected form")
	}
}

func TestNewRejectsUnusableName(t *testing.T) {
	_, err := New("***", nil)
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestNewPreservesPipelineOrder(t *testing.T) {
	p1, p2, p3 := mustPipeline(t, "c"), mustPipeline(t, "a"), mustPipeline(t, "b")
	cfg, err := New("s", []*pipeline.Config{p1, p2, p3, p1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := cfg.Pipelines()
	if len(got) != 4 || got[0] != p1 || got[1] != p2 || got[2] != p3 || got[3] != p1 {
		t.Errorf("unexpected pipelines %v", pipeline.Names(got))
	}
}

func TestNewRejectsNilPipeline(t *testing.T) {
	_, err := New("s", []*pipeline.Config{nil})
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestFrequency(t *testing.T) {
	cfg, _ := New("s", nil)
	if _, ok := cfg.Frequency(); ok {
		t.Error("expected no frequency by default")
	}

	daily, _ := New("s", nil, WithFrequency(frequency.Daily))
	if f, ok := daily.Frequency(); !ok || f != frequency.Daily {
		t.Errorf("expected daily, got %v, %v", f, ok)
	}

	if _, err := New("s", nil, WithFrequency(frequency.Frequency(99))); err == nil {
		t.Error("expected error for unknown frequency")
	}
}

func TestComparatorsAbsentVersusEmpty(t *testing.T) {
	absent, _ := New("s", nil)
	if _, ok := absent.Comparators(); ok {
		t.Error("expected comparators to be absent by default")
	}

	nilTable, _ := New("s", nil, WithComparators(nil))
	if _, ok := nilTable.Comparators(); ok {
		t.Error("expected nil table to leave comparators absent")
	}

	empty, _ := New("s", nil, WithComparators(comparator.Table{}))
	tbl, ok := empty.Comparators()
	if !ok {
		t.Fatal("expected empty table to be present")
	}
	if len(tbl) != 0 {
		t.Errorf("expected empty table, got %v", tbl.EntityIDs())
	}
}

// P2
func TestSetComparator_AppendOrder(t *testing.T) {
	cfg, _ := New("s", nil)
	if err := cfg.SetComparator("e", marker("f1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.SetComparator("e", marker("f2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertLabels(t, cfg, "e", "f1", "f2")
}

func TestSetComparator_KeepsDuplicates(t *testing.T) {
	cfg, _ := New("s", nil)
	f := marker("f")
	_ = cfg.SetComparator("e", f)
	_ = cfg.SetComparator("e", f)
	assertLabels(t, cfg, "e", "f", "f")
}

// P3
func TestSetComparator_NewEntity(t *testing.T) {
	cfg, _ := New("s", nil, WithComparators(comparator.Table{"e1": {marker("a")}}))
	if err := cfg.SetComparator("e2", marker("f")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertLabels(t, cfg, "e1", "a")
	assertLabels(t, cfg, "e2", "f")
}

func TestSetComparator_PresentButEmptyTable(t *testing.T) {
	cfg, _ := New("s", nil, WithComparators(comparator.Table{}))
	_ = cfg.SetComparator("e", marker("f"))
	assertLabels(t, cfg, "e", "f")
}

func TestSetComparator_RejectsNil(t *testing.T) {
	cfg, _ := New("s", nil)
	err := cfg.SetComparator("e", nil)
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	if _, ok := cfg.Comparators(); ok {
		t.Error("rejected comparator must not create the table")
	}
}

// P4
func TestRemoveComparator_DeletesKey(t *testing.T) {
	cfg, _ := New("s", nil)
	_ = cfg.SetComparator("e", marker("f1"))
	_ = cfg.SetComparator("e", marker("f2"))

	if err := cfg.RemoveComparator("e"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl, ok := cfg.Comparators()
	if !ok {
		t.Fatal("expected table to stay present after removal")
	}
	if _, exists := tbl["e"]; exists {
		t.Error("expected key to be deleted, not emptied")
	}
}

// P5
func TestRemoveComparator_NotFound(t *testing.T) {
	t.Run("no table", func(t *testing.T) {
		cfg, _ := New("s", nil)
		err := cfg.RemoveComparator("e")
		if !stderrors.Is(err, ErrComparatorNotFound) {
			t.Fatalf("expected ErrComparatorNotFound, got %v", err)
		}
		if _, ok := cfg.Comparators(); ok {
			t.Error("failed removal must not create the table")
		}
	})

	t.Run("missing entity", func(t *testing.T) {
		cfg, _ := New("s", nil, WithComparators(comparator.Table{"e1": {marker("a")}}))
		err := cfg.RemoveComparator("e2")
		if !stderrors.Is(err, ErrComparatorNotFound) {
			t.Fatalf("expected ErrComparatorNotFound, got %v", err)
		}
		tbl, _ := cfg.Comparators()
		if len(tbl) != 1 {
			t.Errorf("expected table unchanged, got %v", tbl.EntityIDs())
		}
		assertLabels(t, cfg, "e1", "a")
	})

	t.Run("error details", func(t *testing.T) {
		cfg, _ := New("Daily Sync", nil)
		appErr, ok := errors.AsAppError(cfg.RemoveComparator("ds2"))
		if !ok {
			t.Fatal("expected an AppError")
		}
		if appErr.Details["entity_id"] != "ds2" || appErr.Details["scenario"] != "daily_sync" {
			t.Errorf("unexpected details %v", appErr.Details)
		}
	})
}

// P6
func TestWithProperties_ExtractsReservedKey(t *testing.T) {
	f := marker("f")
	cfg, err := New("s", nil, WithProperties(map[string]any{
		ComparatorKey: map[string][]comparator.Func{"e": {f}},
		"other":       1,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tbl, ok := cfg.Comparators()
	if !ok || len(tbl) != 1 {
		t.Fatalf("expected one comparator entry, got %v", tbl.EntityIDs())
	}
	assertLabels(t, cfg, "e", "f")

	props := cfg.Properties()
	if _, exists := props[ComparatorKey]; exists {
		t.Error("reserved key must not remain in properties")
	}
	if len(props) != 1 || props["other"] != 1 {
		t.Errorf("expected {other: 1}, got %v", props)
	}
}

func TestWithProperties_RejectsMalformedComparators(t *testing.T) {
	_, err := New("s", nil, WithProperties(map[string]any{ComparatorKey: "equal"}))
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestWithProperties_CopiesInput(t *testing.T) {
	props := map[string]any{"owner": "data", ComparatorKey: comparator.Table{"e": {marker("f")}}}
	cfg, _ := New("s", nil, WithProperties(props))

	if _, ok := props[ComparatorKey]; !ok {
		t.Error("caller's map must not be modified")
	}
	props["owner"] = "changed"
	if v, _ := cfg.Property("owner"); v != "data" {
		t.Errorf("expected property copy, got %v", v)
	}
	returned := cfg.Properties()
	returned["owner"] = "changed"
	if v, _ := cfg.Property("owner"); v != "data" {
		t.Error("Properties must return a copy")
	}
}

func TestWithProperty(t *testing.T) {
	cfg, _ := New("s", nil, WithProperty("a", 1), WithProperty("b", 2))
	if len(cfg.Properties()) != 2 {
		t.Errorf("expected two properties, got %v", cfg.Properties())
	}
}

func TestComparatorsReturnsCopy(t *testing.T) {
	cfg, _ := New("s", nil)
	_ = cfg.SetComparator("e", marker("a"))

	tbl, _ := cfg.Comparators()
	tbl.Append("e", marker("b"))
	tbl.Append("x", marker("c"))

	assertLabels(t, cfg, "e", "a")
	if _, ok := cfg.Comparator("x"); ok {
		t.Error("mutating the returned table changed the configuration")
	}
}

func TestRevisionIsUnique(t *testing.T) {
	a, _ := New("s", nil)
	b, _ := New("s", nil)
	if a.Revision() == b.Revision() {
		t.Error("expected distinct revisions")
	}
}

func TestConcurrentComparatorMutation(t *testing.T) {
	cfg, _ := New("s", nil)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = cfg.SetComparator("e", marker("f"))
			cfg.Comparators()
		}()
	}
	wg.Wait()

	fns, _ := cfg.Comparator("e")
	if len(fns) != 100 {
		t.Errorf("expected 100 comparators, got %d", len(fns))
	}
}
