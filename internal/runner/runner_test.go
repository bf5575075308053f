package runner

import (
	"testing"

	"github.com/sohambasu07/momfbench/internal/config"
	"github.com/sohambasu07/momfbench/internal/hpo"
	"github.com/sohambasu07/momfbench/internal/store"
)

func testCampaign(t *testing.T, optimizer string) *config.Campaign {
	t.Helper()
	c := config.Default()
	c.Name = "test"
	c.Benchmark = "zdt1-mf"
	c.Optimizer = optimizer
	c.Trials = 30
	c.OutputDir = t.TempDir()
	return &c
}

func newTestRunner(t *testing.T, c *config.Campaign) (*Runner, *store.FSStore) {
	t.Helper()
	st, err := store.NewFSStore(c.OutputDir)
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	return New(st), st
}

func TestRunDEHBCampaign(t *testing.T) {
	c := testCampaign(t, "dehb")
	r, st := newTestRunner(t, c)

	report, err := r.Run(c)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Trials != c.Trials {
		t.Errorf("Trials = %d, want %d", report.Trials, c.Trials)
	}
	if report.Benchmark != "zdt1-mf" || report.Optimizer != "dehb" {
		t.Errorf("report identity mismatch: %+v", report)
	}
	if report.TotalCost <= 0 {
		t.Errorf("TotalCost = %v, want positive", report.TotalCost)
	}
	if len(report.ParetoFront) == 0 {
		t.Error("expected a nonempty Pareto front")
	}

	// The report is persisted and loadable.
	loaded, err := st.LoadReport(report.RunID)
	if err != nil {
		t.Fatalf("LoadReport: %v", err)
	}
	if loaded.Trials != report.Trials {
		t.Errorf("persisted trials = %d, want %d", loaded.Trials, report.Trials)
	}

	// The trace holds one record per trial.
	tr, err := store.NewTraceReader(st.BaseDir(), report.RunID)
	if err != nil {
		t.Fatalf("NewTraceReader: %v", err)
	}
	defer tr.Close()

	records, err := tr.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != c.Trials {
		t.Errorf("trace has %d records, want %d", len(records), c.Trials)
	}
	for i, rec := range records {
		if rec.Trial != i {
			t.Errorf("record %d has trial index %d", i, rec.Trial)
		}
		if rec.FidelityKey != "iterations" {
			t.Errorf("record %d fidelity key = %q", i, rec.FidelityKey)
		}
		if rec.Fidelity < 1 || rec.Fidelity > 100 {
			t.Errorf("record %d fidelity %v out of range", i, rec.Fidelity)
		}
		if len(rec.Values) != 2 {
			t.Errorf("record %d has %d objective values", i, len(rec.Values))
		}
	}
}

func TestRunRandomSearchCampaign(t *testing.T) {
	c := testCampaign(t, "random-search")
	c.Trials = 20
	r, _ := newTestRunner(t, c)

	report, err := r.Run(c)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Trials != 20 {
		t.Errorf("Trials = %d, want 20", report.Trials)
	}
	if len(report.ParetoFront) == 0 {
		t.Error("expected a nonempty Pareto front")
	}
}

func TestRunMaximizeObjectiveCampaign(t *testing.T) {
	c := testCampaign(t, "dehb")
	c.Benchmark = "toy-nas"
	c.Trials = 20
	r, _ := newTestRunner(t, c)

	report, err := r.Run(c)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The front is stored by raw values; accuracy stays positive even
	// though the optimizer saw it sign-flipped.
	for _, p := range report.ParetoFront {
		if p.Values["acc"] < 0 || p.Values["acc"] > 1 {
			t.Errorf("raw accuracy out of range in front: %v", p.Values["acc"])
		}
	}
}

func TestRunRejectsInvalidCampaign(t *testing.T) {
	c := testCampaign(t, "dehb")
	c.Trials = 0
	r, _ := newTestRunner(t, c)

	if _, err := r.Run(c); err == nil {
		t.Error("expected error for zero trials")
	}
}

func TestRunRejectsUnknownBenchmark(t *testing.T) {
	c := testCampaign(t, "dehb")
	c.Benchmark = "no-such-benchmark"
	r, _ := newTestRunner(t, c)

	if _, err := r.Run(c); err == nil {
		t.Error("expected error for unknown benchmark")
	}
}

func TestRunRejectsUnknownOptimizer(t *testing.T) {
	c := testCampaign(t, "no-such-optimizer")
	r, _ := newTestRunner(t, c)

	if _, err := r.Run(c); err == nil {
		t.Error("expected error for unknown optimizer")
	}
}

func TestCheckSupport(t *testing.T) {
	single := &hpo.Problem{
		Name:       "p",
		Fidelities: hpo.SingleFidelity{Key: "epochs", Def: hpo.FidelityDef{Min: 1, Max: 10}},
		Objectives: []hpo.Objective{{Name: "a"}, {Name: "b"}},
	}

	ok := hpo.Support{SingleFidelity: true, ManyObjectives: true}
	if err := checkSupport(single, ok); err != nil {
		t.Errorf("expected support, got %v", err)
	}

	if err := checkSupport(single, hpo.Support{ManyObjectives: true}); err == nil {
		t.Error("expected rejection of single-fidelity problem")
	}
	if err := checkSupport(single, hpo.Support{SingleFidelity: true}); err == nil {
		t.Error("expected rejection of multi-objective problem")
	}

	costly := &hpo.Problem{
		Name:       "p",
		Objectives: []hpo.Objective{{Name: "a"}},
		Costs:      []hpo.CostMetric{{Name: "runtime"}},
	}
	if err := checkSupport(costly, hpo.Support{}); err == nil {
		t.Error("expected rejection of cost-aware problem")
	}
}
