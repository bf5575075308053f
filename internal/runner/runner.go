// Package runner drives benchmarking campaigns: it pairs a benchmark
// problem with an ask/tell optimizer and loops ask, evaluate, tell,
// tracing every trial and writing a final report.
package runner

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sohambasu07/momfbench/internal/bench"
	"github.com/sohambasu07/momfbench/internal/config"
	"github.com/sohambasu07/momfbench/internal/hpo"
	"github.com/sohambasu07/momfbench/internal/mo"
	"github.com/sohambasu07/momfbench/internal/opt"
	"github.com/sohambasu07/momfbench/internal/store"
)

// Runner executes campaigns against a store.
type Runner struct {
	store *store.FSStore
}

// New creates a runner persisting into the given store.
func New(st *store.FSStore) *Runner {
	return &Runner{store: st}
}

// Run executes one campaign synchronously and returns its report.
// Trials run strictly sequentially: each Ask is answered with its Tell
// before the next Ask, so at most one trial is ever pending.
func (r *Runner) Run(c *config.Campaign) (*store.Report, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	bm, err := bench.Get(c.Benchmark)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	runDir := r.store.RunDir(runID)

	optimizer, err := opt.New(c.Optimizer, &bm.Problem, opt.Settings{
		Seed:      c.Seed,
		OutputDir: filepath.Join(runDir, c.Optimizer),
		Eta:       c.Eta,
		Verbose:   c.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create optimizer %s: %w", c.Optimizer, err)
	}

	if err := checkSupport(&bm.Problem, optimizer.Support()); err != nil {
		return nil, fmt.Errorf("optimizer %s cannot run %s: %w", c.Optimizer, bm.Problem.Name, err)
	}

	trace, err := store.NewTraceWriter(r.store.BaseDir(), runID)
	if err != nil {
		return nil, err
	}
	defer trace.Close()

	slog.Info("campaign started",
		"run_id", runID,
		"campaign", c.Name,
		"benchmark", c.Benchmark,
		"optimizer", c.Optimizer,
		"trials", c.Trials,
		"seed", c.Seed,
	)

	start := time.Now()
	totalCost := 0.0

	type observation struct {
		configID string
		values   map[string]float64
		fitness  []float64
	}
	observations := make([]observation, 0, c.Trials)

	for trial := 0; trial < c.Trials; trial++ {
		query, err := optimizer.Ask()
		if err != nil {
			return nil, fmt.Errorf("trial %d ask: %w", trial, err)
		}

		values := bm.Eval(query.Config.Values, query.Fidelity)

		budget := 1.0
		if query.Fidelity != nil {
			budget = query.Fidelity.AsFloat()
		}
		totalCost += budget

		result := hpo.Result{Query: query, Values: values, BudgetCost: budget}
		if err := optimizer.Tell(result); err != nil {
			return nil, fmt.Errorf("trial %d tell: %w", trial, err)
		}

		record := store.TrialRecord{
			Trial:     trial,
			ConfigID:  query.Config.ID,
			Values:    values,
			Cost:      budget,
			Timestamp: time.Now(),
		}
		if query.Fidelity != nil {
			record.FidelityKey = query.Fidelity.Key
			record.Fidelity = query.Fidelity.AsFloat()
		}
		if err := trace.Write(record); err != nil {
			return nil, err
		}

		observations = append(observations, observation{
			configID: query.Config.ID,
			values:   values,
			fitness:  asMinimized(bm.Problem.Objectives, values),
		})

		if (trial+1)%25 == 0 {
			slog.Info("campaign progress", "run_id", runID, "trials_done", trial+1)
		}
	}

	if err := trace.Flush(); err != nil {
		return nil, err
	}

	// Pareto front over all observed trials, by minimize-oriented values.
	points := make([][]float64, len(observations))
	for i, obs := range observations {
		points[i] = obs.fitness
	}
	var front []store.ParetoPoint
	for _, idx := range mo.ParetoFront(points) {
		front = append(front, store.ParetoPoint{
			ConfigID: observations[idx].configID,
			Values:   observations[idx].values,
		})
	}

	report := &store.Report{
		RunID:          runID,
		Campaign:       c.Name,
		Benchmark:      c.Benchmark,
		Optimizer:      c.Optimizer,
		Seed:           c.Seed,
		Trials:         len(observations),
		TotalCost:      totalCost,
		ParetoFront:    front,
		ElapsedSeconds: time.Since(start).Seconds(),
		CreatedAt:      time.Now(),
	}
	if err := r.store.SaveReport(runID, report); err != nil {
		return nil, err
	}

	slog.Info("campaign complete",
		"run_id", runID,
		"trials", report.Trials,
		"front_size", len(front),
		"total_cost", totalCost,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return report, nil
}

// checkSupport rejects problem/optimizer pairings the optimizer has
// declared itself unable to handle, before any trial runs.
func checkSupport(p *hpo.Problem, s hpo.Support) error {
	switch p.Fidelities.(type) {
	case hpo.SingleFidelity:
		if !s.SingleFidelity {
			return fmt.Errorf("single-fidelity problems unsupported")
		}
	case hpo.ManyFidelities:
		if !s.ManyFidelity {
			return fmt.Errorf("many-fidelity problems unsupported")
		}
	}
	if len(p.Objectives) > 1 && !s.ManyObjectives {
		return fmt.Errorf("multi-objective problems unsupported")
	}
	if len(p.Costs) > 0 && !s.CostAware {
		return fmt.Errorf("cost-aware problems unsupported")
	}
	return nil
}

func asMinimized(objectives []hpo.Objective, values map[string]float64) []float64 {
	fitness := make([]float64, len(objectives))
	for i, obj := range objectives {
		fitness[i] = obj.Metric.AsMinimize(values[obj.Name])
	}
	return fitness
}
