package opt

import (
	"fmt"
	"os"

	"github.com/sohambasu07/momfbench/internal/dehb"
	"github.com/sohambasu07/momfbench/internal/hpo"
	"github.com/sohambasu07/momfbench/internal/space"
)

// defaultEta keeps 1/eta configurations per successive-halving round.
const defaultEta = 3

func init() {
	Register("dehb", func(problem *hpo.Problem, s Settings) (Optimizer, error) {
		return NewDEHB(problem, s)
	})
}

// DEHBAdapter wraps the dehb engine behind the harness's ask/tell
// contract. It converts the problem descriptor into engine options at
// construction, and translates Query/Result to and from the engine's
// Job/Report protocol.
//
// The engine's Job is round-tripped verbatim through Query.OptimizerInfo;
// the adapter performs no trial tracking of its own.
type DEHBAdapter struct {
	problem  *hpo.Problem
	engine   *dehb.DEHB
	fidelity hpo.SingleFidelity
}

// NewDEHB creates a DEHB adapter for the given problem. The problem
// must have a parametric configuration space and exactly one scalar
// fidelity dimension; anything else is rejected up front. The output
// directory is created if absent and receives the engine's incumbent
// archive. The engine is pinned to a single worker: exactly one trial
// may be pending between an Ask and its matching Tell.
func NewDEHB(problem *hpo.Problem, s Settings) (*DEHBAdapter, error) {
	var ps *space.ParamSpace
	switch sp := problem.Space.(type) {
	case *space.ParamSpace:
		ps = sp
	case *space.Tabular:
		return nil, fmt.Errorf("%w: problem %s", ErrTabularSpace, problem.Name)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidSpace, problem.Space)
	}

	var fid hpo.SingleFidelity
	switch f := problem.Fidelities.(type) {
	case nil:
		return nil, fmt.Errorf("%w: problem %s", ErrMissingFidelity, problem.Name)
	case hpo.SingleFidelity:
		fid = f
	case hpo.ManyFidelities:
		return nil, fmt.Errorf("%w: problem %s", ErrManyFidelity, problem.Name)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidFidelity, problem.Fidelities)
	}

	if err := os.MkdirAll(s.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	eta := s.Eta
	if eta == 0 {
		eta = defaultEta
	}

	engine, err := dehb.New(dehb.Options{
		Space:       ps,
		MinFidelity: fid.Def.Min,
		MaxFidelity: fid.Def.Max,
		Eta:         eta,
		Seed:        s.Seed,
		Workers:     1,
		OutputPath:  s.OutputDir,
		Verbose:     s.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dehb engine: %w", err)
	}

	return &DEHBAdapter{problem: problem, engine: engine, fidelity: fid}, nil
}

func (a *DEHBAdapter) Name() string { return "dehb" }

// Support: single fidelity, many objectives; no cost awareness, no
// tabular spaces, no continuations.
func (a *DEHBAdapter) Support() hpo.Support {
	return hpo.Support{
		SingleFidelity: true,
		ManyObjectives: true,
	}
}

// Ask requests one pending trial from the engine. The fidelity value is
// coerced to an int when the problem's fidelity is integer-kinded, and
// the trial name is synthesized from the engine's config counter. The
// raw engine Job rides along as the query's opaque optimizer info.
func (a *DEHBAdapter) Ask() (hpo.Query, error) {
	job, err := a.engine.Ask()
	if err != nil {
		return hpo.Query{}, fmt.Errorf("dehb ask: %w", err)
	}

	var value any
	switch f := a.problem.Fidelities.(type) {
	case hpo.SingleFidelity:
		if f.Def.Kind == hpo.FidelityInt {
			value = int(job.Fidelity)
		} else {
			value = job.Fidelity
		}
	case hpo.ManyFidelities:
		return hpo.Query{}, fmt.Errorf("%w: problem %s", ErrManyFidelity, a.problem.Name)
	default:
		return hpo.Query{}, fmt.Errorf("%w: %T", ErrInvalidFidelity, a.problem.Fidelities)
	}

	return hpo.Query{
		Config: hpo.Config{
			ID:     fmt.Sprintf("trial_%d", job.ConfigID),
			Values: job.Config,
		},
		Fidelity:      &hpo.FidelityValue{Key: a.fidelity.Key, Value: value},
		OptimizerInfo: job,
	}, nil
}

// Tell converts each declared objective's raw value into
// minimize-oriented form, in declaration order, and forwards the
// fitness list together with the result's budget cost to the engine.
func (a *DEHBAdapter) Tell(result hpo.Result) error {
	if len(a.problem.Objectives) == 0 {
		return fmt.Errorf("%w: problem %s declares no objectives", ErrInvalidObjectives, a.problem.Name)
	}
	if result.Values == nil {
		return fmt.Errorf("%w: result has no objective values", ErrInvalidObjectives)
	}

	// Cost-aware feedback is not implemented. The engine takes a cost
	// value in its report but only records it; scheduling never reads it.
	if len(a.problem.Costs) != 0 {
		return fmt.Errorf("%w: problem %s declares %d cost metric(s)",
			ErrCostAware, a.problem.Name, len(a.problem.Costs))
	}

	fitness := make([]float64, len(a.problem.Objectives))
	for i, obj := range a.problem.Objectives {
		v, ok := result.Values[obj.Name]
		if !ok {
			return fmt.Errorf("%w: result is missing objective %q", ErrInvalidObjectives, obj.Name)
		}
		fitness[i] = obj.Metric.AsMinimize(v)
	}

	job, ok := result.Query.OptimizerInfo.(*dehb.Job)
	if !ok {
		return fmt.Errorf("%w: got %T", ErrForeignInfo, result.Query.OptimizerInfo)
	}

	if err := a.engine.Tell(job, dehb.Report{Fitness: fitness, Cost: result.BudgetCost}); err != nil {
		return fmt.Errorf("dehb tell: %w", err)
	}
	return nil
}

// Incumbents exposes the engine's nondominated archive for reporting.
func (a *DEHBAdapter) Incumbents() []dehb.Incumbent {
	return a.engine.Incumbents()
}
