// Package hpo defines the harness-native data model for hyperparameter
// optimization: problems, queries, results and optimizer capability
// metadata. Optimizer adapters translate between these types and
// whatever their wrapped library speaks.
package hpo

import (
	"fmt"

	"github.com/sohambasu07/momfbench/internal/space"
)

// Problem is an immutable description of an optimization problem: its
// configuration space, fidelity definition, objectives and optional
// cost declarations.
type Problem struct {
	Name       string
	Space      space.Space
	Fidelities FidelitySpec
	Objectives []Objective
	Costs      []CostMetric
}

// Validate checks structural well-formedness. It does not enforce any
// optimizer's capability restrictions; those live with each adapter.
func (p *Problem) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("problem: name must not be empty")
	}
	if p.Space == nil {
		return fmt.Errorf("problem %s: no configuration space", p.Name)
	}
	if ps, ok := p.Space.(*space.ParamSpace); ok {
		if err := ps.Validate(); err != nil {
			return fmt.Errorf("problem %s: %w", p.Name, err)
		}
	}
	if len(p.Objectives) == 0 {
		return fmt.Errorf("problem %s: no objectives declared", p.Name)
	}
	seen := make(map[string]bool, len(p.Objectives))
	for _, obj := range p.Objectives {
		if obj.Name == "" {
			return fmt.Errorf("problem %s: objective with empty name", p.Name)
		}
		if seen[obj.Name] {
			return fmt.Errorf("problem %s: duplicate objective %q", p.Name, obj.Name)
		}
		seen[obj.Name] = true
	}
	if single, ok := p.Fidelities.(SingleFidelity); ok {
		if !(single.Def.Min < single.Def.Max) {
			return fmt.Errorf("problem %s: fidelity min %v must be below max %v",
				p.Name, single.Def.Min, single.Def.Max)
		}
		if single.Def.Min <= 0 {
			return fmt.Errorf("problem %s: fidelity min must be positive", p.Name)
		}
	}
	return nil
}

// Config is one named configuration with raw parameter values.
type Config struct {
	ID     string
	Values map[string]any
}

// Query is a single evaluation request produced by an optimizer's Ask.
//
// OptimizerInfo is an opaque token the optimizer attached to the query.
// Callers must round-trip it unchanged on the matching Tell and never
// interpret it.
type Query struct {
	Config        Config
	Fidelity      *FidelityValue
	OptimizerInfo any
}

// Result reports the outcome of evaluating a Query. Values holds the
// raw objective values keyed by objective name; BudgetCost is the
// budget consumed by the evaluation (typically the fidelity value).
type Result struct {
	Query      Query
	Values     map[string]float64
	BudgetCost float64
}

// Support declares which problem features an optimizer can handle. The
// benchmarking loop checks it before pairing an optimizer with a
// problem.
type Support struct {
	SingleFidelity bool
	ManyFidelity   bool
	ManyObjectives bool
	CostAware      bool
	Tabular        bool
	Continuations  bool
}
