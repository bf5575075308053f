package opt

import (
	"fmt"
	"math/rand"

	"github.com/sohambasu07/momfbench/internal/hpo"
	"github.com/sohambasu07/momfbench/internal/space"
)

func init() {
	Register("random-search", func(problem *hpo.Problem, s Settings) (Optimizer, error) {
		return NewRandomSearch(problem, s)
	})
}

// RandomSearch samples configurations uniformly, always at maximum
// fidelity. It ignores results entirely, which makes it the baseline
// every other optimizer has to beat.
type RandomSearch struct {
	problem *hpo.Problem
	rng     *rand.Rand
	next    int
}

// NewRandomSearch creates a random-search baseline for the problem.
func NewRandomSearch(problem *hpo.Problem, s Settings) (*RandomSearch, error) {
	switch problem.Space.(type) {
	case *space.ParamSpace, *space.Tabular:
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidSpace, problem.Space)
	}
	switch problem.Fidelities.(type) {
	case nil, hpo.SingleFidelity:
	case hpo.ManyFidelities:
		return nil, fmt.Errorf("%w: problem %s", ErrManyFidelity, problem.Name)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidFidelity, problem.Fidelities)
	}
	return &RandomSearch{
		problem: problem,
		rng:     rand.New(rand.NewSource(s.Seed)),
	}, nil
}

func (r *RandomSearch) Name() string { return "random-search" }

func (r *RandomSearch) Support() hpo.Support {
	return hpo.Support{
		SingleFidelity: true,
		ManyObjectives: true,
		Tabular:        true,
	}
}

// Ask samples one configuration at full fidelity.
func (r *RandomSearch) Ask() (hpo.Query, error) {
	var values map[string]any
	switch sp := r.problem.Space.(type) {
	case *space.ParamSpace:
		values = sp.Sample(r.rng)
	case *space.Tabular:
		values = sp.Sample(r.rng)
	default:
		return hpo.Query{}, fmt.Errorf("%w: %T", ErrInvalidSpace, r.problem.Space)
	}

	var fidelity *hpo.FidelityValue
	if single, ok := r.problem.Fidelities.(hpo.SingleFidelity); ok {
		var value any = single.Def.Max
		if single.Def.Kind == hpo.FidelityInt {
			value = int(single.Def.Max)
		}
		fidelity = &hpo.FidelityValue{Key: single.Key, Value: value}
	}

	id := r.next
	r.next++

	return hpo.Query{
		Config:   hpo.Config{ID: fmt.Sprintf("trial_%d", id), Values: values},
		Fidelity: fidelity,
	}, nil
}

// Tell is a no-op: random search does not learn from results.
func (r *RandomSearch) Tell(result hpo.Result) error {
	if result.Values == nil {
		return fmt.Errorf("%w: result has no objective values", ErrInvalidObjectives)
	}
	return nil
}
