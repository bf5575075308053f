// Package bench ships synthetic multi-objective, multi-fidelity
// benchmark problems the harness can run optimization campaigns
// against. Evaluations are deterministic in the configuration and
// fidelity, so campaigns with a fixed seed reproduce exactly.
package bench

import (
	"fmt"
	"sort"

	"github.com/sohambasu07/momfbench/internal/hpo"
)

// EvalFunc evaluates one configuration at the given fidelity and
// returns the raw objective values keyed by objective name.
type EvalFunc func(values map[string]any, fidelity *hpo.FidelityValue) map[string]float64

// Benchmark pairs a problem descriptor with its evaluation function.
type Benchmark struct {
	Problem     hpo.Problem
	Description string
	Eval        EvalFunc
}

var registry = map[string]*Benchmark{}

func register(b *Benchmark) {
	name := b.Problem.Name
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("bench: duplicate benchmark %q", name))
	}
	if err := b.Problem.Validate(); err != nil {
		panic(fmt.Sprintf("bench: %v", err))
	}
	registry[name] = b
}

// Get returns the named benchmark.
func Get(name string) (*Benchmark, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("bench: unknown benchmark %q (have %v)", name, Names())
	}
	return b, nil
}

// Names returns the registered benchmark names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fidelityOr unwraps a fidelity value, falling back to max when the
// optimizer supplied none.
func fidelityOr(f *hpo.FidelityValue, max float64) float64 {
	if f == nil {
		return max
	}
	return f.AsFloat()
}

func asFloat(values map[string]any, key string) float64 {
	switch v := values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		panic(fmt.Sprintf("bench: %q is %T, expected numeric", key, values[key]))
	}
}

func asInt(values map[string]any, key string) int {
	switch v := values[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		panic(fmt.Sprintf("bench: %q is %T, expected numeric", key, values[key]))
	}
}
