// Package space models configuration spaces: the domain of tunable
// parameter combinations an optimizer searches over. Exactly two kinds
// of space exist, a parametric ParamSpace and an enumerated Tabular
// space; Space is sealed so callers can switch exhaustively.
package space

import (
	"fmt"
	"math"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Space is the configuration space of a problem.
type Space interface {
	// sealed: only *ParamSpace and *Tabular implement Space.
	isSpace()
}

// ParamSpace is an ordered list of named parameters. Parameter order is
// significant: it fixes the layout of encoded vectors.
//
// Search algorithms that operate on continuous vectors (differential
// evolution in particular) work on the unit hypercube [0,1]^d; Decode
// maps a unit vector to native parameter values and Encode maps values
// back.
type ParamSpace struct {
	Params []Param
}

func (*ParamSpace) isSpace() {}

// Dim returns the number of parameters.
func (s *ParamSpace) Dim() int { return len(s.Params) }

// Decode maps a unit-hypercube vector to native parameter values.
func (s *ParamSpace) Decode(vec []float64) map[string]any {
	if len(vec) != len(s.Params) {
		panic(fmt.Sprintf("space: vector has %d entries, space has %d parameters", len(vec), len(s.Params)))
	}
	values := make(map[string]any, len(s.Params))
	for i, p := range s.Params {
		values[p.Name()] = p.Decode(clampUnit(vec[i]))
	}
	return values
}

// Encode maps native parameter values back to a unit-hypercube vector.
func (s *ParamSpace) Encode(values map[string]any) ([]float64, error) {
	vec := make([]float64, len(s.Params))
	for i, p := range s.Params {
		v, ok := values[p.Name()]
		if !ok {
			return nil, fmt.Errorf("space: missing value for parameter %q", p.Name())
		}
		u, err := p.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("space: parameter %q: %w", p.Name(), err)
		}
		vec[i] = clampUnit(u)
	}
	return vec, nil
}

// Sample draws a uniform random configuration.
func (s *ParamSpace) Sample(rng *rand.Rand) map[string]any {
	values := make(map[string]any, len(s.Params))
	for _, p := range s.Params {
		values[p.Name()] = p.Decode(rng.Float64())
	}
	return values
}

// Validate checks parameter definitions and rejects duplicate names.
func (s *ParamSpace) Validate() error {
	if len(s.Params) == 0 {
		return fmt.Errorf("space: no parameters defined")
	}
	seen := make(map[string]bool, len(s.Params))
	for _, p := range s.Params {
		if p.Name() == "" {
			return fmt.Errorf("space: parameter with empty name")
		}
		if seen[p.Name()] {
			return fmt.Errorf("space: duplicate parameter %q", p.Name())
		}
		seen[p.Name()] = true
		if err := p.validate(); err != nil {
			return fmt.Errorf("space: parameter %q: %w", p.Name(), err)
		}
	}
	return nil
}

// Tabular is an enumerated table of configurations. Each row is a
// complete named configuration.
type Tabular struct {
	Rows []map[string]any
}

func (*Tabular) isSpace() {}

// Sample draws a uniform random row.
func (t *Tabular) Sample(rng *rand.Rand) map[string]any {
	return t.Rows[rng.Intn(len(t.Rows))]
}

// Clamp restricts v to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUnit(u float64) float64 {
	if math.IsNaN(u) {
		return 0
	}
	return Clamp(u, 0, 1)
}
