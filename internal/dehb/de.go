package dehb

import "github.com/sohambasu07/momfbench/internal/space"

// Differential evolution parameters. Standard rand/1/bin settings.
const (
	mutationFactor = 0.5
	crossoverProb  = 0.5
	minPopForDE    = 4
)

// propose generates the next candidate vector: uniform random while the
// evaluated population is still warming up, otherwise a rand/1 mutant
// crossed with a randomly chosen parent.
func (d *DEHB) propose() []float64 {
	dim := d.opts.Space.Dim()

	if len(d.pop) < minPopForDE {
		vec := make([]float64, dim)
		for i := range vec {
			vec[i] = d.rng.Float64()
		}
		return vec
	}

	r1, r2, r3 := d.distinctThree()
	parent := d.pop[d.rng.Intn(len(d.pop))]

	child := make([]float64, dim)
	forced := d.rng.Intn(dim) // at least one component comes from the mutant
	for i := 0; i < dim; i++ {
		if i == forced || d.rng.Float64() < crossoverProb {
			v := d.pop[r1].vec[i] + mutationFactor*(d.pop[r2].vec[i]-d.pop[r3].vec[i])
			child[i] = space.Clamp(v, 0, 1)
		} else {
			child[i] = parent.vec[i]
		}
	}
	return child
}

// distinctThree draws three distinct population indices.
func (d *DEHB) distinctThree() (int, int, int) {
	n := len(d.pop)
	r1 := d.rng.Intn(n)
	r2 := d.rng.Intn(n)
	for r2 == r1 {
		r2 = d.rng.Intn(n)
	}
	r3 := d.rng.Intn(n)
	for r3 == r1 || r3 == r2 {
		r3 = d.rng.Intn(n)
	}
	return r1, r2, r3
}
