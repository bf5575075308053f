package dehb

import (
	"math"

	"github.com/sohambasu07/momfbench/internal/mo"
)

// fidelityLadder builds the geometric fidelity schedule: the highest
// rung runs at max, each rung below divides by eta, down to (at least)
// min.
func fidelityLadder(min, max float64, eta int) []float64 {
	// Tolerance keeps exact ratios like 81/1 at eta 3 from rounding down.
	nRungs := int(math.Floor(math.Log(max/min)/math.Log(float64(eta))+1e-9)) + 1
	ladder := make([]float64, nRungs)
	f := max
	for i := nRungs - 1; i >= 0; i-- {
		ladder[i] = f
		f /= float64(eta)
	}
	if ladder[0] < min {
		ladder[0] = min
	}
	return ladder
}

// rung is one successive-halving round within a bracket: capacity
// configurations evaluated at one fidelity.
type rung struct {
	fidelity float64
	capacity int
	launched int
	done     []*individual

	// queue holds vectors promoted from the rung below, awaiting launch.
	// The first rung of a bracket has no queue; its configurations come
	// from the search (random sampling or DE mutation).
	queue [][]float64
}

// bracket is one Hyperband bracket: a chain of successive-halving
// rungs with geometrically shrinking capacity and growing fidelity.
type bracket struct {
	id    int
	rungs []*rung
}

// newBracket builds the bracket that performs s halving rounds,
// starting s rungs below the top of the ladder. Capacities follow the
// standard Hyperband allocation.
func newBracket(id int, ladder []float64, eta, s int) *bracket {
	smax := len(ladder) - 1
	n := int(math.Ceil(float64(smax+1) / float64(s+1) * math.Pow(float64(eta), float64(s))))

	rungs := make([]*rung, s+1)
	for j := 0; j <= s; j++ {
		capacity := int(math.Floor(float64(n) / math.Pow(float64(eta), float64(j))))
		if capacity < 1 {
			capacity = 1
		}
		rungs[j] = &rung{
			fidelity: ladder[smax-s+j],
			capacity: capacity,
		}
	}

	return &bracket{id: id, rungs: rungs}
}

// nextSlot returns the index of the first rung with an open slot. Rungs
// above the first only launch promoted configurations.
func (b *bracket) nextSlot() (int, bool) {
	for i, r := range b.rungs {
		if r.launched >= r.capacity {
			continue
		}
		if i == 0 || len(r.queue) > 0 {
			return i, true
		}
	}
	return 0, false
}

// finished reports whether every rung has launched and completed its
// full capacity.
func (b *bracket) finished() bool {
	for _, r := range b.rungs {
		if r.launched < r.capacity || len(r.done) < r.capacity {
			return false
		}
	}
	return true
}

// onDone records a completed evaluation. When a rung completes, the
// best 1/eta of its configurations are promoted to the next rung for
// re-evaluation at higher fidelity.
func (b *bracket) onDone(rungIdx int, ind *individual) {
	r := b.rungs[rungIdx]
	r.done = append(r.done, ind)

	if len(r.done) < r.capacity || rungIdx+1 >= len(b.rungs) {
		return
	}

	next := b.rungs[rungIdx+1]
	points := make([][]float64, len(r.done))
	for i, d := range r.done {
		points[i] = d.fitness
	}
	for _, idx := range mo.SelectBest(points, next.capacity) {
		next.queue = append(next.queue, append([]float64(nil), r.done[idx].vec...))
	}
}
