package bench

import (
	"math"

	"github.com/sohambasu07/momfbench/internal/hpo"
	"github.com/sohambasu07/momfbench/internal/space"
)

func init() {
	register(zdt1MF())
	register(braninCurrin())
	register(toyNAS())
}

// zdt1MF is the classic bi-objective ZDT1 function with a fidelity
// dimension bolted on: low-fidelity evaluations see a biased second
// objective that fades as the fidelity approaches its maximum.
func zdt1MF() *Benchmark {
	const maxIter = 100.0

	return &Benchmark{
		Problem: hpo.Problem{
			Name: "zdt1-mf",
			Space: &space.ParamSpace{Params: []space.Param{
				space.Float{Key: "x0", Min: 0, Max: 1},
				space.Float{Key: "x1", Min: 0, Max: 1},
				space.Float{Key: "x2", Min: 0, Max: 1},
				space.Float{Key: "x3", Min: 0, Max: 1},
				space.Float{Key: "x4", Min: 0, Max: 1},
			}},
			Fidelities: hpo.SingleFidelity{
				Key: "iterations",
				Def: hpo.FidelityDef{Min: 1, Max: maxIter, Kind: hpo.FidelityInt},
			},
			Objectives: []hpo.Objective{
				{Name: "f1", Metric: hpo.Metric{Minimize: true}},
				{Name: "f2", Metric: hpo.Metric{Minimize: true}},
			},
		},
		Description: "ZDT1 with a low-fidelity bias on f2",
		Eval: func(values map[string]any, fidelity *hpo.FidelityValue) map[string]float64 {
			f1 := asFloat(values, "x0")

			sum := 0.0
			for _, key := range []string{"x1", "x2", "x3", "x4"} {
				sum += asFloat(values, key)
			}
			g := 1 + 9*sum/4
			f2 := g * (1 - math.Sqrt(f1/g))

			bias := 1 - fidelityOr(fidelity, maxIter)/maxIter
			f2 *= 1 + 0.3*bias

			return map[string]float64{"f1": f1, "f2": f2}
		},
	}
}

// braninCurrin evaluates the Branin and Currin exponential functions on
// the unit square, a standard multi-objective surrogate pair. The
// fidelity plays the role of training epochs and scales both objectives
// with a vanishing low-fidelity penalty.
func braninCurrin() *Benchmark {
	const maxEpoch = 81.0

	return &Benchmark{
		Problem: hpo.Problem{
			Name: "branin-currin",
			Space: &space.ParamSpace{Params: []space.Param{
				space.Float{Key: "x1", Min: 0, Max: 1},
				space.Float{Key: "x2", Min: 0, Max: 1},
			}},
			Fidelities: hpo.SingleFidelity{
				Key: "epoch",
				Def: hpo.FidelityDef{Min: 1, Max: maxEpoch, Kind: hpo.FidelityInt},
			},
			Objectives: []hpo.Objective{
				{Name: "branin", Metric: hpo.Metric{Minimize: true}},
				{Name: "currin", Metric: hpo.Metric{Minimize: true}},
			},
		},
		Description: "Branin/Currin pair with epoch-style fidelity",
		Eval: func(values map[string]any, fidelity *hpo.FidelityValue) map[string]float64 {
			x1 := asFloat(values, "x1")
			x2 := asFloat(values, "x2")

			// Branin on its native domain via rescaling.
			u := 15*x1 - 5
			v := 15 * x2
			branin := math.Pow(v-5.1/(4*math.Pi*math.Pi)*u*u+5/math.Pi*u-6, 2) +
				10*(1-1/(8*math.Pi))*math.Cos(u) + 10

			// Currin exponential. As x2 -> 0 the factor tends to 1;
			// float division by zero yields +Inf and behaves correctly.
			factor := 1 - math.Exp(-1/(2*x2))
			currin := factor * (2300*math.Pow(x1, 3) + 1900*x1*x1 + 2092*x1 + 60) /
				(100*math.Pow(x1, 3) + 500*x1*x1 + 4*x1 + 20)

			penalty := 1 + 0.05*(1-fidelityOr(fidelity, maxEpoch)/maxEpoch)
			return map[string]float64{
				"branin": branin * penalty,
				"currin": currin * penalty,
			}
		},
	}
}

// toyNAS mimics a neural architecture search surface: accuracy
// saturates with epochs and rewards capacity, latency grows with it.
// Accuracy is a maximize-type objective, so this benchmark exercises
// the minimize-orientation conversion in every adapter.
func toyNAS() *Benchmark {
	const maxEpoch = 81.0

	return &Benchmark{
		Problem: hpo.Problem{
			Name: "toy-nas",
			Space: &space.ParamSpace{Params: []space.Param{
				space.Int{Key: "width", Min: 16, Max: 256},
				space.Int{Key: "depth", Min: 1, Max: 8},
				space.Float{Key: "lr", Min: 1e-4, Max: 1e-1, Log: true},
				space.Categorical{Key: "act", Choices: []string{"relu", "tanh", "gelu"}},
			}},
			Fidelities: hpo.SingleFidelity{
				Key: "epochs",
				Def: hpo.FidelityDef{Min: 1, Max: maxEpoch, Kind: hpo.FidelityInt},
			},
			Objectives: []hpo.Objective{
				{Name: "acc", Metric: hpo.Metric{Minimize: false}},
				{Name: "latency", Metric: hpo.Metric{Minimize: true}},
			},
		},
		Description: "synthetic NAS surface: accuracy (maximize) vs latency",
		Eval: func(values map[string]any, fidelity *hpo.FidelityValue) map[string]float64 {
			width := asInt(values, "width")
			depth := asInt(values, "depth")
			lr := asFloat(values, "lr")
			act, _ := values["act"].(string)

			capacity := math.Log2(float64(width * depth))
			lrPenalty := math.Pow(math.Log10(lr)+2.5, 2) // sweet spot near 3e-3

			bonus := 0.0
			switch act {
			case "tanh":
				bonus = -0.02
			case "gelu":
				bonus = 0.01
			}

			ceiling := space.Clamp(0.5+0.04*capacity-0.03*lrPenalty+bonus, 0, 1)
			acc := ceiling * (1 - math.Exp(-fidelityOr(fidelity, maxEpoch)/20))
			latency := float64(width*depth) / 256.0

			return map[string]float64{"acc": acc, "latency": latency}
		},
	}
}
