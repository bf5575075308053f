package hpo

// Metric describes the orientation of one objective value.
type Metric struct {
	// Minimize is true when lower raw values are better. Accuracy-style
	// objectives set it to false.
	Minimize bool
}

// AsMinimize converts a raw objective value into minimize-oriented
// form: maximize-type objectives are sign-flipped so every optimizer
// can treat all objectives uniformly as minimization.
func (m Metric) AsMinimize(v float64) float64 {
	if m.Minimize {
		return v
	}
	return -v
}

// Objective is one named objective of a problem. Problems declare
// objectives as an ordered slice; the order fixes the layout of fitness
// lists handed to optimizers.
type Objective struct {
	Name   string
	Metric Metric
}

// CostMetric declares a tracked evaluation cost dimension (e.g.
// wall-clock seconds). A problem with a non-empty cost declaration is
// cost-aware; optimizers that do not implement cost-aware feedback must
// reject it.
type CostMetric struct {
	Name string
}
