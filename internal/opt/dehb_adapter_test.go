package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohambasu07/momfbench/internal/hpo"
	"github.com/sohambasu07/momfbench/internal/space"
)

func testProblem() *hpo.Problem {
	return &hpo.Problem{
		Name: "test-problem",
		Space: &space.ParamSpace{Params: []space.Param{
			space.Float{Key: "x", Min: 0, Max: 1},
			space.Float{Key: "y", Min: 0, Max: 1},
		}},
		Fidelities: hpo.SingleFidelity{
			Key: "epochs",
			Def: hpo.FidelityDef{Min: 1, Max: 81, Kind: hpo.FidelityInt},
		},
		Objectives: []hpo.Objective{
			{Name: "loss", Metric: hpo.Metric{Minimize: true}},
		},
	}
}

func testSettings(t *testing.T) Settings {
	t.Helper()
	return Settings{Seed: 42, OutputDir: t.TempDir()}
}

func TestNewDEHBRejectsTabular(t *testing.T) {
	p := testProblem()
	p.Space = &space.Tabular{Rows: []map[string]any{{"x": 1}}}

	_, err := NewDEHB(p, testSettings(t))
	assert.ErrorIs(t, err, ErrTabularSpace)
}

func TestNewDEHBRejectsMissingFidelity(t *testing.T) {
	p := testProblem()
	p.Fidelities = nil

	_, err := NewDEHB(p, testSettings(t))
	assert.ErrorIs(t, err, ErrMissingFidelity)
}

func TestNewDEHBRejectsManyFidelities(t *testing.T) {
	p := testProblem()
	p.Fidelities = hpo.ManyFidelities{
		"epochs":  {Min: 1, Max: 81},
		"samples": {Min: 100, Max: 10000},
	}

	_, err := NewDEHB(p, testSettings(t))
	assert.ErrorIs(t, err, ErrManyFidelity)
}

func TestAskIntegerFidelityInRange(t *testing.T) {
	a, err := NewDEHB(testProblem(), testSettings(t))
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		q, err := a.Ask()
		require.NoError(t, err)

		require.NotNil(t, q.Fidelity)
		assert.Equal(t, "epochs", q.Fidelity.Key)

		v, ok := q.Fidelity.Value.(int)
		require.True(t, ok, "integer-kinded fidelity must surface as int, got %T", q.Fidelity.Value)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 81)

		err = a.Tell(hpo.Result{
			Query:      q,
			Values:     map[string]float64{"loss": 1.0},
			BudgetCost: float64(v),
		})
		require.NoError(t, err)
	}
}

func TestAskFloatFidelity(t *testing.T) {
	p := testProblem()
	p.Fidelities = hpo.SingleFidelity{
		Key: "subsample",
		Def: hpo.FidelityDef{Min: 0.1, Max: 1.0, Kind: hpo.FidelityFloat},
	}

	a, err := NewDEHB(p, testSettings(t))
	require.NoError(t, err)

	q, err := a.Ask()
	require.NoError(t, err)

	v, ok := q.Fidelity.Value.(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, v, 0.1)
	assert.LessOrEqual(t, v, 1.0)
}

func TestTellRoundTripsOptimizerInfo(t *testing.T) {
	a, err := NewDEHB(testProblem(), testSettings(t))
	require.NoError(t, err)

	q, err := a.Ask()
	require.NoError(t, err)
	require.NotNil(t, q.OptimizerInfo)
	assert.Equal(t, "trial_0", q.Config.ID)

	err = a.Tell(hpo.Result{
		Query:      q,
		Values:     map[string]float64{"loss": 0.5},
		BudgetCost: 1,
	})
	assert.NoError(t, err)
}

func TestTellRejectsForeignInfo(t *testing.T) {
	a, err := NewDEHB(testProblem(), testSettings(t))
	require.NoError(t, err)

	q, err := a.Ask()
	require.NoError(t, err)

	q.OptimizerInfo = "not a job"
	err = a.Tell(hpo.Result{
		Query:  q,
		Values: map[string]float64{"loss": 0.5},
	})
	assert.ErrorIs(t, err, ErrForeignInfo)
}

func TestTellFitnessOrientationAndOrder(t *testing.T) {
	p := testProblem()
	p.Objectives = []hpo.Objective{
		{Name: "acc", Metric: hpo.Metric{Minimize: false}},
		{Name: "loss", Metric: hpo.Metric{Minimize: true}},
	}

	a, err := NewDEHB(p, testSettings(t))
	require.NoError(t, err)

	q, err := a.Ask()
	require.NoError(t, err)

	err = a.Tell(hpo.Result{
		Query:      q,
		Values:     map[string]float64{"acc": 0.9, "loss": 0.1},
		BudgetCost: 1,
	})
	require.NoError(t, err)

	// The maximized accuracy is sign-flipped and the fitness list
	// follows declaration order.
	incumbents := a.Incumbents()
	require.Len(t, incumbents, 1)
	assert.Equal(t, []float64{-0.9, 0.1}, incumbents[0].Fitness)
}

func TestTellRejectsCostAwareProblems(t *testing.T) {
	p := testProblem()
	p.Costs = []hpo.CostMetric{{Name: "runtime"}}

	a, err := NewDEHB(p, testSettings(t))
	require.NoError(t, err)

	q, err := a.Ask()
	require.NoError(t, err)

	err = a.Tell(hpo.Result{
		Query:  q,
		Values: map[string]float64{"loss": 0.5},
	})
	assert.ErrorIs(t, err, ErrCostAware)
}

func TestTellRejectsMissingObjectives(t *testing.T) {
	a, err := NewDEHB(testProblem(), testSettings(t))
	require.NoError(t, err)

	q, err := a.Ask()
	require.NoError(t, err)

	err = a.Tell(hpo.Result{Query: q})
	assert.ErrorIs(t, err, ErrInvalidObjectives, "nil values map")

	err = a.Tell(hpo.Result{
		Query:  q,
		Values: map[string]float64{"wrong-name": 0.5},
	})
	assert.ErrorIs(t, err, ErrInvalidObjectives, "declared objective missing from result")
}

func TestSupport(t *testing.T) {
	a, err := NewDEHB(testProblem(), testSettings(t))
	require.NoError(t, err)

	s := a.Support()
	assert.True(t, s.SingleFidelity)
	assert.True(t, s.ManyObjectives)
	assert.False(t, s.ManyFidelity)
	assert.False(t, s.CostAware)
	assert.False(t, s.Tabular)
	assert.False(t, s.Continuations)
}

func TestRegistry(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "dehb")
	assert.Contains(t, names, "random-search")

	o, err := New("dehb", testProblem(), testSettings(t))
	require.NoError(t, err)
	assert.Equal(t, "dehb", o.Name())

	_, err = New("nonexistent", testProblem(), testSettings(t))
	assert.Error(t, err)
}
