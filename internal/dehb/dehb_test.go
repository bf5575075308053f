package dehb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohambasu07/momfbench/internal/space"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Space: &space.ParamSpace{Params: []space.Param{
			space.Float{Key: "x", Min: 0, Max: 1},
			space.Float{Key: "y", Min: 0, Max: 1},
		}},
		MinFidelity: 1,
		MaxFidelity: 81,
		Eta:         3,
		Seed:        42,
		OutputPath:  t.TempDir(),
	}
}

// sphereFitness evaluates two shifted sphere objectives so the two
// objectives trade off against each other.
func sphereFitness(config map[string]any) []float64 {
	x := config["x"].(float64)
	y := config["y"].(float64)
	f1 := x*x + y*y
	f2 := (x-1)*(x-1) + (y-1)*(y-1)
	return []float64{f1, f2}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"nil space", func(o *Options) { o.Space = nil }},
		{"zero min fidelity", func(o *Options) { o.MinFidelity = 0 }},
		{"inverted fidelity bounds", func(o *Options) { o.MinFidelity = 100 }},
		{"eta below 2", func(o *Options) { o.Eta = 1 }},
		{"negative workers", func(o *Options) { o.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t)
			tt.mutate(&opts)
			_, err := New(opts)
			assert.Error(t, err)
		})
	}
}

func TestFidelityLadder(t *testing.T) {
	assert.Equal(t, []float64{1, 3, 9, 27, 81}, fidelityLadder(1, 81, 3))
	assert.Equal(t, []float64{4, 8, 16}, fidelityLadder(4, 16, 2))

	ladder := fidelityLadder(1, 100, 3)
	require.Len(t, ladder, 5)
	assert.Equal(t, 100.0, ladder[len(ladder)-1])
	assert.GreaterOrEqual(t, ladder[0], 1.0)
}

func TestAskTellLoop(t *testing.T) {
	d, err := New(testOptions(t))
	require.NoError(t, err)

	seen := map[int]bool{}
	for i := 0; i < 60; i++ {
		job, err := d.Ask()
		require.NoError(t, err)

		assert.False(t, seen[job.ConfigID], "config ids must be unique")
		seen[job.ConfigID] = true

		assert.GreaterOrEqual(t, job.Fidelity, 1.0)
		assert.LessOrEqual(t, job.Fidelity, 81.0)
		require.Contains(t, job.Config, "x")
		require.Contains(t, job.Config, "y")

		err = d.Tell(job, Report{Fitness: sphereFitness(job.Config), Cost: job.Fidelity})
		require.NoError(t, err)
	}

	assert.Equal(t, 60, d.Evaluations())
	assert.Greater(t, d.TotalCost(), 0.0)
	assert.NotEmpty(t, d.Incumbents())
}

func TestWorkerLimit(t *testing.T) {
	d, err := New(testOptions(t))
	require.NoError(t, err)

	job, err := d.Ask()
	require.NoError(t, err)

	// Single worker: a second Ask before Tell must fail.
	_, err = d.Ask()
	assert.Error(t, err)

	require.NoError(t, d.Tell(job, Report{Fitness: []float64{1, 1}, Cost: 1}))

	_, err = d.Ask()
	assert.NoError(t, err)
}

func TestTellErrors(t *testing.T) {
	d, err := New(testOptions(t))
	require.NoError(t, err)

	assert.Error(t, d.Tell(nil, Report{Fitness: []float64{1}}))
	assert.Error(t, d.Tell(&Job{ConfigID: 999}, Report{Fitness: []float64{1}}), "unknown config id")

	job, err := d.Ask()
	require.NoError(t, err)
	assert.Error(t, d.Tell(job, Report{}), "empty fitness")

	require.NoError(t, d.Tell(job, Report{Fitness: []float64{1, 2}, Cost: 1}))
	assert.Error(t, d.Tell(job, Report{Fitness: []float64{1, 2}, Cost: 1}), "double tell")

	job2, err := d.Ask()
	require.NoError(t, err)
	assert.Error(t, d.Tell(job2, Report{Fitness: []float64{1, 2, 3}}), "objective count changed")
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() []map[string]any {
		opts := testOptions(t)
		d, err := New(opts)
		require.NoError(t, err)

		var configs []map[string]any
		for i := 0; i < 20; i++ {
			job, err := d.Ask()
			require.NoError(t, err)
			configs = append(configs, job.Config)
			require.NoError(t, d.Tell(job, Report{Fitness: sphereFitness(job.Config), Cost: 1}))
		}
		return configs
	}

	assert.Equal(t, run(), run(), "same seed must reproduce the same trajectory")
}

func TestIncumbentsWritten(t *testing.T) {
	opts := testOptions(t)
	d, err := New(opts)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		job, err := d.Ask()
		require.NoError(t, err)
		require.NoError(t, d.Tell(job, Report{Fitness: sphereFitness(job.Config), Cost: 1}))
	}

	path := filepath.Join(opts.OutputPath, "incumbents.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fitness")
}

func TestArchiveIsNondominated(t *testing.T) {
	d, err := New(testOptions(t))
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		job, err := d.Ask()
		require.NoError(t, err)
		require.NoError(t, d.Tell(job, Report{Fitness: sphereFitness(job.Config), Cost: 1}))
	}

	incumbents := d.Incumbents()
	require.NotEmpty(t, incumbents)
	for i, a := range incumbents {
		for j, b := range incumbents {
			if i == j {
				continue
			}
			assert.False(t, dominatesFitness(a.Fitness, b.Fitness),
				"archive must not contain dominated points")
		}
	}
}

func dominatesFitness(a, b []float64) bool {
	better := false
	for i := range a {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			better = true
		}
	}
	return better
}

func TestBracketAllocation(t *testing.T) {
	ladder := []float64{1, 3, 9, 27, 81}

	// Full bracket: 81 configs at the lowest rung, halved by eta=3 up
	// to a single config at full fidelity.
	b := newBracket(0, ladder, 3, 4)
	require.Len(t, b.rungs, 5)
	assert.Equal(t, 81, b.rungs[0].capacity)
	assert.Equal(t, 27, b.rungs[1].capacity)
	assert.Equal(t, 1, b.rungs[4].capacity)
	assert.Equal(t, 1.0, b.rungs[0].fidelity)
	assert.Equal(t, 81.0, b.rungs[4].fidelity)

	// Last bracket of the cycle runs everything at full fidelity.
	last := newBracket(1, ladder, 3, 0)
	require.Len(t, last.rungs, 1)
	assert.Equal(t, 81.0, last.rungs[0].fidelity)
	assert.Equal(t, 5, last.rungs[0].capacity)
}
