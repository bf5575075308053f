// Package dehb implements a multi-objective variant of DEHB
// (Differential Evolution Hyperband): Hyperband's successive-halving
// fidelity schedule combined with differential evolution search over
// the unit hypercube, with nondominated sorting for selection.
//
// The package exposes an ask/tell surface: Ask hands out one Job to
// evaluate, Tell reports its outcome. It knows nothing about the
// benchmarking harness; adapters translate in and out.
package dehb

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/sohambasu07/momfbench/internal/mo"
	"github.com/sohambasu07/momfbench/internal/space"
)

// Options configures a DEHB instance.
type Options struct {
	// Space is the parametric configuration space to search.
	Space *space.ParamSpace

	// MinFidelity and MaxFidelity bound the fidelity ladder. MinFidelity
	// must be positive; the ladder is geometric with base Eta.
	MinFidelity float64
	MaxFidelity float64

	// Eta is the halving rate: each successive-halving round keeps
	// 1/Eta of its configurations. Must be at least 2. Defaults to 3.
	Eta int

	// Seed drives all random decisions.
	Seed int64

	// Workers caps the number of trials that may be pending between Ask
	// and Tell. Defaults to 1.
	Workers int

	// OutputPath, when non-empty, is the directory the optimizer writes
	// its incumbent archive to.
	OutputPath string

	// Verbose enables the optimizer's internal logging. When false all
	// internal log output is discarded.
	Verbose bool

	// Logger overrides the logger used when Verbose is set.
	Logger *slog.Logger
}

// Job describes one evaluation requested by the optimizer. The caller
// must hand the identical Job back to Tell, unmodified.
type Job struct {
	ConfigID  int
	Config    map[string]any
	Fidelity  float64
	BracketID int
	Rung      int
}

// Report carries the outcome of a Job back into the optimizer. Fitness
// is a minimize-oriented objective vector; its length must be the same
// across all reports. Cost is the budget the evaluation consumed; it is
// recorded but does not influence scheduling.
type Report struct {
	Fitness []float64
	Cost    float64
}

// Incumbent is one nondominated configuration in the archive.
type Incumbent struct {
	ConfigID int            `json:"configId"`
	Config   map[string]any `json:"config"`
	Fitness  []float64      `json:"fitness"`
	Fidelity float64        `json:"fidelity"`
}

type individual struct {
	id       int
	vec      []float64
	fitness  []float64
	fidelity float64
}

type pendingTrial struct {
	ind     *individual
	bracket *bracket
	rung    int
}

// DEHB is a single ask/tell optimizer instance. It is not safe for
// concurrent use; the harness drives it from one goroutine.
type DEHB struct {
	opts   Options
	log    *slog.Logger
	rng    *rand.Rand
	ladder []float64

	active   []*bracket
	nextS    int
	brackets int
	nextID   int
	pending  map[int]*pendingTrial

	pop     []*individual
	maxPop  int
	nobj    int // objective count, fixed by the first Tell
	archive []*individual

	evals     int
	totalCost float64
}

// New validates opts and creates a DEHB instance.
func New(opts Options) (*DEHB, error) {
	if opts.Space == nil {
		return nil, fmt.Errorf("dehb: no configuration space")
	}
	if err := opts.Space.Validate(); err != nil {
		return nil, fmt.Errorf("dehb: %w", err)
	}
	if opts.MinFidelity <= 0 {
		return nil, fmt.Errorf("dehb: min fidelity must be positive, got %v", opts.MinFidelity)
	}
	if !(opts.MinFidelity < opts.MaxFidelity) {
		return nil, fmt.Errorf("dehb: min fidelity %v must be below max %v",
			opts.MinFidelity, opts.MaxFidelity)
	}
	if opts.Eta == 0 {
		opts.Eta = 3
	}
	if opts.Eta < 2 {
		return nil, fmt.Errorf("dehb: eta must be at least 2, got %d", opts.Eta)
	}
	if opts.Workers == 0 {
		opts.Workers = 1
	}
	if opts.Workers < 1 {
		return nil, fmt.Errorf("dehb: workers must be at least 1, got %d", opts.Workers)
	}

	log := opts.Logger
	if !opts.Verbose {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else if log == nil {
		log = slog.Default()
	}

	ladder := fidelityLadder(opts.MinFidelity, opts.MaxFidelity, opts.Eta)

	maxPop := 10 * opts.Space.Dim()
	if maxPop < 40 {
		maxPop = 40
	}

	d := &DEHB{
		opts:    opts,
		log:     log,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		ladder:  ladder,
		nextS:   len(ladder) - 1,
		pending: make(map[int]*pendingTrial),
		maxPop:  maxPop,
	}

	d.log.Info("dehb initialized",
		"dim", opts.Space.Dim(),
		"rungs", len(ladder),
		"min_fidelity", opts.MinFidelity,
		"max_fidelity", opts.MaxFidelity,
		"eta", opts.Eta,
	)

	return d, nil
}

// Ask returns the next Job to evaluate. It fails when the number of
// pending trials has reached the worker limit.
func (d *DEHB) Ask() (*Job, error) {
	if len(d.pending) >= d.opts.Workers {
		return nil, fmt.Errorf("dehb: %d trial(s) pending, worker limit %d reached",
			len(d.pending), d.opts.Workers)
	}

	br, rungIdx := d.nextSlot()
	r := br.rungs[rungIdx]

	var vec []float64
	if len(r.queue) > 0 {
		vec = r.queue[0]
		r.queue = r.queue[1:]
	} else {
		vec = d.propose()
	}
	r.launched++

	id := d.nextID
	d.nextID++

	ind := &individual{id: id, vec: vec, fidelity: r.fidelity}
	d.pending[id] = &pendingTrial{ind: ind, bracket: br, rung: rungIdx}

	job := &Job{
		ConfigID:  id,
		Config:    d.opts.Space.Decode(vec),
		Fidelity:  r.fidelity,
		BracketID: br.id,
		Rung:      rungIdx,
	}

	d.log.Debug("ask", "config_id", id, "bracket", br.id, "rung", rungIdx, "fidelity", r.fidelity)
	return job, nil
}

// Tell reports the outcome of a previously asked Job. The Job must be
// the one returned by Ask and may be told exactly once.
func (d *DEHB) Tell(job *Job, report Report) error {
	if job == nil {
		return fmt.Errorf("dehb: nil job")
	}
	t, ok := d.pending[job.ConfigID]
	if !ok {
		return fmt.Errorf("dehb: unknown or already reported config id %d", job.ConfigID)
	}
	if len(report.Fitness) == 0 {
		return fmt.Errorf("dehb: empty fitness vector for config id %d", job.ConfigID)
	}
	if d.nobj == 0 {
		d.nobj = len(report.Fitness)
	} else if len(report.Fitness) != d.nobj {
		return fmt.Errorf("dehb: fitness has %d objectives, expected %d",
			len(report.Fitness), d.nobj)
	}
	delete(d.pending, job.ConfigID)

	t.ind.fitness = append([]float64(nil), report.Fitness...)
	d.evals++
	d.totalCost += report.Cost

	d.pop = append(d.pop, t.ind)
	d.truncate()
	t.bracket.onDone(t.rung, t.ind)

	if d.updateArchive(t.ind) {
		if err := d.writeIncumbents(); err != nil {
			d.log.Warn("failed to write incumbents", "error", err)
		}
	}

	d.log.Debug("tell",
		"config_id", job.ConfigID,
		"fitness", report.Fitness,
		"cost", report.Cost,
		"evals", d.evals,
	)
	return nil
}

// Evaluations returns the number of completed trials.
func (d *DEHB) Evaluations() int { return d.evals }

// TotalCost returns the accumulated cost across all reported trials.
func (d *DEHB) TotalCost() float64 { return d.totalCost }

// Incumbents returns the current nondominated archive.
func (d *DEHB) Incumbents() []Incumbent {
	out := make([]Incumbent, len(d.archive))
	for i, ind := range d.archive {
		out[i] = Incumbent{
			ConfigID: ind.id,
			Config:   d.opts.Space.Decode(ind.vec),
			Fitness:  append([]float64(nil), ind.fitness...),
			Fidelity: ind.fidelity,
		}
	}
	return out
}

// nextSlot finds the next rung with an open evaluation slot, opening a
// fresh bracket when every active bracket is finished or stalled on
// pending promotions.
func (d *DEHB) nextSlot() (*bracket, int) {
	live := d.active[:0]
	for _, br := range d.active {
		if !br.finished() {
			live = append(live, br)
		}
	}
	d.active = live

	for _, br := range d.active {
		if idx, ok := br.nextSlot(); ok {
			return br, idx
		}
	}

	br := d.newBracket()
	d.active = append(d.active, br)
	idx, _ := br.nextSlot()
	return br, idx
}

func (d *DEHB) newBracket() *bracket {
	s := d.nextS
	d.nextS--
	if d.nextS < 0 {
		d.nextS = len(d.ladder) - 1
	}
	br := newBracket(d.brackets, d.ladder, d.opts.Eta, s)
	d.brackets++
	d.log.Debug("opened bracket", "bracket", br.id, "start_rung", len(d.ladder)-1-s, "rungs", len(br.rungs))
	return br
}

// truncate caps the global population by nondominated rank and crowding.
func (d *DEHB) truncate() {
	if len(d.pop) <= d.maxPop {
		return
	}
	points := make([][]float64, len(d.pop))
	for i, ind := range d.pop {
		points[i] = ind.fitness
	}
	keep := mo.SelectBest(points, d.maxPop)
	next := make([]*individual, len(keep))
	for i, idx := range keep {
		next[i] = d.pop[idx]
	}
	d.pop = next
}

// updateArchive inserts ind into the nondominated archive. Returns true
// when the archive changed.
func (d *DEHB) updateArchive(ind *individual) bool {
	for _, a := range d.archive {
		if mo.Dominates(a.fitness, ind.fitness) {
			return false
		}
	}
	next := d.archive[:0]
	for _, a := range d.archive {
		if !mo.Dominates(ind.fitness, a.fitness) {
			next = append(next, a)
		}
	}
	d.archive = append(next, ind)
	return true
}

func (d *DEHB) writeIncumbents() error {
	if d.opts.OutputPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(d.Incumbents(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal incumbents: %w", err)
	}
	path := filepath.Join(d.opts.OutputPath, "incumbents.json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write incumbents: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename incumbents: %w", err)
	}
	return nil
}
