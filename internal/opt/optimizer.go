// Package opt defines the ask/tell optimizer contract the benchmarking
// loop drives, and the adapters that translate between harness-native
// problems and each wrapped search library.
package opt

import (
	"fmt"
	"sort"

	"github.com/sohambasu07/momfbench/internal/hpo"
)

// Optimizer is the ask/tell contract: the harness pulls one suggested
// trial with Ask and later reports its outcome with Tell. Adapters keep
// no trial state beyond the opaque OptimizerInfo token they attach to
// each Query; callers must round-trip that token unchanged.
type Optimizer interface {
	// Name returns the optimizer identifier used in registries, flags
	// and reports.
	Name() string

	// Support declares which problem features this optimizer handles.
	Support() hpo.Support

	// Ask requests one pending trial.
	Ask() (hpo.Query, error)

	// Tell reports the evaluated outcome of a previously asked trial.
	Tell(result hpo.Result) error
}

// Settings are the construction parameters common to all adapters.
type Settings struct {
	Seed      int64
	OutputDir string
	// Eta is the early-stopping aggressiveness for halving-based
	// optimizers; 0 means the adapter default.
	Eta     int
	Verbose bool
}

// Factory builds an optimizer bound to a problem.
type Factory func(problem *hpo.Problem, s Settings) (Optimizer, error)

var registry = map[string]Factory{}

// Register makes an optimizer factory available under name. Adapters
// register themselves from init.
func Register(name string, f Factory) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("opt: duplicate optimizer %q", name))
	}
	registry[name] = f
}

// New builds the named optimizer for the given problem.
func New(name string, problem *hpo.Problem, s Settings) (Optimizer, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("opt: unknown optimizer %q (have %v)", name, Names())
	}
	return f(problem, s)
}

// Names returns the registered optimizer names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
