package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sohambasu07/momfbench/internal/bench"
	"github.com/sohambasu07/momfbench/internal/hpo"
	"github.com/sohambasu07/momfbench/internal/opt"
	"github.com/sohambasu07/momfbench/internal/space"
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "List available benchmarks and optimizers",
	RunE:  runListBenchmarks,
}

func init() {
	rootCmd.AddCommand(benchmarksCmd)
}

func runListBenchmarks(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BENCHMARK\tPARAMS\tOBJECTIVES\tFIDELITY\tDESCRIPTION")

	for _, name := range bench.Names() {
		b, err := bench.Get(name)
		if err != nil {
			return err
		}

		params := "-"
		if ps, ok := b.Problem.Space.(*space.ParamSpace); ok {
			params = fmt.Sprintf("%d", ps.Dim())
		}

		fidelity := "-"
		if single, ok := b.Problem.Fidelities.(hpo.SingleFidelity); ok {
			fidelity = fmt.Sprintf("%s [%g, %g]", single.Key, single.Def.Min, single.Def.Max)
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			name, params, len(b.Problem.Objectives), fidelity, b.Description)
	}
	w.Flush()

	fmt.Printf("\nOptimizers: %v\n", opt.Names())
	return nil
}
