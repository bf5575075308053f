package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sohambasu07/momfbench/internal/store"
)

var runsDataDir string

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect finished campaign runs",
}

var listRunsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all runs with their reports",
	RunE:  runListRuns,
}

var showRunCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the report and Pareto front of one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowRun,
}

var deleteRunCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run and its artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteRun,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(listRunsCmd)
	runsCmd.AddCommand(showRunCmd)
	runsCmd.AddCommand(deleteRunCmd)

	runsCmd.PersistentFlags().StringVar(&runsDataDir, "data-dir", "./data", "Base directory for run storage")
}

func runListRuns(cmd *cobra.Command, args []string) error {
	st, err := store.NewFSStore(runsDataDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	reports, err := st.ListReports()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(reports) == 0 {
		fmt.Println("No runs found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tCREATED\tBENCHMARK\tOPTIMIZER\tTRIALS\tFRONT\tCOST")
	for _, r := range reports {
		displayID := r.RunID
		if len(displayID) > 12 {
			displayID = displayID[:12] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.0f\n",
			displayID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Benchmark,
			r.Optimizer,
			r.Trials,
			len(r.ParetoFront),
			r.TotalCost,
		)
	}
	w.Flush()

	fmt.Printf("\nTotal runs: %d\n", len(reports))
	return nil
}

func runShowRun(cmd *cobra.Command, args []string) error {
	st, err := store.NewFSStore(runsDataDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	runID := args[0]
	report, err := st.LoadReport(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run: %s\n", report.RunID)
	if report.Campaign != "" {
		fmt.Printf("Campaign: %s\n", report.Campaign)
	}
	fmt.Printf("Benchmark: %s\n", report.Benchmark)
	fmt.Printf("Optimizer: %s\n", report.Optimizer)
	fmt.Printf("Seed: %d\n", report.Seed)
	fmt.Printf("Trials: %d\n", report.Trials)
	fmt.Printf("Total cost: %.0f\n", report.TotalCost)
	fmt.Printf("Elapsed: %.1fs\n", report.ElapsedSeconds)
	fmt.Println()

	if len(report.ParetoFront) == 0 {
		fmt.Println("Empty Pareto front.")
		return nil
	}

	// Stable column order across rows.
	var objectives []string
	for name := range report.ParetoFront[0].Values {
		objectives = append(objectives, name)
	}
	sort.Strings(objectives)

	fmt.Printf("Pareto front (%d configurations):\n", len(report.ParetoFront))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "CONFIG"
	for _, name := range objectives {
		header += "\t" + name
	}
	fmt.Fprintln(w, header)
	for _, p := range report.ParetoFront {
		row := p.ConfigID
		for _, name := range objectives {
			row += fmt.Sprintf("\t%.6g", p.Values[name])
		}
		fmt.Fprintln(w, row)
	}
	w.Flush()

	return nil
}

func runDeleteRun(cmd *cobra.Command, args []string) error {
	st, err := store.NewFSStore(runsDataDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if err := st.DeleteRun(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted run %s\n", args[0])
	return nil
}
