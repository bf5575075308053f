package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sohambasu07/momfbench/internal/config"
	"github.com/sohambasu07/momfbench/internal/runner"
	"github.com/sohambasu07/momfbench/internal/store"
)

var (
	campaignPath string
	benchName    string
	optName      string
	trials       int
	seed         int64
	eta          int
	outputDir    string
	verbose      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a benchmarking campaign",
	Long: `Runs one optimization campaign: the chosen optimizer proposes trials
via ask/tell against the chosen benchmark until the trial budget is
spent. Writes a trial trace and a Pareto-front report under the output
directory. A campaign YAML file replaces the individual flags.`,
	RunE: runCampaign,
}

func init() {
	runCmd.Flags().StringVar(&campaignPath, "config", "", "Campaign YAML file (overrides the other flags)")
	runCmd.Flags().StringVar(&benchName, "benchmark", "", "Benchmark problem to optimize")
	runCmd.Flags().StringVar(&optName, "optimizer", "dehb", "Optimizer to run")
	runCmd.Flags().IntVar(&trials, "trials", 100, "Number of trials")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	runCmd.Flags().IntVar(&eta, "eta", 0, "Early-stopping aggressiveness (0 = optimizer default)")
	runCmd.Flags().StringVar(&outputDir, "out", "./data", "Output directory")
	runCmd.Flags().BoolVar(&verbose, "verbose", false, "Enable the optimizer's internal logging")

	rootCmd.AddCommand(runCmd)
}

func runCampaign(cmd *cobra.Command, args []string) error {
	var c *config.Campaign
	if campaignPath != "" {
		loaded, err := config.Load(campaignPath)
		if err != nil {
			return err
		}
		c = loaded
	} else {
		campaign := config.Default()
		campaign.Benchmark = benchName
		campaign.Optimizer = optName
		campaign.Trials = trials
		campaign.Seed = seed
		campaign.Eta = eta
		campaign.OutputDir = outputDir
		campaign.Verbose = verbose
		if err := campaign.Validate(); err != nil {
			return err
		}
		c = &campaign
	}

	st, err := store.NewFSStore(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	report, err := runner.New(st).Run(c)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s: %d trials, %d configurations on the Pareto front (%.1fs)\n",
		report.RunID, report.Trials, len(report.ParetoFront), report.ElapsedSeconds)
	return nil
}
