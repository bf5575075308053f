// Package config loads campaign descriptors from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Campaign describes one benchmarking run: which benchmark to optimize,
// with which optimizer, for how many trials.
type Campaign struct {
	Name      string `yaml:"name"`
	Benchmark string `yaml:"benchmark"`
	Optimizer string `yaml:"optimizer"`
	Trials    int    `yaml:"trials"`
	Seed      int64  `yaml:"seed"`

	// Eta is the early-stopping aggressiveness for halving-based
	// optimizers. 0 picks the optimizer's default.
	Eta int `yaml:"eta"`

	OutputDir string `yaml:"output_dir"`
	Verbose   bool   `yaml:"verbose"`
}

// Default returns a campaign with usable defaults; the benchmark still
// has to be filled in.
func Default() Campaign {
	return Campaign{
		Optimizer: "dehb",
		Trials:    100,
		Seed:      42,
		OutputDir: "./data",
	}
}

// Load reads a campaign from a YAML file, applying defaults for
// omitted fields.
func Load(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign file: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse campaign file %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("campaign file %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks the campaign for obvious misconfiguration. Benchmark
// and optimizer name resolution happens later, against the registries.
func (c *Campaign) Validate() error {
	if c.Benchmark == "" {
		return fmt.Errorf("benchmark must be set")
	}
	if c.Optimizer == "" {
		return fmt.Errorf("optimizer must be set")
	}
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	if c.Eta < 0 || c.Eta == 1 {
		return fmt.Errorf("eta must be 0 (default) or at least 2, got %d", c.Eta)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must be set")
	}
	return nil
}
