package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCampaign(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "campaign.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write campaign file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCampaign(t, `
name: nightly
benchmark: zdt1-mf
optimizer: dehb
trials: 200
seed: 7
eta: 3
output_dir: /tmp/bench-data
verbose: true
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.Name != "nightly" {
		t.Errorf("Name = %q", c.Name)
	}
	if c.Benchmark != "zdt1-mf" || c.Optimizer != "dehb" {
		t.Errorf("benchmark/optimizer = %q/%q", c.Benchmark, c.Optimizer)
	}
	if c.Trials != 200 || c.Seed != 7 || c.Eta != 3 {
		t.Errorf("trials/seed/eta = %d/%d/%d", c.Trials, c.Seed, c.Eta)
	}
	if !c.Verbose {
		t.Error("Verbose = false")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeCampaign(t, "benchmark: zdt1-mf\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	d := Default()
	if c.Optimizer != d.Optimizer {
		t.Errorf("Optimizer = %q, want default %q", c.Optimizer, d.Optimizer)
	}
	if c.Trials != d.Trials {
		t.Errorf("Trials = %d, want default %d", c.Trials, d.Trials)
	}
	if c.Seed != d.Seed {
		t.Errorf("Seed = %d, want default %d", c.Seed, d.Seed)
	}
	if c.OutputDir != d.OutputDir {
		t.Errorf("OutputDir = %q, want default %q", c.OutputDir, d.OutputDir)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	if _, err := Load(writeCampaign(t, "trials: [not a number\n")); err == nil {
		t.Error("expected error for malformed YAML")
	}

	if _, err := Load(writeCampaign(t, "optimizer: dehb\n")); err == nil {
		t.Error("expected error for campaign without benchmark")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Campaign {
		c := Default()
		c.Benchmark = "zdt1-mf"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Campaign)
		wantErr bool
	}{
		{"valid", func(c *Campaign) {}, false},
		{"eta 0 is default", func(c *Campaign) { c.Eta = 0 }, false},
		{"no benchmark", func(c *Campaign) { c.Benchmark = "" }, true},
		{"no optimizer", func(c *Campaign) { c.Optimizer = "" }, true},
		{"zero trials", func(c *Campaign) { c.Trials = 0 }, true},
		{"negative trials", func(c *Campaign) { c.Trials = -5 }, true},
		{"eta 1", func(c *Campaign) { c.Eta = 1 }, true},
		{"negative eta", func(c *Campaign) { c.Eta = -2 }, true},
		{"no output dir", func(c *Campaign) { c.OutputDir = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
