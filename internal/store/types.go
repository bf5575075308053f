package store

import (
	"fmt"
	"time"
)

// TrialRecord is one completed trial, serialized as a JSON line in
// trace.jsonl.
type TrialRecord struct {
	// Trial is the 0-based position of this trial in the campaign.
	Trial int `json:"trial"`

	// ConfigID is the optimizer-assigned trial name, e.g. "trial_17".
	ConfigID string `json:"configId"`

	// Values holds the raw objective values keyed by objective name.
	Values map[string]float64 `json:"values"`

	// FidelityKey and Fidelity record the budget level the trial ran
	// at. FidelityKey is empty for problems without a fidelity.
	FidelityKey string  `json:"fidelityKey,omitempty"`
	Fidelity    float64 `json:"fidelity,omitempty"`

	// Cost is the budget consumed by the evaluation.
	Cost float64 `json:"cost"`

	Timestamp time.Time `json:"timestamp"`
}

// ParetoPoint is one nondominated configuration in a report.
type ParetoPoint struct {
	ConfigID string             `json:"configId"`
	Values   map[string]float64 `json:"values"`
}

// Report summarizes one finished campaign run.
type Report struct {
	RunID     string `json:"runId"`
	Campaign  string `json:"campaign"`
	Benchmark string `json:"benchmark"`
	Optimizer string `json:"optimizer"`
	Seed      int64  `json:"seed"`

	// Trials is the number of completed evaluations.
	Trials int `json:"trials"`

	// TotalCost is the summed budget cost across all trials.
	TotalCost float64 `json:"totalCost"`

	// ParetoFront holds the nondominated trials by raw objective
	// values (minimize-oriented comparison per objective declaration).
	ParetoFront []ParetoPoint `json:"paretoFront"`

	ElapsedSeconds float64   `json:"elapsedSeconds"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate checks that the report carries the fields every consumer
// relies on.
func (r *Report) Validate() error {
	if r.RunID == "" {
		return fmt.Errorf("report: runId must not be empty")
	}
	if r.Benchmark == "" {
		return fmt.Errorf("report: benchmark must not be empty")
	}
	if r.Optimizer == "" {
		return fmt.Errorf("report: optimizer must not be empty")
	}
	if r.Trials < 0 {
		return fmt.Errorf("report: negative trial count %d", r.Trials)
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("report: createdAt must be set")
	}
	return nil
}
