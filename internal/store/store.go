// Package store persists campaign artifacts: a JSONL trace of every
// trial and a final report per run, laid out as <baseDir>/runs/<runID>/.
package store

// Store defines the interface for run persistence.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return a NotFoundError if the run doesn't exist (for Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveReport atomically saves the final report for a run,
	// overwriting any existing one. Implementations use temp file +
	// rename so a crash never leaves a corrupt report behind.
	SaveReport(runID string, report *Report) error

	// LoadReport retrieves the report for a run. Returns a
	// NotFoundError if no report exists.
	LoadReport(runID string) (*Report, error)

	// ListReports returns all available reports, newest first. The
	// returned slice may be empty.
	ListReports() ([]Report, error)

	// DeleteRun removes the run directory with its report and trace.
	// Returns a NotFoundError if the run does not exist.
	DeleteRun(runID string) error
}

// ErrNotFound is a template for errors.Is checks.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing run.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "run not found: " + e.RunID
	}
	return "run not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
