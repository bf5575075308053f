package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// FSStore implements Store on the local filesystem. Runs live under
// <baseDir>/runs/<runID>/. Writes use the temp file + rename pattern,
// so no locking is needed for concurrent readers.
type FSStore struct {
	baseDir string
}

// NewFSStore creates a filesystem-backed store, creating baseDir if it
// does not exist.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &FSStore{baseDir: baseDir}, nil
}

// BaseDir returns the store's root directory.
func (fs *FSStore) BaseDir() string { return fs.baseDir }

// RunDir returns the directory path for a given run ID.
func (fs *FSStore) RunDir(runID string) string {
	return filepath.Join(fs.baseDir, "runs", runID)
}

func (fs *FSStore) reportPath(runID string) string {
	return filepath.Join(fs.RunDir(runID), "report.json")
}

// SaveReport atomically saves the report for a run.
func (fs *FSStore) SaveReport(runID string, report *Report) error {
	if runID == "" {
		return fmt.Errorf("runID cannot be empty")
	}
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}
	if err := report.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(fs.RunDir(runID), 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	tempPath := fs.reportPath(runID) + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp report file: %w", err)
	}

	finalPath := fs.reportPath(runID)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename report file: %w", err)
	}

	slog.Debug("report saved", "run_id", runID, "path", finalPath)
	return nil
}

// LoadReport retrieves the report for a run.
func (fs *FSStore) LoadReport(runID string) (*Report, error) {
	if runID == "" {
		return nil, fmt.Errorf("runID cannot be empty")
	}

	data, err := os.ReadFile(fs.reportPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{RunID: runID}
		}
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to deserialize report: %w", err)
	}
	return &report, nil
}

// ListReports returns all saved reports, newest first. Runs without a
// report file (still in progress, or crashed) are skipped.
func (fs *FSStore) ListReports() ([]Report, error) {
	runsDir := filepath.Join(fs.baseDir, "runs")
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan runs directory: %w", err)
	}

	var reports []Report
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		report, err := fs.LoadReport(entry.Name())
		if err != nil {
			continue
		}
		reports = append(reports, *report)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

// DeleteRun removes a run directory and everything in it.
func (fs *FSStore) DeleteRun(runID string) error {
	if runID == "" {
		return fmt.Errorf("runID cannot be empty")
	}

	dir := fs.RunDir(runID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return &NotFoundError{RunID: runID}
	} else if err != nil {
		return fmt.Errorf("failed to stat run directory: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete run directory: %w", err)
	}

	slog.Debug("run deleted", "run_id", runID)
	return nil
}
