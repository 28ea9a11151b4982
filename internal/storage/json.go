package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"btr/internal/domain"
)

// Save writes the run outcome to the configured JSON output file.
func (s *JSONStorage) Save(outcome domain.RunOutcome, suite, scope string) error {
	failed := 0
	for _, p := range outcome.Phases {
		if !p.Passed() {
			failed++
		}
	}

	record := domain.RunRecord{
		Meta: domain.RunMeta{
			ExitCode:        outcome.ExitCode,
			TotalPhases:     len(outcome.Phases),
			FailedPhases:    failed,
			Duration:        outcome.Duration.String(),
			DurationSeconds: outcome.Duration.Seconds(),
			TestSuite:       suite,
			PythonScope:     scope,
			Timestamp:       time.Now().Format(time.RFC3339),
		},
	}
	for _, p := range outcome.Phases {
		record.Phases = append(record.Phases, domain.PhaseRecord{
			Phase:           string(p.Phase),
			ExitCode:        p.ExitCode,
			Passed:          p.Passed(),
			DurationSeconds: p.Duration.Seconds(),
			OutputExcerpt:   p.Output,
		})
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads the last run record from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunRecord, error) {
	data, err := os.ReadFile(s.cfg.GetOutputPath())
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var record domain.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &record, nil
}
