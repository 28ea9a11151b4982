package storage

import (
	"btr/internal/config"
	"btr/internal/domain"
)

// Storage persists and loads run results (e.g. for the results viewer).
type Storage interface {
	Save(outcome domain.RunOutcome, suite, scope string) error
	Load() (*domain.RunRecord, error)
}

// JSONStorage stores the last run in a JSON file under the configured
// output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output
// JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
