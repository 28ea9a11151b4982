package commands

import (
	"fmt"

	"btr/internal/storage"
	"btr/internal/ui"

	"github.com/spf13/cobra"
)

// ResultsCommand handles the results command
type ResultsCommand struct {
	storage storage.Storage
	viewer  ui.Viewer
}

// NewResultsCommand creates a new ResultsCommand
func NewResultsCommand(st storage.Storage, viewer ui.Viewer) *ResultsCommand {
	return &ResultsCommand{storage: st, viewer: viewer}
}

// Execute loads the last run and opens the interactive viewer.
func (rc *ResultsCommand) Execute(cmd *cobra.Command, args []string) error {
	record, err := rc.storage.Load()
	if err != nil {
		return fmt.Errorf("no stored results: %w (run tests first)", err)
	}
	return rc.viewer.View(record)
}
