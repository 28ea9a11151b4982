package commands

import (
	"context"
	"fmt"

	"btr/internal/config"
	"btr/internal/execution"
	"btr/internal/prereq"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CheckCommand handles the check command
type CheckCommand struct {
	config *config.Config
	runner execution.CommandRunner
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(cfg *config.Config, runner execution.CommandRunner) *CheckCommand {
	return &CheckCommand{config: cfg, runner: runner}
}

// Execute runs every prerequisite probe and prints the full report.
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	checker := prereq.NewChecker(cc.config, cc.runner)
	report := checker.Check(context.Background())

	for _, p := range report.Probes {
		if p.OK {
			color.Green("✓ %s", p.Name)
		} else {
			color.Red("✗ %s", p.Name)
			if p.Detail != "" {
				color.White("    %s", p.Detail)
			}
		}
	}

	if !report.OK() {
		return fmt.Errorf("%d prerequisite(s) failed", len(report.Failed()))
	}
	color.Green("\nAll prerequisites satisfied")
	return nil
}
