package main

import (
	"errors"
	"fmt"
	"os"

	"btr/internal/cli"
	"btr/internal/cli/commands"
	"btr/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "btr",
		Short:   "Bitcoin Core test runner",
		Long:    `Run Bitcoin Core C++ unit tests and Python functional tests in Docker. The source tree is cloned automatically, built inside an isolated image and the selected test suites run sequentially, reporting one aggregated result.`,
		Version: version,

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command; the process exit code equals the aggregated
	// run exit code.
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
