package commands

import (
	"fmt"
	"strings"

	"btr/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ConfigCommand handles the config command
type ConfigCommand struct {
	config *config.Config
}

// NewConfigCommand creates a new ConfigCommand
func NewConfigCommand(cfg *config.Config) *ConfigCommand {
	return &ConfigCommand{config: cfg}
}

// Execute prints the fully resolved configuration.
func (cc *ConfigCommand) Execute(cmd *cobra.Command, args []string) error {
	c := cc.config
	color.Cyan("Resolved configuration")
	fmt.Println()

	rows := []struct{ key, value string }{
		{"Repository URL", c.RepoURL},
		{"Branch", c.Branch},
		{"Build type", c.BuildType},
		{"Build jobs", intOrDefault(c.BuildJobs, "engine default")},
		{"Test suite", c.TestSuite},
		{"Python scope", c.PythonScope},
		{"Python jobs", fmt.Sprintf("%d", c.PythonJobs)},
		{"C++ test args", orNone(c.CppTestArgs)},
		{"Python test args", orNone(c.PythonArgs)},
		{"Excluded tests", orNone(strings.Join(c.ExcludeTests, ", "))},
		{"Compose file", c.ComposeFile},
		{"Service", c.Service},
		{"Workspace", c.Workspace},
		{"Keep containers", fmt.Sprintf("%t", c.KeepContainers)},
		{"Clean rebuild", fmt.Sprintf("%t", c.NoCache)},
		{"Force update", fmt.Sprintf("%t", c.Force)},
		{"Verbose", fmt.Sprintf("%t", c.Verbose)},
		{"History DSN", orNone(c.HistoryDSN)},
	}
	for _, row := range rows {
		fmt.Printf("  %-18s %s\n", row.key, row.value)
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func intOrDefault(n int, def string) string {
	if n == 0 {
		return def
	}
	return fmt.Sprintf("%d", n)
}
