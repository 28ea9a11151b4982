package ui

import (
	"fmt"
	"time"

	"btr/internal/config"
	"btr/internal/domain"

	"github.com/fatih/color"
)

// Formatter renders run progress and the final summary. All coloring here
// is cosmetic; it never changes computed exit codes or reported values.
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintHeader prints the run banner and the resolved settings.
func (f *Formatter) PrintHeader() {
	color.Cyan("Bitcoin Core test runner")
	color.White("Repository: %s (branch: %s)", f.config.RepoURL, f.config.Branch)
	color.White("Build type: %s | Suite: %s | Python scope: %s | Python jobs: %d",
		f.config.BuildType, f.config.TestSuite, f.config.PythonScope, f.config.PythonJobs)
	if len(f.config.ExcludeTests) > 0 {
		color.White("Excluded tests: %v", f.config.ExcludeTests)
	}
	fmt.Println()
}

// PrintStep announces a pipeline step.
func (f *Formatter) PrintStep(msg string) {
	color.Yellow("%s", msg)
}

// PrintStepDone marks a pipeline step as finished.
func (f *Formatter) PrintStepDone(msg string) {
	color.Green("✓ %s", msg)
	fmt.Println()
}

// PrintPhaseStart announces one test phase.
func (f *Formatter) PrintPhaseStart(phase domain.Phase, invocation string) {
	color.Yellow("Running %s phase...", phase)
	if f.config.Verbose {
		color.White("  %s", invocation)
	}
}

// PrintPhaseResult prints the per-phase banner.
func (f *Formatter) PrintPhaseResult(res domain.PhaseResult) {
	if res.Passed() {
		color.Green("✓ %s phase passed (%.2fs)", res.Phase, res.Duration.Seconds())
	} else {
		color.Red("✗ %s phase failed with exit code %d (%.2fs)", res.Phase, res.ExitCode, res.Duration.Seconds())
	}
	fmt.Println()
}

// PrintSummary renders the per-phase table and the final verdict line.
// Duration metrics are always printed, success or failure.
func (f *Formatter) PrintSummary(outcome domain.RunOutcome) {
	fmt.Println()
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                      Test Run Summary                         ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝")
	fmt.Println()

	fmt.Println("┌──────────────┬──────────┬────────────┬──────────────┐")
	fmt.Printf("│ %-12s │ %-8s │ %-10s │ %-12s │\n", "Phase", "Result", "Exit code", "Duration")
	fmt.Println("├──────────────┼──────────┼────────────┼──────────────┤")
	for _, p := range outcome.Phases {
		fmt.Printf("│ %-12s │ ", p.Phase)
		if p.Passed() {
			color.Set(color.FgGreen)
			fmt.Printf("%-8s", "PASS")
			color.Unset()
		} else {
			color.Set(color.FgRed)
			fmt.Printf("%-8s", "FAIL")
			color.Unset()
		}
		fmt.Printf(" │ %-10d │ %-12s │\n", p.ExitCode, formatDuration(p.Duration))
	}
	fmt.Println("└──────────────┴──────────┴────────────┴──────────────┘")

	fmt.Println()
	color.White("Total duration: %s", formatDuration(outcome.Duration))
	if outcome.Passed() {
		color.Green("✓ All test phases passed!")
	} else {
		color.Red("✗ Test run failed (exit code %d)", outcome.ExitCode)
	}
}

// PrintPrereqFailures lists every failed probe.
func (f *Formatter) PrintPrereqFailures(report domain.PrerequisiteReport) {
	color.Red("✗ Prerequisite check failed:")
	for _, p := range report.Failed() {
		color.Red("  - %s", p.Name)
		if p.Detail != "" {
			color.White("      %s", p.Detail)
		}
	}
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
