package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"btr/internal/cli"
	"btr/internal/config"
	"btr/internal/container"
	"btr/internal/domain"
	"btr/internal/execution"
	"btr/internal/gitrepo"
	"btr/internal/history"
	"btr/internal/prereq"
	"btr/internal/storage"
	"btr/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command: the full pipeline from prerequisite
// checks to the aggregated report, with guaranteed container cleanup.
type RunCommand struct {
	config    *config.Config
	runner    execution.CommandRunner
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	runner execution.CommandRunner,
	formatter *ui.Formatter,
	st storage.Storage,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		runner:    runner,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// An interrupt cancels the in-flight child process; cleanup still runs.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rc.formatter.PrintHeader()
	start := time.Now()

	// Prerequisites: all probes run, any failure aborts before provisioning.
	rc.formatter.PrintStep("Checking prerequisites...")
	checker := prereq.NewChecker(rc.config, rc.runner)
	report := checker.Check(ctx)
	if !report.OK() {
		rc.formatter.PrintPrereqFailures(report)
		return fmt.Errorf("prerequisite check failed")
	}
	rc.formatter.PrintStepDone("Prerequisites OK")

	// Provision the source tree.
	rc.formatter.PrintStep(fmt.Sprintf("Provisioning %s (branch %s) into %s...",
		rc.config.RepoURL, rc.config.Branch, rc.config.Workspace))
	if err := rc.provision(ctx); err != nil {
		if ctx.Err() != nil {
			return interrupted()
		}
		return err
	}
	rc.formatter.PrintStepDone("Workspace ready")

	compose, err := prereq.ResolveComposeCommand(ctx, rc.runner)
	if err != nil {
		return err
	}

	cleanup := container.NewCleanup(rc.config, rc.runner)
	defer cleanup.Release(context.Background())

	// Build the test image; the compose project may already create
	// networks here, so the handle is registered before building.
	cleanup.Register(compose)
	rc.formatter.PrintStep("Building test image...")
	builder := container.NewBuilder(rc.config, rc.runner, compose)
	if err := builder.Build(ctx); err != nil {
		if ctx.Err() != nil {
			return interrupted()
		}
		return err
	}
	rc.formatter.PrintStepDone("Image built")

	// Run the selected phases strictly in order; a failing phase is
	// terminal only for itself.
	driver := execution.NewDriver(rc.config, rc.runner, compose)
	var results []domain.PhaseResult
	for _, phase := range execution.PhasesFor(rc.config) {
		invocation := execution.Command{Name: compose[0], Args: driver.ComposeRunArgs(phase)}
		rc.formatter.PrintPhaseStart(phase, invocation.String())
		res := driver.RunPhase(ctx, phase)
		rc.formatter.PrintPhaseResult(res)
		results = append(results, res)
		if ctx.Err() != nil {
			// The interrupted phase is recorded as failed above, but
			// nothing further may run.
			break
		}
	}

	outcome := domain.Aggregate(results, time.Since(start))
	rc.formatter.PrintSummary(outcome)

	if err := rc.storage.Save(outcome, rc.config.TestSuite, rc.config.PythonScope); err != nil {
		color.Yellow("Warning: could not save run results: %v", err)
	}
	if rc.config.HistoryDSN != "" {
		recorder := history.NewRecorder(rc.config.HistoryDSN)
		if err := recorder.Record(outcome, rc.config.TestSuite, rc.config.PythonScope); err != nil {
			color.Yellow("Warning: could not record run history: %v", err)
		}
	}

	cleanup.Release(ctx)

	if ctx.Err() != nil {
		return interrupted()
	}
	if outcome.ExitCode != 0 {
		return cli.NewExitError(outcome.ExitCode)
	}
	return nil
}

// provision clones or updates the workspace. Non-verbose runs swallow the
// git output behind a spinner; verbose runs stream it.
func (rc *RunCommand) provision(ctx context.Context) error {
	provRunner := rc.runner
	if !rc.config.Verbose {
		spinner := ui.NewSpinner("Provisioning repository ")
		provRunner = execution.WithOutput(rc.runner, spinner)
		defer spinner.Finish()
	}
	provisioner := gitrepo.NewProvisioner(rc.config, provRunner)
	return provisioner.Provision(ctx)
}

func interrupted() error {
	color.Yellow("\nInterrupted; cleaning up")
	return cli.NewExitError(execution.InterruptExitCode)
}
