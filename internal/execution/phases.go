package execution

import (
	"context"
	"fmt"
	"strings"
	"time"

	"btr/internal/config"
	"btr/internal/domain"
)

// In-container harness entry points. The harnesses themselves are opaque;
// the controller only constructs their invocations.
const (
	cppTestBinary    = "build/src/test/test_bitcoin"
	pythonTestRunner = "test/functional/test_runner.py"
)

// quickTests is the fixed minimal functional test list for scope "quick".
var quickTests = []string{
	"wallet_basic.py",
	"mempool_accept.py",
	"p2p_invalid_messages.py",
}

// PhasesFor returns the phases to execute for the configured suite,
// in the fixed execution order: cpp before python.
func PhasesFor(cfg *config.Config) []domain.Phase {
	var phases []domain.Phase
	if cfg.RunsCpp() {
		phases = append(phases, domain.PhaseCpp)
	}
	if cfg.RunsPython() {
		phases = append(phases, domain.PhasePython)
	}
	return phases
}

// CppArgs returns the unit-test binary arguments: the passthrough string
// split into fields, injected verbatim with no interpretation.
func CppArgs(cfg *config.Config) []string {
	return strings.Fields(cfg.CppTestArgs)
}

// PythonArgs resolves the configured scope into concrete test_runner.py
// arguments, then appends parallelism, passthrough args and excludes.
func PythonArgs(cfg *config.Config) []string {
	var args []string
	switch cfg.PythonScope {
	case "quick":
		args = append(args, quickTests...)
	case "standard":
		// default runner behavior, no extra selection
	case "all":
		args = append(args, "--extended", "--extended-only")
	default:
		// literal test name(s), passed through unchanged
		args = append(args, strings.Fields(cfg.PythonScope)...)
	}
	args = append(args, fmt.Sprintf("--jobs=%d", cfg.PythonJobs))
	args = append(args, strings.Fields(cfg.PythonArgs)...)
	for _, name := range cfg.ExcludeTests {
		args = append(args, "--exclude", name)
	}
	return args
}

// HarnessCommand returns the in-container command for a phase.
func HarnessCommand(phase domain.Phase, cfg *config.Config) []string {
	switch phase {
	case domain.PhaseCpp:
		return append([]string{cppTestBinary}, CppArgs(cfg)...)
	case domain.PhasePython:
		return append([]string{pythonTestRunner}, PythonArgs(cfg)...)
	}
	return nil
}

// Driver runs test phases inside the built container, strictly one at a
// time. Phases share the workspace and container context and must never
// overlap.
type Driver struct {
	cfg     *config.Config
	runner  CommandRunner
	compose []string // resolved compose command, e.g. ["docker", "compose"]
}

// NewDriver creates a phase execution driver.
func NewDriver(cfg *config.Config, runner CommandRunner, compose []string) *Driver {
	return &Driver{cfg: cfg, runner: runner, compose: compose}
}

// ComposeRunArgs builds the full compose invocation for one phase.
func (d *Driver) ComposeRunArgs(phase domain.Phase) []string {
	args := append([]string{}, d.compose[1:]...)
	args = append(args, "-f", d.cfg.ComposeFile, "run", "--rm", d.cfg.Service)
	args = append(args, HarnessCommand(phase, d.cfg)...)
	return args
}

// RunPhase executes one phase, streaming its combined output live, and
// records duration and exit code. A failing phase is terminal only for
// itself; the caller decides whether siblings still run.
func (d *Driver) RunPhase(ctx context.Context, phase domain.Phase) domain.PhaseResult {
	cmd := Command{Name: d.compose[0], Args: d.ComposeRunArgs(phase)}
	start := time.Now()
	res := d.runner.Stream(ctx, cmd)
	excerpt := res.Stdout
	if res.Stderr != "" {
		excerpt = strings.TrimRight(excerpt, "\n") + "\n" + res.Stderr
	}
	return domain.PhaseResult{
		Phase:    phase,
		ExitCode: res.ExitCode,
		Duration: time.Since(start),
		Output:   strings.TrimSpace(excerpt),
	}
}
