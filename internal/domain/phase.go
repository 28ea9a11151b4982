package domain

import "time"

// Phase identifies one test harness execution inside the built container.
type Phase string

const (
	PhaseCpp    Phase = "cpp"
	PhasePython Phase = "python"
)

// PhaseResult represents the outcome of executing a single test phase
type PhaseResult struct {
	Phase    Phase         // Which harness ran
	ExitCode int           // Exit code of the harness invocation
	Duration time.Duration // Time taken to execute
	Output   string        // Trailing excerpt of the combined output
}

// Passed reports whether the phase exited cleanly.
func (r PhaseResult) Passed() bool {
	return r.ExitCode == 0
}
