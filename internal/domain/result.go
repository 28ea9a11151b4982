package domain

import "time"

// RunOutcome is the final aggregated state of one controller invocation.
type RunOutcome struct {
	ExitCode int           // 0 iff every executed phase exited 0
	Duration time.Duration // Total wall time of the run
	Phases   []PhaseResult // One entry per executed phase, in execution order
}

// Aggregate combines ordered phase results into a RunOutcome. The overall
// exit code is the first non-zero phase exit code, or 0 when every phase
// passed.
func Aggregate(phases []PhaseResult, total time.Duration) RunOutcome {
	outcome := RunOutcome{Duration: total, Phases: phases}
	for _, p := range phases {
		if p.ExitCode != 0 {
			outcome.ExitCode = p.ExitCode
			break
		}
	}
	return outcome
}

// Passed reports whether every executed phase passed.
func (o RunOutcome) Passed() bool {
	return o.ExitCode == 0
}

// RunMeta contains metadata about a completed run
type RunMeta struct {
	ExitCode        int     `json:"exit_code"`
	TotalPhases     int     `json:"total_phases"`
	FailedPhases    int     `json:"failed_phases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	TestSuite       string  `json:"test_suite"`
	PythonScope     string  `json:"python_scope"`
	Timestamp       string  `json:"timestamp"`
}

// PhaseRecord is the persisted form of a PhaseResult
type PhaseRecord struct {
	Phase           string  `json:"phase"`
	ExitCode        int     `json:"exit_code"`
	Passed          bool    `json:"passed"`
	DurationSeconds float64 `json:"duration_seconds"`
	OutputExcerpt   string  `json:"output_excerpt,omitempty"`
}

// RunRecord is the complete output structure for a persisted run
type RunRecord struct {
	Meta   RunMeta       `json:"meta"`
	Phases []PhaseRecord `json:"phases"`
}
