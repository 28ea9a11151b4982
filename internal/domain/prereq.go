package domain

// Probe is the result of a single prerequisite check
type Probe struct {
	Name   string // What was probed (e.g. "git in PATH")
	OK     bool   // Whether the probe passed
	Detail string // Diagnostic text, set when the probe failed
}

// PrerequisiteReport aggregates all prerequisite probes for one run.
// Every probe runs regardless of earlier failures so the operator sees
// all problems at once.
type PrerequisiteReport struct {
	Probes []Probe
}

// OK reports whether every probe passed.
func (r PrerequisiteReport) OK() bool {
	for _, p := range r.Probes {
		if !p.OK {
			return false
		}
	}
	return true
}

// Failed returns the probes that did not pass.
func (r PrerequisiteReport) Failed() []Probe {
	var failed []Probe
	for _, p := range r.Probes {
		if !p.OK {
			failed = append(failed, p)
		}
	}
	return failed
}
