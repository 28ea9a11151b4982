package cli

import "fmt"

// ExitError carries an aggregated run exit code from a command up to main,
// so the process exit code equals the run outcome exit code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError wraps a non-zero exit code; negative codes (process could
// not be started or was interrupted without a code) collapse to 1.
func NewExitError(code int) *ExitError {
	if code < 0 {
		code = 1
	}
	return &ExitError{Code: code}
}
