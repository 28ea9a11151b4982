package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// Spinner shows activity while a long external process runs quietly
// (non-verbose provisioning, where git output is not streamed).
type Spinner struct {
	bar *progressbar.ProgressBar
}

// NewSpinner creates an indeterminate spinner with the given description.
func NewSpinner(description string) *Spinner {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)
	return &Spinner{bar: bar}
}

// Write advances the spinner for each chunk of swallowed output, so the
// spinner can stand in for a streamed writer on quiet runs.
func (s *Spinner) Write(p []byte) (int, error) {
	s.bar.Add(1)
	return len(p), nil
}

// Finish stops the spinner.
func (s *Spinner) Finish() {
	s.bar.Finish()
}
