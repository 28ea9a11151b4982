package ui

import (
	"fmt"

	"btr/internal/domain"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Viewer displays the phases of a run in an interactive TUI
type Viewer interface {
	View(record *domain.RunRecord) error
}

// ResultViewer browses the last run: phase list on the left, captured
// output excerpt on the right.
type ResultViewer struct{}

// NewResultViewer creates an interactive result viewer.
func NewResultViewer() *ResultViewer {
	return &ResultViewer{}
}

// View opens the TUI. Returns when the user quits with q or Escape.
func (v *ResultViewer) View(record *domain.RunRecord) error {
	if len(record.Phases) == 0 {
		return fmt.Errorf("no phases recorded in the last run")
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(true).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	list.SetBorder(true).SetTitle(" Phases ")

	details := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	details.SetBorder(true).SetTitle(" Output excerpt ")

	header := tview.NewTextView().SetDynamicColors(true)
	verdict := "[green]PASSED"
	if record.Meta.ExitCode != 0 {
		verdict = fmt.Sprintf("[red]FAILED (exit %d)", record.Meta.ExitCode)
	}
	header.SetText(fmt.Sprintf(" Run at %s | suite %s, scope %s | %s[-] | %.2fs",
		record.Meta.Timestamp, record.Meta.TestSuite, record.Meta.PythonScope,
		verdict, record.Meta.DurationSeconds))

	showPhase := func(index int) {
		if index < 0 || index >= len(record.Phases) {
			return
		}
		p := record.Phases[index]
		text := fmt.Sprintf("[yellow]Phase:[-] %s\n[yellow]Exit code:[-] %d\n[yellow]Duration:[-] %.2fs\n\n%s",
			p.Phase, p.ExitCode, p.DurationSeconds, tview.Escape(p.OutputExcerpt))
		details.SetText(text)
		details.ScrollToBeginning()
	}

	for _, p := range record.Phases {
		main := fmt.Sprintf("[green]✓[-] %s", p.Phase)
		if !p.Passed {
			main = fmt.Sprintf("[red]✗[-] %s", p.Phase)
		}
		secondary := fmt.Sprintf("   exit %d, %.2fs", p.ExitCode, p.DurationSeconds)
		list.AddItem(main, secondary, 0, nil)
	}

	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		showPhase(index)
	})
	showPhase(0)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(details, 0, 2, false)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(body, 0, 1, true)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	return app.SetRoot(layout, true).Run()
}
