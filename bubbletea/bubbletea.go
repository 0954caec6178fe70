// Package bubbletea provides a Bubble Tea TUI for exploring bikeshare data.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/bikeshare"
)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits and returns the final model so callers can print its transcript.
// The context is used for graceful shutdown: when cancelled, the program
// quits.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) (Model, error) {
	p := tea.NewProgram(m, opts...)
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m, err
}

// EventMsg wraps an analysis progress event for delivery to the model.
type EventMsg struct {
	Event bikeshare.Event
}

// AnalysisDoneMsg signals that an analysis has completed.
type AnalysisDoneMsg struct {
	Result *bikeshare.Result
	Err    error
}
