package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RunWithWork renders model while workFn runs in the background, blocking
// until both finish. workFn gets a send callback for row updates; when it
// returns, the program is told the work is complete and shuts down. A fatal
// ErrorMsg sent by workFn comes back as the return value.
func RunWithWork(out io.Writer, model ProgressModel, workFn func(send func(tea.Msg))) error {
	program := tea.NewProgram(model, tea.WithOutput(out))

	go func() {
		// Give the event loop a beat to draw the initial frame.
		time.Sleep(50 * time.Millisecond)

		workFn(func(msg tea.Msg) {
			program.Send(msg)
			// Scoring an instinct takes microseconds, so without a short
			// pause between updates the table reaches its final state
			// before the first repaint.
			time.Sleep(5 * time.Millisecond)
		})
		program.Send(WorkDoneMsg{})
	}()

	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(ProgressModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
