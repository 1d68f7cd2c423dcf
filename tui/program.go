package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// ShutdownProgram requests a Bubble Tea program to quit and waits for it to exit
// before restoring cursor state. The done channel should receive once the
// goroutine running p.Run() returns.
func ShutdownProgram(p *tea.Program, done <-chan error, out io.Writer) {
	if p != nil {
		p.Send(BusyDoneMsg{})
	}
	if done != nil {
		<-done
	}
	ResetLine(out)
	ShowCursor(out)
}
