package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

type BusyDoneMsg struct{}

type BusyModel struct {
	text     string
	spin     spinner.Model
	cancel   func()
	Quitting bool

	styles busyStyles
}

type busyStyles struct {
	text lipgloss.Style
	help lipgloss.Style
}

func newBusyStyles() busyStyles {
	return busyStyles{
		text: LabelStyle().Bold(false),
		help: HelpStyle(),
	}
}

// NewBusyModel returns a spinner model. cancel, when set, is called on ctrl+c
// because the program owns the terminal and SIGINT is not delivered.
func NewBusyModel(text string, cancel func()) BusyModel {
	InitCommonStyles(os.Stdout)
	s := NewPrimarySpinner()
	return BusyModel{
		text:   text,
		spin:   s,
		cancel: cancel,
		styles: newBusyStyles(),
	}
}

func (m BusyModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m BusyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BusyDoneMsg:
		m.Quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.cancel != nil {
				m.cancel()
			}
			m.Quitting = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BusyModel) View() string {
	if m.Quitting {
		return ""
	}
	return m.spin.View() + " " + m.styles.text.Render(m.text) + "\n" + m.styles.help.Render("Press Ctrl+C to cancel\n")
}

// RunBusy shows a spinner on stdout while fn runs. Without a terminal fn runs
// with no UI.
func RunBusy(text string, cancel func(), fn func()) {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		fn()
		return
	}

	bp := tea.NewProgram(NewBusyModel(text, cancel), tea.WithOutput(os.Stdout))
	busyDone := make(chan error, 1)
	go func() {
		_, err := bp.Run()
		busyDone <- err
	}()

	fn()
	ShutdownProgram(bp, busyDone, os.Stdout)
}
