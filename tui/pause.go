package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

const pausePrompt = "Press Enter to exit..."

type pauseModel struct {
	done bool
}

func (m pauseModel) Init() tea.Cmd {
	return nil
}

func (m pauseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter, tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pauseModel) View() string {
	if m.done {
		return ""
	}
	return "\n" + WarningStyle().Render(pausePrompt) + "\n"
}

// CanPause reports whether stdin and stdout are both attached to a terminal.
func CanPause() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// WaitForEnter keeps the console open until the user presses Enter. It
// returns immediately when there is no terminal to read from.
func WaitForEnter() {
	if !CanPause() {
		return
	}
	InitCommonStyles(os.Stdout)
	_, _ = tea.NewProgram(pauseModel{}, tea.WithOutput(os.Stdout)).Run()
}
