package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/wander/internal/cli/formatter"
)

type resultMsg[T any] struct {
	value T
	err   error
}

// progressModel shows a spinner while a single call runs in the background.
type progressModel[T any] struct {
	spinner spinner.Model
	label   string
	call    func() (T, error)
	result  *resultMsg[T]
}

func newProgressModel[T any](label string, call func() (T, error)) progressModel[T] {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = formatter.StyleHeath
	return progressModel[T]{spinner: s, label: label, call: call}
}

func (m progressModel[T]) Init() tea.Cmd {
	call := m.call
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		v, err := call()
		return resultMsg[T]{value: v, err: err}
	})
}

func (m progressModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg[T]:
		m.result = &msg
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.result = &resultMsg[T]{err: context.Canceled}
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel[T]) View() string {
	if m.result != nil {
		return ""
	}
	return "  " + m.spinner.View() + " " + formatter.Dim(m.label) + "\n"
}

// withProgress runs call behind a spinner on interactive terminals and
// directly otherwise.
func withProgress[T any](app *App, out io.Writer, label string, call func() (T, error)) (T, error) {
	if !app.interactive() {
		return call()
	}
	final, err := tea.NewProgram(newProgressModel(label, call), tea.WithOutput(out)).Run()
	if err != nil {
		var zero T
		return zero, err
	}
	m := final.(progressModel[T])
	if m.result == nil {
		var zero T
		return zero, context.Canceled
	}
	return m.result.value, m.result.err
}
