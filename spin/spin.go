// Package spin shows a spinner while a request is in flight.
package spin

import (
	"os"
	"sync"

	"github.com/animecritique/critique/color"
	"github.com/animecritique/critique/style"
	"github.com/animecritique/critique/util"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// inFlight allows one spinner, and so one request, at a time.
var inFlight sync.Mutex

type doneMsg struct{}

type model struct {
	spinner spinner.Model
	title   string
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.spinner.View() + " " + m.title
}

// While runs fn behind a spinner titled title and returns its result.
// Without a terminal fn runs plainly. Calls are serialized.
func While[T any](title string, fn func() T) T {
	inFlight.Lock()
	defer inFlight.Unlock()

	if !util.IsTerminal() {
		return fn()
	}

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(style.New().Foreground(color.Accent)),
	)

	p := tea.NewProgram(
		model{spinner: s, title: style.Faint(title)},
		tea.WithInput(nil),
		tea.WithOutput(os.Stderr),
	)

	result := make(chan T, 1)
	go func() {
		result <- fn()
		p.Send(doneMsg{})
	}()

	// a spinner that fails to start still leaves fn running
	_, _ = p.Run()
	return <-result
}
