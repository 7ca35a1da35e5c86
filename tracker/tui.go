package tracker

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// formKind identifies which prompt the live view is showing.
type formKind int

const (
	formNone formKind = iota
	formPauseReason
	formEndNote
)

type keymap struct {
	togglePause key.Binding
	end         key.Binding
	quit        key.Binding
}

var defaultKeymap = keymap{
	togglePause: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause/resume"),
	),
	end: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "end"),
	),
	quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "detach"),
	),
}

var (
	baseStyle  = lipgloss.NewStyle().Padding(1, 2)
	clockStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// Run starts the live tracking view and blocks until it exits. Detaching
// with ctrl+c leaves the session running for one-shot commands.
func (t *Tracker) Run() error {
	p := tea.NewProgram(t)

	_, err := p.Run()

	return err
}

// Init starts the elapsed-time clock.
func (t *Tracker) Init() tea.Cmd {
	return t.clock.Init()
}

func (t *Tracker) newForm(kind formKind) *huh.Form {
	title := "Why are you pausing?"
	if kind == formEndNote {
		title = "Session summary (optional)"
	}

	t.formValue = ""

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&t.formValue),
		),
	)
}
