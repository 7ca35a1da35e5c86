package tracker

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/studytrack/internal/session"
	"github.com/ayoisaiah/studytrack/report"
)

// persistInterval is the number of clock ticks between database snapshots.
const persistInterval = 60

func (t *Tracker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if t.cfg.Debug {
		slog.Debug(spew.Sdump(msg))
	}

	if t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case stopwatch.TickMsg:
		return t.handleClockTick(msg)

	case stopwatch.StartStopMsg:
		t.clock, cmd = t.clock.Update(msg)
		return t, cmd

	case tea.KeyMsg:
		return t.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		t.help.Width = msg.Width
		return t, nil
	}

	return t, nil
}

// handleClockTick advances the active-time clock and refreshes the
// on-disk state that other processes read.
func (t *Tracker) handleClockTick(msg stopwatch.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	t.clock, cmd = t.clock.Update(msg)

	err := t.writeStatusFile()
	if err != nil {
		return t, report.Fatal(err)
	}

	// Snapshot the session once a minute so that sudden shutdowns
	// (process killed, system crash) can be recovered from.
	if t.counter%persistInterval == 0 {
		err = t.persistActive()
		if err != nil {
			return t, report.Fatal(err)
		}
	}

	t.counter++

	return t, cmd
}

func (t *Tracker) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.togglePause):
		if t.sess.Status() == session.Paused {
			err := t.Resume()
			if err != nil {
				return t, report.Fatal(err)
			}

			return t, t.clock.Start()
		}

		t.formKind = formPauseReason
		t.form = t.newForm(formPauseReason)

		return t, t.form.Init()

	case key.Matches(msg, defaultKeymap.end):
		t.formKind = formEndNote
		t.form = t.newForm(formEndNote)

		return t, tea.Batch(t.clock.Stop(), t.form.Init())

	case key.Matches(msg, defaultKeymap.quit):
		return t.detach()
	}

	return t, nil
}

func (t *Tracker) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	// ctrl+c detaches even while a prompt is open
	if keyMsg, ok := msg.(tea.KeyMsg); ok &&
		key.Matches(keyMsg, defaultKeymap.quit) {
		return t.detach()
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		return t.completeForm()
	}

	if t.form.State == huh.StateAborted {
		return t.dismissForm()
	}

	return t, cmd
}

// completeForm applies the submitted prompt value.
func (t *Tracker) completeForm() (tea.Model, tea.Cmd) {
	kind := t.formKind
	value := strings.TrimSpace(t.formValue)

	t.form = nil
	t.formKind = formNone

	switch kind {
	case formPauseReason:
		err := t.Pause(value)
		if err != nil {
			return t, report.Fatal(err)
		}

		return t, t.clock.Stop()

	case formEndNote:
		_, err := t.End(value)
		if err != nil {
			return t, report.Fatal(err)
		}

		t.endNote = value

		return t, tea.Batch(tea.ClearScreen, tea.Quit)

	case formNone:
	}

	return t, nil
}

func (t *Tracker) dismissForm() (tea.Model, tea.Cmd) {
	kind := t.formKind

	t.form = nil
	t.formKind = formNone

	// the clock stopped when the end prompt opened
	if kind == formEndNote && t.sess.Status() == session.Running {
		return t, t.clock.Start()
	}

	return t, nil
}

// detach exits the live view without ending the session so that it can
// be controlled through one-shot commands or resumed later.
func (t *Tracker) detach() (tea.Model, tea.Cmd) {
	err := t.persistActive()
	if err != nil {
		return t, report.Fatal(err)
	}

	return t, tea.Batch(tea.ClearScreen, tea.Quit)
}
