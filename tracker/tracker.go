// Package tracker drives the active study session and records its
// outcome.
package tracker

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/stopwatch"
	"github.com/charmbracelet/huh"
	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/studytrack/config"
	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/session"
	"github.com/ayoisaiah/studytrack/store"
)

const lastProfileKey = "last_profile"

const secondsInAMinute = 60

// Tracker owns the live session and its store handle. Every session
// command operates through it, whether from the live view or as a
// one-shot invocation against the persisted session.
type Tracker struct {
	db   store.DB
	cfg  *config.App
	sess *session.Session

	profile    string
	location   string
	equipment  string
	statusPath string

	// quiet suppresses desktop notifications while a compound
	// transition (like a profile switch) runs, so only its own
	// notification is shown.
	quiet bool

	clock      stopwatch.Model
	help       help.Model
	form       *huh.Form
	formKind   formKind
	formValue  string
	endSummary *session.Summary
	endNote    string
	counter    int
}

// New returns a tracker bound to the given store and configuration.
func New(db store.DB, cfg *config.App) *Tracker {
	return &Tracker{
		db:         db,
		cfg:        cfg,
		statusPath: config.GetStatusFilePath(),
		clock:      stopwatch.NewWithInterval(time.Second),
		help:       help.New(),
	}
}

// load restores the persisted live session, if any, so one-shot commands
// can operate on a session started by another invocation.
func (t *Tracker) load() error {
	if t.sess != nil {
		return nil
	}

	active, err := t.db.Active()
	if err != nil {
		return err
	}

	if active == nil || active.Session == nil {
		return nil
	}

	t.sess = active.Session
	t.profile = active.Profile
	t.location = active.Location
	t.equipment = active.Equipment

	t.sess.Subscribe(t)

	return nil
}

func (t *Tracker) persistActive() error {
	return t.db.SaveActive(&models.ActiveSession{
		Session:   t.sess,
		Profile:   t.profile,
		Location:  t.location,
		Equipment: t.equipment,
	})
}

// resolveProfile fills the tracker's environment from the named profile,
// or from the last used one when no name is given. A last_profile
// setting that names a removed profile is cleared rather than reported.
func (t *Tracker) resolveProfile(name string) error {
	if name != "" {
		p, err := t.db.GetProfile(name)
		if err != nil {
			return err
		}

		if p == nil {
			return errUnknownProfile
		}

		t.profile = p.Name
		t.location = p.Location
		t.equipment = p.Equipment

		return t.db.SetSetting(lastProfileKey, p.Name)
	}

	last, err := t.db.Setting(lastProfileKey)
	if err != nil {
		return err
	}

	if last == "" {
		return nil
	}

	p, err := t.db.GetProfile(last)
	if err != nil {
		return err
	}

	if p == nil {
		return t.db.RemoveSetting(lastProfileKey)
	}

	t.profile = p.Name
	t.location = p.Location
	t.equipment = p.Equipment

	return nil
}

// Start begins a new session. Explicit location and equipment values
// override whatever the profile supplies.
func (t *Tracker) Start(profile, location, equipment string) error {
	err := t.load()
	if err != nil {
		return err
	}

	if t.sess != nil && t.sess.IsRunning {
		return errSessionActive
	}

	err = t.resolveProfile(profile)
	if err != nil {
		return err
	}

	if location != "" {
		t.location = location
	}

	if equipment != "" {
		t.equipment = equipment
	}

	t.sess = session.New()
	t.sess.Subscribe(t)

	t.sess.Start()

	return t.persistActive()
}

// Pause opens a break in the active session.
func (t *Tracker) Pause(reason string) error {
	err := t.load()
	if err != nil {
		return err
	}

	if t.sess == nil || !t.sess.IsRunning {
		return errNoSession
	}

	if t.sess.Pause(reason) == nil {
		return errAlreadyPaused
	}

	return t.persistActive()
}

// Resume closes the open pause.
func (t *Tracker) Resume() error {
	err := t.load()
	if err != nil {
		return err
	}

	if t.sess == nil || !t.sess.IsRunning {
		return errNoSession
	}

	if t.sess.Pauses.ActivePause(t.sess.ID) == nil {
		return errNotPaused
	}

	t.sess.Resume()

	return t.persistActive()
}

// End stops the active session, records it, clears the live state, and
// runs the configured post-session hook.
func (t *Tracker) End(notes string) (*session.Summary, error) {
	err := t.load()
	if err != nil {
		return nil, err
	}

	if t.sess == nil || !t.sess.IsRunning {
		return nil, errNoSession
	}

	sum := t.sess.End()

	err = t.db.SaveSession(t.sess, notes, t.location, t.equipment)
	if err != nil {
		return nil, err
	}

	err = t.db.ClearActive()
	if err != nil {
		return nil, err
	}

	t.removeStatusFile()

	t.endSummary = sum

	if t.cfg.SoundOnEnd {
		serr := playEndTone()
		if serr != nil {
			pterm.Error.Printfln("unable to play sound: %v", serr)
		}
	}

	err = t.runSessionCmd(t.cfg.SessionCmd)
	if err != nil {
		return nil, err
	}

	return sum, nil
}

// Switch changes the active profile. During a session it records the
// current half under an automatic note and starts a fresh session with
// the new profile's environment; otherwise it just selects the profile
// for the next start.
func (t *Tracker) Switch(profile string) error {
	err := t.load()
	if err != nil {
		return err
	}

	if t.sess == nil || !t.sess.IsRunning {
		err = t.resolveProfile(profile)
		if err != nil {
			return err
		}

		t.notify("Profile updated", t.profile)

		return nil
	}

	p, err := t.db.GetProfile(profile)
	if err != nil {
		return err
	}

	if p == nil {
		return errUnknownProfile
	}

	t.quiet = true
	defer func() {
		t.quiet = false
	}()

	// A pause left open would backdate the end of the first half, so it
	// is closed and counted instead.
	if t.sess.Pauses.ActivePause(t.sess.ID) != nil {
		t.sess.Resume()
	}

	autoNote := fmt.Sprintf(
		"continuing session %s; profile changed to %s",
		t.sess.ID,
		p.Name,
	)

	err = t.db.SaveSession(t.sess, autoNote, t.location, t.equipment)
	if err != nil {
		return err
	}

	t.profile = p.Name
	t.location = p.Location
	t.equipment = p.Equipment

	err = t.db.SetSetting(lastProfileKey, p.Name)
	if err != nil {
		return err
	}

	t.sess = session.New()
	t.sess.Subscribe(t)

	t.sess.Start()

	err = t.persistActive()
	if err != nil {
		return err
	}

	t.quiet = false

	t.notify(
		"Profile changed",
		fmt.Sprintf("New session started with %s", p.Name),
	)

	return nil
}

// StatusChanged keeps the status file current and surfaces session
// transitions as desktop notifications.
func (t *Tracker) StatusChanged(status session.Status) {
	_ = t.writeStatusFile()

	switch status {
	case session.Running:
		if t.sess.Pauses.SessionPauseCount(t.sess.ID) == 0 {
			msg := "Focus time activated!"
			if t.profile != "" {
				msg = fmt.Sprintf("%s (%s)", msg, t.profile)
			}

			t.notify("Session started", msg)
		} else {
			t.notify("Session resumed", "Back to focus mode!")
		}
	case session.Paused:
		reason := "Paused"
		if p := t.sess.Pauses.ActivePause(t.sess.ID); p != nil &&
			p.Reason != "" {
			reason = p.Reason
		}

		t.notify("Session paused", reason)
	case session.Ended:
		sum := t.sess.Summary()

		t.notify(
			"Session ended",
			fmt.Sprintf("Logged: %d min", sum.ActiveSeconds/secondsInAMinute),
		)
	case session.Idle:
	}
}

// Session exposes the live session for rendering.
func (t *Tracker) Session() *session.Session {
	return t.sess
}

// EndSummary returns the summary of the session ended through the live
// view, or nil if none ended.
func (t *Tracker) EndSummary() *session.Summary {
	return t.endSummary
}

// EndNote returns the note entered when the session was ended through
// the live view.
func (t *Tracker) EndNote() string {
	return t.endNote
}

// Environment reports the profile, location, and equipment the session
// runs under.
func (t *Tracker) Environment() (profile, location, equipment string) {
	return t.profile, t.location, t.equipment
}

// notify sends a desktop notification.
func (t *Tracker) notify(title, msg string) {
	if !t.cfg.Notify || t.quiet {
		return
	}

	err := beeep.Notify(title, msg, "")
	if err != nil {
		pterm.Error.Printfln("unable to display notification: %v", err)
	}
}

// runSessionCmd executes the configured post-session command.
func (t *Tracker) runSessionCmd(sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse session_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}
