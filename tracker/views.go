package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/studytrack/internal/session"
	"github.com/ayoisaiah/studytrack/report"
)

// formatElapsed renders the accumulated active time as HH:MM:SS. The
// clock excludes paused stretches, unlike the wall-time status line.
func (t *Tracker) formatElapsed() string {
	secs := int(t.clock.Elapsed().Seconds())

	hrs := secs / 3600
	mins := (secs % 3600) / 60

	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs%60)
}

func (t *Tracker) statusView() string {
	return report.StatusLine(
		t.sess.Status(),
		t.sess.ElapsedSince(time.Now())/secondsInAMinute,
		t.sess.Pauses.SessionPauseCount(t.sess.ID),
	)
}

func (t *Tracker) environmentView() string {
	var parts []string

	if t.profile != "" {
		parts = append(parts, "profile: "+t.profile)
	}

	if t.location != "" {
		parts = append(parts, "location: "+t.location)
	}

	if t.equipment != "" {
		parts = append(parts, "equipment: "+t.equipment)
	}

	return strings.Join(parts, " · ")
}

func (t *Tracker) sessionHelpView() string {
	return t.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePause,
		defaultKeymap.end,
		defaultKeymap.quit,
	})
}

func (t *Tracker) trackerView() string {
	var s strings.Builder

	s.WriteString(t.statusView())
	s.WriteString("\n\n")
	s.WriteString(clockStyle.Render(t.formatElapsed()))

	if env := t.environmentView(); env != "" {
		s.WriteString("\n\n")
		s.WriteString(hintStyle.Render(env))
	}

	s.WriteString("\n\n")
	s.WriteString(t.sessionHelpView())

	return s.String()
}

func (t *Tracker) View() string {
	if t.sess == nil || t.sess.Status() == session.Ended {
		return ""
	}

	view := t.trackerView()

	if t.form != nil {
		view += "\n\n" + t.form.View()
	}

	return baseStyle.Render(view)
}
