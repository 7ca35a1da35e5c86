// Package session defines study sessions and the pauses taken within them.
package session

import (
	"time"

	"github.com/ayoisaiah/studytrack/internal/timeutil"
)

// timeNow is swapped out in tests to control the clock.
var timeNow = time.Now

// Status identifies a point in the session lifecycle.
type Status string

const (
	Idle    Status = "idle"
	Running Status = "running"
	Paused  Status = "paused"
	Ended   Status = "ended"
)

// Observer is notified whenever a session's status changes. The session
// never renders anything itself; implementations decide how a change is
// surfaced (desktop notification, status file, terminal output).
type Observer interface {
	StatusChanged(status Status)
}

// Session represents a single study period from start to end, including
// any pauses taken along the way.
type Session struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	ID        string        `json:"session_id"`
	Pauses    *PauseManager `json:"pauses"`
	IsRunning bool          `json:"is_running"`

	observers []Observer
}

// Summary is the final accounting of an ended session. TotalSeconds covers
// the whole span from start to end, so ActiveSeconds and PauseSeconds
// always add back up to it.
type Summary struct {
	StartTime     time.Time
	EndTime       time.Time
	SessionID     string
	Pauses        []*Pause
	TotalSeconds  int
	PauseSeconds  int
	ActiveSeconds int
	PauseCount    int
}

// New returns a session in the idle state.
func New() *Session {
	return &Session{
		Pauses: NewPauseManager(),
	}
}

// Subscribe registers an observer for status changes.
func (s *Session) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Session) notify(status Status) {
	for _, o := range s.observers {
		o.StatusChanged(status)
	}
}

// Start begins the session, assigning it a fresh id and pause manager.
// It reports false if the session is already running.
func (s *Session) Start() bool {
	if s.IsRunning {
		return false
	}

	now := timeNow()

	s.ID = timeutil.SessionID(now)
	s.StartTime = now
	s.EndTime = time.Time{}
	s.IsRunning = true
	s.Pauses = NewPauseManager()

	s.notify(Running)

	return true
}

// Pause opens a break in a running session. It returns nil when the
// session is not running or a pause is already open.
func (s *Session) Pause(reason string) *Pause {
	if !s.IsRunning {
		return nil
	}

	p := s.Pauses.StartPause(s.ID, reason)
	if p != nil {
		s.notify(Paused)
	}

	return p
}

// Resume closes the open pause and returns its length in whole seconds.
// It returns 0 when the session is not running or nothing is paused.
// Observers only hear about the resumption if the pause had measurable
// length.
func (s *Session) Resume() int {
	if !s.IsRunning {
		return 0
	}

	secs := s.Pauses.ResumeSession(s.ID)
	if secs > 0 {
		s.notify(Running)
	}

	return secs
}

// End stops the session and returns its summary. Ending while paused
// backdates the end to the moment the pause began and drops that pause
// from the record entirely. A session that is not running returns nil.
func (s *Session) End() *Summary {
	if !s.IsRunning {
		return nil
	}

	if p := s.Pauses.ActivePause(s.ID); p != nil {
		s.EndTime = p.StartedAt
		s.Pauses.DiscardActive(s.ID)
	} else {
		s.EndTime = timeNow()
	}

	s.IsRunning = false

	s.notify(Ended)

	return s.Summary()
}

// Summary computes the session's totals from its recorded bounds and
// pauses. It is meaningful once StartTime and EndTime are both set.
func (s *Session) Summary() *Summary {
	total := timeutil.Seconds(s.EndTime.Sub(s.StartTime))
	pauseTotal := s.Pauses.SessionTotalPauseTime(s.ID)

	return &Summary{
		SessionID:     s.ID,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		TotalSeconds:  total,
		PauseSeconds:  pauseTotal,
		ActiveSeconds: total - pauseTotal,
		PauseCount:    s.Pauses.SessionPauseCount(s.ID),
		Pauses:        s.Pauses.SessionPauses(s.ID),
	}
}

// Status reports what the session is doing right now.
func (s *Session) Status() Status {
	switch {
	case s.IsRunning && s.Pauses.ActivePause(s.ID) != nil:
		return Paused
	case s.IsRunning:
		return Running
	case !s.EndTime.IsZero():
		return Ended
	default:
		return Idle
	}
}

// Started reports whether the session was ever begun.
func (s *Session) Started() bool {
	return !s.StartTime.IsZero()
}

// ElapsedSince reports the whole seconds between the session start and
// the given time.
func (s *Session) ElapsedSince(t time.Time) int {
	if !s.Started() {
		return 0
	}

	return timeutil.Seconds(t.Sub(s.StartTime))
}
