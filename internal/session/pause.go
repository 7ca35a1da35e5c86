package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/studytrack/internal/timeutil"
)

const pauseIDLength = 8

// Pause is a single pause interval within a session. EndedAt remains the
// zero value while the pause is still open.
type Pause struct {
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id"`
	Reason          string    `json:"reason"`
	DurationSeconds int       `json:"duration_seconds"`
}

// NewPause starts a pause interval for the specified session.
func NewPause(sessionID, reason string) *Pause {
	return &Pause{
		ID:        uuid.NewString()[:pauseIDLength],
		SessionID: sessionID,
		Reason:    reason,
		StartedAt: timeNow(),
	}
}

// End closes the pause and returns its duration in whole seconds. The
// manager guarantees it is called at most once per pause.
func (p *Pause) End() int {
	p.EndedAt = timeNow()
	p.DurationSeconds = timeutil.Seconds(p.EndedAt.Sub(p.StartedAt))

	return p.DurationSeconds
}

// IsActive reports whether the pause has started but not yet ended.
func (p *Pause) IsActive() bool {
	return !p.StartedAt.IsZero() && p.EndedAt.IsZero()
}

// PauseManager tracks at most one active pause per session id and
// accumulates completed pauses in the order they ended.
type PauseManager struct {
	Active    map[string]*Pause `json:"active"`
	Completed []*Pause          `json:"completed"`
}

// NewPauseManager creates an empty pause manager.
func NewPauseManager() *PauseManager {
	return &PauseManager{
		Active: make(map[string]*Pause),
	}
}

// StartPause opens a new pause for the session. It returns nil without side
// effects if the session already has an active pause.
func (m *PauseManager) StartPause(sessionID, reason string) *Pause {
	if _, ok := m.Active[sessionID]; ok {
		return nil
	}

	p := NewPause(sessionID, reason)

	m.Active[sessionID] = p

	return p
}

// EndPause closes the session's active pause and returns its duration in
// seconds. It returns 0 and mutates nothing if no pause is active.
func (m *PauseManager) EndPause(sessionID string) int {
	p, ok := m.Active[sessionID]
	if !ok {
		return 0
	}

	delete(m.Active, sessionID)

	duration := p.End()

	m.Completed = append(m.Completed, p)

	return duration
}

// ResumeSession ends the session's active pause. Resuming is synonymous
// with closing the current pause.
func (m *PauseManager) ResumeSession(sessionID string) int {
	return m.EndPause(sessionID)
}

// ActivePause returns the session's open pause, or nil.
func (m *PauseManager) ActivePause(sessionID string) *Pause {
	return m.Active[sessionID]
}

// DiscardActive drops the session's open pause without recording it. It
// never appears in counts, listings, or totals afterwards.
func (m *PauseManager) DiscardActive(sessionID string) {
	delete(m.Active, sessionID)
}

// ActivePauses returns all currently open pauses.
func (m *PauseManager) ActivePauses() []*Pause {
	pauses := make([]*Pause, 0, len(m.Active))

	for _, p := range m.Active {
		pauses = append(pauses, p)
	}

	return pauses
}

// SessionTotalPauseTime sums the durations of the session's completed
// pauses. An open pause has no duration yet and is not counted.
func (m *PauseManager) SessionTotalPauseTime(sessionID string) int {
	var total int

	for _, p := range m.Completed {
		if p.SessionID == sessionID {
			total += p.DurationSeconds
		}
	}

	return total
}

// SessionPauses returns the session's open pause (if any) followed by its
// completed pauses.
func (m *PauseManager) SessionPauses(sessionID string) []*Pause {
	var pauses []*Pause

	if p, ok := m.Active[sessionID]; ok {
		pauses = append(pauses, p)
	}

	for _, p := range m.Completed {
		if p.SessionID == sessionID {
			pauses = append(pauses, p)
		}
	}

	return pauses
}

// SessionPauseCount counts the session's pauses, open and completed.
func (m *PauseManager) SessionPauseCount(sessionID string) int {
	return len(m.SessionPauses(sessionID))
}
