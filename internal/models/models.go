package models

import (
	"time"

	"github.com/ayoisaiah/studytrack/internal/session"
)

// SessionRecord is an ended session as stored locally. Its presence in the
// database means it has not been synced to the remote service yet; synced
// records are deleted, not flagged.
type SessionRecord struct {
	StartedAt                 time.Time `json:"started_at"`
	EndedAt                   time.Time `json:"ended_at"`
	SessionID                 string    `json:"session_id"`
	Notes                     string    `json:"notes"`
	Location                  string    `json:"location"`
	Equipment                 string    `json:"equipment"`
	TotalDurationSeconds      int       `json:"total_duration_seconds"`
	ActiveTimeSeconds         int       `json:"active_time_seconds"`
	TotalPauseDurationSeconds int       `json:"total_pause_duration_seconds"`
	PauseCount                int       `json:"pause_count"`
}

// PauseRecord is a completed pause as stored locally, keyed by its own id
// and tied to its session through SessionID.
type PauseRecord struct {
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id"`
	Reason          string    `json:"reason"`
	DurationSeconds int       `json:"duration_seconds"`
}

// Profile names a place of study and the equipment used there, so both can
// be applied to a session in one step.
type Profile struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Equipment string `json:"equipment"`
}

// ActiveSession is the live session together with the environment it was
// started under, serialized between command invocations.
type ActiveSession struct {
	Session   *session.Session `json:"session"`
	Profile   string           `json:"profile"`
	Location  string           `json:"location"`
	Equipment string           `json:"equipment"`
}
