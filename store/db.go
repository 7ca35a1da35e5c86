package store

import (
	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/session"
)

// DB is the database storage interface.
type DB interface {
	// SaveSession persists an ended session and its completed pauses as
	// unsynced records. Saving is idempotent per session id.
	SaveSession(
		sess *session.Session,
		notes, location, equipment string,
	) error
	// UnsyncedSessions returns every stored session record, oldest first
	UnsyncedSessions() ([]models.SessionRecord, error)
	// UnsyncedPauses returns a session's stored pause records, oldest first
	UnsyncedPauses(sessionID string) ([]models.PauseRecord, error)
	// DeletePauses removes acknowledged pause records by id
	DeletePauses(ids []string) (int, error)
	// DeleteSession removes a session record and its leftover pause records
	DeleteSession(sessionID string) (int, error)
	// SaveActive stores the live session between invocations
	SaveActive(active *models.ActiveSession) error
	// Active retrieves the live session, or nil when none is in progress
	Active() (*models.ActiveSession, error)
	// ClearActive forgets the live session
	ClearActive() error
	Locations() ([]string, error)
	AddLocation(name string) error
	RemoveLocation(name string) error
	Equipment() ([]string, error)
	AddEquipment(name string) error
	RemoveEquipment(name string) error
	Profiles() ([]models.Profile, error)
	GetProfile(name string) (*models.Profile, error)
	SaveProfile(p *models.Profile) error
	RemoveProfile(name string) error
	RenameProfile(oldName, newName string) error
	Setting(key string) (string, error)
	SetSetting(key, value string) error
	RemoveSetting(key string) error
	// Close ends the database connection
	Close() error
}
