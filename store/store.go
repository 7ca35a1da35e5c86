// Package store connects to the data store and manages session and pause
// records until they are synced
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/session"
)

var (
	sessionsBucket  = []byte("sessions")
	pausesBucket    = []byte("pauses")
	locationsBucket = []byte("locations")
	equipmentBucket = []byte("equipment")
	profilesBucket  = []byte("profiles")
	settingsBucket  = []byte("settings")
	activeBucket    = []byte("active")
	metaBucket      = []byte("meta")
)

var activeKey = []byte("current")

// defaultLocations are seeded into a freshly created database.
var defaultLocations = []string{"home", "class", "transports"}

// ErrAlreadyRunning is returned when the database file is locked by
// another process.
var ErrAlreadyRunning = errors.New(
	"is studytrack already running? Only one instance can be active at a time",
)

var (
	errNameRequired = errors.New("name cannot be blank")
	errKeyRequired  = errors.New("setting key cannot be blank")

	errProfileNotFound = errors.New(
		"profile not found: add it first with 'studytrack profile add'",
	)
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// SaveSession persists a session and its completed pauses as unsynced
// records. A running session is ended first; an already ended one has its
// records rebuilt from its bounds and pauses; a session that never started
// is silently ignored. Rows are keyed by their ids, so saving the same
// session twice does not duplicate anything.
func (c *Client) SaveSession(
	sess *session.Session,
	notes, location, equipment string,
) error {
	var summary *session.Summary

	switch {
	case sess.IsRunning:
		summary = sess.End()
	case sess.Started() && !sess.EndTime.IsZero():
		summary = sess.Summary()
	default:
		return nil
	}

	rec := models.SessionRecord{
		SessionID:                 summary.SessionID,
		StartedAt:                 summary.StartTime,
		EndedAt:                   summary.EndTime,
		TotalDurationSeconds:      summary.TotalSeconds,
		ActiveTimeSeconds:         summary.ActiveSeconds,
		TotalPauseDurationSeconds: summary.PauseSeconds,
		PauseCount:                summary.PauseCount,
		Notes:                     notes,
		Location:                  location,
		Equipment:                 equipment,
	}

	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket(sessionsBucket).Put([]byte(rec.SessionID), value)
		if err != nil {
			return err
		}

		b := tx.Bucket(pausesBucket)

		for _, p := range summary.Pauses {
			prec := models.PauseRecord{
				ID:              p.ID,
				SessionID:       p.SessionID,
				Reason:          p.Reason,
				StartedAt:       p.StartedAt,
				EndedAt:         p.EndedAt,
				DurationSeconds: p.DurationSeconds,
			}

			v, err := json.Marshal(prec)
			if err != nil {
				return err
			}

			err = b.Put([]byte(prec.ID), v)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// UnsyncedSessions returns all locally stored session records in
// chronological order. Every stored record is pending by definition.
func (c *Client) UnsyncedSessions() ([]models.SessionRecord, error) {
	var records []models.SessionRecord

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(sessionsBucket).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var rec models.SessionRecord

			err := json.Unmarshal(v, &rec)
			if err != nil {
				return err
			}

			records = append(records, rec)
		}

		return nil
	})

	return records, err
}

// UnsyncedPauses returns the stored pause records for a session, oldest
// first.
func (c *Client) UnsyncedPauses(
	sessionID string,
) ([]models.PauseRecord, error) {
	var records []models.PauseRecord

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(pausesBucket).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var rec models.PauseRecord

			err := json.Unmarshal(v, &rec)
			if err != nil {
				return err
			}

			if rec.SessionID == sessionID {
				records = append(records, rec)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].StartedAt.Before(records[j].StartedAt)
	})

	return records, nil
}

// DeletePauses removes the pause records with the given ids and reports
// how many actually existed.
func (c *Client) DeletePauses(ids []string) (int, error) {
	var deleted int

	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(pausesBucket)

		for _, id := range ids {
			key := []byte(id)

			if b.Get(key) == nil {
				continue
			}

			err := b.Delete(key)
			if err != nil {
				return err
			}

			deleted++
		}

		return nil
	})

	return deleted, err
}

// DeleteSession removes a session record along with any of its pause
// records that are still around, and reports how many rows were removed.
func (c *Client) DeleteSession(sessionID string) (int, error) {
	var deleted int

	err := c.Update(func(tx *bolt.Tx) error {
		sb := tx.Bucket(sessionsBucket)
		key := []byte(sessionID)

		if sb.Get(key) != nil {
			err := sb.Delete(key)
			if err != nil {
				return err
			}

			deleted++
		}

		pb := tx.Bucket(pausesBucket)
		cur := pb.Cursor()

		var stale [][]byte

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var rec models.PauseRecord

			err := json.Unmarshal(v, &rec)
			if err != nil {
				return err
			}

			if rec.SessionID == sessionID {
				stale = append(stale, append([]byte(nil), k...))
			}
		}

		for _, k := range stale {
			err := pb.Delete(k)
			if err != nil {
				return err
			}

			deleted++
		}

		return nil
	})

	return deleted, err
}

// SaveActive stores the live session so another invocation can pick it
// up.
func (c *Client) SaveActive(active *models.ActiveSession) error {
	value, err := json.Marshal(active)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(activeBucket).Put(activeKey, value)
	})
}

// Active retrieves the live session, or nil if none is in progress.
func (c *Client) Active() (*models.ActiveSession, error) {
	var active *models.ActiveSession

	err := c.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(activeBucket).Get(activeKey)
		if len(value) == 0 {
			return nil
		}

		active = &models.ActiveSession{}

		return json.Unmarshal(value, active)
	})

	return active, err
}

// ClearActive forgets the live session.
func (c *Client) ClearActive() error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(activeBucket).Delete(activeKey)
	})
}

// open creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	buckets := [][]byte{
		sessionsBucket,
		pausesBucket,
		locationsBucket,
		equipmentBucket,
		profilesBucket,
		settingsBucket,
		activeBucket,
		metaBucket,
	}

	// Create the necessary buckets for storing data if they do not exist
	// already, seeding the location catalog on first creation
	err = db.Update(func(tx *bolt.Tx) error {
		seedLocations := tx.Bucket(locationsBucket) == nil

		for _, name := range buckets {
			_, err := tx.CreateBucketIfNotExists(name)
			if err != nil {
				return err
			}
		}

		if seedLocations {
			b := tx.Bucket(locationsBucket)

			for _, loc := range defaultLocations {
				err := b.Put([]byte(loc), []byte(loc))
				if err != nil {
					return err
				}
			}
		}

		return migrate(tx)
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
