package tracker

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/studytrack/config"
	"github.com/ayoisaiah/studytrack/internal/session"
	"github.com/ayoisaiah/studytrack/report"
	"github.com/ayoisaiah/studytrack/store"
)

// Status is the live snapshot written to the status file so the status
// command can answer while another process holds the database.
type Status struct {
	StartedAt  time.Time      `json:"started_at"`
	Status     session.Status `json:"status"`
	PauseCount int            `json:"pause_count"`
}

// writeStatusFile snapshots the live session for out-of-process readers.
func (t *Tracker) writeStatusFile() (err error) {
	if t.statusPath == "" || t.sess == nil {
		return nil
	}

	s := Status{
		StartedAt:  t.sess.StartTime,
		Status:     t.sess.Status(),
		PauseCount: t.sess.Pauses.SessionPauseCount(t.sess.ID),
	}

	statusFile, err := os.Create(t.statusPath)
	if err != nil {
		return err
	}

	defer func() {
		ferr := statusFile.Close()
		if ferr != nil {
			err = ferr
		}
	}()

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(statusFile)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

func (t *Tracker) removeStatusFile() {
	if t.statusPath != "" {
		_ = os.Remove(t.statusPath)
	}
}

// ReportStatus prints the state of the current session. When another
// process holds the database, the status file it maintains is consulted
// instead.
func ReportStatus(cfg *config.App) error {
	client, err := store.NewClient(cfg.PathToDB)
	if err == nil {
		defer client.Close()

		active, aerr := client.Active()
		if aerr != nil {
			return aerr
		}

		if active == nil || active.Session == nil {
			pterm.Println(report.StatusLine(session.Idle, 0, 0))
			return nil
		}

		sess := active.Session

		pterm.Println(report.StatusLine(
			sess.Status(),
			sess.ElapsedSince(time.Now())/secondsInAMinute,
			sess.Pauses.SessionPauseCount(sess.ID),
		))

		return nil
	}

	if !errors.Is(err, store.ErrAlreadyRunning) {
		return err
	}

	b, err := os.ReadFile(config.GetStatusFilePath())
	if err != nil {
		// a missing status file means nothing is being tracked
		pterm.Println(report.StatusLine(session.Idle, 0, 0))
		return nil
	}

	var s Status

	err = json.Unmarshal(b, &s)
	if err != nil {
		return err
	}

	minutes := int(time.Since(s.StartedAt).Minutes())

	pterm.Println(report.StatusLine(s.Status, minutes, s.PauseCount))

	return nil
}
