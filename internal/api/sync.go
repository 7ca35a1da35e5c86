package api

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/ayoisaiah/studytrack/store"
)

// Status is the overall outcome of a sync run.
type Status string

const (
	// StatusNothing means there were no stored records to send.
	StatusNothing Status = "nothing to sync"
	// StatusSkipped means records exist but the endpoints are not
	// configured. Nothing is deleted.
	StatusSkipped Status = "skipped"
	// StatusCompleted means every request was acknowledged.
	StatusCompleted Status = "completed"
	// StatusPartial means at least one request failed. Whatever was
	// acknowledged has been deleted locally; the rest is retried on the
	// next run.
	StatusPartial Status = "partially completed"
)

var errSyncInFlight = errors.New("a sync is already in progress")

// Result summarizes a sync run.
type Result struct {
	Status          Status
	Sessions        int // session records examined
	Pauses          int // pause records examined
	Failed          int // rejected or failed requests
	SessionsDeleted int // session rows removed locally
	PausesDeleted   int // pause rows removed locally
}

// Engine reconciles locally stored session records with the remote
// logging service.
type Engine struct {
	db       store.DB
	client   *Client
	inFlight atomic.Bool
}

// NewEngine returns an engine that reads records from db and posts them
// through client.
func NewEngine(db store.DB, client *Client) *Engine {
	return &Engine{
		db:     db,
		client: client,
	}
}

// Sync posts every stored session and its pauses to the remote service,
// deleting local rows as they are acknowledged. A failed request never
// stops the run; the affected rows simply survive until the next one.
// Only a single run can be in flight at a time.
func (e *Engine) Sync(ctx context.Context) (*Result, error) {
	if !e.inFlight.CompareAndSwap(false, true) {
		return nil, errSyncInFlight
	}

	defer e.inFlight.Store(false)

	res := &Result{}

	sessions, err := e.db.UnsyncedSessions()
	if err != nil {
		return nil, err
	}

	if len(sessions) == 0 {
		res.Status = StatusNothing
		return res, nil
	}

	res.Sessions = len(sessions)

	if !e.client.Configured() {
		slog.Info("sync skipped: endpoints are not configured")

		res.Status = StatusSkipped

		return res, nil
	}

	allAcked := true

	for i := range sessions {
		rec := sessions[i]

		pauses, err := e.db.UnsyncedPauses(rec.SessionID)
		if err != nil {
			return res, err
		}

		res.Pauses += len(pauses)

		sessionAcked := e.client.LogSession(ctx, rec)
		if !sessionAcked {
			res.Failed++

			allAcked = false
		}

		acked := make([]string, 0, len(pauses))

		for j := range pauses {
			if e.client.LogPause(ctx, pauses[j]) {
				acked = append(acked, pauses[j].ID)
			} else {
				res.Failed++

				allAcked = false
			}
		}

		if len(acked) > 0 {
			n, err := e.db.DeletePauses(acked)
			if err != nil {
				return res, err
			}

			res.PausesDeleted += n
		}

		// The session row goes once every one of its pauses has been
		// acknowledged.
		// TODO: gate this on the session-log acknowledgment as well; a
		// rejected session post still loses the local row here once all
		// of its pauses are acked.
		if len(acked) == len(pauses) {
			n, err := e.db.DeleteSession(rec.SessionID)
			if err != nil {
				return res, err
			}

			if n > 0 {
				res.SessionsDeleted++
			}
		}

		slog.Info(
			"session synced",
			"session_id", rec.SessionID,
			"acked", sessionAcked,
			"pauses", len(pauses),
			"pauses_acked", len(acked),
		)
	}

	if allAcked {
		res.Status = StatusCompleted
	} else {
		res.Status = StatusPartial
	}

	return res, nil
}
