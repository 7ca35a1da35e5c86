package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ayoisaiah/studytrack/config"
	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/session"
	"github.com/ayoisaiah/studytrack/store"
)

var syncTestStart = time.Date(2024, time.June, 3, 14, 0, 37, 0, time.UTC)

func newTestStore(t *testing.T) *store.Client {
	t.Helper()

	client, err := store.NewClient(filepath.Join(t.TempDir(), "studytrack.db"))
	if err != nil {
		t.Fatalf("unable to create store client: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

// seedSession stores a 20-minute session with the given pauses, each 2
// minutes long.
func seedSession(
	t *testing.T,
	db *store.Client,
	id string,
	pauseIDs ...string,
) {
	t.Helper()

	mgr := session.NewPauseManager()
	for i, pid := range pauseIDs {
		offset := time.Duration(i*5+3) * time.Minute
		mgr.Completed = append(mgr.Completed, &session.Pause{
			ID:              pid,
			SessionID:       id,
			Reason:          "break",
			StartedAt:       syncTestStart.Add(offset),
			EndedAt:         syncTestStart.Add(offset + 2*time.Minute),
			DurationSeconds: 120,
		})
	}

	sess := &session.Session{
		ID:        id,
		StartTime: syncTestStart,
		EndTime:   syncTestStart.Add(20 * time.Minute),
		Pauses:    mgr,
	}

	if err := db.SaveSession(sess, "notes", "home", "laptop"); err != nil {
		t.Fatal(err)
	}
}

type fakeService struct {
	mu            sync.Mutex
	sessions      []map[string]any
	pauses        []map[string]any
	sessionStatus int
	pauseStatus   func(payload map[string]any) int
}

func (s *fakeService) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/session-log", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any

		_ = json.NewDecoder(r.Body).Decode(&payload)

		s.mu.Lock()
		s.sessions = append(s.sessions, payload)
		s.mu.Unlock()

		w.WriteHeader(s.sessionStatus)
	})

	mux.HandleFunc("/session-pauses", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any

		_ = json.NewDecoder(r.Body).Decode(&payload)

		status := http.StatusOK

		s.mu.Lock()
		s.pauses = append(s.pauses, payload)

		if s.pauseStatus != nil {
			status = s.pauseStatus(payload)
		}
		s.mu.Unlock()

		w.WriteHeader(status)
	})

	srv := httptest.NewServer(mux)

	t.Cleanup(srv.Close)

	return srv
}

func (s *fakeService) seen() (sessions, pauses []map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions, s.pauses
}

func (s *fakeService) setPauseStatus(fn func(payload map[string]any) int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pauseStatus = fn
}

func newTestEngine(db store.DB, baseURL string) *Engine {
	client := NewClient(&config.App{
		SyncBaseURL:           baseURL,
		SessionLogEndpoint:    "session-log",
		SessionPausesEndpoint: "session-pauses",
	})

	return NewEngine(db, client)
}

func TestBuildEndpoint(t *testing.T) {
	cases := []struct {
		name     string
		base     string
		endpoint string
		want     string
	}{
		{
			name:     "relative joined to base",
			base:     "https://a.example.com/webhook",
			endpoint: "session-log",
			want:     "https://a.example.com/webhook/session-log",
		},
		{
			name:     "redundant slashes collapse",
			base:     "https://a.example.com/webhook/",
			endpoint: "/session-log",
			want:     "https://a.example.com/webhook/session-log",
		},
		{
			name:     "absolute endpoint wins over base",
			base:     "https://a.example.com/webhook",
			endpoint: "https://b.example.com/hook/",
			want:     "https://b.example.com/hook",
		},
		{
			name:     "relative endpoint without base is unconfigured",
			base:     "  ",
			endpoint: "session-log",
			want:     "",
		},
		{
			name:     "blank endpoint is unconfigured",
			base:     "https://a.example.com",
			endpoint: "",
			want:     "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildEndpoint(tc.base, tc.endpoint); got != tc.want {
				t.Errorf(
					"BuildEndpoint(%q, %q) = %q, want %q",
					tc.base,
					tc.endpoint,
					got,
					tc.want,
				)
			}
		})
	}
}

func TestSessionPayloadShape(t *testing.T) {
	rec := models.SessionRecord{
		SessionID:                 "20240603_140037",
		StartedAt:                 syncTestStart,
		EndedAt:                   syncTestStart.Add(20 * time.Minute),
		TotalDurationSeconds:      1200,
		ActiveTimeSeconds:         1080,
		TotalPauseDurationSeconds: 120,
		PauseCount:                1,
	}

	body, err := json.Marshal(sessionPayloadFrom(rec))
	if err != nil {
		t.Fatal(err)
	}

	// Timestamps go over the wire at whole-minute resolution, and the
	// active time stays local.
	if !strings.Contains(string(body), `"started_at":"2024-06-03T14:00:00Z"`) {
		t.Errorf("payload does not truncate the start time: %s", body)
	}

	if strings.Contains(string(body), "active_time") {
		t.Errorf("payload carries the active time: %s", body)
	}
}

func TestWireTimeZero(t *testing.T) {
	if got := wireTime(time.Time{}); got != "" {
		t.Errorf("wireTime(zero) = %q, want empty", got)
	}
}

func TestSyncNothing(t *testing.T) {
	db := newTestStore(t)

	svc := &fakeService{sessionStatus: http.StatusOK}
	srv := svc.server(t)

	res, err := newTestEngine(db, srv.URL).Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if res.Status != StatusNothing {
		t.Errorf("status = %s, want %s", res.Status, StatusNothing)
	}

	if sessions, _ := svc.seen(); len(sessions) != 0 {
		t.Errorf("expected no requests, saw %d", len(sessions))
	}
}

func TestSyncUnconfigured(t *testing.T) {
	db := newTestStore(t)
	seedSession(t, db, "20240603_140037", "aaaa1111")

	res, err := newTestEngine(db, "").Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if res.Status != StatusSkipped {
		t.Errorf("status = %s, want %s", res.Status, StatusSkipped)
	}

	// Nothing may be deleted without an acknowledgment.
	records, err := db.UnsyncedSessions()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 1 {
		t.Errorf("remaining sessions = %d, want 1", len(records))
	}
}

func TestSyncCompleted(t *testing.T) {
	db := newTestStore(t)
	seedSession(t, db, "20240603_140037", "aaaa1111", "bbbb2222")

	svc := &fakeService{sessionStatus: http.StatusCreated}
	srv := svc.server(t)

	res, err := newTestEngine(db, srv.URL).Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if res.Status != StatusCompleted {
		t.Errorf("status = %s, want %s", res.Status, StatusCompleted)
	}

	if res.Failed != 0 || res.SessionsDeleted != 1 || res.PausesDeleted != 2 {
		t.Errorf("unexpected counters: %+v", res)
	}

	sessions, pauses := svc.seen()
	if len(sessions) != 1 || len(pauses) != 2 {
		t.Fatalf(
			"service saw %d sessions and %d pauses, want 1 and 2",
			len(sessions),
			len(pauses),
		)
	}

	if got := sessions[0]["started_at"]; got != "2024-06-03T14:00:00Z" {
		t.Errorf("wire started_at = %v, want minute resolution", got)
	}

	records, err := db.UnsyncedSessions()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 0 {
		t.Errorf("remaining sessions = %d, want 0", len(records))
	}

	remaining, err := db.UnsyncedPauses("20240603_140037")
	if err != nil {
		t.Fatal(err)
	}

	if len(remaining) != 0 {
		t.Errorf("remaining pauses = %d, want 0", len(remaining))
	}
}

func TestSyncSessionPostRejected(t *testing.T) {
	db := newTestStore(t)
	seedSession(t, db, "20240603_140037", "aaaa1111")

	svc := &fakeService{sessionStatus: http.StatusInternalServerError}
	srv := svc.server(t)

	res, err := newTestEngine(db, srv.URL).Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if res.Status != StatusPartial {
		t.Errorf("status = %s, want %s", res.Status, StatusPartial)
	}

	if res.Failed != 1 {
		t.Errorf("failed = %d, want 1", res.Failed)
	}

	// The session row is dropped once its pauses are acked, even though
	// the session post itself was rejected.
	records, err := db.UnsyncedSessions()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 0 {
		t.Errorf("remaining sessions = %d, want 0", len(records))
	}
}

func TestSyncPauseRejected(t *testing.T) {
	db := newTestStore(t)
	seedSession(t, db, "20240603_140037", "aaaa1111", "bbbb2222")

	svc := &fakeService{
		sessionStatus: http.StatusOK,
		pauseStatus: func(payload map[string]any) int {
			if payload["id"] == "bbbb2222" {
				return http.StatusBadGateway
			}

			return http.StatusOK
		},
	}
	srv := svc.server(t)

	engine := newTestEngine(db, srv.URL)

	res, err := engine.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if res.Status != StatusPartial {
		t.Errorf("status = %s, want %s", res.Status, StatusPartial)
	}

	if res.PausesDeleted != 1 || res.SessionsDeleted != 0 {
		t.Errorf("unexpected counters: %+v", res)
	}

	// The session row stays while any of its pauses is unacknowledged.
	records, err := db.UnsyncedSessions()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 1 {
		t.Fatalf("remaining sessions = %d, want 1", len(records))
	}

	pauses, err := db.UnsyncedPauses("20240603_140037")
	if err != nil {
		t.Fatal(err)
	}

	if len(pauses) != 1 || pauses[0].ID != "bbbb2222" {
		t.Fatalf("remaining pauses = %+v, want only bbbb2222", pauses)
	}

	// The next run picks up where this one left off.
	svc.setPauseStatus(nil)

	res, err = engine.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if res.Status != StatusCompleted {
		t.Errorf("retry status = %s, want %s", res.Status, StatusCompleted)
	}

	records, err = db.UnsyncedSessions()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 0 {
		t.Errorf("remaining sessions after retry = %d, want 0", len(records))
	}
}

func TestSyncTransportFailure(t *testing.T) {
	db := newTestStore(t)
	seedSession(t, db, "20240603_140037", "aaaa1111")

	// A connection error counts like a rejection, not like a crash.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	res, err := newTestEngine(db, srv.URL).Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if res.Status != StatusPartial {
		t.Errorf("status = %s, want %s", res.Status, StatusPartial)
	}

	if res.Failed != 2 || res.SessionsDeleted != 0 || res.PausesDeleted != 0 {
		t.Errorf("unexpected counters: %+v", res)
	}

	records, err := db.UnsyncedSessions()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 1 {
		t.Errorf("remaining sessions = %d, want 1", len(records))
	}

	pauses, err := db.UnsyncedPauses("20240603_140037")
	if err != nil {
		t.Fatal(err)
	}

	if len(pauses) != 1 {
		t.Errorf("remaining pauses = %d, want 1", len(pauses))
	}
}

func TestSyncSingleFlight(t *testing.T) {
	db := newTestStore(t)
	seedSession(t, db, "20240603_140037")

	started := make(chan struct{})
	release := make(chan struct{})

	var once sync.Once

	mux := http.NewServeMux()
	mux.HandleFunc("/session-log", func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() {
			close(started)
		})

		<-release
	})
	mux.HandleFunc("/session-pauses", func(w http.ResponseWriter, r *http.Request) {})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	engine := newTestEngine(db, srv.URL)

	done := make(chan error, 1)

	go func() {
		_, err := engine.Sync(context.Background())
		done <- err
	}()

	<-started

	if _, err := engine.Sync(context.Background()); !errors.Is(err, errSyncInFlight) {
		t.Errorf("concurrent sync error = %v, want %v", err, errSyncInFlight)
	}

	close(release)

	if err := <-done; err != nil {
		t.Fatal(err)
	}
}
