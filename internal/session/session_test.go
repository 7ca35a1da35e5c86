package session

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var baseTime = time.Date(2024, time.March, 11, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// useFakeClock pins the package clock to a controllable time for the
// duration of the test.
func useFakeClock(t *testing.T) *fakeClock {
	t.Helper()

	c := &fakeClock{now: baseTime}

	orig := timeNow
	timeNow = func() time.Time {
		return c.now
	}

	t.Cleanup(func() {
		timeNow = orig
	})

	return c
}

type statusRecorder struct {
	statuses []Status
}

func (r *statusRecorder) StatusChanged(status Status) {
	r.statuses = append(r.statuses, status)
}

func TestSessionWalk(t *testing.T) {
	clock := useFakeClock(t)

	sess := New()

	if got := sess.Status(); got != Idle {
		t.Fatalf("new session status = %s, want %s", got, Idle)
	}

	if !sess.Start() {
		t.Fatal("expected Start to succeed on an idle session")
	}

	if got, want := sess.ID, "20240311_090000"; got != want {
		t.Errorf("session id = %s, want %s", got, want)
	}

	clock.advance(5 * time.Minute)

	p := sess.Pause("coffee break")
	if p == nil {
		t.Fatal("expected Pause to open a pause")
	}

	if got := sess.Status(); got != Paused {
		t.Errorf("status after pause = %s, want %s", got, Paused)
	}

	clock.advance(3 * time.Minute)

	if got := sess.Resume(); got != 180 {
		t.Errorf("resumed pause length = %d, want 180", got)
	}

	if got := sess.Status(); got != Running {
		t.Errorf("status after resume = %s, want %s", got, Running)
	}

	clock.advance(12 * time.Minute)

	got := sess.End()
	if got == nil {
		t.Fatal("expected End to return a summary")
	}

	want := &Summary{
		StartTime: baseTime,
		EndTime:   baseTime.Add(20 * time.Minute),
		SessionID: "20240311_090000",
		Pauses: []*Pause{
			{
				StartedAt:       baseTime.Add(5 * time.Minute),
				EndedAt:         baseTime.Add(8 * time.Minute),
				SessionID:       "20240311_090000",
				Reason:          "coffee break",
				DurationSeconds: 180,
			},
		},
		TotalSeconds:  1200,
		PauseSeconds:  180,
		ActiveSeconds: 1020,
		PauseCount:    1,
	}

	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Pause{}, "ID")); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	if got := sess.Status(); got != Ended {
		t.Errorf("status after end = %s, want %s", got, Ended)
	}
}

func TestSessionStartWhileRunning(t *testing.T) {
	useFakeClock(t)

	sess := New()
	sess.Start()

	id := sess.ID

	if sess.Start() {
		t.Error("expected Start to fail on a running session")
	}

	if sess.ID != id {
		t.Errorf("session id changed on redundant start: %s -> %s", id, sess.ID)
	}
}

func TestSessionDoublePause(t *testing.T) {
	clock := useFakeClock(t)

	sess := New()
	sess.Start()

	clock.advance(time.Minute)

	if sess.Pause("first") == nil {
		t.Fatal("expected first pause to open")
	}

	if sess.Pause("second") != nil {
		t.Error("expected second pause to be refused while one is open")
	}

	if got := len(sess.Pauses.ActivePauses()); got != 1 {
		t.Errorf("active pauses = %d, want 1", got)
	}
}

func TestSessionResumeWithoutPause(t *testing.T) {
	useFakeClock(t)

	sess := New()

	if got := sess.Resume(); got != 0 {
		t.Errorf("resume on idle session = %d, want 0", got)
	}

	sess.Start()

	if got := sess.Resume(); got != 0 {
		t.Errorf("resume with no open pause = %d, want 0", got)
	}
}

func TestSessionEndWhilePaused(t *testing.T) {
	clock := useFakeClock(t)

	sess := New()
	sess.Start()

	clock.advance(10 * time.Minute)
	sess.Pause("phone call")
	clock.advance(5 * time.Minute)

	got := sess.End()
	if got == nil {
		t.Fatal("expected End to return a summary")
	}

	// The end is backdated to when the pause began, and the open pause
	// leaves no trace.
	want := &Summary{
		StartTime:     baseTime,
		EndTime:       baseTime.Add(10 * time.Minute),
		SessionID:     "20240311_090000",
		TotalSeconds:  600,
		PauseSeconds:  0,
		ActiveSeconds: 600,
		PauseCount:    0,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	if sess.End() != nil {
		t.Error("expected second End to return nil")
	}
}

func TestSessionObserver(t *testing.T) {
	clock := useFakeClock(t)

	rec := &statusRecorder{}

	sess := New()
	sess.Subscribe(rec)

	sess.Start()
	clock.advance(2 * time.Minute)
	sess.Pause("")
	clock.advance(time.Minute)
	sess.Resume()
	clock.advance(time.Minute)
	sess.End()

	want := []Status{Running, Paused, Running, Ended}
	if diff := cmp.Diff(want, rec.statuses); diff != "" {
		t.Errorf("observed statuses mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionObserverSilentResume(t *testing.T) {
	clock := useFakeClock(t)

	rec := &statusRecorder{}

	sess := New()
	sess.Subscribe(rec)

	sess.Start()
	clock.advance(time.Minute)
	sess.Pause("")

	// Resuming immediately closes a zero-length pause, which is kept in
	// the record but not announced.
	if got := sess.Resume(); got != 0 {
		t.Errorf("zero-length pause measured %d seconds", got)
	}

	clock.advance(time.Minute)
	summary := sess.End()

	if summary.PauseCount != 1 {
		t.Errorf("pause count = %d, want 1", summary.PauseCount)
	}

	want := []Status{Running, Paused, Ended}
	if diff := cmp.Diff(want, rec.statuses); diff != "" {
		t.Errorf("observed statuses mismatch (-want +got):\n%s", diff)
	}
}

func TestPauseManagerOrdering(t *testing.T) {
	clock := useFakeClock(t)

	m := NewPauseManager()

	m.StartPause("s1", "one")
	clock.advance(time.Minute)
	m.EndPause("s1")

	clock.advance(time.Minute)
	m.StartPause("s1", "two")

	pauses := m.SessionPauses("s1")
	if len(pauses) != 2 {
		t.Fatalf("session pauses = %d, want 2", len(pauses))
	}

	// The open pause is listed first, completed ones after.
	if pauses[0].Reason != "two" || !pauses[0].IsActive() {
		t.Errorf("expected the open pause first, got %q", pauses[0].Reason)
	}

	if got := m.SessionTotalPauseTime("s1"); got != 60 {
		t.Errorf("total pause time = %d, want 60 (open pause excluded)", got)
	}

	if got := m.SessionPauseCount("s1"); got != 2 {
		t.Errorf("pause count = %d, want 2", got)
	}

	if got := m.SessionPauseCount("s2"); got != 0 {
		t.Errorf("pause count for other session = %d, want 0", got)
	}
}
