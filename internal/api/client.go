// Package api posts ended sessions to the remote logging service and
// reconciles local storage with its acknowledgments.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ayoisaiah/studytrack/config"
	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/timeutil"
)

const requestTimeout = 10 * time.Second

// BuildEndpoint composes the URL for a sync endpoint. An absolute
// endpoint is used verbatim with any trailing slash trimmed; a relative
// one is joined to the base URL. A relative endpoint without a base
// yields "" (unconfigured).
func BuildEndpoint(base, endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ""
	}

	if strings.HasPrefix(endpoint, "http://") ||
		strings.HasPrefix(endpoint, "https://") {
		return strings.TrimRight(endpoint, "/")
	}

	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return ""
	}

	return base + "/" + strings.TrimLeft(endpoint, "/")
}

// sessionPayload is the JSON body posted to the session log endpoint.
// The active time is derivable from the totals on the receiving side, so
// it is not sent.
type sessionPayload struct {
	SessionID                 string `json:"session_id"`
	StartedAt                 string `json:"started_at"`
	EndedAt                   string `json:"ended_at"`
	Notes                     string `json:"notes"`
	Location                  string `json:"location"`
	Equipment                 string `json:"equipment"`
	TotalDurationSeconds      int    `json:"total_duration_seconds"`
	TotalPauseDurationSeconds int    `json:"total_pause_duration_seconds"`
	PauseCount                int    `json:"pause_count"`
}

// pausePayload is the JSON body posted to the session pauses endpoint.
type pausePayload struct {
	ID              string `json:"id"`
	SessionID       string `json:"session_id"`
	Reason          string `json:"reason"`
	StartedAt       string `json:"started_at"`
	EndedAt         string `json:"ended_at"`
	DurationSeconds int    `json:"duration_seconds"`
}

// wireTime renders a timestamp for the wire at whole-minute resolution.
func wireTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timeutil.FormatMinute(t)
}

func sessionPayloadFrom(rec models.SessionRecord) sessionPayload {
	return sessionPayload{
		SessionID:                 rec.SessionID,
		StartedAt:                 wireTime(rec.StartedAt),
		EndedAt:                   wireTime(rec.EndedAt),
		Notes:                     rec.Notes,
		Location:                  rec.Location,
		Equipment:                 rec.Equipment,
		TotalDurationSeconds:      rec.TotalDurationSeconds,
		TotalPauseDurationSeconds: rec.TotalPauseDurationSeconds,
		PauseCount:                rec.PauseCount,
	}
}

func pausePayloadFrom(rec models.PauseRecord) pausePayload {
	return pausePayload{
		ID:              rec.ID,
		SessionID:       rec.SessionID,
		Reason:          rec.Reason,
		StartedAt:       wireTime(rec.StartedAt),
		EndedAt:         wireTime(rec.EndedAt),
		DurationSeconds: rec.DurationSeconds,
	}
}

// Client talks to the remote logging service.
type Client struct {
	httpClient       *http.Client
	sessionLogURL    string
	sessionPausesURL string
}

// NewClient composes the endpoint URLs from the application config and
// returns a client for them.
func NewClient(cfg *config.App) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		sessionLogURL: BuildEndpoint(
			cfg.SyncBaseURL,
			cfg.SessionLogEndpoint,
		),
		sessionPausesURL: BuildEndpoint(
			cfg.SyncBaseURL,
			cfg.SessionPausesEndpoint,
		),
	}
}

// Configured reports whether both endpoints resolve to usable URLs.
func (c *Client) Configured() bool {
	return c.sessionLogURL != "" && c.sessionPausesURL != ""
}

// LogSession posts a session record and reports whether the service
// acknowledged it.
func (c *Client) LogSession(
	ctx context.Context,
	rec models.SessionRecord,
) bool {
	return c.post(ctx, c.sessionLogURL, sessionPayloadFrom(rec))
}

// LogPause posts a pause record and reports whether the service
// acknowledged it.
func (c *Client) LogPause(ctx context.Context, rec models.PauseRecord) bool {
	return c.post(ctx, c.sessionPausesURL, pausePayloadFrom(rec))
}

// post sends the payload as JSON and reports whether the service
// answered with a 2xx status. A timeout or transport error counts the
// same as a rejection.
func (c *Client) post(ctx context.Context, url string, payload any) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("unable to marshal sync payload", "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewReader(body),
	)
	if err != nil {
		slog.Error("unable to build sync request", "error", err)
		return false
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("sync request failed", "url", url, "error", err)
		return false
	}

	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK ||
		resp.StatusCode >= http.StatusMultipleChoices {
		slog.Warn(
			"sync request rejected",
			"url", url,
			"status", resp.StatusCode,
		)

		return false
	}

	return true
}
