// Package report prints command results to the terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/studytrack/internal/api"
	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/session"
	"github.com/ayoisaiah/studytrack/internal/timeutil"
	"github.com/ayoisaiah/studytrack/internal/ui"
)

// TwentyFourHour switches printed timestamps to the 24-hour clock.
var TwentyFourHour bool

const (
	displayTimeFormat   = "Jan 02, 2006 03:04 PM"
	displayTimeFormat24 = "Jan 02, 2006 15:04"
)

const noSessionsMsg = "No sessions found for the specified time range"

func displayTime(t time.Time) string {
	if TwentyFourHour {
		return t.Format(displayTimeFormat24)
	}

	return t.Format(displayTimeFormat)
}

func Fatal(err error) tea.Cmd {
	pterm.Error.Println(err)
	return tea.Quit
}

func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(1)
}

// FormatSeconds renders a duration in whole minutes, switching to hours
// and minutes past the hour mark.
func FormatSeconds(secs int) string {
	mins := secs / 60

	hrs, m := timeutil.MinsToHoursAndMins(mins)
	if hrs > 0 {
		return fmt.Sprintf("%dh %02dm", hrs, m)
	}

	return fmt.Sprintf("%dm", mins)
}

// StatusLine renders the session status the way the status command and
// the live view present it.
func StatusLine(status session.Status, minutes, pauseCount int) string {
	var line string

	switch status {
	case session.Running:
		line = fmt.Sprintf("%s (%dm)", ui.Green("Running"), minutes)
	case session.Paused:
		line = fmt.Sprintf("%s (%dm)", ui.Yellow("Paused"), minutes)
	default:
		return "Idle"
	}

	if pauseCount > 0 {
		line = fmt.Sprintf("%s · pauses: %d", line, pauseCount)
	}

	return line
}

// SessionSummary renders the final accounting of an ended session.
func SessionSummary(
	sum *session.Summary,
	notes, location, equipment string,
) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s\n", ui.Blue("Session summary")))
	b.WriteString(fmt.Sprintf(
		"Started: %s\n",
		ui.Highlight(displayTime(sum.StartTime)),
	))
	b.WriteString(fmt.Sprintf(
		"Ended: %s\n",
		ui.Highlight(displayTime(sum.EndTime)),
	))
	b.WriteString(fmt.Sprintf(
		"Time logged: %s\n",
		ui.Green(FormatSeconds(sum.ActiveSeconds)),
	))
	b.WriteString(fmt.Sprintf(
		"Time paused: %s\n",
		ui.Yellow(FormatSeconds(sum.PauseSeconds)),
	))
	b.WriteString(fmt.Sprintf("Pauses: %s\n", ui.Yellow(sum.PauseCount)))

	if location != "" {
		b.WriteString(fmt.Sprintf("Location: %s\n", ui.Cyan(location)))
	}

	if equipment != "" {
		b.WriteString(fmt.Sprintf("Equipment: %s\n", ui.Cyan(equipment)))
	}

	if notes != "" {
		b.WriteString(fmt.Sprintf("Notes: %s\n", notes))
	}

	return b.String()
}

// PrintSessions writes a table of stored session records, oldest first.
func PrintSessions(w io.Writer, records []models.SessionRecord) {
	if len(records) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return
	}

	rows := make([][]string, len(records))

	for i := range records {
		rec := records[i]

		endDate := displayTime(rec.EndedAt)
		if rec.EndedAt.IsZero() {
			endDate = ""
		}

		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			ui.Magenta(rec.SessionID),
			displayTime(rec.StartedAt),
			endDate,
			ui.Green(FormatSeconds(rec.ActiveTimeSeconds)),
			fmt.Sprintf("%d", rec.PauseCount),
			rec.Location,
			rec.Equipment,
			rec.Notes,
		}
	}

	header := []string{
		"#",
		"ID",
		"STARTED",
		"ENDED",
		"ACTIVE",
		"PAUSES",
		"LOCATION",
		"EQUIPMENT",
		"NOTES",
	}

	ui.PrintTable(w, header, rows)
}

// SyncResult prints the outcome of a sync run.
func SyncResult(res *api.Result) {
	switch res.Status {
	case api.StatusNothing:
		pterm.Info.Println("nothing to sync")
	case api.StatusSkipped:
		pterm.Warning.Println(
			"sync skipped: configure the sync endpoints first",
		)
	case api.StatusCompleted:
		pterm.Success.Printfln(
			"sync completed: %d sessions and %d pauses logged",
			res.Sessions,
			res.Pauses,
		)
	case api.StatusPartial:
		pterm.Warning.Printfln(
			"sync partially completed: %d requests failed and will be retried on the next run",
			res.Failed,
		)
	}
}
