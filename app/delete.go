package app

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/report"
	"github.com/ayoisaiah/studytrack/store"
)

// delSessions deletes the given session records along with their pause
// records. It requests confirmation before proceeding unless skipConfirm
// is set.
func delSessions(
	db store.DB,
	records []models.SessionRecord,
	skipConfirm bool,
) error {
	report.PrintSessions(os.Stdout, records)

	if !skipConfirm {
		var confirmed bool

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Delete the sessions above permanently?").
					Value(&confirmed),
			),
		)

		err := form.Run()
		if err != nil {
			return err
		}

		if !confirmed {
			return nil
		}
	}

	var rows int

	for _, rec := range records {
		n, err := db.DeleteSession(rec.SessionID)
		if err != nil {
			return err
		}

		rows += n
	}

	slog.Info(
		"sessions deleted",
		slog.Int("sessions", len(records)),
		slog.Int("rows", rows),
	)

	pterm.Success.Printfln("Deleted %d sessions", len(records))

	return nil
}
