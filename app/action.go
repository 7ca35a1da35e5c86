package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/studytrack/config"
	"github.com/ayoisaiah/studytrack/internal/api"
	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/netutil"
	"github.com/ayoisaiah/studytrack/internal/ui"
	"github.com/ayoisaiah/studytrack/report"
	"github.com/ayoisaiah/studytrack/store"
	"github.com/ayoisaiah/studytrack/tracker"
)

const (
	envUpdateNotifier = "STUDYTRACK_UPDATE_NOTIFIER"
	envNoColor        = "NO_COLOR"
	envAppNoColor     = "STUDYTRACK_NO_COLOR"
)

var (
	errNameRequired = errors.New("provide a name")

	errProfileRequired = errors.New("provide a profile name")

	errRenameArgs = errors.New(
		"provide the current name and the new name",
	)

	errSessionIDRequired = errors.New("provide one or more session ids")
)

// checkForUpdates alerts the user if there is
// an updated version of studytrack from the one currently installed.
func checkForUpdates(app *cli.App) {
	spinner, _ := pterm.DefaultSpinner.Start("Checking for updates...")
	c := http.Client{Timeout: 10 * time.Second}

	resp, err := c.Get("https://github.com/ayoisaiah/studytrack/releases/latest")
	if err != nil {
		pterm.Error.Println("HTTP Error: Failed to check for update")
		return
	}

	defer resp.Body.Close()

	var version string

	_, err = fmt.Sscanf(
		resp.Request.URL.String(),
		"https://github.com/ayoisaiah/studytrack/releases/tag/%s",
		&version,
	)
	if err != nil {
		pterm.Error.Println("Failed to get latest version")
		return
	}

	if version == app.Version {
		text := pterm.Sprintf(
			"Congratulations, you are using the latest version of %s",
			app.Name,
		)
		spinner.Success(text)
	} else {
		pterm.Warning.Prefix = pterm.Prefix{
			Text:  "UPDATE AVAILABLE",
			Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
		}
		pterm.Warning.Printfln("A new release of studytrack is available: %s at %s", version, resp.Request.URL.String())
	}
}

// openStore connects to the session database.
func openStore(ctx *cli.Context) (*store.Client, error) {
	return store.NewClient(config.Get(ctx).PathToDB)
}

// printSessionStatus prints the one-line status of the live session.
func printSessionStatus(tr *tracker.Tracker) {
	sess := tr.Session()

	pterm.Println(report.StatusLine(
		sess.Status(),
		sess.ElapsedSince(time.Now())/60,
		sess.Pauses.SessionPauseCount(sess.ID),
	))
}

// startAction begins a new study session and opens the live tracking
// view unless --no-ui is set.
func startAction(ctx *cli.Context) error {
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tr := tracker.New(db, config.Get(ctx))

	err = tr.Start(
		ctx.String("profile"),
		ctx.String("location"),
		ctx.String("equipment"),
	)
	if err != nil {
		return err
	}

	if ctx.Bool("no-ui") {
		printSessionStatus(tr)
		return nil
	}

	err = tr.Run()
	if err != nil {
		return err
	}

	if sum := tr.EndSummary(); sum != nil {
		_, location, equipment := tr.Environment()

		pterm.Println(report.SessionSummary(sum, tr.EndNote(), location, equipment))
	}

	return nil
}

// pauseAction pauses the persisted live session.
func pauseAction(ctx *cli.Context) error {
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tr := tracker.New(db, config.Get(ctx))

	err = tr.Pause(ctx.String("reason"))
	if err != nil {
		return err
	}

	printSessionStatus(tr)

	return nil
}

// resumeAction resumes the persisted live session.
func resumeAction(ctx *cli.Context) error {
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tr := tracker.New(db, config.Get(ctx))

	err = tr.Resume()
	if err != nil {
		return err
	}

	printSessionStatus(tr)

	return nil
}

// endAction ends the persisted live session and prints its summary.
func endAction(ctx *cli.Context) error {
	note := ctx.String("note")

	if ctx.Bool("edit") {
		var err error

		note, err = composeNote(note)
		if err != nil {
			return err
		}
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tr := tracker.New(db, config.Get(ctx))

	sum, err := tr.End(note)
	if err != nil {
		return err
	}

	_, location, equipment := tr.Environment()

	pterm.Println(report.SessionSummary(sum, note, location, equipment))

	return nil
}

// statusAction prints the state of the current session, falling back to
// the status file when another process holds the database.
func statusAction(ctx *cli.Context) error {
	return tracker.ReportStatus(config.Get(ctx))
}

// syncAction uploads recorded sessions to the configured endpoints.
func syncAction(ctx *cli.Context) error {
	cfg := config.Get(ctx)

	latency, up := netutil.CheckConnectivity()
	if !up {
		pterm.Warning.Println(
			"The network appears to be down. Sync will likely fail.",
		)
	}

	slog.InfoContext(
		ctx.Context,
		"starting sync",
		slog.Bool("network_up", up),
		slog.Float64("latency_ms", latency),
	)

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}
	defer db.Close()

	spinner, _ := pterm.DefaultSpinner.Start("Syncing sessions...")

	res, err := api.NewEngine(db, api.NewClient(cfg)).Sync(ctx.Context)
	if err != nil {
		spinner.Fail("Sync failed")
		return err
	}

	_ = spinner.Stop()

	report.SyncResult(res)

	return nil
}

// listAction prints a table of the recorded sessions started within a
// time period.
func listAction(ctx *cli.Context) error {
	filter := config.Filter(ctx)

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.UnsyncedSessions()
	if err != nil {
		return err
	}

	var profile *models.Profile

	if filter.Profile != "" {
		profile, err = db.GetProfile(filter.Profile)
		if err != nil {
			return err
		}

		if profile == nil {
			return fmt.Errorf("no profile named %q", filter.Profile)
		}
	}

	matched := make([]models.SessionRecord, 0, len(records))

	for _, rec := range records {
		if rec.StartedAt.Before(filter.StartTime) ||
			rec.StartedAt.After(filter.EndTime) {
			continue
		}

		// a profile is its location and equipment as far as records go
		if profile != nil && (rec.Location != profile.Location ||
			rec.Equipment != profile.Equipment) {
			continue
		}

		matched = append(matched, rec)
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(matched)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	report.PrintSessions(os.Stdout, matched)

	return nil
}

// deleteAction handles the delete command which deletes one or more
// recorded sessions.
func deleteAction(ctx *cli.Context) error {
	ids := ctx.Args().Slice()
	if len(ids) == 0 {
		return errSessionIDRequired
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.UnsyncedSessions()
	if err != nil {
		return err
	}

	wanted := make(map[string]bool, len(ids))

	for _, id := range ids {
		wanted[strings.TrimSpace(id)] = true
	}

	var matched []models.SessionRecord

	for _, rec := range records {
		if wanted[rec.SessionID] {
			matched = append(matched, rec)
		}
	}

	if len(matched) == 0 {
		pterm.Info.Println("No matching sessions found")
		return nil
	}

	return delSessions(db, matched, ctx.Bool("yes"))
}

// switchAction changes the active profile, splitting the current session
// if one is running.
func switchAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().First())
	if name == "" {
		return errProfileRequired
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tr := tracker.New(db, config.Get(ctx))

	err = tr.Switch(name)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Now using profile: %s", name)

	return nil
}

// editConfigAction handles the edit-config command which opens the
// studytrack config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	cfg := config.Get(ctx)

	return editorCommand(cfg.PathToConfig).Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/studytrack/releases/%s\n",
			c.App.Version,
		)

		if _, found := os.LookupEnv(envUpdateNotifier); found {
			checkForUpdates(c.App)
		}
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if STUDYTRACK_NO_COLOR is set
	if _, exists := os.LookupEnv(envAppNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	config.InitializePaths()

	cfg := config.Get(ctx)

	config.InitLogging(cfg.Debug)

	ui.DarkTheme = cfg.DarkTheme
	report.TwentyFourHour = cfg.TwentyFourHourClock

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting studytrack")

	return nil
}
