package app

import "github.com/urfave/cli/v2"

var (
	profileFlag = &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "Study under the named profile. Its location and equipment are applied to the session",
	}

	locationFlag = &cli.StringFlag{
		Name:    "location",
		Aliases: []string{"l"},
		Usage:   "Where the session takes place (e.g. 'home', 'library')",
	}

	equipmentFlag = &cli.StringFlag{
		Name:    "equipment",
		Aliases: []string{"e"},
		Usage:   "What the session is done with (e.g. 'laptop', 'textbook')",
	}

	noUIFlag = &cli.BoolFlag{
		Name:  "no-ui",
		Usage: "Record the session in the background instead of opening the live tracking view",
	}

	reasonFlag = &cli.StringFlag{
		Name:    "reason",
		Aliases: []string{"r"},
		Usage:   "Why the session is being paused (e.g. 'lunch')",
	}

	noteFlag = &cli.StringFlag{
		Name:    "note",
		Aliases: []string{"n"},
		Usage:   "Attach a note to the recorded session",
	}

	editNoteFlag = &cli.BoolFlag{
		Name:  "edit",
		Usage: "Compose the session note in your preferred text editor",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only include sessions started on or after this date (e.g. '2023-06-01', '2 weeks ago')",
	}

	untilFlag = &cli.StringFlag{
		Name:  "until",
		Usage: "Only include sessions started on or before this date (defaults to the end of today)",
	}

	periodFlag = &cli.StringFlag{
		Name:  "period",
		Usage: "Specify a time period. Possible values are: today, yesterday, 7days, 14days, 30days, 90days, 180days, 365days, all-time",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the results as JSON",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notifications that appear on session transitions",
	}

	soundFlag = &cli.BoolFlag{
		Name:  "sound",
		Usage: "Play a short tone when a session ends",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Mirror diagnostic logs to stderr",
	}
)
