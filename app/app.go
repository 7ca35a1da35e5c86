// Package app defines the command-line interface for studytrack.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/studytrack/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the studytrack app instance.
func Get() *cli.App {
	studyApp := &cli.App{
		Name: "studytrack",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Studytrack is a study session tracker for the command-line. It records
		when you study, where, and with what, and uploads the records to your
		own endpoints on demand.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start a new study session",
				Flags:  []cli.Flag{profileFlag, locationFlag, equipmentFlag, noUIFlag},
				Action: startAction,
			},
			{
				Name:   "pause",
				Usage:  "Pause the current session",
				Flags:  []cli.Flag{reasonFlag},
				Action: pauseAction,
			},
			{
				Name:   "resume",
				Usage:  "Resume a paused session",
				Action: resumeAction,
			},
			{
				Name:   "end",
				Usage:  "End the current session and record it",
				Flags:  []cli.Flag{noteFlag, editNoteFlag},
				Action: endAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the current session",
				Action: statusAction,
			},
			{
				Name:   "sync",
				Usage:  "Upload recorded sessions to the configured endpoints",
				Action: syncAction,
			},
			{
				Name:   "list",
				Usage:  "List recorded sessions within a time period",
				Flags:  []cli.Flag{sinceFlag, untilFlag, periodFlag, profileFlag, jsonFlag},
				Action: listAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete the specified recorded sessions",
				ArgsUsage: "[SESSION_ID...]",
				Flags:     []cli.Flag{yesFlag},
				Action:    deleteAction,
			},
			{
				Name:      "switch",
				Usage:     "Change the active profile, splitting the session if one is running",
				ArgsUsage: "PROFILE",
				Action:    switchAction,
			},
			{
				Name:  "profile",
				Usage: "Manage study profiles",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add a new profile",
						ArgsUsage: "NAME",
						Flags:     []cli.Flag{locationFlag, equipmentFlag},
						Action:    profileAddAction,
					},
					{
						Name:      "rename",
						Usage:     "Rename a profile",
						ArgsUsage: "OLD_NAME NEW_NAME",
						Action:    profileRenameAction,
					},
					{
						Name:      "remove",
						Usage:     "Remove a profile",
						ArgsUsage: "NAME",
						Action:    profileRemoveAction,
					},
					{
						Name:   "list",
						Usage:  "List all profiles",
						Action: profileListAction,
					},
					{
						Name:      "use",
						Usage:     "Select the profile for new sessions",
						ArgsUsage: "NAME",
						Action:    switchAction,
					},
				},
			},
			{
				Name:  "location",
				Usage: "Manage the locations catalog",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add a location",
						ArgsUsage: "NAME",
						Action:    locationAddAction,
					},
					{
						Name:      "remove",
						Usage:     "Remove a location",
						ArgsUsage: "NAME",
						Action:    locationRemoveAction,
					},
					{
						Name:   "list",
						Usage:  "List all locations",
						Action: locationListAction,
					},
				},
			},
			{
				Name:  "equipment",
				Usage: "Manage the equipment catalog",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add an equipment entry",
						ArgsUsage: "NAME",
						Action:    equipmentAddAction,
					},
					{
						Name:      "remove",
						Usage:     "Remove an equipment entry",
						ArgsUsage: "NAME",
						Action:    equipmentRemoveAction,
					},
					{
						Name:   "list",
						Usage:  "List all equipment entries",
						Action: equipmentListAction,
					},
				},
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			disableNotificationFlag,
			soundFlag,
			sessionCmdFlag,
			noColorFlag,
			debugFlag,
		},
		Before: beforeAction,
		After:  afterAction,
	}

	return studyApp
}
