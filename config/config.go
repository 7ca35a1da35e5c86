// Package config is responsible for setting the program config from
// the config file, environment variables, and command-line arguments
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/studytrack/internal/osutil"
)

const Version = "v1.2.0"

var appCfg = &App{}

var once sync.Once

var (
	configDir      = "studytrack"
	configFileName = "config.yml"
	dbFileName     = "studytrack.db"
	statusFileName = "status.json"
	logFileName    = "studytrack.log"
	configFilePath string
	dbFilePath     string
	statusFilePath string
	logFilePath    string
)

const (
	configNotify                = "notify"
	configSoundOnEnd            = "sound_on_end"
	configSessionCmd            = "session_cmd"
	configDarkTheme             = "dark_theme"
	configTwentyFourHourClock   = "24hr_clock"
	configSyncBaseURL           = "sync.base_url"
	configSessionLogEndpoint    = "sync.session_log_endpoint"
	configSessionPausesEndpoint = "sync.session_pauses_endpoint"
)

const (
	envSyncBaseURL           = "STUDYTRACK_SYNC_BASE_URL"
	envSessionLogEndpoint    = "STUDYTRACK_SESSION_LOG_ENDPOINT"
	envSessionPausesEndpoint = "STUDYTRACK_SESSION_PAUSES_ENDPOINT"
)

// Relative endpoints are joined to the sync base URL; absolute ones are
// used as-is.
const (
	defaultSessionLogEndpoint    = "session-log"
	defaultSessionPausesEndpoint = "session-pauses"
)

// App represents the program configuration derived from the config file,
// environment variables, and command-line arguments.
type App struct {
	Stderr                io.Writer `json:"-"`
	Stdout                io.Writer `json:"-"`
	Stdin                 io.Reader `json:"-"`
	PathToConfig          string    `json:"path_to_config"`
	PathToDB              string    `json:"path_to_db"`
	SessionCmd            string    `json:"session_cmd"`
	SyncBaseURL           string    `json:"sync_base_url"`
	SessionLogEndpoint    string    `json:"session_log_endpoint"`
	SessionPausesEndpoint string    `json:"session_pauses_endpoint"`
	Notify                bool      `json:"notify"`
	SoundOnEnd            bool      `json:"sound_on_end"`
	DarkTheme             bool      `json:"dark_theme"`
	TwentyFourHourClock   bool      `json:"twenty_four_hour_clock"`
	Debug                 bool      `json:"debug"`
}

// GetDir returns the application configuration directory name.
func GetDir() string {
	return configDir
}

// GetDBFilePath returns the location of the session database.
func GetDBFilePath() string {
	return dbFilePath
}

// GetStatusFilePath returns the location of the live status file.
func GetStatusFilePath() string {
	return statusFilePath
}

// GetLogFilePath returns the location of the rotating log file.
func GetLogFilePath() string {
	return logFilePath
}

// InitializePaths sets up the application directories and file paths.
// Setting STUDYTRACK_ENV suffixes each file name so that development and
// test data stay away from real data.
func InitializePaths() {
	env := strings.TrimSpace(os.Getenv("STUDYTRACK_ENV"))
	if env != "" {
		configFileName = fmt.Sprintf("config_%s.yml", env)
		dbFileName = fmt.Sprintf("studytrack_%s.db", env)
		statusFileName = fmt.Sprintf("status_%s.json", env)
		logFileName = fmt.Sprintf("studytrack_%s.log", env)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	// xdg.DataFile only creates the parents of the named path, so the
	// application directory itself still has to be made.
	err = os.MkdirAll(dataDir, osutil.DirPermission)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	statusFilePath = filepath.Join(dataDir, statusFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}

// prompt collects the user's preferred values for the most important
// settings. It runs only when a configuration file is not already present
// (e.g. on first run).
func prompt() {
	_ = pterm.DefaultBigText.WithLetters(putils.LettersFromString("study")).
		Render()

	_ = putils.BulletListFromString(`Follow the prompts below to configure studytrack for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'studytrack edit-config' to change any settings.`, " ").
		Render()

	notify := true

	var baseURL string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable desktop notifications?").
				Value(&notify),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Sync base URL").
				Description(
					"Ended sessions are posted there on 'studytrack sync'. Leave empty to keep sessions on this machine.",
				).
				Value(&baseURL),
		),
	)

	err := form.Run()
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	viper.Set(configNotify, notify)

	if strings.TrimSpace(baseURL) != "" {
		viper.Set(configSyncBaseURL, strings.TrimSpace(baseURL))
	}
}

// createAppConfig writes the initial configuration file, prompting for
// the key settings first when running interactively.
func createAppConfig() error {
	if os.Getenv("STUDYTRACK_ENV") != "testing" {
		prompt()
	}

	err := viper.WriteConfigAs(appCfg.PathToConfig)
	if err != nil {
		fmt.Println(err)
		return err
	}

	fmt.Println()
	pterm.Success.Printfln(
		"Your settings have been saved. Thanks for using studytrack!\n\n",
	)

	return nil
}

// appDefaults sets the program's default configuration values.
func appDefaults() {
	viper.SetDefault(configNotify, true)
	viper.SetDefault(configSoundOnEnd, false)
	viper.SetDefault(configSessionCmd, "")
	viper.SetDefault(configDarkTheme, true)
	viper.SetDefault(configTwentyFourHourClock, false)
	viper.SetDefault(configSyncBaseURL, "")
	viper.SetDefault(configSessionLogEndpoint, defaultSessionLogEndpoint)
	viper.SetDefault(configSessionPausesEndpoint, defaultSessionPausesEndpoint)
}

// initAppConfig initialises the application configuration. If the config
// file does not exist, it prompts the user and saves the inputted
// preferences and defaults in a config file.
func initAppConfig() error {
	viper.SetConfigName(configFileName)
	viper.SetConfigType("yaml")

	appCfg.PathToConfig = configFilePath

	viper.AddConfigPath(filepath.Dir(appCfg.PathToConfig))

	appDefaults()

	_ = viper.BindEnv(configSyncBaseURL, envSyncBaseURL)
	_ = viper.BindEnv(configSessionLogEndpoint, envSessionLogEndpoint)
	_ = viper.BindEnv(configSessionPausesEndpoint, envSessionPausesEndpoint)

	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return createAppConfig()
		}

		return err
	}

	return nil
}

func setAppConfig(ctx *cli.Context) {
	appCfg.Stderr = os.Stderr
	appCfg.Stdout = os.Stdout
	appCfg.Stdin = os.Stdin
	appCfg.PathToDB = dbFilePath

	// set from the config file and environment
	appCfg.Notify = viper.GetBool(configNotify)
	appCfg.SoundOnEnd = viper.GetBool(configSoundOnEnd)
	appCfg.SessionCmd = viper.GetString(configSessionCmd)
	appCfg.TwentyFourHourClock = viper.GetBool(configTwentyFourHourClock)
	appCfg.SyncBaseURL = viper.GetString(configSyncBaseURL)
	appCfg.SessionLogEndpoint = viper.GetString(configSessionLogEndpoint)
	appCfg.SessionPausesEndpoint = viper.GetString(
		configSessionPausesEndpoint,
	)

	if viper.IsSet(configDarkTheme) {
		appCfg.DarkTheme = viper.GetBool(configDarkTheme)
	} else {
		appCfg.DarkTheme = true
	}

	// set from command-line arguments
	if ctx.Bool("disable-notification") {
		appCfg.Notify = false
	}

	if ctx.Bool("sound") {
		appCfg.SoundOnEnd = true
	}

	if ctx.String("session-cmd") != "" {
		appCfg.SessionCmd = ctx.String("session-cmd")
	}

	if ctx.Bool("debug") {
		appCfg.Debug = true
	}
}

// Get initializes and returns the application configuration. The
// initialization is done just once no matter how many times it is called.
func Get(ctx *cli.Context) *App {
	once.Do(func() {
		err := initAppConfig()
		if err != nil {
			pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
			os.Exit(1)
		}

		setAppConfig(ctx)
	})

	return appCfg
}
