package config

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB  = 1
	logMaxBackups = 3
)

// InitLogging routes diagnostic logs to a rotating file under the
// application data directory. With verbose set, log lines are mirrored to
// stderr as well.
func InitLogging(verbose bool) {
	var w io.Writer = &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
	}

	if verbose {
		w = io.MultiWriter(w, os.Stderr)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	slog.SetDefault(slog.New(handler))
}
