// Package logger holds the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/warp/depreciation-engine/internal/config"
)

// Log is the global logger instance
var Log = logrus.New()

// Init configures Log from the logging section. JSON output is used when
// logging.format is "json" or the environment is production/staging.
func Init(cfg *config.Config) {
	InitWithOutput(cfg, os.Stdout)
}

// InitWithOutput is Init with an explicit writer, for tests.
func InitWithOutput(cfg *config.Config, out io.Writer) {
	Log.SetOutput(out)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		Log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.Logging.Level, err)
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	env := strings.ToLower(cfg.Environment)
	if strings.ToLower(cfg.Logging.Format) == "json" || env == "production" || env == "staging" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	Log.Debugf("Log level set to: %s", Log.GetLevel().String())
}

// Get returns the configured global logger.
func Get() *logrus.Logger {
	return Log
}
