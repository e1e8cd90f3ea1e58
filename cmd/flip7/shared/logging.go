package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a logger for CLI commands. Debug enables verbose
// output.
func SetupLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// SetupLoggerWithLevel configures a logger from a level name
// (debug, info, warn, error). Unknown names fall back to info.
func SetupLoggerWithLevel(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if parsed, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
	return logger
}
