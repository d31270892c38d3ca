package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// Logger returns the process logger.
func Logger() zerolog.Logger {
	return logger
}

// SetDebug lowers the process log level to debug.
func SetDebug() {
	logger = logger.Level(zerolog.DebugLevel)
}
