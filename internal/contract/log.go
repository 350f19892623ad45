package contract

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the process-wide console logger. It writes to stderr so that reports on stdout
// stay machine readable.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	Level(zerolog.InfoLevel).
	With().Timestamp().Logger()

// SetVerbose switches debug logging on or off.
func SetVerbose(verbose bool) {
	if verbose {
		Logger = Logger.Level(zerolog.DebugLevel)
		return
	}
	Logger = Logger.Level(zerolog.InfoLevel)
}

// exit is swapped in tests.
var exit = os.Exit

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger.Error().Err(err).Msg(msg)
	exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger.Warn().Err(err).Msg(msg)
}
