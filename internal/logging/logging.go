// Package logging builds the application logger.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a logger writing to out and sets the global level.
// Format "text" selects the console writer; anything else logs JSON.
func New(level, format string, out io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(level))

	if format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
	}

	return zerolog.New(out).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
