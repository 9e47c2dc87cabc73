// Package logging configures zerolog for the planner CLI.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// fall back to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Setup builds a console logger writing to w at the given level and installs
// it as the global logger. A nil w means stderr, so plan output on stdout
// stays clean.
func Setup(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	// Console writer for human-readable output
	console := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: "15:04:05"}

	logger := zerolog.New(console).With().Timestamp().Logger().Level(ParseLevel(level))
	log.Logger = logger
	return logger
}
