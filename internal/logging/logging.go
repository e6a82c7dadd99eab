package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.elastic.co/ecszerolog"
)

// Output formats understood by Setup.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatECS     = "ecs"
)

// Setup replaces the global zerolog logger. Every line carries the app name.
func Setup(app, level, format string) error {
	return SetupWithWriter(os.Stdout, app, level, format)
}

// SetupWithWriter is Setup with an explicit destination.
func SetupWithWriter(out io.Writer, app, level, format string) error {
	if app == "" {
		return fmt.Errorf("app name is required")
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return fmt.Errorf("invalid log level %q", level)
	}
	zerolog.SetGlobalLevel(lvl)

	switch strings.ToLower(format) {
	case FormatConsole, "":
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().
			Str("app", app).Timestamp().Logger()
	case FormatJSON:
		log.Logger = zerolog.New(out).With().
			Str("app", app).Timestamp().Logger()
	case FormatECS:
		log.Logger = ecszerolog.New(out).With().
			Str("app", app).Logger()
	default:
		return fmt.Errorf("invalid log format %q: want console, json or ecs", format)
	}
	return nil
}
