package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// outputFormat is set once at startup from the logging config. Empty falls
// back to the APP_ENV heuristic.
var outputFormat string

// SetFormat selects the output format for loggers created afterwards:
// "console" for human-readable lines, "json" for structured output.
func SetFormat(format string) {
	outputFormat = format
}

func consoleOutput() bool {
	switch outputFormat {
	case "console":
		return true
	case "json":
		return false
	}
	return strings.ToLower(os.Getenv("APP_ENV")) == "dev"
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger writing to stdout in the configured
// format. All logs include the provided component field.
func NewZerologLogger(component string) Logger {
	return &ZerologLogger{log: newZerolog(component, os.Stdout)}
}

func newZerolog(component string, out io.Writer) zerolog.Logger {
	if consoleOutput() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(out).With().Timestamp().Str("component", component).Logger()
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
