package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Setup initializes the global zerolog logger.
//   - level: log level string (trace, debug, info, warn, error, fatal, panic)
//   - format: "json" for machine-readable logs, "pretty" for human output
//   - logFile: append target for log output; empty falls back to stderr
//
// When stdout is an interactive terminal the menu owns the screen, so logs
// go to the file (or stderr), never to stdout.
//
// Returns the configured logger instance.
func Setup(level, format, logFile string) zerolog.Logger {
	var out io.Writer = os.Stderr

	if logFile != "" && term.IsTerminal(int(os.Stdout.Fd())) {
		if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			out = f
		}
	}

	var writer io.Writer = out
	if format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(lvl)

	log := zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Logger()

	return log
}
