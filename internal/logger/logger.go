// Package logger provides structured logging configuration for the
// application. The TUI owns stdout, so interactive sessions log to a
// file; CLI commands log to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console-style logger writing to w at the given level.
// An unknown level falls back to info.
func New(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		logLevel = zerolog.InfoLevel
		fmt.Fprintf(os.Stderr, "Invalid log level '%s', defaulting to 'info'\n", level)
	}

	l := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}).
		Level(logLevel).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()

	return l
}

// NewFile builds a logger appending to the given file, creating parent
// directories as needed. When the file cannot be opened the logger is
// disabled rather than failing startup.
func NewFile(path, level string) zerolog.Logger {
	if path == "" {
		path = DefaultLogPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerolog.Nop()
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop()
	}

	return New(f, level)
}

// DefaultLogPath places the log under the user state directory.
func DefaultLogPath() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "maildraft.log"
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "maildraft", "maildraft.log")
}
