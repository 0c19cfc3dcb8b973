// Package logger builds the zerolog logger used across auditdesk.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const filePermission = 0664

// LevelEnvVar selects the log level ("debug", "info", "warn", "error").
// Unset or unrecognized values default to warn: the tool is interactive and
// the TUI owns the normal output channel.
const LevelEnvVar = "AUDITDESK_LOG_LEVEL"

// Build configures a logger before construction.
type Build struct {
	writer io.Writer
	path   string
}

// New starts a logger build writing to stderr.
func New() *Build {
	return &Build{}
}

// ToPath appends log lines to the file at path instead of stderr.
func (b *Build) ToPath(path string) *Build {
	b.path = path
	return b
}

// ToWriter sends log lines to w instead of stderr. Used by tests.
func (b *Build) ToWriter(w io.Writer) *Build {
	b.writer = w
	return b
}

// Make constructs the logger. Stderr output is pretty-printed when attached
// to a terminal, JSON otherwise.
func (b *Build) Make() (zerolog.Logger, error) {
	w := b.writer

	switch {
	case b.path != "":
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermission)
		if err != nil {
			return zerolog.Nop(), err
		}
		w = zerolog.SyncWriter(f)
	case w == nil:
		w = os.Stderr
		if isatty.IsTerminal(os.Stderr.Fd()) {
			w = zerolog.ConsoleWriter{Out: os.Stderr}
		}
	}

	log := zerolog.New(w).Level(levelFromEnv()).With().Timestamp().Logger()
	return log, nil
}

func levelFromEnv() zerolog.Level {
	switch strings.ToLower(os.Getenv(LevelEnvVar)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
