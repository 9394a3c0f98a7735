package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/batflap/internal/storage"
)

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "batflap",
		Level:           level,
	})
}

// newFileLogger logs to --log-file, since the TUI owns stdout and stderr.
// If the file cannot be opened, logging is discarded.
func newFileLogger() (*log.Logger, func()) {
	path, err := storage.ExpandHome(flagLogFile)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(io.Discard), func() {}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	//nolint:errcheck // Best-effort close on exit
	return newLogger(f), func() { f.Close() }
}
