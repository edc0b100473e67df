// Package logging builds the charmbracelet/log loggers used across the app.
//
// The interactive TUI owns stdout, so local play logs to a file or nowhere,
// while the SSH server logs to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockdrop/internal/storage"
)

// Options configures a logger.
type Options struct {
	// Prefix is printed before every message.
	Prefix string
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Writer receives log output. Takes precedence over File.
	Writer io.Writer
	// File is appended to when Writer is nil. A leading ~ is expanded.
	File string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger. The returned closer releases the log file, if any,
// and is never nil. With neither Writer nor File set, output is discarded.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}

	w := opts.Writer
	var closer io.Closer = nopCloser{}
	if w == nil && opts.File != "" {
		f, err := openFile(opts.File)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, f
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func openFile(path string) (*os.File, error) {
	path, err := storage.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: cannot open log file: %w", err)
	}
	return f, nil
}
