package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that writes to a file
func NewFileLogger(path string) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	cleanup := func() {
		f.Close()
	}

	return &Logger{Logger: l}, cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(writers ...io.Writer) *Logger {
	w := io.MultiWriter(writers...)
	return New(w)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// CheckStarted logs the start of a check run
func (l *Logger) CheckStarted(notesDir string, workers int) {
	l.Info("check started",
		"notes_dir", notesDir,
		"workers", workers)
}

// CheckCompleted logs the completion of a check run
func (l *Logger) CheckCompleted(files int, failed int, duration time.Duration) {
	l.Info("check completed",
		"files", files,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// FileParsed logs a file that parsed cleanly
func (l *Logger) FileParsed(file string, sections int, duration time.Duration) {
	l.Debug("file parsed",
		"file", file,
		"sections", sections,
		"duration", duration.Round(time.Microsecond))
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// ParseDiagnostic logs a lexer diagnostic found in a file
func (l *Logger) ParseDiagnostic(file string, line, column int, msg string) {
	l.Warn("diagnostic",
		"file", file,
		"line", line,
		"column", column,
		"message", msg)
}

// PartialParse logs a file whose document could only be parsed in part
func (l *Logger) PartialParse(file string, err error) {
	l.Warn("partial parse",
		"file", file,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(notesDir string, workers int, timeout time.Duration) {
	l.Debug("config loaded",
		"notes_dir", notesDir,
		"workers", workers,
		"parse_timeout", timeout)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}

// WatchEvent logs a filesystem event picked up by the watcher
func (l *Logger) WatchEvent(file, op string) {
	l.Debug("watch event",
		"file", file,
		"op", op)
}
