package logger

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestCheckHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.CheckStarted("/notes", 4)
	l.CheckCompleted(12, 1, 1500*time.Millisecond)
	l.FileError("a.org", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"check started", "notes_dir=/notes", "workers=4", "check completed", "failed=1", "file error", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestDebugHelpersRespectLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.FileParsed("a.org", 3, time.Millisecond)
	l.Skipped("big.org", "too large")
	if buf.Len() != 0 {
		t.Errorf("expected debug output to be filtered at info level, got %q", buf.String())
	}

	buf.Reset()
	l = NewWithLevel(&buf, log.DebugLevel)
	l.FileParsed("a.org", 3, time.Millisecond)
	l.WatchEvent("a.org", "WRITE")
	if !strings.Contains(buf.String(), "file parsed") || !strings.Contains(buf.String(), "watch event") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orgparse.log")
	l, cleanup, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	l.PartialParse("x.org", errors.New("unexpected end"))
	cleanup()

	var buf bytes.Buffer
	m := NewMultiLogger(&buf, &bytes.Buffer{})
	m.ParseDiagnostic("x.org", 2, 4, "invalid character")
	if !strings.Contains(buf.String(), "line=2") {
		t.Errorf("expected multi logger to write to every output, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	Discard().FileError("a.org", errors.New("ignored"))
}
