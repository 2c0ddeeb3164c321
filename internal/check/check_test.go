package check

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/orgparse/internal/config"
	"github.com/gerunddev/orgparse/internal/logger"
	"github.com/gerunddev/orgparse/internal/parser"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func testConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.NotesDir = dir
	cfg.Workers = 2
	cfg.ParseTimeout = 5 * time.Second
	return cfg
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.org"), "* A\n")
	writeFile(t, filepath.Join(dir, "sub", "b.ORG"), "* B\n")
	writeFile(t, filepath.Join(dir, "notes.md"), "# md\n")
	writeFile(t, filepath.Join(dir, ".git", "c.org"), "* C\n")
	writeFile(t, filepath.Join(dir, "draft.tmp.org"), "* D\n")

	files, err := ScanDirectory(dir, []string{".org"}, []string{"*.tmp.org"})
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f)
		names = append(names, rel)
	}
	assert.ElementsMatch(t, []string{"a.org", filepath.Join("sub", "b.ORG")}, names)
}

func TestScanDirectoryMissing(t *testing.T) {
	_, err := ScanDirectory(filepath.Join(t.TempDir(), "nope"), []string{".org"}, nil)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.org"), "#+TITLE: Good\n* One\n** Two\n")
	writeFile(t, filepath.Join(dir, "diag.org"), "bad <2024-02-30 Fri> date\n")
	writeFile(t, filepath.Join(dir, "broken.org"), "x\x01\x01\x01\x01\x01\n")

	var buf bytes.Buffer
	c := NewChecker(testConfig(dir), logger.New(&buf))

	var calls atomic.Int32
	c.Progress = func(done, total int) {
		calls.Add(1)
		assert.Equal(t, 3, total)
	}

	res, err := c.Run(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, res.Files, 3)
	assert.EqualValues(t, 3, calls.Load())

	byName := map[string]FileResult{}
	for _, f := range res.Files {
		byName[filepath.Base(f.Path)] = f
	}

	good := byName["good.org"]
	assert.True(t, good.OK())
	assert.Equal(t, 2, good.Sections)

	diag := byName["diag.org"]
	assert.NoError(t, diag.Err)
	assert.NotEmpty(t, diag.Diagnostics)

	broken := byName["broken.org"]
	assert.True(t, errors.Is(broken.Err, parser.ErrPartialDocument))
	assert.True(t, broken.Partial)

	assert.Len(t, res.Failed(), 1)
	assert.Len(t, res.WithDiagnostics(), 1)
	assert.Contains(t, res.String(), "3 files")
	assert.Contains(t, res.String(), "1 failed")
	assert.Contains(t, buf.String(), "check completed")
}

func TestCheckFileTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.org")
	writeFile(t, path, strings.Repeat("text\n", 100))

	cfg := testConfig(dir)
	cfg.MaxFileSize = 10
	c := NewChecker(cfg, nil)

	res := c.CheckFile(context.Background(), path)
	assert.ErrorIs(t, res.Err, ErrTooLarge)
	assert.EqualValues(t, 500, res.Size)
}

func TestCheckFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"a.org", "b.org", "c.org"} {
		p := filepath.Join(dir, name)
		writeFile(t, p, "* note\n")
		files = append(files, p)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewChecker(testConfig(dir), nil).CheckFiles(ctx, files)
	require.Len(t, res, 3)
	for _, f := range res {
		assert.Error(t, f.Err)
	}
}
