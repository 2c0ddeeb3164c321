package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNote = `:PROPERTIES:
:ID: 0b8f3f3c-6c53-4e53-9d5f-1c1f4b1f2d11
:END:
#+TITLE: Sample
#+FILETAGS: :go:org:
* TODO [#A] First :work:
SCHEDULED: <2024-01-15 Mon>
- item
** Child
#+BEGIN_SRC go
x := 1
#+END_SRC
`

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		parseYAML = false
		tokensSkipSpace = false
		checkPlain = false
		checkWorkers = 0
		roundtripPlain = false
		configFile = ""
	})

	err := Execute(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersionCmd(t *testing.T) {
	original := version
	version = "test-1.0.0"
	defer func() { version = original }()

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "orgparse version test-1.0.0")
}

func TestTokensCmd(t *testing.T) {
	path := writeNote(t, t.TempDir(), "a.org", "* Head\n")

	out, _, err := execute(t, "tokens", "--no-space", path)
	require.NoError(t, err)
	assert.Contains(t, out, "HEADING_STARS")
	assert.Contains(t, out, `"Head"`)
	assert.NotContains(t, out, "SPACE")
}

func TestTokensCmdReportsDiagnostics(t *testing.T) {
	path := writeNote(t, t.TempDir(), "a.org", "due <2024-02-30 Fri>\n")

	out, errOut, err := execute(t, "tokens", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, errOut, "1 diagnostic(s)")
}

func TestParseCmdOutline(t *testing.T) {
	path := writeNote(t, t.TempDir(), "a.org", sampleNote)

	out, _, err := execute(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Sample")
	assert.Contains(t, out, "* TODO [#A] First :work:")
	assert.Contains(t, out, "  ** Child")
}

func TestParseCmdYAML(t *testing.T) {
	path := writeNote(t, t.TempDir(), "a.org", sampleNote)

	out, _, err := execute(t, "parse", "--yaml", path)
	require.NoError(t, err)
	assert.Contains(t, out, "title: Sample")
	assert.Contains(t, out, "todo: TODO")
	assert.Contains(t, out, "SCHEDULED <2024-01-15 Mon>")
	assert.Contains(t, out, "block SRC")
}

func TestParseCmdMissingFile(t *testing.T) {
	_, _, err := execute(t, "parse", filepath.Join(t.TempDir(), "missing.org"))
	assert.Error(t, err)
}

func TestMetaCmd(t *testing.T) {
	path := writeNote(t, t.TempDir(), "a.org", sampleNote)

	out, errOut, err := execute(t, "meta", path)
	require.NoError(t, err)
	assert.Contains(t, out, "title: Sample")
	assert.Contains(t, out, "id: 0b8f3f3c-6c53-4e53-9d5f-1c1f4b1f2d11")
	assert.Empty(t, errOut)
}

func TestMetaCmdWarnsOnBadID(t *testing.T) {
	path := writeNote(t, t.TempDir(), "a.org", ":PROPERTIES:\n:ID: not-a-uuid\n:END:\n")

	_, errOut, err := execute(t, "meta", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "is not a UUID")
}

func TestRoundtripCmd(t *testing.T) {
	path := writeNote(t, t.TempDir(), "a.org", sampleNote)

	out, _, err := execute(t, "roundtrip", path)
	require.NoError(t, err)
	assert.Contains(t, out, "round trip ok")
}

func TestCheckCmdPlain(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "good.org", sampleNote)
	writeNote(t, dir, "diag.org", "due <2024-02-30 Fri>\n")

	cfgPath := filepath.Join(t.TempDir(), "config.json")
	out, _, err := execute(t, "--config", cfgPath, "check", "--plain", "-w", "1", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Parsed 2 file(s)")
	assert.Contains(t, out, "1 with diagnostics")
}

func TestCheckCmdFails(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "broken.org", "x\x01\x01\x01\x01\x01\n")

	cfgPath := filepath.Join(t.TempDir(), "config.json")
	out, _, err := execute(t, "--config", cfgPath, "check", "--plain", dir)
	assert.ErrorIs(t, err, errCheckFailed)
	assert.True(t, strings.Contains(out, "1 failed"))
}
