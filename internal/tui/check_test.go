package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/orgparse/internal/check"
	"github.com/gerunddev/orgparse/internal/token"
)

func sampleResult() *check.Result {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &check.Result{
		StartTime: start,
		EndTime:   start.Add(1500 * time.Millisecond),
		Files: []check.FileResult{
			{Path: "a.org", Size: 2048},
			{Path: "b.org", Size: 10, Diagnostics: []token.Diagnostic{{Construct: "timestamp", Line: 3, Message: "invalid date"}}},
			{Path: "c.org", Size: 10, Err: errors.New("boom")},
		},
	}
}

func TestCheckModelProgress(t *testing.T) {
	m := InitCheckModel("/notes")
	assert.Contains(t, m.View(), "Scanning /notes")

	next, cmd := m.Update(ProgressMsg{Done: 1, Total: 3})
	assert.Nil(t, cmd)
	assert.Contains(t, next.View(), "Parsing 1/3 files")
}

func TestCheckModelComplete(t *testing.T) {
	m := InitCheckModel("/notes")

	next, cmd := m.Update(CheckMsg{Result: sampleResult()})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	view := next.View()
	assert.Contains(t, view, "Parsed 2 file(s)")
	assert.Contains(t, view, "1 with diagnostics")
	assert.Contains(t, view, "1 failed")
	assert.Contains(t, view, "c.org")
	assert.Contains(t, view, "b.org:3")
}

func TestCheckModelFailed(t *testing.T) {
	m := InitCheckModel("/notes")
	next, _ := m.Update(CheckMsg{Err: errors.New("no such directory")})
	assert.Contains(t, next.View(), "Check failed: no such directory")
}

func TestCheckModelQuit(t *testing.T) {
	m := InitCheckModel("/notes")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSummaryEmpty(t *testing.T) {
	r := &check.Result{}
	assert.True(t, strings.Contains(Summary(r), "No notes found"))
}
