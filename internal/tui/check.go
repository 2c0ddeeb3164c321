package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/gerunddev/orgparse/internal/check"
	"github.com/gerunddev/orgparse/internal/styles"
)

// ErrInterrupted is returned when the user quits before the check finishes.
var ErrInterrupted = errors.New("check interrupted")

// checkModel is the Bubble Tea model for the check progress display
type checkModel struct {
	spinner  spinner.Model
	dir      string
	done     int
	total    int
	complete bool
	result   *check.Result
	err      error
}

// ProgressMsg reports how many files have been checked so far
type ProgressMsg struct {
	Done  int
	Total int
}

// CheckMsg is sent when the check completes
type CheckMsg struct {
	Result *check.Result
	Err    error
}

// InitCheckModel creates a new check progress model
func InitCheckModel(dir string) checkModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return checkModel{
		spinner: s,
		dir:     dir,
	}
}

func (m checkModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m checkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case ProgressMsg:
		m.done = msg.Done
		m.total = msg.Total
		return m, nil

	case CheckMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m checkModel) View() string {
	if !m.complete {
		status := "Scanning " + m.dir + "..."
		if m.total > 0 {
			status = fmt.Sprintf("Parsing %d/%d files...", m.done, m.total)
		}
		return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), status)
	}

	if m.err != nil && m.result == nil {
		return styles.ErrorStyle.Render("✗ Check failed: "+m.err.Error()) + "\n"
	}
	return Summary(m.result)
}

// Summary renders a finished check for the terminal.
func Summary(r *check.Result) string {
	took := styles.HelpStyle.Render(fmt.Sprintf("Completed in %v", r.EndTime.Sub(r.StartTime).Round(time.Millisecond)))

	if len(r.Files) == 0 {
		return styles.SuccessStyle.Render("✓ No notes found") + "\n" + took + "\n"
	}

	failed := r.Failed()
	diags := r.WithDiagnostics()

	msg := styles.SuccessStyle.Render(fmt.Sprintf("✓ Parsed %s file(s) (%s)",
		humanize.Comma(int64(len(r.Files)-len(failed))), humanize.IBytes(uint64(r.Bytes()))))
	if len(diags) > 0 {
		msg += ", " + styles.WarningStyle.Render(fmt.Sprintf("%d with diagnostics", len(diags)))
	}
	if len(failed) > 0 {
		msg += ", " + styles.ErrorStyle.Render(fmt.Sprintf("%d failed", len(failed)))
	}
	msg += "\n"

	for _, f := range failed {
		msg += styles.ErrorStyle.Render("  ✗ "+f.Path) + styles.DimStyle.Render(": "+f.Err.Error()) + "\n"
	}
	for _, f := range diags {
		for _, d := range f.Diagnostics {
			msg += styles.WarningStyle.Render(fmt.Sprintf("  ! %s:%d", f.Path, d.Line)) +
				styles.DimStyle.Render(" "+d.Message) + "\n"
		}
	}

	return msg + took + "\n"
}

// RunCheck runs c over dir behind a spinner and returns the finished result.
func RunCheck(ctx context.Context, c *check.Checker, dir string, in io.Reader, out io.Writer) (*check.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := InitCheckModel(dir)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))

	c.Progress = func(done, total int) {
		p.Send(ProgressMsg{Done: done, Total: total})
	}

	go func() {
		result, err := c.Run(ctx, dir)
		p.Send(CheckMsg{Result: result, Err: err})
	}()

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return nil, err
	}

	fm, ok := final.(checkModel)
	if !ok || !fm.complete {
		return nil, ErrInterrupted
	}
	return fm.result, fm.err
}
