package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/orgparse/internal/ast"
	"github.com/gerunddev/orgparse/internal/styles"
)

// outlineModel browses the sections of a parsed document
type outlineModel struct {
	table       table.Model
	viewport    viewport.Model
	name        string
	doc         *ast.Document
	sections    []*ast.Section
	showingBody bool
	selected    *ast.Section
}

// InitOutlineModel creates a section browser for doc
func InitOutlineModel(name string, doc *ast.Document) outlineModel {
	columns := []table.Column{
		{Title: "Heading", Width: 50},
		{Title: "State", Width: 8},
		{Title: "Tags", Width: 20},
		{Title: "Chunks", Width: 8},
	}

	sections := doc.Outline()
	rows := make([]table.Row, 0, len(sections))
	for _, sec := range sections {
		rows = append(rows, outlineRow(sec))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(styles.Background)).
		Background(lipgloss.Color(styles.Yellow)).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		Padding(1)

	return outlineModel{
		table:    t,
		viewport: vp,
		name:     name,
		doc:      doc,
		sections: sections,
	}
}

func outlineRow(sec *ast.Section) table.Row {
	h := sec.Heading
	title := strings.Repeat("  ", h.Depth-1) + h.TitleText()
	state := h.Todo
	if h.Priority != "" {
		state = strings.TrimSpace(state + " #" + h.Priority)
	}
	tags := ""
	if len(h.Tags) > 0 {
		tags = ":" + strings.Join(h.Tags, ":") + ":"
	}
	return table.Row{title, state, tags, fmt.Sprint(len(sec.Chunks))}
}

func (m outlineModel) Init() tea.Cmd {
	return nil
}

func (m outlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6

	case tea.KeyMsg:
		if m.showingBody {
			switch msg.String() {
			case "q", "esc":
				m.showingBody = false
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.sections) {
				m.selected = m.sections[idx]
				m.showingBody = true
				m.viewport.SetContent(m.selected.Source())
				m.viewport.GotoTop()
			}
			return m, nil
		}
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m outlineModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.doc.Title()))
	b.WriteString(styles.DimStyle.Render("  " + m.name))
	b.WriteString("\n\n")

	if m.showingBody && m.selected != nil {
		b.WriteString(styles.HighlightStyle.Render(m.selected.Heading.TitleText()))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("Sections: %d", len(m.sections))))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • enter show • q quit"))
	b.WriteString("\n")

	return b.String()
}

// Browse runs the section browser for doc until the user quits
func Browse(name string, doc *ast.Document, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(InitOutlineModel(name, doc), append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	_, err := p.Run()
	return err
}
