package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/orgparse/internal/token"
)

// Monokai Pro color palette
const (
	// Base colors
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"

	// Accent colors
	Red     = "#FF6188" // Errors, danger
	Orange  = "#FC9867" // Warnings
	Yellow  = "#FFD866" // Highlights
	Green   = "#A9DC76" // Success
	Cyan    = "#78DCE8" // Info
	Blue    = "#AB9DF2" // Links
	Magenta = "#FF6188" // Titles, emphasis

	// UI colors
	Comment = "#727072" // Dim text, help
	Border  = "#5B595C" // Borders, separators
)

// Common styles
var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	SpinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Magenta))
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	InfoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan))
	LinkStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Blue)).Underline(true)

	// Outline tree
	TreeStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color(Border))
)

// KindStyle returns the style used to print tokens of kind k.
func KindStyle(k token.Kind) lipgloss.Style {
	switch k {
	case token.Error:
		return ErrorStyle
	case token.SOF, token.EOF, token.Space, token.LineBreak:
		return DimStyle
	case token.HeadingStars, token.TodoKeyword, token.Priority, token.TagString:
		return TitleStyle
	case token.Planning, token.Timestamp, token.TimestampRange:
		return InfoStyle
	case token.PropertiesStart, token.PropertyKey, token.PropertiesEnd,
		token.FileKeyword, token.Keyword, token.BlockBegin, token.BlockEnd:
		return WarningStyle
	case token.Comment:
		return HelpStyle
	case token.Link, token.LinkOpen, token.LinkClose, token.Citation, token.Footnote:
		return LinkStyle
	case token.Emphasis, token.QuoteMark, token.Math:
		return HighlightStyle
	case token.ListMarker, token.Checkbox, token.DescriptionSep, token.TableRow, token.HorizontalRule:
		return SuccessStyle
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground))
	}
}
