// Package token defines the lexical vocabulary shared by the lexer and the
// grammar: token kinds, their typed payloads, and source positions.
package token

import (
	"fmt"
	"strings"
)

// Kind classifies a token.
type Kind uint8

const (
	// Markers
	SOF Kind = iota
	EOF
	Error

	// Whitespace
	Text
	Space
	LineBreak

	// Headlines
	HeadingStars
	TodoKeyword
	Priority
	TagString
	Planning

	// Drawers
	PropertiesStart
	PropertyKey
	PropertyValue
	PropertiesEnd

	// Line constructs
	Comment
	FileKeyword
	Keyword
	BlockBegin
	BlockEnd
	RawLine
	HorizontalRule
	TableRow
	ListMarker
	Checkbox
	DescriptionSep

	// Inline constructs
	Emphasis
	QuoteMark
	Link
	LinkOpen
	LinkClose
	Citation
	Footnote
	Math
	Timestamp
	TimestampRange
)

var kindNames = map[Kind]string{
	SOF:             "SOF",
	EOF:             "EOF",
	Error:           "ERROR",
	Text:            "TEXT",
	Space:           "SPACE",
	LineBreak:       "LINE_BREAK",
	HeadingStars:    "HEADING_STARS",
	TodoKeyword:     "TODO",
	Priority:        "PRIORITY",
	TagString:       "TAGS",
	Planning:        "PLANNING",
	PropertiesStart: "PROPERTIES_START",
	PropertyKey:     "PROPERTY_KEY",
	PropertyValue:   "PROPERTY_VALUE",
	PropertiesEnd:   "PROPERTIES_END",
	Comment:         "COMMENT",
	FileKeyword:     "FILE_KEYWORD",
	Keyword:         "KEYWORD",
	BlockBegin:      "BLOCK_BEGIN",
	BlockEnd:        "BLOCK_END",
	RawLine:         "RAW_LINE",
	HorizontalRule:  "HRULE",
	TableRow:        "TABLE_ROW",
	ListMarker:      "LIST_MARKER",
	Checkbox:        "CHECKBOX",
	DescriptionSep:  "DESCRIPTION_SEP",
	Emphasis:        "EMPHASIS",
	QuoteMark:       "QUOTE",
	Link:            "LINK",
	LinkOpen:        "LINK_OPEN",
	LinkClose:       "LINK_CLOSE",
	Citation:        "CITATION",
	Footnote:        "FOOTNOTE",
	Math:            "MATH",
	Timestamp:       "TIMESTAMP",
	TimestampRange:  "TIMESTAMP_RANGE",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Token is one lexical unit. Text is the exact source substring covered by
// the half-open range [Start, End). Payload is nil for kinds that carry no
// data beyond their text.
type Token struct {
	Kind    Kind
	Text    string
	Start   int
	End     int
	Payload Payload
}

// Is reports whether the token has one of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsMarker reports whether the token is a start or end of file marker.
func (t Token) IsMarker() bool {
	return t.Kind == SOF || t.Kind == EOF
}

// Len returns the number of source bytes the token covers.
func (t Token) Len() int { return t.End - t.Start }

func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d] %q", t.Kind, t.Start, t.End, t.Text)
}

// Join concatenates the texts of all non-marker tokens. For a complete
// lexer run it reproduces the input exactly.
func Join(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		if t.IsMarker() {
			continue
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

// Range returns the source range covered by a contiguous token slice.
func Range(toks []Token) (start, end int) {
	if len(toks) == 0 {
		return 0, 0
	}
	return toks[0].Start, toks[len(toks)-1].End
}

// Diagnostics collects the diagnostics carried by Error tokens.
func Diagnostics(toks []Token) []Diagnostic {
	var out []Diagnostic
	for _, t := range toks {
		if d, ok := t.Payload.(Diagnostic); ok && t.Kind == Error {
			out = append(out, d)
		}
	}
	return out
}

// Diagnostic describes malformed input found by the lexer.
type Diagnostic struct {
	Construct string
	Line      int
	Offset    int
	Message   string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s at line %d (offset %d): %s", d.Construct, d.Line, d.Offset, d.Message)
}
