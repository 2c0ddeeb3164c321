package ast

import (
	"strings"

	"github.com/gerunddev/orgparse/internal/token"
)

// UntitledTitle is used when a document has no #+TITLE keyword.
const UntitledTitle = "Untitled"

// Document is the root of a parsed file.
type Document struct {
	Span
	Preamble *Preamble
	Preface  []Chunk
	Sections []*Section

	// Diagnostics are the lexer errors found in the input.
	Diagnostics []token.Diagnostic
	// Partial is set when only the preamble and preface could be parsed.
	Partial bool
}

// Title returns the preamble title, or UntitledTitle.
func (d *Document) Title() string {
	if d.Preamble == nil {
		return UntitledTitle
	}
	return d.Preamble.Title
}

// Outline returns every section in document order, parents before their
// children.
func (d *Document) Outline() []*Section {
	var out []*Section
	var walk func([]*Section)
	walk = func(ss []*Section) {
		for _, s := range ss {
			out = append(out, s)
			walk(s.Children)
		}
	}
	walk(d.Sections)
	return out
}

// SectionAt returns the innermost section whose source range contains
// offset, or nil when offset is before the first heading.
func (d *Document) SectionAt(offset int) *Section {
	var found *Section
	ss := d.Sections
	for {
		var next *Section
		for _, s := range ss {
			if s.Contains(offset) {
				next = s
				break
			}
		}
		if next == nil {
			return found
		}
		found = next
		ss = next.Children
	}
}

// Preamble holds the file-level keywords and properties before any content.
type Preamble struct {
	Span
	Properties Properties

	// Title is the plain text of #+TITLE, or UntitledTitle when absent.
	Title     string
	TitleLine []Inline
	HasTitle  bool

	Tags []string
	// Keywords maps upper-cased keyword names to their trimmed values.
	Keywords map[string]string
	Pile     PileOptions
}

// Keyword returns the value of a file keyword.
func (p *Preamble) Keyword(name string) (string, bool) {
	v, ok := p.Keywords[strings.ToUpper(name)]
	return v, ok
}

// PileOptions are the options of the #+PILE keyword.
type PileOptions struct {
	Pinned bool
	// Options holds every key:value pair as written.
	Options map[string]string
}

// Property is one drawer entry.
type Property struct {
	Key   string
	Value string
}

// Properties is a property drawer in source order.
type Properties []Property

// Get returns the value for key, compared case-insensitively. When a key
// repeats, the last value wins.
func (p Properties) Get(key string) (string, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if strings.EqualFold(p[i].Key, key) {
			return p[i].Value, true
		}
	}
	return "", false
}

// Map returns the properties keyed by name.
func (p Properties) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, prop := range p {
		m[prop.Key] = prop.Value
	}
	return m
}

// Section is a heading with the content up to the next heading of the same
// or lower depth.
type Section struct {
	Span
	Heading  *Heading
	Chunks   []Chunk
	Children []*Section
}

// Depth is the number of heading stars.
func (s *Section) Depth() int { return s.Heading.Depth }

// Heading is a headline with its planning line and property drawer.
type Heading struct {
	Span
	Depth      int
	Todo       string
	Done       bool
	Priority   string
	Title      []Inline
	Tags       []string
	Planning   []Planning
	Properties Properties
}

// TitleText returns the headline title as plain text.
func (h *Heading) TitleText() string {
	return strings.TrimSpace(PlainText(h.Title))
}

// Planning is one SCHEDULED, DEADLINE or CLOSED entry.
type Planning struct {
	Kind token.PlanningKind
	Time token.Time
	// End is set when the planning timestamp is a range.
	End    token.Time
	HasEnd bool
}
