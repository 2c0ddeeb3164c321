package ast

import (
	"strings"

	"github.com/gerunddev/orgparse/internal/token"
)

// Inline is a leaf-level element of a paragraph or title.
type Inline interface {
	Node
	inline()
}

func (*Text) inline()           {}
func (*Emphasis) inline()       {}
func (*InlineQuote) inline()    {}
func (*Link) inline()           {}
func (*Timestamp) inline()      {}
func (*TimestampRange) inline() {}
func (*Citation) inline()       {}
func (*Footnote) inline()       {}
func (*Math) inline()           {}

// Text is plain text, including whitespace and line breaks.
type Text struct {
	Span
	Value string
}

// Emphasis is a marked-up span such as *bold* or ~code~.
type Emphasis struct {
	Span
	Kind    token.EmphasisKind
	Inlines []Inline
}

// InlineQuote is a "quoted" span.
type InlineQuote struct {
	Span
	Inlines []Inline
}

// Link is [[target]] or [[target][title]].
type Link struct {
	Span
	Raw    string
	Type   string
	Target string
	Title  []Inline
}

// Timestamp is a single active or inactive timestamp.
type Timestamp struct {
	Span
	Time token.Time
}

// TimestampRange is ts--ts.
type TimestampRange struct {
	Span
	From token.Time
	To   token.Time
}

// Citation is [cite:@key].
type Citation struct {
	Span
	Style string
	Keys  []string
}

// Footnote is a [fn:label] reference.
type Footnote struct {
	Span
	Label string
}

// Math is inline or display LaTeX math.
type Math struct {
	Span
	Expr    string
	Display bool
}

// PlainText renders inlines as text, dropping markup. Link titles replace
// their targets.
func PlainText(inlines []Inline) string {
	var b strings.Builder
	writePlain(&b, inlines)
	return b.String()
}

func writePlain(b *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch n := in.(type) {
		case *Text:
			b.WriteString(n.Value)
		case *Emphasis:
			writePlain(b, n.Inlines)
		case *InlineQuote:
			b.WriteByte('"')
			writePlain(b, n.Inlines)
			b.WriteByte('"')
		case *Link:
			if len(n.Title) > 0 {
				writePlain(b, n.Title)
			} else {
				b.WriteString(n.Target)
			}
		case *Timestamp:
			b.WriteString(n.Time.String())
		case *TimestampRange:
			b.WriteString(n.From.String() + "--" + n.To.String())
		case *Math:
			b.WriteString(n.Expr)
		case *Citation:
			b.WriteString(n.Source())
		case *Footnote:
			b.WriteString(n.Source())
		}
	}
}
