package ast

import (
	"strings"

	"github.com/gerunddev/orgparse/internal/token"
)

// Chunk is a structural unit of body content.
type Chunk interface {
	Node
	chunk()
}

func (*Paragraph) chunk()      {}
func (*CommentLine) chunk()    {}
func (*HorizontalRule) chunk() {}
func (*Table) chunk()          {}
func (*Block) chunk()          {}
func (*List) chunk()           {}

// Paragraph is a run of inline content ended by a blank line or a
// structural construct.
type Paragraph struct {
	Span
	Inlines []Inline
}

// Text returns the paragraph as plain text without surrounding whitespace.
func (p *Paragraph) Text() string {
	return strings.TrimSpace(PlainText(p.Inlines))
}

// CommentLine is a "# ..." line.
type CommentLine struct {
	Span
	Text string
}

// HorizontalRule is a line of five or more dashes.
type HorizontalRule struct {
	Span
}

// Table is a run of consecutive table rows.
type Table struct {
	Span
	Rows []TableRow
}

// TableRow is one row; separator rows have no cells.
type TableRow struct {
	Cells     []string
	Separator bool
}

// Block is a #+BEGIN_X ... #+END_X block. Verbatim kinds keep their body in
// Raw; the others are parsed into Chunks.
type Block struct {
	Span
	Kind   token.BlockKind
	Name   string
	Params string
	Raw    string
	Chunks []Chunk
}

// List is a run of items at the same indentation level.
type List struct {
	Span
	Ordered bool
	Items   []*ListItem
}

// ListItem is one list entry. Chunks holds the first line as a paragraph
// followed by continuation paragraphs, blocks and nested lists.
type ListItem struct {
	Span
	Bullet      string
	Number      int
	Indent      int
	HasCheckbox bool
	Checkbox    token.CheckboxState
	// Term is the part before " :: " in a description item.
	Term   []Inline
	Chunks []Chunk
}

// Walk calls fn for every chunk in chunks, descending into blocks and list
// items. Returning false from fn skips the chunk's children.
func Walk(chunks []Chunk, fn func(Chunk) bool) {
	for _, c := range chunks {
		if !fn(c) {
			continue
		}
		switch c := c.(type) {
		case *Block:
			Walk(c.Chunks, fn)
		case *List:
			for _, item := range c.Items {
				Walk(item.Chunks, fn)
			}
		}
	}
}
