// Package diff renders unified diffs between an org source and the text
// reconstructed from its tokens or its document tree.
package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/orgparse/internal/parser"
	"github.com/gerunddev/orgparse/internal/token"
)

// Format represents the output format for diffs
type Format int

const (
	// FormatRendered renders the diff through glamour (default)
	FormatRendered Format = iota
	// FormatPlain returns the unified diff text as is
	FormatPlain
)

// Unified returns the unified diff from before to after, or "" when they
// are equal.
func Unified(beforeName, afterName, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(beforeName), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(beforeName, afterName, before, edits))
}

// Render formats a unified diff for the terminal
func Render(unified string, format Format) (string, error) {
	switch format {
	case FormatPlain:
		return unified, nil
	case FormatRendered:
	default:
		return "", fmt.Errorf("unsupported diff format: %d", format)
	}

	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		// Fallback to plain diff if glamour fails
		return diffMarkdown, nil
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown, nil
	}
	return rendered, nil
}

// Report is the outcome of a round trip through the lexer and the parser
type Report struct {
	Name string
	// Tokens is the diff between the source and the joined token texts.
	Tokens string
	// Document is the diff between the source and the parsed document's
	// source text. Empty when the document did not parse.
	Document string
	ParseErr error
}

// OK reports whether both reconstructions matched the source.
func (r *Report) OK() bool {
	return r.Tokens == "" && r.Document == ""
}

// RoundTrip checks that content survives tokenizing and parsing unchanged.
func RoundTrip(name, content string) *Report {
	r := &Report{Name: name}

	joined := token.Join(parser.Tokens(content))
	r.Tokens = Unified(name, name+" (tokens)", content, joined)

	doc, err := parser.ParseOrg(content)
	if err != nil {
		r.ParseErr = err
	}
	if doc != nil && !doc.Partial {
		r.Document = Unified(name, name+" (document)", content, doc.Source())
	}
	return r
}

// String renders the report in plain text.
func (r *Report) String() string {
	var b strings.Builder
	if r.OK() {
		fmt.Fprintf(&b, "%s: round trip ok\n", r.Name)
	} else {
		fmt.Fprintf(&b, "%s: round trip mismatch\n", r.Name)
		b.WriteString(r.Tokens)
		b.WriteString(r.Document)
	}
	if r.ParseErr != nil {
		fmt.Fprintf(&b, "%s: %v\n", r.Name, r.ParseErr)
	}
	return b.String()
}
