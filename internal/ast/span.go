// Package ast defines the document tree produced by the grammar.
//
// Every node embeds a Span: the contiguous run of tokens it was built from.
// Because tokens are contiguous and lossless, a span maps a node back to
// its exact source range.
package ast

import "github.com/gerunddev/orgparse/internal/token"

// Span is the token run a node was built from.
type Span struct {
	toks []token.Token
}

// NewSpan wraps toks. The slice is retained, not copied.
func NewSpan(toks []token.Token) Span {
	return Span{toks: toks}
}

// Tokens returns the tokens of the span.
func (s Span) Tokens() []token.Token { return s.toks }

// Range returns the half-open source byte range of the span.
func (s Span) Range() (start, end int) { return token.Range(s.toks) }

// Source returns the exact source text of the span.
func (s Span) Source() string { return token.Join(s.toks) }

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset int) bool {
	start, end := s.Range()
	return len(s.toks) > 0 && offset >= start && offset < end
}

// JoinSpans concatenates two adjacent spans.
func JoinSpans(a, b Span) Span {
	switch {
	case len(a.toks) == 0:
		return b
	case len(b.toks) == 0:
		return a
	}
	n := len(a.toks) + len(b.toks)
	if cap(a.toks) >= n && &a.toks[:n][len(a.toks)] == &b.toks[0] {
		return Span{toks: a.toks[:n]}
	}
	joined := make([]token.Token, 0, n)
	return Span{toks: append(append(joined, a.toks...), b.toks...)}
}

// Node is implemented by every tree node.
type Node interface {
	Tokens() []token.Token
	Range() (start, end int)
	Source() string
}
