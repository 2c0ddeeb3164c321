// Package grammar builds the document tree from lexer tokens.
//
// Every rule is composed from the combinator package. Rules that refer to
// each other (chunks contain blocks and lists, which contain chunks) are
// wired in init or deferred through Bind and Lazy.
package grammar

import (
	"errors"
	"fmt"

	pc "github.com/gerunddev/orgparse/internal/combinator"

	"github.com/gerunddev/orgparse/internal/ast"
	"github.com/gerunddev/orgparse/internal/token"
)

// ErrIncomplete is returned when the document rule stops before EOF, which
// happens when the lexer aborted after repeated errors.
var ErrIncomplete = errors.New("document not fully parsed")

type (
	toks = []token.Token
	none = struct{}
)

var (
	space      = pc.Kind(token.Space)
	indent     = pc.Many(space)
	lineBreak  = pc.Kind(token.LineBreak)
	eof        = pc.Kind(token.EOF)
	blankBreak = pc.Match("blank line", token.IsBlank)

	// lineEnd consumes a line break or stands before EOF.
	lineEnd = pc.OneOf(pc.Skip(lineBreak), pc.Skip(pc.Peek(eof)))

	// blankLine is a whitespace-only line, or trailing whitespace at EOF.
	blankLine = pc.Seq2(indent, pc.OneOf(pc.Skip(blankBreak), pc.Skip(pc.Peek(eof))), second[toks, none])
)

func isLineEnd(t token.Token) bool { return t.Is(token.LineBreak, token.EOF) }

func first[A, B any](a A, _ B) A  { return a }
func second[A, B any](_ A, b B) B { return b }

// node runs p and hands its value and consumed tokens to build.
func node[T, N any](p pc.Parser[T], build func(T, ast.Span) N) pc.Parser[N] {
	return pc.Map(pc.WithSpan(p), func(s pc.Spanned[T]) N {
		return build(s.Value, ast.NewSpan(s.Tokens))
	})
}

// ahead looks past indentation for a token accepted by pred without
// consuming anything.
func ahead(what string, pred func(token.Token) bool) pc.Parser[none] {
	return pc.Skip(pc.Peek(pc.Seq2(indent, pc.Match(what, pred), second[toks, token.Token])))
}

// either combines two lookaheads; b may be nil.
func either(a, b pc.Parser[none]) pc.Parser[none] {
	if b == nil {
		return a
	}
	return pc.OneOf(a, b)
}

func optionTokens(o pc.Option[toks]) toks {
	v, _ := o.Get()
	return v
}

// trimSpace drops Space and LineBreak tokens from both ends of ts.
func trimSpace(ts toks) toks {
	for len(ts) > 0 && ts[0].Is(token.Space, token.LineBreak) {
		ts = ts[1:]
	}
	for len(ts) > 0 && ts[len(ts)-1].Is(token.Space, token.LineBreak) {
		ts = ts[:len(ts)-1]
	}
	return ts
}

// Parse parses a full token list as produced by the lexer.
func Parse(ts []token.Token) (*ast.Document, error) {
	r, err := document.Parse(ts, 0)
	if err != nil {
		return nil, err
	}
	if r.Next != len(ts) {
		return nil, fmt.Errorf("%w: stopped at token %d of %d", ErrIncomplete, r.Next, len(ts))
	}
	return r.Value, nil
}

// ParseHead parses only the preamble and preface. It is the fallback when
// Parse fails.
func ParseHead(ts []token.Token) (*ast.Document, error) {
	r, err := head.Parse(ts, 0)
	if err != nil {
		return nil, err
	}
	return r.Value, nil
}

// Document returns the rule for a whole token list, SOF through EOF.
func Document() pc.Parser[*ast.Document] { return document }

// Chunk returns the body chunk alternation.
func Chunk() pc.Parser[ast.Chunk] { return chunkRule }

// Heading returns the headline rule.
func Heading() pc.Parser[*ast.Heading] { return heading }

// Properties returns the property drawer rule.
func Properties() pc.Parser[ast.Properties] { return propertyDrawer }

// Preamble returns the preamble rule.
func Preamble() pc.Parser[*ast.Preamble] { return preamble }

var (
	document  pc.Parser[*ast.Document]
	head      pc.Parser[*ast.Document]
	chunkRule pc.Parser[ast.Chunk]
	body      pc.Parser[[]ast.Chunk]
)

func init() {
	initInline()
	initChunks()

	chunkRule = chunk(nil)
	body = content(nil)

	document = node(pc.Seq5(
		pc.Kind(token.SOF),
		preamble,
		body,
		pc.Many(section(0)),
		eof,
		func(_ token.Token, pre *ast.Preamble, preface []ast.Chunk, sections []*ast.Section, _ token.Token) *ast.Document {
			return &ast.Document{Preamble: pre, Preface: preface, Sections: sections}
		}),
		func(d *ast.Document, span ast.Span) *ast.Document {
			d.Span = span
			return d
		})

	head = node(pc.Seq3(
		pc.Kind(token.SOF),
		preamble,
		body,
		func(_ token.Token, pre *ast.Preamble, preface []ast.Chunk) *ast.Document {
			return &ast.Document{Preamble: pre, Preface: preface, Partial: true}
		}),
		func(d *ast.Document, span ast.Span) *ast.Document {
			d.Span = span
			return d
		})
}
