package grammar

import (
	pc "github.com/gerunddev/orgparse/internal/combinator"

	"github.com/gerunddev/orgparse/internal/ast"
	"github.com/gerunddev/orgparse/internal/token"
)

var (
	inline    pc.Parser[ast.Inline]
	inlineRun pc.Parser[[]ast.Inline]
)

// Inlines parses a token run into inline elements. It never fails: tokens
// that start no inline construct become text.
func Inlines(ts []token.Token) []ast.Inline {
	if len(ts) == 0 {
		return nil
	}
	r, _ := inlineRun.Parse(ts, 0)
	return mergeText(r.Value)
}

func initInline() {
	self := pc.Lazy(func() pc.Parser[ast.Inline] { return inline })
	linkClose := pc.Kind(token.LinkClose)

	// spanBody is one or more inlines up to, not including, stop or the
	// end of an enclosing link title.
	spanBody := func(stop pc.Parser[token.Token]) pc.Parser[[]ast.Inline] {
		return pc.Many1(pc.Seq2(pc.Not(pc.OneOf(stop, linkClose)), self, second[none, ast.Inline]))
	}

	titledLink := node(pc.Seq3(
		pc.Kind(token.LinkOpen),
		pc.Many(pc.Seq2(pc.Not(linkClose), self, second[none, ast.Inline])),
		linkClose,
		func(open token.Token, title []ast.Inline, _ token.Token) ast.Link {
			return linkNode(open, title)
		}),
		func(l ast.Link, span ast.Span) ast.Inline {
			l.Span = span
			return &l
		})

	plainLink := node(pc.Kind(token.Link), func(t token.Token, span ast.Span) ast.Inline {
		l := linkNode(t, nil)
		l.Span = span
		return &l
	})

	markup := pc.Bind(pc.Match("opening marker", isOpener), func(open token.Token) pc.Parser[ast.Inline] {
		kind := open.Payload.(token.EmphasisInfo).Kind
		closer := pc.Match("closing "+kind.String()+" marker", func(t token.Token) bool {
			info, ok := t.Payload.(token.EmphasisInfo)
			return ok && t.Kind == open.Kind && info.Kind == kind && info.Close
		})
		return pc.Seq2(spanBody(closer), closer, func(in []ast.Inline, _ token.Token) ast.Inline {
			in = mergeText(in)
			if kind == token.Quote {
				return &ast.InlineQuote{Inlines: in}
			}
			return &ast.Emphasis{Kind: kind, Inlines: in}
		})
	})
	markupSpan := node(markup, func(in ast.Inline, span ast.Span) ast.Inline {
		switch n := in.(type) {
		case *ast.Emphasis:
			n.Span = span
		case *ast.InlineQuote:
			n.Span = span
		}
		return in
	})

	leaf := node(pc.Kind(token.Timestamp, token.TimestampRange, token.Citation, token.Footnote, token.Math),
		leafNode)

	text := node(pc.Any(), func(t token.Token, span ast.Span) ast.Inline {
		return &ast.Text{Span: span, Value: t.Text}
	})

	inline = pc.OneOf(titledLink, plainLink, leaf, markupSpan, text)
	inlineRun = pc.Many(inline)
}

func isOpener(t token.Token) bool {
	info, ok := t.Payload.(token.EmphasisInfo)
	return ok && t.Is(token.Emphasis, token.QuoteMark) && info.Open
}

func linkNode(t token.Token, title []ast.Inline) ast.Link {
	info, _ := t.Payload.(token.LinkInfo)
	return ast.Link{Raw: info.Raw, Type: info.Type, Target: info.Target, Title: mergeText(title)}
}

func leafNode(t token.Token, span ast.Span) ast.Inline {
	switch p := t.Payload.(type) {
	case token.Time:
		return &ast.Timestamp{Span: span, Time: p}
	case token.RangeInfo:
		return &ast.TimestampRange{Span: span, From: p.From, To: p.To}
	case token.CitationInfo:
		return &ast.Citation{Span: span, Style: p.Style, Keys: p.Keys}
	case token.FootnoteInfo:
		return &ast.Footnote{Span: span, Label: p.Label}
	case token.MathInfo:
		return &ast.Math{Span: span, Expr: p.Expr, Display: p.Display}
	}
	return &ast.Text{Span: span, Value: t.Text}
}

// mergeText folds adjacent text nodes into one.
func mergeText(in []ast.Inline) []ast.Inline {
	var out []ast.Inline
	for _, n := range in {
		t, ok := n.(*ast.Text)
		if !ok || len(out) == 0 {
			out = append(out, n)
			continue
		}
		prev, ok := out[len(out)-1].(*ast.Text)
		if !ok {
			out = append(out, n)
			continue
		}
		out[len(out)-1] = &ast.Text{Span: ast.JoinSpans(prev.Span, t.Span), Value: prev.Value + t.Value}
	}
	return out
}
