package grammar

import (
	pc "github.com/gerunddev/orgparse/internal/combinator"

	"github.com/gerunddev/orgparse/internal/ast"
	"github.com/gerunddev/orgparse/internal/token"
)

func listInfo(t token.Token) (token.ListInfo, bool) {
	info, ok := t.Payload.(token.ListInfo)
	return info, ok && t.Kind == token.ListMarker
}

// list starts a list at whatever level its first marker sits.
func list(ordered bool) pc.Parser[ast.Chunk] {
	firstMarker := pc.Peek(pc.Seq2(indent, pc.Match("list marker", func(t token.Token) bool {
		info, ok := listInfo(t)
		return ok && info.Ordered == ordered
	}), second[toks, token.Token]))

	return pc.Bind(firstMarker, func(m token.Token) pc.Parser[ast.Chunk] {
		info, _ := listInfo(m)
		return listAt(info.Level(), ordered)
	})
}

// listAt is one or more items whose markers sit at level, optionally
// separated by blank lines.
func listAt(level int, ordered bool) pc.Parser[ast.Chunk] {
	item := listItem(level, ordered)
	more := pc.Many(pc.Seq2(pc.Many(blankLine), item, second[[]none, *ast.ListItem]))
	items := pc.Seq2(item, more, func(a *ast.ListItem, rest []*ast.ListItem) []*ast.ListItem {
		return append([]*ast.ListItem{a}, rest...)
	})
	return node(items, func(items []*ast.ListItem, span ast.Span) ast.Chunk {
		return &ast.List{Span: span, Ordered: ordered, Items: items}
	})
}

func listItem(level int, ordered bool) pc.Parser[*ast.ListItem] {
	marker := pc.Seq2(indent, pc.Match("list marker", func(t token.Token) bool {
		info, ok := listInfo(t)
		return ok && info.Ordered == ordered && info.Level() == level
	}), second[toks, token.Token])
	checkbox := pc.Seq2(pc.Kind(token.Checkbox), indent, first[token.Token, toks])
	firstLine := pc.WithSpan(pc.Seq2(pc.Maybe(pc.Until(isLineEnd)), lineEnd, first[pc.Option[toks], none]))

	return node(pc.Seq5(marker, pc.Maybe(space), pc.Maybe(checkbox), firstLine, pc.Many(continuation(level)),
		func(m token.Token, _ pc.Option[token.Token], box pc.Option[token.Token], line pc.Spanned[pc.Option[toks]], more []ast.Chunk) *ast.ListItem {
			info, _ := listInfo(m)
			item := &ast.ListItem{
				Bullet: info.Bullet,
				Number: info.Number,
				Indent: info.Indent,
			}
			if t, ok := box.Get(); ok {
				cb, _ := t.Payload.(token.CheckboxInfo)
				item.HasCheckbox = true
				item.Checkbox = cb.State
			}

			para := line.Tokens
			for i, t := range optionTokens(line.Value) {
				if t.Kind == token.DescriptionSep {
					item.Term = Inlines(trimSpace(para[:i]))
					para = para[i+1:]
					break
				}
			}
			if len(trimSpace(para)) > 0 {
				item.Chunks = append(item.Chunks, &ast.Paragraph{Span: ast.NewSpan(para), Inlines: Inlines(para)})
			}
			item.Chunks = append(item.Chunks, more...)
			return item
		}),
		func(item *ast.ListItem, span ast.Span) *ast.ListItem {
			item.Span = span
			return item
		})
}

// continuation is content that stays inside an item at level: a nested
// list, a block or table, or a paragraph whose lines are indented by at
// least (level+1)*2 columns. Blank lines may come first.
func continuation(level int) pc.Parser[ast.Chunk] {
	n := (level + 1) * 2
	nested := pc.Bind(pc.Peek(pc.Seq2(indent, pc.Kind(token.ListMarker), second[toks, token.Token])),
		func(m token.Token) pc.Parser[ast.Chunk] {
			info, _ := listInfo(m)
			if info.Level() <= level {
				return pc.Fail[ast.Chunk]("list marker is not nested")
			}
			return listAt(info.Level(), info.Ordered)
		})

	alts := []pc.Parser[ast.Chunk]{nested}
	alts = append(alts, blocks...)
	alts = append(alts, table, horizontalRule, indentedParagraph(n))

	return pc.Seq3(pc.Many(blankLine), pc.Peek(indentAtLeast(n)), pc.OneOf(alts...),
		func(_ []none, _ none, c ast.Chunk) ast.Chunk { return c })
}

// indentAtLeast matches n or more indentation columns followed by content.
func indentAtLeast(n int) pc.Parser[none] {
	return pc.Bind(indent, func(sp toks) pc.Parser[none] {
		if len(sp) < n {
			return pc.Fail[none]("line is not indented enough")
		}
		return pc.Not(pc.Kind(token.LineBreak, token.EOF))
	})
}

func isLineConstruct(t token.Token) bool {
	return t.Is(token.ListMarker, token.BlockBegin, token.BlockEnd, token.HeadingStars,
		token.TableRow, token.HorizontalRule)
}

// indentedParagraph is one or more consecutive lines indented by at least
// n columns.
func indentedParagraph(n int) pc.Parser[ast.Chunk] {
	line := pc.Seq4(
		pc.Peek(indentAtLeast(n)),
		pc.Not(ahead("line construct", isLineConstruct)),
		pc.Until(isLineEnd),
		lineEnd,
		func(none, none, toks, none) none { return none{} })

	return node(pc.Many1(line), func(_ []none, span ast.Span) ast.Chunk {
		return &ast.Paragraph{Span: span, Inlines: Inlines(span.Tokens())}
	})
}
