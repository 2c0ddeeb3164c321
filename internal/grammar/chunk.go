package grammar

import (
	"strings"

	pc "github.com/gerunddev/orgparse/internal/combinator"

	"github.com/gerunddev/orgparse/internal/ast"
	"github.com/gerunddev/orgparse/internal/token"
)

var (
	horizontalRule = node(pc.Seq4(indent, pc.Kind(token.HorizontalRule), indent, lineEnd,
		func(toks, token.Token, toks, none) none { return none{} }),
		func(_ none, span ast.Span) ast.Chunk { return &ast.HorizontalRule{Span: span} })

	commentLine = node(pc.Seq3(indent, pc.Kind(token.Comment), lineEnd, func(_ toks, t token.Token, _ none) string {
		return strings.TrimSpace(strings.TrimPrefix(t.Text, "#"))
	}),
		func(text string, span ast.Span) ast.Chunk { return &ast.CommentLine{Span: span, Text: text} })

	table = node(pc.Many1(pc.Seq3(indent, pc.Kind(token.TableRow), lineEnd, func(_ toks, t token.Token, _ none) ast.TableRow {
		info, _ := t.Payload.(token.TableInfo)
		return ast.TableRow{Cells: info.Cells, Separator: info.Separator}
	})),
		func(rows []ast.TableRow, span ast.Span) ast.Chunk { return &ast.Table{Span: span, Rows: rows} })

	// paragraphStart ends a paragraph before its first token.
	paragraphStart = ahead("paragraph start", func(t token.Token) bool {
		return t.Is(token.EOF, token.HeadingStars) || token.IsBlank(t)
	})
	// paragraphEnd ends a paragraph after it has begun. The blank line
	// break itself is left out of the paragraph.
	paragraphEnd = ahead("paragraph end", func(t token.Token) bool {
		return t.Is(token.EOF, token.HeadingStars, token.ListMarker, token.BlockBegin, token.BlockEnd) ||
			token.IsBlank(t)
	})
)

// blockOrder is the order in which block kinds are tried inside the chunk
// alternation.
var blockOrder = [][]token.BlockKind{
	{token.BlockSource},
	{token.BlockExample},
	{token.BlockQuote},
	{token.BlockVerse},
	{token.BlockPageIntro},
	{token.BlockEdits},
	{token.BlockAside},
	{token.BlockCenter},
	{token.BlockComment},
	{token.BlockHTML},
	{token.BlockLaTeX},
	{token.BlockVideo},
	{token.BlockGeneric, token.BlockCustom},
}

var (
	blocks        []pc.Parser[ast.Chunk]
	unorderedList pc.Parser[ast.Chunk]
	orderedList   pc.Parser[ast.Chunk]
)

func initChunks() {
	for _, kinds := range blockOrder {
		blocks = append(blocks, block(kinds...))
	}
	unorderedList = list(false)
	orderedList = list(true)
}

// chunk is the body alternation. stop, when set, is the enclosing
// container's end and bounds paragraphs.
func chunk(stop pc.Parser[none]) pc.Parser[ast.Chunk] {
	alts := []pc.Parser[ast.Chunk]{horizontalRule, commentLine, table}
	alts = append(alts, blocks...)
	alts = append(alts, unorderedList, orderedList, paragraph(stop))
	return pc.OneOf(alts...)
}

// content is zero or more chunks separated by blank lines, up to stop.
func content(stop pc.Parser[none]) pc.Parser[[]ast.Chunk] {
	blank := pc.Map(blankLine, func(none) ast.Chunk { return nil })
	item := pc.OneOf(blank, chunk(stop))
	if stop != nil {
		item = pc.Seq2(pc.Not(stop), item, second[none, ast.Chunk])
	}
	return pc.Map(pc.Many(item), func(cs []ast.Chunk) []ast.Chunk {
		out := cs[:0]
		for _, c := range cs {
			if c != nil {
				out = append(out, c)
			}
		}
		return out
	})
}

// paragraph accepts any first token that does not start a blank line,
// heading or EOF, then runs to the next stopping construct.
func paragraph(stop pc.Parser[none]) pc.Parser[ast.Chunk] {
	firstTok := pc.Seq2(pc.Not(either(paragraphStart, stop)), pc.Any(), second[none, token.Token])
	nextTok := pc.Seq2(pc.Not(either(paragraphEnd, stop)), pc.Any(), second[none, token.Token])
	return node(pc.Seq2(firstTok, pc.Many(nextTok), func(token.Token, toks) none { return none{} }),
		func(_ none, span ast.Span) ast.Chunk {
			return &ast.Paragraph{Span: span, Inlines: Inlines(span.Tokens())}
		})
}

// block parses a #+BEGIN_X ... #+END_X pair of one of kinds.
func block(kinds ...token.BlockKind) pc.Parser[ast.Chunk] {
	begin := pc.Seq2(indent, pc.Match("block begin", func(t token.Token) bool {
		info, ok := t.Payload.(token.BlockInfo)
		if !ok || t.Kind != token.BlockBegin {
			return false
		}
		for _, k := range kinds {
			if info.Kind == k {
				return true
			}
		}
		return false
	}), second[toks, token.Token])

	return node(pc.Bind(begin, blockBody), func(b *ast.Block, span ast.Span) ast.Chunk {
		b.Span = span
		return b
	})
}

func blockBody(begin token.Token) pc.Parser[*ast.Block] {
	info := begin.Payload.(token.BlockInfo)
	isEnd := func(t token.Token) bool {
		e, ok := t.Payload.(token.BlockInfo)
		return ok && t.Kind == token.BlockEnd && info.Matches(e)
	}
	endTok := pc.Match("end of "+info.Kind.String()+" block", isEnd)
	end := pc.Seq4(indent, endTok, indent, lineEnd, func(toks, token.Token, toks, none) none { return none{} })
	b := &ast.Block{Kind: info.Kind, Name: info.Name, Params: info.Params}

	if info.Kind.Raw() {
		raw := pc.Maybe(pc.Until(func(t token.Token) bool { return isEnd(t) || t.Kind == token.EOF }))
		return pc.Seq2(raw, end, func(body pc.Option[toks], _ none) *ast.Block {
			b.Raw = rawText(optionTokens(body))
			return b
		})
	}

	stop := pc.Skip(pc.Peek(pc.Seq2(indent, endTok, second[toks, token.Token])))
	return pc.Seq4(indent, lineEnd, content(stop), end, func(_ toks, _ none, chunks []ast.Chunk, _ none) *ast.Block {
		b.Chunks = chunks
		return b
	})
}

// rawText is the body of a verbatim block without the line break after the
// begin marker and the indentation before the end marker.
func rawText(ts toks) string {
	s := token.Join(ts)
	if strings.HasPrefix(s, "\r\n") {
		s = s[2:]
	} else {
		s = strings.TrimPrefix(s, "\n")
	}
	s = strings.TrimRight(s, " \t")
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
