package lexer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/orgparse/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

// find returns the first token of the given kind.
func find(t *testing.T, toks []token.Token, k token.Kind) token.Token {
	t.Helper()
	for _, tok := range toks {
		if tok.Kind == k {
			return tok
		}
	}
	t.Fatalf("no %s token in %v", k, toks)
	return token.Token{}
}

func TestTokenizeEmpty(t *testing.T) {
	toks := Tokenize("")
	assert.Equal(t, []token.Kind{token.SOF, token.EOF}, kinds(toks))
	assert.Equal(t, 0, toks[1].Start)
}

func TestTokenizeLossless(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"#+TITLE: Hello\n#+FILETAGS: :a:b:\n\nBody text.\n",
		"* TODO [#B] Write it :work:\nSCHEDULED: <2024-01-15 Mon 10:00 +1w>\n:PROPERTIES:\n:ID: 42\n:END:\n",
		"- [ ] one\n- [X] two\n  1. nested :: body\n",
		"| a | b |\n|---+---|\n| 1 | 2 |\n",
		"#+BEGIN_SRC go\n  fmt.Println(\"*x*\")\n#+END_SRC\n",
		"#+BEGIN_QUOTE\nsaid /so/ [[https://x.org][here]]\n#+END_QUOTE\n",
		"a\r\nb\r\n",
		"-----\n# comment\n",
		"unterminated [[link and *star\n$not math",
		"ünïcödé *bold* ~code~ =verb= \"quoted\"",
	}
	for _, in := range inputs {
		toks := Tokenize(in)
		require.NotEmpty(t, toks)
		assert.Equal(t, token.SOF, toks[0].Kind, in)
		assert.Equal(t, token.EOF, toks[len(toks)-1].Kind, in)
		assert.Equal(t, in, token.Join(toks), "round trip of %q", in)

		prevEnd := 0
		for _, tok := range toks {
			assert.Equal(t, prevEnd, tok.Start, "gap before %s in %q", tok, in)
			assert.Equal(t, tok.Text, in[tok.Start:tok.End])
			if !tok.IsMarker() {
				assert.Positive(t, tok.Len(), "empty token %s in %q", tok, in)
			}
			prevEnd = tok.End
		}
	}
}

func TestHeadingTags(t *testing.T) {
	toks := Tokenize("** Title :tag1:tag2:\n")
	assert.Equal(t, []token.Kind{
		token.SOF, token.HeadingStars, token.Space, token.Text, token.Space,
		token.TagString, token.LineBreak, token.EOF,
	}, kinds(toks))
	assert.Equal(t, token.HeadingInfo{Depth: 2}, toks[1].Payload)
	assert.Equal(t, token.TagsInfo{Tags: []string{"tag1", "tag2"}}, toks[5].Payload)
}

func TestHeadingTodoPriority(t *testing.T) {
	toks := Tokenize("* TODO [#A] Task\n")
	assert.Equal(t, []token.Kind{
		token.SOF, token.HeadingStars, token.Space, token.TodoKeyword, token.Space,
		token.Priority, token.Space, token.Text, token.LineBreak, token.EOF,
	}, kinds(toks))
	assert.Equal(t, token.TodoInfo{Keyword: "TODO"}, toks[3].Payload)
	assert.Equal(t, token.PriorityInfo{Level: "A"}, toks[5].Payload)
}

func TestStarsWithoutSpaceAreNotHeading(t *testing.T) {
	toks := Tokenize("*bold* text")
	assert.NotContains(t, kinds(toks), token.HeadingStars)
	assert.Equal(t, token.Emphasis, toks[1].Kind)
}

func TestConsecutiveErrorsStop(t *testing.T) {
	toks := Tokenize("\x01\x02\x03\x04\x05\x06\x07")
	require.Len(t, toks, 1+MaxConsecutiveErrors)
	assert.Equal(t, token.SOF, toks[0].Kind)
	for _, tok := range toks[1:] {
		assert.Equal(t, token.Error, tok.Kind)
	}
}

func TestErrorRecovery(t *testing.T) {
	toks := Tokenize("ok\na\x01b")
	assert.Equal(t, []token.Kind{
		token.SOF, token.Text, token.LineBreak, token.Text, token.Error, token.Text, token.EOF,
	}, kinds(toks))
	diags := token.Diagnostics(toks)
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, 4, diags[0].Offset)
}

func TestPropertyDrawer(t *testing.T) {
	toks := Tokenize(":PROPERTIES:\n:ID: abc\n:END:\n")
	assert.Equal(t, []token.Kind{
		token.SOF, token.PropertiesStart, token.LineBreak,
		token.PropertyKey, token.PropertyValue, token.LineBreak,
		token.PropertiesEnd, token.LineBreak, token.EOF,
	}, kinds(toks))
	assert.Equal(t, " abc", toks[4].Text)
	assert.Equal(t, token.PropertyInfo{Key: "ID", Value: "abc"}, toks[4].Payload)
}

func TestDrawerNeedsEnd(t *testing.T) {
	toks := Tokenize(":PROPERTIES:\n:ID: abc\n")
	assert.NotContains(t, kinds(toks), token.PropertiesStart)
	assert.NotContains(t, kinds(toks), token.PropertyKey)
}

func TestRawBlock(t *testing.T) {
	toks := Tokenize("#+BEGIN_SRC go\n  x := *y*\n#+END_SRC\n")
	assert.Equal(t, []token.Kind{
		token.SOF, token.BlockBegin, token.LineBreak, token.RawLine, token.LineBreak,
		token.BlockEnd, token.LineBreak, token.EOF,
	}, kinds(toks))
	assert.Equal(t, token.BlockInfo{Kind: token.BlockSource, Name: "SRC", Params: "go"}, toks[1].Payload)
	assert.Equal(t, "  x := *y*", toks[3].Text)
	assert.Equal(t, token.BlockInfo{Kind: token.BlockSource, Name: "SRC"}, toks[5].Payload)
}

func TestUnterminatedRawBlockIsLexedNormally(t *testing.T) {
	toks := Tokenize("#+BEGIN_SRC\n*bold*\n")
	assert.NotContains(t, kinds(toks), token.RawLine)
	assert.Contains(t, kinds(toks), token.Emphasis)
}

func TestBlockWithoutName(t *testing.T) {
	toks := Tokenize("#+BEGIN_ x\n")
	assert.Equal(t, token.Error, toks[1].Kind)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func TestLists(t *testing.T) {
	toks := Tokenize("- [X] item\n  1. sub :: x\n")
	assert.Equal(t, []token.Kind{
		token.SOF,
		token.ListMarker, token.Space, token.Checkbox, token.Space, token.Text, token.LineBreak,
		token.Space, token.Space, token.ListMarker, token.Space, token.Text, token.Space,
		token.DescriptionSep, token.Space, token.Text, token.LineBreak,
		token.EOF,
	}, kinds(toks))
	assert.Equal(t, token.ListInfo{Bullet: "-"}, toks[1].Payload)
	assert.Equal(t, token.CheckboxInfo{State: token.Checked}, toks[3].Payload)
	assert.Equal(t, token.ListInfo{Ordered: true, Bullet: "1.", Number: 1, Indent: 2}, toks[9].Payload)
}

func TestHorizontalRule(t *testing.T) {
	assert.Equal(t, []token.Kind{token.SOF, token.HorizontalRule, token.LineBreak, token.EOF},
		kinds(Tokenize("-----\n")))
	assert.NotContains(t, kinds(Tokenize("----\n")), token.HorizontalRule)
}

func TestTable(t *testing.T) {
	toks := Tokenize("| a | b |\n|---+---|\n")
	assert.Equal(t, []token.Kind{
		token.SOF, token.TableRow, token.LineBreak, token.TableRow, token.LineBreak, token.EOF,
	}, kinds(toks))
	assert.Equal(t, token.TableInfo{Cells: []string{"a", "b"}}, toks[1].Payload)
	assert.Equal(t, token.TableInfo{Separator: true}, toks[3].Payload)
}

func TestPipeInsideParagraphIsText(t *testing.T) {
	toks := Tokenize("text\n| a |\n")
	assert.NotContains(t, kinds(toks), token.TableRow)
}

func TestLinks(t *testing.T) {
	toks := Tokenize("see [[https://example.com][the *site*]] and [[file:a.org]]")
	assert.Equal(t, []token.Kind{
		token.SOF, token.Text, token.Space,
		token.LinkOpen, token.Text, token.Space, token.Emphasis, token.Text, token.Emphasis, token.LinkClose,
		token.Space, token.Text, token.Space, token.Link, token.EOF,
	}, kinds(toks))
	assert.Equal(t, token.LinkInfo{Raw: "https://example.com", Type: "https", Target: "https://example.com"}, toks[3].Payload)
	assert.Equal(t, token.LinkInfo{Raw: "file:a.org", Type: "file", Target: "a.org"}, toks[13].Payload)
	assert.Equal(t, token.EmphasisInfo{Kind: token.Bold, Open: true}, toks[6].Payload)
	assert.Equal(t, token.EmphasisInfo{Kind: token.Bold, Close: true}, toks[8].Payload)
}

func TestTimestamps(t *testing.T) {
	toks := Tokenize("<2024-01-15 Mon 10:00-11:30 +1w>")
	require.Len(t, toks, 3)
	ts, ok := toks[1].Payload.(token.Time)
	require.True(t, ok)
	assert.True(t, ts.Active)
	assert.True(t, ts.HasTime)
	assert.True(t, ts.HasEnd)
	assert.Equal(t, "+1w", ts.Repeater)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), ts.Date)
	assert.Equal(t, time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC), ts.End)

	toks = Tokenize("[2024-01-01]--[2024-01-02]")
	require.Len(t, toks, 3)
	assert.Equal(t, token.TimestampRange, toks[1].Kind)
	rng := toks[1].Payload.(token.RangeInfo)
	assert.False(t, rng.From.Active)
	assert.Equal(t, 2, rng.To.Date.Day())
}

func TestMalformedTimestamp(t *testing.T) {
	toks := Tokenize("<2024-13-01>")
	assert.Equal(t, []token.Kind{token.SOF, token.Error, token.EOF}, kinds(toks))
	assert.Len(t, token.Diagnostics(toks), 1)
}

func TestPlanning(t *testing.T) {
	toks := Tokenize("* H\nSCHEDULED: <2024-01-15 Mon>\n")
	p := find(t, toks, token.Planning)
	assert.Equal(t, token.PlanningInfo{Kind: token.Scheduled}, p.Payload)
	assert.Contains(t, kinds(toks), token.Timestamp)
}

func TestKeywords(t *testing.T) {
	toks := Tokenize("#+TITLE: Hello\n#+FOO: bar\n* H\n#+TITLE: x\n")
	var got []token.Token
	for _, tok := range toks {
		if tok.Is(token.FileKeyword, token.Keyword) {
			got = append(got, tok)
		}
	}
	require.Len(t, got, 3)
	assert.Equal(t, token.FileKeyword, got[0].Kind)
	assert.Equal(t, token.KeywordInfo{Name: "TITLE", Kind: token.KeywordTitle}, got[0].Payload)
	assert.Equal(t, token.Keyword, got[1].Kind)
	assert.Equal(t, token.Keyword, got[2].Kind)
}

func TestComments(t *testing.T) {
	toks := Tokenize("# note\n#notacomment\n")
	assert.Equal(t, token.Comment, toks[1].Kind)
	assert.Equal(t, "# note", toks[1].Text)
	assert.Equal(t, token.Text, toks[3].Kind)
}

func TestMath(t *testing.T) {
	toks := Tokenize(`$x^2$ and \(y\) $$z$$`)
	var exprs []token.MathInfo
	for _, tok := range toks {
		if m, ok := tok.Payload.(token.MathInfo); ok {
			exprs = append(exprs, m)
		}
	}
	assert.Equal(t, []token.MathInfo{
		{Expr: "x^2"},
		{Expr: "y"},
		{Expr: "z", Display: true},
	}, exprs)
}

func TestVerbatim(t *testing.T) {
	toks := Tokenize("=a *b*=")
	assert.Equal(t, []token.Kind{
		token.SOF, token.Emphasis, token.Text, token.Emphasis, token.EOF,
	}, kinds(toks))
	assert.Equal(t, "a *b*", toks[2].Text)
}

func TestFootnoteAndCitation(t *testing.T) {
	toks := Tokenize("[fn:1] [cite/t:@doe2020;@roe]")
	assert.Equal(t, token.FootnoteInfo{Label: "1"}, toks[1].Payload)
	assert.Equal(t, token.CitationInfo{Style: "t", Keys: []string{"doe2020", "roe"}}, toks[3].Payload)
}

func TestCRLF(t *testing.T) {
	toks := Tokenize("a\r\nb")
	assert.Equal(t, []token.Kind{token.SOF, token.Text, token.LineBreak, token.Text, token.EOF}, kinds(toks))
	assert.Equal(t, "\r\n", toks[2].Text)
}

func TestBlankLineBreak(t *testing.T) {
	toks := Tokenize("a\n  \nb")
	assert.False(t, token.IsBlank(toks[2]))
	assert.True(t, token.IsBlank(toks[5]))
}

func TestLinkTitleIsNotHeadingTags(t *testing.T) {
	toks := Tokenize("** [[id:42][Meeting :notes:]]\n")
	assert.NotContains(t, kinds(toks), token.TagString)
	assert.Equal(t, token.LinkClose, toks[len(toks)-3].Kind)

	toks = Tokenize("* [[id:42][Meeting]] :notes:\n")
	tags := find(t, toks, token.TagString)
	assert.Equal(t, token.TagsInfo{Tags: []string{"notes"}}, tags.Payload)
}

func TestLinkTitleIsNotDescriptionSep(t *testing.T) {
	toks := Tokenize("- [[https://x][a :: b]]\n")
	assert.NotContains(t, kinds(toks), token.DescriptionSep)

	toks = Tokenize("- [[https://x][a]] :: b\n")
	assert.Contains(t, kinds(toks), token.DescriptionSep)
}

func TestHeadingAfterParagraphLine(t *testing.T) {
	// Heading stars at column 0 start a heading even inside a paragraph.
	toks := Tokenize("Para line\n* Heading\n")
	assert.Equal(t, []token.Kind{
		token.SOF, token.Text, token.Space, token.Text, token.LineBreak,
		token.HeadingStars, token.Space, token.Text, token.LineBreak, token.EOF,
	}, kinds(toks))

	// Not at column 0, the same star is an emphasis marker.
	toks = Tokenize("Para line\nmore *bold*\n")
	assert.NotContains(t, kinds(toks), token.HeadingStars)
	assert.Contains(t, kinds(toks), token.Emphasis)
}
