// Package lexer turns org text into a flat, lossless token list.
//
// The lexer is a single forward scan. What a character means depends on
// where the cursor is (line start, inside a headline, inside a property
// drawer, inside a list item), so the scan carries a small state record
// that is updated after every emitted token.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/gerunddev/orgparse/internal/token"
)

// MaxConsecutiveErrors is the number of back-to-back Error tokens after
// which tokenization gives up and returns what it has.
const MaxConsecutiveErrors = 5

// Lexer scans one document. A Lexer is single use and must not be shared
// between goroutines.
type Lexer struct {
	src    string
	pos    int
	line   int
	tokens []token.Token
	st     state
	errRun int

	// rawUntil is the offset of the end marker line of a verbatim block
	// body; lines before it are emitted as RawLine.
	rawUntil int
	// linkEnd is the offset of the closing "]]" of a titled link while its
	// title is being lexed, or -1.
	linkEnd int
}

// New returns a lexer for text.
func New(text string) *Lexer {
	return &Lexer{
		src:     text,
		line:    1,
		tokens:  make([]token.Token, 0, len(text)/4+2),
		linkEnd: -1,
	}
}

// Tokenize scans text. The result starts with SOF and ends with EOF unless
// MaxConsecutiveErrors Error tokens in a row cut the scan short.
func Tokenize(text string) []token.Token {
	return New(text).Run()
}

// Run scans the whole input and returns the tokens.
func (l *Lexer) Run() []token.Token {
	l.emit(token.SOF, l.pos, nil)
	for l.pos < len(l.src) {
		l.step()
		if l.errRun >= MaxConsecutiveErrors {
			return l.tokens
		}
	}
	l.emit(token.EOF, l.pos, nil)
	return l.tokens
}

func (l *Lexer) step() {
	c := l.src[l.pos]

	if l.linkEnd == l.pos {
		l.linkEnd = -1
		l.emit(token.LinkClose, l.pos+2, nil)
		return
	}

	switch {
	case c == '\n':
		l.lexLineBreak(l.pos + 1)
		return
	case c == '\r' && l.peekAt(l.pos+1) == '\n':
		l.lexLineBreak(l.pos + 2)
		return
	case l.pos < l.rawUntil:
		l.emit(token.RawLine, l.lineEnd(), nil)
		return
	case c == ' ' || c == '\t':
		l.emit(token.Space, l.pos+1, nil)
		return
	}

	if l.lexInvalid() {
		return
	}
	if l.st.inPropertyDrawer && l.st.onlyIndent {
		l.lexDrawerLine()
		return
	}
	if l.st.onlyIndent && l.lexLineStart() {
		return
	}
	if l.st.inHeadline && l.lexHeadline() {
		return
	}
	if l.lexInline() {
		return
	}
	l.lexText()
}

// emit appends a token covering [l.pos, end) and moves the cursor to end.
func (l *Lexer) emit(kind token.Kind, end int, p token.Payload) {
	t := token.Token{Kind: kind, Text: l.src[l.pos:end], Start: l.pos, End: end, Payload: p}
	l.tokens = append(l.tokens, t)
	l.pos = end
	if kind == token.Error {
		l.errRun++
	} else {
		l.errRun = 0
	}
	l.st.advance(t)
}

// fail emits an Error token covering [l.pos, end).
func (l *Lexer) fail(construct string, end int, msg string) {
	l.emit(token.Error, end, token.Diagnostic{
		Construct: construct,
		Line:      l.line,
		Offset:    l.pos,
		Message:   msg,
	})
}

func (l *Lexer) lexLineBreak(end int) {
	blank := l.st.onlyIndent
	l.emit(token.LineBreak, end, token.LineBreakInfo{Blank: blank})
	l.line++
}

// lexInvalid reports bytes that cannot appear in a text document: invalid
// UTF-8 and control characters other than tab, newline and carriage return.
func (l *Lexer) lexInvalid() bool {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	switch {
	case r == utf8.RuneError && size == 1:
		l.fail("text", l.pos+1, "invalid UTF-8 byte")
		return true
	case r < 0x20 && r != '\t' && r != '\n' && r != '\r', r == 0x7f:
		l.fail("text", l.pos+size, "control character")
		return true
	}
	return false
}

// lexText consumes a run of ordinary characters. If the cursor sits on a
// special character that started no construct, that single character
// becomes a text token.
func (l *Lexer) lexText() {
	end := l.pos
	limit := len(l.src)
	if l.linkEnd >= 0 {
		limit = l.linkEnd
	}
	for end < limit {
		c := l.src[end]
		if c < utf8.RuneSelf {
			if isSpecial(c) || c < 0x20 || c == 0x7f {
				break
			}
			end++
			continue
		}
		r, size := utf8.DecodeRuneInString(l.src[end:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		end += size
	}
	if end == l.pos {
		_, size := utf8.DecodeRuneInString(l.src[l.pos:])
		end = l.pos + size
	}
	l.emit(token.Text, end, nil)
}

func isSpecial(c byte) bool {
	switch c {
	case '\n', '\r', ' ', '\t', '*', '/', '_', '+', '=', '~', '"', '[', ']', '<', '$', '\\', ':':
		return true
	}
	return false
}

// lineEnd returns the offset of the end of the current line, excluding the
// line terminator, bounded by an open link title.
func (l *Lexer) lineEnd() int {
	end := len(l.src)
	if i := strings.IndexByte(l.src[l.pos:], '\n'); i >= 0 {
		end = l.pos + i
		if end > l.pos && l.src[end-1] == '\r' {
			end--
		}
	}
	if l.linkEnd >= 0 && l.linkEnd < end {
		end = l.linkEnd
	}
	return end
}

// rest returns the remainder of the current line.
func (l *Lexer) rest() string {
	return l.src[l.pos:l.lineEnd()]
}

func (l *Lexer) peekAt(i int) byte {
	if i < 0 || i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

// prev returns the n-th most recent token (1 is the last one).
func (l *Lexer) prev(n int) (token.Token, bool) {
	i := len(l.tokens) - n
	if i < 0 {
		return token.Token{}, false
	}
	return l.tokens[i], true
}

func (l *Lexer) prevIs(n int, kinds ...token.Kind) bool {
	t, ok := l.prev(n)
	return ok && t.Is(kinds...)
}

// hasPrefixFold reports whether the input at the cursor starts with prefix,
// ignoring ASCII case.
func (l *Lexer) hasPrefixFold(prefix string) bool {
	if len(l.src)-l.pos < len(prefix) {
		return false
	}
	return strings.EqualFold(l.src[l.pos:l.pos+len(prefix)], prefix)
}

// followedByBlank reports whether offset i is at the end of the line or on
// whitespace.
func (l *Lexer) followedByBlank(i int) bool {
	c := l.peekAt(i)
	return i >= len(l.src) || c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
