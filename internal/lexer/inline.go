package lexer

import (
	"regexp"
	"strings"

	"github.com/gerunddev/orgparse/internal/token"
)

var (
	titledLinkRe  = regexp.MustCompile(`^\[\[([^\[\]]+)\]\[(.+?)\]\]`)
	plainLinkRe   = regexp.MustCompile(`^\[\[([^\[\]]+)\]\]`)
	footnoteRe    = regexp.MustCompile(`^\[fn:([^\]\s]+)\]`)
	citationRe    = regexp.MustCompile(`^\[cite(/[^:\]\s]+)?:([^\]]*)\]`)
	citeKeyRe     = regexp.MustCompile(`@([^\s;\]]+)`)
	checkboxRe    = regexp.MustCompile(`^\[([ xX-])\]`)
	linkSchemeRe  = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9+.\-]*):`)
	displayMathRe = regexp.MustCompile(`^\$\$(.+?)\$\$`)
	parenMathRe   = regexp.MustCompile(`^\\\((.+?)\\\)`)
	bracketMathRe = regexp.MustCompile(`^\\\[(.+?)\\\]`)
)

// lexInline recognizes constructs that can appear anywhere in running text.
func (l *Lexer) lexInline() bool {
	switch c := l.src[l.pos]; c {
	case '[':
		return l.lexCheckbox() || l.lexLink() || l.lexFootnote() || l.lexCitation() || l.lexTimestamp()
	case '<':
		return l.lexTimestamp()
	case '$':
		return l.lexDollarMath()
	case '\\':
		return l.lexLatexMath()
	case ':':
		return l.lexDescriptionSep()
	case '*', '/', '_', '+', '=', '~', '"':
		return l.lexMarker(c)
	}
	return false
}

func (l *Lexer) lexCheckbox() bool {
	if !l.st.inListItem || l.linkEnd >= 0 || !l.prevIs(1, token.Space) || !l.prevIs(2, token.ListMarker) {
		return false
	}
	m := checkboxRe.FindStringSubmatch(l.rest())
	if m == nil || !l.followedByBlank(l.pos+3) {
		return false
	}
	state := token.Unchecked
	switch m[1] {
	case "x", "X":
		state = token.Checked
	case "-":
		state = token.Partial
	}
	l.emit(token.Checkbox, l.pos+3, token.CheckboxInfo{State: state})
	return true
}

func (l *Lexer) lexLink() bool {
	if l.linkEnd >= 0 {
		return false
	}
	rest := l.rest()
	if m := titledLinkRe.FindStringSubmatch(rest); m != nil {
		open := len("[[") + len(m[1]) + len("][")
		closeAt := l.pos + len(m[0]) - len("]]")
		l.emit(token.LinkOpen, l.pos+open, linkInfo(m[1]))
		l.linkEnd = closeAt
		return true
	}
	if m := plainLinkRe.FindStringSubmatch(rest); m != nil {
		l.emit(token.Link, l.pos+len(m[0]), linkInfo(m[1]))
		return true
	}
	return false
}

// linkInfo classifies a link target: "https://x" has type https,
// "./notes.org" is a file link and anything else is fuzzy.
func linkInfo(raw string) token.LinkInfo {
	info := token.LinkInfo{Raw: raw, Type: "fuzzy", Target: raw}
	switch {
	case linkSchemeRe.MatchString(raw):
		i := strings.IndexByte(raw, ':')
		info.Type = strings.ToLower(raw[:i])
		info.Target = strings.TrimPrefix(raw[i+1:], "//")
		if info.Type == "http" || info.Type == "https" {
			info.Target = raw
		}
	case strings.HasPrefix(raw, "/"), strings.HasPrefix(raw, "./"),
		strings.HasPrefix(raw, "../"), strings.HasPrefix(raw, "~/"):
		info.Type = "file"
	}
	return info
}

func (l *Lexer) lexFootnote() bool {
	m := footnoteRe.FindStringSubmatch(l.rest())
	if m == nil {
		return false
	}
	l.emit(token.Footnote, l.pos+len(m[0]), token.FootnoteInfo{Label: m[1]})
	return true
}

func (l *Lexer) lexCitation() bool {
	m := citationRe.FindStringSubmatch(l.rest())
	if m == nil {
		return false
	}
	info := token.CitationInfo{Style: strings.TrimPrefix(m[1], "/")}
	for _, k := range citeKeyRe.FindAllStringSubmatch(m[2], -1) {
		info.Keys = append(info.Keys, k[1])
	}
	if len(info.Keys) == 0 {
		return false
	}
	l.emit(token.Citation, l.pos+len(m[0]), info)
	return true
}

func (l *Lexer) lexTimestamp() bool {
	rest := l.rest()
	t, n, err := scanTimestamp(rest)
	if err != nil {
		l.fail("timestamp", l.pos+n, err.Error())
		return true
	}
	if n == 0 {
		return false
	}
	if strings.HasPrefix(rest[n:], "--") {
		if to, n2, err := scanTimestamp(rest[n+2:]); err == nil && n2 > 0 && to.Active == t.Active {
			l.emit(token.TimestampRange, l.pos+n+2+n2, token.RangeInfo{From: t, To: to})
			return true
		}
	}
	l.emit(token.Timestamp, l.pos+n, t)
	return true
}

func (l *Lexer) lexDollarMath() bool {
	rest := l.rest()
	if m := displayMathRe.FindStringSubmatch(rest); m != nil {
		l.emit(token.Math, l.pos+len(m[0]), token.MathInfo{Expr: m[1], Display: true})
		return true
	}
	if isWordByte(l.peekAt(l.pos-1)) || len(rest) < 3 || isBlankByte(rest[1]) || rest[1] == '$' {
		return false
	}
	end := strings.IndexByte(rest[1:], '$') + 1
	if end < 2 || isBlankByte(rest[end-1]) {
		return false
	}
	if end+1 < len(rest) && !isPostBorder(rest[end+1]) {
		return false
	}
	l.emit(token.Math, l.pos+end+1, token.MathInfo{Expr: rest[1:end]})
	return true
}

func (l *Lexer) lexLatexMath() bool {
	rest := l.rest()
	if m := parenMathRe.FindStringSubmatch(rest); m != nil {
		l.emit(token.Math, l.pos+len(m[0]), token.MathInfo{Expr: m[1]})
		return true
	}
	if m := bracketMathRe.FindStringSubmatch(rest); m != nil {
		l.emit(token.Math, l.pos+len(m[0]), token.MathInfo{Expr: m[1], Display: true})
		return true
	}
	return false
}

// lexDescriptionSep recognizes the " :: " between a description list term
// and its body.
func (l *Lexer) lexDescriptionSep() bool {
	if !l.st.inListItem || l.linkEnd >= 0 || !l.prevIs(1, token.Space) || !strings.HasPrefix(l.rest(), "::") ||
		!l.followedByBlank(l.pos+2) {
		return false
	}
	l.emit(token.DescriptionSep, l.pos+2, nil)
	return true
}

// lexMarker emits an emphasis or quote marker when the characters around it
// allow it to open or close a span. Verbatim and code markers only count
// when the closing marker is on the same line; their content is one text
// token.
func (l *Lexer) lexMarker(c byte) bool {
	kind, _ := token.LookupEmphasis(c)
	rest := l.rest()
	before := l.peekAt(l.pos - 1)
	after := byte(' ')
	if len(rest) > 1 {
		after = rest[1]
	}

	canOpen := isPreBorder(before) && !isBlankByte(after)
	canClose := !isBlankByte(before) && isPostBorder(after)

	if kind == token.Verbatim || kind == token.Code {
		if !canOpen {
			return false
		}
		for i := 2; i < len(rest); i++ {
			if rest[i] != c || isBlankByte(rest[i-1]) {
				continue
			}
			if i+1 < len(rest) && !isPostBorder(rest[i+1]) {
				continue
			}
			start := l.pos
			l.emit(token.Emphasis, start+1, token.EmphasisInfo{Kind: kind, Open: true})
			l.emit(token.Text, start+i, nil)
			l.emit(token.Emphasis, start+i+1, token.EmphasisInfo{Kind: kind, Close: true})
			return true
		}
		return false
	}

	if !canOpen && !canClose {
		return false
	}
	kindTok := token.Emphasis
	if kind == token.Quote {
		kindTok = token.QuoteMark
	}
	l.emit(kindTok, l.pos+1, token.EmphasisInfo{Kind: kind, Open: canOpen, Close: canClose})
	return true
}

func isBlankByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == 0
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isPreBorder(c byte) bool {
	return isBlankByte(c) || strings.IndexByte(`-({'"[`, c) >= 0
}

func isPostBorder(c byte) bool {
	return isBlankByte(c) || strings.IndexByte(`-.,;:!?')}]"\`, c) >= 0
}
