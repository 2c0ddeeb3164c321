package lexer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gerunddev/orgparse/internal/token"
)

var (
	blockMarkerRe = regexp.MustCompile(`(?i)^#\+(BEGIN|END)(_\S*|:)`)
	keywordRe     = regexp.MustCompile(`^#\+([A-Za-z0-9_\-]+):`)
	propertyKeyRe = regexp.MustCompile(`^:([^:\s]+):`)
	ruleRe        = regexp.MustCompile(`^-{5,}[ \t]*$`)
	orderedRe     = regexp.MustCompile(`^(\d{1,9})[.)]`)
	planningRe    = regexp.MustCompile(`^(SCHEDULED|DEADLINE|CLOSED):`)
	todoRe        = regexp.MustCompile(`^(TODO|NEXT|WAITING|DONE|CANCELLED)(?:[ \t]|$)`)
	priorityRe    = regexp.MustCompile(`^\[#([A-Za-z0-9])\]`)
	tagsRe        = regexp.MustCompile(`^((?::[\p{L}\p{N}_@#%]+)+:)[ \t]*$`)
	tableSepRe    = regexp.MustCompile(`^\|[-+:| ]*-[-+:| ]*$`)
)

var planningKinds = map[string]token.PlanningKind{
	"SCHEDULED": token.Scheduled,
	"DEADLINE":  token.Deadline,
	"CLOSED":    token.Closed,
}

// lexLineStart recognizes constructs that only exist at the start of a
// line, possibly after indentation.
func (l *Lexer) lexLineStart() bool {
	c := l.src[l.pos]
	if l.st.atLineStart {
		switch c {
		case '*':
			if l.lexHeading() {
				return true
			}
		case '#':
			if l.lexHash() {
				return true
			}
		}
	} else if c == '#' && l.lexBlockMarker() {
		return true
	}

	switch c {
	case ':':
		return l.lexDrawerStart()
	case '-':
		return l.lexRule() || l.lexBullet()
	case '+':
		return l.lexBullet()
	case '*':
		return l.st.indent > 0 && l.lexBullet()
	case '|':
		return l.lexTableRow()
	case 'S', 'D', 'C':
		return l.lexPlanning()
	}
	if c >= '0' && c <= '9' {
		return l.lexOrdered()
	}
	return false
}

func (l *Lexer) lexHeading() bool {
	n := 0
	for l.peekAt(l.pos+n) == '*' {
		n++
	}
	if !l.followedByBlank(l.pos + n) {
		return false
	}
	l.emit(token.HeadingStars, l.pos+n, token.HeadingInfo{Depth: n})
	return true
}

// lexHash handles "#" at column zero: block markers, keywords and comments.
func (l *Lexer) lexHash() bool {
	if l.lexBlockMarker() {
		return true
	}
	rest := l.rest()
	if m := keywordRe.FindStringSubmatch(rest); m != nil {
		name := strings.ToUpper(m[1])
		if kind, ok := token.LookupKeyword(name); ok && l.st.inPreface {
			l.emit(token.FileKeyword, l.pos+len(m[0]), token.KeywordInfo{Name: name, Kind: kind})
		} else {
			l.emit(token.Keyword, l.pos+len(m[0]), token.KeywordInfo{Name: name})
		}
		return true
	}
	if l.followedByBlank(l.pos + 1) {
		l.emit(token.Comment, l.lineEnd(), nil)
		return true
	}
	return false
}

func (l *Lexer) lexBlockMarker() bool {
	rest := l.rest()
	m := blockMarkerRe.FindStringSubmatch(rest)
	if m == nil {
		return false
	}
	end := l.lineEnd()
	info := token.BlockInfo{Kind: token.BlockGeneric}
	if m[2] != ":" {
		info.Name = strings.ToUpper(m[2][1:])
		if info.Name == "" {
			l.fail("block", end, "block marker without a name")
			return true
		}
		info.Kind = token.LookupBlock(info.Name)
	}

	if strings.EqualFold(m[1], "END") {
		l.emit(token.BlockEnd, end, info)
		return true
	}

	info.Params = strings.TrimSpace(rest[len(m[0]):])
	if info.Kind.Raw() {
		if body := l.nextLine(end); body >= 0 {
			if at := l.findLine(body, "#+END_"+info.Name, false); at >= 0 {
				l.rawUntil = at
			}
		}
	}
	l.emit(token.BlockBegin, end, info)
	return true
}

// nextLine returns the offset of the line after the one ending at end, or
// -1 at end of input.
func (l *Lexer) nextLine(end int) int {
	i := strings.IndexByte(l.src[end:], '\n')
	if i < 0 {
		return -1
	}
	return end + i + 1
}

// findLine scans forward from offset from for a line consisting of marker
// (case-insensitive, surrounding whitespace allowed) and returns the offset
// where that line starts. With stopAtHeading the scan gives up at the next
// headline.
func (l *Lexer) findLine(from int, marker string, stopAtHeading bool) int {
	for i := from; i < len(l.src); {
		end, next := len(l.src), len(l.src)
		if j := strings.IndexByte(l.src[i:], '\n'); j >= 0 {
			end, next = i+j, i+j+1
		}
		line := strings.TrimSpace(l.src[i:end])
		if len(line) >= len(marker) && strings.EqualFold(line[:len(marker)], marker) &&
			strings.TrimSpace(line[len(marker):]) == "" {
			return i
		}
		if stopAtHeading && isHeadingLine(l.src[i:end]) {
			return -1
		}
		i = next
	}
	return -1
}

func isHeadingLine(line string) bool {
	n := 0
	for n < len(line) && line[n] == '*' {
		n++
	}
	return n > 0 && (n == len(line) || line[n] == ' ' || line[n] == '\t')
}

func (l *Lexer) lexDrawerStart() bool {
	rest := l.rest()
	const marker = ":PROPERTIES:"
	if !l.hasPrefixFold(marker) || strings.TrimSpace(rest[len(marker):]) != "" {
		return false
	}
	body := l.nextLine(l.lineEnd())
	if body < 0 || l.findLine(body, ":END:", true) < 0 {
		return false
	}
	l.emit(token.PropertiesStart, l.pos+len(marker), nil)
	return true
}

// lexDrawerLine handles a line inside a property drawer.
func (l *Lexer) lexDrawerLine() {
	rest := l.rest()
	end := l.lineEnd()
	if l.hasPrefixFold(":END:") && strings.TrimSpace(rest[5:]) == "" {
		l.emit(token.PropertiesEnd, l.pos+5, nil)
		return
	}
	m := propertyKeyRe.FindStringSubmatch(rest)
	if m == nil {
		l.emit(token.Text, end, nil)
		return
	}
	l.emit(token.PropertyKey, l.pos+len(m[0]), token.PropertyInfo{Key: m[1]})
	if l.pos < end {
		value := strings.TrimSpace(l.src[l.pos:end])
		l.emit(token.PropertyValue, end, token.PropertyInfo{Key: m[1], Value: value})
	}
}

func (l *Lexer) lexRule() bool {
	rest := l.rest()
	if !ruleRe.MatchString(rest) {
		return false
	}
	n := 0
	for n < len(rest) && rest[n] == '-' {
		n++
	}
	l.emit(token.HorizontalRule, l.pos+n, nil)
	return true
}

func (l *Lexer) lexBullet() bool {
	if !l.followedByBlank(l.pos + 1) {
		return false
	}
	bullet := l.src[l.pos : l.pos+1]
	l.emit(token.ListMarker, l.pos+1, token.ListInfo{Bullet: bullet, Indent: l.st.indent})
	return true
}

func (l *Lexer) lexOrdered() bool {
	m := orderedRe.FindStringSubmatch(l.rest())
	if m == nil || !l.followedByBlank(l.pos+len(m[0])) {
		return false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	l.emit(token.ListMarker, l.pos+len(m[0]), token.ListInfo{
		Ordered: true,
		Bullet:  m[0],
		Number:  n,
		Indent:  l.st.indent,
	})
	return true
}

func (l *Lexer) lexTableRow() bool {
	if l.st.inParagraph {
		return false
	}
	rest := l.rest()
	trimmed := strings.TrimSpace(rest)
	info := token.TableInfo{Separator: tableSepRe.MatchString(trimmed)}
	if !info.Separator {
		inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "|"), "|")
		for _, cell := range strings.Split(inner, "|") {
			info.Cells = append(info.Cells, strings.TrimSpace(cell))
		}
	}
	l.emit(token.TableRow, l.lineEnd(), info)
	return true
}

func (l *Lexer) lexPlanning() bool {
	m := planningRe.FindStringSubmatch(l.rest())
	if m == nil {
		return false
	}
	l.emit(token.Planning, l.pos+len(m[0]), token.PlanningInfo{Kind: planningKinds[m[1]]})
	return true
}

// lexHeadline recognizes TODO keywords, priorities and the trailing tag
// string of a headline.
func (l *Lexer) lexHeadline() bool {
	rest := l.rest()
	afterStars := l.prevIs(1, token.Space) && l.prevIs(2, token.HeadingStars)
	afterTodo := l.prevIs(1, token.Space) && l.prevIs(2, token.TodoKeyword)

	if afterStars {
		if m := todoRe.FindStringSubmatch(rest); m != nil {
			done := m[1] == "DONE" || m[1] == "CANCELLED"
			l.emit(token.TodoKeyword, l.pos+len(m[1]), token.TodoInfo{Keyword: m[1], Done: done})
			return true
		}
	}
	if afterStars || afterTodo {
		if m := priorityRe.FindStringSubmatch(rest); m != nil && l.followedByBlank(l.pos+len(m[0])) {
			l.emit(token.Priority, l.pos+len(m[0]), token.PriorityInfo{Level: strings.ToUpper(m[1])})
			return true
		}
	}
	// Tags end the line, so they cannot sit inside a link title.
	if rest[0] == ':' && l.linkEnd < 0 && l.prevIs(1, token.Space) {
		if m := tagsRe.FindStringSubmatch(rest); m != nil {
			tags := strings.Split(strings.Trim(m[1], ":"), ":")
			l.emit(token.TagString, l.pos+len(m[1]), token.TagsInfo{Tags: tags})
			return true
		}
	}
	return false
}
