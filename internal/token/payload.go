package token

import (
	"fmt"
	"strings"
	"time"
)

// Payload is the typed data attached to a token. The set of payloads is
// closed; switch on the concrete type to read one.
type Payload interface {
	payload()
}

func (Diagnostic) payload()    {}
func (HeadingInfo) payload()   {}
func (TodoInfo) payload()      {}
func (PriorityInfo) payload()  {}
func (TagsInfo) payload()      {}
func (PlanningInfo) payload()  {}
func (PropertyInfo) payload()  {}
func (KeywordInfo) payload()   {}
func (BlockInfo) payload()     {}
func (TableInfo) payload()     {}
func (ListInfo) payload()      {}
func (CheckboxInfo) payload()  {}
func (EmphasisInfo) payload()  {}
func (LinkInfo) payload()      {}
func (CitationInfo) payload()  {}
func (FootnoteInfo) payload()  {}
func (MathInfo) payload()      {}
func (Time) payload()          {}
func (RangeInfo) payload()     {}
func (LineBreakInfo) payload() {}

// HeadingInfo is carried by HeadingStars.
type HeadingInfo struct {
	Depth int
}

// TodoInfo is carried by TodoKeyword.
type TodoInfo struct {
	Keyword string
	Done    bool
}

// PriorityInfo is carried by Priority, e.g. "A" for [#A].
type PriorityInfo struct {
	Level string
}

// TagsInfo is carried by TagString.
type TagsInfo struct {
	Tags []string
}

// PlanningKind distinguishes SCHEDULED, DEADLINE and CLOSED.
type PlanningKind uint8

const (
	Scheduled PlanningKind = iota
	Deadline
	Closed
)

func (k PlanningKind) String() string {
	switch k {
	case Scheduled:
		return "SCHEDULED"
	case Deadline:
		return "DEADLINE"
	case Closed:
		return "CLOSED"
	}
	return "UNKNOWN"
}

// PlanningInfo is carried by Planning.
type PlanningInfo struct {
	Kind PlanningKind
}

// PropertyInfo is carried by PropertyKey (Key set) and PropertyValue
// (Value set, surrounding whitespace trimmed).
type PropertyInfo struct {
	Key   string
	Value string
}

// KeywordKind types the file-level keywords the preamble understands.
type KeywordKind uint8

const (
	KeywordOther KeywordKind = iota
	KeywordTitle
	KeywordTags
	KeywordAuthor
	KeywordDate
	KeywordCategory
	KeywordEmail
	KeywordDescription
	KeywordLanguage
	KeywordStartup
	KeywordOptions
	KeywordPile
)

var fileKeywords = map[string]KeywordKind{
	"TITLE":       KeywordTitle,
	"TAGS":        KeywordTags,
	"FILETAGS":    KeywordTags,
	"AUTHOR":      KeywordAuthor,
	"DATE":        KeywordDate,
	"CATEGORY":    KeywordCategory,
	"EMAIL":       KeywordEmail,
	"DESCRIPTION": KeywordDescription,
	"LANGUAGE":    KeywordLanguage,
	"STARTUP":     KeywordStartup,
	"OPTIONS":     KeywordOptions,
	"PILE":        KeywordPile,
}

// LookupKeyword returns the kind of a file keyword name (case-insensitive).
func LookupKeyword(name string) (KeywordKind, bool) {
	k, ok := fileKeywords[strings.ToUpper(name)]
	return k, ok
}

// KeywordInfo is carried by FileKeyword and Keyword. Name is upper-cased.
type KeywordInfo struct {
	Name string
	Kind KeywordKind
}

// BlockKind types #+BEGIN_X blocks.
type BlockKind uint8

const (
	BlockCustom BlockKind = iota
	BlockGeneric
	BlockComment
	BlockExample
	BlockSource
	BlockQuote
	BlockCenter
	BlockHTML
	BlockVerse
	BlockLaTeX
	BlockPageIntro
	BlockEdits
	BlockAside
	BlockVideo
)

var blockNames = map[string]BlockKind{
	"COMMENT":    BlockComment,
	"EXAMPLE":    BlockExample,
	"SRC":        BlockSource,
	"QUOTE":      BlockQuote,
	"CENTER":     BlockCenter,
	"HTML":       BlockHTML,
	"VERSE":      BlockVerse,
	"LATEX":      BlockLaTeX,
	"PAGE_INTRO": BlockPageIntro,
	"PAGEINTRO":  BlockPageIntro,
	"EDITS":      BlockEdits,
	"ASIDE":      BlockAside,
	"VIDEO":      BlockVideo,
}

// LookupBlock maps a block name such as "SRC" to its kind. Unknown names are
// BlockCustom.
func LookupBlock(name string) BlockKind {
	if k, ok := blockNames[strings.ToUpper(name)]; ok {
		return k
	}
	return BlockCustom
}

// Raw reports whether the block body is captured verbatim instead of being
// parsed into chunks.
func (k BlockKind) Raw() bool {
	switch k {
	case BlockSource, BlockExample, BlockVerse, BlockComment, BlockHTML, BlockLaTeX, BlockVideo:
		return true
	}
	return false
}

func (k BlockKind) String() string {
	switch k {
	case BlockGeneric:
		return "generic"
	case BlockComment:
		return "comment"
	case BlockExample:
		return "example"
	case BlockSource:
		return "src"
	case BlockQuote:
		return "quote"
	case BlockCenter:
		return "center"
	case BlockHTML:
		return "html"
	case BlockVerse:
		return "verse"
	case BlockLaTeX:
		return "latex"
	case BlockPageIntro:
		return "page_intro"
	case BlockEdits:
		return "edits"
	case BlockAside:
		return "aside"
	case BlockVideo:
		return "video"
	}
	return "custom"
}

// BlockInfo is carried by BlockBegin and BlockEnd. Name is the upper-cased
// name as written (empty for generic blocks); Params is the trimmed rest of
// a begin line.
type BlockInfo struct {
	Kind   BlockKind
	Name   string
	Params string
}

// Matches reports whether an end marker closes a block opened by b.
func (b BlockInfo) Matches(end BlockInfo) bool {
	if b.Kind != end.Kind {
		return false
	}
	return b.Kind != BlockCustom || b.Name == end.Name
}

// TableInfo is carried by TableRow.
type TableInfo struct {
	Cells     []string
	Separator bool
}

// ListInfo is carried by ListMarker. Indent counts the whitespace columns
// before the marker.
type ListInfo struct {
	Ordered bool
	Bullet  string
	Number  int
	Indent  int
}

// Level is the nesting level implied by the marker's indentation.
func (l ListInfo) Level() int { return l.Indent / 2 }

// CheckboxState is the state of a list item checkbox.
type CheckboxState uint8

const (
	Unchecked CheckboxState = iota
	Checked
	Partial
)

func (s CheckboxState) String() string {
	switch s {
	case Checked:
		return "[X]"
	case Partial:
		return "[-]"
	}
	return "[ ]"
}

// CheckboxInfo is carried by Checkbox.
type CheckboxInfo struct {
	State CheckboxState
}

// EmphasisKind types emphasis markers.
type EmphasisKind uint8

const (
	Bold EmphasisKind = iota
	Italic
	Underline
	Strike
	Verbatim
	Code
	Quote
)

var emphasisChars = map[byte]EmphasisKind{
	'*': Bold,
	'/': Italic,
	'_': Underline,
	'+': Strike,
	'=': Verbatim,
	'~': Code,
	'"': Quote,
}

// LookupEmphasis maps a marker character to its kind.
func LookupEmphasis(c byte) (EmphasisKind, bool) {
	k, ok := emphasisChars[c]
	return k, ok
}

func (k EmphasisKind) String() string {
	switch k {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Underline:
		return "underline"
	case Strike:
		return "strikethrough"
	case Verbatim:
		return "verbatim"
	case Code:
		return "code"
	case Quote:
		return "quote"
	}
	return "unknown"
}

// EmphasisInfo is carried by Emphasis and QuoteMark. Open and Close record
// whether the surrounding characters allow the marker to open or close a
// span; the grammar does the pairing.
type EmphasisInfo struct {
	Kind  EmphasisKind
	Open  bool
	Close bool
}

// LinkInfo is carried by Link and LinkOpen.
type LinkInfo struct {
	Raw    string
	Type   string
	Target string
}

// CitationInfo is carried by Citation.
type CitationInfo struct {
	Style string
	Keys  []string
}

// FootnoteInfo is carried by Footnote.
type FootnoteInfo struct {
	Label string
}

// MathInfo is carried by Math.
type MathInfo struct {
	Expr    string
	Display bool
}

// Time is a parsed org timestamp. Dates are wall-clock values in UTC.
type Time struct {
	Date     time.Time
	Active   bool
	HasTime  bool
	End      time.Time
	HasEnd   bool
	Repeater string
}

func (t Time) String() string {
	open, close := "[", "]"
	if t.Active {
		open, close = "<", ">"
	}
	var b strings.Builder
	b.WriteString(open)
	b.WriteString(t.Date.Format("2006-01-02 Mon"))
	if t.HasTime {
		b.WriteString(t.Date.Format(" 15:04"))
		if t.HasEnd {
			b.WriteString(t.End.Format("-15:04"))
		}
	}
	if t.Repeater != "" {
		b.WriteString(" " + t.Repeater)
	}
	b.WriteString(close)
	return b.String()
}

// RangeInfo is carried by TimestampRange.
type RangeInfo struct {
	From Time
	To   Time
}

// LineBreakInfo is carried by LineBreak. Blank is set when the break ends a
// line holding nothing but whitespace, which closes a paragraph.
type LineBreakInfo struct {
	Blank bool
}

// IsBlank reports whether t is a line break ending a blank line.
func IsBlank(t Token) bool {
	info, ok := t.Payload.(LineBreakInfo)
	return ok && t.Kind == LineBreak && info.Blank
}

// Describe renders a payload for debugging output.
func Describe(p Payload) string {
	switch v := p.(type) {
	case nil:
		return ""
	case HeadingInfo:
		return fmt.Sprintf("depth=%d", v.Depth)
	case TagsInfo:
		return "tags=" + strings.Join(v.Tags, ",")
	case KeywordInfo:
		return "name=" + v.Name
	case BlockInfo:
		return "block=" + v.Kind.String()
	case ListInfo:
		return fmt.Sprintf("bullet=%s indent=%d", v.Bullet, v.Indent)
	case EmphasisInfo:
		return fmt.Sprintf("%s open=%t close=%t", v.Kind, v.Open, v.Close)
	case LinkInfo:
		return fmt.Sprintf("type=%s target=%s", v.Type, v.Target)
	case Time:
		return v.String()
	case RangeInfo:
		return v.From.String() + "--" + v.To.String()
	case Diagnostic:
		return v.Error()
	case LineBreakInfo:
		if v.Blank {
			return "blank"
		}
		return ""
	}
	return fmt.Sprintf("%+v", p)
}
