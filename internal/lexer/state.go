package lexer

import "github.com/gerunddev/orgparse/internal/token"

// state holds the context signals that decide what an ambiguous character
// means at the cursor.
type state struct {
	atLineStart      bool
	onlyIndent       bool
	indent           int
	inPropertyDrawer bool
	inHeadline       bool
	inParagraph      bool
	inPreface        bool
	inListItem       bool
}

func initialState() state {
	return state{atLineStart: true, onlyIndent: true, inPreface: true}
}

type transition func(s *state, t token.Token)

// transitions is keyed by the kind of the token just emitted. Kinds without
// an entry fall through to contentTransition.
var transitions = map[token.Kind]transition{
	token.SOF: func(s *state, _ token.Token) {
		*s = initialState()
	},
	token.LineBreak: func(s *state, t token.Token) {
		s.atLineStart = true
		s.onlyIndent = true
		s.indent = 0
		s.inHeadline = false
		s.inListItem = false
		if token.IsBlank(t) {
			s.inParagraph = false
		}
	},
	token.Space: func(s *state, t token.Token) {
		s.atLineStart = false
		if s.onlyIndent {
			s.indent += len(t.Text)
		}
	},
	token.HeadingStars: func(s *state, _ token.Token) {
		s.leaveLineStart()
		s.inHeadline = true
		s.inPreface = false
		s.inParagraph = false
	},
	token.PropertiesStart: func(s *state, _ token.Token) {
		s.leaveLineStart()
		s.inPropertyDrawer = true
		s.inParagraph = false
	},
	token.PropertiesEnd: func(s *state, _ token.Token) {
		s.leaveLineStart()
		s.inPropertyDrawer = false
	},
	token.ListMarker: func(s *state, _ token.Token) {
		s.leaveLineStart()
		s.inListItem = true
		s.inParagraph = false
	},
	token.BlockBegin:     structural,
	token.BlockEnd:       structural,
	token.Comment:        structural,
	token.FileKeyword:    structural,
	token.Keyword:        structural,
	token.HorizontalRule: structural,
	token.TableRow:       structural,
	token.Planning:       structural,
}

func structural(s *state, _ token.Token) {
	s.leaveLineStart()
	s.inParagraph = false
}

// contentTransition handles text and inline tokens. A line whose first
// token is content is a paragraph line.
func contentTransition(s *state, _ token.Token) {
	if s.onlyIndent && !s.inHeadline && !s.inPropertyDrawer && !s.inListItem {
		s.inParagraph = true
	}
	s.leaveLineStart()
}

func (s *state) leaveLineStart() {
	s.atLineStart = false
	s.onlyIndent = false
}

func (s *state) advance(t token.Token) {
	if f, ok := transitions[t.Kind]; ok {
		f(s, t)
		return
	}
	contentTransition(s, t)
}
