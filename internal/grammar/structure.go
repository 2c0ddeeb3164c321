package grammar

import (
	"strings"
	"unicode"

	pc "github.com/gerunddev/orgparse/internal/combinator"

	"github.com/gerunddev/orgparse/internal/ast"
	"github.com/gerunddev/orgparse/internal/token"
)

var (
	propertyEntry = pc.OneOf(
		pc.Seq4(indent, pc.Kind(token.PropertyKey), pc.Maybe(pc.Kind(token.PropertyValue)), lineEnd,
			func(_ toks, k token.Token, v pc.Option[token.Token], _ none) pc.Option[ast.Property] {
				key, _ := k.Payload.(token.PropertyInfo)
				prop := ast.Property{Key: key.Key}
				if t, ok := v.Get(); ok {
					val, _ := t.Payload.(token.PropertyInfo)
					prop.Value = val.Value
				}
				return pc.Some(prop)
			}),
		pc.Map(blankLine, func(none) pc.Option[ast.Property] { return pc.Option[ast.Property]{} }),
		pc.Seq3(indent, pc.Kind(token.Text), lineEnd, func(toks, token.Token, none) pc.Option[ast.Property] {
			return pc.Option[ast.Property]{}
		}),
	)

	propertyDrawer = pc.Seq3(
		pc.Seq4(indent, pc.Kind(token.PropertiesStart), indent, lineEnd, func(toks, token.Token, toks, none) none { return none{} }),
		pc.Many(propertyEntry),
		pc.Seq4(indent, pc.Kind(token.PropertiesEnd), indent, lineEnd, func(toks, token.Token, toks, none) none { return none{} }),
		func(_ none, entries []pc.Option[ast.Property], _ none) ast.Properties {
			props := ast.Properties{}
			for _, e := range entries {
				if p, ok := e.Get(); ok {
					props = append(props, p)
				}
			}
			return props
		})

	planningEntry = pc.Seq4(pc.Kind(token.Planning), indent, pc.Kind(token.Timestamp, token.TimestampRange), indent,
		func(p token.Token, _ toks, ts token.Token, _ toks) ast.Planning {
			info, _ := p.Payload.(token.PlanningInfo)
			out := ast.Planning{Kind: info.Kind}
			switch v := ts.Payload.(type) {
			case token.Time:
				out.Time = v
			case token.RangeInfo:
				out.Time, out.End, out.HasEnd = v.From, v.To, true
			}
			return out
		})

	planningLine = pc.Seq3(indent, pc.Many1(planningEntry), lineEnd,
		func(_ toks, ps []ast.Planning, _ none) []ast.Planning { return ps })

	todoPart     = pc.Seq2(pc.Kind(token.TodoKeyword), indent, first[token.Token, toks])
	priorityPart = pc.Seq2(pc.Kind(token.Priority), indent, first[token.Token, toks])
	titleTokens  = pc.Maybe(pc.Until(func(t token.Token) bool {
		return t.Is(token.TagString, token.LineBreak, token.EOF)
	}))

	heading = node(pc.Seq10(
		pc.Kind(token.HeadingStars),
		pc.Maybe(space),
		pc.Maybe(todoPart),
		pc.Maybe(priorityPart),
		titleTokens,
		pc.Maybe(pc.Kind(token.TagString)),
		indent,
		lineEnd,
		pc.Maybe(planningLine),
		pc.Maybe(propertyDrawer),
		buildHeading),
		func(h *ast.Heading, span ast.Span) *ast.Heading {
			h.Span = span
			return h
		})

	keywordLine = pc.Seq3(pc.Kind(token.FileKeyword, token.Keyword), pc.Maybe(pc.Until(isLineEnd)), lineEnd,
		func(k token.Token, v pc.Option[toks], _ none) *keyword {
			info, _ := k.Payload.(token.KeywordInfo)
			return &keyword{name: info.Name, value: trimSpace(optionTokens(v))}
		})

	preambleLine = pc.OneOf(
		keywordLine,
		pc.Map(commentLine, func(ast.Chunk) *keyword { return nil }),
		pc.Map(blankLine, func(none) *keyword { return nil }),
	)

	preamble = node(pc.Seq2(pc.Maybe(propertyDrawer), pc.Many(preambleLine), buildPreamble),
		func(p *ast.Preamble, span ast.Span) *ast.Preamble {
			p.Span = span
			return p
		})
)

type keyword struct {
	name  string
	value toks
}

func buildHeading(
	stars token.Token,
	_ pc.Option[token.Token],
	todo pc.Option[token.Token],
	priority pc.Option[token.Token],
	title pc.Option[toks],
	tags pc.Option[token.Token],
	_ toks,
	_ none,
	planning pc.Option[[]ast.Planning],
	props pc.Option[ast.Properties],
) *ast.Heading {
	info, _ := stars.Payload.(token.HeadingInfo)
	h := &ast.Heading{
		Depth: info.Depth,
		Title: Inlines(trimSpace(optionTokens(title))),
	}
	if t, ok := todo.Get(); ok {
		ti, _ := t.Payload.(token.TodoInfo)
		h.Todo, h.Done = ti.Keyword, ti.Done
	}
	if t, ok := priority.Get(); ok {
		pi, _ := t.Payload.(token.PriorityInfo)
		h.Priority = pi.Level
	}
	if t, ok := tags.Get(); ok {
		ti, _ := t.Payload.(token.TagsInfo)
		h.Tags = ti.Tags
	}
	h.Planning, _ = planning.Get()
	h.Properties, _ = props.Get()
	return h
}

func buildPreamble(props pc.Option[ast.Properties], lines []*keyword) *ast.Preamble {
	p := &ast.Preamble{Keywords: map[string]string{}}
	p.Properties, _ = props.Get()
	for _, kw := range lines {
		if kw == nil {
			continue
		}
		value := strings.TrimSpace(token.Join(kw.value))
		p.Keywords[kw.name] = value
		kind, _ := token.LookupKeyword(kw.name)
		switch kind {
		case token.KeywordTitle:
			p.TitleLine = Inlines(kw.value)
			p.Title = strings.TrimSpace(ast.PlainText(p.TitleLine))
			p.HasTitle = true
		case token.KeywordTags:
			p.Tags = SplitTags(value)
		case token.KeywordPile:
			p.Pile = ParsePile(value)
		}
	}
	if !p.HasTitle {
		p.Title = ast.UntitledTitle
	}
	return p
}

// SplitTags splits a TAGS or FILETAGS value. ":a:b:" and "a, b" both give
// [a b].
func SplitTags(v string) []string {
	sep := func(r rune) bool { return r == ',' || unicode.IsSpace(r) }
	if strings.Contains(v, ":") {
		sep = func(r rune) bool { return r == ':' || unicode.IsSpace(r) }
	}
	return strings.FieldsFunc(v, sep)
}

// ParsePile reads the key:value options of a #+PILE line. pinned is true
// only for "pinned:t".
func ParsePile(v string) ast.PileOptions {
	opts := ast.PileOptions{Options: map[string]string{}}
	for _, field := range strings.Fields(v) {
		key, val, ok := strings.Cut(field, ":")
		if !ok {
			continue
		}
		opts.Options[key] = val
		if strings.EqualFold(key, "pinned") {
			opts.Pinned = val == "t"
		}
	}
	return opts
}

// section is a heading deeper than parent with its body and child sections.
func section(parent int) pc.Parser[*ast.Section] {
	deeper := pc.Peek(pc.Match("heading", func(t token.Token) bool {
		info, ok := t.Payload.(token.HeadingInfo)
		return ok && t.Kind == token.HeadingStars && info.Depth > parent
	}))

	return pc.Bind(deeper, func(t token.Token) pc.Parser[*ast.Section] {
		depth := t.Payload.(token.HeadingInfo).Depth
		return node(pc.Seq3(heading, body, pc.Many(section(depth)),
			func(h *ast.Heading, chunks []ast.Chunk, children []*ast.Section) *ast.Section {
				return &ast.Section{Heading: h, Chunks: chunks, Children: children}
			}),
			func(s *ast.Section, span ast.Span) *ast.Section {
				s.Span = span
				return s
			})
	})
}
