package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/orgparse/internal/token"
)

func sampleTokens() []token.Token {
	return []token.Token{
		{Kind: token.Text, Text: "one", Start: 0, End: 3},
		{Kind: token.Space, Text: " ", Start: 3, End: 4},
		{Kind: token.Text, Text: "two", Start: 4, End: 7},
	}
}

func TestSpan(t *testing.T) {
	s := NewSpan(sampleTokens())
	start, end := s.Range()
	assert.Equal(t, 0, start)
	assert.Equal(t, 7, end)
	assert.Equal(t, "one two", s.Source())
	assert.True(t, s.Contains(6))
	assert.False(t, s.Contains(7))
	assert.False(t, Span{}.Contains(0))
}

func TestJoinSpans(t *testing.T) {
	toks := sampleTokens()

	tests := []struct {
		name    string
		a, b    Span
		want    string
		aliased bool
	}{
		{name: "adjacent", a: NewSpan(toks[:1]), b: NewSpan(toks[1:]), want: "one two", aliased: true},
		{name: "not adjacent", a: NewSpan(toks[:1]), b: NewSpan(toks[2:]), want: "onetwo"},
		{name: "empty left", a: Span{}, b: NewSpan(toks[2:]), want: "two", aliased: false},
		{name: "empty right", a: NewSpan(toks[:2]), b: Span{}, want: "one ", aliased: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := JoinSpans(tt.a, tt.b)
			assert.Equal(t, tt.want, j.Source())
			require.NotEmpty(t, j.Tokens())
			if tt.aliased {
				assert.Same(t, &toks[0], &j.Tokens()[0])
			} else {
				assert.NotSame(t, &toks[0], &j.Tokens()[0])
			}
		})
	}
}

func TestPropertiesGet(t *testing.T) {
	props := Properties{
		{Key: "ID", Value: "first"},
		{Key: "Category", Value: "notes"},
		{Key: "id", Value: "second"},
	}

	tests := []struct {
		key    string
		want   string
		wantOk bool
	}{
		{key: "ID", want: "second", wantOk: true},
		{key: "category", want: "notes", wantOk: true},
		{key: "missing", want: "", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := props.Get(tt.key)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, map[string]string{"ID": "first", "Category": "notes", "id": "second"}, props.Map())
}

func TestWalk(t *testing.T) {
	inner := &Paragraph{}
	rule := &HorizontalRule{}
	block := &Block{Name: "QUOTE", Chunks: []Chunk{inner}}
	list := &List{Items: []*ListItem{{Chunks: []Chunk{rule}}}}
	chunks := []Chunk{&Paragraph{}, block, list}

	var visited []Chunk
	Walk(chunks, func(c Chunk) bool {
		visited = append(visited, c)
		return true
	})
	assert.Len(t, visited, 5)
	assert.Contains(t, visited, Chunk(inner))
	assert.Contains(t, visited, Chunk(rule))

	visited = nil
	Walk(chunks, func(c Chunk) bool {
		visited = append(visited, c)
		_, isBlock := c.(*Block)
		return !isBlock
	})
	assert.Len(t, visited, 4)
	assert.NotContains(t, visited, Chunk(inner))
}
