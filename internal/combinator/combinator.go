// Package combinator provides generic parser combinators over token lists.
//
// A parser reads from a token slice at a position and either succeeds with
// a value and the position after what it consumed, or fails with a
// *Failure. Parsers never mutate the token slice and never consume input
// on failure, so alternation needs no rollback: the next alternative simply
// starts from the same position.
package combinator

import (
	"errors"
	"fmt"

	"github.com/gerunddev/orgparse/internal/token"
)

// ErrNoMatch is wrapped by failures from OneOf when every alternative failed.
var ErrNoMatch = errors.New("no alternative matched")

// Parser is implemented by anything that can parse a T from toks at pos.
type Parser[T any] interface {
	Parse(toks []token.Token, pos int) (Result[T], error)
}

// Func adapts an ordinary function to the Parser interface.
type Func[T any] func(toks []token.Token, pos int) (Result[T], error)

// Parse calls f.
func (f Func[T]) Parse(toks []token.Token, pos int) (Result[T], error) {
	return f(toks, pos)
}

// Result is a successful parse. Next is the position after the consumed
// tokens; it equals the start position when nothing was consumed.
type Result[T any] struct {
	Value T
	Next  int
}

// Failure is the error returned by a parser that did not match.
type Failure struct {
	Message string
	Pos     int
	Token   token.Token
	cause   error
}

func (f *Failure) Error() string {
	if f.Token.Kind == token.EOF {
		return fmt.Sprintf("%s at end of input", f.Message)
	}
	return fmt.Sprintf("%s at offset %d (%s %q)", f.Message, f.Token.Start, f.Token.Kind, f.Token.Text)
}

func (f *Failure) Unwrap() error { return f.cause }

func failAt(toks []token.Token, pos int, msg string) *Failure {
	return &Failure{Message: msg, Pos: pos, Token: at(toks, pos)}
}

// at returns the token at pos, or a synthetic EOF past the end.
func at(toks []token.Token, pos int) token.Token {
	if pos >= 0 && pos < len(toks) {
		return toks[pos]
	}
	end := 0
	if len(toks) > 0 {
		end = toks[len(toks)-1].End
	}
	return token.Token{Kind: token.EOF, Start: end, End: end}
}

// Run applies p from the first token and returns its value.
func Run[T any](p Parser[T], toks []token.Token) (T, error) {
	r, err := p.Parse(toks, 0)
	return r.Value, err
}

// Succeed consumes nothing and returns v.
func Succeed[T any](v T) Parser[T] {
	return Func[T](func(_ []token.Token, pos int) (Result[T], error) {
		return Result[T]{Value: v, Next: pos}, nil
	})
}

// Fail always fails with msg.
func Fail[T any](msg string) Parser[T] {
	return Func[T](func(toks []token.Token, pos int) (Result[T], error) {
		return Result[T]{}, failAt(toks, pos, msg)
	})
}

// Match consumes one token if pred accepts it. what names the expected
// token in the failure message.
func Match(what string, pred func(token.Token) bool) Parser[token.Token] {
	return Func[token.Token](func(toks []token.Token, pos int) (Result[token.Token], error) {
		if pos < len(toks) && pred(toks[pos]) {
			return Result[token.Token]{Value: toks[pos], Next: pos + 1}, nil
		}
		return Result[token.Token]{}, failAt(toks, pos, "expected "+what)
	})
}

// Kind matches one token of any of the given kinds.
func Kind(kinds ...token.Kind) Parser[token.Token] {
	what := "token"
	if len(kinds) > 0 {
		what = kinds[0].String()
		for _, k := range kinds[1:] {
			what += " or " + k.String()
		}
	}
	return Match(what, func(t token.Token) bool { return t.Is(kinds...) })
}

// Any matches any single token except EOF.
func Any() Parser[token.Token] {
	return Match("any token", func(t token.Token) bool { return t.Kind != token.EOF })
}

// Until collects tokens up to, but not including, the first one accepted
// by stop (or the end of the slice). It fails when nothing was collected.
func Until(stop func(token.Token) bool) Parser[[]token.Token] {
	return Func[[]token.Token](func(toks []token.Token, pos int) (Result[[]token.Token], error) {
		end := pos
		for end < len(toks) && !stop(toks[end]) {
			end++
		}
		if end == pos {
			return Result[[]token.Token]{}, failAt(toks, pos, "expected at least one token")
		}
		return Result[[]token.Token]{Value: toks[pos:end], Next: end}, nil
	})
}
