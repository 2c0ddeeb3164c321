package combinator

import (
	"sync"

	"github.com/gerunddev/orgparse/internal/token"
)

// Map transforms the value of a successful parse.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return Func[U](func(toks []token.Token, pos int) (Result[U], error) {
		r, err := p.Parse(toks, pos)
		if err != nil {
			return Result[U]{}, err
		}
		return Result[U]{Value: f(r.Value), Next: r.Next}, nil
	})
}

// Bind runs p, then the parser chosen by f from p's value, starting where p
// stopped.
func Bind[T, U any](p Parser[T], f func(T) Parser[U]) Parser[U] {
	return Func[U](func(toks []token.Token, pos int) (Result[U], error) {
		r, err := p.Parse(toks, pos)
		if err != nil {
			return Result[U]{}, err
		}
		return f(r.Value).Parse(toks, r.Next)
	})
}

// Lazy defers building a parser until it is first used, which lets
// mutually recursive rules refer to each other.
func Lazy[T any](f func() Parser[T]) Parser[T] {
	var (
		once sync.Once
		p    Parser[T]
	)
	return Func[T](func(toks []token.Token, pos int) (Result[T], error) {
		once.Do(func() { p = f() })
		return p.Parse(toks, pos)
	})
}

// Spanned pairs a value with the tokens consumed to produce it.
type Spanned[T any] struct {
	Value  T
	Tokens []token.Token
}

// WithSpan runs p and records the consumed tokens alongside its value.
func WithSpan[T any](p Parser[T]) Parser[Spanned[T]] {
	return Func[Spanned[T]](func(toks []token.Token, pos int) (Result[Spanned[T]], error) {
		r, err := p.Parse(toks, pos)
		if err != nil {
			return Result[Spanned[T]]{}, err
		}
		return Result[Spanned[T]]{
			Value: Spanned[T]{Value: r.Value, Tokens: toks[pos:r.Next]},
			Next:  r.Next,
		}, nil
	})
}

// Skip discards the value of p.
func Skip[T any](p Parser[T]) Parser[struct{}] {
	return Map(p, func(T) struct{} { return struct{}{} })
}
