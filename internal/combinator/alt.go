package combinator

import "github.com/gerunddev/orgparse/internal/token"

// OneOf tries each parser in order from the same position and returns the
// first success. Order is the only way ambiguity is resolved.
func OneOf[T any](ps ...Parser[T]) Parser[T] {
	return Func[T](func(toks []token.Token, pos int) (Result[T], error) {
		for _, p := range ps {
			if r, err := p.Parse(toks, pos); err == nil {
				return r, nil
			}
		}
		f := failAt(toks, pos, ErrNoMatch.Error())
		f.cause = ErrNoMatch
		return Result[T]{}, f
	})
}

// Many applies p until it fails and returns every value collected, possibly
// none. It never fails. A success that consumes nothing ends the loop.
func Many[T any](p Parser[T]) Parser[[]T] {
	return Func[[]T](func(toks []token.Token, pos int) (Result[[]T], error) {
		var out []T
		for {
			r, err := p.Parse(toks, pos)
			if err != nil || r.Next == pos {
				return Result[[]T]{Value: out, Next: pos}, nil
			}
			out = append(out, r.Value)
			pos = r.Next
		}
	})
}

// Many1 is Many with at least one mandatory match.
func Many1[T any](p Parser[T]) Parser[[]T] {
	rest := Many(p)
	return Func[[]T](func(toks []token.Token, pos int) (Result[[]T], error) {
		first, err := p.Parse(toks, pos)
		if err != nil {
			return Result[[]T]{}, err
		}
		more, _ := rest.Parse(toks, first.Next)
		return Result[[]T]{Value: append([]T{first.Value}, more.Value...), Next: more.Next}, nil
	})
}

// Option is the result of Maybe.
type Option[T any] struct {
	Value T
	Ok    bool
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.Value, o.Ok }

// Some wraps a present value.
func Some[T any](v T) Option[T] { return Option[T]{Value: v, Ok: true} }

// Maybe never fails: it returns an empty Option without consuming anything
// when p fails.
func Maybe[T any](p Parser[T]) Parser[Option[T]] {
	return Func[Option[T]](func(toks []token.Token, pos int) (Result[Option[T]], error) {
		r, err := p.Parse(toks, pos)
		if err != nil {
			return Result[Option[T]]{Next: pos}, nil
		}
		return Result[Option[T]]{Value: Some(r.Value), Next: r.Next}, nil
	})
}

// Not succeeds without consuming anything when p fails, and fails when p
// succeeds.
func Not[T any](p Parser[T]) Parser[struct{}] {
	return Func[struct{}](func(toks []token.Token, pos int) (Result[struct{}], error) {
		if _, err := p.Parse(toks, pos); err == nil {
			return Result[struct{}]{}, failAt(toks, pos, "unexpected input")
		}
		return Result[struct{}]{Next: pos}, nil
	})
}

// Peek runs p but does not consume what it matched.
func Peek[T any](p Parser[T]) Parser[T] {
	return Func[T](func(toks []token.Token, pos int) (Result[T], error) {
		r, err := p.Parse(toks, pos)
		if err != nil {
			return Result[T]{}, err
		}
		return Result[T]{Value: r.Value, Next: pos}, nil
	})
}
