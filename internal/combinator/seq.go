package combinator

import "github.com/gerunddev/orgparse/internal/token"

// Seq2 runs pa then pb and combines their values with f. The first
// failure is returned unchanged.
func Seq2[A, B, R any](pa Parser[A], pb Parser[B], f func(A, B) R) Parser[R] {
	return Func[R](func(toks []token.Token, pos int) (Result[R], error) {
		ra, err := pa.Parse(toks, pos)
		if err != nil {
			return Result[R]{}, err
		}
		rb, err := pb.Parse(toks, ra.Next)
		if err != nil {
			return Result[R]{}, err
		}
		return Result[R]{Value: f(ra.Value, rb.Value), Next: rb.Next}, nil
	})
}

// Seq3 is Seq2 over 3 parsers.
func Seq3[A, B, C, R any](pa Parser[A], pb Parser[B], pc Parser[C], f func(A, B, C) R) Parser[R] {
	return Func[R](func(toks []token.Token, pos int) (Result[R], error) {
		ra, err := pa.Parse(toks, pos)
		if err != nil {
			return Result[R]{}, err
		}
		rb, err := pb.Parse(toks, ra.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rc, err := pc.Parse(toks, rb.Next)
		if err != nil {
			return Result[R]{}, err
		}
		return Result[R]{Value: f(ra.Value, rb.Value, rc.Value), Next: rc.Next}, nil
	})
}

// Seq4 is Seq2 over 4 parsers.
func Seq4[A, B, C, D, R any](pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D], f func(A, B, C, D) R) Parser[R] {
	return Func[R](func(toks []token.Token, pos int) (Result[R], error) {
		ra, err := pa.Parse(toks, pos)
		if err != nil {
			return Result[R]{}, err
		}
		rb, err := pb.Parse(toks, ra.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rc, err := pc.Parse(toks, rb.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rd, err := pd.Parse(toks, rc.Next)
		if err != nil {
			return Result[R]{}, err
		}
		return Result[R]{Value: f(ra.Value, rb.Value, rc.Value, rd.Value), Next: rd.Next}, nil
	})
}

// Seq5 is Seq2 over 5 parsers.
func Seq5[A, B, C, D, E, R any](pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D], pe Parser[E], f func(A, B, C, D, E) R) Parser[R] {
	return Func[R](func(toks []token.Token, pos int) (Result[R], error) {
		ra, err := pa.Parse(toks, pos)
		if err != nil {
			return Result[R]{}, err
		}
		rb, err := pb.Parse(toks, ra.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rc, err := pc.Parse(toks, rb.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rd, err := pd.Parse(toks, rc.Next)
		if err != nil {
			return Result[R]{}, err
		}
		re, err := pe.Parse(toks, rd.Next)
		if err != nil {
			return Result[R]{}, err
		}
		return Result[R]{Value: f(ra.Value, rb.Value, rc.Value, rd.Value, re.Value), Next: re.Next}, nil
	})
}

// Seq6 is Seq2 over 6 parsers.
func Seq6[A, B, C, D, E, F, R any](pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D], pe Parser[E], pf Parser[F], f func(A, B, C, D, E, F) R) Parser[R] {
	return Func[R](func(toks []token.Token, pos int) (Result[R], error) {
		ra, err := pa.Parse(toks, pos)
		if err != nil {
			return Result[R]{}, err
		}
		rb, err := pb.Parse(toks, ra.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rc, err := pc.Parse(toks, rb.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rd, err := pd.Parse(toks, rc.Next)
		if err != nil {
			return Result[R]{}, err
		}
		re, err := pe.Parse(toks, rd.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rf, err := pf.Parse(toks, re.Next)
		if err != nil {
			return Result[R]{}, err
		}
		return Result[R]{Value: f(ra.Value, rb.Value, rc.Value, rd.Value, re.Value, rf.Value), Next: rf.Next}, nil
	})
}

// Seq7 is Seq2 over 7 parsers.
func Seq7[A, B, C, D, E, F, G, R any](pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D], pe Parser[E], pf Parser[F], pg Parser[G], f func(A, B, C, D, E, F, G) R) Parser[R] {
	return Func[R](func(toks []token.Token, pos int) (Result[R], error) {
		ra, err := pa.Parse(toks, pos)
		if err != nil {
			return Result[R]{}, err
		}
		rb, err := pb.Parse(toks, ra.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rc, err := pc.Parse(toks, rb.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rd, err := pd.Parse(toks, rc.Next)
		if err != nil {
			return Result[R]{}, err
		}
		re, err := pe.Parse(toks, rd.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rf, err := pf.Parse(toks, re.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rg, err := pg.Parse(toks, rf.Next)
		if err != nil {
			return Result[R]{}, err
		}
		return Result[R]{Value: f(ra.Value, rb.Value, rc.Value, rd.Value, re.Value, rf.Value, rg.Value), Next: rg.Next}, nil
	})
}

// Seq8 is Seq2 over 8 parsers.
func Seq8[A, B, C, D, E, F, G, H, R any](pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D], pe Parser[E], pf Parser[F], pg Parser[G], ph Parser[H], f func(A, B, C, D, E, F, G, H) R) Parser[R] {
	return Func[R](func(toks []token.Token, pos int) (Result[R], error) {
		ra, err := pa.Parse(toks, pos)
		if err != nil {
			return Result[R]{}, err
		}
		rb, err := pb.Parse(toks, ra.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rc, err := pc.Parse(toks, rb.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rd, err := pd.Parse(toks, rc.Next)
		if err != nil {
			return Result[R]{}, err
		}
		re, err := pe.Parse(toks, rd.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rf, err := pf.Parse(toks, re.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rg, err := pg.Parse(toks, rf.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rh, err := ph.Parse(toks, rg.Next)
		if err != nil {
			return Result[R]{}, err
		}
		return Result[R]{Value: f(ra.Value, rb.Value, rc.Value, rd.Value, re.Value, rf.Value, rg.Value, rh.Value), Next: rh.Next}, nil
	})
}

// Seq9 is Seq2 over 9 parsers.
func Seq9[A, B, C, D, E, F, G, H, I, R any](pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D], pe Parser[E], pf Parser[F], pg Parser[G], ph Parser[H], pi Parser[I], f func(A, B, C, D, E, F, G, H, I) R) Parser[R] {
	return Func[R](func(toks []token.Token, pos int) (Result[R], error) {
		ra, err := pa.Parse(toks, pos)
		if err != nil {
			return Result[R]{}, err
		}
		rb, err := pb.Parse(toks, ra.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rc, err := pc.Parse(toks, rb.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rd, err := pd.Parse(toks, rc.Next)
		if err != nil {
			return Result[R]{}, err
		}
		re, err := pe.Parse(toks, rd.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rf, err := pf.Parse(toks, re.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rg, err := pg.Parse(toks, rf.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rh, err := ph.Parse(toks, rg.Next)
		if err != nil {
			return Result[R]{}, err
		}
		ri, err := pi.Parse(toks, rh.Next)
		if err != nil {
			return Result[R]{}, err
		}
		return Result[R]{Value: f(ra.Value, rb.Value, rc.Value, rd.Value, re.Value, rf.Value, rg.Value, rh.Value, ri.Value), Next: ri.Next}, nil
	})
}

// Seq10 is Seq2 over 10 parsers.
func Seq10[A, B, C, D, E, F, G, H, I, J, R any](pa Parser[A], pb Parser[B], pc Parser[C], pd Parser[D], pe Parser[E], pf Parser[F], pg Parser[G], ph Parser[H], pi Parser[I], pj Parser[J], f func(A, B, C, D, E, F, G, H, I, J) R) Parser[R] {
	return Func[R](func(toks []token.Token, pos int) (Result[R], error) {
		ra, err := pa.Parse(toks, pos)
		if err != nil {
			return Result[R]{}, err
		}
		rb, err := pb.Parse(toks, ra.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rc, err := pc.Parse(toks, rb.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rd, err := pd.Parse(toks, rc.Next)
		if err != nil {
			return Result[R]{}, err
		}
		re, err := pe.Parse(toks, rd.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rf, err := pf.Parse(toks, re.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rg, err := pg.Parse(toks, rf.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rh, err := ph.Parse(toks, rg.Next)
		if err != nil {
			return Result[R]{}, err
		}
		ri, err := pi.Parse(toks, rh.Next)
		if err != nil {
			return Result[R]{}, err
		}
		rj, err := pj.Parse(toks, ri.Next)
		if err != nil {
			return Result[R]{}, err
		}
		return Result[R]{Value: f(ra.Value, rb.Value, rc.Value, rd.Value, re.Value, rf.Value, rg.Value, rh.Value, ri.Value, rj.Value), Next: rj.Next}, nil
	})
}
