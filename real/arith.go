// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"math/big"

	"robpike.io/creal/dyadic"
)

// Add returns an enclosure of a+b at the aligned exponent.
func (a Approx) Add(b Approx) Approx {
	if a.IsBottom() || b.IsBottom() {
		return Approx{}
	}
	r := min(a.s, b.s)
	m := new(big.Int).Lsh(a.m, uint(a.s-r))
	m.Add(m, new(big.Int).Lsh(b.m, uint(b.s-r)))
	e := new(big.Int).Lsh(a.e, uint(a.s-r))
	e.Add(e, new(big.Int).Lsh(b.e, uint(b.s-r)))
	return approxMB2(a.mb, b.mb, m, e, r)
}

func (a Approx) Sub(b Approx) Approx {
	return a.Add(b.Neg())
}

func (a Approx) Neg() Approx {
	if a.IsBottom() {
		return a
	}
	return Approx{a.mb, new(big.Int).Neg(a.m), a.e, a.s}
}

// Abs folds a sign-crossing interval to [0, |m|+e].
func (a Approx) Abs() Approx {
	if a.IsBottom() {
		return a
	}
	m := new(big.Int).Abs(a.m)
	if m.Cmp(a.e) < 0 {
		h := new(big.Int).Add(m, a.e)
		return Approx{a.mb, h, new(big.Int).Set(h), a.s - 1}
	}
	return Approx{a.mb, m, a.e, a.s}
}

// Signum returns the sign as an exact 0, ±1 when the interval
// determines it, [0±1] when it does not, and [0,±1] when the interval
// touches zero at one end. Signum of Bottom is [0±1], one of the two
// operations that do not propagate Bottom.
func (a Approx) Signum() Approx {
	if a.IsBottom() {
		return NewMB(64, 0, 1, 0)
	}
	am := new(big.Int).Abs(a.m)
	switch c := am.Cmp(a.e); {
	case a.e.Sign() == 0:
		return NewMB(a.mb, int64(a.m.Sign()), 0, 0)
	case c < 0:
		return NewMB(a.mb, 0, 1, 0)
	case c == 0:
		return NewMB(a.mb, int64(a.m.Sign()), 1, -1)
	}
	return NewMB(a.mb, int64(a.m.Sign()), 0, 0)
}

// Mul returns an enclosure of a·b, choosing the tightest
// midpoint/radius among the sign and zero-crossing combinations of
// the operands.
func (a Approx) Mul(b Approx) Approx {
	if a.IsBottom() || b.IsBottom() {
		return Approx{}
	}
	m, n, e, f := a.m, b.m, a.e, b.e
	u := a.s + b.s
	p := new(big.Int).Mul(m, n)  // midpoint product
	mf := new(big.Int).Mul(m, f) // midpoint of a times radius of b
	ne := new(big.Int).Mul(n, e)
	ef := new(big.Int).Mul(e, f)
	am := new(big.Int).Abs(m)
	an := new(big.Int).Abs(n)
	ab := new(big.Int).Abs(mf)
	ac := new(big.Int).Abs(ne)
	aAway := am.Cmp(e) >= 0
	bAway := an.Cmp(f) >= 0
	var mm, ee *big.Int
	switch {
	case aAway && bAway && p.Sign() > 0:
		mm = new(big.Int).Add(p, ef)
		ee = new(big.Int).Add(ab, ac)
	case aAway && bAway && p.Sign() < 0:
		mm = new(big.Int).Sub(p, ef)
		ee = new(big.Int).Add(ab, ac)
	case !aAway && n.Cmp(f) >= 0: // a crosses zero, b ≥ 0
		mm = new(big.Int).Add(p, mf)
		ee = new(big.Int).Add(ac, ef)
	case !aAway && n.Sign() <= 0 && an.Cmp(f) >= 0: // a crosses zero, b ≤ 0
		mm = new(big.Int).Sub(p, mf)
		ee = new(big.Int).Add(ac, ef)
	case !bAway && m.Cmp(e) >= 0: // a ≥ 0, b crosses zero
		mm = new(big.Int).Add(p, ne)
		ee = new(big.Int).Add(ab, ef)
	case !bAway && m.Sign() <= 0 && am.Cmp(e) >= 0: // a ≤ 0, b crosses zero
		mm = new(big.Int).Sub(p, ne)
		ee = new(big.Int).Add(ab, ef)
	case p.Sign() == 0:
		mm = new(big.Int)
		ee = new(big.Int).Add(ab, ac)
		ee.Add(ee, ef)
	default:
		// Both operands cross zero.
		lo, hi := ac, ab
		if ab.Cmp(ac) < 0 {
			lo, hi = ab, ac
		}
		if p.Sign() > 0 {
			mm = new(big.Int).Add(p, lo)
		} else {
			mm = new(big.Int).Sub(p, lo)
		}
		ee = new(big.Int).Add(hi, ef)
	}
	return approxMB2(a.mb, b.mb, mm, ee, u)
}

// Sqr returns a tight enclosure of a², avoiding the dependency
// inflation of a.Mul(a).
func (a Approx) Sqr() Approx {
	if a.IsBottom() {
		return a
	}
	am := new(big.Int).Abs(a.m)
	if am.Cmp(a.e) > 0 {
		m := new(big.Int).Mul(a.m, a.m)
		m.Add(m, new(big.Int).Mul(a.e, a.e))
		e := new(big.Int).Mul(am, a.e)
		e.Lsh(e, 1)
		return approxMB(a.mb, m, e, 2*a.s)
	}
	h := new(big.Int).Add(am, a.e)
	h.Mul(h, h)
	return approxMB(a.mb, h, new(big.Int).Set(h), 2*a.s-1)
}

// roundDiv returns num/den rounded to nearest, ties away from zero.
func roundDiv(num, den *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	r.Abs(r)
	r.Lsh(r, 1)
	d := new(big.Int).Abs(den)
	if r.Cmp(d) >= 0 {
		if (num.Sign() < 0) != (den.Sign() < 0) {
			q.Sub(q, bigOne)
		} else {
			q.Add(q, bigOne)
		}
	}
	return q
}

// ceilDiv returns ⌈num/den⌉ for num ≥ 0, den > 0.
func ceilDiv(num, den *big.Int) *big.Int {
	q := new(big.Int).Add(num, den)
	q.Sub(q, bigOne)
	return q.Quo(q, den)
}

// Recip returns an enclosure of 1/a. An interval containing zero has
// no reciprocal enclosure, so the result is Bottom; that includes the
// exact zero.
func (a Approx) Recip() Approx {
	if a.IsBottom() {
		return a
	}
	am := new(big.Int).Abs(a.m)
	switch {
	case a.e.Sign() == 0:
		if a.m.Sign() == 0 {
			// An interval containing zero, however thin.
			return Approx{}
		}
		k := dyadic.Ilog2(a.m)
		if pow := new(big.Int).Lsh(bigOne, uint(k)); am.Cmp(pow) == 0 {
			return Approx{a.mb, big.NewInt(int64(a.m.Sign())), new(big.Int), -a.s - k}
		}
		sp := a.mb + k + 2
		m := roundDiv(new(big.Int).Lsh(bigOne, uint(sp)), a.m)
		return approxMB(a.mb, m, big.NewInt(1), -a.s-sp)
	case am.Cmp(a.e) > 0:
		d := new(big.Int).Mul(a.m, a.m)
		d.Sub(d, new(big.Int).Mul(a.e, a.e))
		sp := dyadic.Ilog2(d) + 2*errorBits
		m := roundDiv(new(big.Int).Lsh(a.m, uint(sp)), d)
		e := ceilDiv(new(big.Int).Lsh(a.e, uint(sp)), d)
		e.Add(e, bigOne)
		return approxMB(a.mb, m, e, -a.s-sp)
	}
	return Approx{}
}

// Div returns an enclosure of a/b.
func (a Approx) Div(b Approx) Approx {
	if a.IsBottom() || b.IsBottom() {
		return Approx{}
	}
	return a.Mul(setMB(max(a.mb, b.mb), b).Recip())
}

// DivMod returns the integer quotient and remainder of the aligned
// midpoints, quotient exact, remainder widened to cover the divisor's
// radius.
func (a Approx) DivMod(b Approx) (q, r Approx) {
	if a.IsBottom() || b.IsBottom() {
		return Approx{}, Approx{}
	}
	s := min(a.s, b.s)
	am := new(big.Int).Lsh(a.m, uint(a.s-s))
	bm := new(big.Int).Lsh(b.m, uint(b.s-s))
	if bm.Sign() == 0 {
		Errorf("division by zero interval")
	}
	d, rem := new(big.Int).DivMod(am, bm, new(big.Int))
	e := new(big.Int).Lsh(a.e, uint(a.s-s))
	de := new(big.Int).Abs(d)
	de.Mul(de, new(big.Int).Lsh(b.e, uint(b.s-s)))
	e.Add(e, de)
	return FromBigInt(d), approxMB2(a.mb, b.mb, rem, e, s)
}

// Mod returns the remainder of DivMod.
func (a Approx) Mod(b Approx) Approx {
	_, r := a.DivMod(b)
	return r
}

// mulInt returns a·v, exactly.
func (a Approx) mulInt(v int64) Approx {
	if a.IsBottom() {
		return a
	}
	w := big.NewInt(v)
	m := new(big.Int).Mul(a.m, w)
	e := new(big.Int).Mul(a.e, w.Abs(w))
	return approxMB(a.mb, m, e, a.s)
}

// ratGuard picks the shift for the rounded rational scalings below:
// enough to absorb the divisor and to keep a full mb of significance
// even when the midpoint is a small integer.
func (a Approx) ratGuard(q *big.Int) int {
	return q.BitLen() + 2 + max(0, a.mb-a.m.BitLen())
}

// mulRat returns an enclosure of a·p/q for q > 0, carrying enough
// fraction bits that only rounding noise is added.
func (a Approx) mulRat(p, q int64) Approx {
	if a.IsBottom() {
		return a
	}
	bq := big.NewInt(q)
	g := a.ratGuard(bq)
	m := new(big.Int).Mul(a.m, big.NewInt(p))
	m.Lsh(m, uint(g))
	m = roundDiv(m, bq)
	ap := p
	if ap < 0 {
		ap = -ap
	}
	e := new(big.Int).Mul(a.e, big.NewInt(ap))
	e.Lsh(e, uint(g))
	e = ceilDiv(e, bq)
	e.Add(e, bigOne)
	return approxMB(a.mb, m, e, a.s-g)
}

// divBig returns an enclosure of a/q for a big integer q > 0.
func (a Approx) divBig(q *big.Int) Approx {
	if a.IsBottom() {
		return a
	}
	g := a.ratGuard(q)
	m := roundDiv(new(big.Int).Lsh(a.m, uint(g)), q)
	e := ceilDiv(new(big.Int).Lsh(a.e, uint(g)), q)
	e.Add(e, bigOne)
	return approxMB(a.mb, m, e, a.s-g)
}

// powInt returns a tight enclosure of aⁿ for n ≥ 0, computed from the
// interval endpoints rather than by iterated multiplication.
func (a Approx) powInt(n int) Approx {
	switch {
	case n == 0:
		return FromInt64(1)
	case n == 1 || a.IsBottom():
		return a
	}
	lo := new(big.Int).Sub(a.m, a.e)
	hi := new(big.Int).Add(a.m, a.e)
	return powEnds(a.mb, lo, hi, a.s, n)
}

// powers returns tight enclosures of a⁰ … aⁿ.
func powers(a Approx, n int) []Approx {
	ps := make([]Approx, n+1)
	ps[0] = FromInt64(1)
	if n == 0 {
		return ps
	}
	ps[1] = a
	if a.IsBottom() {
		for i := 2; i <= n; i++ {
			ps[i] = Approx{}
		}
		return ps
	}
	lo := new(big.Int).Sub(a.m, a.e)
	hi := new(big.Int).Add(a.m, a.e)
	for i := 2; i <= n; i++ {
		ps[i] = powEnds(a.mb, lo, hi, a.s, i)
	}
	return ps
}

// powEnds returns the hull of x^n over x in [lo, hi]·2^s.
func powEnds(mb int, lo, hi *big.Int, s, n int) Approx {
	absPow := func(x *big.Int) *big.Int {
		return new(big.Int).Exp(new(big.Int).Abs(x), big.NewInt(int64(n)), nil)
	}
	u := s * n
	if n%2 == 1 {
		l := absPow(lo)
		if lo.Sign() < 0 {
			l.Neg(l)
		}
		h := absPow(hi)
		if hi.Sign() < 0 {
			h.Neg(h)
		}
		m := new(big.Int).Add(l, h)
		e := new(big.Int).Sub(h, l)
		return approxMB(mb, m, e, u-1)
	}
	pl, ph := absPow(lo), absPow(hi)
	top := pl
	if ph.Cmp(pl) > 0 {
		top = ph
	}
	bot := new(big.Int)
	if lo.Sign() > 0 || hi.Sign() < 0 {
		bot = pl
		if ph.Cmp(pl) < 0 {
			bot = ph
		}
	}
	m := new(big.Int).Add(top, bot)
	e := new(big.Int).Sub(top, bot)
	return approxMB(mb, m, e, u-1)
}

// poly evaluates the polynomial with coefficients as (constant term
// first) at x: exactly at the midpoint, plus a dependency error
// bounded by the derivative's magnitude over x times the radius.
func poly(as []Approx, x Approx) Approx {
	if len(as) == 0 {
		return FromInt64(0)
	}
	if x.IsBottom() {
		return Approx{}
	}
	for _, c := range as {
		if c.IsBottom() {
			return Approx{}
		}
	}
	xc := exactAt(x.MB(), x.Centre())
	pc := powers(xc, len(as)-1)
	p := as[0]
	for i := 1; i < len(as); i++ {
		p = p.Add(as[i].Mul(pc[i]))
	}
	if x.Exact() || len(as) == 1 {
		return p
	}
	// Bound |p'| over x.
	px := powers(x, len(as)-2)
	dp := as[1]
	for i := 2; i < len(as); i++ {
		dp = dp.Add(as[i].mulInt(int64(i)).Mul(px[i-1]))
	}
	mag := new(big.Int).Abs(dp.m)
	mag.Add(mag, dp.e)
	err := dyadic.Dyadic{Mant: mag.Mul(mag, x.e), Exp: dp.s + x.s}
	return p.widenBy(err)
}

// widenBy enlarges the radius of a by the nonnegative dyadic d.
func (a Approx) widenBy(d dyadic.Dyadic) Approx {
	if a.IsBottom() {
		return a
	}
	if d.Sign() < 0 {
		Errorf("negative widening")
	}
	var e *big.Int
	if k := d.Exp - a.s; k >= 0 {
		e = new(big.Int).Lsh(d.Mant, uint(k))
	} else {
		e = ceilShift(d.Mant, uint(-k))
	}
	e.Add(e, a.e)
	return approxMB(a.mb, new(big.Int).Set(a.m), e, a.s)
}
