// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"math/big"

	"robpike.io/creal/dyadic"
)

// Log2A returns an enclosure of ln 2 with res bits of precision.
func Log2A(res int) Approx {
	d, err := dyadic.Ln2(-res - errorBits)
	return boundErrorTerm(approxAutoMB(d.Mant, big.NewInt(err), d.Exp))
}

// logDomain screens the argument of the logarithms: a strictly
// nonpositive interval is a domain error, an interval reaching zero
// or below yields Bottom. It reports whether the caller must return
// the (Bottom) screen result.
func logDomain(a Approx) (Approx, bool) {
	if a.IsBottom() {
		return a, true
	}
	if a.Upper().Dyadic().Sign() <= 0 {
		Errorf("log of nonpositive interval")
	}
	if a.Lower().Dyadic().Sign() <= 0 {
		return Approx{}, true
	}
	return Approx{}, false
}

// LogA returns an enclosure of ln a using the identity
// ln x = 2·atanh((x-1)/(x+1)) after scaling the argument into
// [2/3, 4/3], plus the power-of-two correction r·ln 2. Thick
// arguments evaluate at both endpoints, since ln is monotone.
func LogA(res int, a Approx) Approx {
	if screen, done := logDomain(a); done {
		return screen
	}
	if !a.Exact() {
		l := LogA(res, exactAt(a.mb, a.Lower().Dyadic()))
		u := LogA(res, exactAt(a.mb, a.Upper().Dyadic()))
		return l.Union(u)
	}
	x := a.Centre().Normalize()
	if x.Mant.Cmp(bigOne) == 0 && x.Exp == 0 {
		return setMB(a.mb, FromInt64(0))
	}
	m3 := new(big.Int).Mul(bigThree, x.Mant)
	r := x.Exp + dyadic.Ilog2(m3) - 1
	xr := x.Shift(-r) // in [2/3, 4/3]
	tp := -(res + errorBits + 6)
	one := dyadic.New(1, 0)
	y := dyadic.Div(tp, xr.Sub(one), xr.Add(one)) // |y| ≤ 1/5 + ulp
	at, aerr := dyadic.Atanh(tp, y)
	// The one-ulp rounding of y passes through atanh with derivative
	// below 2 on |y| ≤ 1/5.
	e := big.NewInt(aerr)
	e.Add(e, new(big.Int).Lsh(bigOne, uint(tp-at.Exp+1)))
	z := approxAutoMB(at.Mant, e, at.Exp).Scale(1)
	if r != 0 {
		z = z.Add(Log2A(res + errorBits).mulInt(int64(r)))
	}
	return boundErrorTerm(setMB(max(a.mb, res), z))
}

// LogAgmA returns an enclosure of ln a by the arithmetic-geometric
// mean: ln X ≈ π/(2·AGM(1, 4/X)) once X is pushed far above 2^(res/2).
// It overtakes LogA in the thousands of bits.
func LogAgmA(res int, a Approx) Approx {
	if screen, done := logDomain(a); done {
		return screen
	}
	if !a.Exact() {
		l := LogAgmA(res, exactAt(a.mb, a.Lower().Dyadic()))
		u := LogAgmA(res, exactAt(a.mb, a.Upper().Dyadic()))
		return l.Union(u)
	}
	two := dyadic.New(2, 0)
	three := dyadic.New(3, 0)
	switch x := a.Centre(); {
	case x.Cmp(two) > 0:
		return lnLarge(res, a)
	case x.Cmp(three) < 0:
		return lnSmall(res, a)
	}
	Errorf("logAgm: argument out of range")
	panic("unreachable")
}

// lnSmall handles 0 < x < 3 by scaling x up by 2^k and subtracting
// k·ln 2.
func lnSmall(res int, a Approx) Approx {
	x := a.Centre()
	h := dyadic.Ilog2(x.Mant) + x.Exp
	k := (res+20)/2 + 3 - h
	z := agmLn(res, setMB(max(a.mb, res), a.Scale(k)))
	return boundErrorTerm(z.Sub(Log2A(res + errorBits).mulInt(int64(k))))
}

// lnLarge handles x > 2 by repeated squaring: ln x = ln(x^(2^j))/2^j.
func lnLarge(res int, a Approx) Approx {
	x := a.Centre()
	h := max(1, dyadic.Ilog2(x.Mant)+x.Exp)
	target := (res+60)/2 + 8
	j := 0
	y := setMB(max(a.mb, res+20), a)
	for bits := h; bits < target; bits *= 2 {
		y = boundErrorTermMB(y.Sqr())
		j++
	}
	return boundErrorTerm(agmLn(res+j, y).Scale(-j))
}

// agmLn applies the asymptotic identity ln X ≈ π/(2·AGM(1, 4/X)),
// valid to below the target precision once X ≥ 2^((res+20)/2+2).
func agmLn(res int, x Approx) Approx {
	w := res + 30
	four := setMB(w, x).Recip().Scale(2)
	g := agmA(w, setMB(w, FromInt64(1)), four)
	z := PiA(w).Div(g.Scale(1))
	return z.widenBy(dyadic.New(1, -res-8))
}

// agmA iterates (a, b) → ((a+b)/2, √(a·b)) until the pair agrees to
// the working precision and returns their hull, which encloses the
// common limit throughout. Both arguments must be positive, a ≥ b.
func agmA(res int, a, b Approx) Approx {
	working := res + 2*errorBits
	// A small b carries fewer significant bits at a fixed absolute
	// precision; widen by its leading fraction zeros so the pair can
	// reach agreement at res bits.
	if !b.IsBottom() && b.m.Sign() != 0 {
		if lead := dyadic.Ilog2(b.m) + b.s; lead < 0 {
			working -= lead
		}
	}
	for i := 0; i < maxTerms; i++ {
		if magBelow(a.Sub(b), -res-2) {
			break
		}
		a, b = limitAndBound(working, a.Add(b).Scale(-1)),
			limitAndBound(working, SqrtA(working, a.Mul(b)))
	}
	return a.Union(b)
}
