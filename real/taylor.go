// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"math/big"

	"robpike.io/creal/dyadic"
)

// maxTerms bounds every series loop. The series here converge at
// least geometrically, so hitting the bound means a broken reduction.
const maxTerms = 1 << 20

// magBelow reports whether |x| < 2^p for every x in a, i.e. the whole
// interval is below the threshold in magnitude.
func magBelow(a Approx, p int) bool {
	if a.IsBottom() {
		return false
	}
	u := new(big.Int).Abs(a.m)
	u.Add(u, a.e)
	if u.Sign() == 0 {
		return true
	}
	return dyadic.Ilog2(u)+1+a.s <= p
}

// fudge widens partial so that its radius also covers twice the first
// omitted term plus one ulp, the tail bound for a series whose terms
// shrink by at least half.
func fudge(partial, next Approx) Approx {
	if partial.IsBottom() || next.IsBottom() {
		return Approx{}
	}
	w := new(big.Int).Abs(next.m)
	w.Add(w, next.e)
	w.Lsh(w, 1) // the whole tail is within twice the omitted term
	if k := next.s - partial.s; k >= 0 {
		w.Lsh(w, uint(k))
	} else {
		w = ceilShift(w, uint(-k))
	}
	e := new(big.Int).Add(partial.e, w)
	e.Add(e, bigOne)
	return Approx{partial.mb, partial.m, e, partial.s}
}

// taylor sums the series Σ aₙ/qₙ, adding terms while they are
// non-zero at res bits and then fudging by the first omitted term.
// The term generator must eventually satisfy
// |aₙ₊₁/qₙ₊₁| ≤ ½·|aₙ/qₙ|.
func taylor(res int, term func(n int) (Approx, *big.Int)) Approx {
	working := res + errorBits
	sum := setMB(working, FromInt64(0))
	for n := 0; ; n++ {
		a, q := term(n)
		t := setMB(working, a).divBig(q)
		if magBelow(t, -res) {
			return fudge(sum, t)
		}
		sum = limitAndBound(working, sum.Add(t))
		if n >= maxTerms {
			Errorf("taylor: series did not converge")
		}
	}
}

// taylorA sums Σ cₙ·xⁿ where the coefficient ratio cₙ₊₁/cₙ is the
// rational ratio(n). Series over even or odd powers only pass the
// already-squared argument.
func taylorA(res int, x Approx, ratio func(n int) (p, q int64)) Approx {
	working := res + errorBits
	sum := setMB(working, FromInt64(0))
	t := setMB(working, FromInt64(1))
	for n := 0; ; n++ {
		if magBelow(t, -res) {
			return fudge(sum, t)
		}
		sum = limitAndBound(working, sum.Add(t))
		p, q := ratio(n)
		t = limitAndBound(working, t.Mul(x).mulRat(p, q))
		if n >= maxTerms {
			Errorf("taylorA: series did not converge")
		}
	}
}

// An abpqSeries defines a linearly convergent series by integer
// recurrences: term n is aₙ·bₙ·(∏_{i≤n} pᵢ)/(B·∏_{i≤n} qᵢ).
type abpqSeries struct {
	a, b, p, q func(n int64) *big.Int
}

// abpq computes (P, Q, B, T) over the half-open range [n1, n2) by
// divide and conquer, with the partial sum equal to T/(B·Q).
func (ser abpqSeries) abpq(n1, n2 int64) (P, Q, B, T *big.Int) {
	switch {
	case n2 <= n1:
		Errorf("abpq: empty range")
	case n2-n1 == 1:
		P, Q, B = ser.p(n1), ser.q(n1), ser.b(n1)
		T = new(big.Int).Mul(ser.a(n1), B)
		T.Mul(T, P)
		return
	case n2-n1 <= 5:
		// Short ranges are cheaper combined term by term.
		P, Q, B, T = ser.abpq(n1, n1+1)
		for n := n1 + 1; n < n2; n++ {
			p, q, b, t := ser.abpq(n, n+1)
			P, Q, B, T = combine(P, Q, B, T, p, q, b, t)
		}
		return
	}
	m := (n1 + n2 + 1) / 2
	Pl, Ql, Bl, Tl := ser.abpq(n1, m)
	Pr, Qr, Br, Tr := ser.abpq(m, n2)
	return combine(Pl, Ql, Bl, Tl, Pr, Qr, Br, Tr)
}

func combine(Pl, Ql, Bl, Tl, Pr, Qr, Br, Tr *big.Int) (P, Q, B, T *big.Int) {
	P = new(big.Int).Mul(Pl, Pr)
	Q = new(big.Int).Mul(Ql, Qr)
	B = new(big.Int).Mul(Bl, Br)
	T = new(big.Int).Mul(Tl, Br)
	T.Mul(T, Qr)
	t := new(big.Int).Mul(Bl, Pl)
	t.Mul(t, Tr)
	T.Add(T, t)
	return
}
