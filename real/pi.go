// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"math/big"

	"robpike.io/creal/dyadic"
)

// The Ramanujan-Chudnovsky series: 1/π = 12·Σ (-1)ⁿ·(6n)!·
// (13591409 + 545140134·n) / ((3n)!·(n!)³·640320^(3n+3/2)), encoded
// as integer recurrences for binary splitting. Each term is worth a
// shade over 47 bits.
var chudnovsky = abpqSeries{
	a: func(n int64) *big.Int {
		z := big.NewInt(545140134)
		z.Mul(z, big.NewInt(n))
		return z.Add(z, big.NewInt(13591409))
	},
	b: func(int64) *big.Int { return big.NewInt(1) },
	p: func(n int64) *big.Int {
		if n == 0 {
			return big.NewInt(1)
		}
		z := big.NewInt(6*n - 5)
		z.Mul(z, big.NewInt(2*n-1))
		z.Mul(z, big.NewInt(6*n-1))
		return z.Neg(z)
	},
	q: func(n int64) *big.Int {
		if n == 0 {
			return big.NewInt(1)
		}
		z := big.NewInt(n)
		z.Mul(z, big.NewInt(n))
		z.Mul(z, big.NewInt(n))
		z.Mul(z, big.NewInt(640320*640320))
		return z.Mul(z, big.NewInt(26680))
	},
}

// sqrtArg is 640320³/144: π = √sqrtArg / Σ.
var sqrtArg = big.NewInt(1823176476672000)

// A piIter produces the lazy sequence of π enclosures. Element i
// covers 2^(i-1) series terms at working precision 21+47·(terms-1);
// advancing doubles the term count by extending the binary-splitting
// state, so earlier work is never repeated.
type piIter struct {
	terms      int64
	p, q, b, t *big.Int
}

func newPiIter() *piIter {
	p, q, b, t := chudnovsky.abpq(0, 1)
	return &piIter{1, p, q, b, t}
}

func (it *piIter) next() Approx {
	n := int(21 + 47*(it.terms-1))
	den := new(big.Int).Mul(it.b, it.q)
	x := ToApprox(n, new(big.Rat).SetFrac(it.t, den))
	// The omitted tail is below an ulp at this working precision.
	x = Approx{x.mb, x.m, new(big.Int).Add(x.e, bigOne), x.s}
	pi := SqrtA(n+2, FromBigInt(sqrtArg)).Div(x)
	pr, qr, br, tr := chudnovsky.abpq(it.terms, 2*it.terms)
	it.p, it.q, it.b, it.t = combine(it.p, it.q, it.b, it.t, pr, qr, br, tr)
	it.terms *= 2
	return boundErrorTerm(pi)
}

// PiA returns an enclosure of π with more than res bits of precision.
func PiA(res int) Approx {
	for it := newPiIter(); ; {
		if pi := it.next(); pi.Precision() > res {
			return pi
		}
	}
}

// PiMachinA returns an enclosure of π from the dyadic Machin
// formula.
func PiMachinA(res int) Approx {
	d, err := dyadic.PiMachin(-res - errorBits)
	return boundErrorTerm(approxAutoMB(d.Mant, big.NewInt(err), d.Exp))
}

// PiBorweinA returns an enclosure of π from the dyadic Borwein
// iteration.
func PiBorweinA(res int) Approx {
	d, err := dyadic.PiBorwein(-res - errorBits)
	return boundErrorTerm(approxAutoMB(d.Mant, big.NewInt(err), d.Exp))
}

// PiAgmA returns an enclosure of π by the Brent-Salamin
// arithmetic-geometric mean iteration. The parameter x, when not
// Bottom, supplies a precomputed enclosure of 1/√2.
func PiAgmA(res int, x Approx) Approx {
	w := res + 20
	if x.IsBottom() {
		x = sqrtRecA(w, FromInt64(2))
	}
	a := setMB(w, FromInt64(1))
	b := setMB(w, x)
	t := NewMB(w, 1, 0, -2)
	for i := 0; ; i++ {
		an := a.Add(b).Scale(-1)
		c := a.Sub(an)
		t = limitAndBound(w, t.Sub(c.Sqr().Scale(i)))
		b = limitAndBound(w, SqrtA(w, a.Mul(b)))
		a = limitAndBound(w, an)
		if magBelow(a.Sub(b), -res-errorBits) || i > 64 {
			break
		}
	}
	est := a.Add(b).Sqr().Div(t.Scale(2))
	// Quadratic convergence leaves the iteration error far below the
	// remaining gap; widen by a generous multiple of it.
	gap := new(big.Int).Abs(a.Sub(b).m)
	gap.Add(gap, a.Sub(b).e)
	gap.Lsh(gap, 3)
	return boundErrorTerm(est.widenBy(dyadic.Dyadic{Mant: gap, Exp: a.Sub(b).s}))
}
