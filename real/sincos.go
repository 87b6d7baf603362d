// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"math/big"

	"robpike.io/creal/dyadic"
)

// SinA returns an enclosure of sin(a). The argument is reduced modulo
// 2π and folded toward [-π/2, π/2] with reflection identities that
// hold everywhere, so a fold chosen from an uncertain midpoint still
// encloses; intervals too wide to reduce collapse to [-1, 1].
func SinA(res int, a Approx) Approx {
	if a.IsBottom() {
		return a
	}
	mbw := max(res, a.mb)
	whole := NewMB(mbw, 0, 1, 0)
	if !magBelow(Approx{a.mb, bigZero, a.e, a.s}, 3) {
		// Radius beyond one period.
		return whole
	}
	pi := PiA(mbw + 10)
	twoPi := pi.Scale(1)
	_, x := a.DivMod(twoPi)
	if x.IsBottom() || !magBelow(Approx{x.mb, bigZero, x.e, x.s}, 0) {
		return whole
	}
	// Quadrant fold by the midpoint. sin x = sin(π-x) = sin(x-2π), so
	// a near-boundary misclassification costs tightness, never
	// enclosure.
	c := x.Centre()
	pc := pi.Centre()
	var y Approx
	switch {
	case c.Cmp(pc.Shift(-1)) < 0:
		y = x
	case c.Cmp(pc.Mul(dyadic.New(3, -1))) < 0:
		y = pi.Sub(x)
	default:
		y = x.Sub(twoPi)
	}
	return sinTaylor(mbw, y)
}

// sinTaylor computes sin on an interval around [-π/2, π/2]: scale by
// 3^-k until the argument is small, sum the sine series, and undo the
// scaling with the exact triplication sin 3θ = sin θ·(3 - 4·sin²θ).
func sinTaylor(mbw int, y Approx) Approx {
	mag := new(big.Int).Abs(y.m)
	mag.Add(mag, y.e)
	if mag.Sign() == 0 {
		return setMB(y.mb, FromInt64(0))
	}
	k := max(0, dyadic.Ilog2(mag)+y.s+isqrt(mbw))
	if k > 0 {
		p3 := new(big.Int).Exp(bigThree, big.NewInt(int64(k)), nil)
		y = y.divBig(p3)
	}
	u := y.Sqr().Neg()
	t := taylorA(mbw+10, u, func(n int) (int64, int64) {
		return 1, int64(2*n+2) * int64(2*n+3)
	}).Mul(y)
	three := FromInt64(3)
	for i := 0; i < k; i++ {
		t = boundErrorTerm(t.Mul(three.Sub(t.Sqr().Scale(2))))
	}
	return t
}

// CosA returns an enclosure of cos(a) = sin(π/2 - a).
func CosA(res int, a Approx) Approx {
	if a.IsBottom() {
		return a
	}
	halfPi := PiA(max(res, a.mb) + 2).Scale(-1)
	return SinA(res, halfPi.Sub(a))
}

// AtanA returns an enclosure of atan(a). The half-angle identity
// atan x = 2·atan(x/(1 + √(1+x²))) brings the argument under one
// half; the odd series does the rest. Thick arguments evaluate at
// both endpoints, since atan is monotone.
func AtanA(res int, a Approx) Approx {
	if a.IsBottom() {
		return a
	}
	if !a.Exact() {
		l := AtanA(res, exactAt(a.mb, a.Lower().Dyadic()))
		u := AtanA(res, exactAt(a.mb, a.Upper().Dyadic()))
		return l.Union(u)
	}
	if a.m.Sign() == 0 {
		return setMB(a.mb, FromInt64(0))
	}
	r := res
	if sig := a.Significance(); sig != PrecExact {
		r = min(r, sig)
	}
	k := min(isqrt(r)/2, 2)
	w := max(res, a.mb) + errorBits
	one := FromInt64(1)
	x := setMB(w, a)
	for i := 0; i < k; i++ {
		x = boundErrorTerm(x.Div(one.Add(SqrtA(w, one.Add(x.Sqr())))))
	}
	u := x.Sqr().Neg()
	t := x.Mul(taylorA(w, u, func(n int) (int64, int64) {
		return int64(2*n + 1), int64(2*n + 3)
	}))
	return boundErrorTerm(t.Scale(k))
}

// AtanBinarySplittingA sums the arctangent series for a small exact
// argument by binary splitting on integer recurrences. Arguments at
// one half or beyond fall back to AtanA. Kept for very high
// precision.
func AtanBinarySplittingA(res int, a Approx) Approx {
	if a.IsBottom() {
		return a
	}
	if !a.Exact() {
		l := AtanBinarySplittingA(res, exactAt(a.mb, a.Lower().Dyadic()))
		u := AtanBinarySplittingA(res, exactAt(a.mb, a.Upper().Dyadic()))
		return l.Union(u)
	}
	if a.m.Sign() == 0 {
		return setMB(a.mb, FromInt64(0))
	}
	x := a.Centre().Normalize()
	lead := dyadic.Ilog2(x.Mant) + x.Exp // ⌊log₂|x|⌋
	if lead >= -1 {
		return AtanA(res, a)
	}
	num := new(big.Int).Set(x.Mant)
	den := new(big.Int).Lsh(bigOne, uint(-x.Exp))
	num2 := new(big.Int).Mul(num, num)
	num2.Neg(num2)
	den2 := new(big.Int).Mul(den, den)
	ser := abpqSeries{
		a: func(int64) *big.Int { return big.NewInt(1) },
		b: func(int64) *big.Int { return big.NewInt(1) },
		p: func(n int64) *big.Int {
			if n == 0 {
				return new(big.Int).Set(num)
			}
			return new(big.Int).Mul(num2, big.NewInt(2*n-1))
		},
		q: func(n int64) *big.Int {
			if n == 0 {
				return new(big.Int).Set(den)
			}
			return new(big.Int).Mul(den2, big.NewInt(2*n+1))
		},
	}
	terms := int64((res+20)/max(1, -2*lead-2)) + 2
	_, Q, B, T := ser.abpq(0, terms)
	rat := new(big.Rat).SetFrac(T, new(big.Int).Mul(B, Q))
	t := ToApprox(res+10, rat)
	return Approx{t.mb, t.m, new(big.Int).Add(t.e, bigOne), t.s}
}
