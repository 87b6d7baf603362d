// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"math"
	"math/big"

	"robpike.io/creal/dyadic"
)

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Sqrt(float64(n)))
}

// ExpA returns an enclosure of exp(a) with roughly res bits of
// working precision: the argument is scaled by 2^-r until it is below
// 2^-√res, summed as Σ xⁿ/n!, and squared back r times. A thick
// argument is evaluated at both endpoints, since exp is monotone.
func ExpA(res int, a Approx) Approx {
	if a.IsBottom() {
		return a
	}
	if !a.Exact() {
		l := ExpA(res, exactAt(a.mb, a.Lower().Dyadic()))
		u := ExpA(res, exactAt(a.mb, a.Upper().Dyadic()))
		return l.Union(u)
	}
	if a.m.Sign() == 0 {
		return setMB(a.mb, FromInt64(1))
	}
	if a.m.Sign() < 0 {
		return boundErrorTerm(ExpA(res, a.Neg()).Recip())
	}
	mbw := max(res, a.mb)
	h := dyadic.Ilog2(a.m) + a.s
	r := max(0, h+isqrt(mbw))
	scaled := Approx{mbw, a.m, new(big.Int), a.s - r}
	mb2 := mbw + r + dyadic.Ilog2(a.m) + 1
	mb2 += mb2 / 5
	// Σ xⁿ/n! with running power and factorial.
	pow := setMB(mb2, FromInt64(1))
	fact := big.NewInt(1)
	step := 0
	t := taylor(mb2, func(n int) (Approx, *big.Int) {
		for step < n {
			step++
			pow = limitAndBound(mb2+errorBits, pow.Mul(scaled))
			fact.Mul(fact, big.NewInt(int64(step)))
		}
		return pow, fact
	})
	for i := 0; i < r; i++ {
		t = boundErrorTermMB(t.Sqr())
	}
	return t
}

// ExpBinarySplittingA sums the exponential series by binary splitting
// on exact integer recurrences. Kept alongside ExpA for benchmarking
// at very high precision.
func ExpBinarySplittingA(res int, a Approx) Approx {
	if a.IsBottom() {
		return a
	}
	if !a.Exact() {
		l := ExpBinarySplittingA(res, exactAt(a.mb, a.Lower().Dyadic()))
		u := ExpBinarySplittingA(res, exactAt(a.mb, a.Upper().Dyadic()))
		return l.Union(u)
	}
	if a.m.Sign() == 0 {
		return setMB(a.mb, FromInt64(1))
	}
	if a.m.Sign() < 0 {
		return boundErrorTerm(ExpBinarySplittingA(res, a.Neg()).Recip())
	}
	mbw := max(res, a.mb)
	h := dyadic.Ilog2(a.m) + a.s
	sq := max(1, isqrt(mbw))
	r := max(0, h+sq)
	// x' = num/den with |x'| < 2^-√res after the scaling.
	num := new(big.Int).Set(a.m)
	den := bigOne
	if g := r - a.s; g > 0 {
		den = new(big.Int).Lsh(bigOne, uint(g))
	} else {
		num.Lsh(num, uint(-g))
	}
	ser := abpqSeries{
		a: func(int64) *big.Int { return big.NewInt(1) },
		b: func(int64) *big.Int { return big.NewInt(1) },
		p: func(n int64) *big.Int {
			if n == 0 {
				return big.NewInt(1)
			}
			return new(big.Int).Set(num)
		},
		q: func(n int64) *big.Int {
			if n == 0 {
				return big.NewInt(1)
			}
			return new(big.Int).Mul(big.NewInt(n), den)
		},
	}
	terms := int64((mbw+20)/max(1, sq-1)) + 2
	_, Q, B, T := ser.abpq(0, terms)
	rat := new(big.Rat).SetFrac(T, new(big.Int).Mul(B, Q))
	t := ToApprox(mbw+10, rat)
	// The tail is below an ulp of the conversion.
	t = Approx{t.mb, t.m, new(big.Int).Add(t.e, bigOne), t.s}
	for i := 0; i < r; i++ {
		t = boundErrorTermMB(t.Sqr())
	}
	return t
}
