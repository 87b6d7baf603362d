// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"math"
	"math/big"

	"robpike.io/creal/dyadic"
)

// SqrtA returns an enclosure of √a with roughly res bits of working
// precision. A strictly negative interval is a domain error; an
// interval straddling zero yields Bottom (not enough information to
// take the root).
func SqrtA(res int, a Approx) Approx {
	if a.IsBottom() {
		return a
	}
	switch {
	case a.Upper().Dyadic().Sign() < 0:
		Errorf("square root of negative interval")
	case a.Upper().Dyadic().IsZero() && a.Lower().Dyadic().Sign() == 0:
		return FromInt64(0)
	case a.Lower().Dyadic().Sign() < 0:
		return Approx{}
	case a.Lower().Dyadic().IsZero():
		// [0, u]: the upper endpoint carries all the information.
		u := a.Upper().Dyadic()
		su := SqrtA(res, exactAt(a.mb, u))
		return endToApprox(a.mb, dyadic.Fin(dyadic.New(0, 0)), su.Upper())
	}
	// The reciprocal square root avoids an inner division in the
	// Newton step; recover √a as a·(1/√a), or as 1/√(1/a) below one
	// where that keeps the operand comfortably sized.
	if a.Upper().Dyadic().Cmp(dyadic.New(1, 0)) < 0 {
		return sqrtRecA(res, setMB(max(a.mb, res), a).Recip())
	}
	return a.Mul(sqrtRecA(res, a))
}

// sqrtRecA returns an enclosure of 1/√a for a strictly positive a.
func sqrtRecA(res int, a Approx) Approx {
	if a.IsBottom() {
		return a
	}
	if a.Lower().Dyadic().Sign() <= 0 {
		return Approx{}
	}
	if a.Exact() {
		y, err := sqrtRecD(recPrec(res, a.Centre()), a.Centre())
		return boundErrorTerm(approxAutoMB(y.Mant, err, y.Exp))
	}
	// Thick interval: 1/√ is decreasing, so evaluate at each endpoint
	// independently with one-ulp guards.
	l, u := a.Lower().Dyadic(), a.Upper().Dyadic()
	yu, eu := sqrtRecD(recPrec(res, u), u)
	yl, el := sqrtRecD(recPrec(res, l), l)
	lower := dyadic.Dyadic{Mant: new(big.Int).Sub(yu.Mant, eu), Exp: yu.Exp}
	upper := dyadic.Dyadic{Mant: new(big.Int).Add(yl.Mant, el), Exp: yl.Exp}
	return boundErrorTerm(endToApprox(max(a.mb, res), dyadic.Fin(lower), dyadic.Fin(upper)))
}

// recPrec picks the result ulp exponent for 1/√d at res working bits.
func recPrec(res int, d dyadic.Dyadic) int {
	h := dyadic.Ilog2(d.Mant) + d.Exp
	h2 := h / 2
	if h < 0 && h%2 != 0 {
		h2--
	}
	return -res - errorBits - h2
}

// sqrtRecD computes 1/√d for a positive dyadic by Newton iteration
// on y ← y·(3 - d·y²)/2, seeded from the floating-point reciprocal
// square root. The result mantissa has ulp 2^prec; the returned bound
// is an ulp count verified from the exact residual 1 - d·y², not from
// the iteration itself.
func sqrtRecD(prec int, d dyadic.Dyadic) (dyadic.Dyadic, *big.Int) {
	if d.Sign() <= 0 {
		Errorf("reciprocal square root of nonpositive dyadic")
	}
	y := sqrtRecStart(prec, d)
	// Fraction bits inside the Newton step: the full width of y plus
	// 32 guard bits, so each step can double the number of correct bits.
	scale := y.BitLen() + 32
	three := new(big.Int).Lsh(bigThree, uint(scale))
	for l := newLoop("sqrtRec", 400); ; {
		// z = (3 - d·y²)·2^scale, exact product shifted.
		t := new(big.Int).Mul(y, y)
		t.Mul(t, d.Mant)
		z := new(big.Int).Set(three)
		z.Sub(z, shiftTo(t, d.Exp+2*prec+scale))
		y1 := new(big.Int).Mul(y, z)
		y1.Rsh(y1, uint(scale+1))
		y = y1
		if l.done(dyadic.Dyadic{Mant: y, Exp: prec}) {
			break
		}
	}
	// Exact residual ρ = 1 - d·y²; |y - 1/√d| ≤ |y·ρ| for |ρ| ≤ ½.
	t := new(big.Int).Mul(y, y)
	t.Mul(t, d.Mant)
	k := d.Exp + 2*prec
	var num, unit *big.Int
	if k >= 0 {
		num = new(big.Int).Lsh(t, uint(k))
		unit = bigOne
	} else {
		num = t
		unit = new(big.Int).Lsh(bigOne, uint(-k))
	}
	rho := new(big.Int).Sub(unit, num) // residual in units of 1/unit
	if t.Abs(rho).Lsh(t, 1).Cmp(unit) > 0 {
		Errorf("sqrtRec: Newton iteration did not converge")
	}
	err := new(big.Int).Abs(rho)
	err.Mul(err, new(big.Int).Abs(y))
	err = ceilDiv(err, unit)
	err.Add(err, bigTwo)
	return dyadic.Dyadic{Mant: y, Exp: prec}, err
}

// shiftTo returns ⌊t·2^e⌋.
func shiftTo(t *big.Int, e int) *big.Int {
	if e >= 0 {
		return new(big.Int).Lsh(t, uint(e))
	}
	return new(big.Int).Rsh(t, uint(-e))
}

// sqrtRecStart seeds Newton from the float64 reciprocal square root
// of the leading bits of d, the same starting values the tables were
// sampled from.
func sqrtRecStart(prec int, d dyadic.Dyadic) *big.Int {
	m := d.Mant
	t := dyadic.Ilog2(m)
	// d = f·2^h with f in [1, 2).
	h := t + d.Exp
	top := new(big.Int).Set(m)
	shift := t - 52
	if shift >= 0 {
		top.Rsh(top, uint(shift))
	} else {
		top.Lsh(top, uint(-shift))
	}
	f := float64(top.Int64()) / (1 << 52) // f in [1, 2)
	if h%2 != 0 {
		f *= 2
		h--
	}
	v := 1 / math.Sqrt(f) // 1/√d = v·2^(-h/2)
	fm, fe := math.Frexp(v)
	y := big.NewInt(int64(fm * (1 << 53)))
	// y·2^(fe-53-h/2) ≈ 1/√d; bring to exponent prec.
	k := fe - 53 - h/2 - prec
	if k >= 0 {
		return y.Lsh(y, uint(k))
	}
	return y.Rsh(y, uint(-k))
}

// SqrtHeronA computes √a by Heron's iteration z ← (z + a/z)/2 on the
// dyadic midpoint, with the error verified from the exact residual.
// It is at least twice as slow as SqrtA and kept for cross-checking.
func SqrtHeronA(res int, a Approx) Approx {
	if a.IsBottom() {
		return a
	}
	switch {
	case a.Upper().Dyadic().Sign() < 0:
		Errorf("square root of negative interval")
	case a.Lower().Dyadic().Sign() < 0:
		return Approx{}
	}
	if !a.Exact() {
		// Hull of the endpoint roots; √ is increasing.
		l := SqrtHeronA(res, exactAt(a.mb, a.Lower().Dyadic()))
		u := SqrtHeronA(res, exactAt(a.mb, a.Upper().Dyadic()))
		return l.Union(u)
	}
	x := a.Centre()
	if x.IsZero() {
		return FromInt64(0)
	}
	h := dyadic.Ilog2(x.Mant) + x.Exp
	prec := -res - errorBits + h/2
	z := dyadic.Sqrt(prec, x)
	for l := newLoop("sqrtHeron", 400); ; {
		z = dyadic.Div(prec, x, z).Add(z).Shift(-1).Normalize()
		if l.done(z) {
			break
		}
	}
	// |z - √x| ≤ |z² - x|/z for z within a factor of two of the root.
	rho := z.Mul(z).Sub(x).Abs()
	q := dyadic.Div(prec, rho, z)
	err := new(big.Int).Abs(q.Mant)
	err.Add(err, bigTwo)
	y := FromDyadic(z)
	return boundErrorTerm(y.widenBy(dyadic.Dyadic{Mant: err, Exp: prec}))
}
