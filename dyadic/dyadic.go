// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dyadic implements exact arithmetic on dyadic rationals,
// numbers of the form mant·2^exp with an arbitrary-precision mantissa
// and a machine-word exponent, together with a few rounded helpers
// (square root, division, atanh, ln 2, π) that the interval layer
// builds its elementary functions on.
package dyadic

import (
	"fmt"
	"math/big"
)

// A Dyadic is the rational Mant·2^Exp. Dyadics are treated as
// immutable: operations return fresh values and never modify the
// mantissa of an operand.
type Dyadic struct {
	Mant *big.Int
	Exp  int
}

// New returns the dyadic m·2^exp.
func New(m int64, exp int) Dyadic {
	return Dyadic{big.NewInt(m), exp}
}

// NewBig returns the dyadic m·2^exp. The mantissa is copied.
func NewBig(m *big.Int, exp int) Dyadic {
	return Dyadic{new(big.Int).Set(m), exp}
}

// Ilog2 returns ⌊log₂|x|⌋. The argument must be nonzero.
func Ilog2(x *big.Int) int {
	if x.Sign() == 0 {
		panic("dyadic: Ilog2 of zero")
	}
	return x.BitLen() - 1
}

func (x Dyadic) Sign() int    { return x.Mant.Sign() }
func (x Dyadic) IsZero() bool { return x.Mant.Sign() == 0 }

// Shift returns x·2^k.
func (x Dyadic) Shift(k int) Dyadic {
	return Dyadic{x.Mant, x.Exp + k}
}

func (x Dyadic) Neg() Dyadic {
	return Dyadic{new(big.Int).Neg(x.Mant), x.Exp}
}

func (x Dyadic) Abs() Dyadic {
	return Dyadic{new(big.Int).Abs(x.Mant), x.Exp}
}

// align returns the two mantissas scaled to the common exponent
// min(x.Exp, y.Exp), which is also returned.
func align(x, y Dyadic) (xm, ym *big.Int, exp int) {
	exp = min(x.Exp, y.Exp)
	xm = new(big.Int).Lsh(x.Mant, uint(x.Exp-exp))
	ym = new(big.Int).Lsh(y.Mant, uint(y.Exp-exp))
	return
}

func (x Dyadic) Add(y Dyadic) Dyadic {
	xm, ym, exp := align(x, y)
	return Dyadic{xm.Add(xm, ym), exp}
}

func (x Dyadic) Sub(y Dyadic) Dyadic {
	xm, ym, exp := align(x, y)
	return Dyadic{xm.Sub(xm, ym), exp}
}

func (x Dyadic) Mul(y Dyadic) Dyadic {
	return Dyadic{new(big.Int).Mul(x.Mant, y.Mant), x.Exp + y.Exp}
}

func (x Dyadic) Cmp(y Dyadic) int {
	xm, ym, _ := align(x, y)
	return xm.Cmp(ym)
}

// Normalize strips trailing zero bits from the mantissa, moving them
// into the exponent. The value is unchanged.
func (x Dyadic) Normalize() Dyadic {
	if x.Mant.Sign() == 0 {
		return Dyadic{new(big.Int), 0}
	}
	m := new(big.Int).Set(x.Mant)
	var k int
	for m.Bit(k) == 0 {
		k++
	}
	if k > 0 {
		m.Rsh(m, uint(k))
	}
	return Dyadic{m, x.Exp + k}
}

// Rat returns x as an exact big.Rat.
func (x Dyadic) Rat() *big.Rat {
	r := new(big.Rat).SetInt(x.Mant)
	exp := new(big.Rat)
	if x.Exp >= 0 {
		exp.SetInt(new(big.Int).Lsh(big.NewInt(1), uint(x.Exp)))
	} else {
		exp.SetFrac(big.NewInt(1), new(big.Int).Lsh(big.NewInt(1), uint(-x.Exp)))
	}
	return r.Mul(r, exp)
}

// Float64 returns the nearest float64, with infinities for overflow.
func (x Dyadic) Float64() float64 {
	prec := uint(max(64, x.Mant.BitLen()+1))
	f := new(big.Float).SetPrec(prec).SetInt(x.Mant)
	f.SetMantExp(f, x.Exp)
	v, _ := f.Float64()
	return v
}

func (x Dyadic) String() string {
	return fmt.Sprintf("%s*2^%d", x.Mant, x.Exp)
}

// Sqrt returns √x rounded so that the result r, with exponent prec,
// satisfies r ≤ √x < r + 2·2^prec. The argument must be nonnegative.
func Sqrt(prec int, x Dyadic) Dyadic {
	if x.Sign() < 0 {
		panic("dyadic: Sqrt of negative dyadic")
	}
	// √(m·2^e)·2^-prec = √(m·2^(e-2·prec)).
	k := x.Exp - 2*prec
	n := new(big.Int)
	if k >= 0 {
		n.Lsh(x.Mant, uint(k))
	} else {
		n.Rsh(x.Mant, uint(-k))
	}
	return Dyadic{n.Sqrt(n), prec}
}

// Div returns x/y rounded to nearest at exponent prec; the error is at
// most one unit of 2^prec. y must be nonzero.
func Div(prec int, x, y Dyadic) Dyadic {
	if y.Sign() == 0 {
		panic("dyadic: division by zero")
	}
	// x/y·2^-prec = (mx·2^(ex-ey-prec))/my.
	k := x.Exp - y.Exp - prec
	num := new(big.Int).Set(x.Mant)
	den := y.Mant
	if k >= 0 {
		num.Lsh(num, uint(k))
	} else {
		den = new(big.Int).Lsh(den, uint(-k))
	}
	return Dyadic{roundDiv(num, den), prec}
}

// roundDiv returns num/den rounded to nearest, ties away from zero.
func roundDiv(num, den *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	r.Abs(r)
	r.Lsh(r, 1)
	d := new(big.Int).Abs(den)
	if r.Cmp(d) >= 0 {
		if (num.Sign() < 0) != (den.Sign() < 0) {
			q.Sub(q, one)
		} else {
			q.Add(q, one)
		}
	}
	return q
}

var one = big.NewInt(1)

// guardBits is the extra working precision carried by the series
// helpers below so their per-step truncations stay far below the
// requested ulp.
const guardBits = 8

// scaled converts x to an integer in units of 2^-w, rounding to
// nearest.
func scaled(x Dyadic, w int) *big.Int {
	k := x.Exp + w
	m := new(big.Int).Set(x.Mant)
	if k >= 0 {
		return m.Lsh(m, uint(k))
	}
	return roundDiv(m, new(big.Int).Lsh(one, uint(-k)))
}

// Atanh returns atanh(x) for |x| ≤ 1/2 as a dyadic d plus an error
// bound in units of 2^d.Exp, computed from the Maclaurin series
// Σ x^(2n+1)/(2n+1). The bound covers per-term truncation, the scaling
// of x, and the geometric tail.
func Atanh(prec int, x Dyadic) (Dyadic, int64) {
	w := -prec + guardBits
	y := scaled(x, w)
	y2 := new(big.Int).Mul(y, y)
	y2.Rsh(y2, uint(w))
	p := new(big.Int).Set(y)
	sum := new(big.Int).Set(y)
	t := new(big.Int)
	var steps int64
	for n := int64(3); ; n += 2 {
		p.Mul(p, y2)
		p.Rsh(p, uint(w))
		t.Quo(p, big.NewInt(n))
		if t.Sign() == 0 {
			break
		}
		sum.Add(sum, t)
		steps++
	}
	// Each shift and quotient drops at most one unit and the power
	// error contracts by x² per step; with |x| ≤ 1/2 the tail beyond
	// the first zero term is below two units.
	return Dyadic{sum, -w}, 4*steps + 8
}

// Ln2 returns ln 2 as a dyadic plus an error bound in units of
// 2^d.Exp, from Σ 1/(k·2^k).
func Ln2(prec int) (Dyadic, int64) {
	w := -prec + guardBits
	sum := new(big.Int)
	t := new(big.Int)
	for k := 1; k <= w; k++ {
		t.Lsh(one, uint(w-k))
		t.Quo(t, big.NewInt(int64(k)))
		sum.Add(sum, t)
	}
	// One truncated unit per term plus the 2^-w tail.
	return Dyadic{sum, -w}, int64(w) + 2
}

// atanRecip returns atan(1/q)·2^w truncated, with error at most
// 4·steps+4 units, by the alternating series Σ (-1)ⁿ/((2n+1)·q^(2n+1)).
func atanRecip(w int, q int64) (*big.Int, int64) {
	qq := big.NewInt(q * q)
	term := new(big.Int).Lsh(one, uint(w))
	term.Quo(term, big.NewInt(q))
	sum := new(big.Int).Set(term)
	t := new(big.Int)
	neg := true
	var steps int64
	for n := int64(3); ; n += 2 {
		term.Quo(term, qq)
		if term.Sign() == 0 {
			break
		}
		t.Quo(term, big.NewInt(n))
		if neg {
			sum.Sub(sum, t)
		} else {
			sum.Add(sum, t)
		}
		neg = !neg
		steps++
	}
	return sum, 4*steps + 4
}

// PiMachin returns π as a dyadic plus an error bound in units of
// 2^d.Exp, using Machin's formula 16·atan(1/5) - 4·atan(1/239).
func PiMachin(prec int) (Dyadic, int64) {
	w := -prec + guardBits + 2
	a5, e5 := atanRecip(w, 5)
	a239, e239 := atanRecip(w, 239)
	p := new(big.Int).Lsh(a5, 4)
	p.Sub(p, new(big.Int).Lsh(a239, 2))
	return Dyadic{p, -w}, 16*e5 + 4*e239
}

// PiBorwein returns π as a dyadic plus an error bound in units of
// 2^d.Exp, by the Borwein brothers' quadratically convergent
// iteration. It is an alternative to PiMachin kept for cross-checking
// and high precision.
func PiBorwein(prec int) (Dyadic, int64) {
	w := -prec + 2*guardBits
	half := func(v *big.Int) *big.Int { return new(big.Int).Rsh(v, 1) }
	// Working values are integers in units of 2^-w.
	unit := new(big.Int).Lsh(one, uint(w))
	sqrtw := func(v *big.Int) *big.Int {
		s := new(big.Int).Lsh(v, uint(w))
		return s.Sqrt(s)
	}
	divw := func(a, b *big.Int) *big.Int {
		n := new(big.Int).Lsh(a, uint(w))
		return n.Quo(n, b)
	}
	sqrt2 := sqrtw(new(big.Int).Lsh(unit, 1))
	a := new(big.Int).Set(sqrt2)
	b := new(big.Int)
	p := new(big.Int).Add(unit, unit)
	p.Add(p, sqrt2)
	delta := new(big.Int).Set(unit)
	for i := 0; i < 4*64 && delta.Sign() != 0; i++ {
		ra := sqrtw(a)
		a1 := half(new(big.Int).Add(ra, divw(unit, ra)))
		b1 := divw(new(big.Int).Mul(ra, new(big.Int).Add(unit, b)), new(big.Int).Lsh(new(big.Int).Add(a, b), uint(w)))
		num := new(big.Int).Mul(b1, new(big.Int).Add(unit, a1))
		p1 := new(big.Int).Mul(p, num)
		p1.Quo(p1, new(big.Int).Add(unit, b1))
		p1.Rsh(p1, uint(w))
		delta.Sub(p, p1)
		delta.Abs(delta)
		a, b, p = a1, b1, p1
	}
	// The iteration error is |p - π| ≲ |Δp| once quadratic convergence
	// sets in; the rounding noise stays well under 2^guardBits units.
	err := int64(1) << (2 * guardBits)
	if delta.IsInt64() {
		err += 4 * delta.Int64()
	} else {
		err += 1 << 30
	}
	return Dyadic{p, -w}, err
}
