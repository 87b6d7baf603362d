// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package real implements computable real arithmetic. The ground type
// is Approx, a centred dyadic interval [(m-e)·2^s, (m+e)·2^s] with a
// bit-size cap mb on the midpoint; a Real is a lazy sequence of
// ever-sharpening Approx values driven by Require.
package real

import (
	"math"
	"math/big"

	"robpike.io/creal/dyadic"
)

// An Approx is a centred dyadic interval: the closed set of reals
// [(m-e)·2^s, (m+e)·2^s], with |m| capped at mb bits. The zero Approx
// is Bottom, the interval covering every real, which every operation
// propagates ("no information yet").
type Approx struct {
	mb int
	m  *big.Int
	e  *big.Int
	s  int
}

// Bottom returns the trivial approximation containing every real.
func Bottom() Approx { return Approx{} }

func (a Approx) IsBottom() bool { return a.m == nil }

// Precision and Significance sentinels.
const (
	PrecExact  = math.MaxInt
	PrecBottom = math.MinInt
)

var (
	bigZero  = big.NewInt(0)
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

// ceilShift returns ⌈x/2^k⌉ for x ≥ 0.
func ceilShift(x *big.Int, k uint) *big.Int {
	z := new(big.Int).Lsh(bigOne, k)
	z.Sub(z, bigOne)
	z.Add(z, x)
	return z.Rsh(z, k)
}

// roundShift returns x/2^k rounded to nearest, ties toward +infinity.
func roundShift(x *big.Int, k uint) *big.Int {
	z := new(big.Int).Rsh(x, k)
	if k > 0 && x.Bit(int(k-1)) == 1 {
		z.Add(z, bigOne)
	}
	return z
}

// enforceMB renormalises a so that the midpoint fits in mb bits,
// widening the radius as needed to keep the interval enclosing.
func enforceMB(a Approx) Approx {
	if a.IsBottom() {
		return a
	}
	bits := a.m.BitLen()
	if bits <= a.mb || bits <= 1 {
		return a
	}
	d := uint(bits - a.mb)
	m := new(big.Int).Rsh(a.m, d)
	e := ceilShift(a.e, d)
	back := new(big.Int).Lsh(m, d)
	if back.Cmp(a.m) != 0 {
		e.Add(e, bigOne)
	}
	return Approx{a.mb, m, e, a.s + int(d)}
}

func approxMB(mb int, m, e *big.Int, s int) Approx {
	if e.Sign() < 0 {
		Errorf("negative radius")
	}
	return enforceMB(Approx{mb, m, e, s})
}

func approxMB2(mb1, mb2 int, m, e *big.Int, s int) Approx {
	return approxMB(max(mb1, mb2), m, e, s)
}

func approxAutoMB(m, e *big.Int, s int) Approx {
	// Minimal legal bound for the operands: max(2, 1+⌊log₂(|m|+e-1)⌋).
	t := new(big.Int).Abs(m)
	t.Add(t, e)
	t.Sub(t, bigOne)
	mb := 2
	if t.Sign() > 0 {
		mb = max(2, t.BitLen())
	}
	return approxMB(mb, m, e, s)
}

// NewMB returns the interval [(m-e)·2^s, (m+e)·2^s] with midpoint
// bound mb.
func NewMB(mb int, m, e int64, s int) Approx {
	return approxMB(mb, big.NewInt(m), big.NewInt(e), s)
}

// New returns the interval [(m-e)·2^s, (m+e)·2^s] with the minimal
// midpoint bound for its operands.
func New(m, e int64, s int) Approx {
	return approxAutoMB(big.NewInt(m), big.NewInt(e), s)
}

// NewBigMB is NewMB for big mantissas. The arguments are copied.
func NewBigMB(mb int, m, e *big.Int, s int) Approx {
	return approxMB(mb, new(big.Int).Set(m), new(big.Int).Set(e), s)
}

// FromInt64 returns the exact approximation of an integer.
func FromInt64(v int64) Approx {
	return approxAutoMB(big.NewInt(v), new(big.Int), 0)
}

// FromBigInt returns the exact approximation of an integer.
func FromBigInt(v *big.Int) Approx {
	return approxAutoMB(new(big.Int).Set(v), new(big.Int), 0)
}

// FromDyadic returns the exact approximation of d.
func FromDyadic(d dyadic.Dyadic) Approx {
	return approxAutoMB(new(big.Int).Set(d.Mant), new(big.Int), d.Exp)
}

// FromDyadicMB is FromDyadic with a fixed midpoint bound.
func FromDyadicMB(mb int, d dyadic.Dyadic) Approx {
	return approxMB(mb, new(big.Int).Set(d.Mant), new(big.Int), d.Exp)
}

// ToApprox converts a rational to an approximation with prec bits
// after the binary point. The result is exact when the rational is
// dyadic with at most prec fraction bits.
func ToApprox(prec int, r *big.Rat) Approx {
	num := new(big.Int).Set(r.Num())
	den := r.Denom()
	if prec >= 0 {
		num.Lsh(num, uint(prec))
	} else {
		den = new(big.Int).Lsh(den, uint(-prec))
	}
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	e := new(big.Int)
	if rem.Sign() != 0 {
		// Round to nearest and cover the remainder with one ulp.
		rem.Abs(rem)
		rem.Lsh(rem, 1)
		if rem.Cmp(den) >= 0 {
			if num.Sign() < 0 {
				q.Sub(q, bigOne)
			} else {
				q.Add(q, bigOne)
			}
		}
		e.SetInt64(1)
	}
	return approxMB(max(2, prec+errorBits), q, e, -prec)
}

// MB returns the midpoint bit bound. It is undefined for Bottom and
// fails fast, like every uncertain query.
func (a Approx) MB() int {
	if a.IsBottom() {
		Errorf("mBound of Bottom")
	}
	return a.mb
}

// Centre returns the midpoint m·2^s. Undefined for Bottom.
func (a Approx) Centre() dyadic.Dyadic {
	if a.IsBottom() {
		Errorf("centre of Bottom")
	}
	return dyadic.NewBig(a.m, a.s)
}

// Radius returns the radius e·2^s. Undefined for Bottom.
func (a Approx) Radius() dyadic.Dyadic {
	if a.IsBottom() {
		Errorf("radius of Bottom")
	}
	return dyadic.NewBig(a.e, a.s)
}

// Diameter returns 2·e·2^s. Undefined for Bottom.
func (a Approx) Diameter() dyadic.Dyadic {
	return a.Radius().Shift(1)
}

// Lower returns the lower endpoint, -∞ for Bottom.
func (a Approx) Lower() dyadic.Ext {
	if a.IsBottom() {
		return dyadic.NegInfinity()
	}
	m := new(big.Int).Sub(a.m, a.e)
	return dyadic.Fin(dyadic.Dyadic{Mant: m, Exp: a.s})
}

// Upper returns the upper endpoint, +∞ for Bottom.
func (a Approx) Upper() dyadic.Ext {
	if a.IsBottom() {
		return dyadic.PosInfinity()
	}
	m := new(big.Int).Add(a.m, a.e)
	return dyadic.Fin(dyadic.Dyadic{Mant: m, Exp: a.s})
}

// Exact reports whether a is a single dyadic point.
func (a Approx) Exact() bool {
	return !a.IsBottom() && a.e.Sign() == 0
}

// Precision returns the number of correct bits after the binary
// point: -s - ⌊log₂ e⌋ - 1, with PrecExact for exact values and
// PrecBottom for Bottom.
func (a Approx) Precision() int {
	if a.IsBottom() {
		return PrecBottom
	}
	if a.e.Sign() == 0 {
		return PrecExact
	}
	return -a.s - dyadic.Ilog2(a.e) - 1
}

// Significance returns the number of significant bits of the
// midpoint: ⌊log₂|m|⌋ - ⌊log₂(e-1)⌋ - 1, with PrecExact for exact
// values and PrecBottom for Bottom or a zero midpoint.
func (a Approx) Significance() int {
	switch {
	case a.IsBottom():
		return PrecBottom
	case a.e.Sign() == 0:
		return PrecExact
	case a.m.Sign() == 0:
		return PrecBottom
	case a.e.Cmp(bigOne) == 0:
		return dyadic.Ilog2(a.m) - 1
	}
	em1 := new(big.Int).Sub(a.e, bigOne)
	return dyadic.Ilog2(a.m) - dyadic.Ilog2(em1) - 1
}

// Better reports whether a is a sub-interval of b (a carries at least
// as much information). Bottom is the top of the order.
func (a Approx) Better(b Approx) bool {
	return a.Lower().Cmp(b.Lower()) >= 0 && a.Upper().Cmp(b.Upper()) <= 0
}

// Consistent reports whether a and b have a common point.
func (a Approx) Consistent(b Approx) bool {
	return a.Lower().Cmp(b.Upper()) <= 0 && b.Lower().Cmp(a.Upper()) <= 0
}

// endToApprox returns the centred interval with the given endpoints,
// or Bottom if either is infinite or they are reversed.
func endToApprox(mb int, lower, upper dyadic.Ext) Approx {
	if !lower.IsFinite() || !upper.IsFinite() {
		return Approx{}
	}
	l, u := lower.Dyadic(), upper.Dyadic()
	if u.Cmp(l) < 0 {
		return Approx{}
	}
	r := min(l.Exp, u.Exp)
	lm := new(big.Int).Lsh(l.Mant, uint(l.Exp-r))
	um := new(big.Int).Lsh(u.Mant, uint(u.Exp-r))
	m := new(big.Int).Add(um, lm)
	e := new(big.Int).Sub(um, lm)
	return approxMB(mb, m, e, r-1)
}

// Union returns the smallest interval containing both a and b.
// Bottom absorbs.
func (a Approx) Union(b Approx) Approx {
	if a.IsBottom() || b.IsBottom() {
		return Approx{}
	}
	lower := a.Lower()
	if l := b.Lower(); l.Cmp(lower) < 0 {
		lower = l
	}
	upper := a.Upper()
	if u := b.Upper(); u.Cmp(upper) > 0 {
		upper = u
	}
	return endToApprox(max(a.mb, b.mb), lower, upper)
}

// Intersection returns the common part of a and b. Bottom is the
// identity here (intersecting with "no constraint" returns the other
// operand), which deliberately breaks the Bottom-absorbs rule of the
// arithmetic. Disjoint intervals are a programmer error.
func (a Approx) Intersection(b Approx) Approx {
	if a.IsBottom() {
		return b
	}
	if b.IsBottom() {
		return a
	}
	if !a.Consistent(b) {
		Errorf("intersection of disjoint intervals")
	}
	lower := a.Lower()
	if l := b.Lower(); l.Cmp(lower) > 0 {
		lower = l
	}
	upper := a.Upper()
	if u := b.Upper(); u.Cmp(upper) < 0 {
		upper = u
	}
	return endToApprox(max(a.mb, b.mb), lower, upper)
}

// Equal reports whether a and b encode the same interval. The tuples
// may differ; the comparison aligns exponents first.
func (a Approx) Equal(b Approx) bool {
	if a.IsBottom() || b.IsBottom() {
		return a.IsBottom() == b.IsBottom()
	}
	r := min(a.s, b.s)
	am := new(big.Int).Lsh(a.m, uint(a.s-r))
	bm := new(big.Int).Lsh(b.m, uint(b.s-r))
	if am.Cmp(bm) != 0 {
		return false
	}
	ae := new(big.Int).Lsh(a.e, uint(a.s-r))
	be := new(big.Int).Lsh(b.e, uint(b.s-r))
	return ae.Cmp(be) == 0
}

// Cmp orders a against b. It is partial: the order is defined when
// both are exact or when the intervals are disjoint. Anything else is
// an uncertain comparison, which is uncomputable in general, so it
// fails fast.
func (a Approx) Cmp(b Approx) int {
	if a.Exact() && b.Exact() {
		return a.Centre().Cmp(b.Centre())
	}
	if !a.IsBottom() && !b.IsBottom() {
		if a.Upper().Cmp(b.Lower()) < 0 {
			return -1
		}
		if b.Upper().Cmp(a.Lower()) < 0 {
			return 1
		}
	}
	Errorf("uncertain comparison of %s and %s", a, b)
	panic("unreachable")
}

// ContainsRat reports whether the rational r lies in a.
func (a Approx) ContainsRat(r *big.Rat) bool {
	if a.IsBottom() {
		return true
	}
	return a.Lower().Dyadic().Rat().Cmp(r) <= 0 && r.Cmp(a.Upper().Dyadic().Rat()) <= 0
}

// ToRat returns the midpoint as an exact rational, or nil for Bottom.
func (a Approx) ToRat() *big.Rat {
	if a.IsBottom() {
		return nil
	}
	return a.Centre().Rat()
}

// Scale returns a·2^k, exactly.
func (a Approx) Scale(k int) Approx {
	if a.IsBottom() {
		return a
	}
	return Approx{a.mb, a.m, a.e, a.s + k}
}

// Floor returns the exact integer ⌊a⌋ when the interval determines
// it, and Bottom otherwise.
func (a Approx) Floor() Approx {
	if a.IsBottom() {
		return a
	}
	lo := floorDyadic(a.Lower().Dyadic())
	hi := floorDyadic(a.Upper().Dyadic())
	if lo.Cmp(hi) != 0 {
		return Approx{}
	}
	return FromBigInt(lo)
}

// Ceil returns the exact integer ⌈a⌉ when the interval determines it,
// and Bottom otherwise.
func (a Approx) Ceil() Approx {
	return a.Neg().Floor().Neg()
}

// Round returns the nearest integer when the interval determines it
// (ties toward +infinity), and Bottom otherwise.
func (a Approx) Round() Approx {
	if a.IsBottom() {
		return a
	}
	return a.Add(NewMB(2, 1, 0, -1)).Floor()
}

func floorDyadic(d dyadic.Dyadic) *big.Int {
	z := new(big.Int).Set(d.Mant)
	if d.Exp >= 0 {
		return z.Lsh(z, uint(d.Exp))
	}
	return z.Rsh(z, uint(-d.Exp))
}

func (a Approx) String() string {
	return ShowA(a)
}
