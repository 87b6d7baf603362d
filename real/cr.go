// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"math"
	"math/big"
)

// A Real is a computable real number: a lazy sequence of Approx
// enclosures of one real value, element k computed at resource level
// resource(k). Elements are computed on demand, at most once, and
// never mutated; two non-Bottom elements of a well-formed Real are
// always consistent. A Real is not safe for concurrent use; the
// evaluation model is single-threaded laziness.
type Real struct {
	approx func(k int) Approx
	memo   []Approx
	known  []bool
}

func newReal(f func(k int) Approx) *Real {
	return &Real{approx: f}
}

// At returns element k of the stream.
func (x *Real) At(k int) Approx {
	for len(x.memo) <= k {
		x.memo = append(x.memo, Approx{})
		x.known = append(x.known, false)
	}
	if !x.known[k] {
		x.memo[k] = x.approx(k)
		x.known[k] = true
	}
	return x.memo[k]
}

// resource returns the k'th resource level: 80, then growing by
// half each step.
func resource(k int) int {
	r := 80
	for ; k > 0; k-- {
		r = r * 3 / 2
	}
	return r
}

// requireCap bounds the resource level Require will escalate to for a
// given precision before giving up with Bottom.
func requireCap(d int) int {
	return 16 * (d + 100)
}

// Require walks the stream from element 0 and returns the first
// enclosure with more than d bits of precision. A divergent term
// (reciprocal of zero, log across zero, …) keeps yielding Bottom;
// once the resource level far exceeds the request, Require stops
// escalating and reports Bottom to the caller.
func (x *Real) Require(d int) Approx {
	for k := 0; ; k++ {
		if a := ok(d, x.At(k)); !a.IsBottom() {
			return a
		}
		if resource(k) > requireCap(d) {
			return Approx{}
		}
	}
}

// unary lifts an Approx operation to Reals: raise the operand's
// midpoint bound to the resource level, apply, canonicalise, and
// demote a stalling result to Bottom.
func unary(x *Real, f func(a Approx) Approx) *Real {
	return newReal(func(k int) Approx {
		l := resource(k)
		return ok(10, limitAndBound(l, f(setMB(l, x.At(k)))))
	})
}

// unaryRes lifts an operation that also takes the resource level as
// its working precision.
func unaryRes(x *Real, f func(res int, a Approx) Approx) *Real {
	return newReal(func(k int) Approx {
		l := resource(k)
		return ok(10, limitAndBound(l, f(l, setMB(l, x.At(k)))))
	})
}

func binary(x, y *Real, f func(a, b Approx) Approx) *Real {
	return newReal(func(k int) Approx {
		l := resource(k)
		return ok(10, limitAndBound(l, f(setMB(l, x.At(k)), setMB(l, y.At(k)))))
	})
}

// FromInt returns the Real denoting an integer.
func FromInt(v int64) *Real {
	a := FromInt64(v)
	return newReal(func(int) Approx { return a })
}

// FromBig returns the Real denoting an integer.
func FromBig(v *big.Int) *Real {
	a := FromBigInt(v)
	return newReal(func(int) Approx { return a })
}

// FromRat returns the Real denoting an exact rational.
func FromRat(r *big.Rat) *Real {
	rc := new(big.Rat).Set(r)
	return newReal(func(k int) Approx {
		return ToApprox(resource(k), rc)
	})
}

// FromFloat64 returns the Real denoting a float64 up to one ulp of
// its 53-bit mantissa, the granularity the bits were produced at.
// NaN and the infinities denote no real at all, so their stream is
// constantly Bottom.
func FromFloat64(f float64) *Real {
	return fromFloat64(f, 1)
}

// FromFloat64Exact returns the Real denoting the exact binary value
// of a float64.
func FromFloat64Exact(f float64) *Real {
	return fromFloat64(f, 0)
}

func fromFloat64(f float64, e int64) *Real {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return newReal(func(int) Approx { return Approx{} })
	}
	fm, fe := math.Frexp(f)
	a := NewMB(64, int64(fm*(1<<53)), e, fe-53)
	return newReal(func(int) Approx { return a })
}

// Pi is the circle constant, from the Ramanujan binary-splitting
// sequence.
func Pi() *Real {
	return newReal(func(k int) Approx {
		l := resource(k)
		return ok(10, limitAndBound(l, PiA(l)))
	})
}

// Log2 is ln 2.
func Log2() *Real {
	return newReal(func(k int) Approx {
		l := resource(k)
		return ok(10, limitAndBound(l, Log2A(l)))
	})
}

// Epsilon is the sentinel [-2^-Lk, 2^-Lk]: an interval that shrinks
// with the resource level without ever committing to a value.
func Epsilon() *Real {
	return newReal(func(k int) Approx {
		return NewMB(2, 0, 1, -resource(k))
	})
}

// Field operations.

func (x *Real) Add(y *Real) *Real { return binary(x, y, Approx.Add) }
func (x *Real) Sub(y *Real) *Real { return binary(x, y, Approx.Sub) }
func (x *Real) Mul(y *Real) *Real { return binary(x, y, Approx.Mul) }
func (x *Real) Div(y *Real) *Real { return binary(x, y, Approx.Div) }
func (x *Real) Neg() *Real        { return unary(x, Approx.Neg) }
func (x *Real) Abs() *Real        { return unary(x, Approx.Abs) }
func (x *Real) Signum() *Real     { return unary(x, Approx.Signum) }
func (x *Real) Recip() *Real      { return unary(x, Approx.Recip) }

// Scale returns x·2^k, exactly.
func (x *Real) Scale(k int) *Real {
	return unary(x, func(a Approx) Approx { return a.Scale(k) })
}

// PowInt returns xⁿ, using the tight single-operand power at each
// resource level rather than repeated multiplication.
func (x *Real) PowInt(n int) *Real {
	if n < 0 {
		return x.PowInt(-n).Recip()
	}
	return unary(x, func(a Approx) Approx { return a.powInt(n) })
}

// Transcendental functions.

func (x *Real) Sqrt() *Real { return unaryRes(x, SqrtA) }
func (x *Real) Exp() *Real  { return unaryRes(x, ExpA) }

// Log dispatches between the series-based logarithm and the AGM one,
// which overtakes it in the thousands of bits.
func (x *Real) Log() *Real {
	return unaryRes(x, func(res int, a Approx) Approx {
		if res > 1000 {
			return LogAgmA(res, a)
		}
		return LogA(res, a)
	})
}

func (x *Real) Sin() *Real  { return unaryRes(x, SinA) }
func (x *Real) Cos() *Real  { return unaryRes(x, CosA) }
func (x *Real) Atan() *Real { return unaryRes(x, AtanA) }

// Tan is sin/cos; near the poles the quotient refuses to converge
// and Require reports Bottom.
func (x *Real) Tan() *Real { return x.Sin().Div(x.Cos()) }

// Asin uses asin x = 2·atan(x/(1 + √(1-x²))), stable across the
// whole domain including the endpoints.
func (x *Real) Asin() *Real {
	one := FromInt(1)
	d := one.Add(one.Sub(x.Mul(x)).Sqrt())
	return x.Div(d).Atan().Scale(1)
}

// Acos is π/2 - asin x.
func (x *Real) Acos() *Real {
	return Pi().Scale(-1).Sub(x.Asin())
}

// Sinh is (eˣ - e⁻ˣ)/2; Cosh is (eˣ + e⁻ˣ)/2; Tanh is
// (e²ˣ - 1)/(e²ˣ + 1).
func (x *Real) Sinh() *Real {
	ex := x.Exp()
	return ex.Sub(ex.Recip()).Scale(-1)
}

func (x *Real) Cosh() *Real {
	ex := x.Exp()
	return ex.Add(ex.Recip()).Scale(-1)
}

func (x *Real) Tanh() *Real {
	one := FromInt(1)
	e2 := x.Scale(1).Exp()
	return e2.Sub(one).Div(e2.Add(one))
}

// Asinh is ln(x + √(x²+1)); Acosh is ln(x + √(x²-1)), for x ≥ 1;
// Atanh is ln((1+x)/(1-x))/2, for |x| < 1.
func (x *Real) Asinh() *Real {
	one := FromInt(1)
	return x.Add(x.Mul(x).Add(one).Sqrt()).Log()
}

func (x *Real) Acosh() *Real {
	one := FromInt(1)
	return x.Add(x.Mul(x).Sub(one).Sqrt()).Log()
}

func (x *Real) Atanh() *Real {
	one := FromInt(1)
	return one.Add(x).Div(one.Sub(x)).Log().Scale(-1)
}

// ToFloat64 returns the nearest float64 once a full mantissa plus
// guard bits is available, reporting failure if the value refuses to
// converge.
func (x *Real) ToFloat64() (float64, bool) {
	a := x.Require(54 + errorBits)
	if a.IsBottom() {
		return 0, false
	}
	return a.Centre().Float64(), true
}

// ToRat returns the midpoint of the approximation at the default
// precision, or nil if the value refuses to converge.
func (x *Real) ToRat() *big.Rat {
	return x.Require(defaultPrecision).ToRat()
}
