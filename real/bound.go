// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"math/big"

	"robpike.io/creal/dyadic"
)

// The two tunables of the whole system. errorBits is the number of
// bits retained in a radius by boundErrorTerm; defaultPrecision is
// the precision used by the rational and float conversions.
const (
	errorBits        = 10
	defaultPrecision = 31
)

var errorBound = new(big.Int).Lsh(bigOne, errorBits)

// boundErrorTerm reduces a radius that has grown beyond errorBound by
// shifting midpoint and radius right, rounding the midpoint to
// nearest and bumping the radius so the result still encloses a.
// It sits below the identity in the Better order.
func boundErrorTerm(a Approx) Approx {
	if a.IsBottom() || a.e.Cmp(errorBound) < 0 {
		return a
	}
	k := uint(dyadic.Ilog2(a.e) + 1 - errorBits)
	m := roundShift(a.m, k)
	e := new(big.Int).Sub(a.e, bigOne)
	e.Rsh(e, k)
	e.Add(e, bigTwo)
	return Approx{a.mb, m, e, a.s + int(k)}
}

// limitSize forces the exponent up to at least -l, rounding the way
// boundErrorTerm does and trimming the midpoint bound by the shift.
// It sits below the identity in the Better order.
func limitSize(l int, a Approx) Approx {
	if a.IsBottom() {
		return a
	}
	k := -l - a.s
	if k <= 0 {
		return a
	}
	ku := uint(k)
	m := roundShift(a.m, ku)
	var e *big.Int
	if a.e.Sign() == 0 {
		e = new(big.Int)
		if back := new(big.Int).Lsh(m, ku); back.Cmp(a.m) != 0 {
			e.SetInt64(1)
		}
	} else {
		e = new(big.Int).Sub(a.e, bigOne)
		e.Rsh(e, ku)
		e.Add(e, bigTwo)
	}
	return Approx{max(2, a.mb-k), m, e, -l}
}

// limitAndBound is the canonicalisation applied after every lifted
// operation on a Real.
func limitAndBound(l int, a Approx) Approx {
	return limitSize(l, boundErrorTerm(a))
}

// boundErrorTermMB is boundErrorTerm followed by midpoint-bound
// renormalisation, used between the squarings of exp.
func boundErrorTermMB(a Approx) Approx {
	return enforceMB(boundErrorTerm(a))
}

// setMB raises the midpoint bound of a to at least mb. It never
// lowers the bound; starving an operand is always wrong.
func setMB(mb int, a Approx) Approx {
	if a.IsBottom() || mb <= a.mb {
		return a
	}
	return Approx{mb, a.m, a.e, a.s}
}

// exactAt returns the exact approximation of d with a midpoint bound
// of at least mb. Unlike FromDyadicMB it never renormalises, so the
// result is guaranteed exact; the endpoint-hull evaluations depend on
// that to terminate.
func exactAt(mb int, d dyadic.Dyadic) Approx {
	return setMB(mb, FromDyadic(d))
}

// ok demotes a result with no more than d bits of precision to
// Bottom, so a stalling term cannot leak nonsense into the stream.
func ok(d int, a Approx) Approx {
	if !a.IsBottom() && a.Precision() > d {
		return a
	}
	return Approx{}
}
