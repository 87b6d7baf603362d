// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dyadic

// An Ext is a dyadic extended with the two infinities, used for
// interval endpoints.
type Ext struct {
	kind int // -1, 0, +1: negative infinity, finite, positive infinity
	d    Dyadic
}

// Fin returns d as a finite extended dyadic.
func Fin(d Dyadic) Ext { return Ext{0, d} }

// NegInfinity and PosInfinity are the two infinite endpoints.
func NegInfinity() Ext { return Ext{kind: -1} }
func PosInfinity() Ext { return Ext{kind: 1} }

func (x Ext) IsFinite() bool { return x.kind == 0 }

// Dyadic returns the finite value; it panics on an infinity.
func (x Ext) Dyadic() Dyadic {
	if x.kind != 0 {
		panic("dyadic: Dyadic of infinite Ext")
	}
	return x.d
}

// Cmp returns -1, 0, +1 ordering x against y, with
// -∞ < every finite dyadic < +∞.
func (x Ext) Cmp(y Ext) int {
	switch {
	case x.kind != y.kind && x.kind < y.kind:
		return -1
	case x.kind != y.kind:
		return 1
	case x.kind != 0:
		return 0
	}
	return x.d.Cmp(y.d)
}

func (x Ext) String() string {
	switch x.kind {
	case -1:
		return "-inf"
	case 1:
		return "+inf"
	}
	return x.d.String()
}
