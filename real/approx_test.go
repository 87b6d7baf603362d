// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"math/big"
	"testing"
)

func wantPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	f()
}

func rat(a, b int64) *big.Rat {
	return big.NewRat(a, b)
}

func TestBottomBasics(t *testing.T) {
	b := Bottom()
	if !b.IsBottom() {
		t.Fatal("Bottom is not bottom")
	}
	if b.Precision() != PrecBottom || b.Significance() != PrecBottom {
		t.Error("Bottom precision/significance not PrecBottom")
	}
	if !b.ContainsRat(rat(12345, 7)) {
		t.Error("Bottom does not contain everything")
	}
	if b.Lower().Cmp(b.Upper()) >= 0 {
		t.Error("Bottom endpoints are not -inf < +inf")
	}
}

func TestConstructors(t *testing.T) {
	a := New(5, 1, -1) // [2, 3]
	if got := a.Lower().Dyadic().Rat(); got.Cmp(rat(2, 1)) != 0 {
		t.Errorf("lower = %s, want 2", got)
	}
	if got := a.Upper().Dyadic().Rat(); got.Cmp(rat(3, 1)) != 0 {
		t.Errorf("upper = %s, want 3", got)
	}
	if a.Exact() {
		t.Error("[2,3] claims exact")
	}
	if !FromInt64(7).Exact() {
		t.Error("FromInt64 not exact")
	}
	if got := FromInt64(-3).Centre().Rat(); got.Cmp(rat(-3, 1)) != 0 {
		t.Errorf("centre = %s, want -3", got)
	}
}

func TestEnforceMB(t *testing.T) {
	a := NewMB(4, 1000, 0, 0)
	if !a.ContainsRat(rat(1000, 1)) {
		t.Error("enforceMB lost the point")
	}
	if a.m.BitLen() > 4 {
		t.Errorf("midpoint %s exceeds 4 bits", a.m)
	}
	// Small midpoints are left alone.
	b := NewMB(2, 1, 0, 0)
	if !b.Exact() {
		t.Error("1 with mb=2 renormalised")
	}
}

func TestToApprox(t *testing.T) {
	// Dyadic rationals convert exactly.
	a := ToApprox(20, rat(7, 8))
	if !a.Exact() || !a.ContainsRat(rat(7, 8)) {
		t.Errorf("ToApprox(7/8) = %s: not the exact point", a)
	}
	// Others land within one ulp and still enclose.
	b := ToApprox(20, rat(1, 3))
	if !b.ContainsRat(rat(1, 3)) {
		t.Error("ToApprox(1/3) does not contain 1/3")
	}
	if b.Precision() < 19 {
		t.Errorf("ToApprox(1/3) precision %d too low", b.Precision())
	}
	c := ToApprox(-2, rat(100, 3)) // negative precision
	if !c.ContainsRat(rat(100, 3)) {
		t.Error("ToApprox at negative precision does not enclose")
	}
}

func TestPrecisionSignificance(t *testing.T) {
	a := NewMB(40, 1, 1, -10)
	if got := a.Precision(); got != 9 {
		t.Errorf("precision = %d, want 9", got)
	}
	if FromInt64(5).Precision() != PrecExact {
		t.Error("exact value precision not PrecExact")
	}
	b := NewMB(40, 1024, 1, 0)
	if got := b.Significance(); got != 9 {
		t.Errorf("significance = %d, want 9", got)
	}
	if NewMB(40, 0, 5, 0).Significance() != PrecBottom {
		t.Error("zero-midpoint significance not PrecBottom")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b Approx
		want bool
	}{
		{NewMB(5, 4, 2, 0), NewMB(8, 2, 1, 1), true},
		{NewMB(5, 4, 2, 0), NewMB(5, 4, 3, 0), false},
		{FromInt64(2), New(1, 0, 1), true},
		{Bottom(), Bottom(), true},
		{Bottom(), FromInt64(0), false},
	}
	for _, test := range tests {
		if got := test.a.Equal(test.b); got != test.want {
			t.Errorf("Equal(%v, %v) = %t, want %t", test.a, test.b, got, test.want)
		}
	}
}

func TestBetterConsistent(t *testing.T) {
	wide := New(0, 4, 0)   // [-4, 4]
	mid := New(1, 2, 0)    // [-1, 3]
	point := FromInt64(1)  // 1
	apart := New(100, 1, 0)
	if !mid.Better(wide) || !point.Better(mid) || !point.Better(wide) {
		t.Error("sub-intervals not better")
	}
	if wide.Better(mid) {
		t.Error("super-interval claims better")
	}
	if !mid.Better(Bottom()) || Bottom().Better(point) {
		t.Error("Bottom is not the top of the order")
	}
	if !wide.Consistent(mid) || !mid.Consistent(point) {
		t.Error("overlapping intervals inconsistent")
	}
	if wide.Consistent(apart) {
		t.Error("disjoint intervals consistent")
	}
	if !Bottom().Consistent(apart) {
		t.Error("Bottom inconsistent")
	}
}

func TestUnionIntersection(t *testing.T) {
	a := New(1, 1, 0)  // [0, 2]
	b := New(3, 1, 0)  // [2, 4]
	c := New(10, 1, 0) // [9, 11]
	u := a.Union(b)
	if !a.Better(u) || !b.Better(u) {
		t.Errorf("union %v does not contain operands", u)
	}
	if !u.ContainsRat(rat(0, 1)) || !u.ContainsRat(rat(4, 1)) {
		t.Error("union misses endpoints")
	}
	if !a.Union(Bottom()).IsBottom() {
		t.Error("union with Bottom not Bottom")
	}
	i := a.Intersection(b)
	if !i.ContainsRat(rat(2, 1)) {
		t.Error("intersection misses the common point")
	}
	if !i.Better(a) || !i.Better(b) {
		t.Error("intersection wider than operands")
	}
	if got := a.Intersection(Bottom()); !got.Equal(a) {
		t.Error("intersection with Bottom is not the identity")
	}
	wantPanic(t, "disjoint intersection", func() { a.Intersection(c) })
}

func TestCmp(t *testing.T) {
	if got := FromInt64(1).Cmp(FromInt64(2)); got != -1 {
		t.Errorf("1 cmp 2 = %d", got)
	}
	if got := FromInt64(2).Cmp(FromInt64(2)); got != 0 {
		t.Errorf("2 cmp 2 = %d", got)
	}
	// Disjoint thick intervals order fine.
	if got := New(10, 1, 0).Cmp(New(0, 1, 0)); got != 1 {
		t.Errorf("[9,11] cmp [-1,1] = %d", got)
	}
	wantPanic(t, "overlapping Cmp", func() { New(1, 2, 0).Cmp(New(2, 2, 0)) })
	wantPanic(t, "Cmp with Bottom", func() { FromInt64(1).Cmp(Bottom()) })
	wantPanic(t, "MB of Bottom", func() { Bottom().MB() })
}

func TestFloorCeilRound(t *testing.T) {
	if got := FromInt64(7).Floor(); !got.Equal(FromInt64(7)) {
		t.Errorf("floor 7 = %v", got)
	}
	if got := New(5, 1, -2).Floor(); !got.Equal(FromInt64(1)) { // [1, 1.5]
		t.Errorf("floor [1,1.5] = %v", got)
	}
	if got := New(5, 1, -1).Floor(); !got.IsBottom() { // [2, 3]
		t.Errorf("floor [2,3] = %v, want Bottom", got)
	}
	if got := New(6, 1, -2).Ceil(); !got.Equal(FromInt64(2)) { // [1.25, 1.75]
		t.Errorf("ceil [1.25,1.75] = %v", got)
	}
	if got := New(5, 1, -1).Ceil(); !got.IsBottom() { // [2, 3]
		t.Errorf("ceil [2,3] = %v, want Bottom", got)
	}
	if got := New(82, 1, -3).Round(); !got.Equal(FromInt64(10)) { // [10.125, 10.375]
		t.Errorf("round [10.125,10.375] = %v", got)
	}
	if got := New(-5, 1, -1).Floor(); !got.IsBottom() { // [-3, -2]
		t.Errorf("floor [-3,-2] = %v, want Bottom", got)
	}
	if got := New(-7, 1, -2).Floor(); !got.Equal(FromInt64(-2)) { // [-2, -1.5]
		t.Errorf("floor [-2,-1.5] = %v", got)
	}
}

func TestScale(t *testing.T) {
	a := New(3, 1, 0).Scale(4) // [2,4]·16
	if !a.ContainsRat(rat(32, 1)) || !a.ContainsRat(rat(64, 1)) {
		t.Error("Scale lost the interval")
	}
	if !Bottom().Scale(2).IsBottom() {
		t.Error("Scale of Bottom not Bottom")
	}
}
