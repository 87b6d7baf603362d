// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"math"
	"math/big"
	"strings"
	"testing"
)

func TestResourceSequence(t *testing.T) {
	want := []int{80, 120, 180, 270, 405}
	for k, w := range want {
		if got := resource(k); got != w {
			t.Errorf("resource(%d) = %d, want %d", k, got, w)
		}
	}
}

func TestRequireBasics(t *testing.T) {
	third := FromRat(big.NewRat(1, 3))
	a := third.Require(100)
	if a.IsBottom() {
		t.Fatal("require(100, 1/3) is Bottom")
	}
	if a.Precision() <= 100 {
		t.Errorf("precision %d not above 100", a.Precision())
	}
	if !a.ContainsRat(rat(1, 3)) {
		t.Errorf("%v misses 1/3", a)
	}
}

// Dyadic rationals are represented exactly at every level, so every
// requirement encloses the point.
func TestRoundTripDyadic(t *testing.T) {
	x := FromRat(big.NewRat(7, 8))
	for _, d := range []int{1, 10, 100, 500} {
		if a := x.Require(d); !a.ContainsRat(rat(7, 8)) {
			t.Errorf("require(%d, 7/8) = %v misses the point", d, a)
		}
	}
}

// Deeper requirements refine but stay consistent with shallow ones.
func TestMonotoneRefinement(t *testing.T) {
	x := Pi()
	a := x.Require(50)
	b := x.Require(300)
	if !a.Consistent(b) {
		t.Errorf("require(50) = %v and require(300) = %v inconsistent", a, b)
	}
	if b.Precision() <= a.Precision() {
		t.Errorf("deeper requirement did not refine: %d then %d", a.Precision(), b.Precision())
	}
}

// Field laws hold up to enclosure: both sides of each law always
// intersect.
func TestFieldLaws(t *testing.T) {
	a := FromRat(big.NewRat(1, 3))
	b := FromInt(7)
	c := FromRat(big.NewRat(-5, 7))
	assoc1 := a.Add(b).Add(c)
	assoc2 := a.Add(b.Add(c))
	comm1 := a.Mul(b)
	comm2 := b.Mul(a)
	dist1 := a.Mul(b.Add(c))
	dist2 := a.Mul(b).Add(a.Mul(c))
	for k := 0; k < 5; k++ {
		if !assoc1.At(k).Consistent(assoc2.At(k)) {
			t.Errorf("associativity fails at element %d", k)
		}
		if !comm1.At(k).Consistent(comm2.At(k)) {
			t.Errorf("commutativity fails at element %d", k)
		}
		if !dist1.At(k).Consistent(dist2.At(k)) {
			t.Errorf("distributivity fails at element %d", k)
		}
	}
}

// S1: Rump's first example. Double precision gets the sign wrong;
// the computable real nails the value.
func TestRump1(t *testing.T) {
	a := FromInt(77617)
	b := FromInt(33096)
	expr := FromInt(21).Mul(b.PowInt(2)).
		Sub(FromInt(2).Mul(a.PowInt(2))).
		Add(FromInt(55).Mul(b.PowInt(4))).
		Sub(FromInt(10).Mul(a.PowInt(2)).Mul(b.PowInt(2))).
		Add(a.Div(b.Scale(1)))
	got := expr.Require(100)
	if !got.ContainsRat(rat(-54767, 66192)) {
		t.Errorf("rump = %v misses -54767/66192", got)
	}
	if s := ShowA(got); !strings.HasPrefix(s, "-0.8273960") {
		t.Errorf("showA(rump) = %q", s)
	}
}

// S2: Rump's polynomial in p and q, checked against the exact
// rational computed alongside.
func TestRump2(t *testing.T) {
	pr := big.NewRat(206987, 2048)
	qr := big.NewRat(119504, 2048)
	p := FromRat(pr)
	q := FromRat(qr)
	type term struct {
		c      int64
		pp, qq int
	}
	terms := []term{
		{1, 16, 0}, {6561, 0, 16}, {-17496, 2, 14}, {20412, 4, 12},
		{-13608, 6, 10}, {5670, 8, 8}, {-1512, 10, 6}, {252, 12, 4}, {-24, 14, 2},
	}
	inner := FromInt(0)
	innerRat := new(big.Rat)
	for _, tm := range terms {
		inner = inner.Add(FromInt(tm.c).Mul(p.PowInt(tm.pp)).Mul(q.PowInt(tm.qq)))
		innerRat.Add(innerRat, ratPowTerm(tm.c, pr, tm.pp, qr, tm.qq))
	}
	r := p.PowInt(3).Mul(inner).Sub(q)
	exact := new(big.Rat).Mul(ratPow(pr, 3), innerRat)
	exact.Sub(exact, qr)
	got := r.Require(200)
	if got.IsBottom() {
		t.Fatal("rump 2 is Bottom")
	}
	if !got.ContainsRat(exact) {
		t.Errorf("rump 2 = %v misses the exact rational", got)
	}
}

func ratPow(r *big.Rat, n int) *big.Rat {
	z := big.NewRat(1, 1)
	for i := 0; i < n; i++ {
		z.Mul(z, r)
	}
	return z
}

func ratPowTerm(c int64, p *big.Rat, pp int, q *big.Rat, qq int) *big.Rat {
	z := new(big.Rat).SetInt64(c)
	z.Mul(z, ratPow(p, pp))
	z.Mul(z, ratPow(q, qq))
	return z
}

// S3: a thousand bits of π and its first 300 decimal digits.
func TestPiDeep(t *testing.T) {
	pi := Pi()
	a := pi.Require(1000)
	lo, hi := decBounds(t, piDigits)
	checkEnclosesRat(t, "require(1000, π)", a, lo, hi)
	s := ShowCR(1000, pi)
	if !strings.HasPrefix(s, piDigits) {
		t.Errorf("showCR(1000, π) diverges from the reference digits:\n%s", s)
	}
}

// S4: exp(log 2) is 2 again, to width 2^-290.
func TestExpLogRoundTrip(t *testing.T) {
	x := FromInt(2).Log().Exp()
	a := x.Require(300)
	if a.IsBottom() {
		t.Fatal("exp(log 2) is Bottom")
	}
	if !a.ContainsRat(rat(2, 1)) {
		t.Errorf("exp(log 2) = %v misses 2", a)
	}
	width := a.Diameter().Rat()
	bound := new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Lsh(big.NewInt(1), 290))
	if width.Cmp(bound) > 0 {
		t.Errorf("width %s above 2^-290", width.FloatString(95))
	}
}

// S5: the sine and cosine of π.
func TestSinCosPi(t *testing.T) {
	pi := Pi()
	if a := pi.Sin().Require(200); !a.ContainsRat(rat(0, 1)) {
		t.Errorf("sin π = %v misses 0", a)
	}
	if a := pi.Cos().Require(200); !a.ContainsRat(rat(-1, 1)) {
		t.Errorf("cos π = %v misses -1", a)
	}
}

// S7: tan(atan x) returns to x.
func TestTanAtan(t *testing.T) {
	x := FromFloat64(-0.2939788524332769)
	y := x.Atan().Tan()
	ax := x.Require(10)
	ay := y.Require(10)
	if ay.IsBottom() {
		t.Fatal("tan(atan x) is Bottom")
	}
	if !ax.Consistent(ay) {
		t.Errorf("tan(atan x) = %v inconsistent with x = %v", ay, ax)
	}
}

func TestTranscendentalIdentities(t *testing.T) {
	// sin²+cos²-1 and log(exp x)-x contain zero.
	x := FromRat(big.NewRat(3, 7))
	pyth := x.Sin().Mul(x.Sin()).Add(x.Cos().Mul(x.Cos())).Sub(FromInt(1))
	if a := pyth.Require(100); !a.ContainsRat(rat(0, 1)) {
		t.Errorf("sin²+cos²-1 = %v misses 0", a)
	}
	le := x.Exp().Log().Sub(x)
	if a := le.Require(100); !a.ContainsRat(rat(0, 1)) {
		t.Errorf("log(exp x)-x = %v misses 0", a)
	}
}

func TestDerivedAgainstFloat(t *testing.T) {
	half := FromRat(big.NewRat(1, 2))
	two := FromInt(2)
	tests := []struct {
		name string
		x    *Real
		want float64
	}{
		{"tan", half.Tan(), math.Tan(0.5)},
		{"asin", half.Asin(), math.Asin(0.5)},
		{"acos", half.Acos(), math.Acos(0.5)},
		{"sinh", half.Sinh(), math.Sinh(0.5)},
		{"cosh", half.Cosh(), math.Cosh(0.5)},
		{"tanh", half.Tanh(), math.Tanh(0.5)},
		{"asinh", half.Asinh(), math.Asinh(0.5)},
		{"acosh", two.Acosh(), math.Acosh(2)},
		{"atanh", half.Atanh(), math.Atanh(0.5)},
	}
	for _, test := range tests {
		got, converged := test.x.ToFloat64()
		if !converged {
			t.Errorf("%s(…) did not converge", test.name)
			continue
		}
		if math.Abs(got-test.want) > 1e-12 {
			t.Errorf("%s = %.17g, want %.17g", test.name, got, test.want)
		}
	}
}

func TestToFloat64(t *testing.T) {
	if got, ok := FromFloat64Exact(1.5).ToFloat64(); !ok || got != 1.5 {
		t.Errorf("roundtrip 1.5 = %g, %t", got, ok)
	}
	if got, ok := Pi().ToFloat64(); !ok || got != math.Pi {
		t.Errorf("π = %g, want math.Pi", got)
	}
	if _, ok := FromFloat64(math.NaN()).ToFloat64(); ok {
		t.Error("NaN converged")
	}
}

func TestFromFloat64(t *testing.T) {
	if a := FromFloat64(math.Inf(1)).Require(10); !a.IsBottom() {
		t.Errorf("+Inf = %v, want Bottom", a)
	}
	x := FromFloat64Exact(0.25)
	if a := x.Require(100); !a.ContainsRat(rat(1, 4)) || a.Precision() != PrecExact {
		t.Errorf("exact 0.25 = %v", a)
	}
	y := FromFloat64(0.1)
	if a := y.Require(40); !a.ContainsRat(new(big.Rat).SetFloat64(0.1)) {
		t.Errorf("0.1 enclosure %v misses the float value", a)
	}
}

func TestToRat(t *testing.T) {
	r := FromRat(big.NewRat(22, 7)).ToRat()
	if r == nil {
		t.Fatal("ToRat gave nil")
	}
	diff := new(big.Rat).Sub(r, big.NewRat(22, 7))
	diff.Abs(diff)
	if diff.Cmp(big.NewRat(1, 1<<30)) > 0 {
		t.Errorf("ToRat(22/7) = %s too far off", r.FloatString(12))
	}
}

func TestEpsilon(t *testing.T) {
	eps := Epsilon()
	a := eps.At(0)
	if !a.ContainsRat(rat(0, 1)) {
		t.Error("epsilon misses zero")
	}
	if got := a.Radius().Rat(); got.Cmp(new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Lsh(big.NewInt(1), 80))) != 0 {
		t.Errorf("epsilon radius %s, want 2^-80", got.FloatString(30))
	}
}

func TestPowIntNegative(t *testing.T) {
	x := FromInt(2).PowInt(-2)
	if a := x.Require(50); !a.ContainsRat(rat(1, 4)) {
		t.Errorf("2^-2 = %v misses 1/4", a)
	}
}

func TestLog2CR(t *testing.T) {
	lo, hi := decBounds(t, ln2Digits)
	checkEnclosesRat(t, "Log2", Log2().Require(200), lo, hi)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want *big.Rat
	}{
		{"3.25", big.NewRat(13, 4)},
		{"-0.5e-2", big.NewRat(-1, 200)},
		{"1e3", big.NewRat(1000, 1)},
		{"12", big.NewRat(12, 1)},
		{"+0.125", big.NewRat(1, 8)},
	}
	for _, test := range tests {
		x, err := Parse(test.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", test.in, err)
			continue
		}
		if a := x.Require(100); !a.ContainsRat(test.want) {
			t.Errorf("Parse(%q) = %v, want %s", test.in, a, test.want)
		}
	}
	for _, bad := range []string{"", "abc", "1.2.3", "1e", "--4"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) succeeded", bad)
		}
	}
}

func TestShowCRN(t *testing.T) {
	got := ShowCRN(4, FromInt(5))
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("ShowCRN(4, 5) gave %d lines", len(lines))
	}
	for _, line := range lines {
		if line != "5" {
			t.Errorf("line %q, want 5", line)
		}
	}
}

func TestAtMemoizes(t *testing.T) {
	calls := 0
	x := newReal(func(k int) Approx {
		calls++
		return FromInt64(int64(k))
	})
	x.At(3)
	x.At(3)
	x.At(1)
	if calls != 2 {
		t.Errorf("approx called %d times, want 2", calls)
	}
}
