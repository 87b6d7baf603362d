// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShowAExact(t *testing.T) {
	tests := []struct {
		a    Approx
		want string
	}{
		{FromInt64(0), "0"},
		{FromInt64(42), "42"},
		{FromInt64(-7), "-7"},
		{New(3, 0, 4), "48"},
		{New(-3, 0, -1), "-1.5"},
		{New(1, 0, -3), "0.125"},
		{New(-1, 0, -10), "-0.0009765625"},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.want, ShowA(test.a)); diff != "" {
			t.Errorf("ShowA: (-want +got)\n%s", diff)
		}
	}
}

func TestShowInBase(t *testing.T) {
	tests := []struct {
		base int
		a    Approx
		want string
	}{
		{2, FromInt64(5), "101"},
		{16, FromInt64(255), "ff"},
		{16, New(-1, 0, -4), "-0.1"},
		{2, New(3, 0, -1), "1.1"},
		{3, FromInt64(5), "12"}, // odd base, integer: still exact
		{8, New(1, 0, -3), "0.1"},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.want, ShowInBaseA(test.base, test.a)); diff != "" {
			t.Errorf("ShowInBaseA(%d): (-want +got)\n%s", test.base, diff)
		}
	}
	wantPanic(t, "base 17", func() { ShowInBaseA(17, FromInt64(1)) })
	wantPanic(t, "base 1", func() { ShowInBaseA(1, FromInt64(1)) })
}

func TestShowABottom(t *testing.T) {
	if got := ShowA(Bottom()); got != "⊥" {
		t.Errorf("ShowA(Bottom) = %q", got)
	}
}

// The canonical edge case: [0, 2] centred at 1 prints as exactly "1.~".
func TestShowAUnitInterval(t *testing.T) {
	if got := ShowA(NewMB(20, 1, 1, 0)); got != "1.~" {
		t.Errorf("ShowA(1±1) = %q, want \"1.~\"", got)
	}
}

func TestShowAInexact(t *testing.T) {
	tests := []struct {
		a    Approx
		want string
	}{
		// -250 ± 1/4.
		{NewMB(20, -1000, 1, -2), "-250.~"},
		// 1/2 ± 1/512: two certain decimals.
		{NewMB(20, 256, 1, -9), "0.50~"},
		// Radius swamps the low integer digits.
		{NewMB(20, 1001, 30, 0), "10~~.~"},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.want, ShowA(test.a)); diff != "" {
			t.Errorf("ShowA(%#v): (-want +got)\n%s", test.a, diff)
		}
	}
}

func TestShowANearZero(t *testing.T) {
	// |x| ≤ 4·2^-10 ≈ 0.0039.
	if got := ShowA(NewMB(20, 1, 3, -10)); got != "±0.00~" {
		t.Errorf("near zero = %q, want ±0.00~", got)
	}
	// Near zero but with a hopeless bound.
	if got := ShowA(NewMB(20, 1, 5, 0)); got != "±~" {
		t.Errorf("wide near zero = %q, want ±~", got)
	}
}

func TestShowAOddBaseFraction(t *testing.T) {
	// 1/2 in base 3 does not terminate; the printer falls back to the
	// uncertain form at the value's own granularity.
	got := ShowInBaseA(3, New(1, 0, -1))
	if !strings.HasSuffix(got, "~") {
		t.Errorf("base-3 half = %q lacks the uncertainty marker", got)
	}
}

func TestShowCRPrecision(t *testing.T) {
	x := FromRat(big.NewRat(1, 3))
	s := ShowCR(100, x)
	if !strings.HasPrefix(s, "0.3333333333") {
		t.Errorf("showCR(100, 1/3) = %q", s)
	}
	if !strings.HasSuffix(s, "~") {
		t.Errorf("showCR of inexact lacks ~: %q", s)
	}
}
