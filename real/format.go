// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"math/big"
	"strings"
)

// ShowA prints an approximation in base 10. Exact values print as
// plain numbers; an inexact value prints its certain digits and a
// trailing ~ at the first uncertain position; a value whose interval
// crosses zero prints as ± followed by the digits its magnitude is
// known to be below.
func ShowA(a Approx) string {
	return ShowInBaseA(10, a)
}

const digitChars = "0123456789abcdef"

// ShowInBaseA prints an approximation in any base up to 16.
func ShowInBaseA(base int, a Approx) string {
	if base < 2 || base > 16 {
		Errorf("show: base %d out of range", base)
	}
	if a.IsBottom() {
		return "⊥"
	}
	if a.e.Sign() == 0 && (base%2 == 0 || a.s >= 0) {
		return showExact(base, a)
	}
	am := new(big.Int).Abs(a.m)
	if am.Cmp(a.e) < 0 {
		return showNearZero(base, a)
	}
	return showInexact(base, a)
}

// showExact prints m·2^s with a terminating expansion: s ≥ 0 is an
// integer, and in an even base the fraction bits run out.
func showExact(base int, a Approx) string {
	sign := ""
	m := new(big.Int).Abs(a.m)
	if a.m.Sign() < 0 {
		sign = "-"
	}
	if a.s >= 0 {
		m.Lsh(m, uint(a.s))
		return sign + m.Text(base)
	}
	k := uint(-a.s)
	i := new(big.Int).Rsh(m, k)
	rem := new(big.Int).Sub(m, new(big.Int).Lsh(i, k))
	out := sign + i.Text(base)
	if rem.Sign() == 0 {
		return out
	}
	var frac strings.Builder
	b := big.NewInt(int64(base))
	d := new(big.Int)
	for rem.Sign() != 0 {
		rem.Mul(rem, b)
		d.Rsh(rem, k)
		frac.WriteByte(digitChars[d.Int64()])
		rem.Sub(rem, new(big.Int).Lsh(d, k))
	}
	return out + "." + frac.String()
}

// cmpPow compares base^j against e·2^s.
func cmpPow(pow *big.Int, e *big.Int, s int) int {
	if s >= 0 {
		return pow.Cmp(new(big.Int).Lsh(e, uint(s)))
	}
	return new(big.Int).Lsh(pow, uint(-s)).Cmp(e)
}

// showNearZero prints an interval that crosses zero: ± and the
// leading zeros of its magnitude bound, stopping at the first digit
// that could be anything.
func showNearZero(base int, a Approx) string {
	u := new(big.Int).Abs(a.m)
	u.Add(u, a.e)
	b := big.NewInt(int64(base))
	pow := new(big.Int).Set(u) // u·base^n
	n := 0
	for cmpPow(bigOne, pow, a.s) > 0 {
		pow.Mul(pow, b)
		n++
		if n > 1<<20 {
			Errorf("show: runaway fraction")
		}
	}
	// The bound is below base^(1-n): n-1 certain zeros after the
	// point.
	if n == 0 {
		return "±~"
	}
	var sb strings.Builder
	sb.WriteString("±0.")
	for i := 1; i < n; i++ {
		sb.WriteByte('0')
	}
	sb.WriteByte('~')
	return sb.String()
}

// showInexact prints the midpoint's digits down to the last position
// whose weight is at least the radius, marking everything beyond
// uncertain: ~ replaces swamped integer digits, and a final ~ closes
// the fraction.
func showInexact(base int, a Approx) string {
	sign := ""
	if a.m.Sign() < 0 {
		sign = "-"
	}
	e := a.e
	if e.Sign() == 0 {
		// Exact but non-terminating in this base; print to the ulp.
		e = bigOne
	}
	b := big.NewInt(int64(base))
	// n: fraction digits worth printing. u: integer digits swamped by
	// the radius.
	n := fracDigits(base, e, a.s)
	u := sunkDigits(base, e, a.s)
	// Round |m|·base^n·2^s to an integer.
	v := new(big.Int).Abs(a.m)
	v.Mul(v, new(big.Int).Exp(b, big.NewInt(int64(n)), nil))
	if a.s >= 0 {
		v.Lsh(v, uint(a.s))
	} else {
		v = roundShift(v, uint(-a.s))
	}
	str := v.Text(base)
	if len(str) < n+1 {
		str = strings.Repeat("0", n+1-len(str)) + str
	}
	intPart := str[:len(str)-n]
	frac := str[len(str)-n:]
	if u >= len(intPart) {
		intPart = strings.Repeat("~", len(intPart))
	} else if u > 0 {
		intPart = intPart[:len(intPart)-u] + strings.Repeat("~", u)
	}
	return sign + intPart + "." + frac + "~"
}

// fracDigits returns the largest j ≥ 0 with base^-j ≥ e·2^s.
func fracDigits(base int, e *big.Int, s int) int {
	b := big.NewInt(int64(base))
	// base^-j ≥ e·2^s  ⇔  1 ≥ e·2^s·base^j.
	j := 0
	scaled := new(big.Int).Set(e)
	for {
		next := new(big.Int).Mul(scaled, b)
		if cmpPow(bigOne, next, s) < 0 {
			return j
		}
		scaled = next
		j++
		if j > 1<<20 {
			Errorf("show: runaway fraction")
		}
	}
}

// sunkDigits returns the number of integer positions with weight
// below e·2^s.
func sunkDigits(base int, e *big.Int, s int) int {
	b := big.NewInt(int64(base))
	pow := big.NewInt(1)
	u := 0
	for cmpPow(pow, e, s) < 0 {
		pow.Mul(pow, b)
		u++
	}
	return u
}

// ShowCR prints x to d bits of precision.
func ShowCR(d int, x *Real) string {
	return ShowA(x.Require(d))
}

// ShowCRN prints the first n stream elements of x, one per line.
func ShowCRN(n int, x *Real) string {
	lines := make([]string, n)
	for k := 0; k < n; k++ {
		lines[k] = ShowA(x.At(k))
	}
	return strings.Join(lines, "\n")
}
