// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// Parse interprets a decimal floating-point literal (an optional
// sign, digits with an optional fraction, and an optional decimal
// exponent) as the exact rational it denotes and returns the Real
// for it.
func Parse(s string) (*Real, error) {
	t := s
	neg := false
	switch {
	case strings.HasPrefix(t, "-"):
		neg = true
		t = t[1:]
	case strings.HasPrefix(t, "+"):
		t = t[1:]
	}
	mant := t
	exp10 := 0
	if i := strings.IndexAny(t, "eE"); i >= 0 {
		mant = t[:i]
		var err error
		exp10, err = strconv.Atoi(t[i+1:])
		if err != nil {
			return nil, errors.New("real: bad exponent in " + strconv.Quote(s))
		}
	}
	intPart, fracPart, _ := strings.Cut(mant, ".")
	digits := intPart + fracPart
	if digits == "" {
		return nil, errors.New("real: no digits in " + strconv.Quote(s))
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return nil, errors.New("real: bad literal " + strconv.Quote(s))
		}
	}
	num, _ := new(big.Int).SetString(digits, 10)
	if neg {
		num.Neg(num)
	}
	// The literal is num·10^(exp10 - len(fracPart)).
	exp10 -= len(fracPart)
	den := big.NewInt(1)
	ten := big.NewInt(10)
	if exp10 >= 0 {
		num.Mul(num, new(big.Int).Exp(ten, big.NewInt(int64(exp10)), nil))
	} else {
		den.Exp(ten, big.NewInt(int64(-exp10)), nil)
	}
	return FromRat(new(big.Rat).SetFrac(num, den)), nil
}
