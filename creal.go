// Copyright 2015 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"

	"robpike.io/creal/real"
)

var (
	digits  = flag.Int("digits", 50, "decimal digits to print")
	base    = flag.Int("base", 10, "output base (2..16)")
	stream  = flag.Int("n", 0, "print the first n stream elements instead")
	verbose = flag.Bool("v", false, "label each result")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *base < 2 || *base > 16 {
		fmt.Fprintf(os.Stderr, "creal: illegal base %d\n", *base)
		os.Exit(2)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if flag.NArg() == 0 {
		tour(w)
		return
	}
	for _, arg := range flag.Args() {
		x, err := real.Parse(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creal: %s\n", err)
			os.Exit(2)
		}
		show(w, arg, x)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: creal [options] [number...]\n")
	fmt.Fprintf(os.Stderr, "with no arguments, prints a short tour\n")
	flag.PrintDefaults()
	os.Exit(2)
}

// bits converts the requested decimal digits to binary precision,
// with a little slack so the last digit is honest.
func bits() int {
	return int(float64(*digits)*math.Log2(10)) + 10
}

func show(w *bufio.Writer, label string, x *real.Real) {
	defer func() {
		// The uncomputable cases fail fast deep in the library;
		// report them per value rather than dying.
		if err := recover(); err != nil {
			if e, ok := err.(real.Error); ok {
				fmt.Fprintf(w, "%s: error: %s\n", label, e)
				return
			}
			panic(err)
		}
	}()
	prefix := ""
	if *verbose {
		prefix = label + " = "
	}
	if *stream > 0 {
		fmt.Fprintf(w, "%s%s\n", prefix, real.ShowCRN(*stream, x))
		return
	}
	fmt.Fprintf(w, "%s%s\n", prefix, real.ShowInBaseA(*base, x.Require(bits())))
}

// tour prints a few classic values: the constants, an identity that
// needs exact cancellation, and Rump's polynomial, which double
// precision gets catastrophically wrong.
func tour(w *bufio.Writer) {
	two := real.FromInt(2)
	showNamed(w, "pi", real.Pi())
	showNamed(w, "e", real.FromInt(1).Exp())
	showNamed(w, "sqrt 2", two.Sqrt())
	showNamed(w, "ln 2", two.Log())
	showNamed(w, "exp(ln 2)", two.Log().Exp())
	showNamed(w, "sin(pi/6)", real.Pi().Div(real.FromInt(6)).Sin())
	showNamed(w, "rump", rump())
	fmt.Fprintf(w, "(double precision says rump ≈ %v)\n", rumpFloat64())
}

func showNamed(w *bufio.Writer, label string, x *real.Real) {
	fmt.Fprintf(w, "%-10s %s\n", label, real.ShowCR(bits(), x))
}

// rump builds Rump's example: at a = 77617, b = 33096 the terms
// cancel so violently that float64 even gets the sign wrong.
func rump() *real.Real {
	a := real.FromInt(77617)
	b := real.FromInt(33096)
	return real.FromInt(21).Mul(b.PowInt(2)).
		Sub(real.FromInt(2).Mul(a.PowInt(2))).
		Add(real.FromInt(55).Mul(b.PowInt(4))).
		Sub(real.FromInt(10).Mul(a.PowInt(2)).Mul(b.PowInt(2))).
		Add(a.Div(b.Scale(1)))
}

func rumpFloat64() float64 {
	a, b := 77617.0, 33096.0
	return 21*b*b - 2*a*a + 55*b*b*b*b - 10*a*a*b*b + a/(2*b)
}
