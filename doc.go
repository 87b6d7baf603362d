// Copyright 2015 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Creal is a demonstration driver for the computable real packages
robpike.io/creal/real and robpike.io/creal/dyadic.

A computable real is represented by a lazy sequence of dyadic
intervals, each guaranteed to contain the value, refined until the
requested number of bits is available. Asking for more digits never
rereads floating-point state; it reruns the underlying expression at a
higher resource level.

Usage:

	creal [-digits n] [-base b] [-n k] [number...]

With no arguments it prints a short tour of values for which interval
arithmetic earns its keep. Each argument is otherwise parsed as an
exact decimal literal and printed to the requested precision.
*/
package main
