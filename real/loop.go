// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import "robpike.io/creal/dyadic"

// A loop tracks the convergence of a Newton-style iteration over
// dyadics. The caller feeds it successive iterates; it reports
// termination when the delta reaches zero or stops shrinking.
type loop struct {
	name          string
	i             int
	maxIterations int
	started       bool
	prevZ         dyadic.Dyadic
	delta         dyadic.Dyadic
	prevDelta     dyadic.Dyadic
}

func newLoop(name string, maxIterations int) *loop {
	return &loop{name: name, maxIterations: maxIterations}
}

func (l *loop) done(z dyadic.Dyadic) bool {
	if !l.started {
		l.started = true
		l.prevZ = z
		l.prevDelta = z.Abs()
		return false
	}
	l.delta = l.prevZ.Sub(z).Abs()
	if l.delta.IsZero() {
		return true
	}
	if l.i > 0 && l.delta.Cmp(l.prevDelta) >= 0 {
		// Convergence has stopped; the remaining wobble is below the
		// working precision.
		return true
	}
	l.i++
	if l.i == l.maxIterations {
		Errorf("%s: did not converge after %d iterations", l.name, l.maxIterations)
	}
	l.prevDelta = l.delta
	l.prevZ = z
	return false
}
