// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package real

import "fmt"

type Error string

func (err Error) Error() string {
	return string(err)
}

// Errorf panics with an Error. It reports the unrecoverable
// conditions: uncertain comparisons, functions applied outside their
// domain, intersection of disjoint intervals.
func Errorf(format string, args ...interface{}) {
	panic(Error(fmt.Sprintf("creal: "+format, args...)))
}
