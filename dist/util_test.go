// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math"
	"sort"
	"testing"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

// testFunc checks that f(x) ≅ want[x] for every x in want.
func testFunc(t *testing.T, name string, f func(float64) float64, want map[float64]float64) {
	t.Helper()
	xs := make([]float64, 0, len(want))
	for x := range want {
		xs = append(xs, x)
	}
	sort.Float64s(xs)
	for _, x := range xs {
		if got := f(x); !aeq(want[x], got) {
			t.Errorf("%s(%v) = %v, want %v", name, x, got, want[x])
		}
	}
}

// testDiscreteCDF checks that the CDF of d is the running sum of its
// PDF over the integers in [lo, hi], and is constant between them.
func testDiscreteCDF(t *testing.T, name string, d Numeric, lo, hi int) {
	t.Helper()
	sum := 0.0
	for k := lo; k <= hi; k++ {
		sum += d.PDF(float64(k))
		if got := d.CDF(float64(k)); !aeq(sum, got) {
			t.Errorf("%s(%d) = %v, want %v", name, k, got, sum)
		}
		if got := d.CDF(float64(k) + 0.5); !aeq(sum, got) {
			t.Errorf("%s(%v) = %v, want %v", name, float64(k)+0.5, got, sum)
		}
	}
}
