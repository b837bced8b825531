// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math"
	"sort"
)

// QuantileInterval is a distribution-free confidence interval for a
// quantile, bounded by order statistics of a sample.
type QuantileInterval struct {
	// Quantile and N are the arguments to QuantileCI.
	Quantile float64
	N        int

	// Confidence is the actual confidence level of the interval.
	// It is at least the requested level.
	Confidence float64

	// LoOrder and HiOrder are the 1-based order statistics that
	// bound the interval. An order outside [1, N] stands for an
	// infinite bound.
	LoOrder, HiOrder int

	// Ambiguous reports that the interval shifted one order to
	// the right has the same confidence.
	Ambiguous bool
}

// Bounds returns the interval in terms of the sorted values xs. It
// panics unless len(xs) is N.
func (q QuantileInterval) Bounds(xs []float64) (lo, hi float64) {
	if len(xs) != q.N {
		panic("sample size differs from quantile interval")
	}
	if !sort.Float64sAreSorted(xs) {
		xs = append([]float64(nil), xs...)
		sort.Float64s(xs)
	}
	lo, hi = math.Inf(-1), math.Inf(1)
	if q.LoOrder >= 1 {
		lo = xs[q.LoOrder-1]
	}
	if q.HiOrder-1 < len(xs) {
		hi = xs[q.HiOrder-1]
	}
	return
}

// quantileCIApproxThreshold is the sample size above which QuantileCI
// uses a normal approximation.
var quantileCIApproxThreshold = 30

// QuantileCI returns the confidence interval of the q'th quantile in
// a sample of size n.
//
// The number of sample values below the population quantile follows
// Binomial{n, q}. Its k'th outcome is the gap between order
// statistics k and k+1.
func QuantileCI(n int, q, confidence float64) QuantileInterval {
	res := QuantileInterval{Quantile: q, N: n}
	if confidence >= 1 {
		res.Confidence, res.LoOrder, res.HiOrder = 1, 0, n+1
		return res
	}

	samp := Binomial{N: n, P: q}
	var l, r int
	if n <= quantileCIApproxThreshold {
		l, r = res.exact(samp, confidence)
	} else {
		l, r = res.approx(samp, confidence)
	}
	if l < 0 {
		l = 0
	}
	if r > n+1 {
		r = n + 1
	}
	res.LoOrder, res.HiOrder = l, r
	return res
}

// exact grows the outcome interval [l, r) of samp from the lower mode,
// always taking the more probable neighbor and preferring the left one
// on ties, until it reaches confidence.
func (res *QuantileInterval) exact(samp Binomial, confidence float64) (l, r int) {
	x := int(math.Ceil(float64(samp.N+1)*samp.P) - 1)
	if samp.P == 0 {
		x = 0
	}
	accum := samp.PDF(float64(x))
	l, r = x, x+1
	lp, rp := samp.PDF(float64(l-1)), samp.PDF(float64(r))
	res.Ambiguous = rp == accum
	for accum < confidence && (lp > 0 || rp > 0) {
		res.Ambiguous = lp == rp
		if lp >= rp {
			accum += lp
			l--
			lp = samp.PDF(float64(l - 1))
		} else {
			accum += rp
			r++
			rp = samp.PDF(float64(r))
		}
	}
	res.Confidence = accum
	return l, r
}

// approx finds [l, r) on the continuity-corrected normal approximation
// of samp. Outcome k covers [k-0.5, k+0.5] there.
func (res *QuantileInterval) approx(samp Binomial, confidence float64) (l, r int) {
	norm := samp.NormalApprox()
	l1 := norm.Quantile((1 - confidence) / 2)
	r1 := 2*norm.Mu - l1

	l = int(math.Floor(math.Floor(l1-0.5)+0.5)) + 1
	r = int(math.Floor(math.Ceil(r1-0.5)+0.5)) + 1

	mass := func(l, r int) float64 {
		return norm.CDF(float64(r)-0.5) - norm.CDF(float64(l)-0.5)
	}
	res.Confidence = mass(l, r)
	// The interval is symmetric; a left-biased one may be tighter.
	if m := mass(l, r-1); m >= confidence && m < res.Confidence {
		res.Confidence, res.Ambiguous = m, true
		r--
	}
	if l <= 0 && r >= samp.N+1 {
		// The normal tails fall outside the full range.
		res.Confidence, res.Ambiguous = 1, false
	}
	return l, r
}
