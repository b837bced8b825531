// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/event"
)

// KDE represents options for constructing a kernel density estimate.
//
// Kernel density estimation is a method for constructing an estimate
// ƒ̂(x) of a unknown distribution ƒ(x) given a sample from that
// distribution.  Unlike many techniques, kernel density estimation is
// non-parametric: in general, it doesn't assume any particular true
// distribution (note, however, that the resulting distribution
// depends deeply on the selected bandwidth, and many bandwidth
// estimation techniques assume normal reference rules).
//
// The kernel is always Gaussian. The default (zero) value of KDE is a
// reasonable default configuration.
type KDE struct {
	// Bandwidth is the bandwidth to use for the KDE.
	//
	// If this is zero, the bandwidth is computed from the
	// provided data using BandwidthScott.
	Bandwidth float64

	// BoundaryMethod is the boundary correction method to use for
	// the KDE. The default value is BoundaryReflect; however, the
	// default bounds are effectively +/-inf, which is equivalent
	// to performing no boundary correction.
	BoundaryMethod KDEBoundaryMethod

	// [BoundaryMin, BoundaryMax) specify a bounded support for
	// the KDE. If both are 0 (their default values), they are
	// treated as +/-inf.
	//
	// To specify a half-bounded support, set Min to math.Inf(-1)
	// or Max to math.Inf(1).
	BoundaryMin float64
	BoundaryMax float64
}

// BandwidthSilverman is a bandwidth estimator implementing
// Silverman's Rule of Thumb. It's fast, but not very robust to
// outliers as it assumes data is approximately normal.
//
// Silverman, B. W. (1986) Density Estimation.
func BandwidthSilverman(xs, weights []float64) float64 {
	return 1.06 * stat.PopStdDev(xs, weights) * math.Pow(totalWeight(xs, weights), -1.0/5)
}

// BandwidthScott is a bandwidth estimator implementing Scott's Rule.
// This is generally robust to outliers: it chooses the minimum
// between the sample's standard deviation and an robust estimator of
// a Gaussian distribution's standard deviation.
//
// Scott, D. W. (1992) Multivariate Density Estimation: Theory,
// Practice, and Visualization.
func BandwidthScott(xs, weights []float64) float64 {
	iqr := interQuartileRange(xs, weights)
	hScale := 1.06 * math.Pow(totalWeight(xs, weights), -1.0/5)
	stdDev := stat.PopStdDev(xs, weights)
	if iqr == 0 || stdDev < iqr/1.349 {
		// Use Silverman's Rule of Thumb
		return hScale * stdDev
	}
	// Use IQR/1.349 as a robust estimator of the standard
	// deviation of a Gaussian distribution.
	return hScale * (iqr / 1.349)
}

func totalWeight(xs, weights []float64) float64 {
	if weights == nil {
		return float64(len(xs))
	}
	return floats.Sum(weights)
}

func interQuartileRange(xs, weights []float64) float64 {
	if weights == nil {
		iqr, err := mstats.InterQuartileRange(xs)
		if err != nil {
			return 0
		}
		return iqr
	}
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })
	sx, sw := make([]float64, len(xs)), make([]float64, len(xs))
	for i, j := range idx {
		sx[i], sw[i] = xs[j], weights[j]
	}
	return stat.Quantile(0.75, stat.Empirical, sx, sw) - stat.Quantile(0.25, stat.Empirical, sx, sw)
}

// KDEBoundaryMethod represents a boundary correction method for
// constructing a KDE with bounded support.
type KDEBoundaryMethod int

const (
	// BoundaryReflect reflects the density estimate at the
	// boundaries.  For example, for a KDE with support [0, inf),
	// this is equivalent to ƒ̂ᵣ(x)=ƒ̂(x)+ƒ̂(-x) for x>=0.  This is a
	// simple and fast technique, but enforces that ƒ̂ᵣ'(0)=0, so
	// it may not be applicable to all distributions.
	BoundaryReflect KDEBoundaryMethod = iota

	// boundaryNone represents no boundary correction.
	//
	// This is used internally when the bounds are -/+inf.
	boundaryNone
)

// From returns the kernel density estimate for the sample xs with
// the given weights, which may be nil.
func (k KDE) From(xs, weights []float64) *KDEDist {
	if weights != nil && len(xs) != len(weights) {
		panic("len(xs) != len(weights)")
	}
	if len(xs) == 0 {
		panic("KDE of empty sample")
	}

	h := k.Bandwidth
	if h == 0 {
		h = BandwidthScott(xs, weights)
	}

	// Normalize boundaries
	bm := k.BoundaryMethod
	min, max := k.BoundaryMin, k.BoundaryMax
	if min == 0 && max == 0 {
		min, max = math.Inf(-1), math.Inf(1)
	}
	if math.IsInf(min, -1) && math.IsInf(max, 1) {
		bm = boundaryNone
	}

	return &KDEDist{
		kernel:  distuv.Normal{Mu: 0, Sigma: h},
		xs:      append([]float64(nil), xs...),
		weights: append([]float64(nil), weights...),
		total:   totalWeight(xs, weights),
		bm:      bm,
		min:     min,
		max:     max,
	}
}

// KDEDist is a kernel density estimate.
type KDEDist struct {
	kernel      distuv.Normal
	xs, weights []float64
	total       float64
	bm          KDEBoundaryMethod
	min, max    float64 // Support bounds
}

func (*KDEDist) univariate() {}

func (*KDEDist) Outcome() event.Outcome { return event.Continuous }

// NumParameters returns 1: only the bandwidth is estimated.
func (*KDEDist) NumParameters() int { return 1 }

// Bandwidth returns the standard deviation of the kernel.
func (kde *KDEDist) Bandwidth() float64 { return kde.kernel.Sigma }

// sum evaluates f at x - kde.xs[i] for each i and returns the
// weighted mean. Evaluating kernels shifted by kde.xs all at x is
// equivalent to evaluating one unshifted kernel at x - kde.xs.
func (kde *KDEDist) sum(f func(float64) float64, x float64) float64 {
	s := 0.0
	for i, xi := range kde.xs {
		w := 1.0
		if len(kde.weights) > 0 {
			w = kde.weights[i]
		}
		s += w * f(x-xi)
	}
	return s / kde.total
}

func (kde *KDEDist) PDF(x float64) float64 {
	// Apply boundary
	if x < kde.min || x >= kde.max {
		return 0
	}

	y := func(x float64) float64 {
		return kde.sum(kde.kernel.Prob, x)
	}
	switch kde.bm {
	default:
		panic("unknown boundary correction method")
	case boundaryNone:
		return y(x)
	case BoundaryReflect:
		if math.IsInf(kde.max, 1) {
			return y(x) + y(2*kde.min-x)
		} else if math.IsInf(kde.min, -1) {
			return y(x) + y(2*kde.max-x)
		} else {
			d := 2 * (kde.max - kde.min)
			w := 2 * (x - kde.min)
			return series(func(n float64) float64 {
				// Points >= x
				return y(x+n*d) + y(x+n*d-w)
			}) + series(func(n float64) float64 {
				// Points < x
				return y(x-(n+1)*d+w) + y(x-(n+1)*d)
			})
		}
	}
}

func (cdf *KDEDist) CDF(x float64) float64 {
	// Apply boundary
	if x < cdf.min {
		return 0
	} else if x >= cdf.max {
		return 1
	}

	y := func(x float64) float64 {
		return cdf.sum(cdf.kernel.CDF, x)
	}
	switch cdf.bm {
	default:
		panic("unknown boundary correction method")
	case boundaryNone:
		return y(x)
	case BoundaryReflect:
		if math.IsInf(cdf.max, 1) {
			return y(x) - y(2*cdf.min-x)
		} else if math.IsInf(cdf.min, -1) {
			return y(x) + (1 - y(2*cdf.max-x))
		} else {
			d := 2 * (cdf.max - cdf.min)
			w := 2 * (x - cdf.min)
			return series(func(n float64) float64 {
				// Windows >= x-w
				return y(x+n*d) - y(x+n*d-w)
			}) + series(func(n float64) float64 {
				// Windows < x-w
				return y(x-(n+1)*d) - y(x-(n+1)*d-w)
			})
		}
	}
}

func (kde *KDEDist) Probability(e event.Event) float64 {
	return numericProbability(kde, e)
}

func (kde *KDEDist) LogLikelihood(s *data.Univariate) float64 {
	return logLikelihood(kde, s)
}

// series returns the sum of the series f(0), f(1), ... stopping once
// a term no longer changes the sum.
func series(f func(float64) float64) float64 {
	const maxTerms = 1000
	y := 0.0
	for n := 0.0; n < maxTerms; n++ {
		term := f(n)
		if y+term == y {
			break
		}
		y += term
	}
	return y
}
