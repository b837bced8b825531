// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slope

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// A Solver fits the line y = intercept + slope·x to points.
type Solver interface {
	Solve(xs, ys []float64) (intercept, slope float64, err error)
}

// ErrSingular is returned by solvers when the points do not
// determine a line.
var ErrSingular = errors.New("regression is singular")

// OLS is the ordinary least squares solver.
type OLS struct{}

func (OLS) Solve(xs, ys []float64) (float64, float64, error) {
	return weightedLeastSquares(xs, ys, nil)
}

// weightedLeastSquares solves (XᵀWX)β = XᵀWy where X has rows (1, x).
// A nil ws means unit weights.
func weightedLeastSquares(xs, ys, ws []float64) (float64, float64, error) {
	if len(xs) != len(ys) {
		panic("len(xs) != len(ys)")
	}
	n := len(xs)
	x := mat.NewDense(n, 2, nil)
	wx := mat.NewDense(n, 2, nil)
	wy := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		w := 1.0
		if ws != nil {
			w = ws[i]
		}
		x.Set(i, 0, 1)
		x.Set(i, 1, xs[i])
		wx.Set(i, 0, w)
		wx.Set(i, 1, w*xs[i])
		wy.SetVec(i, w*ys[i])
	}
	var xtwx mat.Dense
	xtwx.Mul(wx.T(), x)
	var xtwy mat.VecDense
	xtwy.MulVec(x.T(), wy)

	var beta mat.VecDense
	if err := beta.SolveVec(&xtwx, &xtwy); err != nil {
		return math.NaN(), math.NaN(), fmt.Errorf("%w: %v", ErrSingular, err)
	}
	b0, b1 := beta.AtVec(0), beta.AtVec(1)
	if math.IsNaN(b0) || math.IsNaN(b1) || math.IsInf(b0, 0) || math.IsInf(b1, 0) {
		return math.NaN(), math.NaN(), ErrSingular
	}
	return b0, b1, nil
}

// IWLS parameters shared by the robust solvers.
const (
	DefaultEpsilon       = 1e-6
	DefaultMaxIterations = 10
)

// iwls fits by iteratively reweighted least squares, starting from
// the OLS fit. weight computes the weight of each residual given the
// scale sigma.
func iwls(xs, ys []float64, k, epsilon float64, maxIts int, weight func(r, sigma float64) float64) (float64, float64, error) {
	if epsilon == 0 {
		epsilon = DefaultEpsilon
	}
	if maxIts == 0 {
		maxIts = DefaultMaxIterations
	}
	b0, b1, err := OLS{}.Solve(xs, ys)
	if err != nil {
		return b0, b1, err
	}
	n := len(xs)
	if n < 3 {
		// Two points are fit exactly.
		return b0, b1, nil
	}
	res := make([]float64, n)
	ws := make([]float64, n)
	for its := 0; its < maxIts; its++ {
		for i := range res {
			res[i] = ys[i] - (b0 + b1*xs[i])
		}
		sigma := k * floats.Norm(res, 2) / math.Sqrt(float64(n-1))
		if sigma == 0 {
			break
		}
		for i, r := range res {
			ws[i] = weight(math.Abs(r), sigma)
		}
		c0, c1, err := weightedLeastSquares(xs, ys, ws)
		if err != nil {
			// Too many points were rejected. Keep the last
			// fit.
			break
		}
		change := math.Hypot(relChange(c0, b0), relChange(c1, b1))
		b0, b1 = c0, c1
		if change <= epsilon {
			break
		}
	}
	return b0, b1, nil
}

func relChange(cur, prev float64) float64 {
	if prev == 0 {
		return cur
	}
	return (cur - prev) / prev
}

// Huber is a robust solver with Huber weights.
type Huber struct {
	// K scales the residual threshold. If zero, it defaults to
	// 1.345.
	K float64

	// Epsilon and MaxIterations bound the reweighting loop. If
	// zero they default to DefaultEpsilon and
	// DefaultMaxIterations.
	Epsilon       float64
	MaxIterations int
}

func (s Huber) Solve(xs, ys []float64) (float64, float64, error) {
	k := s.K
	if k == 0 {
		k = 1.345
	}
	return iwls(xs, ys, k, s.Epsilon, s.MaxIterations, func(r, sigma float64) float64 {
		if r <= sigma {
			return 1
		}
		return sigma / r
	})
}

// BiSquare is a robust solver with Tukey's bisquare weights.
type BiSquare struct {
	// K scales the residual threshold. If zero, it defaults to
	// 4.685.
	K float64

	Epsilon       float64
	MaxIterations int
}

func (s BiSquare) Solve(xs, ys []float64) (float64, float64, error) {
	k := s.K
	if k == 0 {
		k = 4.685
	}
	return iwls(xs, ys, k, s.Epsilon, s.MaxIterations, func(r, sigma float64) float64 {
		if r > sigma {
			return 0
		}
		u := r / sigma
		return (1 - u*u) * (1 - u*u)
	})
}
