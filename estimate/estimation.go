// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/dist"
	"github.com/aclements/go-statfit/optim"
	"github.com/aclements/go-statfit/slope"
)

// An Estimation is the result of fitting a univariate distribution.
//
// A lazy estimation holds only the fitted distribution. An active
// estimation also references the sample it was fit on. The sample is
// owned by the caller and must not be modified while the estimation
// is in use.
type Estimation interface {
	// Estimated returns the fitted distribution.
	Estimated() dist.Univariate

	// Data returns the training sample, or nil if the estimation
	// is lazy.
	Data() *data.Univariate

	// Lazy reports whether the training sample was discarded.
	Lazy() bool
}

// basic is the estimation holding a distribution and optionally the
// sample.
type basic struct {
	estimated dist.Univariate
	data      *data.Univariate
}

func (e *basic) Estimated() dist.Univariate { return e.estimated }
func (e *basic) Data() *data.Univariate     { return e.data }
func (e *basic) Lazy() bool                 { return e.data == nil }

// LazyEstimation holds a fitted distribution only.
type LazyEstimation struct {
	basic
}

// ActiveEstimation holds a fitted distribution and its training
// sample.
type ActiveEstimation struct {
	basic
}

// newEstimation returns a lazy or active estimation of d fit on s.
func newEstimation(d dist.Univariate, s *data.Univariate, lazy bool) Estimation {
	if lazy {
		return &LazyEstimation{basic{estimated: d}}
	}
	return &ActiveEstimation{basic{estimated: d, data: s}}
}

// OptimizationEstimation is the result of a fit that iterates toward
// its estimate. Iterations records the parameters after each step.
type OptimizationEstimation struct {
	basic
	iterations [][]float64
	evals      int
}

// Iterations returns the parameter vector after each iteration. The
// result must not be modified.
func (e *OptimizationEstimation) Iterations() [][]float64 {
	return e.iterations
}

// Evaluations returns the number of log-likelihood evaluations, or 0
// for fits that do not use an optimizer.
func (e *OptimizationEstimation) Evaluations() int {
	return e.evals
}

func newOptimizationEstimation(d dist.Univariate, s *data.Univariate, lazy bool, res optim.Result) *OptimizationEstimation {
	e := &OptimizationEstimation{basic: basic{estimated: d}, iterations: res.Path, evals: res.Evaluations}
	if !lazy {
		e.data = s
	}
	return e
}

// Models is a read-only sequence of candidate estimations ordered by
// increasing complexity.
type Models struct {
	models []Estimation
}

// Len returns the number of models.
func (m Models) Len() int {
	return len(m.models)
}

// At returns model i. Negative indexes count from the end, so At(-1)
// is the most complex model. An index outside [-Len, Len) is a Bounds
// error.
func (m Models) At(i int) (Estimation, error) {
	n := len(m.models)
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return nil, newError(Bounds, "models", "index %d with %d models", i, n)
	}
	return m.models[j], nil
}

// Slice returns models [lo, hi). Negative bounds count from the end,
// and bounds beyond either end are clamped, so Slice never fails.
func (m Models) Slice(lo, hi int) Models {
	n := len(m.models)
	clamp := func(i int) int {
		if i < 0 {
			i += n
			if i < 0 {
				i = 0
			}
		}
		if i > n {
			i = n
		}
		return i
	}
	lo, hi = clamp(lo), clamp(hi)
	if lo >= hi {
		return Models{}
	}
	return Models{m.models[lo:hi:hi]}
}

// SlopeHeuristicSelection is the result of a histogram estimator
// choosing its bin count with the slope heuristic.
type SlopeHeuristicSelection struct {
	basic
	models    Models
	heuristic *slope.Heuristic
	minBins   int
	bins      []int
}

// Models returns the candidate estimations, one per bin count
// considered, in increasing order of bin count.
func (e *SlopeHeuristicSelection) Models() Models {
	return e.models
}

// Bins returns the bin count of each candidate model.
func (e *SlopeHeuristicSelection) Bins() []int {
	return append([]int(nil), e.bins...)
}

// MinBins returns the smallest bin count considered.
func (e *SlopeHeuristicSelection) MinBins() int {
	return e.minBins
}

// Selected returns the index in Models of the estimated model.
func (e *SlopeHeuristicSelection) Selected() int {
	return e.heuristic.Index()
}

// Heuristic returns the slope heuristic diagnostics. Its scores and
// penalty shapes are indexed like Models.
func (e *SlopeHeuristicSelection) Heuristic() *slope.Heuristic {
	return e.heuristic
}

// CriterionSelection is the result of a Selection estimator. It keeps
// the estimation of every candidate along with its score.
type CriterionSelection struct {
	basic
	criterion  Criterion
	candidates []Estimation
	scores     []float64
	selected   int
}

// Criterion returns the criterion the candidates were scored with.
func (e *CriterionSelection) Criterion() Criterion { return e.criterion }

// Candidates returns the estimation of each candidate, in the order
// of the Selection's estimators. A candidate that failed to fit is
// nil.
func (e *CriterionSelection) Candidates() []Estimation {
	return append([]Estimation(nil), e.candidates...)
}

// Scores returns the criterion of each candidate. Failed candidates
// score +Inf.
func (e *CriterionSelection) Scores() []float64 {
	return append([]float64(nil), e.scores...)
}

// Selected returns the index of the chosen candidate.
func (e *CriterionSelection) Selected() int { return e.selected }

// A MultivariateEstimation is the result of fitting a multivariate
// distribution.
type MultivariateEstimation interface {
	Estimated() dist.Multivariate

	// Marginals returns the estimation of each variable in the
	// order of the variables of the sample.
	Marginals() []Estimation

	// Data returns the training sample, or nil if the estimation
	// is lazy.
	Data() *data.Multivariate

	Lazy() bool
}

// IndependentEstimation is the result of fitting each variable of a
// sample independently.
type IndependentEstimation struct {
	estimated *dist.Independent
	data      *data.Multivariate
	marginals []Estimation
}

func (e *IndependentEstimation) Estimated() dist.Multivariate { return e.estimated }
func (e *IndependentEstimation) Data() *data.Multivariate     { return e.data }
func (e *IndependentEstimation) Lazy() bool                   { return e.data == nil }

func (e *IndependentEstimation) Marginals() []Estimation {
	return append([]Estimation(nil), e.marginals...)
}
