// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optim defines the numeric optimizer used by maximum
// likelihood estimators.
package optim // import "github.com/aclements/go-statfit/optim"

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// ErrNotConverged is wrapped by the errors of optimizers that stop
// before reaching a minimum.
var ErrNotConverged = errors.New("optimizer did not converge")

// An Optimizer minimizes an objective function.
//
// Implementations must be reentrant: concurrent calls to Minimize
// must not share mutable state.
type Optimizer interface {
	// Minimize returns a minimum of f starting from x0. If it
	// fails to converge it returns an error wrapping
	// ErrNotConverged.
	Minimize(f func(x []float64) float64, x0 []float64) (Result, error)
}

// Result is the outcome of a successful minimization.
type Result struct {
	// X is the location of the minimum and F the value of the
	// objective there.
	X []float64
	F float64

	// Path holds the location of each major iteration.
	Path [][]float64

	// Evaluations is the number of calls to the objective.
	Evaluations int
}

// Iterations returns the number of major iterations.
func (r Result) Iterations() int {
	return len(r.Path)
}

// NelderMead minimizes with the Nelder-Mead simplex method.
//
// The zero value is ready to use with the default limits.
type NelderMead struct {
	// MaxIterations bounds the number of major iterations. If
	// zero, it defaults to 1000.
	MaxIterations int

	// FunctionTolerance is the absolute change of the minimum
	// below which the search is considered converged. If zero, it
	// defaults to 1e-10.
	FunctionTolerance float64
}

const (
	defaultMaxIterations     = 1000
	defaultFunctionTolerance = 1e-10
)

func (nm NelderMead) Minimize(f func(x []float64) float64, x0 []float64) (Result, error) {
	if len(x0) == 0 {
		panic("Minimize with no parameters")
	}
	maxIts := nm.MaxIterations
	if maxIts == 0 {
		maxIts = defaultMaxIterations
	}
	tol := nm.FunctionTolerance
	if tol == 0 {
		tol = defaultFunctionTolerance
	}

	rec := &pathRecorder{}
	settings := &optimize.Settings{
		MajorIterations: maxIts,
		Converger: &optimize.FunctionConverge{
			Absolute:   tol,
			Iterations: 20,
		},
		Recorder: rec,
	}
	problem := optimize.Problem{Func: f}
	res, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNotConverged, err)
	}
	if res.Status.Early() {
		return Result{}, fmt.Errorf("%w: %v after %d iterations", ErrNotConverged, res.Status, res.Stats.MajorIterations)
	}
	if math.IsNaN(res.F) || math.IsInf(res.F, 0) {
		return Result{}, fmt.Errorf("%w: objective is %v at %v", ErrNotConverged, res.F, res.X)
	}
	return Result{
		X:           res.X,
		F:           res.F,
		Path:        rec.path,
		Evaluations: res.Stats.FuncEvaluations,
	}, nil
}

// pathRecorder records the location of each major iteration.
type pathRecorder struct {
	path [][]float64
}

func (r *pathRecorder) Init() error { return nil }

func (r *pathRecorder) Record(loc *optimize.Location, op optimize.Operation, _ *optimize.Stats) error {
	if op&optimize.MajorIteration != 0 {
		r.path = append(r.path, append([]float64(nil), loc.X...))
	}
	return nil
}
