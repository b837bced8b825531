// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slope implements the slope heuristic for model selection.
//
// Given a family of models of increasing complexity, each with a
// penalty shape pen(m) and a score (maximized log-likelihood) s(m),
// the slope heuristic assumes that s grows linearly in pen for the
// most complex models. It estimates that slope κ by regressing s on
// pen over the m most complex models, for every m, and selects for
// each κ the model maximizing s - 2κ·pen. The final model is the one
// selected on the most stable range of slopes.
//
// Arlot, S. and Massart, P. (2009) Data-driven Calibration of
// Penalties for Least-Squares Regression.
package slope // import "github.com/aclements/go-statfit/slope"

import (
	"errors"
	"fmt"
	"math"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("slope")

func init() {
	// Warnings only, until a command installs its own backend.
	logging.SetLevel(logging.WARNING, "slope")
}

// ErrNoSlope is returned by Fit when no regression yields a positive
// slope, which happens when the score does not increase with the
// penalty shape.
var ErrNoSlope = errors.New("no positive slope")

// Heuristic is the result of the slope heuristic.
type Heuristic struct {
	// Penshapes and Scores are the inputs, indexed by model.
	Penshapes, Scores []float64

	// Sizes, Intercepts and Slopes describe each retained
	// regression: Sizes[i] is the number of most complex models
	// the i'th regression was fit on.
	Sizes              []int
	Intercepts, Slopes []float64

	// Selected[i] is the model maximizing the criterion for
	// Slopes[i].
	Selected []int

	// Plateau is the index in Slopes chosen by the selector.
	Plateau int
}

// Fit applies the slope heuristic. penshapes must be strictly
// increasing. A nil solver or selector selects BiSquare or Superior.
func Fit(penshapes, scores []float64, solver Solver, selector Selector) (*Heuristic, error) {
	if len(penshapes) != len(scores) {
		return nil, fmt.Errorf("%d scores for %d penalty shapes", len(scores), len(penshapes))
	}
	n := len(penshapes)
	if n < 2 {
		return nil, fmt.Errorf("slope heuristic needs at least 2 models, have %d", n)
	}
	for i := 1; i < n; i++ {
		if !(penshapes[i-1] < penshapes[i]) {
			return nil, fmt.Errorf("penalty shapes must increase: %v then %v", penshapes[i-1], penshapes[i])
		}
	}
	if solver == nil {
		solver = BiSquare{}
	}
	if selector == nil {
		selector = Superior{}
	}

	h := &Heuristic{
		Penshapes: append([]float64(nil), penshapes...),
		Scores:    append([]float64(nil), scores...),
	}
	for m := 2; m <= n; m++ {
		b0, b1, err := solver.Solve(penshapes[n-m:], scores[n-m:])
		if err != nil {
			log.Debugf("regression on %d models: %v", m, err)
			continue
		}
		if !(b1 > 0) || math.IsInf(b1, 1) {
			continue
		}
		h.Sizes = append(h.Sizes, m)
		h.Intercepts = append(h.Intercepts, b0)
		h.Slopes = append(h.Slopes, b1)
		h.Selected = append(h.Selected, argmaxPenalized(penshapes, scores, b1))
	}
	if len(h.Slopes) == 0 {
		return nil, ErrNoSlope
	}
	h.Plateau = selector.Select(h.Selected)
	log.Debugf("slopes %v select %v; plateau at %d", h.Slopes, h.Selected, h.Plateau)
	return h, nil
}

// argmaxPenalized returns the first model maximizing
// score - 2·slope·penshape.
func argmaxPenalized(penshapes, scores []float64, slope float64) int {
	best, index := math.Inf(-1), -1
	for i := range penshapes {
		c := scores[i] - 2*slope*penshapes[i]
		if !math.IsNaN(c) && !math.IsInf(c, 0) && c > best {
			best, index = c, i
		}
	}
	if index < 0 {
		// Every criterion is infinite.
		return 0
	}
	return index
}

// Slope returns the slope chosen by the selector.
func (h *Heuristic) Slope() float64 {
	return h.Slopes[h.Plateau]
}

// Index returns the selected model.
func (h *Heuristic) Index() int {
	return h.Selected[h.Plateau]
}

// Criterion returns -score + 2·Slope()·penshape for model i. The
// selected model minimizes it.
func (h *Heuristic) Criterion(i int) float64 {
	return -h.Scores[i] + 2*h.Slope()*h.Penshapes[i]
}
