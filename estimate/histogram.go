// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/dist"
	"github.com/aclements/go-statfit/event"
	"github.com/aclements/go-statfit/slope"
)

// Histogram estimator defaults.
const (
	DefaultMinBins = 2
	// DefaultMaxBinsLimit caps the default maximum bin count,
	// which is otherwise the square root of the sample size.
	DefaultMaxBinsLimit = 100
	DefaultConstant     = 1.0
)

// HistogramEstimator fits histograms to continuous samples.
//
// With a fixed bin count it fits one regular histogram. Otherwise it
// fits one candidate per bin count in [MinBins, MaxBins] and selects
// among them with the slope heuristic. Regular candidates have equal
// width bins. Irregular candidates are built by starting from a
// regular grid of MaxBins bins and repeatedly merging the pair of
// adjacent bins whose merge loses the least log-likelihood.
//
// Censored events are ignored.
type HistogramEstimator struct {
	nbBins    int // 0 selects the slope heuristic
	minBins   int
	maxBins   int // 0 derives the bound from the sample size
	irregular bool
	constant  float64
	solver    string
	selector  string
	threshold float64
}

// NewHistogramEstimator returns a regular slope heuristic histogram
// estimator with default settings.
func NewHistogramEstimator() *HistogramEstimator {
	return &HistogramEstimator{
		minBins:   DefaultMinBins,
		constant:  DefaultConstant,
		solver:    "bisquare",
		selector:  "superior",
		threshold: slope.DefaultThreshold,
	}
}

func (e *HistogramEstimator) Outcome() event.Outcome { return event.Continuous }

const histogramOp = "histogram estimator"

// SetBins fixes the number of bins. Zero selects the bin count with
// the slope heuristic.
func (e *HistogramEstimator) SetBins(n int) error {
	c := *e
	c.nbBins = n
	return e.commit(c)
}

// SetMinBins sets the smallest bin count considered.
func (e *HistogramEstimator) SetMinBins(n int) error {
	c := *e
	c.minBins = n
	return e.commit(c)
}

// SetMaxBins sets the largest bin count considered. Zero derives it
// from the sample size.
func (e *HistogramEstimator) SetMaxBins(n int) error {
	c := *e
	c.maxBins = n
	return e.commit(c)
}

// SetRegular selects regular (true) or irregular (false) candidates.
func (e *HistogramEstimator) SetRegular(regular bool) {
	e.irregular = !regular
}

// SetIrregular selects irregular (true) or regular (false)
// candidates.
func (e *HistogramEstimator) SetIrregular(irregular bool) {
	e.irregular = irregular
}

// Regular reports whether e fits regular candidates.
func (e *HistogramEstimator) Regular() bool { return !e.irregular }

// SetConstant sets the constant c of the irregular penalty shape
// k(1 + c·log(MaxBins/k)). It must be in [0, 1].
func (e *HistogramEstimator) SetConstant(c float64) error {
	cp := *e
	cp.constant = c
	return e.commit(cp)
}

// SetSolver selects the slope regression: "ols", "huber" or
// "bisquare".
func (e *HistogramEstimator) SetSolver(name string) error {
	c := *e
	c.solver = strings.ToLower(name)
	return e.commit(c)
}

// SetSelector selects the plateau selector: "superior" or "maximal".
func (e *HistogramEstimator) SetSelector(name string) error {
	c := *e
	c.selector = strings.ToLower(name)
	return e.commit(c)
}

// SetThreshold sets the plateau length threshold of the superior
// selector, as a fraction of the number of slopes.
func (e *HistogramEstimator) SetThreshold(t float64) error {
	c := *e
	c.threshold = t
	return e.commit(c)
}

// MinBins and MaxBins return the bin count bounds. MaxBins returns 0
// if the bound is derived from the sample size.
// Bins returns the fixed number of bins, or 0 under the slope
// heuristic.
func (e *HistogramEstimator) Bins() int { return e.nbBins }

func (e *HistogramEstimator) MinBins() int { return e.minBins }
func (e *HistogramEstimator) MaxBins() int { return e.maxBins }

func (e *HistogramEstimator) commit(c HistogramEstimator) error {
	if err := c.validate(); err != nil {
		return err
	}
	*e = c
	return nil
}

func (e *HistogramEstimator) validate() error {
	switch {
	case e.nbBins < 0:
		return newError(Configuration, histogramOp, "nb_bins %d is negative", e.nbBins)
	case e.minBins < 1:
		return newError(Configuration, histogramOp, "min_bins %d must be at least 1", e.minBins)
	case e.maxBins != 0 && e.maxBins < 2:
		return newError(Configuration, histogramOp, "max_bins %d must be at least 2", e.maxBins)
	case e.maxBins != 0 && e.maxBins <= e.minBins:
		return newError(Configuration, histogramOp, "max_bins %d must exceed min_bins %d", e.maxBins, e.minBins)
	case !(e.constant >= 0 && e.constant <= 1):
		return newError(Configuration, histogramOp, "constant %v is not in [0, 1]", e.constant)
	case !(e.threshold > 0 && e.threshold <= 1):
		return newError(Configuration, histogramOp, "threshold %v is not in (0, 1]", e.threshold)
	}
	if _, err := e.newSolver(); err != nil {
		return newError(Configuration, histogramOp, "%v", err)
	}
	if _, err := e.newSelector(); err != nil {
		return newError(Configuration, histogramOp, "%v", err)
	}
	return nil
}

func (e *HistogramEstimator) newSolver() (slope.Solver, error) {
	switch e.solver {
	case "ols":
		return slope.OLS{}, nil
	case "huber":
		return slope.Huber{}, nil
	case "bisquare":
		return slope.BiSquare{}, nil
	}
	return nil, fmt.Errorf("unknown solver %q", e.solver)
}

func (e *HistogramEstimator) newSelector() (slope.Selector, error) {
	switch e.selector {
	case "superior":
		return slope.Superior{Threshold: e.threshold}, nil
	case "maximal":
		return slope.Maximal{}, nil
	}
	return nil, fmt.Errorf("unknown selector %q", e.selector)
}

// setters also records which of the mutually exclusive mode flags
// were given.
func (e *HistogramEstimator) setters(regular, irregular **bool) map[string]setter {
	flag := func(p **bool) setter {
		return func(v interface{}) error {
			b, err := asBool(v)
			if err != nil {
				return err
			}
			*p = &b
			return nil
		}
	}
	name := func(p *string) setter {
		return func(v interface{}) error {
			s, err := asString(v)
			*p = strings.ToLower(s)
			return err
		}
	}
	return map[string]setter{
		"nb_bins":   intSetter(&e.nbBins, 0),
		"min_bins":  intSetter(&e.minBins, 1),
		"max_bins":  intSetter(&e.maxBins, 0),
		"regular":   flag(regular),
		"irregular": flag(irregular),
		"constant": func(v interface{}) error {
			x, err := asFloat(v)
			e.constant = x
			return err
		},
		"solver":   name(&e.solver),
		"selector": name(&e.selector),
		"threshold": func(v interface{}) error {
			x, err := asFloat(v)
			e.threshold = x
			return err
		},
	}
}

func (e *HistogramEstimator) Settings() []string {
	var r, i *bool
	return settingNames(e.setters(&r, &i))
}

func (e *HistogramEstimator) Configure(opts Options) ([]Warning, error) {
	c := *e
	var regular, irregular *bool
	ws, err := configure(histogramOp, opts, c.setters(&regular, &irregular))
	if err != nil {
		return ws, err
	}
	switch {
	case regular != nil && irregular != nil:
		if *regular == *irregular {
			return ws, newError(Configuration, histogramOp, "regular=%v and irregular=%v are contradictory", *regular, *irregular)
		}
		c.irregular = *irregular
	case regular != nil:
		c.irregular = !*regular
	case irregular != nil:
		c.irregular = *irregular
	}
	return ws, e.commit(c)
}

func (e *HistogramEstimator) Copy() Estimator {
	c := *e
	return &c
}

// histogramCandidate is a histogram before normalization.
type histogramCandidate struct {
	edges, counts []float64
}

func (e *HistogramEstimator) Estimate(d *data.Univariate, lazy bool) (Estimation, error) {
	const op = "histogram estimate"
	if err := checkOutcome(op, event.Continuous, d); err != nil {
		return nil, err
	}
	xs, ws := d.Elementary()
	if len(xs) == 0 {
		return nil, newError(InsufficientData, op, "no elementary observations among %d events", d.Len())
	}
	lo, hi := floats.Min(xs), floats.Max(xs)
	if lo == hi {
		return nil, newError(InsufficientData, op, "all %d values equal %v", len(xs), lo)
	}
	total := floats.Sum(ws)

	if e.nbBins > 0 {
		edges := regularEdges(lo, hi, len(xs), e.nbBins)
		h := dist.NewHistogram(edges, binCounts(edges, xs, ws))
		return newEstimation(h, d, lazy), nil
	}

	minBins, maxBins := e.minBins, e.maxBins
	if maxBins == 0 {
		maxBins = int(math.Ceil(math.Sqrt(float64(len(xs)))))
		if maxBins > DefaultMaxBinsLimit {
			maxBins = DefaultMaxBinsLimit
		}
		if maxBins <= minBins {
			maxBins = minBins + 1
		}
	}
	if distinct := d.Distinct(); distinct < minBins {
		return nil, newError(InsufficientData, op, "%d distinct values cannot support %d bins", distinct, minBins)
	}

	var cands []histogramCandidate
	var pens []float64
	if e.irregular {
		cands = irregularCandidates(lo, hi, xs, ws, minBins, maxBins)
		for _, c := range cands {
			k := float64(len(c.counts))
			pens = append(pens, k*(1+e.constant*math.Log(float64(maxBins)/k)))
		}
	} else {
		for k := minBins; k <= maxBins; k++ {
			edges := regularEdges(lo, hi, len(xs), k)
			cands = append(cands, histogramCandidate{edges, binCounts(edges, xs, ws)})
			pens = append(pens, float64(k))
		}
	}
	scores := make([]float64, len(cands))
	for i, c := range cands {
		scores[i] = histogramLogLikelihood(c.edges, c.counts, total)
	}

	solver, _ := e.newSolver()
	selector, _ := e.newSelector()
	heur, err := slope.Fit(pens, scores, solver, selector)
	if err != nil {
		if errors.Is(err, slope.ErrNoSlope) {
			return nil, wrapError(InsufficientData, op, err, "log-likelihood does not grow with the bin count")
		}
		return nil, wrapError(InsufficientData, op, err, "")
	}

	models := make([]Estimation, len(cands))
	bins := make([]int, len(cands))
	for i, c := range cands {
		models[i] = newEstimation(dist.NewHistogram(c.edges, c.counts), d, lazy)
		bins[i] = len(c.counts)
	}
	sel := models[heur.Index()]
	log.Debugf("%s: selected %d bins in [%d, %d] with slope %v", op, bins[heur.Index()], minBins, maxBins, heur.Slope())

	res := &SlopeHeuristicSelection{
		basic:     basic{estimated: sel.Estimated()},
		models:    Models{models},
		heuristic: heur,
		minBins:   minBins,
		bins:      bins,
	}
	if !lazy {
		res.data = d
	}
	return res, nil
}

// regularEdges returns k+1 equally spaced edges covering [lo, hi]
// with a margin of half the data resolution (hi-lo)/n on each side.
func regularEdges(lo, hi float64, n, k int) []float64 {
	eps := (hi - lo) / float64(2*n)
	start, end := lo-eps, hi+eps
	edges := make([]float64, k+1)
	floats.Span(edges, start, end)
	return edges
}

// binCounts returns the total weight of xs in each bin of edges.
// Values outside the edges are clamped into the outer bins.
func binCounts(edges, xs, ws []float64) []float64 {
	k := len(edges) - 1
	counts := make([]float64, k)
	start, end := edges[0], edges[k]
	for i, x := range xs {
		j := int(float64(k) * (x - start) / (end - start))
		if j < 0 {
			j = 0
		} else if j >= k {
			j = k - 1
		}
		// Correct for rounding at irregular edges.
		for j > 0 && x < edges[j] {
			j--
		}
		for j < k-1 && x >= edges[j+1] {
			j++
		}
		counts[j] += ws[i]
	}
	return counts
}

// histogramLogLikelihood returns Σ n_j log(n_j / (N·width_j)).
func histogramLogLikelihood(edges, counts []float64, total float64) float64 {
	ll := 0.0
	for j, n := range counts {
		if n > 0 {
			ll += n * math.Log(n/(total*(edges[j+1]-edges[j])))
		}
	}
	return ll
}

// binTerm is the log-likelihood contribution of a bin.
func binTerm(n, width, total float64) float64 {
	if n == 0 {
		return 0
	}
	return n * math.Log(n/(total*width))
}

// irregularCandidates returns one histogram for each bin count from
// maxBins down to minBins, in increasing order of bin count. Each is
// obtained from the next larger by merging the adjacent pair of bins
// that loses the least log-likelihood; ties merge the leftmost pair.
func irregularCandidates(lo, hi float64, xs, ws []float64, minBins, maxBins int) []histogramCandidate {
	edges := regularEdges(lo, hi, len(xs), maxBins)
	counts := binCounts(edges, xs, ws)
	total := floats.Sum(ws)

	out := make([]histogramCandidate, maxBins-minBins+1)
	for k := maxBins; ; k-- {
		out[k-minBins] = histogramCandidate{
			edges:  append([]float64(nil), edges...),
			counts: append([]float64(nil), counts...),
		}
		if k == minBins {
			break
		}
		best, loss := 0, math.Inf(1)
		for j := 0; j+1 < len(counts); j++ {
			wa, wb := edges[j+1]-edges[j], edges[j+2]-edges[j+1]
			before := binTerm(counts[j], wa, total) + binTerm(counts[j+1], wb, total)
			after := binTerm(counts[j]+counts[j+1], wa+wb, total)
			if l := before - after; l < loss {
				best, loss = j, l
			}
		}
		counts[best] += counts[best+1]
		counts = append(counts[:best+1], counts[best+2:]...)
		edges = append(edges[:best+1], edges[best+2:]...)
	}
	return out
}
