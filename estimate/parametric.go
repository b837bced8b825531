// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/dist"
	"github.com/aclements/go-statfit/event"
	"github.com/aclements/go-statfit/optim"
)

// Family identifies a parametric distribution family.
type Family string

const (
	NormalFamily           Family = "normal"
	PoissonFamily          Family = "poisson"
	BinomialFamily         Family = "binomial"
	NegativeBinomialFamily Family = "negative_binomial"
)

// Algorithm identifies a parametric fitting method.
type Algorithm string

const (
	// MM is the method of moments.
	MM Algorithm = "mm"
	// ML is maximum likelihood.
	ML Algorithm = "ml"
)

// Defaults of the iterative maximum likelihood fits.
const (
	DefaultMinDiff   = 1e-5
	DefaultMinIts    = 1
	DefaultMaxIts    = 1000
	DefaultTolerance = 1e-8
)

// family describes how to fit one parametric family.
type family struct {
	outcome event.Outcome
	// natural is set for families of non-negative integers.
	natural bool
	// settings lists the option names each algorithm accepts.
	settings map[Algorithm][]string
	fit      map[Algorithm]func(e *ParametricEstimator, m moments, d *data.Univariate, lazy bool) (Estimation, error)
}

var families = map[Family]*family{
	NormalFamily: {
		outcome: event.Continuous,
		fit: map[Algorithm]func(*ParametricEstimator, moments, *data.Univariate, bool) (Estimation, error){
			ML: fitNormalML,
			MM: fitNormalMM,
		},
	},
	PoissonFamily: {
		outcome: event.Discrete,
		natural: true,
		fit: map[Algorithm]func(*ParametricEstimator, moments, *data.Univariate, bool) (Estimation, error){
			ML: fitPoisson,
			MM: fitPoisson,
		},
	},
	BinomialFamily: {
		outcome: event.Discrete,
		natural: true,
		settings: map[Algorithm][]string{
			ML: {"force", "min_diff", "min_its", "max_its"},
			MM: {"force"},
		},
		fit: map[Algorithm]func(*ParametricEstimator, moments, *data.Univariate, bool) (Estimation, error){
			ML: fitBinomialML,
			MM: fitBinomialMM,
		},
	},
	NegativeBinomialFamily: {
		outcome: event.Discrete,
		natural: true,
		settings: map[Algorithm][]string{
			ML: {"force", "max_its", "tolerance"},
			MM: {"force"},
		},
		fit: map[Algorithm]func(*ParametricEstimator, moments, *data.Univariate, bool) (Estimation, error){
			ML: fitNegativeBinomialML,
			MM: fitNegativeBinomialMM,
		},
	},
}

// ParametricEstimator fits a parametric family by the method of
// moments or maximum likelihood. Only elementary events are used;
// censored events are ignored.
type ParametricEstimator struct {
	family    Family
	algorithm Algorithm

	force     bool
	minDiff   float64
	minIts    int
	maxIts    int
	tolerance float64
}

// NewParametricEstimator returns an estimator fitting family f with
// algorithm a. An empty algorithm selects ML.
func NewParametricEstimator(f Family, a Algorithm) (*ParametricEstimator, error) {
	const op = "parametric estimator"
	fam, ok := families[f]
	if !ok {
		return nil, newError(Configuration, op, "unknown family %q", f)
	}
	if a == "" {
		a = ML
	}
	if _, ok := fam.fit[a]; !ok {
		return nil, newError(Configuration, op, "%s has no algorithm %q", f, a)
	}
	return &ParametricEstimator{
		family:    f,
		algorithm: a,
		minDiff:   DefaultMinDiff,
		minIts:    DefaultMinIts,
		maxIts:    DefaultMaxIts,
		tolerance: DefaultTolerance,
	}, nil
}

func (e *ParametricEstimator) Outcome() event.Outcome { return families[e.family].outcome }

// Family returns the family e fits.
func (e *ParametricEstimator) Family() Family { return e.family }

// Algorithm returns the fitting method of e.
func (e *ParametricEstimator) Algorithm() Algorithm { return e.algorithm }

// SetForce allows fitting a binomial to overdispersed data or a
// negative binomial to underdispersed data.
func (e *ParametricEstimator) SetForce(force bool) { e.force = force }

// SetIterations bounds the iterative fits: they stop once the
// relative change of the log-likelihood is below minDiff after at
// least minIts iterations, and fail after maxIts iterations.
func (e *ParametricEstimator) SetIterations(minDiff float64, minIts, maxIts int) error {
	c := *e
	c.minDiff, c.minIts, c.maxIts = minDiff, minIts, maxIts
	if err := c.validate(); err != nil {
		return err
	}
	*e = c
	return nil
}

func (e *ParametricEstimator) validate() error {
	const op = "parametric estimator"
	switch {
	case !(e.minDiff > 0):
		return newError(Configuration, op, "min_diff %v must be positive", e.minDiff)
	case e.maxIts < 1 || e.minIts < 0:
		return newError(Configuration, op, "invalid iteration bounds [%d, %d]", e.minIts, e.maxIts)
	case e.maxIts < e.minIts:
		return newError(Configuration, op, "max_its %d < min_its %d", e.maxIts, e.minIts)
	case !(e.tolerance > 0):
		return newError(Configuration, op, "tolerance %v must be positive", e.tolerance)
	}
	return nil
}

func (e *ParametricEstimator) setters() map[string]setter {
	all := map[string]setter{
		"force":     boolSetter(&e.force),
		"min_diff":  positiveSetter(&e.minDiff),
		"min_its":   intSetter(&e.minIts, 0),
		"max_its":   intSetter(&e.maxIts, 1),
		"tolerance": positiveSetter(&e.tolerance),
	}
	out := make(map[string]setter)
	for _, name := range families[e.family].settings[e.algorithm] {
		out[name] = all[name]
	}
	return out
}

func (e *ParametricEstimator) Settings() []string {
	return settingNames(e.setters())
}

func (e *ParametricEstimator) Configure(opts Options) ([]Warning, error) {
	c := *e
	ws, err := configure(e.op(), opts, c.setters())
	if err == nil {
		err = c.validate()
	}
	if err != nil {
		return ws, err
	}
	*e = c
	return ws, nil
}

func (e *ParametricEstimator) Copy() Estimator {
	c := *e
	return &c
}

func (e *ParametricEstimator) op() string {
	return fmt.Sprintf("%s %s estimate", e.family, e.algorithm)
}

func (e *ParametricEstimator) Estimate(d *data.Univariate, lazy bool) (Estimation, error) {
	fam := families[e.family]
	if err := checkOutcome(e.op(), fam.outcome, d); err != nil {
		return nil, err
	}
	m, err := e.moments(fam, d)
	if err != nil {
		return nil, err
	}
	return fam.fit[e.algorithm](e, m, d, lazy)
}

// moments summarizes the elementary values of a sample.
type moments struct {
	xs, ws         []float64
	total          float64
	mean, variance float64 // population variance
	max            float64
}

func (e *ParametricEstimator) moments(fam *family, d *data.Univariate) (moments, error) {
	xs, ws := d.Elementary()
	if fam.natural {
		for i := 0; i < d.Len(); i++ {
			ev := d.Event(i)
			if ev.Censoring() == event.Elementary && ev.Value() < 0 {
				return moments{}, newError(TypeMismatch, e.op(), "negative value %v", ev)
			}
		}
	}
	if len(xs) == 0 {
		return moments{}, newError(InsufficientData, e.op(), "no elementary observations among %d events", d.Len())
	}
	if c := d.Censored(); c > 0 {
		log.Debugf("%s: ignoring %d censored events", e.op(), c)
	}
	m := moments{xs: xs, ws: ws, total: floats.Sum(ws), max: floats.Max(xs)}
	m.mean, m.variance = stat.PopMeanVariance(xs, ws)
	return m, nil
}

// logLikelihood of the elementary values of m under f.
func (m moments) logLikelihood(f dist.Numeric) float64 {
	ll := 0.0
	for i, x := range m.xs {
		ll += m.ws[i] * math.Log(f.PDF(x))
	}
	return ll
}

func fitNormalML(e *ParametricEstimator, m moments, d *data.Univariate, lazy bool) (Estimation, error) {
	if m.variance == 0 {
		return nil, newError(InsufficientData, e.op(), "all %d values equal %v", len(m.xs), m.mean)
	}
	return newEstimation(dist.Normal{Mu: m.mean, Sigma: math.Sqrt(m.variance)}, d, lazy), nil
}

// fitNormalMM uses the unbiased variance.
func fitNormalMM(e *ParametricEstimator, m moments, d *data.Univariate, lazy bool) (Estimation, error) {
	if m.variance == 0 || m.total <= 1 {
		return nil, newError(InsufficientData, e.op(), "need two distinct values")
	}
	variance := m.variance * m.total / (m.total - 1)
	return newEstimation(dist.Normal{Mu: m.mean, Sigma: math.Sqrt(variance)}, d, lazy), nil
}

// fitPoisson is both the ML and MM fit: the rate is the mean.
func fitPoisson(e *ParametricEstimator, m moments, d *data.Univariate, lazy bool) (Estimation, error) {
	if m.mean == 0 {
		return nil, newError(InsufficientData, e.op(), "all values are 0")
	}
	return newEstimation(dist.Poisson{Lambda: m.mean}, d, lazy), nil
}

// binomialStart returns the moment estimate of the number of trials,
// which is never below the largest value.
func (e *ParametricEstimator) binomialStart(m moments) (int, error) {
	if m.mean == 0 {
		return 0, newError(InsufficientData, e.op(), "all values are 0")
	}
	if m.variance >= m.mean {
		if !e.force {
			return 0, wrapError(InsufficientData, e.op(), ErrOverdispersed, "variance %v >= mean %v", m.variance, m.mean)
		}
		return int(m.max), nil
	}
	kappa := int(math.Round(m.mean * m.mean / (m.mean - m.variance)))
	if kappa < int(m.max) {
		kappa = int(m.max)
	}
	return kappa, nil
}

func fitBinomialMM(e *ParametricEstimator, m moments, d *data.Univariate, lazy bool) (Estimation, error) {
	kappa, err := e.binomialStart(m)
	if err != nil {
		return nil, err
	}
	return newEstimation(dist.Binomial{N: kappa, P: m.mean / float64(kappa)}, d, lazy), nil
}

// fitBinomialML searches the integer number of trials maximizing the
// likelihood, with the success probability profiled as mean/trials.
// The search starts at the moment estimate and walks down, or up if
// going down does not improve.
func fitBinomialML(e *ParametricEstimator, m moments, d *data.Univariate, lazy bool) (Estimation, error) {
	kappa, err := e.binomialStart(m)
	if err != nil {
		return nil, err
	}
	ll := func(k int) float64 {
		return m.logLikelihood(dist.Binomial{N: k, P: m.mean / float64(k)})
	}
	floor := int(m.max)
	path := [][]float64{{float64(kappa)}}
	prev := ll(kappa)
	step := -1
	if kappa-1 < floor || ll(kappa-1) <= prev {
		step = 1
	}
	its := 1
	converged := false
	for its < e.maxIts {
		next := kappa + step
		if next < floor {
			converged = true
			break
		}
		curr := ll(next)
		its++
		if !(curr > prev) {
			converged = true
			break
		}
		kappa = next
		path = append(path, []float64{float64(kappa)})
		diff := math.Abs((curr - prev) / prev)
		prev = curr
		if its >= e.minIts && diff < e.minDiff {
			converged = true
			break
		}
	}
	if !converged {
		return nil, wrapError(NonConvergence, e.op(), optim.ErrNotConverged, "after %d iterations at %d trials", its, kappa)
	}
	b := dist.Binomial{N: kappa, P: m.mean / float64(kappa)}
	return newOptimizationEstimation(b, d, lazy, optim.Result{X: []float64{float64(kappa)}, F: -prev, Path: path, Evaluations: its + 1}), nil
}

func (e *ParametricEstimator) checkUnderdispersion(m moments) error {
	if m.mean == 0 {
		return newError(InsufficientData, e.op(), "all values are 0")
	}
	if m.variance <= m.mean && !e.force {
		return wrapError(InsufficientData, e.op(), ErrUnderdispersed, "variance %v <= mean %v", m.variance, m.mean)
	}
	return nil
}

func fitNegativeBinomialMM(e *ParametricEstimator, m moments, d *data.Univariate, lazy bool) (Estimation, error) {
	if err := e.checkUnderdispersion(m); err != nil {
		return nil, err
	}
	if m.variance <= m.mean {
		return nil, newError(InsufficientData, e.op(), "moment estimate undefined for variance %v <= mean %v", m.variance, m.mean)
	}
	kappa := m.mean * m.mean / (m.variance - m.mean)
	pi := 1 - m.mean/m.variance
	return newEstimation(dist.NegativeBinomial{Kappa: kappa, Pi: pi}, d, lazy), nil
}

// fitNegativeBinomialML maximizes the likelihood over log κ, with π
// profiled as mean/(mean+κ).
func fitNegativeBinomialML(e *ParametricEstimator, m moments, d *data.Univariate, lazy bool) (Estimation, error) {
	if err := e.checkUnderdispersion(m); err != nil {
		return nil, err
	}
	kappa := 1.0
	if m.variance > m.mean {
		kappa = m.mean * m.mean / (m.variance - m.mean)
	}
	nb := func(logKappa float64) dist.NegativeBinomial {
		k := math.Exp(logKappa)
		return dist.NegativeBinomial{Kappa: k, Pi: m.mean / (m.mean + k)}
	}
	objective := func(x []float64) float64 {
		ll := m.logLikelihood(nb(x[0]))
		if math.IsNaN(ll) {
			return math.Inf(1)
		}
		return -ll
	}
	opt := optim.NelderMead{MaxIterations: e.maxIts, FunctionTolerance: e.tolerance}
	res, err := opt.Minimize(objective, []float64{math.Log(kappa)})
	if err != nil {
		if errors.Is(err, optim.ErrNotConverged) {
			return nil, wrapError(NonConvergence, e.op(), err, "")
		}
		return nil, err
	}
	for i, x := range res.Path {
		res.Path[i] = []float64{math.Exp(x[0])}
	}
	return newOptimizationEstimation(nb(res.X[0]), d, lazy, res), nil
}
