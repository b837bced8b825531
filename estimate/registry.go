// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"sort"
	"strings"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/event"
)

// Estimator family names for New that are not parametric families.
const (
	FrequencyFamily Family = "frequency"
	HistogramFamily Family = "histogram"
	KDEFamily       Family = "kde"
	SelectionFamily Family = "selection"
)

// Histogram algorithms for New.
const (
	Regular   Algorithm = "regular"
	Irregular Algorithm = "irregular"
	Fixed     Algorithm = "fixed"
)

type registryKey struct {
	outcome   event.Outcome
	family    Family
	algorithm Algorithm
}

type constructor func() (Estimator, error)

// registry maps each legal (outcome, family, algorithm) to its
// estimator. The empty algorithm selects the family's default.
var registry = buildRegistry()

func buildRegistry() map[registryKey]constructor {
	r := make(map[registryKey]constructor)
	for _, o := range []event.Outcome{event.Categorical, event.Discrete, event.Continuous} {
		o := o
		r[registryKey{o, FrequencyFamily, ""}] = func() (Estimator, error) {
			return NewFrequencyEstimator(o)
		}
		r[registryKey{o, SelectionFamily, ""}] = func() (Estimator, error) {
			return NewSelectionEstimator(o)
		}
	}
	for f, fam := range families {
		f := f
		for a := range fam.fit {
			a := a
			c := func() (Estimator, error) { return NewParametricEstimator(f, a) }
			r[registryKey{fam.outcome, f, a}] = c
			if a == ML {
				r[registryKey{fam.outcome, f, ""}] = c
			}
		}
	}
	histogram := func(irregular bool) constructor {
		return func() (Estimator, error) {
			h := NewHistogramEstimator()
			h.SetIrregular(irregular)
			return h, nil
		}
	}
	r[registryKey{event.Continuous, HistogramFamily, ""}] = histogram(false)
	r[registryKey{event.Continuous, HistogramFamily, Regular}] = histogram(false)
	r[registryKey{event.Continuous, HistogramFamily, Irregular}] = histogram(true)
	r[registryKey{event.Continuous, HistogramFamily, Fixed}] = histogram(false)
	r[registryKey{event.Continuous, KDEFamily, ""}] = func() (Estimator, error) {
		return NewKDEEstimator(), nil
	}
	return r
}

// Families returns the families New accepts for outcome o, sorted.
func Families(o event.Outcome) []Family {
	seen := make(map[Family]bool)
	var out []Family
	for k := range registry {
		if k.outcome == o && !seen[k.family] {
			seen[k.family] = true
			out = append(out, k.family)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// New returns an estimator of family f using algorithm a for samples
// of outcome o, configured with opts. An empty family selects the
// frequency estimator and an empty algorithm the family's default.
//
// An invalid outcome, or a family that does not accept o, is a
// TypeMismatch error. An unknown family or algorithm, or an invalid
// option value, is a Configuration error. Unknown option names are
// returned as warnings.
func New(o event.Outcome, f Family, a Algorithm, opts Options) (Estimator, []Warning, error) {
	const op = "new estimator"
	if !o.Valid() {
		return nil, nil, newError(TypeMismatch, op, "invalid outcome %v", o)
	}
	f = Family(strings.ToLower(string(f)))
	a = Algorithm(strings.ToLower(string(a)))
	if f == "" {
		f = FrequencyFamily
	}
	c, ok := registry[registryKey{o, f, a}]
	if !ok {
		for k := range registry {
			if k.family == f && k.algorithm == a {
				return nil, nil, newError(TypeMismatch, op, "%s estimator does not accept %v samples", f, o)
			}
		}
		return nil, nil, newError(Configuration, op, "no %s estimator with algorithm %q", f, a)
	}
	e, err := c()
	if err != nil {
		return nil, nil, err
	}
	ws, err := e.Configure(opts)
	if err != nil {
		return nil, ws, err
	}
	if h, ok := e.(*HistogramEstimator); ok {
		if err := checkHistogramMode(op, h, a); err != nil {
			return nil, ws, err
		}
	}
	return e, ws, nil
}

// checkHistogramMode reports options that contradict algorithm a of
// the histogram family.
func checkHistogramMode(op string, h *HistogramEstimator, a Algorithm) error {
	switch a {
	case Fixed:
		if h.Bins() <= 0 {
			return newError(Configuration, op, "fixed histogram requires nb_bins > 0")
		}
		if !h.Regular() {
			return newError(Configuration, op, "fixed histogram bins are regular")
		}
	case Regular:
		if !h.Regular() {
			return newError(Configuration, op, "irregular option with the %s algorithm", a)
		}
	case Irregular:
		if h.Regular() {
			return newError(Configuration, op, "regular option with the %s algorithm", a)
		}
	}
	return nil
}

// NewFrequency returns a frequency estimator for outcome o configured
// with opts.
func NewFrequency(o event.Outcome, opts Options) (*FrequencyEstimator, []Warning, error) {
	e, err := NewFrequencyEstimator(o)
	if err != nil {
		return nil, nil, err
	}
	ws, err := e.Configure(opts)
	if err != nil {
		return nil, ws, err
	}
	return e, ws, nil
}

// NewHistogram returns a histogram estimator configured with opts.
func NewHistogram(opts Options) (*HistogramEstimator, []Warning, error) {
	e := NewHistogramEstimator()
	ws, err := e.Configure(opts)
	if err != nil {
		return nil, ws, err
	}
	return e, ws, nil
}

// NewIndependent returns an independent estimator for samples whose
// variables all have outcome o, or for any sample if o is
// event.Mixed, configured with opts.
func NewIndependent(o event.Outcome, opts Options) (*IndependentEstimator, []Warning, error) {
	e, err := NewIndependentEstimator(o)
	if err != nil {
		return nil, nil, err
	}
	ws, err := e.Configure(opts)
	if err != nil {
		return nil, ws, err
	}
	return e, ws, nil
}

// NewIndependentFor returns the independent estimator for m:
// homogeneous if all variables of m have the same outcome and mixed
// otherwise.
func NewIndependentFor(m *data.Multivariate, opts Options) (*IndependentEstimator, []Warning, error) {
	if m == nil || m.Dims() == 0 {
		return nil, nil, newError(InsufficientData, "new independent estimator", "no variables")
	}
	return NewIndependent(m.Outcome(), opts)
}

// FitFrequency fits the frequency estimator for the outcome of d.
// The "lazy" option selects a lazy estimation.
func FitFrequency(d *data.Univariate, opts Options) (Estimation, []Warning, error) {
	lazy, opts, err := splitLazy(opts)
	if err != nil {
		return nil, nil, err
	}
	if d == nil {
		return nil, nil, newError(InsufficientData, "fit frequency", "no sample")
	}
	e, ws, err := NewFrequency(d.Outcome(), opts)
	if err != nil {
		return nil, ws, err
	}
	est, err := e.Estimate(d, lazy)
	return est, ws, err
}

// FitHistogram fits a histogram to d. The "lazy" option selects a
// lazy estimation.
func FitHistogram(d *data.Univariate, opts Options) (Estimation, []Warning, error) {
	lazy, opts, err := splitLazy(opts)
	if err != nil {
		return nil, nil, err
	}
	e, ws, err := NewHistogram(opts)
	if err != nil {
		return nil, ws, err
	}
	est, err := e.Estimate(d, lazy)
	return est, ws, err
}

// FitParametric fits family f with algorithm a to d. The "lazy"
// option selects a lazy estimation.
func FitParametric(d *data.Univariate, f Family, a Algorithm, opts Options) (Estimation, []Warning, error) {
	lazy, opts, err := splitLazy(opts)
	if err != nil {
		return nil, nil, err
	}
	if d == nil {
		return nil, nil, newError(InsufficientData, "fit parametric", "no sample")
	}
	e, ws, err := New(d.Outcome(), f, a, opts)
	if err != nil {
		return nil, ws, err
	}
	est, err := e.Estimate(d, lazy)
	return est, ws, err
}

// FitIndependent fits each variable of m independently with the
// estimator for its outcome. The "lazy" option selects a lazy
// estimation.
func FitIndependent(m *data.Multivariate, opts Options) (MultivariateEstimation, []Warning, error) {
	lazy, opts, err := splitLazy(opts)
	if err != nil {
		return nil, nil, err
	}
	e, ws, err := NewIndependentFor(m, opts)
	if err != nil {
		return nil, ws, err
	}
	est, err := e.Estimate(m, lazy)
	return est, ws, err
}
