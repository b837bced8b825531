// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"fmt"
	"sort"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/dist"
	"github.com/aclements/go-statfit/event"
)

// A MultivariateEstimator fits multivariate distributions.
type MultivariateEstimator interface {
	// Outcome returns the common outcome of the variables this
	// estimator accepts, or event.Mixed if it accepts any.
	Outcome() event.Outcome

	Estimate(m *data.Multivariate, lazy bool) (MultivariateEstimation, error)

	Settings() []string
	Configure(opts Options) ([]Warning, error)
	Copy() MultivariateEstimator
}

// IndependentEstimator fits a product of independent marginals, one
// per variable. Each variable is fit by its override estimator if one
// is set, or else by the estimator for its outcome.
//
// A homogeneous IndependentEstimator accepts only samples whose
// variables all have its outcome. A mixed one accepts any sample.
type IndependentEstimator struct {
	outcome   event.Outcome
	defaults  map[event.Outcome]Estimator
	overrides map[int]Estimator
}

const independentOp = "independent estimator"

// NewIndependentEstimator returns an independent estimator for
// samples whose variables all have outcome o, or for any sample if o
// is event.Mixed. Variables are fit with frequency estimators until
// SetEstimator or SetOverride says otherwise.
func NewIndependentEstimator(o event.Outcome) (*IndependentEstimator, error) {
	outcomes := []event.Outcome{o}
	switch {
	case o == event.Mixed:
		outcomes = []event.Outcome{event.Categorical, event.Discrete, event.Continuous}
	case !o.Valid():
		return nil, newError(TypeMismatch, independentOp, "invalid outcome %v", o)
	}
	e := &IndependentEstimator{
		outcome:   o,
		defaults:  make(map[event.Outcome]Estimator),
		overrides: make(map[int]Estimator),
	}
	for _, o := range outcomes {
		f, _ := NewFrequencyEstimator(o)
		e.defaults[o] = f
	}
	return e, nil
}

func (e *IndependentEstimator) Outcome() event.Outcome { return e.outcome }

// SetEstimator sets the estimator for variables of outcome
// est.Outcome(). The estimator is copied.
func (e *IndependentEstimator) SetEstimator(est Estimator) error {
	if _, ok := e.defaults[est.Outcome()]; !ok {
		return newError(TypeMismatch, independentOp, "%v estimator for %v variables", est.Outcome(), e.outcome)
	}
	e.defaults[est.Outcome()] = est.Copy()
	return nil
}

// Estimator returns a copy of the estimator for variables of outcome
// o, or nil if e accepts no such variables.
func (e *IndependentEstimator) Estimator(o event.Outcome) Estimator {
	if est, ok := e.defaults[o]; ok {
		return est.Copy()
	}
	return nil
}

// SetOverride sets the estimator for variable i, replacing the
// estimator for its outcome. A nil est removes the override. The
// estimator is copied.
func (e *IndependentEstimator) SetOverride(i int, est Estimator) error {
	if i < 0 {
		return newError(Bounds, independentOp, "override for variable %d", i)
	}
	if est == nil {
		delete(e.overrides, i)
		return nil
	}
	if e.outcome != event.Mixed && est.Outcome() != e.outcome {
		return newError(TypeMismatch, independentOp, "%v override for %v variables", est.Outcome(), e.outcome)
	}
	e.overrides[i] = est.Copy()
	return nil
}

// Settings returns the union of the settings of the estimators for
// each outcome.
func (e *IndependentEstimator) Settings() []string {
	seen := make(map[string]bool)
	var names []string
	for _, est := range e.defaults {
		for _, s := range est.Settings() {
			if !seen[s] {
				seen[s] = true
				names = append(names, s)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Configure applies each option to every outcome estimator that has
// the setting. Options no estimator has are returned as warnings.
// Overrides are configured separately.
func (e *IndependentEstimator) Configure(opts Options) ([]Warning, error) {
	known := make(map[string]bool)
	next := make(map[event.Outcome]Estimator, len(e.defaults))
	for o, est := range e.defaults {
		sub := make(Options)
		for _, s := range est.Settings() {
			if v, ok := opts[s]; ok {
				sub[s] = v
				known[s] = true
			}
		}
		c := est.Copy()
		if _, err := c.Configure(sub); err != nil {
			return nil, err
		}
		next[o] = c
	}

	var keys []string
	for k := range opts {
		if !known[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var warnings []Warning
	for _, k := range keys {
		w := Warning{Key: k, Msg: fmt.Sprintf("%s has no setting %q; ignored", independentOp, k)}
		log.Warning(w.Msg)
		warnings = append(warnings, w)
	}
	e.defaults = next
	return warnings, nil
}

func (e *IndependentEstimator) Copy() MultivariateEstimator {
	c := &IndependentEstimator{
		outcome:   e.outcome,
		defaults:  make(map[event.Outcome]Estimator, len(e.defaults)),
		overrides: make(map[int]Estimator, len(e.overrides)),
	}
	for o, est := range e.defaults {
		c.defaults[o] = est.Copy()
	}
	for i, est := range e.overrides {
		c.overrides[i] = est.Copy()
	}
	return c
}

// estimatorFor returns the estimator for variable i of outcome o.
func (e *IndependentEstimator) estimatorFor(i int, o event.Outcome) (Estimator, error) {
	if est, ok := e.overrides[i]; ok {
		if est.Outcome() != o {
			return nil, newError(TypeMismatch, independentOp, "%v override for %v variable %d", est.Outcome(), o, i)
		}
		return est, nil
	}
	if est, ok := e.defaults[o]; ok {
		return est, nil
	}
	return nil, newError(TypeMismatch, independentOp, "%v variable %d in %v sample", o, i, e.outcome)
}

func (e *IndependentEstimator) Estimate(m *data.Multivariate, lazy bool) (MultivariateEstimation, error) {
	const op = "independent estimate"
	if m == nil || m.Dims() == 0 {
		return nil, newError(InsufficientData, op, "no variables")
	}
	if e.outcome != event.Mixed && m.Outcome() != e.outcome {
		return nil, newError(TypeMismatch, op, "%v sample, want %v", m.Outcome(), e.outcome)
	}

	names := m.Names()
	marginals := make([]Estimation, m.Dims())
	dists := make([]dist.Univariate, m.Dims())
	for i := range marginals {
		v, err := m.Variable(i)
		if err != nil {
			return nil, wrapError(Bounds, op, err, "")
		}
		est, err := e.estimatorFor(i, v.Outcome())
		if err != nil {
			return nil, err
		}
		marginals[i], err = est.Estimate(v, lazy)
		if err != nil {
			kind := KindOf(err)
			if kind == 0 {
				kind = InsufficientData
			}
			return nil, wrapError(kind, op, err, "variable %d (%s)", i, names[i])
		}
		dists[i] = marginals[i].Estimated()
	}
	log.Debugf("%s: fit %d marginals", op, len(marginals))

	res := &IndependentEstimation{
		estimated: dist.NewIndependent(dists...),
		marginals: marginals,
	}
	if !lazy {
		res.data = m
	}
	return res, nil
}
