// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/event"
)

// Criterion is an information criterion for comparing fitted
// distributions. Lower scores are better.
type Criterion int

const (
	// AIC is Akaike's criterion, 2k - 2L.
	AIC Criterion = iota
	// AICc is AIC corrected for small samples.
	AICc
	// BIC is the Bayesian criterion, k ln n - 2L.
	BIC
	// HQIC is the Hannan-Quinn criterion, 2k ln ln n - 2L.
	HQIC
)

var criterionNames = [...]string{AIC: "aic", AICc: "aicc", BIC: "bic", HQIC: "hqic"}

func (c Criterion) String() string {
	if c >= 0 && int(c) < len(criterionNames) {
		return criterionNames[c]
	}
	return fmt.Sprintf("Criterion(%d)", int(c))
}

// ParseCriterion parses a criterion name, ignoring case.
func ParseCriterion(s string) (Criterion, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range criterionNames {
		if s == name {
			return Criterion(c), nil
		}
	}
	return 0, fmt.Errorf("unknown criterion %q", s)
}

// Score returns the criterion of a distribution with k parameters
// and log-likelihood ll on a sample of total weight n.
func (c Criterion) Score(ll float64, k int, n float64) float64 {
	fk := float64(k)
	switch c {
	case AICc:
		if n-fk-1 <= 0 {
			return math.Inf(1)
		}
		return 2*fk - 2*ll + 2*fk*(fk+1)/(n-fk-1)
	case BIC:
		return fk*math.Log(n) - 2*ll
	case HQIC:
		return 2*fk*math.Log(math.Log(n)) - 2*ll
	}
	return 2*fk - 2*ll
}

// SelectionEstimator fits several candidate estimators and keeps the
// one with the best criterion. Candidates that fail are skipped.
type SelectionEstimator struct {
	outcome    event.Outcome
	candidates []Estimator
	criterion  Criterion
}

const selectionOp = "selection estimator"

// NewSelectionEstimator returns an estimator choosing among
// candidates, which must all accept samples of outcome o. With no
// candidates, it uses the default candidates for o: Poisson,
// binomial, and negative binomial maximum likelihood and frequency for
// discrete samples; normal maximum likelihood and a regular histogram
// for continuous samples; frequency for categorical samples.
func NewSelectionEstimator(o event.Outcome, candidates ...Estimator) (*SelectionEstimator, error) {
	if !o.Valid() {
		return nil, newError(TypeMismatch, selectionOp, "invalid outcome %v", o)
	}
	if len(candidates) == 0 {
		candidates = defaultCandidates(o)
	}
	e := &SelectionEstimator{outcome: o}
	for i, c := range candidates {
		if c.Outcome() != o {
			return nil, newError(TypeMismatch, selectionOp, "candidate %d accepts %v samples, want %v", i, c.Outcome(), o)
		}
		e.candidates = append(e.candidates, c.Copy())
	}
	return e, nil
}

func defaultCandidates(o event.Outcome) []Estimator {
	var cands []Estimator
	switch o {
	case event.Discrete:
		for _, f := range []Family{PoissonFamily, BinomialFamily, NegativeBinomialFamily} {
			p, _ := NewParametricEstimator(f, ML)
			cands = append(cands, p)
		}
	case event.Continuous:
		p, _ := NewParametricEstimator(NormalFamily, ML)
		cands = append(cands, p, NewHistogramEstimator())
	}
	if o != event.Continuous {
		f, _ := NewFrequencyEstimator(o)
		cands = append(cands, f)
	}
	return cands
}

func (e *SelectionEstimator) Outcome() event.Outcome { return e.outcome }

// Criterion returns the criterion candidates are compared with.
func (e *SelectionEstimator) Criterion() Criterion { return e.criterion }

// SetCriterion sets the criterion candidates are compared with.
func (e *SelectionEstimator) SetCriterion(c Criterion) error {
	if c < 0 || int(c) >= len(criterionNames) {
		return newError(Configuration, selectionOp, "invalid criterion %v", c)
	}
	e.criterion = c
	return nil
}

// Candidates returns copies of the candidate estimators.
func (e *SelectionEstimator) Candidates() []Estimator {
	out := make([]Estimator, len(e.candidates))
	for i, c := range e.candidates {
		out[i] = c.Copy()
	}
	return out
}

func (e *SelectionEstimator) setters() map[string]setter {
	return map[string]setter{
		"criterion": func(v interface{}) error {
			if c, ok := v.(Criterion); ok {
				e.criterion = c
				return nil
			}
			s, err := asString(v)
			if err != nil {
				return err
			}
			e.criterion, err = ParseCriterion(s)
			return err
		},
	}
}

func (e *SelectionEstimator) Settings() []string { return settingNames(e.setters()) }

func (e *SelectionEstimator) Configure(opts Options) ([]Warning, error) {
	c := *e
	ws, err := configure(selectionOp, opts, c.setters())
	if err != nil {
		return ws, err
	}
	if err := c.SetCriterion(c.criterion); err != nil {
		return ws, err
	}
	*e = c
	return ws, nil
}

func (e *SelectionEstimator) Copy() Estimator {
	c := *e
	c.candidates = make([]Estimator, len(e.candidates))
	for i, cand := range e.candidates {
		c.candidates[i] = cand.Copy()
	}
	return &c
}

func (e *SelectionEstimator) Estimate(d *data.Univariate, lazy bool) (Estimation, error) {
	const op = "selection estimate"
	if err := checkOutcome(op, e.outcome, d); err != nil {
		return nil, err
	}
	res := &CriterionSelection{
		criterion:  e.criterion,
		candidates: make([]Estimation, len(e.candidates)),
		scores:     make([]float64, len(e.candidates)),
		selected:   -1,
	}
	n := d.Total()
	var errs []error
	for i, c := range e.candidates {
		res.scores[i] = math.Inf(1)
		est, err := c.Estimate(d, lazy)
		if err != nil {
			log.Debugf("%s: candidate %d: %v", op, i, err)
			errs = append(errs, err)
			continue
		}
		f := est.Estimated()
		res.candidates[i] = est
		res.scores[i] = e.criterion.Score(f.LogLikelihood(d), f.NumParameters(), n)
		if res.selected < 0 || res.scores[i] < res.scores[res.selected] {
			res.selected = i
		}
	}
	if res.selected < 0 {
		if len(errs) == 0 {
			return nil, newError(InsufficientData, op, "no candidates")
		}
		return nil, wrapError(InsufficientData, op, errors.Join(errs...), "every candidate failed")
	}
	res.estimated = res.candidates[res.selected].Estimated()
	if !lazy {
		res.data = d
	}
	return res, nil
}
