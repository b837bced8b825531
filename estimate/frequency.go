// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/dist"
	"github.com/aclements/go-statfit/event"
)

// CensoringPolicy determines how frequency estimators count censored
// events.
type CensoringPolicy int

const (
	// Exclude ignores censored events.
	Exclude CensoringPolicy = iota

	// Redistribute spreads the weight of a censored event
	// uniformly over its candidate values. The candidates of a
	// set-censored event are its values; those of a discrete
	// interval are the integers it contains; those of any other
	// censored event are the distinct elementary values of the
	// sample that it contains. An event with no candidates is
	// dropped.
	Redistribute
)

func (p CensoringPolicy) String() string {
	switch p {
	case Exclude:
		return "exclude"
	case Redistribute:
		return "redistribute"
	}
	return fmt.Sprintf("CensoringPolicy(%d)", int(p))
}

// ParseCensoringPolicy parses the name of a policy as returned by
// String.
func ParseCensoringPolicy(s string) (CensoringPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exclude":
		return Exclude, nil
	case "redistribute":
		return Redistribute, nil
	}
	return 0, fmt.Errorf("unknown censoring policy %q", s)
}

// maxIntervalCandidates bounds the number of integers a discrete
// interval is spread over. Wider intervals use the observed values.
const maxIntervalCandidates = 1 << 16

// FrequencyEstimator builds the empirical distribution of a sample:
// each value has probability proportional to its total weight.
type FrequencyEstimator struct {
	outcome   event.Outcome
	censoring CensoringPolicy
}

// NewFrequencyEstimator returns a frequency estimator for samples of
// outcome o, which must be categorical, discrete or continuous.
func NewFrequencyEstimator(o event.Outcome) (*FrequencyEstimator, error) {
	if !o.Valid() {
		return nil, newError(TypeMismatch, "frequency estimator", "invalid outcome %v", o)
	}
	return &FrequencyEstimator{outcome: o}, nil
}

func (e *FrequencyEstimator) Outcome() event.Outcome { return e.outcome }

// Censoring returns the censoring policy of e.
func (e *FrequencyEstimator) Censoring() CensoringPolicy { return e.censoring }

// SetCensoring sets the censoring policy of e.
func (e *FrequencyEstimator) SetCensoring(p CensoringPolicy) error {
	if p != Exclude && p != Redistribute {
		return newError(Configuration, "frequency estimator", "invalid censoring policy %v", p)
	}
	e.censoring = p
	return nil
}

func (e *FrequencyEstimator) setters() map[string]setter {
	return map[string]setter{
		"censoring": func(v interface{}) error {
			if p, ok := v.(CensoringPolicy); ok {
				e.censoring = p
				return nil
			}
			s, err := asString(v)
			if err != nil {
				return err
			}
			e.censoring, err = ParseCensoringPolicy(s)
			return err
		},
	}
}

func (e *FrequencyEstimator) Settings() []string {
	return settingNames(e.setters())
}

func (e *FrequencyEstimator) Configure(opts Options) ([]Warning, error) {
	c := *e
	ws, err := configure("frequency estimator", opts, c.setters())
	if err != nil {
		return ws, err
	}
	if err := c.SetCensoring(c.censoring); err != nil {
		return ws, err
	}
	*e = c
	return ws, nil
}

func (e *FrequencyEstimator) Copy() Estimator {
	c := *e
	return &c
}

func (e *FrequencyEstimator) Estimate(d *data.Univariate, lazy bool) (Estimation, error) {
	const op = "frequency estimate"
	if err := checkOutcome(op, e.outcome, d); err != nil {
		return nil, err
	}
	var f dist.Univariate
	var dropped int
	if e.outcome == event.Categorical {
		labels, ws, n := e.resolveLabels(d)
		if len(labels) == 0 {
			return nil, newError(InsufficientData, op, "no usable observations among %d events", d.Len())
		}
		f, dropped = dist.NewCategoricalFrequency(labels, ws), n
	} else {
		xs, ws, n := e.resolveValues(d)
		if len(xs) == 0 {
			return nil, newError(InsufficientData, op, "no usable observations among %d events", d.Len())
		}
		if e.outcome == event.Discrete {
			ks := make([]int, len(xs))
			for i, x := range xs {
				ks[i] = int(x)
			}
			f = dist.NewDiscreteFrequency(ks, ws)
		} else {
			f = dist.NewContinuousFrequency(xs, ws)
		}
		dropped = n
	}
	if dropped > 0 {
		log.Debugf("%s: %d censored events not counted (policy %v)", op, dropped, e.censoring)
	}
	return newEstimation(f, d, lazy), nil
}

// resolveLabels returns the weighted labels of d after censoring
// resolution and the number of dropped censored events.
func (e *FrequencyEstimator) resolveLabels(d *data.Univariate) (labels []string, ws []float64, dropped int) {
	total := make(map[string]float64)
	for i := 0; i < d.Len(); i++ {
		ev, w := d.Event(i), d.Weight(i)
		switch {
		case ev.IsMissing() || w == 0:
		case ev.Censoring() == event.Elementary:
			total[ev.Label()] += w
		case e.censoring == Redistribute:
			cands := ev.Labels()
			for _, l := range cands {
				total[l] += w / float64(len(cands))
			}
		default:
			dropped++
		}
	}
	for l := range total {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		ws = append(ws, total[l])
	}
	return
}

// resolveValues is resolveLabels for numeric samples.
func (e *FrequencyEstimator) resolveValues(d *data.Univariate) (xs, ws []float64, dropped int) {
	xs, ws = d.Elementary()
	if e.censoring == Exclude {
		return xs, ws, d.Censored()
	}

	var observed []float64
	seen := make(map[float64]bool)
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			observed = append(observed, x)
		}
	}
	sort.Float64s(observed)

	for i := 0; i < d.Len(); i++ {
		ev, w := d.Event(i), d.Weight(i)
		if ev.IsMissing() || w == 0 || ev.Censoring() == event.Elementary {
			continue
		}
		cands := candidates(ev, observed)
		if len(cands) == 0 {
			dropped++
			continue
		}
		for _, x := range cands {
			xs = append(xs, x)
			ws = append(ws, w/float64(len(cands)))
		}
	}
	return xs, ws, dropped
}

// candidates returns the values a censored numeric event is spread
// over by the Redistribute policy.
func candidates(ev event.Event, observed []float64) []float64 {
	switch ev.Censoring() {
	case event.SetCensored:
		return ev.Values()
	case event.IntervalCensored:
		lo, hi := ev.Lower(), ev.Upper()
		if ev.Outcome() == event.Discrete && hi-lo < maxIntervalCandidates {
			var out []float64
			for k := lo; k <= hi; k++ {
				out = append(out, k)
			}
			return out
		}
	}
	var out []float64
	for _, x := range observed {
		if ev.Contains(x) {
			out = append(out, x)
		}
	}
	return out
}
