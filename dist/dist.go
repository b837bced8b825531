// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dist implements probability distributions over events.
//
// Every distribution is defined on events of a single outcome. The
// probability of a censored event is the probability of the region
// it covers; the probability of an elementary event is its mass (for
// categorical and discrete outcomes) or its density (for continuous
// outcomes).
package dist // import "github.com/aclements/go-statfit/dist"

import (
	"math"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/event"
)

// A Univariate is a distribution of one variable.
//
// The set of implementations is closed: every Univariate is one of the
// types defined in this package.
type Univariate interface {
	// Outcome returns the outcome of the events of this
	// distribution.
	Outcome() event.Outcome

	// NumParameters returns the number of free parameters of this
	// distribution.
	NumParameters() int

	// Probability returns the mass or density of an elementary
	// event e, or the probability of the region covered by a
	// censored event. The missing event has probability 1.
	Probability(e event.Event) float64

	// LogLikelihood returns the weighted log-likelihood of the
	// non-missing events of d.
	LogLikelihood(d *data.Univariate) float64

	univariate()
}

// A Numeric is a distribution of a discrete or continuous variable.
type Numeric interface {
	Univariate

	// PDF returns the mass (discrete) or density (continuous) of
	// this distribution at x.
	PDF(x float64) float64

	// CDF returns the probability of a value <= x.
	CDF(x float64) float64
}

// A Categorical is a distribution of a categorical variable.
type Categorical interface {
	Univariate

	// PMF returns the probability of label.
	PMF(label string) float64

	// Labels returns the labels with non-zero probability in
	// sorted order.
	Labels() []string
}

// numericProbability implements Probability for a numeric
// distribution.
func numericProbability(d Numeric, e event.Event) float64 {
	if e.IsMissing() {
		return 1
	}
	discrete := d.Outcome() == event.Discrete
	switch e.Censoring() {
	case event.Elementary:
		return d.PDF(e.Value())
	case event.LeftCensored:
		return d.CDF(e.Upper())
	case event.RightCensored:
		if discrete {
			return 1 - d.CDF(e.Lower()-1)
		}
		return 1 - d.CDF(e.Lower())
	case event.IntervalCensored:
		if discrete {
			return d.CDF(e.Upper()) - d.CDF(e.Lower()-1)
		}
		return d.CDF(e.Upper()) - d.CDF(e.Lower())
	case event.SetCensored:
		p := 0.0
		for _, x := range e.Values() {
			p += d.PDF(x)
		}
		return p
	}
	return 0
}

func categoricalProbability(d Categorical, e event.Event) float64 {
	if e.IsMissing() {
		return 1
	}
	switch e.Censoring() {
	case event.Elementary:
		return d.PMF(e.Label())
	case event.SetCensored:
		p := 0.0
		for _, l := range e.Labels() {
			p += d.PMF(l)
		}
		return p
	}
	return 0
}

// logLikelihood sums w log P(e) over the non-missing events of s.
func logLikelihood(d Univariate, s *data.Univariate) float64 {
	ll := 0.0
	for i := 0; i < s.Len(); i++ {
		e := s.Event(i)
		w := s.Weight(i)
		if e.IsMissing() || w == 0 {
			continue
		}
		ll += w * math.Log(d.Probability(e))
	}
	return ll
}
