// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"fmt"
	"math"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/event"
)

// A Multivariate is a joint distribution of several variables.
type Multivariate interface {
	// Dims returns the number of variables.
	Dims() int

	// Marginal returns the distribution of variable i. It panics
	// if i is out of range.
	Marginal(i int) Univariate

	// NumParameters returns the number of free parameters.
	NumParameters() int

	// Probability returns the joint mass or density of the row of
	// events es.
	Probability(es []event.Event) float64

	// LogLikelihood returns the weighted log-likelihood of the
	// rows of m.
	LogLikelihood(m *data.Multivariate) float64

	multivariate()
}

// Independent is the product of independent univariate
// distributions. Its marginals are exactly its components.
type Independent struct {
	marginals []Univariate
}

// NewIndependent returns the product of marginals, in order. It
// panics if there are no marginals.
func NewIndependent(marginals ...Univariate) *Independent {
	if len(marginals) == 0 {
		panic("independent distribution of no variables")
	}
	return &Independent{append([]Univariate(nil), marginals...)}
}

func (*Independent) multivariate() {}

func (d *Independent) Dims() int { return len(d.marginals) }

func (d *Independent) Marginal(i int) Univariate { return d.marginals[i] }

// Marginals returns the components of d in order.
func (d *Independent) Marginals() []Univariate {
	return append([]Univariate(nil), d.marginals...)
}

// Outcomes returns the outcome of each component of d.
func (d *Independent) Outcomes() []event.Outcome {
	out := make([]event.Outcome, len(d.marginals))
	for i, m := range d.marginals {
		out[i] = m.Outcome()
	}
	return out
}

func (d *Independent) NumParameters() int {
	n := 0
	for _, m := range d.marginals {
		n += m.NumParameters()
	}
	return n
}

func (d *Independent) Probability(es []event.Event) float64 {
	if len(es) != len(d.marginals) {
		panic(fmt.Sprintf("%d events for %d variables", len(es), len(d.marginals)))
	}
	p := 1.0
	for i, e := range es {
		p *= d.marginals[i].Probability(e)
	}
	return p
}

// LogLikelihood returns the sum of the log-likelihoods of each
// variable of m under the matching component of d. Missing events
// contribute nothing.
func (d *Independent) LogLikelihood(m *data.Multivariate) float64 {
	if m.Dims() != len(d.marginals) {
		panic(fmt.Sprintf("%d variables for %d marginals", m.Dims(), len(d.marginals)))
	}
	ll := 0.0
	for i, marginal := range d.marginals {
		v, err := m.Variable(i)
		if err != nil {
			return math.NaN()
		}
		ll += marginal.LogLikelihood(v)
	}
	return ll
}
