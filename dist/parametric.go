// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/event"
)

// Normal is a normal distribution with mean Mu and standard
// deviation Sigma > 0.
type Normal struct {
	Mu, Sigma float64
}

func (Normal) univariate() {}

func (Normal) Outcome() event.Outcome { return event.Continuous }

func (Normal) NumParameters() int { return 2 }

func (d Normal) law() distuv.Normal {
	return distuv.Normal{Mu: d.Mu, Sigma: d.Sigma}
}

func (d Normal) PDF(x float64) float64 { return d.law().Prob(x) }

func (d Normal) CDF(x float64) float64 { return d.law().CDF(x) }

// Quantile returns the value x such that CDF(x) = p.
func (d Normal) Quantile(p float64) float64 { return d.law().Quantile(p) }

func (d Normal) Mean() float64 { return d.Mu }

func (d Normal) Variance() float64 { return d.Sigma * d.Sigma }

func (d Normal) Probability(e event.Event) float64 {
	return numericProbability(d, e)
}

func (d Normal) LogLikelihood(s *data.Univariate) float64 {
	return logLikelihood(d, s)
}

// Poisson is a Poisson distribution with rate Lambda > 0.
type Poisson struct {
	Lambda float64
}

func (Poisson) univariate() {}

func (Poisson) Outcome() event.Outcome { return event.Discrete }

func (Poisson) NumParameters() int { return 1 }

func (d Poisson) law() distuv.Poisson {
	return distuv.Poisson{Lambda: d.Lambda}
}

// PDF is the probability of exactly int(k) events.
func (d Poisson) PDF(k float64) float64 {
	if k != math.Floor(k) {
		return 0
	}
	return d.law().Prob(k)
}

func (d Poisson) CDF(k float64) float64 {
	if k < 0 {
		return 0
	}
	return d.law().CDF(math.Floor(k))
}

func (d Poisson) Mean() float64 { return d.Lambda }

func (d Poisson) Variance() float64 { return d.Lambda }

func (d Poisson) Probability(e event.Event) float64 {
	return numericProbability(d, e)
}

func (d Poisson) LogLikelihood(s *data.Univariate) float64 {
	return logLikelihood(d, s)
}
