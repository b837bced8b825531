// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/event"
)

// Binomial is a binomial distribution.
type Binomial struct {
	// N is the number of independent Bernoulli trials. N >= 0.
	//
	// If N=1, this is equivalent to the Bernoulli distribution.
	N int

	// P is the probability of success in each trial. 0 <= P <= 1.
	P float64
}

func (Binomial) univariate() {}

func (Binomial) Outcome() event.Outcome { return event.Discrete }

func (Binomial) NumParameters() int { return 2 }

// PDF is the probability of getting exactly k successes in d.N
// independent Bernoulli trials with probability d.P. It is 0 if k is
// not an integer.
func (d Binomial) PDF(k float64) float64 {
	if k != math.Floor(k) || k < 0 || k > float64(d.N) {
		return 0
	}
	return math.Exp(d.logPMF(k))
}

func (d Binomial) logPMF(k float64) float64 {
	n := float64(d.N)
	switch d.P {
	case 0:
		if k == 0 {
			return 0
		}
		return math.Inf(-1)
	case 1:
		if k == n {
			return 0
		}
		return math.Inf(-1)
	}
	return combin.LogGeneralizedBinomial(n, k) + k*math.Log(d.P) + (n-k)*math.Log1p(-d.P)
}

// CDF is the probability of getting k or fewer successes in d.N
// independent Bernoulli trials with probability d.P.
func (d Binomial) CDF(k float64) float64 {
	k = math.Floor(k)
	if k < 0 {
		return 0
	} else if k >= float64(d.N) {
		return 1
	}
	switch d.P {
	case 0:
		return 1
	case 1:
		return 0
	}
	return mathext.RegIncBeta(float64(d.N)-k, k+1, 1-d.P)
}

func (d Binomial) Bounds() (float64, float64) {
	return 0, float64(d.N)
}

func (d Binomial) Mean() float64 {
	return float64(d.N) * d.P
}

func (d Binomial) Variance() float64 {
	return float64(d.N) * d.P * (1 - d.P)
}

// NormalApprox returns a normal distribution approximation of
// binomial distribution d.
//
// Because the binomial distribution is discrete and the normal
// distribution is continuous, the caller must apply a continuity
// correction when using this approximation. Specifically, if b is the
// binomial distribution and n is the normal approximation, operations
// map as follows:
//
//	b.PDF(k) => n.CDF(k+0.5) - n.CDF(k-0.5)
//	b.CDF(k) => n.CDF(k+0.5)
func (d Binomial) NormalApprox() Normal {
	return Normal{Mu: d.Mean(), Sigma: math.Sqrt(d.Variance())}
}

func (d Binomial) Probability(e event.Event) float64 {
	return numericProbability(d, e)
}

func (d Binomial) LogLikelihood(s *data.Univariate) float64 {
	return logLikelihood(d, s)
}

// NegativeBinomial is the distribution of the number of failures
// before Kappa successes, where each failure has probability Pi.
// Kappa > 0 need not be an integer; 0 < Pi < 1.
type NegativeBinomial struct {
	Kappa, Pi float64
}

func (NegativeBinomial) univariate() {}

func (NegativeBinomial) Outcome() event.Outcome { return event.Discrete }

func (NegativeBinomial) NumParameters() int { return 2 }

func (d NegativeBinomial) PDF(k float64) float64 {
	if k != math.Floor(k) || k < 0 {
		return 0
	}
	return math.Exp(d.logPMF(k))
}

func (d NegativeBinomial) logPMF(k float64) float64 {
	a, _ := math.Lgamma(k + d.Kappa)
	b, _ := math.Lgamma(d.Kappa)
	c, _ := math.Lgamma(k + 1)
	return a - b - c + k*math.Log(d.Pi) + d.Kappa*math.Log1p(-d.Pi)
}

func (d NegativeBinomial) CDF(k float64) float64 {
	k = math.Floor(k)
	if k < 0 {
		return 0
	}
	return mathext.RegIncBeta(d.Kappa, k+1, 1-d.Pi)
}

func (d NegativeBinomial) Mean() float64 {
	return d.Kappa * d.Pi / (1 - d.Pi)
}

func (d NegativeBinomial) Variance() float64 {
	return d.Mean() / (1 - d.Pi)
}

func (d NegativeBinomial) Probability(e event.Event) float64 {
	return numericProbability(d, e)
}

func (d NegativeBinomial) LogLikelihood(s *data.Univariate) float64 {
	return logLikelihood(d, s)
}
