// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/event"
)

// CategoricalFrequency is an empirical distribution over labels.
type CategoricalFrequency struct {
	labels []string
	probs  []float64
}

// NewCategoricalFrequency returns the distribution giving each label
// a probability proportional to its weight. Labels with zero weight
// are dropped. It panics if the lengths differ, a label repeats, or
// the total weight is not positive.
func NewCategoricalFrequency(labels []string, weights []float64) *CategoricalFrequency {
	if len(labels) != len(weights) {
		panic("len(labels) != len(weights)")
	}
	idx := make([]int, 0, len(labels))
	for i := range labels {
		if weights[i] > 0 {
			idx = append(idx, i)
		}
	}
	sort.Slice(idx, func(a, b int) bool { return labels[idx[a]] < labels[idx[b]] })
	total := floats.Sum(weights)
	if !(total > 0) {
		panic(fmt.Sprintf("total weight %v", total))
	}
	d := &CategoricalFrequency{}
	for _, i := range idx {
		if n := len(d.labels); n > 0 && d.labels[n-1] == labels[i] {
			panic(fmt.Sprintf("duplicate label %q", labels[i]))
		}
		d.labels = append(d.labels, labels[i])
		d.probs = append(d.probs, weights[i]/total)
	}
	return d
}

func (*CategoricalFrequency) univariate() {}

func (*CategoricalFrequency) Outcome() event.Outcome { return event.Categorical }

func (d *CategoricalFrequency) NumParameters() int { return len(d.labels) - 1 }

func (d *CategoricalFrequency) PMF(label string) float64 {
	i := sort.SearchStrings(d.labels, label)
	if i < len(d.labels) && d.labels[i] == label {
		return d.probs[i]
	}
	return 0
}

func (d *CategoricalFrequency) Labels() []string {
	return append([]string(nil), d.labels...)
}

func (d *CategoricalFrequency) Probability(e event.Event) float64 {
	return categoricalProbability(d, e)
}

func (d *CategoricalFrequency) LogLikelihood(s *data.Univariate) float64 {
	return logLikelihood(d, s)
}

// frequency is an empirical distribution over numbers, shared by the
// discrete and continuous frequency distributions.
type frequency struct {
	xs, probs []float64
	cum       []float64 // cum[i] is the sum of probs[:i+1]
}

func newFrequency(xs, weights []float64) frequency {
	if len(xs) != len(weights) {
		panic("len(xs) != len(weights)")
	}
	total := floats.Sum(weights)
	if !(total > 0) {
		panic(fmt.Sprintf("total weight %v", total))
	}
	sum := make(map[float64]float64)
	for i, x := range xs {
		if weights[i] > 0 {
			sum[x] += weights[i]
		}
	}
	var f frequency
	for x := range sum {
		f.xs = append(f.xs, x)
	}
	sort.Float64s(f.xs)
	f.probs = make([]float64, len(f.xs))
	for i, x := range f.xs {
		f.probs[i] = sum[x] / total
	}
	f.cum = make([]float64, len(f.probs))
	floats.CumSum(f.cum, f.probs)
	return f
}

func (f *frequency) NumParameters() int { return len(f.xs) - 1 }

// PDF returns the observed relative frequency of x.
func (f *frequency) PDF(x float64) float64 {
	i := sort.SearchFloat64s(f.xs, x)
	if i < len(f.xs) && f.xs[i] == x {
		return f.probs[i]
	}
	return 0
}

func (f *frequency) CDF(x float64) float64 {
	// Number of xs <= x.
	i := sort.Search(len(f.xs), func(i int) bool { return f.xs[i] > x })
	if i == 0 {
		return 0
	}
	return f.cum[i-1]
}

// Values returns the observed values in increasing order.
func (f *frequency) Values() []float64 {
	return append([]float64(nil), f.xs...)
}

// DiscreteFrequency is an empirical distribution over integers.
type DiscreteFrequency struct {
	frequency
}

// NewDiscreteFrequency returns the distribution giving each integer
// of ks a probability proportional to its total weight.
func NewDiscreteFrequency(ks []int, weights []float64) *DiscreteFrequency {
	xs := make([]float64, len(ks))
	for i, k := range ks {
		xs[i] = float64(k)
	}
	return &DiscreteFrequency{newFrequency(xs, weights)}
}

func (*DiscreteFrequency) univariate() {}

func (*DiscreteFrequency) Outcome() event.Outcome { return event.Discrete }

func (d *DiscreteFrequency) Probability(e event.Event) float64 {
	return numericProbability(d, e)
}

func (d *DiscreteFrequency) LogLikelihood(s *data.Univariate) float64 {
	return logLikelihood(d, s)
}

// ContinuousFrequency is an empirical distribution over reals. Each
// observed value is an atom: PDF returns its relative frequency.
type ContinuousFrequency struct {
	frequency
}

// NewContinuousFrequency returns the distribution giving each value
// of xs a probability proportional to its total weight.
func NewContinuousFrequency(xs, weights []float64) *ContinuousFrequency {
	return &ContinuousFrequency{newFrequency(xs, weights)}
}

func (*ContinuousFrequency) univariate() {}

func (*ContinuousFrequency) Outcome() event.Outcome { return event.Continuous }

func (d *ContinuousFrequency) Probability(e event.Event) float64 {
	return numericProbability(d, e)
}

func (d *ContinuousFrequency) LogLikelihood(s *data.Univariate) float64 {
	return logLikelihood(d, s)
}
