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

// Histogram is a piecewise constant density over a sequence of
// adjacent bins. Bin i is [edges[i], edges[i+1]); the last bin also
// contains its upper edge.
type Histogram struct {
	edges     []float64
	densities []float64
}

// NewHistogram returns the histogram with the given bin edges whose
// bins carry probability proportional to weights. It panics unless
// len(edges) == len(weights)+1, the edges strictly increase, and the
// total weight is positive.
func NewHistogram(edges, weights []float64) *Histogram {
	if len(edges) != len(weights)+1 || len(weights) == 0 {
		panic(fmt.Sprintf("%d edges for %d bins", len(edges), len(weights)))
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i-1] < edges[i]) {
			panic("histogram edges must strictly increase")
		}
	}
	total := floats.Sum(weights)
	if !(total > 0) {
		panic(fmt.Sprintf("total weight %v", total))
	}
	h := &Histogram{
		edges:     append([]float64(nil), edges...),
		densities: make([]float64, len(weights)),
	}
	for i, w := range weights {
		h.densities[i] = w / (total * (edges[i+1] - edges[i]))
	}
	return h
}

func (*Histogram) univariate() {}

func (*Histogram) Outcome() event.Outcome { return event.Continuous }

// NumParameters returns one less than the number of bins of h, since
// the bin probabilities sum to 1.
func (h *Histogram) NumParameters() int { return len(h.densities) - 1 }

// Bins returns the number of bins of h.
func (h *Histogram) Bins() int { return len(h.densities) }

// Edges returns the bin edges of h.
func (h *Histogram) Edges() []float64 {
	return append([]float64(nil), h.edges...)
}

// Densities returns the density of each bin of h.
func (h *Histogram) Densities() []float64 {
	return append([]float64(nil), h.densities...)
}

// bin returns the index of the bin containing x, or -1.
func (h *Histogram) bin(x float64) int {
	n := len(h.densities)
	if x < h.edges[0] || x > h.edges[n] {
		return -1
	}
	if x == h.edges[n] {
		return n - 1
	}
	return sort.Search(n, func(i int) bool { return h.edges[i+1] > x })
}

func (h *Histogram) PDF(x float64) float64 {
	if i := h.bin(x); i >= 0 {
		return h.densities[i]
	}
	return 0
}

func (h *Histogram) CDF(x float64) float64 {
	n := len(h.densities)
	if x < h.edges[0] {
		return 0
	} else if x >= h.edges[n] {
		return 1
	}
	i := h.bin(x)
	p := 0.0
	for j := 0; j < i; j++ {
		p += h.densities[j] * (h.edges[j+1] - h.edges[j])
	}
	return p + h.densities[i]*(x-h.edges[i])
}

func (h *Histogram) Probability(e event.Event) float64 {
	return numericProbability(h, e)
}

func (h *Histogram) LogLikelihood(s *data.Univariate) float64 {
	return logLikelihood(h, s)
}
