// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package data holds weighted samples of events.
package data // import "github.com/aclements/go-statfit/data"

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/aclements/go-statfit/event"
)

// Univariate is a sample of one variable: a sequence of events drawn
// from a single sample space, each with a non-negative weight.
//
// Missing events are kept so that positions line up with the other
// variables of a Multivariate sample, but they never contribute to
// Total or to any estimate.
type Univariate struct {
	space  event.SampleSpace
	events []event.Event

	// weights is nil if every event has weight 1.
	weights []float64

	// view is set for samples that share storage with a
	// Multivariate sample. Views cannot be extended.
	view bool
}

// NewUnivariate returns a sample over space holding events, each with
// weight 1.
func NewUnivariate(space event.SampleSpace, events ...event.Event) *Univariate {
	d := &Univariate{space: space}
	for _, e := range events {
		d.Add(e)
	}
	return d
}

// Add appends e to d with weight 1.
func (d *Univariate) Add(e event.Event) {
	d.AddWeighted(e, 1)
}

// AddWeighted appends e to d with weight w.
//
// It panics if e is not missing and its outcome differs from the
// outcome of d's sample space, or if w is negative or NaN.
func (d *Univariate) AddWeighted(e event.Event, w float64) {
	if d.view {
		panic("Add to a variable of a multivariate sample")
	}
	if !e.IsMissing() && e.Outcome() != d.space.Outcome() {
		panic(fmt.Sprintf("%v event %v added to %v sample", e.Outcome(), e, d.space.Outcome()))
	}
	if !(w >= 0) {
		panic(fmt.Sprintf("invalid weight %v", w))
	}
	if w != 1 && d.weights == nil {
		d.weights = make([]float64, len(d.events), len(d.events)+1)
		for i := range d.weights {
			d.weights[i] = 1
		}
	}
	d.events = append(d.events, e)
	if d.weights != nil {
		d.weights = append(d.weights, w)
	}
}

// Space returns the sample space of d.
func (d *Univariate) Space() event.SampleSpace {
	return d.space
}

// Outcome returns the outcome of d's sample space.
func (d *Univariate) Outcome() event.Outcome {
	return d.space.Outcome()
}

// Len returns the number of events in d, including missing events.
func (d *Univariate) Len() int {
	return len(d.events)
}

// Event returns the i'th event of d.
func (d *Univariate) Event(i int) event.Event {
	return d.events[i]
}

// Weight returns the weight of the i'th event of d.
func (d *Univariate) Weight(i int) float64 {
	if d.weights == nil {
		return 1
	}
	return d.weights[i]
}

// Weighted reports whether any event of d has a weight other than 1.
func (d *Univariate) Weighted() bool {
	return d.weights != nil
}

// Total returns the total weight of the non-missing events of d.
func (d *Univariate) Total() float64 {
	total := 0.0
	for i, e := range d.events {
		if !e.IsMissing() {
			total += d.Weight(i)
		}
	}
	return total
}

// Missing returns the number of missing events in d.
func (d *Univariate) Missing() int {
	n := 0
	for _, e := range d.events {
		if e.IsMissing() {
			n++
		}
	}
	return n
}

// Censored returns the number of censored events in d.
func (d *Univariate) Censored() int {
	n := 0
	for _, e := range d.events {
		if !e.IsMissing() && e.Censoring() != event.Elementary {
			n++
		}
	}
	return n
}

// Elementary returns the values and weights of the elementary events
// of a numeric sample, in the order they appear in d. Events with
// weight 0 are skipped.
func (d *Univariate) Elementary() (xs, ws []float64) {
	if d.Outcome() == event.Categorical {
		panic("Elementary of categorical sample")
	}
	for i, e := range d.events {
		if e.Censoring() != event.Elementary || d.Weight(i) == 0 {
			continue
		}
		xs = append(xs, e.Value())
		ws = append(ws, d.Weight(i))
	}
	return
}

// Labels returns the distinct labels of the elementary events of a
// categorical sample in sorted order, along with the total weight of
// each label.
func (d *Univariate) Labels() (labels []string, ws []float64) {
	if d.Outcome() != event.Categorical {
		panic("Labels of numeric sample")
	}
	total := make(map[string]float64)
	for i, e := range d.events {
		if e.Censoring() != event.Elementary || d.Weight(i) == 0 {
			continue
		}
		total[e.Label()] += d.Weight(i)
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

// Bounds returns the smallest and largest elementary values of a
// numeric sample. If d has no elementary values, it returns NaN, NaN.
func (d *Univariate) Bounds() (lo, hi float64) {
	xs, _ := d.Elementary()
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(xs), floats.Max(xs)
}

// Distinct returns the number of distinct elementary values of d.
func (d *Univariate) Distinct() int {
	if d.Outcome() == event.Categorical {
		labels, _ := d.Labels()
		return len(labels)
	}
	xs, _ := d.Elementary()
	seen := make(map[float64]bool, len(xs))
	for _, x := range xs {
		seen[x] = true
	}
	return len(seen)
}
