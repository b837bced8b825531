// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// A SampleSpace is the set of values a variable may take.
//
// Every Event returned by Parse has the SampleSpace's outcome.
type SampleSpace interface {
	// Outcome returns the outcome of variables on this space.
	Outcome() Outcome

	// Parse converts the raw textual value s into an elementary
	// event. Surrounding white space is ignored.
	Parse(s string) (Event, error)

	// Contains reports whether e is a non-missing event whose
	// values all lie in this space.
	Contains(e Event) bool
}

// Nominal is a categorical sample space of unordered labels.
type Nominal struct {
	labels []string
}

// NewNominal returns a nominal sample space over labels. Duplicate
// labels are ignored.
func NewNominal(labels ...string) *Nominal {
	return &Nominal{labels: NewCategoricalSet(labels...).labels}
}

// Labels returns the labels of s in sorted order.
func (s *Nominal) Labels() []string {
	return append([]string(nil), s.labels...)
}

func (s *Nominal) Outcome() Outcome { return Categorical }

func (s *Nominal) Parse(raw string) (Event, error) {
	label := strings.TrimSpace(raw)
	if !s.has(label) {
		return Missing, fmt.Errorf("%q is not in nominal space %v", label, s.labels)
	}
	return NewCategorical(label), nil
}

func (s *Nominal) has(label string) bool {
	i := sort.SearchStrings(s.labels, label)
	return i < len(s.labels) && s.labels[i] == label
}

func (s *Nominal) Contains(e Event) bool {
	if e.outcome != Categorical {
		return false
	}
	switch e.censoring {
	case Elementary:
		return s.has(e.label)
	case SetCensored:
		for _, l := range e.labels {
			if !s.has(l) {
				return false
			}
		}
		return true
	}
	return false
}

// Ordinal is a categorical sample space of labels with a total order.
type Ordinal struct {
	Nominal
	order []string
}

// NewOrdinal returns an ordinal sample space whose labels are ordered
// as given. It panics if a label is repeated.
func NewOrdinal(labels ...string) *Ordinal {
	s := &Ordinal{Nominal: *NewNominal(labels...), order: append([]string(nil), labels...)}
	if len(s.labels) != len(labels) {
		panic("duplicate ordinal label")
	}
	return s
}

// Order returns the labels of s in increasing order.
func (s *Ordinal) Order() []string {
	return append([]string(nil), s.order...)
}

// Rank returns the position of label in the order of s, or -1.
func (s *Ordinal) Rank(label string) int {
	for i, l := range s.order {
		if l == label {
			return i
		}
	}
	return -1
}

// Integers is a discrete sample space of the integers in a closed
// interval.
type Integers struct {
	lower, upper int
}

var (
	// ZZ is the set of all integers.
	ZZ = NewIntegers(math.MinInt, math.MaxInt)

	// NN is the set of natural numbers, including 0.
	NN = NewIntegers(0, math.MaxInt)
)

// NewIntegers returns the discrete sample space [lower, upper].
func NewIntegers(lower, upper int) Integers {
	if lower > upper {
		panic(fmt.Sprintf("empty integer space [%d, %d]", lower, upper))
	}
	return Integers{lower, upper}
}

// Bounds returns the smallest and largest integers of s.
func (s Integers) Bounds() (int, int) {
	return s.lower, s.upper
}

func (s Integers) Outcome() Outcome { return Discrete }

func (s Integers) Parse(raw string) (Event, error) {
	k, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Missing, err
	}
	if !s.in(float64(k)) {
		return Missing, fmt.Errorf("%d is outside [%d, %d]", k, s.lower, s.upper)
	}
	return NewDiscrete(k), nil
}

func (s Integers) in(x float64) bool {
	return float64(s.lower) <= x && x <= float64(s.upper)
}

func (s Integers) Contains(e Event) bool {
	if e.outcome != Discrete {
		return false
	}
	return numericContains(e, s.in)
}

// Reals is a continuous sample space of the reals in a closed
// interval, possibly unbounded.
type Reals struct {
	lower, upper float64
}

var (
	// RR is the set of all reals.
	RR = NewReals(math.Inf(-1), math.Inf(1))

	// PR is the set of non-negative reals.
	PR = NewReals(0, math.Inf(1))
)

// NewReals returns the continuous sample space [lower, upper].
func NewReals(lower, upper float64) Reals {
	if !(lower < upper) {
		panic(fmt.Sprintf("empty real space [%v, %v]", lower, upper))
	}
	return Reals{lower, upper}
}

// Bounds returns the infimum and supremum of s.
func (s Reals) Bounds() (float64, float64) {
	return s.lower, s.upper
}

func (s Reals) Outcome() Outcome { return Continuous }

func (s Reals) Parse(raw string) (Event, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Missing, err
	}
	if math.IsNaN(x) || !s.in(x) {
		return Missing, fmt.Errorf("%v is outside [%v, %v]", x, s.lower, s.upper)
	}
	return NewContinuous(x), nil
}

func (s Reals) in(x float64) bool {
	return s.lower <= x && x <= s.upper
}

func (s Reals) Contains(e Event) bool {
	if e.outcome != Continuous {
		return false
	}
	return numericContains(e, s.in)
}

func numericContains(e Event, in func(float64) bool) bool {
	switch e.censoring {
	case Elementary:
		return in(e.x)
	case LeftCensored:
		return in(e.hi)
	case RightCensored:
		return in(e.lo)
	case IntervalCensored:
		return in(e.lo) && in(e.hi)
	case SetCensored:
		for _, x := range e.xs {
			if !in(x) {
				return false
			}
		}
		return true
	}
	return false
}
