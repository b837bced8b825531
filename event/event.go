// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package event describes observations of a single variable, possibly
// censored, and the sample spaces they are drawn from.
package event // import "github.com/aclements/go-statfit/event"

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Outcome classifies the value domain of a variable.
type Outcome int

const (
	// Categorical outcomes are labels with no arithmetic.
	Categorical Outcome = iota + 1

	// Discrete outcomes are integers.
	Discrete

	// Continuous outcomes are reals.
	Continuous

	// Mixed is not the outcome of any single variable. It names
	// multivariate data whose variables have differing outcomes.
	Mixed
)

func (o Outcome) String() string {
	switch o {
	case Categorical:
		return "categorical"
	case Discrete:
		return "discrete"
	case Continuous:
		return "continuous"
	case Mixed:
		return "mixed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Valid reports whether o is the outcome of a univariate variable.
func (o Outcome) Valid() bool {
	return o == Categorical || o == Discrete || o == Continuous
}

// ParseOutcome parses the name of an outcome as returned by String.
// Unique prefixes are accepted.
func ParseOutcome(s string) (Outcome, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s != "" {
		for _, o := range []Outcome{Categorical, Discrete, Continuous, Mixed} {
			if strings.HasPrefix(o.String(), s) {
				return o, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

// Censoring identifies how much is known about an observed value.
type Censoring int

const (
	missing Censoring = iota

	// Elementary events record an exact value.
	Elementary

	// LeftCensored events record that the value is <= Upper.
	LeftCensored

	// RightCensored events record that the value is >= Lower.
	RightCensored

	// IntervalCensored events record that the value is between
	// Lower and Upper. The interval is closed for discrete
	// outcomes and open for continuous outcomes.
	IntervalCensored

	// SetCensored events record that the value is one of a finite
	// set of candidates.
	SetCensored
)

func (c Censoring) String() string {
	switch c {
	case missing:
		return "missing"
	case Elementary:
		return "elementary"
	case LeftCensored:
		return "left-censored"
	case RightCensored:
		return "right-censored"
	case IntervalCensored:
		return "interval-censored"
	case SetCensored:
		return "set-censored"
	}
	return fmt.Sprintf("Censoring(%d)", int(c))
}

// An Event is an observation of one variable.
//
// The zero Event is the missing observation. Every other Event carries
// the outcome of the variable it was observed on, which never changes.
type Event struct {
	outcome   Outcome
	censoring Censoring

	// label is the value of an elementary categorical event.
	label string
	// x is the value of an elementary numeric event.
	x float64
	// lo and hi bound censored numeric events.
	lo, hi float64
	// labels and xs are the candidates of set-censored events,
	// sorted and without duplicates.
	labels []string
	xs     []float64
}

// Missing is the event recorded when no observation is available.
var Missing Event

// IsMissing reports whether e is the missing event.
func (e Event) IsMissing() bool {
	return e.censoring == missing
}

// Outcome returns the outcome of the variable e was observed on. It
// returns 0 for the missing event.
func (e Event) Outcome() Outcome {
	return e.outcome
}

// Censoring returns how e was censored.
func (e Event) Censoring() Censoring {
	return e.censoring
}

// Label returns the value of an elementary categorical event.
func (e Event) Label() string {
	e.must(Categorical, Elementary)
	return e.label
}

// Value returns the value of an elementary numeric event.
func (e Event) Value() float64 {
	if e.outcome == Categorical || e.censoring != Elementary {
		panic(fmt.Sprintf("Value of %v %v event", e.censoring, e.outcome))
	}
	return e.x
}

// Int returns the value of an elementary discrete event.
func (e Event) Int() int {
	e.must(Discrete, Elementary)
	return int(e.x)
}

// Lower returns the lower bound of a right- or interval-censored
// numeric event. It returns -Inf for left-censored events.
func (e Event) Lower() float64 {
	switch e.censoring {
	case LeftCensored:
		return math.Inf(-1)
	case RightCensored, IntervalCensored:
		return e.lo
	}
	panic(fmt.Sprintf("Lower of %v event", e.censoring))
}

// Upper returns the upper bound of a left- or interval-censored
// numeric event. It returns +Inf for right-censored events.
func (e Event) Upper() float64 {
	switch e.censoring {
	case RightCensored:
		return math.Inf(1)
	case LeftCensored, IntervalCensored:
		return e.hi
	}
	panic(fmt.Sprintf("Upper of %v event", e.censoring))
}

// Labels returns the candidates of a set-censored categorical event.
func (e Event) Labels() []string {
	e.must(Categorical, SetCensored)
	return append([]string(nil), e.labels...)
}

// Values returns the candidates of a set-censored numeric event in
// increasing order.
func (e Event) Values() []float64 {
	if e.outcome == Categorical || e.censoring != SetCensored {
		panic(fmt.Sprintf("Values of %v %v event", e.censoring, e.outcome))
	}
	return append([]float64(nil), e.xs...)
}

func (e Event) must(o Outcome, c Censoring) {
	if e.outcome != o || e.censoring != c {
		panic(fmt.Sprintf("want %v %v event, have %v %v", c, o, e.censoring, e.outcome))
	}
}

// Contains reports whether the numeric value x is compatible with e.
func (e Event) Contains(x float64) bool {
	if e.outcome == Categorical {
		return false
	}
	switch e.censoring {
	case Elementary:
		return e.x == x
	case LeftCensored:
		return x <= e.hi
	case RightCensored:
		return x >= e.lo
	case IntervalCensored:
		if e.outcome == Discrete {
			return e.lo <= x && x <= e.hi
		}
		return e.lo < x && x < e.hi
	case SetCensored:
		i := sort.SearchFloat64s(e.xs, x)
		return i < len(e.xs) && e.xs[i] == x
	}
	return false
}

// ContainsLabel reports whether the categorical value label is
// compatible with e.
func (e Event) ContainsLabel(label string) bool {
	if e.outcome != Categorical {
		return false
	}
	switch e.censoring {
	case Elementary:
		return e.label == label
	case SetCensored:
		i := sort.SearchStrings(e.labels, label)
		return i < len(e.labels) && e.labels[i] == label
	}
	return false
}

// Equal reports whether a and b are the same observation.
func Equal(a, b Event) bool {
	if a.outcome != b.outcome || a.censoring != b.censoring {
		return false
	}
	switch a.censoring {
	case missing:
		return true
	case Elementary:
		if a.outcome == Categorical {
			return a.label == b.label
		}
		return a.x == b.x
	case LeftCensored:
		return a.hi == b.hi
	case RightCensored:
		return a.lo == b.lo
	case IntervalCensored:
		return a.lo == b.lo && a.hi == b.hi
	case SetCensored:
		if a.outcome == Categorical {
			if len(a.labels) != len(b.labels) {
				return false
			}
			for i := range a.labels {
				if a.labels[i] != b.labels[i] {
					return false
				}
			}
			return true
		}
		if len(a.xs) != len(b.xs) {
			return false
		}
		for i := range a.xs {
			if a.xs[i] != b.xs[i] {
				return false
			}
		}
		return true
	}
	return false
}

func (e Event) String() string {
	switch e.censoring {
	case missing:
		return "?"
	case Elementary:
		if e.outcome == Categorical {
			return e.label
		}
		return formatFloat(e.x)
	case LeftCensored:
		return formatFloat(e.hi) + "-"
	case RightCensored:
		return formatFloat(e.lo) + "+"
	case IntervalCensored:
		if e.outcome == Discrete {
			return "[" + formatFloat(e.lo) + ", " + formatFloat(e.hi) + "]"
		}
		return "]" + formatFloat(e.lo) + ", " + formatFloat(e.hi) + "["
	case SetCensored:
		var parts []string
		if e.outcome == Categorical {
			parts = e.labels
		} else {
			for _, x := range e.xs {
				parts = append(parts, formatFloat(x))
			}
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("Event(%d)", int(e.censoring))
}
