// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// NewCategorical returns an elementary categorical event.
func NewCategorical(label string) Event {
	return Event{outcome: Categorical, censoring: Elementary, label: label}
}

// NewCategoricalSet returns a set-censored categorical event. It
// panics if labels is empty.
func NewCategoricalSet(labels ...string) Event {
	if len(labels) == 0 {
		panic("empty set-censored event")
	}
	ls := append([]string(nil), labels...)
	sort.Strings(ls)
	out := ls[:1]
	for _, l := range ls[1:] {
		if l != out[len(out)-1] {
			out = append(out, l)
		}
	}
	return Event{outcome: Categorical, censoring: SetCensored, labels: out}
}

// NewDiscrete returns an elementary discrete event.
func NewDiscrete(k int) Event {
	return Event{outcome: Discrete, censoring: Elementary, x: float64(k)}
}

// NewDiscreteLeft returns a discrete event whose value is <= upper.
func NewDiscreteLeft(upper int) Event {
	return Event{outcome: Discrete, censoring: LeftCensored, hi: float64(upper)}
}

// NewDiscreteRight returns a discrete event whose value is >= lower.
func NewDiscreteRight(lower int) Event {
	return Event{outcome: Discrete, censoring: RightCensored, lo: float64(lower)}
}

// NewDiscreteInterval returns a discrete event whose value is in the
// closed interval [lower, upper]. It panics if lower > upper.
func NewDiscreteInterval(lower, upper int) Event {
	if lower > upper {
		panic(fmt.Sprintf("interval [%d, %d] is empty", lower, upper))
	}
	return Event{outcome: Discrete, censoring: IntervalCensored, lo: float64(lower), hi: float64(upper)}
}

// NewDiscreteSet returns a set-censored discrete event. It panics if
// ks is empty.
func NewDiscreteSet(ks ...int) Event {
	xs := make([]float64, len(ks))
	for i, k := range ks {
		xs[i] = float64(k)
	}
	return newNumericSet(Discrete, xs)
}

// NewContinuous returns an elementary continuous event. It panics if
// x is NaN.
func NewContinuous(x float64) Event {
	if math.IsNaN(x) {
		panic("NaN continuous event")
	}
	return Event{outcome: Continuous, censoring: Elementary, x: x}
}

// NewContinuousLeft returns a continuous event whose value is <= upper.
func NewContinuousLeft(upper float64) Event {
	return Event{outcome: Continuous, censoring: LeftCensored, hi: upper}
}

// NewContinuousRight returns a continuous event whose value is >= lower.
func NewContinuousRight(lower float64) Event {
	return Event{outcome: Continuous, censoring: RightCensored, lo: lower}
}

// NewContinuousInterval returns a continuous event whose value is in
// the open interval (lower, upper). It panics unless lower < upper.
func NewContinuousInterval(lower, upper float64) Event {
	if !(lower < upper) {
		panic(fmt.Sprintf("interval ]%v, %v[ is empty", lower, upper))
	}
	return Event{outcome: Continuous, censoring: IntervalCensored, lo: lower, hi: upper}
}

// NewContinuousSet returns a set-censored continuous event. It panics
// if xs is empty.
func NewContinuousSet(xs ...float64) Event {
	return newNumericSet(Continuous, append([]float64(nil), xs...))
}

func newNumericSet(o Outcome, xs []float64) Event {
	if len(xs) == 0 {
		panic("empty set-censored event")
	}
	sort.Float64s(xs)
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return Event{outcome: o, censoring: SetCensored, xs: out}
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
