// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package event

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissing(t *testing.T) {
	var e Event
	assert.True(t, e.IsMissing())
	assert.True(t, Missing.IsMissing())
	assert.Equal(t, Outcome(0), e.Outcome())
	assert.False(t, NewDiscrete(0).IsMissing())
	assert.True(t, Equal(e, Missing))
	assert.Equal(t, "?", e.String())
}

func TestOutcomeFixed(t *testing.T) {
	for _, tc := range []struct {
		e    Event
		want Outcome
	}{
		{NewCategorical("a"), Categorical},
		{NewCategoricalSet("a", "b"), Categorical},
		{NewDiscrete(3), Discrete},
		{NewDiscreteLeft(3), Discrete},
		{NewDiscreteRight(3), Discrete},
		{NewDiscreteInterval(1, 3), Discrete},
		{NewDiscreteSet(1, 3), Discrete},
		{NewContinuous(1.5), Continuous},
		{NewContinuousLeft(1.5), Continuous},
		{NewContinuousRight(1.5), Continuous},
		{NewContinuousInterval(1, 1.5), Continuous},
		{NewContinuousSet(1.5, 2), Continuous},
	} {
		assert.Equal(t, tc.want, tc.e.Outcome(), "%v", tc.e)
	}
}

func TestContains(t *testing.T) {
	checks := map[string]struct {
		e     Event
		in    []float64
		notIn []float64
	}{
		"elementary":          {NewDiscrete(2), []float64{2}, []float64{1, 3}},
		"left":                {NewDiscreteLeft(5), []float64{-10, 5}, []float64{6}},
		"right":               {NewContinuousRight(3), []float64{3, 100}, []float64{2.99}},
		"discrete interval":   {NewDiscreteInterval(2, 4), []float64{2, 3, 4}, []float64{1, 5}},
		"continuous interval": {NewContinuousInterval(2, 4), []float64{2.5, 3.9}, []float64{2, 4}},
		"set":                 {NewDiscreteSet(4, 1, 4), []float64{1, 4}, []float64{2}},
	}
	for name, c := range checks {
		for _, x := range c.in {
			assert.True(t, c.e.Contains(x), "%s: %v should contain %v", name, c.e, x)
		}
		for _, x := range c.notIn {
			assert.False(t, c.e.Contains(x), "%s: %v should not contain %v", name, c.e, x)
		}
	}

	set := NewCategoricalSet("b", "a", "b")
	assert.Equal(t, []string{"a", "b"}, set.Labels())
	assert.True(t, set.ContainsLabel("a"))
	assert.False(t, set.ContainsLabel("c"))
	assert.False(t, NewCategorical("a").Contains(0))
}

func TestBounds(t *testing.T) {
	assert.True(t, math.IsInf(NewDiscreteLeft(4).Lower(), -1))
	assert.Equal(t, 4.0, NewDiscreteLeft(4).Upper())
	assert.True(t, math.IsInf(NewContinuousRight(1).Upper(), 1))
	assert.Panics(t, func() { NewDiscrete(1).Lower() })
	assert.Panics(t, func() { NewDiscreteInterval(3, 2) })
	assert.Panics(t, func() { NewContinuousInterval(2, 2) })
	assert.Panics(t, func() { NewCategoricalSet() })
	assert.NotPanics(t, func() { NewDiscreteInterval(2, 2) })
}

func TestString(t *testing.T) {
	assert.Equal(t, "5-", NewDiscreteLeft(5).String())
	assert.Equal(t, "3+", NewDiscreteRight(3).String())
	assert.Equal(t, "[2, 4]", NewDiscreteInterval(2, 4).String())
	assert.Equal(t, "]2.5, 4[", NewContinuousInterval(2.5, 4).String())
	assert.Equal(t, "{a, b}", NewCategoricalSet("b", "a").String())
	assert.Equal(t, "0.25", NewContinuous(0.25).String())
}

func TestParseOutcome(t *testing.T) {
	o, err := ParseOutcome("cont")
	require.NoError(t, err)
	assert.Equal(t, Continuous, o)
	o, err = ParseOutcome("Categorical")
	require.NoError(t, err)
	assert.Equal(t, Categorical, o)
	_, err = ParseOutcome("")
	assert.Error(t, err)
	_, err = ParseOutcome("nope")
	assert.Error(t, err)
	assert.False(t, Mixed.Valid())
}

func TestSampleSpaces(t *testing.T) {
	nom := NewNominal("red", "green", "red")
	assert.Equal(t, []string{"green", "red"}, nom.Labels())
	e, err := nom.Parse(" red ")
	require.NoError(t, err)
	assert.Equal(t, Categorical, e.Outcome())
	assert.Equal(t, "red", e.Label())
	_, err = nom.Parse("blue")
	assert.Error(t, err)
	assert.True(t, nom.Contains(NewCategoricalSet("red", "green")))
	assert.False(t, nom.Contains(NewCategoricalSet("red", "blue")))

	ord := NewOrdinal("low", "mid", "high")
	assert.Equal(t, 2, ord.Rank("high"))
	assert.Equal(t, -1, ord.Rank("none"))
	assert.Panics(t, func() { NewOrdinal("a", "a") })

	e, err = NN.Parse("12")
	require.NoError(t, err)
	assert.Equal(t, 12, e.Int())
	_, err = NN.Parse("-1")
	assert.Error(t, err)
	_, err = ZZ.Parse("1.5")
	assert.Error(t, err)
	assert.True(t, ZZ.Contains(NewDiscreteLeft(-4)))
	assert.False(t, NN.Contains(NewDiscreteInterval(-1, 3)))

	e, err = RR.Parse("-2.5")
	require.NoError(t, err)
	assert.Equal(t, -2.5, e.Value())
	_, err = PR.Parse("-2.5")
	assert.Error(t, err)
	assert.False(t, RR.Contains(NewDiscrete(1)))
	assert.False(t, RR.Contains(Missing))
}
