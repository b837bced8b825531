// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-statfit/event"
)

func TestUnivariate(t *testing.T) {
	d := NewUnivariate(event.ZZ,
		event.NewDiscrete(3),
		event.Missing,
		event.NewDiscrete(1),
		event.NewDiscreteRight(4),
		event.NewDiscrete(3))
	d.AddWeighted(event.NewDiscrete(7), 2)

	assert.Equal(t, 6, d.Len())
	assert.Equal(t, 1, d.Missing())
	assert.Equal(t, 1, d.Censored())
	assert.True(t, d.Weighted())
	assert.Equal(t, 1.0, d.Weight(0))
	assert.Equal(t, 2.0, d.Weight(5))
	assert.Equal(t, 6.0, d.Total())

	xs, ws := d.Elementary()
	assert.Equal(t, []float64{3, 1, 3, 7}, xs)
	assert.Equal(t, []float64{1, 1, 1, 2}, ws)
	lo, hi := d.Bounds()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 7.0, hi)
	assert.Equal(t, 3, d.Distinct())
}

func TestUnivariateContract(t *testing.T) {
	d := NewUnivariate(event.RR)
	assert.Panics(t, func() { d.Add(event.NewDiscrete(1)) })
	assert.Panics(t, func() { d.AddWeighted(event.NewContinuous(1), -1) })
	assert.Panics(t, func() { d.AddWeighted(event.NewContinuous(1), math.NaN()) })
	assert.NotPanics(t, func() { d.Add(event.Missing) })
	assert.Panics(t, func() { d.Labels() })

	lo, hi := d.Bounds()
	assert.True(t, math.IsNaN(lo) && math.IsNaN(hi))
	assert.Equal(t, 0.0, d.Total())
}

func TestLabels(t *testing.T) {
	space := event.NewNominal("a", "b", "c")
	d := NewUnivariate(space,
		event.NewCategorical("b"),
		event.NewCategorical("a"),
		event.NewCategoricalSet("a", "c"),
		event.NewCategorical("b"))
	labels, ws := d.Labels()
	assert.Equal(t, []string{"a", "b"}, labels)
	assert.Equal(t, []float64{1, 2}, ws)
	assert.Equal(t, 2, d.Distinct())
	assert.Panics(t, func() { d.Elementary() })
}

func TestMultivariate(t *testing.T) {
	m := NewMultivariate()
	color := event.NewNominal("red", "blue")
	require.NoError(t, m.AddVariable("color", color, []event.Event{
		event.NewCategorical("red"), event.NewCategorical("blue"),
	}))
	require.NoError(t, m.AddVariable("size", event.RR, []event.Event{
		event.NewContinuous(1.5), event.Missing,
	}))
	assert.Error(t, m.AddVariable("short", event.RR, []event.Event{event.NewContinuous(1)}))
	assert.Panics(t, func() {
		m.AddVariable("bad", event.RR, []event.Event{event.NewDiscrete(1), event.Missing})
	})

	require.NoError(t, m.AddRowWeighted(3, event.NewCategorical("red"), event.NewContinuous(2)))
	assert.Error(t, m.AddRow(event.NewCategorical("red")))

	assert.Equal(t, 2, m.Dims())
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"color", "size"}, m.Names())
	assert.Equal(t, []event.Outcome{event.Categorical, event.Continuous}, m.Outcomes())
	assert.Equal(t, event.Mixed, m.Outcome())
	assert.Equal(t, 3.0, m.Weight(2))

	size, err := m.Variable(1)
	require.NoError(t, err)
	assert.Equal(t, event.Continuous, size.Outcome())
	assert.Equal(t, 3, size.Len())
	assert.Equal(t, 4.0, size.Total())
	assert.Panics(t, func() { size.Add(event.NewContinuous(1)) })

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, "blue", row[0].Label())
	assert.True(t, row[1].IsMissing())

	_, err = m.Row(3)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = m.Variable(-1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	assert.Error(t, m.SetWeights([]float64{1}))
	require.NoError(t, m.SetWeights([]float64{1, 1, 1}))
	size, _ = m.Variable(1)
	assert.Equal(t, 2.0, size.Total())
}
