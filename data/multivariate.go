// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

import (
	"errors"
	"fmt"

	"github.com/aclements/go-statfit/event"
)

// ErrIndexOutOfRange is wrapped by the errors returned when a variable
// or row index is out of range.
var ErrIndexOutOfRange = errors.New("index out of range")

// Multivariate is a sample of several variables observed together.
// Every variable has the same number of events; row i holds the i'th
// event of each variable. Rows may be weighted.
type Multivariate struct {
	names   []string
	spaces  []event.SampleSpace
	columns [][]event.Event
	weights []float64
	n       int
}

// NewMultivariate returns an empty multivariate sample.
func NewMultivariate() *Multivariate {
	return &Multivariate{}
}

// AddVariable appends a variable called name with the given events.
// All rows of the new variable have the weights already set on m, or
// weight 1 if m has no variables yet.
//
// It returns an error if m already has variables and len(events)
// differs from Len. It panics if any event has the wrong outcome.
func (m *Multivariate) AddVariable(name string, space event.SampleSpace, events []event.Event) error {
	if len(m.columns) > 0 && len(events) != m.n {
		return fmt.Errorf("variable %q has %d events, want %d", name, len(events), m.n)
	}
	for _, e := range events {
		if !e.IsMissing() && e.Outcome() != space.Outcome() {
			panic(fmt.Sprintf("%v event %v in %v variable %q", e.Outcome(), e, space.Outcome(), name))
		}
	}
	m.names = append(m.names, name)
	m.spaces = append(m.spaces, space)
	m.columns = append(m.columns, append([]event.Event(nil), events...))
	m.n = len(events)
	return nil
}

// AddRow appends one event to every variable with weight 1.
func (m *Multivariate) AddRow(row ...event.Event) error {
	return m.AddRowWeighted(1, row...)
}

// AddRowWeighted appends one event to every variable with weight w.
func (m *Multivariate) AddRowWeighted(w float64, row ...event.Event) error {
	if len(row) != len(m.columns) {
		return fmt.Errorf("row has %d events, want %d", len(row), len(m.columns))
	}
	if !(w >= 0) {
		return fmt.Errorf("invalid weight %v", w)
	}
	for j, e := range row {
		if !e.IsMissing() && e.Outcome() != m.spaces[j].Outcome() {
			panic(fmt.Sprintf("%v event %v in %v variable %q", e.Outcome(), e, m.spaces[j].Outcome(), m.names[j]))
		}
	}
	if w != 1 && m.weights == nil {
		m.weights = make([]float64, m.n, m.n+1)
		for i := range m.weights {
			m.weights[i] = 1
		}
	}
	for j, e := range row {
		m.columns[j] = append(m.columns[j], e)
	}
	if m.weights != nil {
		m.weights = append(m.weights, w)
	}
	m.n++
	return nil
}

// SetWeights replaces the row weights of m.
func (m *Multivariate) SetWeights(ws []float64) error {
	if len(ws) != m.n {
		return fmt.Errorf("%d weights for %d rows", len(ws), m.n)
	}
	for _, w := range ws {
		if !(w >= 0) {
			return fmt.Errorf("invalid weight %v", w)
		}
	}
	m.weights = append([]float64(nil), ws...)
	return nil
}

// Dims returns the number of variables of m.
func (m *Multivariate) Dims() int {
	return len(m.columns)
}

// Len returns the number of rows of m.
func (m *Multivariate) Len() int {
	return m.n
}

// Names returns the names of the variables of m in order.
func (m *Multivariate) Names() []string {
	return append([]string(nil), m.names...)
}

// Outcomes returns the outcome of each variable of m in order.
func (m *Multivariate) Outcomes() []event.Outcome {
	out := make([]event.Outcome, len(m.spaces))
	for i, s := range m.spaces {
		out[i] = s.Outcome()
	}
	return out
}

// Outcome returns the common outcome of the variables of m, or
// event.Mixed if they differ. It returns 0 if m has no variables.
func (m *Multivariate) Outcome() event.Outcome {
	var o event.Outcome
	for i, s := range m.spaces {
		if i == 0 {
			o = s.Outcome()
		} else if s.Outcome() != o {
			return event.Mixed
		}
	}
	return o
}

// Variable returns the i'th variable of m. The result shares storage
// with m and cannot be extended; it carries m's row weights.
func (m *Multivariate) Variable(i int) (*Univariate, error) {
	if i < 0 || i >= len(m.columns) {
		return nil, fmt.Errorf("variable %d of %d: %w", i, len(m.columns), ErrIndexOutOfRange)
	}
	col := m.columns[i]
	return &Univariate{
		space:   m.spaces[i],
		events:  col[:len(col):len(col)],
		weights: m.weights,
		view:    true,
	}, nil
}

// Row returns the events of row i of m.
func (m *Multivariate) Row(i int) ([]event.Event, error) {
	if i < 0 || i >= m.n {
		return nil, fmt.Errorf("row %d of %d: %w", i, m.n, ErrIndexOutOfRange)
	}
	row := make([]event.Event, len(m.columns))
	for j, col := range m.columns {
		row[j] = col[i]
	}
	return row, nil
}

// Weight returns the weight of row i of m.
func (m *Multivariate) Weight(i int) float64 {
	if m.weights == nil {
		return 1
	}
	return m.weights[i]
}
