// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slope

// A Selector picks a plateau among the models selected for each
// candidate slope. Select returns an index into selected, which
// must not be empty.
type Selector interface {
	Select(selected []int) int
}

// plateaus calls f with the bounds [lo, hi) of each maximal run of
// equal values of selected, in order, until f returns false.
func plateaus(selected []int, f func(lo, hi int) bool) {
	for lo := 0; lo < len(selected); {
		hi := lo + 1
		for hi < len(selected) && selected[hi] == selected[lo] {
			hi++
		}
		if !f(lo, hi) {
			return
		}
		lo = hi
	}
}

// Maximal selects the longest plateau. Among plateaus of equal length
// it prefers the last, which corresponds to the largest slopes fit on
// the most models.
type Maximal struct{}

func (Maximal) Select(selected []int) int {
	index, length := 0, 0
	plateaus(selected, func(lo, hi int) bool {
		if hi-lo >= length {
			index, length = lo, hi-lo
		}
		return true
	})
	return index
}

// DefaultThreshold is the default Superior threshold.
const DefaultThreshold = 0.20

// Superior selects the first plateau longer than Threshold times the
// number of slopes. If no plateau is that long, it selects the first
// longest plateau.
type Superior struct {
	// Threshold is a fraction in (0, 1]. If zero, it defaults to
	// DefaultThreshold.
	Threshold float64
}

func (s Superior) Select(selected []int) int {
	threshold := s.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	min := int(threshold * float64(len(selected)))
	index := -1
	plateaus(selected, func(lo, hi int) bool {
		if hi-lo > min {
			index = lo
			return false
		}
		return true
	})
	if index >= 0 {
		return index
	}
	length := 0
	plateaus(selected, func(lo, hi int) bool {
		if hi-lo > length {
			index, length = lo, hi-lo
		}
		return true
	})
	return index
}
