// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tabular reads and writes samples as delimited text.
//
// Each line is a row and each field an event, written in the
// notation of event.Event.String:
//
//	elementary        7  1.5  red
//	left-censored     5-
//	right-censored    3+
//	interval          [2, 4] (discrete)  ]2, 4[ (continuous)
//	set-censored      {a, b}
//	missing           ?
//
// Separators inside braces and brackets do not split fields.
package tabular // import "github.com/aclements/go-statfit/tabular"

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aclements/go-statfit/event"
)

// ErrSyntax is wrapped by errors for malformed fields and lines.
var ErrSyntax = errors.New("syntax error")

// FormatEvent returns the textual form of e.
func FormatEvent(e event.Event) string {
	return e.String()
}

// ParseEvent parses the textual form of an event of space. "?" and
// the empty string are the missing event.
func ParseEvent(space event.SampleSpace, s string) (event.Event, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "?" {
		return event.Missing, nil
	}
	bad := func(format string, args ...interface{}) (event.Event, error) {
		return event.Missing, fmt.Errorf("%w: %q: %s", ErrSyntax, s, fmt.Sprintf(format, args...))
	}

	if strings.HasPrefix(s, "{") {
		if !strings.HasSuffix(s, "}") {
			return bad("unterminated set")
		}
		var members []event.Event
		for _, part := range strings.Split(s[1:len(s)-1], ",") {
			e, err := space.Parse(part)
			if err != nil {
				return bad("%v", err)
			}
			members = append(members, e)
		}
		return setOf(space.Outcome(), members), nil
	}
	if space.Outcome() == event.Categorical {
		return space.Parse(s)
	}

	if n := len(s); n > 2 && (s[0] == '[' || s[0] == ']') {
		if s[n-1] != '[' && s[n-1] != ']' {
			return bad("unterminated interval")
		}
		bounds := strings.Split(s[1:n-1], ",")
		if len(bounds) != 2 {
			return bad("interval needs two bounds")
		}
		lo, err := space.Parse(bounds[0])
		if err != nil {
			return bad("%v", err)
		}
		hi, err := space.Parse(bounds[1])
		if err != nil {
			return bad("%v", err)
		}
		if space.Outcome() == event.Discrete {
			if lo.Int() > hi.Int() {
				return bad("empty interval")
			}
			return event.NewDiscreteInterval(lo.Int(), hi.Int()), nil
		}
		if !(lo.Value() < hi.Value()) {
			return bad("empty interval")
		}
		return event.NewContinuousInterval(lo.Value(), hi.Value()), nil
	}

	if n := len(s); n > 1 && (s[n-1] == '-' || s[n-1] == '+') {
		bound, err := space.Parse(s[:n-1])
		if err != nil {
			return bad("%v", err)
		}
		left := s[n-1] == '-'
		switch {
		case space.Outcome() == event.Discrete && left:
			return event.NewDiscreteLeft(bound.Int()), nil
		case space.Outcome() == event.Discrete:
			return event.NewDiscreteRight(bound.Int()), nil
		case left:
			return event.NewContinuousLeft(bound.Value()), nil
		}
		return event.NewContinuousRight(bound.Value()), nil
	}

	e, err := space.Parse(s)
	if err != nil {
		return bad("%v", err)
	}
	return e, nil
}

func setOf(o event.Outcome, members []event.Event) event.Event {
	switch o {
	case event.Categorical:
		ls := make([]string, len(members))
		for i, m := range members {
			ls[i] = m.Label()
		}
		return event.NewCategoricalSet(ls...)
	case event.Discrete:
		ks := make([]int, len(members))
		for i, m := range members {
			ks[i] = m.Int()
		}
		return event.NewDiscreteSet(ks...)
	}
	xs := make([]float64, len(members))
	for i, m := range members {
		xs[i] = m.Value()
	}
	return event.NewContinuousSet(xs...)
}

// splitFields splits line at sep, except inside {…}, […] and ]…[.
func splitFields(line string, sep rune) ([]string, error) {
	var fields []string
	var field strings.Builder
	var closer rune
	for _, r := range line {
		switch {
		case closer != 0:
			if r == closer {
				closer = 0
			}
		case r == sep:
			fields = append(fields, field.String())
			field.Reset()
			continue
		case r == '{':
			closer = '}'
		case r == '[':
			closer = ']'
		case r == ']' && strings.TrimSpace(field.String()) == "":
			closer = '['
		}
		field.WriteRune(r)
	}
	if closer != 0 {
		return nil, fmt.Errorf("%w: unterminated %q in %q", ErrSyntax, closer, line)
	}
	return append(fields, field.String()), nil
}
