// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabular

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/op/go-logging"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/event"
)

var log = logging.MustGetLogger("tabular")

func init() {
	// Warnings only, until a command installs its own backend.
	logging.SetLevel(logging.WARNING, "tabular")
}

// DefaultSeparator separates fields when no separator is given.
const DefaultSeparator = ';'

// ReadOptions control Read.
type ReadOptions struct {
	// Separator separates fields. If zero, DefaultSeparator is
	// used.
	Separator rune

	// Header indicates that the first line names the columns.
	// Otherwise columns are named x0, x1, and so on.
	Header bool

	// Spaces gives the sample space of each column. Columns
	// beyond its length, or with a nil space, are inferred: a
	// column is discrete if every field parses as an integer
	// event, continuous if every field parses as a real event,
	// and nominal over its labels otherwise.
	Spaces []event.SampleSpace
}

// WriteOptions control Write.
type WriteOptions struct {
	// Separator separates fields. If zero, DefaultSeparator is
	// used.
	Separator rune

	// Header writes the variable names as the first line.
	Header bool

	// Censored writes censored events in full. Otherwise they are
	// written as missing.
	Censored bool
}

// Read reads a multivariate sample from r.
func Read(r io.Reader, opts ReadOptions) (*data.Multivariate, error) {
	sep := opts.Separator
	if sep == 0 {
		sep = DefaultSeparator
	}

	var names []string
	var rows [][]string
	sc := bufio.NewScanner(r)
	for lineno := 1; sc.Scan(); lineno++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields, err := splitFields(line, sep)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if opts.Header && names == nil {
			names = fields
			continue
		}
		width := len(names)
		if width == 0 && len(rows) > 0 {
			width = len(rows[0])
		}
		if width != 0 && len(fields) != width {
			return nil, fmt.Errorf("line %d: %w: %d fields, want %d", lineno, ErrSyntax, len(fields), width)
		}
		rows = append(rows, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	cols := len(names)
	if cols == 0 && len(rows) > 0 {
		cols = len(rows[0])
	}
	if names == nil {
		for i := 0; i < cols; i++ {
			names = append(names, fmt.Sprintf("x%d", i))
		}
	}

	m := data.NewMultivariate()
	for j := 0; j < cols; j++ {
		raw := make([]string, len(rows))
		for i, row := range rows {
			raw[i] = row[j]
		}
		var space event.SampleSpace
		if j < len(opts.Spaces) {
			space = opts.Spaces[j]
		}
		if space == nil {
			space = inferSpace(raw)
		}
		events := make([]event.Event, len(raw))
		for i, s := range raw {
			e, err := ParseEvent(space, s)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", i+1, names[j], err)
			}
			events[i] = e
		}
		if err := m.AddVariable(names[j], space, events); err != nil {
			return nil, err
		}
	}
	log.Debugf("read %d rows of %d variables", len(rows), cols)
	return m, nil
}

// inferSpace returns the narrowest sample space in which every field
// of raw parses. All-missing columns are discrete.
func inferSpace(raw []string) event.SampleSpace {
	parsesIn := func(space event.SampleSpace) bool {
		for _, s := range raw {
			if _, err := ParseEvent(space, s); err != nil {
				return false
			}
		}
		return true
	}
	if parsesIn(event.ZZ) {
		return event.ZZ
	}
	if parsesIn(event.RR) {
		return event.RR
	}
	var labels []string
	for _, s := range raw {
		s = strings.TrimSpace(s)
		switch {
		case s == "" || s == "?":
		case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
			for _, l := range strings.Split(s[1:len(s)-1], ",") {
				labels = append(labels, strings.TrimSpace(l))
			}
		default:
			labels = append(labels, s)
		}
	}
	return event.NewNominal(labels...)
}

// Write writes m to w, one row per line.
func Write(w io.Writer, m *data.Multivariate, opts WriteOptions) error {
	sep := string(opts.Separator)
	if opts.Separator == 0 {
		sep = string(DefaultSeparator)
	}
	bw := bufio.NewWriter(w)
	if opts.Header {
		if _, err := bw.WriteString(strings.Join(m.Names(), sep) + "\n"); err != nil {
			return err
		}
	}
	dropped := 0
	fields := make([]string, m.Dims())
	for i := 0; i < m.Len(); i++ {
		row, err := m.Row(i)
		if err != nil {
			return err
		}
		for j, e := range row {
			if !opts.Censored && !e.IsMissing() && e.Censoring() != event.Elementary {
				dropped++
				fields[j] = "?"
				continue
			}
			fields[j] = FormatEvent(e)
			if e.Outcome() == event.Categorical && e.Censoring() == event.Elementary && strings.Contains(fields[j], sep) {
				return fmt.Errorf("row %d: label %q contains separator %q", i, fields[j], sep)
			}
		}
		if _, err := bw.WriteString(strings.Join(fields, sep) + "\n"); err != nil {
			return err
		}
	}
	if dropped > 0 {
		log.Warningf("wrote %d censored events as missing", dropped)
	}
	return bw.Flush()
}
