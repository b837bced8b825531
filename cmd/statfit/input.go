// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/urfave/cli/v2"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/estimate"
	"github.com/aclements/go-statfit/event"
	"github.com/aclements/go-statfit/tabular"
)

// column is one selected variable of the input.
type column struct {
	name string
	data *data.Univariate
}

// readInput reads the sample named by the first argument of ctx, or
// stdin if there is none.
func readInput(ctx *cli.Context) (*data.Multivariate, error) {
	var r io.Reader = os.Stdin
	if ctx.NArg() > 0 && ctx.Args().First() != "-" {
		f, err := os.Open(ctx.Args().First())
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	sep, err := separator(ctx)
	if err != nil {
		return nil, err
	}
	m, err := tabular.Read(r, tabular.ReadOptions{
		Separator: sep,
		Header:    !ctx.Bool(noHeaderFlag.Name),
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("read %d rows of %d variables", m.Len(), m.Dims())
	return m, nil
}

func separator(ctx *cli.Context) (rune, error) {
	s := ctx.String(separatorFlag.Name)
	if s == "" {
		return cfg.Separator, nil
	}
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("separator %q is not a single character", s)
	}
	return r, nil
}

// selectColumns returns the variables of m named by the column flag,
// in flag order, or all of them.
func selectColumns(ctx *cli.Context, m *data.Multivariate) ([]column, error) {
	names := m.Names()
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	want := ctx.StringSlice(columnFlag.Name)
	if len(want) == 0 {
		want = names
	}
	cols := make([]column, 0, len(want))
	for _, n := range want {
		i, ok := index[n]
		if !ok {
			return nil, fmt.Errorf("no column %q (have %s)", n, strings.Join(names, ", "))
		}
		d, err := m.Variable(i)
		if err != nil {
			return nil, err
		}
		cols = append(cols, column{n, d})
	}
	return cols, nil
}

// parseOptions turns key=value settings into estimator options. The
// configured defaults apply unless a setting overrides them.
func parseOptions(ctx *cli.Context) (estimate.Options, error) {
	opts := estimate.Options{}
	if cfg.Lazy || ctx.Bool(lazyFlag.Name) {
		opts["lazy"] = true
	}
	for _, kv := range ctx.StringSlice(optionFlag.Name) {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("setting %q is not key=value", kv)
		}
		opts[k] = strings.TrimSpace(v)
	}
	return opts, nil
}

func logWarnings(name string, ws []estimate.Warning) {
	for _, w := range ws {
		log.Warningf("%s: %v", name, w)
	}
}

// subset returns the selected columns as a multivariate sample with
// the row weights of m.
func subset(m *data.Multivariate, cols []column) (*data.Multivariate, error) {
	if len(cols) == m.Dims() {
		same := true
		for i, n := range m.Names() {
			same = same && cols[i].name == n
		}
		if same {
			return m, nil
		}
	}
	sub := data.NewMultivariate()
	for _, c := range cols {
		events := make([]event.Event, c.data.Len())
		for i := range events {
			events[i] = c.data.Event(i)
		}
		if err := sub.AddVariable(c.name, c.data.Space(), events); err != nil {
			return nil, err
		}
	}
	ws := make([]float64, m.Len())
	for i := range ws {
		ws[i] = m.Weight(i)
	}
	if err := sub.SetWeights(ws); err != nil {
		return nil, err
	}
	return sub, nil
}
