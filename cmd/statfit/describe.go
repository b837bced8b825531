// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"sort"

	mstats "github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/aclements/go-statfit/dist"
	"github.com/aclements/go-statfit/event"
)

var describeCommand = cli.Command{
	Action:    describeAction,
	Name:      "describe",
	Usage:     "summarize each column of a sample",
	ArgsUsage: "[file]",
	Flags: []cli.Flag{
		&separatorFlag,
		&noHeaderFlag,
		&columnFlag,
	},
}

func describeAction(ctx *cli.Context) error {
	m, err := readInput(ctx)
	if err != nil {
		return err
	}
	cols, err := selectColumns(ctx, m)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	for _, c := range cols {
		if err := describe(w, c); err != nil {
			return err
		}
	}
	return nil
}

// describe prints the counts of column c, then either the category
// frequencies or the summary statistics of its elementary values.
func describe(w io.Writer, c column) error {
	d := c.data
	fmt.Fprintf(w, "%s (%v)  N %d  missing %d  censored %d\n", c.name, d.Outcome(), d.Len(), d.Missing(), d.Censored())

	tbl := tablewriter.NewWriter(w)
	tbl.SetBorder(true)
	if d.Outcome() == event.Categorical {
		tbl.SetHeader([]string{"Label", "Weight", "Share"})
		labels, ws := d.Labels()
		total := 0.0
		for _, x := range ws {
			total += x
		}
		idx := make([]int, len(labels))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(i, j int) bool { return ws[idx[i]] > ws[idx[j]] })
		for _, i := range idx {
			tbl.Append([]string{labels[i], fmt.Sprintf("%.6g", ws[i]), fmt.Sprintf("%.2f%%", 100*ws[i]/total)})
		}
		tbl.Render()
		fmt.Fprintln(w)
		return nil
	}

	xs, _ := d.Elementary()
	if len(xs) == 0 {
		fmt.Fprintln(w, "no elementary values")
		fmt.Fprintln(w)
		return nil
	}
	rows, err := summary(xs)
	if err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	tbl.SetHeader([]string{"Statistic", "Value"})
	for _, r := range rows {
		tbl.Append([]string{r.name, fmt.Sprintf("%.6g", r.value)})
	}
	tbl.Render()
	if !d.Weighted() {
		ci := dist.QuantileCI(len(xs), 0.5, medianConfidence)
		lo, hi := ci.Bounds(xs)
		fmt.Fprintf(w, "median %g%% CI [%.6g, %.6g] (confidence %.4g)\n", 100*medianConfidence, lo, hi, ci.Confidence)
	}
	fmt.Fprintln(w)
	return nil
}

const medianConfidence = 0.95

type statistic struct {
	name  string
	value float64
}

// summary returns the moments and quantiles of xs, which must not be
// empty.
func summary(xs []float64) ([]statistic, error) {
	s := mstats.Float64Data(xs)
	var out []statistic
	add := func(name string, f func(mstats.Float64Data) (float64, error)) error {
		v, err := f(s)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, statistic{name, v})
		return nil
	}
	for _, st := range []struct {
		name string
		f    func(mstats.Float64Data) (float64, error)
	}{
		{"sum", mstats.Sum},
		{"mean", mstats.Mean},
		{"std dev", mstats.StandardDeviationSample},
		{"variance", mstats.SampleVariance},
		{"min", mstats.Min},
	} {
		if err := add(st.name, st.f); err != nil {
			return nil, err
		}
	}
	for _, p := range []float64{1, 5, 25, 50, 75, 95, 99} {
		p := p
		name := fmt.Sprintf("%g%%ile", p)
		if p == 50 {
			name = "median"
		}
		if err := add(name, func(s mstats.Float64Data) (float64, error) {
			return mstats.PercentileNearestRank(s, p)
		}); err != nil {
			return nil, err
		}
	}
	if err := add("max", mstats.Max); err != nil {
		return nil, err
	}
	return out, nil
}
