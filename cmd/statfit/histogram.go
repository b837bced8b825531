// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/aclements/go-statfit/dist"
	"github.com/aclements/go-statfit/estimate"
	"github.com/aclements/go-statfit/event"
)

var (
	binsFlag = cli.IntFlag{
		Name:  "bins",
		Usage: "use exactly `N` regular bins instead of the slope heuristic",
	}
	minBinsFlag = cli.IntFlag{
		Name:  "min-bins",
		Usage: "smallest bin count the heuristic considers",
		Value: estimate.DefaultMinBins,
	}
	maxBinsFlag = cli.IntFlag{
		Name:  "max-bins",
		Usage: "largest bin count the heuristic considers (0 derives it from the sample size)",
	}
	irregularFlag = cli.BoolFlag{
		Name:  "irregular",
		Usage: "consider bins of unequal widths",
	}
	modelsFlag = cli.BoolFlag{
		Name:  "models",
		Usage: "print every candidate model",
	}
)

var histogramCommand = cli.Command{
	Action:    histogramAction,
	Name:      "histogram",
	Usage:     "fit a histogram to each continuous column",
	ArgsUsage: "[file]",
	Flags: []cli.Flag{
		&separatorFlag,
		&noHeaderFlag,
		&columnFlag,
		&binsFlag,
		&minBinsFlag,
		&maxBinsFlag,
		&irregularFlag,
		&modelsFlag,
		&optionFlag,
	},
}

func histogramOptions(ctx *cli.Context) (estimate.Options, error) {
	opts, err := parseOptions(ctx)
	if err != nil {
		return nil, err
	}
	if ctx.IsSet(binsFlag.Name) {
		opts["nb_bins"] = ctx.Int(binsFlag.Name)
		return opts, nil
	}
	opts["min_bins"] = ctx.Int(minBinsFlag.Name)
	if max := ctx.Int(maxBinsFlag.Name); max > 0 {
		opts["max_bins"] = max
	} else if cfg.MaxBins > 0 {
		opts["max_bins"] = cfg.MaxBins
	}
	if ctx.Bool(irregularFlag.Name) {
		opts["irregular"] = true
	}
	return opts, nil
}

func histogramAction(ctx *cli.Context) error {
	m, err := readInput(ctx)
	if err != nil {
		return err
	}
	cols, err := selectColumns(ctx, m)
	if err != nil {
		return err
	}
	opts, err := histogramOptions(ctx)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	for _, c := range cols {
		if c.data.Outcome() != event.Continuous {
			log.Infof("%s: skipping %v column", c.name, c.data.Outcome())
			continue
		}
		est, ws, err := estimate.FitHistogram(c.data, opts)
		logWarnings(c.name, ws)
		if estimate.KindOf(err) == estimate.Configuration {
			return err
		}
		if err != nil {
			log.Warningf("%s: %v", c.name, err)
			continue
		}
		h := est.Estimated().(*dist.Histogram)
		fmt.Fprintf(w, "%s: %s\n", c.name, formatDist(h))
		if sel, ok := est.(*estimate.SlopeHeuristicSelection); ok && ctx.Bool(modelsFlag.Name) {
			printModels(w, sel)
		}
		printHistogram(w, h)
		fmt.Fprintln(w)
	}
	return nil
}

// printModels prints the score and penalized criterion of every
// candidate of sel, marking the selected one.
func printModels(w io.Writer, sel *estimate.SlopeHeuristicSelection) {
	heur := sel.Heuristic()
	fmt.Fprintf(w, "slope %.6g over %d regressions\n", heur.Slope(), len(heur.Slopes))
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Bins", "Penshape", "Score", "Criterion", ""})
	tbl.SetBorder(true)
	bins := sel.Bins()
	for i := range bins {
		mark := ""
		if i == sel.Selected() {
			mark = "*"
		}
		tbl.Append([]string{
			fmt.Sprint(bins[i]),
			fmt.Sprintf("%.6g", heur.Penshapes[i]),
			fmt.Sprintf("%.6g", heur.Scores[i]),
			fmt.Sprintf("%.6g", heur.Criterion(i)),
			mark,
		})
	}
	tbl.Render()
}
