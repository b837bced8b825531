// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/aclements/go-statfit/estimate"
)

var (
	familyFlag = cli.StringFlag{
		Name:    "family",
		Aliases: []string{"f"},
		Usage:   "estimator family (frequency, selection, histogram, kde, normal, poisson, binomial, negative_binomial)",
		Value:   string(estimate.SelectionFamily),
	}
	algorithmFlag = cli.StringFlag{
		Name:    "algorithm",
		Aliases: []string{"a"},
		Usage:   "estimation algorithm of the family (ml, mm, regular, irregular, fixed)",
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "number of columns fitted concurrently (0 for all)",
	}
)

var fitCommand = cli.Command{
	Action:    fitAction,
	Name:      "fit",
	Usage:     "fit a distribution to each column",
	ArgsUsage: "[file]",
	Description: `Fits each selected column on its own with the estimator named by
-family and -algorithm. Estimator settings are given with -set, for
example -set max_its=200 -set force=true. The selection family fits
every candidate of the column's outcome and keeps the one with the
lowest criterion (-set criterion=bic).`,
	Flags: []cli.Flag{
		&separatorFlag,
		&noHeaderFlag,
		&columnFlag,
		&familyFlag,
		&algorithmFlag,
		&optionFlag,
		&lazyFlag,
		&workersFlag,
	},
}

func fitAction(ctx *cli.Context) error {
	m, err := readInput(ctx)
	if err != nil {
		return err
	}
	cols, err := selectColumns(ctx, m)
	if err != nil {
		return err
	}
	opts, err := parseOptions(ctx)
	if err != nil {
		return err
	}
	f := estimate.Family(ctx.String(familyFlag.Name))
	a := estimate.Algorithm(ctx.String(algorithmFlag.Name))

	results, err := fitColumns(ctx.Context, cols, workers(ctx), func(c column) (estimate.Estimation, error) {
		est, ws, err := estimate.FitParametric(c.data, f, a, opts)
		logWarnings(c.name, ws)
		return est, err
	})
	if err != nil {
		return err
	}
	printFits(ctx.App.Writer, results)
	return nil
}

func workers(ctx *cli.Context) int {
	if ctx.IsSet(workersFlag.Name) {
		return ctx.Int(workersFlag.Name)
	}
	return cfg.Workers
}

// fitColumns runs fit on every column with at most n fits in flight,
// or all of them if n <= 0. A failed fit is reported in its result; a
// configuration error fails the whole run since every column would
// hit it.
func fitColumns(ctx context.Context, cols []column, n int, fit func(column) (estimate.Estimation, error)) ([]fitResult, error) {
	results := make([]fitResult, len(cols))
	g, ctx := errgroup.WithContext(ctx)
	if n > 0 {
		g.SetLimit(n)
	}
	for i, c := range cols {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			est, err := fit(c)
			results[i] = fitResult{name: c.name, est: est, err: err}
			if estimate.KindOf(err) == estimate.Configuration {
				return fmt.Errorf("%s: %w", c.name, err)
			}
			if err != nil {
				log.Warningf("%s: %v", c.name, err)
			} else {
				log.Debugf("%s: %s", c.name, formatDist(est.Estimated()))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
