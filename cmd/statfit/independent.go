// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/estimate"
	"github.com/aclements/go-statfit/event"
)

var (
	marginalFlag = cli.StringFlag{
		Name:    "family",
		Aliases: []string{"f"},
		Usage:   "estimator family of the marginals, where it accepts the column's outcome",
		Value:   string(estimate.FrequencyFamily),
	}
	overrideFlag = cli.StringSliceFlag{
		Name:  "override",
		Usage: "estimator of one column as `column=family[/algorithm]` (repeatable)",
	}
)

var independentCommand = cli.Command{
	Action:    independentAction,
	Name:      "independent",
	Usage:     "fit the joint distribution of the columns as independent marginals",
	ArgsUsage: "[file]",
	Flags: []cli.Flag{
		&separatorFlag,
		&noHeaderFlag,
		&columnFlag,
		&marginalFlag,
		&overrideFlag,
		&optionFlag,
		&lazyFlag,
	},
}

func independentAction(ctx *cli.Context) error {
	m, err := readInput(ctx)
	if err != nil {
		return err
	}
	cols, err := selectColumns(ctx, m)
	if err != nil {
		return err
	}
	if m, err = subset(m, cols); err != nil {
		return err
	}
	opts, err := parseOptions(ctx)
	if err != nil {
		return err
	}
	lazy := cfg.Lazy || ctx.Bool(lazyFlag.Name)
	delete(opts, "lazy")

	est, err := independentEstimator(ctx, m, opts)
	if err != nil {
		return err
	}
	fit, err := est.Estimate(m, lazy)
	if err != nil {
		return err
	}

	marginals := fit.Marginals()
	results := make([]fitResult, len(marginals))
	for i, e := range marginals {
		results[i] = fitResult{name: cols[i].name, est: e}
	}
	w := ctx.App.Writer
	printFits(w, results)
	joint := fit.Estimated()
	fmt.Fprintf(w, "joint: %d parameters", joint.NumParameters())
	if d := fit.Data(); d != nil {
		fmt.Fprintf(w, ", log-likelihood %.6g", joint.LogLikelihood(d))
	}
	fmt.Fprintln(w)
	return nil
}

// independentEstimator builds the estimator for m: the marginal
// family for each outcome that accepts it, frequency otherwise, and
// the per-column overrides.
func independentEstimator(ctx *cli.Context, m *data.Multivariate, opts estimate.Options) (*estimate.IndependentEstimator, error) {
	est, ws, err := estimate.NewIndependentFor(m, nil)
	if err != nil {
		return nil, err
	}
	logWarnings("independent", ws)

	family := estimate.Family(ctx.String(marginalFlag.Name))
	seen := make(map[event.Outcome]bool)
	for _, o := range m.Outcomes() {
		if seen[o] {
			continue
		}
		seen[o] = true
		e, _, err := estimate.New(o, family, "", nil)
		switch {
		case estimate.KindOf(err) == estimate.TypeMismatch:
			log.Infof("%s does not fit %v columns; using frequency", family, o)
			continue
		case err != nil:
			return nil, err
		}
		if err := est.SetEstimator(e); err != nil {
			return nil, err
		}
	}

	index := make(map[string]int)
	for i, n := range m.Names() {
		index[n] = i
	}
	outcomes := m.Outcomes()
	for _, arg := range ctx.StringSlice(overrideFlag.Name) {
		name, fa, ok := strings.Cut(arg, "=")
		i, known := index[name]
		if !ok || !known {
			return nil, fmt.Errorf("override %q: want column=family[/algorithm] with a known column", arg)
		}
		f, a, _ := strings.Cut(fa, "/")
		e, ws, err := estimate.New(outcomes[i], estimate.Family(f), estimate.Algorithm(a), opts)
		if err != nil {
			return nil, fmt.Errorf("override %q: %w", arg, err)
		}
		logWarnings(name, ws)
		if err := est.SetOverride(i, e); err != nil {
			return nil, err
		}
	}

	ws, err = est.Configure(opts)
	logWarnings("independent", ws)
	return est, err
}
