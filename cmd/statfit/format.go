// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/aclements/go-statfit/dist"
	"github.com/aclements/go-statfit/estimate"
)

// formatDist returns a one-line description of d.
func formatDist(d dist.Univariate) string {
	switch d := d.(type) {
	case dist.Normal:
		return fmt.Sprintf("normal(mu=%.6g, sigma=%.6g)", d.Mu, d.Sigma)
	case dist.Poisson:
		return fmt.Sprintf("poisson(lambda=%.6g)", d.Lambda)
	case dist.Binomial:
		return fmt.Sprintf("binomial(n=%d, p=%.6g)", d.N, d.P)
	case dist.NegativeBinomial:
		return fmt.Sprintf("negative_binomial(kappa=%.6g, pi=%.6g)", d.Kappa, d.Pi)
	case *dist.Histogram:
		return fmt.Sprintf("histogram(%d bins on [%.6g, %.6g])", d.Bins(), d.Edges()[0], d.Edges()[d.Bins()])
	case *dist.KDEDist:
		return fmt.Sprintf("kde(bandwidth=%.6g)", d.Bandwidth())
	case *dist.CategoricalFrequency:
		return fmt.Sprintf("frequency(%d labels)", len(d.Labels()))
	case *dist.DiscreteFrequency:
		return fmt.Sprintf("frequency(%d values)", len(d.Values()))
	case *dist.ContinuousFrequency:
		return fmt.Sprintf("frequency(%d values)", len(d.Values()))
	}
	return fmt.Sprintf("%T", d)
}

// fitResult is the estimation of one column.
type fitResult struct {
	name string
	est  estimate.Estimation
	err  error
}

// printFits prints one row per column: the fitted distribution, its
// log-likelihood and information criteria. A column whose sample was
// discarded by a lazy fit has no log-likelihood.
func printFits(w io.Writer, results []fitResult) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Column", "Distribution", "Params", "LogLik", "AIC", "BIC"})
	tbl.SetBorder(true)
	for _, r := range results {
		if r.err != nil {
			tbl.Append([]string{r.name, "error: " + r.err.Error(), "", "", "", ""})
			continue
		}
		d := r.est.Estimated()
		row := []string{r.name, formatDist(d), fmt.Sprint(d.NumParameters()), "-", "-", "-"}
		if s := r.est.Data(); s != nil {
			ll := d.LogLikelihood(s)
			n := s.Total()
			k := d.NumParameters()
			row[3] = fmt.Sprintf("%.6g", ll)
			row[4] = fmt.Sprintf("%.6g", estimate.AIC.Score(ll, k, n))
			row[5] = fmt.Sprintf("%.6g", estimate.BIC.Score(ll, k, n))
		}
		tbl.Append(row)
	}
	tbl.Render()
}

// printHistogram prints the bins of h.
func printHistogram(w io.Writer, h *dist.Histogram) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Bin", "Density", "Bar"})
	tbl.SetBorder(true)
	edges, dens := h.Edges(), h.Densities()
	max := 0.0
	for _, d := range dens {
		if d > max {
			max = d
		}
	}
	for i, d := range dens {
		bar := ""
		if max > 0 {
			bar = strings.Repeat("#", int(40*d/max+0.5))
		}
		tbl.Append([]string{fmt.Sprintf("[%.4g, %.4g[", edges[i], edges[i+1]), fmt.Sprintf("%.6g", d), bar})
	}
	tbl.Render()
}
