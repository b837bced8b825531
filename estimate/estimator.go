// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package estimate fits distributions to samples.
//
// An Estimator is a reusable configuration. Its Estimate method fits
// a distribution to a sample and returns an Estimation; estimating
// never changes the estimator, so one estimator may be used for many
// samples. Distinct estimators share no mutable state and may be used
// concurrently. A single estimator may be used concurrently as long as
// it is not being configured at the same time.
//
// Estimators are configured with typed setters or with named Options.
// Unknown option names are reported as Warnings and otherwise ignored;
// invalid values are Configuration errors and leave the estimator
// unchanged.
package estimate // import "github.com/aclements/go-statfit/estimate"

import (
	"github.com/op/go-logging"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/event"
)

var log = logging.MustGetLogger("estimate")

func init() {
	// Warnings only, until a command installs its own backend.
	logging.SetLevel(logging.WARNING, "estimate")
}

// An Estimator fits univariate distributions.
type Estimator interface {
	// Outcome returns the outcome of the samples this estimator
	// accepts.
	Outcome() event.Outcome

	// Estimate fits a distribution to d. If lazy is true, the
	// result does not reference d.
	Estimate(d *data.Univariate, lazy bool) (Estimation, error)

	// Settings returns the names of the options Configure
	// recognizes, in sorted order.
	Settings() []string

	// Configure applies opts as a group. Unknown names are
	// returned as warnings. If any value is invalid or the
	// resulting configuration is inconsistent, Configure returns
	// a Configuration error and the estimator is unchanged.
	Configure(opts Options) ([]Warning, error)

	// Copy returns an independent copy of this estimator.
	Copy() Estimator
}

// checkOutcome returns a TypeMismatch error unless d has outcome o.
func checkOutcome(op string, o event.Outcome, d *data.Univariate) error {
	if d == nil {
		return newError(InsufficientData, op, "no sample")
	}
	if d.Outcome() != o {
		return newError(TypeMismatch, op, "%v sample, want %v", d.Outcome(), o)
	}
	return nil
}
