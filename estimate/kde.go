// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/dist"
	"github.com/aclements/go-statfit/event"
)

// KDEEstimator fits Gaussian kernel density estimates to continuous
// samples. Censored events are ignored.
type KDEEstimator struct {
	kde  dist.KDE
	rule string
}

// NewKDEEstimator returns a KDE estimator using Scott's rule for the
// bandwidth and unbounded support.
func NewKDEEstimator() *KDEEstimator {
	return &KDEEstimator{rule: "scott"}
}

const kdeOp = "kde estimator"

func (e *KDEEstimator) Outcome() event.Outcome { return event.Continuous }

// SetBandwidth fixes the kernel bandwidth. Zero computes it from the
// sample with the bandwidth rule.
func (e *KDEEstimator) SetBandwidth(h float64) error {
	c := *e
	c.kde.Bandwidth = h
	return e.commit(c)
}

// SetRule selects the bandwidth rule, "scott" or "silverman".
func (e *KDEEstimator) SetRule(rule string) error {
	c := *e
	c.rule = strings.ToLower(rule)
	return e.commit(c)
}

// SetSupport bounds the support of the estimate to [min, max) with
// reflection at the boundaries. Use infinities for half-bounded
// support.
func (e *KDEEstimator) SetSupport(min, max float64) error {
	c := *e
	c.kde.BoundaryMin, c.kde.BoundaryMax = min, max
	return e.commit(c)
}

func (e *KDEEstimator) commit(c KDEEstimator) error {
	switch {
	case !(c.kde.Bandwidth >= 0) || math.IsInf(c.kde.Bandwidth, 1):
		return newError(Configuration, kdeOp, "bandwidth %v is not a non-negative number", c.kde.Bandwidth)
	case c.rule != "scott" && c.rule != "silverman":
		return newError(Configuration, kdeOp, "unknown bandwidth rule %q", c.rule)
	case !(c.kde.BoundaryMin < c.kde.BoundaryMax) && (c.kde.BoundaryMin != 0 || c.kde.BoundaryMax != 0):
		return newError(Configuration, kdeOp, "support [%v, %v) is empty", c.kde.BoundaryMin, c.kde.BoundaryMax)
	}
	*e = c
	return nil
}

func (e *KDEEstimator) setters() map[string]setter {
	float := func(p *float64) setter {
		return func(v interface{}) error {
			x, err := asFloat(v)
			*p = x
			return err
		}
	}
	return map[string]setter{
		"bandwidth":    float(&e.kde.Bandwidth),
		"boundary_min": float(&e.kde.BoundaryMin),
		"boundary_max": float(&e.kde.BoundaryMax),
		"rule": func(v interface{}) error {
			s, err := asString(v)
			e.rule = strings.ToLower(s)
			return err
		},
	}
}

func (e *KDEEstimator) Settings() []string { return settingNames(e.setters()) }

func (e *KDEEstimator) Configure(opts Options) ([]Warning, error) {
	c := *e
	ws, err := configure(kdeOp, opts, c.setters())
	if err != nil {
		return ws, err
	}
	return ws, e.commit(c)
}

func (e *KDEEstimator) Copy() Estimator {
	c := *e
	return &c
}

func (e *KDEEstimator) Estimate(d *data.Univariate, lazy bool) (Estimation, error) {
	const op = "kde estimate"
	if err := checkOutcome(op, event.Continuous, d); err != nil {
		return nil, err
	}
	xs, ws := d.Elementary()
	if len(xs) == 0 {
		return nil, newError(InsufficientData, op, "no elementary observations among %d events", d.Len())
	}
	kde := e.kde
	if kde.Bandwidth == 0 {
		switch e.rule {
		case "silverman":
			kde.Bandwidth = dist.BandwidthSilverman(xs, ws)
		default:
			kde.Bandwidth = dist.BandwidthScott(xs, ws)
		}
	}
	if !(kde.Bandwidth > 0) {
		return nil, newError(InsufficientData, op, "%s bandwidth of %d values is %v", e.rule, len(xs), kde.Bandwidth)
	}
	for _, x := range xs {
		if (kde.BoundaryMin != 0 || kde.BoundaryMax != 0) && (x < kde.BoundaryMin || x >= kde.BoundaryMax) {
			return nil, newError(TypeMismatch, op, "%v outside support [%v, %v)", x, kde.BoundaryMin, kde.BoundaryMax)
		}
	}
	return newEstimation(kde.From(xs, ws), d, lazy), nil
}

func (e *KDEEstimator) String() string {
	return fmt.Sprintf("KDE(%s)", e.rule)
}
