// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-statfit/data"
	"github.com/aclements/go-statfit/dist"
	"github.com/aclements/go-statfit/event"
)

func continuous(xs ...float64) *data.Univariate {
	d := data.NewUnivariate(event.RR)
	for _, x := range xs {
		d.Add(event.NewContinuous(x))
	}
	return d
}

func discrete(ks ...int) *data.Univariate {
	d := data.NewUnivariate(event.ZZ)
	for _, k := range ks {
		d.Add(event.NewDiscrete(k))
	}
	return d
}

func categorical(labels ...string) *data.Univariate {
	d := data.NewUnivariate(event.NewNominal("a", "b", "c", "v", "w"))
	for _, l := range labels {
		d.Add(event.NewCategorical(l))
	}
	return d
}

func normalSample(r *rand.Rand, n int, mu, sigma float64) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = mu + sigma*r.NormFloat64()
	}
	return xs
}

// trimodal returns n values from an equal mixture of three unit
// normals centered at 0, 5 and 10.
func trimodal(r *rand.Rand, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = 5*float64(r.Intn(3)) + r.NormFloat64()
	}
	return xs
}

// binomialSample draws n values from Binomial(trials, 1/2), which is
// underdispersed.
func binomialSample(r *rand.Rand, n, trials int) []int {
	ks := make([]int, n)
	for i := range ks {
		for j := 0; j < trials; j++ {
			ks[i] += r.Intn(2)
		}
	}
	return ks
}

// geometricSample draws n overdispersed counts with mean about 4.5.
func geometricSample(r *rand.Rand, n int) []int {
	ks := make([]int, n)
	for i := range ks {
		ks[i] = int(5 * r.ExpFloat64())
	}
	return ks
}

func TestErrors(t *testing.T) {
	err := error(newError(InsufficientData, "histogram estimate", "no values"))
	assert.True(t, errors.Is(err, ErrInsufficientData))
	assert.False(t, errors.Is(err, ErrConfiguration))
	assert.Equal(t, InsufficientData, KindOf(err))
	assert.Equal(t, "histogram estimate: insufficient data: no values", err.Error())

	cause := errors.New("boom")
	err = wrapError(NonConvergence, "fit", cause, "")
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrNonConvergence))
	assert.Equal(t, "fit: non-convergence: boom", err.Error())

	assert.Equal(t, Kind(0), KindOf(cause))
}

func TestFrequencyPointMass(t *testing.T) {
	cat, _, err := FitFrequency(categorical("v", "v", "v"), nil)
	require.NoError(t, err)
	c := cat.Estimated().(*dist.CategoricalFrequency)
	assert.Equal(t, 1.0, c.PMF("v"))
	assert.Equal(t, 0.0, c.PMF("w"))

	disc, _, err := FitFrequency(discrete(3, 3, 3, 3), nil)
	require.NoError(t, err)
	d := disc.Estimated().(*dist.DiscreteFrequency)
	assert.Equal(t, 1.0, d.PDF(3))
	assert.Equal(t, 0.0, d.PDF(2))
	assert.Equal(t, 0.0, d.PDF(4))

	cont, _, err := FitFrequency(continuous(2.5, 2.5), nil)
	require.NoError(t, err)
	x := cont.Estimated().(*dist.ContinuousFrequency)
	assert.Equal(t, 1.0, x.PDF(2.5))
	assert.Equal(t, 0.0, x.PDF(2.6))
	assert.Equal(t, 1.0, x.Probability(event.NewContinuous(2.5)))
}

func TestFrequencyCensoring(t *testing.T) {
	d := discrete(1, 1, 2)
	d.Add(event.NewDiscreteInterval(1, 2))
	d.Add(event.Event{})

	est, _, err := FitFrequency(d, nil)
	require.NoError(t, err)
	f := est.Estimated().(*dist.DiscreteFrequency)
	assert.InDelta(t, 2.0/3, f.PDF(1), 1e-12)
	assert.InDelta(t, 1.0/3, f.PDF(2), 1e-12)

	est, _, err = FitFrequency(d, Options{"censoring": "redistribute"})
	require.NoError(t, err)
	f = est.Estimated().(*dist.DiscreteFrequency)
	assert.InDelta(t, 2.5/4, f.PDF(1), 1e-12)
	assert.InDelta(t, 1.5/4, f.PDF(2), 1e-12)

	c := categorical("a")
	c.Add(event.NewCategoricalSet("a", "b"))
	est, _, err = FitFrequency(c, Options{"censoring": Redistribute})
	require.NoError(t, err)
	cf := est.Estimated().(*dist.CategoricalFrequency)
	assert.InDelta(t, 0.75, cf.PMF("a"), 1e-12)
	assert.InDelta(t, 0.25, cf.PMF("b"), 1e-12)

	_, _, err = FitFrequency(c, Options{"censoring": "guess"})
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestFrequencyEmpty(t *testing.T) {
	_, _, err := FitFrequency(continuous(), nil)
	assert.True(t, errors.Is(err, ErrInsufficientData))

	d := continuous()
	d.Add(event.NewContinuousRight(3))
	_, _, err = FitFrequency(d, nil)
	assert.True(t, errors.Is(err, ErrInsufficientData))

	_, err = NewFrequencyEstimator(event.Mixed)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestLazy(t *testing.T) {
	d := continuous(1, 2, 3)
	est, _, err := FitFrequency(d, Options{"lazy": true})
	require.NoError(t, err)
	assert.True(t, est.Lazy())
	assert.Nil(t, est.Data())
	assert.IsType(t, &LazyEstimation{}, est)

	est, _, err = FitFrequency(d, Options{"lazy": "false"})
	require.NoError(t, err)
	assert.False(t, est.Lazy())
	assert.Same(t, d, est.Data())
	assert.IsType(t, &ActiveEstimation{}, est)

	_, _, err = FitFrequency(d, Options{"lazy": "sometimes"})
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestWarnings(t *testing.T) {
	e, ws, err := New(event.Continuous, HistogramFamily, "", Options{"max_bins": 10, "colour": "red"})
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, "colour", ws[0].Key)
	assert.Equal(t, 10, e.(*HistogramEstimator).MaxBins())

	f, _ := NewFrequencyEstimator(event.Discrete)
	ws, err = f.Configure(Options{"nb_bins": 3, "censoring": "exclude"})
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, "nb_bins", ws[0].Key)
}

// samplesFor returns samples of outcome o: labels, an underdispersed
// and an overdispersed count sample, or a normal sample.
func samplesFor(r *rand.Rand, o event.Outcome) []*data.Univariate {
	switch o {
	case event.Categorical:
		var ls []string
		for i := 0; i < 100; i++ {
			ls = append(ls, []string{"a", "b", "c"}[r.Intn(3)])
		}
		return []*data.Univariate{categorical(ls...)}
	case event.Discrete:
		return []*data.Univariate{
			discrete(binomialSample(r, 300, 10)...),
			discrete(geometricSample(r, 300)...),
		}
	}
	return []*data.Univariate{continuous(normalSample(r, 200, 10, 2)...)}
}

func TestDispatch(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	samples := make(map[event.Outcome][]*data.Univariate)
	for _, o := range []event.Outcome{event.Categorical, event.Discrete, event.Continuous} {
		samples[o] = samplesFor(r, o)
	}
	var keys []registryKey
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	for _, k := range keys {
		var opts Options
		if k.algorithm == Fixed {
			opts = Options{"nb_bins": 8}
		}
		e, ws, err := New(k.outcome, k.family, k.algorithm, opts)
		require.NoError(t, err, "%+v", k)
		assert.Empty(t, ws)
		assert.Equal(t, k.outcome, e.Outcome())

		fits := 0
		for i, d := range samples[k.outcome] {
			est, err := e.Estimate(d, false)
			assert.False(t, errors.Is(err, ErrTypeMismatch), "%+v on sample %d: %v", k, i, err)
			if err != nil {
				assert.Nil(t, est)
				continue
			}
			fits++
			assert.Equal(t, k.outcome, est.Estimated().Outcome())
		}
		assert.NotZero(t, fits, "%+v fit none of the %v samples", k, k.outcome)
	}
}

func TestDispatchErrors(t *testing.T) {
	_, _, err := New(event.Mixed, "", "", nil)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	_, _, err = New(event.Categorical, NormalFamily, ML, nil)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	_, _, err = New(event.Continuous, "weibull", "", nil)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, _, err = New(event.Continuous, NormalFamily, "bayes", nil)
	assert.True(t, errors.Is(err, ErrConfiguration))

	for _, c := range []struct {
		a    Algorithm
		opts Options
	}{
		{Fixed, nil},
		{Fixed, Options{"nb_bins": 0}},
		{Fixed, Options{"nb_bins": 4, "irregular": true}},
		{Irregular, Options{"regular": true}},
		{Irregular, Options{"irregular": "false"}},
		{Regular, Options{"irregular": true}},
		{Regular, Options{"regular": false}},
	} {
		_, _, err = New(event.Continuous, HistogramFamily, c.a, c.opts)
		assert.True(t, errors.Is(err, ErrConfiguration), "%s %v: %v", c.a, c.opts, err)
	}
	e, _, err := New(event.Continuous, HistogramFamily, Irregular, Options{"irregular": true, "regular": false})
	require.NoError(t, err)
	assert.False(t, e.(*HistogramEstimator).Regular())
	e, _, err = New(event.Continuous, HistogramFamily, Fixed, Options{"nb_bins": 4, "regular": true})
	require.NoError(t, err)
	assert.Equal(t, 4, e.(*HistogramEstimator).Bins())

	e, _, err = New(event.Discrete, PoissonFamily, "", nil)
	require.NoError(t, err)
	_, err = e.Estimate(continuous(1, 2), false)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	assert.Contains(t, Families(event.Discrete), NegativeBinomialFamily)
	assert.NotContains(t, Families(event.Categorical), HistogramFamily)
}

func TestHistogramConfiguration(t *testing.T) {
	_, _, err := NewHistogram(Options{"max_bins": 1})
	assert.True(t, errors.Is(err, ErrConfiguration))

	h := NewHistogramEstimator()
	assert.True(t, errors.Is(h.SetMaxBins(1), ErrConfiguration))
	assert.Equal(t, 0, h.MaxBins())

	_, _, err = NewHistogram(Options{"min_bins": 10, "max_bins": 5})
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, _, err = NewHistogram(Options{"regular": true, "irregular": true})
	assert.True(t, errors.Is(err, ErrConfiguration))

	h, _, err = NewHistogram(Options{"regular": false})
	require.NoError(t, err)
	assert.False(t, h.Regular())

	// A failed Configure leaves the estimator unchanged.
	_, err = h.Configure(Options{"irregular": false, "solver": "lasso"})
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.False(t, h.Regular())

	assert.Equal(t, []string{"constant", "irregular", "max_bins", "min_bins", "nb_bins", "regular", "selector", "solver", "threshold"}, h.Settings())
}

func TestHistogramFixed(t *testing.T) {
	est, _, err := FitHistogram(continuous(0, 1, 2, 3, 4, 5, 6, 7, 8, 9), Options{"nb_bins": 5})
	require.NoError(t, err)
	h := est.Estimated().(*dist.Histogram)
	assert.Equal(t, 5, h.Bins())
	assert.InDelta(t, 1, h.CDF(10), 1e-12)

	_, _, err = FitHistogram(continuous(3, 3, 3), Options{"nb_bins": 5})
	assert.True(t, errors.Is(err, ErrInsufficientData))

	_, _, err = FitHistogram(discrete(1, 2, 3), nil)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestSlopeHeuristicSelection(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	d := continuous(trimodal(r, 1000)...)
	for _, mode := range []string{"regular", "irregular"} {
		est, _, err := FitHistogram(d, Options{"min_bins": 2, "max_bins": 50, mode: true})
		require.NoError(t, err, mode)
		sel := est.(*SlopeHeuristicSelection)
		models := sel.Models()
		require.Equal(t, 49, models.Len(), mode)
		assert.Equal(t, 2, sel.MinBins())

		k := sel.Selected()
		bins := sel.Bins()[k]
		assert.True(t, bins > 2 && bins < 50, "%s: selected %d bins", mode, bins)
		assert.Equal(t, bins, k+sel.MinBins(), mode)
		assert.Same(t, sel.Estimated(), mustAt(t, models, k).Estimated())

		heur := sel.Heuristic()
		for i := 0; i < models.Len(); i++ {
			m := mustAt(t, models, i)
			assert.Equal(t, i+2, m.Estimated().(*dist.Histogram).Bins())
			if i < k {
				assert.Less(t, heur.Criterion(k), heur.Criterion(i), "%s: model %d", mode, i)
				assert.Greater(t, heur.Scores[k], heur.Scores[i], "%s: model %d", mode, i)
			} else {
				assert.LessOrEqual(t, heur.Criterion(k), heur.Criterion(i), "%s: model %d", mode, i)
			}
		}
		// Scores are the log-likelihoods of the models.
		assert.InDelta(t, mustAt(t, models, k).Estimated().LogLikelihood(d), heur.Scores[k], 1e-6)
	}
}

func mustAt(t *testing.T, m Models, i int) Estimation {
	t.Helper()
	e, err := m.At(i)
	require.NoError(t, err)
	return e
}

func TestModels(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	est, _, err := FitHistogram(continuous(trimodal(r, 400)...), Options{"max_bins": 12})
	require.NoError(t, err)
	models := est.(*SlopeHeuristicSelection).Models()
	require.Equal(t, 11, models.Len())

	last := mustAt(t, models, -1)
	assert.Equal(t, 12, last.Estimated().(*dist.Histogram).Bins())
	assert.Same(t, mustAt(t, models, 10), last)
	assert.Same(t, mustAt(t, models, 0), mustAt(t, models, -11))

	for _, i := range []int{11, -12, 100} {
		_, err := models.At(i)
		assert.True(t, errors.Is(err, ErrBounds), "At(%d)", i)
	}

	assert.Equal(t, 3, models.Slice(-3, 100).Len())
	assert.Equal(t, 11, models.Slice(-100, 100).Len())
	assert.Equal(t, 0, models.Slice(5, 2).Len())
	s := models.Slice(2, 4)
	require.Equal(t, 2, s.Len())
	assert.Same(t, mustAt(t, models, 2), mustAt(t, s, 0))
}

func TestHistogramInsufficient(t *testing.T) {
	_, _, err := FitHistogram(continuous(1, 2), Options{"min_bins": 3, "max_bins": 5})
	assert.True(t, errors.Is(err, ErrInsufficientData))

	_, _, err = FitHistogram(continuous(), nil)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestParametricMoments(t *testing.T) {
	d := continuous(1, 2, 3, 4, 5)
	est, _, err := FitParametric(d, NormalFamily, ML, nil)
	require.NoError(t, err)
	n := est.Estimated().(dist.Normal)
	assert.InDelta(t, 3, n.Mu, 1e-12)
	assert.InDelta(t, math.Sqrt(2), n.Sigma, 1e-12)

	est, _, err = FitParametric(d, NormalFamily, MM, nil)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(2.5), est.Estimated().(dist.Normal).Sigma, 1e-12)

	est, _, err = FitParametric(discrete(1, 2, 3, 6), PoissonFamily, ML, nil)
	require.NoError(t, err)
	assert.InDelta(t, 3, est.Estimated().(dist.Poisson).Lambda, 1e-12)

	// Mean 4, variance 2: N = 16/2 = 8, P = 1/2.
	est, _, err = FitParametric(discrete(2, 6, 4, 4), BinomialFamily, MM, nil)
	require.NoError(t, err)
	b := est.Estimated().(dist.Binomial)
	assert.Equal(t, 8, b.N)
	assert.InDelta(t, 0.5, b.P, 1e-12)

	// Mean 2, variance 6: κ = 4/4 = 1, π = 2/3.
	est, _, err = FitParametric(discrete(0, 0, 2, 6), NegativeBinomialFamily, MM, nil)
	require.NoError(t, err)
	nb := est.Estimated().(dist.NegativeBinomial)
	assert.InDelta(t, 1, nb.Kappa, 1e-12)
	assert.InDelta(t, 2.0/3, nb.Pi, 1e-12)
}

func TestParametricDomain(t *testing.T) {
	_, _, err := FitParametric(discrete(-1, 2, 3), PoissonFamily, ML, nil)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	over := discrete(0, 0, 2, 6)
	_, _, err = FitParametric(over, BinomialFamily, MM, nil)
	assert.True(t, errors.Is(err, ErrInsufficientData))
	assert.True(t, errors.Is(err, ErrOverdispersed))
	assert.False(t, errors.Is(err, ErrTypeMismatch))
	est, _, err := FitParametric(over, BinomialFamily, MM, Options{"force": "true"})
	require.NoError(t, err)
	assert.Equal(t, 6, est.Estimated().(dist.Binomial).N)

	under := discrete(2, 6, 4, 4)
	_, _, err = FitParametric(under, NegativeBinomialFamily, ML, nil)
	assert.True(t, errors.Is(err, ErrInsufficientData))
	assert.True(t, errors.Is(err, ErrUnderdispersed))
	assert.False(t, errors.Is(err, ErrTypeMismatch))
	_, _, err = FitParametric(under, NegativeBinomialFamily, MM, nil)
	assert.True(t, errors.Is(err, ErrUnderdispersed))

	_, _, err = FitParametric(discrete(0, 0, 0), PoissonFamily, MM, nil)
	assert.True(t, errors.Is(err, ErrInsufficientData))

	_, _, err = FitParametric(continuous(2, 2, 2), NormalFamily, ML, nil)
	assert.True(t, errors.Is(err, ErrInsufficientData))

	_, _, err = FitParametric(discrete(1, 2), BinomialFamily, ML, Options{"max_its": 0})
	assert.True(t, errors.Is(err, ErrConfiguration))

	// Poisson has no iteration settings.
	_, ws, err := FitParametric(discrete(1, 2), PoissonFamily, ML, Options{"max_its": 0})
	require.NoError(t, err)
	assert.Len(t, ws, 1)
}

func TestParametricNonConvergence(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for _, c := range []struct {
		family Family
		sample *data.Univariate
	}{
		{BinomialFamily, discrete(binomialSample(r, 300, 20)...)},
		{NegativeBinomialFamily, discrete(geometricSample(r, 300)...)},
	} {
		est, _, err := FitParametric(c.sample, c.family, ML, Options{"max_its": 1})
		assert.True(t, errors.Is(err, ErrNonConvergence), "%s: %v", c.family, err)
		assert.Nil(t, est, "%s", c.family)
	}
}

func TestParametricMaximumLikelihood(t *testing.T) {
	r := rand.New(rand.NewSource(3))

	under := discrete(binomialSample(r, 500, 20)...)
	mm, _, err := FitParametric(under, BinomialFamily, MM, nil)
	require.NoError(t, err)
	ml, _, err := FitParametric(under, BinomialFamily, ML, Options{"max_its": 1000})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ml.Estimated().LogLikelihood(under), mm.Estimated().LogLikelihood(under))
	opt := ml.(*OptimizationEstimation)
	require.NotEmpty(t, opt.Iterations())
	assert.Equal(t, float64(ml.Estimated().(dist.Binomial).N), opt.Iterations()[len(opt.Iterations())-1][0])

	over := discrete(geometricSample(r, 500)...)
	mm, _, err = FitParametric(over, NegativeBinomialFamily, MM, nil)
	require.NoError(t, err)
	ml, _, err = FitParametric(over, NegativeBinomialFamily, ML, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ml.Estimated().LogLikelihood(over), mm.Estimated().LogLikelihood(over)-1e-9)
	assert.Greater(t, ml.(*OptimizationEstimation).Evaluations(), 0)

	nb := ml.Estimated().(dist.NegativeBinomial)
	assert.InDelta(t, meanOf(over), nb.Mean(), 1e-6)
}

func meanOf(d *data.Univariate) float64 {
	xs, _ := d.Elementary()
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func TestSelection(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	d := continuous(normalSample(r, 500, 0, 1)...)
	e, err := NewSelectionEstimator(event.Continuous)
	require.NoError(t, err)
	_, err = e.Configure(Options{"criterion": "BIC"})
	require.NoError(t, err)
	assert.Equal(t, BIC, e.Criterion())

	est, err := e.Estimate(d, true)
	require.NoError(t, err)
	sel := est.(*CriterionSelection)
	assert.Equal(t, 0, sel.Selected())
	assert.IsType(t, dist.Normal{}, sel.Estimated())
	assert.Len(t, sel.Candidates(), 2)
	scores := sel.Scores()
	assert.Less(t, scores[0], scores[1])
	assert.True(t, sel.Lazy())

	// Binomial fails on overdispersed counts and is skipped.
	ds := discrete(geometricSample(r, 300)...)
	e, err = NewSelectionEstimator(event.Discrete)
	require.NoError(t, err)
	est, err = e.Estimate(ds, false)
	require.NoError(t, err)
	sel = est.(*CriterionSelection)
	assert.Nil(t, sel.Candidates()[1])
	assert.True(t, math.IsInf(sel.Scores()[1], 1))

	_, err = NewSelectionEstimator(event.Discrete, NewHistogramEstimator())
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	_, err = e.Configure(Options{"criterion": "dic"})
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestCriterion(t *testing.T) {
	assert.Equal(t, 2*2-2*(-10.0), AIC.Score(-10, 2, 100))
	assert.InDelta(t, 2*math.Log(100)+20, BIC.Score(-10, 2, 100), 1e-12)
	assert.InDelta(t, 4*math.Log(math.Log(100))+20, HQIC.Score(-10, 2, 100), 1e-12)
	assert.InDelta(t, 24+12.0/97, AICc.Score(-10, 2, 100), 1e-12)
	assert.True(t, math.IsInf(AICc.Score(-10, 5, 6), 1))
	for _, c := range []Criterion{AIC, AICc, BIC, HQIC} {
		p, err := ParseCriterion(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, p)
	}
}

func TestKDEEstimator(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	d := continuous(normalSample(r, 300, 0, 1)...)
	e, ws, err := New(event.Continuous, KDEFamily, "", Options{"rule": "silverman"})
	require.NoError(t, err)
	assert.Empty(t, ws)
	est, err := e.Estimate(d, false)
	require.NoError(t, err)
	k := est.Estimated().(*dist.KDEDist)
	xs, _ := d.Elementary()
	assert.InDelta(t, dist.BandwidthSilverman(xs, nil), k.Bandwidth(), 1e-12)

	_, err = e.Configure(Options{"bandwidth": 0.5})
	require.NoError(t, err)
	est, err = e.Estimate(d, false)
	require.NoError(t, err)
	assert.Equal(t, 0.5, est.Estimated().(*dist.KDEDist).Bandwidth())

	_, err = e.Configure(Options{"bandwidth": -1})
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = e.Estimate(continuous(4, 4, 4), false)
	assert.NoError(t, err)
	e, _, _ = New(event.Continuous, KDEFamily, "", nil)
	_, err = e.Estimate(continuous(4, 4, 4), false)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	m := data.NewMultivariate()
	var labels, values []event.Event
	for i := 0; i < 50; i++ {
		labels = append(labels, event.NewCategorical([]string{"a", "b", "c"}[r.Intn(3)]))
		values = append(values, event.NewContinuous(math.Round(10*r.NormFloat64())/10))
	}
	require.NoError(t, m.AddVariable("kind", event.NewNominal("a", "b", "c"), labels))
	require.NoError(t, m.AddVariable("size", event.RR, values))

	est, ws, err := FitIndependent(m, nil)
	require.NoError(t, err)
	assert.Empty(t, ws)
	marginals := est.Marginals()
	require.Len(t, marginals, 2)
	assert.Same(t, m, est.Data())

	for i, marg := range marginals {
		v, err := m.Variable(i)
		require.NoError(t, err)
		alone, _, err := FitFrequency(v, nil)
		require.NoError(t, err)
		assert.Equal(t, alone.Estimated(), marg.Estimated(), "variable %d", i)
		assert.Equal(t, alone.Estimated(), est.Estimated().Marginal(i), "variable %d", i)
	}
	ind := est.Estimated().(*dist.Independent)
	assert.Equal(t, []event.Outcome{event.Categorical, event.Continuous}, ind.Outcomes())

	row, err := m.Row(0)
	require.NoError(t, err)
	want := marginals[0].Estimated().Probability(row[0]) * marginals[1].Estimated().Probability(row[1])
	assert.InDelta(t, want, ind.Probability(row), 1e-12)
}

func TestIndependentDispatch(t *testing.T) {
	m := data.NewMultivariate()
	require.NoError(t, m.AddVariable("x", event.RR, []event.Event{event.NewContinuous(1), event.NewContinuous(2), event.NewContinuous(4)}))
	require.NoError(t, m.AddVariable("y", event.RR, []event.Event{event.NewContinuous(0), event.NewContinuous(3), event.NewContinuous(3)}))

	e, _, err := NewIndependentFor(m, Options{"lazy_typo": 1})
	require.NoError(t, err)
	assert.Equal(t, event.Continuous, e.Outcome())

	p, _ := NewParametricEstimator(NormalFamily, ML)
	require.NoError(t, e.SetOverride(1, p))
	est, err := e.Estimate(m, true)
	require.NoError(t, err)
	assert.True(t, est.Lazy())
	assert.IsType(t, &dist.ContinuousFrequency{}, est.Marginals()[0].Estimated())
	assert.IsType(t, dist.Normal{}, est.Marginals()[1].Estimated())

	cat, _ := NewFrequencyEstimator(event.Categorical)
	assert.True(t, errors.Is(e.SetOverride(0, cat), ErrTypeMismatch))

	homo, err := NewIndependentEstimator(event.Discrete)
	require.NoError(t, err)
	_, err = homo.Estimate(m, false)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	mixed, _, err := NewIndependent(event.Mixed, Options{"censoring": "redistribute"})
	require.NoError(t, err)
	for _, o := range []event.Outcome{event.Categorical, event.Discrete, event.Continuous} {
		assert.Equal(t, Redistribute, mixed.Estimator(o).(*FrequencyEstimator).Censoring())
	}
}

func TestCopyIndependence(t *testing.T) {
	h := NewHistogramEstimator()
	c := h.Copy().(*HistogramEstimator)
	require.NoError(t, c.SetMaxBins(20))
	assert.Equal(t, 0, h.MaxBins())

	p, _ := NewParametricEstimator(BinomialFamily, ML)
	pc := p.Copy().(*ParametricEstimator)
	pc.SetForce(true)
	_, _, err := FitParametric(discrete(0, 0, 2, 6), BinomialFamily, ML, nil)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	assert.False(t, p.force)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logging.WARNING, logging.GetLevel("estimate"))
	assert.False(t, log.IsEnabledFor(logging.DEBUG))
}
