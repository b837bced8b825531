// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-statfit/dist"
)

// writeSample writes a sample with a continuous column x, a discrete
// column k and a categorical column c, with some censored and missing
// events.
func writeSample(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("x;k;c\n")
	labels := []string{"a", "b", "c"}
	for i := 0; i < 60; i++ {
		x := fmt.Sprintf("%.3f", float64(i%17)*0.37+float64(i%5)*0.11+0.001)
		k := fmt.Sprint(i % 7)
		switch i {
		case 10:
			x = "2.5+"
		case 20:
			k = "?"
		case 30:
			k = "[1, 3]"
		}
		fmt.Fprintf(&b, "%s;%s;%s\n", x, k, labels[i%3])
	}
	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app.Writer = &buf
	defer func() { app.Writer = os.Stdout }()
	err := app.Run(append([]string{"statfit", "--log", "error"}, args...))
	return buf.String(), err
}

func TestDescribe(t *testing.T) {
	path := writeSample(t)
	out, err := run(t, "describe", path)
	require.NoError(t, err)
	assert.Contains(t, out, "x (continuous)  N 60  missing 0  censored 1")
	assert.Contains(t, out, "k (discrete)  N 60  missing 1  censored 1")
	assert.Contains(t, out, "median")
	assert.Contains(t, out, "median 95% CI [")
	assert.Contains(t, out, "33.33%")

	_, err = run(t, "describe", "-c", "nope", path)
	assert.ErrorContains(t, err, `no column "nope"`)
}

func TestFit(t *testing.T) {
	path := writeSample(t)
	out, err := run(t, "fit", "-c", "k", "-c", "c", "-f", "poisson", path)
	require.NoError(t, err)
	assert.Contains(t, out, "poisson(lambda=")
	// The categorical column cannot be fit by a Poisson law.
	assert.Contains(t, out, "error:")

	out, err = run(t, "fit", "--workers", "1", "-c", "x", "-f", "normal", "-a", "mm", path)
	require.NoError(t, err)
	assert.Contains(t, out, "normal(mu=")

	_, err = run(t, "fit", "-f", "binomial", "-a", "nope", path)
	assert.Error(t, err)

	_, err = run(t, "fit", "-c", "k", "-f", "binomial", "-set", "max_its=0", path)
	assert.Error(t, err)
}

func TestHistogram(t *testing.T) {
	path := writeSample(t)
	out, err := run(t, "histogram", "--bins", "5", path)
	require.NoError(t, err)
	assert.Contains(t, out, "x: histogram(5 bins")
	assert.NotContains(t, out, "k: ")
}

func TestIndependent(t *testing.T) {
	path := writeSample(t)
	out, err := run(t, "independent", "--override", "x=normal", path)
	require.NoError(t, err)
	assert.Contains(t, out, "normal(mu=")
	assert.Contains(t, out, "frequency(3 labels)")
	assert.Contains(t, out, "joint: ")
	assert.Contains(t, out, "log-likelihood")

	out, err = run(t, "independent", "--lazy", "-c", "c", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "log-likelihood")

	_, err = run(t, "independent", "--override", "y=normal", path)
	assert.Error(t, err)
}

func TestFormatDist(t *testing.T) {
	assert.Equal(t, "binomial(n=10, p=0.3)", formatDist(dist.Binomial{N: 10, P: 0.3}))
	assert.Equal(t, "histogram(2 bins on [0, 2])", formatDist(dist.NewHistogram([]float64{0, 1, 2}, []float64{1, 3})))
	assert.Equal(t, "frequency(2 labels)", formatDist(dist.NewCategoricalFrequency([]string{"a", "b"}, []float64{1, 1})))
}
