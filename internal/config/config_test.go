// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromEnv(t *testing.T) {
	c, err := FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	c, err = FromEnv(env(map[string]string{
		"STATFIT_LOG_LEVEL": "debug",
		"STATFIT_SEPARATOR": "\t",
		"STATFIT_MAX_BINS":  "40",
		"STATFIT_LAZY":      "true",
		"STATFIT_WORKERS":   "3",
	}))
	require.NoError(t, err)
	assert.Equal(t, &Config{LogLevel: "debug", Separator: '\t', MaxBins: 40, Lazy: true, Workers: 3}, c)

	for k, v := range map[string]string{
		"STATFIT_SEPARATOR": ";;",
		"STATFIT_MAX_BINS":  "many",
		"STATFIT_WORKERS":   "-1",
		"STATFIT_LAZY":      "perhaps",
	} {
		_, err := FromEnv(env(map[string]string{k: v}))
		assert.Error(t, err, k)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("STATFIT_MAX_BINS=25\nSTATFIT_SEPARATOR=,\n"), 0o644))
	t.Setenv("STATFIT_SEPARATOR", "|")
	t.Setenv("STATFIT_MAX_BINS", "")
	os.Unsetenv("STATFIT_MAX_BINS")

	c, err := Load(file, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 25, c.MaxBins)
	// Variables already set win over the file.
	assert.Equal(t, '|', c.Separator)
}
