// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the statfit command defaults from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

// Config holds the defaults of the statfit command. Flags override
// them.
type Config struct {
	// LogLevel is the logging level name.
	LogLevel string
	// Separator separates fields of tabular input and output.
	Separator rune
	// MaxBins bounds histogram bin counts. Zero derives the bound
	// from the sample size.
	MaxBins int
	// Lazy discards samples from estimations.
	Lazy bool
	// Workers bounds concurrent fits. Zero means one per variable.
	Workers int
}

// Default returns the configuration with no environment.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		Separator: ';',
	}
}

// Load reads the given .env files, if they exist, into the
// environment without overriding variables already set, and returns
// the configuration from the STATFIT_* variables.
func Load(files ...string) (*Config, error) {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return nil, fmt.Errorf("loading %v: %w", existing, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv returns the configuration from the STATFIT_* variables
// looked up by getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	c := Default()
	if v := getenv("STATFIT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("STATFIT_SEPARATOR"); v != "" {
		r, size := utf8.DecodeRuneInString(v)
		if size != len(v) {
			return nil, fmt.Errorf("STATFIT_SEPARATOR %q is not a single character", v)
		}
		c.Separator = r
	}
	var err error
	if c.MaxBins, err = envInt(getenv, "STATFIT_MAX_BINS", 0); err != nil {
		return nil, err
	}
	if c.Workers, err = envInt(getenv, "STATFIT_WORKERS", 0); err != nil {
		return nil, err
	}
	if v := getenv("STATFIT_LAZY"); v != "" {
		if c.Lazy, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("STATFIT_LAZY: %w", err)
		}
	}
	return c, nil
}

func envInt(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if i < 0 {
		return 0, fmt.Errorf("%s: %d is negative", key, i)
	}
	return i, nil
}
