// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Options are named estimator settings. Values may be Go values of
// the setting's type or strings to parse, as read from a command line
// or environment.
type Options map[string]interface{}

// A Warning reports a setting that was ignored.
type Warning struct {
	Key string
	Msg string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Key, w.Msg)
}

// setter applies one setting value.
type setter func(v interface{}) error

// configure applies opts through setters in key order. Unknown keys
// become warnings. The first invalid value stops configuration with a
// Configuration error.
func configure(op string, opts Options, setters map[string]setter) ([]Warning, error) {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var warnings []Warning
	for _, k := range keys {
		set, ok := setters[k]
		if !ok {
			w := Warning{Key: k, Msg: fmt.Sprintf("%s has no setting %q; ignored", op, k)}
			log.Warning(w.Msg)
			warnings = append(warnings, w)
			continue
		}
		if err := set(opts[k]); err != nil {
			return warnings, wrapError(Configuration, op, err, "setting %s=%v", k, opts[k])
		}
	}
	return warnings, nil
}

func settingNames(setters map[string]setter) []string {
	names := make([]string, 0, len(setters))
	for k := range setters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func asInt(v interface{}) (int, error) {
	switch v := v.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int(v), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	}
	return 0, fmt.Errorf("%T is not an integer", v)
}

func asFloat(v interface{}) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	}
	return 0, fmt.Errorf("%T is not a number", v)
}

func asBool(v interface{}) (bool, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	}
	return false, fmt.Errorf("%T is not a boolean", v)
}

func asString(v interface{}) (string, error) {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return "", fmt.Errorf("%T is not a string", v)
}

// intSetter returns a setter storing an integer >= min into p.
func intSetter(p *int, min int) setter {
	return func(v interface{}) error {
		i, err := asInt(v)
		if err != nil {
			return err
		}
		if i < min {
			return fmt.Errorf("%d is less than %d", i, min)
		}
		*p = i
		return nil
	}
}

// positiveSetter returns a setter storing a positive float into p.
func positiveSetter(p *float64) setter {
	return func(v interface{}) error {
		x, err := asFloat(v)
		if err != nil {
			return err
		}
		if !(x > 0) || math.IsInf(x, 1) {
			return fmt.Errorf("%v is not positive", x)
		}
		*p = x
		return nil
	}
}

func boolSetter(p *bool) setter {
	return func(v interface{}) error {
		b, err := asBool(v)
		if err != nil {
			return err
		}
		*p = b
		return nil
	}
}

// splitLazy returns the "lazy" option and the remaining options.
func splitLazy(opts Options) (bool, Options, error) {
	v, ok := opts["lazy"]
	if !ok {
		return false, opts, nil
	}
	lazy, err := asBool(v)
	if err != nil {
		return false, nil, wrapError(Configuration, "fit", err, "setting lazy=%v", v)
	}
	rest := make(Options, len(opts)-1)
	for k, v := range opts {
		if k != "lazy" {
			rest[k] = v
		}
	}
	return lazy, rest, nil
}
