// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package estimate

import (
	"errors"
	"fmt"
)

// Kind classifies estimation failures.
type Kind int

const (
	// Configuration errors are invalid or contradictory
	// estimator settings.
	Configuration Kind = iota + 1

	// TypeMismatch errors report data whose outcome or values are
	// outside the sample space of the requested estimator.
	TypeMismatch

	// InsufficientData errors report too few usable observations,
	// or moments that admit no estimate.
	InsufficientData

	// NonConvergence errors report an optimizer that failed.
	NonConvergence

	// Bounds errors report an index out of range.
	Bounds
)

// Sentinels for use with errors.Is. Every *Error matches the sentinel
// of its Kind.
var (
	ErrConfiguration    = errors.New("configuration error")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrInsufficientData = errors.New("insufficient data")
	ErrNonConvergence   = errors.New("non-convergence")
	ErrBounds           = errors.New("index out of range")
)

// Causes wrapped by InsufficientData errors of count estimators whose
// sample moments fall outside the model.
var (
	// ErrOverdispersed reports a variance at least the mean, which
	// no binomial law has.
	ErrOverdispersed = errors.New("overdispersed sample")
	// ErrUnderdispersed reports a variance at most the mean, which
	// no negative binomial law has.
	ErrUnderdispersed = errors.New("underdispersed sample")
)

func (k Kind) sentinel() error {
	switch k {
	case Configuration:
		return ErrConfiguration
	case TypeMismatch:
		return ErrTypeMismatch
	case InsufficientData:
		return ErrInsufficientData
	case NonConvergence:
		return ErrNonConvergence
	case Bounds:
		return ErrBounds
	}
	return nil
}

func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the error returned by estimators and estimation results.
type Error struct {
	Kind Kind
	// Op names the operation that failed, such as
	// "histogram estimate".
	Op  string
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of e's Kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func newError(kind Kind, op string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, op string, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
