// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging configures the loggers of the statfit packages.
package logging

import (
	"io"
	"os"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

// LogLevelFlag selects the logging level of a command.
var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   "logging level (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\")",
	Value:   "info",
	EnvVars: []string{"STATFIT_LOG_LEVEL"},
}

const defaultLogFormat = "%{time:2006/01/02 15:04:05} %{color}%{level:-8s} %{shortpkg}/%{shortfunc}%{color:reset}: %{message}"

// Setup directs all loggers to stderr at the given level and returns
// the logger of module. An unknown level means INFO.
func Setup(level string, module string) *logging.Logger {
	return SetupWriter(os.Stderr, level, module)
}

// SetupWriter is Setup writing to w without colors.
func SetupWriter(w io.Writer, level string, module string) *logging.Logger {
	backend := logging.NewLogBackend(w, "", 0)
	format := defaultLogFormat
	if w != os.Stderr && w != os.Stdout {
		format = "%{level:-8s} %{module}: %{message}"
	}
	fmtBackend := logging.NewBackendFormatter(backend, logging.MustStringFormatter(format))

	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	lvlBackend := logging.AddModuleLevel(fmtBackend)
	lvlBackend.SetLevel(lvl, "")

	logging.SetBackend(lvlBackend)
	return logging.MustGetLogger(module)
}
