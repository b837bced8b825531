// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// statfit reads a delimited sample and fits distributions to it.
//
// Each line of the input is a row and each field an event: a value,
// a censored value such as 5-, 3+, [2, 4], ]0.5, 1[ or {a, b}, or ?
// when missing. Fields are separated by ';' unless -sep says
// otherwise. Defaults are read from STATFIT_* environment variables
// and from a .env file in the current directory.
package main

import (
	"os"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"

	"github.com/aclements/go-statfit/internal/config"
	statlog "github.com/aclements/go-statfit/internal/logging"
)

var (
	cfg = config.Default()
	log = logging.MustGetLogger("statfit")
)

var (
	separatorFlag = cli.StringFlag{
		Name:  "sep",
		Usage: "field separator of the input",
	}
	noHeaderFlag = cli.BoolFlag{
		Name:  "no-header",
		Usage: "the input has no header line; columns are named x0, x1, ...",
	}
	columnFlag = cli.StringSliceFlag{
		Name:    "column",
		Aliases: []string{"c"},
		Usage:   "column to use (repeatable; default all)",
	}
	optionFlag = cli.StringSliceFlag{
		Name:    "set",
		Aliases: []string{"o"},
		Usage:   "estimator setting as `key=value` (repeatable)",
	}
	lazyFlag = cli.BoolFlag{
		Name:  "lazy",
		Usage: "discard the sample from estimations",
	}
)

var app = cli.App{
	Name:      "statfit",
	HelpName:  "statfit",
	Usage:     "fit distributions to censored samples",
	ArgsUsage: "[file]",
	Flags: []cli.Flag{
		&statlog.LogLevelFlag,
	},
	Before: func(ctx *cli.Context) error {
		c, err := config.Load(".env")
		if err != nil {
			return err
		}
		cfg = c
		level := cfg.LogLevel
		if ctx.IsSet(statlog.LogLevelFlag.Name) {
			level = ctx.String(statlog.LogLevelFlag.Name)
		}
		log = statlog.Setup(level, "statfit")
		return nil
	},
	Commands: []*cli.Command{
		&describeCommand,
		&fitCommand,
		&histogramCommand,
		&independentCommand,
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		log.Critical(err)
		os.Exit(1)
	}
}
