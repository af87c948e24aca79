// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/texatlas/atlaspack/internal/config"
	"github.com/texatlas/atlaspack/internal/log"
	"github.com/texatlas/atlaspack/internal/trace"
)

type rootFlags struct {
	logLevel      string
	configPath    string
	traceEndpoint string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var shutdownTrace func(context.Context) error

	root := &cobra.Command{
		Use:           "atlaspack",
		Short:         "Pack rectangles into a growable, rearrangeable texture atlas",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			shutdownTrace, err = trace.Setup(cmd.Context(), flags.traceEndpoint)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if shutdownTrace != nil {
				return shutdownTrace(cmd.Context())
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level (panic, fatal, error, warn, info, debug, trace)")
	pf.StringVar(&flags.configPath, "config", "", "path to an atlaspack.yaml config file")
	pf.StringVar(&flags.traceEndpoint, "trace-endpoint", "", "OTLP/HTTP endpoint to export traces to (tracing is disabled when empty)")

	root.AddCommand(
		newPackCmd(flags),
		newSVGCmd(),
		newGrowCmd(),
		newRearrangeCmd(),
		newStatCmd(),
		newBatchSVGCmd(),
		newServeCmd(flags),
	)
	return root
}

func loadConfig(flags *rootFlags, pf *pflag.FlagSet) (config.Config, error) {
	var paths []string
	if flags.configPath != "" {
		paths = append(paths, flags.configPath)
	}
	return config.Load(paths, pf)
}

func newLogger(flags *rootFlags) (*logrus.Logger, error) {
	lvl, err := log.ParseLevel(flags.logLevel)
	if err != nil {
		return nil, err
	}
	return log.New(lvl), nil
}
