// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package log configures the process-wide logger used by the CLI and
// long-running commands.
package log

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// New returns a logger at the given level, formatted for a human
// reader when stdout is a terminal and as JSON otherwise.
func New(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}

// ParseLevel is a thin wrapper over logrus.ParseLevel so callers don't
// need to import logrus just to parse a --log-level flag.
func ParseLevel(s string) (logrus.Level, error) {
	return logrus.ParseLevel(s)
}
