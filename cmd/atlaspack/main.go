// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Command atlaspack drives the atlas rectangle packer from the
// command line: pack a session file's requests, render the result to
// SVG, grow or rearrange an existing session, and print a summary
// table.
package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
