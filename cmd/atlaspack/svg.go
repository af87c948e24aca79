// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/texatlas/atlaspack/atlas"
	"github.com/texatlas/atlaspack/internal/session"
	"github.com/texatlas/atlaspack/internal/svg"
)

func newSVGCmd() *cobra.Command {
	var sessionPath, outPath string
	var maxDim float64

	cmd := &cobra.Command{
		Use:   "svg --session FILE --out FILE.svg",
		Short: "Render a session's packing as SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := session.Load(sessionPath)
			if err != nil {
				return err
			}
			al := atlas.New(atlas.Size{W: f.Width, H: f.Height})
			session.Replay(al, f)

			out := os.Stdout
			if outPath != "" {
				fh, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("svg: create %s: %w", outPath, err)
				}
				defer fh.Close()
				return svg.Write(fh, al, svg.DefaultColors(), maxDim)
			}
			return svg.Write(out, al, svg.DefaultColors(), maxDim)
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session", "", "session file to render")
	cmd.Flags().StringVar(&outPath, "out", "", "output SVG path (defaults to stdout)")
	cmd.Flags().Float64Var(&maxDim, "max-dimension", 1024, "longest side of the rendered SVG, in pixels")
	cmd.MarkFlagRequired("session")
	return cmd
}
