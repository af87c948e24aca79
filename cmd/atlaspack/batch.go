// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/texatlas/atlaspack/atlas"
	"github.com/texatlas/atlaspack/internal/session"
	"github.com/texatlas/atlaspack/internal/svg"
)

const maxConcurrentRenders = 4

func newBatchSVGCmd() *cobra.Command {
	var dir, outDir string
	var maxDim float64

	cmd := &cobra.Command{
		Use:   "batch-svg --dir SESSIONS --out-dir SVGS",
		Short: "Render every session file in a directory to SVG, concurrently",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("batch-svg: read %s: %w", dir, err)
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("batch-svg: create %s: %w", outDir, err)
			}

			g, _ := errgroup.WithContext(context.Background())
			g.SetLimit(maxConcurrentRenders)

			for _, e := range entries {
				if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
					continue
				}
				name := e.Name()
				g.Go(func() error {
					return renderOne(dir, outDir, name, maxDim)
				})
			}

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory of session files")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory to write rendered SVGs to")
	cmd.Flags().Float64Var(&maxDim, "max-dimension", 1024, "longest side of each rendered SVG, in pixels")
	cmd.MarkFlagRequired("dir")
	cmd.MarkFlagRequired("out-dir")
	return cmd
}

func renderOne(dir, outDir, name string, maxDim float64) error {
	f, err := session.Load(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	al := atlas.New(atlas.Size{W: f.Width, H: f.Height})
	session.Replay(al, f)

	outPath := filepath.Join(outDir, strings.TrimSuffix(name, ".yaml")+".svg")
	fh, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("batch-svg: create %s: %w", outPath, err)
	}
	defer fh.Close()

	return svg.Write(fh, al, svg.DefaultColors(), maxDim)
}
