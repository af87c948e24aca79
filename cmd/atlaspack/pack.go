// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/texatlas/atlaspack/atlas"
	"github.com/texatlas/atlaspack/internal/session"
	"github.com/texatlas/atlaspack/internal/trace"
)

type packFlags struct {
	width, height  int32
	alignX, alignY int32
	sessionPath    string
	only           string
	requests       []string
}

func newPackCmd(root *rootFlags) *cobra.Command {
	flags := &packFlags{}

	cmd := &cobra.Command{
		Use:   "pack --session FILE WxH[=name] ...",
		Short: "Allocate a list of rectangle requests into a session",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, span := trace.Tracer().Start(cmd.Context(), "pack")
			defer span.End()
			cmd.SetContext(ctx)

			cfg, err := loadConfig(root, cmd.Flags())
			if err != nil {
				return err
			}
			if flags.width == 0 {
				flags.width = cfg.DefaultWidth
			}
			if flags.height == 0 {
				flags.height = cfg.DefaultHeight
			}

			logger, err := newLogger(root)
			if err != nil {
				return err
			}

			var g glob.Glob
			if flags.only != "" {
				g, err = glob.Compile(flags.only)
				if err != nil {
					return fmt.Errorf("pack: invalid --only pattern: %w", err)
				}
			}

			opts := atlas.DefaultOptions()
			if flags.alignX > 0 {
				opts.Alignment.X = flags.alignX
			}
			if flags.alignY > 0 {
				opts.Alignment.Y = flags.alignY
			}
			al := atlas.WithOptions(atlas.Size{W: flags.width, H: flags.height}, opts)

			names := map[atlas.AllocId]string{}
			requests := append([]string{}, flags.requests...)
			requests = append(requests, args...)

			rows := make([][]string, 0, len(requests))
			for _, req := range requests {
				name, w, h, err := parseRequest(req)
				if err != nil {
					return err
				}
				if g != nil && !g.Match(name) {
					continue
				}
				a, ok := al.Allocate(atlas.Size{W: w, H: h})
				status := "ok"
				origin := ""
				if ok {
					names[a.Id] = name
					origin = fmt.Sprintf("(%d,%d)", a.Rectangle.Min.X, a.Rectangle.Min.Y)
				} else {
					status = "failed"
				}
				rows = append(rows, []string{name, fmt.Sprintf("%dx%d", w, h), status, origin})
				logger.WithFields(map[string]any{"name": name, "w": w, "h": h, "ok": ok}).Info("allocate")
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header([]string{"name", "size", "status", "origin"})
			for _, r := range rows {
				table.Append(r)
			}
			table.Render()

			if flags.sessionPath != "" {
				f := session.FromAllocator(al, names)
				if err := session.Save(flags.sessionPath, f); err != nil {
					return err
				}
			}
			return nil
		},
	}

	pf := cmd.Flags()
	pf.Int32Var(&flags.width, "width", 0, "atlas width (defaults to config)")
	pf.Int32Var(&flags.height, "height", 0, "atlas height (defaults to config)")
	pf.Int32Var(&flags.alignX, "align-x", 0, "horizontal alignment")
	pf.Int32Var(&flags.alignY, "align-y", 0, "vertical alignment")
	pf.StringVar(&flags.sessionPath, "session", "", "session file to write the result to")
	pf.StringVar(&flags.only, "only", "", "glob pattern restricting which named requests are packed")
	pf.StringArrayVar(&flags.requests, "request", nil, "a WxH=name request; may be repeated")

	return cmd
}

// parseRequest accepts "WxH" or "WxH=name".
func parseRequest(s string) (name string, w, h int32, err error) {
	rest := s
	if i := strings.IndexByte(s, '='); i >= 0 {
		name = s[i+1:]
		rest = s[:i]
	}
	if _, err = fmt.Sscanf(rest, "%dx%d", &w, &h); err != nil {
		return "", 0, 0, fmt.Errorf("pack: invalid request %q: %w", s, err)
	}
	if name == "" {
		name = rest
	}
	return name, w, h, nil
}
