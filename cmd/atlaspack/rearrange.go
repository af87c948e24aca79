// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/texatlas/atlaspack/atlas"
	"github.com/texatlas/atlaspack/internal/session"
)

func newRearrangeCmd() *cobra.Command {
	var sessionPath string
	var width, height int32

	cmd := &cobra.Command{
		Use:   "rearrange --session FILE [--width W --height H]",
		Short: "Defragment a session, optionally resizing the atlas at the same time",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := session.Load(sessionPath)
			if err != nil {
				return err
			}
			al := atlas.New(atlas.Size{W: f.Width, H: f.Height})
			names := session.Replay(al, f)
			byID := map[atlas.AllocId]string{}
			for name, id := range names {
				byID[id] = name
			}

			newSize := al.Size()
			if width > 0 {
				newSize.W = width
			}
			if height > 0 {
				newSize.H = height
			}

			cl := al.ResizeAndRearrange(newSize)

			newNames := map[atlas.AllocId]string{}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header([]string{"name", "old origin", "new origin", "status"})
			for _, c := range cl.Changes {
				name := byID[c.OldId]
				newNames[c.NewId] = name
				table.Append([]string{
					name,
					fmt.Sprintf("(%d,%d)", c.OldRect.Min.X, c.OldRect.Min.Y),
					fmt.Sprintf("(%d,%d)", c.NewRect.Min.X, c.NewRect.Min.Y),
					"moved",
				})
			}
			for _, fail := range cl.Failures {
				table.Append([]string{byID[fail.Id], fmt.Sprintf("(%d,%d)", fail.Rect.Min.X, fail.Rect.Min.Y), "-", "dropped"})
			}
			table.Render()

			return session.Save(sessionPath, session.FromAllocator(al, newNames))
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session", "", "session file to rearrange")
	cmd.Flags().Int32Var(&width, "width", 0, "new atlas width (defaults to the current size)")
	cmd.Flags().Int32Var(&height, "height", 0, "new atlas height (defaults to the current size)")
	cmd.MarkFlagRequired("session")
	return cmd
}
