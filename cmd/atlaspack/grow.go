// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/texatlas/atlaspack/atlas"
	"github.com/texatlas/atlaspack/internal/session"
)

func newGrowCmd() *cobra.Command {
	var sessionPath string
	var width, height int32

	cmd := &cobra.Command{
		Use:   "grow --session FILE --width W --height H",
		Short: "Grow a session's atlas in place, preserving existing allocations",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
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

			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("grow: %v", r)
				}
			}()
			al.Grow(atlas.Size{W: width, H: height})

			return session.Save(sessionPath, session.FromAllocator(al, byID))
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session", "", "session file to grow")
	cmd.Flags().Int32Var(&width, "width", 0, "new atlas width")
	cmd.Flags().Int32Var(&height, "height", 0, "new atlas height")
	cmd.MarkFlagRequired("session")
	return cmd
}
