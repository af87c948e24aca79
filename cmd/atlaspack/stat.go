// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/texatlas/atlaspack/atlas"
	"github.com/texatlas/atlaspack/internal/metrics"
	"github.com/texatlas/atlaspack/internal/session"
)

func newStatCmd() *cobra.Command {
	var sessionPath string

	cmd := &cobra.Command{
		Use:   "stat --session FILE",
		Short: "Print occupancy and free-list statistics for a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := session.Load(sessionPath)
			if err != nil {
				return err
			}
			al := atlas.New(atlas.Size{W: f.Width, H: f.Height})
			session.Replay(al, f)

			reg := prometheus.NewRegistry()
			collectors := metrics.NewCollectors(reg)

			var occupied int64
			al.ForEachAllocatedRectangle(func(_ atlas.AllocId, r atlas.Rectangle) {
				occupied += r.Area()
				collectors.Allocations.Inc()
			})
			collectors.OccupiedArea.Set(float64(occupied))

			buckets := al.FreeBucketCounts()
			bucketNames := []string{"small", "medium", "large"}
			for i, n := range buckets {
				collectors.FreeBuckets.WithLabelValues(bucketNames[i]).Set(float64(n))
			}

			total := al.Size().Area()
			occupancy := 0.0
			if total > 0 {
				occupancy = float64(occupied) / float64(total) * 100
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header([]string{"metric", "value"})
			table.Append([]string{"atlas size", fmt.Sprintf("%dx%d", f.Width, f.Height)})
			table.Append([]string{"occupied area", fmt.Sprintf("%d", occupied)})
			table.Append([]string{"occupancy", color.GreenString("%.2f%%", occupancy)})
			for i, n := range buckets {
				table.Append([]string{bucketNames[i] + " free entries", fmt.Sprintf("%d", n)})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session", "", "session file to report on")
	cmd.MarkFlagRequired("session")
	return cmd
}
