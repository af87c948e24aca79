// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/texatlas/atlaspack/atlas"
	"github.com/texatlas/atlaspack/internal/config"
	"github.com/texatlas/atlaspack/internal/metrics"
	"github.com/texatlas/atlaspack/internal/session"
)

// newServeCmd runs a long-lived process that watches a session file and
// exposes its occupancy as Prometheus metrics on /metrics, reloading
// whenever the file changes on disk.
func newServeCmd(root *rootFlags) *cobra.Command {
	var sessionPath, addr, watchConfigPath string

	cmd := &cobra.Command{
		Use:   "serve --session FILE --addr :9090",
		Short: "Serve Prometheus metrics for a session, reloading it on change",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(root)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			collectors := metrics.NewCollectors(reg)

			var mu sync.Mutex
			reload := func() error {
				f, err := session.Load(sessionPath)
				if err != nil {
					return err
				}
				al := atlas.New(atlas.Size{W: f.Width, H: f.Height})
				session.Replay(al, f)

				mu.Lock()
				defer mu.Unlock()
				collectors.Allocations.Add(0) // ensure the series exists even when empty
				var occupied int64
				al.ForEachAllocatedRectangle(func(_ atlas.AllocId, r atlas.Rectangle) {
					occupied += r.Area()
				})
				collectors.OccupiedArea.Set(float64(occupied))
				for i, n := range al.FreeBucketCounts() {
					collectors.FreeBuckets.WithLabelValues([]string{"small", "medium", "large"}[i]).Set(float64(n))
				}
				return nil
			}
			if err := reload(); err != nil {
				return fmt.Errorf("serve: initial load: %w", err)
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("serve: watcher: %w", err)
			}
			defer watcher.Close()
			if err := watcher.Add(sessionPath); err != nil {
				return fmt.Errorf("serve: watch %s: %w", sessionPath, err)
			}

			go func() {
				for event := range watcher.Events {
					if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
						continue
					}
					if err := reload(); err != nil {
						logger.WithError(err).Warn("serve: reload failed")
					} else {
						logger.Info("serve: session reloaded")
					}
				}
			}()

			if watchConfigPath != "" {
				stop, err := config.Watch(watchConfigPath, func() {
					logger.Info("serve: config file changed")
				})
				if err != nil {
					return fmt.Errorf("serve: watch config: %w", err)
				}
				defer stop()
			}

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

			srv := &http.Server{Addr: addr, Handler: mux}
			logger.WithField("addr", addr).Info("serve: listening")

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			select {
			case <-cmd.Context().Done():
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session", "", "session file to serve metrics for")
	cmd.Flags().StringVar(&addr, "addr", ":9090", "address to listen on")
	cmd.Flags().StringVar(&watchConfigPath, "watch-config", "", "config file to watch, logging each change (disabled when empty)")
	cmd.MarkFlagRequired("session")
	return cmd
}
