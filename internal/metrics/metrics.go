// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package metrics exposes Prometheus counters and gauges describing a
// running atlaspack session, scraped by the serve subcommand's
// /metrics endpoint.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors groups every metric atlaspack reports.
type Collectors struct {
	Allocations   prometheus.Counter
	Deallocations prometheus.Counter
	Failures      prometheus.Counter
	OccupiedArea  prometheus.Gauge
	FreeBuckets   *prometheus.GaugeVec
}

// NewCollectors creates and registers a fresh set of collectors
// against reg.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "atlaspack",
			Name:      "allocations_total",
			Help:      "Number of successful Allocate calls.",
		}),
		Deallocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "atlaspack",
			Name:      "deallocations_total",
			Help:      "Number of Deallocate calls.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "atlaspack",
			Name:      "allocation_failures_total",
			Help:      "Number of Allocate calls that found no free rectangle.",
		}),
		OccupiedArea: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "atlaspack",
			Name:      "occupied_area",
			Help:      "Total area currently allocated in the atlas.",
		}),
		FreeBuckets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "atlaspack",
			Name:      "free_bucket_size",
			Help:      "Number of entries in each free-list size bucket.",
		}, []string{"bucket"}),
	}

	reg.MustRegister(c.Allocations, c.Deallocations, c.Failures, c.OccupiedArea, c.FreeBuckets)
	return c
}
