// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scheduler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/robotlab/simview/graphic"
)

// Metrics are the Prometheus collectors of a [Scheduler].
// A nil *Metrics records nothing.
type Metrics struct {
	// Builds counts mesh builds by shape kind.
	Builds *prometheus.CounterVec

	CacheHits prometheus.Counter
	Clears    prometheus.Counter

	// Failures counts failed mesh builds by shape kind.
	Failures *prometheus.CounterVec

	BackgroundPass prometheus.Histogram
	RenderPass     prometheus.Histogram
}

// NewMetrics returns the metrics of a scheduler, registered on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Builds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "simview_mesh_builds_total",
			Help: "Number of meshes built by the background pass, by shape kind",
		}, []string{"kind"}),
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "simview_mesh_cache_hits_total",
			Help: "Number of background computations with unchanged shape parameters",
		}),
		Clears: f.NewCounter(prometheus.CounterOpts{
			Name: "simview_mesh_clears_total",
			Help: "Number of background computations with degenerate shape parameters",
		}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "simview_mesh_failures_total",
			Help: "Number of failed mesh builds, by shape kind",
		}, []string{"kind"}),
		BackgroundPass: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "simview_background_pass_seconds",
			Help:    "Duration of background passes in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		RenderPass: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "simview_render_pass_seconds",
			Help:    "Duration of render passes in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10),
		}),
	}
}

func (m *Metrics) outcome(lf graphic.Leaf, out graphic.Outcome) {
	if m == nil {
		return
	}
	switch out {
	case graphic.OutcomeBuilt:
		m.Builds.WithLabelValues(lf.AsLeaf().ShapeKind().String()).Inc()
	case graphic.OutcomeCacheHit:
		m.CacheHits.Inc()
	case graphic.OutcomeCleared:
		m.Clears.Inc()
	case graphic.OutcomeFailed:
		m.Failures.WithLabelValues(lf.AsLeaf().ShapeKind().String()).Inc()
	}
}

func (m *Metrics) backgroundPass(d time.Duration) {
	if m != nil {
		m.BackgroundPass.Observe(d.Seconds())
	}
}

func (m *Metrics) renderPass(d time.Duration) {
	if m != nil {
		m.RenderPass.Observe(d.Seconds())
	}
}
