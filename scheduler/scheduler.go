// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scheduler runs the background and render passes of a scene:
// mesh rebuilds in parallel on a bounded pool of workers, and pose
// updates on the caller's thread.
package scheduler

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/robotlab/simview/base/logx"
	"github.com/robotlab/simview/graphic"
)

// Scheduler runs the passes of a scene.
type Scheduler struct {
	Scene *graphic.Scene

	// Workers is the maximum number of leaves computed at once.
	// Zero or less uses the number of CPUs.
	Workers int

	// Metrics records the outcomes and durations of the passes. It may be nil.
	Metrics *Metrics

	// bgMu serializes background passes.
	bgMu sync.Mutex

	backgroundPasses atomic.Int64
	renderPasses     atomic.Int64
}

// New returns a scheduler for the scene.
func New(sc *graphic.Scene, workers int, m *Metrics) *Scheduler {
	return &Scheduler{Scene: sc, Workers: workers, Metrics: m}
}

func (s *Scheduler) workers() int {
	if s.Workers <= 0 {
		return runtime.NumCPU()
	}
	return s.Workers
}

// BackgroundPasses returns the number of completed background passes.
func (s *Scheduler) BackgroundPasses() int64 { return s.backgroundPasses.Load() }

// RenderPasses returns the number of render passes.
func (s *Scheduler) RenderPasses() int64 { return s.renderPasses.Load() }

// ComputeBackground runs one background pass: it snapshots the leaves of
// the scene and calls [graphic.Leaf.ComputeBackground] on each, in parallel.
// A pass started while another runs waits for it. If the context is done
// the remaining leaves are skipped and the context error is returned.
func (s *Scheduler) ComputeBackground(ctx context.Context) (graphic.Counts, error) {
	s.bgMu.Lock()
	defer s.bgMu.Unlock()
	start := time.Now()

	var cnt [graphic.OutcomesN]atomic.Int64
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers())
	for _, lf := range s.Scene.Leaves() {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			out := lf.ComputeBackground()
			cnt[out].Add(1)
			s.Metrics.outcome(lf, out)
			return nil
		})
	}
	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}

	var res graphic.Counts
	for i := range cnt {
		res[i] = int(cnt[i].Load())
	}
	if err != nil {
		return res, err
	}
	d := time.Since(start)
	s.Metrics.backgroundPass(d)
	s.backgroundPasses.Add(1)
	logx.Logger().Debug("background pass", "scene", s.Scene.ID.String(), "built", res[graphic.OutcomeBuilt],
		"cleared", res[graphic.OutcomeCleared], "failed", res[graphic.OutcomeFailed], "duration", d)
	return res, nil
}

// Render runs one render pass on the calling goroutine.
// It does not wait for background passes.
func (s *Scheduler) Render() {
	start := time.Now()
	for _, lf := range s.Scene.Leaves() {
		lf.Render()
	}
	s.Metrics.renderPass(time.Since(start))
	s.renderPasses.Add(1)
}

// Run runs a background pass every interval until the context is done,
// returning the context error.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	return tick(ctx, interval, func() {
		if _, err := s.ComputeBackground(ctx); err != nil && ctx.Err() == nil {
			logx.Logger().Error("background pass", "err", err)
		}
	})
}

// RunRender runs a render pass every interval until the context is done,
// returning the context error.
func (s *Scheduler) RunRender(ctx context.Context, interval time.Duration) error {
	return tick(ctx, interval, s.Render)
}

// RunAll runs both passes at their intervals until the context is done.
func (s *Scheduler) RunAll(ctx context.Context, background, render time.Duration) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return s.Run(ctx, background) })
	eg.Go(func() error { return s.RunRender(ctx, render) })
	return eg.Wait()
}

func tick(ctx context.Context, interval time.Duration, fun func()) error {
	if interval <= 0 {
		interval = time.Second / 30
	}
	tk := time.NewTicker(interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tk.C:
			fun()
		}
	}
}

// Interval returns the period of a rate in Hz, zero for a rate of zero or less.
func Interval(hz float64) time.Duration {
	if hz <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / hz)
}
