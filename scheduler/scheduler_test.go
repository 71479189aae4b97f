// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotlab/simview/graphic"
	"github.com/robotlab/simview/live"
)

// newScene returns a scene with n cones of height h, and a flat capsule.
func newScene(t *testing.T, n int, h live.Float) *graphic.Scene {
	sc := graphic.NewScene()
	for i := range n {
		cn := graphic.NewCone3D(sc, fmt.Sprintf("cone%d", i))
		cn.Height, cn.Radius = h, live.Const(0.02)
		require.NoError(t, sc.SessionRoot.Attach(cn))
	}
	cp := graphic.NewCapsule3D(sc, "flat")
	cp.Length, cp.Radius = live.Const(1), live.Const(0)
	require.NoError(t, sc.GUIRoot.Attach(cp))
	return sc
}

func TestComputeBackground(t *testing.T) {
	h := live.NewVar("h", 0.1)
	sc := newScene(t, 20, h)
	reg := prometheus.NewRegistry()
	s := New(sc, 4, NewMetrics(reg))

	cnt, err := s.ComputeBackground(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, cnt[graphic.OutcomeBuilt])
	assert.Equal(t, 1, cnt[graphic.OutcomeCleared])

	cnt, err = s.ComputeBackground(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, cnt[graphic.OutcomeCacheHit])

	h.Set(0.2)
	_, err = s.ComputeBackground(context.Background())
	require.NoError(t, err)

	assert.Equal(t, float64(40), testutil.ToFloat64(s.Metrics.Builds.WithLabelValues("cone")))
	assert.Equal(t, float64(20), testutil.ToFloat64(s.Metrics.CacheHits))
	assert.Equal(t, float64(3), testutil.ToFloat64(s.Metrics.Clears))
	assert.Equal(t, 1, testutil.CollectAndCount(s.Metrics.BackgroundPass))
	assert.EqualValues(t, 3, s.BackgroundPasses())

	s.Render()
	assert.Len(t, sc.Drawables(), 20)
	assert.Equal(t, 1, testutil.CollectAndCount(s.Metrics.RenderPass))
	assert.EqualValues(t, 1, s.RenderPasses())
}

func TestComputeBackgroundCanceled(t *testing.T) {
	sc := newScene(t, 5, live.Const(0.1))
	s := New(sc, 1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.ComputeBackground(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 0, s.BackgroundPasses())
}

func TestRunAll(t *testing.T) {
	sc := newScene(t, 3, live.Const(0.1))
	s := New(sc, 0, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := s.RunAll(ctx, 10*time.Millisecond, 10*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, s.BackgroundPasses())
	assert.Positive(t, s.RenderPasses())
	assert.Len(t, sc.Drawables(), 3)
}

func TestInterval(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, Interval(10))
	assert.Equal(t, time.Duration(0), Interval(0))
}
