// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotlab/simview/live"
	"github.com/robotlab/simview/math32"
)

func assertVector(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.Z, got.Z, 1e-5)
}

func TestTree(t *testing.T) {
	tr := NewTree()
	yaw := live.NewVar("yaw", math32.Pi / 2)
	require.NoError(t, tr.Add("base", World, Pose{Position: live.ConstVector3(math32.Vec3(1, 0, 0))}))
	require.NoError(t, tr.Add("link", "base", Pose{Orientation: live.Orientation{Yaw: yaw}}))
	require.NoError(t, tr.Add("tool", "link", Pose{Position: live.ConstVector3(math32.Vec3(0.5, 0, 0))}))

	assert.True(t, tr.Has("tool"))
	assert.True(t, tr.Has(""))
	assert.Equal(t, []string{"base", "link", "tool"}, tr.Names())

	assertVector(t, math32.Vec3(1, 0, 0), tr.PointToWorld("base", math32.Vector3{}))
	assertVector(t, math32.Vec3(1, 1, 0), tr.PointToWorld("link", math32.Vec3(1, 0, 0)))
	assertVector(t, math32.Vec3(1, 0.5, 0), tr.PointToWorld("tool", math32.Vector3{}))
	assertVector(t, math32.Vec3(2, 3, 4), tr.PointToWorld(World, math32.Vec3(2, 3, 4)))

	q := tr.OrientationToWorld("tool", math32.QuatIdentity())
	assertVector(t, math32.Vec3(0, 1, 0), math32.Vec3(1, 0, 0).MulQuat(q))

	yaw.Set(0)
	assertVector(t, math32.Vec3(1.5, 0, 0), tr.PointToWorld("tool", math32.Vector3{}))

	yaw.Set(math32.NaN())
	assert.True(t, tr.PointToWorld("tool", math32.Vector3{}).IsNaN())
	assert.True(t, tr.OrientationToWorld("tool", math32.QuatIdentity()).IsNaN())
	assert.False(t, tr.PointToWorld("base", math32.Vector3{}).IsNaN())
}

func TestTreeErrors(t *testing.T) {
	tr := NewTree()
	assert.ErrorIs(t, tr.Add("a", "missing", Pose{}), ErrUnknownFrame)
	require.NoError(t, tr.Add("a", "", Pose{}))
	assert.ErrorIs(t, tr.Add("a", World, Pose{}), ErrFrameExists)
	assert.ErrorIs(t, tr.Add(World, World, Pose{}), ErrFrameExists)

	assert.True(t, tr.PointToWorld("missing", math32.Vector3{}).IsNaN())
	_, _, ok := tr.Transform("missing")
	assert.False(t, ok)
}

func TestIdentity(t *testing.T) {
	var r Resolver = Identity{}
	assert.Equal(t, math32.Vec3(1, 2, 3), r.PointToWorld("any", math32.Vec3(1, 2, 3)))
	assert.True(t, r.OrientationToWorld("any", math32.QuatIdentity()).IsIdentity())
}
