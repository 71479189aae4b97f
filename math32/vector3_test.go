// Copyright 2021 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const StandardTol = float32(1.0e-6)

func TolAssertEqualVector(t *testing.T, tol float32, vt, va Vector3) {
	t.Helper()
	assert.InDelta(t, vt.X, va.X, float64(tol))
	assert.InDelta(t, vt.Y, va.Y, float64(tol))
	assert.InDelta(t, vt.Z, va.Z, float64(tol))
}

func TestVector3Basics(t *testing.T) {
	vx := Vec3(1, 0, 0)
	vy := Vec3(0, 1, 0)
	assert.Equal(t, Vec3(0, 0, 1), vx.Cross(vy))
	assert.Equal(t, float32(0), vx.Dot(vy))
	assert.Equal(t, float32(5), Vec3(3, 4, 0).Length())
	assert.Equal(t, float32(25), Vec3(3, 4, 0).LengthSquared())
	TolAssertEqualVector(t, StandardTol, Vec3(0.6, 0.8, 0), Vec3(3, 4, 0).Normal())
	assert.Equal(t, Vector3{}, Vector3{}.Normal())
	assert.Equal(t, Vec3(1, 2, 3), Vec3(2, 4, 6).DivScalar(2))
	assert.Equal(t, Vector3{}, Vec3(2, 4, 6).DivScalar(0))
}

func TestVector3NaN(t *testing.T) {
	assert.False(t, Vec3(1, 2, 3).IsNaN())
	assert.True(t, Vec3(1, NaN(), 3).IsNaN())
	assert.True(t, Vector3NaN().IsNaN())
	assert.True(t, Vector3NaN().Equals(Vector3NaN()))
	assert.False(t, Vector3NaN().Equals(Vec3(1, 2, 3)))
	assert.True(t, Vec3(1, 2, 3).Equals(Vec3(1, 2, 3)))
}

func TestVector3Perpendicular(t *testing.T) {
	for _, v := range []Vector3{Vec3(1, 0, 0), Vec3(0, 1, 0), Vec3(0, 0, 1), Vec3(1, 2, 3)} {
		p := v.Perpendicular()
		assert.InDelta(t, 0, v.Dot(p), 1e-5)
		assert.InDelta(t, 1, p.Length(), 1e-5)
	}
}

func TestQuatRotation(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 0, 1), Pi/2)
	TolAssertEqualVector(t, StandardTol, Vec3(0, 1, 0), Vec3(1, 0, 0).MulQuat(q))

	q2 := q.Mul(q)
	TolAssertEqualVector(t, StandardTol, Vec3(-1, 0, 0), Vec3(1, 0, 0).MulQuat(q2))

	assert.True(t, QuatIdentity().IsIdentity())
	assert.True(t, QuatNaN().IsNaN())
	assert.Equal(t, QuatIdentity(), Quat{}.Normal())
}

func TestQuatUnitVectors(t *testing.T) {
	z := Vec3(0, 0, 1)
	for _, to := range []Vector3{Vec3(1, 0, 0), Vec3(0, 1, 0), Vec3(0, 0, -1), Vec3(0, 0, 1), Vec3(1, 1, 1).Normal()} {
		q := NewQuatUnitVectors(z, to)
		TolAssertEqualVector(t, 1e-5, to, z.MulQuat(q))
	}
}

func TestQuatYawPitchRoll(t *testing.T) {
	q := NewQuatYawPitchRoll(Pi/2, 0, 0)
	TolAssertEqualVector(t, 1e-6, Vec3(0, 1, 0), Vec3(1, 0, 0).MulQuat(q))
	q = NewQuatYawPitchRoll(0, Pi/2, 0)
	TolAssertEqualVector(t, 1e-6, Vec3(0, 0, -1), Vec3(1, 0, 0).MulQuat(q))
}

func TestBox3(t *testing.T) {
	bb := B3Empty()
	assert.True(t, bb.IsEmpty())
	bb.ExpandByPoint(Vec3(1, 2, 3))
	bb.ExpandByPoint(Vec3(-1, 0, 1))
	assert.False(t, bb.IsEmpty())
	assert.Equal(t, Vec3(0, 1, 2), bb.Center())
	assert.Equal(t, Vec3(2, 2, 2), bb.Size())

	rb := Box3{Min: Vec3(0, 0, 0), Max: Vec3(1, 1, 1)}.MulQuat(NewQuatAxisAngle(Vec3(0, 0, 1), Pi), Vec3(1, 1, 0))
	TolAssertEqualVector(t, 1e-5, Vec3(0, 0, 0), rb.Min)
	TolAssertEqualVector(t, 1e-5, Vec3(1, 1, 1), rb.Max)
}

func TestArrayF32(t *testing.T) {
	var a ArrayF32
	a.AppendVector3(Vec3(1, 2, 3), Vec3(4, 5, 6))
	a.Append(7, 8)
	assert.Equal(t, 8, a.Len())
	assert.Equal(t, Vec3(4, 5, 6), a.Vector3(3))
	assert.Equal(t, Vec3(6, 7, 8), a.Vector3(5))
}
