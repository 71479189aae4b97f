// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package live

import (
	"github.com/robotlab/simview/math32"
)

// Vector2 is a 2D point or vector of [Float] components.
type Vector2 struct {
	X, Y Float
}

// ConstVector2 returns a constant vector.
func ConstVector2(v math32.Vector2) Vector2 {
	return Vector2{Const(v.X), Const(v.Y)}
}

// Value returns the current vector, with NaN for missing components.
func (v Vector2) Value() math32.Vector2 {
	return math32.Vec2(ValueOf(v.X), ValueOf(v.Y))
}

// Vector3 is a 3D point or vector of [Float] components.
type Vector3 struct {
	X, Y, Z Float
}

// ConstVector3 returns a constant vector.
func ConstVector3(v math32.Vector3) Vector3 {
	return Vector3{Const(v.X), Const(v.Y), Const(v.Z)}
}

// Value returns the current vector, with NaN for missing components.
func (v Vector3) Value() math32.Vector3 {
	return math32.Vec3(ValueOf(v.X), ValueOf(v.Y), ValueOf(v.Z))
}

// IsSet returns whether any component is bound.
func (v Vector3) IsSet() bool {
	return v.X != nil || v.Y != nil || v.Z != nil
}

// Vector2s returns the current values of a list of points.
func Vector2s(vs []Vector2) []math32.Vector2 {
	out := make([]math32.Vector2, len(vs))
	for i, v := range vs {
		out[i] = v.Value()
	}
	return out
}

// Vector3s returns the current values of a list of points.
func Vector3s(vs []Vector3) []math32.Vector3 {
	out := make([]math32.Vector3, len(vs))
	for i, v := range vs {
		out[i] = v.Value()
	}
	return out
}

// Floats returns the current values of a list of scalars.
func Floats(fs []Float) []float32 {
	out := make([]float32, len(fs))
	for i, f := range fs {
		out[i] = ValueOf(f)
	}
	return out
}

// Orientation is an orientation given either as yaw, pitch and roll
// angles in radians or as a quaternion. The quaternion is used if any of
// its components is bound. An orientation with nothing bound is the identity.
type Orientation struct {
	Yaw, Pitch, Roll Float

	Quat [4]Float
}

// IsQuat returns whether the orientation is given as a quaternion.
func (o Orientation) IsQuat() bool {
	return o.Quat[0] != nil || o.Quat[1] != nil || o.Quat[2] != nil || o.Quat[3] != nil
}

// IsSet returns whether any component is bound.
func (o Orientation) IsSet() bool {
	return o.IsQuat() || o.Yaw != nil || o.Pitch != nil || o.Roll != nil
}

// Value returns the current orientation, with NaN components
// if any bound component is unavailable.
func (o Orientation) Value() math32.Quat {
	if o.IsQuat() {
		q := math32.NewQuat(ValueOf(o.Quat[0]), ValueOf(o.Quat[1]), ValueOf(o.Quat[2]), ValueOf(o.Quat[3]))
		if q.IsNaN() {
			return math32.QuatNaN()
		}
		return q.Normal()
	}
	if !o.IsSet() {
		return math32.QuatIdentity()
	}
	yaw, pitch, roll := valueOr0(o.Yaw), valueOr0(o.Pitch), valueOr0(o.Roll)
	if math32.AnyNaN(yaw, pitch, roll) {
		return math32.QuatNaN()
	}
	return math32.NewQuatYawPitchRoll(yaw, pitch, roll)
}

func valueOr0(f Float) float32 {
	if f == nil {
		return 0
	}
	return f.Value()
}
