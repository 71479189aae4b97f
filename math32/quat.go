// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "fmt"

// Quat is quaternion with X,Y,Z and W components.
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewQuat returns a new quaternion from the specified components.
func NewQuat(x, y, z, w float32) Quat {
	return Quat{X: x, Y: y, Z: z, W: w}
}

// QuatIdentity returns the identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatNaN returns a quaternion with all components NaN,
// which is how an unavailable orientation is represented.
func QuatNaN() Quat {
	n := NaN()
	return Quat{n, n, n, n}
}

// NewQuatAxisAngle returns a new quaternion from given axis and angle rotation (radians).
func NewQuatAxisAngle(axis Vector3, angle float32) Quat {
	nq := Quat{}
	nq.SetFromAxisAngle(axis, angle)
	return nq
}

// NewQuatYawPitchRoll returns the rotation yaw (about Z), then pitch
// (about the new Y), then roll (about the new X), angles in radians.
func NewQuatYawPitchRoll(yaw, pitch, roll float32) Quat {
	qz := NewQuatAxisAngle(Vec3(0, 0, 1), yaw)
	qy := NewQuatAxisAngle(Vec3(0, 1, 0), pitch)
	qx := NewQuatAxisAngle(Vec3(1, 0, 0), roll)
	return qz.Mul(qy).Mul(qx)
}

// NewQuatUnitVectors returns the rotation that takes the unit vector
// from onto the unit vector to.
func NewQuatUnitVectors(from, to Vector3) Quat {
	nq := Quat{}
	nq.SetFromUnitVectors(from, to)
	return nq
}

func (q Quat) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", q.X, q.Y, q.Z, q.W)
}

// Set sets this quaternion's components.
func (q *Quat) Set(x, y, z, w float32) {
	q.X = x
	q.Y = y
	q.Z = z
	q.W = w
}

// IsIdentity returns if this is an identity quaternion.
func (q Quat) IsIdentity() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 1
}

// IsNaN returns true if any of the components is NaN.
func (q Quat) IsNaN() bool {
	return AnyNaN(q.X, q.Y, q.Z, q.W)
}

// SetFromAxisAngle sets this quaternion with the rotation
// specified by the given axis and angle.
func (q *Quat) SetFromAxisAngle(axis Vector3, angle float32) {
	halfAngle := angle / 2
	s := Sin(halfAngle)
	q.X = axis.X * s
	q.Y = axis.Y * s
	q.Z = axis.Z * s
	q.W = Cos(halfAngle)
}

// SetFromUnitVectors sets this quaternion to the rotation from vector vFrom to vTo.
// The vectors must be normalized.
func (q *Quat) SetFromUnitVectors(vFrom, vTo Vector3) {
	const eps = 0.000001
	r := vFrom.Dot(vTo) + 1
	if r < eps {
		// the vectors are opposite: rotate by 180 about any perpendicular axis
		if Abs(vFrom.X) > Abs(vFrom.Z) {
			q.Set(-vFrom.Y, vFrom.X, 0, 0)
		} else {
			q.Set(0, -vFrom.Z, vFrom.Y, 0)
		}
	} else {
		v1 := vFrom.Cross(vTo)
		q.Set(v1.X, v1.Y, v1.Z, r)
	}
	q.SetNormal()
}

// Length returns the length of this quaternion
func (q Quat) Length() float32 {
	return Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normal returns this quaternion with unit length.
// A zero quaternion becomes the identity.
func (q Quat) Normal() Quat {
	l := q.Length()
	if l == 0 {
		return QuatIdentity()
	}
	l = 1 / l
	return Quat{q.X * l, q.Y * l, q.Z * l, q.W * l}
}

// SetNormal normalizes this quaternion.
func (q *Quat) SetNormal() {
	*q = q.Normal()
}

// Mul returns the product of this quaternion with other (q * other):
// rotating by the result is rotating by other first and then by q.
func (q Quat) Mul(other Quat) Quat {
	qax, qay, qaz, qaw := q.X, q.Y, q.Z, q.W
	qbx, qby, qbz, qbw := other.X, other.Y, other.Z, other.W
	return Quat{
		X: qax*qbw + qaw*qbx + qay*qbz - qaz*qby,
		Y: qay*qbw + qaw*qby + qaz*qbx - qax*qbz,
		Z: qaz*qbw + qaw*qbz + qax*qby - qay*qbx,
		W: qaw*qbw - qax*qbx - qay*qby - qaz*qbz,
	}
}

// Equals returns if this quaternion is equal to other,
// where NaN components compare equal to each other.
func (q Quat) Equals(other Quat) bool {
	return EqualsNaN(q.X, other.X) && EqualsNaN(q.Y, other.Y) &&
		EqualsNaN(q.Z, other.Z) && EqualsNaN(q.W, other.W)
}
