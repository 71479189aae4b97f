// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphic

import (
	"github.com/robotlab/simview/definition"
	"github.com/robotlab/simview/live"
	"github.com/robotlab/simview/math32"
	"github.com/robotlab/simview/shape"
)

// Placement is the pose of a leaf given by a position and an orientation.
// An unbound position is the origin and an unbound orientation the identity.
type Placement struct {
	Position    live.Vector3
	Orientation live.Orientation
}

// Pose returns the current position and orientation.
func (pl *Placement) Pose() (math32.Vector3, math32.Quat) {
	return positionOf(pl.Position), pl.Orientation.Value()
}

func (pl *Placement) toDefinition() definition.Pose {
	return definition.Pose{Position: vector3PtrDef(pl.Position), Orientation: orientationDef(pl.Orientation)}
}

func (pl *Placement) bind(fc *Factory, d definition.Pose) {
	pl.Position = fc.Vector3Ptr(d.Position)
	pl.Orientation = fc.Orientation(d.Orientation)
}

// AxialPlacement is the pose of a shape of revolution given by a position
// and the direction of its axis. An unbound position is the origin
// and an unbound axis is +Z.
type AxialPlacement struct {
	Position live.Vector3
	Axis     live.Vector3
}

// Pose returns the current position and the rotation taking +Z to the axis.
func (ap *AxialPlacement) Pose() (math32.Vector3, math32.Quat) {
	return positionOf(ap.Position), axisRotation(ap.Axis)
}

func (ap *AxialPlacement) toDefinition() definition.Axial {
	return definition.Axial{Position: vector3PtrDef(ap.Position), Axis: vector3PtrDef(ap.Axis)}
}

func (ap *AxialPlacement) bind(fc *Factory, d definition.Axial) {
	ap.Position = fc.Vector3Ptr(d.Position)
	ap.Axis = fc.Vector3Ptr(d.Axis)
}

// positionOf returns the value of a position, the origin if unbound.
func positionOf(v live.Vector3) math32.Vector3 {
	if !v.IsSet() {
		return math32.Vector3{}
	}
	return v.Value()
}

// axisRotation returns the rotation taking +Z to the axis, the identity if
// the axis is unbound and NaN if it is unavailable or of zero length.
func axisRotation(axis live.Vector3) math32.Quat {
	if !axis.IsSet() {
		return math32.QuatIdentity()
	}
	a := axis.Value()
	if a.IsNaN() || a.Length() < shape.Epsilon {
		return math32.QuatNaN()
	}
	return math32.NewQuatUnitVectors(math32.Vec3(0, 0, 1), a.Normal())
}

////////////////////////////////////////////////////////////////////////
//  Conversion to definitions

// fieldDef returns the definition of a live input:
// a variable reference for variables and a literal otherwise.
func fieldDef(f live.Float) definition.Field {
	switch x := f.(type) {
	case *live.Var:
		return definition.Ref(x.Name())
	case live.Const:
		return definition.Lit(float32(x))
	case nil:
		return definition.Lit(math32.NaN())
	}
	return definition.Lit(f.Value())
}

func fieldsDef(fs []live.Float) []definition.Field {
	out := make([]definition.Field, len(fs))
	for i, f := range fs {
		out[i] = fieldDef(f)
	}
	return out
}

func vector2Def(v live.Vector2) definition.Vector2 {
	return definition.Vector2{X: fieldDef(v.X), Y: fieldDef(v.Y)}
}

func vector2sDef(vs []live.Vector2) []definition.Vector2 {
	out := make([]definition.Vector2, len(vs))
	for i, v := range vs {
		out[i] = vector2Def(v)
	}
	return out
}

func vector3Def(v live.Vector3) definition.Vector3 {
	return definition.Vector3{X: fieldDef(v.X), Y: fieldDef(v.Y), Z: fieldDef(v.Z)}
}

// vector3PtrDef returns nil for an unbound vector.
func vector3PtrDef(v live.Vector3) *definition.Vector3 {
	if !v.IsSet() {
		return nil
	}
	d := vector3Def(v)
	return &d
}

func vector3sDef(vs []live.Vector3) []definition.Vector3 {
	out := make([]definition.Vector3, len(vs))
	for i, v := range vs {
		out[i] = vector3Def(v)
	}
	return out
}

// orientationDef returns nil for an unbound orientation.
func orientationDef(o live.Orientation) *definition.Orientation {
	if !o.IsSet() {
		return nil
	}
	if o.IsQuat() {
		return &definition.Orientation{Quaternion: fieldsDef(o.Quat[:])}
	}
	d := &definition.Orientation{}
	if o.Yaw != nil {
		f := fieldDef(o.Yaw)
		d.Yaw = &f
	}
	if o.Pitch != nil {
		f := fieldDef(o.Pitch)
		d.Pitch = &f
	}
	if o.Roll != nil {
		f := fieldDef(o.Roll)
		d.Roll = &f
	}
	return d
}

// baseDef returns the common fields of the definition of a leaf.
func (lb *LeafBase) baseDef() definition.Base {
	b := definition.Base{Name: lb.name, Frame: lb.Frame}
	if !lb.visible.Load() {
		b.SetVisible(false)
	}
	if lb.Color != definition.DefaultColor {
		b.Color = definition.FormatColor(lb.Color)
	}
	return b
}
