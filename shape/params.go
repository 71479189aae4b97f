// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape provides the shape parameter snapshots of graphic items
// and the mesh builders that turn them into triangle meshes.
//
// A snapshot ([Params]) is a small by-value record holding only the values
// that determine the mesh topology: pose and color are never part of it.
// Builders are pure functions of their snapshot.
package shape

import (
	"errors"
	"slices"

	"github.com/robotlab/simview/math32"
)

// Epsilon is the tolerance below which a dimension is treated as zero,
// making the snapshot degenerate.
const Epsilon float32 = 1.0e-5

// Fixed tessellation resolutions.
const (
	// RadialSegments is the number of segments around the axis of
	// capsules, cylinders, cones and arrows.
	RadialSegments = 32

	// CapSegments is the number of elevation segments of
	// each capsule hemisphere and of spheres.
	CapSegments = 16

	// SoftAzimuthSegments and SoftElevationSegments are the number of
	// direction samples used to tessellate soft shapes.
	SoftAzimuthSegments   = 32
	SoftElevationSegments = 16
)

var (
	// ErrDegenerate is returned by a builder invoked on a degenerate snapshot.
	ErrDegenerate = errors.New("shape: degenerate parameters")

	// ErrNotConstructible is returned when the rounding radii of a soft
	// shape cannot be derived from its margins.
	ErrNotConstructible = errors.New("shape: soft shape radius not constructible")
)

// Params is a shape parameter snapshot.
type Params interface {
	// Kind returns the kind of shape the snapshot describes.
	Kind() Kinds

	// Degenerate returns true if the snapshot holds unavailable (NaN) values or
	// values that cannot produce a mesh, in which case Build must not be called.
	Degenerate() bool

	// Equal returns true if other is the same kind of snapshot with
	// numerically identical values, NaN comparing equal to NaN.
	Equal(other Params) bool

	// Build returns the mesh for this snapshot in the local frame of the item.
	Build() (*Mesh, error)
}

// Kinds are the kinds of shapes.
type Kinds int32

const (
	ArrowKind Kinds = iota
	BoxKind
	CapsuleKind
	ConeKind
	CylinderKind
	EllipsoidKind
	SphereKind
	RampKind
	ConvexPolytopeKind
	ExtrudedPolygonKind
	PolynomialKind
	CoordinateSystemKind
	PointCloudKind
	SoftBoxKind
	SoftRampKind
	SoftCylinderKind
	SoftConvexPolytopeKind
	Point2DKind
	Polygon2DKind
	Line2DKind
	PointCloud2DKind
	Arrow2DKind
	KindsN
)

var kindNames = [...]string{
	"arrow", "box", "capsule", "cone", "cylinder", "ellipsoid", "sphere", "ramp",
	"convex-polytope", "extruded-polygon", "polynomial", "coordinate-system",
	"point-cloud", "soft-box", "soft-ramp", "soft-cylinder", "soft-convex-polytope",
	"point-2d", "polygon-2d", "line-2d", "point-cloud-2d", "arrow-2d",
}

// String returns the name of the kind, as used in metric labels.
func (k Kinds) String() string {
	if k < 0 || k >= KindsN {
		return "unknown"
	}
	return kindNames[k]
}

// Is2D returns whether the kind is a flat shape drawn on the XY plane.
func (k Kinds) Is2D() bool {
	return k >= Point2DKind && k < KindsN
}

////////////////////////////////////////////////////////////////////////
//  Helpers shared by snapshots

// tiny returns true if v is unavailable or below [Epsilon].
func tiny(v float32) bool {
	return math32.IsNaN(v) || v < Epsilon
}

// anyTiny returns true if any of the values is unavailable or below [Epsilon].
func anyTiny(vals ...float32) bool {
	return slices.ContainsFunc(vals, tiny)
}

// negative returns true if v is unavailable or below -[Epsilon].
// Used for values allowed to be zero, such as margins.
func negative(v float32) bool {
	return math32.IsNaN(v) || v < -Epsilon
}

// vector3sEqual compares two point lists with NaN equal to NaN.
func vector3sEqual(a, b []math32.Vector3) bool {
	return slices.EqualFunc(a, b, math32.Vector3.Equals)
}

// vector2sEqual compares two point lists with NaN equal to NaN.
func vector2sEqual(a, b []math32.Vector2) bool {
	return slices.EqualFunc(a, b, math32.Vector2.Equals)
}

// floatsEqual compares two float lists with NaN equal to NaN.
func floatsEqual(a, b []float32) bool {
	return slices.EqualFunc(a, b, math32.EqualsNaN)
}

// anyVector3NaN returns true if any of the points has a NaN component.
func anyVector3NaN(pts []math32.Vector3) bool {
	return slices.ContainsFunc(pts, math32.Vector3.IsNaN)
}

// anyVector2NaN returns true if any of the points has a NaN component.
func anyVector2NaN(pts []math32.Vector2) bool {
	return slices.ContainsFunc(pts, math32.Vector2.IsNaN)
}

// build is the common entry of all Build methods.
func build(p Params, fun func(ms *Mesh) error) (*Mesh, error) {
	if p.Degenerate() {
		return nil, ErrDegenerate
	}
	ms := NewMesh()
	if err := fun(ms); err != nil {
		return nil, err
	}
	return ms, nil
}
