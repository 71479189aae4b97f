// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"image/color"

	"github.com/robotlab/simview/math32"
)

// Cylinder is a cylinder of given length and radius,
// centered on the origin with its axis along Z.
type Cylinder struct {
	Length float32
	Radius float32
}

func (p Cylinder) Kind() Kinds { return CylinderKind }

func (p Cylinder) Degenerate() bool { return anyTiny(p.Length, p.Radius) }

func (p Cylinder) Equal(other Params) bool {
	o, ok := other.(Cylinder)
	return ok && math32.EqualsNaN(p.Length, o.Length) && math32.EqualsNaN(p.Radius, o.Radius)
}

func (p Cylinder) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		ms.addCylinderSection(p.Length, p.Radius, p.Radius, RadialSegments, 1, true, true, math32.Vector3{})
		return nil
	})
}

// Cone is a cone of given height and base radius, with the
// center of its base at the origin and its apex at (0, 0, Height).
type Cone struct {
	Height float32
	Radius float32
}

func (p Cone) Kind() Kinds { return ConeKind }

func (p Cone) Degenerate() bool { return anyTiny(p.Height, p.Radius) }

func (p Cone) Equal(other Params) bool {
	o, ok := other.(Cone)
	return ok && math32.EqualsNaN(p.Height, o.Height) && math32.EqualsNaN(p.Radius, o.Radius)
}

func (p Cone) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		ms.addCylinderSection(p.Height, 0, p.Radius, RadialSegments, 1, false, true, math32.Vec3(0, 0, p.Height/2))
		return nil
	})
}

// Capsule is a cylinder of the given length capped by two hemispheres
// of the given radius, centered on the origin with its axis along Z.
// Length is the length of the cylindrical part only.
type Capsule struct {
	Length float32
	Radius float32
}

func (p Capsule) Kind() Kinds { return CapsuleKind }

func (p Capsule) Degenerate() bool { return anyTiny(p.Length, p.Radius) }

func (p Capsule) Equal(other Params) bool {
	o, ok := other.(Capsule)
	return ok && math32.EqualsNaN(p.Length, o.Length) && math32.EqualsNaN(p.Radius, o.Radius)
}

func (p Capsule) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		hl := p.Length / 2
		ms.addCylinderSection(p.Length, p.Radius, p.Radius, RadialSegments, 1, false, false, math32.Vector3{})
		ms.addSphereSection(p.Radius, RadialSegments, CapSegments, 0, math32.Pi/2, math32.Vec3(0, 0, hl))
		ms.addSphereSection(p.Radius, RadialSegments, CapSegments, math32.Pi/2, math32.Pi/2, math32.Vec3(0, 0, -hl))
		return nil
	})
}

// Sphere is a sphere of given radius centered on the origin.
type Sphere struct {
	Radius float32
}

func (p Sphere) Kind() Kinds { return SphereKind }

func (p Sphere) Degenerate() bool { return tiny(p.Radius) }

func (p Sphere) Equal(other Params) bool {
	o, ok := other.(Sphere)
	return ok && math32.EqualsNaN(p.Radius, o.Radius)
}

func (p Sphere) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		ms.addSphereSection(p.Radius, RadialSegments, CapSegments, 0, math32.Pi, math32.Vector3{})
		return nil
	})
}

// Ellipsoid is an ellipsoid with the given radii along X, Y and Z,
// centered on the origin.
type Ellipsoid struct {
	Radii math32.Vector3
}

func (p Ellipsoid) Kind() Kinds { return EllipsoidKind }

func (p Ellipsoid) Degenerate() bool { return anyTiny(p.Radii.X, p.Radii.Y, p.Radii.Z) }

func (p Ellipsoid) Equal(other Params) bool {
	o, ok := other.(Ellipsoid)
	return ok && p.Radii.Equals(o.Radii)
}

func (p Ellipsoid) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		inv := math32.Vec3(1/p.Radii.X, 1/p.Radii.Y, 1/p.Radii.Z)
		ms.addSampledSphere(RadialSegments, CapSegments, 0, math32.Pi, func(dir math32.Vector3) (math32.Vector3, math32.Vector3) {
			return dir.Mul(p.Radii), dir.Mul(inv).Normal()
		})
		return nil
	})
}

// Arrow is an arrow pointing along +Z from the origin: a cylindrical body
// followed by a conical head.
type Arrow struct {
	BodyLength float32
	HeadLength float32
	BodyRadius float32
	HeadRadius float32
}

func (p Arrow) Kind() Kinds { return ArrowKind }

func (p Arrow) Degenerate() bool {
	return anyTiny(p.BodyLength, p.HeadLength, p.BodyRadius, p.HeadRadius)
}

func (p Arrow) Equal(other Params) bool {
	o, ok := other.(Arrow)
	return ok && p.equal(o)
}

func (p Arrow) equal(o Arrow) bool {
	return math32.EqualsNaN(p.BodyLength, o.BodyLength) && math32.EqualsNaN(p.HeadLength, o.HeadLength) &&
		math32.EqualsNaN(p.BodyRadius, o.BodyRadius) && math32.EqualsNaN(p.HeadRadius, o.HeadRadius)
}

func (p Arrow) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		p.addTo(ms)
		return nil
	})
}

func (p Arrow) addTo(ms *Mesh) {
	ms.addCylinderSection(p.BodyLength, p.BodyRadius, p.BodyRadius, RadialSegments, 1, true, true, math32.Vec3(0, 0, p.BodyLength/2))
	ms.addCylinderSection(p.HeadLength, 0, p.HeadRadius, RadialSegments, 1, false, true, math32.Vec3(0, 0, p.BodyLength+p.HeadLength/2))
}

// CoordinateSystem is a triad of arrows along X (red), Y (green) and Z (blue),
// with per-vertex colors.
type CoordinateSystem struct {
	Arrow
}

func (p CoordinateSystem) Kind() Kinds { return CoordinateSystemKind }

func (p CoordinateSystem) Equal(other Params) bool {
	o, ok := other.(CoordinateSystem)
	return ok && p.Arrow.equal(o.Arrow)
}

// Axis colors of a [CoordinateSystem].
var (
	AxisXColor = color.RGBA{R: 255, A: 255}
	AxisYColor = color.RGBA{G: 255, A: 255}
	AxisZColor = color.RGBA{B: 255, A: 255}
)

func (p CoordinateSystem) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		arrow := NewMesh()
		p.Arrow.addTo(arrow)
		z := math32.Vec3(0, 0, 1)
		axes := []struct {
			dir math32.Vector3
			clr color.RGBA
		}{
			{math32.Vec3(1, 0, 0), AxisXColor},
			{math32.Vec3(0, 1, 0), AxisYColor},
			{z, AxisZColor},
		}
		for _, ax := range axes {
			start := ms.NumVertex()
			ms.Append(arrow, math32.NewQuatUnitVectors(z, ax.dir), math32.Vector3{})
			ms.setColorFrom(start, ax.clr)
		}
		return nil
	})
}

// PointCloud is a set of points drawn as small spheres of the given size
// (diameter). Points with unavailable coordinates are skipped.
type PointCloud struct {
	Points []math32.Vector3
	Size   float32
}

// point sphere resolution
const (
	cloudAzimuthSegments   = 8
	cloudElevationSegments = 6
)

func (p PointCloud) Kind() Kinds { return PointCloudKind }

func (p PointCloud) Degenerate() bool {
	if tiny(p.Size) {
		return true
	}
	for _, pt := range p.Points {
		if !pt.IsNaN() {
			return false
		}
	}
	return true
}

func (p PointCloud) Equal(other Params) bool {
	o, ok := other.(PointCloud)
	return ok && math32.EqualsNaN(p.Size, o.Size) && vector3sEqual(p.Points, o.Points)
}

func (p PointCloud) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		for _, pt := range p.Points {
			if pt.IsNaN() {
				continue
			}
			ms.addSphereSection(p.Size/2, cloudAzimuthSegments, cloudElevationSegments, 0, math32.Pi, pt)
		}
		return nil
	})
}
