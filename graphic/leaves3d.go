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

var val = live.ValueOf

// Arrow3D is an arrow from Origin along Direction. When ScaleLength is set
// the lengths are multiplied by the length of Direction, and likewise the
// radii when ScaleRadius is set.
type Arrow3D struct {
	LeafBase
	Origin    live.Vector3
	Direction live.Vector3

	BodyLength, HeadLength live.Float
	BodyRadius, HeadRadius live.Float

	ScaleLength, ScaleRadius bool
}

func NewArrow3D(sc *Scene, name string) *Arrow3D {
	a := &Arrow3D{}
	initLeaf(sc, a, name, Kind3D)
	return a
}

func (a *Arrow3D) Params() shape.Params {
	p := shape.Arrow{BodyLength: val(a.BodyLength), HeadLength: val(a.HeadLength), BodyRadius: val(a.BodyRadius), HeadRadius: val(a.HeadRadius)}
	if a.ScaleLength || a.ScaleRadius {
		l := a.Direction.Value().Length()
		if a.ScaleLength {
			p.BodyLength *= l
			p.HeadLength *= l
		}
		if a.ScaleRadius {
			p.BodyRadius *= l
			p.HeadRadius *= l
		}
	}
	return p
}

func (a *Arrow3D) Pose() (math32.Vector3, math32.Quat) {
	return positionOf(a.Origin), axisRotation(a.Direction)
}

func (a *Arrow3D) ToDefinition() definition.Definition {
	return &definition.Arrow3D{
		Base:        a.baseDef(),
		Origin:      vector3PtrDef(a.Origin),
		Direction:   vector3Def(a.Direction),
		ArrowParts:  arrowPartsDef(a.BodyLength, a.HeadLength, a.BodyRadius, a.HeadRadius),
		ScaleLength: a.ScaleLength,
		ScaleRadius: a.ScaleRadius,
	}
}

func (a *Arrow3D) bind(fc *Factory, d *definition.Arrow3D) {
	a.Origin = fc.Vector3Ptr(d.Origin)
	a.Direction = fc.Vector3(d.Direction)
	a.BodyLength, a.HeadLength, a.BodyRadius, a.HeadRadius = fc.arrowParts(d.ArrowParts)
	a.ScaleLength, a.ScaleRadius = d.ScaleLength, d.ScaleRadius
}

func arrowPartsDef(bl, hl, br, hr live.Float) definition.ArrowParts {
	return definition.ArrowParts{BodyLength: fieldDef(bl), HeadLength: fieldDef(hl), BodyRadius: fieldDef(br), HeadRadius: fieldDef(hr)}
}

func (fc *Factory) arrowParts(d definition.ArrowParts) (bl, hl, br, hr live.Float) {
	return fc.Float(d.BodyLength), fc.Float(d.HeadLength), fc.Float(d.BodyRadius), fc.Float(d.HeadRadius)
}

// Box3D is a box centered on its position.
type Box3D struct {
	LeafBase
	Placement
	Size live.Vector3
}

func NewBox3D(sc *Scene, name string) *Box3D {
	b := &Box3D{}
	initLeaf(sc, b, name, Kind3D)
	return b
}

func (b *Box3D) Params() shape.Params { return shape.Box{Size: b.Size.Value()} }

func (b *Box3D) ToDefinition() definition.Definition {
	return &definition.Box3D{Base: b.baseDef(), Pose: b.toDefinition(), Size: vector3Def(b.Size)}
}

func (b *Box3D) bind(fc *Factory, d *definition.Box3D) {
	b.Placement.bind(fc, d.Pose)
	b.Size = fc.Vector3(d.Size)
}

// Capsule3D is a capsule centered on its position, Length being
// the distance between the centers of its hemispheres.
type Capsule3D struct {
	LeafBase
	AxialPlacement
	Length, Radius live.Float
}

func NewCapsule3D(sc *Scene, name string) *Capsule3D {
	c := &Capsule3D{}
	initLeaf(sc, c, name, Kind3D)
	return c
}

func (c *Capsule3D) Params() shape.Params {
	return shape.Capsule{Length: val(c.Length), Radius: val(c.Radius)}
}

func (c *Capsule3D) ToDefinition() definition.Definition {
	return &definition.Capsule3D{Base: c.baseDef(), Axial: c.toDefinition(), Length: fieldDef(c.Length), Radius: fieldDef(c.Radius)}
}

func (c *Capsule3D) bind(fc *Factory, d *definition.Capsule3D) {
	c.AxialPlacement.bind(fc, d.Axial)
	c.Length, c.Radius = fc.Float(d.Length), fc.Float(d.Radius)
}

// Cone3D is a cone whose base is centered on its position.
type Cone3D struct {
	LeafBase
	AxialPlacement
	Height, Radius live.Float
}

func NewCone3D(sc *Scene, name string) *Cone3D {
	c := &Cone3D{}
	initLeaf(sc, c, name, Kind3D)
	return c
}

func (c *Cone3D) Params() shape.Params {
	return shape.Cone{Height: val(c.Height), Radius: val(c.Radius)}
}

func (c *Cone3D) ToDefinition() definition.Definition {
	return &definition.Cone3D{Base: c.baseDef(), Axial: c.toDefinition(), Height: fieldDef(c.Height), Radius: fieldDef(c.Radius)}
}

func (c *Cone3D) bind(fc *Factory, d *definition.Cone3D) {
	c.AxialPlacement.bind(fc, d.Axial)
	c.Height, c.Radius = fc.Float(d.Height), fc.Float(d.Radius)
}

// Cylinder3D is a cylinder centered on its position.
type Cylinder3D struct {
	LeafBase
	AxialPlacement
	Length, Radius live.Float
}

func NewCylinder3D(sc *Scene, name string) *Cylinder3D {
	c := &Cylinder3D{}
	initLeaf(sc, c, name, Kind3D)
	return c
}

func (c *Cylinder3D) Params() shape.Params {
	return shape.Cylinder{Length: val(c.Length), Radius: val(c.Radius)}
}

func (c *Cylinder3D) ToDefinition() definition.Definition {
	return &definition.Cylinder3D{Base: c.baseDef(), Axial: c.toDefinition(), Length: fieldDef(c.Length), Radius: fieldDef(c.Radius)}
}

func (c *Cylinder3D) bind(fc *Factory, d *definition.Cylinder3D) {
	c.AxialPlacement.bind(fc, d.Axial)
	c.Length, c.Radius = fc.Float(d.Length), fc.Float(d.Radius)
}

type Ellipsoid3D struct {
	LeafBase
	Placement
	Radii live.Vector3
}

func NewEllipsoid3D(sc *Scene, name string) *Ellipsoid3D {
	e := &Ellipsoid3D{}
	initLeaf(sc, e, name, Kind3D)
	return e
}

func (e *Ellipsoid3D) Params() shape.Params { return shape.Ellipsoid{Radii: e.Radii.Value()} }

func (e *Ellipsoid3D) ToDefinition() definition.Definition {
	return &definition.Ellipsoid3D{Base: e.baseDef(), Pose: e.toDefinition(), Radii: vector3Def(e.Radii)}
}

func (e *Ellipsoid3D) bind(fc *Factory, d *definition.Ellipsoid3D) {
	e.Placement.bind(fc, d.Pose)
	e.Radii = fc.Vector3(d.Radii)
}

// Point3D is a sphere of diameter Size.
type Point3D struct {
	LeafBase
	Position live.Vector3
	Size     live.Float
}

func NewPoint3D(sc *Scene, name string) *Point3D {
	p := &Point3D{}
	initLeaf(sc, p, name, Kind3D)
	return p
}

func (p *Point3D) Params() shape.Params { return shape.Sphere{Radius: val(p.Size) / 2} }

func (p *Point3D) Pose() (math32.Vector3, math32.Quat) {
	return positionOf(p.Position), math32.QuatIdentity()
}

func (p *Point3D) ToDefinition() definition.Definition {
	return &definition.Point3D{Base: p.baseDef(), Position: vector3PtrDef(p.Position), Size: fieldDef(p.Size)}
}

func (p *Point3D) bind(fc *Factory, d *definition.Point3D) {
	p.Position = fc.Vector3Ptr(d.Position)
	p.Size = fc.Float(d.Size)
}

// Ramp3D is a wedge whose bottom face is centered on its position,
// rising along +X.
type Ramp3D struct {
	LeafBase
	Placement
	Size live.Vector3
}

func NewRamp3D(sc *Scene, name string) *Ramp3D {
	r := &Ramp3D{}
	initLeaf(sc, r, name, Kind3D)
	return r
}

func (r *Ramp3D) Params() shape.Params { return shape.Ramp{Size: r.Size.Value()} }

func (r *Ramp3D) ToDefinition() definition.Definition {
	return &definition.Ramp3D{Base: r.baseDef(), Pose: r.toDefinition(), Size: vector3Def(r.Size)}
}

func (r *Ramp3D) bind(fc *Factory, d *definition.Ramp3D) {
	r.Placement.bind(fc, d.Pose)
	r.Size = fc.Vector3(d.Size)
}

// ConvexPolytope3D is the convex hull of its vertices.
type ConvexPolytope3D struct {
	LeafBase
	Placement
	Vertices []live.Vector3
}

func NewConvexPolytope3D(sc *Scene, name string) *ConvexPolytope3D {
	c := &ConvexPolytope3D{}
	initLeaf(sc, c, name, Kind3D)
	return c
}

func (c *ConvexPolytope3D) Params() shape.Params {
	return shape.ConvexPolytope{Vertices: live.Vector3s(c.Vertices)}
}

func (c *ConvexPolytope3D) ToDefinition() definition.Definition {
	return &definition.ConvexPolytope3D{Base: c.baseDef(), Pose: c.toDefinition(), Vertices: vector3sDef(c.Vertices)}
}

func (c *ConvexPolytope3D) bind(fc *Factory, d *definition.ConvexPolytope3D) {
	c.Placement.bind(fc, d.Pose)
	c.Vertices = fc.Vector3s(d.Vertices)
}

// PolygonExtruded3D is a polygon of the XY plane extruded along +Z by Thickness.
type PolygonExtruded3D struct {
	LeafBase
	Placement
	Vertices  []live.Vector2
	Thickness live.Float
}

func NewPolygonExtruded3D(sc *Scene, name string) *PolygonExtruded3D {
	p := &PolygonExtruded3D{}
	initLeaf(sc, p, name, Kind3D)
	return p
}

func (p *PolygonExtruded3D) Params() shape.Params {
	return shape.ExtrudedPolygon{Vertices: live.Vector2s(p.Vertices), Thickness: val(p.Thickness)}
}

func (p *PolygonExtruded3D) ToDefinition() definition.Definition {
	return &definition.PolygonExtruded3D{Base: p.baseDef(), Pose: p.toDefinition(), Vertices: vector2sDef(p.Vertices), Thickness: fieldDef(p.Thickness)}
}

func (p *PolygonExtruded3D) bind(fc *Factory, d *definition.PolygonExtruded3D) {
	p.Placement.bind(fc, d.Pose)
	p.Vertices = fc.Vector2s(d.Vertices)
	p.Thickness = fc.Float(d.Thickness)
}

// Polynomial3D is a tube of diameter Size along a curve given by one
// polynomial of time per axis, with coefficients in increasing degree.
type Polynomial3D struct {
	LeafBase

	CoefficientsX, CoefficientsY, CoefficientsZ []live.Float

	StartTime, EndTime live.Float
	Size               live.Float

	TimeResolution    int
	NumberOfDivisions int
}

func NewPolynomial3D(sc *Scene, name string) *Polynomial3D {
	p := &Polynomial3D{TimeResolution: 128, NumberOfDivisions: 12}
	initLeaf(sc, p, name, Kind3D)
	return p
}

func (p *Polynomial3D) Params() shape.Params {
	return shape.Polynomial{
		CoefficientsX:  live.Floats(p.CoefficientsX),
		CoefficientsY:  live.Floats(p.CoefficientsY),
		CoefficientsZ:  live.Floats(p.CoefficientsZ),
		StartTime:      val(p.StartTime),
		EndTime:        val(p.EndTime),
		Radius:         val(p.Size) / 2,
		TimeResolution: p.TimeResolution,
		Divisions:      p.NumberOfDivisions,
	}
}

// Pose returns the origin: the curve is in the frame of the item.
func (p *Polynomial3D) Pose() (math32.Vector3, math32.Quat) {
	return math32.Vector3{}, math32.QuatIdentity()
}

func (p *Polynomial3D) ToDefinition() definition.Definition {
	return &definition.Polynomial3D{
		Base:              p.baseDef(),
		CoefficientsX:     fieldsDef(p.CoefficientsX),
		CoefficientsY:     fieldsDef(p.CoefficientsY),
		CoefficientsZ:     fieldsDef(p.CoefficientsZ),
		StartTime:         fieldDef(p.StartTime),
		EndTime:           fieldDef(p.EndTime),
		Size:              fieldDef(p.Size),
		TimeResolution:    p.TimeResolution,
		NumberOfDivisions: p.NumberOfDivisions,
	}
}

func (p *Polynomial3D) bind(fc *Factory, d *definition.Polynomial3D) {
	p.CoefficientsX = fc.Floats(d.CoefficientsX)
	p.CoefficientsY = fc.Floats(d.CoefficientsY)
	p.CoefficientsZ = fc.Floats(d.CoefficientsZ)
	p.StartTime, p.EndTime, p.Size = fc.Float(d.StartTime), fc.Float(d.EndTime), fc.Float(d.Size)
	if d.TimeResolution > 0 {
		p.TimeResolution = d.TimeResolution
	}
	if d.NumberOfDivisions > 0 {
		p.NumberOfDivisions = d.NumberOfDivisions
	}
}

// CoordinateSystem3D is a triad of red, green and blue arrows
// along the X, Y and Z axes of its pose.
type CoordinateSystem3D struct {
	LeafBase
	Placement

	BodyLength, HeadLength live.Float
	BodyRadius, HeadRadius live.Float
}

func NewCoordinateSystem3D(sc *Scene, name string) *CoordinateSystem3D {
	c := &CoordinateSystem3D{}
	initLeaf(sc, c, name, Kind3D)
	return c
}

func (c *CoordinateSystem3D) Params() shape.Params {
	return shape.CoordinateSystem{Arrow: shape.Arrow{BodyLength: val(c.BodyLength), HeadLength: val(c.HeadLength), BodyRadius: val(c.BodyRadius), HeadRadius: val(c.HeadRadius)}}
}

func (c *CoordinateSystem3D) ToDefinition() definition.Definition {
	return &definition.CoordinateSystem3D{Base: c.baseDef(), Pose: c.toDefinition(), ArrowParts: arrowPartsDef(c.BodyLength, c.HeadLength, c.BodyRadius, c.HeadRadius)}
}

func (c *CoordinateSystem3D) bind(fc *Factory, d *definition.CoordinateSystem3D) {
	c.Placement.bind(fc, d.Pose)
	c.BodyLength, c.HeadLength, c.BodyRadius, c.HeadRadius = fc.arrowParts(d.ArrowParts)
}

// PointCloud3D is a set of spheres of diameter Size.
type PointCloud3D struct {
	LeafBase
	Points []live.Vector3
	Size   live.Float
}

func NewPointCloud3D(sc *Scene, name string) *PointCloud3D {
	p := &PointCloud3D{}
	initLeaf(sc, p, name, Kind3D)
	return p
}

func (p *PointCloud3D) Params() shape.Params {
	return shape.PointCloud{Points: live.Vector3s(p.Points), Size: val(p.Size)}
}

// Pose returns the origin: the points are in the frame of the item.
func (p *PointCloud3D) Pose() (math32.Vector3, math32.Quat) {
	return math32.Vector3{}, math32.QuatIdentity()
}

func (p *PointCloud3D) ToDefinition() definition.Definition {
	return &definition.PointCloud3D{Base: p.baseDef(), Points: vector3sDef(p.Points), Size: fieldDef(p.Size)}
}

func (p *PointCloud3D) bind(fc *Factory, d *definition.PointCloud3D) {
	p.Points = fc.Vector3s(d.Points)
	p.Size = fc.Float(d.Size)
}

////////////////////////////////////////////////////////////////////////
//  Soft shapes

// Margins are the live rounding margins of soft shapes.
type Margins struct {
	MinMargin, MaxMargin live.Float
}

func (m *Margins) toDefinition() definition.Margins {
	return definition.Margins{MinMargin: fieldDef(m.MinMargin), MaxMargin: fieldDef(m.MaxMargin)}
}

func (m *Margins) bind(fc *Factory, d definition.Margins) {
	m.MinMargin, m.MaxMargin = fc.Float(d.MinMargin), fc.Float(d.MaxMargin)
}

// SoftBox3D is a box with rounded edges and corners.
type SoftBox3D struct {
	LeafBase
	Placement
	Size live.Vector3
	Margins
}

func NewSoftBox3D(sc *Scene, name string) *SoftBox3D {
	b := &SoftBox3D{}
	initLeaf(sc, b, name, Kind3D)
	return b
}

func (b *SoftBox3D) Params() shape.Params {
	return shape.SoftBox{Size: b.Size.Value(), MinMargin: val(b.MinMargin), MaxMargin: val(b.MaxMargin)}
}

func (b *SoftBox3D) ToDefinition() definition.Definition {
	return &definition.SoftBox3D{Base: b.baseDef(), Pose: b.Placement.toDefinition(), Size: vector3Def(b.Size), Margins: b.Margins.toDefinition()}
}

func (b *SoftBox3D) bind(fc *Factory, d *definition.SoftBox3D) {
	b.Placement.bind(fc, d.Pose)
	b.Size = fc.Vector3(d.Size)
	b.Margins.bind(fc, d.Margins)
}

// SoftRamp3D is a ramp with rounded edges and corners.
type SoftRamp3D struct {
	LeafBase
	Placement
	Size live.Vector3
	Margins
}

func NewSoftRamp3D(sc *Scene, name string) *SoftRamp3D {
	r := &SoftRamp3D{}
	initLeaf(sc, r, name, Kind3D)
	return r
}

func (r *SoftRamp3D) Params() shape.Params {
	return shape.SoftRamp{Size: r.Size.Value(), MinMargin: val(r.MinMargin), MaxMargin: val(r.MaxMargin)}
}

func (r *SoftRamp3D) ToDefinition() definition.Definition {
	return &definition.SoftRamp3D{Base: r.baseDef(), Pose: r.Placement.toDefinition(), Size: vector3Def(r.Size), Margins: r.Margins.toDefinition()}
}

func (r *SoftRamp3D) bind(fc *Factory, d *definition.SoftRamp3D) {
	r.Placement.bind(fc, d.Pose)
	r.Size = fc.Vector3(d.Size)
	r.Margins.bind(fc, d.Margins)
}

// SoftCylinder3D is a cylinder with rounded rims.
type SoftCylinder3D struct {
	LeafBase
	AxialPlacement
	Length, Radius live.Float
	Margins
}

func NewSoftCylinder3D(sc *Scene, name string) *SoftCylinder3D {
	c := &SoftCylinder3D{}
	initLeaf(sc, c, name, Kind3D)
	return c
}

func (c *SoftCylinder3D) Params() shape.Params {
	return shape.SoftCylinder{Length: val(c.Length), Radius: val(c.Radius), MinMargin: val(c.MinMargin), MaxMargin: val(c.MaxMargin)}
}

func (c *SoftCylinder3D) ToDefinition() definition.Definition {
	return &definition.SoftCylinder3D{Base: c.baseDef(), Axial: c.AxialPlacement.toDefinition(), Length: fieldDef(c.Length), Radius: fieldDef(c.Radius), Margins: c.Margins.toDefinition()}
}

func (c *SoftCylinder3D) bind(fc *Factory, d *definition.SoftCylinder3D) {
	c.AxialPlacement.bind(fc, d.Axial)
	c.Length, c.Radius = fc.Float(d.Length), fc.Float(d.Radius)
	c.Margins.bind(fc, d.Margins)
}

// SoftConvexPolytope3D is the convex hull of its vertices
// with rounded edges and corners.
type SoftConvexPolytope3D struct {
	LeafBase
	Placement
	Vertices []live.Vector3
	Margins
}

func NewSoftConvexPolytope3D(sc *Scene, name string) *SoftConvexPolytope3D {
	c := &SoftConvexPolytope3D{}
	initLeaf(sc, c, name, Kind3D)
	return c
}

func (c *SoftConvexPolytope3D) Params() shape.Params {
	return shape.SoftConvexPolytope{Vertices: live.Vector3s(c.Vertices), MinMargin: val(c.MinMargin), MaxMargin: val(c.MaxMargin)}
}

func (c *SoftConvexPolytope3D) ToDefinition() definition.Definition {
	return &definition.SoftConvexPolytope3D{Base: c.baseDef(), Pose: c.Placement.toDefinition(), Vertices: vector3sDef(c.Vertices), Margins: c.Margins.toDefinition()}
}

func (c *SoftConvexPolytope3D) bind(fc *Factory, d *definition.SoftConvexPolytope3D) {
	c.Placement.bind(fc, d.Pose)
	c.Vertices = fc.Vector3s(d.Vertices)
	c.Margins.bind(fc, d.Margins)
}
