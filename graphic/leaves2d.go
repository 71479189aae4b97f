// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphic

import (
	"github.com/robotlab/simview/base/errors"
	"github.com/robotlab/simview/definition"
	"github.com/robotlab/simview/live"
	"github.com/robotlab/simview/math32"
	"github.com/robotlab/simview/shape"
)

// 2D leaves lie on the XY plane of their frame.

// flatPose returns the pose of a 2D mesh placed at p.
func flatPose(p math32.Vector2) (math32.Vector3, math32.Quat) {
	return math32.Vec3(p.X, p.Y, 0), math32.QuatIdentity()
}

// marker returns the marker with the given name, logging
// and returning a circle for unknown names.
func marker(name string) shape.Markers {
	if name == "" {
		return shape.MarkerCircle
	}
	m, err := shape.MarkerFromString(name)
	errors.Log(err)
	return m
}

func markerDef(m shape.Markers) string {
	if m == shape.MarkerCircle {
		return ""
	}
	return m.String()
}

// Point2D is a marker of width Size.
type Point2D struct {
	LeafBase
	Position live.Vector2
	Size     live.Float
	Marker   shape.Markers
}

func NewPoint2D(sc *Scene, name string) *Point2D {
	p := &Point2D{}
	initLeaf(sc, p, name, Kind2D)
	return p
}

func (p *Point2D) Params() shape.Params {
	return shape.Point2D{Size: val(p.Size), Marker: p.Marker}
}

func (p *Point2D) Pose() (math32.Vector3, math32.Quat) { return flatPose(p.Position.Value()) }

func (p *Point2D) ToDefinition() definition.Definition {
	return &definition.Point2D{Base: p.baseDef(), Position: vector2Def(p.Position), Size: fieldDef(p.Size), Marker: markerDef(p.Marker)}
}

func (p *Point2D) bind(fc *Factory, d *definition.Point2D) {
	p.Position = fc.Vector2(d.Position)
	p.Size = fc.Float(d.Size)
	p.Marker = marker(d.Marker)
}

// Polygon2D is a polygon, filled or outlined.
type Polygon2D struct {
	LeafBase
	Vertices    []live.Vector2
	Filled      bool
	StrokeWidth live.Float
}

func NewPolygon2D(sc *Scene, name string) *Polygon2D {
	p := &Polygon2D{}
	initLeaf(sc, p, name, Kind2D)
	return p
}

func (p *Polygon2D) Params() shape.Params {
	return shape.Polygon2D{Vertices: live.Vector2s(p.Vertices), Filled: p.Filled, StrokeWidth: val(p.StrokeWidth)}
}

func (p *Polygon2D) Pose() (math32.Vector3, math32.Quat) { return flatPose(math32.Vector2{}) }

func (p *Polygon2D) ToDefinition() definition.Definition {
	return &definition.Polygon2D{Base: p.baseDef(), Vertices: vector2sDef(p.Vertices), Filled: p.Filled, StrokeWidth: fieldDef(p.StrokeWidth)}
}

func (p *Polygon2D) bind(fc *Factory, d *definition.Polygon2D) {
	p.Vertices = fc.Vector2s(d.Vertices)
	p.Filled = d.Filled
	p.StrokeWidth = fc.Float(d.StrokeWidth)
}

// Line2D is a segment. The mesh is the segment from the origin,
// placed at Origin, so moving both ends together does not rebuild it.
type Line2D struct {
	LeafBase
	Origin      live.Vector2
	Destination live.Vector2
	StrokeWidth live.Float
}

func NewLine2D(sc *Scene, name string) *Line2D {
	l := &Line2D{}
	initLeaf(sc, l, name, Kind2D)
	return l
}

func (l *Line2D) Params() shape.Params {
	return shape.Line2D{Segment: l.Destination.Value().Sub(l.Origin.Value()), StrokeWidth: val(l.StrokeWidth)}
}

func (l *Line2D) Pose() (math32.Vector3, math32.Quat) { return flatPose(l.Origin.Value()) }

func (l *Line2D) ToDefinition() definition.Definition {
	return &definition.Line2D{Base: l.baseDef(), Origin: vector2Def(l.Origin), Destination: vector2Def(l.Destination), StrokeWidth: fieldDef(l.StrokeWidth)}
}

func (l *Line2D) bind(fc *Factory, d *definition.Line2D) {
	l.Origin, l.Destination = fc.Vector2(d.Origin), fc.Vector2(d.Destination)
	l.StrokeWidth = fc.Float(d.StrokeWidth)
}

// PointCloud2D is a set of markers of width Size.
type PointCloud2D struct {
	LeafBase
	Points []live.Vector2
	Size   live.Float
	Marker shape.Markers
}

func NewPointCloud2D(sc *Scene, name string) *PointCloud2D {
	p := &PointCloud2D{}
	initLeaf(sc, p, name, Kind2D)
	return p
}

func (p *PointCloud2D) Params() shape.Params {
	return shape.PointCloud2D{Points: live.Vector2s(p.Points), Size: val(p.Size), Marker: p.Marker}
}

func (p *PointCloud2D) Pose() (math32.Vector3, math32.Quat) { return flatPose(math32.Vector2{}) }

func (p *PointCloud2D) ToDefinition() definition.Definition {
	return &definition.PointCloud2D{Base: p.baseDef(), Points: vector2sDef(p.Points), Size: fieldDef(p.Size), Marker: markerDef(p.Marker)}
}

func (p *PointCloud2D) bind(fc *Factory, d *definition.PointCloud2D) {
	p.Points = fc.Vector2s(d.Points)
	p.Size = fc.Float(d.Size)
	p.Marker = marker(d.Marker)
}

// Arrow2D is an arrow from Origin along Direction.
type Arrow2D struct {
	LeafBase
	Origin    live.Vector2
	Direction live.Vector2

	HeadLength, BodyWidth, HeadWidth live.Float
}

func NewArrow2D(sc *Scene, name string) *Arrow2D {
	a := &Arrow2D{}
	initLeaf(sc, a, name, Kind2D)
	return a
}

func (a *Arrow2D) Params() shape.Params {
	return shape.Arrow2D{Vector: a.Direction.Value(), HeadLength: val(a.HeadLength), BodyWidth: val(a.BodyWidth), HeadWidth: val(a.HeadWidth)}
}

func (a *Arrow2D) Pose() (math32.Vector3, math32.Quat) { return flatPose(a.Origin.Value()) }

func (a *Arrow2D) ToDefinition() definition.Definition {
	return &definition.Arrow2D{
		Base:       a.baseDef(),
		Origin:     vector2Def(a.Origin),
		Direction:  vector2Def(a.Direction),
		HeadLength: fieldDef(a.HeadLength),
		BodyWidth:  fieldDef(a.BodyWidth),
		HeadWidth:  fieldDef(a.HeadWidth),
	}
}

func (a *Arrow2D) bind(fc *Factory, d *definition.Arrow2D) {
	a.Origin, a.Direction = fc.Vector2(d.Origin), fc.Vector2(d.Direction)
	a.HeadLength, a.BodyWidth, a.HeadWidth = fc.Float(d.HeadLength), fc.Float(d.BodyWidth), fc.Float(d.HeadWidth)
}
