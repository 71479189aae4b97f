// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"
	"strings"

	"github.com/robotlab/simview/math32"
)

// Flat shapes are built on the XY plane at z = 0, facing +Z,
// in world units.

// Markers are the marker shapes of 2D points.
type Markers int32

const (
	MarkerCircle Markers = iota
	MarkerSquare
	MarkerDiamond
	MarkerCross
	MarkerPlus
	MarkersN
)

var markerNames = [...]string{"circle", "square", "diamond", "cross", "plus"}

func (m Markers) String() string {
	if m < 0 || m >= MarkersN {
		return "unknown"
	}
	return markerNames[m]
}

// MarkerFromString returns the marker with the given name.
func MarkerFromString(s string) (Markers, error) {
	for i, nm := range markerNames {
		if strings.EqualFold(nm, s) {
			return Markers(i), nil
		}
	}
	return MarkerCircle, fmt.Errorf("shape: unknown marker %q", s)
}

// markerSegments is the number of segments of circle markers.
const markerSegments = 16

var flatNormal = math32.Vec3(0, 0, 1)

// addMarker adds a marker of the given size (width) centered on c.
func addMarker(ms *Mesh, m Markers, c math32.Vector2, size float32) {
	hs := size / 2
	switch m {
	case MarkerSquare:
		addFlatQuad(ms, c.Add(math32.Vec2(-hs, -hs)), c.Add(math32.Vec2(hs, -hs)), c.Add(math32.Vec2(hs, hs)), c.Add(math32.Vec2(-hs, hs)))
	case MarkerDiamond:
		addFlatQuad(ms, c.Add(math32.Vec2(0, -hs)), c.Add(math32.Vec2(hs, 0)), c.Add(math32.Vec2(0, hs)), c.Add(math32.Vec2(-hs, 0)))
	case MarkerCross:
		d := hs * 0.7071
		addSegment(ms, c.Add(math32.Vec2(-d, -d)), c.Add(math32.Vec2(d, d)), size/5)
		addSegment(ms, c.Add(math32.Vec2(-d, d)), c.Add(math32.Vec2(d, -d)), size/5)
	case MarkerPlus:
		addSegment(ms, c.Add(math32.Vec2(-hs, 0)), c.Add(math32.Vec2(hs, 0)), size/5)
		addSegment(ms, c.Add(math32.Vec2(0, -hs)), c.Add(math32.Vec2(0, hs)), size/5)
	default:
		ms.addDisk(hs, markerSegments, false, c.Vector3(0))
	}
}

// addFlatQuad adds a counter-clockwise quad on the XY plane.
func addFlatQuad(ms *Mesh, a, b, c, d math32.Vector2) {
	ms.addQuad(ms.addVertex(a.Vector3(0), flatNormal), ms.addVertex(b.Vector3(0), flatNormal),
		ms.addVertex(c.Vector3(0), flatNormal), ms.addVertex(d.Vector3(0), flatNormal))
}

// addFlatTriangle adds a counter-clockwise triangle on the XY plane.
func addFlatTriangle(ms *Mesh, a, b, c math32.Vector2) {
	ms.addTriangle(ms.addVertex(a.Vector3(0), flatNormal), ms.addVertex(b.Vector3(0), flatNormal),
		ms.addVertex(c.Vector3(0), flatNormal))
}

// addSegment adds a line segment from a to b of the given width
// as a rectangle.
func addSegment(ms *Mesh, a, b math32.Vector2, width float32) {
	dir := b.Sub(a).Normal()
	off := dir.Perp().MulScalar(width / 2)
	addFlatQuad(ms, a.Sub(off), b.Sub(off), b.Add(off), a.Add(off))
}

// Point2D is a single marker centered on the origin.
type Point2D struct {
	Size   float32
	Marker Markers
}

func (p Point2D) Kind() Kinds { return Point2DKind }

func (p Point2D) Degenerate() bool { return tiny(p.Size) }

func (p Point2D) Equal(other Params) bool {
	o, ok := other.(Point2D)
	return ok && p.Marker == o.Marker && math32.EqualsNaN(p.Size, o.Size)
}

func (p Point2D) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		addMarker(ms, p.Marker, math32.Vector2{}, p.Size)
		return nil
	})
}

// PointCloud2D is a set of markers. Points with unavailable coordinates are skipped.
type PointCloud2D struct {
	Points []math32.Vector2
	Size   float32
	Marker Markers
}

func (p PointCloud2D) Kind() Kinds { return PointCloud2DKind }

func (p PointCloud2D) Degenerate() bool {
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

func (p PointCloud2D) Equal(other Params) bool {
	o, ok := other.(PointCloud2D)
	return ok && p.Marker == o.Marker && math32.EqualsNaN(p.Size, o.Size) && vector2sEqual(p.Points, o.Points)
}

func (p PointCloud2D) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		for _, pt := range p.Points {
			if !pt.IsNaN() {
				addMarker(ms, p.Marker, pt, p.Size)
			}
		}
		return nil
	})
}

// Polygon2D is a closed polygon, either filled or drawn as an outline
// of the given stroke width.
type Polygon2D struct {
	Vertices    []math32.Vector2
	Filled      bool
	StrokeWidth float32
}

func (p Polygon2D) Kind() Kinds { return Polygon2DKind }

func (p Polygon2D) Degenerate() bool {
	if anyVector2NaN(p.Vertices) {
		return true
	}
	cl := CleanPolygon(p.Vertices)
	if p.Filled {
		return len(cl) < 3
	}
	return len(cl) < 2 || tiny(p.StrokeWidth)
}

func (p Polygon2D) Equal(other Params) bool {
	o, ok := other.(Polygon2D)
	return ok && p.Filled == o.Filled && math32.EqualsNaN(p.StrokeWidth, o.StrokeWidth) && vector2sEqual(p.Vertices, o.Vertices)
}

func (p Polygon2D) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		pts := CleanPolygon(p.Vertices)
		if !p.Filled {
			for i, a := range pts {
				addSegment(ms, a, pts[(i+1)%len(pts)], p.StrokeWidth)
			}
			return nil
		}
		tris, err := Triangulate(pts)
		if err != nil {
			return err
		}
		addFlatPolygon(ms, pts, tris, 0, flatNormal)
		return nil
	})
}

// Line2D is a line segment from the origin to Segment
// with the given stroke width.
type Line2D struct {
	Segment     math32.Vector2
	StrokeWidth float32
}

func (p Line2D) Kind() Kinds { return Line2DKind }

func (p Line2D) Degenerate() bool {
	return p.Segment.IsNaN() || tiny(p.Segment.Length()) || tiny(p.StrokeWidth)
}

func (p Line2D) Equal(other Params) bool {
	o, ok := other.(Line2D)
	return ok && p.Segment.Equals(o.Segment) && math32.EqualsNaN(p.StrokeWidth, o.StrokeWidth)
}

func (p Line2D) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		addSegment(ms, math32.Vector2{}, p.Segment, p.StrokeWidth)
		return nil
	})
}

// Arrow2D is an arrow from the origin to Vector: a shaft of width BodyWidth
// and a triangular head of length HeadLength and width HeadWidth.
// The head is shortened to the arrow length if longer.
type Arrow2D struct {
	Vector     math32.Vector2
	HeadLength float32
	BodyWidth  float32
	HeadWidth  float32
}

func (p Arrow2D) Kind() Kinds { return Arrow2DKind }

func (p Arrow2D) Degenerate() bool {
	return p.Vector.IsNaN() || anyTiny(p.Vector.Length(), p.HeadLength, p.BodyWidth, p.HeadWidth)
}

func (p Arrow2D) Equal(other Params) bool {
	o, ok := other.(Arrow2D)
	return ok && p.Vector.Equals(o.Vector) && math32.EqualsNaN(p.HeadLength, o.HeadLength) &&
		math32.EqualsNaN(p.BodyWidth, o.BodyWidth) && math32.EqualsNaN(p.HeadWidth, o.HeadWidth)
}

func (p Arrow2D) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		length := p.Vector.Length()
		dir := p.Vector.MulScalar(1 / length)
		head := min(p.HeadLength, length)
		base := dir.MulScalar(length - head)
		if length-head > Epsilon {
			addSegment(ms, math32.Vector2{}, base, p.BodyWidth)
		}
		off := dir.Perp().MulScalar(p.HeadWidth / 2)
		addFlatTriangle(ms, base.Sub(off), p.Vector, base.Add(off))
		return nil
	})
}
