// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"github.com/robotlab/simview/math32"
)

// Box is a rectangular box of the given size centered on the origin.
type Box struct {
	Size math32.Vector3
}

func (p Box) Kind() Kinds { return BoxKind }

func (p Box) Degenerate() bool { return anyTiny(p.Size.X, p.Size.Y, p.Size.Z) }

func (p Box) Equal(other Params) bool {
	o, ok := other.(Box)
	return ok && p.Size.Equals(o.Size)
}

func (p Box) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		addFaces(ms, boxVertices(p.Size), boxFaces)
		return nil
	})
}

// boxVertices returns the 8 corners of a box centered on the origin,
// where bit 0 of the index selects +X, bit 1 +Y and bit 2 +Z.
func boxVertices(size math32.Vector3) []math32.Vector3 {
	hs := size.MulScalar(0.5)
	vs := make([]math32.Vector3, 8)
	for i := range vs {
		v := hs.Negate()
		if i&1 != 0 {
			v.X = hs.X
		}
		if i&2 != 0 {
			v.Y = hs.Y
		}
		if i&4 != 0 {
			v.Z = hs.Z
		}
		vs[i] = v
	}
	return vs
}

// boxFaces are the faces of [boxVertices], counter-clockwise from outside.
var boxFaces = [][]int{
	{0, 2, 3, 1}, // -Z
	{4, 5, 7, 6}, // +Z
	{0, 1, 5, 4}, // -Y
	{2, 6, 7, 3}, // +Y
	{0, 4, 6, 2}, // -X
	{1, 3, 7, 5}, // +X
}

// boxMaxEdgeLengthSquared returns the square of the largest face diagonal.
func boxMaxEdgeLengthSquared(size math32.Vector3) float32 {
	x2, y2, z2 := size.X*size.X, size.Y*size.Y, size.Z*size.Z
	return max(x2+y2, x2+z2, y2+z2)
}

// Ramp is a wedge with its rectangular bottom face of size X by Y on the
// XY plane, centered on the origin, and its slope rising along +X
// up to height Z at x = X/2.
type Ramp struct {
	Size math32.Vector3
}

func (p Ramp) Kind() Kinds { return RampKind }

func (p Ramp) Degenerate() bool { return anyTiny(p.Size.X, p.Size.Y, p.Size.Z) }

func (p Ramp) Equal(other Params) bool {
	o, ok := other.(Ramp)
	return ok && p.Size.Equals(o.Size)
}

func (p Ramp) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		addFaces(ms, rampVertices(p.Size), rampFaces)
		return nil
	})
}

// rampVertices returns the 6 vertexes of a ramp: the 4 bottom corners
// in the same order as the bottom of [boxVertices], then the top edge
// at -Y and +Y.
func rampVertices(size math32.Vector3) []math32.Vector3 {
	hx, hy := size.X/2, size.Y/2
	return []math32.Vector3{
		math32.Vec3(-hx, -hy, 0),
		math32.Vec3(hx, -hy, 0),
		math32.Vec3(-hx, hy, 0),
		math32.Vec3(hx, hy, 0),
		math32.Vec3(hx, -hy, size.Z),
		math32.Vec3(hx, hy, size.Z),
	}
}

// rampFaces are the faces of [rampVertices], counter-clockwise from outside.
var rampFaces = [][]int{
	{0, 2, 3, 1}, // bottom
	{1, 3, 5, 4}, // back, +X
	{0, 4, 5, 2}, // slope
	{0, 1, 4},    // -Y side
	{2, 5, 3},    // +Y side
}

// rampMaxEdgeLengthSquared returns the square of the slope face diagonal,
// which is the largest face diagonal of a ramp.
func rampMaxEdgeLengthSquared(size math32.Vector3) float32 {
	return size.LengthSquared()
}

// addFaces adds flat faces given as loops of indexes into vs.
func addFaces(ms *Mesh, vs []math32.Vector3, faces [][]int) {
	loop := make([]math32.Vector3, 0, 4)
	for _, f := range faces {
		loop = loop[:0]
		for _, i := range f {
			loop = append(loop, vs[i])
		}
		ms.addPolygonFace(loop)
	}
}
