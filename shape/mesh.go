// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"
	"image/color"

	"github.com/robotlab/simview/math32"
)

// Mesh is an indexed triangle mesh in the local frame of the item
// that owns it. Vertex and Normal hold 3 floats per vertex; Color, if
// present, holds 4 floats (RGBA in 0-1) per vertex; Index holds 3
// vertex indexes per triangle, counter-clockwise when seen from outside.
//
// A Mesh is immutable once a builder has returned it: it is handed
// from the background pass to the render pass and must not be written
// to afterwards.
type Mesh struct {
	Vertex math32.ArrayF32
	Normal math32.ArrayF32
	Color  math32.ArrayF32
	Index  math32.ArrayU32

	// BBox is the bounding box of all vertexes.
	BBox math32.Box3
}

// NewMesh returns a new empty mesh.
func NewMesh() *Mesh {
	ms := &Mesh{}
	ms.BBox.SetEmpty()
	return ms
}

// NumVertex returns the number of vertexes.
func (ms *Mesh) NumVertex() int {
	return len(ms.Vertex) / 3
}

// NumTriangles returns the number of triangles.
func (ms *Mesh) NumTriangles() int {
	return len(ms.Index) / 3
}

// IsEmpty returns true if the mesh has no triangles.
func (ms *Mesh) IsEmpty() bool {
	return ms == nil || len(ms.Index) == 0
}

// HasColor returns whether the mesh has per-vertex colors.
func (ms *Mesh) HasColor() bool {
	return len(ms.Color) > 0
}

// nextIndex returns the index the next added vertex will get.
func (ms *Mesh) nextIndex() uint32 {
	return uint32(len(ms.Vertex) / 3)
}

// addVertex appends a vertex with the given position and normal,
// returning its index.
func (ms *Mesh) addVertex(pos, norm math32.Vector3) uint32 {
	idx := ms.nextIndex()
	ms.Vertex.AppendVector3(pos)
	ms.Normal.AppendVector3(norm)
	ms.BBox.ExpandByPoint(pos)
	return idx
}

// addTriangle appends one triangle.
func (ms *Mesh) addTriangle(a, b, c uint32) {
	ms.Index.Append(a, b, c)
}

// addQuad appends the two triangles of the quad a, b, c, d,
// given counter-clockwise.
func (ms *Mesh) addQuad(a, b, c, d uint32) {
	ms.Index.Append(a, b, c, a, c, d)
}

// SetColor sets every vertex to the given color.
func (ms *Mesh) SetColor(clr color.RGBA) {
	ms.Color = ms.Color[:0]
	r, g, b, a := colorFloats(clr)
	for range ms.NumVertex() {
		ms.Color.Append(r, g, b, a)
	}
}

// setColorFrom sets the color of all vertexes from the given starting vertex index.
func (ms *Mesh) setColorFrom(start int, clr color.RGBA) {
	nv := ms.NumVertex()
	for len(ms.Color) < 4*start {
		ms.Color.Append(1, 1, 1, 1)
	}
	ms.Color = ms.Color[:4*start]
	r, g, b, a := colorFloats(clr)
	for range nv - start {
		ms.Color.Append(r, g, b, a)
	}
}

func colorFloats(clr color.RGBA) (r, g, b, a float32) {
	return float32(clr.R) / 255, float32(clr.G) / 255, float32(clr.B) / 255, float32(clr.A) / 255
}

// Append appends the other mesh to this one, rotated by rot and then
// translated by offset.
func (ms *Mesh) Append(other *Mesh, rot math32.Quat, offset math32.Vector3) {
	if other.IsEmpty() {
		return
	}
	stidx := ms.nextIndex()
	if other.HasColor() && !ms.HasColor() {
		for range ms.NumVertex() {
			ms.Color.Append(1, 1, 1, 1)
		}
	}
	ident := rot.IsIdentity()
	nv := other.NumVertex()
	for i := range nv {
		p := other.Vertex.Vector3(3 * i)
		n := other.Normal.Vector3(3 * i)
		if !ident {
			p = p.MulQuat(rot)
			n = n.MulQuat(rot)
		}
		ms.addVertex(p.Add(offset), n)
	}
	switch {
	case other.HasColor():
		ms.Color = append(ms.Color, other.Color...)
	case ms.HasColor():
		for range nv {
			ms.Color.Append(1, 1, 1, 1)
		}
	}
	for _, idx := range other.Index {
		ms.Index.Append(stidx + idx)
	}
}

// Validate checks the structural consistency of the mesh:
// array sizes and index ranges.
func (ms *Mesh) Validate() error {
	if len(ms.Vertex)%3 != 0 {
		return fmt.Errorf("shape.Mesh: vertex array length %d is not a multiple of 3", len(ms.Vertex))
	}
	if len(ms.Normal) != len(ms.Vertex) {
		return fmt.Errorf("shape.Mesh: %d normal floats for %d vertex floats", len(ms.Normal), len(ms.Vertex))
	}
	if ms.HasColor() && len(ms.Color) != 4*ms.NumVertex() {
		return fmt.Errorf("shape.Mesh: %d color floats for %d vertexes", len(ms.Color), ms.NumVertex())
	}
	if len(ms.Index)%3 != 0 {
		return fmt.Errorf("shape.Mesh: index array length %d is not a multiple of 3", len(ms.Index))
	}
	nv := uint32(ms.NumVertex())
	for i, idx := range ms.Index {
		if idx >= nv {
			return fmt.Errorf("shape.Mesh: index %d at %d is out of range of %d vertexes", idx, i, nv)
		}
	}
	for i := range ms.Vertex {
		if !math32.IsFinite(ms.Vertex[i]) || !math32.IsFinite(ms.Normal[i]) {
			return fmt.Errorf("shape.Mesh: non-finite vertex data at float %d", i)
		}
	}
	return nil
}

////////////////////////////////////////////////////////////////////////
//  Primitive sections, all with Z as the axis of revolution

// addCylinderSection adds the side of a generalized cylinder (truncated cone)
// with the given top and bottom radii, centered on offset along the Z axis,
// with optional top and bottom caps.
func (ms *Mesh) addCylinderSection(height, topRad, botRad float32, radialSegs, heightSegs int, top, bottom bool, offset math32.Vector3) {
	hHt := height / 2
	tanTheta := (botRad - topRad) / height
	rows := make([][]uint32, heightSegs+1)
	for y := 0; y <= heightSegs; y++ {
		v := float32(y) / float32(heightSegs)
		radius := botRad + v*(topRad-botRad)
		z := -hHt + v*height
		row := make([]uint32, radialSegs+1)
		for x := 0; x <= radialSegs; x++ {
			u := float32(x) / float32(radialSegs)
			sin, cos := math32.Sincos(u * 2 * math32.Pi)
			pt := math32.Vec3(radius*cos, radius*sin, z).Add(offset)
			norm := math32.Vec3(cos, sin, tanTheta).Normal()
			row[x] = ms.addVertex(pt, norm)
		}
		rows[y] = row
	}
	for y := 0; y < heightSegs; y++ {
		for x := 0; x < radialSegs; x++ {
			a, b, c, d := rows[y][x], rows[y][x+1], rows[y+1][x+1], rows[y+1][x]
			// skip triangles collapsing at the apex of a cone
			if y != 0 || botRad > 0 {
				ms.addTriangle(a, b, c)
			}
			if y != heightSegs-1 || topRad > 0 {
				ms.addTriangle(a, c, d)
			}
		}
	}
	if top && topRad > 0 {
		ms.addDisk(topRad, radialSegs, false, math32.Vec3(0, 0, hHt).Add(offset))
	}
	if bottom && botRad > 0 {
		ms.addDisk(botRad, radialSegs, true, math32.Vec3(0, 0, -hHt).Add(offset))
	}
}

// addDisk adds a filled circle on the XY plane with the given radius,
// facing +Z, or -Z if down is true.
func (ms *Mesh) addDisk(radius float32, segs int, down bool, offset math32.Vector3) {
	norm := math32.Vec3(0, 0, 1)
	if down {
		norm = norm.Negate()
	}
	center := ms.addVertex(offset, norm)
	ring := make([]uint32, segs+1)
	for i := 0; i <= segs; i++ {
		sin, cos := math32.Sincos(float32(i) / float32(segs) * 2 * math32.Pi)
		ring[i] = ms.addVertex(math32.Vec3(radius*cos, radius*sin, 0).Add(offset), norm)
	}
	for i := 0; i < segs; i++ {
		if down {
			ms.addTriangle(center, ring[i+1], ring[i])
		} else {
			ms.addTriangle(center, ring[i], ring[i+1])
		}
	}
}

// addSphereSection adds a sphere section with the given radius, number of
// azimuth and elevation segments, and elevation range in radians where
// 0 is the +Z pole and Pi the -Z pole.
func (ms *Mesh) addSphereSection(radius float32, widthSegs, heightSegs int, elevStart, elevLen float32, offset math32.Vector3) {
	ms.addSampledSphere(widthSegs, heightSegs, elevStart, elevLen, func(dir math32.Vector3) (math32.Vector3, math32.Vector3) {
		return dir.MulScalar(radius).Add(offset), dir
	})
}

// addSampledSphere adds a surface parameterized over the unit sphere of
// directions: for each sampled direction, pt returns the surface point and
// its normal. Triangles collapsing at a pole are skipped.
func (ms *Mesh) addSampledSphere(widthSegs, heightSegs int, elevStart, elevLen float32, pt func(dir math32.Vector3) (math32.Vector3, math32.Vector3)) {
	const poleTol = 1.0e-6
	elevEnd := elevStart + elevLen
	rows := make([][]uint32, heightSegs+1)
	for y := 0; y <= heightSegs; y++ {
		v := float32(y) / float32(heightSegs)
		sinE, cosE := math32.Sincos(elevStart + v*elevLen)
		row := make([]uint32, widthSegs+1)
		for x := 0; x <= widthSegs; x++ {
			u := float32(x) / float32(widthSegs)
			sinA, cosA := math32.Sincos(u * 2 * math32.Pi)
			dir := math32.Vec3(sinE*cosA, sinE*sinA, cosE)
			p, n := pt(dir)
			row[x] = ms.addVertex(p, n)
		}
		rows[y] = row
	}
	for y := 0; y < heightSegs; y++ {
		for x := 0; x < widthSegs; x++ {
			a := rows[y][x]
			b := rows[y][x+1]
			c := rows[y+1][x+1]
			d := rows[y+1][x]
			if y != 0 || elevStart > poleTol {
				ms.addTriangle(a, d, b)
			}
			if y != heightSegs-1 || elevEnd < math32.Pi-poleTol {
				ms.addTriangle(b, d, c)
			}
		}
	}
}

// addPolygonFace adds a flat convex face given as a loop of points,
// counter-clockwise when seen from outside, with its own face normal.
func (ms *Mesh) addPolygonFace(loop []math32.Vector3) {
	if len(loop) < 3 {
		return
	}
	norm := newellNormal(loop)
	first := ms.addVertex(loop[0], norm)
	prev := ms.addVertex(loop[1], norm)
	for _, p := range loop[2:] {
		cur := ms.addVertex(p, norm)
		ms.addTriangle(first, prev, cur)
		prev = cur
	}
}

// newellNormal returns the unit normal of a planar polygon loop
// computed with Newell's method.
func newellNormal(loop []math32.Vector3) math32.Vector3 {
	var n math32.Vector3
	for i, cur := range loop {
		next := loop[(i+1)%len(loop)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n.Normal()
}
