// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"
	"slices"

	"github.com/robotlab/simview/math32"
)

// CleanPolygon returns the polygon without NaN points, consecutive
// duplicate points and a closing point equal to the first,
// oriented counter-clockwise.
func CleanPolygon(pts []math32.Vector2) []math32.Vector2 {
	const eps2 = Epsilon * Epsilon
	cl := make([]math32.Vector2, 0, len(pts))
	for _, p := range pts {
		if p.IsNaN() {
			continue
		}
		if n := len(cl); n > 0 && cl[n-1].DistanceToSquared(p) < eps2 {
			continue
		}
		cl = append(cl, p)
	}
	for len(cl) > 1 && cl[0].DistanceToSquared(cl[len(cl)-1]) < eps2 {
		cl = cl[:len(cl)-1]
	}
	if SignedArea(cl) < 0 {
		slices.Reverse(cl)
	}
	return cl
}

// SignedArea returns the area of the polygon,
// positive if counter-clockwise.
func SignedArea(pts []math32.Vector2) float32 {
	var a float32
	for i, p := range pts {
		a += p.Cross(pts[(i+1)%len(pts)])
	}
	return a / 2
}

// Triangulate returns the triangles of a simple counter-clockwise polygon
// as indexes into pts, computed by ear clipping.
// It returns [ErrDegenerate] for fewer than 3 points, a near-zero area or
// a self-intersecting polygon.
func Triangulate(pts []math32.Vector2) ([][3]int, error) {
	n := len(pts)
	if n < 3 {
		return nil, fmt.Errorf("shape.Triangulate: %d points: %w", n, ErrDegenerate)
	}
	if SignedArea(pts) < Epsilon*Epsilon {
		return nil, fmt.Errorf("shape.Triangulate: near-zero or clockwise area: %w", ErrDegenerate)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	tris := make([][3]int, 0, n-2)
	for len(idx) > 3 {
		found := false
		for i := range idx {
			prev := idx[(i+len(idx)-1)%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			if !isEar(pts, idx, prev, cur, next) {
				continue
			}
			tris = append(tris, [3]int{prev, cur, next})
			idx = slices.Delete(idx, i, i+1)
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("shape.Triangulate: no ear found, polygon is not simple: %w", ErrDegenerate)
		}
	}
	tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	return tris, nil
}

// isEar returns whether the vertex cur is a convex vertex whose triangle
// with its neighbors contains none of the other remaining vertexes.
func isEar(pts []math32.Vector2, idx []int, prev, cur, next int) bool {
	a, b, c := pts[prev], pts[cur], pts[next]
	if b.Sub(a).Cross(c.Sub(b)) <= 0 {
		return false
	}
	for _, j := range idx {
		if j == prev || j == cur || j == next {
			continue
		}
		if pointInTriangle(pts[j], a, b, c) {
			return false
		}
	}
	return true
}

// pointInTriangle returns whether p is inside or on the border of the
// counter-clockwise triangle a, b, c.
func pointInTriangle(p, a, b, c math32.Vector2) bool {
	return b.Sub(a).Cross(p.Sub(a)) >= 0 &&
		c.Sub(b).Cross(p.Sub(b)) >= 0 &&
		a.Sub(c).Cross(p.Sub(c)) >= 0
}

// ExtrudedPolygon is a polygon on the XY plane extruded along +Z
// from z = 0 to z = Thickness.
type ExtrudedPolygon struct {
	Vertices  []math32.Vector2
	Thickness float32
}

func (p ExtrudedPolygon) Kind() Kinds { return ExtrudedPolygonKind }

func (p ExtrudedPolygon) Degenerate() bool {
	return tiny(p.Thickness) || anyVector2NaN(p.Vertices) || len(CleanPolygon(p.Vertices)) < 3
}

func (p ExtrudedPolygon) Equal(other Params) bool {
	o, ok := other.(ExtrudedPolygon)
	return ok && math32.EqualsNaN(p.Thickness, o.Thickness) && vector2sEqual(p.Vertices, o.Vertices)
}

func (p ExtrudedPolygon) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		pts := CleanPolygon(p.Vertices)
		tris, err := Triangulate(pts)
		if err != nil {
			return err
		}
		up := math32.Vec3(0, 0, 1)
		addFlatPolygon(ms, pts, tris, p.Thickness, up)
		addFlatPolygon(ms, pts, tris, 0, up.Negate())
		n := len(pts)
		for i, a := range pts {
			b := pts[(i+1)%n]
			e := b.Sub(a)
			norm := math32.Vec3(e.Y, -e.X, 0).Normal()
			i0 := ms.addVertex(a.Vector3(0), norm)
			i1 := ms.addVertex(b.Vector3(0), norm)
			i2 := ms.addVertex(b.Vector3(p.Thickness), norm)
			i3 := ms.addVertex(a.Vector3(p.Thickness), norm)
			ms.addQuad(i0, i1, i2, i3)
		}
		return nil
	})
}

// addFlatPolygon adds a triangulated polygon at height z facing norm,
// which must be +Z or -Z.
func addFlatPolygon(ms *Mesh, pts []math32.Vector2, tris [][3]int, z float32, norm math32.Vector3) {
	stidx := ms.nextIndex()
	for _, p := range pts {
		ms.addVertex(p.Vector3(z), norm)
	}
	for _, t := range tris {
		a, b, c := stidx+uint32(t[0]), stidx+uint32(t[1]), stidx+uint32(t[2])
		if norm.Z < 0 {
			ms.addTriangle(a, c, b)
		} else {
			ms.addTriangle(a, b, c)
		}
	}
}
