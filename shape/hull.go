// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"

	"github.com/robotlab/simview/math32"
)

// Hull is the convex hull of a point set: the points it was computed
// from and its triangular faces as indexes into them,
// counter-clockwise when seen from outside.
type Hull struct {
	Points []math32.Vector3
	Faces  [][3]int
}

// ConvexHull computes the convex hull of the given points with an
// incremental algorithm. It returns [ErrDegenerate] if there are fewer than
// 4 points that are not all coplanar.
func ConvexHull(points []math32.Vector3) (*Hull, error) {
	pts := dedupePoints(points)
	if len(pts) < 4 {
		return nil, fmt.Errorf("shape.ConvexHull: %d distinct points: %w", len(pts), ErrDegenerate)
	}
	tet, ok := initialTetrahedron(pts)
	if !ok {
		return nil, fmt.Errorf("shape.ConvexHull: points are coplanar: %w", ErrDegenerate)
	}
	h := &Hull{Points: pts}
	a, b, c, d := tet[0], tet[1], tet[2], tet[3]
	// orient so that d is behind face a, b, c
	if h.signedDist([3]int{a, b, c}, pts[d]) > 0 {
		b, c = c, b
	}
	h.Faces = [][3]int{{a, b, c}, {a, d, b}, {b, d, c}, {c, d, a}}

	eps := hullEpsilon(pts)
	for i, p := range pts {
		if i == a || i == b || i == c || i == d {
			continue
		}
		visible := make([]bool, len(h.Faces))
		nvis := 0
		for fi, f := range h.Faces {
			if h.signedDist(f, p) > eps {
				visible[fi] = true
				nvis++
			}
		}
		if nvis == 0 {
			continue
		}
		// directed edges of visible faces; horizon edges are those whose
		// reverse does not belong to a visible face.
		edges := make(map[[2]int]bool)
		for fi, f := range h.Faces {
			if visible[fi] {
				edges[[2]int{f[0], f[1]}] = true
				edges[[2]int{f[1], f[2]}] = true
				edges[[2]int{f[2], f[0]}] = true
			}
		}
		nf := make([][3]int, 0, len(h.Faces)-nvis+len(edges))
		for fi, f := range h.Faces {
			if !visible[fi] {
				nf = append(nf, f)
			}
		}
		for fi, f := range h.Faces {
			if !visible[fi] {
				continue
			}
			for k := range 3 {
				e0, e1 := f[k], f[(k+1)%3]
				if !edges[[2]int{e1, e0}] {
					nf = append(nf, [3]int{e0, e1, i})
				}
			}
		}
		h.Faces = nf
	}
	return h, nil
}

// normal returns the non-normalized outward normal of face f.
func (h *Hull) normal(f [3]int) math32.Vector3 {
	p0, p1, p2 := h.Points[f[0]], h.Points[f[1]], h.Points[f[2]]
	return p1.Sub(p0).Cross(p2.Sub(p0))
}

// signedDist returns the signed distance of p from the plane of face f,
// positive in front of it.
func (h *Hull) signedDist(f [3]int, p math32.Vector3) float32 {
	n := h.normal(f).Normal()
	return n.Dot(p.Sub(h.Points[f[0]]))
}

// Vertices returns the points that are vertexes of the hull,
// in the order of the input points.
func (h *Hull) Vertices() []math32.Vector3 {
	used := make([]bool, len(h.Points))
	for _, f := range h.Faces {
		for _, i := range f {
			used[i] = true
		}
	}
	vs := make([]math32.Vector3, 0, len(h.Points))
	for i, u := range used {
		if u {
			vs = append(vs, h.Points[i])
		}
	}
	return vs
}

// MaxEdgeLengthSquared returns the square of the longest edge of the
// triangulated hull.
func (h *Hull) MaxEdgeLengthSquared() float32 {
	var mx float32
	for _, f := range h.Faces {
		for k := range 3 {
			mx = max(mx, h.Points[f[k]].DistanceToSquared(h.Points[f[(k+1)%3]]))
		}
	}
	return mx
}

// addTo adds the faces of the hull to the mesh with flat face normals.
func (h *Hull) addTo(ms *Mesh) {
	for _, f := range h.Faces {
		n := h.normal(f).Normal()
		i0 := ms.addVertex(h.Points[f[0]], n)
		i1 := ms.addVertex(h.Points[f[1]], n)
		i2 := ms.addVertex(h.Points[f[2]], n)
		ms.addTriangle(i0, i1, i2)
	}
}

// hullEpsilon returns the distance tolerance for the given points,
// scaled to their extent.
func hullEpsilon(pts []math32.Vector3) float32 {
	bb := math32.B3Empty()
	for _, p := range pts {
		bb.ExpandByPoint(p)
	}
	sz := bb.Size()
	return Epsilon * max(1, sz.X, sz.Y, sz.Z)
}

// dedupePoints returns the points without NaN and without
// points closer than [Epsilon] to a previous one.
func dedupePoints(points []math32.Vector3) []math32.Vector3 {
	const eps2 = Epsilon * Epsilon
	pts := make([]math32.Vector3, 0, len(points))
outer:
	for _, p := range points {
		if p.IsNaN() {
			continue
		}
		for _, q := range pts {
			if p.DistanceToSquared(q) < eps2 {
				continue outer
			}
		}
		pts = append(pts, p)
	}
	return pts
}

// initialTetrahedron picks 4 points spanning a volume: the two points
// most distant along X, Y or Z, the point farthest from their line, and
// the point farthest from the plane of the three.
func initialTetrahedron(pts []math32.Vector3) ([4]int, bool) {
	var tet [4]int
	eps := hullEpsilon(pts)
	best := float32(-1)
	for dim := math32.X; dim <= math32.Z; dim++ {
		imin, imax := 0, 0
		for i, p := range pts {
			if p.Dim(dim) < pts[imin].Dim(dim) {
				imin = i
			}
			if p.Dim(dim) > pts[imax].Dim(dim) {
				imax = i
			}
		}
		if d := pts[imax].Dim(dim) - pts[imin].Dim(dim); d > best {
			best = d
			tet[0], tet[1] = imin, imax
		}
	}
	if best <= eps {
		return tet, false
	}
	p0, p1 := pts[tet[0]], pts[tet[1]]
	dir := p1.Sub(p0).Normal()
	best = -1
	for i, p := range pts {
		v := p.Sub(p0)
		d := v.Sub(dir.MulScalar(v.Dot(dir))).Length()
		if d > best {
			best = d
			tet[2] = i
		}
	}
	if best <= eps {
		return tet, false
	}
	n := p1.Sub(p0).Cross(pts[tet[2]].Sub(p0)).Normal()
	best = -1
	for i, p := range pts {
		d := math32.Abs(n.Dot(p.Sub(p0)))
		if d > best {
			best = d
			tet[3] = i
		}
	}
	if best <= eps {
		return tet, false
	}
	return tet, true
}

// ConvexPolytope is the convex hull of the given vertexes.
type ConvexPolytope struct {
	Vertices []math32.Vector3
}

func (p ConvexPolytope) Kind() Kinds { return ConvexPolytopeKind }

func (p ConvexPolytope) Degenerate() bool {
	return len(p.Vertices) < 4 || anyVector3NaN(p.Vertices)
}

func (p ConvexPolytope) Equal(other Params) bool {
	o, ok := other.(ConvexPolytope)
	return ok && vector3sEqual(p.Vertices, o.Vertices)
}

func (p ConvexPolytope) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		h, err := ConvexHull(p.Vertices)
		if err != nil {
			return err
		}
		h.addTo(ms)
		return nil
	})
}
