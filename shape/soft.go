// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"

	"github.com/robotlab/simview/math32"
)

// Soft shapes are polytopes with rounded faces, edges and corners.
// The margin between the soft surface and the polytope is MinMargin at
// the corners and grows up to MaxMargin at the middle of the largest face.
//
// The surface is built from two radii: faces are patches of spheres of the
// large radius, corners are patches of spheres of the small radius, and
// edges are the tori joining them. Equivalently, it is the ball hull of
// the polytope vertexes for radius (large - small), inflated by small.

// softCylinderRingPoints is the number of points approximating each
// end circle of a soft cylinder.
const softCylinderRingPoints = 12

// LargeRadius returns the large radius of a soft shape with the given margins,
// where maxEdgeLengthSquared is the square of the largest face diagonal of
// the shape. A face of that diagonal bulges by exactly maxMargin - minMargin,
// which gives the same curvature for a given margin regardless of the shape.
func LargeRadius(minMargin, maxMargin, maxEdgeLengthSquared float32) (float32, error) {
	a := maxMargin - minMargin
	if math32.IsNaN(a) || a <= Epsilon {
		return 0, fmt.Errorf("shape.LargeRadius: max margin %g must exceed min margin %g: %w", maxMargin, minMargin, ErrNotConstructible)
	}
	if math32.IsNaN(maxEdgeLengthSquared) || maxEdgeLengthSquared <= 0 {
		return 0, fmt.Errorf("shape.LargeRadius: invalid edge length: %w", ErrNotConstructible)
	}
	return (maxEdgeLengthSquared/4+a*a)/(2*a) + minMargin, nil
}

// SoftSurface samples the surface of a soft shape: the ball hull of verts for
// radius large - small, inflated by small. It keeps, for each direction d,
// the center c of the feasible set (the points within large - small of all
// verts) minimizing d.c, so that the surface point is c + large * d, with normal d.
type SoftSurface struct {
	verts  []math32.Vector3
	radius float32
	large  float32
	tol2   float32

	// pair circles: centers, unit axes and circle radii
	pairCenters []math32.Vector3
	pairAxes    []math32.Vector3
	pairRadii   []float32

	// feasible points at distance radius of 3 vertexes
	corners []math32.Vector3
}

// NewSoftSurface returns the surface of the soft shape with the given
// vertexes and radii. It returns [ErrNotConstructible] if the vertexes do not
// fit in a sphere of radius large - small.
func NewSoftSurface(verts []math32.Vector3, small, large float32) (*SoftSurface, error) {
	r := large - small
	if r <= Epsilon || small < 0 {
		return nil, fmt.Errorf("shape.NewSoftSurface: radii %g, %g: %w", small, large, ErrNotConstructible)
	}
	tol := r*1.0e-4 + Epsilon
	ss := &SoftSurface{verts: verts, radius: r, large: large, tol2: (r + tol) * (r + tol)}
	r2 := r * r
	n := len(verts)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ab := verts[j].Sub(verts[i])
			hd2 := ab.LengthSquared() / 4
			if hd2 > ss.tol2 {
				return nil, fmt.Errorf("shape.NewSoftSurface: vertexes %d and %d are farther apart than %g: %w", i, j, 2*r, ErrNotConstructible)
			}
			ss.pairCenters = append(ss.pairCenters, verts[i].Add(ab.MulScalar(0.5)))
			ss.pairAxes = append(ss.pairAxes, ab.Normal())
			ss.pairRadii = append(ss.pairRadii, math32.Sqrt(max(0, r2-hd2)))
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				o, nrm, rho2, ok := circumcircle(verts[i], verts[j], verts[k])
				if !ok || rho2 > ss.tol2 {
					continue
				}
				h := math32.Sqrt(max(0, r2-rho2))
				for _, c := range []math32.Vector3{o.Add(nrm.MulScalar(h)), o.Sub(nrm.MulScalar(h))} {
					if ss.feasible(c) {
						ss.corners = append(ss.corners, c)
					}
				}
			}
		}
	}
	return ss, nil
}

// circumcircle returns the center, unit normal and squared radius of the
// circle through a, b and c, and false if they are collinear.
func circumcircle(a, b, c math32.Vector3) (center, norm math32.Vector3, rad2 float32, ok bool) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	n := ab.Cross(ac)
	n2 := n.LengthSquared()
	if n2 < Epsilon*Epsilon*Epsilon*Epsilon {
		return
	}
	off := n.Cross(ab).MulScalar(ac.LengthSquared()).Add(ac.Cross(n).MulScalar(ab.LengthSquared())).MulScalar(1 / (2 * n2))
	return a.Add(off), n.Normal(), off.LengthSquared(), true
}

// feasible returns whether c is within the ball radius of all vertexes.
func (ss *SoftSurface) feasible(c math32.Vector3) bool {
	for _, v := range ss.verts {
		if c.DistanceToSquared(v) > ss.tol2 {
			return false
		}
	}
	return true
}

// Center returns the center of the feasible set minimizing dir.c,
// and false if there is none.
func (ss *SoftSurface) Center(dir math32.Vector3) (math32.Vector3, bool) {
	best := math32.Infinity
	var bc math32.Vector3
	for _, c := range ss.corners {
		if d := dir.Dot(c); d < best {
			best, bc = d, c
		}
	}
	for i, m := range ss.pairCenters {
		e := ss.pairAxes[i]
		perp := dir.Sub(e.MulScalar(dir.Dot(e)))
		pl := perp.Length()
		if pl < 1.0e-6 {
			continue
		}
		c := m.Sub(perp.MulScalar(ss.pairRadii[i] / pl))
		if d := dir.Dot(c); d < best && ss.feasible(c) {
			best, bc = d, c
		}
	}
	for _, v := range ss.verts {
		c := v.Sub(dir.MulScalar(ss.radius))
		if d := dir.Dot(c); d < best && ss.feasible(c) {
			best, bc = d, c
		}
	}
	return bc, best < math32.Infinity
}

// Point returns the surface point with outward normal dir, which must be a unit vector.
func (ss *SoftSurface) Point(dir math32.Vector3) (math32.Vector3, bool) {
	c, ok := ss.Center(dir)
	if !ok {
		return math32.Vector3{}, false
	}
	return c.Add(dir.MulScalar(ss.large)), true
}

// addTo samples the surface over the fixed grid of directions.
func (ss *SoftSurface) addTo(ms *Mesh) error {
	var err error
	ms.addSampledSphere(SoftAzimuthSegments, SoftElevationSegments, 0, math32.Pi, func(dir math32.Vector3) (math32.Vector3, math32.Vector3) {
		p, ok := ss.Point(dir)
		if !ok && err == nil {
			err = fmt.Errorf("shape.SoftSurface: empty feasible set in direction %v: %w", dir, ErrNotConstructible)
		}
		return p, dir
	})
	return err
}

// buildSoft builds a soft shape from its polytope vertexes.
func buildSoft(ms *Mesh, verts []math32.Vector3, minMargin, maxMargin, maxEdgeLengthSquared float32) error {
	large, err := LargeRadius(minMargin, maxMargin, maxEdgeLengthSquared)
	if err != nil {
		return err
	}
	ss, err := NewSoftSurface(verts, max(0, minMargin), large)
	if err != nil {
		return err
	}
	return ss.addTo(ms)
}

func softMarginsDegenerate(minMargin, maxMargin float32) bool {
	return negative(minMargin) || math32.IsNaN(maxMargin)
}

// SoftBox is a [Box] with rounded faces, edges and corners.
type SoftBox struct {
	Size      math32.Vector3
	MinMargin float32
	MaxMargin float32
}

func (p SoftBox) Kind() Kinds { return SoftBoxKind }

func (p SoftBox) Degenerate() bool {
	return anyTiny(p.Size.X, p.Size.Y, p.Size.Z) || softMarginsDegenerate(p.MinMargin, p.MaxMargin)
}

func (p SoftBox) Equal(other Params) bool {
	o, ok := other.(SoftBox)
	return ok && p.Size.Equals(o.Size) && math32.EqualsNaN(p.MinMargin, o.MinMargin) && math32.EqualsNaN(p.MaxMargin, o.MaxMargin)
}

func (p SoftBox) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		return buildSoft(ms, boxVertices(p.Size), p.MinMargin, p.MaxMargin, boxMaxEdgeLengthSquared(p.Size))
	})
}

// SoftRamp is a [Ramp] with rounded faces, edges and corners.
type SoftRamp struct {
	Size      math32.Vector3
	MinMargin float32
	MaxMargin float32
}

func (p SoftRamp) Kind() Kinds { return SoftRampKind }

func (p SoftRamp) Degenerate() bool {
	return anyTiny(p.Size.X, p.Size.Y, p.Size.Z) || softMarginsDegenerate(p.MinMargin, p.MaxMargin)
}

func (p SoftRamp) Equal(other Params) bool {
	o, ok := other.(SoftRamp)
	return ok && p.Size.Equals(o.Size) && math32.EqualsNaN(p.MinMargin, o.MinMargin) && math32.EqualsNaN(p.MaxMargin, o.MaxMargin)
}

func (p SoftRamp) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		return buildSoft(ms, rampVertices(p.Size), p.MinMargin, p.MaxMargin, rampMaxEdgeLengthSquared(p.Size))
	})
}

// SoftCylinder is a [Cylinder] with rounded rims.
type SoftCylinder struct {
	Length    float32
	Radius    float32
	MinMargin float32
	MaxMargin float32
}

func (p SoftCylinder) Kind() Kinds { return SoftCylinderKind }

func (p SoftCylinder) Degenerate() bool {
	return anyTiny(p.Length, p.Radius) || softMarginsDegenerate(p.MinMargin, p.MaxMargin)
}

func (p SoftCylinder) Equal(other Params) bool {
	o, ok := other.(SoftCylinder)
	return ok && math32.EqualsNaN(p.Length, o.Length) && math32.EqualsNaN(p.Radius, o.Radius) &&
		math32.EqualsNaN(p.MinMargin, o.MinMargin) && math32.EqualsNaN(p.MaxMargin, o.MaxMargin)
}

func (p SoftCylinder) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		verts := make([]math32.Vector3, 0, 2*softCylinderRingPoints)
		for _, z := range []float32{-p.Length / 2, p.Length / 2} {
			for i := range softCylinderRingPoints {
				sin, cos := math32.Sincos(float32(i) / softCylinderRingPoints * 2 * math32.Pi)
				verts = append(verts, math32.Vec3(p.Radius*cos, p.Radius*sin, z))
			}
		}
		diam := 2 * p.Radius
		return buildSoft(ms, verts, p.MinMargin, p.MaxMargin, max(diam*diam, p.Length*p.Length))
	})
}

// SoftConvexPolytope is a [ConvexPolytope] with rounded faces, edges and corners.
type SoftConvexPolytope struct {
	Vertices  []math32.Vector3
	MinMargin float32
	MaxMargin float32
}

func (p SoftConvexPolytope) Kind() Kinds { return SoftConvexPolytopeKind }

func (p SoftConvexPolytope) Degenerate() bool {
	return len(p.Vertices) < 4 || anyVector3NaN(p.Vertices) || softMarginsDegenerate(p.MinMargin, p.MaxMargin)
}

func (p SoftConvexPolytope) Equal(other Params) bool {
	o, ok := other.(SoftConvexPolytope)
	return ok && vector3sEqual(p.Vertices, o.Vertices) &&
		math32.EqualsNaN(p.MinMargin, o.MinMargin) && math32.EqualsNaN(p.MaxMargin, o.MaxMargin)
}

func (p SoftConvexPolytope) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		h, err := ConvexHull(p.Vertices)
		if err != nil {
			return err
		}
		return buildSoft(ms, h.Vertices(), p.MinMargin, p.MaxMargin, h.MaxEdgeLengthSquared())
	})
}
