// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotlab/simview/math32"
)

var nan = math32.NaN()

func cubeCorners(size float32) []math32.Vector3 {
	return boxVertices(math32.Vector3Scalar(size))
}

// validParams has one valid snapshot per kind.
func validParams() []Params {
	arrow := Arrow{BodyLength: 0.8, HeadLength: 0.2, BodyRadius: 0.02, HeadRadius: 0.05}
	return []Params{
		arrow,
		Box{Size: math32.Vec3(1, 2, 3)},
		Capsule{Length: 1, Radius: 0.1},
		Cone{Height: 0.1, Radius: 0.02},
		Cylinder{Length: 1, Radius: 0.1},
		Ellipsoid{Radii: math32.Vec3(1, 2, 3)},
		Sphere{Radius: 0.5},
		Ramp{Size: math32.Vec3(2, 1, 0.5)},
		ConvexPolytope{Vertices: cubeCorners(1)},
		ExtrudedPolygon{Vertices: []math32.Vector2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2}}, Thickness: 0.1},
		Polynomial{CoefficientsX: []float32{0, 1}, CoefficientsY: []float32{0, 0, 1}, StartTime: 0, EndTime: 1, Radius: 0.05, TimeResolution: 10, Divisions: 8},
		CoordinateSystem{Arrow: arrow},
		PointCloud{Points: []math32.Vector3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}, math32.Vector3NaN()}, Size: 0.1},
		SoftBox{Size: math32.Vec3(1, 1, 1), MinMargin: 0.01, MaxMargin: 0.05},
		SoftRamp{Size: math32.Vec3(1, 1, 0.5), MinMargin: 0.01, MaxMargin: 0.05},
		SoftCylinder{Length: 1, Radius: 0.2, MinMargin: 0.01, MaxMargin: 0.05},
		SoftConvexPolytope{Vertices: cubeCorners(1), MinMargin: 0.01, MaxMargin: 0.05},
		Point2D{Size: 0.1, Marker: MarkerCircle},
		Polygon2D{Vertices: []math32.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, Filled: true},
		Line2D{Segment: math32.Vec2(1, 1), StrokeWidth: 0.01},
		PointCloud2D{Points: []math32.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}}, Size: 0.1, Marker: MarkerSquare},
		Arrow2D{Vector: math32.Vec2(1, 0), HeadLength: 0.2, BodyWidth: 0.02, HeadWidth: 0.1},
	}
}

func TestAllKindsBuild(t *testing.T) {
	seen := map[Kinds]bool{}
	for _, p := range validParams() {
		t.Run(p.Kind().String(), func(t *testing.T) {
			assert.False(t, p.Degenerate())
			ms, err := p.Build()
			require.NoError(t, err)
			assert.False(t, ms.IsEmpty())
			assert.NoError(t, ms.Validate())
			assert.True(t, p.Equal(p))
		})
		seen[p.Kind()] = true
	}
	assert.Len(t, seen, int(KindsN))
}

// assertOutwardWinding checks that every triangle winds counter-clockwise
// when seen from the side its vertex normals point to.
func assertOutwardWinding(t *testing.T, ms *Mesh) {
	t.Helper()
	for i := 0; i < len(ms.Index); i += 3 {
		a := ms.Vertex.Vector3(3 * int(ms.Index[i]))
		b := ms.Vertex.Vector3(3 * int(ms.Index[i+1]))
		c := ms.Vertex.Vector3(3 * int(ms.Index[i+2]))
		n := ms.Normal.Vector3(3 * int(ms.Index[i])).Add(ms.Normal.Vector3(3 * int(ms.Index[i+1]))).Add(ms.Normal.Vector3(3 * int(ms.Index[i+2])))
		face := b.Sub(a).Cross(c.Sub(a))
		if !assert.Greater(t, face.Dot(n), float32(0), "triangle %d", i/3) {
			return
		}
	}
}

func TestWinding(t *testing.T) {
	for _, p := range []Params{
		Box{Size: math32.Vec3(1, 2, 3)},
		Ramp{Size: math32.Vec3(2, 1, 0.5)},
		Cylinder{Length: 1, Radius: 0.1},
		Cone{Height: 0.1, Radius: 0.02},
		Capsule{Length: 1, Radius: 0.1},
		Sphere{Radius: 0.5},
		Ellipsoid{Radii: math32.Vec3(1, 2, 3)},
		ConvexPolytope{Vertices: append(cubeCorners(1), math32.Vec3(0, 0, 0), math32.Vec3(0, 0, 2))},
		ExtrudedPolygon{Vertices: []math32.Vector2{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 0}}, Thickness: 0.1},
		Polynomial{CoefficientsZ: []float32{0, 1}, StartTime: 0, EndTime: 1, Radius: 0.05, TimeResolution: 4, Divisions: 8},
		Arrow2D{Vector: math32.Vec2(0, 1), HeadLength: 0.2, BodyWidth: 0.02, HeadWidth: 0.1},
	} {
		t.Run(p.Kind().String(), func(t *testing.T) {
			ms, err := p.Build()
			require.NoError(t, err)
			assertOutwardWinding(t, ms)
		})
	}
}

func TestBoundingBoxes(t *testing.T) {
	tol := 1.0e-5
	ms, err := Cone{Height: 0.1, Radius: 0.02}.Build()
	require.NoError(t, err)
	assert.InDelta(t, 0, ms.BBox.Min.Z, tol)
	assert.InDelta(t, 0.1, ms.BBox.Max.Z, tol)
	assert.InDelta(t, 0.02, ms.BBox.Max.X, tol)

	ms, err = Capsule{Length: 1, Radius: 0.1}.Build()
	require.NoError(t, err)
	assert.InDelta(t, -0.6, ms.BBox.Min.Z, tol)
	assert.InDelta(t, 0.6, ms.BBox.Max.Z, tol)

	ms, err = Box{Size: math32.Vec3(1, 2, 3)}.Build()
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(-0.5, -1, -1.5), ms.BBox.Min)
	assert.Equal(t, math32.Vec3(0.5, 1, 1.5), ms.BBox.Max)
	assert.Equal(t, 12, ms.NumTriangles())

	ms, err = Ramp{Size: math32.Vec3(2, 1, 0.5)}.Build()
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(-1, -0.5, 0), ms.BBox.Min)
	assert.Equal(t, math32.Vec3(1, 0.5, 0.5), ms.BBox.Max)

	ms, err = Arrow{BodyLength: 0.8, HeadLength: 0.2, BodyRadius: 0.02, HeadRadius: 0.05}.Build()
	require.NoError(t, err)
	assert.InDelta(t, 0, ms.BBox.Min.Z, tol)
	assert.InDelta(t, 1, ms.BBox.Max.Z, tol)
	assert.InDelta(t, 0.05, ms.BBox.Max.X, tol)

	ms, err = Polynomial{CoefficientsX: []float32{1, 2}, StartTime: 0, EndTime: 1, Radius: 0.1, TimeResolution: 5, Divisions: 16}.Build()
	require.NoError(t, err)
	assert.InDelta(t, 1, ms.BBox.Min.X, tol)
	assert.InDelta(t, 3, ms.BBox.Max.X, tol)
	assert.InDelta(t, 0.1, ms.BBox.Max.Y, tol)
}

func TestDegenerate(t *testing.T) {
	for _, p := range []Params{
		Capsule{Length: 1, Radius: 0},
		Capsule{Length: 1, Radius: nan},
		Cone{Height: 0.1, Radius: 1e-6},
		Cylinder{Length: -1, Radius: 0.1},
		Box{Size: math32.Vec3(1, 0, 1)},
		Ellipsoid{Radii: math32.Vector3NaN()},
		ConvexPolytope{Vertices: cubeCorners(1)[:3]},
		ConvexPolytope{Vertices: append(cubeCorners(1), math32.Vector3NaN())},
		ExtrudedPolygon{Vertices: []math32.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}}, Thickness: 1},
		ExtrudedPolygon{Vertices: []math32.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}}, Thickness: 1},
		Polynomial{CoefficientsX: []float32{nan}, EndTime: 1, Radius: 0.1, TimeResolution: 5, Divisions: 8},
		Polynomial{CoefficientsX: []float32{1}, EndTime: 1, Radius: 0.1, TimeResolution: 1, Divisions: 8},
		PointCloud{Points: []math32.Vector3{math32.Vector3NaN()}, Size: 1},
		SoftBox{Size: math32.Vec3(1, 1, 1), MinMargin: nan, MaxMargin: 0.1},
		Polygon2D{Vertices: []math32.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}}, Filled: true},
		Polygon2D{Vertices: []math32.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}}, StrokeWidth: 0},
		Line2D{Segment: math32.Vec2(0, 0), StrokeWidth: 1},
		Arrow2D{Vector: math32.Vec2(nan, 1), HeadLength: 0.2, BodyWidth: 0.02, HeadWidth: 0.1},
	} {
		assert.True(t, p.Degenerate(), "%s %+v", p.Kind(), p)
		_, err := p.Build()
		assert.ErrorIs(t, err, ErrDegenerate)
	}
}

func TestEqual(t *testing.T) {
	a := Capsule{Length: 1, Radius: 0.1}
	assert.True(t, a.Equal(Capsule{Length: 1, Radius: 0.1}))
	assert.False(t, a.Equal(Capsule{Length: 1, Radius: 0.2}))
	assert.False(t, a.Equal(Cylinder{Length: 1, Radius: 0.1}))
	assert.True(t, Capsule{Length: nan, Radius: 0.1}.Equal(Capsule{Length: nan, Radius: 0.1}))

	cs := CoordinateSystem{Arrow: Arrow{BodyLength: 1, HeadLength: 1, BodyRadius: 1, HeadRadius: 1}}
	assert.False(t, cs.Equal(cs.Arrow))
	assert.False(t, cs.Arrow.Equal(cs))

	pc := PointCloud{Points: []math32.Vector3{{X: 1, Y: 2, Z: 3}}, Size: 1}
	assert.True(t, pc.Equal(PointCloud{Points: []math32.Vector3{{X: 1, Y: 2, Z: 3}}, Size: 1}))
	assert.False(t, pc.Equal(PointCloud{Points: []math32.Vector3{{X: 1, Y: 2, Z: 3}, {X: 1, Y: 2, Z: 3}}, Size: 1}))
}

func TestConvexHull(t *testing.T) {
	pts := append(cubeCorners(2), math32.Vec3(0, 0, 0), math32.Vec3(0.5, 0.2, -0.3), math32.Vec3(1, 1, 1))
	h, err := ConvexHull(pts)
	require.NoError(t, err)
	assert.Len(t, h.Faces, 12)
	assert.Len(t, h.Vertices(), 8)
	assert.InDelta(t, 8, h.MaxEdgeLengthSquared(), 1e-5)
	for _, f := range h.Faces {
		for _, p := range h.Points {
			assert.LessOrEqual(t, h.signedDist(f, p), float32(1e-4))
		}
	}

	_, err = ConvexHull([]math32.Vector3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}})
	assert.ErrorIs(t, err, ErrDegenerate)
	_, err = ConvexHull([]math32.Vector3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}})
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestTriangulate(t *testing.T) {
	sq := []math32.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	tris, err := Triangulate(sq)
	require.NoError(t, err)
	assert.Len(t, tris, 2)

	ell := []math32.Vector2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2}}
	tris, err = Triangulate(ell)
	require.NoError(t, err)
	assert.Len(t, tris, 4)
	var area float32
	for _, tr := range tris {
		area += SignedArea([]math32.Vector2{ell[tr[0]], ell[tr[1]], ell[tr[2]]})
	}
	assert.InDelta(t, 3, area, 1e-5)

	_, err = Triangulate([]math32.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}})
	assert.ErrorIs(t, err, ErrDegenerate)

	cw := CleanPolygon([]math32.Vector2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}})
	assert.Len(t, cw, 4)
	assert.Greater(t, SignedArea(cw), float32(0))
}

func TestLargeRadius(t *testing.T) {
	r, err := LargeRadius(0.01, 0.05, 2)
	require.NoError(t, err)
	assert.InDelta(t, (0.5+0.0016)/0.08+0.01, r, 1e-5)

	_, err = LargeRadius(0.05, 0.05, 2)
	assert.ErrorIs(t, err, ErrNotConstructible)
	_, err = LargeRadius(0.1, 0.05, 2)
	assert.ErrorIs(t, err, ErrNotConstructible)
}

func TestSoftBox(t *testing.T) {
	ms, err := SoftBox{Size: math32.Vec3(1, 1, 1), MinMargin: 0.01, MaxMargin: 0.05}.Build()
	require.NoError(t, err)
	// face centers are at the max margin
	assert.InDelta(t, 0.55, ms.BBox.Max.X, 1e-3)
	assert.InDelta(t, 0.55, ms.BBox.Max.Z, 1e-3)
	assert.InDelta(t, -0.55, ms.BBox.Min.Z, 1e-3)
	assert.Equal(t, (SoftAzimuthSegments+1)*(SoftElevationSegments+1), ms.NumVertex())

	// corners are at the min margin
	ss, err := NewSoftSurface(cubeCorners(1), 0.01, 6.2802)
	require.NoError(t, err)
	dir := math32.Vec3(1, 1, 1).Normal()
	p, ok := ss.Point(dir)
	require.True(t, ok)
	math32TolVector(t, math32.Vector3Scalar(0.5).Add(dir.MulScalar(0.01)), p)

	_, err = SoftBox{Size: math32.Vec3(1, 1, 1), MinMargin: 0.05, MaxMargin: 0.05}.Build()
	assert.ErrorIs(t, err, ErrNotConstructible)

	// margins too large for the box to fit in the face spheres
	_, err = SoftBox{Size: math32.Vec3(1, 1, 1), MinMargin: 0, MaxMargin: 0.7}.Build()
	assert.ErrorIs(t, err, ErrNotConstructible)
}

func math32TolVector(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-3)
	assert.InDelta(t, want.Y, got.Y, 1e-3)
	assert.InDelta(t, want.Z, got.Z, 1e-3)
}

func TestCoordinateSystemColors(t *testing.T) {
	ms, err := CoordinateSystem{Arrow: Arrow{BodyLength: 0.8, HeadLength: 0.2, BodyRadius: 0.02, HeadRadius: 0.05}}.Build()
	require.NoError(t, err)
	require.True(t, ms.HasColor())
	require.NoError(t, ms.Validate())
	nv := ms.NumVertex()
	// red first, blue last
	assert.Equal(t, float32(1), ms.Color[0])
	assert.Equal(t, float32(0), ms.Color[2])
	assert.Equal(t, float32(1), ms.Color[4*(nv-1)+2])
	assert.InDelta(t, 1, ms.BBox.Max.X, 1e-5)
	assert.InDelta(t, 1, ms.BBox.Max.Y, 1e-5)
	assert.InDelta(t, 1, ms.BBox.Max.Z, 1e-5)
}

func TestMarkers(t *testing.T) {
	for m := MarkerCircle; m < MarkersN; m++ {
		got, err := MarkerFromString(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
		ms, err := Point2D{Size: 1, Marker: m}.Build()
		require.NoError(t, err)
		assert.NoError(t, ms.Validate())
		assert.InDelta(t, 0, ms.BBox.Max.Z, 1e-6)
	}
	_, err := MarkerFromString("star")
	assert.Error(t, err)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, "soft-box", SoftBoxKind.String())
	assert.Equal(t, "unknown", KindsN.String())
	assert.True(t, Line2DKind.Is2D())
	assert.False(t, ConeKind.Is2D())
}
