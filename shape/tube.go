// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"fmt"
	"slices"

	"github.com/robotlab/simview/math32"
)

// Polynomial is a tube of the given radius swept along the 3D curve
// (x(t), y(t), z(t)) for t in [StartTime, EndTime], where each coordinate
// is a polynomial given by its coefficients in increasing order of degree.
// The curve is sampled at TimeResolution points and the tube has
// Divisions sides.
type Polynomial struct {
	CoefficientsX []float32
	CoefficientsY []float32
	CoefficientsZ []float32

	StartTime float32
	EndTime   float32
	Radius    float32

	TimeResolution int
	Divisions      int
}

func (p Polynomial) Kind() Kinds { return PolynomialKind }

func (p Polynomial) Degenerate() bool {
	if anyTiny(p.Radius, p.EndTime-p.StartTime) || p.TimeResolution < 2 || p.Divisions < 3 {
		return true
	}
	return slices.ContainsFunc(p.CoefficientsX, math32.IsNaN) || slices.ContainsFunc(p.CoefficientsY, math32.IsNaN) ||
		slices.ContainsFunc(p.CoefficientsZ, math32.IsNaN)
}

func (p Polynomial) Equal(other Params) bool {
	o, ok := other.(Polynomial)
	return ok && floatsEqual(p.CoefficientsX, o.CoefficientsX) && floatsEqual(p.CoefficientsY, o.CoefficientsY) &&
		floatsEqual(p.CoefficientsZ, o.CoefficientsZ) && math32.EqualsNaN(p.StartTime, o.StartTime) &&
		math32.EqualsNaN(p.EndTime, o.EndTime) && math32.EqualsNaN(p.Radius, o.Radius) &&
		p.TimeResolution == o.TimeResolution && p.Divisions == o.Divisions
}

// Point returns the point of the curve at time t.
func (p Polynomial) Point(t float32) math32.Vector3 {
	return math32.Vec3(evalPolynomial(p.CoefficientsX, t), evalPolynomial(p.CoefficientsY, t), evalPolynomial(p.CoefficientsZ, t))
}

// Tangent returns the derivative of the curve at time t.
func (p Polynomial) Tangent(t float32) math32.Vector3 {
	return math32.Vec3(evalDerivative(p.CoefficientsX, t), evalDerivative(p.CoefficientsY, t), evalDerivative(p.CoefficientsZ, t))
}

func evalPolynomial(coeffs []float32, t float32) float32 {
	var v float32
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*t + coeffs[i]
	}
	return v
}

func evalDerivative(coeffs []float32, t float32) float32 {
	var v float32
	for i := len(coeffs) - 1; i >= 1; i-- {
		v = v*t + float32(i)*coeffs[i]
	}
	return v
}

func (p Polynomial) Build() (*Mesh, error) {
	return build(p, func(ms *Mesh) error {
		n := p.TimeResolution
		centers := make([]math32.Vector3, n)
		tangents := make([]math32.Vector3, n)
		valid := -1
		for i := range n {
			t := p.StartTime + (p.EndTime-p.StartTime)*float32(i)/float32(n-1)
			centers[i] = p.Point(t)
			tangents[i] = p.Tangent(t).Normal()
			if valid < 0 && !tangents[i].IsZero() {
				valid = i
			}
		}
		if valid < 0 {
			return fmt.Errorf("shape.Polynomial: curve is a single point: %w", ErrDegenerate)
		}
		// stationary points keep the direction of the previous sample
		for i := range n {
			if tangents[i].IsZero() {
				if i == 0 {
					tangents[i] = tangents[valid]
				} else {
					tangents[i] = tangents[i-1]
				}
			}
		}

		segs := p.Divisions
		rings := make([][]uint32, n)
		norm := tangents[0].Perpendicular()
		for i := range n {
			tan := tangents[i]
			// parallel transport of the ring frame
			norm = norm.Sub(tan.MulScalar(norm.Dot(tan))).Normal()
			if norm.IsZero() {
				norm = tan.Perpendicular()
			}
			binorm := tan.Cross(norm)
			ring := make([]uint32, segs+1)
			for j := 0; j <= segs; j++ {
				sin, cos := math32.Sincos(float32(j) / float32(segs) * 2 * math32.Pi)
				dir := norm.MulScalar(cos).Add(binorm.MulScalar(sin))
				ring[j] = ms.addVertex(centers[i].Add(dir.MulScalar(p.Radius)), dir)
			}
			rings[i] = ring
		}
		for i := 0; i < n-1; i++ {
			for j := 0; j < segs; j++ {
				ms.addQuad(rings[i][j], rings[i][j+1], rings[i+1][j+1], rings[i+1][j])
			}
		}
		addTubeCap(ms, centers[0], tangents[0].Negate(), rings[0], true)
		addTubeCap(ms, centers[n-1], tangents[n-1], rings[n-1], false)
		return nil
	})
}

// addTubeCap closes an end of a tube with a fan facing norm.
func addTubeCap(ms *Mesh, center, norm math32.Vector3, ring []uint32, start bool) {
	ci := ms.addVertex(center, norm)
	rim := make([]uint32, len(ring))
	for j, ri := range ring {
		rim[j] = ms.addVertex(ms.Vertex.Vector3(3*int(ri)), norm)
	}
	for j := 0; j < len(rim)-1; j++ {
		if start {
			ms.addTriangle(ci, rim[j+1], rim[j])
		} else {
			ms.addTriangle(ci, rim[j], rim[j+1])
		}
	}
}
