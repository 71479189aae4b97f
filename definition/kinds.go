// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package definition

// The kind tags of the definition variants.
const (
	Arrow3DKind              Kind = "Arrow3D"
	Box3DKind                Kind = "Box3D"
	Capsule3DKind            Kind = "Capsule3D"
	Cone3DKind               Kind = "Cone3D"
	Cylinder3DKind           Kind = "Cylinder3D"
	Ellipsoid3DKind          Kind = "Ellipsoid3D"
	Point3DKind              Kind = "Point3D"
	Ramp3DKind               Kind = "Ramp3D"
	ConvexPolytope3DKind     Kind = "ConvexPolytope3D"
	PolygonExtruded3DKind    Kind = "PolygonExtruded3D"
	Polynomial3DKind         Kind = "Polynomial3D"
	CoordinateSystem3DKind   Kind = "CoordinateSystem3D"
	PointCloud3DKind         Kind = "PointCloud3D"
	SoftBox3DKind            Kind = "SoftBox3D"
	SoftRamp3DKind           Kind = "SoftRamp3D"
	SoftCylinder3DKind       Kind = "SoftCylinder3D"
	SoftConvexPolytope3DKind Kind = "SoftConvexPolytope3D"
	Point2DKind              Kind = "Point2D"
	Polygon2DKind            Kind = "Polygon2D"
	Line2DKind               Kind = "Line2D"
	PointCloud2DKind         Kind = "PointCloud2D"
	Arrow2DKind              Kind = "Arrow2D"
)

func init() {
	register(func() Definition { return &Arrow3D{} })
	register(func() Definition { return &Box3D{} })
	register(func() Definition { return &Capsule3D{} })
	register(func() Definition { return &Cone3D{} })
	register(func() Definition { return &Cylinder3D{} })
	register(func() Definition { return &Ellipsoid3D{} })
	register(func() Definition { return &Point3D{} })
	register(func() Definition { return &Ramp3D{} })
	register(func() Definition { return &ConvexPolytope3D{} })
	register(func() Definition { return &PolygonExtruded3D{} })
	register(func() Definition { return &Polynomial3D{} })
	register(func() Definition { return &CoordinateSystem3D{} })
	register(func() Definition { return &PointCloud3D{} })
	register(func() Definition { return &SoftBox3D{} })
	register(func() Definition { return &SoftRamp3D{} })
	register(func() Definition { return &SoftCylinder3D{} })
	register(func() Definition { return &SoftConvexPolytope3D{} })
	register(func() Definition { return &Point2D{} })
	register(func() Definition { return &Polygon2D{} })
	register(func() Definition { return &Line2D{} })
	register(func() Definition { return &PointCloud2D{} })
	register(func() Definition { return &Arrow2D{} })
}

// Pose holds the optional placement of a 3D item in its frame.
// A nil position is the origin and a nil orientation the identity.
type Pose struct {
	Position    *Vector3     `yaml:"position,omitempty"`
	Orientation *Orientation `yaml:"orientation,omitempty"`
}

// Axial holds the placement of a 3D item of revolution: its center
// and the direction of its axis. A nil axis is +Z.
type Axial struct {
	Position *Vector3 `yaml:"position,omitempty"`
	Axis     *Vector3 `yaml:"axis,omitempty"`
}

// ArrowParts are the dimensions of an arrow.
type ArrowParts struct {
	BodyLength Field `yaml:"bodyLength"`
	HeadLength Field `yaml:"headLength"`
	BodyRadius Field `yaml:"bodyRadius"`
	HeadRadius Field `yaml:"headRadius"`
}

// Margins are the rounding margins of soft shapes.
type Margins struct {
	MinMargin Field `yaml:"minMargin"`
	MaxMargin Field `yaml:"maxMargin"`
}

// Arrow3D is an arrow from Origin along Direction. When ScaleLength is
// set the lengths are multiplied by the length of Direction, and likewise
// the radii when ScaleRadius is set.
type Arrow3D struct {
	Base       `yaml:",inline"`
	Origin     *Vector3 `yaml:"origin,omitempty"`
	Direction  Vector3  `yaml:"direction"`
	ArrowParts `yaml:",inline"`

	ScaleLength bool `yaml:"scaleLength,omitempty"`
	ScaleRadius bool `yaml:"scaleRadius,omitempty"`
}

func (d *Arrow3D) Kind() Kind { return Arrow3DKind }

// Box3D is a box centered on its position.
type Box3D struct {
	Base `yaml:",inline"`
	Pose `yaml:",inline"`
	Size Vector3 `yaml:"size"`
}

func (d *Box3D) Kind() Kind { return Box3DKind }

// Capsule3D is a capsule centered on its position. Length is the
// distance between the centers of its two hemispheres.
type Capsule3D struct {
	Base   `yaml:",inline"`
	Axial  `yaml:",inline"`
	Length Field `yaml:"length"`
	Radius Field `yaml:"radius"`
}

func (d *Capsule3D) Kind() Kind { return Capsule3DKind }

// Cone3D is a cone whose base is centered on its position.
type Cone3D struct {
	Base   `yaml:",inline"`
	Axial  `yaml:",inline"`
	Height Field `yaml:"height"`
	Radius Field `yaml:"radius"`
}

func (d *Cone3D) Kind() Kind { return Cone3DKind }

// Cylinder3D is a cylinder centered on its position.
type Cylinder3D struct {
	Base   `yaml:",inline"`
	Axial  `yaml:",inline"`
	Length Field `yaml:"length"`
	Radius Field `yaml:"radius"`
}

func (d *Cylinder3D) Kind() Kind { return Cylinder3DKind }

type Ellipsoid3D struct {
	Base  `yaml:",inline"`
	Pose  `yaml:",inline"`
	Radii Vector3 `yaml:"radii"`
}

func (d *Ellipsoid3D) Kind() Kind { return Ellipsoid3DKind }

// Point3D is a sphere of diameter Size.
type Point3D struct {
	Base     `yaml:",inline"`
	Position *Vector3 `yaml:"position,omitempty"`
	Size     Field    `yaml:"size"`
}

func (d *Point3D) Kind() Kind { return Point3DKind }

type Ramp3D struct {
	Base `yaml:",inline"`
	Pose `yaml:",inline"`
	Size Vector3 `yaml:"size"`
}

func (d *Ramp3D) Kind() Kind { return Ramp3DKind }

// ConvexPolytope3D is the convex hull of its vertices.
type ConvexPolytope3D struct {
	Base     `yaml:",inline"`
	Pose     `yaml:",inline"`
	Vertices []Vector3 `yaml:"vertices"`
}

func (d *ConvexPolytope3D) Kind() Kind { return ConvexPolytope3DKind }

// PolygonExtruded3D is a polygon of the XY plane extruded along +Z.
type PolygonExtruded3D struct {
	Base      `yaml:",inline"`
	Pose      `yaml:",inline"`
	Vertices  []Vector2 `yaml:"vertices"`
	Thickness Field     `yaml:"thickness"`
}

func (d *PolygonExtruded3D) Kind() Kind { return PolygonExtruded3DKind }

// Polynomial3D is a tube of diameter Size along a polynomial curve of
// time, with coefficients in increasing order of degree.
type Polynomial3D struct {
	Base          `yaml:",inline"`
	CoefficientsX []Field `yaml:"coefficientsX,flow"`
	CoefficientsY []Field `yaml:"coefficientsY,flow"`
	CoefficientsZ []Field `yaml:"coefficientsZ,flow"`
	StartTime     Field   `yaml:"startTime"`
	EndTime       Field   `yaml:"endTime"`
	Size          Field   `yaml:"size"`

	TimeResolution    int `yaml:"timeResolution"`
	NumberOfDivisions int `yaml:"numberOfDivisions"`
}

func (d *Polynomial3D) Kind() Kind { return Polynomial3DKind }

type CoordinateSystem3D struct {
	Base       `yaml:",inline"`
	Pose       `yaml:",inline"`
	ArrowParts `yaml:",inline"`
}

func (d *CoordinateSystem3D) Kind() Kind { return CoordinateSystem3DKind }

// PointCloud3D is a set of spheres of diameter Size.
type PointCloud3D struct {
	Base   `yaml:",inline"`
	Points []Vector3 `yaml:"points"`
	Size   Field     `yaml:"size"`
}

func (d *PointCloud3D) Kind() Kind { return PointCloud3DKind }

type SoftBox3D struct {
	Base    `yaml:",inline"`
	Pose    `yaml:",inline"`
	Size    Vector3 `yaml:"size"`
	Margins `yaml:",inline"`
}

func (d *SoftBox3D) Kind() Kind { return SoftBox3DKind }

type SoftRamp3D struct {
	Base    `yaml:",inline"`
	Pose    `yaml:",inline"`
	Size    Vector3 `yaml:"size"`
	Margins `yaml:",inline"`
}

func (d *SoftRamp3D) Kind() Kind { return SoftRamp3DKind }

type SoftCylinder3D struct {
	Base    `yaml:",inline"`
	Axial   `yaml:",inline"`
	Length  Field `yaml:"length"`
	Radius  Field `yaml:"radius"`
	Margins `yaml:",inline"`
}

func (d *SoftCylinder3D) Kind() Kind { return SoftCylinder3DKind }

type SoftConvexPolytope3D struct {
	Base     `yaml:",inline"`
	Pose     `yaml:",inline"`
	Vertices []Vector3 `yaml:"vertices"`
	Margins  `yaml:",inline"`
}

func (d *SoftConvexPolytope3D) Kind() Kind { return SoftConvexPolytope3DKind }

// Point2D is a marker of width Size. Marker is one of
// circle, square, diamond, cross or plus; empty is circle.
type Point2D struct {
	Base     `yaml:",inline"`
	Position Vector2 `yaml:"position"`
	Size     Field   `yaml:"size"`
	Marker   string  `yaml:"marker,omitempty"`
}

func (d *Point2D) Kind() Kind { return Point2DKind }

// Polygon2D is a polygon, filled or drawn as an outline of StrokeWidth.
type Polygon2D struct {
	Base        `yaml:",inline"`
	Vertices    []Vector2 `yaml:"vertices"`
	Filled      bool      `yaml:"filled,omitempty"`
	StrokeWidth Field     `yaml:"strokeWidth"`
}

func (d *Polygon2D) Kind() Kind { return Polygon2DKind }

// Line2D is a segment from Origin to Destination.
type Line2D struct {
	Base        `yaml:",inline"`
	Origin      Vector2 `yaml:"origin"`
	Destination Vector2 `yaml:"destination"`
	StrokeWidth Field   `yaml:"strokeWidth"`
}

func (d *Line2D) Kind() Kind { return Line2DKind }

type PointCloud2D struct {
	Base   `yaml:",inline"`
	Points []Vector2 `yaml:"points"`
	Size   Field     `yaml:"size"`
	Marker string    `yaml:"marker,omitempty"`
}

func (d *PointCloud2D) Kind() Kind { return PointCloud2DKind }

// Arrow2D is an arrow from Origin along Direction, the head being
// included in the length of Direction.
type Arrow2D struct {
	Base       `yaml:",inline"`
	Origin     Vector2 `yaml:"origin"`
	Direction  Vector2 `yaml:"direction"`
	HeadLength Field   `yaml:"headLength"`
	BodyWidth  Field   `yaml:"bodyWidth"`
	HeadWidth  Field   `yaml:"headWidth"`
}

func (d *Arrow2D) Kind() Kind { return Arrow2DKind }
