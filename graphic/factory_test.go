// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotlab/simview/definition"
	"github.com/robotlab/simview/frame"
	"github.com/robotlab/simview/live"
	"github.com/robotlab/simview/math32"
)

const sessionFile = `version: "1.0"
root:
  name: session
  groups:
    - name: left_arm
      items:
        - type: Cone3D
          name: tip
          color: red
          position: [1, 0, 0]
          axis: [0, 0, 1]
          height: 0.1
          radius: q_radius
        - type: Hologram3D
          name: ghost
    - name: hidden
      visible: false
      items:
        - type: Box3D
          name: box
          size: [1, 1, 1]
  items:
    - type: Line2D
      name: path
      origin: [0, 0]
      destination: [x, 1]
      strokeWidth: 0.01
    - type: Line2D
      name: path
      origin: [0, 0]
      destination: [1, 1]
      strokeWidth: 0.01
`

func TestFromFile(t *testing.T) {
	f, err := definition.Decode(strings.NewReader(sessionFile))
	require.NoError(t, err)

	sc := NewScene()
	fc := NewFactory(sc, nil)
	n, err := fc.FromFile(sc.SessionRoot, f)
	assert.Equal(t, 4, n)
	assert.ErrorIs(t, err, ErrUnsupportedKind)

	tip, ok := sc.SessionRoot.FindByPath("left_arm:tip").(*Cone3D)
	require.True(t, ok)
	assert.Equal(t, uint8(255), tip.Color.R)
	v, ok := fc.Registry.Lookup("q_radius")
	require.True(t, ok)
	assert.Same(t, v, tip.Radius)

	assert.NotNil(t, sc.SessionRoot.FindByPath("path"))
	assert.NotNil(t, sc.SessionRoot.FindByPath("path_1"))
	assert.False(t, sc.SessionRoot.Group("hidden").IsVisible())
	assert.False(t, sc.SessionRoot.FindByPath("hidden:box").IsVisible())

	fc.Registry.Set("q_radius", 0.02)
	fc.Registry.Set("x", 2)
	cnt := sc.SessionRoot.ComputeBackground()
	assert.Equal(t, 4, cnt[OutcomeBuilt])
	sc.SessionRoot.Render()
	assertVector(t, math32.Vec3(1, 0, 0), tip.Drawable().Position)
}

func TestFromDefinitionRename(t *testing.T) {
	sc := NewScene()
	fc := NewFactory(sc, nil)
	d := &definition.Point3D{Base: definition.Base{Name: "p"}, Size: definition.Lit(0.1)}
	for i, want := range []string{"p", "p_1", "p_2"} {
		lf, err := fc.FromDefinition(sc.GUIRoot, d)
		require.NoError(t, err, i)
		assert.Equal(t, want, lf.AsItem().Name())
	}
	assert.Equal(t, "p", d.Name, "the definition is not modified")

	lf, err := fc.FromDefinition(sc.GUIRoot, &definition.Point3D{Size: definition.Lit(0.1)})
	require.NoError(t, err)
	assert.Equal(t, "Point3D", lf.AsItem().Name())
}

func TestFromDefinitionUnsupported(t *testing.T) {
	sc := NewScene()
	fc := NewFactory(sc, nil)
	_, err := fc.FromDefinition(sc.GUIRoot, &definition.Unsupported{Base: definition.Base{Name: "u"}, Type: "Mystery"})
	assert.ErrorIs(t, err, ErrUnsupportedKind)
	assert.Equal(t, 0, sc.GUIRoot.NumChildren())

	fc.Register("Mystery", func(fc *Factory, d definition.Definition) (Leaf, error) {
		p := NewPoint3D(fc.Scene, d.Common().Name)
		p.Size = live.Const(1)
		return p, nil
	})
	lf, err := fc.FromDefinition(sc.GUIRoot, &definition.Unsupported{Base: definition.Base{Name: "u"}, Type: "Mystery"})
	require.NoError(t, err)
	assert.Equal(t, "u", lf.AsItem().Name())
	assert.Contains(t, fc.Kinds(), definition.Kind("Mystery"))
	assert.Len(t, fc.Kinds(), 23)
}

func TestBadColor(t *testing.T) {
	sc := NewScene()
	fc := NewFactory(sc, nil)
	lf, err := fc.FromDefinition(sc.GUIRoot, &definition.Point3D{Base: definition.Base{Name: "p", Color: "#zz"}, Size: definition.Lit(0.1)})
	require.NoError(t, err)
	assert.Equal(t, definition.DefaultColor, lf.AsLeaf().Color)
}

// allKinds has one definition per built-in kind.
func allKinds() []definition.Definition {
	base := func(name string) definition.Base { return definition.Base{Name: name} }
	parts := definition.ArrowParts{BodyLength: definition.Lit(0.8), HeadLength: definition.Lit(0.2), BodyRadius: definition.Lit(0.02), HeadRadius: definition.Ref("hr")}
	pose := definition.Pose{Position: definition.Vec3Ptr(1, 2, 3), Orientation: definition.YawPitchRoll(0.1, 0, 0)}
	axial := definition.Axial{Position: definition.Vec3Ptr(1, 0, 0), Axis: definition.Vec3Ptr(0, 1, 0)}
	margins := definition.Margins{MinMargin: definition.Lit(0.01), MaxMargin: definition.Lit(0.05)}
	var cube []definition.Vector3
	for _, x := range []float32{0, 1} {
		for _, y := range []float32{0, 1} {
			for _, z := range []float32{0, 1} {
				cube = append(cube, definition.Vec3(x, y, z))
			}
		}
	}
	square := []definition.Vector2{definition.Vec2(0, 0), definition.Vec2(1, 0), definition.Vec2(1, 1), definition.Vec2(0, 1)}
	hidden := base("hidden")
	hidden.SetVisible(false)
	hidden.Color = "#ff000080"
	return []definition.Definition{
		&definition.Arrow3D{Base: base("arrow"), Direction: definition.Vec3(0, 0, 2), ArrowParts: parts, ScaleLength: true},
		&definition.Box3D{Base: hidden, Pose: pose, Size: definition.Vec3(1, 1, 1)},
		&definition.Capsule3D{Base: base("capsule"), Axial: axial, Length: definition.Lit(1), Radius: definition.Ref("r")},
		&definition.Cone3D{Base: base("cone"), Axial: axial, Height: definition.Lit(0.1), Radius: definition.Lit(0.02)},
		&definition.Cylinder3D{Base: base("cylinder"), Length: definition.Lit(1), Radius: definition.Lit(0.1)},
		&definition.Ellipsoid3D{Base: base("ellipsoid"), Pose: pose, Radii: definition.Vec3(1, 2, 3)},
		&definition.Point3D{Base: base("point"), Position: definition.Vec3Ptr(0, 0, 1), Size: definition.Lit(0.1)},
		&definition.Ramp3D{Base: base("ramp"), Size: definition.Vec3(2, 1, 0.5)},
		&definition.ConvexPolytope3D{Base: base("polytope"), Vertices: cube},
		&definition.PolygonExtruded3D{Base: base("extruded"), Vertices: square, Thickness: definition.Lit(0.1)},
		&definition.Polynomial3D{Base: base("polynomial"), CoefficientsX: definition.Lits(0, 1), CoefficientsY: definition.Lits(0, 0, 1), CoefficientsZ: definition.Lits(0), StartTime: definition.Lit(0), EndTime: definition.Lit(1), Size: definition.Lit(0.1), TimeResolution: 16, NumberOfDivisions: 8},
		&definition.CoordinateSystem3D{Base: base("axes"), Pose: pose, ArrowParts: parts},
		&definition.PointCloud3D{Base: base("cloud"), Points: cube, Size: definition.Lit(0.05)},
		&definition.SoftBox3D{Base: base("softbox"), Size: definition.Vec3(1, 1, 1), Margins: margins},
		&definition.SoftRamp3D{Base: base("softramp"), Size: definition.Vec3(1, 1, 0.5), Margins: margins},
		&definition.SoftCylinder3D{Base: base("softcylinder"), Axial: axial, Length: definition.Lit(1), Radius: definition.Lit(0.2), Margins: margins},
		&definition.SoftConvexPolytope3D{Base: base("softpolytope"), Vertices: cube, Margins: margins},
		&definition.Point2D{Base: base("point2"), Position: definition.Vec2(1, 1), Size: definition.Lit(0.1), Marker: "square"},
		&definition.Polygon2D{Base: base("polygon"), Vertices: square, Filled: true, StrokeWidth: definition.Lit(0.01)},
		&definition.Line2D{Base: base("line"), Origin: definition.Vec2(0, 0), Destination: definition.Vector2{X: definition.Ref("x"), Y: definition.Lit(1)}, StrokeWidth: definition.Lit(0.01)},
		&definition.PointCloud2D{Base: base("cloud2"), Points: square, Size: definition.Lit(0.05)},
		&definition.Arrow2D{Base: base("arrow2"), Origin: definition.Vec2(0, 0), Direction: definition.Vec2(1, 0), HeadLength: definition.Lit(0.2), BodyWidth: definition.Lit(0.02), HeadWidth: definition.Lit(0.1)},
	}
}

func TestToDefinitionRoundTrip(t *testing.T) {
	sc := NewScene()
	fc := NewFactory(sc, nil)
	defs := allKinds()
	require.Len(t, defs, len(definition.Kinds()))
	for _, d := range defs {
		lf, err := fc.FromDefinition(sc.GUIRoot, d)
		require.NoError(t, err, d.Kind())
		assert.Equal(t, d, lf.ToDefinition(), d.Kind())
	}

	gd := sc.GUIRoot.ToDefinition()
	assert.Equal(t, "gui", gd.Name)
	assert.Equal(t, len(defs), gd.NumItems())

	// a group rebuilt from the definition of another has the same definition
	sc2 := NewScene()
	n, err := NewFactory(sc2, nil).FromGroupDefinition(sc2.GUIRoot, gd)
	require.NoError(t, err)
	assert.Equal(t, len(defs), n)
	assert.Equal(t, gd, sc2.GUIRoot.ToDefinition())
}

func TestAllKindsBuild(t *testing.T) {
	sc := NewScene()
	fc := NewFactory(sc, nil)
	fc.Registry.Set("hr", 0.05)
	fc.Registry.Set("r", 0.1)
	fc.Registry.Set("x", 1)
	for _, d := range allKinds() {
		_, err := fc.FromDefinition(sc.GUIRoot, d)
		require.NoError(t, err)
	}
	for _, lf := range sc.GUIRoot.Leaves() {
		assert.Equal(t, OutcomeBuilt, lf.ComputeBackground(), lf.AsItem().Name())
	}
	sc.GUIRoot.Render()
	// the hidden box is not drawn
	assert.Len(t, sc.GUIRoot.Drawables(), len(allKinds())-1)
}

type beaconDef struct {
	definition.Base
	Height definition.Field
}

func (d *beaconDef) Kind() definition.Kind { return "Beacon" }

func TestFromDefinitionCustomKind(t *testing.T) {
	sc := NewScene()
	fc := NewFactory(sc, nil)
	fc.Register("Beacon", func(fc *Factory, d definition.Definition) (Leaf, error) {
		bd := d.(*beaconDef)
		p := NewPoint3D(fc.Scene, bd.Name)
		p.Size = fc.Float(bd.Height)
		return p, nil
	})
	d := &beaconDef{Base: definition.Base{Name: "b"}, Height: definition.Lit(0.5)}
	var lf Leaf
	var err error
	require.NotPanics(t, func() { lf, err = fc.FromDefinition(sc.GUIRoot, d) })
	require.NoError(t, err)
	assert.Equal(t, "b", lf.AsItem().Name())

	lf2, err := fc.FromDefinition(sc.GUIRoot, d)
	require.NoError(t, err)
	assert.Equal(t, "b_1", lf2.AsItem().Name())
	assert.Equal(t, "b", d.Name, "the definition is not modified")
}

// nanGeometry makes a shape parameter of the leaf unavailable.
func nanGeometry(t *testing.T, lf Leaf) {
	nan := live.Const(math32.NaN())
	nan3 := live.ConstVector3(math32.Vec3(math32.NaN(), math32.NaN(), math32.NaN()))
	nan2 := live.ConstVector2(math32.Vec2(math32.NaN(), math32.NaN()))
	switch l := lf.(type) {
	case *Arrow3D:
		l.BodyRadius = nan
	case *Box3D:
		l.Size = nan3
	case *Capsule3D:
		l.Radius = nan
	case *Cone3D:
		l.Radius = nan
	case *Cylinder3D:
		l.Radius = nan
	case *Ellipsoid3D:
		l.Radii = nan3
	case *Point3D:
		l.Size = nan
	case *Ramp3D:
		l.Size = nan3
	case *ConvexPolytope3D:
		l.Vertices[0] = nan3
	case *PolygonExtruded3D:
		l.Thickness = nan
	case *Polynomial3D:
		l.Size = nan
	case *CoordinateSystem3D:
		l.BodyRadius = nan
	case *PointCloud3D:
		l.Size = nan
	case *SoftBox3D:
		l.Size = nan3
	case *SoftRamp3D:
		l.Size = nan3
	case *SoftCylinder3D:
		l.Radius = nan
	case *SoftConvexPolytope3D:
		l.Vertices[0] = nan3
	case *Point2D:
		l.Size = nan
	case *Polygon2D:
		l.Vertices[0] = nan2
	case *Line2D:
		l.StrokeWidth = nan
	case *PointCloud2D:
		l.Size = nan
	case *Arrow2D:
		l.BodyWidth = nan
	default:
		t.Fatalf("no geometry for %T", lf)
	}
}

func TestNaNForEveryKind(t *testing.T) {
	for _, d := range allKinds() {
		t.Run(string(d.Kind()), func(t *testing.T) {
			sc := NewScene()
			fc := NewFactory(sc, nil)
			fc.Registry.Set("hr", 0.05)
			fc.Registry.Set("r", 0.1)
			fc.Registry.Set("x", 1)
			tr := frame.NewTree()
			require.NoError(t, tr.Add("mount", frame.World, frame.Pose{
				Position: live.Vector3{X: fc.Registry.Var("mx"), Y: c(0), Z: c(0)},
			}))
			sc.Resolver = tr

			lf, err := fc.FromDefinition(sc.GUIRoot, d)
			require.NoError(t, err)
			lf.AsLeaf().Frame = "mount"
			require.Equal(t, OutcomeBuilt, lf.ComputeBackground())

			// the mount pose is unavailable, so the item is hidden
			// and the posted mesh stays pending
			lf.Render()
			dr := lf.AsLeaf().Drawable()
			assert.True(t, dr.Hidden)
			assert.Equal(t, math32.Vector3{}, dr.Scale)
			assert.False(t, dr.Shown())

			fc.Registry.Set("mx", 0)
			lf.Render()
			dr = lf.AsLeaf().Drawable()
			assert.False(t, dr.Hidden)
			assert.NotNil(t, dr.Mesh)

			nanGeometry(t, lf)
			assert.Equal(t, OutcomeCleared, lf.ComputeBackground())
			lf.Render()
			dr = lf.AsLeaf().Drawable()
			assert.Nil(t, dr.Mesh)
			assert.False(t, dr.Shown())
		})
	}
}
