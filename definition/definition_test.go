// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package definition

import (
	"bytes"
	"image/color"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFile = `version: "1.2"
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
  items:
    - type: Line2D
      name: path
      visible: false
      origin: [0, 0]
      destination: [x, .nan]
      strokeWidth: 0.01
`

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(testFile))
	require.NoError(t, err)
	assert.Equal(t, "session", f.Root.Name)
	assert.Equal(t, 3, f.Root.NumItems())

	require.Len(t, f.Root.Groups, 1)
	arm := f.Root.Groups[0]
	require.Len(t, arm.Items, 2)
	cone, ok := arm.Items[0].Definition.(*Cone3D)
	require.True(t, ok)
	assert.Equal(t, "tip", cone.Name)
	assert.Equal(t, "red", cone.Color)
	assert.True(t, cone.IsVisible())
	assert.Equal(t, Vec3(1, 0, 0), *cone.Position)
	assert.Equal(t, Lit(0.1), cone.Height)
	assert.Equal(t, Ref("q_radius"), cone.Radius)

	ghost, ok := arm.Items[1].Definition.(*Unsupported)
	require.True(t, ok)
	assert.Equal(t, Kind("Hologram3D"), ghost.Kind())
	assert.Equal(t, "ghost", ghost.Name)

	line := f.Root.Items[0].Definition.(*Line2D)
	assert.False(t, line.IsVisible())
	assert.Equal(t, Ref("x"), line.Destination.X)
	assert.True(t, math.IsNaN(float64(line.Destination.Y.Value)))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("version: \"2.0\"\nroot: {name: r}\n"))
	assert.ErrorIs(t, err, ErrVersion)
	_, err = Decode(strings.NewReader("root: {name: r}\n"))
	assert.ErrorIs(t, err, ErrVersion)

	_, err = Decode(strings.NewReader("version: \"1.0\"\nroot:\n  items:\n    - name: x\n"))
	assert.ErrorContains(t, err, "no type")

	_, err = Decode(strings.NewReader("version: \"1.0\"\nroot:\n  items:\n    - type: Box3D\n      size: [1, 2]\n"))
	assert.ErrorContains(t, err, "3 components")

	_, err = Decode(strings.NewReader("version: \"1.0\"\nroot:\n  items:\n    - type: Point3D\n      size: [1]\n"))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	root := NewGroup("session",
		&Capsule3D{
			Base:   Base{Name: "cap", Color: "#ff000080", Frame: "base"},
			Axial:  Axial{Position: Vec3Ptr(0, 1, 2)},
			Length: Lit(0.5),
			Radius: Ref("r"),
		},
		&Box3D{
			Base: Base{Name: "box"},
			Pose: Pose{Orientation: YawPitchRoll(0.5, 0, 0)},
			Size: Vector3{Lit(1), Ref("w"), Lit(0.25)},
		},
	)
	root.AddGroup("empty")
	f := NewFile(root)

	var b bytes.Buffer
	require.NoError(t, f.Encode(&b))
	assert.Contains(t, b.String(), "type: Capsule3D")
	assert.Contains(t, b.String(), "[0, 1, 2]")

	g, err := Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, f, g)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	f := NewFile(NewGroup("root", &Point2D{Base: Base{Name: "p"}, Position: Vec2(1, 2), Size: Lit(0.1), Marker: "square"}))
	require.NoError(t, f.Save(path))
	g, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f, g)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewKinds(t *testing.T) {
	ks := Kinds()
	assert.Len(t, ks, 22)
	for _, k := range ks {
		d, err := New(k)
		require.NoError(t, err)
		assert.Equal(t, k, d.Kind())
	}
	_, err := New("Nope")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestClone(t *testing.T) {
	orig := &ConvexPolytope3D{
		Base:     Base{Name: "hull"},
		Pose:     Pose{Position: Vec3Ptr(1, 2, 3)},
		Vertices: []Vector3{Vec3(0, 0, 0), Vec3(1, 0, 0)},
	}
	orig.SetVisible(false)
	cp := Clone(orig).(*ConvexPolytope3D)
	assert.Equal(t, orig, cp)

	cp.Name = "other"
	cp.Position.X = Lit(9)
	cp.Vertices[0] = Vec3(5, 5, 5)
	*cp.Visible = true
	assert.Equal(t, "hull", orig.Name)
	assert.Equal(t, Lit(1), orig.Position.X)
	assert.Equal(t, Vec3(0, 0, 0), orig.Vertices[0])
	assert.False(t, orig.IsVisible())

	g := NewGroup("g", orig)
	g.AddGroup("sub").Add(&Point3D{Base: Base{Name: "p"}, Size: Lit(1)})
	gc := CloneGroup(g)
	assert.Equal(t, g, gc)
	gc.Groups[0].Items[0].Common().Name = "q"
	assert.Equal(t, "p", g.Groups[0].Items[0].Common().Name)
}

func TestWalk(t *testing.T) {
	g := NewGroup("root", &Point3D{Base: Base{Name: "a"}})
	g.AddGroup("arm").Add(&Point3D{Base: Base{Name: "b"}})
	var got []string
	g.Walk(func(path []string, d Definition) {
		got = append(got, strings.Join(path, ":")+"/"+d.Common().Name)
	})
	assert.Equal(t, []string{"root/a", "root:arm/b"}, got)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#f00")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, c)

	c, err = ParseColor("#10203040")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0x10, 0x20, 0x30, 0x40}, c)
	assert.Equal(t, "#10203040", FormatColor(c))

	c, err = ParseColor("Blue")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, c)

	c, err = ParseColor("")
	require.NoError(t, err)
	assert.Equal(t, DefaultColor, c)

	_, err = ParseColor("#12345")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
	_, err = ParseColor("notacolor")
	assert.Error(t, err)
}

type trackDef struct {
	Base
	Waypoints []Vector3
}

func (d *trackDef) Kind() Kind { return "Track" }

func TestCloneCustomKind(t *testing.T) {
	orig := &trackDef{Base: Base{Name: "track"}, Waypoints: []Vector3{Vec3(0, 0, 0), Vec3(1, 1, 0)}}
	var cp Definition
	require.NotPanics(t, func() { cp = Clone(orig) })
	tr, ok := cp.(*trackDef)
	require.True(t, ok)
	assert.Equal(t, orig, tr)
	tr.Name = "other"
	tr.Waypoints[1] = Vec3(5, 5, 5)
	assert.Equal(t, "track", orig.Name)
	assert.Equal(t, Vec3(1, 1, 0), orig.Waypoints[1])

	var nilDef *trackDef
	assert.Equal(t, Definition(nilDef), Clone(nilDef))
}
