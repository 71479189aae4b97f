// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overlay

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotlab/simview/base/imagex"
	"github.com/robotlab/simview/graphic"
	"github.com/robotlab/simview/live"
	"github.com/robotlab/simview/math32"
)

func TestToPixels(t *testing.T) {
	cv := New(200, 100, 50)
	defer cv.Close()
	x, y := cv.ToPixels(math32.Vec3(0, 0, 0))
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 50.0, y)
	x, y = cv.ToPixels(math32.Vec3(1, 0.5, 7))
	assert.Equal(t, 150.0, x)
	assert.Equal(t, 25.0, y)
}

func TestDraw(t *testing.T) {
	sc := graphic.NewScene()
	pg := graphic.NewPolygon2D(sc, "square")
	pg.Vertices = []live.Vector2{
		live.ConstVector2(math32.Vec2(-1, -1)), live.ConstVector2(math32.Vec2(1, -1)),
		live.ConstVector2(math32.Vec2(1, 1)), live.ConstVector2(math32.Vec2(-1, 1)),
	}
	pg.Filled = true
	pg.StrokeWidth = live.Const(0.01)
	pg.Color = color.RGBA{255, 0, 0, 255}
	require.NoError(t, sc.GUIRoot.Attach(pg))
	cn := graphic.NewCone3D(sc, "cone")
	cn.Height, cn.Radius = live.Const(1), live.Const(1)
	require.NoError(t, sc.GUIRoot.Attach(cn))

	sc.GUIRoot.ComputeBackground()
	sc.GUIRoot.Render()

	cv := New(100, 100, 10)
	defer cv.Close()
	n, err := cv.Draw(sc.Drawables())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.True(t, imagex.Close(color.RGBA{255, 0, 0, 255}, cv.Image().At(50, 50), 8))
	assert.True(t, imagex.Close(color.White, cv.Image().At(5, 5), 8), "outside the square is background")
	imagex.Assert(t, cv.Image(), "square")

	var buf bytes.Buffer
	require.NoError(t, cv.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())

	path := filepath.Join(t.TempDir(), "overlay.png")
	require.NoError(t, cv.SavePNG(path))
	assert.FileExists(t, path)
}
