// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package overlay draws the 2D items of a scene into an image,
// looking down the Z axis of the world frame.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"github.com/robotlab/simview/graphic"
	"github.com/robotlab/simview/math32"
)

// Canvas is a raster view of the world XY plane centered on the origin,
// with X to the right and Y up.
type Canvas struct {
	// PixelsPerMeter is the scale of the view.
	PixelsPerMeter float64

	// Background is the color the canvas is cleared with.
	Background color.Color

	dc *gg.Context
}

// New returns a canvas of the given size in pixels.
func New(width, height int, ppm float64) *Canvas {
	return &Canvas{PixelsPerMeter: ppm, Background: color.White, dc: gg.NewContext(width, height)}
}

func (cv *Canvas) Width() int  { return cv.dc.Width() }
func (cv *Canvas) Height() int { return cv.dc.Height() }

// ToPixels returns the pixel position of the world point p.
func (cv *Canvas) ToPixels(p math32.Vector3) (x, y float64) {
	x = float64(cv.dc.Width())/2 + float64(p.X)*cv.PixelsPerMeter
	y = float64(cv.dc.Height())/2 - float64(p.Y)*cv.PixelsPerMeter
	return
}

// Draw clears the canvas and fills the triangles of the 2D drawables
// with their colors, in order. 3D drawables are skipped.
// It returns the number of triangles drawn.
func (cv *Canvas) Draw(drs []graphic.Drawable) (int, error) {
	cv.dc.ClearWithColor(gg.FromColor(cv.Background))
	n := 0
	for _, dr := range drs {
		if !dr.Shown() || !dr.Leaf.AsLeaf().Is2D() {
			continue
		}
		cv.dc.SetColor(dr.Color)
		ms := dr.Mesh
		for i := 0; i+2 < len(ms.Index); i += 3 {
			for j := range 3 {
				p := ms.Vertex.Vector3(int(ms.Index[i+j]) * 3)
				x, y := cv.ToPixels(p.Mul(dr.Scale).MulQuat(dr.Orientation).Add(dr.Position))
				if j == 0 {
					cv.dc.MoveTo(x, y)
				} else {
					cv.dc.LineTo(x, y)
				}
			}
			cv.dc.ClosePath()
			// triangles are filled one by one so that overlapping
			// triangles of opposite winding do not cancel out
			if err := cv.dc.Fill(); err != nil {
				return n, fmt.Errorf("overlay: filling %s: %w", dr.Leaf.AsItem().Name(), err)
			}
			n++
		}
	}
	return n, nil
}

// Image returns the current image.
func (cv *Canvas) Image() image.Image { return cv.dc.Image() }

// SavePNG writes the image to a PNG file.
func (cv *Canvas) SavePNG(path string) error { return cv.dc.SavePNG(path) }

// EncodePNG writes the image as PNG.
func (cv *Canvas) EncodePNG(w io.Writer) error { return cv.dc.EncodePNG(w) }

// Close releases the drawing context.
func (cv *Canvas) Close() error { return cv.dc.Close() }
