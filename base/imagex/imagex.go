// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex compares rendered images with golden images
// stored in the testdata directory of a package.
package imagex

import (
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/robotlab/simview/base/errors"
)

// TestingT is the part of *testing.T used by [Assert].
type TestingT interface {
	Errorf(format string, args ...any)
}

// Update makes [Assert] overwrite the golden images instead of
// comparing against them. It is set by SIMVIEW_UPDATE_TESTDATA=true.
var Update = os.Getenv("SIMVIEW_UPDATE_TESTDATA") == "true"

// Tolerance is the largest difference of a color channel
// that [Assert] accepts.
var Tolerance uint8 = 10

func within(a, b, tol uint8) bool {
	if a > b {
		return a-b <= tol
	}
	return b-a <= tol
}

// Close reports whether no channel of a and b differs by more than tol.
func Close(a, b color.Color, tol uint8) bool {
	ca := color.RGBAModel.Convert(a).(color.RGBA)
	cb := color.RGBAModel.Convert(b).(color.RGBA)
	return within(ca.R, cb.R, tol) && within(ca.G, cb.G, tol) && within(ca.B, cb.B, tol) && within(ca.A, cb.A, tol)
}

// Diff returns an image of the pixels of a that are not [Close] to those
// of b, in white on black, and the number of such pixels.
// The images must have the same bounds.
func Diff(a, b image.Image, tol uint8) (*image.RGBA, int) {
	bd := a.Bounds()
	di := image.NewRGBA(bd)
	n := 0
	for y := bd.Min.Y; y < bd.Max.Y; y++ {
		for x := bd.Min.X; x < bd.Max.X; x++ {
			if Close(a.At(x, y), b.At(x, y), tol) {
				di.Set(x, y, color.Black)
				continue
			}
			di.Set(x, y, color.White)
			n++
		}
	}
	return di, n
}

// Open reads a PNG file.
func Open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

// Save writes img to a PNG file.
func Save(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Assert checks that img matches the golden image testdata/name.png.
// A missing golden image is created. On mismatch, the image and the
// difference are saved next to it as name.fail.png and name.diff.png.
func Assert(t TestingT, img image.Image, name string) {
	path := filepath.Join("testdata", name)
	if filepath.Ext(path) == "" {
		path += ".png"
	}
	ext := filepath.Ext(path)
	failPath := strings.TrimSuffix(path, ext) + ".fail" + ext
	diffPath := strings.TrimSuffix(path, ext) + ".diff" + ext
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Errorf("imagex.Assert: %v", err)
		return
	}

	golden, err := Open(path)
	if Update || errors.Is(err, fs.ErrNotExist) {
		if err := Save(img, path); err != nil {
			t.Errorf("imagex.Assert: saving %s: %v", path, err)
		}
		os.Remove(failPath)
		os.Remove(diffPath)
		return
	}
	if err != nil {
		t.Errorf("imagex.Assert: opening %s: %v", path, err)
		return
	}
	if img.Bounds() != golden.Bounds() {
		t.Errorf("imagex.Assert: %s has bounds %v, got %v; see %s", path, golden.Bounds(), img.Bounds(), failPath)
		errors.Log(Save(img, failPath))
		return
	}
	di, n := Diff(img, golden, Tolerance)
	if n == 0 {
		os.Remove(failPath)
		os.Remove(diffPath)
		return
	}
	t.Errorf("imagex.Assert: %d pixels differ from %s; see %s and %s", n, path, failPath, diffPath)
	errors.Log(Save(img, failPath))
	errors.Log(Save(di, diffPath))
}
