// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// ArrayF32 is a slice of float32 with additional convenience methods
// for the flat vertex, normal and color buffers of a mesh.
type ArrayF32 []float32

// Len returns the number of float32 elements in the array
func (a ArrayF32) Len() int {
	return len(a)
}

// Append appends any number of values to the array
func (a *ArrayF32) Append(v ...float32) {
	*a = append(*a, v...)
}

// AppendVector3 appends any number of Vector3 to the array
func (a *ArrayF32) AppendVector3(v ...Vector3) {
	for i := 0; i < len(v); i++ {
		*a = append(*a, v[i].X, v[i].Y, v[i].Z)
	}
}

// Vector3 returns the Vector3 starting at the given float position.
func (a ArrayF32) Vector3(pos int) Vector3 {
	return Vector3FromArray(a, pos)
}

// ArrayU32 is a slice of uint32 with additional convenience methods,
// used for mesh triangle indexes.
type ArrayU32 []uint32

// Len returns the number of uint32 elements in the array
func (a ArrayU32) Len() int {
	return len(a)
}

// Append appends n elements to the array updating the slice if necessary
func (a *ArrayU32) Append(v ...uint32) {
	*a = append(*a, v...)
}
