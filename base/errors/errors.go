// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a set of error functions that are helpful
// for dealing with errors in the scene graph. It re-exports the
// standard library functions so that it can be used as a drop-in
// replacement for the errors package.
package errors

import (
	"errors"

	"github.com/robotlab/simview/base/logx"
)

// New, Is, As, Join and Unwrap are the standard library versions.
var (
	New    = errors.New
	Is     = errors.Is
	As     = errors.As
	Join   = errors.Join
	Unwrap = errors.Unwrap
)

// Log takes the given error and logs it if it is non-nil.
// The intended usage is:
//
//	errors.Log(MyFunc(v))
//	// or
//	return errors.Log(MyFunc(v))
func Log(err error, args ...any) error {
	if err != nil {
		logx.Logger().Error(err.Error(), args...)
	}
	return err
}

// Log1 takes the given value and error and returns the value if
// the error is nil, and logs the error and returns a zero value
// if the error is non-nil. The intended usage is:
//
//	a := errors.Log1(MyFunc(v))
func Log1[T any](v T, err error) T {
	if err != nil {
		logx.Logger().Error(err.Error())
	}
	return v
}

// Must takes the given error and panics if it is non-nil.
// The intended usage is:
//
//	errors.Must(MyFunc(v))
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 takes the given value and error and returns the value if
// the error is nil, and panics if the error is non-nil. The intended usage is:
//
//	a := errors.Must1(MyFunc(v))
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Recover converts a recovered panic value into an error, for use in
// deferred functions that contain panics to a single item:
//
//	defer func() { err = errors.Recover(recover(), err) }()
func Recover(r any, err error) error {
	if r == nil {
		return err
	}
	if rerr, ok := r.(error); ok {
		return rerr
	}
	return &PanicError{Value: r}
}

// PanicError wraps a recovered panic value that was not itself an error.
type PanicError struct {
	Value any
}

func (pe *PanicError) Error() string {
	return "recovered panic: " + stringOf(pe.Value)
}

func stringOf(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case interface{ String() string }:
		return x.String()
	}
	return "(non-string value)"
}
