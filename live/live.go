// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package live provides the time-varying scalar inputs of graphic items:
// constants, named variables updated from the outside, and vector and
// orientation groupings of them.
//
// A value that is not currently available is reported as NaN.
package live

import (
	"math"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/robotlab/simview/math32"
)

// Float is a scalar input read by graphic items.
// Implementations must be safe for concurrent use.
type Float interface {
	// Value returns the current value, or NaN if it is not available.
	Value() float32
}

// ValueOf returns the value of f, and NaN if f is nil.
func ValueOf(f Float) float32 {
	if f == nil {
		return math32.NaN()
	}
	return f.Value()
}

// Const is a constant [Float].
type Const float32

// Value returns the constant value.
func (c Const) Value() float32 { return float32(c) }

// Var is a named variable whose value is set from the outside,
// typically by a [Feed]. It is safe for concurrent use.
type Var struct {
	name string
	bits atomic.Uint32
}

// NewVar returns a new variable with the given name and value.
func NewVar(name string, v float32) *Var {
	vr := &Var{name: name}
	vr.Set(v)
	return vr
}

// Name returns the name of the variable.
func (vr *Var) Name() string { return vr.name }

// Value returns the current value of the variable.
func (vr *Var) Value() float32 {
	return math.Float32frombits(vr.bits.Load())
}

// Set sets the value of the variable.
func (vr *Var) Set(v float32) {
	vr.bits.Store(math.Float32bits(v))
}

// Registry holds the named variables of a session.
// Variables are created on first reference with a NaN value.
type Registry struct {
	mu   sync.RWMutex
	vars map[string]*Var
}

// NewRegistry returns a new empty registry.
func NewRegistry() *Registry {
	return &Registry{vars: make(map[string]*Var)}
}

// Var returns the variable with the given name, creating it if needed.
func (rg *Registry) Var(name string) *Var {
	rg.mu.RLock()
	vr, ok := rg.vars[name]
	rg.mu.RUnlock()
	if ok {
		return vr
	}
	rg.mu.Lock()
	defer rg.mu.Unlock()
	if vr, ok = rg.vars[name]; ok {
		return vr
	}
	vr = NewVar(name, math32.NaN())
	rg.vars[name] = vr
	return vr
}

// Lookup returns the variable with the given name if it exists.
func (rg *Registry) Lookup(name string) (*Var, bool) {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	vr, ok := rg.vars[name]
	return vr, ok
}

// Set sets the value of the named variable, creating it if needed.
func (rg *Registry) Set(name string, v float32) {
	rg.Var(name).Set(v)
}

// Len returns the number of variables.
func (rg *Registry) Len() int {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return len(rg.vars)
}

// Names returns the sorted names of all variables.
func (rg *Registry) Names() []string {
	rg.mu.RLock()
	names := make([]string, 0, len(rg.vars))
	for nm := range rg.vars {
		names = append(names, nm)
	}
	rg.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Invalidate sets every variable to NaN, as when the data source is lost.
func (rg *Registry) Invalidate() {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	for _, vr := range rg.vars {
		vr.Set(math32.NaN())
	}
}
