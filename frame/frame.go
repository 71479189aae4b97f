// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame resolves points and orientations expressed in named
// reference frames into the common world frame.
package frame

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/robotlab/simview/live"
	"github.com/robotlab/simview/math32"
)

// World is the name of the root frame. The empty name also means World.
const World = "world"

var (
	// ErrUnknownFrame is returned when a frame name is not in the tree.
	ErrUnknownFrame = errors.New("frame: unknown frame")

	// ErrFrameExists is returned when adding a frame whose name is taken.
	ErrFrameExists = errors.New("frame: frame already exists")
)

// Resolver converts points and orientations expressed in a named frame into
// the world frame. The results are NaN if the frame is unknown or its pose
// is currently unavailable.
type Resolver interface {
	PointToWorld(frame string, p math32.Vector3) math32.Vector3
	OrientationToWorld(frame string, q math32.Quat) math32.Quat
}

// Identity is the [Resolver] for which every frame is the world frame.
type Identity struct{}

func (Identity) PointToWorld(_ string, p math32.Vector3) math32.Vector3 { return p }

func (Identity) OrientationToWorld(_ string, q math32.Quat) math32.Quat { return q }

// Pose is the live pose of a frame relative to its parent.
type Pose struct {
	Position    live.Vector3
	Orientation live.Orientation
}

// value returns the current translation and rotation,
// where unbound translation components are 0.
func (ps Pose) value() (math32.Vector3, math32.Quat) {
	var pos math32.Vector3
	if ps.Position.IsSet() {
		pos = ps.Position.Value()
	}
	return pos, ps.Orientation.Value()
}

type node struct {
	parent string
	pose   Pose
}

// Tree is a [Resolver] over a tree of named frames rooted at [World],
// each with a live pose relative to its parent. It is safe for concurrent use.
type Tree struct {
	mu     sync.RWMutex
	frames map[string]*node
}

// NewTree returns a new tree holding only the [World] frame.
func NewTree() *Tree {
	return &Tree{frames: make(map[string]*node)}
}

func canonical(name string) string {
	if name == "" {
		return World
	}
	return name
}

// Add adds a frame with the given parent frame and pose.
// The parent must already exist, so the tree can never have a cycle.
func (t *Tree) Add(name, parent string, pose Pose) error {
	name, parent = canonical(name), canonical(parent)
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, has := t.frames[name]; has || name == World {
		return fmt.Errorf("frame.Tree.Add %q: %w", name, ErrFrameExists)
	}
	if _, has := t.frames[parent]; !has && parent != World {
		return fmt.Errorf("frame.Tree.Add %q: parent %q: %w", name, parent, ErrUnknownFrame)
	}
	t.frames[name] = &node{parent: parent, pose: pose}
	return nil
}

// Has returns whether the frame exists.
func (t *Tree) Has(name string) bool {
	name = canonical(name)
	if name == World {
		return true
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, has := t.frames[name]
	return has
}

// Names returns the sorted names of all frames other than [World].
func (t *Tree) Names() []string {
	t.mu.RLock()
	names := make([]string, 0, len(t.frames))
	for nm := range t.frames {
		names = append(names, nm)
	}
	t.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Transform returns the current translation and rotation taking points
// of the frame into the world frame, and false if the frame is unknown.
func (t *Tree) Transform(name string) (math32.Vector3, math32.Quat, bool) {
	name = canonical(name)
	t.mu.RLock()
	defer t.mu.RUnlock()
	pos := math32.Vector3{}
	rot := math32.QuatIdentity()
	for name != World {
		nd, ok := t.frames[name]
		if !ok {
			return math32.Vector3NaN(), math32.QuatNaN(), false
		}
		ppos, prot := nd.pose.value()
		// compose with the pose of this frame in its parent
		pos = pos.MulQuat(prot).Add(ppos)
		rot = prot.Mul(rot)
		name = nd.parent
	}
	return pos, rot, true
}

// PointToWorld returns the point p of the frame expressed in the world frame.
func (t *Tree) PointToWorld(frame string, p math32.Vector3) math32.Vector3 {
	pos, rot, ok := t.Transform(frame)
	if !ok || pos.IsNaN() || rot.IsNaN() {
		return math32.Vector3NaN()
	}
	return p.MulQuat(rot).Add(pos)
}

// OrientationToWorld returns the orientation q of the frame expressed in the world frame.
func (t *Tree) OrientationToWorld(frame string, q math32.Quat) math32.Quat {
	_, rot, ok := t.Transform(frame)
	if !ok || rot.IsNaN() {
		return math32.QuatNaN()
	}
	return rot.Mul(q)
}
