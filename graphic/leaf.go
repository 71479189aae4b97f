// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphic

import (
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/robotlab/simview/base/errors"
	"github.com/robotlab/simview/base/logx"
	"github.com/robotlab/simview/definition"
	"github.com/robotlab/simview/math32"
	"github.com/robotlab/simview/shape"
)

// Outcome is the result of [Leaf.ComputeBackground].
type Outcome int32

const (
	// OutcomeBuilt means a new mesh was built and posted.
	OutcomeBuilt Outcome = iota

	// OutcomeCacheHit means the shape parameters did not change.
	OutcomeCacheHit

	// OutcomeCleared means the shape parameters are degenerate,
	// so the mesh is cleared.
	OutcomeCleared

	// OutcomeFailed means the mesh builder failed,
	// so the previous mesh is kept.
	OutcomeFailed

	OutcomesN
)

var outcomeNames = [...]string{"built", "cache-hit", "cleared", "failed"}

func (o Outcome) String() string {
	if o < 0 || o >= OutcomesN {
		return "unknown"
	}
	return outcomeNames[o]
}

// Counts are numbers of outcomes, indexed by [Outcome].
type Counts [OutcomesN]int

// Add adds the counts of other.
func (c *Counts) Add(other Counts) {
	for i, n := range other {
		c[i] += n
	}
}

// Leaf is a graphic item with a mesh built from live shape parameters.
// Leaf types embed [LeafBase] and implement the shape specific methods.
type Leaf interface {
	Node

	// AsLeaf returns the common leaf data.
	AsLeaf() *LeafBase

	// Params returns the current shape parameters from the live inputs.
	// Inputs of the pose are not read.
	Params() shape.Params

	// Pose returns the current position and orientation of the
	// local frame of the mesh, in the frame of the item.
	Pose() (math32.Vector3, math32.Quat)

	// ToDefinition returns the definition of the item, with live inputs
	// as literals or variable references.
	ToDefinition() definition.Definition

	// ComputeBackground rebuilds the mesh if the shape parameters changed,
	// posting it for the next [Node.Render]. It is called from the
	// background pass and never blocks the render pass.
	ComputeBackground() Outcome
}

// Drawable is the render state of a leaf, as applied by [Node.Render].
type Drawable struct {
	Leaf Leaf

	// Mesh is nil when there is nothing to draw.
	Mesh *shape.Mesh

	// Position and Orientation place the mesh in the world frame.
	Position    math32.Vector3
	Orientation math32.Quat

	// Scale is zero when the item is hidden.
	Scale math32.Vector3

	Color color.RGBA

	Visible bool

	// Hidden is set when the pose is unavailable.
	Hidden bool
}

// Shown returns whether the drawable is to be drawn.
func (dr *Drawable) Shown() bool {
	return dr.Visible && !dr.Hidden && !dr.Mesh.IsEmpty()
}

// meshUpdate is a mesh posted by the background pass.
// A nil mesh clears the drawable.
type meshUpdate struct {
	mesh *shape.Mesh
}

// LeafBase holds the data common to all leaves.
type LeafBase struct {
	Item

	// Frame is the name of the reference frame of the pose,
	// empty for the world frame.
	Frame string

	// Color is the color of the mesh.
	Color color.RGBA

	// background state, guarded by bgMu.
	bgMu      sync.Mutex
	last      shape.Params
	published bool

	// failed are the parameters of the last failed build, not retried
	// until they change.
	failed shape.Params

	shapeKind atomic.Int32
	builds    atomic.Int64

	mailbox atomic.Pointer[meshUpdate]

	// drawable is written by the render pass.
	drawMu   sync.Mutex
	drawable Drawable
}

// initLeaf registers the leaf in the scene.
func initLeaf(sc *Scene, lf Leaf, name string, kind Kinds) {
	sc.initItem(lf, name, kind)
	lb := lf.AsLeaf()
	lb.Color = definition.DefaultColor
	lb.drawable = Drawable{Leaf: lf, Orientation: math32.QuatIdentity(), Scale: math32.Vec3(1, 1, 1)}
	lb.shapeKind.Store(-1)
}

func (lb *LeafBase) AsLeaf() *LeafBase { return lb }

// IsVisible returns the visibility flag of the leaf.
func (lb *LeafBase) IsVisible() bool {
	return lb.visible.Load()
}

// SetVisible sets the visibility flag of the leaf.
func (lb *LeafBase) SetVisible(v bool) {
	if lb.visible.Swap(v) != v {
		lb.markParentDirty()
	}
}

// Is2D returns whether the leaf is drawn on the XY plane.
func (lb *LeafBase) Is2D() bool { return lb.kind == Kind2D }

// Builds returns the number of times the mesh builder was called.
func (lb *LeafBase) Builds() int64 { return lb.builds.Load() }

// ShapeKind returns the kind of the last computed shape parameters,
// -1 before the first background pass.
func (lb *LeafBase) ShapeKind() shape.Kinds { return shape.Kinds(lb.shapeKind.Load()) }

// HasMesh returns whether the background pass last posted a mesh
// rather than a clear.
func (lb *LeafBase) HasMesh() bool {
	lb.bgMu.Lock()
	defer lb.bgMu.Unlock()
	return lb.published
}

// Drawable returns a copy of the current render state.
func (lb *LeafBase) Drawable() Drawable {
	lb.drawMu.Lock()
	defer lb.drawMu.Unlock()
	return lb.drawable
}

func (lb *LeafBase) ComputeBackground() Outcome {
	lf := lb.This.(Leaf)
	lb.bgMu.Lock()
	defer lb.bgMu.Unlock()
	p := lf.Params()
	lb.shapeKind.Store(int32(p.Kind()))
	if p.Degenerate() {
		return lb.clearMesh()
	}
	if lb.published && lb.last != nil && lb.last.Equal(p) {
		return OutcomeCacheHit
	}
	if lb.failed != nil && lb.failed.Equal(p) {
		return OutcomeFailed
	}
	lb.builds.Add(1)
	ms, err := buildMesh(p)
	if errors.Is(err, shape.ErrDegenerate) {
		return lb.clearMesh()
	}
	if err != nil {
		errors.Log(err, "item", lb.name, "kind", p.Kind().String())
		lb.failed = p
		return OutcomeFailed
	}
	lb.mailbox.Store(&meshUpdate{mesh: ms})
	lb.failed = nil
	lb.last = p
	lb.published = true
	return OutcomeBuilt
}

// buildMesh calls the builder, turning a panic into an error.
func buildMesh(p shape.Params) (ms *shape.Mesh, err error) {
	defer func() { err = errors.Recover(recover(), err) }()
	return p.Build()
}

// clearMesh posts a clear if a mesh was posted, and forgets the
// last built parameters.
func (lb *LeafBase) clearMesh() Outcome {
	if lb.published {
		lb.mailbox.Store(&meshUpdate{})
		logx.Logger().Debug("mesh cleared", "item", lb.name)
	}
	lb.published = false
	lb.last = nil
	lb.failed = nil
	return OutcomeCleared
}

// Render resolves the pose of the leaf in the world frame and applies it
// with the color, hiding the leaf if the pose is unavailable, and then
// swaps in the mesh posted by the background pass, if any.
func (lb *LeafBase) Render() {
	lf := lb.This.(Leaf)
	pos, rot := lf.Pose()
	res := lb.scene.resolver()
	wpos := res.PointToWorld(lb.Frame, pos)
	wrot := res.OrientationToWorld(lb.Frame, rot)

	lb.drawMu.Lock()
	defer lb.drawMu.Unlock()
	dr := &lb.drawable
	dr.Visible = lb.visible.Load()
	if wpos.IsNaN() || wrot.IsNaN() {
		dr.Hidden = true
		dr.Scale = math32.Vector3{}
		return
	}
	dr.Hidden = false
	dr.Scale = math32.Vec3(1, 1, 1)
	dr.Position = wpos
	dr.Orientation = wrot
	dr.Color = lb.Color
	if up := lb.mailbox.Swap(nil); up != nil {
		dr.Mesh = up.mesh
	}
}

// Clear destroys the leaf, detaching it and releasing its mesh.
func (lb *LeafBase) Clear() {
	lb.scene.mu.Lock()
	defer lb.scene.mu.Unlock()
	lb.clearLocked()
}

func (lb *LeafBase) clearLocked() {
	lb.detachLocked()
	lb.scene.releaseLocked(&lb.Item)
	lb.mailbox.Store(nil)
	lb.bgMu.Lock()
	lb.last, lb.failed = nil, nil
	lb.published = false
	lb.bgMu.Unlock()
	lb.drawMu.Lock()
	lb.drawable.Mesh = nil
	lb.drawMu.Unlock()
}
