// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graphic provides the scene graph of graphic items: groups of
// named, independently visible leaf items whose meshes are built in the
// background from live shape parameters and handed to the render pass
// through a single-slot mailbox.
package graphic

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/robotlab/simview/base/errors"
	"github.com/robotlab/simview/frame"
)

var (
	// ErrNameTaken is returned when attaching an item whose name is
	// already used by a sibling of the same kind.
	ErrNameTaken = errors.New("graphic: name already taken")

	// ErrUnsupportedKind is returned by the [Factory] for definitions
	// that have no registered handler.
	ErrUnsupportedKind = errors.New("graphic: unsupported kind")
)

// NodeID is the index of an item in its [Scene].
type NodeID int32

// NoNode is the id of no item, as the parent of detached items.
const NoNode NodeID = -1

// DefaultSeparator joins the names of groups in paths.
const DefaultSeparator = ":"

// Kinds are the capability kinds of items.
type Kinds int32

const (
	KindGroup Kinds = iota
	Kind2D
	Kind3D
)

func (k Kinds) String() string {
	switch k {
	case KindGroup:
		return "group"
	case Kind2D:
		return "2d"
	case Kind3D:
		return "3d"
	}
	return "unknown"
}

// Node is an item of a [Scene]: a [*Group] or a [Leaf].
type Node interface {
	// AsItem returns the common item data.
	AsItem() *Item

	// IsVisible returns whether the item is visible.
	IsVisible() bool

	// SetVisible sets the visibility of the item.
	SetVisible(v bool)

	// Render applies the current pose and any new mesh to the drawables
	// of the item. It is called on the presentation thread.
	Render()

	// Clear destroys the item, detaching it and releasing its drawable.
	Clear()
}

// Item is the data common to all items, embedded in every [Node].
type Item struct {
	// This is the item as its [Node] type, so that
	// base methods can call the methods of the concrete type.
	This Node

	name  string
	kind  Kinds
	scene *Scene

	// id and parent are guarded by the scene lock.
	id     NodeID
	parent NodeID
	root   bool

	visible atomic.Bool
}

func (it *Item) AsItem() *Item { return it }

// Name returns the name of the item, unique among the
// siblings of the same kind.
func (it *Item) Name() string { return it.name }

// Kind returns the capability kind of the item.
func (it *Item) Kind() Kinds { return it.kind }

// Scene returns the scene of the item.
func (it *Item) Scene() *Scene { return it.scene }

// ID returns the id of the item in its scene.
func (it *Item) ID() NodeID {
	if it.scene == nil {
		return NoNode
	}
	it.scene.mu.RLock()
	defer it.scene.mu.RUnlock()
	return it.id
}

// IsRoot returns whether the item is one of the roots of its scene.
func (it *Item) IsRoot() bool { return it.root }

func (it *Item) String() string {
	return fmt.Sprintf("%s %q", it.kind, it.FullName())
}

// Parent returns the group holding the item, or nil if it is detached.
func (it *Item) Parent() *Group {
	if it.scene == nil {
		return nil
	}
	it.scene.mu.RLock()
	defer it.scene.mu.RUnlock()
	return it.parentLocked()
}

func (it *Item) parentLocked() *Group {
	if it.parent == NoNode {
		return nil
	}
	return it.scene.nodes[it.parent].(*Group)
}

// FullName returns the names of the groups leading to the item joined by the
// separator of the scene, followed by the name of the item. The full name of
// a root is empty, so the children of roots have their own name only.
func (it *Item) FullName() string {
	if it.scene == nil {
		return it.name
	}
	it.scene.mu.RLock()
	defer it.scene.mu.RUnlock()
	return it.fullNameLocked()
}

func (it *Item) fullNameLocked() string {
	if it.root {
		return ""
	}
	par := it.parentLocked()
	if par == nil {
		return it.name
	}
	pn := par.fullNameLocked()
	if pn == "" {
		return it.name
	}
	return pn + it.scene.Separator + it.name
}

// Detach removes the item from its parent group.
// It does nothing if the item is detached.
func (it *Item) Detach() {
	if it.scene == nil {
		return
	}
	it.scene.mu.Lock()
	defer it.scene.mu.Unlock()
	it.detachLocked()
}

func (it *Item) detachLocked() {
	par := it.parentLocked()
	if par == nil {
		return
	}
	par.children[it.kind].Delete(it.name)
	it.parent = NoNode
	par.markDirtyLocked()
}

// markParentDirty marks the groups above the item as needing
// to recompute their visibility.
func (it *Item) markParentDirty() {
	if it.scene == nil {
		return
	}
	it.scene.mu.RLock()
	defer it.scene.mu.RUnlock()
	if par := it.parentLocked(); par != nil {
		par.markDirtyLocked()
	}
}

// Scene is the arena holding all the items of one scene graph,
// with its two roots. Parent links are ids into the arena.
// Structural changes are serialized by a single lock.
type Scene struct {
	// ID identifies the scene in logs.
	ID uuid.UUID

	// Separator joins the names of groups in paths.
	Separator string

	// Resolver converts the poses of items into the world frame.
	Resolver frame.Resolver

	// GUIRoot is the root of the items created by the user interface.
	GUIRoot *Group

	// SessionRoot is the root of the items of the current session.
	SessionRoot *Group

	mu    sync.RWMutex
	nodes []Node
	free  []NodeID
}

// NewScene returns a new scene with its two roots, the default
// separator and the identity frame resolver.
func NewScene() *Scene {
	sc := &Scene{ID: uuid.New(), Separator: DefaultSeparator, Resolver: frame.Identity{}}
	sc.GUIRoot = newRoot(sc, "gui")
	sc.SessionRoot = newRoot(sc, "session")
	return sc
}

// Len returns the number of items in the scene, roots included.
func (sc *Scene) Len() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.nodes) - len(sc.free)
}

// Node returns the item with the given id, or nil.
func (sc *Scene) Node(id NodeID) Node {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if id < 0 || int(id) >= len(sc.nodes) {
		return nil
	}
	return sc.nodes[id]
}

// Roots returns the roots of the scene.
func (sc *Scene) Roots() []*Group {
	return []*Group{sc.GUIRoot, sc.SessionRoot}
}

// resolver returns the frame resolver, the identity if none is set.
func (sc *Scene) resolver() frame.Resolver {
	if sc.Resolver == nil {
		return frame.Identity{}
	}
	return sc.Resolver
}

// initItem initializes the item data of n and registers it in the scene.
func (sc *Scene) initItem(n Node, name string, kind Kinds) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.initItemLocked(n, name, kind)
}

func (sc *Scene) initItemLocked(n Node, name string, kind Kinds) {
	it := n.AsItem()
	it.This = n
	it.name = name
	it.kind = kind
	it.scene = sc
	it.parent = NoNode
	it.visible.Store(true)
	if k := len(sc.free); k > 0 {
		it.id = sc.free[k-1]
		sc.free = sc.free[:k-1]
		sc.nodes[it.id] = n
		return
	}
	it.id = NodeID(len(sc.nodes))
	sc.nodes = append(sc.nodes, n)
}

// releaseLocked frees the arena slot of the item.
func (sc *Scene) releaseLocked(it *Item) {
	if it.id == NoNode {
		return
	}
	sc.nodes[it.id] = nil
	sc.free = append(sc.free, it.id)
	it.id = NoNode
	it.parent = NoNode
}

// Leaves returns the leaves below the GUI root and then
// those below the session root, depth-first.
func (sc *Scene) Leaves() []Leaf {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.SessionRoot.leavesLocked(sc.GUIRoot.leavesLocked(nil))
}

// Drawables returns the drawables of all the leaves of the scene
// that are currently shown.
func (sc *Scene) Drawables() []Drawable {
	var drs []Drawable
	for _, lf := range sc.Leaves() {
		if dr := lf.AsLeaf().Drawable(); dr.Shown() {
			drs = append(drs, dr)
		}
	}
	return drs
}
