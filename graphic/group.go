// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphic

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/robotlab/simview/base/errors"
	"github.com/robotlab/simview/base/keylist"
	"github.com/robotlab/simview/definition"
)

// Group is an item holding sub-groups, 3D leaves and 2D leaves, each in
// its own namespace of unique names. A group is visible if any of its
// children is, and a group with no children has its own visibility.
type Group struct {
	Item

	// children are indexed by the kind of the child.
	children [3]keylist.List[string, Node]

	// gen counts the visibility changes below the group.
	// vis is the visibility computed at some generation.
	gen atomic.Uint64
	vis atomic.Pointer[visibility]
}

type visibility struct {
	gen     uint64
	visible bool
}

// NewGroup returns a new detached group of the scene.
func NewGroup(sc *Scene, name string) *Group {
	g := &Group{}
	sc.initItem(g, name, KindGroup)
	return g
}

func newRoot(sc *Scene, name string) *Group {
	g := NewGroup(sc, name)
	g.root = true
	return g
}

// Attach inserts the child into the group, detaching it from its previous
// parent. Attaching a child already in the group does nothing. A child whose
// name is used by a sibling of the same kind is rejected with [ErrNameTaken]
// and stays where it was. Attaching a group to itself or to one of its
// descendants, attaching a root, or attaching an item of another scene
// or a cleared item panics.
func (g *Group) Attach(child Node) error {
	g.scene.mu.Lock()
	defer g.scene.mu.Unlock()
	return g.attachLocked(child)
}

func (g *Group) attachLocked(child Node) error {
	ci := child.AsItem()
	switch {
	case ci.scene != g.scene:
		panic(fmt.Sprintf("graphic: cannot attach %s %q: it belongs to another scene", ci.kind, ci.name))
	case ci.id == NoNode:
		panic(fmt.Sprintf("graphic: cannot attach %s %q: it has been cleared", ci.kind, ci.name))
	case g.id == NoNode:
		panic(fmt.Sprintf("graphic: cannot attach to group %q: it has been cleared", g.name))
	case ci.root:
		panic(fmt.Sprintf("graphic: cannot attach root %q", ci.name))
	case ci == &g.Item:
		panic(fmt.Sprintf("graphic: cannot attach group %q to itself", g.name))
	case ci.kind == KindGroup && g.hasAncestorLocked(ci):
		panic(fmt.Sprintf("graphic: cannot attach group %q to its descendant %q", ci.name, g.fullNameLocked()))
	}
	if ci.parent == g.id {
		return nil
	}
	list := &g.children[ci.kind]
	if list.Has(ci.name) {
		return fmt.Errorf("graphic: attaching %s %q to %q: %w", ci.kind, ci.name, g.fullNameLocked(), ErrNameTaken)
	}
	ci.detachLocked()
	errors.Must(list.Add(ci.name, child)) // the name was checked above
	ci.parent = g.id
	g.markDirtyLocked()
	return nil
}

// hasAncestorLocked returns whether anc is the group or one of its ancestors.
func (g *Group) hasAncestorLocked(anc *Item) bool {
	for p := g; p != nil; p = p.parentLocked() {
		if &p.Item == anc {
			return true
		}
	}
	return false
}

// AddGroup creates a sub-group with the given name.
func (g *Group) AddGroup(name string) (*Group, error) {
	sg := NewGroup(g.scene, name)
	if err := g.Attach(sg); err != nil {
		sg.Clear()
		return nil, err
	}
	return sg, nil
}

// Child returns the child of the given kind and name, or nil.
func (g *Group) Child(kind Kinds, name string) Node {
	g.scene.mu.RLock()
	defer g.scene.mu.RUnlock()
	n, _ := g.children[kind].AtTry(name)
	return n
}

// Group returns the sub-group with the given name, or nil.
func (g *Group) Group(name string) *Group {
	n, _ := g.Child(KindGroup, name).(*Group)
	return n
}

// Children returns the children of the given kind, in insertion order.
func (g *Group) Children(kind Kinds) []Node {
	g.scene.mu.RLock()
	defer g.scene.mu.RUnlock()
	return append([]Node(nil), g.children[kind].Values...)
}

// NumChildren returns the number of children of all kinds.
func (g *Group) NumChildren() int {
	g.scene.mu.RLock()
	defer g.scene.mu.RUnlock()
	n := 0
	for k := range g.children {
		n += g.children[k].Len()
	}
	return n
}

// splitPath splits a path into its non-empty segments.
func splitPath(path, sep string) []string {
	var segs []string
	for _, s := range strings.Split(path, sep) {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// FindByPath returns the item at the given path of names joined by the
// separator of the scene, relative to the group. The path may start with
// the name of the group itself. The last segment names a sub-group, a 3D
// leaf or a 2D leaf, looked up in that order. It returns nil if any
// segment is missing.
func (g *Group) FindByPath(path string) Node {
	g.scene.mu.RLock()
	defer g.scene.mu.RUnlock()
	segs := splitPath(path, g.scene.Separator)
	if len(segs) == 0 {
		return g
	}
	if n := g.findLocked(segs); n != nil {
		return n
	}
	if segs[0] == g.name {
		if len(segs) == 1 {
			return g
		}
		return g.findLocked(segs[1:])
	}
	return nil
}

func (g *Group) findLocked(segs []string) Node {
	cur := g
	for i, s := range segs {
		last := i == len(segs)-1
		if sg, ok := cur.children[KindGroup].AtTry(s); ok {
			if last {
				return sg
			}
			cur = sg.(*Group)
			continue
		}
		if !last {
			return nil
		}
		if n, ok := cur.children[Kind3D].AtTry(s); ok {
			return n
		}
		if n, ok := cur.children[Kind2D].AtTry(s); ok {
			return n
		}
	}
	return nil
}

// FindOrCreateGroup returns the group at the given path relative to the
// group, creating the missing groups. The path may start with the name
// of the group itself. An empty path is the group.
func (g *Group) FindOrCreateGroup(path string) *Group {
	g.scene.mu.Lock()
	defer g.scene.mu.Unlock()
	segs := splitPath(path, g.scene.Separator)
	if len(segs) > 0 && segs[0] == g.name && !g.children[KindGroup].Has(segs[0]) {
		segs = segs[1:]
	}
	cur := g
	for _, s := range segs {
		if sg, ok := cur.children[KindGroup].AtTry(s); ok {
			cur = sg.(*Group)
			continue
		}
		ng := &Group{}
		g.scene.initItemLocked(ng, s, KindGroup)
		errors.Must(cur.attachLocked(ng)) // the name was checked above
		cur = ng
	}
	return cur
}

////////////////////////////////////////////////////////////////////////
//  Visibility

// markDirtyLocked marks the group and its ancestors as needing
// to recompute their visibility.
func (g *Group) markDirtyLocked() {
	for p := g; p != nil; p = p.parentLocked() {
		p.gen.Add(1)
	}
}

// IsVisible returns whether any child of the group is visible,
// or the visibility of the group itself if it has no children.
// It is recomputed only when a child visibility changed.
func (g *Group) IsVisible() bool {
	g.scene.mu.RLock()
	defer g.scene.mu.RUnlock()
	return g.isVisibleLocked()
}

func (g *Group) isVisibleLocked() bool {
	gen := g.gen.Load()
	if c := g.vis.Load(); c != nil && c.gen == gen {
		return c.visible
	}
	n := 0
	vis := false
	for k := range g.children {
		for _, c := range g.children[k].Values {
			n++
			if sg, ok := c.(*Group); ok {
				if sg.isVisibleLocked() {
					vis = true
				}
			} else if c.IsVisible() {
				vis = true
			}
		}
	}
	if n == 0 {
		vis = g.visible.Load()
	}
	// a result of an older generation never matches, so a concurrent
	// store of a stale result only causes a recompute
	g.vis.Store(&visibility{gen: gen, visible: vis})
	return vis
}

// SetVisible sets the visibility of the group and of all the items below it.
func (g *Group) SetVisible(v bool) {
	g.scene.mu.RLock()
	defer g.scene.mu.RUnlock()
	g.setVisibleLocked(v)
	if par := g.parentLocked(); par != nil {
		par.markDirtyLocked()
	}
}

func (g *Group) setVisibleLocked(v bool) {
	g.visible.Store(v)
	g.gen.Add(1)
	for k := range g.children {
		for _, c := range g.children[k].Values {
			if sg, ok := c.(*Group); ok {
				sg.setVisibleLocked(v)
				continue
			}
			c.AsItem().visible.Store(v)
		}
	}
}

////////////////////////////////////////////////////////////////////////
//  Passes

// Leaves returns all the leaves below the group, depth-first.
func (g *Group) Leaves() []Leaf {
	g.scene.mu.RLock()
	defer g.scene.mu.RUnlock()
	return g.leavesLocked(nil)
}

func (g *Group) leavesLocked(lvs []Leaf) []Leaf {
	for _, k := range []Kinds{Kind3D, Kind2D} {
		for _, c := range g.children[k].Values {
			lvs = append(lvs, c.(Leaf))
		}
	}
	for _, c := range g.children[KindGroup].Values {
		lvs = c.(*Group).leavesLocked(lvs)
	}
	return lvs
}

// ComputeBackground runs [Leaf.ComputeBackground] on all the leaves
// below the group in turn, returning the count of each outcome.
func (g *Group) ComputeBackground() Counts {
	var cnt Counts
	for _, lf := range g.Leaves() {
		cnt[lf.ComputeBackground()]++
	}
	return cnt
}

// Render renders all the leaves below the group.
func (g *Group) Render() {
	for _, lf := range g.Leaves() {
		lf.Render()
	}
}

// Drawables returns the drawables of all the leaves below the group
// that are currently shown.
func (g *Group) Drawables() []Drawable {
	var drs []Drawable
	for _, lf := range g.Leaves() {
		if dr := lf.AsLeaf().Drawable(); dr.Shown() {
			drs = append(drs, dr)
		}
	}
	return drs
}

// Clear destroys all the items below the group and then the group itself,
// except for roots which stay empty.
func (g *Group) Clear() {
	g.scene.mu.Lock()
	defer g.scene.mu.Unlock()
	g.clearLocked()
}

func (g *Group) clearLocked() {
	for k := range g.children {
		for _, c := range g.children[k].Values {
			c.AsItem().parent = NoNode
			switch x := c.(type) {
			case *Group:
				x.clearLocked()
			case Leaf:
				x.AsLeaf().clearLocked()
			}
		}
		g.children[k].Reset()
	}
	g.gen.Add(1)
	if g.root {
		return
	}
	g.detachLocked()
	g.scene.releaseLocked(&g.Item)
}

// ToDefinition returns the definition of the group and all its contents.
func (g *Group) ToDefinition() *definition.Group {
	g.scene.mu.RLock()
	defer g.scene.mu.RUnlock()
	return g.toDefinitionLocked()
}

func (g *Group) toDefinitionLocked() *definition.Group {
	gd := &definition.Group{Name: g.name}
	if !g.isVisibleLocked() {
		v := false
		gd.Visible = &v
	}
	for _, k := range []Kinds{Kind3D, Kind2D} {
		for _, c := range g.children[k].Values {
			gd.Add(c.(Leaf).ToDefinition())
		}
	}
	for _, c := range g.children[KindGroup].Values {
		gd.Groups = append(gd.Groups, c.(*Group).toDefinitionLocked())
	}
	return gd
}
