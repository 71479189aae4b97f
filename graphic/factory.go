// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphic

import (
	"fmt"
	"slices"

	"github.com/robotlab/simview/base/errors"
	"github.com/robotlab/simview/base/logx"
	"github.com/robotlab/simview/definition"
	"github.com/robotlab/simview/live"
)

// Handler creates the leaf of a definition, binding its shape specific
// fields. The name of the definition is the name of the new leaf.
// The common fields are bound by the [Factory].
type Handler func(fc *Factory, d definition.Definition) (Leaf, error)

// Factory creates leaves from definitions, binding literal fields to
// constants and variable references to the variables of its registry.
type Factory struct {
	Scene    *Scene
	Registry *live.Registry

	handlers map[definition.Kind]Handler
}

// NewFactory returns a factory for the scene with handlers for all the
// built-in kinds. A nil registry is replaced by a new one.
func NewFactory(sc *Scene, reg *live.Registry) *Factory {
	if reg == nil {
		reg = live.NewRegistry()
	}
	fc := &Factory{Scene: sc, Registry: reg, handlers: map[definition.Kind]Handler{}}
	for k, h := range builtinHandlers {
		fc.handlers[k] = h
	}
	return fc
}

// Register sets the handler of a kind, replacing any previous one.
func (fc *Factory) Register(kind definition.Kind, h Handler) {
	fc.handlers[kind] = h
}

// Kinds returns the kinds that have a handler, sorted.
func (fc *Factory) Kinds() []definition.Kind {
	ks := make([]definition.Kind, 0, len(fc.handlers))
	for k := range fc.handlers {
		ks = append(ks, k)
	}
	slices.Sort(ks)
	return ks
}

// handler returns a [Handler] calling newLeaf and then bind
// on definitions of type D.
func handler[D definition.Definition, L Leaf](newLeaf func(*Scene, string) L, bind func(L, *Factory, D)) Handler {
	return func(fc *Factory, d definition.Definition) (Leaf, error) {
		dd, ok := d.(D)
		if !ok {
			return nil, fmt.Errorf("graphic: definition of kind %s has type %T: %w", d.Kind(), d, ErrUnsupportedKind)
		}
		lf := newLeaf(fc.Scene, d.Common().Name)
		bind(lf, fc, dd)
		return lf, nil
	}
}

var builtinHandlers = map[definition.Kind]Handler{
	definition.Arrow3DKind:              handler(NewArrow3D, (*Arrow3D).bind),
	definition.Box3DKind:                handler(NewBox3D, (*Box3D).bind),
	definition.Capsule3DKind:            handler(NewCapsule3D, (*Capsule3D).bind),
	definition.Cone3DKind:               handler(NewCone3D, (*Cone3D).bind),
	definition.Cylinder3DKind:           handler(NewCylinder3D, (*Cylinder3D).bind),
	definition.Ellipsoid3DKind:          handler(NewEllipsoid3D, (*Ellipsoid3D).bind),
	definition.Point3DKind:              handler(NewPoint3D, (*Point3D).bind),
	definition.Ramp3DKind:               handler(NewRamp3D, (*Ramp3D).bind),
	definition.ConvexPolytope3DKind:     handler(NewConvexPolytope3D, (*ConvexPolytope3D).bind),
	definition.PolygonExtruded3DKind:    handler(NewPolygonExtruded3D, (*PolygonExtruded3D).bind),
	definition.Polynomial3DKind:         handler(NewPolynomial3D, (*Polynomial3D).bind),
	definition.CoordinateSystem3DKind:   handler(NewCoordinateSystem3D, (*CoordinateSystem3D).bind),
	definition.PointCloud3DKind:         handler(NewPointCloud3D, (*PointCloud3D).bind),
	definition.SoftBox3DKind:            handler(NewSoftBox3D, (*SoftBox3D).bind),
	definition.SoftRamp3DKind:           handler(NewSoftRamp3D, (*SoftRamp3D).bind),
	definition.SoftCylinder3DKind:       handler(NewSoftCylinder3D, (*SoftCylinder3D).bind),
	definition.SoftConvexPolytope3DKind: handler(NewSoftConvexPolytope3D, (*SoftConvexPolytope3D).bind),
	definition.Point2DKind:              handler(NewPoint2D, (*Point2D).bind),
	definition.Polygon2DKind:            handler(NewPolygon2D, (*Polygon2D).bind),
	definition.Line2DKind:               handler(NewLine2D, (*Line2D).bind),
	definition.PointCloud2DKind:         handler(NewPointCloud2D, (*PointCloud2D).bind),
	definition.Arrow2DKind:              handler(NewArrow2D, (*Arrow2D).bind),
}

////////////////////////////////////////////////////////////////////////
//  Binding

// Float returns the live input of a field.
func (fc *Factory) Float(f definition.Field) live.Float {
	if f.IsVar() {
		return fc.Registry.Var(f.Var)
	}
	return live.Const(f.Value)
}

func (fc *Factory) Floats(fs []definition.Field) []live.Float {
	out := make([]live.Float, len(fs))
	for i, f := range fs {
		out[i] = fc.Float(f)
	}
	return out
}

func (fc *Factory) Vector2(v definition.Vector2) live.Vector2 {
	return live.Vector2{X: fc.Float(v.X), Y: fc.Float(v.Y)}
}

func (fc *Factory) Vector2s(vs []definition.Vector2) []live.Vector2 {
	out := make([]live.Vector2, len(vs))
	for i, v := range vs {
		out[i] = fc.Vector2(v)
	}
	return out
}

func (fc *Factory) Vector3(v definition.Vector3) live.Vector3 {
	return live.Vector3{X: fc.Float(v.X), Y: fc.Float(v.Y), Z: fc.Float(v.Z)}
}

// Vector3Ptr returns an unbound vector for nil.
func (fc *Factory) Vector3Ptr(v *definition.Vector3) live.Vector3 {
	if v == nil {
		return live.Vector3{}
	}
	return fc.Vector3(*v)
}

func (fc *Factory) Vector3s(vs []definition.Vector3) []live.Vector3 {
	out := make([]live.Vector3, len(vs))
	for i, v := range vs {
		out[i] = fc.Vector3(v)
	}
	return out
}

// Orientation returns the identity for nil. A quaternion must have
// 4 components in x, y, z, w order; otherwise it is ignored.
func (fc *Factory) Orientation(o *definition.Orientation) live.Orientation {
	var lo live.Orientation
	if o == nil {
		return lo
	}
	if len(o.Quaternion) == 4 {
		for i, f := range o.Quaternion {
			lo.Quat[i] = fc.Float(f)
		}
		return lo
	}
	if len(o.Quaternion) > 0 {
		logx.Logger().Warn("ignoring quaternion without 4 components", "n", len(o.Quaternion))
	}
	if o.Yaw != nil {
		lo.Yaw = fc.Float(*o.Yaw)
	}
	if o.Pitch != nil {
		lo.Pitch = fc.Float(*o.Pitch)
	}
	if o.Roll != nil {
		lo.Roll = fc.Float(*o.Roll)
	}
	return lo
}

// bindBase sets the frame, visibility and color of the leaf.
// An invalid color is logged and replaced by the default color.
func (fc *Factory) bindBase(lb *LeafBase, b *definition.Base) {
	lb.Frame = b.Frame
	lb.visible.Store(b.IsVisible())
	clr, err := definition.ParseColor(b.Color)
	if errors.Log(err, "item", lb.name) != nil {
		clr = definition.DefaultColor
	}
	lb.Color = clr
}

////////////////////////////////////////////////////////////////////////
//  Creation

// FromDefinition creates the leaf of a definition in the parent group.
// The definition is not modified. If the name is taken by a sibling of the
// same kind, the leaf is renamed by appending _1, _2 and so on.
// An empty name is replaced by the kind. Definitions without a handler
// are logged and rejected with [ErrUnsupportedKind].
func (fc *Factory) FromDefinition(parent *Group, d definition.Definition) (Leaf, error) {
	h, ok := fc.handlers[d.Kind()]
	if !ok {
		err := fmt.Errorf("graphic: creating %q of kind %s: %w", d.Common().Name, d.Kind(), ErrUnsupportedKind)
		return nil, errors.Log(err, "item", d.Common().Name, "kind", string(d.Kind()))
	}
	d = definition.Clone(d)
	b := d.Common()
	if b.Name == "" {
		b.Name = string(d.Kind())
	}
	lf, err := h(fc, d)
	if err != nil {
		return nil, errors.Log(err, "item", b.Name, "kind", string(d.Kind()))
	}
	lb := lf.AsLeaf()
	fc.bindBase(lb, b)
	for i := 1; ; i++ {
		err := parent.Attach(lf)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrNameTaken) {
			lf.Clear()
			return nil, err
		}
		// the leaf is detached, so its name is not shared yet
		lb.name = fmt.Sprintf("%s_%d", b.Name, i)
	}
	if lb.name != b.Name {
		logx.Logger().Debug("renamed item", "item", b.Name, "name", lb.name)
	}
	return lf, nil
}

// FromGroupDefinition creates the items and groups of the definition in
// the group, merging them with its current contents: existing sub-groups
// are reused and leaves with taken names are renamed. Failed items are
// skipped. It returns the number of leaves created and the joined errors.
func (fc *Factory) FromGroupDefinition(g *Group, gd *definition.Group) (int, error) {
	var errs []error
	n := 0
	for _, it := range gd.Items {
		if it.Definition == nil {
			continue
		}
		if _, err := fc.FromDefinition(g, it.Definition); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	for _, sub := range gd.Groups {
		sg := g.FindOrCreateGroup(sub.Name)
		sn, err := fc.FromGroupDefinition(sg, sub)
		n += sn
		if err != nil {
			errs = append(errs, err)
		}
		if !sub.IsVisible() {
			sg.SetVisible(false)
		}
	}
	return n, errors.Join(errs...)
}

// FromFile creates the contents of a definition file in the group.
func (fc *Factory) FromFile(g *Group, f *definition.File) (int, error) {
	if f.Root == nil {
		return 0, nil
	}
	return fc.FromGroupDefinition(g, f.Root)
}
