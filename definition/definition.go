// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package definition provides the declarative descriptions of graphic items
// used for file persistence and network transport: one variant per kind of
// item, each field being either a literal value or a reference to a
// named live variable, and a tree of groups holding them.
package definition

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrUnknownKind is returned when creating a definition of an unknown kind.
var ErrUnknownKind = errors.New("definition: unknown kind")

// Kind is the tag of a definition variant, as written in the type field of files.
type Kind string

// Definition is a declarative description of one graphic item.
type Definition interface {
	// Kind returns the kind tag of the variant.
	Kind() Kind

	// Common returns the fields shared by all variants.
	Common() *Base
}

// Base holds the fields shared by all definition variants.
type Base struct {
	Name string `yaml:"name"`

	// Visible is nil for the default, which is visible.
	Visible *bool `yaml:"visible,omitempty"`

	// Color is a hex color (#rgb, #rrggbb, #rrggbbaa) or a color name.
	Color string `yaml:"color,omitempty"`

	// Frame is the name of the reference frame in which
	// positions and orientations are expressed; empty for world.
	Frame string `yaml:"frame,omitempty"`
}

func (b *Base) Common() *Base { return b }

// IsVisible returns the visibility, true by default.
func (b *Base) IsVisible() bool {
	return b.Visible == nil || *b.Visible
}

// SetVisible sets the visibility.
func (b *Base) SetVisible(v bool) {
	b.Visible = &v
}

var kinds = map[Kind]func() Definition{}

// register registers the constructor of a variant.
func register(fun func() Definition) {
	kinds[fun().Kind()] = fun
}

// New returns a new empty definition of the given kind.
func New(kind Kind) (Definition, error) {
	fun, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("definition.New %q: %w", kind, ErrUnknownKind)
	}
	return fun(), nil
}

// Kinds returns all known kinds, sorted.
func Kinds() []Kind {
	ks := make([]Kind, 0, len(kinds))
	for k := range kinds {
		ks = append(ks, k)
	}
	slices.Sort(ks)
	return ks
}

// Unsupported holds an item of a kind that is not known to this package,
// so that it can be carried through and reported.
type Unsupported struct {
	Base `yaml:",inline"`

	Type string `yaml:"-"`

	// Raw is the undecoded item.
	Raw yaml.Node `yaml:"-"`
}

func (u *Unsupported) Kind() Kind { return Kind(u.Type) }

////////////////////////////////////////////////////////////////////////
//  Field

// Field is a scalar that is either a literal value or a reference to a
// named live variable. In files, a number is a literal and a string
// is a variable name. The literal .nan is unavailable.
type Field struct {
	Value float32
	Var   string
}

// Lit returns a literal field.
func Lit(v float32) Field { return Field{Value: v} }

// Ref returns a field referring to the named variable.
func Ref(name string) Field { return Field{Var: name} }

// IsVar returns whether the field refers to a variable.
func (f Field) IsVar() bool { return f.Var != "" }

func (f Field) String() string {
	if f.IsVar() {
		return f.Var
	}
	return fmt.Sprint(f.Value)
}

func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: field must be a number or a variable name", node.Line)
	}
	*f = Field{}
	if node.ShortTag() == "!!str" {
		f.Var = node.Value
		return nil
	}
	var v float64
	if err := node.Decode(&v); err != nil {
		return err
	}
	f.Value = float32(v)
	return nil
}

func (f Field) MarshalYAML() (any, error) {
	if f.IsVar() {
		return f.Var, nil
	}
	return float64(f.Value), nil
}

// Lits returns literal fields for the given values.
func Lits(vs ...float32) []Field {
	fs := make([]Field, len(vs))
	for i, v := range vs {
		fs[i] = Lit(v)
	}
	return fs
}

////////////////////////////////////////////////////////////////////////
//  Vectors

// Vector2 is a 2D point of fields, written as [x, y].
type Vector2 struct {
	X, Y Field
}

// Vec2 returns a literal 2D point.
func Vec2(x, y float32) Vector2 { return Vector2{Lit(x), Lit(y)} }

func (v *Vector2) UnmarshalYAML(node *yaml.Node) error {
	var fs []Field
	if err := node.Decode(&fs); err != nil {
		return err
	}
	if len(fs) != 2 {
		return fmt.Errorf("line %d: 2D vector must have 2 components, not %d", node.Line, len(fs))
	}
	v.X, v.Y = fs[0], fs[1]
	return nil
}

func (v Vector2) MarshalYAML() (any, error) {
	return flowSeq(v.X, v.Y)
}

// Vector3 is a 3D point or vector of fields, written as [x, y, z].
type Vector3 struct {
	X, Y, Z Field
}

// Vec3 returns a literal 3D vector.
func Vec3(x, y, z float32) Vector3 { return Vector3{Lit(x), Lit(y), Lit(z)} }

// Vec3Ptr returns a pointer to a literal 3D vector, for optional fields.
func Vec3Ptr(x, y, z float32) *Vector3 {
	v := Vec3(x, y, z)
	return &v
}

func (v *Vector3) UnmarshalYAML(node *yaml.Node) error {
	var fs []Field
	if err := node.Decode(&fs); err != nil {
		return err
	}
	if len(fs) != 3 {
		return fmt.Errorf("line %d: 3D vector must have 3 components, not %d", node.Line, len(fs))
	}
	v.X, v.Y, v.Z = fs[0], fs[1], fs[2]
	return nil
}

func (v Vector3) MarshalYAML() (any, error) {
	return flowSeq(v.X, v.Y, v.Z)
}

// flowSeq returns a flow style sequence node of the fields.
func flowSeq(fs ...Field) (*yaml.Node, error) {
	nd := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range fs {
		var el yaml.Node
		v, _ := f.MarshalYAML()
		if err := el.Encode(v); err != nil {
			return nil, err
		}
		nd.Content = append(nd.Content, &el)
	}
	return nd, nil
}

// Orientation is either yaw, pitch and roll angles in radians,
// or a quaternion [x, y, z, w].
type Orientation struct {
	Yaw   *Field `yaml:"yaw,omitempty"`
	Pitch *Field `yaml:"pitch,omitempty"`
	Roll  *Field `yaml:"roll,omitempty"`

	Quaternion []Field `yaml:"quaternion,omitempty,flow"`
}

// YawPitchRoll returns a literal orientation from angles in radians.
func YawPitchRoll(yaw, pitch, roll float32) *Orientation {
	y, p, r := Lit(yaw), Lit(pitch), Lit(roll)
	return &Orientation{Yaw: &y, Pitch: &p, Roll: &r}
}
