// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package definition

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// Group is the definition of a group of items and sub-groups.
type Group struct {
	Name string `yaml:"name"`

	// Visible is nil for the default, which is visible.
	Visible *bool `yaml:"visible,omitempty"`

	Groups []*Group `yaml:"groups,omitempty"`
	Items  []Item   `yaml:"items,omitempty"`
}

// NewGroup returns a new group with the given name and items.
func NewGroup(name string, items ...Definition) *Group {
	g := &Group{Name: name}
	for _, it := range items {
		g.Add(it)
	}
	return g
}

// Add adds an item definition to the group.
func (g *Group) Add(d Definition) {
	g.Items = append(g.Items, Item{d})
}

// AddGroup adds a sub-group definition and returns it.
func (g *Group) AddGroup(name string) *Group {
	sg := &Group{Name: name}
	g.Groups = append(g.Groups, sg)
	return sg
}

// IsVisible returns the visibility, true by default.
func (g *Group) IsVisible() bool {
	return g.Visible == nil || *g.Visible
}

// NumItems returns the number of items in the group and all its sub-groups.
func (g *Group) NumItems() int {
	n := len(g.Items)
	for _, sg := range g.Groups {
		n += sg.NumItems()
	}
	return n
}

// Walk calls fun for each item of the group and its sub-groups depth-first,
// with the path of group names leading to it.
func (g *Group) Walk(fun func(path []string, d Definition)) {
	g.walk(nil, fun)
}

func (g *Group) walk(path []string, fun func(path []string, d Definition)) {
	path = append(path, g.Name)
	for _, it := range g.Items {
		fun(path, it.Definition)
	}
	for _, sg := range g.Groups {
		sg.walk(path, fun)
	}
}

// Item holds one item definition of any kind. In files it is a mapping
// with a type key naming the kind, followed by the fields of the kind.
type Item struct {
	Definition
}

func (it *Item) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: item must be a mapping", node.Line)
	}
	var head struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}
	if head.Type == "" {
		return fmt.Errorf("line %d: item has no type", node.Line)
	}
	d, err := New(Kind(head.Type))
	if errors.Is(err, ErrUnknownKind) {
		u := &Unsupported{Type: head.Type, Raw: *node}
		if err := node.Decode(&u.Base); err != nil {
			return err
		}
		it.Definition = u
		return nil
	}
	if err := node.Decode(d); err != nil {
		return fmt.Errorf("%s: %w", head.Type, err)
	}
	it.Definition = d
	return nil
}

func (it Item) MarshalYAML() (any, error) {
	if u, ok := it.Definition.(*Unsupported); ok {
		return &u.Raw, nil
	}
	var nd yaml.Node
	if err := nd.Encode(it.Definition); err != nil {
		return nil, err
	}
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "type"}
	val := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(it.Kind())}
	nd.Content = append([]*yaml.Node{key, val}, nd.Content...)
	return &nd, nil
}

// Clone returns a deep copy of the definition. Variants defined outside
// this package are copied through their concrete type. Definitions that
// are not non-nil pointers are returned as is.
func Clone(d Definition) Definition {
	v := reflect.ValueOf(d)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return d
	}
	cp := reflect.New(v.Type().Elem())
	if err := copier.CopyWithOption(cp.Interface(), d, copier.Option{DeepCopy: true}); err != nil {
		cp.Elem().Set(v.Elem())
	}
	return cp.Interface().(Definition)
}

// CloneGroup returns a deep copy of the group and all its contents.
func CloneGroup(g *Group) *Group {
	cp := &Group{Name: g.Name}
	if g.Visible != nil {
		v := *g.Visible
		cp.Visible = &v
	}
	for _, sg := range g.Groups {
		cp.Groups = append(cp.Groups, CloneGroup(sg))
	}
	for _, it := range g.Items {
		cp.Items = append(cp.Items, Item{Clone(it.Definition)})
	}
	return cp
}
