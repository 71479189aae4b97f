// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keylist provides a slice of values with unique keys,
// kept in insertion order and indexed for lookup by key.
package keylist

import (
	"fmt"
	"slices"
)

// List is an insertion ordered list of values with unique keys.
// The zero value is an empty list.
type List[K comparable, V any] struct {
	// Values and Keys are parallel slices, in insertion order.
	// They must not be modified directly.
	Values []V
	Keys   []K

	index map[K]int
}

// Reset removes all the values.
func (kl *List[K, V]) Reset() {
	kl.Values, kl.Keys, kl.index = nil, nil, nil
}

// Add appends val under key. It fails if the key is present.
func (kl *List[K, V]) Add(key K, val V) error {
	if kl.Has(key) {
		return fmt.Errorf("keylist: key %v is already present", key)
	}
	if kl.index == nil {
		kl.index = map[K]int{}
	}
	kl.index[key] = len(kl.Values)
	kl.Keys = append(kl.Keys, key)
	kl.Values = append(kl.Values, val)
	return nil
}

// AtTry returns the value of key, and whether it is present.
func (kl *List[K, V]) AtTry(key K) (V, bool) {
	if i, ok := kl.index[key]; ok {
		return kl.Values[i], true
	}
	var zero V
	return zero, false
}

func (kl *List[K, V]) Has(key K) bool {
	_, ok := kl.index[key]
	return ok
}

// IndexOf returns the position of key, or -1.
func (kl *List[K, V]) IndexOf(key K) int {
	if i, ok := kl.index[key]; ok {
		return i
	}
	return -1
}

func (kl *List[K, V]) Len() int { return len(kl.Values) }

// Delete removes key and its value, keeping the order of the others.
// It reports whether the key was present.
func (kl *List[K, V]) Delete(key K) bool {
	i, ok := kl.index[key]
	if !ok {
		return false
	}
	kl.Keys = slices.Delete(kl.Keys, i, i+1)
	kl.Values = slices.Delete(kl.Values, i, i+1)
	delete(kl.index, key)
	for j := i; j < len(kl.Keys); j++ {
		kl.index[kl.Keys[j]] = j
	}
	return true
}
