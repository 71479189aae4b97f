// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package definition

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Version is the version written in new files.
const Version = "1.0"

// VersionConstraint is the constraint the version of read files must satisfy.
const VersionConstraint = "^1.0"

// ErrVersion is returned when a file has a missing or incompatible version.
var ErrVersion = errors.New("definition: incompatible file version")

// File is the top-level content of a definition file.
type File struct {
	Version string `yaml:"version"`
	Root    *Group `yaml:"root"`
}

// NewFile returns a new file of the current [Version] holding the given root group.
func NewFile(root *Group) *File {
	return &File{Version: Version, Root: root}
}

// CheckVersion returns an [ErrVersion] error if the version does not
// satisfy [VersionConstraint].
func CheckVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrVersion, version, err)
	}
	c, err := semver.NewConstraint(VersionConstraint)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrVersion, v, VersionConstraint)
	}
	return nil
}

// Decode reads a file from r and checks its version.
func Decode(r io.Reader) (*File, error) {
	f := &File{}
	if err := yaml.NewDecoder(r).Decode(f); err != nil {
		return nil, fmt.Errorf("definition.Decode: %w", err)
	}
	if err := CheckVersion(f.Version); err != nil {
		return nil, err
	}
	if f.Root == nil {
		f.Root = &Group{}
	}
	return f, nil
}

// Load reads the file at the given path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Encode writes the file to w.
func (f *File) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}

// Save writes the file to the given path.
func (f *File) Save(path string) error {
	var b bytes.Buffer
	if err := f.Encode(&b); err != nil {
		return err
	}
	return os.WriteFile(path, b.Bytes(), 0o644)
}
