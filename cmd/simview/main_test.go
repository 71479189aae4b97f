// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotlab/simview/config"
	"github.com/robotlab/simview/definition"
)

const defs = `version: "1.0"
root:
  name: session
  groups:
    - name: arm
      items:
        - type: Cone3D
          name: tip
          position: [1, 0, 0]
          height: 0.1
          radius: r
  items:
    - type: Polygon2D
      name: square
      color: blue
      vertices: [[-1, -1], [1, -1], [1, 1], [-1, 1]]
      filled: true
      strokeWidth: 0.01
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "simview.toml")
	require.NoError(t, config.Defaults().Save(cfg))
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(defs), 0o644))
	png := filepath.Join(dir, "overlay.png")
	dump := filepath.Join(dir, "dump.yaml")

	out, err := execute(t, "render", "--defs", path, "--ticks", "3", "--set", "r=0.02", "--out", png, "--dump", dump, "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, out, "items: 2, drawn: 2, built: 2, cache hits: 4")
	assert.Contains(t, out, "overlay: 2 triangles")
	assert.FileExists(t, png)

	f, err := definition.Load(dump)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Root.NumItems())
}

func TestRenderUnbound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(defs), 0o644))
	out, err := execute(t, "render", "--defs", path, "--log-level", "error")
	require.NoError(t, err)
	// the cone radius is unset, so only the square is drawn
	assert.Contains(t, out, "drawn: 1, built: 1")
}

func TestRenderErrors(t *testing.T) {
	_, err := execute(t, "render")
	assert.Error(t, err)
	_, err = execute(t, "render", "--defs", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = execute(t, "render", "--defs", "x", "--log-level", "loud")
	assert.Error(t, err)
}

func TestKinds(t *testing.T) {
	out, err := execute(t, "kinds")
	require.NoError(t, err)
	kinds := strings.Fields(out)
	assert.Len(t, kinds, len(definition.Kinds()))
	assert.Contains(t, kinds, "Cone3D")
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(defs), 0o644))
	s := newSession(config.Defaults())
	n, err := s.load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.watch(ctx, path) }()

	more := defs + `    - type: Point2D
      name: dot
      position: [0, 0]
      size: 0.1
`
	assert.Eventually(t, func() bool {
		// rewritten on every poll, in case the watcher was not yet started
		os.WriteFile(path, []byte(more), 0o644)
		return s.scene.SessionRoot.FindByPath("dot") != nil
	}, 5*time.Second, 300*time.Millisecond)
	assert.NotNil(t, s.scene.SessionRoot.FindByPath("arm:tip"))

	cancel()
	assert.NoError(t, <-done)
}

func TestNewFeed(t *testing.T) {
	cfg := config.Defaults()
	cfg.Feed.URL = "ws://example.com/feed"
	cfg.Feed.Invalidate = true
	cfg.Feed.ReconnectMin, cfg.Feed.ReconnectMax = 0.25, 4
	fd := newSession(cfg).newFeed()
	assert.Equal(t, "ws://example.com/feed", fd.URL)
	assert.True(t, fd.InvalidateOnDisconnect)
	assert.Equal(t, 250*time.Millisecond, fd.InitialInterval)
	assert.Equal(t, 4*time.Second, fd.MaxInterval)
}
