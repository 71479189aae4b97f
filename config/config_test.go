// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Defaults()
	require.NoError(t, c.Validate())
	assert.Equal(t, ":", c.Scene.Separator)
	assert.Equal(t, 500*time.Millisecond, Seconds(c.Feed.ReconnectMin))
}

func TestLoadMissing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simview.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[scene]
separator = "/"

[scheduler]
workers = 4
tick_rate = 10.0

[log]
level = "debug"
`), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/", c.Scene.Separator)
	assert.Equal(t, 4, c.Scheduler.Workers)
	assert.Equal(t, 10.0, c.Scheduler.TickRate)
	assert.Equal(t, 60.0, c.Scheduler.FrameRate)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 800, c.Overlay.Width)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("[scene]\nseperator = \"/\"\n"), 0o644))
	_, err := Load(unknown)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[scheduler]\nworkers = -1\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorContains(t, err, "workers")
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "simview.toml")
	c := Defaults()
	c.Overlay.Width = 1024
	require.NoError(t, c.Save(path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}
