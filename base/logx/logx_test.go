// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, true, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestLevelFromString(t *testing.T) {
	lv, err := LevelFromString("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lv)
	lv, err = LevelFromString("warning")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lv)
	_, err = LevelFromString("loud")
	assert.Error(t, err)
}

func TestInitAndSetLogger(t *testing.T) {
	defer SetLogger(nil)
	var buf bytes.Buffer
	Init(&buf, slog.LevelWarn)
	Logger().Info("hidden")
	Logger().Warn("shown", "item", "tip")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "item=tip")

	SetLogger(nil)
	buf.Reset()
	Logger().Error("discarded")
	assert.Empty(t, buf.String())
}
