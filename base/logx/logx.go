// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx holds the process-wide structured logger used by
// the scene graph, the schedulers and the live data feed, along with
// the user-selected verbosity level.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
)

// UserLevel is the verbosity level that the user has selected for
// what logging messages should be shown. Messages at levels at or
// above this level will be shown. The default is [slog.LevelWarn].
var UserLevel = new(slog.LevelVar)

func init() {
	UserLevel.Set(slog.LevelWarn)
	loggerPtr.Store(newNopLogger())
}

// LevelFromFlags returns the [slog.Level] object corresponding to the given
// user flag options. The flags correspond to the following values:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
//
// The flags are evaluated in that order, so, for example, if both
// vv and q are specified, it will still return [slog.LevelDebug].
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// LevelFromString parses a level name ("debug", "info", "warn", "error"),
// case insensitively.
func LevelFromString(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logx: unknown level %q", s)
}

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger, accessed atomically so that
// SetLogger can be called concurrently with logging from the passes.
var loggerPtr atomic.Pointer[slog.Logger]

// Logger returns the current logger. By default it discards everything
// until [SetLogger] or [Init] is called.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// SetLogger sets the logger. Passing nil restores the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Init installs a text logger writing to w, filtered by [UserLevel],
// and returns it.
func Init(w io.Writer, level slog.Level) *slog.Logger {
	UserLevel.Set(level)
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: UserLevel}))
	SetLogger(l)
	return l
}
