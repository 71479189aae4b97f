// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robotlab/simview/base/logx"
)

// reloadDelay is how long file events settle before a reload.
const reloadDelay = 200 * time.Millisecond

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run passes on a definition file, reloading it when it changes",
		RunE:  runWatch,
	}
	cmd.Flags().String("defs", "", "definition file (required)")
	cmd.Flags().String("metrics-addr", "", "address to serve Prometheus metrics on, such as :9090")
	cmd.MarkFlagRequired("defs")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defs, _ := cmd.Flags().GetString("defs")
	addr, _ := cmd.Flags().GetString("metrics-addr")

	s := newSession(cfg)
	if _, err := s.load(defs); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return s.watch(ctx, defs) })
	eg.Go(func() error { return s.run(ctx) })
	eg.Go(func() error { return s.serveMetrics(ctx, addr) })
	return eg.Wait()
}

// watch reloads the definition file whenever it changes,
// until the context is done.
func (s *session) watch(ctx context.Context, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer w.Close()
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	// editors often replace files, so the directory is watched
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			reload = time.After(reloadDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logx.Logger().Warn("file watcher", "err", err)
		case <-reload:
			reload = nil
			if _, err := s.load(path); err != nil {
				logx.Logger().Error("reloading definitions", "file", path, "err", err)
			}
		}
	}
}
