// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robotlab/simview/base/errors"
	"github.com/robotlab/simview/config"
	"github.com/robotlab/simview/live"
)

func newFeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Run passes on a definition file with variables from a live telemetry feed",
		RunE:  runFeed,
	}
	cmd.Flags().String("defs", "", "definition file (required)")
	cmd.Flags().String("url", "", "WebSocket URL of the feed (default from the configuration)")
	cmd.Flags().String("metrics-addr", "", "address to serve Prometheus metrics on, such as :9090")
	cmd.MarkFlagRequired("defs")
	return cmd
}

func runFeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defs, _ := cmd.Flags().GetString("defs")
	addr, _ := cmd.Flags().GetString("metrics-addr")
	if url, _ := cmd.Flags().GetString("url"); url != "" {
		cfg.Feed.URL = url
	}

	s := newSession(cfg)
	if _, err := s.load(defs); err != nil {
		return err
	}
	fd := s.newFeed()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := fd.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	eg.Go(func() error { return s.run(ctx) })
	eg.Go(func() error { return s.serveMetrics(ctx, addr) })
	return eg.Wait()
}

// newFeed returns a feed into the variables of the session,
// with the configured URL and reconnect delays.
func (s *session) newFeed() *live.Feed {
	fd := live.NewFeed(s.cfg.Feed.URL, s.registry)
	fd.InvalidateOnDisconnect = s.cfg.Feed.Invalidate
	fd.InitialInterval = config.Seconds(s.cfg.Feed.ReconnectMin)
	fd.MaxInterval = config.Seconds(s.cfg.Feed.ReconnectMax)
	return fd
}
