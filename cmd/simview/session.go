// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robotlab/simview/base/errors"
	"github.com/robotlab/simview/base/logx"
	"github.com/robotlab/simview/config"
	"github.com/robotlab/simview/definition"
	"github.com/robotlab/simview/graphic"
	"github.com/robotlab/simview/live"
	"github.com/robotlab/simview/scheduler"
)

// session is a scene with its variables, factory and scheduler.
type session struct {
	cfg       *config.Config
	scene     *graphic.Scene
	registry  *live.Registry
	factory   *graphic.Factory
	scheduler *scheduler.Scheduler
	prom      *prometheus.Registry
}

func newSession(cfg *config.Config) *session {
	s := &session{cfg: cfg, scene: graphic.NewScene(), registry: live.NewRegistry(), prom: prometheus.NewRegistry()}
	s.scene.Separator = cfg.Scene.Separator
	s.factory = graphic.NewFactory(s.scene, s.registry)
	s.scheduler = scheduler.New(s.scene, cfg.Scheduler.Workers, scheduler.NewMetrics(s.prom))
	return s
}

// setVars sets variables of the session from name=value pairs.
func (s *session) setVars(vals map[string]string) error {
	for name, str := range vals {
		v, err := strconv.ParseFloat(str, 32)
		if err != nil {
			return fmt.Errorf("variable %s: %w", name, err)
		}
		s.registry.Set(name, float32(v))
	}
	return nil
}

// load replaces the contents of the session root with the items of the
// definition file. Items that fail are logged and skipped.
func (s *session) load(path string) (int, error) {
	f, err := definition.Load(path)
	if err != nil {
		return 0, err
	}
	s.scene.SessionRoot.Clear()
	n, err := s.factory.FromFile(s.scene.SessionRoot, f)
	if err != nil {
		logx.Logger().Warn("some items were skipped", "file", path, "err", err)
	}
	logx.Logger().Info("loaded definitions", "file", path, "items", n)
	return n, nil
}

// run runs the passes at the configured rates until the context is done.
func (s *session) run(ctx context.Context) error {
	err := s.scheduler.RunAll(ctx, scheduler.Interval(s.cfg.Scheduler.TickRate), scheduler.Interval(s.cfg.Scheduler.FrameRate))
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// serveMetrics serves the metrics of the session on addr until
// the context is done. An empty addr does nothing.
func (s *session) serveMetrics(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.prom, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		errors.Log(srv.Shutdown(sctx))
	}()
	logx.Logger().Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
