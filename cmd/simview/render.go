// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robotlab/simview/definition"
	"github.com/robotlab/simview/graphic"
	"github.com/robotlab/simview/overlay"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run passes on a definition file headless and draw the 2D overlay",
		RunE:  runRender,
	}
	cmd.Flags().String("defs", "", "definition file (required)")
	cmd.Flags().Int("ticks", 1, "number of background and render passes")
	cmd.Flags().String("out", "", "PNG file for the 2D overlay")
	cmd.Flags().String("dump", "", "file to save the definitions of the built scene to")
	cmd.Flags().StringToString("set", nil, "initial values of variables, as name=value")
	cmd.MarkFlagRequired("defs")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defs, _ := cmd.Flags().GetString("defs")
	ticks, _ := cmd.Flags().GetInt("ticks")
	out, _ := cmd.Flags().GetString("out")
	dump, _ := cmd.Flags().GetString("dump")
	set, _ := cmd.Flags().GetStringToString("set")

	s := newSession(cfg)
	if err := s.setVars(set); err != nil {
		return err
	}
	n, err := s.load(defs)
	if err != nil {
		return err
	}
	var total graphic.Counts
	for range max(ticks, 1) {
		cnt, err := s.scheduler.ComputeBackground(context.Background())
		if err != nil {
			return err
		}
		total.Add(cnt)
		s.scheduler.Render()
	}
	drs := s.scene.Drawables()
	fmt.Fprintf(cmd.OutOrStdout(), "items: %d, drawn: %d, built: %d, cache hits: %d, cleared: %d, failed: %d\n",
		n, len(drs), total[graphic.OutcomeBuilt], total[graphic.OutcomeCacheHit], total[graphic.OutcomeCleared], total[graphic.OutcomeFailed])

	if out != "" {
		cv := overlay.New(cfg.Overlay.Width, cfg.Overlay.Height, cfg.Overlay.PixelsPerMeter)
		defer cv.Close()
		tris, err := cv.Draw(drs)
		if err != nil {
			return err
		}
		if err := cv.SavePNG(out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "overlay: %d triangles written to %s\n", tris, out)
	}
	if dump != "" {
		if err := definition.NewFile(s.scene.SessionRoot.ToDefinition()).Save(dump); err != nil {
			return err
		}
	}
	return nil
}
