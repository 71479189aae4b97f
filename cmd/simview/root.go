// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/robotlab/simview/base/logx"
	"github.com/robotlab/simview/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "simview",
		Short:         "Build and run scenes of live graphic items",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", config.DefaultPath, "configuration file")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error (default from the configuration)")
	root.AddCommand(newRenderCmd(), newWatchCmd(), newFeedCmd(), newKindsCmd())
	return root
}

// loadConfig reads the configuration named by the flags
// and installs the logger at the configured level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if lv, _ := cmd.Flags().GetString("log-level"); lv != "" {
		cfg.Log.Level = lv
	}
	level, err := logx.LevelFromString(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logx.Init(cmd.ErrOrStderr(), level)
	return cfg, nil
}
