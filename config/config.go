// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the configuration of the simview tool,
// read from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
)

// DefaultPath is the default location of the configuration file.
const DefaultPath = "~/.config/simview/simview.toml"

// Config is the configuration of the simview tool.
// Sections missing from the file keep their default values.
type Config struct {
	Scene     Scene     `toml:"scene"`
	Scheduler Scheduler `toml:"scheduler"`
	Feed      Feed      `toml:"feed"`
	Log       Log       `toml:"log"`
	Overlay   Overlay   `toml:"overlay"`
}

type Scene struct {
	// Separator joins group names in paths.
	Separator string `toml:"separator"`
}

type Scheduler struct {
	// Workers is the number of parallel background workers,
	// 0 for the number of CPUs.
	Workers int `toml:"workers"`

	// TickRate is the rate of background passes in Hz.
	TickRate float64 `toml:"tick_rate"`

	// FrameRate is the rate of render passes in Hz.
	FrameRate float64 `toml:"frame_rate"`
}

type Feed struct {
	// URL is the WebSocket URL of the telemetry server.
	URL string `toml:"url"`

	// Invalidate makes all variables unavailable when the connection is lost.
	Invalidate bool `toml:"invalidate"`

	// ReconnectMin and ReconnectMax bound the reconnect delays, in seconds.
	ReconnectMin float64 `toml:"reconnect_min"`
	ReconnectMax float64 `toml:"reconnect_max"`
}

type Log struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
}

type Overlay struct {
	Width          int     `toml:"width"`
	Height         int     `toml:"height"`
	PixelsPerMeter float64 `toml:"pixels_per_meter"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Scene:     Scene{Separator: ":"},
		Scheduler: Scheduler{TickRate: 30, FrameRate: 60},
		Feed:      Feed{URL: "ws://localhost:8765/telemetry", ReconnectMin: 0.5, ReconnectMax: 10},
		Log:       Log{Level: "info"},
		Overlay:   Overlay{Width: 800, Height: 600, PixelsPerMeter: 100},
	}
}

// Seconds converts a number of seconds to a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Validate returns an error for values out of range.
func (c *Config) Validate() error {
	var errs []error
	if c.Scene.Separator == "" {
		errs = append(errs, errors.New("scene.separator must not be empty"))
	}
	if c.Scheduler.Workers < 0 {
		errs = append(errs, fmt.Errorf("scheduler.workers %d must not be negative", c.Scheduler.Workers))
	}
	if c.Scheduler.TickRate <= 0 || c.Scheduler.FrameRate <= 0 {
		errs = append(errs, errors.New("scheduler rates must be positive"))
	}
	if c.Feed.ReconnectMin <= 0 || c.Feed.ReconnectMax < c.Feed.ReconnectMin {
		errs = append(errs, errors.New("feed reconnect delays must be positive and ordered"))
	}
	if c.Overlay.Width <= 0 || c.Overlay.Height <= 0 || c.Overlay.PixelsPerMeter <= 0 {
		errs = append(errs, errors.New("overlay size and scale must be positive"))
	}
	return errors.Join(errs...)
}

// Load reads the configuration file at path, where ~ is the home directory,
// over the defaults. A missing file yields the defaults. Unknown keys
// are errors.
func Load(path string) (*Config, error) {
	c := Defaults()
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
