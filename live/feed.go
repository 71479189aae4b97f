// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package live

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"

	"github.com/robotlab/simview/base/errors"
	"github.com/robotlab/simview/base/logx"
	"github.com/robotlab/simview/base/websocket"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Frame is one telemetry message of a [Feed]: the values of some variables
// at a point in time. A null value makes the variable unavailable.
type Frame struct {
	Time   float64             `json:"time"`
	Values map[string]*float64 `json:"values"`
}

// Feed keeps the variables of a [Registry] up to date from a WebSocket
// telemetry stream of JSON [Frame]s, reconnecting with exponential backoff.
type Feed struct {
	// URL is the WebSocket URL of the telemetry server.
	URL string

	// Registry receives the values.
	Registry *Registry

	// InvalidateOnDisconnect sets all variables to NaN
	// when the connection is lost.
	InvalidateOnDisconnect bool

	// InitialInterval and MaxInterval bound the reconnect delays.
	InitialInterval time.Duration
	MaxInterval     time.Duration

	frames   atomic.Int64
	lastTime atomic.Uint64
}

// NewFeed returns a new feed from the given URL into the given registry.
func NewFeed(url string, reg *Registry) *Feed {
	return &Feed{URL: url, Registry: reg, InitialInterval: 500 * time.Millisecond, MaxInterval: 10 * time.Second}
}

// Frames returns the number of frames applied so far.
func (fd *Feed) Frames() int64 {
	return fd.frames.Load()
}

// LastTime returns the time of the last frame applied.
func (fd *Feed) LastTime() float64 {
	return math.Float64frombits(fd.lastTime.Load())
}

// Apply decodes a JSON [Frame] and sets the registry variables from it.
func (fd *Feed) Apply(msg []byte) error {
	var fr Frame
	if err := json.Unmarshal(msg, &fr); err != nil {
		return fmt.Errorf("live.Feed: decoding frame: %w", err)
	}
	for name, v := range fr.Values {
		if v == nil {
			fd.Registry.Set(name, float32(math.NaN()))
			continue
		}
		fd.Registry.Set(name, float32(*v))
	}
	fd.lastTime.Store(math.Float64bits(fr.Time))
	fd.frames.Add(1)
	return nil
}

// Run connects to the server and applies the frames it sends until the
// context is done, reconnecting whenever the connection is lost.
// It returns the context error.
func (fd *Feed) Run(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = fd.InitialInterval
	bo.MaxInterval = fd.MaxInterval
	bo.MaxElapsedTime = 0
	log := logx.Logger().With("url", fd.URL)

	op := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		cl, err := websocket.Connect(ctx, fd.URL, nil)
		if err != nil {
			return err
		}
		log.Info("feed connected")
		bo.Reset()
		cl.OnMessage(func(typ websocket.MessageTypes, msg []byte) {
			if typ != websocket.TextMessage {
				return
			}
			errors.Log(fd.Apply(msg), "url", fd.URL)
		})
		select {
		case <-ctx.Done():
			cl.Close()
			cl.Abort()
			return backoff.Permanent(ctx.Err())
		case <-cl.Done():
			if fd.InvalidateOnDisconnect {
				fd.Registry.Invalidate()
			}
			return fmt.Errorf("live.Feed: connection to %s lost", fd.URL)
		}
	}
	notify := func(err error, d time.Duration) {
		log.Warn("feed disconnected", "err", err, "retry", d)
	}
	err := backoff.RetryNotify(op, backoff.WithContext(bo, ctx), notify)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
