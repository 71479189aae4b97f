// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package websocket provides a thin WebSocket client over
// gorilla/websocket, delivering messages through callbacks.
package websocket

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/robotlab/simview/base/errors"
	"github.com/robotlab/simview/base/logx"
)

// MessageTypes are the types of WebSocket messages.
type MessageTypes int

const (
	// TextMessage is a UTF-8 encoded text message, such as JSON.
	TextMessage MessageTypes = websocket.TextMessage

	// BinaryMessage is a binary data message.
	BinaryMessage MessageTypes = websocket.BinaryMessage
)

// Client represents a WebSocket client connection.
// You can use [Connect] to create a new Client.
type Client struct {

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// done is a channel that is closed when the connection is closed.
	done chan struct{}

	doneOnce sync.Once
	writeMu  sync.Mutex
}

// Connect connects to a WebSocket server and returns a [Client].
// The context bounds the opening handshake only.
func Connect(ctx context.Context, url string, header http.Header) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, done: make(chan struct{})}, nil
}

// OnMessage sets a callback function to be called when a message is received.
// The callback runs on the reading goroutine of the client.
// This function can only be called once.
func (c *Client) OnMessage(f func(typ MessageTypes, msg []byte)) {
	go func() {
		defer c.closeDone()
		for {
			typ, msg, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logx.Logger().Debug("websocket closed", "err", err)
				} else {
					errors.Log(err, "op", "websocket read")
				}
				return
			}
			f(MessageTypes(typ), msg)
		}
	}()
}

func (c *Client) closeDone() {
	c.doneOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Send sends a message to the WebSocket server with the given type and message.
func (c *Client) Send(typ MessageTypes, msg []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(int(typ), msg)
}

// Close cleanly closes the WebSocket connection.
// It does not directly trigger [Client.OnClose], but once the server
// acknowledges the close, [Client.OnMessage] will trigger it.
func (c *Client) Close() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Abort closes the underlying connection without a closing handshake.
func (c *Client) Abort() {
	c.closeDone()
}

// Done returns a channel that is closed when the connection is closed.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// OnClose sets a callback function to be called when the connection is closed.
// This function can only be called once.
func (c *Client) OnClose(f func()) {
	go func() {
		<-c.done
		f()
	}()
}
