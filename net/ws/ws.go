// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ws implements a boundary-preserving WebSocket endpoint on
// top of gorilla/websocket. A WebSocket text/binary frame already
// carries its own boundary, so Endpoint never runs data through a
// framing.FramedDecoder — the same pass-through rationale as net/udp.
package ws

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/tarmio/framing"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Endpoint wraps one WebSocket connection, client or server side.
type Endpoint struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Dial opens a client WebSocket connection to url ("ws://..." or
// "wss://...").
func Dial(ctx context.Context, url string) (*Endpoint, error) {
	c, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "ws: dial")
	}
	return &Endpoint{conn: c}, nil
}

// Accept upgrades an inbound HTTP request to a server-side WebSocket
// connection. Wire this as an http.HandlerFunc's body.
func Accept(w http.ResponseWriter, r *http.Request) (*Endpoint, error) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, errors.Wrap(err, "ws: upgrade")
	}
	return &Endpoint{conn: c}, nil
}

// Send writes p as one binary WebSocket message.
func (e *Endpoint) Send(p []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return errors.Wrap(err, "ws: write")
	}
	return nil
}

// Serve reads messages until the connection closes, delivering each
// frame as a Message with no decode step.
func (e *Endpoint) Serve(onReceive framing.ReceiveHandler, onClose framing.CloseHandler) {
	for {
		_, data, err := e.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				onClose(nil)
				return
			}
			onClose(errors.Wrap(err, "ws: read"))
			return
		}
		onReceive(framing.NewMessage(data), nil)
	}
}

// Close sends a close frame and releases the underlying connection.
func (e *Endpoint) Close() error {
	e.mu.Lock()
	_ = e.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	e.mu.Unlock()
	return e.conn.Close()
}

// RemoteAddr returns the peer's network address.
func (e *Endpoint) RemoteAddr() string { return e.conn.RemoteAddr().String() }
