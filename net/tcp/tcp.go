// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tcp implements the framing.Dialer and framing.Listener
// contract over net.TCPConn, the reference transport the framing
// core is built and validated against: a binary stream that does not
// preserve message boundaries, matching the teacher's BinaryStream
// protocol classification for this transport kind.
package tcp

import (
	"context"
	"net"
	"sync"

	"github.com/pkg/errors"

	"github.com/tarmio/framing"
)

// readBufferSize is the chunk size handed to framing.ChunkHandler on
// each successful read. It bounds per-read allocation, not message
// size: FramedDecoder reassembles messages across arbitrarily many
// chunks regardless of this value.
const readBufferSize = 32 * 1024

// conn adapts *net.TCPConn to framing.Conn. Send is synchronized with
// a mutex so that a single Send call's Write is never torn by a
// concurrent one; pairing a size-prefix Send with its payload Send
// without interleaving against another goroutine's pair is the
// caller's responsibility (framedCore.sendMessage holds its own lock
// across both calls for exactly this reason).
type conn struct {
	c  *net.TCPConn
	mu sync.Mutex
}

func (c *conn) Send(p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.c.Write(p)
	if err != nil {
		return errors.Wrap(err, "tcp: write")
	}
	return nil
}

func (c *conn) Close() error { return c.c.Close() }

func (c *conn) RemoteAddr() string { return c.c.RemoteAddr().String() }

func readLoop(c *net.TCPConn, onReceive framing.ChunkHandler, onClose framing.CloseHandler) {
	buf := make([]byte, readBufferSize)
	for {
		n, err := c.Read(buf)
		if n > 0 {
			onReceive(buf[:n], nil)
		}
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				onClose(nil)
				return
			}
			onReceive(nil, errors.Wrap(err, "tcp: read"))
			onClose(err)
			return
		}
	}
}

// Dialer originates outbound TCP connections.
type Dialer struct {
	// KeepAlive, if true, enables TCP keep-alive on the dialed
	// connection via SetKeepAlive.
	KeepAlive bool
}

// Dial connects to addr (host:port) and starts a reader goroutine that
// feeds onReceive/onClose for the lifetime of the connection.
func (d *Dialer) Dial(ctx context.Context, addr string, onReceive framing.ChunkHandler, onClose framing.CloseHandler) (framing.Conn, error) {
	raddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "tcp: resolve")
	}
	nd := net.Dialer{}
	rawConn, err := nd.DialContext(ctx, "tcp", raddr.String())
	if err != nil {
		return nil, errors.Wrap(err, "tcp: dial")
	}
	tc := rawConn.(*net.TCPConn)
	if d.KeepAlive {
		_ = tc.SetKeepAlive(true)
	}
	c := &conn{c: tc}
	go readLoop(tc, onReceive, onClose)
	return c, nil
}

// Listener accepts inbound TCP connections.
type Listener struct {
	ln *net.TCPListener
}

// Listen binds addr and accepts connections until Close is called.
// onAccept fires once per accepted connection, synchronously, on the
// accept goroutine, before that connection's own reader goroutine
// starts.
func (l *Listener) Listen(ctx context.Context, addr string, onAccept framing.AcceptHandler) error {
	laddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "tcp: resolve")
	}
	ln, err := net.ListenTCP("tcp", laddr)
	if err != nil {
		return errors.Wrap(err, "tcp: listen")
	}
	l.ln = ln

	go func() {
		for {
			tc, err := ln.AcceptTCP()
			if err != nil {
				return
			}
			c := &conn{c: tc}
			onReceive, onClose := onAccept(c)
			go readLoop(tc, onReceive, onClose)
		}
	}()
	return nil
}

// Close stops accepting new connections.
func (l *Listener) Close() error {
	if l.ln == nil {
		return nil
	}
	return l.ln.Close()
}
