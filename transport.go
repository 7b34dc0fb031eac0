// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import "context"

// Conn is a single connection-oriented transport handle: a client
// connection or an accepted server peer. Send enqueues an ordered
// write; transports must serialize concurrent Send calls internally
// (the same contract net.Conn.Write carries).
type Conn interface {
	Send(p []byte) error
	Close() error
	RemoteAddr() string
}

// ChunkHandler is the raw byte-chunk callback a transport invokes as
// data arrives. err, when non-nil, is a transport-level error (EOF,
// reset, timeout); chunk is not meaningful in that case. Chunks are
// delivered in byte order, one at a time, serialized per connection.
type ChunkHandler func(chunk []byte, err error)

// CloseHandler is invoked exactly once per connection, after the
// transport has fully released it.
type CloseHandler func(err error)

// ConnectHandler reports the outcome of a Dialer.Dial-backed connect
// attempt. FramedClient.Connect passes the client itself as c, on
// failure as well as on success.
type ConnectHandler func(c Conn, err error)

// Dialer originates client connections. Implementations (net/tcp's
// Dialer) dial synchronously and then drive onReceive/onClose from a
// reader goroutine they own for the lifetime of the connection. The
// boundary-preserving net/udp and net/ws packages do not implement
// Dialer; they expose their own Dial functions returning an Endpoint.
type Dialer interface {
	Dial(ctx context.Context, addr string, onReceive ChunkHandler, onClose CloseHandler) (Conn, error)
}

// AcceptHandler is invoked once per accepted connection, synchronously,
// before any data has been read from it. It returns the chunk and
// close handlers the transport's per-peer reader goroutine should
// invoke for that connection's lifetime. Whatever per-connection state
// the caller needs lives in the closure's captured variables; nothing
// else holds a reference to it.
type AcceptHandler func(c Conn) (onReceive ChunkHandler, onClose CloseHandler)

// Listener accepts inbound connections. Listen binds synchronously,
// returning an error immediately on failure; once it returns nil,
// AcceptHandler fires asynchronously for each accepted connection.
type Listener interface {
	Listen(ctx context.Context, addr string, onAccept AcceptHandler) error
	Close() error
}
