// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// FramedConnectedPeer is the server-side equivalent of FramedClient,
// bound to a single accepted connection. It is created in the
// AcceptHandler closure that accepts conn and lives exactly as long as
// that closure's captured variables do; there is no separate handle or
// registry entry for it elsewhere.
type FramedConnectedPeer struct {
	framedCore
	id uuid.UUID
}

// ID returns a per-accept-call identifier, stable for the lifetime of
// the peer. It has no wire meaning; it exists so application code and
// Trace hooks can correlate log lines to one peer without keying a map
// by remote address (which is not guaranteed unique across reconnects).
func (p *FramedConnectedPeer) ID() uuid.UUID { return p.id }

// SendMessage sends one framed message to this peer.
func (p *FramedConnectedPeer) SendMessage(b []byte) error { return p.sendMessage(b) }

// SendMessageString is a convenience wrapper around SendMessage.
func (p *FramedConnectedPeer) SendMessageString(s string) error { return p.sendMessageString(s) }

// Close asynchronously closes this peer's connection.
func (p *FramedConnectedPeer) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

// RemoteAddr returns the peer's transport-reported remote address.
func (p *FramedConnectedPeer) RemoteAddr() string { return p.remoteAddr() }

// FramedServer owns a transport Listener. For each accepted peer it
// instantiates a FramedConnectedPeer, hands it to the caller's
// new-connection callback, and feeds it bytes until close.
type FramedServer struct {
	listener       Listener
	maxMessageSize uint64
	trace          *Trace
}

// NewFramedServer constructs a server bound to listener. listener is
// not used until Listen is called.
func NewFramedServer(listener Listener, opts ...Option) *FramedServer {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &FramedServer{
		listener:       listener,
		maxMessageSize: o.MaxMessageSize,
		trace:          o.Trace,
	}
}

// Listen binds addr and accepts connections until Close is called; ctx
// is passed to the Listener, and net/tcp's Listener does not stop
// accepting when it is canceled. A synchronous error is returned if bind/listen
// fails; onNewConn, onReceive, and onClose are invoked asynchronously
// per accepted peer, fully serialized per peer but interleaved across
// peers (ordering is undefined across connections, as in the transport
// contract this layer consumes).
func (s *FramedServer) Listen(ctx context.Context, addr string, onNewConn func(*FramedConnectedPeer), onReceive ReceiveHandler, onClose CloseHandler) error {
	if s.listener == nil {
		return ErrInvalidArgument
	}
	err := s.listener.Listen(ctx, addr, func(conn Conn) (ChunkHandler, CloseHandler) {
		peer := &FramedConnectedPeer{id: uuid.New()}
		peer.conn = conn
		peer.decoder = NewFramedDecoder(s.maxMessageSize)
		peer.trace = s.trace

		if s.trace != nil && s.trace.Connected != nil {
			s.trace.Connected(peer.remoteAddr())
		}
		if onNewConn != nil {
			onNewConn(peer)
		}

		chunkHandler := func(chunk []byte, transportErr error) {
			if transportErr != nil {
				if onReceive != nil {
					onReceive(nil, fmt.Errorf("%w: %w", ErrTransport, transportErr))
				}
				return
			}
			peer.decoder.Ingest(chunk, nil, func(msg *Message, err error) {
				peer.traceReceive(msg, err)
				if onReceive != nil {
					onReceive(msg, err)
				}
			})
		}

		closeHandler := func(closeErr error) {
			if s.trace != nil && s.trace.Closed != nil {
				s.trace.Closed(peer.remoteAddr(), closeErr)
			}
			if onClose != nil {
				onClose(closeErr)
			}
			// peer.conn/peer.decoder are only reachable through this
			// closure; clearing them here lets the peer be collected as
			// soon as the caller drops its own reference.
			peer.conn = nil
			peer.decoder = nil
		}

		return chunkHandler, closeHandler
	})
	if err != nil {
		return errors.Wrap(err, "framing: listen")
	}
	return nil
}

// Close stops accepting new connections. Already-accepted peers are
// unaffected.
func (s *FramedServer) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}
