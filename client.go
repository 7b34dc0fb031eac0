// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Client connection states, advanced only by transport callbacks. The
// framing layer adds no states of its own; it resets its decoder on
// the transition into StateClosed.
const (
	StateIdle int32 = iota
	StateConnecting
	StateConnected
	StateClosing
	StateClosed
)

// framedCore is the shared implementation behind FramedClient and
// FramedConnectedPeer: one transport Conn, one FramedDecoder, and the
// send path that pairs a VarSize prefix with a payload write.
// Embedding it by value gives both owning types the same send/receive
// plumbing without any shared base type or downcasting.
type framedCore struct {
	conn    Conn
	decoder *FramedDecoder
	trace   *Trace
	sendMu  sync.Mutex
}

func (f *framedCore) remoteAddr() string {
	if f.conn == nil {
		return ""
	}
	return f.conn.RemoteAddr()
}

// traceReceive reports one FramedDecoder callback outcome through
// trace, if set, before the caller forwards it to its own receive
// handler: a successful decode as MessageReceived, an *OversizeError
// as Oversize. Other errors (ErrInvalidEncoding, transport errors) are
// not trace events; the Closed hook covers connection teardown.
func (f *framedCore) traceReceive(msg *Message, err error) {
	if f.trace == nil {
		return
	}
	switch {
	case err == nil && f.trace.MessageReceived != nil:
		f.trace.MessageReceived(f.remoteAddr(), msg.Size())
	case err != nil:
		var oe *OversizeError
		if errors.As(err, &oe) && f.trace.Oversize != nil {
			f.trace.Oversize(f.remoteAddr(), oe.DeclaredSize)
		}
	}
}

// sendMessage writes VarSize(len(p)) followed by p as two ordered
// transport sends, holding sendMu across both so that two goroutines
// calling SendMessage on the same connection can never interleave
// their size-prefix and payload writes. It never coalesces the two
// into a single write; the prefix reaching the wire before the payload
// relies on Conn.Send being an ordered write, while sendMu only keeps
// other calls' writes from landing between the two.
func (f *framedCore) sendMessage(p []byte) error {
	if f.conn == nil {
		return ErrClosed
	}
	vs := NewVarSize(uint64(len(p)))
	if !vs.IsComplete() && len(p) != 0 {
		return errors.Wrap(ErrMessageTooLong, "framing: send_message")
	}
	f.sendMu.Lock()
	defer f.sendMu.Unlock()
	if err := f.conn.Send(vs.Bytes()); err != nil {
		return errors.Wrap(err, "framing: send size prefix")
	}
	if len(p) > 0 {
		if err := f.conn.Send(p); err != nil {
			return errors.Wrap(err, "framing: send payload")
		}
	}
	if f.trace != nil && f.trace.MessageSent != nil {
		f.trace.MessageSent(f.remoteAddr(), len(p))
	}
	return nil
}

func (f *framedCore) sendMessageString(s string) error {
	return f.sendMessage([]byte(s))
}

// FramedClient presents a message-oriented connect + send_message +
// receive callback over a Dialer, delegating reassembly to an owned
// FramedDecoder. Every upstream callback receives a reference to the
// FramedClient itself, never the raw transport Conn.
type FramedClient struct {
	framedCore
	dialer         Dialer
	maxMessageSize uint64
	state          atomic.Int32
	onReceive      ReceiveHandler
	onClose        CloseHandler
}

// NewFramedClient constructs a client bound to dialer. dialer is not
// used until Connect is called.
func NewFramedClient(dialer Dialer, opts ...Option) *FramedClient {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	c := &FramedClient{
		dialer:         dialer,
		maxMessageSize: o.MaxMessageSize,
	}
	c.trace = o.Trace
	c.state.Store(StateIdle)
	return c
}

// Connect dials addr and wires the framing callbacks. onConnect fires
// exactly once with (client, nil) on success or (client, err) on
// failure. onReceive and onClose may be nil.
func (c *FramedClient) Connect(ctx context.Context, addr string, onConnect ConnectHandler, onReceive ReceiveHandler, onClose CloseHandler) error {
	if c.dialer == nil {
		return ErrInvalidArgument
	}
	c.state.Store(StateConnecting)
	c.decoder = NewFramedDecoder(c.maxMessageSize)
	c.onReceive = onReceive
	c.onClose = onClose

	conn, err := c.dialer.Dial(ctx, addr, c.handleChunk, c.handleClose)
	if err != nil {
		c.state.Store(StateClosed)
		if onConnect != nil {
			onConnect(c, errors.Wrap(fmt.Errorf("%w: %w", ErrTransport, err), "framing: connect"))
		}
		return err
	}
	c.conn = conn
	c.state.Store(StateConnected)
	if c.trace != nil && c.trace.Connected != nil {
		c.trace.Connected(c.remoteAddr())
	}
	if onConnect != nil {
		onConnect(c, nil)
	}
	return nil
}

func (c *FramedClient) handleChunk(chunk []byte, err error) {
	if err != nil {
		if c.onReceive != nil {
			c.onReceive(nil, fmt.Errorf("%w: %w", ErrTransport, err))
		}
		return
	}
	c.decoder.Ingest(chunk, nil, c.wrapReceive())
}

func (c *FramedClient) wrapReceive() ReceiveHandler {
	return func(msg *Message, err error) {
		c.traceReceive(msg, err)
		if c.onReceive != nil {
			c.onReceive(msg, err)
		}
	}
}

func (c *FramedClient) handleClose(err error) {
	c.state.Store(StateClosed)
	if c.trace != nil && c.trace.Closed != nil {
		c.trace.Closed(c.remoteAddr(), err)
	}
	if c.onClose != nil {
		c.onClose(err)
	}
	// Clearing conn after the callbacks above (which may still want the
	// remote address) makes SendMessage return ErrClosed from here on,
	// matching its documented contract.
	c.conn = nil
	c.decoder = nil
}

// SendMessage sends one framed message: VarSize(len(p)) then p.
func (c *FramedClient) SendMessage(p []byte) error { return c.sendMessage(p) }

// SendMessageString is a convenience wrapper around SendMessage.
func (c *FramedClient) SendMessageString(s string) error { return c.sendMessageString(s) }

// Send is SendMessage under the Conn method name. Together with Close
// and RemoteAddr it makes *FramedClient a Conn, which is how Connect
// hands the client itself to its ConnectHandler.
func (c *FramedClient) Send(p []byte) error { return c.sendMessage(p) }

// RemoteAddr returns the transport-reported remote address, or "" when
// no connection is open.
func (c *FramedClient) RemoteAddr() string { return c.remoteAddr() }

// State reports the client's current connection state.
func (c *FramedClient) State() int32 { return c.state.Load() }

// Close initiates an asynchronous close; onClose (from Connect) fires
// once the transport has fully released the connection.
func (c *FramedClient) Close() error {
	if c.conn == nil {
		return nil
	}
	c.state.Store(StateClosing)
	return c.conn.Close()
}
