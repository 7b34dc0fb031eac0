// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package udp implements a boundary-preserving datagram endpoint. A
// UDP datagram already carries its own boundary, so Endpoint never
// runs data through a framing.FramedDecoder: one ReadFromUDP is one
// Message, mirroring the teacher's Protocol.preserveBoundary() branch
// (SeqPacket/Datagram) without sharing its stream-oriented state
// machine, which has nothing to do here.
package udp

import (
	"net"
	"sync"

	"github.com/pkg/errors"

	"github.com/tarmio/framing"
)

const maxDatagramSize = 64 * 1024

// Endpoint is either a connected client socket (via Dial) or a bound
// server socket receiving from many peers (via Listen).
type Endpoint struct {
	conn *net.UDPConn
	mu   sync.Mutex
}

// Dial connects a UDP socket to addr. Send writes to that fixed peer;
// Serve's onReceive fires only for datagrams originating from it.
func Dial(addr string) (*Endpoint, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "udp: resolve")
	}
	c, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, errors.Wrap(err, "udp: dial")
	}
	return &Endpoint{conn: c}, nil
}

// Listen binds a UDP socket on addr to receive datagrams from any peer.
func Listen(addr string) (*Endpoint, error) {
	laddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "udp: resolve")
	}
	c, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, errors.Wrap(err, "udp: listen")
	}
	return &Endpoint{conn: c}, nil
}

// Send writes p as one datagram to the peer this Endpoint was Dial'd
// to. It is an error to call Send on a Listen'd Endpoint; use SendTo.
func (e *Endpoint) Send(p []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(p) > maxDatagramSize {
		return framing.ErrMessageTooLong
	}
	_, err := e.conn.Write(p)
	if err != nil {
		return errors.Wrap(err, "udp: write")
	}
	return nil
}

// SendTo writes p as one datagram to an explicit peer address, for use
// on a Listen'd Endpoint replying to an inbound sender.
func (e *Endpoint) SendTo(addr *net.UDPAddr, p []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(p) > maxDatagramSize {
		return framing.ErrMessageTooLong
	}
	_, err := e.conn.WriteToUDP(p, addr)
	if err != nil {
		return errors.Wrap(err, "udp: write_to")
	}
	return nil
}

// Serve reads datagrams until the socket is closed, delivering each
// one as a Message with no decode step. onReceive's error is non-nil
// only once, at the read that observes the closed socket.
func (e *Endpoint) Serve(onReceive func(msg *framing.Message, from *net.UDPAddr, err error)) error {
	buf := make([]byte, maxDatagramSize)
	for {
		n, from, err := e.conn.ReadFromUDP(buf)
		if n > 0 {
			payload := append([]byte{}, buf[:n]...)
			onReceive(framing.NewMessage(payload), from, nil)
		}
		if err != nil {
			onReceive(nil, nil, errors.Wrap(err, "udp: read"))
			return err
		}
	}
}

// Close releases the underlying socket.
func (e *Endpoint) Close() error { return e.conn.Close() }

// LocalAddr returns the endpoint's local address.
func (e *Endpoint) LocalAddr() net.Addr { return e.conn.LocalAddr() }
