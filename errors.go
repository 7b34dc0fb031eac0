// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports an invalid configuration or nil transport.
	ErrInvalidArgument = errors.New("framing: invalid argument")

	// ErrMessageTooLong reports that a message's declared size exceeds the
	// decoder's configured max_message_size. The decoder delivers it
	// through an OversizeError; send paths that reject an outbound
	// payload as too large return it wrapped (SendMessage) or bare
	// (net/udp).
	ErrMessageTooLong = errors.New("framing: message too long")

	// ErrTransport reports an error forwarded from the underlying
	// transport: connect refused, reset, EOF mid-frame.
	ErrTransport = errors.New("framing: transport error")

	// ErrInvalidEncoding reports that eight wire bytes were consumed for
	// a VarSize prefix without the continuation bit ever clearing. The
	// connection is unrecoverable; the recommended action is Close.
	ErrInvalidEncoding = errors.New("framing: invalid size encoding")

	// ErrClosed is returned by SendMessage once the client or peer has
	// observed transport close.
	ErrClosed = errors.New("framing: connection closed")
)

// OversizeError reports a message whose declared size exceeded the
// decoder's max_message_size. DeclaredSize preserves the size that was
// read off the wire; the payload itself is discarded.
type OversizeError struct {
	DeclaredSize uint64
}

func (e *OversizeError) Error() string {
	return fmt.Sprintf("framing: message too long: declared size %d", e.DeclaredSize)
}

func (e *OversizeError) Unwrap() error { return ErrMessageTooLong }
