// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

// ReceiveHandler is the message-granular callback a FramedDecoder
// delivers complete messages to. err is an *OversizeError for a
// too-large message (msg is nil, declared size preserved) or
// ErrInvalidEncoding for a malformed size prefix (msg is nil, decoder
// is unrecoverable past this point).
type ReceiveHandler func(msg *Message, err error)

// Message is the unit delivered to a receive callback. Its payload
// aliases the decoder's internal buffer and is only valid for the
// duration of the callback unless Retain is called. Calling Retain
// inside the receive callback guarantees the decoder allocates a fresh
// buffer before its next Ingest, so the slice returned by Payload
// remains valid and unmutated indefinitely.
type Message struct {
	payload  []byte
	size     uint64
	decoder  *FramedDecoder
	retained bool
}

// NewMessage wraps an already-delimited payload — one UDP datagram, one
// WebSocket frame — as a Message, so boundary-preserving transports can
// hand data to the same ReceiveHandler shape FramedDecoder uses without
// pretending a size-prefix decode happened. Retain is a no-op on a
// Message built this way: there is no decoder buffer to protect.
func NewMessage(payload []byte) *Message {
	return &Message{payload: payload, size: uint64(len(payload))}
}

// Payload returns the message bytes. Do not retain this slice across
// the receive callback's return unless Retain has been called first.
func (m *Message) Payload() []byte { return m.payload }

// Size returns the message length in bytes (equal to len(Payload)).
func (m *Message) Size() uint64 { return m.size }

// Retain forces the owning decoder to allocate a fresh buffer before
// its next Ingest, so the slice returned by Payload remains valid and
// is never overwritten by a subsequent message. Safe to call multiple
// times; a no-op after the first call.
func (m *Message) Retain() {
	if m.retained || m.decoder == nil {
		return
	}
	m.retained = true
	m.decoder.forceRealloc = true
}
