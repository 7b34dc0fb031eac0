// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

// FramedDecoder is a stateful per-connection reassembly engine. It
// consumes raw stream chunks and emits zero or more complete messages
// through a receive callback, enforcing a maximum message size and
// resynchronizing the stream after an oversize message.
//
// A FramedDecoder is not safe for concurrent use; it is designed to be
// driven by exactly one goroutine per connection (see Trace and the
// package doc for the concurrency model).
type FramedDecoder struct {
	maxMessageSize uint64
	pendingSize    VarSize
	buffer         []byte
	offset         uint64
	oversize       bool
	broken         bool
	forceRealloc   bool
}

// NewFramedDecoder constructs a decoder that rejects any message whose
// declared size exceeds maxMessageSize. It allocates no buffer up
// front; each message's body buffer is sized to that message's own
// declared length (reusing the previous allocation when it is already
// big enough), never to maxMessageSize, so a connection carrying only
// small messages never pays for a worst-case buffer.
func NewFramedDecoder(maxMessageSize uint64) *FramedDecoder {
	return &FramedDecoder{maxMessageSize: maxMessageSize}
}

// growBuffer ensures d.buffer can hold need bytes, reusing the
// existing allocation when its capacity already suffices.
func (d *FramedDecoder) growBuffer(need uint64) {
	if uint64(cap(d.buffer)) < need {
		d.buffer = make([]byte, need)
		return
	}
	d.buffer = d.buffer[:need]
}

// Ingest consumes chunk left to right, delivering zero or more complete
// messages to onReceive. If transportErr is non-nil, the decoder does
// not touch its internal state or inspect chunk at all: a separate
// close notification is expected to follow from the transport.
//
// Once an ErrInvalidEncoding has been observed, the decoder is broken
// and every subsequent Ingest is a no-op, per the propagation policy:
// the core does not auto-close, it only stops advancing.
func (d *FramedDecoder) Ingest(chunk []byte, transportErr error, onReceive ReceiveHandler) {
	if transportErr != nil {
		return
	}
	if d.broken {
		return
	}

	for len(chunk) > 0 {
		if !d.pendingSize.IsComplete() {
			n := d.pendingSize.AddBytes(chunk)
			chunk = chunk[n:]
			if d.pendingSize.Overrun() {
				d.broken = true
				if onReceive != nil {
					onReceive(nil, ErrInvalidEncoding)
				}
				return
			}
			if !d.pendingSize.IsComplete() {
				// Consumed the whole chunk without completing the prefix.
				return
			}
			need := d.pendingSize.Value()
			if need > d.maxMessageSize {
				d.oversize = true
				if onReceive != nil {
					onReceive(nil, &OversizeError{DeclaredSize: need})
				}
			} else {
				d.growBuffer(need)
			}
		}

		need := d.pendingSize.Value()
		remaining := need - d.offset
		take := uint64(len(chunk))
		if take > remaining {
			take = remaining
		}
		if take > 0 {
			if !d.oversize {
				copy(d.buffer[d.offset:], chunk[:take])
			}
			d.offset += take
			chunk = chunk[take:]
		}

		if d.offset == need {
			if !d.oversize && onReceive != nil {
				msg := &Message{payload: d.buffer[:need], size: need, decoder: d}
				onReceive(msg, nil)
				if d.forceRealloc {
					d.buffer = nil
					d.forceRealloc = false
				}
			}
			d.pendingSize.Reset()
			d.offset = 0
			d.oversize = false
		}
	}
}
