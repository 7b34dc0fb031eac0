// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

// MessageSender is satisfied by FramedClient and FramedConnectedPeer.
// MessageRelay depends on this narrow interface rather than either
// concrete type so it can forward onto whichever side of a proxy is
// convenient for the caller to construct.
type MessageSender interface {
	SendMessage(p []byte) error
}

// MessageRelay relays complete framed messages from one connection to
// another while preserving message boundaries: the destination sees
// exactly the same payload bytes as the source, as one framed message.
//
// Unlike a byte-stream forwarder, MessageRelay never buffers partial
// messages itself: a FramedDecoder has already reassembled the message
// before MessageRelay ever sees it, so there is no read/write two-phase
// state machine to drive call over call. Callers attach it as a
// ReceiveHandler on the source side via AsReceiveHandler.
type MessageRelay struct {
	dst   MessageSender
	trace *Trace
}

// NewMessageRelay constructs a relay that forwards onto dst.
func NewMessageRelay(dst MessageSender, opts ...Option) *MessageRelay {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &MessageRelay{dst: dst, trace: o.Trace}
}

// AsReceiveHandler adapts the relay into a ReceiveHandler suitable for
// FramedClient.Connect or FramedServer.Listen. Transport-level and
// oversize errors observed on the source are reported to onError
// rather than forwarded (there is no well-formed payload to relay);
// send failures on the destination are reported the same way.
func (r *MessageRelay) AsReceiveHandler(onError func(error)) ReceiveHandler {
	return func(msg *Message, err error) {
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		if sendErr := r.dst.SendMessage(msg.Payload()); sendErr != nil {
			if onError != nil {
				onError(sendErr)
			}
			return
		}
		if r.trace != nil && r.trace.MessageSent != nil {
			r.trace.MessageSent("", int(msg.Size()))
		}
	}
}
