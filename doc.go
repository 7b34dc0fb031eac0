// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package framing implements a message-framing layer over reliable,
// order-preserving byte streams, plus the generic client/server
// wrapper that grafts it onto any connection-oriented transport.
//
// Wire format: a message is VarSize(len) || payload[len]. VarSize is a
// 1-8 byte continuation-bit encoding of a non-negative integer up to
// 2^56-1 (see VarSize). FramedDecoder reassembles whole messages from
// arbitrary chunk boundaries delivered by a transport; FramedClient
// and FramedServer/FramedConnectedPeer present this as message-level
// connect/send_message/receive callbacks, delegating reassembly to an
// owned FramedDecoder per connection.
//
// Transports plug in through the Conn/Dialer/Listener contract (see
// transport.go); net/tcp implements it. The net/udp and net/ws
// subpackages provide their own Endpoint types instead of Dialer and
// Listener. net/udp and net/ws are boundary-preserving:
// their transport already delivers whole messages, so they skip
// FramedDecoder entirely rather than running a length-prefix codec
// over packets that already have boundaries.
//
// Concurrency: each connection is driven by exactly one reader
// goroutine owned by its transport, which invokes framing callbacks
// synchronously and sequentially. No locking guards FramedDecoder
// state because only that one goroutine ever touches it. SendMessage
// may be called from any goroutine; transports serialize concurrent
// writers internally.
package framing
