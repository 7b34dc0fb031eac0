// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

import "log"

// Trace holds observability hooks invoked around the lifecycle of a
// FramedClient or a FramedServer's accepted peers. Any field may be
// nil; nil hooks are simply skipped. Hooks run synchronously on the
// goroutine that raises the event (the connection's reader goroutine
// for MessageReceived, Oversize and Closed; the sending goroutine for
// MessageSent) and must not block.
type Trace struct {
	Connected       func(remoteAddr string)
	MessageReceived func(remoteAddr string, size uint64)
	MessageSent     func(remoteAddr string, size int)
	Oversize        func(remoteAddr string, declaredSize uint64)
	Closed          func(remoteAddr string, err error)
}

// DefaultLoggingTrace returns a Trace that logs each event through the
// standard log package, for use during development or as a starting
// point composed with application-specific hooks via ComposeTrace.
func DefaultLoggingTrace() *Trace {
	return &Trace{
		Connected: func(remoteAddr string) {
			log.Printf("framing: connected %s", remoteAddr)
		},
		MessageReceived: func(remoteAddr string, size uint64) {
			log.Printf("framing: received %d bytes from %s", size, remoteAddr)
		},
		MessageSent: func(remoteAddr string, size int) {
			log.Printf("framing: sent %d bytes to %s", size, remoteAddr)
		},
		Oversize: func(remoteAddr string, declaredSize uint64) {
			log.Printf("framing: oversize message from %s: declared %d bytes", remoteAddr, declaredSize)
		},
		Closed: func(remoteAddr string, err error) {
			log.Printf("framing: closed %s: %v", remoteAddr, err)
		},
	}
}

// ComposeTrace merges any number of Traces into one: for each hook,
// every non-nil implementation across traces runs, in order. A nil
// element in traces is skipped.
func ComposeTrace(traces ...*Trace) *Trace {
	merged := &Trace{}
	for _, t := range traces {
		if t == nil {
			continue
		}
		if t.Connected != nil {
			prev := merged.Connected
			fn := t.Connected
			merged.Connected = func(addr string) {
				if prev != nil {
					prev(addr)
				}
				fn(addr)
			}
		}
		if t.MessageReceived != nil {
			prev := merged.MessageReceived
			fn := t.MessageReceived
			merged.MessageReceived = func(addr string, size uint64) {
				if prev != nil {
					prev(addr, size)
				}
				fn(addr, size)
			}
		}
		if t.MessageSent != nil {
			prev := merged.MessageSent
			fn := t.MessageSent
			merged.MessageSent = func(addr string, size int) {
				if prev != nil {
					prev(addr, size)
				}
				fn(addr, size)
			}
		}
		if t.Oversize != nil {
			prev := merged.Oversize
			fn := t.Oversize
			merged.Oversize = func(addr string, declared uint64) {
				if prev != nil {
					prev(addr, declared)
				}
				fn(addr, declared)
			}
		}
		if t.Closed != nil {
			prev := merged.Closed
			fn := t.Closed
			merged.Closed = func(addr string, err error) {
				if prev != nil {
					prev(addr, err)
				}
				fn(addr, err)
			}
		}
	}
	return merged
}
