// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

// DefaultMaxMessageSize is used when no WithMaxMessageSize option is
// supplied to NewFramedClient or NewFramedServer.
const DefaultMaxMessageSize = 2 * 1024 * 1024

// Options configures a FramedClient or FramedServer.
type Options struct {
	MaxMessageSize uint64
	Trace          *Trace
}

var defaultOptions = Options{
	MaxMessageSize: DefaultMaxMessageSize,
}

// Option mutates Options during construction.
type Option func(*Options)

// WithMaxMessageSize overrides DefaultMaxMessageSize. A message whose
// declared size exceeds this bound is reported via OversizeError
// instead of being buffered.
func WithMaxMessageSize(n uint64) Option {
	return func(o *Options) { o.MaxMessageSize = n }
}

// WithTrace attaches observability hooks. Nil fields in t are simply
// not invoked; see ComposeTrace to merge more than one Trace.
func WithTrace(t *Trace) Option {
	return func(o *Options) { o.Trace = t }
}
