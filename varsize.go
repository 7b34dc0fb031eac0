// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing

// VarSize is a streaming variable-length size codec. It encodes a
// non-negative integer up to MaxValue into 1-8 wire bytes and can decode
// the same wire form incrementally, byte by byte or in batches, across
// arbitrary call boundaries.
//
// Wire format: the value is split into 7-bit groups, most-significant
// group first. Every group except the last (the least-significant one)
// is OR'd with the continuation bit 0x80; the last group is sent with
// the bit clear. A decoder accumulates value = value*128 + (b &^ 0x80)
// for each byte and is complete the moment it consumes a byte with the
// continuation bit clear.
//
// A zero-value VarSize is a valid, empty, not-yet-complete codec.
type VarSize struct {
	wire     [8]byte
	n        uint8
	complete bool
	value    uint64
}

const (
	// MaxValue is the largest value representable by VarSize (2^56-1).
	MaxValue uint64 = 1<<56 - 1

	// Invalid is returned by Value when the codec is not yet complete.
	Invalid uint64 = 1<<64 - 1

	maxWireBytes = 8
)

// NewVarSize encodes v into a complete VarSize. Values greater than
// MaxValue produce a default-constructed, incomplete, zero-length codec
// rather than a panic or error; callers that need to reject oversized
// input check IsComplete.
func NewVarSize(v uint64) VarSize {
	var vs VarSize
	if v > MaxValue {
		return vs
	}
	vs.encode(v)
	return vs
}

// encode fills wire/n/value/complete for v, assumed <= MaxValue.
func (vs *VarSize) encode(v uint64) {
	var groups [maxWireBytes]byte
	n := 0
	for {
		groups[n] = byte(v & 0x7F)
		v >>= 7
		n++
		if v == 0 {
			break
		}
	}
	// groups[0] is the least-significant group; emit most-significant
	// first, continuation bit set on every group but the last emitted
	// (which is groups[0]).
	for i := 0; i < n; i++ {
		b := groups[n-1-i]
		if i != n-1 {
			b |= 0x80
		}
		vs.wire[i] = b
	}
	vs.n = uint8(n)
	vs.complete = true
	vs.value = 0
	for i := 0; i < n; i++ {
		vs.value = vs.value<<7 | uint64(groups[n-1-i]&0x7F)
	}
}

// AddByte appends one wire byte to the in-progress decode. It returns
// true iff this byte completed the value. It is a no-op returning
// false if the codec is already complete or if eight bytes have been
// consumed without completion.
func (vs *VarSize) AddByte(b byte) bool {
	if vs.complete || vs.n >= maxWireBytes {
		return false
	}
	vs.wire[vs.n] = b
	vs.n++
	vs.value = vs.value<<7 | uint64(b&0x7F)
	if b&0x80 == 0 {
		vs.complete = true
	}
	return vs.complete
}

// AddBytes feeds up to len(p) bytes into the in-progress decode. It
// returns the number of bytes actually consumed, stopping at the byte
// that completes the value, or after eight bytes have been consumed
// without completion (a malformed prefix, see ErrInvalidEncoding).
func (vs *VarSize) AddBytes(p []byte) int {
	consumed := 0
	for _, b := range p {
		if vs.complete || vs.n >= maxWireBytes {
			break
		}
		consumed++
		if vs.AddByte(b) {
			break
		}
	}
	return consumed
}

// IsComplete reports whether the decode has produced a value.
func (vs *VarSize) IsComplete() bool { return vs.complete }

// Value returns the decoded magnitude, or Invalid if not yet complete.
func (vs *VarSize) Value() uint64 {
	if !vs.complete {
		return Invalid
	}
	return vs.value
}

// BytesCount returns the wire length consumed so far: the full encoded
// length once complete, or the partial accumulation otherwise.
func (vs *VarSize) BytesCount() int { return int(vs.n) }

// Overrun reports whether eight bytes have been consumed without the
// continuation bit ever clearing — a malformed, unrecoverable prefix.
func (vs *VarSize) Overrun() bool { return !vs.complete && vs.n >= maxWireBytes }

// Bytes returns a read-only view of the wire form accumulated so far.
func (vs *VarSize) Bytes() []byte { return vs.wire[:vs.n] }

// Reset restores the constructed-empty state.
func (vs *VarSize) Reset() { *vs = VarSize{} }
