// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing_test

import (
	"testing"

	fr "github.com/tarmio/framing"
)

func TestVarSize_KnownEncodings(t *testing.T) {
	cases := []struct {
		v    uint64
		want []byte
	}{
		{1, []byte{0x01}},
		{5, []byte{0x05}},
		{128, []byte{0x81, 0x00}},
		{310, []byte{0x82, 0x36}},
		{65535, []byte{0x83, 0xFF, 0x7F}},
		{128000, []byte{0x87, 0xE8, 0x00}},
	}
	for _, c := range cases {
		vs := fr.NewVarSize(c.v)
		if !vs.IsComplete() {
			t.Fatalf("NewVarSize(%d) not complete", c.v)
		}
		got := vs.Bytes()
		if string(got) != string(c.want) {
			t.Fatalf("NewVarSize(%d) = % X, want % X", c.v, got, c.want)
		}
	}
}

func TestVarSize_SelfInverse(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 16383, 16384, 65535, 128000, fr.MaxValue}
	for _, v := range values {
		encoded := fr.NewVarSize(v)
		var decoder fr.VarSize
		n := decoder.AddBytes(encoded.Bytes())
		if n != len(encoded.Bytes()) {
			t.Fatalf("v=%d: consumed %d of %d bytes", v, n, len(encoded.Bytes()))
		}
		if !decoder.IsComplete() {
			t.Fatalf("v=%d: decode did not complete", v)
		}
		if decoder.Value() != v {
			t.Fatalf("v=%d: decoded %d", v, decoder.Value())
		}
	}
}

func TestVarSize_AddByte_OneAtATime(t *testing.T) {
	encoded := fr.NewVarSize(128000)
	var vs fr.VarSize
	wire := encoded.Bytes()
	for i, b := range wire {
		done := vs.AddByte(b)
		if i < len(wire)-1 && done {
			t.Fatalf("completed early at byte %d", i)
		}
		if i == len(wire)-1 && !done {
			t.Fatalf("did not complete at final byte")
		}
	}
	if vs.Value() != 128000 {
		t.Fatalf("value = %d, want 128000", vs.Value())
	}
}

func TestVarSize_IncompleteValueIsInvalid(t *testing.T) {
	var vs fr.VarSize
	vs.AddByte(0x81) // continuation bit set, not complete
	if vs.IsComplete() {
		t.Fatalf("should not be complete")
	}
	if vs.Value() != fr.Invalid {
		t.Fatalf("Value() = %d, want Invalid", vs.Value())
	}
}

func TestVarSize_OverrunWithoutCompletion(t *testing.T) {
	var vs fr.VarSize
	for i := 0; i < 8; i++ {
		vs.AddByte(0x80)
	}
	if vs.IsComplete() {
		t.Fatalf("should not be complete")
	}
	if !vs.Overrun() {
		t.Fatalf("expected overrun after 8 incomplete bytes")
	}
}

func TestVarSize_AboveMaxValueIsIncomplete(t *testing.T) {
	vs := fr.NewVarSize(fr.MaxValue + 1)
	if vs.IsComplete() {
		t.Fatalf("values above MaxValue must not encode")
	}
	if vs.BytesCount() != 0 {
		t.Fatalf("BytesCount() = %d, want 0", vs.BytesCount())
	}
}

func TestVarSize_Reset(t *testing.T) {
	vs := fr.NewVarSize(128000)
	vs.Reset()
	var fresh fr.VarSize
	if vs.IsComplete() != fresh.IsComplete() || vs.BytesCount() != fresh.BytesCount() {
		t.Fatalf("Reset did not restore default state")
	}
}

func TestVarSize_BytesCountMonotonic(t *testing.T) {
	prev := -1
	for shift := uint(0); shift < 56; shift += 7 {
		v := uint64(1) << shift
		vs := fr.NewVarSize(v)
		n := vs.BytesCount()
		if n < prev {
			t.Fatalf("bytes count decreased at v=%d: %d < %d", v, n, prev)
		}
		if n > 8 {
			t.Fatalf("bytes count %d exceeds 8 at v=%d", n, v)
		}
		prev = n
	}
}
