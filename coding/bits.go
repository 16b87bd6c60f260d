// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Bits is an append-only bit buffer.  Bits are packed into bytes
// MSB first.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for the data codewords of
// a QR code of the given version and level.
func NewBits(v Version, l Level) *Bits {
	return &Bits{b: make([]byte, 0, v.DataBytes(l))}
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits written.
func (b *Bits) Bits() int {
	return b.nbit
}

// Bytes returns the written bits as bytes.  It panics if the buffer
// does not end at a byte boundary.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write appends the low nbit bits of v, most significant first.
func (b *Bits) Write(v uint32, nbit int) {
	for i := nbit - 1; i >= 0; i-- {
		if b.nbit&7 == 0 {
			b.b = append(b.b, 0)
		}
		if v>>uint(i)&1 != 0 {
			b.b[len(b.b)-1] |= 0x80 >> uint(b.nbit&7)
		}
		b.nbit++
	}
}

// PadTo adds up to t zero terminator bits to b, pads to a byte
// boundary with zero bits and then to n bits with the repeating
// pattern 0xec, 0x11.  n must be a multiple of 8 and not less than
// b.Bits().
func (b *Bits) PadTo(t, n int) {
	if n%8 != 0 || b.nbit > n {
		panic("qr: invalid padding")
	}
	b.Write(0, min(t, n-b.nbit))
	b.Write(0, -b.nbit&7)
	for pad := uint32(0xec); b.nbit < n; pad ^= 0xec ^ 0x11 {
		b.Write(pad, 8)
	}
}

// BitStream reads bits from an underlying buffer.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Next returns the next bit from s as 0 or 1.
// Past end of buffer Next returns 0.
func (s *BitStream) Next() byte {
	var b byte
	if i := s.pos >> 3; i < len(s.b) {
		b = s.b[i] >> (7 &^ s.pos) & 1
		s.pos++
	}
	return b
}
