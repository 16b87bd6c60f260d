// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: segment
// encoding, error correction, and symbol construction.  Most callers
// should use the qr package instead.
package coding // import "github.com/tkhsv/qr/coding"

import (
	"fmt"

	"github.com/tkhsv/qr/gf256"
)

// Field is the Galois field in which QR error correction arithmetic
// takes place.
var Field = gf256.NewField(0x11d, 2)

// A Code is a square pixel grid ready for display.
type Code struct {
	Bitmap  []byte // rows of Stride bytes each, MSB first, 1 is dark
	Size    int    // number of modules per side
	Stride  int    // number of bytes per row
	Version Version
	Level   Level
	Mask    Mask
}

// Black reports whether the module at (x, y) is dark.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7-x&7)) != 0
}

// ErrLongText reports data that exceeds the symbol's capacity.
var ErrLongText = fmt.Errorf("text too long")

// Encode encodes the segments into a symbol of the given version and
// level.  If mask is AutoMask the mask pattern with the lowest penalty
// score is chosen, ties going to the lowest pattern number.
func Encode(v Version, l Level, mask Mask, segs ...Segment) (*Code, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w %d", ErrVersion, int(v))
	}
	if !l.Valid() {
		return nil, fmt.Errorf("%w %d", ErrLevel, int(l))
	}
	if mask != AutoMask && !mask.Valid() {
		return nil, fmt.Errorf("%w %d", ErrMask, int(mask))
	}

	b := NewBits(v, l)
	for _, s := range segs {
		if err := s.Encode(b, v.SizeClass()); err != nil {
			return nil, err
		}
	}
	n := v.DataBits(l)
	if b.Bits() > n {
		return nil, fmt.Errorf("cannot encode %d bits into version %s-%s (%d bits): %w",
			b.Bits(), v, l, n, ErrLongText)
	}
	b.PadTo(4, n)

	m := newMatrix(v)
	m.place(interleave(v, l, b.Bytes()))

	if mask == AutoMask {
		best := -1
		for trial := Mask(0); trial < 8; trial++ {
			m.xorMask(trial)
			m.drawFormat(formatInfo(l, trial))
			if p := m.penalty(); best < 0 || p < best {
				best, mask = p, trial
			}
			m.xorMask(trial) // undo
		}
	}
	m.xorMask(mask)
	m.drawFormat(formatInfo(l, mask))

	stride := (m.siz + 7) / 8
	c := &Code{
		Bitmap:  make([]byte, m.siz*stride),
		Size:    m.siz,
		Stride:  stride,
		Version: v,
		Level:   l,
		Mask:    mask,
	}
	for y := 0; y < m.siz; y++ {
		for x := 0; x < m.siz; x++ {
			if m.at(x, y) {
				c.Bitmap[y*stride+x/8] |= 1 << uint(7-x&7)
			}
		}
	}
	return c, nil
}

// interleave splits the data codewords into error correction blocks,
// appends check bytes to each, and interleaves the blocks column by
// column as they appear in the symbol.
func interleave(v Version, l Level, data []byte) []byte {
	nb, ec := numBlocks[l][v], eccBytes[l][v]
	total := v.TotalBytes()

	// The first numShort blocks carry one data byte fewer.
	numShort := nb - total%nb
	shortLen := total/nb - ec

	rs := gf256.NewRSEncoder(Field, ec)
	blocks := make([][]byte, nb)
	ecc := make([]byte, nb*ec)
	for i, pos := 0, 0; i < nb; i++ {
		n := shortLen
		if i >= numShort {
			n++
		}
		blocks[i] = data[pos : pos+n]
		pos += n
		rs.ECC(blocks[i], ecc[i*ec:(i+1)*ec])
	}

	out := make([]byte, 0, total)
	for i := 0; i <= shortLen; i++ {
		for _, blk := range blocks {
			if i < len(blk) {
				out = append(out, blk[i])
			}
		}
	}
	for i := 0; i < ec; i++ {
		for j := 0; j < nb; j++ {
			out = append(out, ecc[j*ec+i])
		}
	}
	return out
}
