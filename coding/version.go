// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"
	"strconv"
)

// A Level is a QR error correction level.
type Level int

const (
	L Level = iota // recovers 7% of data
	M              // recovers 15% of data
	Q              // recovers 25% of data
	H              // recovers 30% of data
)

func (l Level) String() string {
	if l < L || l > H {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return "LMQH"[l : l+1]
}

// ErrLevel indicates an invalid error correction level.
var ErrLevel = errors.New("invalid error correction level")

func (l Level) Valid() bool { return l >= L && l <= H }

// fbits holds the two format information bits for each level.
var fbits = [4]uint32{L: 1, M: 0, Q: 3, H: 2}

// A Version is a QR version.  Valid versions run from 1 to 40; each
// version up adds 4 modules to the side of the symbol.
type Version int

const (
	MinVersion Version = 1
	MaxVersion Version = 40
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// ErrVersion indicates an invalid version.
var ErrVersion = errors.New("invalid version")

func (v Version) Valid() bool { return v >= MinVersion && v <= MaxVersion }

// Size returns the side length of a version v symbol in modules.
func (v Version) Size() int { return 17 + int(v)*4 }

// SizeClass returns the version size class, which selects the width of
// segment character count fields: 0 for versions 1 to 9, 1 for 10 to
// 26, 2 for 27 to 40.
func (v Version) SizeClass() int {
	switch {
	case v <= 9:
		return 0
	case v <= 26:
		return 1
	}
	return 2
}

// eccBytes[l][v] is the number of error correction bytes per block at
// level l in version v.
var eccBytes = [4][41]int{
	L: {0, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18,
		20, 24, 26, 30, 22, 24, 28, 30, 28, 28,
		28, 28, 30, 30, 26, 28, 30, 30, 30, 30,
		30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	M: {0, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26,
		30, 22, 22, 24, 24, 28, 28, 26, 26, 26,
		26, 28, 28, 28, 28, 28, 28, 28, 28, 28,
		28, 28, 28, 28, 28, 28, 28, 28, 28, 28},
	Q: {0, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24,
		28, 26, 24, 20, 30, 24, 28, 28, 26, 30,
		28, 30, 30, 30, 30, 28, 30, 30, 30, 30,
		30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	H: {0, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28,
		24, 28, 22, 24, 24, 30, 28, 28, 26, 28,
		30, 24, 30, 30, 30, 30, 30, 30, 30, 30,
		30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
}

// numBlocks[l][v] is the number of error correction blocks at level l
// in version v.
var numBlocks = [4][41]int{
	L: {0, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4,
		4, 4, 4, 4, 6, 6, 6, 6, 7, 8,
		8, 9, 9, 10, 12, 12, 12, 13, 14, 15,
		16, 17, 18, 19, 19, 20, 21, 22, 24, 25},
	M: {0, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5,
		5, 8, 9, 9, 10, 10, 11, 13, 14, 16,
		17, 17, 18, 20, 21, 23, 25, 26, 28, 29,
		31, 33, 35, 37, 38, 40, 43, 45, 47, 49},
	Q: {0, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8,
		8, 10, 12, 16, 12, 17, 16, 18, 21, 20,
		23, 23, 25, 27, 29, 34, 34, 35, 38, 40,
		43, 45, 48, 51, 53, 56, 59, 62, 65, 68},
	H: {0, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8,
		11, 11, 16, 16, 18, 16, 19, 21, 25, 25,
		25, 34, 30, 32, 35, 37, 40, 42, 45, 48,
		51, 54, 57, 60, 63, 66, 70, 74, 77, 81},
}

// numAlign returns the number of alignment pattern positions along one
// axis of a version v symbol.
func (v Version) numAlign() int {
	if v == 1 {
		return 0
	}
	return int(v)/7 + 2
}

// rawBits returns the number of modules available for codewords in a
// version v symbol: the full grid less function patterns and the
// format and version information areas.
func (v Version) rawBits() int {
	n := (16*int(v)+128)*int(v) + 64
	if na := v.numAlign(); na > 0 {
		n -= (25*na-10)*na - 55
		if v >= 7 {
			n -= 36
		}
	}
	return n
}

// TotalBytes returns the total number of codewords in a version v
// symbol.  The few raw bits beyond a full byte are remainder bits.
func (v Version) TotalBytes() int { return v.rawBits() / 8 }

// DataBytes returns the number of data codewords at level l.
func (v Version) DataBytes(l Level) int {
	return v.TotalBytes() - eccBytes[l][v]*numBlocks[l][v]
}

// DataBits returns the data capacity in bits at level l.
func (v Version) DataBits(l Level) int { return v.DataBytes(l) * 8 }

// alignPositions returns the center coordinates of alignment patterns
// along one axis, in ascending order.
func (v Version) alignPositions() []int {
	na := v.numAlign()
	if na == 0 {
		return nil
	}
	step := (int(v)*4 + na*2 + 1) / (na*2 - 2) * 2
	if v == 32 {
		step = 26
	}
	p := make([]int, na)
	p[0] = 6
	for i, pos := na-1, v.Size()-7; i > 0; i, pos = i-1, pos-step {
		p[i] = pos
	}
	return p
}

// bch appends check bits to v, the remainder of dividing v shifted up
// by deg(poly) bits by the generator poly.
func bch(v, poly uint32) uint32 {
	deg := 0
	for p := poly; p > 1; p >>= 1 {
		deg++
	}
	r := v
	for i := 0; i < deg; i++ {
		r = r<<1 ^ r>>uint(deg-1)&1*poly
	}
	return v<<uint(deg) | r&(1<<uint(deg)-1)
}

// formatInfo returns the 15 format information bits for level l and
// mask m: the two level bits and three mask bits, BCH protected and
// masked with the fixed pattern 0x5412.
func formatInfo(l Level, m Mask) uint32 {
	return bch(fbits[l]<<3|uint32(m), 0x537) ^ 0x5412
}

// versionInfo returns the 18 version information bits for v, or 0 for
// versions below 7, which carry none.
func (v Version) versionInfo() uint32 {
	if v < 7 {
		return 0
	}
	return bch(uint32(v), 0x1f25)
}
