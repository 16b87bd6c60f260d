// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"sync"
)

// A Mask is a QR mask pattern number.
type Mask int

// AutoMask selects the mask with the lowest penalty score.
const AutoMask Mask = -1

// ErrMask indicates an invalid mask pattern number.
var ErrMask = errors.New("invalid mask")

func (m Mask) Valid() bool { return m >= 0 && m < 8 }

// masks holds the mask pattern formulas.  Modules outside function
// patterns are inverted where the formula holds.
var masks = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (x/3+y/2)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// A grid is the immutable part of a version's symbol: the positions of
// all function modules and their colors, with dummy format bits.
// Grids are built once per version and shared.
type grid struct {
	siz  int
	fun  []bool // function module positions
	base []bool // function module colors
}

var grids [MaxVersion + 1]struct {
	once sync.Once
	g    *grid
}

func gridFor(v Version) *grid {
	c := &grids[v]
	c.once.Do(func() { c.g = newGrid(v) })
	return c.g
}

func newGrid(v Version) *grid {
	siz := v.Size()
	g := &grid{siz: siz, fun: make([]bool, siz*siz), base: make([]bool, siz*siz)}

	// Timing patterns.
	for i := 0; i < siz; i++ {
		g.set(6, i, i%2 == 0)
		g.set(i, 6, i%2 == 0)
	}

	// Finder patterns with separators, in three corners.
	g.finder(3, 3)
	g.finder(siz-4, 3)
	g.finder(3, siz-4)

	// Alignment patterns, skipping the three finder corners.
	pos := v.alignPositions()
	for i, y := range pos {
		for j, x := range pos {
			if i == 0 && (j == 0 || j == len(pos)-1) ||
				j == 0 && i == len(pos)-1 {
				continue
			}
			g.align(x, y)
		}
	}

	// Reserve the format information areas, skipping the timing
	// patterns.  The actual bits depend on the mask and are drawn
	// per symbol.
	for i := 0; i <= 8; i++ {
		if i != 6 {
			g.set(8, i, false)
			g.set(i, 8, false)
		}
	}
	for i := 0; i < 8; i++ {
		g.set(siz-1-i, 8, false)
	}
	for i := siz - 7; i < siz; i++ {
		g.set(8, i, false)
	}
	g.set(8, siz-8, true) // the dark module

	// Version information, above versions 6.
	if bits := v.versionInfo(); bits != 0 {
		for i := 0; i < 18; i++ {
			d := bits>>uint(i)&1 != 0
			g.set(siz-11+i%3, i/3, d)
			g.set(i/3, siz-11+i%3, d)
		}
	}
	return g
}

func (g *grid) set(x, y int, dark bool) {
	g.base[y*g.siz+x] = dark
	g.fun[y*g.siz+x] = true
}

// finder draws a 9x9 finder pattern with separator centered at (x, y),
// clipped to the grid.
func (g *grid) finder(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || xx >= g.siz || yy < 0 || yy >= g.siz {
				continue
			}
			d := max(abs(dx), abs(dy))
			g.set(xx, yy, d != 2 && d != 4)
		}
	}
}

// align draws a 5x5 alignment pattern centered at (x, y).
func (g *grid) align(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			g.set(x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// A matrix is a mutable symbol under construction.
type matrix struct {
	siz int
	mod []bool // module colors
	fun []bool // function module positions, shared and read-only
}

func newMatrix(v Version) *matrix {
	g := gridFor(v)
	m := &matrix{siz: g.siz, fun: g.fun}
	m.mod = append([]bool(nil), g.base...)
	return m
}

func (m *matrix) at(x, y int) bool { return m.mod[y*m.siz+x] }

func (m *matrix) set(x, y int, dark bool) { m.mod[y*m.siz+x] = dark }

// place writes the interleaved codewords into the symbol in the zigzag
// order mandated for the data region, skipping function modules.
// Remainder bits, if any, are left light.
func (m *matrix) place(data []byte) {
	s := NewBitStream(data)
	siz := m.siz
	for right := siz - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		for vert := 0; vert < siz; vert++ {
			for j := 0; j < 2; j++ {
				x := right - j
				y := vert
				if (right+1)&2 == 0 {
					y = siz - 1 - vert // column pair scans upward
				}
				if !m.fun[y*siz+x] {
					m.set(x, y, s.Next() != 0)
				}
			}
		}
	}
}

// xorMask inverts the non-function modules selected by mask.  Applying
// the same mask twice restores the symbol.
func (m *matrix) xorMask(mask Mask) {
	f := masks[mask]
	for y := 0; y < m.siz; y++ {
		for x := 0; x < m.siz; x++ {
			if !m.fun[y*m.siz+x] && f(x, y) {
				m.set(x, y, !m.at(x, y))
			}
		}
	}
}

// drawFormat draws both copies of the 15 format information bits and
// the dark module.
func (m *matrix) drawFormat(bits uint32) {
	bit := func(i int) bool { return bits>>uint(i)&1 != 0 }
	siz := m.siz

	// First copy, around the top left finder pattern.
	for i := 0; i <= 5; i++ {
		m.set(8, i, bit(i))
	}
	m.set(8, 7, bit(6))
	m.set(8, 8, bit(7))
	m.set(7, 8, bit(8))
	for i := 9; i <= 14; i++ {
		m.set(14-i, 8, bit(i))
	}

	// Second copy, split between the other two finder patterns.
	for i := 0; i <= 7; i++ {
		m.set(siz-1-i, 8, bit(i))
	}
	for i := 8; i <= 14; i++ {
		m.set(8, siz-15+i, bit(i))
	}
	m.set(8, siz-8, true) // the dark module
}

// Penalty scoring constants from the masking evaluation rules.
const (
	penaltyN1 = 3  // five or more same-colored modules in a run
	penaltyN2 = 3  // 2x2 blocks of same-colored modules
	penaltyN3 = 40 // patterns that look like finders
	penaltyN4 = 10 // dark module proportion away from half
)

// runHistory tracks the lengths of the most recent module runs along a
// line, newest first, for finder-like pattern detection.
type runHistory [7]int

func (r *runHistory) push(n int) {
	copy(r[1:], r[:6])
	r[0] = n
}

// finderLike reports a 1:1:3:1:1 dark pattern ending at the current
// point, with a light run at least four times the unit on either side.
func (r *runHistory) finderLike() bool {
	n := r[1]
	return n > 0 && r[2] == n && r[4] == n && r[5] == n &&
		r[3] == 3*n && max(r[0], r[6]) >= 4*n
}

// terminate closes the line: it pushes the final run, then a dummy
// light run if the line ends dark, and checks the edge once more.
func (r *runHistory) terminate(color bool, run int) bool {
	r.push(run)
	if color {
		r.push(0)
	}
	return r.finderLike()
}

// penalty returns the mask evaluation score of the symbol: lower
// scores leave the symbol easier to scan.
func (m *matrix) penalty() int {
	siz, p := m.siz, 0

	// Runs of same-colored modules and finder-like patterns, along
	// rows and columns.
	for y := 0; y < siz; y++ {
		var hist runHistory
		color, run := false, 0
		for x := 0; x < siz; x++ {
			if m.at(x, y) == color {
				if run++; run == 5 {
					p += penaltyN1
				} else if run > 5 {
					p++
				}
			} else {
				hist.push(run)
				if !color && hist.finderLike() {
					p += penaltyN3
				}
				color, run = !color, 1
			}
		}
		if hist.terminate(color, run) {
			p += penaltyN3
		}
	}
	for x := 0; x < siz; x++ {
		var hist runHistory
		color, run := false, 0
		for y := 0; y < siz; y++ {
			if m.at(x, y) == color {
				if run++; run == 5 {
					p += penaltyN1
				} else if run > 5 {
					p++
				}
			} else {
				hist.push(run)
				if !color && hist.finderLike() {
					p += penaltyN3
				}
				color, run = !color, 1
			}
		}
		if hist.terminate(color, run) {
			p += penaltyN3
		}
	}

	// 2x2 blocks of same-colored modules.
	for y := 0; y < siz-1; y++ {
		for x := 0; x < siz-1; x++ {
			c := m.at(x, y)
			if c == m.at(x+1, y) && c == m.at(x, y+1) &&
				c == m.at(x+1, y+1) {
				p += penaltyN2
			}
		}
	}

	// Dark module proportion, in 5% steps away from 50%.
	dark := 0
	for _, d := range m.mod {
		if d {
			dark++
		}
	}
	total := siz * siz
	k := (abs(dark*20-total*10)+total-1)/total - 1
	return p + k*penaltyN4
}
