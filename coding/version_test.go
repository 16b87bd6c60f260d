// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionSize(t *testing.T) {
	assert.Equal(t, 21, Version(1).Size())
	assert.Equal(t, 25, Version(2).Size())
	assert.Equal(t, 177, Version(40).Size())
}

func TestSizeClass(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		want := 0
		switch {
		case v >= 27:
			want = 2
		case v >= 10:
			want = 1
		}
		assert.Equal(t, want, v.SizeClass(), "version %s", v)
	}
}

func TestCapacity(t *testing.T) {
	// Worked values from the standard's tables.
	assert.Equal(t, 26, Version(1).TotalBytes())
	assert.Equal(t, 44, Version(2).TotalBytes())
	assert.Equal(t, 3706, Version(40).TotalBytes())
	assert.Equal(t, 16, Version(1).DataBytes(M))
	assert.Equal(t, 9, Version(1).DataBytes(H))
	assert.Equal(t, 2956, Version(40).DataBytes(L))
	assert.Equal(t, 23648, Version(40).DataBits(L))
}

func TestCapacityMonotonic(t *testing.T) {
	for _, l := range []Level{L, M, Q, H} {
		for v := MinVersion; v < MaxVersion; v++ {
			assert.Less(t, v.DataBytes(l), (v + 1).DataBytes(l),
				"version %s level %s", v, l)
		}
	}
}

func TestBlockStructure(t *testing.T) {
	for _, l := range []Level{L, M, Q, H} {
		for v := MinVersion; v <= MaxVersion; v++ {
			nb, ec := numBlocks[l][v], eccBytes[l][v]
			total := v.TotalBytes()
			assert.Positive(t, nb)
			assert.Positive(t, ec)
			// Check bytes and data codewords tile the symbol.
			assert.Equal(t, total-nb*ec, v.DataBytes(l))
			// Every block must hold at least one data byte.
			assert.Greater(t, total/nb-ec, 0,
				"version %s level %s", v, l)
		}
	}
}

func TestAlignPositions(t *testing.T) {
	for _, tc := range []struct {
		v    Version
		want []int
	}{
		{1, nil},
		{2, []int{6, 18}},
		{7, []int{6, 22, 38}},
		{32, []int{6, 34, 60, 86, 112, 138}},
		{40, []int{6, 30, 58, 86, 114, 142, 170}},
	} {
		assert.Equal(t, tc.want, tc.v.alignPositions(), "version %s", tc.v)
	}
}

func TestFormatInfo(t *testing.T) {
	// Known format information sequences.
	assert.Equal(t, uint32(0x5412), formatInfo(M, 0))
	assert.Equal(t, uint32(0x77c4), formatInfo(L, 0))
	for _, l := range []Level{L, M, Q, H} {
		for m := Mask(0); m < 8; m++ {
			bits := formatInfo(l, m)
			assert.Less(t, bits, uint32(1<<15))
			// The masked-out data bits must survive the trip.
			data := bits ^ 0x5412
			assert.Equal(t, fbits[l]<<3|uint32(m), data>>10,
				"level %s mask %d", l, m)
		}
	}
	// All 32 sequences are distinct.
	seen := map[uint32]string{}
	for _, l := range []Level{L, M, Q, H} {
		for m := Mask(0); m < 8; m++ {
			k := formatInfo(l, m)
			assert.NotContains(t, seen, k)
			seen[k] = fmt.Sprintf("%s%d", l, m)
		}
	}
}

func TestVersionInfo(t *testing.T) {
	for v := MinVersion; v < 7; v++ {
		assert.Zero(t, v.versionInfo())
	}
	// The standard's worked example for version 7.
	assert.Equal(t, uint32(0x07c94), Version(7).versionInfo())
	for v := Version(7); v <= MaxVersion; v++ {
		bits := v.versionInfo()
		assert.Equal(t, uint32(v), bits>>12)
	}
}
