// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The QR code field.
var f = NewField(0x11d, 2)

// mulSlow multiplies a and b in GF(256) mod 0x11d without tables,
// for cross-checking.
func mulSlow(a, b byte) byte {
	var p int
	aa := int(a)
	for ; b != 0; b >>= 1 {
		if b&1 != 0 {
			p ^= aa
		}
		if aa <<= 1; aa&0x100 != 0 {
			aa ^= 0x11d
		}
	}
	return byte(p)
}

func TestFieldTables(t *testing.T) {
	assert.EqualValues(t, 1, f.Exp(0))
	assert.EqualValues(t, 2, f.Exp(1))
	assert.EqualValues(t, 0x1d, f.Exp(8)) // x**8 = poly mod x**8
	assert.EqualValues(t, 0, f.Log(1))
	assert.EqualValues(t, 1, f.Log(2))
	for e := 0; e < 255; e++ {
		assert.EqualValues(t, e, f.Log(f.Exp(e)))
	}
}

func TestMul(t *testing.T) {
	assert.EqualValues(t, 9, f.Mul(3, 7)) // (x+1)(x²+x+1) = x³+1
	assert.EqualValues(t, 0, f.Mul(0, 0xff))
	assert.EqualValues(t, 0, f.Mul(0xff, 0))
	for x := 0; x < 256; x++ {
		for y := 0; y < 256; y += 7 {
			assert.Equal(t, mulSlow(byte(x), byte(y)),
				f.Mul(byte(x), byte(y)))
		}
	}
}

func TestInv(t *testing.T) {
	for x := 1; x < 256; x++ {
		assert.EqualValues(t, 1, f.Mul(byte(x), f.Inv(byte(x))))
	}
}

func TestGen(t *testing.T) {
	// (x-1)(x-2) = x² + 3x + 2
	assert.Equal(t, []byte{1, 3, 2}, f.Gen(2))
	// The standard degree 4 generator.
	assert.Equal(t, []byte{1, 15, 54, 120, 64}, f.Gen(4))
	// Every generator polynomial has each α**i, i < degree, as a root.
	for _, degree := range []int{7, 10, 13, 30} {
		gen := f.Gen(degree)
		for i := 0; i < degree; i++ {
			assert.EqualValues(t, 0, polyEval(gen, f.Exp(i)),
				"degree %d root %d", degree, i)
		}
	}
}

// polyEval evaluates the polynomial with the given coefficients
// (descending powers) at x.
func polyEval(p []byte, x byte) byte {
	var v byte
	for _, c := range p {
		v = mulSlow(v, x) ^ c
	}
	return v
}

func TestECC(t *testing.T) {
	// ISO/IEC 18004 worked example: "01234567", version 1-M.
	data := []byte{
		0x10, 0x20, 0x0c, 0x56, 0x61, 0x80, 0xec, 0x11,
		0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11,
	}
	want := []byte{
		0xa5, 0x24, 0xd4, 0xc1, 0xed, 0x36, 0xc7, 0x87, 0x2c, 0x55,
	}
	rs := NewRSEncoder(f, len(want))
	check := make([]byte, len(want))
	rs.ECC(data, check)
	require.Equal(t, want, check)
}

func TestECCSyndromes(t *testing.T) {
	// The full codeword polynomial evaluates to zero at every root
	// of the generator.
	data := []byte("syndromes vanish at the roots of the generator")
	for _, c := range []int{1, 2, 10, 17, 30} {
		check := make([]byte, c)
		NewRSEncoder(f, c).ECC(data, check)
		code := append(append([]byte{}, data...), check...)
		for i := 0; i < c; i++ {
			assert.EqualValues(t, 0, polyEval(code, f.Exp(i)),
				"check bytes %d, root %d", c, i)
		}
	}
}
