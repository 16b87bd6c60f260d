// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois field GF(256)
// and Reed-Solomon error correction encoding over it.
package gf256

// A Field represents an instance of GF(256) defined by a generator α
// and a primitive polynomial of degree 8.
type Field struct {
	log [256]byte // log[0] is unused
	exp [510]byte // exp[log x + log y] = x*y
}

// NewField returns a Field defined by the given primitive polynomial
// and generator α.  The polynomial must be of degree 8 with the low
// bit set, and α must be a generator of the resulting field.  NewField
// panics otherwise.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 || poly&1 == 0 {
		panic("gf256: invalid polynomial")
	}
	var f Field
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: not a generator")
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	if f.log[1] != 0 {
		panic("gf256: invalid field")
	}
	return &f
}

// mul multiplies a and b modulo poly, bit by bit.  It is used only
// during table construction; Mul uses the tables.
func mul(a, b, poly int) int {
	var p int
	for ; b != 0; b >>= 1 {
		if b&1 != 0 {
			p ^= a
		}
		if a <<= 1; a&0x100 != 0 {
			a ^= poly
		}
	}
	return p
}

// Exp returns α**e.
func (f *Field) Exp(e int) byte {
	return f.exp[e%255]
}

// Log returns log base α of x.  Log panics if x == 0, as zero has no
// logarithm.
func (f *Field) Log(x byte) byte {
	if x == 0 {
		panic("gf256: log(0)")
	}
	return f.log[x]
}

// Mul returns the product x*y.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// Inv returns the multiplicative inverse of x.  Inv panics if x == 0,
// as zero has no inverse.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		panic("gf256: inv(0)")
	}
	return f.exp[255-int(f.log[x])]
}

// Gen returns the monic generator polynomial for Reed-Solomon codes
// with the given number of check bytes: the product of (x - α**i) for
// i = 0..degree-1.  Coefficients are in order of descending powers,
// gen[0] being the (always 1) coefficient of x**degree.
func (f *Field) Gen(degree int) []byte {
	if degree < 1 || degree > 255 {
		panic("gf256: invalid degree")
	}
	gen := make([]byte, 1, degree+1)
	gen[0] = 1
	for i := 0; i < degree; i++ {
		// Multiply gen by (x - α**i).  In GF(256) subtraction
		// is xor, so the constant term is α**i.
		root := f.Exp(i)
		gen = append(gen, 0)
		for j := len(gen) - 1; j > 0; j-- {
			gen[j] ^= f.Mul(gen[j-1], root)
		}
		// gen[0] stays 1: the polynomial is monic.
	}
	return gen
}

// An RSEncoder computes Reed-Solomon error correction codewords over
// a Field with a fixed number of check bytes per block.
type RSEncoder struct {
	f   *Field
	c   int
	gen []byte // generator polynomial sans the leading 1
}

// NewRSEncoder returns an RSEncoder computing c check bytes over f.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	return &RSEncoder{f: f, c: c, gen: f.Gen(c)[1:]}
}

// ECC writes the error correction codewords for data to check, whose
// length must be the encoder's check byte count.  data and check must
// not overlap.
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) != rs.c {
		panic("gf256: invalid check byte length")
	}
	// Polynomial long division of data*x**c by the generator;
	// check accumulates the remainder.
	f, gen := rs.f, rs.gen
	for i := range check {
		check[i] = 0
	}
	for _, b := range data {
		factor := b ^ check[0]
		copy(check, check[1:])
		check[len(check)-1] = 0
		if factor == 0 {
			continue
		}
		lf := int(f.log[factor])
		for i, g := range gen {
			if g != 0 {
				check[i] ^= f.exp[lf+int(f.log[g])]
			}
		}
	}
}
