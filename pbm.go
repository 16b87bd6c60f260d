// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.
func (c *Code) EncodePBM(w io.Writer) error {
	if !c.isValid() {
		return ErrArgs
	}
	b := bufio.NewWriter(w)
	length := c.Scale * (c.Size + c.Border*2)
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}

	// In PBM a set bit is black.  Encode one row of modules into
	// row, then emit it Scale times.
	blank := make([]byte, (length+7)/8)
	row := make([]byte, len(blank))
	var white byte
	if c.Reverse {
		white = 0xff
	}
	for i := range blank {
		blank[i] = white
	}

	writeRows := func(row []byte, n int) error {
		for i := 0; i < n; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	if err := writeRows(blank, c.Scale*c.Border); err != nil {
		return err
	}
	for y := 0; y < c.Size; y++ {
		copy(row, blank)
		for x := 0; x < c.Size; x++ {
			if !c.Black(x, y) {
				continue
			}
			for i := 0; i < c.Scale; i++ {
				p := (x+c.Border)*c.Scale + i
				row[p/8] ^= 0x80 >> uint(p&7)
			}
		}
		if err := writeRows(row, c.Scale); err != nil {
			return err
		}
	}
	if err := writeRows(blank, c.Scale*c.Border); err != nil {
		return err
	}
	return b.Flush()
}
