// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// A Mode is a QR segment encoding mode.
type Mode int

const (
	Numeric      Mode = iota // digits only
	Alphanumeric             // the 45-character alphanumeric set
	Byte                     // raw bytes
	Latin1                   // text transformed to ISO 8859-1 bytes
	Kanji                    // text transformed to Shift JIS double bytes
	ECI                      // Extended Channel Interpretation header
	maxMode
)

var modes = [maxMode]struct {
	name      string
	indicator uint32
	ccBits    [3]int // character count bits per version class
}{
	Numeric:      {"numeric", 1, [3]int{10, 12, 14}},
	Alphanumeric: {"alphanumeric", 2, [3]int{9, 11, 13}},
	Byte:         {"byte", 4, [3]int{8, 16, 16}},
	Latin1:       {"latin-1", 4, [3]int{8, 16, 16}},
	Kanji:        {"kanji", 8, [3]int{8, 10, 12}},
	ECI:          {"eci", 7, [3]int{0, 0, 0}},
}

func (m Mode) String() string {
	if m < 0 || m >= maxMode {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modes[m].name
}

// CountBits returns the width in bits of the character count field for
// mode m in the given version size class.
func (m Mode) CountBits(class int) int {
	return modes[m].ccBits[class]
}

// alnum maps the 45 alphanumeric mode characters to their values.
const alnum = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// shiftJIS pools Shift JIS encoders: IsKanji runs per rune during
// splitting, and encoders carry state so one cannot be shared.
var shiftJIS = sync.Pool{
	New: func() interface{} { return japanese.ShiftJIS.NewEncoder() },
}

// IsKanji reports whether r encodes as a Shift JIS double byte
// representable in kanji mode.
func IsKanji(r rune) bool {
	e := shiftJIS.Get().(*encoding.Encoder)
	s, err := e.String(string(r))
	shiftJIS.Put(e)
	if err != nil || len(s) != 2 {
		return false
	}
	_, err = kanjiValue(s[0], s[1])
	return err == nil
}

// kanjiValue packs a Shift JIS double byte into its 13-bit kanji mode
// value.
func kanjiValue(b0, b1 byte) (uint32, error) {
	x := uint32(b0)<<8 | uint32(b1)
	switch {
	case x >= 0x8140 && x <= 0x9ffc:
		x -= 0x8140
	case x >= 0xe040 && x <= 0xebbf:
		x -= 0xc140
	default:
		return 0, fmt.Errorf("byte pair %#04x out of kanji range", x)
	}
	return x>>8*0xc0 + x&0xff, nil
}

// A Segment is a run of text to be encoded in a single mode.  For ECI
// segments Text holds the designator's raw payload bytes.
type Segment struct {
	Text string
	Mode Mode
}

func (s Segment) String() string {
	return fmt.Sprintf("%s %q", s.Mode, s.Text)
}

// ErrNotEncodable reports text that the chosen mode cannot represent.
var ErrNotEncodable = errors.New("text not encodable")

func (s Segment) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s segment: %w: "+format,
		append([]interface{}{s.Mode, ErrNotEncodable}, args...)...)
}

// transform returns the byte string actually encoded for s: Latin1 and
// Kanji segments are transformed to their target character sets, other
// modes are encoded as is.
func (s Segment) transform() (string, error) {
	switch s.Mode {
	case Latin1:
		t, err := charmap.ISO8859_1.NewEncoder().String(s.Text)
		if err != nil {
			return "", s.errorf("%v", err)
		}
		return t, nil
	case Kanji:
		t, err := japanese.ShiftJIS.NewEncoder().String(s.Text)
		if err != nil {
			return "", s.errorf("%v", err)
		}
		if len(t)%2 != 0 {
			return "", s.errorf("single byte character")
		}
		return t, nil
	}
	return s.Text, nil
}

// count returns the value of the character count field for the
// transformed text t.
func (s Segment) count(t string) int {
	if s.Mode == Kanji {
		return len(t) / 2
	}
	return len(t)
}

// EncodedBits returns the encoded length of s in bits, including the
// mode indicator and character count field, for the given version size
// class.  The segment need not be valid; invalid characters are caught
// by Encode.
func (s Segment) EncodedBits(class int) int {
	var n int
	switch s.Mode {
	case Numeric:
		n = (len(s.Text)*10 + 2) / 3
	case Alphanumeric:
		n = (len(s.Text)*11 + 1) / 2
	case Byte, ECI:
		n = len(s.Text) * 8
	case Latin1:
		n = strings.Count(s.Text, "") - 1 // rune count
		n *= 8
	case Kanji:
		n = (strings.Count(s.Text, "") - 1) * 13
	}
	return 4 + s.Mode.CountBits(class) + n
}

// Encode appends the encoded form of s to b for the given version size
// class.
func (s Segment) Encode(b *Bits, class int) error {
	t, err := s.transform()
	if err != nil {
		return err
	}
	cc := s.Mode.CountBits(class)
	n := s.count(t)
	if s.Mode != ECI && n >= 1<<uint(cc) {
		return fmt.Errorf("%s segment: %d characters do not fit in a %d-bit count: %w",
			s.Mode, n, cc, ErrLongText)
	}
	b.Write(modes[s.Mode].indicator, 4)
	b.Write(uint32(n), cc)
	switch s.Mode {
	case Numeric:
		for i := 0; i < len(t); i += 3 {
			var v uint32
			n := min(3, len(t)-i)
			for _, c := range []byte(t[i : i+n]) {
				if c < '0' || c > '9' {
					return s.errorf("invalid character %q", c)
				}
				v = v*10 + uint32(c-'0')
			}
			b.Write(v, n*3+1)
		}
	case Alphanumeric:
		for i := 0; i < len(t); i += 2 {
			var v uint32
			n := min(2, len(t)-i)
			for _, c := range []byte(t[i : i+n]) {
				j := strings.IndexByte(alnum, c)
				if j < 0 {
					return s.errorf("invalid character %q", c)
				}
				v = v*45 + uint32(j)
			}
			b.Write(v, n*5+1)
		}
	case Byte, Latin1, ECI:
		for _, c := range []byte(t) {
			b.Write(uint32(c), 8)
		}
	case Kanji:
		for i := 0; i < len(t); i += 2 {
			v, err := kanjiValue(t[i], t[i+1])
			if err != nil {
				return s.errorf("%v", err)
			}
			b.Write(v, 13)
		}
	default:
		return fmt.Errorf("invalid mode %d", int(s.Mode))
	}
	return nil
}

// ECISegment returns a segment carrying the ECI designator for the
// given assignment number.
func ECISegment(eci uint32) (Segment, error) {
	var b Bits
	switch {
	case eci < 1<<7:
		b.Write(eci, 8)
	case eci < 1<<14:
		b.Write(2<<14|eci, 16)
	case eci < 1000000:
		b.Write(6<<21|eci, 24)
	default:
		return Segment{}, fmt.Errorf("invalid ECI assignment %d", eci)
	}
	return Segment{Text: string(b.Bytes()), Mode: ECI}, nil
}
