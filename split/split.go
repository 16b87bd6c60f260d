// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits strings into QR code segments and fits them to a
version.

Each rune is classified into the cheapest mode that can represent it,
and adjacent runes of the same mode form one segment.  Unlike an
optimal splitter this can emit short segments whose headers outweigh
their savings, but it is predictable and close to optimal for typical
text.
*/
package split // import "github.com/tkhsv/qr/split"

import (
	"fmt"
	"unicode/utf8"

	"github.com/tkhsv/qr/coding"
)

// Rules controls how text is split into segments.
type Rules struct {
	Kanji  bool // use kanji mode for Shift JIS double byte runs
	Latin1 bool // encode byte mode segments as ISO 8859-1
}

// class returns the mode bucket for r under the rules.
func (ru Rules) class(r rune) coding.Mode {
	switch {
	case r >= '0' && r <= '9':
		return coding.Numeric
	case r < 0x80 && alnumClass[r]:
		return coding.Alphanumeric
	case ru.Kanji && coding.IsKanji(r):
		return coding.Kanji
	case ru.Latin1:
		return coding.Latin1
	}
	return coding.Byte
}

// alnumClass marks the non-digit characters of the alphanumeric set.
var alnumClass = func() (t [128]bool) {
	for _, c := range "ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:" {
		t[c] = true
	}
	return
}()

// Text splits text into segments, one per run of same-mode runes.
// Empty text yields a single empty byte mode segment.
func Text(text string, ru Rules) []coding.Segment {
	if text == "" {
		return []coding.Segment{{Mode: coding.Byte}}
	}
	var segs []coding.Segment
	start, mode := 0, coding.Mode(-1)
	for i, r := range text {
		if m := ru.class(r); m != mode {
			if mode >= 0 {
				segs = append(segs, coding.Segment{
					Text: text[start:i],
					Mode: mode,
				})
			}
			start, mode = i, m
		}
	}
	return append(segs, coding.Segment{Text: text[start:], Mode: mode})
}

// fits reports whether the segments fit into a symbol of the given
// version and level, with every character count within its field.
func fits(segs []coding.Segment, v coding.Version, l coding.Level) bool {
	class, bits := v.SizeClass(), 0
	for _, s := range segs {
		if s.Mode != coding.ECI {
			n := len(s.Text)
			if s.Mode != coding.Numeric &&
				s.Mode != coding.Alphanumeric &&
				s.Mode != coding.Byte {
				n = utf8.RuneCountInString(s.Text)
			}
			if n >= 1<<uint(s.Mode.CountBits(class)) {
				return false
			}
		}
		bits += s.EncodedBits(class)
	}
	return bits <= v.DataBits(l)
}

// Fit returns the smallest version in [lo, hi] whose capacity at level
// l holds the segments.  As character count fields widen with the
// version, segment sizes are remeasured at each version class.
func Fit(segs []coding.Segment, l coding.Level, lo, hi coding.Version) (coding.Version, error) {
	if !lo.Valid() || !hi.Valid() || lo > hi {
		return 0, fmt.Errorf("%w range %d-%d",
			coding.ErrVersion, int(lo), int(hi))
	}
	for v := lo; v <= hi; v++ {
		if fits(segs, v, l) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%d segments do not fit version %s-%s: %w",
		len(segs), hi, l, coding.ErrLongText)
}

// Boost returns the highest error correction level that still holds
// the segments in a version v symbol.  It never returns less than l.
func Boost(segs []coding.Segment, v coding.Version, l coding.Level) coding.Level {
	for _, b := range []coding.Level{coding.M, coding.Q, coding.H} {
		if b > l && fits(segs, v, b) {
			l = b
		}
	}
	return l
}
