// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.

Encode splits text into segments, picks the smallest version that
holds them at the requested error correction level, and builds the
symbol:

	code, err := qr.Encode("HELLO WORLD", qr.M)

The resulting Code renders as an image.Image, PNG, PBM, or text for
terminals.
*/
package qr // import "github.com/tkhsv/qr"

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/tkhsv/qr/coding"
	"github.com/tkhsv/qr/split"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

// An Option adjusts encoding.
type Option func(*config)

type config struct {
	version coding.Version // 0 selects the smallest fitting version
	mask    coding.Mask
	eci     int64 // -1 for none
	boost   bool
	latin1  bool
	noKanji bool
}

// WithVersion forces the given version, 1 to 40, instead of the
// smallest one that fits.
func WithVersion(v int) Option {
	return func(c *config) { c.version = coding.Version(v) }
}

// WithMask forces mask pattern m, 0 to 7, instead of the one with the
// lowest penalty score.
func WithMask(m int) Option {
	return func(c *config) { c.mask = coding.Mask(m) }
}

// WithECI prepends an Extended Channel Interpretation designator with
// the given assignment number, such as 26 for UTF-8.
func WithECI(assignment uint32) Option {
	return func(c *config) { c.eci = int64(assignment) }
}

// WithBoostedLevel raises the error correction level as far as the
// chosen version's capacity allows.
func WithBoostedLevel() Option {
	return func(c *config) { c.boost = true }
}

// WithLatin1 encodes byte mode segments as ISO 8859-1 rather than
// UTF-8.  Text outside ISO 8859-1 becomes unencodable.
func WithLatin1() Option {
	return func(c *config) { c.latin1 = true }
}

// WithoutKanji disables kanji mode; kanji encode as UTF-8 bytes.
func WithoutKanji() Option {
	return func(c *config) { c.noKanji = true }
}

// Encode returns an encoding of text at the given error correction
// level.
func Encode(text string, level Level, opts ...Option) (*Code, error) {
	cfg := config{mask: coding.AutoMask, eci: -1}
	for _, o := range opts {
		o(&cfg)
	}
	l := coding.Level(level)
	if !l.Valid() {
		return nil, coding.ErrLevel
	}

	segs := split.Text(text, split.Rules{
		Kanji:  !cfg.noKanji,
		Latin1: cfg.latin1,
	})
	if cfg.eci >= 0 {
		eci, err := coding.ECISegment(uint32(cfg.eci))
		if err != nil {
			return nil, err
		}
		segs = append([]coding.Segment{eci}, segs...)
	}

	lo, hi := coding.MinVersion, coding.MaxVersion
	if cfg.version != 0 {
		lo, hi = cfg.version, cfg.version
	}
	v, err := split.Fit(segs, l, lo, hi)
	if err != nil {
		return nil, err
	}
	if cfg.boost {
		l = split.Boost(segs, v, l)
	}

	cc, err := coding.Encode(v, l, cfg.mask, segs...)
	if err != nil {
		return nil, err
	}
	return &Code{
		Bitmap:  cc.Bitmap,
		Size:    cc.Size,
		Stride:  cc.Stride,
		Scale:   8,
		Border:  4,
		Version: int(cc.Version),
		Level:   Level(cc.Level),
		Mask:    int(cc.Mask),
	}, nil
}

// ErrArgs reports invalid rendering parameters.
var ErrArgs = errors.New("qr: invalid arguments")

// A Code is a square pixel grid.
// It implements image.Image and PNG, PBM and text rendering.
type Code struct {
	Bitmap  []byte // 1 is black, 0 is white
	Size    int    // number of pixels on a side
	Stride  int    // number of bytes per row
	Scale   int    // number of image pixels per QR pixel
	Border  int    // size of the quiet zone in QR pixels
	Reverse bool   // render white on black

	Version int   // QR version, 1 to 40
	Level   Level // error correction level
	Mask    int   // mask pattern, 0 to 7
}

func (c *Code) isValid() bool {
	return c.Size > 0 && c.Scale > 0 && c.Border >= 0 &&
		c.Stride >= (c.Size+7)/8 && len(c.Bitmap) >= c.Size*c.Stride
}

// Black returns true if the pixel at (x,y) is black.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7-x&7)) != 0
}

// Image returns an Image displaying the code, honoring Scale, Border
// and Reverse.
func (c *Code) Image() image.Image {
	return &codeImage{c}
}

// EncodePNG writes a PNG image displaying the code to w.
func (c *Code) EncodePNG(w io.Writer) error {
	if !c.isValid() {
		return ErrArgs
	}
	return png.Encode(w, c.Image())
}

// String renders the code for a terminal, two rows of QR pixels per
// line of half-block characters.  Scale is ignored.
func (c *Code) String() string {
	// Terminals are usually light on dark, so dark modules print as
	// blanks and light ones as blocks; Reverse flips them.
	glyphs := [4]string{" ", "▀", "▄", "█"}
	if !c.Reverse {
		glyphs = [4]string{"█", "▄", "▀", " "}
	}
	var sb strings.Builder
	bord := c.Border
	for y := -bord; y < c.Size+bord; y += 2 {
		for x := -bord; x < c.Size+bord; x++ {
			g := 0
			if c.Black(x, y) {
				g |= 1
			}
			if c.Black(x, y+1) {
				g |= 2
			}
			sb.WriteString(glyphs[g])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// codeImage implements image.Image.
type codeImage struct {
	*Code
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (c *codeImage) Bounds() image.Rectangle {
	d := (c.Size + c.Border*2) * c.Scale
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) At(x, y int) color.Color {
	black := c.Black(x/c.Scale-c.Border, y/c.Scale-c.Border)
	if black != c.Reverse {
		return blackColor
	}
	return whiteColor
}

func (c *codeImage) ColorModel() color.Model {
	return color.GrayModel
}
