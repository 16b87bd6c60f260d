// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Qr encodes its arguments, or standard input, as a QR code.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"

	"github.com/tkhsv/qr"
)

// ECI assignment numbers for the character sets the flags select.
const (
	latin1ECI = 3
	utf8ECI   = 26
)

var g = struct {
	scale  int      // image pixels per module
	border int      // quiet zone
	rev    bool     // reverse colours
	fn     string   // output filename
	lev    qr.Level // error correction level
	format int      // output format index
	opts   []qr.Option
}{}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	fmt.Fprint(w, "QR code generator\nUsage: ",
		cl.UsageLine(), " [string ...]", `
If no string is given, data is read from standard input and the final
newline is stripped.  Defaults: UTF-8 input, no conversion, kanji mode
segments enabled, no ECI segment.

`)
	cl.PrintOptions(w)
}

func version() {
	fmt.Println("qr version 1.0.0")
	os.Exit(0)
}

var formats = []string{
	"png", "pngi", "pbm", "pbmi", "utf8", "utf8i", "ascii", "asciii",
}

var encoders = [...]func(*qr.Code, io.Writer) error{
	(*qr.Code).EncodePNG,
	(*qr.Code).EncodePBM,
	func(c *qr.Code, w io.Writer) error {
		_, err := io.WriteString(w, c.String())
		return err
	},
	ascii,
}

func parseFlags() (upper bool) {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version").SetFlag()
	latin1 := getopt.Bool('1', "convert byte mode segments to Latin-1")
	noKanji := getopt.Bool('K', "disable kanji mode")
	boost := getopt.Bool('b', "boost error correction level "+
		"within the chosen version")
	eciflag := getopt.Bool('e', "encode ECI segment setting character "+
		"encoding according to -1")
	eci := getopt.Signed('E', -1, &getopt.SignedLimit{Base: 0, Bits: 21, Min: 0, Max: 999999},
		"encode ECI segment with the given value; overrides -e", "eci")
	getopt.Flag(&upper, 'i', "ignore case, convert input to uppercase")
	ver := getopt.Unsigned('v', 0, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"QR code version; default is the smallest that fits", "ver")
	mask := getopt.Signed('p', -1, &getopt.SignedLimit{Base: 0, Bits: 4, Min: 0, Max: 7},
		"mask pattern; default is the lowest penalty score", "pattern")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest", "l|m|q|h")
	scale := getopt.Unsigned('s', 8, &getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 1, Max: 1 << 16},
		"image pixels per QR module", "scale")
	getopt.Flag(&g.border, 'm', "quiet zone modules [4]", "margin")
	getopt.Flag(&g.fn, 'o', `output file, or "-" for standard output`,
		"file")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	g.scale = int(*scale)
	g.lev = qr.Level(strings.Index("lmqhLMQH", *lev) & 3)
	if !getopt.IsSet('m') {
		g.border = 4
	}
	if *ff == "" {
		if !getopt.IsSet('o') &&
			isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.rev = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}

	if *latin1 {
		g.opts = append(g.opts, qr.WithLatin1())
	}
	if *noKanji {
		g.opts = append(g.opts, qr.WithoutKanji())
	}
	if *boost {
		g.opts = append(g.opts, qr.WithBoostedLevel())
	}
	if *ver != 0 {
		g.opts = append(g.opts, qr.WithVersion(int(*ver)))
	}
	if *mask >= 0 {
		g.opts = append(g.opts, qr.WithMask(int(*mask)))
	}
	if *eciflag && !getopt.IsSet('E') {
		if *latin1 {
			*eci = latin1ECI
		} else {
			*eci = utf8ECI
		}
	}
	if *eci >= 0 {
		g.opts = append(g.opts, qr.WithECI(uint32(*eci)))
	}
	return
}

func main() {
	log.SetFlags(0)
	upper := parseFlags()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if upper {
		s = strings.ToUpper(s)
	}

	c, err := qr.Encode(s, g.lev, g.opts...)
	if err != nil {
		log.Fatalln(err)
	}
	c.Scale = g.scale
	c.Border = g.border
	c.Reverse = g.rev

	w := os.Stdout
	if g.fn != "" {
		if w, err = os.OpenFile(g.fn,
			os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666); err != nil {
			log.Fatalln(err)
		}
	}
	err = encoders[g.format](c, w)
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

// ascii renders the code two characters per module.
func ascii(c *qr.Code, w io.Writer) error {
	siz, bord := c.Size, c.Border
	pix := siz + 2*bord
	b := make([]byte, 0, (pix*2+1)*pix)
	for y := -bord; y < siz+bord; y++ {
		for x := -bord; x < siz+bord; x++ {
			var p byte = ' '
			if c.Black(x, y) != c.Reverse {
				p = '#'
			}
			b = append(b, p, p)
		}
		b = append(b, '\n')
	}
	_, err := w.Write(b)
	return err
}
