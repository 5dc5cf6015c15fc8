// Copyright 2025 The Lvconv Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package wbmp implements the WBMP (Wireless Bitmap) image file format, type 0
// (uncompressed, one bit per pixel).
//
// A WBMP file is a type byte and a fixed header byte (both conventionally
// zero), then the width and height as multi-byte integers, then height rows of
// ceil(width/8) bytes each. Pixels are stored most significant bit first. A 0
// bit is black and a 1 bit is white. Each row is byte aligned and any padding
// bits at the end of a row carry no meaning.
//
// WBMP is specified in the WAP-237 Wireless Application Environment
// specification, section 6.
package wbmp

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// Magic is the byte string prefix of a type 0 WBMP image file. It is weak: the
// two bytes are zero.
const Magic = "\x00\x00"

// MaxDimension bounds the width and height accepted by Decode, which
// allocates the whole image. The streaming Decoder has no such limit.
const MaxDimension = 16384

func init() {
	image.RegisterFormat("wbmp", Magic, Decode, DecodeConfig)
}

var (
	ErrBadArgument        = errors.New("wbmp: bad argument")
	ErrBadVarint          = errors.New("wbmp: unexpected EOF while reading varint")
	ErrImageIsTooLarge    = errors.New("wbmp: image is too large")
	ErrTruncatedHeader    = errors.New("wbmp: truncated header")
	ErrVarintOverflow     = errors.New("wbmp: varint overflows 32 bits")
	ErrUnexpectedHeader   = errors.New("wbmp: unexpected header")
	ErrTruncatedPixelData = errors.New("wbmp: unexpected EOF in image data")
)

// Header is the WBMP file header.
type Header struct {
	Type   byte
	Fixed  byte
	Width  uint32
	Height uint32
}

// Stride returns the number of bytes per packed row.
func (h Header) Stride() int {
	return int((uint64(h.Width) + 7) / 8)
}

// ReadHeader reads the two literal header bytes and the width and height from
// r. It does not check the literal bytes' values.
func ReadHeader(r io.ByteReader) (Header, error) {
	h := Header{}
	var err error
	if h.Type, err = r.ReadByte(); err != nil {
		return Header{}, headerErr(err)
	}
	if h.Fixed, err = r.ReadByte(); err != nil {
		return Header{}, headerErr(err)
	}
	if h.Width, err = ReadVarint(r); err != nil {
		return Header{}, err
	}
	if h.Height, err = ReadVarint(r); err != nil {
		return Header{}, err
	}
	return h, nil
}

func headerErr(err error) error {
	if err == io.EOF {
		return ErrTruncatedHeader
	}
	return err
}

// AppendHeader appends the encoding of h to b.
func AppendHeader(b []byte, h Header) []byte {
	b = append(b, h.Type, h.Fixed)
	b = AppendVarint(b, h.Width)
	return AppendVarint(b, h.Height)
}

// DecodeOptions are optional arguments to NewDecoder. The zero value is valid
// and means to use the default configuration.
type DecodeOptions struct {
	// Warn, if non-nil, is called with recoverable problems: an
	// ErrUnexpectedHeader or ErrTruncatedPixelData, possibly wrapped. Decoding
	// continues (or ends gracefully) after Warn returns.
	Warn func(error)
}

// Decoder reads a WBMP image one row at a time.
type Decoder struct {
	r         *bufio.Reader
	warn      func(error)
	header    Header
	packed    []byte
	y         int
	truncated bool
}

// NewDecoder reads the WBMP header from r and returns a Decoder positioned at
// the first row of pixel data.
//
// options may be nil, which means to use the default configuration.
func NewDecoder(r io.Reader, options *DecodeOptions) (*Decoder, error) {
	if r == nil {
		return nil, ErrBadArgument
	}
	d := &Decoder{warn: func(error) {}}
	if (options != nil) && (options.Warn != nil) {
		d.warn = options.Warn
	}
	if br, ok := r.(*bufio.Reader); ok {
		d.r = br
	} else {
		d.r = bufio.NewReader(r)
	}

	h, err := ReadHeader(d.r)
	if err != nil {
		return nil, err
	}
	if (h.Type != 0x00) || (h.Fixed != 0x00) {
		d.warn(fmt.Errorf("%w: type 0x%02X, fixed 0x%02X, proceeding anyway",
			ErrUnexpectedHeader, h.Type, h.Fixed))
	}
	d.header = h
	d.packed = make([]byte, h.Stride())
	return d, nil
}

// Header returns the decoded file header.
func (d *Decoder) Header() Header { return d.header }

// Width returns the image width in pixels.
func (d *Decoder) Width() int { return int(d.header.Width) }

// Height returns the image height in pixels, as declared by the header.
func (d *Decoder) Height() int { return int(d.header.Height) }

// Stride returns the number of bytes per packed row.
func (d *Decoder) Stride() int { return len(d.packed) }

// RowsDecoded returns how many complete rows NextRow has produced.
func (d *Decoder) RowsDecoded() int { return d.y }

// Truncated returns whether the pixel data ended before the declared height.
func (d *Decoder) Truncated() bool { return d.truncated }

// NextRow reads the next packed row and unpacks it into dst[:Width()], one
// luminance byte per pixel: 0xFF for white and 0x00 for black.
//
// It returns io.EOF after the last row. A short row also ends decoding with
// io.EOF, after reporting ErrTruncatedPixelData through the Warn option.
func (d *Decoder) NextRow(dst []byte) error {
	if len(dst) < d.Width() {
		return ErrBadArgument
	}
	if d.truncated || (d.y >= d.Height()) {
		return io.EOF
	}
	if _, err := io.ReadFull(d.r, d.packed); err != nil {
		if (err != io.EOF) && (err != io.ErrUnexpectedEOF) {
			return err
		}
		d.truncated = true
		d.warn(fmt.Errorf("%w: row %d of %d", ErrTruncatedPixelData, d.y, d.Height()))
		return io.EOF
	}
	UnpackRow(dst, d.packed, d.Width())
	d.y++
	return nil
}

// UnpackRow expands the first width bits of packed, most significant bit
// first, into dst[:width]. Bits past width are ignored.
func UnpackRow(dst []byte, packed []byte, width int) {
	for x := range width {
		if ((packed[x>>3] >> (7 - uint(x&7))) & 1) != 0 {
			dst[x] = 0xFF
		} else {
			dst[x] = 0x00
		}
	}
}

// DecodeConfig reads a WBMP image configuration from r.
func DecodeConfig(r io.Reader) (image.Config, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	h, err := ReadHeader(br)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.GrayModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}

// Decode reads a WBMP image from r. The result is an *image.Gray.
//
// Truncated pixel data is not an error: the rows that are missing are left
// black.
func Decode(r io.Reader) (image.Image, error) {
	d, err := NewDecoder(r, nil)
	if err != nil {
		return nil, err
	}
	if (d.Width() > MaxDimension) || (d.Height() > MaxDimension) {
		return nil, ErrImageIsTooLarge
	}
	m := image.NewGray(image.Rect(0, 0, d.Width(), d.Height()))
	for y := range d.Height() {
		if err := d.NextRow(m.Pix[y*m.Stride:]); err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Encode writes src to w in the type 0 WBMP format. Pixels whose luminance is
// at least half way to white become white. Padding bits are zero.
func Encode(w io.Writer, src image.Image) error {
	if (w == nil) || (src == nil) {
		return ErrBadArgument
	}
	b := src.Bounds()
	bW, bH := b.Dx(), b.Dy()
	if (uint64(bW) > 0xFFFFFFFF) || (uint64(bH) > 0xFFFFFFFF) {
		return ErrImageIsTooLarge
	}
	h := Header{Width: uint32(bW), Height: uint32(bH)}
	if _, err := w.Write(AppendHeader(nil, h)); err != nil {
		return err
	}

	row := make([]byte, h.Stride())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		clear(row)
		for x := b.Min.X; x < b.Max.X; x++ {
			var lum uint8
			switch src := src.(type) {
			case *image.Gray:
				lum = src.GrayAt(x, y).Y
			default:
				lum = color.GrayModel.Convert(src.At(x, y)).(color.Gray).Y
			}
			if lum >= 0x80 {
				i := x - b.Min.X
				row[i>>3] |= 0x80 >> uint(i&7)
			}
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
