// Copyright 2025 The Lvconv Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"image"
	"image/color"
	"io"

	"github.com/makeworld-the-better-one/dither"
	"golang.org/x/image/draw"

	"github.com/nigeltao/lvconv/lib/lvgl"
)

// Rows is a forward-only source of pixel rows in an lvgl.Format.
type Rows interface {
	Width() int
	Height() int

	// NextRow fills dst with the next row, which is Width() pixels in the
	// layout of the Format being emitted. It returns io.EOF when there are no
	// more rows, which may be before Height() rows for a truncated source.
	NextRow(dst []byte) error
}

type imageRows struct {
	width   int
	height  int
	y       int
	fillRow func(dst []byte, y int)
}

func (r *imageRows) Width() int  { return r.width }
func (r *imageRows) Height() int { return r.height }

func (r *imageRows) NextRow(dst []byte) error {
	if r.y >= r.height {
		return io.EOF
	}
	r.fillRow(dst, r.y)
	r.y++
	return nil
}

// NewImageRows returns the rows of src, converted according to mode. src is
// not resized and is not modified.
//
// mode must not be ModeWBMP, which reads a WBMP stream instead of an image.
func NewImageRows(src image.Image, mode Mode) (Rows, error) {
	if src == nil {
		return nil, ErrBadArgument
	}
	b := src.Bounds()
	r := &imageRows{width: b.Dx(), height: b.Dy()}

	switch mode {
	case 0, ModeRGB565:
		r.fillRow = makeRGB565Row(src)
	case ModeL8:
		r.fillRow = makeL8Row(src)
	case ModeDitheredMono:
		r.fillRow = makeL8Row(ditherMono(src))
	default:
		return nil, ErrBadMode
	}
	return r, nil
}

// makeRGB565Row returns a closure that writes row y (relative to the top of
// src) as little-endian RGB565 pairs.
func makeRGB565Row(src image.Image) func(dst []byte, y int) {
	b := src.Bounds()

	if srcNRGBA, ok := src.(*image.NRGBA); ok {
		return func(dst []byte, y int) {
			i := srcNRGBA.PixOffset(b.Min.X, b.Min.Y+y)
			for x := range b.Dx() {
				p := srcNRGBA.Pix[i+(4*x) : i+(4*x)+4 : i+(4*x)+4]
				c := lvgl.RGB565(lvgl.PackRGB565(p[0], p[1], p[2]))
				dst[(2*x)+0], dst[(2*x)+1] = c.LE()
			}
		}
	}

	return func(dst []byte, y int) {
		for x := range b.Dx() {
			c := lvgl.RGB565Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(lvgl.RGB565)
			dst[(2*x)+0], dst[(2*x)+1] = c.LE()
		}
	}
}

// makeL8Row returns a closure that writes row y (relative to the top of src)
// as ITU-R BT.601 luminance.
func makeL8Row(src image.Image) func(dst []byte, y int) {
	b := src.Bounds()

	if srcGray, ok := src.(*image.Gray); ok {
		return func(dst []byte, y int) {
			i := srcGray.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst[:b.Dx()], srcGray.Pix[i:])
		}
	}

	return func(dst []byte, y int) {
		for x := range b.Dx() {
			dst[x] = color.GrayModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y
		}
	}
}

var monoPalette = []color.Color{color.Black, color.White}

// ditherMono applies Floyd-Steinberg error diffusion to a black and white
// palette and returns an *image.Gray holding only 0x00 and 0xFF.
func ditherMono(src image.Image) *image.Gray {
	b := src.Bounds()
	work := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(work, work.Bounds(), src, b.Min, draw.Src)

	d := dither.NewDitherer(monoPalette)
	d.Matrix = dither.FloydSteinberg
	dithered := d.Dither(work)
	if dithered == nil {
		dithered = work
	}

	db := dithered.Bounds()
	dst := image.NewGray(image.Rect(0, 0, db.Dx(), db.Dy()))
	for y := range db.Dy() {
		for x := range db.Dx() {
			if color.GrayModel.Convert(dithered.At(db.Min.X+x, db.Min.Y+y)).(color.Gray).Y >= 0x80 {
				dst.Pix[(y*dst.Stride)+x] = 0xFF
			}
		}
	}
	return dst
}
