// Copyright 2025 The Lvconv Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package convert turns images into LVGL C source files.
//
// There are four conversion modes. ModeL8, ModeDitheredMono and ModeWBMP all
// emit one luminance byte per pixel, but they quantize differently.
//
// Rows are produced and emitted one at a time. Images decoded by the image
// package (PNG, JPEG, etc.) are held in memory once, after resizing, but no
// per-pixel list is built. WBMP input is streamed straight from the file.
package convert

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/nigeltao/lvconv/lib/lvgl"
	"github.com/nigeltao/lvconv/lib/wbmp"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	DefaultWidth  = 128
	DefaultHeight = 128
)

var (
	ErrBadArgument     = errors.New("convert: bad argument")
	ErrBadMode         = errors.New("convert: bad mode")
	ErrBadResampler    = errors.New("convert: bad resampler")
	ErrCannotOpenInput = errors.New("convert: cannot open input")
)

// Mode is a conversion policy: how source pixels become output pixels.
type Mode uint8

const (
	// ModeRGB565 resizes, drops alpha and packs to RGB565.
	ModeRGB565 = Mode(1)

	// ModeL8 resizes and converts to 8-bit luminance.
	ModeL8 = Mode(2)

	// ModeDitheredMono resizes and Floyd-Steinberg dithers to black and
	// white, emitting 0x00 or 0xFF luminance bytes.
	ModeDitheredMono = Mode(3)

	// ModeWBMP decodes the bits of a WBMP stream as hard black and white,
	// emitting 0x00 or 0xFF luminance bytes. The dimensions come from the
	// WBMP header and no resizing is done.
	ModeWBMP = Mode(4)
)

func (m Mode) String() string {
	switch m {
	case ModeRGB565:
		return "rgb565"
	case ModeL8:
		return "l8"
	case ModeDitheredMono:
		return "mono"
	case ModeWBMP:
		return "wbmp"
	}
	return "invalid"
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for m := ModeRGB565; m <= ModeWBMP; m++ {
		if s == m.String() {
			return m, nil
		}
	}
	return 0, ErrBadMode
}

// Format returns the lvgl.Format that the Mode emits.
func (m Mode) Format() lvgl.Format {
	switch m {
	case 0, ModeRGB565:
		return lvgl.FormatRGB565
	case ModeL8, ModeDitheredMono, ModeWBMP:
		return lvgl.FormatL8
	}
	return lvgl.FormatInvalid
}

// Options are optional arguments to the Convert functions. The zero value is
// valid and means to use the default configuration.
type Options struct {
	// If zero, the default is ModeRGB565.
	Mode Mode

	// The target size. If zero, the defaults are DefaultWidth and
	// DefaultHeight. They are ignored by ModeWBMP.
	Width  int
	Height int

	// If zero, the default is ResampleLanczos.
	Resample Resampler

	// Warn, if non-nil, receives recoverable problems, such as truncated WBMP
	// pixel data. The conversion carries on after Warn returns.
	Warn func(error)
}

func (o *Options) mode() Mode {
	if (o != nil) && (o.Mode != 0) {
		return o.Mode
	}
	return ModeRGB565
}

func (o *Options) size() (int, int) {
	w, h := DefaultWidth, DefaultHeight
	if o != nil {
		if o.Width != 0 {
			w = o.Width
		}
		if o.Height != 0 {
			h = o.Height
		}
	}
	return w, h
}

func (o *Options) resampler() Resampler {
	if o != nil {
		return o.Resample
	}
	return 0
}

func (o *Options) warn() func(error) {
	if o != nil {
		return o.Warn
	}
	return nil
}

// Result describes an emitted artifact.
type Result struct {
	Name   string
	Mode   Mode
	Format lvgl.Format
	Width  int
	Height int

	// RowsWritten is less than Height if the source was truncated.
	RowsWritten int
}

// Truncated returns whether fewer rows were emitted than declared.
func (r Result) Truncated() bool {
	return r.RowsWritten < r.Height
}

// DataSize returns the artifact's declared data size.
func (r Result) DataSize() int {
	return r.Format.DataSize(r.Width, r.Height)
}

// Emit writes the C source for the image called name, reading rows until
// io.EOF.
func Emit(w io.Writer, name string, f lvgl.Format, rows Rows) (Result, error) {
	if rows == nil {
		return Result{}, ErrBadArgument
	}
	e, err := lvgl.NewEncoder(w, name, f, rows.Width(), rows.Height())
	if err != nil {
		return Result{}, err
	}
	ret := Result{
		Name:   name,
		Format: f,
		Width:  rows.Width(),
		Height: rows.Height(),
	}

	row := make([]byte, rows.Width()*f.BytesPerPixel())
	for {
		if err := rows.NextRow(row); err == io.EOF {
			break
		} else if err != nil {
			return ret, err
		}
		if err := e.WriteRow(row); err != nil {
			return ret, err
		}
		ret.RowsWritten = e.RowsWritten()
	}
	return ret, e.Close()
}

// imageSource resizes src and returns its rows.
func imageSource(src image.Image, options *Options) (Rows, error) {
	mode := options.mode()
	if mode == ModeWBMP {
		return nil, ErrBadMode
	}
	w, h := options.size()
	resized, err := Resize(src, w, h, options.resampler())
	if err != nil {
		return nil, err
	}
	return NewImageRows(resized, mode)
}

// ConvertImage resizes and converts src, writing the C source for the image
// called name to w. The options' Mode must not be ModeWBMP.
//
// options may be nil, which means to use the default configuration.
func ConvertImage(w io.Writer, src image.Image, name string, options *Options) (Result, error) {
	rows, err := imageSource(src, options)
	if err != nil {
		return Result{}, err
	}
	ret, err := Emit(w, name, options.mode().Format(), rows)
	ret.Mode = options.mode()
	return ret, err
}

// ConvertWBMP streams the WBMP image in r to w as L8 C source for the image
// called name. The options' Mode, Width, Height and Resample are ignored.
//
// Unexpected header bytes and truncated pixel data are reported through the
// Warn option. A truncated image still produces a complete C file, holding the
// rows that were read.
//
// options may be nil, which means to use the default configuration.
func ConvertWBMP(w io.Writer, r io.Reader, name string, options *Options) (Result, error) {
	d, err := wbmp.NewDecoder(r, &wbmp.DecodeOptions{Warn: options.warn()})
	if err != nil {
		return Result{}, err
	}
	ret, err := Emit(w, name, ModeWBMP.Format(), d)
	ret.Mode = ModeWBMP
	return ret, err
}

// ConvertFile converts the image file at inputPath, writing the C source for
// the image called name to outputPath.
//
// The input is opened and decoded (or, for ModeWBMP, its header read) before
// the output is created. If the input cannot be opened, the returned error
// wraps ErrCannotOpenInput and no output file is created.
//
// options may be nil, which means to use the default configuration.
func ConvertFile(inputPath string, outputPath string, name string, options *Options) (retResult Result, retErr error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrCannotOpenInput, err)
	}
	defer in.Close()

	mode := options.mode()
	if mode.Format() == lvgl.FormatInvalid {
		return Result{}, ErrBadMode
	}

	var rows Rows
	if mode == ModeWBMP {
		d, err := wbmp.NewDecoder(bufio.NewReader(in), &wbmp.DecodeOptions{Warn: options.warn()})
		if err != nil {
			return Result{}, fmt.Errorf("convert: decoding %s: %w", inputPath, err)
		}
		rows = d
	} else {
		src, _, err := image.Decode(bufio.NewReader(in))
		if err != nil {
			return Result{}, fmt.Errorf("convert: decoding %s: %w", inputPath, err)
		}
		if rows, err = imageSource(src, options); err != nil {
			return Result{}, err
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err := out.Close(); (retErr == nil) && (err != nil) {
			retErr = err
		}
	}()

	retResult, retErr = Emit(out, name, mode.Format(), rows)
	retResult.Mode = mode
	return retResult, retErr
}
