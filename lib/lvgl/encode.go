// Copyright 2025 The Lvconv Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package lvgl

import (
	"bufio"
	"io"
	"strconv"
)

const hexDigits = "0123456789abcdef"

// Encoder streams one image's C source to an io.Writer, one row at a time.
//
// The preamble is written by NewEncoder, rows by WriteRow and the descriptor
// by Close. Close must be called even if fewer rows than the height were
// written. The descriptor always states the declared width, height and data
// size.
type Encoder struct {
	w      *bufio.Writer
	name   string
	format Format
	width  int
	height int

	rows   int
	pixels int
	closed bool
	buf    []byte
}

// NewEncoder writes the preamble for an image called name to w and returns an
// Encoder for its rows.
//
// name is used verbatim as a C identifier prefix. It is not validated.
func NewEncoder(w io.Writer, name string, f Format, width int, height int) (*Encoder, error) {
	if (w == nil) || (f.BytesPerPixel() == 0) || (width < 0) || (height < 0) {
		return nil, ErrBadArgument
	}
	e := &Encoder{
		w:      bufio.NewWriter(w),
		name:   name,
		format: f,
		width:  width,
		height: height,
	}

	macro := MacroName(name)
	e.w.WriteString("#include <lvgl.h>\n\n")
	e.w.WriteString("#ifndef LV_ATTRIBUTE_MEM_ALIGN\n")
	e.w.WriteString("#define LV_ATTRIBUTE_MEM_ALIGN\n")
	e.w.WriteString("#endif\n\n")
	e.w.WriteString("#ifndef " + macro + "\n")
	e.w.WriteString("#define " + macro + "\n")
	e.w.WriteString("#endif\n\n")
	_, err := e.w.WriteString("const LV_ATTRIBUTE_MEM_ALIGN LV_ATTRIBUTE_LARGE_CONST " +
		macro + " uint8_t " + MapName(name) + "[] = {\n")
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Format returns the Encoder's pixel format.
func (e *Encoder) Format() Format { return e.format }

// RowsWritten returns how many rows WriteRow has accepted.
func (e *Encoder) RowsWritten() int { return e.rows }

// WriteRow writes one row of pixels. row must hold exactly width pixels in the
// Encoder's format: little-endian byte pairs for FormatRGB565, single bytes
// for FormatL8.
func (e *Encoder) WriteRow(row []byte) error {
	if e.closed {
		return ErrClosed
	} else if e.rows >= e.height {
		return ErrTooManyRows
	} else if len(row) != (e.width * e.format.BytesPerPixel()) {
		return ErrBadRowLength
	}

	b := e.buf[:0]
	switch e.format {
	case FormatRGB565:
		perLine := e.format.PixelsPerLine(e.width)
		for i := 0; i < len(row); i += 2 {
			b = append(b, '0', 'x', hexDigits[row[i]>>4], hexDigits[row[i]&15], ',', ' ')
			b = append(b, '0', 'x', hexDigits[row[i+1]>>4], hexDigits[row[i+1]&15], ',', ' ')
			e.pixels++
			if (e.pixels % perLine) == 0 {
				b = append(b, '\n')
			}
		}
	case FormatL8:
		for _, c := range row {
			b = append(b, '0', 'x', hexDigits[c>>4], hexDigits[c&15], ',')
		}
		e.pixels += len(row)
		b = append(b, '\n')
	}
	e.buf = b

	e.rows++
	_, err := e.w.Write(b)
	return err
}

// Close terminates the array, writes the descriptor and flushes. It does not
// close the underlying io.Writer.
func (e *Encoder) Close() error {
	if e.closed {
		return ErrClosed
	}
	e.closed = true

	w, h := strconv.Itoa(e.width), strconv.Itoa(e.height)
	size := strconv.Itoa(e.format.DataSize(e.width, e.height))

	e.w.WriteString("};\n\n")
	e.w.WriteString("const lv_img_dsc_t " + e.name + " = {\n")
	switch e.format {
	case FormatRGB565:
		e.w.WriteString("  .header.cf = " + e.format.ColorFormatTag() + ",\n")
		e.w.WriteString("  .header.always_zero = 0,\n")
		e.w.WriteString("  .header.reserved = 0,\n")
	case FormatL8:
		e.w.WriteString("  .header.magic = LV_IMAGE_HEADER_MAGIC,\n")
		e.w.WriteString("  .header.cf = " + e.format.ColorFormatTag() + ",\n")
	}
	e.w.WriteString("  .header.w = " + w + ",\n")
	e.w.WriteString("  .header.h = " + h + ",\n")
	e.w.WriteString("  .data_size = " + size + ",\n")
	e.w.WriteString("  .data = " + MapName(e.name) + ",\n")
	e.w.WriteString("};\n")
	return e.w.Flush()
}
