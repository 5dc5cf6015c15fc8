// Copyright 2025 The Lvconv Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package wbmp

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"
)

func TestVarintRoundTrip(tt *testing.T) {
	testCases := []struct {
		value uint32
		want  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x81, 0x00}},
		{16383, []byte{0xFF, 0x7F}},
		{16384, []byte{0x81, 0x80, 0x00}},
		{0xFFFFFFFF, []byte{0x8F, 0xFF, 0xFF, 0xFF, 0x7F}},
	}

	for _, tc := range testCases {
		got := AppendVarint(nil, tc.value)
		if !bytes.Equal(got, tc.want) {
			tt.Errorf("value=%d: AppendVarint: got % 02X, want % 02X", tc.value, got, tc.want)
			continue
		}
		v, err := ReadVarint(bytes.NewReader(got))
		if err != nil {
			tt.Errorf("value=%d: ReadVarint: %v", tc.value, err)
			continue
		}
		if v != tc.value {
			tt.Errorf("value=%d: ReadVarint: got %d", tc.value, v)
		}
	}
}

func TestReadVarintErrors(tt *testing.T) {
	testCases := []struct {
		src  []byte
		want error
	}{
		{[]byte{}, ErrBadVarint},
		{[]byte{0x81}, ErrBadVarint},
		{[]byte{0x81, 0x80}, ErrBadVarint},
		{[]byte{0x90, 0x80, 0x80, 0x80, 0x00}, ErrVarintOverflow},
		{[]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}, ErrVarintOverflow},
	}

	for _, tc := range testCases {
		_, err := ReadVarint(bytes.NewReader(tc.src))
		if err != tc.want {
			tt.Errorf("src=% 02X: got %v, want %v", tc.src, err, tc.want)
		}
	}
}

func TestUnpackRow(tt *testing.T) {
	got := make([]byte, 10)
	UnpackRow(got, []byte{0b10110010, 0b11000000}, 10)
	want := []byte{0xFF, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0xFF, 0x00, 0xFF, 0xFF}
	if !bytes.Equal(got, want) {
		tt.Fatalf("got % 02X, want % 02X", got, want)
	}

	// Padding bits are never read, whatever their value.
	UnpackRow(got, []byte{0b10110010, 0b11111111}, 10)
	if !bytes.Equal(got, want) {
		tt.Fatalf("with set padding: got % 02X, want % 02X", got, want)
	}
}

func TestDecoderRows(tt *testing.T) {
	src := []byte{0x00, 0x00, 0x0A, 0x02,
		0b10110010, 0b11000000,
		0b01001101, 0b00111111,
	}
	d, err := NewDecoder(bytes.NewReader(src), nil)
	if err != nil {
		tt.Fatalf("NewDecoder: %v", err)
	}
	if d.Width() != 10 || d.Height() != 2 || d.Stride() != 2 {
		tt.Fatalf("dimensions: got %dx%d stride %d, want 10x2 stride 2", d.Width(), d.Height(), d.Stride())
	}

	wants := [][]byte{
		{0xFF, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0xFF, 0x00, 0xFF, 0xFF},
		{0x00, 0xFF, 0x00, 0x00, 0xFF, 0xFF, 0x00, 0xFF, 0x00, 0x00},
	}
	row := make([]byte, d.Width())
	for y, want := range wants {
		if err := d.NextRow(row); err != nil {
			tt.Fatalf("y=%d: NextRow: %v", y, err)
		}
		if !bytes.Equal(row, want) {
			tt.Errorf("y=%d: got % 02X, want % 02X", y, row, want)
		}
	}
	if err := d.NextRow(row); err != io.EOF {
		tt.Fatalf("after last row: got %v, want io.EOF", err)
	}
	if d.Truncated() {
		tt.Fatalf("Truncated: got true, want false")
	}
}

func TestDecoderTruncated(tt *testing.T) {
	// Height 5, but only 3 complete rows plus one stray byte.
	src := []byte{0x00, 0x00, 0x0A, 0x05,
		0xFF, 0xC0,
		0x00, 0x00,
		0xAA, 0x80,
		0x12,
	}
	var warnings []error
	d, err := NewDecoder(bytes.NewReader(src), &DecodeOptions{
		Warn: func(err error) { warnings = append(warnings, err) },
	})
	if err != nil {
		tt.Fatalf("NewDecoder: %v", err)
	}

	row := make([]byte, d.Width())
	n := 0
	for {
		if err := d.NextRow(row); err == io.EOF {
			break
		} else if err != nil {
			tt.Fatalf("NextRow: %v", err)
		}
		n++
	}
	if n != 3 || d.RowsDecoded() != 3 {
		tt.Fatalf("rows: got %d (RowsDecoded %d), want 3", n, d.RowsDecoded())
	}
	if !d.Truncated() {
		tt.Fatalf("Truncated: got false, want true")
	}
	if len(warnings) != 1 || !errors.Is(warnings[0], ErrTruncatedPixelData) {
		tt.Fatalf("warnings: got %v, want one ErrTruncatedPixelData", warnings)
	}
	if err := d.NextRow(row); err != io.EOF {
		tt.Fatalf("after truncation: got %v, want io.EOF", err)
	}
}

func TestDecoderUnexpectedHeader(tt *testing.T) {
	src := []byte{0x01, 0x02, 0x08, 0x01, 0x0F}
	var warnings []error
	d, err := NewDecoder(bytes.NewReader(src), &DecodeOptions{
		Warn: func(err error) { warnings = append(warnings, err) },
	})
	if err != nil {
		tt.Fatalf("NewDecoder: %v", err)
	}
	if len(warnings) != 1 || !errors.Is(warnings[0], ErrUnexpectedHeader) {
		tt.Fatalf("warnings: got %v, want one ErrUnexpectedHeader", warnings)
	}
	if h := d.Header(); h.Type != 0x01 || h.Fixed != 0x02 {
		tt.Fatalf("Header: got %+v", h)
	}

	row := make([]byte, 8)
	if err := d.NextRow(row); err != nil {
		tt.Fatalf("NextRow: %v", err)
	}
	want := []byte{0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}
	if !bytes.Equal(row, want) {
		tt.Fatalf("got % 02X, want % 02X", row, want)
	}
}

func TestNewDecoderErrors(tt *testing.T) {
	testCases := []struct {
		src  []byte
		want error
	}{
		{[]byte{}, ErrTruncatedHeader},
		{[]byte{0x00}, ErrTruncatedHeader},
		{[]byte{0x00, 0x00}, ErrBadVarint},
		{[]byte{0x00, 0x00, 0x80}, ErrBadVarint},
		{[]byte{0x00, 0x00, 0x08}, ErrBadVarint},
	}

	for _, tc := range testCases {
		_, err := NewDecoder(bytes.NewReader(tc.src), nil)
		if err != tc.want {
			tt.Errorf("src=% 02X: got %v, want %v", tc.src, err, tc.want)
		}
	}
}

func TestEncodeDecode(tt *testing.T) {
	const w, h = 13, 4
	src := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if ((x + y) % 3) == 0 {
				src.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}

	buf := &bytes.Buffer{}
	if err := Encode(buf, src); err != nil {
		tt.Fatalf("Encode: %v", err)
	}
	if got, want := buf.Len(), 4+(h*2); got != want {
		tt.Fatalf("encoded length: got %d, want %d", got, want)
	}

	config, err := DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		tt.Fatalf("DecodeConfig: %v", err)
	}
	if config.Width != w || config.Height != h {
		tt.Fatalf("DecodeConfig: got %dx%d, want %dx%d", config.Width, config.Height, w, h)
	}

	m, format, err := image.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		tt.Fatalf("image.Decode: %v", err)
	}
	if format != "wbmp" {
		tt.Fatalf("image.Decode format: got %q, want \"wbmp\"", format)
	}
	got, ok := m.(*image.Gray)
	if !ok {
		tt.Fatalf("image.Decode type: got %T, want *image.Gray", m)
	}
	if !bytes.Equal(got.Pix, src.Pix) {
		tt.Fatalf("pixels differ:\ngot  % 02X\nwant % 02X", got.Pix, src.Pix)
	}
}

func TestDecodeTruncatedLeavesBlack(tt *testing.T) {
	src := []byte{0x00, 0x00, 0x03, 0x03, 0xE0, 0xE0}
	m, err := Decode(bytes.NewReader(src))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	want := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00}
	if got := m.(*image.Gray).Pix; !bytes.Equal(got, want) {
		tt.Fatalf("got % 02X, want % 02X", got, want)
	}
}
