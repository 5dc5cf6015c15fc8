// Copyright 2025 The Lvconv Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package lvgl writes images as C source files for the LVGL embedded graphics
// library: a uint8_t pixel array followed by an lv_img_dsc_t descriptor that
// points at it.
//
// The generated file has this shape (for an L8 image named "logo"):
//
//	#include <lvgl.h>
//
//	#ifndef LV_ATTRIBUTE_MEM_ALIGN
//	#define LV_ATTRIBUTE_MEM_ALIGN
//	#endif
//
//	#ifndef LV_ATTRIBUTE_IMG_LOGO
//	#define LV_ATTRIBUTE_IMG_LOGO
//	#endif
//
//	const LV_ATTRIBUTE_MEM_ALIGN LV_ATTRIBUTE_LARGE_CONST LV_ATTRIBUTE_IMG_LOGO uint8_t logo_map[] = {
//	0xff,0x00,...
//	};
//
//	const lv_img_dsc_t logo = {
//	  ...
//	};
package lvgl

import (
	"errors"
	"strings"
)

var (
	ErrBadArgument  = errors.New("lvgl: bad argument")
	ErrBadRowLength = errors.New("lvgl: bad row length")
	ErrClosed       = errors.New("lvgl: encoder is closed")
	ErrTooManyRows  = errors.New("lvgl: too many rows")
)

// Format is the pixel layout of the emitted array.
type Format uint8

const (
	FormatInvalid = Format(0)

	// FormatRGB565 is two bytes per pixel, little-endian, 5 bits red, 6 bits
	// green, 5 bits blue. Its descriptor uses the LVGL v8 field names.
	FormatRGB565 = Format(1)

	// FormatL8 is one luminance byte per pixel. Its descriptor uses the LVGL
	// v9 field names.
	FormatL8 = Format(2)
)

func (f Format) String() string {
	switch f {
	case FormatRGB565:
		return "RGB565"
	case FormatL8:
		return "L8"
	}
	return "invalid"
}

// BytesPerPixel returns 2, 1 or 0 (for an invalid Format).
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGB565:
		return 2
	case FormatL8:
		return 1
	}
	return 0
}

// ColorFormatTag returns the LVGL enumerated constant for the descriptor's
// header.cf field.
func (f Format) ColorFormatTag() string {
	switch f {
	case FormatRGB565:
		return "LV_IMG_CF_TRUE_COLOR"
	case FormatL8:
		return "LV_COLOR_FORMAT_L8"
	}
	return ""
}

// PixelsPerLine returns how many pixels are written before each line break in
// the array literal. Line breaks are cosmetic.
func (f Format) PixelsPerLine(width int) int {
	if f == FormatRGB565 {
		return 16
	}
	return width
}

// DataSize returns the byte size of a width×height image in the Format.
func (f Format) DataSize(width int, height int) int {
	return width * height * f.BytesPerPixel()
}

// MacroName returns the per-image attribute macro for name.
func MacroName(name string) string {
	return "LV_ATTRIBUTE_IMG_" + strings.ToUpper(name)
}

// MapName returns the name of the pixel array for the image called name.
func MapName(name string) string {
	return name + "_map"
}
