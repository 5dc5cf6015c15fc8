// Copyright 2025 The Lvconv Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package lvgl

import (
	"image/color"
)

// RGB565 is a 16-bit color: red in the top 5 bits, green in the middle 6 and
// blue in the low 5. It is always opaque.
type RGB565 uint16

// PackRGB565 truncates 8-bit channels to an RGB565 value.
func PackRGB565(r uint8, g uint8, b uint8) uint16 {
	return (uint16(r>>3) << 11) | (uint16(g>>2) << 5) | uint16(b>>3)
}

// RGBA implements the color.Color interface. The top bits of each channel are
// replicated into the low bits, so that 0x1F red becomes 0xFFFF.
func (c RGB565) RGBA() (r, g, b, a uint32) {
	r5 := uint32(c>>11) & 0x1F
	g6 := uint32(c>>5) & 0x3F
	b5 := uint32(c) & 0x1F
	r8 := (r5 << 3) | (r5 >> 2)
	g8 := (g6 << 2) | (g6 >> 4)
	b8 := (b5 << 3) | (b5 >> 2)
	return r8 * 0x101, g8 * 0x101, b8 * 0x101, 0xFFFF
}

// LE returns the little-endian byte pair for c, low byte first.
func (c RGB565) LE() (lo byte, hi byte) {
	return uint8(c), uint8(c >> 8)
}

// toRGB565 drops alpha without premultiplying, so a fully transparent red
// pixel is still red.
func toRGB565(c color.Color) color.Color {
	if c, ok := c.(RGB565); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB565(PackRGB565(n.R, n.G, n.B))
}

// RGB565Model converts colors to RGB565.
var RGB565Model = color.ModelFunc(toRGB565)
