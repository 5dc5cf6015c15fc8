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

	"github.com/disintegration/gift"
	"golang.org/x/image/draw"
)

// Resampler is the filter used to scale the source image.
type Resampler uint8

const (
	// ResampleLanczos is the default.
	ResampleLanczos    = Resampler(1)
	ResampleCatmullRom = Resampler(2)
	ResampleBilinear   = Resampler(3)
	ResampleNearest    = Resampler(4)
)

func (r Resampler) String() string {
	switch r {
	case ResampleLanczos:
		return "lanczos"
	case ResampleCatmullRom:
		return "catmullrom"
	case ResampleBilinear:
		return "bilinear"
	case ResampleNearest:
		return "nearest"
	}
	return "invalid"
}

// ParseResampler is the inverse of Resampler.String.
func ParseResampler(s string) (Resampler, error) {
	for r := ResampleLanczos; r <= ResampleNearest; r++ {
		if s == r.String() {
			return r, nil
		}
	}
	return 0, ErrBadResampler
}

// Resize scales src to width×height. The result's bounds start at (0, 0).
//
// If src already has that size it is returned unchanged. Otherwise the result
// is a new *image.NRGBA.
func Resize(src image.Image, width int, height int, r Resampler) (image.Image, error) {
	if (src == nil) || (width <= 0) || (height <= 0) {
		return nil, ErrBadArgument
	}
	b := src.Bounds()
	if (b.Dx() == width) && (b.Dy() == height) && (b.Min == image.Point{}) {
		return src, nil
	}

	var scaler draw.Scaler
	switch r {
	case 0, ResampleLanczos:
		g := gift.New(gift.Resize(width, height, gift.LanczosResampling))
		dst := image.NewNRGBA(g.Bounds(b))
		g.Draw(dst, src)
		return dst, nil
	case ResampleCatmullRom:
		scaler = draw.CatmullRom
	case ResampleBilinear:
		scaler = draw.BiLinear
	case ResampleNearest:
		scaler = draw.NearestNeighbor
	default:
		return nil, ErrBadResampler
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	scaler.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}
