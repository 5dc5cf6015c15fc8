// Copyright 2025 The Lvconv Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

//go:build ignore

// gen-samples.go draws the sample images listed in sprites.toml. Run it from
// this directory with "go run gen-samples.go", then "lvconv batch
// sprites.toml".
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/nigeltao/lvconv/lib/wbmp"
)

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return fmt.Errorf("opentype.Parse: %v", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    96,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return fmt.Errorf("opentype.NewFace: %v", err)
	}

	glyph := image.NewAlpha(image.Rect(0, 0, 100, 100))
	{
		d := font.Drawer{
			Dst:  glyph,
			Src:  image.Opaque,
			Face: face,
			Dot:  fixed.P(18, 84),
		}
		d.DrawString("B")
	}

	// standard.png is a glowing orange disc with a white glyph on top.
	standard := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	{
		const cx, cy = 50, 50
		for y := range 100 {
			dy := y - cy
			for x := range 100 {
				dx := x - cx
				distance := math.Sqrt(float64((dx * dx) + (dy * dy)))
				v := uint8(max(0, min(0xFF, 0xFF-int(distance*5))))
				standard.SetNRGBA(x, y, color.NRGBA{v, v / 2, 0x20, 0xFF})
			}
		}
		draw.DrawMask(standard, standard.Bounds(), image.White, image.Point{}, glyph, image.Point{}, draw.Over)
	}
	if err := writePNG("standard.png", standard); err != nil {
		return err
	}

	// badge.wbmp is the glyph alone, white on black, 100 pixels wide so that
	// each row ends with 4 padding bits.
	badge := image.NewGray(image.Rect(0, 0, 100, 100))
	draw.DrawMask(badge, badge.Bounds(), image.White, image.Point{}, glyph, image.Point{}, draw.Over)
	return writeWBMP("badge.wbmp", badge)
}

func writePNG(filename string, m image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("os.Create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, m); err != nil {
		return fmt.Errorf("png.Encode: %v", err)
	}
	return nil
}

func writeWBMP(filename string, m image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("os.Create: %v", err)
	}
	defer f.Close()
	if err := wbmp.Encode(f, m); err != nil {
		return fmt.Errorf("wbmp.Encode: %v", err)
	}
	return nil
}
