// Copyright 2025 The Lvconv Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// lvconv converts images to C source files for the LVGL graphics library.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/nigeltao/lvconv/internal/manifest"
	"github.com/nigeltao/lvconv/lib/convert"
)

const description = `lvconv writes a uint8_t pixel array and an lv_img_dsc_t descriptor.

The image subcommand resizes BMP, GIF, JPEG, PNG, TIFF, WBMP or WEBP input and
converts it with one of these modes:

    rgb565  16-bit color, 2 bytes per pixel (the default)
    l8      8-bit luminance
    mono    Floyd-Steinberg dithered black and white, as 8-bit luminance

The wbmp subcommand decodes a WBMP file's bits as black and white 8-bit
luminance, keeping the file's own dimensions.

The batch subcommand runs every [[image]] entry of a TOML manifest.
`

var errUsage = errors.New("main: bad usage")

func main() {
	if err := main1(); err != nil {
		if !errors.Is(err, errUsage) {
			os.Stderr.WriteString(err.Error() + "\n")
		}
		os.Exit(1)
	}
}

func main1() error {
	log.SetFlags(0)
	log.SetPrefix("lvconv: ")
	return newCommand().Run(context.Background(), os.Args)
}

type app struct {
	quiet bool
}

func newCommand() *cli.Command {
	a := &app{}
	return &cli.Command{
		Name:        "lvconv",
		Usage:       "convert images to LVGL C arrays",
		Description: description,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "quiet",
				Aliases:     []string{"q"},
				Usage:       "do not print progress (warnings are always printed)",
				Destination: &a.quiet,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "image",
				Usage:     "resize and convert an image",
				ArgsUsage: "input output name [width height]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mode",
						Value: convert.ModeRGB565.String(),
						Usage: "rgb565, l8 or mono",
					},
					&cli.StringFlag{
						Name:  "resample",
						Value: convert.ResampleLanczos.String(),
						Usage: "lanczos, catmullrom, bilinear or nearest",
					},
				},
				Action: a.imageAction,
			},
			{
				Name:      "wbmp",
				Usage:     "convert a WBMP image to L8",
				ArgsUsage: "input.wbmp output.c name",
				Action:    a.wbmpAction,
			},
			{
				Name:      "batch",
				Usage:     "run the conversions listed in a TOML manifest",
				ArgsUsage: "manifest.toml",
				Action:    a.batchAction,
			},
		},
	}
}

func usage(cmd *cli.Command) error {
	fmt.Fprintf(os.Stderr, "Usage: lvconv %s %s\n", cmd.Name, cmd.ArgsUsage)
	return errUsage
}

func (a *app) imageAction(ctx context.Context, cmd *cli.Command) error {
	if (cmd.NArg() != 3) && (cmd.NArg() != 5) {
		return usage(cmd)
	}
	mode, err := convert.ParseMode(cmd.String("mode"))
	if (err != nil) || (mode == convert.ModeWBMP) {
		return fmt.Errorf("main: bad -mode %q", cmd.String("mode"))
	}
	resample, err := convert.ParseResampler(cmd.String("resample"))
	if err != nil {
		return fmt.Errorf("main: bad -resample %q", cmd.String("resample"))
	}

	options := &convert.Options{
		Mode:     mode,
		Width:    convert.DefaultWidth,
		Height:   convert.DefaultHeight,
		Resample: resample,
		Warn:     warn,
	}
	if cmd.NArg() == 5 {
		if options.Width, err = parseDimension(cmd.Args().Get(3)); err != nil {
			return err
		}
		if options.Height, err = parseDimension(cmd.Args().Get(4)); err != nil {
			return err
		}
	}
	return a.convert(cmd.Args().Get(0), cmd.Args().Get(1), cmd.Args().Get(2), options)
}

func (a *app) wbmpAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 3 {
		return usage(cmd)
	}
	options := &convert.Options{Mode: convert.ModeWBMP, Warn: warn}
	return a.convert(cmd.Args().Get(0), cmd.Args().Get(1), cmd.Args().Get(2), options)
}

func (a *app) batchAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return usage(cmd)
	}
	m, err := manifest.Load(cmd.Args().First())
	if err != nil {
		return err
	}
	for _, e := range m.Images {
		if err := ctx.Err(); err != nil {
			return err
		}
		options, err := e.Options()
		if err != nil {
			return err
		}
		options.Warn = warn
		if err := os.MkdirAll(filepath.Dir(e.Output), 0755); err != nil {
			return err
		}
		if err := a.convert(e.Input, e.Output, e.Name, options); err != nil {
			return err
		}
	}
	return nil
}

// convert runs one conversion. An input that cannot be opened is reported but
// is not an error.
func (a *app) convert(inputPath string, outputPath string, name string, options *convert.Options) error {
	res, err := convert.ConvertFile(inputPath, outputPath, name, options)
	if errors.Is(err, convert.ErrCannotOpenInput) {
		log.Printf("error: %v", err)
		return nil
	} else if err != nil {
		return err
	}
	if !a.quiet {
		log.Printf("converted %s (%dx%d, %s) to %s as %s",
			inputPath, res.Width, res.Height, res.Mode, outputPath, name)
	}
	return nil
}

func warn(err error) {
	log.Printf("warning: %v", err)
}

func parseDimension(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if (err != nil) || (n <= 0) {
		return 0, fmt.Errorf("main: bad dimension %q", s)
	}
	return n, nil
}
