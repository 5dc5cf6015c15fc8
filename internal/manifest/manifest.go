// Copyright 2025 The Lvconv Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package manifest reads TOML files that list a batch of conversions.
//
// It is an internal package, only providing what's needed by the lvconv
// command's batch subcommand.
//
// Example:
//
//	[[image]]
//	input    = "standard.png"
//	output   = "src/standard.c"
//	name     = "standard"
//	mode     = "rgb565"
//	width    = 66
//	height   = 66
//	resample = "lanczos"
//
//	[[image]]
//	input  = "badge.wbmp"
//	output = "src/badge.c"
//	name   = "badge"
//	mode   = "wbmp"
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nigeltao/lvconv/lib/convert"
)

var (
	ErrNoEntries   = errors.New("manifest: no [[image]] entries")
	ErrBadEntry    = errors.New("manifest: bad entry")
	ErrUnknownKeys = errors.New("manifest: unknown keys")
)

// Entry is one conversion.
type Entry struct {
	Input    string `toml:"input"`
	Output   string `toml:"output"`
	Name     string `toml:"name"`
	Mode     string `toml:"mode"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Resample string `toml:"resample"`
}

// Manifest is a parsed manifest file.
type Manifest struct {
	Images []Entry `toml:"image"`
}

// Load reads and parses the manifest at path. Relative input and output paths
// are resolved against path's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i := range m.Images {
		e := &m.Images[i]
		if !filepath.IsAbs(e.Input) {
			e.Input = filepath.Join(dir, e.Input)
		}
		if !filepath.IsAbs(e.Output) {
			e.Output = filepath.Join(dir, e.Output)
		}
	}
	return m, nil
}

// Parse parses and validates manifest data.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	md, err := toml.Decode(string(data), m)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}
	if len(m.Images) == 0 {
		return nil, ErrNoEntries
	}
	for i, e := range m.Images {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
	}
	return m, nil
}

func (e Entry) validate() error {
	switch {
	case e.Input == "":
		return fmt.Errorf("%w: missing input", ErrBadEntry)
	case e.Output == "":
		return fmt.Errorf("%w: missing output", ErrBadEntry)
	case e.Name == "":
		return fmt.Errorf("%w: missing name", ErrBadEntry)
	case (e.Width < 0) || (e.Height < 0):
		return fmt.Errorf("%w: negative size %dx%d", ErrBadEntry, e.Width, e.Height)
	}
	_, err := e.Options()
	return err
}

// Options returns the convert.Options for e. An empty mode means rgb565 and
// an empty resample means lanczos.
func (e Entry) Options() (*convert.Options, error) {
	o := &convert.Options{Width: e.Width, Height: e.Height}
	if e.Mode != "" {
		m, err := convert.ParseMode(e.Mode)
		if err != nil {
			return nil, fmt.Errorf("%w: mode %q", err, e.Mode)
		}
		o.Mode = m
	}
	if e.Resample != "" {
		r, err := convert.ParseResampler(e.Resample)
		if err != nil {
			return nil, fmt.Errorf("%w: resample %q", err, e.Resample)
		}
		o.Resample = r
	}
	return o, nil
}
