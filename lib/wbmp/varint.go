// Copyright 2025 The Lvconv Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package wbmp

import (
	"io"
)

// maxVarintBytes is enough 7-bit groups to hold a uint32.
const maxVarintBytes = 5

// ReadVarint reads a WBMP multi-byte integer: big-endian groups of 7 bits,
// where a set high bit means that more bytes follow.
//
// It returns ErrBadVarint if r runs out before a terminating byte and
// ErrVarintOverflow if the value does not fit in 32 bits.
func ReadVarint(r io.ByteReader) (uint32, error) {
	value := uint64(0)
	for i := 0; ; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return 0, ErrBadVarint
			}
			return 0, err
		}
		value = (value << 7) | uint64(b&0x7F)
		if value > 0xFFFFFFFF {
			return 0, ErrVarintOverflow
		}
		if (b & 0x80) == 0 {
			break
		}
		if i >= maxVarintBytes-1 {
			// Leading 0x80 bytes add no bits but the stream is still bogus.
			return 0, ErrVarintOverflow
		}
	}
	return uint32(value), nil
}

// AppendVarint appends the WBMP multi-byte encoding of v to b.
func AppendVarint(b []byte, v uint32) []byte {
	buf := [maxVarintBytes]byte{}
	i := len(buf) - 1
	buf[i] = uint8(v & 0x7F)
	for v >>= 7; v != 0; v >>= 7 {
		i--
		buf[i] = 0x80 | uint8(v&0x7F)
	}
	return append(b, buf[i:]...)
}
