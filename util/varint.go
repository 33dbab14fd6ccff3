// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - maximum possible number of bytes in Varint64
const Varint64MaximumBytes = 9

// ToVarint64 - convert a 64 bit unsigned integer to Varint64
//
// seven bits per byte, LSB first, high bit of each byte set while
// more bytes follow; the ninth byte, if present, carries a full
// eight bits so the encoding never exceeds nine bytes
func ToVarint64(value uint64) []byte {
	result := make([]byte, 0, Varint64MaximumBytes)
	if value < 0x80 {
		return append(result, byte(value))
	}

	for i := 0; i < Varint64MaximumBytes && value != 0; i += 1 {
		ext := uint64(0x80)
		if value < 0x80 {
			ext = 0x00
		}
		result = append(result, byte(value|ext))
		value >>= 7
	}
	return result
}

// FromVarint64 - convert an array of up to Varint64MaximumBytes to a uint64
//
// also return the number of bytes used as second value
// returns 0, 0 if varint64 buffer is truncated
func FromVarint64(buffer []byte) (uint64, int) {
	result := uint64(0)
	shift := uint(0)
	count := 0

	for count < len(buffer) {
		currentByte := uint64(buffer[count])
		count += 1
		if count < Varint64MaximumBytes {
			result |= currentByte & 0x7f << shift
			if 0 == currentByte&0x80 {
				return result, count
			}
		} else {
			result |= currentByte << shift
			return result, count
		}
		shift += 7
	}
	return 0, 0
}
