// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/Sui-Community-Network/objectstore/util"
)

func TestVarint64(t *testing.T) {

	tests := []struct {
		value   uint64
		encoded []byte
	}{
		{0x00, []byte{0x00}},
		{0x01, []byte{0x01}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x80, 0x80, 0x01}},
		{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}

	for i, item := range tests {
		encoded := util.ToVarint64(item.value)
		if !bytes.Equal(encoded, item.encoded) {
			t.Errorf("%d: encode: %d → %x  expected: %x", i, item.value, encoded, item.encoded)
		}

		decoded, count := util.FromVarint64(item.encoded)
		if decoded != item.value {
			t.Errorf("%d: decode: %x → %d  expected: %d", i, item.encoded, decoded, item.value)
		}
		if count != len(item.encoded) {
			t.Errorf("%d: decode count: %d  expected: %d", i, count, len(item.encoded))
		}
	}
}

func TestVarint64Truncated(t *testing.T) {
	value, count := util.FromVarint64([]byte{0x80})
	if 0 != value || 0 != count {
		t.Errorf("truncated decode: %d, %d  expected: 0, 0", value, count)
	}

	value, count = util.FromVarint64([]byte{})
	if 0 != value || 0 != count {
		t.Errorf("empty decode: %d, %d  expected: 0, 0", value, count)
	}
}
