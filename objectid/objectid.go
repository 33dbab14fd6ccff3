// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectid

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/Sui-Community-Network/objectstore/fault"
)

// Length - number of bytes in an object id
const Length = 32

// ObjectId - the globally unique identity of a stored object
//
// a SHA3-256 digest of allocator entropy and a monotonic sequence
// number, so ids are unforgeable and never repeat for the lifetime of
// the store; to convert to bytes just use id[:]
type ObjectId [Length]byte

// New - derive an id from allocator entropy and a sequence number
func New(entropy []byte, sequence uint64) ObjectId {
	message := make([]byte, 0, len(entropy)+8)
	message = append(message, entropy...)

	sequenceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(sequenceBytes, sequence)
	message = append(message, sequenceBytes...)

	return sha3.Sum256(message)
}

// FromBytes - convert a byte slice to an object id
func FromBytes(id *ObjectId, buffer []byte) error {
	if Length != len(buffer) {
		return fault.NotObjectRecordPack
	}
	copy(id[:], buffer)
	return nil
}

// Bytes - return the id as a byte slice
func (id ObjectId) Bytes() []byte {
	return id[:]
}

// IsZero - check for the all zero id, used as "no object"
func (id ObjectId) IsZero() bool {
	return ObjectId{} == id
}

// String - convert a binary id to hex string for use by the fmt package (for %s)
func (id ObjectId) String() string {
	return hex.EncodeToString(id[:])
}

// GoString - convert a binary id to hex string for use by the fmt package (for %#v)
func (id ObjectId) GoString() string {
	return "<object:" + hex.EncodeToString(id[:]) + ">"
}

// MarshalText - convert id to hex text
func (id ObjectId) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(Length)
	buffer := make([]byte, size)
	hex.Encode(buffer, id[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into an id
func (id *ObjectId) UnmarshalText(s []byte) error {
	if Length != hex.DecodedLen(len(s)) {
		return fmt.Errorf("hex object id wrong length: %d", len(s))
	}
	byteCount, err := hex.Decode(id[:], s)
	if nil != err {
		return err
	}
	if Length != byteCount {
		return fmt.Errorf("hex object id decoded length: %d", byteCount)
	}
	return nil
}
