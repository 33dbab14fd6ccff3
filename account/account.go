// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/Sui-Community-Network/objectstore/fault"
)

// AddressLength - number of bytes in an address
const AddressLength = 32

// checksum bytes appended to the base58 form
const checksumLength = 4

// Address - the on-store identity of a caller
//
// stored as raw bytes, represented as base58 with a 4 byte SHA3-256
// checksum for text form
type Address [AddressLength]byte

// AddressFromBase58 - convert a base58 encoded string to an address
//
// checks length and checksum
func AddressFromBase58(addressBase58Encoded string) (*Address, error) {
	decoded, err := base58.Decode(addressBase58Encoded)
	if nil != err {
		return nil, fault.CannotDecodeAddress
	}

	if AddressLength+checksumLength != len(decoded) {
		return nil, fault.AddressLengthIsInvalid
	}

	checksumStart := len(decoded) - checksumLength
	digest := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(digest[:checksumLength], decoded[checksumStart:]) {
		return nil, fault.AddressChecksumMismatch
	}

	address := &Address{}
	copy(address[:], decoded[:checksumStart])
	return address, nil
}

// AddressFromBytes - convert a byte slice to an address
func AddressFromBytes(address *Address, buffer []byte) error {
	if AddressLength != len(buffer) {
		return fault.AddressLengthIsInvalid
	}
	copy(address[:], buffer)
	return nil
}

// Bytes - return the address as a byte slice
func (address Address) Bytes() []byte {
	return address[:]
}

// String - base58 with checksum for use by the fmt package (for %s)
func (address Address) String() string {
	buffer := make([]byte, 0, AddressLength+checksumLength)
	buffer = append(buffer, address[:]...)
	digest := sha3.Sum256(buffer)
	buffer = append(buffer, digest[:checksumLength]...)
	return base58.Encode(buffer)
}

// GoString - for use by the fmt package (for %#v)
func (address Address) GoString() string {
	return "<address:" + address.String() + ">"
}

// MarshalText - convert address to text
func (address Address) MarshalText() ([]byte, error) {
	return []byte(address.String()), nil
}

// UnmarshalText - convert text to address
func (address *Address) UnmarshalText(s []byte) error {
	a, err := AddressFromBase58(string(s))
	if nil != err {
		return err
	}
	*address = *a
	return nil
}
