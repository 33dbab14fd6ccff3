// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/Sui-Community-Network/objectstore/account"
	"github.com/Sui-Community-Network/objectstore/fault"
	"github.com/Sui-Community-Network/objectstore/objectid"
	"github.com/Sui-Community-Network/objectstore/util"
)

// KeyTag - type code for dynamic field keys
type KeyTag byte

// enumerate the possible field key kinds
const (
	StringKeyTag  KeyTag = iota
	IntegerKeyTag KeyTag = iota
	AddressKeyTag KeyTag = iota

	// this item must be last
	invalidKeyTag KeyTag = iota
)

// ValueTag - type code for dynamic field values
type ValueTag byte

// enumerate the possible field value kinds
const (
	IntegerValueTag   ValueTag = iota
	StringValueTag    ValueTag = iota
	BytesValueTag     ValueTag = iota
	ObjectRefValueTag ValueTag = iota

	// this item must be last
	invalidValueTag ValueTag = iota
)

const (
	maxStringKeyLength   = 256
	maxStringValueLength = 2048
	maxBytesValueLength  = 2048
)

// FieldKey - any hashable scalar usable to address a dynamic field
type FieldKey interface {
	Pack() (PackedKey, error)
	String() string
}

// PackedKey - packed field key, appended to the object id to form the
// database key, so equal keys are byte-equal
type PackedKey []byte

// FieldValue - inline data or an owned reference to another object
type FieldValue interface {
	Pack() (PackedValue, error)
	String() string
}

// PackedValue - packed field value for the database
type PackedValue []byte

// StringKey - utf-8 text key
type StringKey string

// IntegerKey - unsigned number key
type IntegerKey uint64

// AddressKey - address key
type AddressKey account.Address

// IntegerValue - inline unsigned number
type IntegerValue uint64

// StringValue - inline utf-8 text
type StringValue string

// BytesValue - inline opaque struct data
type BytesValue []byte

// ObjectRefValue - owned reference to a nested object
//
// while referenced the nested object is wrapped by the field owner;
// removing the field hands its lifecycle back to the caller
type ObjectRefValue struct {
	Id objectid.ObjectId
}

// Pack - pack a string key
func (k StringKey) Pack() (PackedKey, error) {
	if 0 == len(k) || len(k) > maxStringKeyLength {
		return nil, fault.InvalidFieldKey
	}
	packed := append(PackedKey{byte(StringKeyTag)}, util.ToVarint64(uint64(len(k)))...)
	return append(packed, k...), nil
}

func (k StringKey) String() string { return string(k) }

// Pack - pack an integer key
//
// fixed size big endian so keys iterate in numeric order
func (k IntegerKey) Pack() (PackedKey, error) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, uint64(k))
	return append(PackedKey{byte(IntegerKeyTag)}, buffer...), nil
}

func (k IntegerKey) String() string {
	return strconv.FormatUint(uint64(k), 10)
}

// Pack - pack an address key
func (k AddressKey) Pack() (PackedKey, error) {
	return append(PackedKey{byte(AddressKeyTag)}, k[:]...), nil
}

func (k AddressKey) String() string {
	return account.Address(k).String()
}

// KeyFromBytes - unpack a field key
func KeyFromBytes(buffer []byte) (FieldKey, error) {
	if len(buffer) < 1 {
		return nil, fault.InvalidFieldKey
	}

	switch KeyTag(buffer[0]) {

	case StringKeyTag:
		length, used := util.FromVarint64(buffer[1:])
		if 0 == used || len(buffer) != 1+used+int(length) {
			return nil, fault.InvalidFieldKey
		}
		return StringKey(buffer[1+used:]), nil

	case IntegerKeyTag:
		if 9 != len(buffer) {
			return nil, fault.InvalidFieldKey
		}
		return IntegerKey(binary.BigEndian.Uint64(buffer[1:])), nil

	case AddressKeyTag:
		if 1+account.AddressLength != len(buffer) {
			return nil, fault.InvalidFieldKey
		}
		k := AddressKey{}
		copy(k[:], buffer[1:])
		return k, nil

	default:
		return nil, fault.InvalidFieldKey
	}
}

// Pack - pack an integer value
func (v IntegerValue) Pack() (PackedValue, error) {
	return append(PackedValue{byte(IntegerValueTag)}, util.ToVarint64(uint64(v))...), nil
}

func (v IntegerValue) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// Pack - pack a string value
func (v StringValue) Pack() (PackedValue, error) {
	if len(v) > maxStringValueLength {
		return nil, fault.InvalidFieldValue
	}
	packed := append(PackedValue{byte(StringValueTag)}, util.ToVarint64(uint64(len(v)))...)
	return append(packed, v...), nil
}

func (v StringValue) String() string { return string(v) }

// Pack - pack an opaque struct value
func (v BytesValue) Pack() (PackedValue, error) {
	if len(v) > maxBytesValueLength {
		return nil, fault.InvalidFieldValue
	}
	packed := append(PackedValue{byte(BytesValueTag)}, util.ToVarint64(uint64(len(v)))...)
	return append(packed, v...), nil
}

func (v BytesValue) String() string {
	return hex.EncodeToString(v)
}

// Pack - pack an object reference value
func (v ObjectRefValue) Pack() (PackedValue, error) {
	if v.Id.IsZero() {
		return nil, fault.InvalidFieldValue
	}
	return append(PackedValue{byte(ObjectRefValueTag)}, v.Id[:]...), nil
}

func (v ObjectRefValue) String() string {
	return fmt.Sprintf("ref(%s)", v.Id)
}

// ValueFromBytes - unpack a field value
func ValueFromBytes(buffer []byte) (FieldValue, error) {
	if len(buffer) < 1 {
		return nil, fault.InvalidFieldValue
	}

	switch ValueTag(buffer[0]) {

	case IntegerValueTag:
		n, used := util.FromVarint64(buffer[1:])
		if 0 == used || len(buffer) != 1+used {
			return nil, fault.InvalidFieldValue
		}
		return IntegerValue(n), nil

	case StringValueTag:
		length, used := util.FromVarint64(buffer[1:])
		if 0 == used || len(buffer) != 1+used+int(length) {
			return nil, fault.InvalidFieldValue
		}
		return StringValue(buffer[1+used:]), nil

	case BytesValueTag:
		length, used := util.FromVarint64(buffer[1:])
		if 0 == used || len(buffer) != 1+used+int(length) {
			return nil, fault.InvalidFieldValue
		}
		value := make(BytesValue, length)
		copy(value, buffer[1+used:])
		return value, nil

	case ObjectRefValueTag:
		if 1+objectid.Length != len(buffer) {
			return nil, fault.InvalidFieldValue
		}
		v := ObjectRefValue{}
		copy(v.Id[:], buffer[1:])
		return v, nil

	default:
		return nil, fault.InvalidFieldValue
	}
}
