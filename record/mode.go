// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/Sui-Community-Network/objectstore/account"
	"github.com/Sui-Community-Network/objectstore/fault"
	"github.com/Sui-Community-Network/objectstore/objectid"
)

// ModeTag - type code for ownership modes
// this is encoded as a single byte at the start of the packed mode
type ModeTag byte

// enumerate the possible ownership modes
const (
	OwnedTag     ModeTag = iota // exclusive to one address
	SharedTag    ModeTag = iota // mutable by any caller, serialised at commit
	ImmutableTag ModeTag = iota // terminal, no further mutation ever
	WrappedTag   ModeTag = iota // held inside another object, invisible at top level

	// this item must be last
	invalidModeTag ModeTag = iota
)

const (
	modeTagSize = 1

	ownedPackLength   = modeTagSize + account.AddressLength
	sharedPackLength  = modeTagSize
	frozenPackLength  = modeTagSize
	wrappedPackLength = modeTagSize + objectid.Length
)

// OwnershipMode - tagged variant controlling who may mutate an object
type OwnershipMode interface {
	Pack() PackedMode
	Tag() ModeTag
	String() string
}

// PackedMode - packed ownership mode for the database
type PackedMode []byte

// OwnedMode - object is exclusively owned by one address
type OwnedMode struct {
	Owner account.Address
}

// SharedMode - object admits any caller, conflicts resolved at commit
type SharedMode struct{}

// ImmutableMode - object admits no further mutation, terminal
type ImmutableMode struct{}

// WrappedMode - object is held inside its parent and is invisible to
// top level operations until unwrapped
type WrappedMode struct {
	Parent objectid.ObjectId
}

// Pack - pack owned mode to byte slice
func (m OwnedMode) Pack() PackedMode {
	packed := make(PackedMode, 0, ownedPackLength)
	packed = append(packed, byte(OwnedTag))
	packed = append(packed, m.Owner[:]...)
	return packed
}

func (m OwnedMode) Tag() ModeTag { return OwnedTag }

func (m OwnedMode) String() string {
	return "owned(" + m.Owner.String() + ")"
}

// Pack - pack shared mode to byte slice
func (m SharedMode) Pack() PackedMode {
	return PackedMode{byte(SharedTag)}
}

func (m SharedMode) Tag() ModeTag { return SharedTag }

func (m SharedMode) String() string { return "shared" }

// Pack - pack immutable mode to byte slice
func (m ImmutableMode) Pack() PackedMode {
	return PackedMode{byte(ImmutableTag)}
}

func (m ImmutableMode) Tag() ModeTag { return ImmutableTag }

func (m ImmutableMode) String() string { return "immutable" }

// Pack - pack wrapped mode to byte slice
func (m WrappedMode) Pack() PackedMode {
	packed := make(PackedMode, 0, wrappedPackLength)
	packed = append(packed, byte(WrappedTag))
	packed = append(packed, m.Parent[:]...)
	return packed
}

func (m WrappedMode) Tag() ModeTag { return WrappedTag }

func (m WrappedMode) String() string {
	return "wrapped(" + m.Parent.String() + ")"
}

// ModeFromBytes - unpack an ownership mode from the start of a buffer
//
// also return the number of bytes used as second value
func ModeFromBytes(buffer []byte) (OwnershipMode, int, error) {
	if len(buffer) < modeTagSize {
		return nil, 0, fault.NotOwnershipModePack
	}

	switch ModeTag(buffer[0]) {

	case OwnedTag:
		if len(buffer) < ownedPackLength {
			return nil, 0, fault.NotOwnershipModePack
		}
		m := OwnedMode{}
		copy(m.Owner[:], buffer[modeTagSize:ownedPackLength])
		return m, ownedPackLength, nil

	case SharedTag:
		return SharedMode{}, sharedPackLength, nil

	case ImmutableTag:
		return ImmutableMode{}, frozenPackLength, nil

	case WrappedTag:
		if len(buffer) < wrappedPackLength {
			return nil, 0, fault.NotOwnershipModePack
		}
		m := WrappedMode{}
		copy(m.Parent[:], buffer[modeTagSize:wrappedPackLength])
		return m, wrappedPackLength, nil

	default:
		return nil, 0, fault.NotOwnershipModePack
	}
}
