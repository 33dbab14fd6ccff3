// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/hex"

	"github.com/Sui-Community-Network/objectstore/fault"
	"github.com/Sui-Community-Network/objectstore/objectid"
	"github.com/Sui-Community-Network/objectstore/util"
)

// byte sizes for various fields
const (
	maxTypeTagLength = 64
	maxPayloadLength = 2048
)

// ObjectRecord - the unpacked object record
//
// the Id is the database key and is not part of the packed form; it
// is filled in when a record is fetched
type ObjectRecord struct {
	Id      objectid.ObjectId `json:"id"`
	TypeTag string            `json:"typeTag"`
	Version uint64            `json:"version,string"`
	Owner   OwnershipMode     `json:"owner"`
	Payload []byte            `json:"payload"` // hex
}

// Packed - packed records are just a byte slice
type Packed []byte

// Pack - pack an object record
//
// fields in order as struct above, mode packed with its leading tag
// byte, all variable length items preceded by a varint count
func (r *ObjectRecord) Pack() (Packed, error) {
	if 0 == len(r.TypeTag) {
		return nil, fault.TypeTagIsRequired
	}
	// byte length, the same limit Unpack enforces
	if len(r.TypeTag) > maxTypeTagLength {
		return nil, fault.TypeTagTooLong
	}
	if len(r.Payload) > maxPayloadLength {
		return nil, fault.PayloadTooLong
	}
	if nil == r.Owner {
		return nil, fault.NotOwnershipModePack
	}

	// concatenate bytes
	message := util.ToVarint64(uint64(len(r.TypeTag)))
	message = append(message, r.TypeTag...)
	message = append(message, util.ToVarint64(r.Version)...)
	message = append(message, r.Owner.Pack()...)
	message = append(message, util.ToVarint64(uint64(len(r.Payload)))...)
	message = append(message, r.Payload...)

	return message, nil
}

// Unpack - unpack a stored record
//
// the id must be supplied by the caller as it is the database key
func (packed Packed) Unpack(id objectid.ObjectId) (*ObjectRecord, error) {

	// type tag
	tagLength, used := util.FromVarint64(packed)
	if 0 == used || tagLength > maxTypeTagLength {
		return nil, fault.NotObjectRecordPack
	}
	rest := packed[used:]
	if uint64(len(rest)) < tagLength {
		return nil, fault.NotObjectRecordPack
	}
	typeTag := string(rest[:tagLength])
	rest = rest[tagLength:]

	// version
	version, used := util.FromVarint64(rest)
	if 0 == used {
		return nil, fault.NotObjectRecordPack
	}
	rest = rest[used:]

	// ownership mode
	owner, used, err := ModeFromBytes(rest)
	if nil != err {
		return nil, err
	}
	rest = rest[used:]

	// payload
	payloadLength, used := util.FromVarint64(rest)
	if 0 == used || payloadLength > maxPayloadLength {
		return nil, fault.NotObjectRecordPack
	}
	rest = rest[used:]
	if uint64(len(rest)) != payloadLength {
		return nil, fault.NotObjectRecordPack
	}
	payload := make([]byte, payloadLength)
	copy(payload, rest)

	return &ObjectRecord{
		Id:      id,
		TypeTag: typeTag,
		Version: version,
		Owner:   owner,
		Payload: payload,
	}, nil
}

// Copy - duplicate a record so a mutator can work on a private copy
func (r *ObjectRecord) Copy() *ObjectRecord {
	payload := make([]byte, len(r.Payload))
	copy(payload, r.Payload)

	return &ObjectRecord{
		Id:      r.Id,
		TypeTag: r.TypeTag,
		Version: r.Version,
		Owner:   r.Owner,
		Payload: payload,
	}
}

// String - hex dump of the packed record for logging
func (packed Packed) String() string {
	return hex.EncodeToString(packed)
}
