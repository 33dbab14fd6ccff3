// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Sui Community Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - object records and their packed binary form
//
// an object record is the unit of storage: a type tag, a version
// number, an ownership mode and an opaque payload; dynamic extension
// fields are stored separately and addressed by (object id, field key)
//
// packed formats (varint64 for all variable length numbers):
//
// ObjectRecord:
//
//   varint(len) ⧺ type tag utf-8
//   varint(version)
//   packed ownership mode
//   varint(len) ⧺ payload bytes
//
// the object id is not part of the pack, it is the database key
//
// OwnershipMode:
//
//   00 ⧺ owner address (32 bytes)     - owned
//   01                                - shared
//   02                                - immutable
//   03 ⧺ parent object id (32 bytes)  - wrapped
//
// FieldKey:
//
//   00 ⧺ varint(len) ⧺ utf-8          - string key
//   01 ⧺ 8 byte big endian            - integer key
//   02 ⧺ address (32 bytes)           - address key
//
// FieldValue:
//
//   00 ⧺ varint(value)                - integer
//   01 ⧺ varint(len) ⧺ utf-8          - string
//   02 ⧺ varint(len) ⧺ bytes          - opaque struct
//   03 ⧺ object id (32 bytes)         - object reference
package record
